package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"transcriptfolder/internal/config"
	fm "transcriptfolder/internal/domain/models/filemanager"
	fmSvc "transcriptfolder/internal/domain/services/filemanager"
	"transcriptfolder/internal/seed"
	"transcriptfolder/internal/service/filemanager"
	"transcriptfolder/internal/utils"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorRed    = "\033[31m"
	colorBlue   = "\033[34m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

type CLI struct {
	ctx     context.Context
	session *filemanager.Session
	scanner *bufio.Scanner
	logger  *slog.Logger
}

// consoleNotifier prints semantic events the way a toast would show them
type consoleNotifier struct{}

func (consoleNotifier) Notify(_ context.Context, event fm.Event) {
	if event.Type == fm.EventViewChanged {
		return
	}
	fmt.Printf("%s🔔 %s%s %s\n", colorYellow, event.Title(), colorReset, event.Description())
}

// consoleOpener stands in for a transcript viewer
type consoleOpener struct{}

func (consoleOpener) Open(_ context.Context, item fm.Item) error {
	fmt.Printf("%s📄 Opening %s%s\n", colorBlue, item.Name, colorReset)
	return nil
}

// setupLogger writes debug logs to a timestamped file so the console stays readable
func setupLogger(cfg *config.Config) (*slog.Logger, string, error) {
	dir := cfg.LogDir
	if dir == "" {
		dir = "logs"
	}
	f, err := config.SetupLogFile(dir, "fm_cli", cfg.LogMaxFiles)
	if err != nil {
		return nil, "", err
	}

	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{
		Level:     slog.LevelDebug,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Format source for better readability
			if a.Key == slog.SourceKey {
				if src, ok := a.Value.Any().(*slog.Source); ok {
					return slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", filepath.Base(src.File), src.Line))
				}
			}
			return a
		},
	}))
	return logger, f.Name(), nil
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger, logFile, err := setupLogger(cfg)
	if err != nil {
		fmt.Printf("%s❌ Failed to setup logger: %v%s\n", colorRed, err, colorReset)
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	ds, err := seed.Default()
	if cfg.SeedFile != "" {
		ds, err = seed.LoadFile(cfg.SeedFile)
	}
	if err != nil {
		fmt.Printf("%s❌ Failed to load dataset: %v%s\n", colorRed, err, colorReset)
		os.Exit(1)
	}

	actor := fm.Actor{ID: cfg.DevActorID, Name: cfg.DevActorName}
	session, err := filemanager.NewSession(actor, ds.ItemsFor(actor), filemanager.SessionDeps{
		Teams:    ds.Catalog(),
		Notifier: filemanager.MultiNotifier{consoleNotifier{}, filemanager.NewLogNotifier(logger)},
		Opener:   consoleOpener{},
		Locale:   cfg.Locale,
		Logger:   logger,
	})
	if err != nil {
		fmt.Printf("%s❌ Failed to start session: %v%s\n", colorRed, err, colorReset)
		os.Exit(1)
	}
	defer session.Close()
	logger.Info("session started", "log_file", logFile, "actor_id", actor.ID)

	cli := &CLI{
		ctx:     context.Background(),
		session: session,
		scanner: bufio.NewScanner(os.Stdin),
		logger:  logger,
	}
	cli.run()
}

func (cli *CLI) run() {
	fmt.Printf("\n%s╔══════════════════════════════════════╗%s\n", colorCyan, colorReset)
	fmt.Printf("%s║      Transcript Folders CLI          ║%s\n", colorCyan, colorReset)
	fmt.Printf("%s╚══════════════════════════════════════╝%s\n", colorCyan, colorReset)
	fmt.Printf("%sUser: %s | type 'help' for commands%s\n", colorBlue, cli.session.Actor().Name, colorReset)

	for {
		fmt.Printf("\n%s%s%s> ", colorGreen, cli.prompt(), colorReset)
		if !cli.scanner.Scan() {
			return
		}
		fields := strings.Fields(cli.scanner.Text())
		if len(fields) == 0 {
			continue
		}

		cmd, args := fields[0], fields[1:]
		cli.logger.Debug("command", "cmd", cmd, "args", args)
		if cmd == "quit" || cmd == "exit" {
			fmt.Printf("%s✓ Goodbye!%s\n", colorGreen, colorReset)
			return
		}
		if err := cli.dispatch(cmd, args); err != nil {
			cli.logger.Warn("command failed", "cmd", cmd, "error", err)
			fmt.Printf("%s❌ %v%s\n", colorRed, err, colorReset)
		}
	}
}

func (cli *CLI) dispatch(cmd string, args []string) error {
	s := cli.session
	switch cmd {
	case "help":
		cli.help()
	case "ls":
		cli.list()
	case "tree":
		return cli.tree()
	case "pwd":
		fmt.Println(cli.prompt())
	case "cd":
		return cli.cd(args)
	case "teams":
		for _, team := range s.Teams() {
			fmt.Printf("  %-8s %s (%d members)\n", team.ID, team.Name, team.MemberCount)
		}
	case "team":
		if len(args) == 0 || args[0] == "personal" {
			return s.SelectTeam(cli.ctx, nil)
		}
		return s.SelectTeam(cli.ctx, &args[0])
	case "search":
		return s.SetSearch(cli.ctx, strings.Join(args, " "))
	case "sort":
		if len(args) != 1 {
			return fmt.Errorf("usage: sort name|modified|size|type")
		}
		return s.ToggleSort(cli.ctx, fm.SortKey(args[0]))
	case "view":
		if len(args) != 1 {
			return fmt.Errorf("usage: view grid|list")
		}
		return s.SetViewMode(cli.ctx, fm.ViewMode(args[0]))
	case "mkdir":
		item, err := s.CreateFolder(cli.ctx)
		if err != nil || len(args) == 0 {
			return err
		}
		name := strings.Join(args, " ")
		_, err = s.UpdateItem(cli.ctx, item.ID, fmSvc.ItemPatch{Name: &name})
		return err
	case "touch":
		if len(args) < 2 {
			return fmt.Errorf("usage: touch SIZE NAME")
		}
		size, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid size %q", args[0])
		}
		_, err = s.CreateItem(cli.ctx, &fmSvc.CreateItemRequest{
			Name: strings.Join(args[1:], " "),
			Kind: fm.KindFile,
			Size: &size,
		})
		return err
	case "rename":
		if len(args) < 2 {
			return fmt.Errorf("usage: rename ID NAME")
		}
		name := strings.Join(args[1:], " ")
		_, err := s.UpdateItem(cli.ctx, args[0], fmSvc.ItemPatch{Name: &name})
		return err
	case "color":
		if len(args) != 2 {
			return fmt.Errorf("usage: color ID COLOR")
		}
		color := fm.Color(args[1])
		_, err := s.UpdateItem(cli.ctx, args[0], fmSvc.ItemPatch{Color: &color})
		return err
	case "mv":
		if len(args) != 2 {
			return fmt.Errorf("usage: mv ID PARENT_ID|/")
		}
		patch := fmSvc.ItemPatch{Move: true}
		if args[1] != "/" {
			patch.MoveTo = &args[1]
		}
		_, err := s.UpdateItem(cli.ctx, args[0], patch)
		return err
	case "rm":
		if len(args) != 1 {
			return fmt.Errorf("usage: rm ID")
		}
		_, err := s.DeleteItem(cli.ctx, args[0])
		return err
	case "select":
		if len(args) == 0 {
			return fmt.Errorf("usage: select ID [+]")
		}
		return s.Click(cli.ctx, args[0], len(args) > 1 && args[1] == "+")
	case "open":
		if len(args) != 1 {
			return fmt.Errorf("usage: open ID")
		}
		return s.Activate(cli.ctx, args[0])
	case "clear":
		s.ClearSelection(cli.ctx)
	case "rmsel":
		result, err := s.DeleteSelected(cli.ctx)
		if err != nil {
			return err
		}
		if len(result.Skipped) > 0 {
			fmt.Printf("%s⚠ Skipped missing: %s%s\n", colorYellow, strings.Join(result.Skipped, ", "), colorReset)
		}
	case "share":
		_, err := s.ShareSelected(cli.ctx)
		return err
	case "download":
		_, err := s.DownloadSelected(cli.ctx)
		return err
	case "upload":
		s.RequestUpload(cli.ctx)
	default:
		return fmt.Errorf("unknown command %q (try 'help')", cmd)
	}
	return nil
}

func (cli *CLI) help() {
	fmt.Println(`Commands:
  ls                      list the current folder
  tree                    show the folder tree
  pwd                     show the path
  cd ID | .. | /          change folder
  teams | team ID|personal
  search TEXT             filter by name (empty clears)
  sort name|modified|size|type
  view grid|list
  mkdir [NAME] | touch SIZE NAME
  rename ID NAME | color ID COLOR | mv ID PARENT|/ | rm ID
  select ID [+]           click, '+' toggles into a multi-selection
  open ID                 double-click
  clear | rmsel | share | download | upload
  quit`)
}

func (cli *CLI) prompt() string {
	crumbs, err := cli.session.Breadcrumbs()
	if err != nil {
		return "?"
	}
	names := make([]string, len(crumbs))
	for i, c := range crumbs {
		names[i] = c.Name
	}
	return strings.Join(names, " / ")
}

func (cli *CLI) list() {
	snap := cli.session.Snapshot()
	selected := make(map[string]bool, len(snap.Selected))
	for _, id := range snap.Selected {
		selected[id] = true
	}

	if len(snap.Items) == 0 {
		fmt.Printf("%s(empty)%s\n", colorYellow, colorReset)
		return
	}

	now := time.Now()
	fmt.Printf("%s%d items, sorted by %s %s%s\n", colorBlue, len(snap.Items), snap.Params.SortKey, snap.Params.SortOrder, colorReset)
	for _, item := range snap.Items {
		mark := " "
		if selected[item.ID] {
			mark = "*"
		}
		icon, size := "📄", "-"
		if item.IsFolder() {
			icon = "📁"
		} else if item.Size != nil {
			size = utils.FormatFileSize(*item.Size)
		}
		fmt.Printf("%s %s %-6s %-40s %10s  %s\n", mark, icon, item.ID, item.Name, size, utils.FormatDate(item.ModifiedAt, now))
	}
}

func (cli *CLI) tree() error {
	tree, err := cli.session.FolderTree()
	if err != nil {
		return err
	}
	var walk func(nodes []*fm.FolderNode, depth int)
	walk = func(nodes []*fm.FolderNode, depth int) {
		for _, n := range nodes {
			fmt.Printf("%s📁 %s %s(%s)%s\n", strings.Repeat("  ", depth), n.Item.Name, colorCyan, n.Item.ID, colorReset)
			walk(n.Children, depth+1)
		}
	}
	walk(tree, 0)
	return nil
}

func (cli *CLI) cd(args []string) error {
	if len(args) != 1 || args[0] == "/" {
		return cli.session.NavigateTo(cli.ctx, nil)
	}
	if args[0] != ".." {
		return cli.session.NavigateTo(cli.ctx, &args[0])
	}

	crumbs, err := cli.session.Breadcrumbs()
	if err != nil {
		return err
	}
	if len(crumbs) < 2 {
		return nil
	}
	return cli.session.NavigateTo(cli.ctx, crumbs[len(crumbs)-2].ID)
}
