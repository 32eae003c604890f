package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"transcriptfolder/internal/config"
	"transcriptfolder/internal/seed"
	"transcriptfolder/internal/utils"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "seed",
		Short: "Inspect and validate file manager seed datasets",
		Long: `Inspect and validate file manager seed datasets.

The server loads the embedded dataset unless SEED_FILE points at a YAML file
with the same layout. Use dump to get a starting file and validate to check
edits before deploying them.

Examples:
  seed dump > dataset.yaml
  seed validate dataset.yaml
  seed list --file dataset.yaml`,
		SilenceUsage: true,
	}

	root.AddCommand(newDumpCmd(), newValidateCmd(), newListCmd())
	return root
}

func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print the embedded dataset as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := seed.Default()
			if err != nil {
				return err
			}
			out, err := ds.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Check a dataset file for structural errors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := seed.LoadFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ %s: %d teams, %d users, %d items\n",
				args[0], len(ds.Teams), len(ds.Users), len(ds.Items))
			return nil
		},
	}
}

func newListCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List the items of a dataset",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				file = config.Load().SeedFile
			}
			ds, err := loadDataset(file)
			if err != nil {
				return err
			}

			now := time.Now()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTYPE\tNAME\tPARENT\tSCOPE\tSIZE\tMODIFIED")
			for _, item := range ds.Items {
				parent, scope, size := "-", "personal", "-"
				if item.ParentID != nil {
					parent = *item.ParentID
				}
				if item.TeamID != nil {
					scope = *item.TeamID
				}
				if item.Size != nil {
					size = utils.FormatFileSize(*item.Size)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					item.ID, item.Kind, item.Name, parent, scope, size, utils.FormatDate(item.ModifiedAt, now))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "dataset file (default: SEED_FILE or the embedded dataset)")
	return cmd
}

func loadDataset(file string) (*seed.Dataset, error) {
	if file != "" {
		return seed.LoadFile(file)
	}
	return seed.Default()
}
