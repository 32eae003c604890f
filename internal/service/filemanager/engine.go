package filemanager

import (
	"errors"
	"log/slog"
	"time"

	"transcriptfolder/internal/config"
	"transcriptfolder/internal/domain"
	models "transcriptfolder/internal/domain/models/filemanager"
	fmSvc "transcriptfolder/internal/domain/services/filemanager"
)

// Engine keeps the derived views consistent with the store and the view
// parameters. It recomputes synchronously on every change, so a read after a
// mutation never sees stale output.
type Engine struct {
	store      *Store
	controller *ViewController
	teams      fmSvc.TeamCatalog
	sorter     *Sorter
	maxDepth   int
	logger     *slog.Logger

	snapshot  models.Snapshot
	treeErr   error
	crumbErr  error
	revision  uint64
	listeners observers[models.Snapshot]

	held  int
	dirty bool
	unsub []func()
}

// NewEngine wires an engine to a store and a controller and computes the first snapshot
func NewEngine(
	store *Store,
	controller *ViewController,
	teams fmSvc.TeamCatalog,
	sorter *Sorter,
	maxDepth int,
	logger *slog.Logger,
) *Engine {
	if maxDepth <= 0 {
		maxDepth = config.MaxAncestorDepth
	}
	e := &Engine{
		store:      store,
		controller: controller,
		teams:      teams,
		sorter:     sorter,
		maxDepth:   maxDepth,
		logger:     logger,
	}
	e.unsub = append(e.unsub,
		store.Subscribe(func(fmSvc.Change) { e.invalidate() }),
		controller.Subscribe(func(fmSvc.Change) { e.invalidate() }),
	)
	e.recompute()
	return e
}

func (e *Engine) invalidate() {
	if e.held > 0 {
		e.dirty = true
		return
	}
	e.recompute()
}

// batch defers recomputation until the returned release func is called,
// so an intent that touches both the store and the controller produces one
// snapshot. Batches nest.
func (e *Engine) batch() func() {
	e.held++
	return func() {
		e.held--
		if e.held == 0 && e.dirty {
			e.dirty = false
			e.recompute()
		}
	}
}

func (e *Engine) recompute() {
	items := e.store.Items()
	params := e.controller.Params()

	start := time.Now()
	visible := VisibleItems(items, params, e.sorter)
	derivationDuration.WithLabelValues("visible_items").Observe(time.Since(start).Seconds())

	start = time.Now()
	tree, treeErr := BuildFolderTree(items, params.Scope, e.maxDepth)
	derivationDuration.WithLabelValues("folder_tree").Observe(time.Since(start).Seconds())
	e.recordViolation("folder_tree", treeErr)

	start = time.Now()
	crumbs, crumbErr := BuildBreadcrumbs(items, e.rootName(params.Scope), params.FolderID, e.maxDepth)
	derivationDuration.WithLabelValues("breadcrumbs").Observe(time.Since(start).Seconds())
	e.recordViolation("breadcrumbs", crumbErr)

	e.revision++
	snap := models.Snapshot{
		Revision:    e.revision,
		Params:      params,
		Items:       visible,
		Tree:        tree,
		Breadcrumbs: crumbs,
		Selected:    e.store.Selected(),
	}
	if snap.Tree == nil {
		snap.Tree = []*models.FolderNode{}
	}
	if treeErr != nil {
		snap.TreeError = treeErr.Error()
	}
	if crumbErr != nil {
		snap.BreadcrumbError = crumbErr.Error()
	}

	e.snapshot = snap
	e.treeErr = treeErr
	e.crumbErr = crumbErr
	e.listeners.notify(snap)
}

func (e *Engine) recordViolation(derivation string, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, domain.ErrInvariantViolation) {
		invariantViolationsTotal.WithLabelValues(derivation).Inc()
	}
	e.logger.Error("derivation failed",
		"derivation", derivation,
		"revision", e.revision+1,
		"error", err,
	)
}

// rootName labels the synthetic first breadcrumb
func (e *Engine) rootName(scope models.Scope) string {
	if scope.IsPersonal() {
		return config.PersonalRootName
	}
	if e.teams != nil {
		if team, err := e.teams.Team(*scope.TeamID); err == nil {
			return team.Name
		}
	}
	return *scope.TeamID
}

// Snapshot returns the current derived state
func (e *Engine) Snapshot() models.Snapshot {
	return e.snapshot
}

// VisibleItems returns the current visible list
func (e *Engine) VisibleItems() []models.Item {
	return e.snapshot.Items
}

// FolderTree returns the current folder tree, or the invariant violation that stopped it
func (e *Engine) FolderTree() ([]*models.FolderNode, error) {
	if e.treeErr != nil {
		return nil, e.treeErr
	}
	return e.snapshot.Tree, nil
}

// Breadcrumbs returns the current path, or the invariant violation that stopped it
func (e *Engine) Breadcrumbs() ([]models.Breadcrumb, error) {
	if e.crumbErr != nil {
		return nil, e.crumbErr
	}
	return e.snapshot.Breadcrumbs, nil
}

// Subscribe registers a listener called with every new snapshot
func (e *Engine) Subscribe(fn func(models.Snapshot)) func() {
	return e.listeners.add(fn)
}

// Close detaches the engine from its sources
func (e *Engine) Close() {
	for _, fn := range e.unsub {
		fn()
	}
	e.unsub = nil
}
