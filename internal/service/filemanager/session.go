package filemanager

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"transcriptfolder/internal/config"
	"transcriptfolder/internal/domain"
	models "transcriptfolder/internal/domain/models/filemanager"
	fmSvc "transcriptfolder/internal/domain/services/filemanager"
)

// SessionDeps are the collaborators shared by every session
type SessionDeps struct {
	IDs      fmSvc.IDGenerator
	Clock    fmSvc.Clock
	Teams    fmSvc.TeamCatalog
	Notifier fmSvc.Notifier // optional, receives every event next to the session's own broadcaster
	Opener   fmSvc.Opener   // optional; without one, opening a file only emits open_requested
	Locale   string
	MaxDepth int
	Logger   *slog.Logger
}

// Session is one actor's file manager: a store, a view controller and the
// engine deriving from both, plus the gesture-level intents on top.
// All methods are serialised by the session mutex.
type Session struct {
	mu sync.Mutex

	actor    models.Actor
	store    *Store
	view     *ViewController
	engine   *Engine
	teams    fmSvc.TeamCatalog
	events   *Broadcaster
	notifier fmSvc.Notifier
	opener   fmSvc.Opener
	clock    fmSvc.Clock
	logger   *slog.Logger

	unsub func()
}

// NewSession builds a session over a copy of items
func NewSession(actor models.Actor, items []models.Item, deps SessionDeps) (*Session, error) {
	if deps.IDs == nil {
		deps.IDs = UUIDGenerator{}
	}
	if deps.Clock == nil {
		deps.Clock = SystemClock{}
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	logger := deps.Logger.With("actor_id", actor.ID)

	store := NewStore(deps.IDs, deps.Clock, StaticActor(actor), logger)
	if err := store.Load(items); err != nil {
		return nil, fmt.Errorf("load items: %w", err)
	}
	view := NewViewController()

	s := &Session{
		actor:  actor,
		store:  store,
		view:   view,
		teams:  deps.Teams,
		events: NewBroadcaster(),
		opener: deps.Opener,
		clock:  deps.Clock,
		logger: logger,
	}
	s.notifier = MultiNotifier{deps.Notifier, s.events}
	s.engine = NewEngine(store, view, deps.Teams, NewSorter(deps.Locale), deps.MaxDepth, logger)
	s.unsub = s.engine.Subscribe(func(snap models.Snapshot) {
		s.notify(context.Background(), models.Event{Type: models.EventViewChanged, Revision: snap.Revision})
	})
	return s, nil
}

func (s *Session) notify(ctx context.Context, event models.Event) {
	event.At = s.clock.Now()
	if event.Revision == 0 {
		event.Revision = s.engine.Snapshot().Revision
	}
	s.notifier.Notify(ctx, event)
}

// Actor returns the session owner
func (s *Session) Actor() models.Actor {
	return s.actor
}

// SubscribeEvents streams every event of this session until cancel is called
func (s *Session) SubscribeEvents(buffer int) (<-chan models.Event, func()) {
	return s.events.Subscribe(buffer)
}

// Close detaches the engine and ends every event subscription
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unsub != nil {
		s.unsub()
		s.unsub = nil
	}
	s.engine.Close()
	s.events.Close()
}

// ---- reads ----

// Snapshot returns the current derived state
func (s *Session) Snapshot() models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Snapshot()
}

// VisibleItems returns the filtered, sorted list for the active folder
func (s *Session) VisibleItems() []models.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.VisibleItems()
}

// FolderTree returns the folder tree of the active scope
func (s *Session) FolderTree() ([]*models.FolderNode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.FolderTree()
}

// Breadcrumbs returns the path to the active folder
func (s *Session) Breadcrumbs() ([]models.Breadcrumb, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Breadcrumbs()
}

// Params returns the current view parameters
func (s *Session) Params() models.ViewParams {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view.Params()
}

// Item returns one item by id
func (s *Session) Item(id string) (models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Get(id)
}

// Selected returns the selected ids in collection order
func (s *Session) Selected() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Selected()
}

// Teams lists the teams the session can switch to
func (s *Session) Teams() []models.Team {
	if s.teams == nil {
		return []models.Team{}
	}
	return s.teams.Teams()
}

// ---- view ----

// SelectTeam switches to a team space, or to personal space when teamID is nil
func (s *Session) SelectTeam(ctx context.Context, teamID *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.engine.batch()()

	scope, err := s.resolveScope(teamID)
	if err != nil {
		return err
	}
	return s.view.SetScope(scope)
}

func (s *Session) resolveScope(teamID *string) (models.Scope, error) {
	if teamID == nil {
		return models.PersonalScope(), nil
	}
	if s.teams == nil {
		return models.Scope{}, domain.NewNotFound("team", *teamID)
	}
	if _, err := s.teams.Team(*teamID); err != nil {
		return models.Scope{}, err
	}
	return models.TeamScope(*teamID), nil
}

// NavigateTo opens a folder of the active scope; nil returns to the scope root
func (s *Session) NavigateTo(ctx context.Context, folderID *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.engine.batch()()

	if err := s.checkFolder(folderID, s.view.Params().Scope); err != nil {
		return err
	}
	s.view.NavigateTo(folderID)
	return nil
}

func (s *Session) checkFolder(folderID *string, scope models.Scope) error {
	if folderID == nil {
		return nil
	}
	folder, err := s.store.Get(*folderID)
	if err != nil {
		return domain.NewNotFound("folder", *folderID)
	}
	if !folder.IsFolder() {
		return domain.NewValidation("item %q is not a folder", *folderID)
	}
	if !scope.Contains(&folder) {
		return domain.NewValidation("folder %q is not in %s", *folderID, scope)
	}
	return nil
}

// SetSearch filters the visible list by name
func (s *Session) SetSearch(ctx context.Context, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view.SetSearch(text)
}

// ToggleSort flips the direction of the active key or switches keys
func (s *Session) ToggleSort(ctx context.Context, key models.SortKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view.ToggleSort(key)
}

// SetSort sets key and direction together
func (s *Session) SetSort(ctx context.Context, key models.SortKey, order models.SortOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view.SetSort(key, order)
}

// SetViewMode switches between grid and list
func (s *Session) SetViewMode(ctx context.Context, mode models.ViewMode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view.SetViewMode(mode)
}

// UpdateView applies several view changes as one snapshot.
// Everything is validated first; on error nothing changes.
func (s *Session) UpdateView(ctx context.Context, upd fmSvc.ViewUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.engine.batch()()

	current := s.view.Params()
	scope := current.Scope
	if upd.SetScope {
		resolved, err := s.resolveScope(upd.TeamID)
		if err != nil {
			return err
		}
		scope = resolved
	}
	if upd.SetFolder {
		if err := s.checkFolder(upd.FolderID, scope); err != nil {
			return err
		}
	}
	if upd.Search != nil {
		if err := validation.Validate(*upd.Search, validation.RuneLength(0, config.MaxSearchLength)); err != nil {
			return domain.NewValidation("search: %v", err)
		}
	}
	key := current.SortKey
	if upd.SortKey != nil {
		key = *upd.SortKey
		if err := validateSortKey(key); err != nil {
			return err
		}
	}
	order := current.SortOrder
	if upd.SortOrder != nil {
		order = *upd.SortOrder
		if err := validateSortOrder(order); err != nil {
			return err
		}
	}
	if upd.ViewMode != nil {
		if err := validateViewMode(*upd.ViewMode); err != nil {
			return err
		}
	}

	if upd.SetScope {
		if err := s.view.SetScope(scope); err != nil {
			return err
		}
	}
	if upd.SetFolder {
		s.view.NavigateTo(upd.FolderID)
	}
	if upd.Search != nil {
		if err := s.view.SetSearch(*upd.Search); err != nil {
			return err
		}
	}
	if err := s.view.SetSort(key, order); err != nil {
		return err
	}
	if upd.ViewMode != nil {
		return s.view.SetViewMode(*upd.ViewMode)
	}
	return nil
}

// ---- items ----

// CreateFolder adds "New Folder" to the active folder of the active scope
func (s *Session) CreateFolder(ctx context.Context) (models.Item, error) {
	return s.CreateItem(ctx, &fmSvc.CreateItemRequest{Kind: models.KindFolder})
}

// CreateItem adds an item to the active scope. Without a parent it goes into the active folder.
// req is not modified.
func (s *Session) CreateItem(ctx context.Context, req *fmSvc.CreateItemRequest) (models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	params := s.view.Params()
	create := *req
	create.Scope = params.Scope
	if create.ParentID == nil {
		create.ParentID = params.FolderID
	}

	var item models.Item
	err := s.inBatch(func() (err error) {
		item, err = s.store.Create(&create)
		return err
	})
	if err != nil {
		return models.Item{}, err
	}
	s.notify(ctx, models.Event{Type: models.EventItemCreated, Name: item.Name, ItemID: item.ID})
	return item, nil
}

// UpdateItem renames, recolors and/or moves one item in a single change
func (s *Session) UpdateItem(ctx context.Context, id string, patch fmSvc.ItemPatch) (models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.engine.batch()()
	return s.store.Update(id, patch)
}

// DeleteItem removes an item (folders with everything below them)
func (s *Session) DeleteItem(ctx context.Context, id string) ([]models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed []models.Item
	err := s.inBatch(func() (err error) {
		if removed, err = s.store.Delete(id); err != nil {
			return err
		}
		s.leaveRemovedFolder()
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.notify(ctx, models.Event{Type: models.EventItemDeleted, Name: removed[0].Name, ItemID: id})
	return removed, nil
}

// DeleteSelected deletes every selected item
func (s *Session) DeleteSelected(ctx context.Context) (fmSvc.BulkDeleteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.store.Selected()
	if len(ids) == 0 {
		return fmSvc.BulkDeleteResult{}, domain.NewValidation("no items selected")
	}
	var result fmSvc.BulkDeleteResult
	_ = s.inBatch(func() error {
		result = s.store.BulkDelete(ids)
		s.leaveRemovedFolder()
		return nil
	})
	s.notify(ctx, models.Event{Type: models.EventItemsDeleted, Count: len(result.Deleted)})
	return result, nil
}

// inBatch runs fn as one engine batch. The snapshot is recomputed before it
// returns, so events emitted afterwards carry the new revision.
func (s *Session) inBatch(fn func() error) error {
	defer s.engine.batch()()
	return fn()
}

// leaveRemovedFolder returns to the scope root when the active folder is gone.
// Deletes cascade, so a removed ancestor means the active folder is gone too.
func (s *Session) leaveRemovedFolder() {
	folderID := s.view.Params().FolderID
	if folderID == nil {
		return
	}
	if _, err := s.store.Get(*folderID); err != nil {
		s.logger.Debug("active folder deleted, returning to root", "folder_id", *folderID)
		s.view.NavigateTo(nil)
	}
}

// Share requests a share link for one item
func (s *Session) Share(ctx context.Context, id string) error {
	return s.requestFor(ctx, id, models.EventShareRequested)
}

// Download requests a download of one item
func (s *Session) Download(ctx context.Context, id string) error {
	return s.requestFor(ctx, id, models.EventDownloadRequested)
}

// RequestRename asks the presentation layer to start renaming an item
func (s *Session) RequestRename(ctx context.Context, id string) error {
	return s.requestFor(ctx, id, models.EventRenameRequested)
}

func (s *Session) requestFor(ctx context.Context, id string, eventType models.EventType) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.store.Get(id)
	if err != nil {
		return err
	}
	s.notify(ctx, models.Event{Type: eventType, Name: item.Name, ItemID: item.ID})
	return nil
}

// ShareSelected requests share links for the selection
func (s *Session) ShareSelected(ctx context.Context) (int, error) {
	return s.requestForSelection(ctx, models.EventShareRequested)
}

// DownloadSelected requests a download of the selection
func (s *Session) DownloadSelected(ctx context.Context) (int, error) {
	return s.requestForSelection(ctx, models.EventDownloadRequested)
}

func (s *Session) requestForSelection(ctx context.Context, eventType models.EventType) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := len(s.store.Selected())
	if count == 0 {
		return 0, domain.NewValidation("no items selected")
	}
	s.notify(ctx, models.Event{Type: eventType, Count: count})
	return count, nil
}

// RequestUpload asks the presentation layer to start an upload
func (s *Session) RequestUpload(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notify(ctx, models.Event{Type: models.EventUploadRequested})
}

// ---- selection ----

// Click applies the single-click policy. Without multi the clicked item
// ends up as the only selection, or nothing if it was already selected.
// With multi only the clicked item is toggled.
func (s *Session) Click(ctx context.Context, id string, multi bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.store.Get(id); err != nil {
		return err
	}
	wasSelected := s.store.IsSelected(id)
	if multi {
		return s.store.Select(id, !wasSelected)
	}
	if wasSelected {
		return s.store.ReplaceSelection(nil)
	}
	return s.store.ReplaceSelection([]string{id})
}

// Activate applies the double-click policy: folders open in place, files go to the opener
func (s *Session) Activate(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.engine.batch()()

	item, err := s.store.Get(id)
	if err != nil {
		return err
	}
	if item.IsFolder() {
		if err := s.checkFolder(&item.ID, s.view.Params().Scope); err != nil {
			return err
		}
		s.view.NavigateTo(&item.ID)
		return nil
	}

	s.notify(ctx, models.Event{Type: models.EventOpenRequested, Name: item.Name, ItemID: item.ID})
	if s.opener == nil {
		return nil
	}
	if err := s.opener.Open(ctx, item); err != nil {
		return fmt.Errorf("open %q: %w", item.ID, err)
	}
	return nil
}

// SetSelected adds or removes one id
func (s *Session) SetSelected(ctx context.Context, id string, selected bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Select(id, selected)
}

// ReplaceSelection sets the selection to exactly ids
func (s *Session) ReplaceSelection(ctx context.Context, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(ids) > config.MaxBulkItems {
		return domain.NewValidation("at most %d ids per selection", config.MaxBulkItems)
	}
	return s.store.ReplaceSelection(ids)
}

// ClearSelection empties the selection
func (s *Session) ClearSelection(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.ClearSelection()
}
