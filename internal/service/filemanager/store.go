package filemanager

import (
	"log/slog"
	"slices"
	"strings"

	"transcriptfolder/internal/config"
	"transcriptfolder/internal/domain"
	models "transcriptfolder/internal/domain/models/filemanager"
	fmSvc "transcriptfolder/internal/domain/services/filemanager"
)

// Store owns the item collection and the selection set.
// Every mutation is all-or-nothing and ends with exactly one synchronous
// change notification, so listeners never see a half-applied state.
// Store is not safe for concurrent use; Session serialises access.
type Store struct {
	items    map[string]*models.Item
	order    []string // collection order; ties in derived views follow it
	selected map[string]struct{}

	ids    fmSvc.IDGenerator
	clock  fmSvc.Clock
	actor  fmSvc.ActorProvider
	logger *slog.Logger

	revision  uint64
	listeners observers[fmSvc.Change]
}

// NewStore creates an empty store
func NewStore(
	ids fmSvc.IDGenerator,
	clock fmSvc.Clock,
	actor fmSvc.ActorProvider,
	logger *slog.Logger,
) *Store {
	return &Store{
		items:    make(map[string]*models.Item),
		selected: make(map[string]struct{}),
		ids:      ids,
		clock:    clock,
		actor:    actor,
		logger:   logger,
	}
}

// Subscribe registers a listener called after every change. Returns an unsubscribe func.
func (s *Store) Subscribe(fn func(fmSvc.Change)) func() {
	return s.listeners.add(fn)
}

func (s *Store) changed(kind fmSvc.ChangeKind) {
	s.revision++
	s.listeners.notify(fmSvc.Change{Kind: kind, Revision: s.revision})
}

// Revision increases by one on every change
func (s *Store) Revision() uint64 {
	return s.revision
}

// Len returns the number of items
func (s *Store) Len() int {
	return len(s.order)
}

// Items returns copies of all items in collection order
func (s *Store) Items() []models.Item {
	out := make([]models.Item, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.items[id].Clone())
	}
	return out
}

// Get returns a copy of one item
func (s *Store) Get(id string) (models.Item, error) {
	item, ok := s.items[id]
	if !ok {
		return models.Item{}, domain.NewNotFound("item", id)
	}
	return item.Clone(), nil
}

// Load replaces the whole collection with a validated set and clears the selection.
// Every invariant is checked before anything is replaced.
func (s *Store) Load(items []models.Item) error {
	next := make(map[string]*models.Item, len(items))
	order := make([]string, 0, len(items))
	for i := range items {
		item := items[i].Clone()
		if err := validateItem(&item); err != nil {
			return err
		}
		if _, dup := next[item.ID]; dup {
			return domain.NewValidation("duplicate item id %q", item.ID)
		}
		next[item.ID] = &item
		order = append(order, item.ID)
	}

	for _, id := range order {
		item := next[id]
		if err := checkParent(next, item.ParentID, item.Scope()); err != nil {
			return err
		}
		if err := checkAcyclic(next, item.ID, item.ParentID); err != nil {
			return err
		}
	}

	s.items = next
	s.order = order
	s.selected = make(map[string]struct{})
	s.changed(fmSvc.ChangeReload)

	s.logger.Debug("collection loaded", "item_count", len(order))
	return nil
}

// Create inserts a new item with a fresh id, the current time and the current actor.
func (s *Store) Create(req *fmSvc.CreateItemRequest) (item models.Item, err error) {
	defer func() { observeMutation("create", err) }()

	if err := validateScope(req.Scope); err != nil {
		return models.Item{}, err
	}

	kind := req.Kind
	if kind == "" {
		kind = models.KindFolder
	}
	name := strings.TrimSpace(req.Name)
	if name == "" && kind == models.KindFolder {
		name = config.DefaultFolderName
	}
	color := req.Color
	if color == "" && kind == models.KindFolder {
		color = models.ColorBlue
	}

	actor := s.actor.CurrentActor()
	item = models.Item{
		ID:           s.ids.NewID(),
		Name:         name,
		Kind:         kind,
		Size:         req.Size,
		ModifiedAt:   s.clock.Now(),
		ModifiedBy:   actor.Name,
		Color:        color,
		ParentID:     req.ParentID,
		IsShared:     req.IsShared,
		Permissions:  req.Permissions,
		OwnerID:      actor.ID,
		IsTeamScoped: !req.Scope.IsPersonal(),
		TeamID:       req.Scope.TeamID,
	}
	if item.Permissions == nil {
		item.Permissions = []models.Permission{}
	}
	item = item.Clone()

	if err := validateItem(&item); err != nil {
		return models.Item{}, err
	}
	if _, exists := s.items[item.ID]; exists {
		return models.Item{}, domain.NewValidation("generated id %q already in use", item.ID)
	}
	if err := checkParent(s.items, item.ParentID, item.Scope()); err != nil {
		return models.Item{}, err
	}

	stored := item.Clone()
	s.items[item.ID] = &stored
	s.order = append(s.order, item.ID)
	s.changed(fmSvc.ChangeItems)

	s.logger.Info("item created",
		"id", item.ID,
		"name", item.Name,
		"type", item.Kind,
		"parent_id", item.ParentID,
		"scope", item.Scope().String(),
	)

	return item, nil
}

// Delete removes an item and evicts it from the selection in one change.
// Deleting a folder cascades to all of its descendants.
// Returns the removed items, the requested one first.
func (s *Store) Delete(id string) (removed []models.Item, err error) {
	defer func() { observeMutation("delete", err) }()

	removed, err = s.remove(id)
	if err != nil {
		return nil, err
	}
	s.changed(fmSvc.ChangeItems)

	s.logger.Info("item deleted",
		"id", id,
		"name", removed[0].Name,
		"cascaded", len(removed)-1,
	)
	return removed, nil
}

// BulkDelete deletes each id best-effort. Missing ids are skipped, not fatal.
// One change notification covers the whole batch.
func (s *Store) BulkDelete(ids []string) fmSvc.BulkDeleteResult {
	result := fmSvc.BulkDeleteResult{Deleted: []string{}, Skipped: []string{}}
	seen := make(map[string]bool, len(ids))
	gone := make(map[string]bool)

	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		if gone[id] {
			// removed earlier in this batch as a descendant
			result.Deleted = append(result.Deleted, id)
			continue
		}

		removed, err := s.remove(id)
		if err != nil {
			result.Skipped = append(result.Skipped, id)
			continue
		}
		for _, item := range removed {
			gone[item.ID] = true
		}
		result.Deleted = append(result.Deleted, id)
	}

	result.Removed = len(gone)
	if result.Removed > 0 {
		s.changed(fmSvc.ChangeItems)
	}
	mutationsTotal.WithLabelValues("bulk_delete", "ok").Inc()

	s.logger.Info("items deleted",
		"requested", len(ids),
		"deleted", len(result.Deleted),
		"skipped", len(result.Skipped),
		"removed", result.Removed,
	)
	return result
}

// remove deletes id and its descendants without notifying
func (s *Store) remove(id string) ([]models.Item, error) {
	root, ok := s.items[id]
	if !ok {
		return nil, domain.NewNotFound("item", id)
	}

	doomed := map[string]bool{id: true}
	removed := []models.Item{root.Clone()}
	if root.IsFolder() {
		for _, d := range s.descendants(id) {
			doomed[d.ID] = true
			removed = append(removed, d.Clone())
		}
	}

	for doomedID := range doomed {
		delete(s.items, doomedID)
		delete(s.selected, doomedID)
	}
	s.order = slices.DeleteFunc(s.order, func(existing string) bool {
		return doomed[existing]
	})
	return removed, nil
}

// descendants lists every item below id, breadth first in collection order
func (s *Store) descendants(id string) []*models.Item {
	children := make(map[string][]*models.Item)
	for _, itemID := range s.order {
		item := s.items[itemID]
		if item.ParentID != nil {
			children[*item.ParentID] = append(children[*item.ParentID], item)
		}
	}

	var out []*models.Item
	visited := map[string]bool{id: true}
	queue := []string{id}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, child := range children[current] {
			if visited[child.ID] {
				continue
			}
			visited[child.ID] = true
			out = append(out, child)
			queue = append(queue, child.ID)
		}
	}
	return out
}

// SetColor retags a folder. Files and colors outside the palette are rejected.
func (s *Store) SetColor(id string, color models.Color) (item models.Item, err error) {
	defer func() { observeMutation("set_color", err) }()

	target, ok := s.items[id]
	if !ok {
		return models.Item{}, domain.NewNotFound("item", id)
	}
	if !target.IsFolder() {
		return models.Item{}, domain.NewValidation("item %q is a file; only folders can be colored", id)
	}
	if err := validateColor(color); err != nil {
		return models.Item{}, err
	}

	target.Color = color
	s.touch(target)
	s.changed(fmSvc.ChangeItems)

	s.logger.Debug("folder recolored", "id", id, "color", color)
	return target.Clone(), nil
}

// Rename changes an item's display name
func (s *Store) Rename(id, name string) (item models.Item, err error) {
	defer func() { observeMutation("rename", err) }()

	target, ok := s.items[id]
	if !ok {
		return models.Item{}, domain.NewNotFound("item", id)
	}
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return models.Item{}, err
	}

	target.Name = name
	s.touch(target)
	s.changed(fmSvc.ChangeItems)

	s.logger.Info("item renamed", "id", id, "name", name)
	return target.Clone(), nil
}

// Move reparents an item within its scope. nil moves it to the scope root.
func (s *Store) Move(id string, parentID *string) (item models.Item, err error) {
	defer func() { observeMutation("move", err) }()

	target, ok := s.items[id]
	if !ok {
		return models.Item{}, domain.NewNotFound("item", id)
	}
	if parentID != nil && *parentID == id {
		return models.Item{}, domain.NewValidation("cannot move item %q into itself", id)
	}
	if err := checkParent(s.items, parentID, target.Scope()); err != nil {
		return models.Item{}, err
	}
	if err := checkAcyclic(s.items, id, parentID); err != nil {
		return models.Item{}, err
	}

	if parentID != nil {
		parent := *parentID
		target.ParentID = &parent
	} else {
		target.ParentID = nil
	}
	s.touch(target)
	s.changed(fmSvc.ChangeItems)

	s.logger.Info("item moved", "id", id, "parent_id", parentID)
	return target.Clone(), nil
}

// Update applies a patch as one change. Every field is validated before any is applied.
func (s *Store) Update(id string, patch fmSvc.ItemPatch) (item models.Item, err error) {
	defer func() { observeMutation("update", err) }()

	target, ok := s.items[id]
	if !ok {
		return models.Item{}, domain.NewNotFound("item", id)
	}

	var name string
	if patch.Name != nil {
		name = strings.TrimSpace(*patch.Name)
		if err := validateName(name); err != nil {
			return models.Item{}, err
		}
	}
	if patch.Color != nil {
		if !target.IsFolder() {
			return models.Item{}, domain.NewValidation("item %q is a file; only folders can be colored", id)
		}
		if err := validateColor(*patch.Color); err != nil {
			return models.Item{}, err
		}
	}
	if patch.Move {
		if patch.MoveTo != nil && *patch.MoveTo == id {
			return models.Item{}, domain.NewValidation("cannot move item %q into itself", id)
		}
		if err := checkParent(s.items, patch.MoveTo, target.Scope()); err != nil {
			return models.Item{}, err
		}
		if err := checkAcyclic(s.items, id, patch.MoveTo); err != nil {
			return models.Item{}, err
		}
	}
	if patch.Name == nil && patch.Color == nil && !patch.Move {
		return target.Clone(), nil
	}

	if patch.Name != nil {
		target.Name = name
	}
	if patch.Color != nil {
		target.Color = *patch.Color
	}
	if patch.Move {
		target.ParentID = clonePtr(patch.MoveTo)
	}
	s.touch(target)
	s.changed(fmSvc.ChangeItems)

	s.logger.Info("item updated",
		"id", id,
		"renamed", patch.Name != nil,
		"recolored", patch.Color != nil,
		"moved", patch.Move,
	)
	return target.Clone(), nil
}

func (s *Store) touch(item *models.Item) {
	item.ModifiedAt = s.clock.Now()
	item.ModifiedBy = s.actor.CurrentActor().Name
}

// checkParent validates that parentID names a folder in scope (nil = root)
func checkParent(items map[string]*models.Item, parentID *string, scope models.Scope) error {
	if parentID == nil {
		return nil
	}
	parent, ok := items[*parentID]
	if !ok {
		return domain.NewNotFound("folder", *parentID)
	}
	if !parent.IsFolder() {
		return domain.NewValidation("parent %q is not a folder", *parentID)
	}
	if !scope.Contains(parent) {
		return domain.NewValidation("parent %q belongs to a different scope", *parentID)
	}
	return nil
}

// checkAcyclic rejects a parent link that would make id its own ancestor
func checkAcyclic(items map[string]*models.Item, id string, parentID *string) error {
	current := parentID
	for steps := 0; current != nil; steps++ {
		if *current == id {
			return domain.NewValidation("item %q cannot be placed inside its own descendant", id)
		}
		if steps > len(items) {
			return domain.NewValidation("parent chain of %q loops", id)
		}
		parent, ok := items[*current]
		if !ok {
			return nil
		}
		current = parent.ParentID
	}
	return nil
}

// Select adds or removes one id. Selecting an id that does not exist fails.
func (s *Store) Select(id string, selected bool) error {
	return s.SelectAll([]string{id}, selected)
}

// SelectAll adds or removes many ids at once. All ids are checked before any change.
func (s *Store) SelectAll(ids []string, selected bool) (err error) {
	defer func() { observeMutation("select", err) }()

	if selected {
		for _, id := range ids {
			if _, ok := s.items[id]; !ok {
				return domain.NewNotFound("item", id)
			}
		}
	}

	dirty := false
	for _, id := range ids {
		_, was := s.selected[id]
		switch {
		case selected && !was:
			s.selected[id] = struct{}{}
			dirty = true
		case !selected && was:
			delete(s.selected, id)
			dirty = true
		}
	}
	if dirty {
		s.changed(fmSvc.ChangeSelection)
	}
	return nil
}

// ReplaceSelection sets the selection to exactly ids
func (s *Store) ReplaceSelection(ids []string) (err error) {
	defer func() { observeMutation("select", err) }()

	next := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := s.items[id]; !ok {
			return domain.NewNotFound("item", id)
		}
		next[id] = struct{}{}
	}

	if sameSet(s.selected, next) {
		return nil
	}
	s.selected = next
	s.changed(fmSvc.ChangeSelection)
	return nil
}

// ClearSelection empties the selection
func (s *Store) ClearSelection() {
	if len(s.selected) == 0 {
		return
	}
	s.selected = make(map[string]struct{})
	s.changed(fmSvc.ChangeSelection)
}

// IsSelected reports selection membership
func (s *Store) IsSelected(id string) bool {
	_, ok := s.selected[id]
	return ok
}

// Selected returns the selected ids in collection order
func (s *Store) Selected() []string {
	out := make([]string, 0, len(s.selected))
	for _, id := range s.order {
		if _, ok := s.selected[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

func sameSet(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for id := range a {
		if _, ok := b[id]; !ok {
			return false
		}
	}
	return true
}
