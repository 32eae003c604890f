package filemanager

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"transcriptfolder/internal/config"
	"transcriptfolder/internal/domain"
	models "transcriptfolder/internal/domain/models/filemanager"
	fmSvc "transcriptfolder/internal/domain/services/filemanager"
)

// ViewController holds the transient view parameters. Pure state transitions:
// no I/O, no knowledge of the collection.
type ViewController struct {
	params    models.ViewParams
	revision  uint64
	listeners observers[fmSvc.Change]
}

// NewViewController starts at the personal root, sorted by name ascending, grid view
func NewViewController() *ViewController {
	return &ViewController{params: models.DefaultViewParams()}
}

// Subscribe registers a listener called after every parameter change
func (c *ViewController) Subscribe(fn func(fmSvc.Change)) func() {
	return c.listeners.add(fn)
}

func (c *ViewController) changed() {
	c.revision++
	c.listeners.notify(fmSvc.Change{Kind: fmSvc.ChangeView, Revision: c.revision})
}

// Params returns a copy of the current parameters
func (c *ViewController) Params() models.ViewParams {
	p := c.params
	p.Scope = models.Scope{TeamID: clonePtr(c.params.Scope.TeamID)}
	p.FolderID = clonePtr(c.params.FolderID)
	return p
}

// SetScope switches between personal and team space and returns to its root
func (c *ViewController) SetScope(scope models.Scope) error {
	if err := validateScope(scope); err != nil {
		return err
	}
	if c.params.Scope.Equal(scope) && c.params.FolderID == nil {
		return nil
	}
	c.params.Scope = models.Scope{TeamID: clonePtr(scope.TeamID)}
	c.params.FolderID = nil
	c.changed()
	return nil
}

// NavigateTo sets the active folder; nil is the scope root
func (c *ViewController) NavigateTo(folderID *string) {
	if equalPtr(c.params.FolderID, folderID) {
		return
	}
	c.params.FolderID = clonePtr(folderID)
	c.changed()
}

// SetSearch sets the search text
func (c *ViewController) SetSearch(text string) error {
	if err := validation.Validate(text, validation.RuneLength(0, config.MaxSearchLength)); err != nil {
		return domain.NewValidation("search: %v", err)
	}
	if c.params.Search == text {
		return nil
	}
	c.params.Search = text
	c.changed()
	return nil
}

// ToggleSort flips the direction when key is already active,
// otherwise switches to key ascending
func (c *ViewController) ToggleSort(key models.SortKey) error {
	if err := validateSortKey(key); err != nil {
		return err
	}
	if c.params.SortKey == key {
		c.params.SortOrder = c.params.SortOrder.Flip()
	} else {
		c.params.SortKey = key
		c.params.SortOrder = models.SortAsc
	}
	c.changed()
	return nil
}

// SetSort sets key and direction together
func (c *ViewController) SetSort(key models.SortKey, order models.SortOrder) error {
	if err := validateSortKey(key); err != nil {
		return err
	}
	if err := validateSortOrder(order); err != nil {
		return err
	}
	if c.params.SortKey == key && c.params.SortOrder == order {
		return nil
	}
	c.params.SortKey = key
	c.params.SortOrder = order
	c.changed()
	return nil
}

// SetViewMode switches between grid and list
func (c *ViewController) SetViewMode(mode models.ViewMode) error {
	if err := validateViewMode(mode); err != nil {
		return err
	}
	if c.params.ViewMode == mode {
		return nil
	}
	c.params.ViewMode = mode
	c.changed()
	return nil
}

func validateSortKey(key models.SortKey) error {
	err := validation.Validate(key, validation.Required,
		validation.In(models.SortByName, models.SortByModified, models.SortBySize, models.SortByType))
	if err != nil {
		return domain.NewValidation("sort_by: %v", err)
	}
	return nil
}

func validateSortOrder(order models.SortOrder) error {
	if err := validation.Validate(order, validation.Required, validation.In(models.SortAsc, models.SortDesc)); err != nil {
		return domain.NewValidation("sort_order: %v", err)
	}
	return nil
}

func validateViewMode(mode models.ViewMode) error {
	if err := validation.Validate(mode, validation.Required, validation.In(models.ViewGrid, models.ViewList)); err != nil {
		return domain.NewValidation("view_mode: %v", err)
	}
	return nil
}

func clonePtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func equalPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
