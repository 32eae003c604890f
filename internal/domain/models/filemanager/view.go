package filemanager

// ViewMode selects how the visible list is laid out
type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

// SortKey is the column the visible list is ordered by
type SortKey string

const (
	SortByName     SortKey = "name"
	SortByModified SortKey = "modified"
	SortBySize     SortKey = "size"
	SortByType     SortKey = "type"
)

// SortOrder is the sort direction
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Flip returns the opposite direction
func (o SortOrder) Flip() SortOrder {
	if o == SortAsc {
		return SortDesc
	}
	return SortAsc
}

// ViewParams is the transient UI state the derivations consume
type ViewParams struct {
	Scope     Scope     `json:"scope"`
	FolderID  *string   `json:"folder_id"` // nil = root of the scope
	Search    string    `json:"search"`
	SortKey   SortKey   `json:"sort_by"`
	SortOrder SortOrder `json:"sort_order"`
	ViewMode  ViewMode  `json:"view_mode"`
}

// DefaultViewParams is the state a fresh session starts in
func DefaultViewParams() ViewParams {
	return ViewParams{
		Scope:     PersonalScope(),
		SortKey:   SortByName,
		SortOrder: SortAsc,
		ViewMode:  ViewGrid,
	}
}

// FolderNode is a derived tree node. Rebuilt on every change, never mutated.
type FolderNode struct {
	Item       Item          `json:"item"`
	Children   []*FolderNode `json:"children"`
	IsExpanded bool          `json:"is_expanded"`
}

// Breadcrumb is one step of the path to the active folder.
// The scope-root entry has a nil ID.
type Breadcrumb struct {
	ID   *string `json:"id"`
	Name string  `json:"name"`
}

// Snapshot is the full set of derived outputs for one revision of state
type Snapshot struct {
	Revision        uint64        `json:"revision"`
	Params          ViewParams    `json:"params"`
	Items           []Item        `json:"items"`
	Tree            []*FolderNode `json:"tree"`
	Breadcrumbs     []Breadcrumb  `json:"breadcrumbs"`
	Selected        []string      `json:"selected"`
	TreeError       string        `json:"tree_error,omitempty"`
	BreadcrumbError string        `json:"breadcrumb_error,omitempty"`
}
