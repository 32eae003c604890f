package filemanager

import (
	models "transcriptfolder/internal/domain/models/filemanager"
)

// CreateItemRequest describes a new item. Zero values are filled with defaults:
// kind folder, name "New Folder", color blue for folders.
type CreateItemRequest struct {
	Name        string              `json:"name"`
	Kind        models.ItemKind     `json:"type"`
	Size        *int64              `json:"size,omitempty"`
	Color       models.Color        `json:"color,omitempty"`
	ParentID    *string             `json:"parent_id,omitempty"` // nil = root of Scope
	Scope       models.Scope        `json:"-"`
	IsShared    bool                `json:"is_shared"`
	Permissions []models.Permission `json:"permissions,omitempty"`
}

// BulkDeleteResult is the per-item outcome of a best-effort bulk delete
type BulkDeleteResult struct {
	Deleted []string `json:"deleted"` // requested ids that are gone after the call
	Skipped []string `json:"skipped"` // requested ids that did not exist
	Removed int      `json:"removed"` // total items removed, cascaded descendants included
}

// ChangeKind says what a store or controller change touched
type ChangeKind string

const (
	ChangeItems     ChangeKind = "items"
	ChangeSelection ChangeKind = "selection"
	ChangeView      ChangeKind = "view"
	ChangeReload    ChangeKind = "reload"
)

// Change is delivered synchronously to subscribers after every mutation
type Change struct {
	Kind     ChangeKind
	Revision uint64
}

// ItemPatch changes several attributes of one item at once.
// Nil fields are left alone. MoveTo is applied only when Move is set,
// so a nil MoveTo can mean "move to the scope root".
type ItemPatch struct {
	Name   *string
	Color  *models.Color
	Move   bool
	MoveTo *string
}

// ViewUpdate changes several view parameters at once. Nil fields are left alone.
// Scope and folder follow the same Set/value pattern as ItemPatch.Move.
type ViewUpdate struct {
	SetScope  bool
	TeamID    *string // nil = personal
	SetFolder bool
	FolderID  *string // nil = scope root
	Search    *string
	SortKey   *models.SortKey
	SortOrder *models.SortOrder
	ViewMode  *models.ViewMode
}
