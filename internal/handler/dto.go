package handler

import (
	"time"

	fm "transcriptfolder/internal/domain/models/filemanager"
	"transcriptfolder/internal/httputil"
	"transcriptfolder/internal/utils"
)

// ItemResponse is an item with its display labels
type ItemResponse struct {
	fm.Item
	SizeLabel     string `json:"size_label,omitempty"`
	ModifiedLabel string `json:"modified_label"`
	Selected      bool   `json:"selected"`
}

func newItemResponse(item fm.Item, selected map[string]bool, now time.Time) ItemResponse {
	resp := ItemResponse{
		Item:          item,
		ModifiedLabel: utils.FormatDate(item.ModifiedAt, now),
		Selected:      selected[item.ID],
	}
	if item.Size != nil {
		resp.SizeLabel = utils.FormatFileSize(*item.Size)
	}
	return resp
}

func newItemList(items []fm.Item, selectedIDs []string, now time.Time) []ItemResponse {
	selected := make(map[string]bool, len(selectedIDs))
	for _, id := range selectedIDs {
		selected[id] = true
	}
	out := make([]ItemResponse, len(items))
	for i, item := range items {
		out[i] = newItemResponse(item, selected, now)
	}
	return out
}

// ViewResponse is the full derived state for one revision
type ViewResponse struct {
	Revision        uint64           `json:"revision"`
	Params          fm.ViewParams    `json:"params"`
	Items           []ItemResponse   `json:"items"`
	Tree            []*fm.FolderNode `json:"tree"`
	Breadcrumbs     []fm.Breadcrumb  `json:"breadcrumbs"`
	Selected        []string         `json:"selected"`
	TreeError       string           `json:"tree_error,omitempty"`
	BreadcrumbError string           `json:"breadcrumb_error,omitempty"`
}

func newViewResponse(snap fm.Snapshot, now time.Time) ViewResponse {
	return ViewResponse{
		Revision:        snap.Revision,
		Params:          snap.Params,
		Items:           newItemList(snap.Items, snap.Selected, now),
		Tree:            snap.Tree,
		Breadcrumbs:     snap.Breadcrumbs,
		Selected:        snap.Selected,
		TreeError:       snap.TreeError,
		BreadcrumbError: snap.BreadcrumbError,
	}
}

// UpdateViewRequest is the body of PATCH /api/view. Absent fields are left alone;
// team_id null switches to personal space, folder_id null returns to the root.
type UpdateViewRequest struct {
	TeamID    httputil.OptionalString `json:"team_id"`
	FolderID  httputil.OptionalString `json:"folder_id"`
	Search    *string                 `json:"search"`
	SortBy    *fm.SortKey             `json:"sort_by"`
	SortOrder *fm.SortOrder           `json:"sort_order"`
	ViewMode  *fm.ViewMode            `json:"view_mode"`
}

// ToggleSortRequest is the body of POST /api/view/sort
type ToggleSortRequest struct {
	SortBy fm.SortKey `json:"sort_by"`
}

// UpdateItemRequest is the body of PATCH /api/items/{id}
type UpdateItemRequest struct {
	Name     *string                 `json:"name"`
	Color    *fm.Color               `json:"color"`
	ParentID httputil.OptionalString `json:"parent_id"`
}

// ClickRequest is the body of POST /api/items/{id}/click
type ClickRequest struct {
	Multi bool `json:"multi"`
}

// ReplaceSelectionRequest is the body of PUT /api/selection
type ReplaceSelectionRequest struct {
	IDs []string `json:"ids"`
}

// SetSelectedRequest is the body of PUT /api/selection/{id}
type SetSelectedRequest struct {
	Selected bool `json:"selected"`
}
