package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"transcriptfolder/internal/domain"
	fm "transcriptfolder/internal/domain/models/filemanager"
	fmSvc "transcriptfolder/internal/domain/services/filemanager"
	"transcriptfolder/internal/httputil"
	"transcriptfolder/internal/service/filemanager"
)

// SessionProvider hands out the calling actor's session
type SessionProvider interface {
	Session(actor fm.Actor) (*filemanager.Session, error)
}

type (
	sessionItemAction      func(*filemanager.Session, context.Context, string) error
	sessionSelectionAction func(*filemanager.Session, context.Context) (int, error)
)

// FileManagerHandler serves the file manager view and its gestures
type FileManagerHandler struct {
	sessions SessionProvider
	now      func() time.Time
	logger   *slog.Logger
}

// NewFileManagerHandler creates a new file manager handler
func NewFileManagerHandler(sessions SessionProvider, logger *slog.Logger) *FileManagerHandler {
	return &FileManagerHandler{
		sessions: sessions,
		now:      time.Now,
		logger:   logger,
	}
}

// session resolves the caller's session, writing the error response on failure
func (h *FileManagerHandler) session(w http.ResponseWriter, r *http.Request) (*filemanager.Session, bool) {
	actor, ok := httputil.GetActor(r)
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "no actor on request")
		return nil, false
	}
	s, err := h.sessions.Session(actor)
	if err != nil {
		handleError(w, h.logger, err)
		return nil, false
	}
	return s, true
}

// parseOptionalJSON decodes a body that may be empty
func parseOptionalJSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	if err := httputil.ParseJSON(w, r, dest); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return bodyError(err)
	}
	return nil
}

// bodyError keeps oversized bodies distinguishable; every other decode failure is a validation error
func bodyError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return err
	}
	return domain.NewValidation("%v", err)
}

func (h *FileManagerHandler) parseJSON(w http.ResponseWriter, r *http.Request, dest interface{}) bool {
	if err := httputil.ParseJSON(w, r, dest); err != nil {
		handleError(w, h.logger, bodyError(err))
		return false
	}
	return true
}

// HealthCheck reports liveness
// GET /health
func (h *FileManagerHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   h.now().UTC().Format(time.RFC3339),
	})
}

// ListTeams lists the team spaces
// GET /api/teams
func (h *FileManagerHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"teams": s.Teams()})
}

// GetView returns the whole derived state
// GET /api/view
func (h *FileManagerHandler) GetView(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	httputil.RespondJSON(w, http.StatusOK, newViewResponse(s.Snapshot(), h.now()))
}

// GetVisibleItems returns the filtered, sorted list of the active folder
// GET /api/view/items
func (h *FileManagerHandler) GetVisibleItems(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	snap := s.Snapshot()
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"revision": snap.Revision,
		"items":    newItemList(snap.Items, snap.Selected, h.now()),
	})
}

// GetTree returns the folder tree of the active scope
// GET /api/view/tree
func (h *FileManagerHandler) GetTree(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	tree, err := s.FolderTree()
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"tree": tree})
}

// GetBreadcrumbs returns the path to the active folder
// GET /api/view/breadcrumbs
func (h *FileManagerHandler) GetBreadcrumbs(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	crumbs, err := s.Breadcrumbs()
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"breadcrumbs": crumbs})
}

// UpdateView changes scope, folder, search, sort and layout in one step
// PATCH /api/view
func (h *FileManagerHandler) UpdateView(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req UpdateViewRequest
	if !h.parseJSON(w, r, &req) {
		return
	}

	err := s.UpdateView(r.Context(), fmSvc.ViewUpdate{
		SetScope:  req.TeamID.Present,
		TeamID:    req.TeamID.Value,
		SetFolder: req.FolderID.Present,
		FolderID:  req.FolderID.Value,
		Search:    req.Search,
		SortKey:   req.SortBy,
		SortOrder: req.SortOrder,
		ViewMode:  req.ViewMode,
	})
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, newViewResponse(s.Snapshot(), h.now()))
}

// ToggleSort clicks a column header
// POST /api/view/sort
func (h *FileManagerHandler) ToggleSort(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req ToggleSortRequest
	if !h.parseJSON(w, r, &req) {
		return
	}
	if err := s.ToggleSort(r.Context(), req.SortBy); err != nil {
		handleError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, s.Params())
}

// CreateItem creates an item in the active scope (a "New Folder" for an empty body)
// POST /api/items
func (h *FileManagerHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req fmSvc.CreateItemRequest
	if err := parseOptionalJSON(w, r, &req); err != nil {
		handleError(w, h.logger, err)
		return
	}

	item, err := s.CreateItem(r.Context(), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	h.logger.Info("item created", "id", item.ID, "actor_id", s.Actor().ID)
	httputil.RespondJSON(w, http.StatusCreated, newItemResponse(item, nil, h.now()))
}

// GetItem returns one item
// GET /api/items/{id}
func (h *FileManagerHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")
	item, err := s.Item(id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	selected := map[string]bool{}
	for _, sel := range s.Selected() {
		selected[sel] = true
	}
	httputil.RespondJSON(w, http.StatusOK, newItemResponse(item, selected, h.now()))
}

// UpdateItem renames, recolors or moves an item
// PATCH /api/items/{id}
func (h *FileManagerHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req UpdateItemRequest
	if !h.parseJSON(w, r, &req) {
		return
	}

	item, err := s.UpdateItem(r.Context(), r.PathValue("id"), fmSvc.ItemPatch{
		Name:   req.Name,
		Color:  req.Color,
		Move:   req.ParentID.Present,
		MoveTo: req.ParentID.Value,
	})
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, newItemResponse(item, nil, h.now()))
}

// DeleteItem deletes an item and, for folders, everything below it
// DELETE /api/items/{id}
func (h *FileManagerHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	removed, err := s.DeleteItem(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	ids := make([]string, len(removed))
	for i, item := range removed {
		ids[i] = item.ID
	}
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"removed": ids})
}

// ClickItem applies the single-click selection policy
// POST /api/items/{id}/click
func (h *FileManagerHandler) ClickItem(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req ClickRequest
	if err := parseOptionalJSON(w, r, &req); err != nil {
		handleError(w, h.logger, err)
		return
	}
	if err := s.Click(r.Context(), r.PathValue("id"), req.Multi); err != nil {
		handleError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"selected": s.Selected()})
}

// ActivateItem applies the double-click policy
// POST /api/items/{id}/activate
func (h *FileManagerHandler) ActivateItem(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := s.Activate(r.Context(), r.PathValue("id")); err != nil {
		handleError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, newViewResponse(s.Snapshot(), h.now()))
}

// ShareItem requests a share link
// POST /api/items/{id}/share
func (h *FileManagerHandler) ShareItem(w http.ResponseWriter, r *http.Request) {
	h.itemRequest(w, r, (*filemanager.Session).Share)
}

// DownloadItem requests a download
// POST /api/items/{id}/download
func (h *FileManagerHandler) DownloadItem(w http.ResponseWriter, r *http.Request) {
	h.itemRequest(w, r, (*filemanager.Session).Download)
}

// RenameItem asks the client to open its rename dialog
// POST /api/items/{id}/rename
func (h *FileManagerHandler) RenameItem(w http.ResponseWriter, r *http.Request) {
	h.itemRequest(w, r, (*filemanager.Session).RequestRename)
}

func (h *FileManagerHandler) itemRequest(w http.ResponseWriter, r *http.Request, action sessionItemAction) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")
	if err := action(s, r.Context(), id); err != nil {
		handleError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusAccepted, map[string]interface{}{"status": "requested", "item_id": id})
}

// GetSelection returns the selected ids
// GET /api/selection
func (h *FileManagerHandler) GetSelection(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"selected": s.Selected()})
}

// ReplaceSelection sets the selection to exactly the given ids
// PUT /api/selection
func (h *FileManagerHandler) ReplaceSelection(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req ReplaceSelectionRequest
	if !h.parseJSON(w, r, &req) {
		return
	}
	if err := s.ReplaceSelection(r.Context(), req.IDs); err != nil {
		handleError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"selected": s.Selected()})
}

// SetSelected adds or removes one id
// PUT /api/selection/{id}
func (h *FileManagerHandler) SetSelected(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req SetSelectedRequest
	if !h.parseJSON(w, r, &req) {
		return
	}
	if err := s.SetSelected(r.Context(), r.PathValue("id"), req.Selected); err != nil {
		handleError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"selected": s.Selected()})
}

// ClearSelection empties the selection
// DELETE /api/selection
func (h *FileManagerHandler) ClearSelection(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	s.ClearSelection(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// DeleteSelection deletes every selected item, reporting per-item outcomes
// POST /api/selection/delete
func (h *FileManagerHandler) DeleteSelection(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	result, err := s.DeleteSelected(r.Context())
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, result)
}

// ShareSelection requests share links for the selection
// POST /api/selection/share
func (h *FileManagerHandler) ShareSelection(w http.ResponseWriter, r *http.Request) {
	h.selectionRequest(w, r, (*filemanager.Session).ShareSelected)
}

// DownloadSelection requests a download of the selection
// POST /api/selection/download
func (h *FileManagerHandler) DownloadSelection(w http.ResponseWriter, r *http.Request) {
	h.selectionRequest(w, r, (*filemanager.Session).DownloadSelected)
}

func (h *FileManagerHandler) selectionRequest(w http.ResponseWriter, r *http.Request, action sessionSelectionAction) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	count, err := action(s, r.Context())
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	httputil.RespondJSON(w, http.StatusAccepted, map[string]interface{}{"status": "requested", "count": count})
}

// RequestUpload asks the client to open its upload dialog
// POST /api/uploads
func (h *FileManagerHandler) RequestUpload(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	s.RequestUpload(r.Context())
	httputil.RespondJSON(w, http.StatusAccepted, map[string]string{"status": "requested"})
}
