package handler

import "net/http"

// RegisterRoutes mounts the file manager API on mux
func RegisterRoutes(mux *http.ServeMux, h *FileManagerHandler, events *EventsHandler) {
	mux.HandleFunc("GET /health", h.HealthCheck)

	mux.HandleFunc("GET /api/teams", h.ListTeams)

	// View
	mux.HandleFunc("GET /api/view", h.GetView)
	mux.HandleFunc("PATCH /api/view", h.UpdateView)
	mux.HandleFunc("GET /api/view/items", h.GetVisibleItems)
	mux.HandleFunc("GET /api/view/tree", h.GetTree)
	mux.HandleFunc("GET /api/view/breadcrumbs", h.GetBreadcrumbs)
	mux.HandleFunc("POST /api/view/sort", h.ToggleSort)

	// Items
	mux.HandleFunc("POST /api/items", h.CreateItem)
	mux.HandleFunc("GET /api/items/{id}", h.GetItem)
	mux.HandleFunc("PATCH /api/items/{id}", h.UpdateItem)
	mux.HandleFunc("DELETE /api/items/{id}", h.DeleteItem)
	mux.HandleFunc("POST /api/items/{id}/click", h.ClickItem)
	mux.HandleFunc("POST /api/items/{id}/activate", h.ActivateItem)
	mux.HandleFunc("POST /api/items/{id}/share", h.ShareItem)
	mux.HandleFunc("POST /api/items/{id}/download", h.DownloadItem)
	mux.HandleFunc("POST /api/items/{id}/rename", h.RenameItem)
	mux.HandleFunc("POST /api/uploads", h.RequestUpload)

	// Selection
	mux.HandleFunc("GET /api/selection", h.GetSelection)
	mux.HandleFunc("PUT /api/selection", h.ReplaceSelection)
	mux.HandleFunc("DELETE /api/selection", h.ClearSelection)
	mux.HandleFunc("PUT /api/selection/{id}", h.SetSelected)
	mux.HandleFunc("POST /api/selection/delete", h.DeleteSelection)
	mux.HandleFunc("POST /api/selection/share", h.ShareSelection)
	mux.HandleFunc("POST /api/selection/download", h.DownloadSelection)

	if events != nil {
		mux.HandleFunc("GET /api/events", events.Stream)
	}
}
