package httputil

import (
	"context"
	"net/http"

	fm "transcriptfolder/internal/domain/models/filemanager"
)

// Context key type to avoid collisions
type contextKey string

const (
	actorKey contextKey = "actor"
)

// WithActor adds the acting user to the request context
func WithActor(r *http.Request, actor fm.Actor) *http.Request {
	ctx := context.WithValue(r.Context(), actorKey, actor)
	return r.WithContext(ctx)
}

// GetActor retrieves the actor from context; ok is false if none was set
func GetActor(r *http.Request) (fm.Actor, bool) {
	actor, ok := r.Context().Value(actorKey).(fm.Actor)
	return actor, ok
}

// GetUserID retrieves the actor id from context, returns empty string if not found
func GetUserID(r *http.Request) string {
	actor, _ := GetActor(r)
	return actor.ID
}
