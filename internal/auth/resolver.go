package auth

import (
	"context"
	"strings"

	"transcriptfolder/internal/domain"
	fm "transcriptfolder/internal/domain/models/filemanager"
)

// StaticResolver treats every request as the same actor. Used in development
// when no JWKS endpoint is configured.
type StaticResolver struct {
	Actor fm.Actor
}

// ResolveActor implements ActorResolver
func (s StaticResolver) ResolveActor(context.Context, string) (fm.Actor, error) {
	return s.Actor, nil
}

// NameLookup maps a user id to a display name, e.g. from the seed dataset
type NameLookup func(userID string) (string, bool)

// BearerResolver verifies "Bearer <jwt>" headers
type BearerResolver struct {
	verifier JWTVerifier
	names    NameLookup
}

// NewBearerResolver creates a resolver over a verifier. names may be nil.
func NewBearerResolver(verifier JWTVerifier, names NameLookup) *BearerResolver {
	return &BearerResolver{verifier: verifier, names: names}
}

// ResolveActor implements ActorResolver
func (b *BearerResolver) ResolveActor(_ context.Context, authorization string) (fm.Actor, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(authorization), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return fm.Actor{}, &domain.UnauthorizedError{Message: "missing bearer token"}
	}

	claims, err := b.verifier.VerifyToken(strings.TrimSpace(token))
	if err != nil {
		return fm.Actor{}, &domain.UnauthorizedError{Message: "invalid token"}
	}

	actor := fm.Actor{ID: claims.GetUserID(), Name: claims.DisplayName()}
	if b.names != nil {
		if name, found := b.names(actor.ID); found {
			actor.Name = name
		}
	}
	return actor, nil
}
