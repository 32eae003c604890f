package auth

import (
	"context"

	"transcriptfolder/internal/domain/models"
	fm "transcriptfolder/internal/domain/models/filemanager"
)

// JWTVerifier defines the interface for JWT token verification.
// This abstraction allows for different JWT verification implementations
// while keeping the middleware agnostic to the verification details.
type JWTVerifier interface {
	// VerifyToken validates a JWT token string and returns the parsed claims.
	// Returns an error if the token is invalid, expired, or has an invalid signature.
	VerifyToken(tokenString string) (*models.ActorClaims, error)

	// Close releases any resources held by the verifier (e.g., HTTP connections for JWKS).
	Close() error
}

// ActorResolver turns the Authorization header of a request into the acting user.
// Returns domain.ErrUnauthorized when no actor can be established.
type ActorResolver interface {
	ResolveActor(ctx context.Context, authorization string) (fm.Actor, error)
}
