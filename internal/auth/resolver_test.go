package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"math/big"
	"testing"
	"time"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transcriptfolder/internal/domain"
	"transcriptfolder/internal/domain/models"
	fm "transcriptfolder/internal/domain/models/filemanager"
)

const testKID = "test-key"

func newTestVerifier(t *testing.T) (*JWKSVerifier, *rsa.PrivateKey) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	jwks := map[string]any{
		"keys": []map[string]string{{
			"kty": "RSA",
			"kid": testKID,
			"alg": "RS256",
			"use": "sig",
			"n":   base64.RawURLEncoding.EncodeToString(key.N.Bytes()),
			"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.E)).Bytes()),
		}},
	}
	raw, err := json.Marshal(jwks)
	require.NoError(t, err)

	kf, err := keyfunc.NewJWKSetJSON(raw)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewJWTVerifierFromKeyfunc(kf, logger), key
}

func sign(t *testing.T, key *rsa.PrivateKey, claims *models.ActorClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = testKID
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func validClaims(sub string) *models.ActorClaims {
	return &models.ActorClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		Email: sub + "@example.com",
	}
}

func TestJWKSVerifier(t *testing.T) {
	v, key := newTestVerifier(t)

	claims, err := v.VerifyToken(sign(t, key, validClaims("user2")))
	require.NoError(t, err)
	assert.Equal(t, "user2", claims.GetUserID())
	assert.Equal(t, "user2@example.com", claims.DisplayName())

	expired := validClaims("user2")
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	_, err = v.VerifyToken(sign(t, key, expired))
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = v.VerifyToken(sign(t, key, validClaims("")))
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	hs := jwt.NewWithClaims(jwt.SigningMethodHS256, validClaims("user2"))
	hs.Header["kid"] = testKID
	forged, err := hs.SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = v.VerifyToken(forged)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	assert.NoError(t, v.Close())
}

func TestBearerResolver(t *testing.T) {
	v, key := newTestVerifier(t)
	names := func(id string) (string, bool) {
		if id == "user2" {
			return "Alice Chen", true
		}
		return "", false
	}
	r := NewBearerResolver(v, names)
	ctx := context.Background()

	actor, err := r.ResolveActor(ctx, "Bearer "+sign(t, key, validClaims("user2")))
	require.NoError(t, err)
	assert.Equal(t, fm.Actor{ID: "user2", Name: "Alice Chen"}, actor)

	actor, err = r.ResolveActor(ctx, "bearer "+sign(t, key, validClaims("user9")))
	require.NoError(t, err)
	assert.Equal(t, "user9@example.com", actor.Name)

	for _, header := range []string{"", "Bearer", "Basic abc", "Bearer not.a.jwt"} {
		_, err := r.ResolveActor(ctx, header)
		assert.ErrorIs(t, err, domain.ErrUnauthorized, header)
	}
}

func TestStaticResolver(t *testing.T) {
	want := fm.Actor{ID: "user1", Name: "Current User"}
	got, err := StaticResolver{Actor: want}.ResolveActor(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
