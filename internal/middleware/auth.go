package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"transcriptfolder/internal/auth"
	"transcriptfolder/internal/domain"
	"transcriptfolder/internal/httputil"
)

// Authenticate resolves the acting user from the Authorization header and
// stores it in the request context. Paths in public skip resolution.
func Authenticate(resolver auth.ActorResolver, logger *slog.Logger, public ...string) func(http.Handler) http.Handler {
	skip := make(map[string]bool, len(public))
	for _, p := range public {
		skip[p] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if skip[r.URL.Path] || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			actor, err := resolver.ResolveActor(r.Context(), r.Header.Get("Authorization"))
			if err != nil {
				var unauthorized *domain.UnauthorizedError
				detail := "unauthorized"
				if errors.As(err, &unauthorized) {
					detail = unauthorized.Message
				}
				logger.Warn("request rejected",
					"method", r.Method,
					"path", r.URL.Path,
					"reason", detail,
					"remote_addr", r.RemoteAddr,
				)
				httputil.RespondError(w, http.StatusUnauthorized, detail)
				return
			}

			next.ServeHTTP(w, httputil.WithActor(r, actor))
		})
	}
}
