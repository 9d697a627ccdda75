package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/plateful/ordering-service/internal/application/ports"
	"github.com/plateful/ordering-service/internal/pkg/logger"
)

type contextKey string

const sessionContextKey contextKey = "session"

// NewAuthMiddleware resolves the bearer token into a session and stashes it
// in the request context. It never rejects: handlers that need identity
// check Session.Authenticated themselves, public endpoints just ignore it.
func NewAuthMiddleware(sessions ports.SessionStore, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)

			session, err := sessions.GetSession(r.Context(), token)
			if err != nil {
				log.Error("Session lookup failed", "error", err, "path", r.URL.Path)
				session = ports.Session{}
			}

			ctx := context.WithValue(r.Context(), sessionContextKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func SessionFromContext(ctx context.Context) ports.Session {
	session, ok := ctx.Value(sessionContextKey).(ports.Session)
	if !ok {
		return ports.Session{}
	}
	return session
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
