package handler

import (
	"context"
	"net/http"

	"github.com/pooke74/LinkForge/pkg/core/domain"
	"github.com/pooke74/LinkForge/pkg/ports"
)

type contextKey string

const userContextKey contextKey = "session_user"

type Middleware struct {
	identity ports.IdentityService
}

func NewMiddleware(identity ports.IdentityService) *Middleware {
	return &Middleware{identity: identity}
}

// RequireSession resolves the session cookie to a user and stores it in
// the request context. A missing or unresolvable session answers 401.
func (m *Middleware) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var token string
		if cookie, err := r.Cookie(SessionCookieName); err == nil {
			token = cookie.Value
		}

		user, err := m.identity.ResolveSession(r.Context(), token)
		if err != nil {
			writeError(w, err)
			return
		}
		if user == nil {
			writeError(w, &domain.AuthError{Message: "you must be logged in"})
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserFromContext returns the session user set by RequireSession.
// Only call it from handlers behind that middleware.
func UserFromContext(ctx context.Context) *domain.User {
	user, _ := ctx.Value(userContextKey).(*domain.User)
	return user
}
