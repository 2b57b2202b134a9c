package handler

import (
	"context"
	"net/http"

	"boardroom/internal/app/session"
	"boardroom/internal/app/user"
	"boardroom/internal/pkg/auth/jwt"
	"boardroom/internal/pkg/errs"
	"boardroom/internal/pkg/resp"
)

type contextKey string

const userContextKey contextKey = "currentUser"

// RequireAuth authenticates the bearer access token and stores the identity in the request context.
func RequireAuth(sessions *session.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := jwt.BearerToken(r)
			if !ok {
				unauthorized(w, r)
				return
			}

			u, err := sessions.Authenticate(r.Context(), token)
			if err != nil {
				unauthorized(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, u)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole rejects authenticated callers whose role is not in allowed. It must run after RequireAuth.
func RequireRole(allowed ...user.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				unauthorized(w, r)
				return
			}

			if err := session.Authorize(u, allowed...); err != nil {
				resp.RespondError(w, r, errs.NewError(errs.ErrForbidden))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// CurrentUser returns the identity stored by RequireAuth.
func CurrentUser(r *http.Request) (user.User, bool) {
	u, ok := r.Context().Value(userContextKey).(user.User)
	return u, ok
}

func unauthorized(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	resp.RespondError(w, r, errs.NewError(errs.ErrUnauthenticated))
}
