/*
Package handler provides the HTTP handlers and routing setup for the boardroom server.
*/
package handler

import (
	"net/http"
	"time"

	"boardroom/internal/pkg/errs"
	"boardroom/internal/pkg/req"
	"boardroom/internal/pkg/resp"
)

// RefreshCookieName is the cookie carrying the raw refresh secret.
const RefreshCookieName = "refresh_token"

type LoginInput struct {
	Nickname string `json:"nickname"`
	Password string `json:"password"`
}

// HandleLogin verifies credentials, sets the refresh cookie and returns an access token.
func HandleLogin(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input LoginInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		result, err := deps.Sessions.Login(r.Context(), input.Nickname, input.Password)
		if err != nil {
			deps.countLogin("failure")
			respondErr(w, r, err)
			return
		}
		deps.countLogin("success")

		setRefreshCookie(w, deps, result.RefreshToken, deps.Sessions.RefreshLifetime())

		resp.RespondSuccess(w, r, map[string]any{
			"accessToken": result.AccessToken,
			"user":        result.User,
		})
	}
}

// HandleRefresh exchanges the refresh cookie for a new access token.
func HandleRefresh(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(RefreshCookieName)
		if err != nil || cookie.Value == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthenticated))
			return
		}

		accessToken, err := deps.Sessions.Refresh(r.Context(), cookie.Value)
		if err != nil {
			respondErr(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, map[string]string{"accessToken": accessToken})
	}
}

// HandleMe returns the summary of the authenticated caller.
func HandleMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := CurrentUser(r)
		if !ok {
			unauthorized(w, r)
			return
		}
		resp.RespondSuccess(w, r, u.Summary())
	}
}

// HandleLogout revokes the refresh cookie's record, if any, and always clears the cookie.
func HandleLogout(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(RefreshCookieName); err == nil && cookie.Value != "" {
			deps.Sessions.Logout(r.Context(), cookie.Value)
		}

		clearRefreshCookie(w, deps)
		resp.RespondNoContent(w, r)
	}
}

func setRefreshCookie(w http.ResponseWriter, deps *AppDeps, value string, lifetime time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(lifetime / time.Second),
		HttpOnly: true,
		Secure:   deps.Config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearRefreshCookie(w http.ResponseWriter, deps *AppDeps) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   deps.Config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (deps *AppDeps) countLogin(outcome string) {
	if deps.Metrics != nil {
		deps.Metrics.LoginsTotal.WithLabelValues(outcome).Inc()
	}
}
