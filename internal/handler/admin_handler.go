package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"boardroom/internal/app/user"
	"boardroom/internal/pkg/req"
	"boardroom/internal/pkg/resp"
)

func profiles(users []user.User) []user.Profile {
	out := make([]user.Profile, 0, len(users))
	for _, u := range users {
		out = append(out, u.Profile())
	}
	return out
}

// HandleListUsers returns every user, newest first.
func HandleListUsers(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := deps.Users.List(r.Context())
		if err != nil {
			respondErr(w, r, err)
			return
		}
		resp.RespondSuccess(w, r, map[string]any{"items": profiles(users)})
	}
}

// HandleGetUser returns one user by id.
func HandleGetUser(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := deps.Users.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondErr(w, r, err)
			return
		}
		resp.RespondSuccess(w, r, u.Profile())
	}
}

// HandleCreateUser creates an active USER.
func HandleCreateUser(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input user.CreateInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		u, err := deps.Users.Create(r.Context(), input)
		if err != nil {
			respondErr(w, r, err)
			return
		}
		resp.RespondCreated(w, r, u.Profile())
	}
}

// HandlePatchUser updates nickname, password or active flag of one user.
func HandlePatchUser(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input user.PatchInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		u, err := deps.Users.Patch(r.Context(), chi.URLParam(r, "id"), input)
		if err != nil {
			respondErr(w, r, err)
			return
		}
		resp.RespondSuccess(w, r, u.Profile())
	}
}
