package handler

import (
	"errors"
	"net/http"

	"boardroom/internal/app/asset"
	"boardroom/internal/app/session"
	"boardroom/internal/app/user"
	"boardroom/internal/pkg/errs"
	"boardroom/internal/pkg/logx"
	"boardroom/internal/pkg/resp"
)

// toCustomError translates a domain error into its API error. Unknown errors map to ErrUnknown.
func toCustomError(err error) *errs.CustomError {
	var customErr *errs.CustomError
	switch {
	case errors.As(err, &customErr):
		return customErr

	case errors.Is(err, session.ErrUnauthenticated):
		return errs.NewError(errs.ErrUnauthenticated)
	case errors.Is(err, session.ErrForbidden):
		return errs.NewError(errs.ErrForbidden)

	case errors.Is(err, user.ErrNotFound):
		return errs.NewError(errs.ErrUserNotFound)
	case errors.Is(err, user.ErrNicknameTaken):
		return errs.NewError(errs.ErrNicknameTaken)
	case errors.Is(err, user.ErrInvalidNickname):
		return errs.NewError(errs.ErrInvalidNickname)
	case errors.Is(err, user.ErrInvalidPassword):
		return errs.NewError(errs.ErrInvalidPassword, user.MinPasswordBytes, user.MaxPasswordBytes)

	case errors.Is(err, asset.ErrInvalidType):
		return errs.NewError(errs.ErrAssetTypeInvalid)
	case errors.Is(err, asset.ErrInvalidName):
		return errs.NewError(errs.ErrAssetNameInvalid)
	case errors.Is(err, asset.ErrUnsupportedMedia):
		return errs.NewError(errs.ErrAssetMediaType)

	default:
		return errs.NewError(errs.ErrUnknown)
	}
}

// respondErr writes err as an API error body, logging anything that maps to a 5xx.
func respondErr(w http.ResponseWriter, r *http.Request, err error) {
	customErr := toCustomError(err)
	if customErr.Status >= http.StatusInternalServerError {
		logx.Error(err, "Request failed", "path", r.URL.Path, "method", r.Method)
	}
	resp.RespondError(w, r, customErr)
}
