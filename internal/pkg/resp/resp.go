/*
Package resp provides helper functions for sending HTTP JSON responses.

Successful responses carry the resource itself as the body. Failures carry a
{code, message} body built from an errs.CustomError.
*/
package resp

import (
	"encoding/json"
	"net/http"

	"boardroom/internal/pkg/errs"
	"boardroom/internal/pkg/logx"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	// Code is the business error code (see errs package).
	Code int `json:"code"`

	// Message is the client-facing error description.
	Message string `json:"message"`
}

// RespondJSON sets the JSON headers, writes httpStatus and encodes payload.
func RespondJSON(w http.ResponseWriter, r *http.Request, httpStatus int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")

	response, err := json.Marshal(payload)
	if err != nil {
		logx.Error(
			err,
			"Error encoding JSON response",
			"http_status", httpStatus,
		)

		http.Error(w, "Error encoding JSON response", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(httpStatus)
	if _, err := w.Write(response); err != nil {
		logx.Warn("Failed to write response body", "error", err)
	}
}

// RespondSuccess sends data with HTTP 200 OK.
func RespondSuccess(w http.ResponseWriter, r *http.Request, data any) {
	RespondJSON(w, r, http.StatusOK, data)
}

// RespondCreated sends data with HTTP 201 Created.
func RespondCreated(w http.ResponseWriter, r *http.Request, data any) {
	RespondJSON(w, r, http.StatusCreated, data)
}

// RespondNoContent sends an empty HTTP 204 response.
func RespondNoContent(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// RespondError sends the error body and status of customErr.
func RespondError(w http.ResponseWriter, r *http.Request, customErr *errs.CustomError) {
	if customErr == nil {
		customErr = errs.NewError(errs.ErrUnknown)
	}

	RespondJSON(w, r, customErr.Status, ErrorBody{
		Code:    customErr.Code,
		Message: customErr.Message,
	})
}
