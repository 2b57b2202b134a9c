/*
Package errs provides custom error types and application-level error code constants.

This file defines CustomError, which implements the error interface and carries a business
code, a client-facing message and the HTTP status used when it is written to a response.
*/
package errs

import (
	"fmt"
	"net/http"
	"strings"

	"boardroom/internal/pkg/logx"
)

// CustomError is the error structure written to clients by the handler layer.
type CustomError struct {
	// Code is the business error code (see constants definition).
	Code int `json:"code"`

	// Message is the client-facing error description.
	Message string `json:"message"`

	// Status is the HTTP status code corresponding to this error.
	Status int `json:"-"`
}

// Error implements the error interface.
func (e CustomError) Error() string {
	return fmt.Sprintf("Error Code %d (HTTP %d): %s", e.Code, e.Status, e.Message)
}

// NewError returns a copy of the template registered for code.
// details are printf arguments for templates containing verbs; for ErrUnknown the first
// detail may be the underlying error, which is logged and never exposed.
// An unregistered code yields ErrUnknown.
func NewError(code int, details ...any) *CustomError {
	templateErr, ok := errorMap[code]

	if !ok {
		logx.Error(
			fmt.Errorf("attempted to create an error with an unknown code in errorMap"),
			"Unknown error code requested",
			"requested_code", code,
		)

		unknownErr := errorMap[ErrUnknown]
		return &unknownErr
	}

	customErr := templateErr

	if customErr.Status == 0 {
		customErr.Status = http.StatusInternalServerError
	}

	if code == ErrUnknown && len(details) > 0 {
		if originalErr, ok := details[0].(error); ok {
			logx.Error(
				originalErr,
				"Handling ErrUnknown with underlying error",
			)
		}
	} else if len(details) > 0 {
		if strings.Contains(customErr.Message, "%") {
			customErr.Message = fmt.Sprintf(customErr.Message, details...)
		} else {
			logx.Warn(
				"Details provided for error, but message template has no formatting placeholders. Details ignored.",
				"code", code,
			)
		}
	}

	return &customErr
}
