/*
Package req provides helper functions for HTTP request parsing and data binding.

It wraps JSON and multipart form parsing, translating format and size problems
into errs.CustomError values.
*/
package req

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"boardroom/internal/pkg/errs"
)

const (
	// MaxFormMemory is the amount of multipart data (8 MB) kept in memory; the rest spills to temp files.
	MaxFormMemory int64 = 8 << 20

	// MaxRequestFileSize is the maximum size (20 MB) of a whole multipart request body.
	MaxRequestFileSize int64 = 20 << 20

	// MaxJSONBodySize bounds JSON request bodies (1 MB).
	MaxJSONBodySize int64 = 1 << 20
)

// BindJSON decodes the JSON request body into dst, rejecting unknown fields and trailing data.
func BindJSON(w http.ResponseWriter, r *http.Request, dst any) *errs.CustomError {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "application/json") {
		return errs.NewError(errs.ErrUnsupportedMediaType)
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxJSONBodySize)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return errs.NewError(errs.ErrRequestEntityTooLarge)
		}
		return errs.NewError(errs.ErrInvalidJSONFormat)
	}

	if decoder.More() {
		return errs.NewError(errs.ErrExtraContentInBody)
	}

	return nil
}

// SetupMultipart bounds the request body and parses it as multipart form data.
func SetupMultipart(w http.ResponseWriter, r *http.Request) *errs.CustomError {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return errs.NewError(errs.ErrUnsupportedMediaType)
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestFileSize)

	if err := r.ParseMultipartForm(MaxFormMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return errs.NewError(errs.ErrRequestEntityTooLarge)
		}

		return errs.NewError(errs.ErrFormParseFailed)
	}

	return nil
}
