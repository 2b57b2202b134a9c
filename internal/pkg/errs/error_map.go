/*
Package errs provides custom error types and application-level error code constants.

This file maps every error code to its CustomError template (client message and HTTP status).
*/
package errs

import "net/http"

// errorMap stores the CustomError template for every application error code.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:         {Code: ErrInvalidParams, Message: "Invalid request parameters.", Status: http.StatusUnprocessableEntity},
	ErrUnsupportedMediaType:  {Code: ErrUnsupportedMediaType, Message: "Unsupported request format.", Status: http.StatusUnsupportedMediaType},
	ErrInvalidJSONFormat:     {Code: ErrInvalidJSONFormat, Message: "Malformed request body.", Status: http.StatusBadRequest},
	ErrExtraContentInBody:    {Code: ErrExtraContentInBody, Message: "Request contains unexpected data.", Status: http.StatusBadRequest},
	ErrFormParseFailed:       {Code: ErrFormParseFailed, Message: "Failed to process uploaded data.", Status: http.StatusBadRequest},
	ErrRequestEntityTooLarge: {Code: ErrRequestEntityTooLarge, Message: "Request size is too large.", Status: http.StatusRequestEntityTooLarge},
	ErrRateLimitExceeded:     {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},
	ErrNotFound:              {Code: ErrNotFound, Message: "Not found.", Status: http.StatusNotFound},

	// 2xxx: User Management Errors
	ErrInvalidNickname: {Code: ErrInvalidNickname, Message: "Nickname cannot be empty.", Status: http.StatusUnprocessableEntity},
	ErrInvalidPassword: {Code: ErrInvalidPassword, Message: "Password must be between %d and %d bytes.", Status: http.StatusUnprocessableEntity},
	ErrNicknameTaken:   {Code: ErrNicknameTaken, Message: "Nickname already exists.", Status: http.StatusConflict},
	ErrUserNotFound:    {Code: ErrUserNotFound, Message: "User not found.", Status: http.StatusNotFound},

	// 3xxx: Session and Security Errors
	ErrUnauthenticated: {Code: ErrUnauthenticated, Message: "Invalid credentials.", Status: http.StatusUnauthorized},
	ErrForbidden:       {Code: ErrForbidden, Message: "Forbidden.", Status: http.StatusForbidden},

	// 4xxx: Asset Errors
	ErrAssetTypeInvalid: {Code: ErrAssetTypeInvalid, Message: "Invalid type. Use MAP or AVATAR.", Status: http.StatusUnprocessableEntity},
	ErrAssetNameInvalid: {Code: ErrAssetNameInvalid, Message: "Name cannot be empty.", Status: http.StatusUnprocessableEntity},
	ErrAssetMediaType:   {Code: ErrAssetMediaType, Message: "Unsupported media type. Allowed: png, jpeg, webp.", Status: http.StatusUnsupportedMediaType},
	ErrAssetFileMissing: {Code: ErrAssetFileMissing, Message: "File is required.", Status: http.StatusUnprocessableEntity},

	// 5xxx: Internal System Errors
	ErrUnknown:           {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
	ErrFileStorageFailed: {Code: ErrFileStorageFailed, Message: "File upload failed. Please try again.", Status: http.StatusInternalServerError},
}
