/*
Package errs provides custom error types and application-level error code constants.

These error codes identify specific business or system errors both inside the server
and in the JSON error bodies returned to clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request header Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body JSON is malformed.
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates that the request body contained extra content after valid JSON data.
	ErrExtraContentInBody = 1004

	// ErrFormParseFailed indicates failure to parse multipart form data.
	ErrFormParseFailed = 1005

	// ErrRequestEntityTooLarge indicates that the request body size exceeded the server limit.
	ErrRequestEntityTooLarge = 1006

	// ErrRateLimitExceeded indicates that the request rate has exceeded the set limit.
	ErrRateLimitExceeded = 1007

	// ErrNotFound indicates that no route matched the request.
	ErrNotFound = 1008
)

// 2xxx: User Management Errors
const (
	// ErrInvalidNickname indicates an empty or whitespace-only nickname.
	ErrInvalidNickname = 2001

	// ErrInvalidPassword indicates a password outside the accepted length range.
	ErrInvalidPassword = 2002

	// ErrNicknameTaken indicates that the normalized nickname already belongs to another user.
	ErrNicknameTaken = 2003

	// ErrUserNotFound indicates that the addressed user does not exist.
	ErrUserNotFound = 2004
)

// 3xxx: Session and Security Errors
const (
	// ErrUnauthenticated covers every credential, token and cookie failure.
	// It never says which check failed.
	ErrUnauthenticated = 3001

	// ErrForbidden indicates an authenticated caller whose role is not permitted.
	ErrForbidden = 3002
)

// 4xxx: Asset Errors
const (
	// ErrAssetTypeInvalid indicates an asset type outside MAP/AVATAR.
	ErrAssetTypeInvalid = 4001

	// ErrAssetNameInvalid indicates a blank asset name.
	ErrAssetNameInvalid = 4002

	// ErrAssetMediaType indicates an uploaded file whose MIME type is not accepted.
	ErrAssetMediaType = 4003

	// ErrAssetFileMissing indicates a multipart upload without a file part.
	ErrAssetFileMissing = 4004
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general server internal error.
	ErrUnknown = 5000

	// ErrFileStorageFailed indicates that the asset storage backend rejected a write.
	ErrFileStorageFailed = 5001
)
