/*
Package errs provides custom error types and application-level error code constants.

The codes identify specific business or system errors both internally and in
responses to clients. They fall into four families: request handling,
room/message/history, user and session, and internal failures.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	// It covers the invalid-argument category: the caller passed something
	// the operation's precondition forbids.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body JSON is malformed.
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates trailing content after valid JSON data.
	ErrExtraContentInBody = 1004

	// ErrRateLimitExceeded indicates the request rate exceeded the set limit.
	ErrRateLimitExceeded = 1005
)

// 2xxx: Room, Message, and History Errors
const (
	// ErrRoomNotFound indicates that no room matches the given id or name.
	ErrRoomNotFound = 2101

	// ErrNotInRoom indicates an operation that requires a joined room.
	ErrNotInRoom = 2102

	// ErrMessageEmpty indicates an empty message body on send or receive.
	ErrMessageEmpty = 2201

	// ErrHistoryIOFailed indicates that the history file could not be written or read.
	ErrHistoryIOFailed = 2301

	// ErrArchiveFailed indicates that the history archive upload or download failed.
	ErrArchiveFailed = 2302

	// ErrArchiveUnavailable indicates that no archive backend is configured.
	ErrArchiveUnavailable = 2303
)

// 3xxx: User and Session Errors
const (
	// ErrInvalidUsername indicates a username outside the accepted format.
	ErrInvalidUsername = 3001

	// ErrInvalidSecret indicates a secret outside the accepted length bounds.
	ErrInvalidSecret = 3002

	// ErrUserAlreadyExists indicates the username is already taken.
	ErrUserAlreadyExists = 3003

	// ErrInvalidCredentials indicates no user matches the username and secret.
	ErrInvalidCredentials = 3004

	// ErrUserNotFound indicates that no user matches the given username.
	ErrUserNotFound = 3005

	// ErrUnauthorized indicates a request without a valid session identity.
	ErrUnauthorized = 3006
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified server internal error.
	ErrUnknown = 5000

	// ErrStoreFailure indicates the durable store is unreachable or a query
	// failed. The operation did not happen; the caller may retry.
	ErrStoreFailure = 5001
)
