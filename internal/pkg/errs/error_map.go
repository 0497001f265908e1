/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to the CustomError struct, used to
standardize HTTP responses and internal error handling.
*/
package errs

import "net/http"

// errorMap stores the CustomError template for every application error code.
// A zero Status defaults to 200 with a non-zero business code; explicit
// statuses are set where the HTTP layer should signal the failure class.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:        {Code: ErrInvalidParams, Message: "Invalid request parameters.", Status: http.StatusBadRequest},
	ErrUnsupportedMediaType: {Code: ErrUnsupportedMediaType, Message: "Unsupported request format."},
	ErrInvalidJSONFormat:    {Code: ErrInvalidJSONFormat, Message: "Unsupported request format."},
	ErrExtraContentInBody:   {Code: ErrExtraContentInBody, Message: "Request contains unexpected data."},
	ErrRateLimitExceeded:    {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	// 2xxx: Room, Message, and History Errors
	ErrRoomNotFound:       {Code: ErrRoomNotFound, Message: "Chat room not found.", Status: http.StatusNotFound},
	ErrNotInRoom:          {Code: ErrNotInRoom, Message: "Join a room first."},
	ErrMessageEmpty:       {Code: ErrMessageEmpty, Message: "Message cannot be empty.", Status: http.StatusBadRequest},
	ErrHistoryIOFailed:    {Code: ErrHistoryIOFailed, Message: "Could not read or write the history file."},
	ErrArchiveFailed:      {Code: ErrArchiveFailed, Message: "History archive operation failed. Please try again."},
	ErrArchiveUnavailable: {Code: ErrArchiveUnavailable, Message: "History archiving is not configured."},

	// 3xxx: User and Session Errors
	ErrInvalidUsername:    {Code: ErrInvalidUsername, Message: "Invalid username."},
	ErrInvalidSecret:      {Code: ErrInvalidSecret, Message: "Invalid password."},
	ErrUserAlreadyExists:  {Code: ErrUserAlreadyExists, Message: "Username is already taken."},
	ErrInvalidCredentials: {Code: ErrInvalidCredentials, Message: "Incorrect username or password."},
	ErrUserNotFound:       {Code: ErrUserNotFound, Message: "Account not found."},
	ErrUnauthorized:       {Code: ErrUnauthorized, Message: "Please sign in to continue.", Status: http.StatusUnauthorized},

	// 5xxx: Internal System Errors
	ErrUnknown:      {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
	ErrStoreFailure: {Code: ErrStoreFailure, Message: "The chat store is unavailable. Please try again."},
}
