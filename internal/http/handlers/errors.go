// Package handlers defines the HTTP-layer error codes used across all API
// endpoints.
//
// Codes are lowercase snake_case and give clients a stable, machine-readable
// taxonomy that supplements human-readable messages. Generic codes mirror
// common HTTP status semantics; domain-specific codes cover business errors
// that status alone cannot convey. Handlers pick the most specific matching
// code and pass it to fail() with the corresponding status.
package handlers

const (
	ErrCodeBadRequest   = "bad_request"
	ErrCodeUnauthorized = "unauthorized"
	ErrCodeForbidden    = "forbidden"
	ErrCodeNotFound     = "not_found"
	ErrCodeConflict     = "conflict"
	ErrCodeRateLimited  = "too_many_requests"
	ErrCodeInternal     = "internal_error"

	// Domain-specific:
	ErrCodeStoreUnavailable = "store_unavailable"
	ErrCodeCreateFailed     = "create_failed"
	ErrCodeListFailed       = "list_failed"
	ErrCodeUpvoteFailed     = "upvote_failed"
	ErrCodeMethodNotAllowed = "method_not_allowed"
)
