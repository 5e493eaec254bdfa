// Package services defines the business logic for prompts, license
// activations, and usage statistics. This file centralizes common
// service-level error values so that they can be consistently returned by
// service methods and checked by callers.
//
// These errors are intended for internal use by the service layer and
// translation into user-facing messages or HTTP status codes should be
// performed at the handler layer.
package services

import "errors"

var (
	// ErrStoreUnavailable is returned when a service has no store handle.
	// Operations still return their documented fallback value alongside it,
	// so callers may either surface a "not ready" state or ignore the error
	// and treat the result as empty.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrEmptyPrompt is returned when a prompt to be added has no title or
	// no content after normalization.
	ErrEmptyPrompt = errors.New("prompt is empty")

	// ErrTooLong is returned when a prompt field exceeds the configured
	// maximum rune length.
	ErrTooLong = errors.New("prompt too long")

	// ErrEmptyLicenseKey is returned when a license save carries a blank key.
	ErrEmptyLicenseKey = errors.New("license key is empty")

	// ErrDuplicateLicense is returned when the license key being saved has
	// already been activated.
	ErrDuplicateLicense = errors.New("license key already activated")

	// Generic write-failure signals. The underlying cause is logged, not
	// propagated; callers can only distinguish success from failure.
	ErrSaveLicense  = errors.New("failed to save license")
	ErrAddPrompt    = errors.New("failed to add prompt")
	ErrUpvotePrompt = errors.New("failed to upvote prompt")
)
