package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrUnknownCategory is returned when a mapping table references a
	// category outside the canonical set
	ErrUnknownCategory = errors.New("category not in canonical set")

	// ErrPredictionFileInvalid is returned when the ML prediction file
	// cannot be decoded
	ErrPredictionFileInvalid = errors.New("prediction file invalid")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrStoreClosed is returned when the persistence layer is used after Close
	ErrStoreClosed = errors.New("store is closed")
)
