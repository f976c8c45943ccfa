package errors

import "errors"

var (
	ErrInvalidQuery     = errors.New("invalid trip query")
	ErrTripNotFound     = errors.New("trip not found")
	ErrTripUnavailable  = errors.New("trip data unavailable")
	ErrSessionNotFound  = errors.New("booking session not found")
	ErrInvalidSelection = errors.New("invalid ancillary selection")
	ErrSourceTemporary  = errors.New("temporary source failure")
)
