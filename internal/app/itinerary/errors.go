package itinerary

import "errors"

// Error codes surfaced by the itinerary core.
const (
	CodeLoadFailed        = "LOAD_FAILED"
	CodeIndexOutOfRange   = "INDEX_OUT_OF_RANGE"
	CodeDayNotFound       = "DAY_NOT_FOUND"
	CodeInvalidState      = "INVALID_STATE"
	CodeNoMatchingSlab    = "NO_MATCHING_SLAB"
	CodeItineraryNotFound = "ITINERARY_NOT_FOUND"
	CodeValidation        = "VALIDATION_ERROR"
	CodeNotReady          = "NOT_READY"
)

// Error is an application-layer error that can be mapped to an HTTP response.
type Error struct {
	Status  int
	Code    string
	Message string
	Details map[string]any
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	return e.Code
}

// HasCode reports whether err is an application Error with the given code.
func HasCode(err error, code string) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Code == code
}
