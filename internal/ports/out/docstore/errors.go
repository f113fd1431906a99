package docstore

import "errors"

var (
	ErrNotFound = errors.New("itinerary document not found")
)
