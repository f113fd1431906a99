package domain

// Location identifies a place in an itinerary. It is an immutable value object.
type Location struct {
	Name    string `json:"name"`
	Country string `json:"country"`
	City    string `json:"city"`

	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}
