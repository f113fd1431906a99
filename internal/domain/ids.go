package domain

// ContextID links a central itinerary to its owning business object
// (a query, proposal, or package). Its format is controlled by the host
// application; we treat it as opaque.
type ContextID string

// ItineraryID is an internal identifier for a central itinerary document.
type ItineraryID string

// DayID is an internal identifier for a single itinerary day.
type DayID string

// AccommodationID is an internal identifier for an accommodation option.
type AccommodationID string
