package domain

import "time"

// ServiceCosts aggregates the trip's priced services by category.
type ServiceCosts struct {
	Sightseeing   float64 `json:"sightseeing"`
	Transport     float64 `json:"transport"`
	Dining        float64 `json:"dining"`
	Accommodation float64 `json:"accommodation"`
}

// AccommodationPricingOption is the priced rollup for one option tag across
// the whole trip, including the markup applied to that option's base.
type AccommodationPricingOption struct {
	Option     int     `json:"option"`
	BaseTotal  float64 `json:"baseTotal"`
	Markup     float64 `json:"markup"`
	FinalTotal float64 `json:"finalTotal"`
	AdultPrice float64 `json:"adultPrice"`
	ChildPrice float64 `json:"childPrice"`
}

// ProposalSummarySnapshot is the denormalized, client-facing projection of a
// central itinerary. It is derived, never authoritative: it must always be
// reproducible by re-running the transform, and is discarded and recomputed
// rather than merged.
type ProposalSummarySnapshot struct {
	ServiceCosts   ServiceCosts                 `json:"serviceCosts"`
	Options        []AccommodationPricingOption `json:"options,omitempty"`
	LastCalculated time.Time                    `json:"lastCalculated"`
}
