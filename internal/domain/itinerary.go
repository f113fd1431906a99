package domain

import "time"

type ItineraryStatus string

const (
	ItineraryStatusDraft     ItineraryStatus = "draft"
	ItineraryStatusGenerated ItineraryStatus = "generated"
	ItineraryStatusApproved  ItineraryStatus = "approved"
	ItineraryStatusBooked    ItineraryStatus = "booked"
)

// ContextTag names the kind of business object an itinerary belongs to.
type ContextTag string

const (
	ContextTagQuery    ContextTag = "query"
	ContextTagProposal ContextTag = "proposal"
	ContextTagPackage  ContextTag = "package"
)

type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeDinner    MealType = "dinner"
)

// Duration records trip length. Nights is days-1 whenever days >= 1.
type Duration struct {
	Days   int `json:"days"`
	Nights int `json:"nights"`
}

// TravelerPreferences is carried opaquely through the core; pricing never
// reads it. It is validated structurally at the store boundary only.
type TravelerPreferences struct {
	Pace      string   `json:"pace,omitempty"`
	Interests []string `json:"interests,omitempty"`
	Transport []string `json:"transport,omitempty"`
	Dining    []string `json:"dining,omitempty"`
}

type TransportSegment struct {
	Mode string  `json:"mode"`
	From string  `json:"from"`
	To   string  `json:"to"`
	Cost float64 `json:"cost"`
}

type Activity struct {
	Name string  `json:"name"`
	Cost float64 `json:"cost"`
}

// Meal is one meal slot on a day. A nil Cost means the meal is not itemized
// in this schema and prices as zero.
type Meal struct {
	Type MealType `json:"type"`
	Cost *float64 `json:"cost,omitempty"`
}

// PricingSummary is the trip-level pricing rollup. BaseCost is always the sum
// of the days' TotalCost values; FinalPrice = BaseCost + Markup.
type PricingSummary struct {
	BaseCost   float64    `json:"baseCost"`
	Markup     float64    `json:"markup"`
	MarkupType MarkupType `json:"markupType"`
	FinalPrice float64    `json:"finalPrice"`
	Currency   string     `json:"currency"`
}

// ItineraryDay is one day of the trip. Day is 1-based and contiguous across
// the document. TotalCost is derived by the pricing engine and never authored
// directly.
type ItineraryDay struct {
	ID   DayID     `json:"id"`
	Day  int       `json:"day"`
	Date time.Time `json:"date"`

	Location Location `json:"location"`

	Accommodations []AccommodationOption `json:"accommodations,omitempty"`
	Transport      []TransportSegment    `json:"transport,omitempty"`
	Activities     []Activity            `json:"activities,omitempty"`
	Meals          []Meal                `json:"meals,omitempty"`

	TotalCost float64 `json:"totalCost"`
}

// CentralItinerary is the canonical, editable multi-day trip document.
// Mutations go through the synchronization controller; this type itself is
// a plain value and every edit produces a new value.
type CentralItinerary struct {
	ID    ItineraryID `json:"id"`
	Title string      `json:"title"`

	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Duration  Duration  `json:"duration"`

	Destinations []Location          `json:"destinations,omitempty"`
	Preferences  TravelerPreferences `json:"preferences"`

	Days []ItineraryDay `json:"days,omitempty"`

	Pricing PricingSummary  `json:"pricing"`
	Status  ItineraryStatus `json:"status"`

	Context   ContextTag `json:"context"`
	ContextID ContextID  `json:"contextId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	CreatedBy string    `json:"createdBy,omitempty"`
}

// Clone returns a deep copy. Callers that hand documents across an ownership
// boundary (stores, subscribers) clone first so no aliasing survives.
func (it CentralItinerary) Clone() CentralItinerary {
	cp := it
	if it.Destinations != nil {
		cp.Destinations = append([]Location(nil), it.Destinations...)
	}
	cp.Preferences = cloneTravelerPreferences(it.Preferences)
	if it.Days != nil {
		cp.Days = make([]ItineraryDay, len(it.Days))
		for i, d := range it.Days {
			cp.Days[i] = d.Clone()
		}
	}
	return cp
}

// Clone returns a deep copy of the day.
func (d ItineraryDay) Clone() ItineraryDay {
	cp := d
	if d.Accommodations != nil {
		cp.Accommodations = append([]AccommodationOption(nil), d.Accommodations...)
	}
	if d.Transport != nil {
		cp.Transport = append([]TransportSegment(nil), d.Transport...)
	}
	if d.Activities != nil {
		cp.Activities = append([]Activity(nil), d.Activities...)
	}
	if d.Meals != nil {
		cp.Meals = make([]Meal, len(d.Meals))
		for i, m := range d.Meals {
			cp.Meals[i] = m
			if m.Cost != nil {
				c := *m.Cost
				cp.Meals[i].Cost = &c
			}
		}
	}
	return cp
}

func cloneTravelerPreferences(p TravelerPreferences) TravelerPreferences {
	cp := p
	if p.Interests != nil {
		cp.Interests = append([]string(nil), p.Interests...)
	}
	if p.Transport != nil {
		cp.Transport = append([]string(nil), p.Transport...)
	}
	if p.Dining != nil {
		cp.Dining = append([]string(nil), p.Dining...)
	}
	return cp
}
