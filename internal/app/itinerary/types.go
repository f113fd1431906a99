package itinerary

import (
	"time"

	"github.com/atlasvoyages/itinerary-api/internal/domain"
)

// Optional is a tri-state field used to distinguish:
// - unspecified (omitted)
// - specified as null
// - specified with a value
type Optional[T any] struct {
	specified bool
	isNull    bool
	value     T
}

func Unspecified[T any]() Optional[T] { return Optional[T]{} }
func Null[T any]() Optional[T]        { return Optional[T]{specified: true, isNull: true} }
func Some[T any](v T) Optional[T]     { return Optional[T]{specified: true, value: v} }

func (o Optional[T]) IsSpecified() bool { return o.specified }
func (o Optional[T]) IsNull() bool      { return o.specified && o.isNull }
func (o Optional[T]) Value() T          { return o.value }

// DayPatch shallow-merges into one itinerary day. Specified fields replace the
// day's current value; Null clears a slice field. Date and Location cannot be
// nulled, only replaced.
type DayPatch struct {
	Date     Optional[time.Time]
	Location Optional[domain.Location]

	Accommodations Optional[[]domain.AccommodationOption]
	Transport      Optional[[]domain.TransportSegment]
	Activities     Optional[[]domain.Activity]
	Meals          Optional[[]domain.Meal]
}

// PartyComposition is the trip party the proposal is priced for.
type PartyComposition struct {
	Adults   int
	Children int
}

// Pax is the total head count. Children are not discounted in the per-person
// split; only the accommodation child surcharges treat them differently.
func (p PartyComposition) Pax() int { return p.Adults + p.Children }
