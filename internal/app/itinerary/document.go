package itinerary

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/atlasvoyages/itinerary-api/internal/domain"
	clockport "github.com/atlasvoyages/itinerary-api/internal/ports/out/clock"
)

// Editor applies day-level operations to a central itinerary. Operations are
// pure with respect to their input: every mutation returns a new document
// value so callers can diff, undo, or detect no-op writes by equality.
type Editor struct {
	clk    clockport.Clock
	markup domain.MarkupConfig

	newDayID func() domain.DayID
}

func NewEditor(clk clockport.Clock, markup domain.MarkupConfig) *Editor {
	return &Editor{
		clk:    clk,
		markup: markup,
		newDayID: func() domain.DayID {
			return domain.DayID(uuid.NewString())
		},
	}
}

// SetNewDayIDForTest overrides day ID generation for deterministic tests.
// It should not be used in production code.
func (e *Editor) SetNewDayIDForTest(fn func() domain.DayID) {
	if fn != nil {
		e.newDayID = fn
	}
}

// AddDay appends a day dated one day after the last day (or on StartDate when
// the itinerary is empty), inheriting the previous day's location.
func (e *Editor) AddDay(doc domain.CentralItinerary) (domain.CentralItinerary, error) {
	doc = doc.Clone()

	day := domain.ItineraryDay{
		ID:  e.newDayID(),
		Day: len(doc.Days) + 1,
	}
	if n := len(doc.Days); n > 0 {
		prev := doc.Days[n-1]
		day.Date = prev.Date.AddDate(0, 0, 1)
		day.Location = prev.Location
	} else {
		if len(doc.Destinations) == 0 {
			return domain.CentralItinerary{}, &Error{
				Status:  422,
				Code:    CodeInvalidState,
				Message: "cannot add a day: itinerary has no destinations and no prior day to infer a location from",
			}
		}
		day.Date = doc.StartDate
		day.Location = doc.Destinations[0]
	}
	day.TotalCost = DayCost(day)

	doc.Days = append(doc.Days, day)
	doc.Duration.Days = len(doc.Days)
	doc.Duration.Nights = doc.Duration.Days - 1
	doc.EndDate = day.Date
	doc.UpdatedAt = e.clk.Now()
	return RecalculateTripPricing(doc, e.markup)
}

// RemoveDay removes the day at index and renumbers the remaining days so they
// stay contiguous 1..N. Nights never drops below zero.
func (e *Editor) RemoveDay(doc domain.CentralItinerary, index int) (domain.CentralItinerary, error) {
	if index < 0 || index >= len(doc.Days) {
		return domain.CentralItinerary{}, errIndexOutOfRange(index, len(doc.Days))
	}
	doc = doc.Clone()

	doc.Days = append(doc.Days[:index], doc.Days[index+1:]...)
	for i := range doc.Days {
		doc.Days[i].Day = i + 1
	}
	doc.Duration.Days = len(doc.Days)
	if doc.Duration.Nights > 0 {
		doc.Duration.Nights--
	}
	if n := len(doc.Days); n > 0 {
		doc.EndDate = doc.Days[n-1].Date
	} else {
		doc.EndDate = doc.StartDate
	}
	doc.UpdatedAt = e.clk.Now()
	return RecalculateTripPricing(doc, e.markup)
}

// UpdateDay shallow-merges patch into the day at index and recomputes the
// day's derived total.
func (e *Editor) UpdateDay(doc domain.CentralItinerary, index int, patch DayPatch) (domain.CentralItinerary, error) {
	if index < 0 || index >= len(doc.Days) {
		return domain.CentralItinerary{}, errIndexOutOfRange(index, len(doc.Days))
	}
	return e.applyDayPatch(doc, index, patch)
}

// UpdateDayByID is the proposal-view edit path: the day is located by ID, not
// by position, because removal and reordering can shift positions between
// renders. A missing day fails with DAY_NOT_FOUND instead of no-opping.
func (e *Editor) UpdateDayByID(doc domain.CentralItinerary, id domain.DayID, patch DayPatch) (domain.CentralItinerary, error) {
	for i, d := range doc.Days {
		if d.ID == id {
			return e.applyDayPatch(doc, i, patch)
		}
	}
	return domain.CentralItinerary{}, &Error{
		Status:  404,
		Code:    CodeDayNotFound,
		Message: fmt.Sprintf("no day with id %q in itinerary", id),
		Details: map[string]any{"dayId": string(id)},
	}
}

func (e *Editor) applyDayPatch(doc domain.CentralItinerary, index int, patch DayPatch) (domain.CentralItinerary, error) {
	doc = doc.Clone()
	day := &doc.Days[index]

	if patch.Date.IsSpecified() {
		if patch.Date.IsNull() {
			return domain.CentralItinerary{}, errFieldNotNullable("date")
		}
		day.Date = patch.Date.Value()
	}
	if patch.Location.IsSpecified() {
		if patch.Location.IsNull() {
			return domain.CentralItinerary{}, errFieldNotNullable("location")
		}
		day.Location = patch.Location.Value()
	}
	if patch.Accommodations.IsSpecified() {
		if patch.Accommodations.IsNull() {
			day.Accommodations = nil
		} else {
			opts := patch.Accommodations.Value()
			for i := range opts {
				if opts[i].ID == "" {
					opts[i].ID = domain.AccommodationID(uuid.NewString())
				}
			}
			day.Accommodations = opts
		}
	}
	if patch.Transport.IsSpecified() {
		day.Transport = valueOrNil(patch.Transport)
	}
	if patch.Activities.IsSpecified() {
		day.Activities = valueOrNil(patch.Activities)
	}
	if patch.Meals.IsSpecified() {
		day.Meals = valueOrNil(patch.Meals)
	}

	if err := doc.Validate(); err != nil {
		return domain.CentralItinerary{}, &Error{
			Status:  422,
			Code:    CodeValidation,
			Message: err.Error(),
		}
	}

	day.TotalCost = DayCost(*day)
	doc.UpdatedAt = e.clk.Now()
	return RecalculateTripPricing(doc, e.markup)
}

func valueOrNil[T any](o Optional[[]T]) []T {
	if o.IsNull() {
		return nil
	}
	return o.Value()
}

func errIndexOutOfRange(index, n int) *Error {
	return &Error{
		Status:  404,
		Code:    CodeIndexOutOfRange,
		Message: fmt.Sprintf("day index %d out of range [0,%d)", index, n),
		Details: map[string]any{"index": index, "days": n},
	}
}

func errFieldNotNullable(field string) *Error {
	return &Error{
		Status:  422,
		Code:    CodeValidation,
		Message: field + " cannot be null",
		Details: map[string]any{field: "must carry a value when specified"},
	}
}

// NewDraft initializes an empty draft itinerary for a context that has no
// stored document yet.
func NewDraft(contextID domain.ContextID, tag domain.ContextTag, title string, start time.Time, currency string, now time.Time) domain.CentralItinerary {
	return domain.CentralItinerary{
		ID:        domain.ItineraryID(uuid.NewString()),
		Title:     domain.NormalizeTitle(title),
		StartDate: start,
		EndDate:   start,
		Status:    domain.ItineraryStatusDraft,
		Context:   tag,
		ContextID: contextID,
		Pricing:   domain.PricingSummary{Currency: currency},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
