package contracttest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/atlasvoyages/itinerary-api/internal/domain"
	docstoreport "github.com/atlasvoyages/itinerary-api/internal/ports/out/docstore"
	fallbackstoreport "github.com/atlasvoyages/itinerary-api/internal/ports/out/fallbackstore"
)

type CleanupFunc = func()

type DocumentStoreFactory func(t *testing.T) (docstoreport.Store, CleanupFunc)
type FallbackStoreFactory func(t *testing.T) (fallbackstoreport.Store, CleanupFunc)

func sampleItinerary(contextID domain.ContextID) domain.CentralItinerary {
	day1 := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	cost := 40.0
	return domain.CentralItinerary{
		ID:        "it-1",
		Title:     "Coastal Circuit",
		StartDate: day1,
		EndDate:   day1.AddDate(0, 0, 1),
		Duration:  domain.Duration{Days: 2, Nights: 1},
		Destinations: []domain.Location{
			{Name: "Lisbon", Country: "Portugal", City: "Lisbon"},
		},
		Days: []domain.ItineraryDay{
			{
				ID:   "d-1",
				Day:  1,
				Date: day1,
				Location: domain.Location{
					Name: "Lisbon", Country: "Portugal", City: "Lisbon",
				},
				Activities: []domain.Activity{{Name: "Tram tour", Cost: 35}},
				Transport:  []domain.TransportSegment{{Mode: "van", From: "LIS", To: "Hotel", Cost: 20}},
				Meals:      []domain.Meal{{Type: domain.MealTypeDinner, Cost: &cost}},
				Accommodations: []domain.AccommodationOption{
					{ID: "a-1", Option: 1, HotelName: "Tagus View", Nights: 1, PricePerNight: 120, Rooms: 1, CheckIn: day1, CheckOut: day1.AddDate(0, 0, 1)},
				},
				TotalCost: 215,
			},
			{
				ID:   "d-2",
				Day:  2,
				Date: day1.AddDate(0, 0, 1),
				Location: domain.Location{
					Name: "Sintra", Country: "Portugal", City: "Sintra",
				},
				TotalCost: 0,
			},
		},
		Pricing:   domain.PricingSummary{BaseCost: 215, Markup: 21.5, MarkupType: domain.MarkupTypePercentage, FinalPrice: 236.5, Currency: "EUR"},
		Status:    domain.ItineraryStatusDraft,
		Context:   domain.ContextTagQuery,
		ContextID: contextID,
		CreatedAt: time.Unix(100, 0).UTC(),
		UpdatedAt: time.Unix(100, 0).UTC(),
	}
}

// RunDocumentStore exercises the docstore.Store contract: not-found on a
// missing context, round-trip fidelity, last-write-wins overwrite, and
// isolation of the stored value from caller-side mutation.
func RunDocumentStore(t *testing.T, newStore DocumentStoreFactory) {
	t.Helper()
	ctx := context.Background()

	store, cleanup := newStore(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	if _, err := store.Get(ctx, "ctx-missing"); !errors.Is(err, docstoreport.ErrNotFound) {
		t.Fatalf("Get(missing) err=%v, want ErrNotFound", err)
	}

	doc := sampleItinerary("ctx-1")
	if err := store.Put(ctx, "ctx-1", doc); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := store.Get(ctx, "ctx-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != doc.ID || got.Title != doc.Title || len(got.Days) != 2 {
		t.Fatalf("round-trip mismatch: %+v", got)
	}
	if got.Days[0].TotalCost != 215 || len(got.Days[0].Accommodations) != 1 {
		t.Fatalf("day payload mismatch: %+v", got.Days[0])
	}
	if got.Pricing.FinalPrice != 236.5 || got.Pricing.Currency != "EUR" {
		t.Fatalf("pricing mismatch: %+v", got.Pricing)
	}

	// Mutating the returned value must not leak back into the store.
	got.Days[0].Activities[0].Cost = 999
	again, err := store.Get(ctx, "ctx-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if again.Days[0].Activities[0].Cost != 35 {
		t.Fatalf("stored value aliased by caller mutation: %v", again.Days[0].Activities[0].Cost)
	}

	// Overwrite semantics: Put is an upsert.
	doc2 := doc.Clone()
	doc2.Title = "Coastal Circuit v2"
	if err := store.Put(ctx, "ctx-1", doc2); err != nil {
		t.Fatalf("Put(overwrite): %v", err)
	}
	got2, err := store.Get(ctx, "ctx-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got2.Title != "Coastal Circuit v2" {
		t.Fatalf("overwrite not visible: %q", got2.Title)
	}
}

// RunFallbackStore exercises the fallbackstore.Store contract.
func RunFallbackStore(t *testing.T, newStore FallbackStoreFactory) {
	t.Helper()

	store, cleanup := newStore(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	if _, ok := store.Get("ctx-missing"); ok {
		t.Fatalf("Get(missing) ok=true, want false")
	}

	doc := sampleItinerary("ctx-1")
	store.Put("ctx-1", doc)
	got, ok := store.Get("ctx-1")
	if !ok {
		t.Fatalf("Get after Put: missing")
	}
	if got.ID != doc.ID || len(got.Days) != 2 {
		t.Fatalf("round-trip mismatch: %+v", got)
	}

	store.Delete("ctx-1")
	if _, ok := store.Get("ctx-1"); ok {
		t.Fatalf("entry survived Delete")
	}

	// Delete of an absent key is a no-op.
	store.Delete("ctx-1")
}
