package itinerary

import (
	"math"
	"testing"

	"github.com/atlasvoyages/itinerary-api/internal/domain"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func f64ptr(v float64) *float64 { return &v }

func slabConfig() domain.MarkupConfig {
	return domain.MarkupConfig{
		Type: domain.MarkupTypeSlab,
		Slabs: []domain.MarkupSlab{
			{MinAmount: 0, MaxAmount: f64ptr(5000), Percentage: 10},
			{MinAmount: 5001, MaxAmount: f64ptr(10000), Percentage: 8},
			{MinAmount: 10001, Percentage: 7},
		},
	}
}

func TestApplyMarkup_Percentage(t *testing.T) {
	t.Parallel()

	markup, final, err := ApplyMarkup(350, domain.MarkupConfig{Type: domain.MarkupTypePercentage, Percentage: 15})
	if err != nil {
		t.Fatalf("ApplyMarkup: %v", err)
	}
	if !approx(markup, 52.5) || !approx(final, 402.5) {
		t.Fatalf("markup=%v final=%v, want 52.5/402.5", markup, final)
	}
}

func TestApplyMarkup_Fixed(t *testing.T) {
	t.Parallel()

	markup, final, err := ApplyMarkup(350, domain.MarkupConfig{Type: domain.MarkupTypeFixed, FixedAmount: 75})
	if err != nil {
		t.Fatalf("ApplyMarkup: %v", err)
	}
	if !approx(markup, 75) || !approx(final, 425) {
		t.Fatalf("markup=%v final=%v, want 75/425", markup, final)
	}
}

func TestApplyMarkup_SlabBoundaries(t *testing.T) {
	t.Parallel()

	cfg := slabConfig()
	cases := []struct {
		base       float64
		wantMarkup float64
	}{
		{base: 0, wantMarkup: 0},
		{base: 4999, wantMarkup: 499.9},
		{base: 5000, wantMarkup: 500},     // upper edge of the first slab
		{base: 5001, wantMarkup: 400.08},  // first value of the second slab
		{base: 10000, wantMarkup: 800},
		{base: 10001, wantMarkup: 700.07}, // unbounded last slab
		{base: 250000, wantMarkup: 17500},
	}
	for _, tc := range cases {
		markup, final, err := ApplyMarkup(tc.base, cfg)
		if err != nil {
			t.Fatalf("ApplyMarkup(%v): %v", tc.base, err)
		}
		if !approx(markup, tc.wantMarkup) {
			t.Fatalf("ApplyMarkup(%v) markup=%v, want %v", tc.base, markup, tc.wantMarkup)
		}
		if !approx(final, tc.base+tc.wantMarkup) {
			t.Fatalf("ApplyMarkup(%v) final=%v, want %v", tc.base, final, tc.base+tc.wantMarkup)
		}
	}
}

func TestApplyMarkup_SlabGapFailsLoudly(t *testing.T) {
	t.Parallel()

	cfg := domain.MarkupConfig{
		Type: domain.MarkupTypeSlab,
		Slabs: []domain.MarkupSlab{
			{MinAmount: 0, MaxAmount: f64ptr(100), Percentage: 10},
			{MinAmount: 200, Percentage: 5},
		},
	}
	_, _, err := ApplyMarkup(150, cfg)
	if !HasCode(err, CodeNoMatchingSlab) {
		t.Fatalf("err=%v, want NO_MATCHING_SLAB", err)
	}
}

func TestDayCost_MealsNotItemizedPriceAsZero(t *testing.T) {
	t.Parallel()

	d := domain.ItineraryDay{
		Activities: []domain.Activity{{Name: "Museum", Cost: 30}},
		Transport:  []domain.TransportSegment{{Mode: "train", Cost: 20}},
		Meals: []domain.Meal{
			{Type: domain.MealTypeBreakfast},               // not itemized
			{Type: domain.MealTypeDinner, Cost: f64ptr(25)},
		},
	}
	if got := DayCost(d); !approx(got, 75) {
		t.Fatalf("DayCost=%v, want 75", got)
	}
}

func TestDayCost_CountsOnlyStandardOptionAccommodation(t *testing.T) {
	t.Parallel()

	d := domain.ItineraryDay{
		Accommodations: []domain.AccommodationOption{
			{ID: "a1", Option: 1, Nights: 2, PricePerNight: 100, Rooms: 1},
			{ID: "a2", Option: 2, Nights: 2, PricePerNight: 500, Rooms: 1},
			{ID: "a3", Option: 3, Nights: 2, PricePerNight: 900, Rooms: 1},
		},
	}
	// Competing options 2 and 3 are priced in the per-option rollups only.
	if got := DayCost(d); !approx(got, 200) {
		t.Fatalf("DayCost=%v, want 200", got)
	}
}

func TestChildSurcharge_FlatWhenExtraBedsRecorded(t *testing.T) {
	t.Parallel()

	a := domain.AccommodationOption{
		Option: 1, Nights: 2, PricePerNight: 100, Rooms: 1,
		NumberOfChildren: 1, ExtraBeds: 1,
	}
	// 30% of the option total (200).
	if got := ChildSurcharge(a, 1); !approx(got, 60) {
		t.Fatalf("ChildSurcharge=%v, want 60", got)
	}
}

func TestChildSurcharge_PerNightWithoutExtraBeds(t *testing.T) {
	t.Parallel()

	a := domain.AccommodationOption{Option: 1, Nights: 2, PricePerNight: 100, Rooms: 1}
	// 25% of per-night price x nights, per child in the party.
	if got := ChildSurcharge(a, 2); !approx(got, 100) {
		t.Fatalf("ChildSurcharge=%v, want 100", got)
	}
	if got := ChildSurcharge(a, 0); got != 0 {
		t.Fatalf("ChildSurcharge with no children=%v, want 0", got)
	}
}

func TestPriceOptions_PerPersonSplitAndSurcharge(t *testing.T) {
	t.Parallel()

	doc := domain.CentralItinerary{
		ContextID: "ctx-1",
		Days: []domain.ItineraryDay{
			{
				ID: "d1", Day: 1,
				Accommodations: []domain.AccommodationOption{
					{ID: "a1", Option: 1, Nights: 2, PricePerNight: 100, Rooms: 1},
					{ID: "a2", Option: 2, Nights: 2, PricePerNight: 150, Rooms: 1},
				},
			},
		},
	}
	cfg := domain.MarkupConfig{Type: domain.MarkupTypePercentage, Percentage: 10}

	opts, err := PriceOptions(doc, PartyComposition{Adults: 2, Children: 1}, cfg)
	if err != nil {
		t.Fatalf("PriceOptions: %v", err)
	}
	if len(opts) != 2 {
		t.Fatalf("len(opts)=%d, want 2", len(opts))
	}

	// Option 1: total 200, surcharge 0.25*100*2*1=50, base 250, markup 25.
	o1 := opts[0]
	if o1.Option != 1 || !approx(o1.BaseTotal, 250) || !approx(o1.Markup, 25) || !approx(o1.FinalTotal, 275) {
		t.Fatalf("option1=%+v", o1)
	}
	// Per-person split is total/pax with no child discount; the surcharge
	// lands on the child share only.
	if !approx(o1.AdultPrice, 200.0/3) || !approx(o1.ChildPrice, 200.0/3+50) {
		t.Fatalf("option1 split=%v/%v", o1.AdultPrice, o1.ChildPrice)
	}

	// Option 2: total 300, surcharge 0.25*150*2*1=75, base 375.
	o2 := opts[1]
	if o2.Option != 2 || !approx(o2.BaseTotal, 375) || !approx(o2.FinalTotal, 412.5) {
		t.Fatalf("option2=%+v", o2)
	}
}

func TestRecalculateTripPricing_SumsDayTotals(t *testing.T) {
	t.Parallel()

	doc := domain.CentralItinerary{
		ContextID: "ctx-1",
		Days: []domain.ItineraryDay{
			{ID: "d1", Day: 1, TotalCost: 120},
			{ID: "d2", Day: 2, TotalCost: 80},
		},
	}
	got, err := RecalculateTripPricing(doc, domain.MarkupConfig{Type: domain.MarkupTypePercentage, Percentage: 15})
	if err != nil {
		t.Fatalf("RecalculateTripPricing: %v", err)
	}
	if !approx(got.Pricing.BaseCost, 200) || !approx(got.Pricing.Markup, 30) || !approx(got.Pricing.FinalPrice, 230) {
		t.Fatalf("pricing=%+v", got.Pricing)
	}
	if got.Pricing.MarkupType != domain.MarkupTypePercentage {
		t.Fatalf("markup type=%s", got.Pricing.MarkupType)
	}
}
