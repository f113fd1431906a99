package itinerary

import (
	"fmt"
	"sort"

	"github.com/atlasvoyages/itinerary-api/internal/domain"
)

// Pricing is pure computation: no I/O, and no mutation outside returned values.

// DayServicesCost sums the day's activity, transport and itemized meal costs.
// Meals with a nil cost are not itemized in this schema and price as zero.
func DayServicesCost(d domain.ItineraryDay) float64 {
	var sum float64
	for _, a := range d.Activities {
		sum += a.Cost
	}
	for _, t := range d.Transport {
		sum += t.Cost
	}
	for _, m := range d.Meals {
		if m.Cost != nil {
			sum += *m.Cost
		}
	}
	return sum
}

// DayCost is the day's derived TotalCost: services plus the day's standard
// (option 1) accommodation. Alternative options (2, 3) are priced only in the
// per-option rollups so the trip base cost never counts competing choices twice.
func DayCost(d domain.ItineraryDay) float64 {
	sum := DayServicesCost(d)
	for _, a := range d.Accommodations {
		if a.Option == 1 {
			sum += a.Total()
		}
	}
	return sum
}

// ChildSurcharge is the accommodation child charge: when the option records
// both children and extra beds, 30% of the option's total as a flat surcharge;
// otherwise 25% of per-night room price x nights per child in the party.
func ChildSurcharge(a domain.AccommodationOption, children int) float64 {
	if children <= 0 {
		return 0
	}
	if a.NumberOfChildren > 0 && a.ExtraBeds > 0 {
		return 0.30 * a.Total()
	}
	return 0.25 * a.PricePerNight * float64(a.Nights) * float64(children)
}

// ApplyMarkup computes the markup amount and final price for a base cost.
// A slab configuration with a gap fails with NO_MATCHING_SLAB rather than
// silently defaulting to zero markup.
func ApplyMarkup(base float64, cfg domain.MarkupConfig) (markup, final float64, err error) {
	switch cfg.Type {
	case domain.MarkupTypePercentage:
		markup = base * cfg.Percentage / 100
	case domain.MarkupTypeFixed:
		markup = cfg.FixedAmount
	case domain.MarkupTypeSlab:
		pct, ok := matchSlab(base, cfg.Slabs)
		if !ok {
			return 0, 0, &Error{
				Status:  422,
				Code:    CodeNoMatchingSlab,
				Message: fmt.Sprintf("no markup slab covers base cost %.2f", base),
				Details: map[string]any{"baseCost": base},
			}
		}
		markup = base * pct / 100
	default:
		return 0, 0, &Error{
			Status:  422,
			Code:    CodeValidation,
			Message: fmt.Sprintf("unknown markup type %q", cfg.Type),
		}
	}
	return markup, base + markup, nil
}

func matchSlab(base float64, slabs []domain.MarkupSlab) (float64, bool) {
	for _, s := range slabs {
		if s.Matches(base) {
			return s.Percentage, true
		}
	}
	return 0, false
}

// RecalculateTripPricing recomputes the trip-level rollup from the per-day
// totals. BaseCost is the sum of days' TotalCost; there is deliberately no
// second summation path that could drift from the day-level values.
func RecalculateTripPricing(doc domain.CentralItinerary, cfg domain.MarkupConfig) (domain.CentralItinerary, error) {
	var base float64
	for _, d := range doc.Days {
		base += d.TotalCost
	}
	markup, final, err := ApplyMarkup(base, cfg)
	if err != nil {
		return domain.CentralItinerary{}, err
	}
	doc.Pricing.BaseCost = base
	doc.Pricing.Markup = markup
	doc.Pricing.FinalPrice = final
	doc.Pricing.MarkupType = cfg.Type
	return doc, nil
}

// PriceOptions prices each tagged accommodation option across the whole trip.
// Options with no accommodations and a zero base are omitted. The per-person
// split is totalPrice/pax with no child discount; surcharges are added on top
// of the child share.
func PriceOptions(doc domain.CentralItinerary, party PartyComposition, cfg domain.MarkupConfig) ([]domain.AccommodationPricingOption, error) {
	type acc struct {
		total     float64
		surcharge float64
		count     int
	}
	byTag := map[int]*acc{}
	for _, d := range doc.Days {
		for _, a := range d.Accommodations {
			e := byTag[a.Option]
			if e == nil {
				e = &acc{}
				byTag[a.Option] = e
			}
			e.total += a.Total()
			e.surcharge += ChildSurcharge(a, party.Children)
			e.count++
		}
	}

	tags := make([]int, 0, len(byTag))
	for tag := range byTag {
		tags = append(tags, tag)
	}
	sort.Ints(tags)

	out := make([]domain.AccommodationPricingOption, 0, len(tags))
	for _, tag := range tags {
		e := byTag[tag]
		if e.count == 0 && e.total == 0 {
			continue
		}
		base := e.total + e.surcharge
		markup, final, err := ApplyMarkup(base, cfg)
		if err != nil {
			return nil, err
		}
		opt := domain.AccommodationPricingOption{
			Option:     tag,
			BaseTotal:  base,
			Markup:     markup,
			FinalTotal: final,
		}
		if pax := party.Pax(); pax > 0 {
			opt.AdultPrice = e.total / float64(pax)
			if party.Children > 0 {
				opt.ChildPrice = opt.AdultPrice + e.surcharge/float64(party.Children)
			}
		}
		out = append(out, opt)
	}
	return out, nil
}
