package domain

import "fmt"

// Validate checks the document invariants that every persisted itinerary must
// satisfy. Store adapters reject payloads that fail here at load time rather
// than letting malformed fields propagate into pricing math.
func (it CentralItinerary) Validate() error {
	if it.ContextID == "" {
		return fmt.Errorf("itinerary %q: missing context id", it.ID)
	}
	if len(it.Days) != it.Duration.Days {
		return fmt.Errorf("itinerary %q: %d days but duration.days=%d", it.ID, len(it.Days), it.Duration.Days)
	}
	if it.Duration.Days >= 1 && it.Duration.Nights != it.Duration.Days-1 {
		return fmt.Errorf("itinerary %q: duration %d days / %d nights", it.ID, it.Duration.Days, it.Duration.Nights)
	}
	for i, d := range it.Days {
		if d.Day != i+1 {
			return fmt.Errorf("itinerary %q: day at index %d numbered %d", it.ID, i, d.Day)
		}
		if i > 0 && d.Date.Before(it.Days[i-1].Date) {
			return fmt.Errorf("itinerary %q: day %d dated before day %d", it.ID, d.Day, d.Day-1)
		}
		if err := validateAccommodations(d.Accommodations); err != nil {
			return fmt.Errorf("itinerary %q: day %d: %w", it.ID, d.Day, err)
		}
	}
	return nil
}

func validateAccommodations(opts []AccommodationOption) error {
	if len(opts) > 3 {
		return fmt.Errorf("%d accommodation options, max 3", len(opts))
	}
	seen := map[int]bool{}
	for _, a := range opts {
		if a.Option < 1 || a.Option > 3 {
			return fmt.Errorf("accommodation option tag %d out of range 1..3", a.Option)
		}
		if seen[a.Option] {
			return fmt.Errorf("duplicate accommodation option tag %d", a.Option)
		}
		seen[a.Option] = true
		if a.Nights < 0 || a.Rooms < 0 || a.PricePerNight < 0 {
			return fmt.Errorf("accommodation option %d has negative pricing fields", a.Option)
		}
	}
	return nil
}
