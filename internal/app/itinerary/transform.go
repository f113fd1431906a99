package itinerary

import (
	"time"

	"github.com/atlasvoyages/itinerary-api/internal/domain"
)

// BuildProposalSnapshot projects a central itinerary into the denormalized
// proposal view. The snapshot is derived, never authoritative: running the
// transform twice over an unchanged document yields structurally equal
// snapshots except for LastCalculated.
func BuildProposalSnapshot(doc domain.CentralItinerary, party PartyComposition, markup domain.MarkupConfig, now time.Time) (domain.ProposalSummarySnapshot, error) {
	var costs domain.ServiceCosts
	for _, d := range doc.Days {
		for _, a := range d.Activities {
			costs.Sightseeing += a.Cost
		}
		for _, t := range d.Transport {
			costs.Transport += t.Cost
		}
		for _, m := range d.Meals {
			if m.Cost != nil {
				costs.Dining += *m.Cost
			}
		}
		for _, a := range d.Accommodations {
			if a.Option == 1 {
				costs.Accommodation += a.Total()
			}
		}
	}

	opts, err := PriceOptions(doc, party, markup)
	if err != nil {
		return domain.ProposalSummarySnapshot{}, err
	}

	return domain.ProposalSummarySnapshot{
		ServiceCosts:   costs,
		Options:        opts,
		LastCalculated: now,
	}, nil
}
