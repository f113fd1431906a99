package httpapi

import (
	"time"

	"github.com/oapi-codegen/nullable"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/atlasvoyages/itinerary-api/internal/app/itinerary"
	"github.com/atlasvoyages/itinerary-api/internal/domain"
)

// Wire models for the itinerary endpoints. Dates cross the wire in date-only
// form; PATCH bodies use nullable fields so "omitted", "null" and "value" stay
// distinguishable (null clears a clearable field).

type errorResponse struct {
	Error struct {
		Code      string                            `json:"code"`
		Message   string                            `json:"message"`
		Details   nullable.Nullable[map[string]any] `json:"details,omitempty"`
		RequestId nullable.Nullable[string]         `json:"requestId,omitempty"`
	} `json:"error"`
}

type locationModel struct {
	Name      string   `json:"name"`
	Country   string   `json:"country"`
	City      string   `json:"city"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

type accommodationModel struct {
	Id               string             `json:"id,omitempty"`
	Option           int                `json:"option"`
	HotelName        string             `json:"hotelName"`
	RoomType         string             `json:"roomType,omitempty"`
	Nights           int                `json:"nights"`
	PricePerNight    float64            `json:"pricePerNight"`
	Rooms            int                `json:"rooms"`
	ExtraBeds        int                `json:"extraBeds,omitempty"`
	NumberOfChildren int                `json:"numberOfChildren,omitempty"`
	CheckIn          openapi_types.Date `json:"checkIn"`
	CheckOut         openapi_types.Date `json:"checkOut"`
}

type transportModel struct {
	Mode string  `json:"mode"`
	From string  `json:"from"`
	To   string  `json:"to"`
	Cost float64 `json:"cost"`
}

type activityModel struct {
	Name string  `json:"name"`
	Cost float64 `json:"cost"`
}

type mealModel struct {
	Type string   `json:"type"`
	Cost *float64 `json:"cost,omitempty"`
}

type dayModel struct {
	Id             string               `json:"id"`
	Day            int                  `json:"day"`
	Date           openapi_types.Date   `json:"date"`
	Location       locationModel        `json:"location"`
	Accommodations []accommodationModel `json:"accommodations,omitempty"`
	Transport      []transportModel     `json:"transport,omitempty"`
	Activities     []activityModel      `json:"activities,omitempty"`
	Meals          []mealModel          `json:"meals,omitempty"`
	TotalCost      float64              `json:"totalCost"`
}

type pricingModel struct {
	BaseCost   float64 `json:"baseCost"`
	Markup     float64 `json:"markup"`
	MarkupType string  `json:"markupType"`
	FinalPrice float64 `json:"finalPrice"`
	Currency   string  `json:"currency"`
}

type itineraryResponse struct {
	Id           string             `json:"id"`
	Title        string             `json:"title"`
	StartDate    openapi_types.Date `json:"startDate"`
	EndDate      openapi_types.Date `json:"endDate"`
	Days         []dayModel         `json:"days"`
	DurationDays int                `json:"durationDays"`
	Nights       int                `json:"nights"`
	Pricing      pricingModel       `json:"pricing"`
	Status       string             `json:"status"`
	ContextId    string             `json:"contextId"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

type dayPatchRequest struct {
	Date           nullable.Nullable[openapi_types.Date]   `json:"date,omitempty"`
	Location       nullable.Nullable[locationModel]        `json:"location,omitempty"`
	Accommodations nullable.Nullable[[]accommodationModel] `json:"accommodations,omitempty"`
	Transport      nullable.Nullable[[]transportModel]     `json:"transport,omitempty"`
	Activities     nullable.Nullable[[]activityModel]      `json:"activities,omitempty"`
	Meals          nullable.Nullable[[]mealModel]          `json:"meals,omitempty"`

	// LongForm marks free-text-driven edits, which debounce on the long
	// window instead of the short one.
	LongForm bool `json:"longForm,omitempty"`
}

type statusResponse struct {
	State      string `json:"state"`
	SaveStatus string `json:"saveStatus"`
}

type proposalResponse struct {
	ServiceCosts struct {
		Sightseeing   float64 `json:"sightseeing"`
		Transport     float64 `json:"transport"`
		Dining        float64 `json:"dining"`
		Accommodation float64 `json:"accommodation"`
	} `json:"serviceCosts"`
	Options        []proposalOptionModel `json:"options"`
	LastCalculated time.Time             `json:"lastCalculated"`
}

type proposalOptionModel struct {
	Option     int     `json:"option"`
	BaseTotal  float64 `json:"baseTotal"`
	Markup     float64 `json:"markup"`
	FinalTotal float64 `json:"finalTotal"`
	AdultPrice float64 `json:"adultPrice"`
	ChildPrice float64 `json:"childPrice"`
}

func toLocationModel(l domain.Location) locationModel {
	return locationModel{
		Name:      l.Name,
		Country:   l.Country,
		City:      l.City,
		Latitude:  l.Latitude,
		Longitude: l.Longitude,
	}
}

func toDomainLocation(m locationModel) domain.Location {
	return domain.Location{
		Name:      m.Name,
		Country:   m.Country,
		City:      m.City,
		Latitude:  m.Latitude,
		Longitude: m.Longitude,
	}
}

func toDayModel(d domain.ItineraryDay) dayModel {
	out := dayModel{
		Id:        string(d.ID),
		Day:       d.Day,
		Date:      openapi_types.Date{Time: d.Date},
		Location:  toLocationModel(d.Location),
		TotalCost: d.TotalCost,
	}
	for _, a := range d.Accommodations {
		out.Accommodations = append(out.Accommodations, accommodationModel{
			Id:               string(a.ID),
			Option:           a.Option,
			HotelName:        a.HotelName,
			RoomType:         a.RoomType,
			Nights:           a.Nights,
			PricePerNight:    a.PricePerNight,
			Rooms:            a.Rooms,
			ExtraBeds:        a.ExtraBeds,
			NumberOfChildren: a.NumberOfChildren,
			CheckIn:          openapi_types.Date{Time: a.CheckIn},
			CheckOut:         openapi_types.Date{Time: a.CheckOut},
		})
	}
	for _, t := range d.Transport {
		out.Transport = append(out.Transport, transportModel(t))
	}
	for _, a := range d.Activities {
		out.Activities = append(out.Activities, activityModel(a))
	}
	for _, m := range d.Meals {
		out.Meals = append(out.Meals, mealModel{Type: string(m.Type), Cost: m.Cost})
	}
	return out
}

func toItineraryResponse(doc domain.CentralItinerary) itineraryResponse {
	out := itineraryResponse{
		Id:           string(doc.ID),
		Title:        doc.Title,
		StartDate:    openapi_types.Date{Time: doc.StartDate},
		EndDate:      openapi_types.Date{Time: doc.EndDate},
		Days:         make([]dayModel, 0, len(doc.Days)),
		DurationDays: doc.Duration.Days,
		Nights:       doc.Duration.Nights,
		Pricing: pricingModel{
			BaseCost:   doc.Pricing.BaseCost,
			Markup:     doc.Pricing.Markup,
			MarkupType: string(doc.Pricing.MarkupType),
			FinalPrice: doc.Pricing.FinalPrice,
			Currency:   doc.Pricing.Currency,
		},
		Status:    string(doc.Status),
		ContextId: string(doc.ContextID),
		UpdatedAt: doc.UpdatedAt,
	}
	for _, d := range doc.Days {
		out.Days = append(out.Days, toDayModel(d))
	}
	return out
}

func toProposalResponse(s domain.ProposalSummarySnapshot) proposalResponse {
	var out proposalResponse
	out.ServiceCosts.Sightseeing = s.ServiceCosts.Sightseeing
	out.ServiceCosts.Transport = s.ServiceCosts.Transport
	out.ServiceCosts.Dining = s.ServiceCosts.Dining
	out.ServiceCosts.Accommodation = s.ServiceCosts.Accommodation
	out.Options = make([]proposalOptionModel, 0, len(s.Options))
	for _, o := range s.Options {
		out.Options = append(out.Options, proposalOptionModel(o))
	}
	out.LastCalculated = s.LastCalculated
	return out
}

func toDayPatch(req dayPatchRequest) (itinerary.DayPatch, error) {
	var patch itinerary.DayPatch

	if req.Date.IsSpecified() {
		if req.Date.IsNull() {
			patch.Date = itinerary.Null[time.Time]()
		} else {
			v, err := req.Date.Get()
			if err != nil {
				return itinerary.DayPatch{}, err
			}
			patch.Date = itinerary.Some(v.Time)
		}
	}
	if req.Location.IsSpecified() {
		if req.Location.IsNull() {
			patch.Location = itinerary.Null[domain.Location]()
		} else {
			v, err := req.Location.Get()
			if err != nil {
				return itinerary.DayPatch{}, err
			}
			patch.Location = itinerary.Some(toDomainLocation(v))
		}
	}
	if req.Accommodations.IsSpecified() {
		if req.Accommodations.IsNull() {
			patch.Accommodations = itinerary.Null[[]domain.AccommodationOption]()
		} else {
			ms, err := req.Accommodations.Get()
			if err != nil {
				return itinerary.DayPatch{}, err
			}
			opts := make([]domain.AccommodationOption, 0, len(ms))
			for _, m := range ms {
				opts = append(opts, domain.AccommodationOption{
					ID:               domain.AccommodationID(m.Id),
					Option:           m.Option,
					HotelName:        m.HotelName,
					RoomType:         m.RoomType,
					Nights:           m.Nights,
					PricePerNight:    m.PricePerNight,
					Rooms:            m.Rooms,
					ExtraBeds:        m.ExtraBeds,
					NumberOfChildren: m.NumberOfChildren,
					CheckIn:          m.CheckIn.Time,
					CheckOut:         m.CheckOut.Time,
				})
			}
			patch.Accommodations = itinerary.Some(opts)
		}
	}
	if req.Transport.IsSpecified() {
		if req.Transport.IsNull() {
			patch.Transport = itinerary.Null[[]domain.TransportSegment]()
		} else {
			ms, err := req.Transport.Get()
			if err != nil {
				return itinerary.DayPatch{}, err
			}
			ts := make([]domain.TransportSegment, 0, len(ms))
			for _, m := range ms {
				ts = append(ts, domain.TransportSegment(m))
			}
			patch.Transport = itinerary.Some(ts)
		}
	}
	if req.Activities.IsSpecified() {
		if req.Activities.IsNull() {
			patch.Activities = itinerary.Null[[]domain.Activity]()
		} else {
			ms, err := req.Activities.Get()
			if err != nil {
				return itinerary.DayPatch{}, err
			}
			as := make([]domain.Activity, 0, len(ms))
			for _, m := range ms {
				as = append(as, domain.Activity(m))
			}
			patch.Activities = itinerary.Some(as)
		}
	}
	if req.Meals.IsSpecified() {
		if req.Meals.IsNull() {
			patch.Meals = itinerary.Null[[]domain.Meal]()
		} else {
			ms, err := req.Meals.Get()
			if err != nil {
				return itinerary.DayPatch{}, err
			}
			meals := make([]domain.Meal, 0, len(ms))
			for _, m := range ms {
				meals = append(meals, domain.Meal{Type: domain.MealType(m.Type), Cost: m.Cost})
			}
			patch.Meals = itinerary.Some(meals)
		}
	}
	return patch, nil
}
