package domain

import "time"

// AccommodationOption is one of up to three competing lodging choices for a day,
// tagged Option 1..3 for side-by-side comparison. A stay spanning several nights
// is attached to its check-in day only; summing options across days therefore
// never double-counts a stay.
type AccommodationOption struct {
	ID     AccommodationID `json:"id"`
	Option int             `json:"option"`

	HotelName string `json:"hotelName"`
	RoomType  string `json:"roomType,omitempty"`

	Nights        int     `json:"nights"`
	PricePerNight float64 `json:"pricePerNight"`
	Rooms         int     `json:"rooms"`

	ExtraBeds        int `json:"extraBeds"`
	NumberOfChildren int `json:"numberOfChildren"`

	CheckIn  time.Time `json:"checkIn"`
	CheckOut time.Time `json:"checkOut"`
}

// Total is the full price of the stay: per-night price times nights times rooms.
func (a AccommodationOption) Total() float64 {
	return a.PricePerNight * float64(a.Nights) * float64(a.Rooms)
}
