package delivery

import (
	"time"

	"github.com/agro-link/agro_link/internal/geo"
)

// Listing is a produce listing offering delivery from a pickup location.
type Listing struct {
	ID        string
	FarmerID  string
	Name      string
	Pickup    *geo.Point
	Schedule  geo.Schedule
	CreatedAt time.Time
}

// Quote is the computed delivery cost for a destination.
type Quote struct {
	ListingID  string  `json:"listing_id"`
	DistanceKm float64 `json:"distance_km"`
	Fee        float64 `json:"delivery_fee"`
}
