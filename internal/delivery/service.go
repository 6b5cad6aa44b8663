package delivery

import (
	"context"
	"errors"

	"github.com/agro-link/agro_link/internal/geo"
)

var (
	// ErrOutOfRegion indicates the destination lies outside the serviceable
	// delivery region, rejected before any fee calculation is attempted.
	ErrOutOfRegion = errors.New("destination outside delivery region")

	// ErrNoPickupLocation indicates the listing carries no pickup coordinates.
	ErrNoPickupLocation = errors.New("listing has no pickup location")
)

// Service computes delivery quotes for listings.
type Service struct {
	repo   Repository
	bounds geo.Bounds
}

// NewService builds a delivery quote service constrained to the given region.
func NewService(repo Repository, bounds geo.Bounds) *Service {
	return &Service{repo: repo, bounds: bounds}
}

// QuoteFor computes the great-circle distance from the listing's pickup point
// to the destination and prices it against the listing's fee schedule.
func (s *Service) QuoteFor(ctx context.Context, listingID string, dest geo.Point) (Quote, error) {
	if !s.bounds.Contains(dest) {
		return Quote{}, ErrOutOfRegion
	}

	listing, err := s.repo.Get(ctx, listingID)
	if err != nil {
		return Quote{}, err
	}
	if listing.Pickup == nil {
		return Quote{}, ErrNoPickupLocation
	}

	distance := geo.HaversineKm(*listing.Pickup, dest)
	return Quote{
		ListingID:  listing.ID,
		DistanceKm: distance,
		Fee:        geo.Fee(distance, listing.Schedule),
	}, nil
}
