package delivery

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/agro-link/agro_link/internal/geo"
)

func seedListing(t *testing.T, repo Repository, pickup *geo.Point) Listing {
	t.Helper()
	listing := Listing{
		ID:        uuid.NewString(),
		FarmerID:  uuid.NewString(),
		Name:      "Carrots 1kg",
		Pickup:    pickup,
		Schedule:  geo.Schedule{BaseCharge: 150, ExtraRatePerKm: 20, BaseRadiusKm: 5},
		CreatedAt: time.Now().UTC(),
	}
	if err := repo.Create(context.Background(), listing); err != nil {
		t.Fatalf("create listing: %v", err)
	}
	return listing
}

func TestQuoteWithinBaseRadius(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo, geo.SriLankaBounds)

	pickup := &geo.Point{Latitude: 6.9271, Longitude: 79.8612}
	listing := seedListing(t, repo, pickup)

	// A destination roughly 1.5km away pays only the base charge.
	quote, err := svc.QuoteFor(context.Background(), listing.ID, geo.Point{Latitude: 6.9350, Longitude: 79.8500})
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if quote.DistanceKm > 5 {
		t.Fatalf("test points further apart than expected: %v km", quote.DistanceKm)
	}
	if quote.Fee != 150 {
		t.Fatalf("expected flat base charge, got %v", quote.Fee)
	}
}

func TestQuoteBeyondBaseRadius(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo, geo.SriLankaBounds)

	pickup := &geo.Point{Latitude: 6.9271, Longitude: 79.8612}
	listing := seedListing(t, repo, pickup)

	dest := geo.Point{Latitude: 7.2906, Longitude: 80.6337} // Kandy, ~94km
	quote, err := svc.QuoteFor(context.Background(), listing.ID, dest)
	if err != nil {
		t.Fatalf("quote: %v", err)
	}

	want := geo.Fee(quote.DistanceKm, listing.Schedule)
	if quote.Fee != want {
		t.Fatalf("expected fee %v, got %v", want, quote.Fee)
	}
	if quote.Fee <= 150 {
		t.Fatalf("expected per-km charge on top of base, got %v", quote.Fee)
	}
}

func TestQuoteRejectsOutOfRegionDestination(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo, geo.SriLankaBounds)

	listing := seedListing(t, repo, &geo.Point{Latitude: 6.9271, Longitude: 79.8612})

	chennai := geo.Point{Latitude: 13.0827, Longitude: 80.2707}
	if _, err := svc.QuoteFor(context.Background(), listing.ID, chennai); !errors.Is(err, ErrOutOfRegion) {
		t.Fatalf("expected ErrOutOfRegion, got %v", err)
	}
}

func TestQuoteListingWithoutPickup(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo, geo.SriLankaBounds)

	listing := seedListing(t, repo, nil)

	_, err := svc.QuoteFor(context.Background(), listing.ID, geo.Point{Latitude: 6.93, Longitude: 79.85})
	if !errors.Is(err, ErrNoPickupLocation) {
		t.Fatalf("expected ErrNoPickupLocation, got %v", err)
	}
}

func TestQuoteUnknownListing(t *testing.T) {
	svc := NewService(NewMemoryRepository(), geo.SriLankaBounds)

	_, err := svc.QuoteFor(context.Background(), uuid.NewString(), geo.Point{Latitude: 6.93, Longitude: 79.85})
	if !errors.Is(err, ErrListingNotFound) {
		t.Fatalf("expected ErrListingNotFound, got %v", err)
	}
}
