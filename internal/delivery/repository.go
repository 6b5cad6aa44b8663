package delivery

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agro-link/agro_link/internal/geo"
)

// ErrListingNotFound indicates the listing does not exist.
var ErrListingNotFound = errors.New("listing not found")

// Repository persists produce listings.
type Repository interface {
	Create(ctx context.Context, listing Listing) error
	Get(ctx context.Context, id string) (Listing, error)
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed listing repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new listing.
func (r *PostgresRepository) Create(ctx context.Context, listing Listing) error {
	listingID, err := uuid.Parse(listing.ID)
	if err != nil {
		return err
	}
	var lat, lng *float64
	if listing.Pickup != nil {
		lat = &listing.Pickup.Latitude
		lng = &listing.Pickup.Longitude
	}
	_, err = r.db.Exec(ctx, `INSERT INTO listings (id, farmer_id, name, pickup_lat, pickup_lng, base_charge, extra_rate_per_km, base_radius_km, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		listingID, listing.FarmerID, listing.Name, lat, lng,
		listing.Schedule.BaseCharge, listing.Schedule.ExtraRatePerKm, listing.Schedule.BaseRadiusKm,
		listing.CreatedAt.UTC())
	return err
}

// Get fetches a listing by identifier.
func (r *PostgresRepository) Get(ctx context.Context, id string) (Listing, error) {
	listingID, err := uuid.Parse(id)
	if err != nil {
		return Listing{}, ErrListingNotFound
	}

	row := r.db.QueryRow(ctx, `SELECT id, farmer_id, name, pickup_lat, pickup_lng, base_charge, extra_rate_per_km, base_radius_km, created_at
        FROM listings WHERE id = $1`, listingID)

	var (
		dbID      uuid.UUID
		lat, lng  *float64
		createdAt time.Time
		listing   Listing
	)
	err = row.Scan(&dbID, &listing.FarmerID, &listing.Name, &lat, &lng,
		&listing.Schedule.BaseCharge, &listing.Schedule.ExtraRatePerKm, &listing.Schedule.BaseRadiusKm, &createdAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Listing{}, ErrListingNotFound
	}
	if err != nil {
		return Listing{}, err
	}

	listing.ID = dbID.String()
	listing.CreatedAt = createdAt.UTC()
	if lat != nil && lng != nil {
		listing.Pickup = &geo.Point{Latitude: *lat, Longitude: *lng}
	}
	return listing, nil
}
