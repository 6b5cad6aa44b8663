package geo

import "math"

const earthRadiusKm = 6371

// DefaultBaseRadiusKm is the distance covered by the flat base charge.
const DefaultBaseRadiusKm = 5

// Point is a WGS84 coordinate pair.
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Schedule describes tiered delivery pricing: a flat charge within
// BaseRadiusKm and a per-kilometre rate on the excess distance.
type Schedule struct {
	BaseCharge     float64 `json:"base_charge"`
	ExtraRatePerKm float64 `json:"extra_rate_per_km"`
	BaseRadiusKm   float64 `json:"base_radius_km"`
}

// Bounds is an inclusive rectangular region.
type Bounds struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

// SriLankaBounds covers the serviceable delivery region.
var SriLankaBounds = Bounds{MinLat: 5.9, MaxLat: 9.8, MinLng: 79.5, MaxLng: 81.9}

// HaversineKm computes the great-circle distance between two points in
// kilometres, rounded to two decimal places.
func HaversineKm(a, b Point) float64 {
	dLat := toRadians(b.Latitude - a.Latitude)
	dLng := toRadians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(a.Latitude))*math.Cos(toRadians(b.Latitude))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return round2(earthRadiusKm * c)
}

// Fee computes the delivery fee for the given distance. Distances up to and
// including the base radius cost the flat base charge; only the excess
// distance is billed per kilometre. The step at the boundary is deliberate
// pricing policy.
func Fee(distanceKm float64, s Schedule) float64 {
	radius := s.BaseRadiusKm
	if radius <= 0 {
		radius = DefaultBaseRadiusKm
	}
	if distanceKm <= radius {
		return round2(s.BaseCharge)
	}
	return round2(s.BaseCharge + (distanceKm-radius)*s.ExtraRatePerKm)
}

// Contains reports whether the point lies within the bounds, edges included.
func (b Bounds) Contains(p Point) bool {
	return p.Latitude >= b.MinLat && p.Latitude <= b.MaxLat &&
		p.Longitude >= b.MinLng && p.Longitude <= b.MaxLng
}

// WithinRadiusKm reports whether p lies within radiusKm of center.
func WithinRadiusKm(p, center Point, radiusKm float64) bool {
	return HaversineKm(p, center) <= radiusKm
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
