// Package geo computes great-circle distances and filters locatable records
// by distance from a center point.
package geo

import (
	"math"
	"strconv"
	"strings"
)

const (
	EarthRadiusKm    = 6371.0
	DefaultRadiusKm  = 10.0
	degreesToRadians = math.Pi / 180.0
)

// GeoPoint is a latitude/longitude pair in degrees.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Locatable is implemented by records that may carry coordinates.
// ok is false when either coordinate is missing.
type Locatable interface {
	Coordinates() (p GeoPoint, ok bool)
}

// Point builds a GeoPoint from optional coordinates. Both must be present.
func Point(lat, lng *float64) (GeoPoint, bool) {
	if lat == nil || lng == nil {
		return GeoPoint{}, false
	}
	return GeoPoint{Latitude: *lat, Longitude: *lng}, true
}

// Haversine returns the great-circle distance between a and b in kilometers.
// Inputs are not range checked.
func Haversine(a, b GeoPoint) float64 {
	dLat := (b.Latitude - a.Latitude) * degreesToRadians
	dLon := (b.Longitude - a.Longitude) * degreesToRadians
	lat1 := a.Latitude * degreesToRadians
	lat2 := b.Latitude * degreesToRadians

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon

	// rounding can push h a hair past 1 for antipodal points
	h = math.Min(math.Max(h, 0), 1)

	return 2 * EarthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// Within reports whether r has coordinates and lies at most radiusKm from center.
func Within(r Locatable, center GeoPoint, radiusKm float64) bool {
	p, ok := r.Coordinates()
	if !ok {
		return false
	}
	return Haversine(center, p) <= radiusKm
}

// Nearby returns the records within radiusKm of center, in input order.
// Records without a full coordinate pair are always excluded.
func Nearby[T Locatable](records []T, center GeoPoint, radiusKm float64) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if Within(r, center, radiusKm) {
			out = append(out, r)
		}
	}
	return out
}

// ParseRadius parses a radius query value in kilometers. Empty, unparsable,
// negative or non-finite values fall back to def.
func ParseRadius(raw string, def float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return def
	}
	return v
}

// ParseCenter parses lat/lng query values. ok is false unless both are finite
// numbers forming a valid position.
func ParseCenter(lat, lng string) (GeoPoint, bool) {
	la, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil || math.IsNaN(la) || math.IsInf(la, 0) {
		return GeoPoint{}, false
	}
	lo, err := strconv.ParseFloat(strings.TrimSpace(lng), 64)
	if err != nil || math.IsNaN(lo) || math.IsInf(lo, 0) {
		return GeoPoint{}, false
	}
	p := GeoPoint{Latitude: la, Longitude: lo}
	return p, ValidCoordinates(p)
}

// ValidCoordinates reports whether the pair is a real position on Earth.
func ValidCoordinates(p GeoPoint) bool {
	return p.Latitude >= -90 && p.Latitude <= 90 && p.Longitude >= -180 && p.Longitude <= 180
}
