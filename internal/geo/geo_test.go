package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rec struct {
	id       string
	lat, lng *float64
}

func (r rec) Coordinates() (GeoPoint, bool) { return Point(r.lat, r.lng) }

func f(v float64) *float64 { return &v }

var (
	timesSquare  = GeoPoint{Latitude: 40.7580, Longitude: -73.9855}
	empireState  = GeoPoint{Latitude: 40.7484, Longitude: -73.9857}
	centralSouth = GeoPoint{Latitude: 40.7614, Longitude: -73.9776}
)

func TestHaversine_Reflexive(t *testing.T) {
	for _, p := range []GeoPoint{timesSquare, {0, 0}, {90, 180}, {-33.86, 151.21}} {
		assert.Equal(t, 0.0, Haversine(p, p))
	}
}

func TestHaversine_Symmetric(t *testing.T) {
	pairs := [][2]GeoPoint{
		{timesSquare, empireState},
		{{51.5074, -0.1278}, {48.8566, 2.3522}},
		{{-33.86, 151.21}, {35.68, 139.69}},
	}
	for _, p := range pairs {
		assert.InDelta(t, Haversine(p[0], p[1]), Haversine(p[1], p[0]), 1e-9)
	}
}

func TestHaversine_KnownDistances(t *testing.T) {
	// London to Paris is roughly 343.5 km
	assert.InDelta(t, 343.5, Haversine(GeoPoint{51.5074, -0.1278}, GeoPoint{48.8566, 2.3522}), 1.0)
	assert.InDelta(t, 1.07, Haversine(timesSquare, empireState), 0.02)
	assert.Less(t, Haversine(timesSquare, centralSouth), 1.0)
}

func TestHaversine_Antipodal(t *testing.T) {
	d := Haversine(GeoPoint{0, 0}, GeoPoint{0, 180})
	assert.InDelta(t, math.Pi*EarthRadiusKm, d, 1e-6)
	assert.False(t, math.IsNaN(d))
}

func TestHaversine_OutOfRangeIsComputed(t *testing.T) {
	d := Haversine(GeoPoint{120, 400}, GeoPoint{0, 0})
	assert.False(t, math.IsNaN(d))
}

func TestNearby_TimesSquareOneKm(t *testing.T) {
	records := []rec{
		{id: "empire", lat: f(empireState.Latitude), lng: f(empireState.Longitude)},
		{id: "close", lat: f(centralSouth.Latitude), lng: f(centralSouth.Longitude)},
	}

	got := Nearby(records, timesSquare, 1)

	require.Len(t, got, 1)
	assert.Equal(t, "close", got[0].id)
}

func TestNearby_ExcludesMissingCoordinates(t *testing.T) {
	records := []rec{
		{id: "no-lat", lng: f(timesSquare.Longitude)},
		{id: "no-lng", lat: f(timesSquare.Latitude)},
		{id: "none"},
		{id: "here", lat: f(timesSquare.Latitude), lng: f(timesSquare.Longitude)},
	}

	got := Nearby(records, timesSquare, 1000)

	require.Len(t, got, 1)
	assert.Equal(t, "here", got[0].id)
}

func TestNearby_PreservesOrderAndSoundness(t *testing.T) {
	var records []rec
	for i := 0; i < 40; i++ {
		lat := timesSquare.Latitude + float64(i-20)*0.004
		lng := timesSquare.Longitude + float64(i%7-3)*0.003
		r := rec{id: string(rune('a' + i%26)), lat: f(lat), lng: f(lng)}
		if i%9 == 0 {
			r.lng = nil
		}
		records = append(records, r)
	}
	radius := 1.5

	got := Nearby(records, timesSquare, radius)

	kept := map[*float64]bool{}
	for _, r := range got {
		p, ok := r.Coordinates()
		require.True(t, ok)
		assert.LessOrEqual(t, Haversine(timesSquare, p), radius)
		kept[r.lat] = true
	}
	for _, r := range records {
		if kept[r.lat] {
			continue
		}
		p, ok := r.Coordinates()
		if ok {
			assert.Greater(t, Haversine(timesSquare, p), radius)
		}
	}

	idx := 0
	for _, r := range records {
		if idx < len(got) && r.lat == got[idx].lat {
			idx++
		}
	}
	assert.Equal(t, len(got), idx, "output must keep input order")
}

func TestNearby_BoundaryIsInclusive(t *testing.T) {
	r := rec{id: "edge", lat: f(empireState.Latitude), lng: f(empireState.Longitude)}
	d := Haversine(timesSquare, empireState)

	assert.Len(t, Nearby([]rec{r}, timesSquare, d), 1)
}

func TestNearby_EmptyIsNotNil(t *testing.T) {
	got := Nearby([]rec{}, timesSquare, 5)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestParseRadius(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"", 10},
		{"abc", 10},
		{"NaN", 10},
		{"Inf", 10},
		{"-3", 10},
		{"2.5", 2.5},
		{" 25 ", 25},
		{"0", 0},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseRadius(tt.raw, DefaultRadiusKm))
		})
	}
}

func TestParseCenter(t *testing.T) {
	p, ok := ParseCenter("40.7580", "-73.9855")
	require.True(t, ok)
	assert.Equal(t, timesSquare, p)

	_, ok = ParseCenter("40.7", "")
	assert.False(t, ok)
	_, ok = ParseCenter("north", "-73")
	assert.False(t, ok)
	_, ok = ParseCenter("NaN", "1")
	assert.False(t, ok)
	_, ok = ParseCenter("91", "0")
	assert.False(t, ok)
	_, ok = ParseCenter("0", "-181")
	assert.False(t, ok)
}

func TestValidCoordinates(t *testing.T) {
	assert.True(t, ValidCoordinates(timesSquare))
	assert.True(t, ValidCoordinates(GeoPoint{-90, 180}))
	assert.False(t, ValidCoordinates(GeoPoint{91, 0}))
	assert.False(t, ValidCoordinates(GeoPoint{0, -181}))
}
