package geo_test

import (
	"math"
	"testing"

	"github.com/pitchside/pitchside/internal/app/system/geo"
)

func TestDistanceKm_SamePoint(t *testing.T) {
	points := []struct {
		name     string
		lat, lon float64
	}{
		{"gent", 51.0543, 3.7174},
		{"equator", 0, 0},
		{"antimeridian", 0, 180},
		{"south pole", -90, 0},
	}

	for _, p := range points {
		t.Run(p.name, func(t *testing.T) {
			if d := geo.DistanceKm(p.lat, p.lon, p.lat, p.lon); d != 0 {
				t.Errorf("DistanceKm(p, p) = %v, want 0", d)
			}
		})
	}
}

func TestDistanceKm_Symmetry(t *testing.T) {
	pairs := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
	}{
		{"gent-brussels", 51.0543, 3.7174, 50.8503, 4.3517},
		{"hemispheres", -33.8688, 151.2093, 40.7128, -74.0060},
		{"nearby", 51.0543, 3.7174, 51.06, 3.72},
	}

	for _, p := range pairs {
		t.Run(p.name, func(t *testing.T) {
			ab := geo.DistanceKm(p.lat1, p.lon1, p.lat2, p.lon2)
			ba := geo.DistanceKm(p.lat2, p.lon2, p.lat1, p.lon1)
			if math.Abs(ab-ba) > 1e-9 {
				t.Errorf("asymmetric: a->b %v, b->a %v", ab, ba)
			}
		})
	}
}

func TestDistanceKm_KnownDistances(t *testing.T) {
	// Gent to Brussels is roughly 46 km as the crow flies.
	d := geo.DistanceKm(51.0543, 3.7174, 50.8503, 4.3517)
	if d < 40 || d > 55 {
		t.Errorf("Gent-Brussels distance = %v km, want ~46 km", d)
	}

	// A point ~6 km from the Gent city center.
	near := geo.DistanceKm(51.0543, 3.7174, 51.10, 3.76)
	if near > 10 {
		t.Errorf("nearby point = %v km, want <= 10 km", near)
	}

	// (52.0, 4.0) is roughly 100 km away; must not fall inside a 10 km radius.
	far := geo.DistanceKm(51.0543, 3.7174, 52.0, 4.0)
	if far <= 10 {
		t.Errorf("far point = %v km, want > 10 km", far)
	}
	if far < 90 || far > 120 {
		t.Errorf("far point = %v km, want ~100 km", far)
	}
}

func TestDistanceKm_Finite(t *testing.T) {
	// Out-of-range inputs are accepted and still produce a finite number.
	d := geo.DistanceKm(123.0, -400.0, -91.0, 270.0)
	if math.IsNaN(d) || math.IsInf(d, 0) {
		t.Errorf("DistanceKm out-of-range = %v, want finite", d)
	}
}

func TestRoundKm(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{1.005, 1.0},
		{6.4999, 6.5},
		{0, 0},
		{12.346, 12.35},
		{12.344, 12.34},
	}
	for _, tt := range tests {
		if got := geo.RoundKm(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("RoundKm(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
