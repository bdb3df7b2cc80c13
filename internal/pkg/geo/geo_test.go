package geo

import (
	"math"
	"testing"
)

func TestDistanceMeters_ZeroForSamePoint(t *testing.T) {
	cases := []struct {
		lat, lon float64
	}{
		{0, 0},
		{11.5564, 104.9282},
		{-33.8688, 151.2093},
	}
	for _, c := range cases {
		got := DistanceMeters(c.lat, c.lon, c.lat, c.lon)
		if got != 0 {
			t.Errorf("DistanceMeters(%v, %v, same) = %v, want 0", c.lat, c.lon, got)
		}
	}
}

func TestDistanceMeters_Symmetric(t *testing.T) {
	lat1, lon1 := 11.5564, 104.9282 // Phnom Penh
	lat2, lon2 := 13.4125, 103.8670 // Siem Reap

	ab := DistanceMeters(lat1, lon1, lat2, lon2)
	ba := DistanceMeters(lat2, lon2, lat1, lon1)
	if math.Abs(ab-ba) > 1e-9 {
		t.Errorf("distance not symmetric: a->b = %v, b->a = %v", ab, ba)
	}
}

func TestDistanceMeters_KnownDistance(t *testing.T) {
	// One degree of latitude on the equator is roughly 111.2 km.
	got := DistanceMeters(0, 0, 1, 0)
	if math.Abs(got-111195) > 200 {
		t.Errorf("DistanceMeters(0,0 -> 1,0) = %v, want ~111195", got)
	}
}

func TestWithinRadius(t *testing.T) {
	centerLat, centerLon := 11.5564, 104.9282

	// The center itself is always inside.
	if !WithinRadius(centerLat, centerLon, centerLat, centerLon, 1) {
		t.Error("center point should be within any positive radius")
	}

	// ~0.045 degrees of latitude is roughly 5 km.
	farLat := centerLat + 0.045
	if WithinRadius(farLat, centerLon, centerLat, centerLon, 200) {
		t.Error("point 5km away should not be within 200m")
	}
	if !WithinRadius(farLat, centerLon, centerLat, centerLon, 6000) {
		t.Error("point 5km away should be within 6000m")
	}
}
