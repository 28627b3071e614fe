package models

import (
	"math"
	"testing"
)

func TestRoundToFour(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{40.712776, 40.7128},
		{-74.005974, -74.006},
		{51.50735, 51.5074},
		{0, 0},
		{12.3, 12.3},
	}

	for _, tt := range tests {
		if got := RoundToFour(tt.in); got != tt.want {
			t.Errorf("RoundToFour(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRoundToFour_AtMostFourDecimals(t *testing.T) {
	for _, v := range []float64{1.23456789, -33.868820, 139.691706, 89.99999, -179.123449} {
		got := RoundToFour(v)
		scaled := got * 10000
		if math.Abs(scaled-math.Round(scaled)) > 1e-6 {
			t.Errorf("RoundToFour(%v) = %v has more than 4 decimals", v, got)
		}
	}
}

func TestLocation_LatKey(t *testing.T) {
	loc := Location{Lat: 40.7128, Long: -74.006}
	if got := loc.LatKey(); got != "40.7128" {
		t.Errorf("LatKey() = %q, want 40.7128", got)
	}
}

func TestLocation_DisplayName(t *testing.T) {
	tests := []struct {
		name string
		loc  Location
		want string
	}{
		{"full", Location{City: "New York", State: "New York", Country: "US"}, "New York, New York, US"},
		{"no state", Location{City: "Paris", Country: "FR"}, "Paris, FR"},
		{"empty", Location{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.loc.DisplayName(); got != tt.want {
				t.Errorf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHaversineDistance(t *testing.T) {
	// New York to Boston is roughly 190 miles
	d := HaversineDistance(40.7128, -74.0060, 42.3601, -71.0589)
	if d < 180 || d > 200 {
		t.Errorf("HaversineDistance(NYC, BOS) = %.1f, want ~190", d)
	}

	if d := HaversineDistance(10, 10, 10, 10); d != 0 {
		t.Errorf("HaversineDistance(same point) = %v, want 0", d)
	}
}
