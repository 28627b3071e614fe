package openmeteo

import (
	"encoding/json"
	"os"
	"testing"
)

func loadHourly(t *testing.T) *HourlyDTO {
	t.Helper()
	data, err := os.ReadFile("../../testdata/openmeteo_hourly_response.json")
	if err != nil {
		t.Fatalf("reading fixture: %v", err)
	}
	var dto HourlyDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		t.Fatalf("decoding fixture: %v", err)
	}
	return &dto
}

func TestHourlyDTO_ToHourlyForecasts(t *testing.T) {
	forecasts := loadHourly(t).ToHourlyForecasts()

	if len(forecasts) != 2 {
		t.Fatalf("days = %d, want 2", len(forecasts))
	}
	for day, hours := range forecasts {
		if len(hours) != 24 {
			t.Errorf("day %d has %d hours, want 24", day, len(hours))
		}
		for i, h := range hours {
			if h.Hour != i {
				t.Errorf("day %d entry %d has Hour %d", day, i, h.Hour)
			}
		}
	}

	h, ok := forecasts.At(1, 3)
	if !ok {
		t.Fatal("At(1, 3) missing")
	}
	// index 27 in the fixture
	if h.Temperature != 18.5 {
		t.Errorf("Temperature = %v, want 18.5", h.Temperature)
	}
	if h.Time.Day() != 28 || h.Time.Hour() != 3 {
		t.Errorf("Time = %v, want Nov 28 03:00", h.Time)
	}
	if h.Units.Temperature != "°C" {
		t.Errorf("Units.Temperature = %q, want °C", h.Units.Temperature)
	}
	if h.IsDay {
		t.Error("03:00 should not be day")
	}
}

func TestHourlyDTO_ShortSeries(t *testing.T) {
	var dto HourlyDTO
	dto.Hourly.Time = []string{"2025-11-27T00:00", "2025-11-27T01:00"}
	dto.Hourly.Temperature = []float64{1}

	f := dto.ToHourlyForecasts()
	h, ok := f.At(0, 1)
	if !ok {
		t.Fatal("At(0, 1) missing")
	}
	if h.Temperature != 0 {
		t.Errorf("missing series value = %v, want 0", h.Temperature)
	}
}

func TestDailyDTO_ToDailyForecasts(t *testing.T) {
	data, err := os.ReadFile("../../testdata/openmeteo_daily_response.json")
	if err != nil {
		t.Fatalf("reading fixture: %v", err)
	}
	var dto DailyDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		t.Fatalf("decoding fixture: %v", err)
	}

	days := dto.ToDailyForecasts()
	if len(days) != 3 {
		t.Fatalf("len = %d, want 3", len(days))
	}

	second := days[1]
	if second.TempMax != 7.1 || second.TempMin != 1.0 {
		t.Errorf("temps = %v/%v, want 7.1/1.0", second.TempMax, second.TempMin)
	}
	if second.Conditions() != "Rain" {
		t.Errorf("Conditions() = %s, want Rain", second.Conditions())
	}
	if second.Date.Day() != 28 {
		t.Errorf("Date = %v, want the 28th", second.Date)
	}
	if second.Sunrise.Hour() != 6 || second.Sunrise.Minute() != 59 {
		t.Errorf("Sunrise = %v, want 06:59", second.Sunrise)
	}
}
