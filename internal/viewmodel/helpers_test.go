package viewmodel

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/ngmaloney/weather-terminal/internal/database"
	"github.com/ngmaloney/weather-terminal/internal/devicelocation"
	"github.com/ngmaloney/weather-terminal/internal/geocoding"
	"github.com/ngmaloney/weather-terminal/internal/openmeteo"
	"github.com/ngmaloney/weather-terminal/internal/repository"
	"github.com/ngmaloney/weather-terminal/internal/result"
	"github.com/ngmaloney/weather-terminal/internal/store"
)

const londonResults = `[
 {"name": "London", "lat": 51.5073219, "lon": -0.1276474, "country": "GB", "state": "England"},
 {"name": "London", "lat": 51.5085, "lon": -0.1257, "country": "GB", "state": "England"},
 {"name": "London", "lat": 42.9832406, "lon": -81.243372, "country": "CA", "state": "Ontario"}
]`

// apiServer serves the forecast and geocoding endpoints from fixtures.
type apiServer struct {
	*httptest.Server

	mu          sync.Mutex
	failHourly  bool
	failDaily   bool
	failGeo     bool
	emptyHourly bool
}

func newAPIServer(t *testing.T) *apiServer {
	t.Helper()
	fixture := func(name string) []byte {
		data, err := os.ReadFile("../../testdata/" + name)
		if err != nil {
			t.Fatalf("reading fixture: %v", err)
		}
		return data
	}
	hourly := fixture("openmeteo_hourly_response.json")
	daily := fixture("openmeteo_daily_response.json")
	reverse := fixture("geocoding_reverse_response.json")

	s := &apiServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		failHourly, failDaily, failGeo := s.failHourly, s.failDaily, s.failGeo
		emptyHourly := s.emptyHourly
		s.mu.Unlock()

		q := r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/v1/forecast" && q.Get("hourly") != "":
			if failHourly {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			if emptyHourly {
				w.Write([]byte(`{"hourly":{"time":[]}}`))
				return
			}
			w.Write(hourly)
		case r.URL.Path == "/v1/forecast" && q.Get("daily") != "":
			if failDaily {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.Write(daily)
		case r.URL.Path == "/geo/1.0/reverse":
			if failGeo {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.Write(reverse)
		case r.URL.Path == "/geo/1.0/direct":
			if q.Get("q") == "London" {
				w.Write([]byte(londonResults))
				return
			}
			w.Write([]byte(`[]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(s.Close)
	return s
}

type stack struct {
	weather *repository.WeatherRepository
	places  *repository.LocationRepository
	local   *repository.LocalDatabaseRepository
}

func newStack(t *testing.T, api *apiServer) *stack {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	local := repository.NewLocalDatabaseRepository(store.New(db))
	forecasts := openmeteo.NewClient(api.URL, 2*time.Second)
	geo := geocoding.NewClient(api.URL, "test-key", 2*time.Second)

	return &stack{
		weather: repository.NewWeatherRepository(forecasts, nil, local),
		places:  repository.NewLocationRepository(geo),
		local:   local,
	}
}

// blockingLocator never resolves until its context is canceled.
type blockingLocator struct {
	canceled chan struct{}
}

func (b *blockingLocator) Location(ctx context.Context) <-chan result.Result[devicelocation.Coordinate] {
	return result.Stream(ctx, func(ctx context.Context) result.Result[devicelocation.Coordinate] {
		<-ctx.Done()
		close(b.canceled)
		return result.Error[devicelocation.Coordinate]("canceled")
	})
}

// switchLocator hands out the first locator once, then the second.
type switchLocator struct {
	mu     sync.Mutex
	first  devicelocation.Client
	second devicelocation.Client
	used   bool
}

func (s *switchLocator) Location(ctx context.Context) <-chan result.Result[devicelocation.Coordinate] {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.used {
		s.used = true
		return s.first.Location(ctx)
	}
	return s.second.Location(ctx)
}

type failingLocator struct{ msg string }

func (f failingLocator) Location(ctx context.Context) <-chan result.Result[devicelocation.Coordinate] {
	return result.Stream(ctx, func(ctx context.Context) result.Result[devicelocation.Coordinate] {
		return result.Error[devicelocation.Coordinate](f.msg)
	})
}

// emptyLocator reports success without a position.
type emptyLocator struct{}

func (emptyLocator) Location(ctx context.Context) <-chan result.Result[devicelocation.Coordinate] {
	return result.Stream(ctx, func(ctx context.Context) result.Result[devicelocation.Coordinate] {
		return result.Empty[devicelocation.Coordinate]()
	})
}
