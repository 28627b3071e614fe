package viewmodel

import (
	"context"
	"testing"
	"time"

	"github.com/ngmaloney/weather-terminal/internal/devicelocation"
	"github.com/ngmaloney/weather-terminal/internal/models"
	"github.com/ngmaloney/weather-terminal/internal/repository"
	"github.com/ngmaloney/weather-terminal/internal/result"
)

var (
	nyc       = models.Location{City: "New York", State: "New York", Country: "US", Lat: 40.7128, Long: -74.006}
	someHours = models.HourlyForecasts{0: {{Hour: 0, Temperature: 3}}}
	someDays  = []models.DayWiseForecast{{WeatherCode: 1}}
)

func TestCombine(t *testing.T) {
	prev := UserDataState{Data: &UserData{Location: models.Location{City: "Before"}}}

	tests := []struct {
		name        string
		loc         LocationState
		hourly      HourlyWeatherState
		daily       DailyWeatherState
		wantLoading bool
		wantErr     string
		wantReady   bool
		wantPrev    bool
	}{
		{
			name:        "all loading",
			loc:         LocationState{IsLoading: true},
			hourly:      HourlyWeatherState{IsLoading: true},
			daily:       DailyWeatherState{IsLoading: true},
			wantLoading: true,
			wantPrev:    true,
		},
		{
			name:        "loading beats error",
			loc:         LocationState{Error: "loc failed"},
			hourly:      HourlyWeatherState{IsLoading: true},
			daily:       DailyWeatherState{Forecasts: someDays},
			wantLoading: true,
			wantPrev:    true,
		},
		{
			name:    "location error first",
			loc:     LocationState{Error: "loc failed"},
			hourly:  HourlyWeatherState{Error: "hourly failed"},
			daily:   DailyWeatherState{Error: "daily failed"},
			wantErr: "loc failed",
		},
		{
			name:    "hourly before daily",
			loc:     LocationState{Location: &nyc},
			hourly:  HourlyWeatherState{Error: "hourly failed"},
			daily:   DailyWeatherState{Error: "daily failed"},
			wantErr: "hourly failed",
		},
		{
			name:    "single daily error surfaces verbatim",
			loc:     LocationState{Location: &nyc},
			hourly:  HourlyWeatherState{Forecasts: someHours},
			daily:   DailyWeatherState{Error: repository.MsgNoConnection},
			wantErr: repository.MsgNoConnection,
		},
		{
			name:      "all present",
			loc:       LocationState{Location: &nyc},
			hourly:    HourlyWeatherState{Forecasts: someHours},
			daily:     DailyWeatherState{Forecasts: someDays},
			wantReady: true,
		},
		{
			name:        "pending when a payload is missing",
			loc:         LocationState{Location: &nyc},
			hourly:      HourlyWeatherState{Forecasts: someHours},
			daily:       DailyWeatherState{},
			wantLoading: true,
			wantPrev:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Combine(tt.loc, tt.hourly, tt.daily, prev)

			if got.IsLoading != tt.wantLoading {
				t.Errorf("IsLoading = %v, want %v", got.IsLoading, tt.wantLoading)
			}
			if got.Error != tt.wantErr {
				t.Errorf("Error = %q, want %q", got.Error, tt.wantErr)
			}
			if got.Ready() != tt.wantReady {
				t.Errorf("Ready() = %v, want %v", got.Ready(), tt.wantReady)
			}
			if tt.wantPrev && got.Data != prev.Data {
				t.Errorf("Data = %+v, want previous data kept", got.Data)
			}
			if tt.wantReady && got.Data.Location.City != "New York" {
				t.Errorf("City = %q, want New York", got.Data.Location.City)
			}
		})
	}
}

func TestCombine_ReadyNeverLoading(t *testing.T) {
	locs := []LocationState{{IsLoading: true}, {Location: &nyc}, {Error: "x"}, {}}
	hours := []HourlyWeatherState{{IsLoading: true}, {Forecasts: someHours}, {Error: "y"}, {}}
	days := []DailyWeatherState{{IsLoading: true}, {Forecasts: someDays}, {Error: "z"}, {}}

	for _, l := range locs {
		for _, h := range hours {
			for _, d := range days {
				got := Combine(l, h, d, UserDataState{})
				if got.Ready() && (l.IsLoading || h.IsLoading || d.IsLoading) {
					t.Errorf("ready while a constituent is loading: %+v %+v %+v", l, h, d)
				}
				if got.IsLoading && got.Error != "" {
					t.Errorf("loading snapshot carries error %q", got.Error)
				}
			}
		}
	}
}

func TestMainViewModel_NewYork(t *testing.T) {
	api := newAPIServer(t)
	s := newStack(t, api)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	vm := NewMainViewModel(ctx, devicelocation.NewStatic(40.7128, -74.0060), s.weather, s.places)
	if got := vm.UserData().Get(); !got.IsLoading {
		t.Errorf("initial state = %+v, want loading", got)
	}

	vm.LoadData()
	vm.Wait()

	got := vm.UserData().Get()
	if got.IsLoading {
		t.Fatalf("IsLoading = true after Wait: %+v", got)
	}
	if got.Error != "" {
		t.Fatalf("Error = %q, want empty", got.Error)
	}
	if got.Data == nil {
		t.Fatal("Data = nil")
	}
	if got.Data.Location.City != "New York" || got.Data.Location.State != "New York" || got.Data.Location.Country != "US" {
		t.Errorf("Location = %+v", got.Data.Location)
	}
	if got.Data.Location.Lat != 40.7128 || got.Data.Location.Long != -74.006 {
		t.Errorf("coordinates = (%v, %v)", got.Data.Location.Lat, got.Data.Location.Long)
	}
	if len(got.Data.Hourly) == 0 || len(got.Data.Daily) == 0 {
		t.Errorf("forecasts empty: %d hourly days, %d daily", len(got.Data.Hourly), len(got.Data.Daily))
	}

	here, ok := vm.DeviceLocation()
	if !ok || here.Lat != 40.7128 {
		t.Errorf("DeviceLocation() = %+v, %v", here, ok)
	}
}

func TestMainViewModel_CombinatorFollowsCells(t *testing.T) {
	api := newAPIServer(t)
	s := newStack(t, api)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	vm := NewMainViewModel(ctx, devicelocation.NewStatic(40.7128, -74.0060), s.weather, s.places)
	vm.LoadData()

	wctx, wcancel := context.WithTimeout(ctx, 5*time.Second)
	defer wcancel()
	got, err := vm.UserData().WaitFor(wctx, UserDataState.Ready)
	if err != nil {
		t.Fatalf("snapshot never became ready: %+v", vm.UserData().Get())
	}
	if got.Data.Location.City != "New York" {
		t.Errorf("City = %q, want New York", got.Data.Location.City)
	}
}

func TestMainViewModel_Errors(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(*apiServer)
		locator devicelocation.Client
		want    string
	}{
		{
			name:    "device location",
			setup:   func(*apiServer) {},
			locator: failingLocator{msg: "Couldn't retrieve location"},
			want:    "Couldn't retrieve location",
		},
		{
			name:    "reverse geocoding",
			setup:   func(a *apiServer) { a.failGeo = true },
			locator: devicelocation.NewStatic(40.7128, -74.006),
			want:    repository.MsgSomethingWrong,
		},
		{
			name:    "hourly only",
			setup:   func(a *apiServer) { a.failHourly = true },
			locator: devicelocation.NewStatic(40.7128, -74.006),
			want:    repository.MsgSomethingWrong,
		},
		{
			name:    "empty hourly series",
			setup:   func(a *apiServer) { a.emptyHourly = true },
			locator: devicelocation.NewStatic(40.7128, -74.006),
			want:    repository.MsgNoForecast,
		},
		{
			name:    "device location without a position",
			setup:   func(*apiServer) {},
			locator: emptyLocator{},
			want:    devicelocation.MsgNoLocation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newAPIServer(t)
			tt.setup(api)
			s := newStack(t, api)
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			vm := NewMainViewModel(ctx, tt.locator, s.weather, s.places)
			vm.LoadData()
			vm.Wait()

			got := vm.UserData().Get()
			if got.IsLoading {
				t.Fatalf("IsLoading = true after Wait: %+v", got)
			}
			if got.Error != tt.want {
				t.Errorf("Error = %q, want %q", got.Error, tt.want)
			}
		})
	}
}

func TestMainViewModel_Unreachable(t *testing.T) {
	api := newAPIServer(t)
	s := newStack(t, api)
	api.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	vm := NewMainViewModel(ctx, devicelocation.NewStatic(40.7128, -74.006), s.weather, s.places)
	vm.LoadData()
	vm.Wait()

	if got := vm.UserData().Get(); got.Error != repository.MsgNoConnection {
		t.Errorf("Error = %q, want %q", got.Error, repository.MsgNoConnection)
	}
}

func TestMainViewModel_NewTriggerCancelsPrevious(t *testing.T) {
	api := newAPIServer(t)
	s := newStack(t, api)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	blocked := &blockingLocator{canceled: make(chan struct{})}
	locator := &switchLocator{first: blocked, second: devicelocation.NewStatic(40.7128, -74.006)}

	vm := NewMainViewModel(ctx, locator, s.weather, s.places)
	vm.LoadData()
	vm.LoadData()

	select {
	case <-blocked.canceled:
	case <-time.After(2 * time.Second):
		t.Fatal("superseded load was not canceled")
	}

	vm.Wait()
	got := vm.UserData().Get()
	if !got.Ready() {
		t.Errorf("state = %+v, want ready from the second load", got)
	}
}

func TestForecastStates_NoPayload(t *testing.T) {
	if got := hourlyState(result.Empty[models.HourlyForecasts]()); got.IsLoading || got.Error != repository.MsgNoForecast {
		t.Errorf("hourlyState(empty) = %+v, want error %q", got, repository.MsgNoForecast)
	}
	if got := hourlyState(result.Success(models.HourlyForecasts{})); got.Error != repository.MsgNoForecast {
		t.Errorf("hourlyState(no days) = %+v, want error %q", got, repository.MsgNoForecast)
	}
	if got := dailyState(result.Empty[[]models.DayWiseForecast]()); got.IsLoading || got.Error != repository.MsgNoForecast {
		t.Errorf("dailyState(empty) = %+v, want error %q", got, repository.MsgNoForecast)
	}
}
