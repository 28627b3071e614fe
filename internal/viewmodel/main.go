package viewmodel

import (
	"context"
	"sync"

	"github.com/ngmaloney/weather-terminal/internal/devicelocation"
	"github.com/ngmaloney/weather-terminal/internal/models"
	"github.com/ngmaloney/weather-terminal/internal/repository"
	"github.com/ngmaloney/weather-terminal/internal/result"
	"github.com/ngmaloney/weather-terminal/internal/state"
)

// LocationState is the resolved current location
type LocationState struct {
	Location  *models.Location
	IsLoading bool
	Error     string
}

// HourlyWeatherState is the hourly forecast for the current location
type HourlyWeatherState struct {
	Forecasts models.HourlyForecasts
	IsLoading bool
	Error     string
}

// DailyWeatherState is the daily forecast for the current location
type DailyWeatherState struct {
	Forecasts []models.DayWiseForecast
	IsLoading bool
	Error     string
}

// UserData is everything the home screen shows
type UserData struct {
	Location models.Location
	Hourly   models.HourlyForecasts
	Daily    []models.DayWiseForecast
}

// UserDataState is derived from the three constituent states
type UserDataState struct {
	Data      *UserData
	IsLoading bool
	Error     string
}

// Ready reports whether the snapshot carries data with nothing pending.
func (s UserDataState) Ready() bool {
	return s.Data != nil && !s.IsLoading && s.Error == ""
}

// Settled reports whether the snapshot is either ready or failed.
func (s UserDataState) Settled() bool {
	return !s.IsLoading
}

// Combine derives the home screen state. A loading constituent wins, then
// the first error in the order location, hourly, daily. When all three
// hold data the snapshot is ready; otherwise it stays pending with the
// previous data.
func Combine(loc LocationState, hourly HourlyWeatherState, daily DailyWeatherState, prev UserDataState) UserDataState {
	if loc.IsLoading || hourly.IsLoading || daily.IsLoading {
		return UserDataState{Data: prev.Data, IsLoading: true}
	}

	for _, msg := range []string{loc.Error, hourly.Error, daily.Error} {
		if msg != "" {
			return UserDataState{Data: prev.Data, Error: msg}
		}
	}

	if loc.Location != nil && len(hourly.Forecasts) > 0 && len(daily.Forecasts) > 0 {
		return UserDataState{
			Data: &UserData{
				Location: *loc.Location,
				Hourly:   hourly.Forecasts,
				Daily:    daily.Forecasts,
			},
		}
	}

	return UserDataState{Data: prev.Data, IsLoading: true}
}

// MainViewModel resolves the device location and loads its weather
type MainViewModel struct {
	ctx     context.Context
	locator devicelocation.Client
	weather WeatherSource
	places  LocationSource

	location *state.Cell[LocationState]
	hourly   *state.Cell[HourlyWeatherState]
	daily    *state.Cell[DailyWeatherState]
	userData *state.Cell[UserDataState]

	combineOnce sync.Once
	loads       trigger

	mu     sync.Mutex
	device *models.Location
}

// NewMainViewModel creates the view-model. Its background work stops when
// ctx is done.
func NewMainViewModel(ctx context.Context, locator devicelocation.Client, weather WeatherSource, places LocationSource) *MainViewModel {
	return &MainViewModel{
		ctx:      ctx,
		locator:  locator,
		weather:  weather,
		places:   places,
		location: state.NewCell(LocationState{IsLoading: true}),
		hourly:   state.NewCell(HourlyWeatherState{IsLoading: true}),
		daily:    state.NewCell(DailyWeatherState{IsLoading: true}),
		userData: state.NewCell(UserDataState{IsLoading: true}),
		loads:    trigger{name: "location load"},
	}
}

func (vm *MainViewModel) Location() *state.Cell[LocationState]    { return vm.location }
func (vm *MainViewModel) Hourly() *state.Cell[HourlyWeatherState] { return vm.hourly }
func (vm *MainViewModel) Daily() *state.Cell[DailyWeatherState]   { return vm.daily }
func (vm *MainViewModel) UserData() *state.Cell[UserDataState]    { return vm.userData }

// DeviceLocation returns the last position the device reported.
func (vm *MainViewModel) DeviceLocation() (models.Location, bool) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.device == nil {
		return models.Location{}, false
	}
	return *vm.device, true
}

// LoadData acquires the device location and loads its name and forecasts.
// A call while a previous load is in flight abandons that load.
func (vm *MainViewModel) LoadData() {
	vm.combineOnce.Do(func() {
		state.Combine3(vm.ctx, vm.location, vm.hourly, vm.daily, func(LocationState, HourlyWeatherState, DailyWeatherState) {
			vm.recombine()
		})
	})
	vm.loads.run(vm.ctx, vm.load)
}

// Wait blocks until the in-flight load has settled and the derived state
// reflects it.
func (vm *MainViewModel) Wait() {
	vm.loads.wait()
	vm.recombine()
}

// recombine reads the cells rather than the notified values, so a late
// notification cannot roll the snapshot back.
func (vm *MainViewModel) recombine() {
	vm.userData.Update(func(prev UserDataState) UserDataState {
		return Combine(vm.location.Get(), vm.hourly.Get(), vm.daily.Get(), prev)
	})
}

func (vm *MainViewModel) load(ctx context.Context, gen uint64) {
	vm.loads.apply(gen, func() {
		vm.location.Update(func(s LocationState) LocationState {
			return LocationState{Location: s.Location, IsLoading: true}
		})
		vm.hourly.Update(func(s HourlyWeatherState) HourlyWeatherState {
			return HourlyWeatherState{Forecasts: s.Forecasts, IsLoading: true}
		})
		vm.daily.Update(func(s DailyWeatherState) DailyWeatherState {
			return DailyWeatherState{Forecasts: s.Forecasts, IsLoading: true}
		})
	})

	for r := range vm.locator.Location(ctx) {
		switch r.Status {
		case result.StatusError:
			vm.locationFailed(gen, r.Message)
		case result.StatusSuccess:
			if r.Data == nil {
				vm.locationFailed(gen, devicelocation.MsgNoLocation)
				continue
			}
			vm.fetchAll(ctx, gen, r.Data.ToLocation())
		}
	}
}

// locationFailed surfaces msg as the location error. Nothing else will run
// for this load, so the forecasts stop loading.
func (vm *MainViewModel) locationFailed(gen uint64, msg string) {
	vm.loads.apply(gen, func() {
		vm.location.Set(LocationState{Error: msg})
		vm.hourly.Update(func(s HourlyWeatherState) HourlyWeatherState {
			s.IsLoading = false
			return s
		})
		vm.daily.Update(func(s DailyWeatherState) DailyWeatherState {
			s.IsLoading = false
			return s
		})
	})
}

func (vm *MainViewModel) fetchAll(ctx context.Context, gen uint64, loc models.Location) {
	vm.loads.apply(gen, func() {
		vm.mu.Lock()
		vm.device = &loc
		vm.mu.Unlock()
		vm.location.Set(LocationState{Location: &loc, IsLoading: true})
	})

	lat, lon := models.FormatCoord(loc.Lat), models.FormatCoord(loc.Long)

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		vm.resolveName(ctx, gen, loc, lat, lon)
	}()
	go func() {
		defer wg.Done()
		for r := range vm.weather.HourlyForecast(ctx, lat, lon) {
			vm.loads.apply(gen, func() { vm.hourly.Set(hourlyState(r)) })
		}
	}()
	go func() {
		defer wg.Done()
		for r := range vm.weather.DailyForecast(ctx, lat, lon) {
			vm.loads.apply(gen, func() { vm.daily.Set(dailyState(r)) })
		}
	}()
	wg.Wait()
}

func (vm *MainViewModel) resolveName(ctx context.Context, gen uint64, loc models.Location, lat, lon string) {
	for r := range vm.places.NameFromCoordinates(ctx, lat, lon) {
		vm.loads.apply(gen, func() {
			switch r.Status {
			case result.StatusLoading:
				vm.location.Set(LocationState{Location: &loc, IsLoading: true})
			case result.StatusError:
				vm.location.Set(LocationState{Location: &loc, Error: r.Message})
			case result.StatusSuccess:
				named := loc
				if r.Data != nil {
					named.City = r.Data.Name
					named.State = r.Data.State
					named.Country = r.Data.Country
				}
				vm.location.Set(LocationState{Location: &named})
			}
		})
	}
}

func hourlyState(r result.Result[models.HourlyForecasts]) HourlyWeatherState {
	switch r.Status {
	case result.StatusLoading:
		return HourlyWeatherState{IsLoading: true}
	case result.StatusError:
		return HourlyWeatherState{Error: r.Message}
	}
	if r.Data == nil || len(*r.Data) == 0 {
		return HourlyWeatherState{Error: repository.MsgNoForecast}
	}
	return HourlyWeatherState{Forecasts: *r.Data}
}

func dailyState(r result.Result[[]models.DayWiseForecast]) DailyWeatherState {
	switch r.Status {
	case result.StatusLoading:
		return DailyWeatherState{IsLoading: true}
	case result.StatusError:
		return DailyWeatherState{Error: r.Message}
	}
	if r.Data == nil || len(*r.Data) == 0 {
		return DailyWeatherState{Error: repository.MsgNoForecast}
	}
	return DailyWeatherState{Forecasts: *r.Data}
}
