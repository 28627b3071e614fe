package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ngmaloney/weather-terminal/internal/config"
	"github.com/ngmaloney/weather-terminal/internal/database"
	"github.com/ngmaloney/weather-terminal/internal/devicelocation"
	"github.com/ngmaloney/weather-terminal/internal/geocoding"
	"github.com/ngmaloney/weather-terminal/internal/openmeteo"
	"github.com/ngmaloney/weather-terminal/internal/preferences"
	"github.com/ngmaloney/weather-terminal/internal/repository"
	"github.com/ngmaloney/weather-terminal/internal/store"
	"github.com/ngmaloney/weather-terminal/internal/ui"
	"github.com/ngmaloney/weather-terminal/internal/viewmodel"
)

func main() {
	lat := flag.Float64("lat", 0, "Pin the device latitude (requires --lon)")
	lon := flag.Float64("lon", 0, "Pin the device longitude (requires --lat)")
	once := flag.Bool("once", false, "Print the current location snapshot and exit")
	debug := flag.Bool("debug", false, "Write logs to debug.log")
	flag.Parse()

	if *debug {
		f, err := tea.LogToFile("debug.log", "debug")
		if err != nil {
			fmt.Printf("Error opening debug log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	} else if !*once {
		// log output would corrupt the alt screen
		log.SetOutput(io.Discard)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	latSet, lonSet := false, false
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "lat":
			latSet = true
		case "lon":
			lonSet = true
		}
	})
	if latSet || lonSet {
		var pLat, pLon *float64
		if latSet {
			pLat = lat
		}
		if lonSet {
			pLon = lon
		}
		if err := cfg.SetLocation(pLat, pLon); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}

	if err := run(cfg, *once); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.AppConfig, once bool) error {
	if cfg.OpenWeatherAPIKey == "" {
		log.Printf("OPENWEATHER_API_KEY is not set, place names will not resolve")
	}

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	prefs, err := preferences.Load(cfg.PreferencesPath)
	if err != nil {
		return err
	}

	var locator devicelocation.Client
	if cfg.HasPinnedLocation() {
		locator = devicelocation.NewStatic(*cfg.Lat, *cfg.Lon)
	} else {
		locator = devicelocation.NewIPLookup(cfg.IPLocationURL, cfg.HTTPTimeout)
	}

	local := repository.NewLocalDatabaseRepository(store.New(db))
	weather := repository.NewWeatherRepository(openmeteo.NewClient(cfg.ForecastBaseURL, cfg.HTTPTimeout), prefs, local)
	places := repository.NewLocationRepository(geocoding.NewClient(cfg.GeocodingBaseURL, cfg.OpenWeatherAPIKey, cfg.HTTPTimeout))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	home := viewmodel.NewMainViewModel(ctx, locator, weather, places)

	if once {
		home.LoadData()
		home.Wait()
		snapshot := home.UserData().Get()
		fmt.Println(ui.RenderSnapshot(snapshot, time.Now()))
		if snapshot.Error != "" {
			return fmt.Errorf("%s", snapshot.Error)
		}
		if !snapshot.Ready() {
			return fmt.Errorf("forecast did not settle")
		}
		return nil
	}

	search := viewmodel.NewSearchViewModel(ctx, weather, places, local, home)
	p := tea.NewProgram(ui.NewModel(ctx, home, search, prefs, devicelocation.Describe(locator)), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running application: %w", err)
	}
	return nil
}
