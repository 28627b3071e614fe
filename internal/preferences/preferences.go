// Package preferences persists the user's unit choices.
package preferences

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"

	"github.com/ngmaloney/weather-terminal/internal/openmeteo"
)

const (
	keyTemp = "units.temperature"
	keyWind = "units.wind"
)

// Unit choices. 0 keeps the API default.
const (
	TempCelsius    = 0
	TempFahrenheit = 1

	WindKmh = 0
	WindMs  = 1
)

// Preferences is a viper backed settings file
type Preferences struct {
	mu   sync.RWMutex
	v    *viper.Viper
	path string
}

// Load reads the preferences file at path. A missing file yields defaults.
func Load(path string) (*Preferences, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	v.SetDefault(keyTemp, TempCelsius)
	v.SetDefault(keyWind, WindKmh)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading preferences: %w", err)
		}
	}

	return &Preferences{v: v, path: path}, nil
}

// Temp returns the temperature unit choice.
func (p *Preferences) Temp() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.v.GetInt(keyTemp)
}

// Wind returns the wind speed unit choice.
func (p *Preferences) Wind() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.v.GetInt(keyWind)
}

func (p *Preferences) SetTemp(choice int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.v.Set(keyTemp, choice)
}

func (p *Preferences) SetWind(choice int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.v.Set(keyWind, choice)
}

// Units converts the choices to forecast request parameters.
func (p *Preferences) Units() openmeteo.Units {
	var u openmeteo.Units
	if p.Temp() == TempFahrenheit {
		u.Temperature = "fahrenheit"
	}
	if p.Wind() == WindMs {
		u.WindSpeed = "ms"
	}
	return u
}

// Save writes the preferences file, creating its directory.
func (p *Preferences) Save() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(p.path), 0755); err != nil {
		return fmt.Errorf("creating preferences directory: %w", err)
	}
	if err := p.v.WriteConfigAs(p.path); err != nil {
		return fmt.Errorf("writing preferences: %w", err)
	}
	return nil
}
