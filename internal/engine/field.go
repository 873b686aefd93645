package engine

import (
	"fmt"

	"github.com/suderio/battleround/internal/data"
)

// Weather is an encounter-wide weather condition.
type Weather string

const (
	WeatherNone      Weather = ""
	WeatherRain      Weather = "rain"
	WeatherSun       Weather = "sun"
	WeatherSandstorm Weather = "sandstorm"
	WeatherHail      Weather = "hail"
)

// ParseWeather converts a weather name from the data tables.
func ParseWeather(s string) (Weather, error) {
	switch w := Weather(s); w {
	case WeatherNone, WeatherRain, WeatherSun, WeatherSandstorm, WeatherHail:
		return w, nil
	}
	return WeatherNone, fmt.Errorf("unknown weather %q", s)
}

// Terrain is an encounter-wide terrain condition.
type Terrain string

const (
	TerrainNone     Terrain = ""
	TerrainElectric Terrain = "electric"
	TerrainGrassy   Terrain = "grassy"
	TerrainMisty    Terrain = "misty"
	TerrainPsychic  Terrain = "psychic"
)

const (
	// DefaultWeatherTurns is how long move-summoned weather lasts.
	DefaultWeatherTurns = 5
	// MaxSpikes is the number of spikes layers a side can hold.
	MaxSpikes = 3
)

// Field is the state shared by both sides for the whole encounter.
type Field struct {
	Weather      Weather
	WeatherTurns int // 0 means it does not expire
	Terrain      Terrain
	TerrainTurns int
	spikes       map[SideID]int
}

// NewField returns a clear field.
func NewField() *Field {
	return &Field{spikes: make(map[SideID]int)}
}

// SetWeather starts a weather condition for the given number of turns.
func (f *Field) SetWeather(w Weather, turns int) {
	f.Weather = w
	f.WeatherTurns = turns
}

// tickWeather counts down the weather and reports whether it just ended.
func (f *Field) tickWeather() bool {
	if f.Weather == WeatherNone || f.WeatherTurns == 0 {
		return false
	}
	f.WeatherTurns--
	if f.WeatherTurns == 0 {
		f.Weather = WeatherNone
		return true
	}
	return false
}

func (f *Field) tickTerrain() {
	if f.Terrain == TerrainNone || f.TerrainTurns == 0 {
		return
	}
	f.TerrainTurns--
	if f.TerrainTurns == 0 {
		f.Terrain = TerrainNone
	}
}

// Spikes returns the number of spikes layers laid on a side.
func (f *Field) Spikes(side SideID) int {
	return f.spikes[side]
}

// AddSpikes lays one layer on a side and reports whether it was added.
func (f *Field) AddSpikes(side SideID) bool {
	if f.spikes[side] >= MaxSpikes {
		return false
	}
	f.spikes[side]++
	return true
}

// spikesDamage is the entry damage for a creature switching onto a side.
func (f *Field) spikesDamage(side SideID, c *Creature) int {
	if c.HasType(data.TypeFlying) {
		return 0
	}
	switch f.spikes[side] {
	case 1:
		return FractionOf(c.Stats.HP, 8)
	case 2:
		return FractionOf(c.Stats.HP, 6)
	case 3:
		return FractionOf(c.Stats.HP, 4)
	}
	return 0
}
