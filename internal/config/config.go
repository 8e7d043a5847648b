// Package config loads game settings from defaults, an optional .env file
// and BTS_* process environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/jesseruder/beneaththesurface/internal/sim"
)

// DefaultEnvFile is read by Load when no path is given.
const DefaultEnvFile = ".env"

// Settings is everything the entry points need to start a game.
type Settings struct {
	Sim sim.Config

	WindowTitle  string
	WindowWidth  int
	WindowHeight int
	Volume       float64 // 0..1, explosion sound
	Demo         bool    // start with the autopilot driving
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		Sim:          sim.DefaultConfig(),
		WindowTitle:  "Beneath the Surface",
		WindowWidth:  450,
		WindowHeight: 800,
		Volume:       0.5,
	}
}

// Aspect returns the window height/width ratio used for the world frame.
func (s Settings) Aspect() float64 {
	if s.WindowWidth <= 0 {
		return 0
	}
	return float64(s.WindowHeight) / float64(s.WindowWidth)
}

type setter func(*Settings, string) error

func intField(dst func(*Settings) *int) setter {
	return func(s *Settings, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*dst(s) = n
		return nil
	}
}

func floatField(dst func(*Settings) *float64) setter {
	return func(s *Settings, v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		*dst(s) = f
		return nil
	}
}

func boolField(dst func(*Settings) *bool) setter {
	return func(s *Settings, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		*dst(s) = b
		return nil
	}
}

// keys maps every recognised variable to its field.
var keys = map[string]setter{
	"BTS_WINDOW_TITLE": func(s *Settings, v string) error {
		s.WindowTitle = v
		return nil
	},
	"BTS_WINDOW_WIDTH":  intField(func(s *Settings) *int { return &s.WindowWidth }),
	"BTS_WINDOW_HEIGHT": intField(func(s *Settings) *int { return &s.WindowHeight }),
	"BTS_VOLUME":        floatField(func(s *Settings) *float64 { return &s.Volume }),
	"BTS_DEMO":          boolField(func(s *Settings) *bool { return &s.Demo }),

	"BTS_MAX_FISHES":          intField(func(s *Settings) *int { return &s.Sim.MaxFishes }),
	"BTS_MAX_SHARKS":          intField(func(s *Settings) *int { return &s.Sim.MaxSharks }),
	"BTS_MAX_BOMBS":           intField(func(s *Settings) *int { return &s.Sim.MaxBombs }),
	"BTS_POOL_HEADROOM":       intField(func(s *Settings) *int { return &s.Sim.PoolHeadroom }),
	"BTS_INITIAL_FISH":        intField(func(s *Settings) *int { return &s.Sim.InitialFish }),
	"BTS_SHARK_MIN_FISH":      intField(func(s *Settings) *int { return &s.Sim.SharkMinFish }),
	"BTS_BOMB_COST":           intField(func(s *Settings) *int { return &s.Sim.BombCost }),
	"BTS_SPECIAL_FISH_CHANCE": floatField(func(s *Settings) *float64 { return &s.Sim.SpecialFishChance }),
	"BTS_FISH_SPAWN_PERIOD":   floatField(func(s *Settings) *float64 { return &s.Sim.FishSpawnPeriod }),
	"BTS_SHARK_SPAWN_PERIOD":  floatField(func(s *Settings) *float64 { return &s.Sim.SharkSpawnPeriod }),
	"BTS_TURN_PERIOD":         floatField(func(s *Settings) *float64 { return &s.Sim.TurnPeriod }),
	"BTS_SHARK_EAT_DIST":      floatField(func(s *Settings) *float64 { return &s.Sim.SharkEatDist }),
	"BTS_TIME_SCALE":          floatField(func(s *Settings) *float64 { return &s.Sim.TimeScale }),
	"BTS_PARTICLE_RATE":       floatField(func(s *Settings) *float64 { return &s.Sim.ParticleSpawnRate }),
	"BTS_EXPLOSION_LIFETIME": func(s *Settings, v string) error {
		d, err := time.ParseDuration(v)
		if err != nil {
			return err
		}
		s.Sim.ExplosionLifetime = d
		return nil
	},
}

// Load builds Settings from defaults, then the env file at path (DefaultEnvFile
// if empty; a missing file is fine), then the process environment. The
// result is validated.
func Load(path string) (Settings, error) {
	s := Defaults()
	if path == "" {
		path = DefaultEnvFile
	}

	fileVars, err := godotenv.Read(path)
	switch {
	case err == nil:
		if err := apply(&s, fileVars); err != nil {
			return Settings{}, fmt.Errorf("%s: %w", path, err)
		}
		log.Printf("config: loaded %d settings from %s", len(fileVars), path)
	case errors.Is(err, fs.ErrNotExist):
	default:
		return Settings{}, fmt.Errorf("read %s: %w", path, err)
	}

	envVars := make(map[string]string)
	for k := range keys {
		if v, ok := os.LookupEnv(k); ok {
			envVars[k] = v
		}
	}
	if err := apply(&s, envVars); err != nil {
		return Settings{}, fmt.Errorf("environment: %w", err)
	}

	if s.WindowWidth <= 0 || s.WindowHeight <= 0 {
		return Settings{}, fmt.Errorf("window size must be positive, got %dx%d", s.WindowWidth, s.WindowHeight)
	}
	if s.Volume < 0 || s.Volume > 1 {
		return Settings{}, fmt.Errorf("volume must be in [0,1], got %.2f", s.Volume)
	}
	if err := s.Sim.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// apply sets every recognised key in vars. Unknown keys are ignored so the
// same file can hold unrelated variables.
func apply(s *Settings, vars map[string]string) error {
	for k, v := range vars {
		set, ok := keys[k]
		if !ok {
			continue
		}
		if err := set(s, v); err != nil {
			return fmt.Errorf("%s=%q: %w", k, v, err)
		}
	}
	return nil
}
