package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeEnv(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.env"))
	if err != nil {
		t.Fatalf("missing file should be tolerated: %v", err)
	}
	if s != Defaults() {
		t.Fatalf("expected defaults, got %+v", s)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := writeEnv(t, "BTS_MAX_FISHES=12\nBTS_BOMB_COST=25\nBTS_DEMO=true\nUNRELATED=1\n")
	t.Setenv("BTS_BOMB_COST", "5")
	t.Setenv("BTS_EXPLOSION_LIFETIME", "350ms")

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Sim.MaxFishes != 12 {
		t.Fatalf("file value not applied: max fishes=%d", s.Sim.MaxFishes)
	}
	if s.Sim.BombCost != 5 {
		t.Fatalf("environment should override the file: bomb cost=%d", s.Sim.BombCost)
	}
	if !s.Demo {
		t.Fatal("expected demo mode from file")
	}
	if s.Sim.ExplosionLifetime != 350*time.Millisecond {
		t.Fatalf("expected 350ms lifetime, got %s", s.Sim.ExplosionLifetime)
	}
}

func TestLoad_BadValues(t *testing.T) {
	cases := map[string]string{
		"not a number":   "BTS_MAX_FISHES=lots\n",
		"invalid config": "BTS_MAX_FISHES=0\n",
		"bad window":     "BTS_WINDOW_WIDTH=0\n",
		"bad volume":     "BTS_VOLUME=3\n",
		"bad duration":   "BTS_EXPLOSION_LIFETIME=soon\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeEnv(t, body)); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestSettings_Aspect(t *testing.T) {
	s := Defaults()
	if got := s.Aspect(); got != 800.0/450.0 {
		t.Fatalf("unexpected aspect %.4f", got)
	}
	s.WindowWidth = 0
	if s.Aspect() != 0 {
		t.Fatal("zero width should give a zero aspect")
	}
}
