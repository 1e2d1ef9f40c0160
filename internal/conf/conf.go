// Package conf defines the bootstrap configuration, loaded from a toml file
// next to the binary. A default file is written on first start so the
// service always comes up.
package conf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Duration wraps time.Duration so toml values like "30s" parse directly.
type Duration time.Duration

func (d Duration) Duration() time.Duration { return time.Duration(d) }

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Bootstrap is the root configuration object, injected everywhere via wire.
type Bootstrap struct {
	ConfigPath   string `toml:"-"`
	BuildVersion string `toml:"-"`

	Server Server `toml:"server"`
	Data   Data   `toml:"data"`
}

type Server struct {
	Debug     bool        `toml:"debug"`
	HTTP      HTTP        `toml:"http"`
	Conductor Conductor   `toml:"conductor"`
	Telemetry Telemetry   `toml:"telemetry"`
	// TimeSystems is the catalog offered to views. The conductor treats the
	// entries as opaque; empty means UTC only.
	TimeSystems []TimeSystem `toml:"time_systems"`
}

type HTTP struct {
	Port  int   `toml:"port"`
	PProf PProf `toml:"pprof"`
}

type PProf struct {
	Enabled   bool     `toml:"enabled"`
	AccessIps []string `toml:"access_ips"`
}

// Conductor tunes the notification surface, not the core semantics.
type Conductor struct {
	// RecentEvents is the size of the ring returned by /conductor/events/recent.
	RecentEvents int `toml:"recent_events"`
}

// Telemetry configures the built-in host metrics collector.
type Telemetry struct {
	Disabled   bool     `toml:"disabled"`
	Interval   Duration `toml:"interval"`
	RetainDays int      `toml:"retain_days"`
}

type TimeSystem struct {
	Key            string `toml:"key"`
	Name           string `toml:"name"`
	TimeFormat     string `toml:"time_format"`
	DurationFormat string `toml:"duration_format"`
}

type Data struct {
	Database Database `toml:"database"`
}

type Database struct {
	// Dsn selects the driver by prefix: postgres://, mysql://, otherwise a
	// sqlite file path.
	Dsn             string   `toml:"dsn"`
	MaxIdleConns    int      `toml:"max_idle_conns"`
	MaxOpenConns    int      `toml:"max_open_conns"`
	ConnMaxLifetime Duration `toml:"conn_max_lifetime"`
	SlowThreshold   Duration `toml:"slow_threshold"`
}

// DefaultBootstrap returns the configuration written on first start.
func DefaultBootstrap() *Bootstrap {
	return &Bootstrap{
		Server: Server{
			HTTP: HTTP{Port: 8080},
			Conductor: Conductor{
				RecentEvents: 64,
			},
			Telemetry: Telemetry{
				Interval:   Duration(10 * time.Second),
				RetainDays: 7,
			},
			TimeSystems: []TimeSystem{
				{Key: "utc", Name: "UTC", TimeFormat: "2006-01-02 15:04:05", DurationFormat: "15:04:05"},
				{Key: "local", Name: "Local", TimeFormat: "2006-01-02 15:04:05", DurationFormat: "15:04:05"},
			},
		},
		Data: Data{
			Database: Database{
				Dsn:             "kestrel.db",
				MaxIdleConns:    10,
				MaxOpenConns:    50,
				ConnMaxLifetime: Duration(time.Hour),
				SlowThreshold:   Duration(200 * time.Millisecond),
			},
		},
	}
}

// SetupConfig loads the toml file at path, creating it with defaults when it
// does not exist yet.
func SetupConfig(path string) (*Bootstrap, error) {
	bc := DefaultBootstrap()
	bc.ConfigPath = path

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		if err := WriteConfig(bc, path); err != nil {
			return nil, fmt.Errorf("write default config: %w", err)
		}
		return bc, nil
	}
	if err != nil {
		return nil, err
	}
	if err := toml.Unmarshal(raw, bc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return bc, nil
}

// WriteConfig persists the current configuration back to disk.
func WriteConfig(bc *Bootstrap, path string) error {
	raw, err := toml.Marshal(bc)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, raw, 0o644)
}
