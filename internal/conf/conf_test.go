package conf

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSetupConfigCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	bc, err := SetupConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if bc.Server.HTTP.Port != 8080 {
		t.Fatalf("unexpected default port %d", bc.Server.HTTP.Port)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default file not written: %v", err)
	}

	// second load round-trips the file we just wrote
	bc2, err := SetupConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if bc2.Data.Database.Dsn != bc.Data.Database.Dsn {
		t.Fatalf("round trip mismatch: %q vs %q", bc2.Data.Database.Dsn, bc.Data.Database.Dsn)
	}
	if bc2.Server.Telemetry.Interval.Duration() != 10*time.Second {
		t.Fatalf("duration did not round trip: %v", bc2.Server.Telemetry.Interval.Duration())
	}
}

func TestSetupConfigParsesOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	raw := `
[server]
debug = true

[server.http]
port = 9000

[server.telemetry]
interval = "30s"

[[server.time_systems]]
key = "met"
name = "Mission Elapsed"
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	bc, err := SetupConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bc.Server.Debug || bc.Server.HTTP.Port != 9000 {
		t.Fatalf("overrides not applied: %+v", bc.Server)
	}
	if bc.Server.Telemetry.Interval.Duration() != 30*time.Second {
		t.Fatalf("interval override not applied: %v", bc.Server.Telemetry.Interval.Duration())
	}
	if len(bc.Server.TimeSystems) != 1 || bc.Server.TimeSystems[0].Key != "met" {
		t.Fatalf("time systems override not applied: %+v", bc.Server.TimeSystems)
	}
}
