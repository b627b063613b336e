package config

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"COREWAKE_DB", "COREWAKE_CATALOG", "COREWAKE_TICK", "COREWAKE_MUTE"} {
		t.Setenv(key, "") // restores the original value after the test
		os.Unsetenv(key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Tick != 10*time.Millisecond {
		t.Errorf("Tick = %s, want 10ms", cfg.Tick)
	}
	if cfg.Mute {
		t.Error("Mute should default to false")
	}
	if cfg.DBPath != "" || cfg.CatalogPath != "" {
		t.Errorf("paths should default empty, got %q %q", cfg.DBPath, cfg.CatalogPath)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("COREWAKE_DB", "/tmp/corewake.db")
	t.Setenv("COREWAKE_CATALOG", "/tmp/catalog.json")
	t.Setenv("COREWAKE_TICK", "50ms")
	t.Setenv("COREWAKE_MUTE", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Config{
		DBPath:      "/tmp/corewake.db",
		CatalogPath: "/tmp/catalog.json",
		Tick:        50 * time.Millisecond,
		Mute:        true,
	}
	if cfg != want {
		t.Errorf("cfg = %+v, want %+v", cfg, want)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		tick    string
		wantErr string
	}{
		{"unparseable", "soon", "parse env:"},
		{"zero", "0s", "tick must be positive"},
		{"negative", "-5ms", "tick must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("COREWAKE_TICK", tt.tick)

			_, err := Load()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want it to contain %q", err, tt.wantErr)
			}
			if tt.wantErr != "parse env:" && !errors.Is(err, ErrInvalidTick) {
				t.Errorf("expected ErrInvalidTick, got %v", err)
			}
		})
	}
}
