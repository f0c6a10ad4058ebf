package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/folio/internal/interact"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Theme != DefaultTheme {
		t.Errorf("expected theme %s, got %s", DefaultTheme, cfg.Theme)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}

	p, err := cfg.Params()
	if err != nil {
		t.Fatalf("params failed: %v", err)
	}
	if p != interact.DefaultParams() {
		t.Errorf("default params drifted:\n got %+v\nwant %+v", p, interact.DefaultParams())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero fps", func(c *Config) { c.FrameRate = 0 }},
		{"zero cell", func(c *Config) { c.Cell.Width = 0 }},
		{"negative card", func(c *Config) { c.Card.Height = -1 }},
		{"zero tick", func(c *Config) { c.Interaction.TickMs = 0 }},
		{"negative trail", func(c *Config) { c.Interaction.MaxTrail = -1 }},
		{"fade too large", func(c *Config) { c.Interaction.FadeStep = 2 }},
		{"negative particles", func(c *Config) { c.Backdrop.Particles = -3 }},
		{"unknown decay", func(c *Config) { c.Interaction.DecayMode = "bouncy" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
			if _, err := cfg.Params(); err == nil {
				t.Error("expected Params to fail")
			}
		})
	}
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folio.yaml")
	cfg := DefaultConfig()
	cfg.Theme = "ocean"
	cfg.Interaction.DecayMode = "legacy"
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.Theme != "ocean" {
		t.Errorf("expected theme ocean, got %s", got.Theme)
	}
	p, err := got.Params()
	if err != nil {
		t.Fatalf("params failed: %v", err)
	}
	if p.Decay != interact.DecayLegacy {
		t.Errorf("expected legacy decay, got %v", p.Decay)
	}
}

func TestLoadPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folio.yaml")
	if err := os.WriteFile(path, []byte("interaction:\n  tick_ms: 20\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	p, err := cfg.Params()
	if err != nil {
		t.Fatalf("params failed: %v", err)
	}
	if p.TickInterval != 20*time.Millisecond {
		t.Errorf("expected 20ms tick, got %v", p.TickInterval)
	}
	if p.MaxTrail != interact.DefaultMaxTrail {
		t.Errorf("expected default trail, got %d", p.MaxTrail)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	p := GetPreset("long-tail")
	if p == nil {
		t.Fatal("expected preset, got nil")
	}
	if p.MaxTrail != 30 {
		t.Errorf("expected max trail 30, got %d", p.MaxTrail)
	}
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestPresetsValidate(t *testing.T) {
	for _, name := range ListPresets() {
		cfg := DefaultConfig()
		if !cfg.Apply(name) {
			t.Fatalf("apply %s failed", name)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
	if DefaultConfig().Apply("nonexistent") {
		t.Error("expected apply of unknown preset to fail")
	}
}

func TestClassicMatchesDefaults(t *testing.T) {
	cfg := DefaultConfig()
	want := cfg.Interaction
	cfg.Apply("classic")
	if cfg.Interaction != want {
		t.Errorf("classic preset differs from defaults: %+v vs %+v", cfg.Interaction, want)
	}
}
