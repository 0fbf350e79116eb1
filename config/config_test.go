package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lixenwraith/bounce/parameter"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Expected defaults to validate, got %v", err)
	}
	if cfg.Physics.TimeStep != parameter.PhysicsTimeStep {
		t.Errorf("Expected default time step %v, got %v", parameter.PhysicsTimeStep, cfg.Physics.TimeStep)
	}
	if cfg.Rules.RemovalPolicy != RemoveFirst {
		t.Errorf("Expected default removal policy %q, got %q", RemoveFirst, cfg.Rules.RemovalPolicy)
	}
}

func TestLoadTOMLOverridesDefaults(t *testing.T) {
	path := writeFile(t, "bounce.toml", `
[world]
variant = "tunnel"

[physics]
time_step = "2ms"

[rules]
max_balls = 50
removal_policy = "random"
session_limit = "20s"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.World.Variant != VariantTunnel {
		t.Errorf("Expected tunnel variant, got %q", cfg.World.Variant)
	}
	if cfg.Physics.TimeStep != 2*time.Millisecond {
		t.Errorf("Expected 2ms step, got %v", cfg.Physics.TimeStep)
	}
	if cfg.Rules.MaxBalls != 50 {
		t.Errorf("Expected max_balls 50, got %d", cfg.Rules.MaxBalls)
	}
	if cfg.Rules.RemovalPolicy != RemoveRandom {
		t.Errorf("Expected random policy, got %q", cfg.Rules.RemovalPolicy)
	}
	if cfg.Rules.SessionLimit != 20*time.Second {
		t.Errorf("Expected 20s session, got %v", cfg.Rules.SessionLimit)
	}
	// Untouched sections keep defaults
	if cfg.Circle.Segments != parameter.CircleSegments {
		t.Errorf("Expected default segments %d, got %d", parameter.CircleSegments, cfg.Circle.Segments)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "bounce.yaml", `
ball:
  radius_min: 0.08
  restitution: 0.9
rules:
  spawn_interval: 500ms
  initial_balls: 3
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Ball.RadiusMin != 0.08 || cfg.Ball.Restitution != 0.9 {
		t.Errorf("Expected ball overrides, got %+v", cfg.Ball)
	}
	if cfg.Rules.SpawnInterval != 500*time.Millisecond {
		t.Errorf("Expected 500ms interval, got %v", cfg.Rules.SpawnInterval)
	}
	if cfg.Rules.InitialBalls != 3 {
		t.Errorf("Expected 3 initial balls, got %d", cfg.Rules.InitialBalls)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err == nil || !strings.Contains(err.Error(), "read config") {
		t.Errorf("Expected read error, got %v", err)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := writeFile(t, "bad.toml", "[world\nvariant=")
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "parse config") {
		t.Errorf("Expected parse error, got %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown variant", func(c *Config) { c.World.Variant = "square" }},
		{"zero step", func(c *Config) { c.Physics.TimeStep = 0 }},
		{"zero iterations", func(c *Config) { c.Physics.VelocityIterations = 0 }},
		{"negative radius", func(c *Config) { c.Ball.RadiusMin = -1 }},
		{"ball bigger than circle", func(c *Config) { c.Circle.Radius = 0.1 }},
		{"degenerate circle", func(c *Config) { c.Circle.Segments = 2 }},
		{"narrow tunnel", func(c *Config) { c.World.Variant = VariantTunnel; c.Tunnel.Gap = 0.1 }},
		{"tilt closes tunnel", func(c *Config) { c.World.Variant = VariantTunnel; c.Tunnel.TiltMax = 1.5 }},
		{"unknown policy", func(c *Config) { c.Rules.RemovalPolicy = "oldest" }},
		{"negative cap", func(c *Config) { c.Rules.MaxBalls = -1 }},
		{"initial over cap", func(c *Config) { c.Rules.MaxBalls = 2; c.Rules.InitialBalls = 3 }},
		{"zero interval", func(c *Config) { c.Rules.SpawnInterval = 0 }},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := writeFile(t, "bounce.toml", "[rules]\nremoval_policy = \"oldest\"\n")
	_, err := Load(path)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig from Load, got %v", err)
	}
}
