package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/bounce/parameter"
)

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// Variant selects the containment geometry
type Variant string

const (
	VariantCircle Variant = "circle"
	VariantTunnel Variant = "tunnel"
)

// RemovalPolicy selects which ball of a colliding pair is removed
type RemovalPolicy string

const (
	// RemoveFirst always removes the body of the contact's first fixture
	RemoveFirst RemovalPolicy = "first"
	// RemoveRandom picks either body with equal probability from the seeded RNG
	RemoveRandom RemovalPolicy = "random"
)

type Config struct {
	World   WorldConfig   `toml:"world" yaml:"world"`
	Physics PhysicsConfig `toml:"physics" yaml:"physics"`
	Ball    BallConfig    `toml:"ball" yaml:"ball"`
	Circle  CircleConfig  `toml:"circle" yaml:"circle"`
	Tunnel  TunnelConfig  `toml:"tunnel" yaml:"tunnel"`
	Rules   RulesConfig   `toml:"rules" yaml:"rules"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
	Audio   AudioConfig   `toml:"audio" yaml:"audio"`

	// Keys overrides default bindings: key name → action name
	Keys map[string]string `toml:"keys" yaml:"keys"`
}

type WorldConfig struct {
	Variant  Variant `toml:"variant" yaml:"variant"`
	Width    float64 `toml:"width" yaml:"width"`   // meters
	Height   float64 `toml:"height" yaml:"height"` // meters
	GravityX float64 `toml:"gravity_x" yaml:"gravity_x"`
	GravityY float64 `toml:"gravity_y" yaml:"gravity_y"`
}

type PhysicsConfig struct {
	TimeStep           time.Duration `toml:"time_step" yaml:"time_step"`
	MaxFrameDelta      time.Duration `toml:"max_frame_delta" yaml:"max_frame_delta"` // 0 disables clamping
	VelocityIterations int           `toml:"velocity_iterations" yaml:"velocity_iterations"`
	PositionIterations int           `toml:"position_iterations" yaml:"position_iterations"`
}

type BallConfig struct {
	RadiusMin   float64 `toml:"radius_min" yaml:"radius_min"`
	RadiusRange float64 `toml:"radius_range" yaml:"radius_range"`
	Density     float64 `toml:"density" yaml:"density"`
	Friction    float64 `toml:"friction" yaml:"friction"`
	Restitution float64 `toml:"restitution" yaml:"restitution"`
	SpawnSpread float64 `toml:"spawn_spread" yaml:"spawn_spread"`
}

type CircleConfig struct {
	Radius      float64 `toml:"radius" yaml:"radius"`
	Segments    int     `toml:"segments" yaml:"segments"`
	Density     float64 `toml:"density" yaml:"density"`
	Friction    float64 `toml:"friction" yaml:"friction"`
	Restitution float64 `toml:"restitution" yaml:"restitution"`
}

type TunnelConfig struct {
	Length      float64 `toml:"length" yaml:"length"`
	Gap         float64 `toml:"gap" yaml:"gap"`
	Thickness   float64 `toml:"thickness" yaml:"thickness"`
	Friction    float64 `toml:"friction" yaml:"friction"`
	Restitution float64 `toml:"restitution" yaml:"restitution"`
	TiltStep    float64 `toml:"tilt_step" yaml:"tilt_step"` // radians per input
	TiltMax     float64 `toml:"tilt_max" yaml:"tilt_max"`   // 0 = unbounded
}

type RulesConfig struct {
	RemovalPolicy   RemovalPolicy `toml:"removal_policy" yaml:"removal_policy"`
	SpawnPerContact int           `toml:"spawn_per_contact" yaml:"spawn_per_contact"`
	MaxBalls        int           `toml:"max_balls" yaml:"max_balls"` // 0 = uncapped
	InitialBalls    int           `toml:"initial_balls" yaml:"initial_balls"`
	SpawnInterval   time.Duration `toml:"spawn_interval" yaml:"spawn_interval"`
	SessionLimit    time.Duration `toml:"session_limit" yaml:"session_limit"` // 0 = unlimited
	Seed            uint64        `toml:"seed" yaml:"seed"`                   // 0 = time-based
	Strict          bool          `toml:"strict" yaml:"strict"`               // verify registry after each drain
}

type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"` // "json" or "console"
	File   string `toml:"file" yaml:"file"`
}

type AudioConfig struct {
	Enabled bool `toml:"enabled" yaml:"enabled"`
}

// Load reads a TOML or YAML file (by extension) over the defaults
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = toml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		World: WorldConfig{
			Variant:  VariantCircle,
			Width:    parameter.WorldWidth,
			Height:   parameter.WorldHeight,
			GravityX: parameter.GravityX,
			GravityY: parameter.GravityY,
		},
		Physics: PhysicsConfig{
			TimeStep:           parameter.PhysicsTimeStep,
			MaxFrameDelta:      parameter.MaxFrameDelta,
			VelocityIterations: parameter.VelocityIterations,
			PositionIterations: parameter.PositionIterations,
		},
		Ball: BallConfig{
			RadiusMin:   parameter.BallRadiusMin,
			RadiusRange: parameter.BallRadiusRange,
			Density:     parameter.BallDensity,
			Friction:    parameter.BallFriction,
			Restitution: parameter.BallRestitution,
			SpawnSpread: parameter.BallSpawnSpread,
		},
		Circle: CircleConfig{
			Radius:      parameter.CircleRadius,
			Segments:    parameter.CircleSegments,
			Density:     parameter.CircleDensity,
			Friction:    parameter.CircleFriction,
			Restitution: parameter.CircleRestitution,
		},
		Tunnel: TunnelConfig{
			Length:      parameter.TunnelLength,
			Gap:         parameter.TunnelGap,
			Thickness:   parameter.TunnelThickness,
			Friction:    parameter.TunnelFriction,
			Restitution: parameter.TunnelRestitution,
			TiltStep:    parameter.TiltStep,
			TiltMax:     parameter.TiltMax,
		},
		Rules: RulesConfig{
			RemovalPolicy:   RemoveFirst,
			SpawnPerContact: 1,
			MaxBalls:        parameter.MaxBalls,
			InitialBalls:    parameter.InitialBalls,
			SpawnInterval:   parameter.SpawnInterval,
			SessionLimit:    parameter.SessionLimit,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			File:   "logs/bounce.log",
		},
		Audio: AudioConfig{
			Enabled: true,
		},
	}
}

// Validate rejects configurations the simulation cannot run
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
		}
	}

	check(c.World.Variant == VariantCircle || c.World.Variant == VariantTunnel,
		"world.variant %q must be %q or %q", c.World.Variant, VariantCircle, VariantTunnel)
	check(c.World.Width > 0 && c.World.Height > 0, "world size must be positive")

	check(c.Physics.TimeStep > 0, "physics.time_step must be positive")
	check(c.Physics.MaxFrameDelta >= 0, "physics.max_frame_delta must not be negative")
	check(c.Physics.VelocityIterations > 0 && c.Physics.PositionIterations > 0, "physics iterations must be positive")

	check(c.Ball.RadiusMin > 0, "ball.radius_min must be positive")
	check(c.Ball.RadiusRange >= 0, "ball.radius_range must not be negative")
	check(c.Ball.Density > 0, "ball.density must be positive")
	check(c.Ball.SpawnSpread >= 1, "ball.spawn_spread must be at least 1")

	switch c.World.Variant {
	case VariantCircle:
		check(c.Circle.Radius > c.Ball.RadiusMin+c.Ball.RadiusRange, "circle.radius must exceed the largest ball")
		check(c.Circle.Segments >= 3, "circle.segments must be at least 3")
	case VariantTunnel:
		check(c.Tunnel.Length > 0 && c.Tunnel.Thickness > 0, "tunnel length and thickness must be positive")
		check(c.Tunnel.Gap > 2*(c.Ball.RadiusMin+c.Ball.RadiusRange), "tunnel.gap must fit the largest ball")
		check(c.Tunnel.TiltMax >= 0, "tunnel.tilt_max must not be negative")
		if c.Tunnel.TiltMax > 0 {
			tilted := (c.Tunnel.Gap+c.Tunnel.Thickness)*math.Cos(c.Tunnel.TiltMax) - c.Tunnel.Thickness
			check(tilted > 2*(c.Ball.RadiusMin+c.Ball.RadiusRange), "tunnel.gap must fit the largest ball at tunnel.tilt_max")
		}
	}

	check(c.Rules.RemovalPolicy == RemoveFirst || c.Rules.RemovalPolicy == RemoveRandom,
		"rules.removal_policy %q must be %q or %q", c.Rules.RemovalPolicy, RemoveFirst, RemoveRandom)
	check(c.Rules.SpawnPerContact >= 0, "rules.spawn_per_contact must not be negative")
	check(c.Rules.MaxBalls >= 0, "rules.max_balls must not be negative")
	check(c.Rules.InitialBalls >= 0, "rules.initial_balls must not be negative")
	check(c.Rules.MaxBalls == 0 || c.Rules.InitialBalls <= c.Rules.MaxBalls, "rules.initial_balls exceeds rules.max_balls")
	check(c.Rules.SpawnInterval > 0, "rules.spawn_interval must be positive")
	check(c.Rules.SessionLimit >= 0, "rules.session_limit must not be negative")

	check(c.Logging.Format == "" || c.Logging.Format == "console" || c.Logging.Format == "json",
		"logging.format %q must be console or json", c.Logging.Format)

	return errors.Join(errs...)
}
