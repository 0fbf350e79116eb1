package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/lixenwraith/bounce/config"
)

// defaultConfigPath is loaded when present and no -config is given
const defaultConfigPath = "bounce.toml"

type options struct {
	configPath string
	variant    string
	seed       uint64
	debug      bool
	mute       bool
	seconds    float64
}

func parseFlags(fset *flag.FlagSet, args []string) (options, error) {
	var o options
	fset.StringVar(&o.configPath, "config", "", "config file (.toml, .yaml, .yml)")
	fset.StringVar(&o.variant, "variant", "", "boundary variant: circle or tunnel")
	fset.Uint64Var(&o.seed, "seed", 0, "random seed, 0 for time-based")
	fset.BoolVar(&o.debug, "debug", false, "write logs to the configured log file")
	fset.BoolVar(&o.mute, "mute", false, "start with audio disabled")
	fset.Float64Var(&o.seconds, "seconds", 0, "quit after this many seconds, 0 runs until quit")
	if err := fset.Parse(args); err != nil {
		return o, err
	}
	return o, nil
}

// loadConfig resolves the config file and overlays command-line overrides
func loadConfig(o options) (*config.Config, error) {
	cfg := config.Default()

	path := o.configPath
	if path == "" {
		if _, err := os.Stat(defaultConfigPath); err == nil {
			path = defaultConfigPath
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("stat %s: %w", defaultConfigPath, err)
		}
	}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if o.variant != "" {
		cfg.World.Variant = config.Variant(o.variant)
	}
	if o.seed != 0 {
		cfg.Rules.Seed = o.seed
	}
	if o.mute {
		cfg.Audio.Enabled = false
	}
	if o.seconds > 0 {
		cfg.Rules.SessionLimit = time.Duration(o.seconds * float64(time.Second))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
