package app

import (
	"errors"
	"fmt"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	DataPath    string   // directory holding the *.rte modules
	Modules     []string // load only these, in order; empty loads everything
	CoreModules []string // loaded first when loading everything; must succeed

	LogFormat string
	LogLevel  string

	Profile     string // "", "cpu" or "mem"
	ProfilePath string

	Dump                bool // write each module's properties after loading
	SkipDependencyCheck bool
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.DataPath == "" {
		return nil, errors.New("DataPath is a required configuration field and cannot be empty")
	}

	switch cfg.Profile {
	case "", "cpu", "mem":
	default:
		return nil, fmt.Errorf("invalid profile mode %q: must be 'cpu' or 'mem'", cfg.Profile)
	}
	if cfg.ProfilePath == "" {
		cfg.ProfilePath = "."
	}

	return &cfg, nil
}
