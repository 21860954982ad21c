package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

const envPrefix = "PHASEOUT_"

type difficulty struct {
	Name string `env:"DIFFICULTY"`
}

// FromEnv selects a preset with PHASEOUT_DIFFICULTY and then applies any
// individual PHASEOUT_* overrides on top of it.
func FromEnv() (Balance, error) {
	opts := env.Options{Prefix: envPrefix}

	var d difficulty
	if err := env.ParseWithOptions(&d, opts); err != nil {
		return Balance{}, fmt.Errorf("parse env: %w", err)
	}

	cfg := Preset(d.Name)
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Balance{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
