// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

import (
	"bytes"
	"io"
	"log"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of the environment variables read by LoadConfig.
//
const EnvPrefix = "NETSIM_"

// Config holds the settings of a simulation.
//
type Config struct {
	// Short circuit policy: high_low_short, prefer_high or prefer_low.
	Policy Policy `yaml:"policy" env:"POLICY"`
	// Seed of the noise source. 0 seeds from the current time.
	Seed int64 `yaml:"seed" env:"SEED"`
	// Virtual circuits cannot be ticked.
	Virtual bool `yaml:"virtual" env:"VIRTUAL"`
	// TickRate is the number of ticks per second run by a driver.
	TickRate int `yaml:"tick_rate" env:"TICK_RATE"`
	// Ticks is the number of ticks to run before stopping. 0 runs forever.
	Ticks uint64 `yaml:"ticks" env:"TICKS"`
}

// DefaultConfig returns the default configuration.
//
func DefaultConfig() *Config {
	return &Config{
		Policy:   HighLowShort,
		TickRate: 100,
	}
}

// LoadConfig reads the YAML configuration file at path then applies overrides
// from NETSIM_* environment variables. If path is empty, only the defaults and
// the environment are used.
//
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "read config")
		}
		if err := cfg.decode(bytes.NewReader(data)); err != nil {
			return nil, errors.Wrap(err, path)
		}
	}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, errors.Wrap(err, "parse environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && err != io.EOF {
		return errors.Wrap(err, "parse config")
	}
	return nil
}

// Validate checks that the configuration values are in range.
//
func (c *Config) Validate() error {
	if int(c.Policy) >= len(policyNames) {
		return errors.Errorf("invalid policy %d", c.Policy)
	}
	if c.TickRate <= 0 {
		return errors.Errorf("invalid tick rate %d", c.TickRate)
	}
	return nil
}

// Interval returns the delay between two ticks.
//
func (c *Config) Interval() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

// Options converts c to circuit options. The logger may be nil.
//
func (c *Config) Options(logger *log.Logger) *Options {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Options{
		Policy:  c.Policy,
		Source:  NewSource(seed),
		Virtual: c.Virtual,
		Logger:  logger,
	}
}
