// Package config handles intcode.toml configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"gitlab.com/efronlicht/enve"
)

// Config is the full tool configuration.
type Config struct {
	Log     LogConfig         `toml:"log"`
	Machine MachineConfig     `toml:"machine"`
	Network NetworkConfig     `toml:"network"`
	Storage StorageConfig     `toml:"storage"`
	Inputs  map[string]string `toml:"inputs"`

	// Path is the file the configuration was read from, if any.
	Path string `toml:"-"`
}

type LogConfig struct {
	Level   string `toml:"level"`
	Modules string `toml:"modules"`
}

type MachineConfig struct {
	Trace     bool   `toml:"trace"`
	StepLimit uint64 `toml:"step_limit"`
}

type NetworkConfig struct {
	MaxRounds   int   `toml:"max_rounds"`
	IdleRounds  int   `toml:"idle_rounds"`
	NICCount    int   `toml:"nic_count"`
	SinkAddress int64 `toml:"sink_address"`
}

type StorageConfig struct {
	// Path of the LevelDB snapshot store. Empty keeps snapshots in memory.
	Path string `toml:"path"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info"},
		Network: NetworkConfig{
			MaxRounds:   100000,
			IdleRounds:  1,
			NICCount:    50,
			SinkAddress: 255,
		},
		Inputs: map[string]string{},
	}
}

// Load reads path over the defaults and then applies environment
// overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("cannot read %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse error in %s: %w", path, err)
		}
		cfg.Path = path
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from INTCODE_* environment variables. Unset
// variables leave the field alone; a malformed value is an error.
func (c *Config) ApplyEnv() error {
	return errors.Join(
		fromEnv(parseString, "INTCODE_LOG_LEVEL", &c.Log.Level),
		fromEnv(parseString, "INTCODE_LOG_MODULES", &c.Log.Modules),
		fromEnv(strconv.ParseBool, "INTCODE_TRACE", &c.Machine.Trace),
		fromEnv(parseUint64, "INTCODE_STEP_LIMIT", &c.Machine.StepLimit),
		fromEnv(parseString, "INTCODE_STORE", &c.Storage.Path),
		fromEnv(strconv.Atoi, "INTCODE_MAX_ROUNDS", &c.Network.MaxRounds),
	)
}

// fromEnv stores the parsed value of key in dst when key is set.
func fromEnv[T any](parse func(string) (T, error), key string, dst *T) error {
	v, err := enve.Lookup(parse, key)
	var missing enve.MissingKeyError
	if errors.As(err, &missing) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = v
	return nil
}

func parseString(s string) (string, error) { return s, nil }

func parseUint64(s string) (uint64, error) { return strconv.ParseUint(s, 10, 64) }

// Validate rejects settings no run could use.
func (c *Config) Validate() error {
	if c.Network.NICCount < 1 {
		return fmt.Errorf("network.nic_count must be positive, got %d", c.Network.NICCount)
	}
	if c.Network.IdleRounds < 1 {
		return fmt.Errorf("network.idle_rounds must be positive, got %d", c.Network.IdleRounds)
	}
	if c.Network.MaxRounds < 0 {
		return fmt.Errorf("network.max_rounds must not be negative, got %d", c.Network.MaxRounds)
	}
	return nil
}

// Input returns the configured program path for a puzzle day, falling back
// to inputs/dayNN.txt.
func (c *Config) Input(day int) string {
	key := fmt.Sprintf("day%02d", day)
	if p, ok := c.Inputs[key]; ok && p != "" {
		return p
	}
	return fmt.Sprintf("inputs/%s.txt", key)
}
