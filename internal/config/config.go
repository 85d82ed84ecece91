// Package config loads the host configuration from YAML. The document is
// decoded loosely first and mapped onto typed structs with mapstructure,
// so unknown keys are tolerated across versions of the file.
package config

import (
	"fmt"
	"os"

	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"
)

// Config is the full host configuration.
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Evaluator EvaluatorConfig `mapstructure:"evaluator"`
	Runner    RunnerConfig    `mapstructure:"runner"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// EvaluatorConfig selects and parameterizes one scoring strategy.
type EvaluatorConfig struct {
	// Strategy is "weighted" or "ranked".
	Strategy string `mapstructure:"strategy"`

	// Prioritized boosts one metric in the weighted model.
	Prioritized string `mapstructure:"prioritized"`

	// Rules configure the ranked model, in rank order.
	Rules []RuleConfig `mapstructure:"rules"`

	Protect          bool `mapstructure:"protect"`
	DisallowShopping bool `mapstructure:"disallow_shopping"`
}

type RuleConfig struct {
	Metric         string  `mapstructure:"metric"`
	Target         float64 `mapstructure:"target"`
	HigherIsBetter bool    `mapstructure:"higher_is_better"`
}

type RunnerConfig struct {
	// Slot is the persistence key for the live state.
	Slot string `mapstructure:"slot"`

	SQLitePath string      `mapstructure:"sqlite_path"`
	Redis      RedisConfig `mapstructure:"redis"`
	HTTPAddr   string      `mapstructure:"http_addr"`
}

type RedisConfig struct {
	Addr   string `mapstructure:"addr"`
	Prefix string `mapstructure:"prefix"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Log:       LogConfig{Level: "info"},
		Evaluator: EvaluatorConfig{Strategy: "weighted", Prioritized: "pay_per_mile"},
		Runner: RunnerConfig{
			Slot:       "active",
			SQLitePath: "dashbuddy.db",
			HTTPAddr:   ":8465",
		},
	}
}

// Load reads and decodes a YAML config file, layered over Default.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return cfg, err
	}
	if err := dec.Decode(raw); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}
