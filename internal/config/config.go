// Package config defines the recognized training options for the Synap
// framework and their validation rules.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Algorithms accepted for the asymmetric-feedback backward pass. The update
// engine never inspects how gradients were produced; the algorithm name only
// gates which model family may be constructed and whether pretrained weights
// are allowed.
var supportedAlgos = map[string]bool{
	"none":                           true,
	"sign_symmetry":                  true,
	"feedback_alignment":             true,
	"sham":                           true,
	"feedback_alignment_signed_init": true,
	"sign_symmetry_random_weights":   true,
}

// Architecture families with a single, unambiguous final classification
// layer. Only these can be partitioned into last/non-last tiers.
var supportedArchPrefixes = []string{"resnet", "alexnet", "mlp"}

// ConfigurationError reports an invalid or unsupported option combination.
type ConfigurationError struct {
	Option string
	Reason string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: %s: %s", e.Option, e.Reason)
}

// Config holds the recognized training options.
//
// The two-tier fields mirror the update engine's split: plain fields apply
// to non-last layers, LastLayer* fields to the final classification layer.
type Config struct {
	// Update policies.
	Algo                    string  `yaml:"algo"`
	LastLayerAlgo           string  `yaml:"last_layer_algo"`
	BatchManhattan          bool    `yaml:"batch_manhattan"`
	LastLayerBatchManhattan bool    `yaml:"last_layer_batch_manhattan"`
	NoSignChange            bool    `yaml:"no_sign_change"`
	LastLayerNoSignChange   bool    `yaml:"last_layer_no_sign_change"`
	LR                      float32 `yaml:"learning_rate"`
	LastLayerLR             float32 `yaml:"last_layer_learning_rate"`
	LRDecayEpochs           int     `yaml:"lr_decay_epochs"`
	Momentum                float32 `yaml:"momentum"`
	WeightDecay             float32 `yaml:"weight_decay"`

	// Model and run shape.
	Arch       string `yaml:"arch"`
	Pretrained bool   `yaml:"pretrained"`
	Epochs     int    `yaml:"epochs"`
	StartEpoch int    `yaml:"start_epoch"`
	BatchSize  int    `yaml:"batch_size"`
	Seed       int64  `yaml:"seed"`

	// Checkpointing and reporting.
	Prefix           string `yaml:"prefix"`
	Resume           string `yaml:"resume"`
	Evaluate         bool   `yaml:"evaluate"`
	PrintFreq        int    `yaml:"print_freq"`
	SaveEveryEpoch   bool   `yaml:"save_every_epoch"`
	SaveEveryNEpochs int    `yaml:"save_every_n_epochs"`
}

// Default returns the baseline configuration.
func Default() *Config {
	return &Config{
		Algo:             "sign_symmetry",
		LastLayerAlgo:    "none",
		LR:               0.1,
		LastLayerLR:      0.1,
		LRDecayEpochs:    10,
		Momentum:         0.9,
		WeightDecay:      1e-4,
		Arch:             "resnet18",
		Epochs:           90,
		BatchSize:        256,
		Prefix:           ".",
		PrintFreq:        10,
		SaveEveryNEpochs: -1,
	}
}

// Load reads a YAML config file over the defaults.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	cfg := Default()
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks option values and combinations.
func (c *Config) Validate() error {
	if !supportedAlgos[c.Algo] {
		return &ConfigurationError{Option: "algo", Reason: fmt.Sprintf("unsupported algorithm %q", c.Algo)}
	}
	if !supportedAlgos[c.LastLayerAlgo] {
		return &ConfigurationError{Option: "last_layer_algo", Reason: fmt.Sprintf("unsupported algorithm %q", c.LastLayerAlgo)}
	}

	archOK := false
	for _, prefix := range supportedArchPrefixes {
		if strings.HasPrefix(c.Arch, prefix) {
			archOK = true
			break
		}
	}
	if !archOK {
		return &ConfigurationError{
			Option: "arch",
			Reason: fmt.Sprintf("unsupported architecture %q: need a single unambiguous final layer (one of %v)",
				c.Arch, supportedArchPrefixes),
		}
	}

	// Pretrained weights assume the standard update semantics that produced
	// them; non-default algorithms are mutually exclusive with them.
	if c.Pretrained && c.NonDefaultUpdate() {
		return &ConfigurationError{
			Option: "pretrained",
			Reason: "pretrained weights cannot be combined with a non-default update algorithm",
		}
	}

	if c.LR <= 0 {
		return &ConfigurationError{Option: "learning_rate", Reason: "must be positive"}
	}
	if c.LastLayerLR <= 0 {
		return &ConfigurationError{Option: "last_layer_learning_rate", Reason: "must be positive"}
	}
	if c.LRDecayEpochs <= 0 {
		return &ConfigurationError{Option: "lr_decay_epochs", Reason: "must be positive"}
	}
	if c.Momentum < 0 || c.Momentum >= 1 {
		return &ConfigurationError{Option: "momentum", Reason: "must be in [0, 1)"}
	}
	if c.WeightDecay < 0 {
		return &ConfigurationError{Option: "weight_decay", Reason: "must be non-negative"}
	}
	return nil
}

// NonDefaultUpdate reports whether any non-standard update semantics are
// requested.
func (c *Config) NonDefaultUpdate() bool {
	return c.Algo != "none" ||
		c.BatchManhattan || c.LastLayerBatchManhattan ||
		c.NoSignChange || c.LastLayerNoSignChange
}
