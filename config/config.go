// Copyright 2026 Synap ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package config provides the public API for Synap training
// configuration.
package config

import (
	"github.com/synap-ml/synap/internal/config"
)

// Config holds the recognized training options.
type Config = config.Config

// ConfigurationError reports an invalid or inconsistent option value.
type ConfigurationError = config.ConfigurationError

// Default returns the baseline configuration.
func Default() *Config {
	return config.Default()
}

// Load reads a YAML config file over the defaults and validates it.
func Load(path string) (*Config, error) {
	return config.Load(path)
}
