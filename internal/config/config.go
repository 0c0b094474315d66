// Copyright 2026 The Duniter-Go Authors
// This file is part of the duniter-go/duniter library.
//
// This software is provided "as is", without warranty of any kind,
// express or implied, including but not limited to the warranties
// of merchantability, fitness for a particular purpose and
// noninfringement. In no event shall the authors or copyright
// holders be liable for any claim, damages, or other liability,
// whether in an action of contract, tort or otherwise, arising
// from, out of or in connection with the software or the use or
// other dealings in the software.

// Package config loads the node configuration consumed by the
// synchronization core, TOML-decoded.
package config

import (
	"os"
	"time"

	"github.com/naoina/toml"
	"github.com/pkg/errors"
)

// Config holds the options the synchronization core recognizes.
type Config struct {
	Currency                 string        `toml:"currency"`
	NetworkSyncLongTimeout   time.Duration `toml:"network_sync_long_timeout"`
	DocumentsVersion         int           `toml:"documents_version"`
	ForkAllowed              bool          `toml:"fork_allowed"`
	ChunkSize                int           `toml:"chunk_size"`
	EvalRemainingIntervalMS  int           `toml:"eval_remaining_interval_ms"`
	SpeedWindow              int           `toml:"speed_window"`
}

// Defaults returns the built-in configuration defaults.
func Defaults() Config {
	return Config{
		DocumentsVersion:        10,
		ForkAllowed:             true,
		ChunkSize:               500,
		EvalRemainingIntervalMS: 1000,
		SpeedWindow:             8,
		NetworkSyncLongTimeout:  60 * time.Second,
	}
}

// Load decodes a TOML configuration file at path, overlaying it on top
// of Defaults() so an incomplete file still produces a usable Config.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "config: opening %s", path)
	}
	defer f.Close()

	cfg := Defaults()
	if err := toml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, errors.Wrapf(err, "config: decoding %s", path)
	}
	return &cfg, nil
}
