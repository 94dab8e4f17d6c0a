/*
 * config.go, part of emperor.
 *
 * Copyright 2025 The emperor authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// Package config loads the emperor service configuration from a TOML
// file, with defaults that match a bare checkout: jobs under
// ./data/jobs and Slater-Koster sets under ./parameters.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml"
)

// Config holds everything the serve command needs. Zero values are
// filled from Default, so a partial TOML file is fine.
type Config struct {
	// Listen is the address the HTTP server binds, e.g. ":8080".
	Listen string `toml:"listen"`
	// DataDir is the directory job directories are created under.
	DataDir string `toml:"data_dir"`
	// DFTBPrefix is the directory holding one subdirectory per
	// Slater-Koster parameter set. The DFTB_PREFIX environment
	// variable overrides it.
	DFTBPrefix string `toml:"dftb_prefix"`
	// SolverBinary is the dftb+ executable to run, resolved via PATH
	// unless absolute.
	SolverBinary string `toml:"solver_binary"`
	// RunTimeoutSec caps a single solver run, in seconds.
	RunTimeoutSec int `toml:"run_timeout_sec"`
	// MaxRuns bounds how many solver processes run at once.
	MaxRuns int `toml:"max_runs"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Listen:        ":8080",
		DataDir:       "data/jobs",
		DFTBPrefix:    "parameters",
		SolverBinary:  "dftb+",
		RunTimeoutSec: 1200,
		MaxRuns:       2,
	}
}

// Load reads a TOML configuration file and merges it over Default.
// An empty path yields Default untouched. In either case DFTB_PREFIX
// from the environment, if set, wins over the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return cfg, fmt.Errorf("config: %w", err)
		}
		defer f.Close()
		var file Config
		if err := toml.NewDecoder(f).Decode(&file); err != nil {
			return cfg, fmt.Errorf("config: decode %s: %w", path, err)
		}
		cfg.merge(file)
	}
	if env := os.Getenv("DFTB_PREFIX"); env != "" {
		cfg.DFTBPrefix = env
	}
	return cfg, nil
}

func (c *Config) merge(o Config) {
	if o.Listen != "" {
		c.Listen = o.Listen
	}
	if o.DataDir != "" {
		c.DataDir = o.DataDir
	}
	if o.DFTBPrefix != "" {
		c.DFTBPrefix = o.DFTBPrefix
	}
	if o.SolverBinary != "" {
		c.SolverBinary = o.SolverBinary
	}
	if o.RunTimeoutSec > 0 {
		c.RunTimeoutSec = o.RunTimeoutSec
	}
	if o.MaxRuns > 0 {
		c.MaxRuns = o.MaxRuns
	}
}

// RunTimeout returns the solver timeout as a duration.
func (c Config) RunTimeout() time.Duration {
	return time.Duration(c.RunTimeoutSec) * time.Second
}
