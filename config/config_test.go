/*
 * config_test.go, part of emperor.
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

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DFTB_PREFIX", "")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 1200*time.Second, cfg.RunTimeout())
}

func TestLoadPartialFile(t *testing.T) {
	t.Setenv("DFTB_PREFIX", "")
	path := filepath.Join(t.TempDir(), "emperor.toml")
	text := "listen = \":9999\"\nmax_runs = 5\n"
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Listen)
	assert.Equal(t, 5, cfg.MaxRuns)
	// untouched fields keep their defaults
	assert.Equal(t, "data/jobs", cfg.DataDir)
	assert.Equal(t, "dftb+", cfg.SolverBinary)
}

func TestEnvOverridesPrefix(t *testing.T) {
	path := filepath.Join(t.TempDir(), "emperor.toml")
	require.NoError(t, os.WriteFile(path, []byte("dftb_prefix = \"/from/file\"\n"), 0o644))
	t.Setenv("DFTB_PREFIX", "/from/env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/from/env", cfg.DFTBPrefix)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
