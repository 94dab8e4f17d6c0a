/*
 * paramset.go, part of emperor.
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

package dftb

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// AvailableParamSets lists the Slater-Koster set directories under
// prefix, sorted by name. A missing prefix yields an empty list
// rather than an error: the service may come up before its parameter
// tables are mounted. Symlinked directories count, since that is how
// parameter sets are usually installed.
func AvailableParamSets(prefix string) []string {
	sets := []string{}
	entries, err := os.ReadDir(prefix)
	if err != nil {
		return sets
	}
	for _, e := range entries {
		info, err := os.Stat(filepath.Join(prefix, e.Name()))
		if err == nil && info.IsDir() {
			sets = append(sets, e.Name())
		}
	}
	return sets
}

// EnsureParamSet verifies that the named parameter set exists as a
// directory under prefix. The set name is typed by users, so the
// error lists what is actually installed, and names containing path
// separators are refused without touching the filesystem.
func EnsureParamSet(prefix, set string) error {
	if set == "" || set == "." || set == ".." || strings.ContainsAny(set, `/\`) {
		return paramSetError(prefix, set)
	}
	info, err := os.Stat(filepath.Join(prefix, set))
	if err != nil || !info.IsDir() {
		return paramSetError(prefix, set)
	}
	return nil
}

func paramSetError(prefix, set string) error {
	avail := strings.Join(AvailableParamSets(prefix), ",")
	if avail == "" {
		avail = "(none)"
	}
	return fmt.Errorf("Parameter set %s not found under %s. Available: %s", set, prefix, avail)
}
