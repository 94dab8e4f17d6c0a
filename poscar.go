/*
 * poscar.go, part of emperor.
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

package geom

import (
	"strconv"
	"strings"
)

// PoscarMeta is what the validator learned about a POSCAR file.
type PoscarMeta struct {
	Comment           string
	Symbols           []string
	Counts            []int
	NAtoms            int
	Mode              string // "direct" or "cartesian"
	SelectiveDynamics bool
}

// ValidatePOSCAR checks text against the VASP5 POSCAR layout, line by
// line over the non-blank lines, and reports the first violation with
// the offending line number. Unlike the gen-format parser it repairs
// nothing: POSCAR is positional, so a malformed file is ambiguous and
// gets rejected. VASP4 files, which count atoms without naming the
// elements, are refused outright rather than guessed at.
func ValidatePOSCAR(text string) (*PoscarMeta, error) {
	lines := nonBlankLines(text)
	if len(lines) < 8 {
		return nil, errorf(StageStructural, "POSCAR too short: expected at least 8 non-empty lines.")
	}
	comment := lines[0]
	if !isFloat(strings.Fields(lines[1])[0]) {
		return nil, errorf(StageLexical, "Line 2 (scaling factor) must be a number.")
	}
	for i := 2; i <= 4; i++ {
		f := strings.Fields(lines[i])
		if len(f) < 3 {
			return nil, errorf(StageLexical, "Line %d must have 3 lattice vector components.", i+1)
		}
		if !allFloats(f[:3]) {
			return nil, errorf(StageLexical, "Line %d contains non-numeric lattice components.", i+1)
		}
	}
	syms := strings.Fields(lines[5])
	if len(syms) == 0 || allInts(syms) {
		return nil, errorf(StageDialect, "Line 6 must list element symbols (e.g., 'C H'). This file looks like VASP4; please provide VASP5 with symbols.")
	}
	cnt := strings.Fields(lines[6])
	if len(cnt) == 0 || !allInts(cnt) {
		return nil, errorf(StageLexical, "Line 7 must contain integer counts (e.g., '1 4').")
	}
	if len(cnt) != len(syms) {
		return nil, errorf(StageArity, "Counts length mismatch: found %d numbers for %d symbols (%s).", len(cnt), len(syms), strings.Join(syms, " "))
	}
	counts := make([]int, len(cnt))
	natoms := 0
	for i, t := range cnt {
		counts[i], _ = strconv.Atoi(t) // allInts vetted every token already
		natoms += counts[i]
	}
	idx := 7
	selective := false
	if strings.HasPrefix(strings.ToLower(lines[idx]), "selective") {
		selective = true
		idx++
	}
	if idx >= len(lines) {
		return nil, errorf(StageStructural, "Missing coordinate mode line (expected 'Direct' or 'Cartesian').")
	}
	mode := strings.ToLower(lines[idx])
	if !strings.HasPrefix(mode, "direct") && !strings.HasPrefix(mode, "cart") {
		return nil, errorf(StageStructural, "Coordinate mode must be 'Direct' or 'Cartesian' on the line after counts (or after 'Selective dynamics').")
	}
	idx++
	if have := len(lines) - idx; have < natoms {
		return nil, errorf(StageArity, "Not enough coordinate lines: expected %d, found %d.", natoms, have)
	}
	for k := 0; k < natoms; k++ {
		f := strings.Fields(lines[idx+k])
		if len(f) < 3 {
			return nil, errorf(StageLexical, "Coordinate line %d under the mode must have at least 3 numbers.", k+1)
		}
		if !allFloats(f[:3]) {
			return nil, errorf(StageLexical, "Coordinate line %d contains non-numeric values.", k+1)
		}
	}
	meta := &PoscarMeta{
		Comment:           comment,
		Symbols:           syms,
		Counts:            counts,
		NAtoms:            natoms,
		Mode:              "cartesian",
		SelectiveDynamics: selective,
	}
	if strings.Contains(mode, "direct") {
		meta.Mode = "direct"
	}
	return meta, nil
}
