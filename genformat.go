/*
 * genformat.go, part of emperor.
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
	"sort"
	"strconv"
	"strings"
)

// ParseGenFormat parses a DFTB+ gen-format block out of possibly messy
// text. It is deliberately tolerant where tolerance is safe: lines
// before the header are skipped until one looks like "<N> C|S", blank
// lines are ignored everywhere, atom lines may arrive in any order,
// trailing text beyond the declared N atom lines is discarded, and a
// species line with repeated symbols is deduplicated with the atom ids
// remapped to match. Where the data is ambiguous it fails instead:
// duplicate or gapped atom indices, species ids outside the declared
// list, and count mismatches are errors, never guesses.
//
// The returned structure has atoms sorted by index 1..N.
func ParseGenFormat(text string) (*Structure, error) {
	lines := nonBlankLines(text)

	head := -1
	for i, ln := range lines {
		f := strings.Fields(ln)
		if len(f) < 2 || !allDigits(f[:1]) {
			continue
		}
		if u := strings.ToUpper(f[1]); u == "C" || u == "S" {
			head = i
			break
		}
	}
	if head < 0 {
		return nil, errorf(StageStructural, "Not a valid GenFormat header (expected '<N> C').")
	}
	lines = lines[head:]

	n, err := strconv.Atoi(strings.Fields(lines[0])[0])
	if err != nil {
		return nil, errorf(StageLexical, "GenFormat: N (atom count) must be integer.")
	}
	if len(lines) < 2 {
		return nil, errorf(StageStructural, "GenFormat: missing species line.")
	}
	declared := strings.Fields(lines[1])
	if len(declared) == 0 || allDigits(declared) {
		return nil, errorf(StageLexical, "GenFormat: species line must list symbols (e.g., 'C H').")
	}
	table := NewSpeciesTable()
	for _, sym := range declared {
		table.Add(sym)
	}

	body := lines[2:]
	if len(body) > n {
		body = body[:n]
	}
	atoms := make([]Atom, 0, n)
	seen := make(map[int]bool, n)
	for k, ln := range body {
		f := strings.Fields(ln)
		if len(f) < 5 {
			return nil, errorf(StageStructural, "GenFormat: coord line #%d must be 'i sid x y z'.", k+1)
		}
		idx, errI := strconv.Atoi(f[0])
		sid, errS := strconv.Atoi(f[1])
		x, errX := strconv.ParseFloat(f[2], 64)
		y, errY := strconv.ParseFloat(f[3], 64)
		z, errZ := strconv.ParseFloat(f[4], 64)
		if errI != nil || errS != nil || errX != nil || errY != nil || errZ != nil {
			return nil, errorf(StageLexical, "GenFormat: non-numeric value on coord line #%d.", k+1)
		}
		if seen[idx] {
			return nil, errorf(StageReferential, "GenFormat: duplicated atom index %d.", idx)
		}
		seen[idx] = true
		if sid < 1 || sid > len(declared) {
			return nil, errorf(StageReferential, "GenFormat: species id %d out of 1..%d.", sid, len(declared))
		}
		atoms = append(atoms, Atom{
			Index:     idx,
			SpeciesID: table.Add(declared[sid-1]),
			X:         x,
			Y:         y,
			Z:         z,
		})
	}
	if len(atoms) != n {
		return nil, errorf(StageArity, "GenFormat: header says N=%d but found %d coordinate lines.", n, len(atoms))
	}
	sort.Slice(atoms, func(i, j int) bool { return atoms[i].Index < atoms[j].Index })
	for i, a := range atoms {
		if a.Index != i+1 {
			return nil, errorf(StageReferential, "GenFormat: atom indices must be 1..N without gaps.")
		}
	}
	return &Structure{Species: table, Atoms: atoms}, nil
}
