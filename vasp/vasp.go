/*
 * vasp.go, part of emperor.
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

/*
Package vasp extracts atomic structures from VASP5 POSCAR text:
per-atom chemical symbols plus Cartesian positions in Angstrom, with
the scale factor and, for Direct mode, the lattice transform already
applied. It implements the structure-reader contract of the geom
package and assumes the strict POSCAR validation there already ran;
its own checks only guard against slicing past truncated input.
*/
package vasp

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Reader satisfies geom.StructureReader with Read.
type Reader struct{}

func (Reader) ReadPOSCAR(text string) ([]string, [][3]float64, error) {
	return Read(text)
}

// Read parses POSCAR text and returns the chemical symbol and the
// Cartesian position of every atom, in file order. A negative scale
// factor is interpreted, as VASP does, as the target cell volume;
// the actual factor is then the cube root of |scale|/|det(lattice)|.
func Read(text string) ([]string, [][3]float64, error) {
	lines := nonBlank(text)
	if len(lines) < 8 {
		return nil, nil, fmt.Errorf("vasp: POSCAR needs at least 8 non-empty lines, got %d", len(lines))
	}
	scale, err := strconv.ParseFloat(strings.Fields(lines[1])[0], 64)
	if err != nil {
		return nil, nil, fmt.Errorf("vasp: scale factor: %w", err)
	}
	latData := make([]float64, 0, 9)
	for i := 2; i <= 4; i++ {
		f := strings.Fields(lines[i])
		if len(f) < 3 {
			return nil, nil, fmt.Errorf("vasp: lattice line %d has %d components, want 3", i+1, len(f))
		}
		for _, tok := range f[:3] {
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("vasp: lattice line %d: %w", i+1, err)
			}
			latData = append(latData, v)
		}
	}
	lattice := mat.NewDense(3, 3, latData)
	if scale < 0 {
		vol := math.Abs(mat.Det(lattice))
		if vol == 0 {
			return nil, nil, fmt.Errorf("vasp: negative scale with a singular lattice")
		}
		scale = math.Cbrt(math.Abs(scale) / vol)
	}
	lattice.Scale(scale, lattice)

	symbols := strings.Fields(lines[5])
	countToks := strings.Fields(lines[6])
	if len(countToks) != len(symbols) {
		return nil, nil, fmt.Errorf("vasp: %d counts for %d symbols", len(countToks), len(symbols))
	}
	var perAtom []string
	for i, tok := range countToks {
		n, err := strconv.Atoi(tok)
		if err != nil {
			return nil, nil, fmt.Errorf("vasp: atom count %q: %w", tok, err)
		}
		for j := 0; j < n; j++ {
			perAtom = append(perAtom, symbols[i])
		}
	}
	natoms := len(perAtom)

	idx := 7
	if strings.HasPrefix(strings.ToLower(lines[idx]), "s") {
		idx++ // selective dynamics line
	}
	if idx >= len(lines) {
		return nil, nil, fmt.Errorf("vasp: missing coordinate mode line")
	}
	mode := strings.ToLower(lines[idx])
	cartesian := strings.HasPrefix(mode, "c") || strings.HasPrefix(mode, "k")
	idx++
	if len(lines)-idx < natoms {
		return nil, nil, fmt.Errorf("vasp: %d coordinate lines for %d atoms", len(lines)-idx, natoms)
	}
	coordData := make([]float64, 0, natoms*3)
	for k := 0; k < natoms; k++ {
		f := strings.Fields(lines[idx+k])
		if len(f) < 3 {
			return nil, nil, fmt.Errorf("vasp: coordinate line %d has %d fields, want at least 3", k+1, len(f))
		}
		for _, tok := range f[:3] {
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("vasp: coordinate line %d: %w", k+1, err)
			}
			coordData = append(coordData, v)
		}
	}
	if natoms == 0 {
		return perAtom, nil, nil
	}
	raw := mat.NewDense(natoms, 3, coordData)
	var cart mat.Dense
	if cartesian {
		// Cartesian input is in units of the scale factor.
		cart.Scale(scale, raw)
	} else {
		// Fractional coordinates: row vectors times the scaled lattice.
		cart.Mul(raw, lattice)
	}
	positions := make([][3]float64, natoms)
	for k := 0; k < natoms; k++ {
		positions[k] = [3]float64{cart.At(k, 0), cart.At(k, 1), cart.At(k, 2)}
	}
	return perAtom, positions, nil
}

func nonBlank(text string) []string {
	var out []string
	for _, ln := range strings.Split(text, "\n") {
		if t := strings.TrimSpace(ln); t != "" {
			out = append(out, t)
		}
	}
	return out
}
