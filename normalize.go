/*
 * normalize.go, part of emperor.
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

// StructureReader extracts per-atom chemical symbols and Cartesian
// positions, in Angstrom, from a POSCAR body that already passed
// ValidatePOSCAR. The vasp package provides the implementation used
// in production; tests substitute their own.
type StructureReader interface {
	ReadPOSCAR(text string) (symbols []string, positions [][3]float64, err error)
}

// Normalize turns raw user-supplied geometry text into a canonical
// gen-format block. Markdown fences are stripped, the dialect is
// detected, and the matching parser runs: tolerant for gen-format
// (junk skipped, atom order repaired, species deduplicated), strict
// for POSCAR. POSCAR coordinate extraction is delegated to reader.
// All rejections come back as *Error with a user-facing message.
func Normalize(raw string, reader StructureReader) (*NormalizedGeometry, error) {
	shape, body, err := classify(StripFences(raw))
	if err != nil {
		return nil, err
	}
	if shape == poscarLike {
		return NormalizePOSCAR(body, reader)
	}
	s, err := ParseGenFormat(body)
	if err != nil {
		return nil, err
	}
	return &NormalizedGeometry{
		Kind:          GenFormat,
		CanonicalText: Canonical(s),
		SpeciesOrder:  s.Species.Symbols(),
		AtomSymbols:   s.AtomSymbols(),
	}, nil
}

// NormalizePOSCAR validates text as strict VASP5 POSCAR and converts
// it to a canonical gen-format block. It skips classification, for
// callers that already know they hold a POSCAR.
func NormalizePOSCAR(text string, reader StructureReader) (*NormalizedGeometry, error) {
	if _, err := ValidatePOSCAR(text); err != nil {
		return nil, err
	}
	if reader == nil {
		return nil, errorf(StageStructural, "POSCAR input needs a structure reader and none is configured.")
	}
	symbols, positions, err := reader.ReadPOSCAR(text)
	if err != nil {
		return nil, errorf(StageLexical, "POSCAR detected but coordinate extraction failed: %v", err)
	}
	s, err := FromSymbols(symbols, positions)
	if err != nil {
		return nil, err
	}
	return &NormalizedGeometry{
		Kind:          POSCAR,
		CanonicalText: Canonical(s),
		SpeciesOrder:  s.Species.Symbols(),
		AtomSymbols:   s.AtomSymbols(),
	}, nil
}
