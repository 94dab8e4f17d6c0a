/*
 * geom.go, part of emperor.
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
)

// Atom is one atom record of a geometry: a 1-based index, a 1-based
// species id into the owning Structure's species table, and Cartesian
// coordinates in Angstrom.
type Atom struct {
	Index     int
	SpeciesID int
	X, Y, Z   float64
}

// SpeciesTable is the ordered set of distinct chemical species in a
// geometry. Ids are 1-based, order is first appearance, and a symbol
// is kept only once no matter how often it is added.
type SpeciesTable struct {
	symbols []string
	ids     map[string]int
}

// NewSpeciesTable returns an empty species table.
func NewSpeciesTable() *SpeciesTable {
	return &SpeciesTable{ids: make(map[string]int)}
}

// Add registers symbol if it is new and returns its 1-based id either way.
func (t *SpeciesTable) Add(symbol string) int {
	if id, ok := t.ids[symbol]; ok {
		return id
	}
	t.symbols = append(t.symbols, symbol)
	t.ids[symbol] = len(t.symbols)
	return len(t.symbols)
}

// ID returns the 1-based id of symbol, or 0 and false if absent.
func (t *SpeciesTable) ID(symbol string) (int, bool) {
	id, ok := t.ids[symbol]
	return id, ok
}

// Symbol returns the symbol registered under the given 1-based id.
// It panics if the id is out of range, as ids only come from the
// table itself.
func (t *SpeciesTable) Symbol(id int) string {
	return t.symbols[id-1]
}

// Len returns the number of distinct species in the table.
func (t *SpeciesTable) Len() int {
	return len(t.symbols)
}

// Symbols returns a copy of the symbols in table order.
func (t *SpeciesTable) Symbols() []string {
	return append([]string{}, t.symbols...)
}

// Structure is a repaired geometry: atoms sorted by index 1..N plus
// the species table their SpeciesID fields point into.
type Structure struct {
	Species *SpeciesTable
	Atoms   []Atom
}

// Len returns the number of atoms in the structure.
func (s *Structure) Len() int {
	return len(s.Atoms)
}

// AtomSymbols returns the chemical symbol of every atom, in atom order.
func (s *Structure) AtomSymbols() []string {
	syms := make([]string, len(s.Atoms))
	for i, a := range s.Atoms {
		syms[i] = s.Species.Symbol(a.SpeciesID)
	}
	return syms
}

// FromSymbols builds a Structure from per-atom symbols and Cartesian
// positions, assigning species ids by first appearance and atom
// indices 1..N in input order. This is the bridge from formats, like
// POSCAR, that carry a symbol per atom instead of a species table.
func FromSymbols(symbols []string, positions [][3]float64) (*Structure, error) {
	if len(symbols) != len(positions) {
		return nil, errorf(StageArity, "geometry carries %d symbols but %d positions", len(symbols), len(positions))
	}
	table := NewSpeciesTable()
	atoms := make([]Atom, 0, len(symbols))
	for i, sym := range symbols {
		atoms = append(atoms, Atom{
			Index:     i + 1,
			SpeciesID: table.Add(sym),
			X:         positions[i][0],
			Y:         positions[i][1],
			Z:         positions[i][2],
		})
	}
	return &Structure{Species: table, Atoms: atoms}, nil
}

// Kind tells which input dialect a normalized geometry came from.
type Kind int

const (
	// GenFormat covers bare gen blocks and blocks wrapped in a full
	// Geometry = GenFormat { ... } stanza.
	GenFormat Kind = iota
	// POSCAR covers VASP5 POSCAR/CONTCAR files.
	POSCAR
)

func (k Kind) String() string {
	if k == POSCAR {
		return "poscar"
	}
	return "genformat"
}

// NormalizedGeometry is the result of normalizing one input text.
type NormalizedGeometry struct {
	// Kind is the dialect the input was classified as.
	Kind Kind
	// CanonicalText is the gen-format block in canonical form, with
	// no trailing newline, ready to embed in an HSD Geometry stanza.
	CanonicalText string
	// SpeciesOrder lists the distinct species, first appearance first.
	// Species ids in CanonicalText are 1-based positions in this list.
	SpeciesOrder []string
	// AtomSymbols gives the symbol of every atom in canonical order.
	AtomSymbols []string
}

// Elements returns the distinct chemical symbols of the geometry,
// sorted alphabetically.
func (g *NormalizedGeometry) Elements() []string {
	els := append([]string{}, g.SpeciesOrder...)
	sort.Strings(els)
	return els
}
