/*
 * maxang.go, part of emperor.
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
	"sort"
	"strings"
)

// Highest angular momentum parametrized per element, by Slater-Koster
// family. 3ob carries d functions for the heavier main-group
// elements, mio stops at p, matsci adds the common transition metals.
var maxAngular3ob = map[string]string{
	"H": "s",
	"C": "p", "N": "p", "O": "p", "F": "p",
	"P": "d", "S": "d", "Cl": "d", "Si": "d",
}

var maxAngularMio = map[string]string{
	"H": "s",
	"C": "p", "N": "p", "O": "p", "F": "p",
	"P": "p", "S": "p", "Cl": "p", "Si": "p",
	"B": "p", "Al": "p", "Na": "p", "Mg": "p",
}

var maxAngularMatsci = map[string]string{
	"H": "s",
	"C": "p", "N": "p", "O": "p", "F": "p",
	"Fe": "d", "Co": "d", "Ni": "d", "Cu": "d", "Zn": "d",
	"Ti": "d", "V": "d", "Cr": "d", "Mn": "d",
	"Mo": "d", "W": "d", "Pd": "d", "Pt": "d",
}

var maxAngularDefault = map[string]string{
	"H": "s",
}

// MaxAngular is one element's entry for the MaxAngularMomentum block
// of an HSD input.
type MaxAngular struct {
	Element  string
	Momentum string
}

// MaxAngularMomenta assigns every distinct element among symbols its
// maximum angular momentum under the named parameter set. The lookup
// table is picked by family prefix (3ob*, mio*, matsci*, anything
// else gets the minimal default), and elements the table does not
// know fall back to "p", so there is no error path. Entries come
// back sorted by element symbol, giving deterministic rendering.
func MaxAngularMomenta(symbols []string, paramSet string) []MaxAngular {
	table := maxAngularDefault
	switch {
	case strings.HasPrefix(paramSet, "3ob"):
		table = maxAngular3ob
	case strings.HasPrefix(paramSet, "mio"):
		table = maxAngularMio
	case strings.HasPrefix(paramSet, "matsci"):
		table = maxAngularMatsci
	}
	seen := make(map[string]bool, len(symbols))
	els := make([]string, 0, len(symbols))
	for _, s := range symbols {
		if !seen[s] {
			seen[s] = true
			els = append(els, s)
		}
	}
	sort.Strings(els)
	out := make([]MaxAngular, 0, len(els))
	for _, el := range els {
		l, ok := table[el]
		if !ok {
			l = "p"
		}
		out = append(out, MaxAngular{Element: el, Momentum: l})
	}
	return out
}
