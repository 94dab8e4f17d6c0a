/*
 * slako.go, part of emperor.
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
	"strings"
)

// SlakoBlock renders the body of an HSD SlaterKosterFiles block for
// the given species order: one line per ordered pair (a, b) in
// species x species, outer loop over a, e.g. for ["O", "H"]:
//
//	    O-O = "parameters/mio-1-1/O-O.skf"
//	    O-H = "parameters/mio-1-1/O-H.skf"
//	    H-O = "parameters/mio-1-1/H-O.skf"
//	    H-H = "parameters/mio-1-1/H-H.skf"
//
// Pair order follows the species order, not the alphabet, because
// DFTB+ resolves species ids by position. No trailing newline.
func SlakoBlock(species []string, paramSet string) string {
	base := "parameters/" + paramSet
	lines := make([]string, 0, len(species)*len(species))
	for _, a := range species {
		for _, b := range species {
			lines = append(lines, fmt.Sprintf("    %s-%s = \"%s/%s-%s.skf\"", a, b, base, a, b))
		}
	}
	return strings.Join(lines, "\n")
}
