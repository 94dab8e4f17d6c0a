/*
 * canonical.go, part of emperor.
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
	"fmt"
	"strings"
)

// Canonical renders a structure as a canonical gen-format block:
// header "<N> C", species line indented by two spaces, one blank
// separator line, then one line per atom with coordinates in
// 11-digit scientific notation. The output always declares Cartesian
// coordinates and carries no trailing newline, ready to embed in an
// HSD Geometry stanza. Rendering the same structure twice gives
// identical bytes, and parsing a canonical block back yields the same
// structure, so normalization is idempotent.
func Canonical(s *Structure) string {
	lines := make([]string, 0, len(s.Atoms)+3)
	lines = append(lines, fmt.Sprintf("%d C", len(s.Atoms)))
	lines = append(lines, "  "+strings.Join(s.Species.Symbols(), " "))
	lines = append(lines, "")
	for _, a := range s.Atoms {
		lines = append(lines, fmt.Sprintf("  %d %d  % .11E % .11E % .11E", a.Index, a.SpeciesID, a.X, a.Y, a.Z))
	}
	return strings.Join(lines, "\n")
}
