/*
 * doc.go, part of emperor.
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
Package geom normalizes user-supplied molecular geometry text into
canonical DFTB+ gen-format blocks.

Input arrives from chat clients and web forms, so it is rarely clean:
geometries come wrapped in Markdown code fences, surrounded by prose,
with atom lines out of order, or as VASP POSCAR files instead of
gen-format. The package strips the fences, classifies the dialect
(bare gen-format, a full Geometry = GenFormat { ... } stanza, or a
POSCAR file) and applies the validation each one deserves:

    POSCAR is positional, so it is validated strictly and rejected
    with a line-accurate message on the first violation. Symbol-less
    VASP4 files are refused rather than guessed at.

    Gen-format is self-describing enough to repair, so its parser is
    tolerant: junk around the block is skipped, atoms are re-sorted
    by index, repeated species are deduplicated. Ambiguity, such as a
    duplicated index or a dangling species id, is still an error.

Everything the package rejects surfaces as *Error carrying a message
written for the person who pasted the geometry, not for a log file.

Normalization is deterministic, and canonical output is a fixed
point: normalizing a canonical block returns it byte for byte.
*/
package geom
