/*
 * classify.go, part of emperor.
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
	"regexp"
	"strconv"
	"strings"
)

type dialect int

const (
	bareGen dialect = iota
	wrappedGen
	poscarLike
)

var genWrapperRe = regexp.MustCompile(`(?i)^\s*Geometry\s*=\s*GenFormat\s*\{\s*$`)

// classify decides which grammar the (already fence-stripped) text
// should be parsed with, in order: a wrapped Geometry = GenFormat
// stanza, a POSCAR-looking file, and bare gen-format as the fallback.
// For wrapped input the returned body is the text between the braces;
// otherwise it is the input itself.
func classify(text string) (dialect, string, error) {
	text = strings.TrimSpace(text)
	lines := strings.Split(text, "\n")
	if genWrapperRe.MatchString(lines[0]) {
		for i := 1; i < len(lines); i++ {
			if strings.TrimSpace(lines[i]) == "}" {
				inner := strings.TrimSpace(strings.Join(lines[1:i], "\n"))
				return wrappedGen, inner, nil
			}
		}
		return wrappedGen, "", errorf(StageStructural, "GenFormat: missing closing '}'.")
	}
	if looksLikePoscar(lines) {
		return poscarLike, text, nil
	}
	return bareGen, text, nil
}

// looksLikePoscar is a cheap shape test, not a validation: three
// numeric lattice rows where POSCAR keeps them, a symbols line that is
// not all digits, and a counts line that is. Candidates that pass go
// on to the strict validator; everything else is treated as
// gen-format, whose parser produces the better error message for
// free-form junk.
func looksLikePoscar(rawLines []string) bool {
	lines := nonBlank(rawLines)
	if len(lines) < 8 {
		return false
	}
	for _, ln := range lines[2:5] {
		f := strings.Fields(ln)
		if len(f) < 3 || !allFloats(f[:3]) {
			return false
		}
	}
	syms := strings.Fields(lines[5])
	if len(syms) == 0 || allDigits(syms) {
		return false
	}
	counts := strings.Fields(lines[6])
	return len(counts) > 0 && allDigits(counts)
}

// nonBlank trims every line and drops the empty ones.
func nonBlank(rawLines []string) []string {
	out := make([]string, 0, len(rawLines))
	for _, ln := range rawLines {
		if t := strings.TrimSpace(ln); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func nonBlankLines(text string) []string {
	return nonBlank(strings.Split(text, "\n"))
}

func isFloat(tok string) bool {
	_, err := strconv.ParseFloat(tok, 64)
	return err == nil
}

func allFloats(toks []string) bool {
	for _, t := range toks {
		if !isFloat(t) {
			return false
		}
	}
	return true
}

// allDigits reports whether every token is a bare run of decimal
// digits. A sign or a decimal point disqualifies the token, which is
// what tells an atom count from a coordinate.
func allDigits(toks []string) bool {
	for _, t := range toks {
		if t == "" {
			return false
		}
		for _, r := range t {
			if r < '0' || r > '9' {
				return false
			}
		}
	}
	return true
}

// allInts reports whether every token parses as a possibly signed
// integer.
func allInts(toks []string) bool {
	for _, t := range toks {
		if _, err := strconv.Atoi(t); err != nil {
			return false
		}
	}
	return true
}
