/*
 * classify_test.go, part of emperor.
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
	"strings"
	"testing"
)

const poscarSample = `cubic diamond
1.0
3.57 0.0 0.0
0.0 3.57 0.0
0.0 0.0 3.57
C H
1 1
Direct
0.0 0.0 0.0
0.25 0.25 0.25`

func TestClassifyWrapped(Te *testing.T) {
	in := "Geometry = GenFormat {\n2 C\n  C H\n\n  1 1 0.0 0.0 0.0\n  2 2 0.0 0.0 1.0\n}"
	d, body, err := classify(in)
	if err != nil {
		Te.Fatal(err)
	}
	if d != wrappedGen {
		Te.Errorf("dialect: got %v, want wrappedGen", d)
	}
	if !strings.HasPrefix(body, "2 C") {
		Te.Errorf("inner block not extracted: %q", body)
	}
	if strings.Contains(body, "}") {
		Te.Errorf("closing brace leaked into body: %q", body)
	}
}

//The wrapper header match is case-insensitive and tolerates spacing,
//since users paste it back from DFTB+ docs in every imaginable shape.
func TestClassifyWrappedLoose(Te *testing.T) {
	in := "  geometry=GENFORMAT {  \n1 C\nC\n1 1 0 0 0\n  }  "
	d, body, err := classify(in)
	if err != nil {
		Te.Fatal(err)
	}
	if d != wrappedGen {
		Te.Errorf("dialect: got %v, want wrappedGen", d)
	}
	if !strings.HasPrefix(body, "1 C") {
		Te.Errorf("inner block not extracted: %q", body)
	}
}

func TestClassifyMissingBrace(Te *testing.T) {
	_, _, err := classify("Geometry = GenFormat {\n2 C\n  C H")
	if err == nil {
		Te.Fatal("expected an error for a wrapper without closing brace")
	}
	verr, ok := err.(*Error)
	if !ok {
		Te.Fatalf("expected *Error, got %T", err)
	}
	if verr.Stage != StageStructural {
		Te.Errorf("stage: got %v, want structural", verr.Stage)
	}
	if verr.Message != "GenFormat: missing closing '}'." {
		Te.Errorf("message: got %q", verr.Message)
	}
}

func TestClassifyPoscar(Te *testing.T) {
	d, body, err := classify(poscarSample)
	if err != nil {
		Te.Fatal(err)
	}
	if d != poscarLike {
		Te.Errorf("dialect: got %v, want poscarLike", d)
	}
	if body != poscarSample {
		Te.Error("poscar body should pass through unchanged")
	}
}

func TestClassifyBareGen(Te *testing.T) {
	small := "2 C\nC H\n1 1 0.0 0.0 0.0\n2 2 0.0 0.0 1.0"
	//A gen block long enough to pass the 8-line floor must still not
	//look like POSCAR: its counts-position line holds floats.
	big := "6 C\n  C H\n\n  1 1  0.0 0.0 0.0\n  2 2  1.0 0.0 0.0\n  3 2  0.0 1.0 0.0\n" +
		"  4 2  0.0 0.0 1.0\n  5 2  1.0 1.0 0.0\n  6 2  1.0 0.0 1.0"
	for _, in := range []string{small, big} {
		d, _, err := classify(in)
		if err != nil {
			Te.Fatal(err)
		}
		if d != bareGen {
			Te.Errorf("dialect: got %v, want bareGen for %q", d, in[:5])
		}
	}
}

//A VASP4 file carries counts where VASP5 carries symbols, so the
//heuristic does not recognize it as POSCAR at all; it falls through
//to the gen parser, whose header error is what the user sees.
func TestClassifyVASP4FallsThrough(Te *testing.T) {
	vasp4 := `comment
1.0
3.57 0.0 0.0
0.0 3.57 0.0
0.0 0.0 3.57
1 1
Direct
0.0 0.0 0.0
0.25 0.25 0.25`
	d, _, err := classify(vasp4)
	if err != nil {
		Te.Fatal(err)
	}
	if d != bareGen {
		Te.Errorf("dialect: got %v, want bareGen", d)
	}
}
