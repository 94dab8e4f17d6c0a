/*
 * input.go, part of emperor.
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
Package dftb builds input for, runs, and recovers results from the
DFTB+ semi-empirical quantum chemistry program, which must be
obtained separately. It renders dftb_in.hsd control files for
geometry optimizations from a normalized geometry, derives the
Slater-Koster file list and per-element angular momenta a run needs,
executes the solver inside a job directory with a timeout and a
concurrency cap, and pulls the total energy out of detailed.out.
*/
package dftb

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	geom "emperor"
)

// InputFile is the control-file name DFTB+ expects in its working
// directory.
const InputFile = "dftb_in.hsd"

// hsdText drives a rational-function geometry optimization with SCC
// and force analysis. Geometry, Slater-Koster references and angular
// momenta are filled per job; everything else is fixed policy.
const hsdText = `Geometry = GenFormat {
{{.GenBlock}}
}

Driver = GeometryOptimization {
  Optimizer = Rational {}
  MovedAtoms = 1:-1
  MaxSteps = 100
  OutputPrefix = "geom.out"
  Convergence {GradElem = 1E-4}
}

Hamiltonian = DFTB {
  Scc = Yes
  SlaterKosterFiles {
{{.Slakos}}
  }
  MaxAngularMomentum {
{{range .MaxAngular}}{{.Element}} = "{{.Momentum}}"
{{end}}}
}

Options {}

Analysis {
  CalculateForces = Yes
}

ParserOptions {
  ParserVersion = 12
}`

var hsdTmpl = template.Must(template.New(InputFile).Parse(hsdText))

// RenderInput produces the complete dftb_in.hsd text for optimizing
// the given geometry with the given parameter set. The Slater-Koster
// paths reference "parameters/<set>/", the symlink Runner jobs carry.
func RenderInput(g *geom.NormalizedGeometry, paramSet string) (string, error) {
	data := struct {
		GenBlock   string
		Slakos     string
		MaxAngular []MaxAngular
	}{
		GenBlock:   g.CanonicalText,
		Slakos:     SlakoBlock(g.SpeciesOrder, paramSet),
		MaxAngular: MaxAngularMomenta(g.AtomSymbols, paramSet),
	}
	var b strings.Builder
	if err := hsdTmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("dftb: render input: %w", err)
	}
	return b.String(), nil
}

// WriteInput renders the control file into dir as dftb_in.hsd.
func WriteInput(dir string, g *geom.NormalizedGeometry, paramSet string) error {
	text, err := RenderInput(g, paramSet)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, InputFile), []byte(text), 0o644); err != nil {
		return fmt.Errorf("dftb: write input: %w", err)
	}
	return nil
}
