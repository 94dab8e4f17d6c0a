/*
 * dftb_test.go, part of emperor.
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
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	geom "emperor"
)

func TestSlakoBlockPairOrder(t *testing.T) {
	want := strings.Join([]string{
		`    O-O = "parameters/mio-1-1/O-O.skf"`,
		`    O-H = "parameters/mio-1-1/O-H.skf"`,
		`    H-O = "parameters/mio-1-1/H-O.skf"`,
		`    H-H = "parameters/mio-1-1/H-H.skf"`,
	}, "\n")
	got := SlakoBlock([]string{"O", "H"}, "mio-1-1")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("pair order follows species order (-want +got):\n%s", diff)
	}
}

func TestSlakoBlockSingleSpecies(t *testing.T) {
	assert.Equal(t, `    C-C = "parameters/3ob-3-1/C-C.skf"`, SlakoBlock([]string{"C"}, "3ob-3-1"))
}

func TestMaxAngularMomenta(t *testing.T) {
	cases := []struct {
		name     string
		symbols  []string
		paramSet string
		want     []MaxAngular
	}{
		{
			name:     "mio with unknown element falls back to p",
			symbols:  []string{"Xe", "H"},
			paramSet: "mio-1-1",
			want:     []MaxAngular{{"H", "s"}, {"Xe", "p"}},
		},
		{
			name:     "3ob gives sulfur d",
			symbols:  []string{"S", "C", "H", "C"},
			paramSet: "3ob-3-1",
			want:     []MaxAngular{{"C", "p"}, {"H", "s"}, {"S", "d"}},
		},
		{
			name:     "matsci knows iron",
			symbols:  []string{"Fe", "O"},
			paramSet: "matsci-0-3",
			want:     []MaxAngular{{"Fe", "d"}, {"O", "p"}},
		},
		{
			name:     "unrecognized set uses the safe default",
			symbols:  []string{"C", "H"},
			paramSet: "ob2-1-1",
			want:     []MaxAngular{{"C", "p"}, {"H", "s"}},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := MaxAngularMomenta(tc.symbols, tc.paramSet)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestRenderInput(t *testing.T) {
	g := &geom.NormalizedGeometry{
		Kind: geom.GenFormat,
		CanonicalText: "2 C\n  O H\n\n" +
			"  1 1   0.00000000000E+00  0.00000000000E+00  0.00000000000E+00\n" +
			"  2 2   1.00000000000E+00  0.00000000000E+00  0.00000000000E+00",
		SpeciesOrder: []string{"O", "H"},
		AtomSymbols:  []string{"O", "H"},
	}
	text, err := RenderInput(g, "mio-1-1")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(text, "Geometry = GenFormat {\n2 C\n"))
	assert.Contains(t, text, `O-H = "parameters/mio-1-1/O-H.skf"`)
	assert.Contains(t, text, `H = "s"`)
	assert.Contains(t, text, `O = "p"`)
	assert.Contains(t, text, "Driver = GeometryOptimization {")
	assert.Contains(t, text, "ParserVersion = 12")
}

func TestEnsureParamSet(t *testing.T) {
	prefix := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(prefix, "mio-1-1"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(prefix, "3ob-3-1"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(prefix, "README"), []byte("x"), 0o644))

	assert.Equal(t, []string{"3ob-3-1", "mio-1-1"}, AvailableParamSets(prefix))
	assert.NoError(t, EnsureParamSet(prefix, "mio-1-1"))

	err := EnsureParamSet(prefix, "ob2-1-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Available: 3ob-3-1,mio-1-1")

	assert.Error(t, EnsureParamSet(prefix, "../escape"))
	assert.Empty(t, AvailableParamSets(filepath.Join(prefix, "missing")))
}

func TestTotalEnergy(t *testing.T) {
	dir := t.TempDir()
	_, ok := TotalEnergy(dir)
	assert.False(t, ok, "no detailed.out yet")

	out := "Fermi level: 0.1 H 2.7 eV\n" +
		"Total energy of electrons\n" +
		"Total Energy:      -4.0786324033 H         -110.9852 eV\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, DetailedFile), []byte(out), 0o644))

	e, ok := TotalEnergy(dir)
	require.True(t, ok)
	assert.Equal(t, "-4.0786324033", e)
}

func TestRunnerFakeSolver(t *testing.T) {
	bin := filepath.Join(t.TempDir(), "fake-dftb")
	script := "#!/bin/sh\necho calculating\necho done > detailed.out\n"
	require.NoError(t, os.WriteFile(bin, []byte(script), 0o755))

	dir := t.TempDir()
	r := NewRunner(bin, 0, 0, nil)
	res, err := r.Run(context.Background(), dir)
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.Equal(t, 0, res.ExitCode)

	log, err := os.ReadFile(filepath.Join(dir, OutputFile))
	require.NoError(t, err)
	assert.Equal(t, "calculating\n", string(log))
	assert.FileExists(t, filepath.Join(dir, DetailedFile))
}

func TestRunnerFailedSolver(t *testing.T) {
	bin := filepath.Join(t.TempDir(), "fake-dftb")
	script := "#!/bin/sh\necho 'ERROR!' >&2\nexit 3\n"
	require.NoError(t, os.WriteFile(bin, []byte(script), 0o755))

	r := NewRunner(bin, 0, 1, nil)
	res, err := r.Run(context.Background(), t.TempDir())
	require.NoError(t, err, "a solver failure is a result, not a runner error")
	assert.False(t, res.OK)
	assert.Equal(t, 3, res.ExitCode)
}
