/*
 * store_test.go, part of emperor.
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

package job

import (
	"archive/tar"
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	base := t.TempDir()
	prefix := filepath.Join(base, "parameters")
	require.NoError(t, os.MkdirAll(filepath.Join(prefix, "mio-1-1"), 0o755))
	st, err := NewStore(filepath.Join(base, "jobs"), prefix)
	require.NoError(t, err)
	return st
}

func TestCreateAndArtifacts(t *testing.T) {
	st := newTestStore(t)
	id, err := st.Create()
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	assert.NoError(t, err, "job ids are uuids")

	require.NoError(t, st.WriteFile(id, "dftb_in.hsd", []byte("Geometry")))
	require.NoError(t, st.WriteFile(id, "out.log", []byte("done")))

	data, err := st.ReadFile(id, "dftb_in.hsd")
	require.NoError(t, err)
	assert.Equal(t, "Geometry", string(data))

	names, err := st.List(id)
	require.NoError(t, err)
	assert.Equal(t, []string{"dftb_in.hsd", "out.log"}, names)
}

func TestNotFound(t *testing.T) {
	st := newTestStore(t)
	id, err := st.Create()
	require.NoError(t, err)

	_, err = st.Dir("no-such-job")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = st.ReadFile(id, "missing.out")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPathTraversalRejected(t *testing.T) {
	st := newTestStore(t)
	id, err := st.Create()
	require.NoError(t, err)

	for _, bad := range []string{"../escape", "a/b", `a\b`, "..", "."} {
		_, err := st.Dir(bad)
		assert.ErrorIs(t, err, ErrNotFound, "id %q", bad)
		err = st.WriteFile(id, bad, []byte("x"))
		assert.ErrorIs(t, err, ErrNotFound, "name %q", bad)
	}
}

func TestEnsureParamLink(t *testing.T) {
	st := newTestStore(t)
	id, err := st.Create()
	require.NoError(t, err)

	require.NoError(t, st.EnsureParamLink(id))
	dir, err := st.Dir(id)
	require.NoError(t, err)
	target, err := os.Readlink(filepath.Join(dir, "parameters"))
	require.NoError(t, err)
	assert.DirExists(t, filepath.Join(target, "mio-1-1"))

	// idempotent, and recreated after removal
	require.NoError(t, st.EnsureParamLink(id))
	require.NoError(t, os.Remove(filepath.Join(dir, "parameters")))
	require.NoError(t, st.EnsureParamLink(id))
}

func TestArchive(t *testing.T) {
	st := newTestStore(t)
	id, err := st.Create()
	require.NoError(t, err)
	require.NoError(t, st.WriteFile(id, "detailed.out", []byte("Total Energy: -4.0 H")))
	require.NoError(t, st.WriteFile(id, "out.log", []byte("ok\n")))
	require.NoError(t, st.EnsureParamLink(id)) // symlink must be skipped

	var buf bytes.Buffer
	require.NoError(t, st.Archive(&buf, id))

	gz, err := gzip.NewReader(&buf)
	require.NoError(t, err)
	tr := tar.NewReader(gz)
	got := map[string]string{}
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		body, err := io.ReadAll(tr)
		require.NoError(t, err)
		got[hdr.Name] = string(body)
	}
	assert.Equal(t, map[string]string{
		"detailed.out": "Total Energy: -4.0 H",
		"out.log":      "ok\n",
	}, got)
}
