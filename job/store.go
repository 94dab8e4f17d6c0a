/*
 * store.go, part of emperor.
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

// Package job manages per-calculation working directories. Every
// prepared geometry gets a fresh uuid-named directory under the data
// root, holding the rendered control file, the input artifacts and,
// after a run, the solver outputs. A job directory also carries a
// "parameters" symlink into the Slater-Koster prefix so the relative
// paths inside dftb_in.hsd resolve.
package job

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// ErrNotFound reports a job id or artifact name that does not exist.
// Transports map it to 404.
var ErrNotFound = errors.New("not found")

// TextExtensions are the artifact suffixes served inline as plain
// text; anything else is treated as a binary download.
var TextExtensions = map[string]bool{
	".log": true, ".out": true, ".txt": true, ".hsd": true,
}

// Store allocates and resolves job directories under a fixed root.
type Store struct {
	root        string
	paramPrefix string
}

// NewStore returns a store rooted at root, creating it if needed.
// paramPrefix is the directory the per-job "parameters" symlink
// points to.
func NewStore(root, paramPrefix string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("job: create root: %w", err)
	}
	abs, err := filepath.Abs(paramPrefix)
	if err != nil {
		return nil, fmt.Errorf("job: resolve parameter prefix: %w", err)
	}
	return &Store{root: root, paramPrefix: abs}, nil
}

// Create allocates a new job directory and returns its id.
func (st *Store) Create() (string, error) {
	id := uuid.NewString()
	if err := os.MkdirAll(filepath.Join(st.root, id), 0o755); err != nil {
		return "", fmt.Errorf("job: create %s: %w", id, err)
	}
	return id, nil
}

// Dir resolves a job id to its directory. Ids with path separators or
// dot components are rejected as ErrNotFound without touching the
// filesystem, so a crafted id cannot escape the root.
func (st *Store) Dir(id string) (string, error) {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return "", fmt.Errorf("job %q: %w", id, ErrNotFound)
	}
	dir := filepath.Join(st.root, id)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("job %q: %w", id, ErrNotFound)
	}
	return dir, nil
}

// WriteFile stores an artifact inside the job directory.
func (st *Store) WriteFile(id, name string, data []byte) error {
	path, err := st.artifactPath(id, name)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("job %s: write %s: %w", id, name, err)
	}
	return nil
}

// ReadFile retrieves an artifact from the job directory.
func (st *Store) ReadFile(id, name string) ([]byte, error) {
	path, err := st.artifactPath(id, name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("job %s: read %s: %w", id, name, err)
	}
	return data, nil
}

// List returns the artifact names in a job directory, sorted.
func (st *Store) List(id string) ([]string, error) {
	dir, err := st.Dir(id)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("job %s: list: %w", id, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// EnsureParamLink makes sure the job's "parameters" symlink exists,
// recreating it if a previous run removed it. Jobs prepared before a
// prefix change keep working because the link is refreshed lazily.
func (st *Store) EnsureParamLink(id string) error {
	dir, err := st.Dir(id)
	if err != nil {
		return err
	}
	link := filepath.Join(dir, "parameters")
	if _, err := os.Lstat(link); err == nil {
		return nil
	}
	if err := os.Symlink(st.paramPrefix, link); err != nil {
		return fmt.Errorf("job %s: parameters link: %w", id, err)
	}
	return nil
}

func (st *Store) artifactPath(id, name string) (string, error) {
	dir, err := st.Dir(id)
	if err != nil {
		return "", err
	}
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("file %q: %w", name, ErrNotFound)
	}
	return filepath.Join(dir, name), nil
}
