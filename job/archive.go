/*
 * archive.go, part of emperor.
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
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
)

// Archive streams the regular files of a job directory to w as a
// tar.gz. The parameters symlink and any subdirectories are skipped:
// the archive is the job's artifacts, not the parameter tables they
// reference.
func (st *Store) Archive(w io.Writer, id string) error {
	dir, err := st.Dir(id)
	if err != nil {
		return err
	}
	names, err := st.List(id)
	if err != nil {
		return err
	}
	gz := gzip.NewWriter(w)
	tw := tar.NewWriter(gz)
	for _, name := range names {
		path := filepath.Join(dir, name)
		info, err := os.Lstat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return fmt.Errorf("job %s: archive %s: %w", id, name, err)
		}
		hdr.Name = name
		if err := tw.WriteHeader(hdr); err != nil {
			return fmt.Errorf("job %s: archive %s: %w", id, name, err)
		}
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("job %s: archive %s: %w", id, name, err)
		}
		_, err = io.Copy(tw, f)
		f.Close()
		if err != nil {
			return fmt.Errorf("job %s: archive %s: %w", id, name, err)
		}
	}
	if err := tw.Close(); err != nil {
		return fmt.Errorf("job %s: archive: %w", id, err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("job %s: archive: %w", id, err)
	}
	return nil
}
