/*
 * results.go, part of emperor.
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
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// TotalEnergy pulls the total energy, in Hartree, out of a job's
// detailed.out. The value comes back as DFTB+ printed it, with no
// reformatting. The second return is false when the file or the
// energy line is missing, which is normal for unfinished or failed
// runs and not an error.
func TotalEnergy(dir string) (string, bool) {
	f, err := os.Open(filepath.Join(dir, DetailedFile))
	if err != nil {
		return "", false
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if !strings.Contains(sc.Text(), "Total Energy:") {
			continue
		}
		// the line reads "Total Energy: <value> H <value> eV";
		// the Hartree figure is the second-to-last token
		fields := strings.Fields(strings.TrimSpace(sc.Text()))
		if len(fields) < 2 {
			return "", false
		}
		return fields[len(fields)-2], true
	}
	return "", false
}
