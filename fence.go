/*
 * fence.go, part of emperor.
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
)

// StripFences removes the Markdown code fences that chat clients like
// to wrap geometry in. A leading fence line (with optional language
// tag) is dropped when the text starts with one, a trailing fence is
// dropped when ``` sits alone on the last line, and the result is
// trimmed of surrounding whitespace. Text without fences is only
// trimmed. The two fences are independent: either may appear alone.
func StripFences(text string) string {
	s := text
	if strings.HasPrefix(s, "```") {
		if i := strings.IndexByte(s, '\n'); i >= 0 {
			s = s[i+1:]
		}
	}
	if t := strings.TrimSuffix(s, "\n"); strings.HasSuffix(t, "\n```") {
		s = t[:len(t)-len("\n```")]
	}
	return strings.TrimSpace(s)
}
