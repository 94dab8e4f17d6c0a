/*
 * errors.go, part of emperor.
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
	"fmt"
)

// Stage identifies the kind of violation that made an input
// unacceptable. It lets callers react to a class of failure without
// parsing message text.
type Stage int

const (
	// StageStructural marks failures of overall shape: too few lines,
	// no recognizable header, a wrapper without its closing brace.
	StageStructural Stage = iota
	// StageLexical marks tokens that fail numeric conversion where a
	// number is required.
	StageLexical
	// StageArity marks mismatches between declared and found counts.
	StageArity
	// StageReferential marks indices or ids that point outside the
	// set the input itself declared.
	StageReferential
	// StageDialect marks inputs recognized as a dialect the service
	// refuses to repair, such as symbol-less VASP4.
	StageDialect
)

func (s Stage) String() string {
	switch s {
	case StageStructural:
		return "structural"
	case StageLexical:
		return "lexical"
	case StageArity:
		return "arity"
	case StageReferential:
		return "referential"
	case StageDialect:
		return "dialect"
	}
	return "unknown"
}

// Error is a validation failure in user-supplied geometry text. The
// message names the offending line or value and is written for the
// end user, so transports can return it verbatim.
type Error struct {
	Stage   Stage
	Message string
}

func (err *Error) Error() string {
	return err.Message
}

func errorf(stage Stage, format string, a ...interface{}) *Error {
	return &Error{Stage: stage, Message: fmt.Sprintf(format, a...)}
}
