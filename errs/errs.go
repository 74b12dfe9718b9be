// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package errs defines the error kinds shared by every stage of the
// finite-volume march and their mapping onto process exit codes.
package errs

import "fmt"

// Kind classifies an error by the component policy that must react to it.
type Kind int

// error kinds, see spec §7
const (
	Argument Kind = iota + 1
	IO
	Memory
	NonConvergentRiemann
	NonPhysicalStar
	NonPhysicalUpdate
	UnknownBoundary
)

func (k Kind) String() string {
	switch k {
	case Argument:
		return "Argument"
	case IO:
		return "IO"
	case Memory:
		return "Memory"
	case NonConvergentRiemann:
		return "NonConvergentRiemann"
	case NonPhysicalStar:
		return "NonPhysicalStar"
	case NonPhysicalUpdate:
		return "NonPhysicalUpdate"
	case UnknownBoundary:
		return "UnknownBoundary"
	}
	return "Unknown"
}

// ExitCode maps a Kind onto the process exit codes of spec §6.
func (k Kind) ExitCode() int {
	switch k {
	case Argument:
		return 4
	case IO:
		return 2
	case Memory:
		return 5
	case NonConvergentRiemann, NonPhysicalStar, NonPhysicalUpdate:
		return 3
	case UnknownBoundary:
		return 1
	}
	return 1
}

// Fatal reports whether this kind aborts the run immediately (Argument, IO,
// Memory, UnknownBoundary) as opposed to setting the march's sticky
// cancellation flag (NonConvergentRiemann, NonPhysicalStar, NonPhysicalUpdate).
func (k Kind) Fatal() bool {
	switch k {
	case NonConvergentRiemann, NonPhysicalStar, NonPhysicalUpdate:
		return false
	}
	return true
}

// Error is the error value carried by every failing component. Component
// names the offending stage (e.g. "riemann", "grp", "bc") and Coord names
// the coordinate or sweep axis active when the failure was detected, per
// spec §7's message-prefix policy.
type Error struct {
	Kind      Kind
	Component string
	Coord     string
	Step      int
	Cell      int
	Msg       string
}

func (e *Error) Error() string {
	loc := ""
	if e.Step > 0 || e.Cell != 0 {
		loc = fmt.Sprintf(" (step=%d, cell=%d)", e.Step, e.Cell)
	}
	return fmt.Sprintf("%s[%s/%s]: %s%s", e.Kind, e.Component, e.Coord, e.Msg, loc)
}

// New builds an Error with no step/cell context (setup-time failures).
func New(kind Kind, component, coord, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Component: component, Coord: coord, Msg: fmt.Sprintf(format, args...)}
}

// AtStep builds an Error tagged with the (step, cell) pair where a
// cancellation-class failure was detected.
func AtStep(kind Kind, component, coord string, step, cell int, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Component: component, Coord: coord, Step: step, Cell: cell, Msg: fmt.Sprintf(format, args...)}
}
