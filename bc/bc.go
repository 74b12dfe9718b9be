// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package bc materializes ghost cell primitive values and ghost slopes from
// a boundary-type tag, see spec §4.4.
package bc

import "github.com/ximlel/1D-LAG/errs"

// Tag is the boundary-condition type, encoded as in spec §6.
type Tag int

const (
	Initial        Tag = -1
	Reflective     Tag = -2
	Free           Tag = -4
	Periodic       Tag = -5
	ReflectiveFree Tag = -24
)

// Parse validates an encoded boundary tag, failing with UnknownBoundary on
// an unrecognized value, per spec §4.4.
func Parse(code int) (Tag, error) {
	switch Tag(code) {
	case Initial, Reflective, Free, Periodic, ReflectiveFree:
		return Tag(code), nil
	}
	return 0, errs.New(errs.UnknownBoundary, "bc", "x", "unrecognized boundary tag %d", code)
}

// Side names which edge of the grid the ghost is being built for; it only
// matters for the ReflectiveFree combination tag.
type Side int

const (
	Left Side = iota
	Right
)

// Edge is an edge-adjacent primitive value paired with its cell slope, the
// pair-of-records ghost representation of spec §9.
type Edge struct {
	Value float64
	Slope float64
}

// Apply materializes the ghost Edge for one variable at one grid edge.
// edge is the boundary-adjacent real cell's value/slope; initial is that
// same cell's value at t=0 (frozen for the Initial tag); opposite is the
// value/slope at the far edge of the grid (used by Periodic). isNormalVel
// selects whether this variable is the velocity component normal to the
// boundary, which negates under Reflective per spec §4.4.
func Apply(tag Tag, side Side, isNormalVel bool, edge, initial, opposite Edge) (ghost Edge, err error) {
	effective := tag
	if tag == ReflectiveFree {
		if side == Left {
			effective = Reflective
		} else {
			effective = Free
		}
	}
	switch effective {
	case Initial:
		ghost = Edge{Value: initial.Value, Slope: 0}
	case Reflective:
		if isNormalVel {
			ghost = Edge{Value: -edge.Value, Slope: -edge.Slope}
		} else {
			ghost = edge
		}
	case Free:
		ghost = edge
	case Periodic:
		ghost = opposite
	default:
		return ghost, errs.New(errs.UnknownBoundary, "bc", "x", "unrecognized boundary tag %d", tag)
	}
	return ghost, nil
}
