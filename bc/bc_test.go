// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bc

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_bc01_parse(tst *testing.T) {

	chk.PrintTitle("bc01_parse")

	for _, code := range []int{-1, -2, -4, -5, -24} {
		if _, err := Parse(code); err != nil {
			tst.Fatalf("Parse(%d) failed: %v", code, err)
		}
	}
	if _, err := Parse(-3); err == nil {
		tst.Fatalf("expected Parse(-3) to fail")
	}
}

func Test_bc02_reflective(tst *testing.T) {

	chk.PrintTitle("bc02_reflective")

	edge := Edge{Value: 2.0, Slope: 0.5}
	init := Edge{Value: 1.0}

	ghost, err := Apply(Reflective, Left, true, edge, init, Edge{})
	if err != nil {
		tst.Fatalf("Apply failed: %v", err)
	}
	chk.Scalar(tst, "normal-vel ghost value negates", 1e-15, ghost.Value, -2.0)
	chk.Scalar(tst, "normal-vel ghost slope negates", 1e-15, ghost.Slope, -0.5)

	ghost, err = Apply(Reflective, Left, false, edge, init, Edge{})
	if err != nil {
		tst.Fatalf("Apply failed: %v", err)
	}
	chk.Scalar(tst, "tangential ghost value unchanged", 1e-15, ghost.Value, 2.0)
}

func Test_bc03_periodic(tst *testing.T) {

	chk.PrintTitle("bc03_periodic")

	edge := Edge{Value: 2.0}
	opposite := Edge{Value: 5.0, Slope: 0.1}
	ghost, err := Apply(Periodic, Left, false, edge, Edge{}, opposite)
	if err != nil {
		tst.Fatalf("Apply failed: %v", err)
	}
	chk.Scalar(tst, "periodic ghost equals opposite edge", 1e-15, ghost.Value, 5.0)
}

func Test_bc04_initial(tst *testing.T) {

	chk.PrintTitle("bc04_initial")

	edge := Edge{Value: 2.0, Slope: 9.0}
	init := Edge{Value: 7.0}
	ghost, err := Apply(Initial, Right, false, edge, init, Edge{})
	if err != nil {
		tst.Fatalf("Apply failed: %v", err)
	}
	chk.Scalar(tst, "initial ghost freezes t=0 value", 1e-15, ghost.Value, 7.0)
	chk.Scalar(tst, "initial ghost slope is zero", 1e-15, ghost.Slope, 0.0)
}

func Test_bc05_reflective_free(tst *testing.T) {

	chk.PrintTitle("bc05_reflective_free")

	edge := Edge{Value: 3.0, Slope: 1.0}
	init := Edge{Value: 0.0}

	left, err := Apply(ReflectiveFree, Left, true, edge, init, Edge{})
	if err != nil {
		tst.Fatalf("Apply failed: %v", err)
	}
	chk.Scalar(tst, "left side acts Reflective", 1e-15, left.Value, -3.0)

	right, err := Apply(ReflectiveFree, Right, true, edge, init, Edge{})
	if err != nil {
		tst.Fatalf("Apply failed: %v", err)
	}
	chk.Scalar(tst, "right side acts Free", 1e-15, right.Value, 3.0)
}
