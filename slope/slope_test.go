// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slope

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_minmod01(tst *testing.T) {

	chk.PrintTitle("minmod01")

	chk.Scalar(tst, "Minmod2(a,a)", 1e-15, Minmod2(2.0, 2.0), 2.0)
	chk.Scalar(tst, "Minmod2(a,-a)", 1e-15, Minmod2(2.0, -2.0), 0.0)
	chk.Scalar(tst, "Minmod2(-a,-a)", 1e-15, Minmod2(-2.0, -2.0), -2.0)
	chk.Scalar(tst, "Minmod2 picks smaller magnitude", 1e-15, Minmod2(3.0, 1.0), 1.0)

	chk.Scalar(tst, "Minmod3(a,a,a)", 1e-15, Minmod3(2.0, 2.0, 2.0), 2.0)
	chk.Scalar(tst, "Minmod3 mixed sign is zero", 1e-15, Minmod3(2.0, -2.0, 2.0), 0.0)
	chk.Scalar(tst, "Minmod3(-a,-a,-a) picks max (least negative-magnitude)", 1e-15, Minmod3(-1.0, -3.0, -2.0), -1.0)
}

func Test_reconstruct01_first_step(tst *testing.T) {

	chk.PrintTitle("reconstruct01_first_step")

	f := Field{
		V:      []float64{1.0, 2.0, 4.0},
		GhostL: 1.0, GhostR: 4.0,
		DxL: 1.0, Dx: []float64{1.0, 1.0, 1.0}, DxR: 1.0,
	}
	out := Reconstruct(f, nil, 1.0, true)
	if len(out) != 3 {
		tst.Fatalf("expected 3 slopes, got %d", len(out))
	}
	// cell 0: left diff = 0 (ghost equals cell value), so minmod2 is 0
	chk.Scalar(tst, "slope[0]", 1e-12, out[0], 0.0)
}

func Test_reconstruct02_later_step_uses_prev(tst *testing.T) {

	chk.PrintTitle("reconstruct02_later_step_uses_prev")

	f := Field{
		V:      []float64{1.0, 2.0, 3.0},
		GhostL: 0.0, GhostR: 4.0,
		DxL: 1.0, Dx: []float64{1.0, 1.0, 1.0}, DxR: 1.0,
	}
	prev := []float64{1.0, 1.0, 1.0}
	out := Reconstruct(f, prev, 1.0, false)
	// every cell is linear with slope 1 both upstream/downstream/previous,
	// so minmod3(1,1,1) = 1 everywhere
	for j, s := range out {
		chk.Scalar(tst, "slope", 1e-12, s, 1.0)
		_ = j
	}
}
