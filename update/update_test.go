// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package update

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/ximlel/1D-LAG/flux"
)

func Test_update01_equal_fluxes_is_steady(tst *testing.T) {

	chk.PrintTitle("update01_equal_fluxes_is_steady")

	old := Cell{Rho: 1.0, U: 0.0, P: 1.0, Gamma: 1.4}
	f := flux.Vector{F1: 0.3, F2: 1.5, F3: 0.9}
	next, err := Advance(old, f, f, 0.01, 0.1, Geometry{M: 1}, 1e-12, 1, 0)
	if err != nil {
		tst.Fatalf("Advance failed: %v", err)
	}
	chk.Scalar(tst, "rho unchanged", 1e-12, next.Rho, old.Rho)
	chk.Scalar(tst, "u unchanged", 1e-9, next.U, old.U)
	chk.Scalar(tst, "p unchanged", 1e-9, next.P, old.P)
}

func Test_update02_conservative_roundtrip(tst *testing.T) {

	chk.PrintTitle("update02_conservative_roundtrip")

	c := Cell{Rho: 1.2, U: 0.4, P: 0.9, Gamma: 1.4}
	cons := ToConservative(c)
	back := ToPrimitive(cons, c.Gamma)
	chk.Scalar(tst, "rho roundtrip", 1e-12, back.Rho, c.Rho)
	chk.Scalar(tst, "u roundtrip", 1e-12, back.U, c.U)
	chk.Scalar(tst, "p roundtrip", 1e-10, back.P, c.P)
}

func Test_update03_mixgamma_limits(tst *testing.T) {

	chk.PrintTitle("update03_mixgamma_limits")

	chk.Scalar(tst, "za=1 returns gammaA", 1e-15, MixGamma(1.4, 1.6, 1.0), 1.4)
	chk.Scalar(tst, "za=0 returns gammaB", 1e-15, MixGamma(1.4, 1.6, 0.0), 1.6)
	mid := MixGamma(1.4, 1.6, 0.5)
	if mid <= 1.4 || mid >= 1.6 {
		tst.Fatalf("expected mixed gamma strictly between phases, got %g", mid)
	}
}

func Test_update04_rejects_nonphysical(tst *testing.T) {

	chk.PrintTitle("update04_rejects_nonphysical")

	old := Cell{Rho: 0.01, U: 0.0, P: 0.01, Gamma: 1.4}
	// a huge outflux drains the cell below the positivity floor
	big := flux.Vector{F1: 100.0, F2: 100.0, F3: 100.0}
	_, err := Advance(old, flux.Vector{}, big, 1.0, 0.1, Geometry{M: 1}, 1e-6, 5, 2)
	if err == nil {
		tst.Fatalf("expected NonPhysicalUpdate error")
	}
}
