// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grp

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/ximlel/1D-LAG/riemann"
)

func Test_grp01_uniform_state_is_steady(tst *testing.T) {

	chk.PrintTitle("grp01_uniform_state_is_steady")

	// a uniform state with zero slopes everywhere must produce a zero time
	// derivative: there is nothing for the GRP correction to do.
	L := riemann.Side{Rho: 1.0, U: 0.3, P: 1.0, Gamma: 1.4, C: riemann.SoundSpeed(1.0, 1.0, 1.4)}
	R := L
	res, err := Solve(Edir, L, R, Slopes{}, 1e-10, 1e-8, 100)
	if err != nil {
		tst.Fatalf("Solve failed: %v", err)
	}
	chk.Scalar(tst, "RhoT", 1e-10, res.RhoT, 0.0)
	chk.Scalar(tst, "UT", 1e-10, res.UT, 0.0)
	chk.Scalar(tst, "PT", 1e-10, res.PT, 0.0)
}

func Test_grp02_sod_nonzero_derivative(tst *testing.T) {

	chk.PrintTitle("grp02_sod_nonzero_derivative")

	L := riemann.Side{Rho: 1.0, U: 0.0, P: 1.0, Gamma: 1.4, C: riemann.SoundSpeed(1.0, 1.0, 1.4)}
	R := riemann.Side{Rho: 0.125, U: 0.0, P: 0.1, Gamma: 1.4, C: riemann.SoundSpeed(0.125, 0.1, 1.4)}
	sl := Slopes{SRhoL: -0.1, SPL: -0.2, SRhoR: 0.05, SPR: 0.1}
	res, err := Solve(Edir, L, R, sl, 1e-10, 1e-8, 100)
	if err != nil {
		tst.Fatalf("Solve failed: %v", err)
	}
	if math.IsNaN(res.PT) || math.IsNaN(res.UT) || math.IsNaN(res.RhoT) {
		tst.Fatalf("non-finite derivative")
	}
	if res.P <= 0 || res.Rho <= 0 {
		tst.Fatalf("non-physical star state: rho=%g p=%g", res.Rho, res.P)
	}
}

func Test_grp03_tangential_source(tst *testing.T) {

	chk.PrintTitle("grp03_tangential_source")

	L := riemann.Side{Rho: 1.0, U: 0.0, P: 1.0, Gamma: 1.4, C: riemann.SoundSpeed(1.0, 1.0, 1.4)}
	R := L
	sl := Slopes{Transverse: Transverse{V: 1.0, SV: 0.5, SP: 0.2}}
	res, err := Solve(Q1D, L, R, sl, 1e-10, 1e-8, 100)
	if err != nil {
		tst.Fatalf("Solve failed: %v", err)
	}
	// the tangential source is the only contribution here (normal slopes
	// are zero), so UT/PT must equal minus the injected source exactly.
	chk.Scalar(tst, "UT from tangential source", 1e-10, res.UT, -0.5)
	chk.Scalar(tst, "PT from tangential source", 1e-10, res.PT, -0.2)
}
