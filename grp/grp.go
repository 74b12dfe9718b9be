// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package grp implements the Generalized Riemann Problem solver: given
// left/right states with spatial slopes it returns the star-state and its
// time derivative along the interface trajectory, see spec §4.2. It
// dispatches among the Edir/LAG/Q1D/G2D variants by a Variant tag rather
// than separate functions per combination.
package grp

import (
	"math"

	"github.com/ximlel/1D-LAG/errs"
	"github.com/ximlel/1D-LAG/riemann"
)

// Variant selects the GRP closure, per spec §4.2.
type Variant int

const (
	Edir Variant = iota // Eulerian direct
	LAG                 // Lagrangian
	Q1D                 // quasi-1D (adds tangential source)
	G2D                 // genuinely 2D (adds tangential source)
)

// Slopes carries the left/right spatial slopes feeding the linear
// reconstruction, see spec §4.2. Transverse carries the tangential slopes
// injected by the Q1D/G2D variants (ignored under Edir/LAG; the controller
// zeroes it when the "Transversa" flux-builder option is off, see spec §4.5).
type Slopes struct {
	SRhoL, SUL, SPL float64
	SRhoR, SUR, SPR float64
	Transverse      Transverse
}

// Transverse holds the tangential-direction slopes and velocity that the
// Q1D/G2D variants fold into the interface-normal time derivatives.
type Transverse struct {
	V  float64 // tangential velocity at the interface
	SV float64 // tangential slope of the tangential velocity
	SP float64 // tangential slope of pressure
}

// Result is the GRP star-state plus its time derivative, per spec §4.2.
type Result struct {
	Rho, U, P          float64
	RhoT, UT, PT       float64
	Sonic              bool
	Star               riemann.Star
}

// Solve resolves the GRP at one interface. L, R are the constant states at
// the interface with their sound speeds already computed; sl holds the
// spatial slopes; eps is the zero threshold.
func Solve(variant Variant, L, R riemann.Side, sl Slopes, eps, tau float64, nit int) (res Result, err error) {
	star, err := riemann.Solve(L, R, eps, tau, nit)
	if err != nil {
		return res, err
	}
	if star.P <= eps || math.IsNaN(star.P) || math.IsInf(star.P, 0) {
		return res, errs.New(errs.NonPhysicalStar, "grp", "x", "non-physical star pressure p*=%g", star.P)
	}
	res.Star = star
	res.P = star.P
	res.U = star.U

	var rhoStarL, rhoStarR float64
	if star.Vacuum {
		rhoStarL = L.Rho * math.Pow(star.P/L.P, 1.0/L.Gamma)
		rhoStarR = R.Rho * math.Pow(star.P/R.P, 1.0/R.Gamma)
	} else {
		rhoStarL = riemann.SideStarDensity(L, star.P, star.LeftWave)
		rhoStarR = riemann.SideStarDensity(R, star.P, star.RightWave)
	}

	cStarL := math.Sqrt(L.Gamma * star.P / rhoStarL)
	cStarR := math.Sqrt(R.Gamma * star.P / rhoStarR)
	zL := rhoStarL * cStarL
	zR := rhoStarR * cStarR
	if zL <= eps || zR <= eps || math.IsNaN(zL) || math.IsNaN(zR) {
		return res, errs.New(errs.NonPhysicalStar, "grp", "x", "non-physical acoustic impedance")
	}

	lambdaL := star.U - cStarL
	lambdaR := star.U + cStarR

	// side L: characteristic (rarefaction) vs shock-jump (shock) ODE,
	// cast as coefU*du*/dt + coefP*dp*/dt = rhs, see spec §4.2 step 3.
	var coefUL, coefPL, rhsL float64
	if star.LeftWave == riemann.Rarefaction {
		coefUL, coefPL = 1.0, -1.0/zL
		rhsL = -lambdaL * (sl.SUL - sl.SPL/zL)
	} else {
		coefUL, coefPL = zL, -1.0
		rhsL = lambdaL * (sl.SPL - zL*sl.SUL)
	}

	// side R
	var coefUR, coefPR, rhsR float64
	if star.RightWave == riemann.Rarefaction {
		coefUR, coefPR = 1.0, 1.0/zR
		rhsR = -lambdaR * (sl.SUR + sl.SPR/zR)
	} else {
		coefUR, coefPR = zR, 1.0
		rhsR = -lambdaR * (sl.SPR + zR*sl.SUR)
	}

	det := coefUL*coefPR - coefUR*coefPL
	if math.Abs(lambdaL) < eps || math.Abs(lambdaR) < eps || math.Abs(det) < eps {
		// sonic case: a characteristic speed crosses zero, evaluate the
		// star-state time derivative as locally steady inside the fan.
		res.Sonic = true
		res.UT, res.PT = 0, 0
	} else {
		res.UT = (rhsL*coefPR - rhsR*coefPL) / det
		res.PT = (coefUL*rhsR - coefUR*rhsL) / det
	}

	// inject the tangential source for Q1D/G2D, see spec §4.2 and §4.5.
	if variant == Q1D || variant == G2D {
		res.UT -= sl.Transverse.V * sl.Transverse.SV
		res.PT -= sl.Transverse.V * sl.Transverse.SP
	}

	// derive ∂ρ*/∂t on the upwind (u*-signed) side, step 5.
	upLambda, upRho, upGamma, upWave, upSlopeP := lambdaL, rhoStarL, L.Gamma, star.LeftWave, sl.SPL
	if star.U < 0 {
		upLambda, upRho, upGamma, upWave, upSlopeP = lambdaR, rhoStarR, R.Gamma, star.RightWave, sl.SPR
	}
	switch {
	case upWave == riemann.Rarefaction:
		// isentropic relation p = K·ρ^γ differentiated along the
		// characteristic through the known upwind slope.
		res.RhoT = upRho/(upGamma*star.P)*(res.PT-upLambda*upSlopeP)
	case math.Abs(star.U-upLambda) < eps:
		res.RhoT = 0
	default:
		// mass flux across the shock, rho*(u*-W) = const, differentiated
		// holding the local shock speed W ≈ upLambda fixed.
		res.RhoT = -upRho / (star.U - upLambda) * res.UT
	}
	if star.U >= 0 {
		res.Rho = rhoStarL
	} else {
		res.Rho = rhoStarR
	}

	if math.IsNaN(res.RhoT) || math.IsNaN(res.UT) || math.IsNaN(res.PT) {
		return res, errs.New(errs.NonPhysicalStar, "grp", "x", "non-finite GRP time derivative")
	}
	return res, nil
}
