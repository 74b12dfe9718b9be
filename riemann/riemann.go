// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package riemann implements the exact Riemann solver for the star-state of
// the 1D Euler equations (ideal gas), see spec §4.1. It is the leaf
// dependency of package grp.
package riemann

import (
	"math"

	"github.com/cpmech/gosl/num"

	"github.com/ximlel/1D-LAG/errs"
)

// Side holds one side's constant state feeding the Riemann problem.
type Side struct {
	Rho, U, P, Gamma, C float64
}

// SoundSpeed returns c = sqrt(γp/ρ) for the given state.
func SoundSpeed(rho, p, gamma float64) float64 {
	return math.Sqrt(gamma * p / rho)
}

// Wave classifies one side of the resolved Riemann fan.
type Wave int

const (
	Shock Wave = iota
	Rarefaction
)

// Star is the resolved contact state plus the wave classification on each
// side, per spec §4.1.
type Star struct {
	U, P       float64
	LeftWave   Wave
	RightWave  Wave
	Vacuum     bool
}

// fside evaluates the Toro-form wave function f_side(p) and its derivative
// for one side, see spec §4.1.
func fside(p float64, s Side) (f, df float64) {
	if p > s.P {
		// shock branch
		A := 2.0 / ((s.Gamma + 1.0) * s.Rho)
		B := (s.Gamma - 1.0) / (s.Gamma + 1.0) * s.P
		f = (p - s.P) * math.Sqrt(A/(p+B))
		df = math.Sqrt(A/(B+p)) * (1.0 - 0.5*(p-s.P)/(B+p))
		return
	}
	// centered rarefaction branch
	pRatio := p / s.P
	expo := (s.Gamma - 1.0) / (2.0 * s.Gamma)
	f = 2.0 * s.C / (s.Gamma - 1.0) * (math.Pow(pRatio, expo) - 1.0)
	df = 1.0 / (s.Rho * s.C) * math.Pow(pRatio, -(s.Gamma+1.0)/(2.0*s.Gamma))
	return
}

// totalF evaluates f(p) = f_L(p) + f_R(p) + (u_R - u_L) and its derivative.
func totalF(p float64, L, R Side) (f, df float64) {
	fL, dfL := fside(p, L)
	fR, dfR := fside(p, R)
	f = fL + fR + (R.U - L.U)
	df = dfL + dfR
	return
}

// guess returns a starting pressure for the Newton iteration: the
// two-rarefaction approximation, clamped away from zero.
func guess(L, R Side) float64 {
	expo := (L.Gamma - 1.0) / (2.0 * L.Gamma)
	numer := L.C + R.C - 0.5*(L.Gamma-1.0)*(R.U-L.U)
	den := L.C/math.Pow(L.P, expo) + R.C/math.Pow(R.P, expo)
	if den <= 0 {
		return 0.5 * (L.P + R.P)
	}
	p0 := math.Pow(numer/den, 1.0/expo)
	if p0 < 1e-8 {
		p0 = 1e-8
	}
	return p0
}

// Solve finds the star-state (u*, p*) at the contact given the left/right
// states, a zero threshold eps, a relative-pressure convergence tolerance
// tau, and an iteration cap nit, following spec §4.1.
func Solve(L, R Side, eps, tau float64, nit int) (star Star, err error) {
	// vacuum check: f(0) >= 0 means the two rarefaction fans cannot meet.
	f0, _ := totalF(0, L, R)
	if f0 >= 0 {
		star.Vacuum = true
		star.P = 0
		uVacL := L.U + 2.0*L.C/(L.Gamma-1.0)
		uVacR := R.U - 2.0*R.C/(R.Gamma-1.0)
		star.U = 0.5 * (uVacL + uVacR)
		star.LeftWave = Rarefaction
		star.RightWave = Rarefaction
		return star, nil
	}

	p := guess(L, R)
	var nls num.NlSolver
	nls.Init(1, func(fx, x []float64) error {
		f, _ := totalF(x[0], L, R)
		fx[0] = f
		return nil
	}, nil, func(J [][]float64, x []float64) error {
		_, df := totalF(x[0], L, R)
		J[0][0] = df
		return nil
	}, true, false, nil)
	nls.SetTols(eps, tau, 1e-14, num.EPS)
	x := []float64{p}
	solveErr := nls.Solve(x, true)
	pStar := x[0]
	if solveErr != nil || pStar <= eps || math.IsNaN(pStar) || math.IsInf(pStar, 0) {
		// fall back to a plain damped Newton loop bounded by nit, in case
		// the general-purpose solver's own iteration cap differs from the
		// configured N_it.
		pStar = p
		converged := false
		for it := 0; it < nit; it++ {
			f, df := totalF(pStar, L, R)
			if df == 0 {
				break
			}
			next := pStar - f/df
			if next <= eps {
				next = 0.5 * pStar
			}
			if math.Abs(next-pStar) <= tau*pStar {
				pStar = next
				converged = true
				break
			}
			pStar = next
		}
		if !converged {
			return star, errs.New(errs.NonConvergentRiemann, "riemann", "x", "star pressure failed to converge after %d iterations", nit)
		}
	}
	if pStar <= eps || math.IsNaN(pStar) || math.IsInf(pStar, 0) {
		return star, errs.New(errs.NonPhysicalStar, "riemann", "x", "non-physical star pressure p*=%g", pStar)
	}

	fL, _ := fside(pStar, L)
	fR, _ := fside(pStar, R)
	star.P = pStar
	star.U = 0.5*(L.U+R.U) + 0.5*(fR-fL)
	if pStar > L.P {
		star.LeftWave = Shock
	} else {
		star.LeftWave = Rarefaction
	}
	if pStar > R.P {
		star.RightWave = Shock
	} else {
		star.RightWave = Rarefaction
	}
	return star, nil
}

// SolveSingle is the default single-fluid entry point: both sides share one
// adiabatic index gamma.
func SolveSingle(rhoL, uL, pL, rhoR, uR, pR, gamma, eps, tau float64, nit int) (Star, error) {
	L := Side{Rho: rhoL, U: uL, P: pL, Gamma: gamma, C: SoundSpeed(rhoL, pL, gamma)}
	R := Side{Rho: rhoR, U: uR, P: pR, Gamma: gamma, C: SoundSpeed(rhoR, pR, gamma)}
	return Solve(L, R, eps, tau, nit)
}

// SolveTwoComponent is the two-component entry point: each side carries its
// own adiabatic index, per spec §4.1.
func SolveTwoComponent(rhoL, uL, pL, gammaL, rhoR, uR, pR, gammaR, eps, tau float64, nit int) (Star, error) {
	L := Side{Rho: rhoL, U: uL, P: pL, Gamma: gammaL, C: SoundSpeed(rhoL, pL, gammaL)}
	R := Side{Rho: rhoR, U: uR, P: pR, Gamma: gammaR, C: SoundSpeed(rhoR, pR, gammaR)}
	return Solve(L, R, eps, tau, nit)
}

// StarDensity returns the star-side density on the side selected by the
// sign of u*, needed by the GRP solver's ∂ρ*/∂t derivation (spec §4.2).
func StarDensity(star Star, L, R Side) float64 {
	side, wave := L, star.LeftWave
	if star.U < 0 {
		side, wave = R, star.RightWave
	}
	if star.Vacuum {
		return sideIsentropicDensity(side, star.P)
	}
	return SideStarDensity(side, star.P, wave)
}

// SideStarDensity returns the star-side density of one named side given its
// wave classification, independent of which side u* favors. Used when both
// the left and right star densities are needed regardless of upwind sign
// (e.g. to build the acoustic impedances feeding the GRP 2x2 system).
func SideStarDensity(side Side, pStar float64, wave Wave) float64 {
	if wave == Shock {
		a := side.Gamma - 1.0
		b := side.Gamma + 1.0
		ratio := (pStar/side.P + a/b) / (a/b*pStar/side.P + 1.0)
		return side.Rho * ratio
	}
	return sideIsentropicDensity(side, pStar)
}

func sideIsentropicDensity(side Side, p float64) float64 {
	return side.Rho * math.Pow(p/side.P, 1.0/side.Gamma)
}
