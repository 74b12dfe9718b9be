// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"math"

	"github.com/ximlel/1D-LAG/riemann"
)

// ShockTube is the exact self-similar solution of a 1D Euler Riemann
// problem (Sod, Lax, and similar two-state tube tests), a reference profile
// for a numerical march. The package's own tests check its star state and
// far-field states; no test in this repository compares a march with it.
type ShockTube struct {
	L, R  riemann.Side
	Star  riemann.Star
	X0    float64 // initial diaphragm position
}

// Init resolves the star-state once; eps/tau/nit are the same Riemann
// solver tolerances the march itself uses.
func (o *ShockTube) Init(rhoL, uL, pL, rhoR, uR, pR, gamma, x0, eps, tau float64, nit int) error {
	o.L = riemann.Side{Rho: rhoL, U: uL, P: pL, Gamma: gamma, C: riemann.SoundSpeed(rhoL, pL, gamma)}
	o.R = riemann.Side{Rho: rhoR, U: uR, P: pR, Gamma: gamma, C: riemann.SoundSpeed(rhoR, pR, gamma)}
	o.X0 = x0
	star, err := riemann.Solve(o.L, o.R, eps, tau, nit)
	if err != nil {
		return err
	}
	o.Star = star
	return nil
}

// At samples the exact solution at position x, time t>0 by locating xi =
// (x-x0)/t within the resolved wave fan, following the standard Sod-tube
// sampling procedure (Toro, "Riemann Solvers and Numerical Methods for
// Fluid Dynamics", ch. 4).
func (o *ShockTube) At(x, t float64) (rho, u, p float64) {
	xi := (x - o.X0) / t
	star := o.Star

	if xi <= star.U {
		return o.sample(o.L, star.LeftWave, star.P, xi, -1)
	}
	return o.sample(o.R, star.RightWave, star.P, xi, 1)
}

// sample evaluates the solution on one side of the contact; sign is -1 for
// the left side (waves travel toward -x) and +1 for the right side.
func (o *ShockTube) sample(s riemann.Side, wave riemann.Wave, pStar, xi float64, sign float64) (rho, u, p float64) {
	rhoStar := riemann.SideStarDensity(s, pStar, wave)
	cStar := math.Sqrt(s.Gamma * pStar / rhoStar)

	if wave == riemann.Shock {
		shockSpeed := s.U + sign*s.C*math.Sqrt((s.Gamma+1.0)/(2.0*s.Gamma)*(pStar/s.P)+(s.Gamma-1.0)/(2.0*s.Gamma))
		if sign < 0 && xi < shockSpeed || sign > 0 && xi > shockSpeed {
			return s.Rho, s.U, s.P
		}
		return rhoStar, o.Star.U, pStar
	}

	// rarefaction fan: head/tail characteristic speeds
	head := s.U + sign*s.C
	tail := o.Star.U + sign*cStar
	if sign < 0 {
		if xi < head {
			return s.Rho, s.U, s.P
		}
		if xi > tail {
			return rhoStar, o.Star.U, pStar
		}
	} else {
		if xi > head {
			return s.Rho, s.U, s.P
		}
		if xi < tail {
			return rhoStar, o.Star.U, pStar
		}
	}

	// inside the fan: self-similar interpolation along the characteristic
	// (Toro, "Riemann Solvers...", eqs. 4.56-4.63, unified over both sides
	// by sign)
	expo := 2.0 / (s.Gamma - 1.0)
	factor := 2.0/(s.Gamma+1.0) - sign*(s.Gamma-1.0)/((s.Gamma+1.0)*s.C)*(s.U-xi)
	rho = s.Rho * math.Pow(factor, expo)
	u = 2.0/(s.Gamma+1.0)*(-sign*s.C+0.5*(s.Gamma-1.0)*s.U+xi)
	p = s.P * math.Pow(factor, expo*s.Gamma)
	return
}
