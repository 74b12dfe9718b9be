// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package update advances conserved quantities one explicit Euler step and
// recovers primitive variables, see spec §4.6.
package update

import (
	"math"

	"github.com/ximlel/1D-LAG/errs"
	"github.com/ximlel/1D-LAG/flux"
)

// Cell is one cell's primitive state before/after the update.
type Cell struct {
	Rho, U, P, Gamma float64
}

// Geometry carries the optional radial geometric source term of spec §3/§9:
// M=1 planar (no source), M=2 cylindrical, M=3 spherical. R is the cell
// center radius, used only when M>1.
type Geometry struct {
	M int
	R float64
}

// Conservative packs (ρ, ρu, ρE) for one cell.
type Conservative struct {
	Rho, RhoU, RhoE float64
}

// ToConservative converts a primitive Cell to its conservative triple.
func ToConservative(c Cell) Conservative {
	e := c.P/((c.Gamma-1.0)*c.Rho) + 0.5*c.U*c.U // specific total energy
	return Conservative{Rho: c.Rho, RhoU: c.Rho * c.U, RhoE: c.Rho * e}
}

// ToPrimitive recovers (u, p) from a conservative triple and the cell's γ,
// per the ideal-gas relation of spec §4.6.
func ToPrimitive(c Conservative, gamma float64) Cell {
	u := c.RhoU / c.Rho
	p := (gamma - 1.0) * (c.RhoE - 0.5*c.RhoU*c.RhoU/c.Rho)
	return Cell{Rho: c.Rho, U: u, P: p, Gamma: gamma}
}

// MixGamma recomputes a multi-fluid cell's effective adiabatic index as the
// Wood-type harmonic mean of the two phase γ's weighted by volume fraction
// za (phase a), per spec §4.6.
func MixGamma(gammaA, gammaB, za float64) float64 {
	if za <= 0 {
		return gammaB
	}
	if za >= 1 {
		return gammaA
	}
	return 1.0 / (za/gammaA + (1.0-za)/gammaB)
}

// Advance computes one cell's new conservative state:
//
//	(ρ,ρu,ρE)_new = (ρ,ρu,ρE)_old − ν·(F_right − F_left)
//
// plus an optional additive radial geometric source term, ν = Δt/Δx, per
// spec §4.6/§9. eps is the zero threshold; step and cellIdx are used only
// to tag a NonPhysicalUpdate error with its (step, cell) location.
func Advance(old Cell, fLeft, fRight flux.Vector, dt, dx float64, geom Geometry, eps float64, step, cellIdx int) (next Cell, err error) {
	nu := dt / dx
	cons := ToConservative(old)
	cons.Rho -= nu * (fRight.F1 - fLeft.F1)
	cons.RhoU -= nu * (fRight.F2 - fLeft.F2)
	cons.RhoE -= nu * (fRight.F3 - fLeft.F3)

	if geom.M > 1 && geom.R > eps {
		src := float64(geom.M-1) / geom.R
		massFlux := 0.5 * (fLeft.F1 + fRight.F1)
		momFlux := 0.5 * (fLeft.F2 + fRight.F2)
		enFlux := 0.5*(fLeft.F3+fRight.F3) + old.P*old.U
		cons.Rho -= dt * src * massFlux
		cons.RhoU -= dt * src * (momFlux - old.P)
		cons.RhoE -= dt * src * enFlux
	}

	next = ToPrimitive(cons, old.Gamma)

	if next.Rho <= eps || next.P <= eps || nonFinite(next.Rho, next.U, next.P) {
		return next, errs.AtStep(errs.NonPhysicalUpdate, "update", "x", step, cellIdx,
			"rho=%g p=%g after update", next.Rho, next.P)
	}
	return next, nil
}

func nonFinite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return true
		}
	}
	return false
}
