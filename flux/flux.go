// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package flux composes a GRP result into the half-time-centered numerical
// flux for mass, momentum, and energy, see spec §4.5.
package flux

import "github.com/ximlel/1D-LAG/grp"

// Vector is the conservative flux at one interface: mass (F1), normal
// momentum (F2), energy (F3), and — in a 2D sweep only — the transverse
// momentum carried by the same mass flux (Ftang).
type Vector struct {
	F1, F2, F3, Ftang float64
}

// Build composes the half-time-centered flux from a GRP result, per
// spec §4.5: (ρ̂,û,p̂) = (ρ*,u*,p*) + 0.5·Δt·∂_t(ρ*,u*,p*). tangentialHat is
// the half-time-centered tangential velocity (0, hasTangential=false, in a
// pure 1D sweep); gamma is the adiabatic index at the interface.
func Build(g grp.Result, dt, gamma, tangentialHat float64, hasTangential bool) Vector {
	rhoHat := g.Rho + 0.5*dt*g.RhoT
	uHat := g.U + 0.5*dt*g.UT
	pHat := g.P + 0.5*dt*g.PT

	f1 := rhoHat * uHat
	f2 := f1*uHat + pHat
	f3 := uHat * (gamma/(gamma-1.0)*pHat + 0.5*f1*uHat)

	v := Vector{F1: f1, F2: f2, F3: f3}
	if hasTangential {
		v.Ftang = f1 * tangentialHat
	}
	return v
}
