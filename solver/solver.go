// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package solver implements the time-marching controller of spec §4.7: the
// per-step state machine that reconstructs slopes, proposes Δt under CFL,
// resolves interfaces, advances cells, and snapshots requested plot times.
// Its allocator-map dispatch over scheme names mirrors a factory-by-string
// registry.
package solver

import (
	"math"
	"time"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"

	"github.com/ximlel/1D-LAG/bc"
	"github.com/ximlel/1D-LAG/errs"
	"github.com/ximlel/1D-LAG/flux"
	"github.com/ximlel/1D-LAG/grp"
	"github.com/ximlel/1D-LAG/inp"
	"github.com/ximlel/1D-LAG/riemann"
	"github.com/ximlel/1D-LAG/slope"
	"github.com/ximlel/1D-LAG/update"
)

// InterfaceSolver resolves one interface into a GRP-shaped result; the
// first-order Godunov/Riemann_exact schemes wrap the plain Riemann solver
// with a zero time derivative, the GRP scheme calls package grp directly.
type InterfaceSolver func(L, R riemann.Side, sl grp.Slopes, eps, tau float64, nit int) (grp.Result, error)

// schemeAllocators holds all available interface-solver schemes, keyed by
// the CLI scheme tag of spec §6.
var schemeAllocators = map[string]func(v grp.Variant) InterfaceSolver{
	"Riemann_exact": func(grp.Variant) InterfaceSolver { return riemannOnly },
	"Godunov":       func(grp.Variant) InterfaceSolver { return riemannOnly },
	"GRP":           func(v grp.Variant) InterfaceSolver {
		return func(L, R riemann.Side, sl grp.Slopes, eps, tau float64, nit int) (grp.Result, error) {
			return grp.Solve(v, L, R, sl, eps, tau, nit)
		}
	},
}

// riemannOnly is the first-order interface solver: it ignores slopes and
// reports a zero time derivative, degrading flux.Build to a plain Godunov
// (piecewise-constant) flux.
func riemannOnly(L, R riemann.Side, sl grp.Slopes, eps, tau float64, nit int) (res grp.Result, err error) {
	star, err := riemann.Solve(L, R, eps, tau, nit)
	if err != nil {
		return res, err
	}
	if star.P <= eps {
		return res, errs.New(errs.NonPhysicalStar, "riemann", "x", "non-physical star pressure p*=%g", star.P)
	}
	res.Star = star
	res.Rho = riemann.StarDensity(star, L, R)
	res.U = star.U
	res.P = star.P
	return res, nil
}

// Summary mirrors fem.Summary: per-step CPU timings recorded alongside the
// snapshot they produced, see spec §4.7.
type Summary struct {
	StepCPU []float64
}

// ghostPair is the materialized ghost state at both grid edges, per
// spec §4.4.
type ghostPair struct {
	RhoL, RhoR bc.Edge
	UL, UR     bc.Edge
	PL, PR     bc.Edge
}

// Controller is the time-marching engine of spec §4.7.
type Controller struct {
	Cfg   *inp.Config
	Grid  *inp.Grid
	Cap   inp.Capability
	Order int // 1 or 2, see spec §6

	Variant    grp.Variant
	Transversa bool // whether transverse slopes feed Q1D/G2D, see spec §4.5

	resolve InterfaceSolver

	initial *inp.Field // snapshot 0, frozen for the Initial boundary tag
	field   *inp.Field // current working field

	slopesRho, slopesU, slopesP             []float64
	prevSlopesRho, prevSlopesU, prevSlopesP []float64
	firstStep                               bool

	plotTimes []float64
	nextPlot  int

	t    float64
	step int
	nt   int

	Snapshots  []inp.Snapshot
	Summary    Summary
	Cancelled  *errs.Error
}

// New builds a Controller, validating the scheme name and the order, per
// spec §6. coordTag is not validated: "LAG" selects the Lagrangian GRP
// variant and any other tag the Eulerian one. plotTimes must be ascending; snapshot storage for
// len(plotTimes)+1 entries is allocated once here, per spec §3's lifecycle.
func New(cfg *inp.Config, grid *inp.Grid, field0 *inp.Field, cap inp.Capability, order int, schemeName, coordTag string, plotTimes []float64) (*Controller, error) {
	alloc, ok := schemeAllocators[schemeName]
	if !ok {
		return nil, errs.New(errs.Argument, "solver", "cli", "unknown scheme %q", schemeName)
	}
	variant := grp.Edir
	if coordTag == "LAG" {
		variant = grp.LAG
	}
	if order != 1 && order != 2 {
		return nil, errs.New(errs.Argument, "solver", "cli", "unknown order %d", order)
	}

	c := &Controller{
		Cfg: cfg, Grid: grid, Cap: cap, Order: order, Variant: variant,
		resolve: alloc(variant), initial: field0.Clone(), field: field0.Clone(),
		plotTimes: plotTimes, firstStep: true,
	}
	stepCap := cfg.Nmax()
	if stepCap <= 0 || stepCap > 1<<20 {
		stepCap = 16
	}
	c.Snapshots = make([]inp.Snapshot, len(plotTimes)+1)
	c.Summary.StepCPU = make([]float64, 0, stepCap)
	c.Snapshots[0] = inp.Snapshot{T: 0, Field: c.field.Clone()}
	return c, nil
}

// Run drives the S1..S5 state machine until t ≥ t_end, step count ≥ N_max,
// or a non-fatal physical-cancellation error is raised, per spec §4.7/§7.
// On cancellation the march exits cleanly with the last good snapshot
// preserved; Run itself returns nil in that case (the caller inspects
// c.Cancelled), matching the "no partial update is committed" policy of
// spec §5.
func (c *Controller) Run() error {
	cpuAcc := 0.0
	for {
		stepStart := time.Now()
		snapshotIdx, err := c.oneStep()
		elapsed := time.Since(stepStart).Seconds()
		c.Summary.StepCPU = append(c.Summary.StepCPU, elapsed)
		cpuAcc += elapsed

		if err != nil {
			herr, ok := err.(*errs.Error)
			if !ok || herr.Kind.Fatal() {
				return err
			}
			io.PfRed("> march cancelled: %v\n", herr)
			c.Cancelled = herr
			return nil
		}
		if snapshotIdx >= 0 {
			c.Snapshots[snapshotIdx].CPUSecs = cpuAcc
			cpuAcc = 0
		}
		c.step++
		if c.t >= c.Cfg.Tend()-1e-13 || c.step >= c.Cfg.Nmax() {
			return nil
		}
	}
}

// oneStep executes S1 (Reconstruct) through S5 (Record) once, returning the
// index of the snapshot it recorded, or -1 if this step crossed no plot time.
func (c *Controller) oneStep() (int, error) {
	g, err := c.applyBoundary()
	if err != nil {
		return -1, err
	}
	if c.Order == 2 {
		c.reconstructSlopes(g)
	}

	dt, err := c.proposeDt()
	if err != nil {
		return -1, err
	}

	fluxes, err := c.solveInterfaces(g, dt)
	if err != nil {
		return -1, err
	}

	newField, err := c.advanceCells(fluxes, dt)
	if err != nil {
		return -1, err
	}
	c.field = newField
	c.prevSlopesRho, c.prevSlopesU, c.prevSlopesP = c.slopesRho, c.slopesU, c.slopesP
	c.firstStep = false

	c.t += dt
	if c.nextPlot < len(c.plotTimes) && c.t >= c.plotTimes[c.nextPlot]-1e-9 {
		c.nt++
		c.Snapshots[c.nt] = inp.Snapshot{T: c.t, Field: c.field.Clone()}
		c.nextPlot++
		return c.nt, nil
	}
	return -1, nil
}

// applyBoundary materializes ghost cells at both x-edges, per spec §4.4.
func (c *Controller) applyBoundary() (g ghostPair, err error) {
	n := c.Grid.NCells()
	tag, err := bc.Parse(c.Cfg.BoundTag("x"))
	if err != nil {
		return g, err
	}

	mk := func(vals, slopes []float64, initVals []float64, idx, oppIdx int) (edge, opp, initEdge bc.Edge) {
		edge = bc.Edge{Value: vals[idx], Slope: at(slopes, idx)}
		opp = bc.Edge{Value: vals[oppIdx], Slope: at(slopes, oppIdx)}
		initEdge = bc.Edge{Value: initVals[idx]}
		return
	}

	rhoEdgeL, rhoOppL, rhoInitL := mk(c.field.Rho, c.slopesRho, c.initial.Rho, 0, n-1)
	rhoEdgeR, rhoOppR, rhoInitR := mk(c.field.Rho, c.slopesRho, c.initial.Rho, n-1, 0)
	uEdgeL, uOppL, uInitL := mk(c.field.U, c.slopesU, c.initial.U, 0, n-1)
	uEdgeR, uOppR, uInitR := mk(c.field.U, c.slopesU, c.initial.U, n-1, 0)
	pEdgeL, pOppL, pInitL := mk(c.field.P, c.slopesP, c.initial.P, 0, n-1)
	pEdgeR, pOppR, pInitR := mk(c.field.P, c.slopesP, c.initial.P, n-1, 0)

	if g.RhoL, err = bc.Apply(tag, bc.Left, false, rhoEdgeL, rhoInitL, rhoOppL); err != nil {
		return
	}
	if g.RhoR, err = bc.Apply(tag, bc.Right, false, rhoEdgeR, rhoInitR, rhoOppR); err != nil {
		return
	}
	if g.UL, err = bc.Apply(tag, bc.Left, true, uEdgeL, uInitL, uOppL); err != nil {
		return
	}
	if g.UR, err = bc.Apply(tag, bc.Right, true, uEdgeR, uInitR, uOppR); err != nil {
		return
	}
	if g.PL, err = bc.Apply(tag, bc.Left, false, pEdgeL, pInitL, pOppL); err != nil {
		return
	}
	if g.PR, err = bc.Apply(tag, bc.Right, false, pEdgeR, pInitR, pOppR); err != nil {
		return
	}
	return g, nil
}

func at(s []float64, i int) float64 {
	if s == nil || i < 0 || i >= len(s) {
		return 0
	}
	return s[i]
}

// reconstructSlopes builds one slope per cell per primitive variable, per
// spec §4.3.
func (c *Controller) reconstructSlopes(g ghostPair) {
	n := c.Grid.NCells()
	dx := make([]float64, n)
	for j := 0; j < n; j++ {
		dx[j] = c.Grid.Dx(j)
	}
	dxL, dxR := c.Grid.Dx(0), c.Grid.Dx(n-1)
	alpha := c.Cfg.Alpha()
	if alpha < 1 {
		alpha = 1
	}

	c.slopesRho = slope.Reconstruct(slope.Field{V: c.field.Rho, GhostL: g.RhoL.Value, GhostR: g.RhoR.Value, DxL: dxL, Dx: dx, DxR: dxR}, c.prevSlopesRho, alpha, c.firstStep)
	c.slopesU = slope.Reconstruct(slope.Field{V: c.field.U, GhostL: g.UL.Value, GhostR: g.UR.Value, DxL: dxL, Dx: dx, DxR: dxR}, c.prevSlopesU, alpha, c.firstStep)
	c.slopesP = slope.Reconstruct(slope.Field{V: c.field.P, GhostL: g.PL.Value, GhostR: g.PR.Value, DxL: dxL, Dx: dx, DxR: dxR}, c.prevSlopesP, alpha, c.firstStep)
}

// proposeDt computes Δt = CFL·min(Δx/(|u|+c)) clamped to t_end, or honors a
// fixed Δt from configuration slot 16, per spec §4.7/§6.
func (c *Controller) proposeDt() (float64, error) {
	if dtf, fixed := c.Cfg.DtFixed(); fixed {
		if c.t+dtf > c.Cfg.Tend() {
			return c.Cfg.Tend() - c.t, nil
		}
		return dtf, nil
	}
	n := c.Grid.NCells()
	minRatio := math.Inf(1)
	for j := 0; j < n; j++ {
		gamma := c.field.GammaAt(j)
		cs := riemann.SoundSpeed(c.field.Rho[j], c.field.P[j], gamma)
		speed := math.Abs(c.field.U[j]) + cs
		if speed <= 0 {
			continue
		}
		ratio := c.Grid.Dx(j) / speed
		minRatio = utl.Min(minRatio, ratio)
	}
	dt := c.Cfg.CFL() * minRatio
	if c.t+dt > c.Cfg.Tend() {
		dt = c.Cfg.Tend() - c.t
	}
	return dt, nil
}

// edgeExtrapolate returns the piecewise-linear value at the interface-facing
// edge of a cell: + half-width for the cell's right edge, - for its left.
func edgeExtrapolate(center, slope, dx, sign float64) float64 {
	return center + sign*0.5*dx*slope
}

// interfaceStates builds the left/right Riemann sides and GRP slopes for
// interface i (0..n), substituting ghost values at the two domain edges.
func (c *Controller) interfaceStates(i int, g ghostPair) (L, R riemann.Side, sl grp.Slopes, gamma float64) {
	n := c.Grid.NCells()

	var rhoL, uL, pL, gL, sRhoL, sUL, sPL, dxL float64
	if i == 0 {
		rhoL, uL, pL, gL = g.RhoL.Value, g.UL.Value, g.PL.Value, c.field.GammaAt(0)
		sRhoL, sUL, sPL = g.RhoL.Slope, g.UL.Slope, g.PL.Slope
		dxL = c.Grid.Dx(0)
	} else {
		j := i - 1
		rhoL, uL, pL, gL = c.field.Rho[j], c.field.U[j], c.field.P[j], c.field.GammaAt(j)
		sRhoL, sUL, sPL = at(c.slopesRho, j), at(c.slopesU, j), at(c.slopesP, j)
		dxL = c.Grid.Dx(j)
	}

	var rhoR, uR, pR, gR, sRhoR, sUR, sPR, dxR float64
	if i == n {
		rhoR, uR, pR, gR = g.RhoR.Value, g.UR.Value, g.PR.Value, c.field.GammaAt(n - 1)
		sRhoR, sUR, sPR = g.RhoR.Slope, g.UR.Slope, g.PR.Slope
		dxR = c.Grid.Dx(n - 1)
	} else {
		j := i
		rhoR, uR, pR, gR = c.field.Rho[j], c.field.U[j], c.field.P[j], c.field.GammaAt(j)
		sRhoR, sUR, sPR = at(c.slopesRho, j), at(c.slopesU, j), at(c.slopesP, j)
		dxR = c.Grid.Dx(j)
	}

	rhoLedge := edgeExtrapolate(rhoL, sRhoL, dxL, 1)
	uLedge := edgeExtrapolate(uL, sUL, dxL, 1)
	pLedge := edgeExtrapolate(pL, sPL, dxL, 1)
	rhoRedge := edgeExtrapolate(rhoR, sRhoR, dxR, -1)
	uRedge := edgeExtrapolate(uR, sUR, dxR, -1)
	pRedge := edgeExtrapolate(pR, sPR, dxR, -1)

	L = riemann.Side{Rho: rhoLedge, U: uLedge, P: pLedge, Gamma: gL, C: riemann.SoundSpeed(rhoLedge, pLedge, gL)}
	R = riemann.Side{Rho: rhoRedge, U: uRedge, P: pRedge, Gamma: gR, C: riemann.SoundSpeed(rhoRedge, pRedge, gR)}
	sl = grp.Slopes{SRhoL: sRhoL, SUL: sUL, SPL: sPL, SRhoR: sRhoR, SUR: sUR, SPR: sPR}
	if !c.Transversa {
		sl.Transverse = grp.Transverse{}
	}
	gamma = 0.5 * (gL + gR)
	return
}

// solveInterfaces resolves every one of the n+1 interfaces into a
// half-time-centered flux, per spec §4.5 (S3).
func (c *Controller) solveInterfaces(g ghostPair, dt float64) ([]flux.Vector, error) {
	n := c.Grid.NCells()
	eps := c.Cfg.Eps()
	const tau = 1e-6
	const nit = 100

	fluxes := make([]flux.Vector, n+1)
	for i := 0; i <= n; i++ {
		L, R, sl, gamma := c.interfaceStates(i, g)
		res, err := c.resolve(L, R, sl, eps, tau, nit)
		if err != nil {
			if herr, ok := err.(*errs.Error); ok {
				herr.Step, herr.Cell = c.step, i
			}
			return nil, err
		}
		fluxes[i] = flux.Build(res, dt, gamma, 0, false)
	}
	return fluxes, nil
}

// advanceCells advances every cell one explicit Euler step, per spec §4.6
// (S4), recomputing the mixture γ of multi-fluid/multi-phase cells.
func (c *Controller) advanceCells(fluxes []flux.Vector, dt float64) (*inp.Field, error) {
	n := c.Grid.NCells()
	eps := c.Cfg.Eps()
	next := c.field.Clone()

	for j := 0; j < n; j++ {
		old := update.Cell{Rho: c.field.Rho[j], U: c.field.U[j], P: c.field.P[j], Gamma: c.field.GammaAt(j)}
		geom := update.Geometry{M: 1}
		if c.Grid.M > 1 {
			geom = update.Geometry{M: c.Grid.M, R: 0.5 * (c.Grid.X[j] + c.Grid.X[j+1])}
		}
		updated, err := update.Advance(old, fluxes[j], fluxes[j+1], dt, c.Grid.Dx(j), geom, eps, c.step, j)
		if err != nil {
			return nil, err
		}
		next.Rho[j], next.U[j], next.P[j] = updated.Rho, updated.U, updated.P
		if c.field.Gamma != nil {
			za := 0.5
			if c.field.Za != nil {
				za = c.field.Za[j]
			}
			next.Gamma[j] = update.MixGamma(c.Cfg.Gamma(), c.Cfg.GammaB(), za)
		}
	}
	return next, nil
}
