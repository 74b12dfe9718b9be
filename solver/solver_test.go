// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/ximlel/1D-LAG/inp"
)

func newSodConfig() *inp.Config {
	cfg := inp.NewConfig()
	cfg.Set(inp.SlotTend, 0.2)
	cfg.Set(inp.SlotEps, 1e-10)
	cfg.Set(inp.SlotNmax, 100000)
	cfg.Set(inp.SlotGamma, 1.4)
	cfg.Set(inp.SlotCFL, 0.5)
	cfg.Set(inp.SlotAlpha, 1.5)
	cfg.Set(inp.SlotBoundX, -4) // Free
	return cfg
}

func sodField(n int) (*inp.Field, *inp.Grid) {
	grid := inp.UniformGrid(0.0, 1.0/float64(n), n, 1)
	f := inp.NewField(n, inp.SingleFluid, 1.4)
	for j := 0; j < n; j++ {
		x := 0.5 * (grid.X[j] + grid.X[j+1])
		if x < 0.5 {
			f.Rho[j], f.U[j], f.P[j] = 1.0, 0.0, 1.0
		} else {
			f.Rho[j], f.U[j], f.P[j] = 0.125, 0.0, 0.1
		}
	}
	return f, grid
}

func Test_solver01_sod_order1_stays_physical(tst *testing.T) {

	chk.PrintTitle("solver01_sod_order1_stays_physical")

	cfg := newSodConfig()
	field, grid := sodField(40)
	ctl, err := New(cfg, grid, field, inp.SingleFluid, 1, "Godunov", "EUL", []float64{0.2})
	if err != nil {
		tst.Fatalf("New failed: %v", err)
	}
	if err := ctl.Run(); err != nil {
		tst.Fatalf("Run failed: %v", err)
	}
	if ctl.Cancelled != nil {
		tst.Fatalf("march was cancelled: %v", ctl.Cancelled)
	}
	final := ctl.Snapshots[len(ctl.Snapshots)-1]
	if final.Field == nil {
		tst.Fatalf("expected a final snapshot to be recorded")
	}
	for j := 0; j < final.Field.N(); j++ {
		if final.Field.Rho[j] <= 0 || final.Field.P[j] <= 0 {
			tst.Fatalf("non-physical state at cell %d: rho=%g p=%g", j, final.Field.Rho[j], final.Field.P[j])
		}
	}
}

func Test_solver02_sod_order2_GRP(tst *testing.T) {

	chk.PrintTitle("solver02_sod_order2_GRP")

	cfg := newSodConfig()
	field, grid := sodField(40)
	ctl, err := New(cfg, grid, field, inp.SingleFluid, 2, "GRP", "EUL", []float64{0.2})
	if err != nil {
		tst.Fatalf("New failed: %v", err)
	}
	if err := ctl.Run(); err != nil {
		tst.Fatalf("Run failed: %v", err)
	}
	if ctl.Cancelled != nil {
		tst.Fatalf("march was cancelled: %v", ctl.Cancelled)
	}
}

func Test_solver03_uniform_flow_is_steady(tst *testing.T) {

	chk.PrintTitle("solver03_uniform_flow_is_steady")

	cfg := newSodConfig()
	cfg.Set(inp.SlotTend, 0.05)
	cfg.Set(inp.SlotBoundX, -5) // Periodic: a uniform state must stay exactly uniform
	n := 10
	grid := inp.UniformGrid(0.0, 1.0/float64(n), n, 1)
	field := inp.NewField(n, inp.SingleFluid, 1.4)
	for j := 0; j < n; j++ {
		field.Rho[j], field.U[j], field.P[j] = 1.0, 0.2, 1.0
	}
	ctl, err := New(cfg, grid, field, inp.SingleFluid, 1, "Godunov", "EUL", []float64{0.05})
	if err != nil {
		tst.Fatalf("New failed: %v", err)
	}
	if err := ctl.Run(); err != nil {
		tst.Fatalf("Run failed: %v", err)
	}
	final := ctl.Snapshots[len(ctl.Snapshots)-1].Field
	for j := 0; j < n; j++ {
		chk.Scalar(tst, "rho stays uniform", 1e-8, final.Rho[j], 1.0)
		chk.Scalar(tst, "u stays uniform", 1e-8, final.U[j], 0.2)
		chk.Scalar(tst, "p stays uniform", 1e-8, final.P[j], 1.0)
	}
}

func Test_solver04_unknown_scheme_rejected(tst *testing.T) {

	chk.PrintTitle("solver04_unknown_scheme_rejected")

	cfg := newSodConfig()
	field, grid := sodField(10)
	if _, err := New(cfg, grid, field, inp.SingleFluid, 1, "Bogus", "EUL", []float64{0.1}); err == nil {
		tst.Fatalf("expected unknown-scheme error")
	}
}
