// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"os"
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"

	"github.com/ximlel/1D-LAG/errs"
	"github.com/ximlel/1D-LAG/inp"
	"github.com/ximlel/1D-LAG/solver"
)

func main() {

	// catch unexpected panics (as opposed to the explicit *errs.Error
	// returns from run, which carry their own exit code)
	defer func() {
		if r := recover(); r != nil {
			chk.Verbose = true
			io.PfRed("ERROR: %v\n", r)
			os.Exit(errs.Memory.ExitCode())
		}
	}()

	io.PfWhite("\n1D-LAG -- finite-volume GRP solver for compressible flow\n\n")

	if err := run(); err != nil {
		if herr, ok := err.(*errs.Error); ok {
			io.PfRed("ERROR: %v\n", herr)
			os.Exit(herr.Kind.ExitCode())
		}
		io.PfRed("ERROR: %v\n", err)
		os.Exit(1)
	}
}

// run implements the CLI of spec §6: positional args are the input
// directory (config.txt + field files), the output directory, the order
// tag (1 or 2, optionally suffixed "_<scheme>"), and the coordinate tag
// (EUL or LAG); any further args are "n=C" configuration overrides.
func run() error {
	flag.Parse()
	args := flag.Args()
	if len(args) < 4 {
		return errs.New(errs.Argument, "main", "cli", "usage: 1D-LAG <input-dir> <output-dir> <order-tag> <coord-tag> [n=C ...]")
	}
	inputDir, outputDir, orderTag, coordTag := args[0], args[1], args[2], args[3]

	order, schemeName, err := parseOrderTag(orderTag)
	if err != nil {
		return err
	}

	cfg, err := inp.ReadConfig(inputDir + "/config.txt")
	if err != nil {
		return err
	}
	for _, pair := range args[4:] {
		if e := inp.ParseOverride(cfg, pair); e != nil {
			return e
		}
	}

	capa := capabilityFromConfig(cfg)
	field, err := inp.LoadField(inputDir, capa, cfg.Gamma())
	if err != nil {
		return err
	}

	grid := inp.UniformGrid(0, cfg.Dx(), field.N(), radialM(coordTag))

	plotTimes := plotSchedule(cfg)
	ctl, err := solver.New(cfg, grid, field, capa, order, schemeName, coordTag, plotTimes)
	if err != nil {
		return err
	}

	io.Pf("> running %d cells, order=%d scheme=%s coord=%s t_end=%g\n", grid.NCells(), order, schemeName, coordTag, cfg.Tend())
	if err := ctl.Run(); err != nil {
		return err
	}
	if ctl.Cancelled != nil {
		io.PfYel("> march cancelled, last good snapshot preserved: %v\n", ctl.Cancelled)
	}

	return inp.WriteHistory(outputDir, grid, ctl.Snapshots)
}

// parseOrderTag splits "1", "2", "1_Godunov", "2_GRP", etc. into the order
// number and scheme name, defaulting to "Godunov" for order 1 and "GRP" for
// order 2, per spec §6.
func parseOrderTag(tag string) (order int, scheme string, err error) {
	parts := strings.SplitN(tag, "_", 2)
	order, e := strconv.Atoi(parts[0])
	if e != nil {
		return 0, "", errs.New(errs.Argument, "main", "cli", "bad order tag %q", tag)
	}
	if len(parts) == 2 {
		return order, parts[1], nil
	}
	if order == 2 {
		return order, "GRP", nil
	}
	return order, "Godunov", nil
}

// capabilityFromConfig infers the field-layout capability from whether the
// phase-b γ slot (spec §6 slot 106) was ever set.
func capabilityFromConfig(cfg *inp.Config) inp.Capability {
	if cfg.IsSet(inp.SlotGammaB) {
		return inp.MultiPhase
	}
	return inp.SingleFluid
}

// plotSchedule builds the ascending snapshot-time list from the configured
// output interval (slot 19), stepped with a fun.Func the same way the
// teacher steps Stage.Control.DtoFunc to find its next output instant. An
// unset interval snapshots only at t_end.
func plotSchedule(cfg *inp.Config) []float64 {
	interval, set := cfg.DtOut()
	if !set {
		return []float64{cfg.Tend()}
	}
	var dtoFunc fun.Func = &fun.Cte{C: interval}
	var times []float64
	for t := dtoFunc.F(0, nil); t < cfg.Tend()-1e-9; t += dtoFunc.F(t, nil) {
		times = append(times, t)
	}
	return append(times, cfg.Tend())
}

// radialM maps the coordinate tag to the geometric dimensionality M of
// spec §3/§9: 1 planar, 2 cylindrical, 3 spherical. Anything other than
// the recognized radial tags is planar.
func radialM(coordTag string) int {
	switch coordTag {
	case "CYL", "R2":
		return 2
	case "SPH", "R3":
		return 3
	}
	return 1
}
