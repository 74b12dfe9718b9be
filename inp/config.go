// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp reads the configuration vector and cell-centered field files
// that feed the finite-volume march, and writes its time-indexed output.
package inp

import (
	"bufio"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/cpmech/gosl/io"

	"github.com/ximlel/1D-LAG/errs"
)

// configuration slots consumed by the core, see spec §6
const (
	SlotTend    = 1   // total physical time t_end
	SlotNCell   = 3   // total cell count (1D) or n_x·n_y (2D)
	SlotEps     = 4   // zero-threshold ε
	SlotNmax    = 5   // N_max (step cap)
	SlotGamma   = 6   // γ (reference / phase a)
	SlotCFL     = 7   // CFL number
	SlotCoord   = 8   // coordinate flag (0 Eulerian, 1 Lagrangian)
	SlotOrder   = 9   // scheme order
	SlotDx      = 10  // Δx
	SlotDy      = 11  // Δy
	SlotNx      = 13  // n_x
	SlotNy      = 14  // n_y
	SlotDtFixed = 16  // fixed Δt (if finite and positive)
	SlotBoundX  = 17  // x-boundary tag
	SlotBoundY  = 18  // y-boundary tag
	SlotDtOut   = 19  // output/snapshot time interval (ambient, not core)
	SlotAlpha   = 41  // α for minmod3
	SlotGammaB  = 106 // γ for phase b
)

// maxSlot bounds the configuration vector; slots beyond this are rejected
// as an Argument error rather than silently ignored.
const maxSlot = 200

// Config is the process-wide, read-once configuration vector of spec §3.
// Uninitialized slots carry +Inf ("not set"). Once built by ReadConfig (and
// any CLI n=C overrides) it is never mutated again; every reader of the
// march shares the same *Config without synchronization, per spec §5.
type Config struct {
	slot [maxSlot]float64
}

// NewConfig returns a Config with every slot set to "not set" (+Inf).
func NewConfig() *Config {
	c := &Config{}
	for i := range c.slot {
		c.slot[i] = math.Inf(1)
	}
	return c
}

// Get returns config[n]; out-of-range n returns +Inf.
func (c *Config) Get(n int) float64 {
	if n < 0 || n >= maxSlot {
		return math.Inf(1)
	}
	return c.slot[n]
}

// Set assigns config[n] = v. Used both while parsing config.txt and for
// CLI "n=C" overrides (spec §6 item 5).
func (c *Config) Set(n int, v float64) (err error) {
	if n < 0 || n >= maxSlot {
		return errs.New(errs.Argument, "inp", "config", "slot %d out of range [0,%d)", n, maxSlot)
	}
	c.slot[n] = v
	return nil
}

// IsSet reports whether config[n] was ever assigned a finite value.
func (c *Config) IsSet(n int) bool {
	return !math.IsInf(c.slot[n], 0) && !math.IsNaN(c.slot[n])
}

// named accessors mirroring spec §6's table, for readability at call sites

func (c *Config) Tend() float64    { return c.Get(SlotTend) }
func (c *Config) NCell() int       { return int(c.Get(SlotNCell)) }
func (c *Config) Eps() float64     { return c.Get(SlotEps) }
func (c *Config) Nmax() int        { return int(c.Get(SlotNmax)) }
func (c *Config) Gamma() float64   { return c.Get(SlotGamma) }
func (c *Config) GammaB() float64  { return c.Get(SlotGammaB) }
func (c *Config) CFL() float64     { return c.Get(SlotCFL) }
func (c *Config) Lagrangian() bool { return c.Get(SlotCoord) == 1 }
func (c *Config) Order() int       { return int(c.Get(SlotOrder)) }
func (c *Config) Dx() float64      { return c.Get(SlotDx) }
func (c *Config) Dy() float64      { return c.Get(SlotDy) }
func (c *Config) Nx() int          { return int(c.Get(SlotNx)) }
func (c *Config) Ny() int          { return int(c.Get(SlotNy)) }
func (c *Config) Alpha() float64   { return c.Get(SlotAlpha) }

// DtFixed returns the fixed Δt and whether it is set to a finite positive
// value (slot 16 per spec §6).
func (c *Config) DtFixed() (dt float64, fixed bool) {
	dt = c.Get(SlotDtFixed)
	fixed = !math.IsInf(dt, 0) && !math.IsNaN(dt) && dt > 0
	return
}

// DtOut returns the configured output/snapshot interval and whether it was
// ever set to a finite positive value (slot 19); unset means "snapshot only
// at t_end".
func (c *Config) DtOut() (dt float64, set bool) {
	dt = c.Get(SlotDtOut)
	set = !math.IsInf(dt, 0) && !math.IsNaN(dt) && dt > 0
	return
}

// BoundTag returns the encoded boundary tag for the x- or y-sweep (spec §6).
func (c *Config) BoundTag(axis string) int {
	if axis == "y" {
		return int(c.Get(SlotBoundY))
	}
	return int(c.Get(SlotBoundX))
}

// ReadConfig reads a config.txt file of "slot value" lines (blank lines and
// lines starting with '#' are comments) into a fresh Config.
func ReadConfig(path string) (cfg *Config, err error) {
	f, e := os.Open(path)
	if e != nil {
		return nil, errs.New(errs.IO, "inp", "config", "cannot open %q: %v", path, e)
	}
	defer f.Close()

	cfg = NewConfig()
	sc := bufio.NewScanner(f)
	lineno := 0
	for sc.Scan() {
		lineno++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, errs.New(errs.IO, "inp", "config", "%s:%d: expected \"slot value\", got %q", path, lineno, line)
		}
		n, e := strconv.Atoi(fields[0])
		if e != nil {
			return nil, errs.New(errs.IO, "inp", "config", "%s:%d: bad slot number %q", path, lineno, fields[0])
		}
		v, e := strconv.ParseFloat(fields[1], 64)
		if e != nil {
			return nil, errs.New(errs.IO, "inp", "config", "%s:%d: bad value %q", path, lineno, fields[1])
		}
		if err = cfg.Set(n, v); err != nil {
			return nil, err
		}
	}
	if e := sc.Err(); e != nil {
		return nil, errs.New(errs.IO, "inp", "config", "error reading %q: %v", path, e)
	}
	io.Pf("> config read from %s\n", path)
	return cfg, nil
}

// ParseOverride parses a CLI "n=C" pair and applies it to cfg.
func ParseOverride(cfg *Config, pair string) (err error) {
	parts := strings.SplitN(pair, "=", 2)
	if len(parts) != 2 {
		return errs.New(errs.Argument, "inp", "cli", "bad override %q, expected n=C", pair)
	}
	n, e := strconv.Atoi(strings.TrimSpace(parts[0]))
	if e != nil {
		return errs.New(errs.Argument, "inp", "cli", "bad slot in override %q", pair)
	}
	v, e := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if e != nil {
		return errs.New(errs.Argument, "inp", "cli", "bad value in override %q", pair)
	}
	return cfg.Set(n, v)
}

// Capability is a tagged variant over field layouts, replacing the source's
// preprocessor switches (MULTIFLUID_BASICS, MULTIPHASE_BASICS, ...), see
// spec §9.
type Capability int

const (
	SingleFluid Capability = iota
	MultiFluid
	MultiPhase
)

func (cp Capability) String() string {
	switch cp {
	case MultiFluid:
		return "MultiFluid"
	case MultiPhase:
		return "MultiPhase"
	}
	return "SingleFluid"
}
