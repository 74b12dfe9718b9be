// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"bufio"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ximlel/1D-LAG/errs"
)

// varDescriptor replaces the source's STR_FLU_INI(var) macro family: a
// static list of (name, field-accessor, required) triples walked once at
// load time instead of generated per-variable code, see spec §9.
type varDescriptor struct {
	name     string
	set      func(v []float64)
	required bool
}

// Grid is the 1D/radial cell-boundary geometry of spec §3. Cell j occupies
// [X[j], X[j+1]]; M is the radial dimensionality (1 planar, 2 cylindrical,
// 3 spherical) and is 1 for a plain Cartesian 1D grid.
type Grid struct {
	X []float64 // m+1 boundary positions
	M int
}

// NCells returns the number of cells (len(X)-1).
func (g *Grid) NCells() int { return len(g.X) - 1 }

// Dx returns the width of cell j.
func (g *Grid) Dx(j int) float64 { return g.X[j+1] - g.X[j] }

// UniformGrid builds an evenly spaced grid of n cells from x0 with spacing dx.
func UniformGrid(x0 float64, dx float64, n, m int) *Grid {
	x := make([]float64, n+1)
	for i := range x {
		x[i] = x0 + float64(i)*dx
	}
	return &Grid{X: x, M: m}
}

// Field holds one time snapshot of the cell-centered primitive variables of
// spec §3. Phase-b and Z_a are populated only under MultiPhase; Gamma is
// per-cell only under MultiFluid/MultiPhase, otherwise GammaUniform is used.
type Field struct {
	Cap Capability

	Rho, U, V, P []float64 // primitive state, len == NCells
	Gamma        []float64 // per-cell γ, nil unless multi-fluid/multi-phase
	GammaUniform float64   // γ when Gamma == nil

	// multi-phase second state
	RhoB, UB, VB, PB []float64
	Za               []float64 // volume fraction of phase a, in [0,1]

	// scalar tracer path (single second-phase quantity, non-multiphase)
	Phi []float64
}

// NewField allocates a Field of n cells for the given capability.
func NewField(n int, cap Capability, gamma float64) *Field {
	f := &Field{Cap: cap, GammaUniform: gamma}
	f.Rho = make([]float64, n)
	f.U = make([]float64, n)
	f.P = make([]float64, n)
	switch cap {
	case MultiFluid:
		f.Gamma = make([]float64, n)
	case MultiPhase:
		f.Gamma = make([]float64, n)
		f.RhoB = make([]float64, n)
		f.UB = make([]float64, n)
		f.PB = make([]float64, n)
		f.Za = make([]float64, n)
	}
	return f
}

// N returns the number of cells in the field.
func (f *Field) N() int { return len(f.Rho) }

// GammaAt returns γ for cell j, whether per-cell or uniform.
func (f *Field) GammaAt(j int) float64 {
	if f.Gamma != nil {
		return f.Gamma[j]
	}
	return f.GammaUniform
}

// Clone returns a deep copy of f, used when the controller snapshots the
// current working field into permanent storage.
func (f *Field) Clone() *Field {
	g := &Field{Cap: f.Cap, GammaUniform: f.GammaUniform}
	g.Rho = append([]float64(nil), f.Rho...)
	g.U = append([]float64(nil), f.U...)
	if f.V != nil {
		g.V = append([]float64(nil), f.V...)
	}
	g.P = append([]float64(nil), f.P...)
	if f.Gamma != nil {
		g.Gamma = append([]float64(nil), f.Gamma...)
	}
	if f.RhoB != nil {
		g.RhoB = append([]float64(nil), f.RhoB...)
		g.UB = append([]float64(nil), f.UB...)
		g.PB = append([]float64(nil), f.PB...)
		g.Za = append([]float64(nil), f.Za...)
	}
	if f.Phi != nil {
		g.Phi = append([]float64(nil), f.Phi...)
	}
	return g
}

// LoadField reads RHO/U/P (and V/PHI/gamma/Z_a/RHO_b/U_b/P_b when present)
// from whitespace-separated v.txt (fallback v.dat) files under dir, per
// spec §6. All variables present must agree in cell count; mismatch is an
// IO error.
func LoadField(dir string, cap Capability, gamma float64) (f *Field, err error) {
	f = &Field{Cap: cap, GammaUniform: gamma}
	n := -1

	descs := []varDescriptor{
		{"RHO", func(v []float64) { f.Rho = v }, true},
		{"U", func(v []float64) { f.U = v }, true},
		{"P", func(v []float64) { f.P = v }, true},
		{"V", func(v []float64) { f.V = v }, false},
		{"PHI", func(v []float64) { f.Phi = v }, false},
		{"gamma", func(v []float64) { f.Gamma = v }, cap != SingleFluid},
		{"Z_a", func(v []float64) { f.Za = v }, cap == MultiPhase},
		{"RHO_b", func(v []float64) { f.RhoB = v }, cap == MultiPhase},
		{"U_b", func(v []float64) { f.UB = v }, cap == MultiPhase},
		{"P_b", func(v []float64) { f.PB = v }, cap == MultiPhase},
	}

	for _, d := range descs {
		vals, count, found, e := readVarFile(dir, d.name)
		if e != nil {
			return nil, e
		}
		if !found {
			if d.required {
				return nil, errs.New(errs.IO, "inp", "field", "missing required field file %s.txt/.dat in %s", d.name, dir)
			}
			continue
		}
		if n < 0 {
			n = count
		} else if count != n {
			return nil, errs.New(errs.IO, "inp", "field", "variable count mismatch: %s has %d cells, expected %d", d.name, count, n)
		}
		d.set(vals)
	}
	if n < 0 {
		return nil, errs.New(errs.IO, "inp", "field", "no field files found in %s", dir)
	}
	return f, nil
}

// readVarFile reads name.txt (fallback name.dat) from dir as whitespace
// separated doubles, row-major. Returns found=false if neither file exists.
func readVarFile(dir, name string) (vals []float64, n int, found bool, err error) {
	for _, ext := range []string{".txt", ".dat"} {
		path := filepath.Join(dir, name+ext)
		f, e := os.Open(path)
		if e != nil {
			continue
		}
		defer f.Close()
		sc := bufio.NewScanner(f)
		sc.Buffer(make([]byte, 1024*1024), 64*1024*1024)
		sc.Split(bufio.ScanWords)
		for sc.Scan() {
			tok := strings.TrimSpace(sc.Text())
			if tok == "" {
				continue
			}
			v, e := strconv.ParseFloat(tok, 64)
			if e != nil {
				return nil, 0, true, errs.New(errs.IO, "inp", "field", "bad value %q in %s", tok, path)
			}
			vals = append(vals, v)
		}
		if e := sc.Err(); e != nil {
			return nil, 0, true, errs.New(errs.IO, "inp", "field", "error reading %s: %v", path, e)
		}
		for _, v := range vals {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, 0, true, errs.New(errs.IO, "inp", "field", "non-finite value in %s", path)
			}
		}
		return vals, len(vals), true, nil
	}
	return nil, 0, false, nil
}
