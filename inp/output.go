// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cpmech/gosl/io"

	"github.com/ximlel/1D-LAG/errs"
)

// Snapshot is one time-indexed record of the evolving field, as produced by
// the controller's S5 (Record) state, see spec §4.7.
type Snapshot struct {
	T       float64
	CPUSecs float64
	Field   *Field
}

// WriteHistory writes grid positions plus one set of field files per
// snapshot under dir/step_<k>/, and a single cpu_time.txt summary. This is
// the "output collaborator" of spec §1 — out of the core's scope except at
// this interface, implemented here so the module is runnable end to end.
func WriteHistory(dir string, grid *Grid, snaps []Snapshot) (err error) {
	if e := os.MkdirAll(dir, 0755); e != nil {
		return errs.New(errs.IO, "inp", "output", "cannot create %q: %v", dir, e)
	}

	if e := writeVector(filepath.Join(dir, "X.txt"), grid.X); e != nil {
		return e
	}

	cpu := make([]float64, len(snaps))
	for k, snap := range snaps {
		stepdir := filepath.Join(dir, "step_"+strconv.Itoa(k))
		if e := os.MkdirAll(stepdir, 0755); e != nil {
			return errs.New(errs.IO, "inp", "output", "cannot create %q: %v", stepdir, e)
		}
		if e := writeVector(filepath.Join(stepdir, "RHO.txt"), snap.Field.Rho); e != nil {
			return e
		}
		if e := writeVector(filepath.Join(stepdir, "U.txt"), snap.Field.U); e != nil {
			return e
		}
		if e := writeVector(filepath.Join(stepdir, "P.txt"), snap.Field.P); e != nil {
			return e
		}
		if snap.Field.V != nil {
			if e := writeVector(filepath.Join(stepdir, "V.txt"), snap.Field.V); e != nil {
				return e
			}
		}
		if snap.Field.Gamma != nil {
			if e := writeVector(filepath.Join(stepdir, "gamma.txt"), snap.Field.Gamma); e != nil {
				return e
			}
		}
		if snap.Field.Za != nil {
			if e := writeVector(filepath.Join(stepdir, "Z_a.txt"), snap.Field.Za); e != nil {
				return e
			}
			writeVector(filepath.Join(stepdir, "RHO_b.txt"), snap.Field.RhoB)
			writeVector(filepath.Join(stepdir, "U_b.txt"), snap.Field.UB)
			writeVector(filepath.Join(stepdir, "P_b.txt"), snap.Field.PB)
		}
		timefile := filepath.Join(stepdir, "t.txt")
		io.WriteFileD(filepath.Dir(timefile), filepath.Base(timefile), fmt.Sprintf("%.15g\n", snap.T))
		cpu[k] = snap.CPUSecs
	}
	return writeVector(filepath.Join(dir, "cpu_time.txt"), cpu)
}

func writeVector(path string, v []float64) (err error) {
	buf := ""
	for _, x := range v {
		buf += io.Sf("%.15g\n", x)
	}
	io.WriteFileD(filepath.Dir(path), filepath.Base(path), buf)
	return nil
}
