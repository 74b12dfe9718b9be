// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_config01_unset_is_inf(tst *testing.T) {

	chk.PrintTitle("config01_unset_is_inf")

	cfg := NewConfig()
	if cfg.IsSet(SlotTend) {
		tst.Fatalf("expected slot %d to be unset", SlotTend)
	}
	if cfg.Tend() <= 1e300 {
		tst.Fatalf("expected +Inf sentinel, got %g", cfg.Tend())
	}
}

func Test_config02_read_file(tst *testing.T) {

	chk.PrintTitle("config02_read_file")

	dir := tst.TempDir()
	path := filepath.Join(dir, "config.txt")
	io.WriteFileD(dir, "config.txt", "# comment\n1 0.2\n4 1e-6\n5 1000\n6 1.4\n7 0.5\n")

	cfg, err := ReadConfig(path)
	if err != nil {
		tst.Fatalf("ReadConfig failed: %v", err)
	}
	chk.Scalar(tst, "t_end", 1e-15, cfg.Tend(), 0.2)
	chk.Scalar(tst, "eps", 1e-15, cfg.Eps(), 1e-6)
	if cfg.Nmax() != 1000 {
		tst.Fatalf("expected Nmax=1000, got %d", cfg.Nmax())
	}
	chk.Scalar(tst, "gamma", 1e-15, cfg.Gamma(), 1.4)
	chk.Scalar(tst, "cfl", 1e-15, cfg.CFL(), 0.5)
}

func Test_config03_override(tst *testing.T) {

	chk.PrintTitle("config03_override")

	cfg := NewConfig()
	if err := ParseOverride(cfg, "7=0.8"); err != nil {
		tst.Fatalf("ParseOverride failed: %v", err)
	}
	chk.Scalar(tst, "cfl override", 1e-15, cfg.CFL(), 0.8)

	if err := ParseOverride(cfg, "bad"); err == nil {
		tst.Fatalf("expected malformed override to fail")
	}
}

func Test_config04_dtfixed(tst *testing.T) {

	chk.PrintTitle("config04_dtfixed")

	cfg := NewConfig()
	if _, fixed := cfg.DtFixed(); fixed {
		tst.Fatalf("expected no fixed dt by default")
	}
	cfg.Set(SlotDtFixed, 0.01)
	dt, fixed := cfg.DtFixed()
	if !fixed {
		tst.Fatalf("expected dt fixed after setting slot %d", SlotDtFixed)
	}
	chk.Scalar(tst, "fixed dt", 1e-15, dt, 0.01)
}
