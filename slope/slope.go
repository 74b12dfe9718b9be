// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package slope reconstructs piecewise-linear cell slopes from cell
// averages using a minmod-family limiter, see spec §4.3.
package slope

import "math"

// Minmod2 returns 0 if a·b ≤ 0, else sign(a)·min(|a|,|b|), see spec §4.3.
func Minmod2(a, b float64) float64 {
	if a*b <= 0 {
		return 0
	}
	m := math.Min(math.Abs(a), math.Abs(b))
	if a < 0 {
		return -m
	}
	return m
}

// Minmod3 extends Minmod2 to three arguments requiring a common sign.
func Minmod3(a, b, c float64) float64 {
	if a > 0 && b > 0 && c > 0 {
		return math.Min(a, math.Min(b, c))
	}
	if a < 0 && b < 0 && c < 0 {
		return math.Max(a, math.Max(b, c))
	}
	return 0
}

// Field is one variable's cell averages plus its left/right ghost values,
// the minimal input needed to reconstruct slopes for that variable.
type Field struct {
	V       []float64 // cell averages, len n
	GhostL  float64
	GhostR  float64
	DxL     float64 // width of the ghost cell left of cell 0
	Dx      []float64
	DxR     float64 // width of the ghost cell right of cell n-1
}

// Reconstruct computes one slope per cell for a single variable, per
// spec §4.3. first selects the k=1 regime (plain minmod2 of neighbor
// differences); otherwise the later-step regime blends the current
// neighbor differences (scaled by alpha) with the previous step's slope
// via minmod3.
func Reconstruct(f Field, prev []float64, alpha float64, first bool) []float64 {
	n := len(f.V)
	out := make([]float64, n)
	for j := 0; j < n; j++ {
		var left, dxL, right, dxR float64
		if j == 0 {
			left, dxL = f.GhostL, f.DxL
		} else {
			left, dxL = f.V[j-1], f.Dx[j-1]
		}
		if j == n-1 {
			right, dxR = f.GhostR, f.DxR
		} else {
			right, dxR = f.V[j+1], f.Dx[j+1]
		}
		sL := (f.V[j] - left) / (0.5 * (f.Dx[j] + dxL))
		sR := (right - f.V[j]) / (0.5 * (f.Dx[j] + dxR))
		if first || prev == nil {
			out[j] = Minmod2(sL, sR)
		} else {
			out[j] = Minmod3(alpha*sL, alpha*sR, prev[j])
		}
	}
	return out
}
