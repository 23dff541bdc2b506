// Copyright 2026 go-tile Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package band

import (
	"github.com/ajroetker/go-tile/kernel"
	"github.com/ajroetker/go-tile/tile"
)

// The three elementary bulge-chasing kernels. Each operates on one
// small window of the band: hebr1 starts a sweep on a diagonal window,
// hebr2 chases the bulge through an off-diagonal window, hebr3 restores
// symmetry on the next diagonal window. Row/column bounds are inclusive.

// hebr1 annihilates the column below the first subdiagonal of the
// symmetric window rows/cols r0..r1 and applies the reflector to the
// trailing block from both sides. Returns the reflector, which spans
// rows r0+1..r1.
func hebr1[T tile.Scalar](h tile.Hermitian[T], r0, r1 int) (tau T, v []T) {
	m := r1 - r0 + 1
	w := packSym(h, r0, m)

	// Column 0 below the diagonal.
	v = make([]T, m-1)
	v[0] = 1
	for k := 2; k < m; k++ {
		v[k-1] = w.buf[k*w.n+0]
	}
	var beta T
	beta, tau = kernel.Larfg(w.buf[1*w.n+0], v[1:])
	w.buf[1*w.n+0] = beta
	for k := 2; k < m; k++ {
		w.buf[k*w.n+0] = 0
	}

	symApply(w.block(1), tau, v)
	w.flush()
	return tau, v
}

// hebr2 applies the incoming reflector v1 to the off-diagonal window
// rows r0..r1, cols c0..c1 from the right, then annihilates the
// window's first column below its first element and applies the new
// reflector from the left. Returns the new reflector, spanning rows
// r0..r1.
func hebr2[T tile.Scalar](tau1 T, v1 []T, h tile.Hermitian[T], r0, r1, c0, c1 int) (tau2 T, v2 []T) {
	m := r1 - r0 + 1
	n := c1 - c0 + 1
	if len(v1) != n {
		panic("band: reflector length does not match window columns")
	}
	w := packGen(h, r0, c0, m, n)

	// A = A - tau1 (A v1) v1ᵀ
	if tau1 != 0 {
		u := make([]T, m)
		kernel.Gemv(1, w.block(), v1, 0, u)
		kernel.Ger(-tau1, u, v1, w.block())
	}

	// Annihilate column 0 below its head.
	v2 = make([]T, m)
	v2[0] = 1
	for k := 1; k < m; k++ {
		v2[k] = w.buf[k*w.n+0]
	}
	var beta T
	beta, tau2 = kernel.Larfg(w.buf[0], v2[1:])
	w.buf[0] = beta
	for k := 1; k < m; k++ {
		w.buf[k*w.n+0] = 0
	}

	// A[:, 1:] = A[:, 1:] - tau2 v2 (v2ᵀ A[:, 1:])
	if tau2 != 0 && n > 1 {
		rest := w.tail(1)
		rest.Op = tile.Trans
		u := make([]T, n-1)
		kernel.Gemv(1, rest, v2, 0, u)
		rest.Op = tile.NoTrans
		kernel.Ger(-tau2, v2, u, rest)
	}

	w.flush()
	return tau2, v2
}

// hebr3 applies the consumed reflector to the symmetric window
// rows/cols r0..r1 from both sides.
func hebr3[T tile.Scalar](tau T, v []T, h tile.Hermitian[T], r0, r1 int) {
	m := r1 - r0 + 1
	if len(v) != m {
		panic("band: reflector length does not match window order")
	}
	if tau == 0 {
		return
	}
	w := packSym(h, r0, m)
	symApply(w.block(0), tau, v)
	w.flush()
}

// symApply updates the symmetric block B in place with the two-sided
// transformation H B H, H = I - tau v vᵀ, via the standard symmetric
// rank-2 form:
//
//	u = tau B v - (tau²/2) (vᵀ B v) v
//	B = B - v uᵀ - u vᵀ
func symApply[T tile.Scalar](b tile.Block[T], tau T, v []T) {
	if tau == 0 || b.Rows == 0 {
		return
	}
	u := make([]T, b.Rows)
	kernel.Symv(tile.Lower, tau, b, v, 0, u)
	alpha := -(tau / 2) * kernel.Dot(u, v)
	kernel.Axpy(alpha, v, u)
	kernel.Syr2(tile.Lower, -1, v, u, b)
}
