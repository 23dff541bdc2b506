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

import "github.com/ajroetker/go-tile/tile"

// Windows are small packed copies of band regions. A window may span
// tile boundaries, so it is gathered into contiguous scratch, operated
// on with dense kernels, and scattered back. The ordering protocol
// guarantees that concurrently executing steps touch disjoint regions,
// so gather and scatter need no locking.

// symWindow is a square window centered on the diagonal. The packed
// copy mirrors the stored lower triangle into a full symmetric block so
// dense kernels can use it either way; scatter writes the lower
// triangle back.
type symWindow[T tile.Scalar] struct {
	h   tile.Hermitian[T]
	off int
	n   int
	buf []T
}

func packSym[T tile.Scalar](h tile.Hermitian[T], off, n int) symWindow[T] {
	w := symWindow[T]{h: h, off: off, n: n, buf: make([]T, n*n)}
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			v := h.At(off+i, off+j)
			w.buf[i*n+j] = v
			w.buf[j*n+i] = v
		}
	}
	return w
}

func (w symWindow[T]) flush() {
	for i := 0; i < w.n; i++ {
		for j := 0; j <= i; j++ {
			w.h.Set(w.off+i, w.off+j, w.buf[i*w.n+j])
		}
	}
}

// block returns the dense view of the trailing sub-window starting at
// (k, k).
func (w symWindow[T]) block(k int) tile.Block[T] {
	return tile.Block[T]{
		Rows: w.n - k, Cols: w.n - k, Stride: w.n,
		Data: w.buf[k*w.n+k:],
	}
}

// genWindow is a rectangular window strictly below the diagonal.
type genWindow[T tile.Scalar] struct {
	h      tile.Hermitian[T]
	r0, c0 int
	m, n   int
	buf    []T
}

func packGen[T tile.Scalar](h tile.Hermitian[T], r0, c0, m, n int) genWindow[T] {
	w := genWindow[T]{h: h, r0: r0, c0: c0, m: m, n: n, buf: make([]T, m*n)}
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			w.buf[i*n+j] = h.At(r0+i, c0+j)
		}
	}
	return w
}

func (w genWindow[T]) flush() {
	for i := 0; i < w.m; i++ {
		for j := 0; j < w.n; j++ {
			w.h.Set(w.r0+i, w.c0+j, w.buf[i*w.n+j])
		}
	}
}

func (w genWindow[T]) block() tile.Block[T] {
	return tile.Block[T]{Rows: w.m, Cols: w.n, Stride: w.n, Data: w.buf}
}

// tail returns the dense view of columns k onward.
func (w genWindow[T]) tail(k int) tile.Block[T] {
	return tile.Block[T]{Rows: w.m, Cols: w.n - k, Stride: w.n, Data: w.buf[k:]}
}
