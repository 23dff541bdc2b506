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

package kernel

import "github.com/ajroetker/go-tile/tile"

// Tile-level primitives. Each call schedules one task per locally-owned
// output tile through the executor and returns only after every task
// has completed; callers sequence dependent phases with consecutive
// calls. Input tiles (a, b) must be resident on the calling rank — the
// distributed layer stages remote tiles before the kernels run.

// Gemm computes c = alpha*op(a)*op(b) + beta*c where a is an mt x 1
// block column of tiles, b a 1 x nt block row, and c mt x nt. Only
// locally-owned tiles of c are updated.
func Gemm[T tile.Scalar](ex tile.Executor, alpha T, a, b tile.Matrix[T], beta T, c tile.Matrix[T]) {
	mt, nt := c.Mt(), c.Nt()
	switch {
	case a.Nt() != 1 || b.Mt() != 1:
		panic("kernel: gemm expects a block column times a block row")
	case a.Mt() != mt || b.Nt() != nt:
		panic("kernel: gemm tile grid mismatch")
	}
	type pair struct{ i, j int }
	var work []pair
	for i := 0; i < mt; i++ {
		for j := 0; j < nt; j++ {
			if c.TileIsLocal(i, j) {
				work = append(work, pair{i, j})
			}
		}
	}
	ex.Run(len(work), func(k int) {
		w := work[k]
		GemmBlock(alpha, a.Block(w.i, 0), b.Block(0, w.j), beta, c.Block(w.i, w.j))
	})
}

// Trmm computes b = alpha*op(a)*b (side Left, b a 1 x nt block row) or
// b = alpha*b*op(a) (side Right, b an mt x 1 block column), where a is
// a single triangular tile.
func Trmm[T tile.Scalar](ex tile.Executor, side tile.Side, alpha T, a tile.Triangular[T], b tile.Matrix[T]) {
	if a.Mt() != 1 || a.Nt() != 1 {
		panic("kernel: trmm triangular factor must be a single tile")
	}
	uplo, diag := a.Uplo(), a.Diag()
	if side == tile.Left {
		if b.Mt() != 1 {
			panic("kernel: trmm left expects a single block row")
		}
		nt := b.Nt()
		var work []int
		for j := 0; j < nt; j++ {
			if b.TileIsLocal(0, j) {
				work = append(work, j)
			}
		}
		ex.Run(len(work), func(k int) {
			TrmmBlock(side, uplo, diag, alpha, a.Block(0, 0), b.Block(0, work[k]))
		})
		return
	}
	if b.Nt() != 1 {
		panic("kernel: trmm right expects a single block column")
	}
	mt := b.Mt()
	var work []int
	for i := 0; i < mt; i++ {
		if b.TileIsLocal(i, 0) {
			work = append(work, i)
		}
	}
	ex.Run(len(work), func(k int) {
		TrmmBlock(side, uplo, diag, alpha, a.Block(0, 0), b.Block(work[k], 0))
	})
}

// Geadd computes b = alpha*a + beta*b tile-wise on locally-owned tiles
// of b. BLAS has no general matrix add, so the windows are combined
// directly.
func Geadd[T tile.Scalar](ex tile.Executor, alpha T, a tile.Matrix[T], beta T, b tile.Matrix[T]) {
	mt, nt := b.Mt(), b.Nt()
	if a.Mt() != mt || a.Nt() != nt {
		panic("kernel: geadd tile grid mismatch")
	}
	type pair struct{ i, j int }
	var work []pair
	for i := 0; i < mt; i++ {
		for j := 0; j < nt; j++ {
			if b.TileIsLocal(i, j) {
				work = append(work, pair{i, j})
			}
		}
	}
	ex.Run(len(work), func(k int) {
		w := work[k]
		src, dst := a.Block(w.i, w.j), b.Block(w.i, w.j)
		if src.Op != tile.NoTrans || dst.Op != tile.NoTrans {
			panic("kernel: geadd operands must be untransposed")
		}
		if src.Rows != dst.Rows || src.Cols != dst.Cols {
			panic("kernel: geadd window shape mismatch")
		}
		for r := 0; r < dst.Rows; r++ {
			srow := src.Data[r*src.Stride : r*src.Stride+src.Cols]
			drow := dst.Data[r*dst.Stride : r*dst.Stride+dst.Cols]
			for c := range drow {
				drow[c] = alpha*srow[c] + beta*drow[c]
			}
		}
	})
}

// Copy copies a into b tile-wise on locally-owned tiles of b.
func Copy[T tile.Scalar](ex tile.Executor, a, b tile.Matrix[T]) {
	mt, nt := b.Mt(), b.Nt()
	if a.Mt() != mt || a.Nt() != nt {
		panic("kernel: copy tile grid mismatch")
	}
	type pair struct{ i, j int }
	var work []pair
	for i := 0; i < mt; i++ {
		for j := 0; j < nt; j++ {
			if b.TileIsLocal(i, j) {
				work = append(work, pair{i, j})
			}
		}
	}
	ex.Run(len(work), func(k int) {
		w := work[k]
		src, dst := a.Block(w.i, w.j), b.Block(w.i, w.j)
		if src.Op != tile.NoTrans || dst.Op != tile.NoTrans {
			panic("kernel: copy operands must be untransposed")
		}
		if src.Rows != dst.Rows || src.Cols != dst.Cols {
			panic("kernel: copy window shape mismatch")
		}
		for r := 0; r < dst.Rows; r++ {
			copy(dst.Data[r*dst.Stride:r*dst.Stride+dst.Cols],
				src.Data[r*src.Stride:r*src.Stride+src.Cols])
		}
	})
}
