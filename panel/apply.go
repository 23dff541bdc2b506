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

// Package panel applies blocked Householder transformations, stored in
// compact WY form, to distributed tile matrices.
package panel

import (
	"github.com/ajroetker/go-tile/kernel"
	"github.com/ajroetker/go-tile/tile"
)

// ApplyQ multiplies C in place by the orthogonal factor Q of a compact
// WY representation (V, T):
//
//	C = op(Q) C   for side == Left,
//	C = C op(Q)   for side == Right,
//
// where op(Q) = I - Vᴴ op(T) V. V holds the Householder vectors row-wise
// in its upper triangle with an implicit unit diagonal (this corresponds
// to larfb with direct = Forward, storev = Rowwise); T is the upper
// triangular coupling factor of the same block extent.
//
// V and T must each be a single block row; V's tile columns must match
// C's tile rows (Left) or tile columns (Right). W is scratch with the
// same tile grid and distribution as C; its workspace tiles are
// allocated on entry and erased before return. A rank owning no tiles
// of C returns immediately. The call does not return until every task
// it issued has completed, so callers may chain updates back to back.
func ApplyQ[T tile.Scalar](side tile.Side, op tile.Op, V, Tf, C, W tile.Matrix[T], opts ...tile.Option) {
	o := tile.NewOptions(opts...)

	mt := C.Mt()
	nt := C.Nt()
	switch {
	case mt < 1 || nt < 1:
		panic("panel: operand must have at least one tile row and column")
	case V.Mt() != 1 || Tf.Mt() != 1:
		panic("panel: reflector factors must be a single block row")
	case W.Mt() != mt || W.Nt() != nt:
		panic("panel: workspace tile grid must match operand")
	}

	if side == tile.Left {
		applyLeft(op, V, Tf, C, W, o)
	} else {
		applyRight(op, V, Tf, C, W, o)
	}
}

// applyLeft computes op(Q) C = C - Vᴴ op(T) V C in three phases:
//
//	1. W = V C
//	2. W = op(T) W
//	3. C = C - Vᴴ W
func applyLeft[T tile.Scalar](op tile.Op, V, Tf, C, W tile.Matrix[T], o tile.Options) {
	host := o.HostExecutor()
	ex := o.Executor()
	one := T(1)

	mt, nt := C.Mt(), C.Nt()
	if V.Nt() != mt {
		panic("panel: reflector extent must match operand tile rows")
	}

	// Tile rows of C with at least one local tile. Empty means this
	// rank holds no share of the operand: a no-op, not an error.
	var rows []int
	for i := 0; i < mt; i++ {
		for j := 0; j < nt; j++ {
			if C.TileIsLocal(i, j) {
				rows = append(rows, i)
				break
			}
		}
	}
	if len(rows) == 0 {
		return
	}

	// This rank's first (top-most) local row of V holds the triangular
	// tile.
	first := rows[0]

	// Workspace row congruent with the local operand rows.
	Wr := W.Sub(first, first, 0, nt-1)
	Wr.InsertLocalTiles()

	// V = [ V0  V0b  V1 ]
	// V0  is the triangular part (mb x mb)
	// V0b is the rectangular part, non-empty only if V0 is a wide
	//     trapezoid (nb > mb)
	// V1  is the remaining tiles
	V0 := V.Sub(0, 0, first, first)
	mb := V0.TileMb(0)
	nb := V0.TileNb(0)

	T0 := Tf.Sub(0, 0, first, first)
	mn := min(mb, nb)
	T0 = T0.Slice(0, mn-1, 0, mn-1)

	// C = [ C0  ]
	//     [ C0b ]  non-empty only if V0 is a wide trapezoid
	//     [ C1  ]
	C0 := C.Sub(first, first, 0, nt-1)
	C0.TileGetAllForWriting(tile.HostDevice)

	// Householder vectors occupy only the first min(mb, nb) rows of V.
	// A tall V0 (mb > nb) arises at a block-size boundary; restrict V
	// to its first nb rows before anything else.
	if mb > nb {
		V = V.SliceRows(0, nb-1)
		V0 = V.Sub(0, 0, first, first)
		mb = nb
	}

	// A wide trapezoid V0 (mb < nb) is split into a square triangular
	// part and a rectangular remainder; T, C, and W split to match.
	// The triangular multiply only accepts square operands.
	trapezoid := mb < nb
	var V0b, C0b tile.Matrix[T]
	if trapezoid {
		n := C0.N()
		V0b = V0.Slice(0, mb-1, mb, nb-1)
		V0 = V0.Slice(0, mb-1, 0, mb-1)
		T0 = T0.Slice(0, mb-1, 0, mb-1)
		C0b = C0.Slice(mb, nb-1, 0, n-1)
		C0 = C0.Slice(0, mb-1, 0, n-1)
		Wr = Wr.Slice(0, mb-1, 0, n-1)
	}

	V0tr := tile.NewTriangular(tile.Upper, tile.Unit, V0)
	T0tr := tile.NewTriangular(tile.Upper, tile.NonUnit, T0)
	if op == tile.NoTrans {
		T0tr = T0tr.ConjTranspose()
	}

	// 1. W = V C
	kernel.Copy(host, C0, Wr)
	kernel.Trmm(host, tile.Left, one, V0tr, Wr)

	if trapezoid {
		// W += V0b C0b
		kernel.Gemm(host, one, V0b, C0b, one, Wr)
	}

	// W += V1 C1, one general multiply per remaining local row.
	for _, row := range rows[1:] {
		Ci := C.Sub(row, row, 0, nt-1)
		if o.Target == tile.Devices {
			Ci.TileGetAndHoldAllOnDevices(o.Session.NumDevices)
		}
		kernel.Gemm(ex, one, V.Sub(0, 0, row, row), Ci, one, Wr)
		if o.Target == tile.Devices {
			Ci.TileReleaseAllOnDevices()
		}
	}

	// 2. W = op(T0) W; op is already applied to T0tr.
	kernel.Trmm(host, tile.Left, one, T0tr, Wr)

	// 3. C = C - Vᴴ W
	if len(rows) > 1 {
		// C1 -= V1ᴴ W
		kernel.Gemm(ex,
			-one, V.Sub(0, 0, rows[1], mt-1).ConjTranspose(), Wr,
			one, C.Sub(rows[1], mt-1, 0, nt-1))
	}

	if trapezoid {
		// C0b -= V0bᴴ W
		kernel.Gemm(host, -one, V0b.ConjTranspose(), Wr, one, C0b)
	}

	// W = V0ᴴ W
	kernel.Trmm(host, tile.Left, one, V0tr.ConjTranspose(), Wr)

	// C0 -= W
	kernel.Geadd(host, -one, Wr, one, C0)

	// Free workspace.
	for j := 0; j < Wr.Nt(); j++ {
		if Wr.TileIsLocal(0, j) {
			Wr.TileErase(0, j)
		}
	}
}

// applyRight computes C op(Q) = C - C Vᴴ op(T) V in three phases:
//
//	1. W = C Vᴴ
//	2. W = W op(T)
//	3. C = C - W V
func applyRight[T tile.Scalar](op tile.Op, V, Tf, C, W tile.Matrix[T], o tile.Options) {
	host := o.HostExecutor()
	ex := o.Executor()
	one := T(1)

	mt, nt := C.Mt(), C.Nt()
	if V.Nt() != nt {
		panic("panel: reflector extent must match operand tile columns")
	}

	// Tile columns of C with at least one local tile.
	var cols []int
	for j := 0; j < nt; j++ {
		for i := 0; i < mt; i++ {
			if C.TileIsLocal(i, j) {
				cols = append(cols, j)
				break
			}
		}
	}
	if len(cols) == 0 {
		return
	}

	// This rank's first (left-most) local column of V holds the
	// triangular tile.
	first := cols[0]

	Wc := W.Sub(0, mt-1, first, first)
	Wc.InsertLocalTiles()

	V0 := V.Sub(0, 0, first, first)
	mb := V0.TileMb(0)
	nb := V0.TileNb(0)

	T0 := Tf.Sub(0, 0, first, first)
	mn := min(mb, nb)
	T0 = T0.Slice(0, mn-1, 0, mn-1)

	// C = [ C0  C0b  C1 ], C0b non-empty only if V0 is a wide trapezoid.
	C0 := C.Sub(0, mt-1, first, first)
	C0.TileGetAllForWriting(tile.HostDevice)

	if mb > nb {
		V = V.SliceRows(0, nb-1)
		V0 = V.Sub(0, 0, first, first)
		mb = nb
	}

	trapezoid := mb < nb
	var V0b, C0b tile.Matrix[T]
	if trapezoid {
		m := C0.M()
		V0b = V0.Slice(0, mb-1, mb, nb-1)
		V0 = V0.Slice(0, mb-1, 0, mb-1)
		T0 = T0.Slice(0, mb-1, 0, mb-1)
		C0b = C0.Slice(0, m-1, mb, nb-1)
		C0 = C0.Slice(0, m-1, 0, mb-1)
		Wc = Wc.Slice(0, m-1, 0, mb-1)
	}

	V0tr := tile.NewTriangular(tile.Upper, tile.Unit, V0)
	T0tr := tile.NewTriangular(tile.Upper, tile.NonUnit, T0)
	if op == tile.NoTrans {
		T0tr = T0tr.ConjTranspose()
	}

	// 1. W = C Vᴴ
	kernel.Copy(host, C0, Wc)
	kernel.Trmm(host, tile.Right, one, V0tr.ConjTranspose(), Wc)

	if trapezoid {
		// W += C0b V0bᴴ
		kernel.Gemm(host, one, C0b, V0b.ConjTranspose(), one, Wc)
	}

	// W += C1 V1ᴴ, one general multiply per remaining local column.
	for _, col := range cols[1:] {
		Ci := C.Sub(0, mt-1, col, col)
		if o.Target == tile.Devices {
			Ci.TileGetAndHoldAllOnDevices(o.Session.NumDevices)
		}
		kernel.Gemm(ex, one, Ci, V.Sub(0, 0, col, col).ConjTranspose(), one, Wc)
		if o.Target == tile.Devices {
			Ci.TileReleaseAllOnDevices()
		}
	}

	// 2. W = W op(T0); op is already applied to T0tr.
	kernel.Trmm(host, tile.Right, one, T0tr, Wc)

	// 3. C = C - W V
	if len(cols) > 1 {
		// C1 -= W V1
		kernel.Gemm(ex,
			-one, Wc, V.Sub(0, 0, cols[1], nt-1),
			one, C.Sub(0, mt-1, cols[1], nt-1))
	}

	if trapezoid {
		// C0b -= W V0b
		kernel.Gemm(host, -one, Wc, V0b, one, C0b)
	}

	// W = W V0
	kernel.Trmm(host, tile.Right, one, V0tr, Wc)

	// C0 -= W
	kernel.Geadd(host, -one, Wc, one, C0)

	// Free workspace.
	for i := 0; i < Wc.Mt(); i++ {
		if Wc.TileIsLocal(i, 0) {
			Wc.TileErase(i, 0)
		}
	}
}
