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

package tile

import "sync"

// store holds the tiles of one global matrix together with its
// distribution. All Matrix views over the same matrix share one store;
// the views themselves carry only shape metadata and are copied by value.
//
// Tiles are owned by exactly one rank under a 2D block-cyclic map:
//
//	owner(ti, tj) = (ti mod p)*q + (tj mod q)
//
// A store materializes tiles for its own rank only. The distributed
// transport that would move remote tiles is an external collaborator;
// this store is the single-process reference implementation used by the
// algorithms, the driver, and the tests.
type store[T Scalar] struct {
	m, n int // global extent
	nb   int // block size
	p, q int // process grid
	rank int // rank this store materializes tiles for

	mu    sync.RWMutex
	tiles map[tileKey]*Tile[T]
}

type tileKey struct{ i, j int }

// Tile is one materialized block of matrix elements, stored row-major.
// The host copy is authoritative; device entries model accelerator
// placement for the Devices execution target.
type Tile[T Scalar] struct {
	mb, nb int
	stride int
	data   []T

	device map[int][]T
	hold   map[int]int
}

// Block is a dense window into a local tile, handed to kernel code.
// Data[r*Stride+c] addresses element (r, c) of the untransposed window;
// Op records how the owning view wants the window interpreted.
type Block[T Scalar] struct {
	Rows, Cols int
	Stride     int
	Data       []T
	Op         Op
}

// Matrix is a lightweight view of a tile matrix: a shared reference to
// the tile store plus an independent, inclusive element range [r0, r1] x
// [c0, c1] in root coordinates and a transposition flag. Copying a
// Matrix copies shape metadata only, so local reshaping inside an
// algorithm never mutates the caller's view.
type Matrix[T Scalar] struct {
	g  *store[T]
	r0 int
	r1 int
	c0 int
	c1 int
	op Op
}

// NewMatrix creates an m x n tile matrix with block size nb, distributed
// over a p x q rank grid, materializing tiles for the given rank.
// No tiles are allocated; see InsertLocalTiles.
func NewMatrix[T Scalar](m, n, nb, p, q, rank int) Matrix[T] {
	switch {
	case m < 0 || n < 0:
		panic("tile: negative matrix extent")
	case nb < 1:
		panic("tile: block size must be positive")
	case p < 1 || q < 1:
		panic("tile: process grid must be positive")
	case rank < 0 || rank >= p*q:
		panic("tile: rank outside process grid")
	}
	g := &store[T]{
		m: m, n: n, nb: nb,
		p: p, q: q, rank: rank,
		tiles: make(map[tileKey]*Tile[T]),
	}
	return Matrix[T]{g: g, r0: 0, r1: m - 1, c0: 0, c1: n - 1}
}

// NewLocalMatrix creates an undistributed m x n tile matrix (1x1 grid)
// with all tiles allocated.
func NewLocalMatrix[T Scalar](m, n, nb int) Matrix[T] {
	a := NewMatrix[T](m, n, nb, 1, 1, 0)
	a.InsertLocalTiles()
	return a
}

func (g *store[T]) owner(ti, tj int) int {
	return (ti%g.p)*g.q + tj%g.q
}

func (g *store[T]) tileRows(ti int) int {
	r := g.m - ti*g.nb
	if r > g.nb {
		r = g.nb
	}
	return r
}

func (g *store[T]) tileCols(tj int) int {
	c := g.n - tj*g.nb
	if c > g.nb {
		c = g.nb
	}
	return c
}

// insert allocates the full root tile (ti, tj) if absent, returning it.
func (g *store[T]) insert(ti, tj int) *Tile[T] {
	g.mu.Lock()
	defer g.mu.Unlock()
	k := tileKey{ti, tj}
	if t, ok := g.tiles[k]; ok {
		return t
	}
	mb, nb := g.tileRows(ti), g.tileCols(tj)
	t := &Tile[T]{
		mb: mb, nb: nb, stride: nb,
		data:   make([]T, mb*nb),
		device: make(map[int][]T),
		hold:   make(map[int]int),
	}
	g.tiles[k] = t
	return t
}

func (g *store[T]) lookup(ti, tj int) *Tile[T] {
	g.mu.RLock()
	t := g.tiles[tileKey{ti, tj}]
	g.mu.RUnlock()
	return t
}

func (g *store[T]) erase(ti, tj int) {
	g.mu.Lock()
	delete(g.tiles, tileKey{ti, tj})
	g.mu.Unlock()
}

// base returns the view with the transposition flag stripped, so that
// row/column helpers can work in root coordinates.
func (a Matrix[T]) base() Matrix[T] {
	a.op = NoTrans
	return a
}

// M returns the global row extent of the view.
func (a Matrix[T]) M() int {
	if a.op != NoTrans {
		return a.c1 - a.c0 + 1
	}
	return a.r1 - a.r0 + 1
}

// N returns the global column extent of the view.
func (a Matrix[T]) N() int {
	if a.op != NoTrans {
		return a.r1 - a.r0 + 1
	}
	return a.c1 - a.c0 + 1
}

// Mt returns the number of tile rows of the view.
func (a Matrix[T]) Mt() int {
	if a.op != NoTrans {
		return a.base().Nt()
	}
	if a.r1 < a.r0 {
		return 0
	}
	return a.r1/a.g.nb - a.r0/a.g.nb + 1
}

// Nt returns the number of tile columns of the view.
func (a Matrix[T]) Nt() int {
	if a.op != NoTrans {
		return a.base().Mt()
	}
	if a.c1 < a.c0 {
		return 0
	}
	return a.c1/a.g.nb - a.c0/a.g.nb + 1
}

// rowRange returns the inclusive root element range covered by local
// tile row i.
func (a Matrix[T]) rowRange(i int) (int, int) {
	rt := a.r0/a.g.nb + i
	lo := rt * a.g.nb
	if lo < a.r0 {
		lo = a.r0
	}
	hi := rt*a.g.nb + a.g.nb - 1
	if hi > a.r1 {
		hi = a.r1
	}
	return lo, hi
}

func (a Matrix[T]) colRange(j int) (int, int) {
	ct := a.c0/a.g.nb + j
	lo := ct * a.g.nb
	if lo < a.c0 {
		lo = a.c0
	}
	hi := ct*a.g.nb + a.g.nb - 1
	if hi > a.c1 {
		hi = a.c1
	}
	return lo, hi
}

// TileMb returns the row extent of tile row i within the view.
func (a Matrix[T]) TileMb(i int) int {
	if a.op != NoTrans {
		return a.base().TileNb(i)
	}
	lo, hi := a.rowRange(i)
	return hi - lo + 1
}

// TileNb returns the column extent of tile column j within the view.
func (a Matrix[T]) TileNb(j int) int {
	if a.op != NoTrans {
		return a.base().TileMb(j)
	}
	lo, hi := a.colRange(j)
	return hi - lo + 1
}

// rootTile maps view tile coordinates to root tile coordinates.
func (a Matrix[T]) rootTile(i, j int) (int, int) {
	return a.r0/a.g.nb + i, a.c0/a.g.nb + j
}

// TileIsLocal reports whether tile (i, j) of the view is owned by the
// store's rank.
func (a Matrix[T]) TileIsLocal(i, j int) bool {
	if a.op != NoTrans {
		i, j = j, i
	}
	ti, tj := a.base().rootTile(i, j)
	return a.g.owner(ti, tj) == a.g.rank
}

// Sub returns the view covering tile rows i1..i2 and tile columns j1..j2
// (inclusive) of this view. An inverted range yields an empty view.
func (a Matrix[T]) Sub(i1, i2, j1, j2 int) Matrix[T] {
	if a.op != NoTrans {
		s := a.base().Sub(j1, j2, i1, i2)
		s.op = a.op
		return s
	}
	s := a
	if i2 < i1 || j2 < j1 {
		s.r0, s.r1, s.c0, s.c1 = 0, -1, 0, -1
		return s
	}
	s.r0, _ = a.rowRange(i1)
	_, s.r1 = a.rowRange(i2)
	s.c0, _ = a.colRange(j1)
	_, s.c1 = a.colRange(j2)
	return s
}

// Slice returns the view covering element rows i1..i2 and element
// columns j1..j2 (inclusive), relative to this view. The result shares
// the view's tiling, so boundary tiles may expose partial windows.
func (a Matrix[T]) Slice(i1, i2, j1, j2 int) Matrix[T] {
	if a.op != NoTrans {
		s := a.base().Slice(j1, j2, i1, i2)
		s.op = a.op
		return s
	}
	if i1 < 0 || j1 < 0 || a.r0+i2 > a.r1 || a.c0+j2 > a.c1 {
		panic("tile: slice outside view")
	}
	s := a
	s.r0, s.r1 = a.r0+i1, a.r0+i2
	s.c0, s.c1 = a.c0+j1, a.c0+j2
	return s
}

// SliceRows returns the view covering element rows i1..i2 (inclusive)
// of this view with all of its columns.
func (a Matrix[T]) SliceRows(i1, i2 int) Matrix[T] {
	return a.Slice(i1, i2, 0, a.N()-1)
}

// ConjTranspose returns the conjugate-transposed view. For the real
// scalar types instantiated here this is a plain transpose.
func (a Matrix[T]) ConjTranspose() Matrix[T] {
	switch a.op {
	case NoTrans:
		a.op = ConjTrans
	default:
		a.op = NoTrans
	}
	return a
}

// InsertLocalTiles allocates every locally-owned tile of the view that
// is not yet materialized. Used to create workspace regions on demand.
func (a Matrix[T]) InsertLocalTiles() {
	b := a.base()
	for i := 0; i < b.Mt(); i++ {
		for j := 0; j < b.Nt(); j++ {
			ti, tj := b.rootTile(i, j)
			if b.g.owner(ti, tj) == b.g.rank {
				b.g.insert(ti, tj)
			}
		}
	}
}

// TileErase releases the storage of local tile (i, j) of the view.
// Erasing an absent tile is a no-op.
func (a Matrix[T]) TileErase(i, j int) {
	if a.op != NoTrans {
		i, j = j, i
	}
	ti, tj := a.base().rootTile(i, j)
	a.g.erase(ti, tj)
}

// Block returns the dense window of local tile (i, j). The window is
// always untransposed storage; Op tells the kernel how to interpret it.
// Panics if the tile is not materialized (reading a tile the rank does
// not hold is a caller bug, not a runtime condition).
func (a Matrix[T]) Block(i, j int) Block[T] {
	op := NoTrans
	if a.op != NoTrans {
		i, j = j, i
		op = a.op
	}
	b := a.base()
	ti, tj := b.rootTile(i, j)
	t := b.g.lookup(ti, tj)
	if t == nil {
		panic("tile: block of unmaterialized tile")
	}
	rlo, rhi := b.rowRange(i)
	clo, chi := b.colRange(j)
	roff := rlo - ti*b.g.nb
	coff := clo - tj*b.g.nb
	return Block[T]{
		Rows:   rhi - rlo + 1,
		Cols:   chi - clo + 1,
		Stride: t.stride,
		Data:   t.data[roff*t.stride+coff:],
		Op:     op,
	}
}

// At returns element (i, j) of the view. The element's tile must be
// materialized locally.
func (a Matrix[T]) At(i, j int) T {
	d, off := a.element(i, j)
	return d[off]
}

// Set stores v into element (i, j) of the view.
func (a Matrix[T]) Set(i, j int, v T) {
	d, off := a.element(i, j)
	d[off] = v
}

func (a Matrix[T]) element(i, j int) ([]T, int) {
	if a.op != NoTrans {
		i, j = j, i
	}
	b := a.base()
	r, c := b.r0+i, b.c0+j
	if r < b.r0 || r > b.r1 || c < b.c0 || c > b.c1 {
		panic("tile: element outside view")
	}
	ti, tj := r/b.g.nb, c/b.g.nb
	t := b.g.lookup(ti, tj)
	if t == nil {
		panic("tile: element of unmaterialized tile")
	}
	return t.data, (r-ti*b.g.nb)*t.stride + (c - tj*b.g.nb)
}

// Rank returns the rank this view's store materializes tiles for.
func (a Matrix[T]) Rank() int { return a.g.rank }

// BlockSize returns the tile block size of the underlying matrix.
func (a Matrix[T]) BlockSize() int { return a.g.nb }
