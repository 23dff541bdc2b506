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

import "testing"

func TestNewMatrixDims(t *testing.T) {
	a := NewLocalMatrix[float64](10, 7, 4)
	if a.M() != 10 {
		t.Errorf("M() = %d, want 10", a.M())
	}
	if a.N() != 7 {
		t.Errorf("N() = %d, want 7", a.N())
	}
	if a.Mt() != 3 {
		t.Errorf("Mt() = %d, want 3", a.Mt())
	}
	if a.Nt() != 2 {
		t.Errorf("Nt() = %d, want 2", a.Nt())
	}
	// Edge tiles are short.
	if mb := a.TileMb(2); mb != 2 {
		t.Errorf("TileMb(2) = %d, want 2", mb)
	}
	if nb := a.TileNb(1); nb != 3 {
		t.Errorf("TileNb(1) = %d, want 3", nb)
	}
}

func TestNewMatrixPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewMatrix with nb=0 did not panic")
		}
	}()
	NewMatrix[float64](4, 4, 0, 1, 1, 0)
}

func TestAtSetRoundtrip(t *testing.T) {
	a := NewLocalMatrix[float64](9, 9, 4)
	a.InsertLocalTiles()
	for i := 0; i < 9; i++ {
		for j := 0; j < 9; j++ {
			a.Set(i, j, float64(i*9+j))
		}
	}
	for i := 0; i < 9; i++ {
		for j := 0; j < 9; j++ {
			if got := a.At(i, j); got != float64(i*9+j) {
				t.Fatalf("At(%d, %d) = %v, want %v", i, j, got, float64(i*9+j))
			}
		}
	}
}

func TestConjTranspose(t *testing.T) {
	a := NewLocalMatrix[float64](6, 4, 3)
	a.InsertLocalTiles()
	a.Set(5, 1, 42)

	at := a.ConjTranspose()
	if at.M() != 4 || at.N() != 6 {
		t.Errorf("transpose dims = %dx%d, want 4x6", at.M(), at.N())
	}
	if got := at.At(1, 5); got != 42 {
		t.Errorf("At(1, 5) of transpose = %v, want 42", got)
	}
	// Double transpose is the identity view.
	att := at.ConjTranspose()
	if got := att.At(5, 1); got != 42 {
		t.Errorf("At(5, 1) of double transpose = %v, want 42", got)
	}
}

func TestSubAndSlice(t *testing.T) {
	a := NewLocalMatrix[float64](8, 8, 3)
	a.InsertLocalTiles()
	for i := 0; i < 8; i++ {
		for j := 0; j < 8; j++ {
			a.Set(i, j, float64(100*i+j))
		}
	}

	// Sub takes inclusive tile ranges.
	s := a.Sub(1, 2, 0, 1)
	if s.M() != 5 || s.N() != 6 {
		t.Errorf("sub dims = %dx%d, want 5x6", s.M(), s.N())
	}
	if got := s.At(0, 0); got != a.At(3, 0) {
		t.Errorf("sub At(0,0) = %v, want %v", got, a.At(3, 0))
	}

	// Slice takes inclusive element ranges relative to the view.
	sl := s.Slice(1, 3, 2, 4)
	if sl.M() != 3 || sl.N() != 3 {
		t.Errorf("slice dims = %dx%d, want 3x3", sl.M(), sl.N())
	}
	if got := sl.At(0, 0); got != a.At(4, 2) {
		t.Errorf("slice At(0,0) = %v, want %v", got, a.At(4, 2))
	}

	// Writes through a view land in the shared store.
	sl.Set(0, 0, -1)
	if got := a.At(4, 2); got != -1 {
		t.Errorf("after view write, root At(4,2) = %v, want -1", got)
	}

	// Inverted tile range yields an empty view.
	e := a.Sub(2, 1, 0, 0)
	if e.Mt() != 0 {
		t.Errorf("inverted Sub Mt() = %d, want 0", e.Mt())
	}
}

func TestSliceRows(t *testing.T) {
	a := NewLocalMatrix[float64](8, 5, 3)
	a.InsertLocalTiles()
	a.Set(2, 4, 11)
	s := a.SliceRows(2, 6)
	if s.M() != 5 || s.N() != 5 {
		t.Errorf("dims = %dx%d, want 5x5", s.M(), s.N())
	}
	if got := s.At(0, 4); got != 11 {
		t.Errorf("At(0, 4) = %v, want 11", got)
	}
}

func TestSliceUnderTranspose(t *testing.T) {
	a := NewLocalMatrix[float64](6, 4, 3)
	a.InsertLocalTiles()
	a.Set(4, 1, 7)

	sl := a.ConjTranspose().Slice(1, 1, 4, 4)
	if sl.M() != 1 || sl.N() != 1 {
		t.Fatalf("slice dims = %dx%d, want 1x1", sl.M(), sl.N())
	}
	if got := sl.At(0, 0); got != 7 {
		t.Errorf("slice At(0,0) = %v, want 7", got)
	}
}

func TestBlockCyclicOwnership(t *testing.T) {
	// 2x2 process grid; this rank is 0.
	a := NewMatrix[float64](8, 8, 2, 2, 2, 0)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			want := i%2 == 0 && j%2 == 0
			if got := a.TileIsLocal(i, j); got != want {
				t.Errorf("TileIsLocal(%d, %d) = %v, want %v", i, j, got, want)
			}
		}
	}

	// Ownership follows root coordinates through views.
	s := a.Sub(1, 3, 1, 3)
	if s.TileIsLocal(0, 0) {
		t.Error("sub TileIsLocal(0, 0) = true, want false")
	}
	if !s.TileIsLocal(1, 1) {
		t.Error("sub TileIsLocal(1, 1) = false, want true")
	}
}

func TestInsertLocalTilesSkipsRemote(t *testing.T) {
	a := NewMatrix[float64](8, 8, 2, 2, 2, 0)
	a.InsertLocalTiles()
	defer func() {
		if recover() == nil {
			t.Error("Block of remote tile did not panic")
		}
	}()
	a.Block(0, 1)
}

func TestTileErase(t *testing.T) {
	a := NewLocalMatrix[float64](4, 4, 2)
	a.InsertLocalTiles()
	a.TileErase(1, 1)
	defer func() {
		if recover() == nil {
			t.Error("Block of erased tile did not panic")
		}
	}()
	a.Block(1, 1)
}

func TestBlockUnderTranspose(t *testing.T) {
	a := NewLocalMatrix[float64](4, 6, 3)
	a.InsertLocalTiles()
	b := a.ConjTranspose().Block(0, 1)
	if b.Op != Trans {
		t.Errorf("block op = %v, want %v", b.Op, Trans)
	}
	// The untransposed window of root tile (1, 0).
	if b.Rows != 1 || b.Cols != 3 {
		t.Errorf("block dims = %dx%d, want 1x3", b.Rows, b.Cols)
	}
}

func TestHermitianMirror(t *testing.T) {
	h := NewLocalHermitian[float64](Lower, 6, 3)
	h.InsertLocalTiles()
	h.Set(4, 1, 5)
	if got := h.At(1, 4); got != 5 {
		t.Errorf("At(1, 4) = %v, want 5 (mirror of stored (4, 1))", got)
	}
	// Writing through the mirror lands in the stored triangle.
	h.Set(2, 5, 9)
	if got := h.At(5, 2); got != 9 {
		t.Errorf("At(5, 2) = %v, want 9", got)
	}
}

func TestTriangularSlice(t *testing.T) {
	a := NewLocalMatrix[float64](5, 5, 5)
	a.InsertLocalTiles()
	tr := NewTriangular(Upper, Unit, a)
	s := tr.Slice(1, 3)
	if s.N() != 3 {
		t.Errorf("sliced triangular N() = %d, want 3", s.N())
	}
	if s.Uplo() != Upper || s.Diag() != Unit {
		t.Errorf("sliced triangular kept uplo=%v diag=%v", s.Uplo(), s.Diag())
	}
}
