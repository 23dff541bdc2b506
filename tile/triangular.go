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

// Triangular reinterprets a square view as a triangular matrix. It is a
// lens: it carries no storage and reads and writes through the
// underlying view.
type Triangular[T Scalar] struct {
	Matrix[T]
	uplo Uplo
	diag Diag
}

// NewTriangular wraps a square view with a triangle designation.
func NewTriangular[T Scalar](uplo Uplo, diag Diag, a Matrix[T]) Triangular[T] {
	if a.M() != a.N() {
		panic("tile: triangular view must be square")
	}
	return Triangular[T]{Matrix: a, uplo: uplo, diag: diag}
}

// Uplo returns which triangle the view designates.
func (t Triangular[T]) Uplo() Uplo { return t.uplo }

// Diag returns whether the diagonal is implicit unit.
func (t Triangular[T]) Diag() Diag { return t.diag }

// ConjTranspose returns the conjugate-transposed triangular view.
func (t Triangular[T]) ConjTranspose() Triangular[T] {
	t.Matrix = t.Matrix.ConjTranspose()
	return t
}

// Slice returns the triangular view of the leading square element range
// i1..i2 (inclusive) of this view.
func (t Triangular[T]) Slice(i1, i2 int) Triangular[T] {
	t.Matrix = t.Matrix.Slice(i1, i2, i1, i2)
	return t
}

// Hermitian reinterprets a square tile matrix as Hermitian with one
// stored triangle. Only lower storage is instantiated by the band
// reduction; element access mirrors through the diagonal.
type Hermitian[T Scalar] struct {
	mat  Matrix[T]
	uplo Uplo
}

// NewHermitian creates an n x n Hermitian tile matrix with the given
// stored triangle, block size, and distribution.
func NewHermitian[T Scalar](uplo Uplo, n, nb, p, q, rank int) Hermitian[T] {
	return Hermitian[T]{mat: NewMatrix[T](n, n, nb, p, q, rank), uplo: uplo}
}

// NewLocalHermitian creates an undistributed Hermitian matrix with the
// stored triangle's tiles allocated.
func NewLocalHermitian[T Scalar](uplo Uplo, n, nb int) Hermitian[T] {
	h := NewHermitian[T](uplo, n, nb, 1, 1, 0)
	h.InsertLocalTiles()
	return h
}

// N returns the matrix order.
func (h Hermitian[T]) N() int { return h.mat.N() }

// Uplo returns the stored triangle.
func (h Hermitian[T]) Uplo() Uplo { return h.uplo }

// Mat returns the underlying general view over the stored triangle.
func (h Hermitian[T]) Mat() Matrix[T] { return h.mat }

// InsertLocalTiles allocates the locally-owned tiles of the stored
// triangle.
func (h Hermitian[T]) InsertLocalTiles() {
	b := h.mat.base()
	for i := 0; i < b.Mt(); i++ {
		for j := 0; j < b.Nt(); j++ {
			if h.uplo == Lower && j > i {
				continue
			}
			if h.uplo == Upper && j < i {
				continue
			}
			if b.TileIsLocal(i, j) {
				ti, tj := b.rootTile(i, j)
				b.g.insert(ti, tj)
			}
		}
	}
}

// At returns element (i, j), reading the mirrored entry when (i, j)
// falls in the unstored triangle.
func (h Hermitian[T]) At(i, j int) T {
	if h.unstored(i, j) {
		i, j = j, i
	}
	return h.mat.At(i, j)
}

// Set stores v into element (i, j), writing the mirrored entry when
// (i, j) falls in the unstored triangle.
func (h Hermitian[T]) Set(i, j int, v T) {
	if h.unstored(i, j) {
		i, j = j, i
	}
	h.mat.Set(i, j, v)
}

func (h Hermitian[T]) unstored(i, j int) bool {
	if h.uplo == Lower {
		return j > i
	}
	return j < i
}
