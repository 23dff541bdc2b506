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

import (
	"math"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
	"gonum.org/v1/gonum/blas/blas64"

	"github.com/ajroetker/go-tile/tile"
)

// Scalar-level adapters dispatching a generic element type to the
// matching gonum BLAS layer. Dense operands are tile.Block windows
// (row-major, Stride >= Cols).

func transOf(op tile.Op) blas.Transpose {
	// Real scalars: conjugate transpose is plain transpose.
	if op == tile.NoTrans {
		return blas.NoTrans
	}
	return blas.Trans
}

func uploOf(u tile.Uplo) blas.Uplo {
	if u == tile.Upper {
		return blas.Upper
	}
	return blas.Lower
}

func diagOf(d tile.Diag) blas.Diag {
	if d == tile.Unit {
		return blas.Unit
	}
	return blas.NonUnit
}

func gen64[T tile.Scalar](a tile.Block[T]) blas64.General {
	return blas64.General{
		Rows: a.Rows, Cols: a.Cols, Stride: a.Stride,
		Data: any(a.Data).([]float64),
	}
}

func gen32[T tile.Scalar](a tile.Block[T]) blas32.General {
	return blas32.General{
		Rows: a.Rows, Cols: a.Cols, Stride: a.Stride,
		Data: any(a.Data).([]float32),
	}
}

func vec64[T tile.Scalar](x []T) blas64.Vector {
	return blas64.Vector{N: len(x), Inc: 1, Data: any(x).([]float64)}
}

func vec32[T tile.Scalar](x []T) blas32.Vector {
	return blas32.Vector{N: len(x), Inc: 1, Data: any(x).([]float32)}
}

// GemmBlock computes c = alpha*op(a)*op(b) + beta*c on dense windows.
func GemmBlock[T tile.Scalar](alpha T, a, b tile.Block[T], beta T, c tile.Block[T]) {
	m, k := opDims(a)
	k2, n := opDims(b)
	switch {
	case k != k2:
		panic("kernel: gemm inner dimension mismatch")
	case c.Op != tile.NoTrans:
		panic("kernel: gemm output must be untransposed")
	case m != c.Rows || n != c.Cols:
		panic("kernel: gemm output shape mismatch")
	}
	switch any(c.Data).(type) {
	case []float64:
		blas64.Gemm(transOf(a.Op), transOf(b.Op),
			float64(alpha), gen64(a), gen64(b), float64(beta), gen64(c))
	case []float32:
		blas32.Gemm(transOf(a.Op), transOf(b.Op),
			float32(alpha), gen32(a), gen32(b), float32(beta), gen32(c))
	}
}

// TrmmBlock computes b = alpha*op(a)*b (side Left) or b = alpha*b*op(a)
// (side Right) where a is a square triangular window.
func TrmmBlock[T tile.Scalar](side tile.Side, uplo tile.Uplo, diag tile.Diag,
	alpha T, a, b tile.Block[T]) {
	if a.Rows != a.Cols {
		panic("kernel: trmm triangular window must be square")
	}
	bside := blas.Left
	if side == tile.Right {
		bside = blas.Right
	}
	switch any(b.Data).(type) {
	case []float64:
		t := blas64.Triangular{
			N: a.Rows, Stride: a.Stride, Data: any(a.Data).([]float64),
			Uplo: uploOf(uplo), Diag: diagOf(diag),
		}
		blas64.Trmm(bside, transOf(a.Op), float64(alpha), t, gen64(b))
	case []float32:
		t := blas32.Triangular{
			N: a.Rows, Stride: a.Stride, Data: any(a.Data).([]float32),
			Uplo: uploOf(uplo), Diag: diagOf(diag),
		}
		blas32.Trmm(bside, transOf(a.Op), float32(alpha), t, gen32(b))
	}
}

// Gemv computes y = alpha*op(a)*x + beta*y.
func Gemv[T tile.Scalar](alpha T, a tile.Block[T], x []T, beta T, y []T) {
	switch any(y).(type) {
	case []float64:
		blas64.Gemv(transOf(a.Op), float64(alpha), gen64(a), vec64(x), float64(beta), vec64(y))
	case []float32:
		blas32.Gemv(transOf(a.Op), float32(alpha), gen32(a), vec32(x), float32(beta), vec32(y))
	}
}

// Ger computes a += alpha*x*yᵀ.
func Ger[T tile.Scalar](alpha T, x, y []T, a tile.Block[T]) {
	switch any(x).(type) {
	case []float64:
		blas64.Ger(float64(alpha), vec64(x), vec64(y), gen64(a))
	case []float32:
		blas32.Ger(float32(alpha), vec32(x), vec32(y), gen32(a))
	}
}

// Symv computes y = alpha*a*x + beta*y for a symmetric window.
func Symv[T tile.Scalar](uplo tile.Uplo, alpha T, a tile.Block[T], x []T, beta T, y []T) {
	switch any(y).(type) {
	case []float64:
		s := blas64.Symmetric{
			N: a.Rows, Stride: a.Stride, Data: any(a.Data).([]float64),
			Uplo: uploOf(uplo),
		}
		blas64.Symv(float64(alpha), s, vec64(x), float64(beta), vec64(y))
	case []float32:
		s := blas32.Symmetric{
			N: a.Rows, Stride: a.Stride, Data: any(a.Data).([]float32),
			Uplo: uploOf(uplo),
		}
		blas32.Symv(float32(alpha), s, vec32(x), float32(beta), vec32(y))
	}
}

// Syr2 computes a += alpha*(x*yᵀ + y*xᵀ) for a symmetric window.
func Syr2[T tile.Scalar](uplo tile.Uplo, alpha T, x, y []T, a tile.Block[T]) {
	switch any(x).(type) {
	case []float64:
		s := blas64.Symmetric{
			N: a.Rows, Stride: a.Stride, Data: any(a.Data).([]float64),
			Uplo: uploOf(uplo),
		}
		blas64.Syr2(float64(alpha), vec64(x), vec64(y), s)
	case []float32:
		s := blas32.Symmetric{
			N: a.Rows, Stride: a.Stride, Data: any(a.Data).([]float32),
			Uplo: uploOf(uplo),
		}
		blas32.Syr2(float32(alpha), vec32(x), vec32(y), s)
	}
}

// Dot returns xᵀ*y.
func Dot[T tile.Scalar](x, y []T) T {
	switch any(x).(type) {
	case []float64:
		return T(blas64.Dot(vec64(x), vec64(y)))
	case []float32:
		return T(blas32.Dot(vec32(x), vec32(y)))
	}
	return 0
}

// Axpy computes y += alpha*x.
func Axpy[T tile.Scalar](alpha T, x, y []T) {
	switch any(x).(type) {
	case []float64:
		blas64.Axpy(float64(alpha), vec64(x), vec64(y))
	case []float32:
		blas32.Axpy(float32(alpha), vec32(x), vec32(y))
	}
}

// Scal computes x *= alpha.
func Scal[T tile.Scalar](alpha T, x []T) {
	switch any(x).(type) {
	case []float64:
		blas64.Scal(float64(alpha), vec64(x))
	case []float32:
		blas32.Scal(float32(alpha), vec32(x))
	}
}

// Nrm2 returns the Euclidean norm of x.
func Nrm2[T tile.Scalar](x []T) T {
	switch any(x).(type) {
	case []float64:
		return T(blas64.Nrm2(vec64(x)))
	case []float32:
		return T(blas32.Nrm2(vec32(x)))
	}
	return 0
}

// Larfg generates an elementary Householder reflector
//
//	H = I - tau * (1, v)ᵀ * (1, v)
//
// such that H*(alpha, x)ᵀ = (beta, 0, ..., 0)ᵀ. On return x holds v and
// the head coefficient 1 stays implicit. When x is zero, tau is zero
// and H is the identity.
func Larfg[T tile.Scalar](alpha T, x []T) (beta, tau T) {
	xnorm := Nrm2(x)
	if xnorm == 0 {
		return alpha, 0
	}
	b := math.Hypot(float64(alpha), float64(xnorm))
	if alpha >= 0 {
		b = -b
	}
	beta = T(b)
	tau = (beta - alpha) / beta
	Scal(1/(alpha-beta), x)
	return beta, tau
}

func opDims[T tile.Scalar](a tile.Block[T]) (rows, cols int) {
	if a.Op != tile.NoTrans {
		return a.Cols, a.Rows
	}
	return a.Rows, a.Cols
}
