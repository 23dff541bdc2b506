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
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/ajroetker/go-tile/tile"
)

func randBlock(rng *rand.Rand, rows, cols int) tile.Block[float64] {
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = rng.NormFloat64()
	}
	return tile.Block[float64]{Rows: rows, Cols: cols, Stride: cols, Data: data}
}

func asDense(b tile.Block[float64]) *mat.Dense {
	d := mat.NewDense(b.Rows, b.Cols, nil)
	for i := 0; i < b.Rows; i++ {
		for j := 0; j < b.Cols; j++ {
			d.Set(i, j, b.Data[i*b.Stride+j])
		}
	}
	return d
}

func maxDiff(got tile.Block[float64], want mat.Matrix) float64 {
	var d float64
	for i := 0; i < got.Rows; i++ {
		for j := 0; j < got.Cols; j++ {
			d = math.Max(d, math.Abs(got.Data[i*got.Stride+j]-want.At(i, j)))
		}
	}
	return d
}

func TestGemmBlock(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, opA := range []tile.Op{tile.NoTrans, tile.Trans, tile.ConjTrans} {
		for _, opB := range []tile.Op{tile.NoTrans, tile.Trans} {
			m, n, k := 5, 4, 3
			a := randBlock(rng, m, k)
			if opA != tile.NoTrans {
				a = randBlock(rng, k, m)
			}
			b := randBlock(rng, k, n)
			if opB != tile.NoTrans {
				b = randBlock(rng, n, k)
			}
			c := randBlock(rng, m, n)

			var want mat.Dense
			ad, bd := mat.Matrix(asDense(a)), mat.Matrix(asDense(b))
			if opA != tile.NoTrans {
				ad = ad.T()
			}
			if opB != tile.NoTrans {
				bd = bd.T()
			}
			want.Mul(ad, bd)
			want.Scale(2, &want)
			var cs mat.Dense
			cs.Scale(-0.5, asDense(c))
			want.Add(&want, &cs)

			a.Op, b.Op = opA, opB
			GemmBlock(2, a, b, -0.5, c)
			if d := maxDiff(c, &want); d > 1e-13 {
				t.Errorf("opA=%v opB=%v: max diff %g", opA, opB, d)
			}
		}
	}
}

func TestGemmBlockPanics(t *testing.T) {
	a := tile.Block[float64]{Rows: 2, Cols: 3, Stride: 3, Data: make([]float64, 6)}
	b := tile.Block[float64]{Rows: 2, Cols: 2, Stride: 2, Data: make([]float64, 4)}
	c := tile.Block[float64]{Rows: 2, Cols: 2, Stride: 2, Data: make([]float64, 4)}
	defer func() {
		if recover() == nil {
			t.Error("inner dimension mismatch did not panic")
		}
	}()
	GemmBlock(1, a, b, 0, c)
}

func TestTrmmBlock(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	n, cols := 4, 3
	for _, uplo := range []tile.Uplo{tile.Lower, tile.Upper} {
		for _, diag := range []tile.Diag{tile.NonUnit, tile.Unit} {
			for _, op := range []tile.Op{tile.NoTrans, tile.ConjTrans} {
				a := randBlock(rng, n, n)
				b := randBlock(rng, n, cols)

				// Dense reference built from the referenced triangle.
				tri := mat.NewDense(n, n, nil)
				for i := 0; i < n; i++ {
					for j := 0; j < n; j++ {
						in := j <= i
						if uplo == tile.Upper {
							in = j >= i
						}
						switch {
						case i == j && diag == tile.Unit:
							tri.Set(i, j, 1)
						case in:
							tri.Set(i, j, a.Data[i*a.Stride+j])
						}
					}
				}
				var want mat.Dense
				td := mat.Matrix(tri)
				if op != tile.NoTrans {
					td = td.T()
				}
				want.Mul(td, asDense(b))
				want.Scale(1.5, &want)

				a.Op = op
				TrmmBlock(tile.Left, uplo, diag, 1.5, a, b)
				if d := maxDiff(b, &want); d > 1e-13 {
					t.Errorf("uplo=%v diag=%v op=%v: max diff %g", uplo, diag, op, d)
				}
			}
		}
	}
}

func TestTrmmBlockRight(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	n, rows := 3, 5
	a := randBlock(rng, n, n)
	b := randBlock(rng, rows, n)

	tri := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			tri.Set(i, j, a.Data[i*a.Stride+j])
		}
	}
	var want mat.Dense
	want.Mul(asDense(b), tri)

	TrmmBlock(tile.Right, tile.Upper, tile.NonUnit, 1, a, b)
	if d := maxDiff(b, &want); d > 1e-13 {
		t.Errorf("max diff %g", d)
	}
}

func TestSymvSyr2Lower(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	n := 5
	// Symmetric window with junk above the diagonal: Lower kernels must
	// not read it.
	a := randBlock(rng, n, n)
	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			sym.SetSym(i, j, a.Data[i*a.Stride+j])
		}
	}
	x := make([]float64, n)
	y := make([]float64, n)
	for i := range x {
		x[i] = rng.NormFloat64()
		y[i] = rng.NormFloat64()
	}

	u := make([]float64, n)
	Symv(tile.Lower, 2, a, x, 0, u)
	var want mat.VecDense
	want.MulVec(sym, mat.NewVecDense(n, x))
	for i := 0; i < n; i++ {
		if math.Abs(u[i]-2*want.AtVec(i)) > 1e-13 {
			t.Errorf("symv[%d] = %v, want %v", i, u[i], 2*want.AtVec(i))
		}
	}

	Syr2(tile.Lower, 3, x, y, a)
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			want := sym.At(i, j) + 3*(x[i]*y[j]+y[i]*x[j])
			if math.Abs(a.Data[i*a.Stride+j]-want) > 1e-13 {
				t.Errorf("syr2(%d,%d) = %v, want %v", i, j, a.Data[i*a.Stride+j], want)
			}
		}
	}
}

func TestLarfg(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for trial := 0; trial < 20; trial++ {
		n := 1 + rng.Intn(8)
		alpha := rng.NormFloat64()
		x := make([]float64, n)
		orig := make([]float64, n+1)
		orig[0] = alpha
		for i := range x {
			x[i] = rng.NormFloat64()
			orig[i+1] = x[i]
		}

		beta, tau := Larfg(alpha, x)

		// Norm preservation: |beta| == ||(alpha, x)||.
		norm := Nrm2(orig)
		if math.Abs(math.Abs(beta)-norm) > 1e-12*norm {
			t.Errorf("|beta| = %v, want %v", math.Abs(beta), norm)
		}

		// Applying H to the original vector yields (beta, 0, ..., 0).
		v := append([]float64{1}, x...)
		w := Dot(v, orig)
		got := make([]float64, n+1)
		copy(got, orig)
		Axpy(-tau*w, v, got)
		if math.Abs(got[0]-beta) > 1e-12*math.Max(1, norm) {
			t.Errorf("H*(alpha,x) head = %v, want %v", got[0], beta)
		}
		for i := 1; i <= n; i++ {
			if math.Abs(got[i]) > 1e-12*math.Max(1, norm) {
				t.Errorf("H*(alpha,x)[%d] = %v, want 0", i, got[i])
			}
		}

		// 0 <= tau <= 2 for real reflectors.
		if tau < 0 || tau > 2 {
			t.Errorf("tau = %v, want in [0, 2]", tau)
		}
	}
}

func TestLarfgZeroTail(t *testing.T) {
	beta, tau := Larfg(3.5, []float64{0, 0, 0})
	if beta != 3.5 || tau != 0 {
		t.Errorf("Larfg(3.5, 0) = (%v, %v), want (3.5, 0)", beta, tau)
	}
}

func TestFloat32Dispatch(t *testing.T) {
	a := tile.Block[float32]{Rows: 2, Cols: 2, Stride: 2, Data: []float32{1, 2, 3, 4}}
	b := tile.Block[float32]{Rows: 2, Cols: 2, Stride: 2, Data: []float32{5, 6, 7, 8}}
	c := tile.Block[float32]{Rows: 2, Cols: 2, Stride: 2, Data: make([]float32, 4)}
	GemmBlock[float32](1, a, b, 0, c)
	want := []float32{19, 22, 43, 50}
	for i, v := range c.Data {
		if v != want[i] {
			t.Errorf("c[%d] = %v, want %v", i, v, want[i])
		}
	}
}
