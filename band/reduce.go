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
	"sync"

	"github.com/ajroetker/go-tile/tile"
)

// testStepHook, when set, is invoked before every executed step. Tests
// use it to observe the ordering guarantees of the pipeline.
var testStepHook func(sweep, step int, progressAt func(sweep int) int64)

// run is the body of one worker in the bulge-chasing pipeline. Sweeps
// are processed in passes of passSize; within a pass, steps are dealt
// round-robin across workers, with the dealing origin rotated between
// passes so the worker that finishes a pass's tail starts the next
// pass's head. Progress counters order a step after step-1 of its own
// sweep and after step+2 of the previous sweep.
func run[T tile.Scalar](h tile.Hermitian[T], band, diagLen, passSize, rank, threads int,
	refl *Reflectors[T], prog *progressTable) {

	startThread := 0

	// A pass is indexed by the sweep that starts it.
	for pass := 0; pass < diagLen-2; pass += passSize {
		sweepEnd := min(pass+passSize, diagLen-2)
		// Steps in the first sweep of this pass; later sweeps have fewer.
		nstepsPass := 2*ceilDiv(diagLen-1-pass, band-1) - 1
		stepBegin := (rank - startThread + threads) % threads
		for step := stepBegin; step < nstepsPass; step += threads {
			for sweep := pass; sweep < sweepEnd; sweep++ {
				nstepsSweep := 2*ceilDiv(diagLen-1-sweep, band-1) - 1
				nstepsLast := 2*ceilDiv(diagLen-1-(sweep-1), band-1) - 1

				if step >= nstepsSweep {
					continue
				}
				if sweep > 0 {
					// Wait until sweep-1 is two tasks ahead, or finished.
					prog.wait(sweep-1, int64(min(step+2, nstepsLast-1)))
				}
				if step > 0 {
					prog.wait(sweep, int64(step-1))
				}
				if testStepHook != nil {
					testStepHook(sweep, step, prog.at)
				}
				reduceStep(h, band, sweep, step, refl)
				prog.done(sweep, int64(step))
			}
		}
		startThread = (startThread + nstepsPass) % threads
	}
}

// ReduceToTridiag reduces a Hermitian band matrix to real tridiagonal
// form by bulge chasing, overwriting the band in place. On return the
// main diagonal and first subdiagonal of h hold the tridiagonal matrix
// and the rest of the band is zero. The returned arena holds every
// Householder reflector applied, in production order, for callers that
// back-transform eigenvectors.
//
// The band must be entirely resident on the calling rank: if no tile of
// the band is local the call is a no-op, and a partially resident band
// panics. h must store the lower triangle. A bandwidth of 1 means h is
// already tridiagonal and no work is done.
func ReduceToTridiag[T tile.Scalar](h tile.Hermitian[T], band int, opts ...tile.Option) *Reflectors[T] {
	if h.Uplo() != tile.Lower {
		panic("band: reduction requires a lower-storage matrix")
	}
	if band < 1 {
		panic("band: bandwidth must be at least 1")
	}

	diagLen := h.N()
	refl := newReflectors[T](diagLen, band)
	if diagLen < 3 || band == 1 {
		return refl
	}

	if !bandIsLocal(h, band) {
		return refl
	}

	o := tile.NewOptions(opts...)
	threads := o.MaxPanelThreads
	if threads < 1 {
		threads = 1
	}
	passSize := ceilDiv(threads, 3)

	prog := newProgressTable(diagLen - 2)

	var wg sync.WaitGroup
	for rank := 0; rank < threads; rank++ {
		wg.Add(1)
		go func(rank int) {
			defer wg.Done()
			run(h, band, diagLen, passSize, rank, threads, refl, prog)
		}(rank)
	}
	wg.Wait()

	return refl
}

// bandIsLocal reports whether every tile overlapping the lower band is
// resident on the calling rank. A band split across ranks cannot be
// chased locally, so that case panics rather than producing a torn
// reduction.
func bandIsLocal[T tile.Scalar](h tile.Hermitian[T], band int) bool {
	m := h.Mat()
	nb := m.BlockSize()
	nt := m.Nt()
	// Chasing pushes transient bulges up to 2*(band-1)-1 elements below
	// the diagonal, so those tiles must be resident too.
	reach := 2 * (band - 1)
	local, remote := 0, 0
	for j := 0; j < nt; j++ {
		lastRow := min((j*nb+(m.TileNb(j)-1)+reach)/nb, nt-1)
		for i := j; i <= lastRow; i++ {
			if m.TileIsLocal(i, j) {
				local++
			} else {
				remote++
			}
		}
	}
	if local == 0 {
		return false
	}
	if remote != 0 {
		panic("band: band is split across ranks")
	}
	return true
}

// Tridiag extracts the diagonal and subdiagonal of a reduced matrix.
func Tridiag[T tile.Scalar](h tile.Hermitian[T]) (d, e []T) {
	n := h.N()
	d = make([]T, n)
	e = make([]T, max(n-1, 0))
	for i := 0; i < n; i++ {
		d[i] = h.At(i, i)
		if i+1 < n {
			e[i] = h.At(i+1, i)
		}
	}
	return d, e
}
