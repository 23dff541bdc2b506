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

// Reflectors is the store of Householder reflectors produced during one
// reduction. It is an arena indexed by (sweep, block): slot 0 of a
// sweep holds the reflector that annihilates the sweep's column (it
// spans rows sweep+1 onward), and slot k+1 holds the reflector produced
// while chasing the bulge through off-diagonal block k (spanning rows
// (k+1)*(band-1)+1+sweep onward).
//
// Slots are preallocated from the diagonal length and bandwidth, each
// written exactly once and read under the pipeline's ordering protocol.
// Striped locks guard the slot accesses themselves; they are never held
// across numeric work.
type Reflectors[T tile.Scalar] struct {
	sweeps [][]reflector[T]
	locks  [reflectorStripes]sync.Mutex
}

const reflectorStripes = 64

type reflector[T tile.Scalar] struct {
	tau T
	v   []T
	ok  bool
}

func newReflectors[T tile.Scalar](diagLen, band int) *Reflectors[T] {
	r := &Reflectors[T]{}
	if diagLen < 3 || band < 2 {
		return r
	}
	r.sweeps = make([][]reflector[T], diagLen-2)
	for sweep := range r.sweeps {
		r.sweeps[sweep] = make([]reflector[T], ceilDiv(diagLen-1-sweep, band-1))
	}
	return r
}

func (r *Reflectors[T]) stripe(sweep, block int) *sync.Mutex {
	return &r.locks[(sweep*31+block)%reflectorStripes]
}

func (r *Reflectors[T]) put(sweep, block int, tau T, v []T) {
	mu := r.stripe(sweep, block)
	mu.Lock()
	s := &r.sweeps[sweep][block]
	if s.ok {
		panic("band: reflector slot written twice")
	}
	s.tau, s.v, s.ok = tau, v, true
	mu.Unlock()
}

// Get returns the reflector of the given sweep and block. A missing
// entry is a violation of the ordering protocol and panics.
func (r *Reflectors[T]) Get(sweep, block int) (tau T, v []T) {
	mu := r.stripe(sweep, block)
	mu.Lock()
	s := r.sweeps[sweep][block]
	mu.Unlock()
	if !s.ok {
		panic("band: reflector read before it was produced")
	}
	return s.tau, s.v
}

// Sweeps returns the number of sweeps the arena covers.
func (r *Reflectors[T]) Sweeps() int { return len(r.sweeps) }

// Blocks returns the number of reflector slots of one sweep.
func (r *Reflectors[T]) Blocks(sweep int) int { return len(r.sweeps[sweep]) }

func ceilDiv(a, b int) int { return (a + b - 1) / b }
