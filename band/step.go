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

// reduceStep executes one task of one sweep. Tasks rotate in a fixed
// pattern: task 0 starts the sweep (one-time), task 1 chases the bulge
// through an off-diagonal block, task 2 re-annihilates on the next
// diagonal block. The affected coordinates are derived arithmetically
// from the bandwidth, the sweep, and the step's block number; the
// formulas are what guarantee adjacent steps touch disjoint or properly
// ordered regions, so they must not be rearranged. Coordinates past the
// matrix corner are silent no-ops.
func reduceStep[T tile.Scalar](h tile.Hermitian[T], band, sweep, step int, refl *Reflectors[T]) {
	task := 0
	if step != 0 {
		task = (step+1)%2 + 1
	}
	block := step / 2
	n := h.N()

	switch task {
	case 0:
		// First task of the sweep: annihilate column `sweep` below the
		// first subdiagonal. Produces the reflector spanning rows
		// sweep+1 onward.
		i := sweep
		if i < n {
			tau, v := hebr1(h, i, min(i+band-1, n-1))
			refl.put(sweep, 0, tau, v)
		}
	case 1:
		// Off-diagonal block of the sweep: consume the reflector of the
		// previous block, produce the next one.
		i := (block+1)*(band-1) + 1 + sweep
		j := block*(band-1) + 1 + sweep
		if i < n && j < n {
			tau1, v1 := refl.Get(sweep, block)
			tau2, v2 := hebr2(tau1, v1, h,
				i, min(i+band-2, n-1),
				j, min(j+band-2, n-1))
			refl.put(sweep, block+1, tau2, v2)
		}
	case 2:
		// Diagonal block of the sweep: consume the reflector produced
		// by the preceding off-diagonal task. No new reflector.
		i := block*(band-1) + 1 + sweep
		if i < n {
			tau, v := refl.Get(sweep, block)
			hebr3(tau, v, h, i, min(i+band-2, n-1))
		}
	}
}
