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
	"runtime"
	"sync/atomic"
)

// progressTable holds one monotonically non-decreasing counter per
// sweep: the highest step index finished for that sweep, or -1 when the
// sweep has not started. Exactly one thread advances a given sweep at
// any time (the thread executing its current step), so the counters are
// single-writer; readers poll.
type progressTable struct {
	counters []atomic.Int64
}

const notStarted = -1

func newProgressTable(sweeps int) *progressTable {
	p := &progressTable{counters: make([]atomic.Int64, sweeps)}
	for i := range p.counters {
		p.counters[i].Store(notStarted)
	}
	return p
}

// wait polls until the sweep's counter reaches threshold. The polling
// contract is deliberate — the inner loop is latency sensitive and the
// wait is expected to be short — but the spin yields the processor so a
// waiting worker cannot starve the worker it waits for.
func (p *progressTable) wait(sweep int, threshold int64) {
	for p.counters[sweep].Load() < threshold {
		runtime.Gosched()
	}
}

// done records that the sweep has finished the given step.
func (p *progressTable) done(sweep int, step int64) {
	p.counters[sweep].Store(step)
}

func (p *progressTable) at(sweep int) int64 {
	return p.counters[sweep].Load()
}
