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

import (
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Target selects the execution back-end for tile kernels. It is
// immutable for the duration of one algorithm invocation.
type Target int

const (
	// HostTask runs each tile operation as an independent task on the
	// host. Default.
	HostTask Target = iota
	// HostNest runs tile operations as a nested parallel loop on the
	// host, one contiguous chunk per worker.
	HostNest
	// HostBatch groups tile operations into fixed-size batches executed
	// by a worker pool, modeling batched host kernels.
	HostBatch
	// Devices batches tile operations per accelerator queue.
	Devices
)

func (t Target) String() string {
	switch t {
	case HostTask:
		return "host-task"
	case HostNest:
		return "host-nest"
	case HostBatch:
		return "host-batch"
	case Devices:
		return "devices"
	}
	return "unknown"
}

// ParseTarget converts a target name as printed by String.
func ParseTarget(s string) (Target, error) {
	for _, t := range []Target{HostTask, HostNest, HostBatch, Devices} {
		if s == t.String() {
			return t, nil
		}
	}
	return HostTask, fmt.Errorf("tile: unknown target %q", s)
}

// Executor is the strategy behind a Target: it runs n independent tile
// tasks and returns only after every task has completed. Tasks must be
// free of ordering requirements among themselves; callers sequence
// dependent phases by issuing separate Run calls.
type Executor interface {
	Name() string
	Run(n int, task func(k int))
}

// hostTaskExecutor runs each task in its own goroutine, bounded by the
// thread budget.
type hostTaskExecutor struct{ threads int }

func (e hostTaskExecutor) Name() string { return HostTask.String() }

func (e hostTaskExecutor) Run(n int, task func(k int)) {
	var g errgroup.Group
	g.SetLimit(e.threads)
	for k := 0; k < n; k++ {
		k := k
		g.Go(func() error {
			task(k)
			return nil
		})
	}
	// Tasks do not fail; errgroup is used for its bounded group wait.
	_ = g.Wait()
}

// hostNestExecutor splits the index range into one contiguous chunk per
// worker, mirroring a nested parallel-for.
type hostNestExecutor struct{ threads int }

func (e hostNestExecutor) Name() string { return HostNest.String() }

func (e hostNestExecutor) Run(n int, task func(k int)) {
	workers := e.threads
	if workers > n {
		workers = n
	}
	if workers < 1 {
		return
	}
	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		if lo >= hi {
			break
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for k := lo; k < hi; k++ {
				task(k)
			}
		}(lo, hi)
	}
	wg.Wait()
}

// hostBatchExecutor feeds the pool batch by batch: each round issues at
// most batch tasks and waits for the round before starting the next,
// the way a batched BLAS back-end submits one batch call at a time.
type hostBatchExecutor struct {
	threads int
	batch   int
}

func (e hostBatchExecutor) Name() string { return HostBatch.String() }

func (e hostBatchExecutor) Run(n int, task func(k int)) {
	batch := e.batch
	if batch < 1 {
		batch = e.threads
	}
	for lo := 0; lo < n; lo += batch {
		hi := lo + batch
		if hi > n {
			hi = n
		}
		var wg sync.WaitGroup
		ch := make(chan int)
		workers := e.threads
		if workers > hi-lo {
			workers = hi - lo
		}
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for k := range ch {
					task(k)
				}
			}()
		}
		for k := lo; k < hi; k++ {
			ch <- k
		}
		close(ch)
		wg.Wait()
	}
}

// devicesExecutor assigns tasks round-robin to device queues; each
// queue executes its share in order, modeling per-device batches.
type devicesExecutor struct{ devices int }

func (e devicesExecutor) Name() string { return Devices.String() }

func (e devicesExecutor) Run(n int, task func(k int)) {
	devices := e.devices
	if devices < 1 {
		devices = 1
	}
	var wg sync.WaitGroup
	for d := 0; d < devices; d++ {
		wg.Add(1)
		go func(d int) {
			defer wg.Done()
			for k := d; k < n; k += devices {
				task(k)
			}
		}(d)
	}
	wg.Wait()
}
