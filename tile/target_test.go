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
	"sync/atomic"
	"testing"
)

func executors() []Executor {
	return []Executor{
		hostTaskExecutor{threads: 4},
		hostNestExecutor{threads: 4},
		hostBatchExecutor{threads: 4, batch: 3},
		devicesExecutor{devices: 2},
	}
}

func TestExecutorsRunEveryTaskOnce(t *testing.T) {
	for _, ex := range executors() {
		for _, n := range []int{0, 1, 7, 64} {
			counts := make([]atomic.Int32, n)
			ex.Run(n, func(k int) {
				counts[k].Add(1)
			})
			for k := range counts {
				if got := counts[k].Load(); got != 1 {
					t.Errorf("%s: task %d ran %d times, want 1", ex.Name(), k, got)
				}
			}
		}
	}
}

func TestExecutorRunIsSynchronous(t *testing.T) {
	for _, ex := range executors() {
		var done atomic.Int32
		ex.Run(16, func(k int) {
			done.Add(1)
		})
		if got := done.Load(); got != 16 {
			t.Errorf("%s: Run returned with %d of 16 tasks done", ex.Name(), got)
		}
	}
}

func TestParseTarget(t *testing.T) {
	tests := []struct {
		in   string
		want Target
	}{
		{"host-task", HostTask},
		{"host-nest", HostNest},
		{"host-batch", HostBatch},
		{"devices", Devices},
	}
	for _, tt := range tests {
		got, err := ParseTarget(tt.in)
		if err != nil {
			t.Errorf("ParseTarget(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTarget(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if got.String() != tt.in {
			t.Errorf("%v.String() = %q, want %q", got, got.String(), tt.in)
		}
	}
	if _, err := ParseTarget("bogus"); err == nil {
		t.Error("ParseTarget(bogus) did not return an error")
	}
}
