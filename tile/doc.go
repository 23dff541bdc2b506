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

// Package tile provides the tile-matrix types and execution strategies
// shared by the panel and band algorithms.
//
// A global matrix is partitioned into nb x nb tiles owned by ranks
// under a 2D block-cyclic map. Matrix values are cheap views: shape
// metadata over a shared tile store, supporting tile-range sub-matrices
// (Sub), element-range slices (Slice), transposed lenses
// (ConjTranspose), and triangular or Hermitian reinterpretation.
//
// Execution back-ends are strategy values implementing Executor,
// selected per call through Options:
//
//	HostTask   independent host tasks (default)
//	HostNest   nested parallel loop
//	HostBatch  batched host kernels
//	Devices    per-accelerator-queue batches
//
// Precondition violations panic; a rank that owns no tiles of an
// operand's relevant region is a documented no-op, not an error.
package tile
