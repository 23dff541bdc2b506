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

// Package band reduces a Hermitian band matrix to tridiagonal form by
// multithreaded bulge chasing.
//
// A sweep annihilates one column of the band and chases the resulting
// bulge off the bottom of the matrix; consecutive sweeps run pipelined,
// each trailing the previous one by two steps. Workers coordinate
// through a per-sweep progress table of atomic counters and exchange
// Householder reflectors through a preallocated arena, so the pipeline
// has no central scheduler.
package band
