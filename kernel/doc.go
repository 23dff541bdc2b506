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

// Package kernel provides the elementary tile operations the panel and
// band algorithms are built from: executor-scheduled tile-level gemm,
// trmm, geadd, and copy, plus the scalar-level BLAS adapters and
// reflector generation they rely on. The numeric work is delegated to
// gonum's blas32/blas64 layers; this package only routes generic
// scalars to the right layer and tiles to the right windows.
package kernel
