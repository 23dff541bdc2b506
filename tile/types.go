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

// Scalar is the set of element types the engine instantiates.
// Complex scalars are not listed: for real scalars conjugate transpose
// equals transpose, which is what Op relies on.
type Scalar interface {
	float32 | float64
}

// Op selects a transposition mode for a matrix operand.
type Op int

const (
	NoTrans Op = iota
	Trans
	ConjTrans
)

func (op Op) String() string {
	switch op {
	case NoTrans:
		return "notrans"
	case Trans:
		return "trans"
	case ConjTrans:
		return "conjtrans"
	}
	return "unknown"
}

// Side selects whether an operand multiplies from the left or the right.
type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	if s == Left {
		return "left"
	}
	return "right"
}

// Uplo designates the stored triangle of a triangular or Hermitian view.
type Uplo int

const (
	Lower Uplo = iota
	Upper
)

func (u Uplo) String() string {
	if u == Lower {
		return "lower"
	}
	return "upper"
}

// Diag designates whether a triangular view has an implicit unit diagonal.
type Diag int

const (
	NonUnit Diag = iota
	Unit
)

func (d Diag) String() string {
	if d == NonUnit {
		return "nonunit"
	}
	return "unit"
}

// HostDevice is the device id of host memory. Accelerator queues are
// numbered from 0.
const HostDevice = -1
