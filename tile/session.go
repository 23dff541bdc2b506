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
	"os"
	"runtime"

	"golang.org/x/sys/cpu"
)

// Session is the process-level configuration consumed by the
// algorithms. It is computed once at session start and passed down
// explicitly through Options; nothing in this package reads the
// environment after construction.
type Session struct {
	// GPUAwareTransport reports whether the network transport can
	// operate directly on accelerator memory. When false, the Devices
	// target stages transfers through host copies.
	GPUAwareTransport bool
	// NumThreads is the host thread budget for executors.
	NumThreads int
	// NumDevices is the number of accelerator queues for the Devices
	// target. At least 1.
	NumDevices int
	// VectorISA names the widest host vector extension detected, for
	// diagnostics.
	VectorISA string
}

// GPUAwareTransportEnv is the environment variable NewSession probes:
// set and either empty or "1" means the transport is GPU-aware.
const GPUAwareTransportEnv = "TILE_GPU_AWARE_TRANSPORT"

// NewSession builds a Session from the host environment.
func NewSession() *Session {
	env, ok := os.LookupEnv(GPUAwareTransportEnv)
	return &Session{
		GPUAwareTransport: ok && (env == "" || env == "1"),
		NumThreads:        runtime.GOMAXPROCS(0),
		NumDevices:        1,
		VectorISA:         vectorISA(),
	}
}

func vectorISA() string {
	switch runtime.GOARCH {
	case "amd64":
		switch {
		case cpu.X86.HasAVX512F:
			return "avx512"
		case cpu.X86.HasAVX2:
			return "avx2"
		case cpu.X86.HasSSE42:
			return "sse4.2"
		}
		return "sse2"
	case "arm64":
		switch {
		case cpu.ARM64.HasSVE:
			return "sve"
		case cpu.ARM64.HasASIMD:
			return "neon"
		}
	}
	return "scalar"
}
