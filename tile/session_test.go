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
	"testing"
)

func TestNewSessionGPUAwareTransport(t *testing.T) {
	tests := []struct {
		name  string
		value string
		set   bool
		want  bool
	}{
		{name: "unset", set: false, want: false},
		{name: "empty", set: true, value: "", want: true},
		{name: "one", set: true, value: "1", want: true},
		{name: "zero", set: true, value: "0", want: false},
		{name: "other", set: true, value: "yes", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.set {
				t.Setenv(GPUAwareTransportEnv, tt.value)
			} else {
				// Setenv registers the restore; the unset itself still
				// needs os.
				t.Setenv(GPUAwareTransportEnv, "")
				if err := os.Unsetenv(GPUAwareTransportEnv); err != nil {
					t.Fatal(err)
				}
			}
			s := NewSession()
			if s.GPUAwareTransport != tt.want {
				t.Errorf("set=%v value=%q: GPUAwareTransport = %v, want %v",
					tt.set, tt.value, s.GPUAwareTransport, tt.want)
			}
		})
	}
}

func TestNewSessionDefaults(t *testing.T) {
	s := NewSession()
	if s.NumThreads < 1 {
		t.Errorf("NumThreads = %d, want >= 1", s.NumThreads)
	}
	if s.NumDevices < 1 {
		t.Errorf("NumDevices = %d, want >= 1", s.NumDevices)
	}
	if s.VectorISA == "" {
		t.Error("VectorISA is empty")
	}
}
