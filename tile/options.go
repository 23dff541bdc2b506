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

// Options is the resolved option set recognized by the algorithms.
// Absent options fall back to the documented defaults; the zero value
// is not meaningful, use NewOptions.
type Options struct {
	// Target selects the execution back-end. Default HostTask.
	Target Target
	// Lookahead is the panel lookahead depth. Default 1.
	Lookahead int
	// InnerBlocking is the inner blocking size used to batch tile
	// kernels. Default 16.
	InnerBlocking int
	// MaxPanelThreads bounds the worker threads a panel or reduction
	// call may spawn. Default Session.NumThreads.
	MaxPanelThreads int
	// Session is the process configuration. Default: a fresh
	// NewSession.
	Session *Session
}

// Option adjusts one field of Options.
type Option func(*Options)

// WithTarget selects the execution back-end.
func WithTarget(t Target) Option { return func(o *Options) { o.Target = t } }

// WithLookahead sets the lookahead depth.
func WithLookahead(n int) Option { return func(o *Options) { o.Lookahead = n } }

// WithInnerBlocking sets the inner blocking size.
func WithInnerBlocking(ib int) Option { return func(o *Options) { o.InnerBlocking = ib } }

// WithMaxPanelThreads bounds the worker threads per call.
func WithMaxPanelThreads(n int) Option { return func(o *Options) { o.MaxPanelThreads = n } }

// WithSession threads an explicit process configuration through.
func WithSession(s *Session) Option { return func(o *Options) { o.Session = s } }

// NewOptions resolves the option list against the defaults.
func NewOptions(opts ...Option) Options {
	o := Options{
		Target:        HostTask,
		Lookahead:     1,
		InnerBlocking: 16,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Session == nil {
		o.Session = NewSession()
	}
	if o.MaxPanelThreads < 1 {
		o.MaxPanelThreads = o.Session.NumThreads
	}
	if o.Lookahead < 1 {
		o.Lookahead = 1
	}
	if o.InnerBlocking < 1 {
		o.InnerBlocking = 16
	}
	return o
}

// Executor returns the strategy for the selected target.
func (o Options) Executor() Executor {
	switch o.Target {
	case HostNest:
		return hostNestExecutor{threads: o.MaxPanelThreads}
	case HostBatch:
		return hostBatchExecutor{threads: o.MaxPanelThreads, batch: o.InnerBlocking}
	case Devices:
		return devicesExecutor{devices: o.Session.NumDevices}
	default:
		return hostTaskExecutor{threads: o.MaxPanelThreads}
	}
}

// HostExecutor returns the host-task strategy regardless of target, for
// the kernel calls that always run as host tasks.
func (o Options) HostExecutor() Executor {
	return hostTaskExecutor{threads: o.MaxPanelThreads}
}
