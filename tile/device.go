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

// Device placement for the Devices execution target.
//
// The engine runs its numeric work on host memory; device buffers model
// accelerator residency so that the Devices target can batch work per
// device queue and so that placement and hold bookkeeping mirror what a
// real accelerator back-end needs. The host copy stays authoritative.

// TileGetAllForWriting materializes every local tile of the view for
// writing on the given device. Writing invalidates other placements, so
// device copies of the touched tiles are dropped (except held ones,
// which are refreshed instead).
func (a Matrix[T]) TileGetAllForWriting(device int) {
	b := a.base()
	for i := 0; i < b.Mt(); i++ {
		for j := 0; j < b.Nt(); j++ {
			if !b.TileIsLocal(i, j) {
				continue
			}
			ti, tj := b.rootTile(i, j)
			t := b.g.insert(ti, tj)
			b.g.mu.Lock()
			for dev := range t.device {
				if t.hold[dev] > 0 {
					copy(t.device[dev], t.data)
				} else {
					delete(t.device, dev)
				}
			}
			if device != HostDevice {
				buf := make([]T, len(t.data))
				copy(buf, t.data)
				t.device[device] = buf
			}
			b.g.mu.Unlock()
		}
	}
}

// TileGetAndHoldAllOnDevices copies every local tile of the view to its
// assigned device and pins it there until released. The device
// assignment follows the tile column, spreading a block row over the
// available queues.
func (a Matrix[T]) TileGetAndHoldAllOnDevices(numDevices int) {
	if numDevices < 1 {
		numDevices = 1
	}
	b := a.base()
	for i := 0; i < b.Mt(); i++ {
		for j := 0; j < b.Nt(); j++ {
			if !b.TileIsLocal(i, j) {
				continue
			}
			ti, tj := b.rootTile(i, j)
			t := b.g.insert(ti, tj)
			dev := tj % numDevices
			b.g.mu.Lock()
			if _, ok := t.device[dev]; !ok {
				buf := make([]T, len(t.data))
				copy(buf, t.data)
				t.device[dev] = buf
			}
			t.hold[dev]++
			b.g.mu.Unlock()
		}
	}
}

// TileReleaseAllOnDevices drops the holds taken by
// TileGetAndHoldAllOnDevices and evicts unheld device copies.
func (a Matrix[T]) TileReleaseAllOnDevices() {
	b := a.base()
	for i := 0; i < b.Mt(); i++ {
		for j := 0; j < b.Nt(); j++ {
			if !b.TileIsLocal(i, j) {
				continue
			}
			ti, tj := b.rootTile(i, j)
			t := b.g.lookup(ti, tj)
			if t == nil {
				continue
			}
			b.g.mu.Lock()
			for dev, n := range t.hold {
				if n > 0 {
					t.hold[dev] = n - 1
				}
				if t.hold[dev] == 0 {
					delete(t.hold, dev)
					delete(t.device, dev)
				}
			}
			b.g.mu.Unlock()
		}
	}
}
