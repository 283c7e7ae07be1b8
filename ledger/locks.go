// Copyright 2025 Blink Labs Software
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

package ledger

import (
	"bytes"
	"slices"
	"sync"

	"github.com/mrranger939/crowdFund/address"
)

// addressLocks serializes instruction execution per account. Instructions
// acquire the locks of every account they touch in byte-sorted order, so two
// instructions with disjoint account sets run concurrently while overlapping
// ones queue.
type addressLocks struct {
	mu    sync.Mutex
	locks map[address.Address]*addressLock
}

type addressLock struct {
	mu   sync.Mutex
	refs int
}

func newAddressLocks() *addressLocks {
	return &addressLocks{
		locks: make(map[address.Address]*addressLock),
	}
}

// Acquire locks the given addresses and returns a release function.
// Duplicate addresses are collapsed; lock order is canonical (byte-sorted),
// which rules out lock-order inversion between concurrent instructions.
func (l *addressLocks) Acquire(addrs []address.Address) func() {
	sorted := slices.Clone(addrs)
	slices.SortFunc(sorted, func(a, b address.Address) int {
		return bytes.Compare(a[:], b[:])
	})
	sorted = slices.Compact(sorted)

	entries := make([]*addressLock, 0, len(sorted))
	l.mu.Lock()
	for _, addr := range sorted {
		entry, ok := l.locks[addr]
		if !ok {
			entry = &addressLock{}
			l.locks[addr] = entry
		}
		entry.refs++
		entries = append(entries, entry)
	}
	l.mu.Unlock()

	for _, entry := range entries {
		entry.mu.Lock()
	}

	released := false
	return func() {
		if released {
			return
		}
		released = true
		// Unlock in reverse acquisition order
		for i := len(entries) - 1; i >= 0; i-- {
			entries[i].mu.Unlock()
		}
		l.mu.Lock()
		for i, addr := range sorted {
			entry := entries[i]
			entry.refs--
			if entry.refs == 0 {
				delete(l.locks, addr)
			}
		}
		l.mu.Unlock()
	}
}
