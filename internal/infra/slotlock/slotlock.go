// Package slotlock serializes ledger read-modify-write cycles per slot
// within a single process. The record store itself offers no atomic
// read-modify-write, so this only narrows the lost-update race between
// concurrent mutations originating here; writers in other processes still
// race (see DESIGN.md).
package slotlock

import "sync"

type Keyed struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New() *Keyed {
	return &Keyed{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for slotID and returns its release func.
// Callers must not hold the lock across payment or notification calls.
func (k *Keyed) Lock(slotID string) func() {
	k.mu.Lock()
	m, ok := k.locks[slotID]
	if !ok {
		m = &sync.Mutex{}
		k.locks[slotID] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
