package service

import "sync"

// ownerLocks serializes conflict-check-and-write sequences per owner. The
// check-then-act pair "detect conflicts, then write the hearing" is not
// atomic on its own: two concurrent requests for overlapping intervals can
// each observe zero conflicts and both commit. Holding the owner's lock
// across check+write guarantees at most one of them succeeds; the loser
// re-runs its check against the winner's committed hearing and gets a
// CONFLICT response naming it.
type ownerLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newOwnerLocks() *ownerLocks {
	return &ownerLocks{locks: make(map[string]*sync.Mutex)}
}

// acquire returns the lock for the given owner, creating it on first use.
// Locks are never evicted; the owner set is small (one per attorney).
func (l *ownerLocks) acquire(owner string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.locks[owner]
	if !ok {
		m = &sync.Mutex{}
		l.locks[owner] = m
	}
	return m
}
