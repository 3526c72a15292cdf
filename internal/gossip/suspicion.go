package gossip

import (
	"sync"
	"time"
)

// DefaultSuspicionThreshold is the number of invalid-signature messages
// tolerated from one peer before it is disconnected.
const DefaultSuspicionThreshold = 5

// nonceTTL bounds how long a seen nonce is remembered for replay rejection.
const nonceTTL = 10 * time.Minute

// peerTracker accumulates suspicion counters per peer and remembers
// recently-seen nonces to reject replayed envelopes.
type peerTracker struct {
	mu         sync.Mutex
	threshold  int
	suspicion  map[string]int
	nonces     map[string]time.Time
	disconnect func(peerID string)
}

func newPeerTracker(threshold int, disconnect func(peerID string)) *peerTracker {
	if threshold <= 0 {
		threshold = DefaultSuspicionThreshold
	}
	return &peerTracker{
		threshold:  threshold,
		suspicion:  make(map[string]int),
		nonces:     make(map[string]time.Time),
		disconnect: disconnect,
	}
}

// Flag increments peerID's suspicion counter for an invalid-signature or
// unparseable message. Crossing the threshold triggers disconnect.
func (t *peerTracker) Flag(peerID string) {
	t.mu.Lock()
	t.suspicion[peerID]++
	count := t.suspicion[peerID]
	t.mu.Unlock()

	if count >= t.threshold && t.disconnect != nil {
		t.disconnect(peerID)
	}
}

// Reset clears peerID's suspicion counter, e.g. after a clean reconnect.
func (t *peerTracker) Reset(peerID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.suspicion, peerID)
}

// SuspicionCount returns peerID's current suspicion counter.
func (t *peerTracker) SuspicionCount(peerID string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.suspicion[peerID]
}

// SeenNonce reports whether nonce has already been observed from any peer
// (within nonceTTL) and records it if not, so repeated calls with the same
// nonce reject the message as a replay.
func (t *peerTracker) SeenNonce(nonce string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := time.Now()
	if seenAt, ok := t.nonces[nonce]; ok && now.Sub(seenAt) < nonceTTL {
		return true
	}
	t.nonces[nonce] = now
	t.pruneLocked(now)
	return false
}

func (t *peerTracker) pruneLocked(now time.Time) {
	if len(t.nonces) < 4096 {
		return
	}
	for n, seenAt := range t.nonces {
		if now.Sub(seenAt) >= nonceTTL {
			delete(t.nonces, n)
		}
	}
}
