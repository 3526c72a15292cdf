package fees

import (
	"crypto/ed25519"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/driftmesh/driftmesh/internal/crypto"
)

// ErrBallotReplayed is returned when a node casts a second ballot for an
// epoch it has already endorsed.
var ErrBallotReplayed = errors.New("fees: duplicate ballot for epoch")

// Ballot is one node's signed endorsement of a pool distribution. It covers
// (epoch, pool_root) under the dedicated fee-ballot signing domain, so a
// ballot can never be replayed as an order or gossip-delta signature (or
// vice versa) even though all three share a node's identity key.
type Ballot struct {
	Epoch     uint64
	PoolRoot  [32]byte
	NodeID    string
	PublicKey ed25519.PublicKey
	Signature []byte
}

func ballotPayload(epoch uint64, poolRoot [32]byte) []byte {
	buf := make([]byte, 8+32)
	binary.BigEndian.PutUint64(buf[:8], epoch)
	copy(buf[8:], poolRoot[:])
	return buf
}

// SignBallot produces a Ballot endorsing (epoch, poolRoot) under id.
func SignBallot(id *crypto.Identity, nodeID string, epoch uint64, poolRoot [32]byte) Ballot {
	payload := ballotPayload(epoch, poolRoot)
	return Ballot{
		Epoch:     epoch,
		PoolRoot:  poolRoot,
		NodeID:    nodeID,
		PublicKey: id.Public,
		Signature: id.Sign(crypto.DomainFeeBallot, payload),
	}
}

// Verify checks the ballot's signature against its claimed (epoch, poolRoot).
func (b Ballot) Verify() bool {
	if len(b.PublicKey) == 0 {
		return false
	}
	return crypto.Verify(b.PublicKey, crypto.DomainFeeBallot, ballotPayload(b.Epoch, b.PoolRoot), b.Signature)
}

// Tally counts valid, non-replayed ballots for a single epoch against the
// shard manager's known-peer count, reporting whether the ≥80%-online
// endorsement threshold has been met.
type Tally struct {
	mu       sync.Mutex
	epoch    uint64
	poolRoot [32]byte
	seen     map[string]struct{}
}

// NewTally starts a tally for epoch endorsing poolRoot.
func NewTally(epoch uint64, poolRoot [32]byte) *Tally {
	return &Tally{epoch: epoch, poolRoot: poolRoot, seen: make(map[string]struct{})}
}

// Add validates and records a ballot, rejecting signature mismatches,
// wrong-epoch/root ballots, and replays from a node that already endorsed.
func (t *Tally) Add(b Ballot) error {
	if b.Epoch != t.epoch || b.PoolRoot != t.poolRoot {
		return fmt.Errorf("fees: ballot epoch/root mismatch")
	}
	if !b.Verify() {
		return crypto.ErrInvalidSignature
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.seen[b.NodeID]; ok {
		return ErrBallotReplayed
	}
	t.seen[b.NodeID] = struct{}{}
	return nil
}

// Count returns the number of distinct endorsing nodes recorded so far.
func (t *Tally) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.seen)
}

// Endorsed reports whether the tally has reached the required threshold
// given onlineNodeCount peers currently online (>= 80%, per spec).
func (t *Tally) Endorsed(onlineNodeCount int) bool {
	if onlineNodeCount <= 0 {
		return false
	}
	t.mu.Lock()
	count := len(t.seen)
	t.mu.Unlock()
	// count/onlineNodeCount >= 0.8  <=>  count*5 >= onlineNodeCount*4
	return count*5 >= onlineNodeCount*4
}
