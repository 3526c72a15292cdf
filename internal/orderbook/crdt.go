// Package orderbook implements the CRDT order book: an OR-Set of Orders
// keyed by order_id, tagged with Hybrid Logical Clock timestamps so
// concurrent adds/cancels from different nodes converge to the same state
// without coordination.
package orderbook

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/driftmesh/driftmesh/pkg/logging"
)

var log = logging.GetDefault().Component("crdt")

// Entry is an OR-Set element: an Order paired with the HLC tag of the
// operation that produced it (admission or cancellation).
type Entry struct {
	Order Order     `json:"order"`
	Tag   Timestamp `json:"tag"`
}

// State is the per-shard CRDT: an adds-set and a tombstones-set, both keyed
// by order_id. Live orders are adds not present in tombstones and not
// expired. Merging two States is commutative, associative and idempotent —
// each key independently resolves to the entry with the "winning" tag.
type State struct {
	mu         sync.RWMutex
	ShardID    uint32
	Adds       map[string]Entry `json:"adds"`
	Tombstones map[string]Entry `json:"tombstones"`
}

// NewState creates an empty CRDT state for shardID.
func NewState(shardID uint32) *State {
	return &State{
		ShardID:    shardID,
		Adds:       make(map[string]Entry),
		Tombstones: make(map[string]Entry),
	}
}

// AddOrder admits order into the adds-set tagged with tag. If an entry for
// the same order_id already exists (a concurrent add observed twice, e.g.
// via gossip replay or two racing admissions), the winner is resolved by:
// (a) signature validity — an entry whose order fails signature
// verification always loses; (b) higher HLC tag; (c) lexicographically
// greater order_id as the final, always-decidable tie-break.
func (s *State) AddOrder(order Order, tag Timestamp) error {
	if err := order.Validate(); err != nil {
		return fmt.Errorf("add_order: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	candidate := Entry{Order: order, Tag: tag}
	if existing, ok := s.Adds[order.OrderID]; ok {
		s.Adds[order.OrderID] = resolveWinner(existing, candidate)
		return nil
	}
	s.Adds[order.OrderID] = candidate
	return nil
}

// CancelOrder tombstones orderID as of tag. Concurrent cancels (e.g. the
// same user cancelling from two devices) resolve by the same HLC-tag rule
// as AddOrder, keeping the scheme uniform across the CRDT.
func (s *State) CancelOrder(orderID string, tag Timestamp) {
	s.mu.Lock()
	defer s.mu.Unlock()

	candidate := Entry{Order: Order{OrderID: orderID}, Tag: tag}
	if existing, ok := s.Tombstones[orderID]; ok {
		s.Tombstones[orderID] = resolveWinner(existing, candidate)
		return
	}
	s.Tombstones[orderID] = candidate
}

// resolveWinner picks the entry that should survive a conflict on the same
// key. A signature-invalid entry always loses to a valid one; otherwise the
// higher HLC tag wins; ties (impossible in practice, since HLC tags embed
// node_id) fall back to lexicographic order_id.
func resolveWinner(a, b Entry) Entry {
	aValid := a.Order.Signature == nil || a.Order.VerifySignature()
	bValid := b.Order.Signature == nil || b.Order.VerifySignature()
	if aValid != bValid {
		if bValid {
			return b
		}
		return a
	}

	switch a.Tag.Compare(b.Tag) {
	case 1:
		return a
	case -1:
		return b
	default:
		if a.Order.OrderID >= b.Order.OrderID {
			return a
		}
		return b
	}
}

// Merge folds other into s. Commutative, associative and idempotent: each
// key is resolved independently by resolveWinner, so merging the same delta
// twice, or merging A-then-B vs B-then-A, converges to the same state.
func (s *State) Merge(other *State) {
	other.mu.RLock()
	adds := make([]Entry, 0, len(other.Adds))
	for _, e := range other.Adds {
		adds = append(adds, e)
	}
	tombstones := make([]Entry, 0, len(other.Tombstones))
	for _, e := range other.Tombstones {
		tombstones = append(tombstones, e)
	}
	other.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range adds {
		if existing, ok := s.Adds[e.Order.OrderID]; ok {
			s.Adds[e.Order.OrderID] = resolveWinner(existing, e)
		} else {
			s.Adds[e.Order.OrderID] = e
		}
	}
	for _, e := range tombstones {
		key := e.Order.OrderID
		if existing, ok := s.Tombstones[key]; ok {
			s.Tombstones[key] = resolveWinner(existing, e)
		} else {
			s.Tombstones[key] = e
		}
	}
}

// LiveOrders returns every order that is admitted, not tombstoned, and not
// expired as of now, ordered deterministically by (price, timestamp,
// order_id) as required by §4.C's live view contract. Market orders (price
// zero) sort first within that order since they carry no price.
func (s *State) LiveOrders(now time.Time) []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Order, 0, len(s.Adds))
	for id, e := range s.Adds {
		if _, tombstoned := s.Tombstones[id]; tombstoned {
			continue
		}
		if e.Order.IsExpired(now) {
			continue
		}
		out = append(out, e.Order)
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.IsMarket() != b.IsMarket() {
			return a.IsMarket()
		}
		if !a.Price.Equal(b.Price) {
			return a.Price.LessThan(b.Price)
		}
		if a.Timestamp != b.Timestamp {
			return a.Timestamp < b.Timestamp
		}
		return a.OrderID < b.OrderID
	})
	return out
}

// Entries returns copies of the full add-set and tombstone-set, for gossip
// delta construction and snapshot export. Callers must not rely on map
// iteration order; LiveOrders provides the deterministic view.
func (s *State) Entries() (adds, tombstones []Entry) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	adds = make([]Entry, 0, len(s.Adds))
	for _, e := range s.Adds {
		adds = append(adds, e)
	}
	tombstones = make([]Entry, 0, len(s.Tombstones))
	for _, e := range s.Tombstones {
		tombstones = append(tombstones, e)
	}
	return adds, tombstones
}

// Get returns the live order for orderID, if any.
func (s *State) Get(orderID string) (Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, tombstoned := s.Tombstones[orderID]; tombstoned {
		return Order{}, false
	}
	e, ok := s.Adds[orderID]
	if !ok {
		return Order{}, false
	}
	return e.Order, true
}

// ApplyFill updates an order's filled_quantity and status after the
// matching engine executes a trade against it. It is a single-order
// convenience wrapper around ApplyFills; see that method for the
// concurrent-cancel semantics.
func (s *State) ApplyFill(orderID string, newFilled Order, tag Timestamp) error {
	return s.ApplyFills([]FillUpdate{{OrderID: orderID, Order: newFilled, Tag: tag}})
}

// FillUpdate pairs an order's post-fill state with the HLC tag it should be
// committed under, for use with ApplyFills.
type FillUpdate struct {
	OrderID string
	Order   Order
	Tag     Timestamp
}

// ApplyFills validates every update in updates against the current state —
// signature, monotonic filled_quantity, and the concurrent-cancel
// happens-before rule — and, only if every one of them is admissible,
// commits them all under a single lock acquisition. If any update is
// rejected, none are applied: a trade's two legs must either both advance
// or neither does, so the matching engine never has to unwind a
// half-committed fill by hand when the other side loses a race against a
// concurrent cancel.
//
// A rejected update due to a concurrent cancel returns a *CancelledFillError
// naming the order that lost the race; s.Tombstones still governs
// LiveOrders/Get regardless of which side wins, so a winning fill updates
// filled_quantity on an order callers can no longer match again.
func (s *State) ApplyFills(updates []FillUpdate) error {
	for _, u := range updates {
		if err := u.Order.Validate(); err != nil {
			return fmt.Errorf("apply_fill: %w", err)
		}
		if u.Order.OrderID != u.OrderID {
			return fmt.Errorf("apply_fill: order_id mismatch")
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range updates {
		if tomb, tombstoned := s.Tombstones[u.OrderID]; tombstoned && !u.Tag.HappensBefore(tomb.Tag) {
			return &CancelledFillError{OrderID: u.OrderID}
		}
		existing, ok := s.Adds[u.OrderID]
		if !ok {
			return fmt.Errorf("apply_fill: unknown order %s", u.OrderID)
		}
		if u.Order.FilledQuantity.LessThan(existing.Order.FilledQuantity) {
			return fmt.Errorf("apply_fill: filled_quantity must be monotonically non-decreasing")
		}
	}

	for _, u := range updates {
		s.Adds[u.OrderID] = Entry{Order: u.Order, Tag: u.Tag}
	}
	return nil
}

// Snapshot is the wire/storage form of a State: a monotonically
// versioned blob. Snapshots with higher versions supersede lower ones for
// the same shard.
type Snapshot struct {
	ShardID uint32 `json:"shard_id"`
	Version uint64 `json:"version"`
	Data    []byte `json:"data"`
}

// EncodeSnapshot serializes s at the given version.
func (s *State) EncodeSnapshot(version uint64) (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	payload := struct {
		Adds       map[string]Entry `json:"adds"`
		Tombstones map[string]Entry `json:"tombstones"`
	}{Adds: s.Adds, Tombstones: s.Tombstones}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return &Snapshot{ShardID: s.ShardID, Version: version, Data: data}, nil
}

// ApplySnapshot merges a decoded snapshot's contents into s. Unlike Merge,
// this is used for full-state reconciliation (initial sync, pull-mode
// gossip) rather than incremental deltas, but shares the same convergent
// merge logic.
func (s *State) ApplySnapshot(snap *Snapshot) error {
	var payload struct {
		Adds       map[string]Entry `json:"adds"`
		Tombstones map[string]Entry `json:"tombstones"`
	}
	if err := json.Unmarshal(snap.Data, &payload); err != nil {
		return fmt.Errorf("apply snapshot: %w", err)
	}

	other := &State{ShardID: snap.ShardID, Adds: payload.Adds, Tombstones: payload.Tombstones}
	s.Merge(other)
	log.Debug("applied snapshot", "shard_id", snap.ShardID, "version", snap.Version, "entries", len(payload.Adds))
	return nil
}
