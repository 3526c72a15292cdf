// Package shard implements the shard manager: it owns the table mapping
// shard_id to its CRDT order book state, tracks which peers subscribe to
// which shards, and checkpoints periodic snapshots to storage. It satisfies
// gossip.ShardStore so the gossip layer can route deltas and snapshot
// exchange through it without depending on storage or matching directly.
package shard

import (
	"encoding/binary"
	"fmt"
	"sort"
	"sync"

	"github.com/driftmesh/driftmesh/internal/orderbook"
	"github.com/driftmesh/driftmesh/internal/storage"
	"github.com/driftmesh/driftmesh/pkg/logging"
)

var log = logging.GetDefault().Component("shard")

const columnFamily = "crdt_snapshots"

// Store is the persistence surface the manager needs from internal/storage.
type Store interface {
	Put(cf string, key, value []byte) error
	IterPrefix(cf string, prefix []byte) ([]storage.KVEntry, error)
}

// ChainClient anchors a shard snapshot's Merkle root to an external chain.
// Optional: a Manager with a nil ChainClient simply skips anchoring.
type ChainClient interface {
	AnchorRoot(shardID uint32, version uint64, root [32]byte) error
}

type shardEntry struct {
	state       *orderbook.State
	version     uint64
	subscribers map[string]struct{}
}

// Manager owns every locally-hosted shard's CRDT state plus its subscriber
// set, and checkpoints snapshots to the crdt_snapshots column family. The
// table itself is guarded by a single mutex; each shard's orderbook.State carries
// its own lock for the actual order data, so checkpointing one shard never
// blocks admission into another.
type Manager struct {
	mu     sync.RWMutex
	shards map[uint32]*shardEntry

	store Store
	chain ChainClient
}

// New creates an empty shard manager. store persists checkpoints; chain may
// be nil to skip Merkle-root anchoring.
func New(store Store, chain ChainClient) *Manager {
	return &Manager{
		shards: make(map[uint32]*shardEntry),
		store:  store,
		chain:  chain,
	}
}

// CreateShard registers shardID with an empty CRDT state if it does not
// already exist. Idempotent.
func (m *Manager) CreateShard(shardID uint32) *orderbook.State {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.shards[shardID]; ok {
		return e.state
	}
	e := &shardEntry{
		state:       orderbook.NewState(shardID),
		subscribers: make(map[string]struct{}),
	}
	m.shards[shardID] = e
	log.Info("shard created", "shard_id", shardID)
	return e.state
}

// Subscribe registers nodeID as a subscriber of shardID, creating the shard
// if it does not yet exist.
func (m *Manager) Subscribe(nodeID string, shardID uint32) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.shards[shardID]
	if !ok {
		e = &shardEntry{
			state:       orderbook.NewState(shardID),
			subscribers: make(map[string]struct{}),
		}
		m.shards[shardID] = e
	}
	e.subscribers[nodeID] = struct{}{}
}

// Unsubscribe removes nodeID from shardID's subscriber set. No-op if either
// is unknown.
func (m *Manager) Unsubscribe(nodeID string, shardID uint32) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.shards[shardID]
	if !ok {
		return
	}
	delete(e.subscribers, nodeID)
}

// Subscribers returns the node IDs currently subscribed to shardID.
func (m *Manager) Subscribers(shardID uint32) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.shards[shardID]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(e.subscribers))
	for id := range e.subscribers {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Shards returns the ids of every shard this manager hosts, satisfying
// gossip.ShardStore.
func (m *Manager) Shards() []uint32 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]uint32, 0, len(m.shards))
	for id := range m.shards {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// State returns shardID's CRDT state, satisfying gossip.ShardStore.
func (m *Manager) State(shardID uint32) (*orderbook.State, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.shards[shardID]
	if !ok {
		return nil, false
	}
	return e.state, true
}

// Merge applies a remote replica into shardID's local state, satisfying
// gossip.ShardStore. Creates the shard locally if this node has not seen it
// before (e.g. first delta from a peer for a shard this node just
// subscribed to).
func (m *Manager) Merge(shardID uint32, remote *orderbook.State) error {
	m.mu.Lock()
	e, ok := m.shards[shardID]
	if !ok {
		e = &shardEntry{
			state:       orderbook.NewState(shardID),
			subscribers: make(map[string]struct{}),
		}
		m.shards[shardID] = e
	}
	m.mu.Unlock()

	e.state.Merge(remote)
	return nil
}

// LatestVersion returns the highest checkpointed version for shardID,
// satisfying gossip.ShardStore. Zero if the shard has never been
// checkpointed.
func (m *Manager) LatestVersion(shardID uint32) uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.shards[shardID]
	if !ok {
		return 0
	}
	return e.version
}

// Snapshot encodes shardID's current state at its next version, satisfying
// gossip.ShardStore. Does not persist the checkpoint; call Checkpoint for
// that.
func (m *Manager) Snapshot(shardID uint32) (*orderbook.Snapshot, error) {
	m.mu.RLock()
	e, ok := m.shards[shardID]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("shard: unknown shard %d", shardID)
	}
	return e.state.EncodeSnapshot(e.version + 1)
}

// ApplySnapshot merges a received snapshot into shardID's local state and
// advances the tracked version if the snapshot's version is newer,
// satisfying gossip.ShardStore.
func (m *Manager) ApplySnapshot(shardID uint32, snap *orderbook.Snapshot) error {
	m.mu.Lock()
	e, ok := m.shards[shardID]
	if !ok {
		e = &shardEntry{
			state:       orderbook.NewState(shardID),
			subscribers: make(map[string]struct{}),
		}
		m.shards[shardID] = e
	}
	if snap.Version > e.version {
		e.version = snap.Version
	}
	m.mu.Unlock()

	return e.state.ApplySnapshot(snap)
}

// HasAnySnapshot reports whether this manager hosts at least one shard,
// satisfying gossip.ShardStore — used by initial-sync to decide whether a
// freshly-joined node has anything to offer peers yet.
func (m *Manager) HasAnySnapshot() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.shards) > 0
}

// Checkpoint snapshots shardID at its next version, persists it to the
// crdt_snapshots column family, advances the tracked version, and anchors
// its Merkle root via ChainClient if one is configured.
func (m *Manager) Checkpoint(shardID uint32) error {
	m.mu.RLock()
	e, ok := m.shards[shardID]
	m.mu.RUnlock()
	if !ok {
		return fmt.Errorf("shard: unknown shard %d", shardID)
	}

	version := e.version + 1
	snap, err := e.state.EncodeSnapshot(version)
	if err != nil {
		return fmt.Errorf("shard: encode snapshot: %w", err)
	}

	if err := m.store.Put(columnFamily, checkpointKey(shardID, version), snap.Data); err != nil {
		return fmt.Errorf("shard: persist checkpoint: %w", err)
	}

	m.mu.Lock()
	e.version = version
	m.mu.Unlock()

	if m.chain != nil {
		root := merkleRoot(snap.Data)
		if err := m.chain.AnchorRoot(shardID, version, root); err != nil {
			log.Warn("chain anchor failed", "shard_id", shardID, "version", version, "err", err)
		}
	}

	log.Info("shard checkpointed", "shard_id", shardID, "version", version, "bytes", len(snap.Data))
	return nil
}

// LoadCheckpoints restores every shard's latest persisted checkpoint from
// storage, for use on startup before gossip begins.
func (m *Manager) LoadCheckpoints() error {
	entries, err := m.store.IterPrefix(columnFamily, nil)
	if err != nil {
		return fmt.Errorf("shard: scan checkpoints: %w", err)
	}

	latest := make(map[uint32]*orderbook.Snapshot)
	for _, kv := range entries {
		shardID, version, ok := parseCheckpointKey(kv.Key)
		if !ok {
			continue
		}
		if existing, ok := latest[shardID]; ok && existing.Version >= version {
			continue
		}
		latest[shardID] = &orderbook.Snapshot{ShardID: shardID, Version: version, Data: kv.Value}
	}

	for shardID, snap := range latest {
		if err := m.ApplySnapshot(shardID, snap); err != nil {
			return fmt.Errorf("shard: restore shard %d: %w", shardID, err)
		}
	}
	return nil
}

func checkpointKey(shardID uint32, version uint64) []byte {
	key := make([]byte, 4+1+8)
	binary.BigEndian.PutUint32(key[:4], shardID)
	key[4] = '|'
	binary.BigEndian.PutUint64(key[5:], version)
	return key
}

func parseCheckpointKey(key []byte) (shardID uint32, version uint64, ok bool) {
	if len(key) != 13 || key[4] != '|' {
		return 0, 0, false
	}
	return binary.BigEndian.Uint32(key[:4]), binary.BigEndian.Uint64(key[5:]), true
}
