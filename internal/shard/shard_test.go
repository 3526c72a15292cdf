package shard

import (
	"bytes"
	"sort"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/driftmesh/driftmesh/internal/crypto"
	"github.com/driftmesh/driftmesh/internal/orderbook"
	"github.com/driftmesh/driftmesh/internal/storage"
)

type fakeStore struct {
	data map[string][]byte
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: make(map[string][]byte)}
}

func (f *fakeStore) Put(cf string, key, value []byte) error {
	f.data[cf+"|"+string(key)] = append([]byte(nil), value...)
	return nil
}

func (f *fakeStore) IterPrefix(cf string, prefix []byte) ([]storage.KVEntry, error) {
	var entries []storage.KVEntry
	cfPrefix := cf + "|"
	for k, v := range f.data {
		if !bytes.HasPrefix([]byte(k), []byte(cfPrefix)) {
			continue
		}
		key := []byte(k[len(cfPrefix):])
		if !bytes.HasPrefix(key, prefix) {
			continue
		}
		entries = append(entries, storage.KVEntry{Key: key, Value: v})
	}
	sort.Slice(entries, func(i, j int) bool { return bytes.Compare(entries[i].Key, entries[j].Key) < 0 })
	return entries, nil
}

type recordingChain struct {
	anchors int
}

func (r *recordingChain) AnchorRoot(shardID uint32, version uint64, root [32]byte) error {
	r.anchors++
	return nil
}

func mustOrder(t *testing.T, id *crypto.Identity, orderID string) orderbook.Order {
	t.Helper()
	o := orderbook.Order{
		OrderID:        orderID,
		UserID:         "user-1",
		Asset:          "BTC/USD",
		Side:           orderbook.SideBuy,
		OrderType:      orderbook.OrderTypeLimit,
		Price:          decimal.RequireFromString("100"),
		BaseQuantity:   decimal.RequireFromString("1"),
		FilledQuantity: decimal.Zero,
		Timestamp:      1000,
		ValidUntil:     1000 + 3600,
		Status:         orderbook.StatusOpen,
	}
	o.SignWith(id)
	return o
}

func TestSubscribeCreatesShardAndTracksSubscribers(t *testing.T) {
	mgr := New(newFakeStore(), nil)
	mgr.Subscribe("node-a", 1)
	mgr.Subscribe("node-b", 1)

	require.Equal(t, []uint32{1}, mgr.Shards())
	require.Equal(t, []string{"node-a", "node-b"}, mgr.Subscribers(1))

	mgr.Unsubscribe("node-a", 1)
	require.Equal(t, []string{"node-b"}, mgr.Subscribers(1))
}

func TestMergeCreatesUnknownShard(t *testing.T) {
	mgr := New(newFakeStore(), nil)
	id, err := crypto.NewIdentity()
	require.NoError(t, err)

	remote := orderbook.NewState(2)
	require.NoError(t, remote.AddOrder(mustOrder(t, id, "order-1"), orderbook.Timestamp{PhysicalMs: 1, NodeID: "remote"}))

	require.NoError(t, mgr.Merge(2, remote))

	state, ok := mgr.State(2)
	require.True(t, ok)
	_, ok = state.Get("order-1")
	require.True(t, ok)
}

func TestCheckpointPersistsAndAnchors(t *testing.T) {
	store := newFakeStore()
	chain := &recordingChain{}
	mgr := New(store, chain)

	id, err := crypto.NewIdentity()
	require.NoError(t, err)

	mgr.CreateShard(1)
	state, _ := mgr.State(1)
	require.NoError(t, state.AddOrder(mustOrder(t, id, "order-1"), orderbook.Timestamp{PhysicalMs: 1, NodeID: "a"}))

	require.NoError(t, mgr.Checkpoint(1))
	require.Equal(t, uint64(1), mgr.LatestVersion(1))
	require.Equal(t, 1, chain.anchors)

	require.NoError(t, mgr.Checkpoint(1))
	require.Equal(t, uint64(2), mgr.LatestVersion(1))
}

func TestLoadCheckpointsRestoresLatestVersionPerShard(t *testing.T) {
	store := newFakeStore()
	id, err := crypto.NewIdentity()
	require.NoError(t, err)

	mgr := New(store, nil)
	mgr.CreateShard(1)
	state, _ := mgr.State(1)
	require.NoError(t, state.AddOrder(mustOrder(t, id, "order-1"), orderbook.Timestamp{PhysicalMs: 1, NodeID: "a"}))
	require.NoError(t, mgr.Checkpoint(1))
	require.NoError(t, state.AddOrder(mustOrder(t, id, "order-2"), orderbook.Timestamp{PhysicalMs: 2, NodeID: "a"}))
	require.NoError(t, mgr.Checkpoint(1))

	restored := New(store, nil)
	require.NoError(t, restored.LoadCheckpoints())
	require.Equal(t, uint64(2), restored.LatestVersion(1))

	rs, ok := restored.State(1)
	require.True(t, ok)
	_, ok = rs.Get("order-1")
	require.True(t, ok)
	_, ok = rs.Get("order-2")
	require.True(t, ok)
}

func TestSnapshotAndApplySnapshotRoundTrip(t *testing.T) {
	store := newFakeStore()
	id, err := crypto.NewIdentity()
	require.NoError(t, err)

	mgr := New(store, nil)
	mgr.CreateShard(1)
	state, _ := mgr.State(1)
	require.NoError(t, state.AddOrder(mustOrder(t, id, "order-1"), orderbook.Timestamp{PhysicalMs: 1, NodeID: "a"}))

	snap, err := mgr.Snapshot(1)
	require.NoError(t, err)

	other := New(newFakeStore(), nil)
	require.NoError(t, other.ApplySnapshot(1, snap))

	os, ok := other.State(1)
	require.True(t, ok)
	_, ok = os.Get("order-1")
	require.True(t, ok)
	require.Equal(t, snap.Version, other.LatestVersion(1))
}
