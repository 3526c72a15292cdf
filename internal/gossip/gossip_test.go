package gossip

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/driftmesh/driftmesh/internal/crypto"
	"github.com/driftmesh/driftmesh/internal/orderbook"
)

// pipeStream glues two io.Pipe halves into one Stream.
type pipeStream struct {
	io.Reader
	io.Writer
	closer io.Closer
}

func (p *pipeStream) Close() error { return p.closer.Close() }

// memTransport is an in-memory Transport connecting named nodes directly,
// for exercising the gossip protocol without a real libp2p host.
type memTransport struct {
	mu       sync.Mutex
	self     string
	peers    map[string]*memTransport
	handlers map[string]func(peerID string, s Stream)
	dropped  map[string]bool
}

func newMemNetwork(names ...string) map[string]*memTransport {
	net := make(map[string]*memTransport, len(names))
	for _, n := range names {
		net[n] = &memTransport{self: n, peers: make(map[string]*memTransport), handlers: make(map[string]func(string, Stream)), dropped: make(map[string]bool)}
	}
	for _, a := range net {
		for name, b := range net {
			if name != a.self {
				a.peers[name] = b
			}
		}
	}
	return net
}

func (m *memTransport) OpenStream(ctx context.Context, peerID, protocolID string) (Stream, error) {
	m.mu.Lock()
	target, ok := m.peers[peerID]
	dropped := m.dropped[peerID]
	m.mu.Unlock()
	if !ok || dropped {
		return nil, fmt.Errorf("no route to %s", peerID)
	}

	clientR, serverW := io.Pipe()
	serverR, clientW := io.Pipe()

	target.mu.Lock()
	handler := target.handlers[protocolID]
	target.mu.Unlock()
	if handler != nil {
		go handler(m.self, &pipeStream{Reader: serverR, Writer: serverW, closer: serverW})
	}

	return &pipeStream{Reader: clientR, Writer: clientW, closer: clientW}, nil
}

func (m *memTransport) SetStreamHandler(protocolID string, handler func(peerID string, s Stream)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[protocolID] = handler
}

func (m *memTransport) Peers() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.peers))
	for name := range m.peers {
		if !m.dropped[name] {
			out = append(out, name)
		}
	}
	return out
}

func (m *memTransport) Disconnect(peerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dropped[peerID] = true
	return nil
}

// memShardStore is a minimal in-memory ShardStore for tests.
type memShardStore struct {
	mu       sync.Mutex
	states   map[uint32]*orderbook.State
	versions map[uint32]uint64
}

func newMemShardStore(shardIDs ...uint32) *memShardStore {
	s := &memShardStore{states: make(map[uint32]*orderbook.State), versions: make(map[uint32]uint64)}
	for _, id := range shardIDs {
		s.states[id] = orderbook.NewState(id)
	}
	return s
}

func (s *memShardStore) Shards() []uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]uint32, 0, len(s.states))
	for id := range s.states {
		out = append(out, id)
	}
	return out
}

func (s *memShardStore) State(shardID uint32) (*orderbook.State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[shardID]
	return st, ok
}

func (s *memShardStore) Merge(shardID uint32, remote *orderbook.State) error {
	s.mu.Lock()
	st, ok := s.states[shardID]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("unknown shard %d", shardID)
	}
	st.Merge(remote)
	return nil
}

func (s *memShardStore) LatestVersion(shardID uint32) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.versions[shardID]
}

func (s *memShardStore) Snapshot(shardID uint32) (*orderbook.Snapshot, error) {
	s.mu.Lock()
	st, ok := s.states[shardID]
	version := s.versions[shardID]
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("unknown shard %d", shardID)
	}
	return st.EncodeSnapshot(version)
}

func (s *memShardStore) ApplySnapshot(shardID uint32, snap *orderbook.Snapshot) error {
	s.mu.Lock()
	st, ok := s.states[shardID]
	if s.versions[shardID] < snap.Version {
		s.versions[shardID] = snap.Version
	}
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("unknown shard %d", shardID)
	}
	return st.ApplySnapshot(snap)
}

func (s *memShardStore) HasAnySnapshot() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.versions {
		if v > 0 {
			return true
		}
	}
	return false
}

func testOrder(t *testing.T, id *crypto.Identity, orderID string) orderbook.Order {
	t.Helper()
	now := time.Now().Unix()
	o := orderbook.Order{
		OrderID:        orderID,
		UserID:         "user-1",
		Asset:          "BTC/USD",
		Side:           orderbook.SideBuy,
		OrderType:      orderbook.OrderTypeLimit,
		Price:          decimal.RequireFromString("1"),
		BaseQuantity:   decimal.RequireFromString("1"),
		FilledQuantity: decimal.Zero,
		Timestamp:      now,
		ValidUntil:     now + 3600,
		Status:         orderbook.StatusOpen,
	}
	o.SignWith(id)
	return o
}

func TestGossipBroadcastDeltaConverges(t *testing.T) {
	idA, err := crypto.NewIdentity()
	require.NoError(t, err)
	idB, err := crypto.NewIdentity()
	require.NoError(t, err)

	net := newMemNetwork("node-a", "node-b")
	storeA := newMemShardStore(1)
	storeB := newMemShardStore(1)

	gossA := New(net["node-a"], storeA, idA, DefaultConfig())
	gossB := New(net["node-b"], storeB, idB, DefaultConfig())
	gossA.Start()
	gossB.Start()
	defer gossA.Stop()
	defer gossB.Stop()

	stateA, _ := storeA.State(1)
	order := testOrder(t, idA, "order-1")
	require.NoError(t, stateA.AddOrder(order, orderbook.Timestamp{PhysicalMs: 1, NodeID: "node-a"}))

	require.NoError(t, gossA.BroadcastDelta(1, stateA))

	require.Eventually(t, func() bool {
		stateB, _ := storeB.State(1)
		_, ok := stateB.Get("order-1")
		return ok
	}, 2*time.Second, 10*time.Millisecond)
}

func TestGossipDropsInvalidSignatureAndFlagsSuspicion(t *testing.T) {
	idA, err := crypto.NewIdentity()
	require.NoError(t, err)
	idB, err := crypto.NewIdentity()
	require.NoError(t, err)

	net := newMemNetwork("node-a", "node-b")
	storeA := newMemShardStore(1)
	storeB := newMemShardStore(1)

	cfg := DefaultConfig()
	cfg.SuspicionThreshold = 2
	gossB := New(net["node-b"], storeB, idB, cfg)
	gossB.Start()
	defer gossB.Stop()

	gossA := New(net["node-a"], storeA, idA, cfg)

	payload := DeltaPayload{ShardID: 1}
	env, err := newEnvelope(MsgDelta, payload, freshNonce(), idA)
	require.NoError(t, err)
	env.Signature[0] ^= 0xFF // tamper after signing

	stream, err := gossA.transport.OpenStream(context.Background(), "node-b", Protocol)
	require.NoError(t, err)
	require.NoError(t, json.NewEncoder(stream).Encode(env))
	stream.Close()

	require.Eventually(t, func() bool {
		return len(net["node-b"].dropped) == 0 && gossB.tracker.SuspicionCount("node-a") >= 1
	}, time.Second, 10*time.Millisecond)
}

func TestGossipInitialSync(t *testing.T) {
	idA, err := crypto.NewIdentity()
	require.NoError(t, err)
	idB, err := crypto.NewIdentity()
	require.NoError(t, err)

	net := newMemNetwork("node-a", "node-b")

	storeA := newMemShardStore(1)
	stateA, _ := storeA.State(1)
	order := testOrder(t, idA, "order-1")
	require.NoError(t, stateA.AddOrder(order, orderbook.Timestamp{PhysicalMs: 1, NodeID: "node-a"}))
	storeA.versions[1] = 1

	gossA := New(net["node-a"], storeA, idA, DefaultConfig())
	gossA.Start()
	defer gossA.Stop()

	storeB := newMemShardStore(1)
	gossB := New(net["node-b"], storeB, idB, DefaultConfig())
	gossB.NotePeer("node-a")

	require.NoError(t, gossB.RequestAllSnapshots(context.Background(), "node-a"))

	stateB, _ := storeB.State(1)
	_, ok := stateB.Get("order-1")
	require.True(t, ok)
}

func TestSuspicionThresholdTriggersDisconnect(t *testing.T) {
	disconnected := make(chan string, 1)
	tracker := newPeerTracker(2, func(peerID string) { disconnected <- peerID })

	tracker.Flag("peer-x")
	select {
	case <-disconnected:
		t.Fatal("disconnected before threshold reached")
	default:
	}

	tracker.Flag("peer-x")
	select {
	case got := <-disconnected:
		require.Equal(t, "peer-x", got)
	case <-time.After(time.Second):
		t.Fatal("expected disconnect after crossing threshold")
	}
}

func TestNonceReplayRejected(t *testing.T) {
	tracker := newPeerTracker(5, nil)
	require.False(t, tracker.SeenNonce("abc"))
	require.True(t, tracker.SeenNonce("abc"))
}
