package core

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/driftmesh/driftmesh/internal/crypto"
	"github.com/driftmesh/driftmesh/internal/fees"
	"github.com/driftmesh/driftmesh/internal/gossip"
	"github.com/driftmesh/driftmesh/internal/orderbook"
	"github.com/driftmesh/driftmesh/internal/storage"
)

func testFeeConfig() fees.Config {
	return fees.Config{
		StandardRate:   decimal.RequireFromString("0.01"),
		AtomicSwapRate: decimal.RequireFromString("0.005"),
		Split: []fees.Split{
			{Recipient: "founder", Share: decimal.RequireFromString("0.5")},
			{Recipient: "dev", Share: decimal.RequireFromString("0.3")},
			{Recipient: "operators", Share: decimal.RequireFromString("0.2")},
		},
	}
}

func newTestContext(t *testing.T) *Context {
	t.Helper()
	store, err := storage.New(&storage.Config{DataDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	id, err := crypto.NewIdentity()
	require.NoError(t, err)

	c, err := New(Config{
		NodeID:   "node-a",
		Identity: id,
		Gossip:   gossip.DefaultConfig(),
		Fees:     testFeeConfig(),
		ShardIDs: []uint32{1},
	}, store)
	require.NoError(t, err)
	return c
}

func mustOrder(t *testing.T, id *crypto.Identity, orderID string, side orderbook.Side, price string) orderbook.Order {
	t.Helper()
	o := orderbook.Order{
		OrderID:        orderID,
		UserID:         "user-1",
		Asset:          "BTC/USD",
		Side:           side,
		OrderType:      orderbook.OrderTypeLimit,
		Price:          decimal.RequireFromString(price),
		BaseQuantity:   decimal.RequireFromString("1"),
		FilledQuantity: decimal.Zero,
		Timestamp:      1000,
		ValidUntil:     1000 + 3600,
		Status:         orderbook.StatusOpen,
	}
	o.SignWith(id)
	return o
}

func TestNewWiresShardsAndMatchers(t *testing.T) {
	c := newTestContext(t)
	_, ok := c.Shards.State(1)
	require.True(t, ok)
	_, ok = c.Matcher(1)
	require.True(t, ok)
}

func TestTickAccruesFeesAndAuditsTrade(t *testing.T) {
	c := newTestContext(t)
	id, err := crypto.NewIdentity()
	require.NoError(t, err)

	state, ok := c.Shards.State(1)
	require.True(t, ok)

	require.NoError(t, state.AddOrder(mustOrder(t, id, "buy-1", orderbook.SideBuy, "100"), orderbook.Timestamp{PhysicalMs: 1, NodeID: "a"}))
	require.NoError(t, state.AddOrder(mustOrder(t, id, "sell-1", orderbook.SideSell, "100"), orderbook.Timestamp{PhysicalMs: 2, NodeID: "a"}))

	trades, err := c.Tick(1, "BTC/USD")
	require.NoError(t, err)
	require.Len(t, trades, 1)

	balance, err := c.Fees.PoolBalance(feeEpoch(trades[0].Timestamp))
	require.NoError(t, err)
	require.True(t, balance.IsPositive())

	entries, err := c.Audit.Since(0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestTickUnknownShardErrors(t *testing.T) {
	c := newTestContext(t)
	_, err := c.Tick(99, "BTC/USD")
	require.Error(t, err)
}

func TestSubmitCancelQueryOrders(t *testing.T) {
	c := newTestContext(t)
	id, err := crypto.NewIdentity()
	require.NoError(t, err)

	o := mustOrder(t, id, "order-1", orderbook.SideBuy, "100")
	require.NoError(t, c.SubmitOrder(1, o))

	live, err := c.QueryOrders(1)
	require.NoError(t, err)
	require.Len(t, live, 1)
	require.Equal(t, "order-1", live[0].OrderID)

	require.NoError(t, c.CancelOrder(1, "order-1"))
	live, err = c.QueryOrders(1)
	require.NoError(t, err)
	require.Empty(t, live)
}

func TestSubmitOrderUnknownShardErrors(t *testing.T) {
	c := newTestContext(t)
	id, err := crypto.NewIdentity()
	require.NoError(t, err)
	err = c.SubmitOrder(99, mustOrder(t, id, "order-1", orderbook.SideBuy, "100"))
	require.Error(t, err)
}

func TestSnapshotRoundTrip(t *testing.T) {
	c := newTestContext(t)
	id, err := crypto.NewIdentity()
	require.NoError(t, err)
	require.NoError(t, c.SubmitOrder(1, mustOrder(t, id, "order-1", orderbook.SideBuy, "100")))

	snap, err := c.GetSnapshot(1)
	require.NoError(t, err)

	other := newTestContext(t)
	require.NoError(t, other.ApplySnapshot(1, snap))

	live, err := other.QueryOrders(1)
	require.NoError(t, err)
	require.Len(t, live, 1)
	require.Equal(t, "order-1", live[0].OrderID)
}

func TestSubscribeTradesReceivesMatch(t *testing.T) {
	c := newTestContext(t)
	id, err := crypto.NewIdentity()
	require.NoError(t, err)

	trades, cancel := c.SubscribeTrades(4)
	defer cancel()

	state, ok := c.Shards.State(1)
	require.True(t, ok)
	require.NoError(t, state.AddOrder(mustOrder(t, id, "buy-1", orderbook.SideBuy, "100"), orderbook.Timestamp{PhysicalMs: 1, NodeID: "a"}))
	require.NoError(t, state.AddOrder(mustOrder(t, id, "sell-1", orderbook.SideSell, "100"), orderbook.Timestamp{PhysicalMs: 2, NodeID: "a"}))

	_, err = c.Tick(1, "BTC/USD")
	require.NoError(t, err)

	select {
	case tr := <-trades:
		require.Equal(t, "buy-1", tr.BuyOrderID)
	case <-time.After(time.Second):
		t.Fatal("expected a trade on the subscription channel")
	}
}

type fakeSwapInitiator struct {
	mu    sync.Mutex
	calls []string
}

func (f *fakeSwapInitiator) InitiateSwap(ctx context.Context, tradeID, orderID, offerChain string, offerAmount uint64, requestChain string, requestAmount uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, tradeID)
	return nil
}

func (f *fakeSwapInitiator) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func TestTickInitiatesSwapSettlement(t *testing.T) {
	c := newTestContext(t)
	fake := &fakeSwapInitiator{}
	c.BindSwapInitiator(fake)

	id, err := crypto.NewIdentity()
	require.NoError(t, err)
	state, ok := c.Shards.State(1)
	require.True(t, ok)
	require.NoError(t, state.AddOrder(mustOrder(t, id, "buy-1", orderbook.SideBuy, "100"), orderbook.Timestamp{PhysicalMs: 1, NodeID: "a"}))
	require.NoError(t, state.AddOrder(mustOrder(t, id, "sell-1", orderbook.SideSell, "100"), orderbook.Timestamp{PhysicalMs: 2, NodeID: "a"}))

	_, err = c.Tick(1, "BTC/USD")
	require.NoError(t, err)

	require.Eventually(t, func() bool { return fake.callCount() == 1 }, time.Second, 10*time.Millisecond)
}

func TestSplitAsset(t *testing.T) {
	base, quote := splitAsset("BTC/USD")
	require.Equal(t, "BTC", base)
	require.Equal(t, "USD", quote)

	base, quote = splitAsset("nosep")
	require.Empty(t, base)
	require.Empty(t, quote)
}
