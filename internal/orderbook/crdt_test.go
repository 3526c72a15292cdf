package orderbook

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/driftmesh/driftmesh/internal/crypto"
)

func mustOrder(t *testing.T, id *crypto.Identity, orderID string, ts int64) Order {
	t.Helper()
	o := Order{
		OrderID:        orderID,
		UserID:         "user-1",
		Asset:          "BTC/USD",
		Side:           SideBuy,
		OrderType:      OrderTypeLimit,
		Price:          decimal.RequireFromString("100"),
		BaseQuantity:   decimal.RequireFromString("1"),
		FilledQuantity: decimal.Zero,
		Timestamp:      ts,
		ValidUntil:     ts + 3600,
		Status:         StatusOpen,
	}
	o.SignWith(id)
	return o
}

func TestStateAddAndLiveOrders(t *testing.T) {
	id, err := crypto.NewIdentity()
	require.NoError(t, err)

	s := NewState(1)
	now := time.Now().Unix()
	o := mustOrder(t, id, "order-1", now)

	require.NoError(t, s.AddOrder(o, Timestamp{PhysicalMs: 1, NodeID: "a"}))

	live := s.LiveOrders(time.Now())
	require.Len(t, live, 1)
	require.Equal(t, "order-1", live[0].OrderID)
}

func TestStateCancelRemovesFromLiveOrders(t *testing.T) {
	id, err := crypto.NewIdentity()
	require.NoError(t, err)

	s := NewState(1)
	now := time.Now().Unix()
	o := mustOrder(t, id, "order-1", now)

	require.NoError(t, s.AddOrder(o, Timestamp{PhysicalMs: 1, NodeID: "a"}))
	s.CancelOrder("order-1", Timestamp{PhysicalMs: 2, NodeID: "a"})

	require.Empty(t, s.LiveOrders(time.Now()))
	_, ok := s.Get("order-1")
	require.False(t, ok)
}

func TestStateConcurrentAddResolvesByHigherTag(t *testing.T) {
	id, err := crypto.NewIdentity()
	require.NoError(t, err)

	s := NewState(1)
	now := time.Now().Unix()

	earlier := mustOrder(t, id, "order-1", now)
	earlier.FilledQuantity = decimal.Zero
	later := mustOrder(t, id, "order-1", now)
	later.FilledQuantity = decimal.RequireFromString("0.2")
	later.SignWith(id)

	require.NoError(t, s.AddOrder(earlier, Timestamp{PhysicalMs: 1, NodeID: "a"}))
	require.NoError(t, s.AddOrder(later, Timestamp{PhysicalMs: 2, NodeID: "a"}))

	got, ok := s.Get("order-1")
	require.True(t, ok)
	require.True(t, got.FilledQuantity.Equal(decimal.RequireFromString("0.2")))
}

func TestStateConcurrentAddInvalidSignatureLoses(t *testing.T) {
	id, err := crypto.NewIdentity()
	require.NoError(t, err)

	s := NewState(1)
	now := time.Now().Unix()

	valid := mustOrder(t, id, "order-1", now)

	tampered := mustOrder(t, id, "order-1", now)
	tampered.BaseQuantity = decimal.RequireFromString("50")

	require.NoError(t, s.AddOrder(valid, Timestamp{PhysicalMs: 5, NodeID: "a"}))
	err = s.AddOrder(tampered, Timestamp{PhysicalMs: 10, NodeID: "a"})
	require.Error(t, err)

	got, ok := s.Get("order-1")
	require.True(t, ok)
	require.True(t, got.BaseQuantity.Equal(decimal.RequireFromString("1")))
}

func TestStateMergeIsCommutative(t *testing.T) {
	id, err := crypto.NewIdentity()
	require.NoError(t, err)

	now := time.Now().Unix()
	oA := mustOrder(t, id, "order-a", now)
	oB := mustOrder(t, id, "order-b", now)

	a := NewState(1)
	require.NoError(t, a.AddOrder(oA, Timestamp{PhysicalMs: 1, NodeID: "a"}))
	b := NewState(1)
	require.NoError(t, b.AddOrder(oB, Timestamp{PhysicalMs: 2, NodeID: "b"}))

	mergedAB := NewState(1)
	mergedAB.Merge(a)
	mergedAB.Merge(b)

	mergedBA := NewState(1)
	mergedBA.Merge(b)
	mergedBA.Merge(a)

	liveAB := mergedAB.LiveOrders(time.Now())
	liveBA := mergedBA.LiveOrders(time.Now())
	require.Equal(t, len(liveAB), len(liveBA))
	require.Equal(t, liveAB[0].OrderID, liveBA[0].OrderID)
	require.Equal(t, liveAB[1].OrderID, liveBA[1].OrderID)
}

func TestStateMergeIsIdempotent(t *testing.T) {
	id, err := crypto.NewIdentity()
	require.NoError(t, err)

	now := time.Now().Unix()
	o := mustOrder(t, id, "order-1", now)

	a := NewState(1)
	require.NoError(t, a.AddOrder(o, Timestamp{PhysicalMs: 1, NodeID: "a"}))

	b := NewState(1)
	b.Merge(a)
	b.Merge(a)
	b.Merge(a)

	require.Len(t, b.LiveOrders(time.Now()), 1)
}

func TestStateLiveOrdersDeterministicOrdering(t *testing.T) {
	id, err := crypto.NewIdentity()
	require.NoError(t, err)

	s := NewState(1)
	now := time.Now().Unix()

	cheap := mustOrder(t, id, "order-cheap", now)
	cheap.Price = decimal.RequireFromString("90")
	cheap.SignWith(id)

	expensive := mustOrder(t, id, "order-expensive", now)
	expensive.Price = decimal.RequireFromString("110")
	expensive.SignWith(id)

	market := mustOrder(t, id, "order-market", now)
	market.OrderType = OrderTypeMarket
	market.Price = decimal.Zero
	market.SignWith(id)

	require.NoError(t, s.AddOrder(expensive, Timestamp{PhysicalMs: 1, NodeID: "a"}))
	require.NoError(t, s.AddOrder(cheap, Timestamp{PhysicalMs: 2, NodeID: "a"}))
	require.NoError(t, s.AddOrder(market, Timestamp{PhysicalMs: 3, NodeID: "a"}))

	live := s.LiveOrders(time.Now())
	require.Equal(t, []string{"order-market", "order-cheap", "order-expensive"},
		[]string{live[0].OrderID, live[1].OrderID, live[2].OrderID})
}

func TestStateApplyFillRejectsRegression(t *testing.T) {
	id, err := crypto.NewIdentity()
	require.NoError(t, err)

	s := NewState(1)
	now := time.Now().Unix()
	o := mustOrder(t, id, "order-1", now)
	require.NoError(t, s.AddOrder(o, Timestamp{PhysicalMs: 1, NodeID: "a"}))

	filled := o
	filled.FilledQuantity = decimal.RequireFromString("0.5")
	filled.SignWith(id)
	require.NoError(t, s.ApplyFill("order-1", filled, Timestamp{PhysicalMs: 2, NodeID: "a"}))

	regressed := o
	regressed.FilledQuantity = decimal.Zero
	regressed.SignWith(id)
	require.Error(t, s.ApplyFill("order-1", regressed, Timestamp{PhysicalMs: 3, NodeID: "a"}))
}

func TestStateApplyFillBeatsConcurrentCancelWhenFillHappensBefore(t *testing.T) {
	id, err := crypto.NewIdentity()
	require.NoError(t, err)

	s := NewState(1)
	now := time.Now().Unix()
	o := mustOrder(t, id, "order-1", now)
	require.NoError(t, s.AddOrder(o, Timestamp{PhysicalMs: 1, NodeID: "a"}))

	// The cancel is tagged strictly after the fill: the fill was already
	// causally committed before the cancel was observed, so it stands.
	s.CancelOrder("order-1", Timestamp{PhysicalMs: 10, NodeID: "a"})

	filled := o
	filled.FilledQuantity = decimal.RequireFromString("1")
	filled.Status = StatusFilled
	filled.SignWith(id)
	err = s.ApplyFill("order-1", filled, Timestamp{PhysicalMs: 5, NodeID: "a"})
	require.NoError(t, err)

	got, ok := s.Get("order-1")
	require.False(t, ok) // still tombstoned: cancel governs LiveOrders/Get regardless
	_ = got
}

func TestStateApplyFillRejectedByConcurrentCancelWhenCancelHappensBefore(t *testing.T) {
	id, err := crypto.NewIdentity()
	require.NoError(t, err)

	s := NewState(1)
	now := time.Now().Unix()
	o := mustOrder(t, id, "order-1", now)
	require.NoError(t, s.AddOrder(o, Timestamp{PhysicalMs: 1, NodeID: "a"}))

	// The cancel is tagged before the fill attempt: the cancel pre-empts.
	s.CancelOrder("order-1", Timestamp{PhysicalMs: 2, NodeID: "a"})

	filled := o
	filled.FilledQuantity = decimal.RequireFromString("1")
	filled.Status = StatusFilled
	filled.SignWith(id)
	err = s.ApplyFill("order-1", filled, Timestamp{PhysicalMs: 5, NodeID: "a"})
	require.ErrorIs(t, err, ErrCancelled)
}

func TestStateApplyFillsIsAllOrNothingAcrossBothLegs(t *testing.T) {
	id, err := crypto.NewIdentity()
	require.NoError(t, err)

	s := NewState(1)
	now := time.Now().Unix()
	buy := mustOrder(t, id, "buy-1", now)
	sell := mustOrder(t, id, "sell-1", now)
	require.NoError(t, s.AddOrder(buy, Timestamp{PhysicalMs: 1, NodeID: "a"}))
	require.NoError(t, s.AddOrder(sell, Timestamp{PhysicalMs: 2, NodeID: "a"}))

	// sell-1 is cancelled with a tag that pre-empts the fill below.
	s.CancelOrder("sell-1", Timestamp{PhysicalMs: 3, NodeID: "a"})

	buyFilled := buy
	buyFilled.FilledQuantity = decimal.RequireFromString("1")
	buyFilled.SignWith(id)
	sellFilled := sell
	sellFilled.FilledQuantity = decimal.RequireFromString("1")
	sellFilled.SignWith(id)

	err = s.ApplyFills([]FillUpdate{
		{OrderID: "buy-1", Order: buyFilled, Tag: Timestamp{PhysicalMs: 4, NodeID: "a"}},
		{OrderID: "sell-1", Order: sellFilled, Tag: Timestamp{PhysicalMs: 4, NodeID: "a"}},
	})
	require.ErrorIs(t, err, ErrCancelled)

	var cancelled *CancelledFillError
	require.ErrorAs(t, err, &cancelled)
	require.Equal(t, "sell-1", cancelled.OrderID)

	// The buy leg must not have been committed either, even though it was
	// valid on its own: a trade's two legs rise or fall together.
	buyAfter, ok := s.Get("buy-1")
	require.True(t, ok)
	require.True(t, buyAfter.FilledQuantity.IsZero())
}

func TestStateSnapshotRoundTrip(t *testing.T) {
	id, err := crypto.NewIdentity()
	require.NoError(t, err)

	s := NewState(7)
	now := time.Now().Unix()
	o := mustOrder(t, id, "order-1", now)
	require.NoError(t, s.AddOrder(o, Timestamp{PhysicalMs: 1, NodeID: "a"}))

	snap, err := s.EncodeSnapshot(42)
	require.NoError(t, err)
	require.Equal(t, uint32(7), snap.ShardID)
	require.Equal(t, uint64(42), snap.Version)

	dst := NewState(7)
	require.NoError(t, dst.ApplySnapshot(snap))
	require.Len(t, dst.LiveOrders(time.Now()), 1)
}
