package matching

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/driftmesh/driftmesh/internal/crypto"
	"github.com/driftmesh/driftmesh/internal/orderbook"
)

func signedOrder(t *testing.T, id *crypto.Identity, orderID string, side orderbook.Side, price, qty string, ts int64) orderbook.Order {
	t.Helper()
	o := orderbook.Order{
		OrderID:        orderID,
		UserID:         orderID + "-user",
		Asset:          "BTC/USD",
		Side:           side,
		OrderType:      orderbook.OrderTypeLimit,
		Price:          decimal.RequireFromString(price),
		BaseQuantity:   decimal.RequireFromString(qty),
		FilledQuantity: decimal.Zero,
		Timestamp:      ts,
		ValidUntil:     ts + 3600,
		Status:         orderbook.StatusOpen,
	}
	o.SignWith(id)
	return o
}

func TestEngineTwoNodeMatching(t *testing.T) {
	id, err := crypto.NewIdentity()
	require.NoError(t, err)

	state := orderbook.NewState(1)
	now := time.Now().Unix()
	buy := signedOrder(t, id, "alice-buy", orderbook.SideBuy, "40000", "1.0", now)
	sell := signedOrder(t, id, "bob-sell", orderbook.SideSell, "40000", "1.0", now)

	require.NoError(t, state.AddOrder(buy, orderbook.Timestamp{PhysicalMs: 1, NodeID: "a"}))
	require.NoError(t, state.AddOrder(sell, orderbook.Timestamp{PhysicalMs: 2, NodeID: "a"}))

	var captured []Trade
	engine := NewEngine(1, orderbook.NewClock("a", nil), TradeSinkFunc(func(tr Trade) { captured = append(captured, tr) }))

	trades, err := engine.Tick(state, "BTC/USD")
	require.NoError(t, err)
	require.Len(t, trades, 1)
	require.Equal(t, "alice-buy", trades[0].BuyOrderID)
	require.Equal(t, "bob-sell", trades[0].SellOrderID)
	require.True(t, trades[0].Amount.Equal(decimal.RequireFromString("1.0")))
	require.Len(t, captured, 1)

	buyAfter, ok := state.Get("alice-buy")
	require.True(t, ok)
	require.Equal(t, orderbook.StatusFilled, buyAfter.Status)
}

func TestEnginePartialFillFIFOOrder(t *testing.T) {
	id, err := crypto.NewIdentity()
	require.NoError(t, err)

	state := orderbook.NewState(1)
	now := time.Now().Unix()
	buy := signedOrder(t, id, "buy-big", orderbook.SideBuy, "100", "2.0", now)
	sellEarly := signedOrder(t, id, "sell-early", orderbook.SideSell, "100", "1.0", now)
	sellLate := signedOrder(t, id, "sell-late", orderbook.SideSell, "100", "0.5", now+10)

	require.NoError(t, state.AddOrder(buy, orderbook.Timestamp{PhysicalMs: 1, NodeID: "a"}))
	require.NoError(t, state.AddOrder(sellEarly, orderbook.Timestamp{PhysicalMs: 2, NodeID: "a"}))
	require.NoError(t, state.AddOrder(sellLate, orderbook.Timestamp{PhysicalMs: 3, NodeID: "a"}))

	engine := NewEngine(1, orderbook.NewClock("a", nil), nil)
	trades, err := engine.Tick(state, "BTC/USD")
	require.NoError(t, err)
	require.Len(t, trades, 2)
	require.Equal(t, "sell-early", trades[0].SellOrderID)
	require.Equal(t, "sell-late", trades[1].SellOrderID)

	buyAfter, ok := state.Get("buy-big")
	require.True(t, ok)
	require.True(t, buyAfter.FilledQuantity.Equal(decimal.RequireFromString("1.5")))
	require.Equal(t, orderbook.StatusPartiallyFilled, buyAfter.Status)
}

func TestEngineNoMatchWhenPricesDontCross(t *testing.T) {
	id, err := crypto.NewIdentity()
	require.NoError(t, err)

	state := orderbook.NewState(1)
	now := time.Now().Unix()
	buy := signedOrder(t, id, "buy-1", orderbook.SideBuy, "99", "1.0", now)
	sell := signedOrder(t, id, "sell-1", orderbook.SideSell, "100", "1.0", now)

	require.NoError(t, state.AddOrder(buy, orderbook.Timestamp{PhysicalMs: 1, NodeID: "a"}))
	require.NoError(t, state.AddOrder(sell, orderbook.Timestamp{PhysicalMs: 2, NodeID: "a"}))

	engine := NewEngine(1, orderbook.NewClock("a", nil), nil)
	trades, err := engine.Tick(state, "BTC/USD")
	require.NoError(t, err)
	require.Empty(t, trades)
}

func TestEngineMarketOrderTakesAnyPrice(t *testing.T) {
	id, err := crypto.NewIdentity()
	require.NoError(t, err)

	state := orderbook.NewState(1)
	now := time.Now().Unix()
	buy := orderbook.Order{
		OrderID: "market-buy", UserID: "u", Asset: "BTC/USD", Side: orderbook.SideBuy,
		OrderType: orderbook.OrderTypeMarket, Price: decimal.Zero,
		BaseQuantity: decimal.RequireFromString("1.0"), FilledQuantity: decimal.Zero,
		Timestamp: now, ValidUntil: now + 3600, Status: orderbook.StatusOpen,
	}
	buy.SignWith(id)
	sell := signedOrder(t, id, "sell-1", orderbook.SideSell, "12345", "1.0", now)

	require.NoError(t, state.AddOrder(buy, orderbook.Timestamp{PhysicalMs: 1, NodeID: "a"}))
	require.NoError(t, state.AddOrder(sell, orderbook.Timestamp{PhysicalMs: 2, NodeID: "a"}))

	engine := NewEngine(1, orderbook.NewClock("a", nil), nil)
	trades, err := engine.Tick(state, "BTC/USD")
	require.NoError(t, err)
	require.Len(t, trades, 1)
	require.True(t, trades[0].Price.Equal(decimal.RequireFromString("12345")))
}

func TestEngineApplyFillReturnsErrCancelledWhenCancelWinsRace(t *testing.T) {
	id, err := crypto.NewIdentity()
	require.NoError(t, err)

	state := orderbook.NewState(1)
	now := time.Now().Unix()
	buy := signedOrder(t, id, "buy-1", orderbook.SideBuy, "100", "1.0", now)
	require.NoError(t, state.AddOrder(buy, orderbook.Timestamp{PhysicalMs: 1, NodeID: "a"}))

	// Simulates a cancel delta landing concurrently with an in-flight match:
	// the cancel's tag happens-before the fill the engine is about to write,
	// so the fill must be refused.
	state.CancelOrder("buy-1", orderbook.Timestamp{PhysicalMs: 2, NodeID: "a"})

	filled := buy
	filled.FilledQuantity = decimal.RequireFromString("1.0")
	filled.Status = orderbook.StatusFilled
	filled.SignWith(id)

	err = state.ApplyFill("buy-1", filled, orderbook.Timestamp{PhysicalMs: 3, NodeID: "a"})
	require.ErrorIs(t, err, orderbook.ErrCancelled)
}

func TestEngineDeterministicAcrossReplicas(t *testing.T) {
	id, err := crypto.NewIdentity()
	require.NoError(t, err)

	build := func() *orderbook.State {
		state := orderbook.NewState(1)
		now := time.Now().Unix()
		orders := []orderbook.Order{
			signedOrder(t, id, "buy-1", orderbook.SideBuy, "100", "1.0", now),
			signedOrder(t, id, "buy-2", orderbook.SideBuy, "101", "1.0", now),
			signedOrder(t, id, "sell-1", orderbook.SideSell, "99", "2.0", now),
		}
		for i, o := range orders {
			require.NoError(t, state.AddOrder(o, orderbook.Timestamp{PhysicalMs: uint64(i + 1), NodeID: "a"}))
		}
		return state
	}

	stateA := build()
	stateB := build()

	tradesA, err := NewEngine(1, orderbook.NewClock("a", nil), nil).Tick(stateA, "BTC/USD")
	require.NoError(t, err)
	tradesB, err := NewEngine(1, orderbook.NewClock("b", nil), nil).Tick(stateB, "BTC/USD")
	require.NoError(t, err)

	require.Equal(t, len(tradesA), len(tradesB))
	for i := range tradesA {
		require.Equal(t, tradesA[i].BuyOrderID, tradesB[i].BuyOrderID)
		require.Equal(t, tradesA[i].SellOrderID, tradesB[i].SellOrderID)
		require.True(t, tradesA[i].Amount.Equal(tradesB[i].Amount))
	}
}
