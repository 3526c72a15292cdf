// Package matching implements the deterministic, shard-scoped matching
// engine: given a shard's converged CRDT order book, every honest node
// derives the identical sequence of trades.
package matching

import (
	"github.com/shopspring/decimal"
)

// Trade is the output of one matching tick: a single fill between a buy and
// a sell order.
type Trade struct {
	TradeID     string          `json:"trade_id"`
	BuyOrderID  string          `json:"buy_order_id"`
	SellOrderID string          `json:"sell_order_id"`
	Amount      decimal.Decimal `json:"amount"`
	Price       decimal.Decimal `json:"price"`
	ShardID     uint32          `json:"shard_id"`
	Timestamp   int64           `json:"ts"`
}

// TradeSink receives trades as the engine emits them, e.g. to hand off to
// the swap state machine and the audit trail.
type TradeSink interface {
	OnTrade(t Trade)
}

// TradeSinkFunc adapts a plain function to TradeSink.
type TradeSinkFunc func(t Trade)

func (f TradeSinkFunc) OnTrade(t Trade) { f(t) }
