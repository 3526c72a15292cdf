package matching

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/driftmesh/driftmesh/internal/orderbook"
	"github.com/driftmesh/driftmesh/pkg/logging"
)

var log = logging.GetDefault().Component("matching")

// ErrTickInProgress is returned when Tick is called while a previous tick
// for the same shard is still running; the caller should skip this tick
// rather than queue it, per the non-overlapping-ticks contract.
var ErrTickInProgress = errors.New("matching: tick already in progress for this shard")

// Engine runs the deterministic matching procedure for one shard. It is
// stateless across ticks except for the non-overlap guard and the HLC clock
// used to tag fill updates; all order state lives in the CrdtState it is
// handed each tick.
type Engine struct {
	shardID uint32
	clock   *orderbook.Clock
	sink    TradeSink
	running int32
}

// NewEngine creates a matching engine for shardID. clock supplies HLC tags
// for the filled_quantity updates the engine writes back into the CRDT;
// sink receives every emitted Trade.
func NewEngine(shardID uint32, clock *orderbook.Clock, sink TradeSink) *Engine {
	return &Engine{shardID: shardID, clock: clock, sink: sink}
}

// Tick runs one matching pass over state for the given asset pair and
// returns the trades produced. If a previous Tick for this engine is still
// running, it returns ErrTickInProgress immediately rather than blocking or
// queuing, matching the "second tick skipped" concurrency contract.
func (e *Engine) Tick(state *orderbook.State, asset string) ([]Trade, error) {
	if !atomic.CompareAndSwapInt32(&e.running, 0, 1) {
		return nil, ErrTickInProgress
	}
	defer atomic.StoreInt32(&e.running, 0)

	live := state.LiveOrders(time.Now())
	buys, sells := partition(live, asset)
	sortBuys(buys)
	sortSells(sells)

	remaining := make(map[string]orderbook.Order, len(buys)+len(sells))
	for _, o := range buys {
		remaining[o.OrderID] = o
	}
	for _, o := range sells {
		remaining[o.OrderID] = o
	}

	var trades []Trade
	si := 0
	for bi := 0; bi < len(buys); bi++ {
		buy := remaining[buys[bi].OrderID]
		for buy.Remaining().IsPositive() && si < len(sells) {
			sell := remaining[sells[si].OrderID]
			if sell.Remaining().IsZero() {
				si++
				continue
			}
			if !crosses(buy, sell) {
				break
			}

			fillAmount := buy.Remaining()
			if sell.Remaining().LessThan(fillAmount) {
				fillAmount = sell.Remaining()
			}

			price := sell.Price
			if sell.IsMarket() {
				price = buy.Price
			}

			buyFilled := buy
			buyFilled.FilledQuantity = buy.FilledQuantity.Add(fillAmount)
			buyFilled.Status = fillStatus(buyFilled)

			sellFilled := sell
			sellFilled.FilledQuantity = sell.FilledQuantity.Add(fillAmount)
			sellFilled.Status = fillStatus(sellFilled)

			tag := e.clock.Tick()
			err := state.ApplyFills([]orderbook.FillUpdate{
				{OrderID: buy.OrderID, Order: buyFilled, Tag: tag},
				{OrderID: sell.OrderID, Order: sellFilled, Tag: tag},
			})
			if err != nil {
				var cancelled *orderbook.CancelledFillError
				if errors.As(err, &cancelled) {
					if cancelled.OrderID == buy.OrderID {
						log.Debug("buy order cancelled concurrently with fill, abandoning", "order_id", buy.OrderID)
						break
					}
					log.Debug("sell order cancelled concurrently with fill, skipping", "order_id", sell.OrderID)
					si++
					continue
				}
				return trades, fmt.Errorf("apply fill: %w", err)
			}

			buy = buyFilled
			sell = sellFilled
			remaining[buy.OrderID] = buy
			remaining[sell.OrderID] = sell

			trade := Trade{
				TradeID:     uuid.New().String(),
				BuyOrderID:  buy.OrderID,
				SellOrderID: sell.OrderID,
				Amount:      fillAmount,
				Price:       price,
				ShardID:     e.shardID,
				Timestamp:   time.Now().Unix(),
			}
			trades = append(trades, trade)

			if e.sink != nil {
				e.sink.OnTrade(trade)
			}

			if sell.Remaining().IsZero() {
				si++
			}
		}
	}

	log.Debug("matching tick complete", "shard_id", e.shardID, "asset", asset, "trades", len(trades))
	return trades, nil
}

// crosses reports whether buy and sell can trade: market orders take any
// price, otherwise buy_price must be >= sell_price.
func crosses(buy, sell orderbook.Order) bool {
	if buy.IsMarket() || sell.IsMarket() {
		return true
	}
	return buy.Price.GreaterThanOrEqual(sell.Price)
}

func fillStatus(o orderbook.Order) orderbook.Status {
	if o.Remaining().IsZero() {
		return orderbook.StatusFilled
	}
	if o.FilledQuantity.IsPositive() {
		return orderbook.StatusPartiallyFilled
	}
	return orderbook.StatusOpen
}
