package matching

import (
	"sort"

	"github.com/driftmesh/driftmesh/internal/orderbook"
)

// sortBuys orders buy-side orders: market orders first, then by price
// descending, ties broken by timestamp ascending (FIFO) then order_id
// lexicographically.
func sortBuys(orders []orderbook.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return less(orders[i], orders[j], true)
	})
}

// sortSells orders sell-side orders: market orders first, then by price
// ascending, same tie-break as buys.
func sortSells(orders []orderbook.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return less(orders[i], orders[j], false)
	})
}

func less(a, b orderbook.Order, descendingPrice bool) bool {
	if a.IsMarket() != b.IsMarket() {
		return a.IsMarket()
	}
	if !a.IsMarket() && !a.Price.Equal(b.Price) {
		if descendingPrice {
			return a.Price.GreaterThan(b.Price)
		}
		return a.Price.LessThan(b.Price)
	}
	if a.Timestamp != b.Timestamp {
		return a.Timestamp < b.Timestamp
	}
	return a.OrderID < b.OrderID
}

// partition splits live orders by side, asset, and validity: invalid
// signatures are dropped here too, as defense in depth against a CRDT
// state that somehow admitted one.
func partition(orders []orderbook.Order, asset string) (buys, sells []orderbook.Order) {
	for _, o := range orders {
		if o.Asset != asset {
			continue
		}
		if !o.VerifySignature() {
			continue
		}
		switch o.Side {
		case orderbook.SideBuy:
			buys = append(buys, o)
		case orderbook.SideSell:
			sells = append(sells, o)
		}
	}
	return buys, sells
}
