// Package core wires the exchange's subsystems behind one explicit context,
// replacing the ad-hoc singletons (audit logger, fee pool, matching mutex)
// the design notes call out: every subsystem constructor takes a *Context
// rather than reaching for package-level state.
package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/driftmesh/driftmesh/internal/audit"
	"github.com/driftmesh/driftmesh/internal/crypto"
	"github.com/driftmesh/driftmesh/internal/fees"
	"github.com/driftmesh/driftmesh/internal/gossip"
	"github.com/driftmesh/driftmesh/internal/matching"
	"github.com/driftmesh/driftmesh/internal/orderbook"
	"github.com/driftmesh/driftmesh/internal/shard"
	"github.com/driftmesh/driftmesh/internal/storage"
	"github.com/driftmesh/driftmesh/pkg/logging"
)

var log = logging.GetDefault().Component("core")

// assetScale converts the orderbook's decimal base units into the integer
// smallest-unit amounts the swap coordinator's on-chain transactions deal
// in (satoshis, wei, ...). A single fixed scale is a simplification: a real
// deployment would look this up per chain symbol.
const assetScale = 100_000_000

// SwapInitiator is the subset of *swap.Coordinator that core needs to turn
// a matched trade into an atomic-swap settlement. Declared locally so core
// does not import internal/swap, keeping the dependency direction the same
// shape as the CoreContext design note: core owns the wiring, swap stays a
// leaf.
type SwapInitiator interface {
	InitiateSwap(ctx context.Context, tradeID, orderID string, offerChain string, offerAmount uint64, requestChain string, requestAmount uint64) error
}

// Config bundles the per-subsystem knobs loaded from the node's config file
// (match_interval_sec, gossip.*, fees.*, shard.bucket_size, ...).
type Config struct {
	NodeID      string
	Identity    *crypto.Identity
	Gossip      gossip.Config
	Fees        fees.Config
	ShardIDs    []uint32
	ChainAnchor shard.ChainClient
}

// Context is the explicit wiring point every subsystem constructor takes
// instead of reaching for package-level globals. It owns the shard manager,
// the fee ledger, the audit trail, and the per-shard matching engines, all
// backed by the same storage handle. The gossiper is constructed lazily in
// StartGossip, once a concrete Transport exists.
type Context struct {
	Store    *storage.Storage
	Identity *crypto.Identity
	Clock    *orderbook.Clock

	Shards *shard.Manager
	Fees   *fees.Ledger
	Audit  *audit.Log
	Gossip *gossip.Gossiper
	Swaps  SwapInitiator

	cfg      Config
	matchers map[uint32]*matching.Engine

	localOrdersMu sync.Mutex
	localOrders   map[string]bool

	tradeSubs   map[int]chan matching.Trade
	tradeSubsMu sync.Mutex
	nextSubID   int
}

// New constructs a Context from cfg, backed by store. It loads any
// previously persisted shard checkpoints and creates the shards named in
// cfg.ShardIDs, but does not start gossip — call StartGossip once a
// Transport is available (typically once the P2P node has come up).
func New(cfg Config, store *storage.Storage) (*Context, error) {
	if cfg.Identity == nil {
		return nil, fmt.Errorf("core: identity required")
	}
	if err := cfg.Fees.Validate(); err != nil {
		return nil, fmt.Errorf("core: invalid fee config: %w", err)
	}

	shards := shard.New(store, cfg.ChainAnchor)
	if err := shards.LoadCheckpoints(); err != nil {
		return nil, fmt.Errorf("core: load shard checkpoints: %w", err)
	}
	for _, id := range cfg.ShardIDs {
		shards.CreateShard(id)
	}

	clock := orderbook.NewClock(cfg.NodeID, nil)

	c := &Context{
		Store:    store,
		Identity: cfg.Identity,
		Clock:    clock,
		Shards:   shards,
		Fees:     fees.NewLedger(cfg.Fees, store),
		Audit:    audit.New(store),
		cfg:         cfg,
		matchers:    make(map[uint32]*matching.Engine),
		localOrders: make(map[string]bool),
	}

	for _, id := range cfg.ShardIDs {
		shardID := id
		c.matchers[id] = matching.NewEngine(shardID, clock, matching.TradeSinkFunc(func(t matching.Trade) {
			c.onTrade(shardID, t)
		}))
	}

	log.Info("core context wired", "shards", len(cfg.ShardIDs))
	return c, nil
}

// onTrade is invoked synchronously by a shard's matching engine for every
// trade it emits. It accrues the trade's fee into the ledger, appends an
// audit entry, fans the trade out to subscribers, and — if a SwapInitiator
// is bound — kicks off the atomic-swap settlement.
func (c *Context) onTrade(shardID uint32, t matching.Trade) {
	notional := t.Price.Mul(t.Amount)
	if _, err := c.Fees.AccrueTrade(feeEpoch(t.Timestamp), notional, fees.SettlementAtomicSwap); err != nil {
		log.Error("accrue trade fee failed", "shard_id", shardID, "trade_id", t.TradeID, "err", err)
	}
	if err := c.Audit.Record(audit.EventTradeMatched, t); err != nil {
		log.Error("audit trade record failed", "shard_id", shardID, "trade_id", t.TradeID, "err", err)
	}
	c.publishTrade(t)
	c.initiateSettlement(shardID, t)
}

// initiateSettlement turns a matched trade into an atomic-swap request, if
// a SwapInitiator is bound. Runs in its own goroutine since swap initiation
// talks to chain backends and must never block the matching engine that
// produced the trade.
func (c *Context) initiateSettlement(shardID uint32, t matching.Trade) {
	if c.Swaps == nil {
		return
	}
	state, ok := c.Shards.State(shardID)
	if !ok {
		return
	}
	buy, ok := state.Get(t.BuyOrderID)
	if !ok {
		log.Warn("settlement skipped: buy order not found", "trade_id", t.TradeID, "order_id", t.BuyOrderID)
		return
	}
	sell, ok := state.Get(t.SellOrderID)
	if !ok {
		log.Warn("settlement skipped: sell order not found", "trade_id", t.TradeID, "order_id", t.SellOrderID)
		return
	}

	base, quote := splitAsset(buy.Asset)
	if base == "" || quote == "" {
		log.Warn("settlement skipped: unparseable asset pair", "trade_id", t.TradeID, "asset", buy.Asset)
		return
	}

	offerAmount := t.Amount.Mul(decimal.New(assetScale, 0)).BigInt().Uint64()
	requestAmount := t.Amount.Mul(t.Price).Mul(decimal.New(assetScale, 0)).BigInt().Uint64()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		// Seller funds the base asset, buyer funds the quote asset; the
		// trade's SellOrderID anchors the swap to the maker's offer.
		if err := c.Swaps.InitiateSwap(ctx, t.TradeID, sell.OrderID, base, offerAmount, quote, requestAmount); err != nil {
			log.Error("swap initiation failed", "trade_id", t.TradeID, "err", err)
		}
	}()
}

// splitAsset splits a "BASE/QUOTE" asset pair into its two chain symbols.
func splitAsset(asset string) (base, quote string) {
	for i := 0; i < len(asset); i++ {
		if asset[i] == '/' {
			return asset[:i], asset[i+1:]
		}
	}
	return "", ""
}

// SubmitOrder admits order into shardID's CRDT state under a freshly minted
// local HLC tag, the "submit_order" operation of the Public API. The caller
// is responsible for routing order.Asset/order.OrderID to the right shard;
// submission itself only validates and tags.
func (c *Context) SubmitOrder(shardID uint32, order orderbook.Order) error {
	state, ok := c.Shards.State(shardID)
	if !ok {
		return fmt.Errorf("core: shard %d not hosted locally", shardID)
	}
	tag := c.Clock.Tick()
	if err := state.AddOrder(order, tag); err != nil {
		return fmt.Errorf("core: submit order %s: %w", order.OrderID, err)
	}
	// Orders only reach SubmitOrder through this node's own client-facing
	// API; orders learned about from peers arrive through gossip merge
	// instead. Remembering the ID lets OwnsOrder report which side of a
	// trade, if any, this node is actually a party to.
	c.localOrdersMu.Lock()
	c.localOrders[order.OrderID] = true
	c.localOrdersMu.Unlock()
	return nil
}

// OwnsOrder reports whether orderID was submitted through this node's own
// SubmitOrder, as opposed to learned about via gossip. The daemon hands it
// to the swap coordinator (SetOwnsOrder), which uses it to tell which side
// of a matched trade, if any, this replica should actually fund and claim.
func (c *Context) OwnsOrder(orderID string) bool {
	c.localOrdersMu.Lock()
	defer c.localOrdersMu.Unlock()
	return c.localOrders[orderID]
}

// CancelOrder tombstones orderID in shardID's CRDT state under a fresh local
// HLC tag, the "cancel_order" operation of the Public API.
func (c *Context) CancelOrder(shardID uint32, orderID string) error {
	state, ok := c.Shards.State(shardID)
	if !ok {
		return fmt.Errorf("core: shard %d not hosted locally", shardID)
	}
	tag := c.Clock.Tick()
	state.CancelOrder(orderID, tag)
	return nil
}

// QueryOrders returns shardID's current live order view, the "query_orders"
// operation of the Public API. Filtering by asset/side is left to the
// caller, since the CRDT state only guarantees a deterministically sorted
// live view, not indexed lookup.
func (c *Context) QueryOrders(shardID uint32) ([]orderbook.Order, error) {
	state, ok := c.Shards.State(shardID)
	if !ok {
		return nil, fmt.Errorf("core: shard %d not hosted locally", shardID)
	}
	return state.LiveOrders(time.Now()), nil
}

// GetSnapshot encodes shardID's current CRDT state, the "get_snapshot"
// operation of the Public API.
func (c *Context) GetSnapshot(shardID uint32) (*orderbook.Snapshot, error) {
	return c.Shards.Snapshot(shardID)
}

// ApplySnapshot merges a remote snapshot into shardID's state, the
// "apply_snapshot" operation of the Public API.
func (c *Context) ApplySnapshot(shardID uint32, snap *orderbook.Snapshot) error {
	return c.Shards.ApplySnapshot(shardID, snap)
}

// SubscribeTrades returns a channel delivering every trade matched from this
// point on, across all locally hosted shards, implementing the
// "subscribe_trades" stream operation of the Public API. Call the returned
// cancel function to stop delivery and release the channel.
func (c *Context) SubscribeTrades(buffer int) (<-chan matching.Trade, func()) {
	c.tradeSubsMu.Lock()
	defer c.tradeSubsMu.Unlock()

	if c.tradeSubs == nil {
		c.tradeSubs = make(map[int]chan matching.Trade)
	}
	id := c.nextSubID
	c.nextSubID++
	ch := make(chan matching.Trade, buffer)
	c.tradeSubs[id] = ch

	cancel := func() {
		c.tradeSubsMu.Lock()
		defer c.tradeSubsMu.Unlock()
		if existing, ok := c.tradeSubs[id]; ok {
			delete(c.tradeSubs, id)
			close(existing)
		}
	}
	return ch, cancel
}

// publishTrade fans a matched trade out to every live subscriber. A
// subscriber whose buffer is full misses the trade rather than blocking the
// matching engine that produced it.
func (c *Context) publishTrade(t matching.Trade) {
	c.tradeSubsMu.Lock()
	defer c.tradeSubsMu.Unlock()
	for id, ch := range c.tradeSubs {
		select {
		case ch <- t:
		default:
			log.Warn("trade subscriber buffer full, dropping", "sub_id", id, "trade_id", t.TradeID)
		}
	}
}

// feeEpoch buckets a trade's unix timestamp into a weekly epoch for fee-pool
// accrual, matching the weekly distribution cadence named in the fee
// endorsement design.
func feeEpoch(unixSeconds int64) uint64 {
	const secondsPerWeek = 7 * 24 * 60 * 60
	if unixSeconds < 0 {
		return 0
	}
	return uint64(unixSeconds) / secondsPerWeek
}

// Tick runs one matching pass for shardID over asset, returning the trades
// produced. Returns an error if shardID is not hosted locally.
func (c *Context) Tick(shardID uint32, asset string) ([]matching.Trade, error) {
	state, ok := c.Shards.State(shardID)
	if !ok {
		return nil, fmt.Errorf("core: shard %d not hosted locally", shardID)
	}
	m, ok := c.matchers[shardID]
	if !ok {
		return nil, fmt.Errorf("core: no matching engine for shard %d", shardID)
	}
	return m.Tick(state, asset)
}

// TickShard runs one matching pass over every distinct asset pair currently
// live in shardID, since a single shard can host more than one asset pair.
// Returns an error only if shardID is not hosted locally; a per-asset
// ErrTickInProgress is logged and skipped rather than propagated, since it
// just means another tick is already in flight for that pair.
func (c *Context) TickShard(shardID uint32) ([]matching.Trade, error) {
	state, ok := c.Shards.State(shardID)
	if !ok {
		return nil, fmt.Errorf("core: shard %d not hosted locally", shardID)
	}
	m, ok := c.matchers[shardID]
	if !ok {
		return nil, fmt.Errorf("core: no matching engine for shard %d", shardID)
	}

	assets := make(map[string]struct{})
	for _, o := range state.LiveOrders(time.Now()) {
		assets[o.Asset] = struct{}{}
	}

	var all []matching.Trade
	for asset := range assets {
		trades, err := m.Tick(state, asset)
		if err != nil {
			if err == matching.ErrTickInProgress {
				continue
			}
			return all, fmt.Errorf("core: tick shard %d asset %s: %w", shardID, asset, err)
		}
		all = append(all, trades...)
	}
	return all, nil
}

// StartGossip constructs the gossiper bound to transport and starts its
// per-shard tick loop. Call once at node startup after the P2P host (or any
// other Transport implementation) is available.
func (c *Context) StartGossip(transport gossip.Transport) {
	c.Gossip = gossip.New(transport, c.Shards, c.Identity, c.cfg.Gossip)
	c.Gossip.Start()
}

// BindSwapInitiator attaches the atomic-swap coordinator that onTrade hands
// matched trades to. Optional: without it, matching and fee accrual still
// run, trades simply don't settle on-chain.
func (c *Context) BindSwapInitiator(s SwapInitiator) {
	c.Swaps = s
}

// Matcher returns the matching engine for shardID, if the shard is hosted
// locally.
func (c *Context) Matcher(shardID uint32) (*matching.Engine, bool) {
	m, ok := c.matchers[shardID]
	return m, ok
}

// Close stops the gossiper, if running. Storage is owned by the caller and
// is not closed here.
func (c *Context) Close() {
	if c.Gossip != nil {
		c.Gossip.Stop()
	}
}
