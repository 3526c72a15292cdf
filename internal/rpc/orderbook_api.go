package rpc

import (
	"crypto/ed25519"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/driftmesh/driftmesh/internal/core"
	"github.com/driftmesh/driftmesh/internal/orderbook"
)

// OrderBookAPI exposes the core's Public API — submit_order, cancel_order,
// query_orders, subscribe_trades, get_snapshot, apply_snapshot — as a REST
// surface over chi, alongside the existing JSON-RPC/WS handlers.
type OrderBookAPI struct {
	core *core.Context
}

// NewOrderBookAPI builds the REST surface bound to c.
func NewOrderBookAPI(c *core.Context) *OrderBookAPI {
	return &OrderBookAPI{core: c}
}

// Routes mounts the order-book endpoints under a chi router.
func (a *OrderBookAPI) Routes() chi.Router {
	r := chi.NewRouter()
	r.Route("/shards/{shardID}", func(r chi.Router) {
		r.Post("/orders", a.submitOrder)
		r.Get("/orders", a.queryOrders)
		r.Delete("/orders/{orderID}", a.cancelOrder)
		r.Get("/snapshot", a.getSnapshot)
		r.Post("/snapshot", a.applySnapshot)
	})
	r.Get("/trades/stream", a.streamTrades)
	return r
}

func shardIDFromPath(r *http.Request) (uint32, bool) {
	raw := chi.URLParam(r, "shardID")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(id), true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// orderWireForm mirrors orderbook.Order's wire representation; decimal and
// byte-slice fields decode from the JSON strings the wallet/CLI clients send.
type orderWireForm struct {
	OrderID        string `json:"order_id"`
	UserID         string `json:"user_id"`
	Asset          string `json:"asset"`
	Side           string `json:"side"`
	OrderType      string `json:"order_type"`
	Price          string `json:"price"`
	BaseQuantity   string `json:"base_quantity"`
	FilledQuantity string `json:"filled_quantity"`
	Timestamp      int64  `json:"timestamp"`
	ValidUntil     int64  `json:"valid_until"`
	PublicKey      []byte `json:"public_key"`
	Signature      []byte `json:"signature"`
}

func (f orderWireForm) toOrder() (orderbook.Order, error) {
	price, err := decimal.NewFromString(zeroIfEmpty(f.Price))
	if err != nil {
		return orderbook.Order{}, err
	}
	base, err := decimal.NewFromString(f.BaseQuantity)
	if err != nil {
		return orderbook.Order{}, err
	}
	filled, err := decimal.NewFromString(zeroIfEmpty(f.FilledQuantity))
	if err != nil {
		return orderbook.Order{}, err
	}
	return orderbook.Order{
		OrderID:        f.OrderID,
		UserID:         f.UserID,
		Asset:          f.Asset,
		Side:           orderbook.Side(f.Side),
		OrderType:      orderbook.OrderType(f.OrderType),
		Price:          price,
		BaseQuantity:   base,
		FilledQuantity: filled,
		Timestamp:      f.Timestamp,
		ValidUntil:     f.ValidUntil,
		Status:         orderbook.StatusOpen,
		PublicKey:      ed25519.PublicKey(f.PublicKey),
		Signature:      f.Signature,
	}, nil
}

func zeroIfEmpty(s string) string {
	if s == "" {
		return "0"
	}
	return s
}

// submitOrder handles POST /shards/{shardID}/orders.
func (a *OrderBookAPI) submitOrder(w http.ResponseWriter, r *http.Request) {
	shardID, ok := shardIDFromPath(r)
	if !ok {
		writeAPIError(w, http.StatusBadRequest, errBadShardID)
		return
	}

	var form orderWireForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeAPIError(w, http.StatusBadRequest, err)
		return
	}
	order, err := form.toOrder()
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, err)
		return
	}

	if err := a.core.SubmitOrder(shardID, order); err != nil {
		writeAPIError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"order_id": order.OrderID})
}

// cancelOrder handles DELETE /shards/{shardID}/orders/{orderID}.
func (a *OrderBookAPI) cancelOrder(w http.ResponseWriter, r *http.Request) {
	shardID, ok := shardIDFromPath(r)
	if !ok {
		writeAPIError(w, http.StatusBadRequest, errBadShardID)
		return
	}
	orderID := chi.URLParam(r, "orderID")
	if err := a.core.CancelOrder(shardID, orderID); err != nil {
		writeAPIError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"order_id": orderID, "status": "cancelled"})
}

// queryOrders handles GET /shards/{shardID}/orders.
func (a *OrderBookAPI) queryOrders(w http.ResponseWriter, r *http.Request) {
	shardID, ok := shardIDFromPath(r)
	if !ok {
		writeAPIError(w, http.StatusBadRequest, errBadShardID)
		return
	}
	orders, err := a.core.QueryOrders(shardID)
	if err != nil {
		writeAPIError(w, http.StatusNotFound, err)
		return
	}

	asset := r.URL.Query().Get("asset")
	if asset != "" {
		filtered := orders[:0]
		for _, o := range orders {
			if o.Asset == asset {
				filtered = append(filtered, o)
			}
		}
		orders = filtered
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"orders": orders, "count": len(orders)})
}

// getSnapshot handles GET /shards/{shardID}/snapshot.
func (a *OrderBookAPI) getSnapshot(w http.ResponseWriter, r *http.Request) {
	shardID, ok := shardIDFromPath(r)
	if !ok {
		writeAPIError(w, http.StatusBadRequest, errBadShardID)
		return
	}
	snap, err := a.core.GetSnapshot(shardID)
	if err != nil {
		writeAPIError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// applySnapshot handles POST /shards/{shardID}/snapshot.
func (a *OrderBookAPI) applySnapshot(w http.ResponseWriter, r *http.Request) {
	shardID, ok := shardIDFromPath(r)
	if !ok {
		writeAPIError(w, http.StatusBadRequest, errBadShardID)
		return
	}
	var snap orderbook.Snapshot
	if err := json.NewDecoder(r.Body).Decode(&snap); err != nil {
		writeAPIError(w, http.StatusBadRequest, err)
		return
	}
	snap.ShardID = shardID
	if err := a.core.ApplySnapshot(shardID, &snap); err != nil {
		writeAPIError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "applied"})
}

// streamTrades handles GET /trades/stream, the subscribe_trades stream
// operation rendered as newline-delimited JSON over a chunked response
// rather than a second WebSocket hub, since clients already polling the
// JSON-RPC WS endpoint for order events can tee this one the same way.
func (a *OrderBookAPI) streamTrades(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeAPIError(w, http.StatusInternalServerError, errNoFlush)
		return
	}

	trades, cancel := a.core.SubscribeTrades(64)
	defer cancel()

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.WriteHeader(http.StatusOK)

	enc := json.NewEncoder(w)
	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case t, ok := <-trades:
			if !ok {
				return
			}
			if err := enc.Encode(t); err != nil {
				return
			}
			flusher.Flush()
		case <-time.After(30 * time.Second):
			// periodic flush keeps idle connections alive through proxies
			flusher.Flush()
		}
	}
}

var (
	errBadShardID = jsonAPIError("invalid shard id")
	errNoFlush    = jsonAPIError("streaming unsupported")
)

type jsonAPIError string

func (e jsonAPIError) Error() string { return string(e) }
