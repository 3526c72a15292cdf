package orderbook

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/driftmesh/driftmesh/internal/crypto"
)

// Side is the direction of an order.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// OrderType is the execution style of an order. Limit and Stop carry a
// price; Market does not.
type OrderType string

const (
	OrderTypeMarket OrderType = "market"
	OrderTypeLimit  OrderType = "limit"
	OrderTypeStop   OrderType = "stop"
)

// Status is the lifecycle state of an order. Filled and Cancelled are
// terminal.
type Status string

const (
	StatusOpen            Status = "open"
	StatusPartiallyFilled Status = "partially_filled"
	StatusFilled          Status = "filled"
	StatusCancelled       Status = "cancelled"
)

var (
	ErrInvalidOrder     = errors.New("orderbook: invalid order")
	ErrInvalidSignature = errors.New("orderbook: invalid order signature")
	// ErrCancelled is the sentinel ApplyFill/ApplyFills errors wrap (and
	// CancelledFillError.Is matches) when an order was tombstoned by a
	// cancel and the fill's own HLC tag does not happen-before the cancel's
	// tag — the cancel is treated as having won the race, and the fill is
	// refused.
	ErrCancelled = errors.New("orderbook: order cancelled before this fill")
)

// CancelledFillError reports which order in a (possibly multi-order) fill
// batch lost a race against a concurrent cancel, so a caller applying fills
// for more than one order at once — the matching engine, pairing a buy
// against a sell — can tell which side was cancelled.
type CancelledFillError struct {
	OrderID string
}

func (e *CancelledFillError) Error() string {
	return fmt.Sprintf("%s: %s", ErrCancelled, e.OrderID)
}

// Is makes errors.Is(err, ErrCancelled) true for a *CancelledFillError.
func (e *CancelledFillError) Is(target error) bool {
	return target == ErrCancelled
}

// Order is the fundamental tradeable intent replicated by the CRDT order
// book. Asset is the base/quote pair this order trades, e.g. "BTC/USD".
type Order struct {
	OrderID string `json:"order_id"`
	UserID  string `json:"user_id"`
	Asset   string `json:"asset"`

	Side      Side      `json:"side"`
	OrderType OrderType `json:"order_type"`
	Price     decimal.Decimal `json:"price"` // zero for Market

	BaseQuantity   decimal.Decimal `json:"base_quantity"`
	FilledQuantity decimal.Decimal `json:"filled_quantity"`

	Timestamp  int64 `json:"timestamp"`   // seconds since epoch, creation time
	ValidUntil int64 `json:"valid_until"` // expiry, seconds since epoch

	Status Status `json:"status"`

	PublicKey ed25519.PublicKey `json:"public_key"`
	Signature []byte            `json:"signature"`
}

// Validate checks the static invariants from the order-book spec: positive
// quantity, positive price for priced order types, a valid-until strictly
// after creation, and a signature that verifies against the embedded public
// key. It does not check shard membership or liveness.
func (o *Order) Validate() error {
	if o.OrderID == "" {
		return fmt.Errorf("%w: empty order_id", ErrInvalidOrder)
	}
	if !o.BaseQuantity.IsPositive() {
		return fmt.Errorf("%w: base_quantity must be positive", ErrInvalidOrder)
	}
	if o.FilledQuantity.IsNegative() || o.FilledQuantity.GreaterThan(o.BaseQuantity) {
		return fmt.Errorf("%w: filled_quantity out of range", ErrInvalidOrder)
	}
	if (o.OrderType == OrderTypeLimit || o.OrderType == OrderTypeStop) && !o.Price.IsPositive() {
		return fmt.Errorf("%w: price must be positive for %s orders", ErrInvalidOrder, o.OrderType)
	}
	if o.ValidUntil <= o.Timestamp {
		return fmt.Errorf("%w: valid_until must be after timestamp", ErrInvalidOrder)
	}
	if len(o.PublicKey) != ed25519.PublicKeySize {
		return fmt.Errorf("%w: missing public key", ErrInvalidOrder)
	}
	if !o.VerifySignature() {
		return ErrInvalidSignature
	}
	return nil
}

// IsExpired reports whether the order's valid_until has passed as of now.
func (o *Order) IsExpired(now time.Time) bool {
	return now.Unix() >= o.ValidUntil
}

// Remaining returns base_quantity - filled_quantity.
func (o *Order) Remaining() decimal.Decimal {
	return o.BaseQuantity.Sub(o.FilledQuantity)
}

// canonicalPayload builds the exact byte sequence signed over:
// order_id|user_id|base_quantity|price|valid_until, matching §3's canonical
// field ordering.
func (o *Order) canonicalPayload() []byte {
	return []byte(fmt.Sprintf("%s|%s|%s|%s|%d",
		o.OrderID, o.UserID, o.BaseQuantity.String(), o.Price.String(), o.ValidUntil))
}

// SignWith signs the order's canonical payload with identity, filling in
// PublicKey and Signature.
func (o *Order) SignWith(identity *crypto.Identity) {
	o.PublicKey = identity.Public
	o.Signature = identity.Sign(crypto.DomainOrderSign, o.canonicalPayload())
}

// VerifySignature checks the order's signature against its own embedded
// public key.
func (o *Order) VerifySignature() bool {
	if len(o.PublicKey) != ed25519.PublicKeySize || len(o.Signature) == 0 {
		return false
	}
	return crypto.Verify(o.PublicKey, crypto.DomainOrderSign, o.canonicalPayload(), o.Signature)
}

// Clone returns a deep-enough copy for safe mutation (decimal.Decimal is
// immutable, byte slices are copied).
func (o *Order) Clone() *Order {
	clone := *o
	clone.PublicKey = append(ed25519.PublicKey(nil), o.PublicKey...)
	clone.Signature = append([]byte(nil), o.Signature...)
	return &clone
}

// IsMarket reports whether this order should rank ahead of priced orders in
// the matching comparator.
func (o *Order) IsMarket() bool {
	return o.OrderType == OrderTypeMarket
}
