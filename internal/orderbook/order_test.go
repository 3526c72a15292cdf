package orderbook

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/driftmesh/driftmesh/internal/crypto"
)

func newSignedOrder(t *testing.T, id *crypto.Identity, orderID string) Order {
	t.Helper()
	now := time.Now().Unix()
	o := Order{
		OrderID:        orderID,
		UserID:         "user-1",
		Asset:          "BTC/USD",
		Side:           SideBuy,
		OrderType:      OrderTypeLimit,
		Price:          decimal.RequireFromString("100.50"),
		BaseQuantity:   decimal.RequireFromString("2"),
		FilledQuantity: decimal.Zero,
		Timestamp:      now,
		ValidUntil:     now + 3600,
		Status:         StatusOpen,
	}
	o.SignWith(id)
	return o
}

func TestOrderValidateSignedOrder(t *testing.T) {
	id, err := crypto.NewIdentity()
	require.NoError(t, err)

	o := newSignedOrder(t, id, "order-1")
	require.NoError(t, o.Validate())
}

func TestOrderValidateRejectsTamperedOrder(t *testing.T) {
	id, err := crypto.NewIdentity()
	require.NoError(t, err)

	o := newSignedOrder(t, id, "order-1")
	o.BaseQuantity = decimal.RequireFromString("999")

	require.ErrorIs(t, o.Validate(), ErrInvalidSignature)
}

func TestOrderValidateRejectsNonPositiveQuantity(t *testing.T) {
	id, err := crypto.NewIdentity()
	require.NoError(t, err)

	o := newSignedOrder(t, id, "order-1")
	o.BaseQuantity = decimal.Zero
	o.SignWith(id)

	require.ErrorIs(t, o.Validate(), ErrInvalidOrder)
}

func TestOrderValidateRejectsZeroPriceLimitOrder(t *testing.T) {
	id, err := crypto.NewIdentity()
	require.NoError(t, err)

	o := newSignedOrder(t, id, "order-1")
	o.Price = decimal.Zero
	o.SignWith(id)

	require.ErrorIs(t, o.Validate(), ErrInvalidOrder)
}

func TestOrderValidateAllowsZeroPriceMarketOrder(t *testing.T) {
	id, err := crypto.NewIdentity()
	require.NoError(t, err)

	o := newSignedOrder(t, id, "order-1")
	o.OrderType = OrderTypeMarket
	o.Price = decimal.Zero
	o.SignWith(id)

	require.NoError(t, o.Validate())
	require.True(t, o.IsMarket())
}

func TestOrderIsExpired(t *testing.T) {
	id, err := crypto.NewIdentity()
	require.NoError(t, err)

	o := newSignedOrder(t, id, "order-1")
	require.False(t, o.IsExpired(time.Now()))
	require.True(t, o.IsExpired(time.Now().Add(2*time.Hour)))
}

func TestOrderRemaining(t *testing.T) {
	id, err := crypto.NewIdentity()
	require.NoError(t, err)

	o := newSignedOrder(t, id, "order-1")
	o.FilledQuantity = decimal.RequireFromString("0.5")

	require.True(t, o.Remaining().Equal(decimal.RequireFromString("1.5")))
}

func TestOrderCloneIndependence(t *testing.T) {
	id, err := crypto.NewIdentity()
	require.NoError(t, err)

	o := newSignedOrder(t, id, "order-1")
	clone := o.Clone()
	clone.Signature[0] ^= 0xFF

	require.NotEqual(t, o.Signature, clone.Signature)
	require.True(t, o.VerifySignature())
}
