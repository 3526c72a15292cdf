package swap

import (
	"context"
	"testing"

	"github.com/driftmesh/driftmesh/internal/backend"
	"github.com/driftmesh/driftmesh/internal/chain"
)

// stubHeightBackend answers GetBlockHeight with a fixed value and fails or
// zero-values everything else; CheckTimeouts only needs the height.
type stubHeightBackend struct {
	height int64
}

func (b *stubHeightBackend) Type() backend.Type                { return backend.TypeMempool }
func (b *stubHeightBackend) Connect(ctx context.Context) error { return nil }
func (b *stubHeightBackend) Close() error                      { return nil }
func (b *stubHeightBackend) IsConnected() bool                 { return true }
func (b *stubHeightBackend) GetAddressInfo(ctx context.Context, address string) (*backend.AddressInfo, error) {
	return nil, backend.ErrNotConnected
}
func (b *stubHeightBackend) GetAddressUTXOs(ctx context.Context, address string) ([]backend.UTXO, error) {
	return nil, backend.ErrNotConnected
}
func (b *stubHeightBackend) GetAddressTxs(ctx context.Context, address, lastSeenTxID string) ([]backend.Transaction, error) {
	return nil, backend.ErrNotConnected
}
func (b *stubHeightBackend) GetTransaction(ctx context.Context, txID string) (*backend.Transaction, error) {
	return nil, backend.ErrNotConnected
}
func (b *stubHeightBackend) GetRawTransaction(ctx context.Context, txID string) ([]byte, error) {
	return nil, backend.ErrNotConnected
}
func (b *stubHeightBackend) BroadcastTransaction(ctx context.Context, rawTxHex string) (string, error) {
	return "", backend.ErrBroadcastFailed
}
func (b *stubHeightBackend) GetBlockHeight(ctx context.Context) (int64, error) {
	return b.height, nil
}
func (b *stubHeightBackend) GetBlockHeader(ctx context.Context, hashOrHeight string) (*backend.BlockHeader, error) {
	return nil, backend.ErrNotConnected
}
func (b *stubHeightBackend) GetFeeEstimates(ctx context.Context) (*backend.FeeEstimate, error) {
	return nil, backend.ErrNotConnected
}

func TestCheckTimeoutsNoActiveSwaps(t *testing.T) {
	coord := NewCoordinator(&CoordinatorConfig{Network: chain.Testnet})
	defer coord.Close()

	results, err := coord.CheckTimeouts(context.Background())
	if err != nil {
		t.Fatalf("CheckTimeouts() error = %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no results with no active swaps, got %d", len(results))
	}
}

func TestCheckTimeoutsSkipsSwapsNotFunded(t *testing.T) {
	coord := NewCoordinator(&CoordinatorConfig{Network: chain.Testnet})
	defer coord.Close()
	coord.SetBackend("BTC", &stubHeightBackend{height: 1000})

	coord.swaps["trade-1"] = &ActiveSwap{
		Swap: &Swap{
			ID:                       "trade-1",
			Side:                     SideSeller,
			State:                    StateBuyerRedeemed,
			SellerLeg:                Leg{Chain: "BTC", Amount: 100000},
			BuyerLeg:                 Leg{Chain: "LTC", Amount: 1000000},
			SellerChainTimeoutHeight: 1,
		},
	}

	results, err := coord.CheckTimeouts(context.Background())
	if err != nil {
		t.Fatalf("CheckTimeouts() error = %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected a terminal-state swap to be skipped, got %d results", len(results))
	}
}

// TestCheckTimeoutsFlagsRefundableSwap exercises the "counterparty never
// funds the other leg" scenario: once the chain height passes the swap's
// recorded timeout height, CheckTimeouts must flag it as refundable. The
// refund broadcast itself fails here since no HTLC session data was
// populated, which is the expected outcome for a swap this undeveloped.
func TestCheckTimeoutsFlagsRefundableSwap(t *testing.T) {
	coord := NewCoordinator(&CoordinatorConfig{Network: chain.Testnet})
	defer coord.Close()
	coord.SetBackend("BTC", &stubHeightBackend{height: 1000})

	coord.swaps["trade-1"] = &ActiveSwap{
		Swap: &Swap{
			ID:                       "trade-1",
			Side:                     SideSeller,
			State:                    StateSellerFunded,
			SellerLeg:                Leg{Chain: "BTC", Amount: 100000},
			BuyerLeg:                 Leg{Chain: "LTC", Amount: 1000000},
			SellerChainTimeoutHeight: 900,
		},
		HTLC: &HTLCSwapData{
			SellerChain: &ChainHTLCData{},
			BuyerChain:  &ChainHTLCData{},
		},
	}

	results, err := coord.CheckTimeouts(context.Background())
	if err != nil {
		t.Fatalf("CheckTimeouts() error = %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}

	r := results[0]
	if !r.CanRefund {
		t.Error("CanRefund = false, want true once height passes timeout")
	}
	if r.RefundBroadcast {
		t.Error("RefundBroadcast = true, want false without a funding transaction recorded")
	}
	if r.BlocksRemaining >= 0 {
		t.Errorf("BlocksRemaining = %d, want negative (timeout already passed)", r.BlocksRemaining)
	}
}

func TestCheckTimeoutsNotYetDue(t *testing.T) {
	coord := NewCoordinator(&CoordinatorConfig{Network: chain.Testnet})
	defer coord.Close()
	coord.SetBackend("BTC", &stubHeightBackend{height: 100})

	coord.swaps["trade-1"] = &ActiveSwap{
		Swap: &Swap{
			ID:                       "trade-1",
			Side:                     SideSeller,
			State:                    StateSellerFunded,
			SellerLeg:                Leg{Chain: "BTC", Amount: 100000},
			BuyerLeg:                 Leg{Chain: "LTC", Amount: 1000000},
			SellerChainTimeoutHeight: 900,
		},
		HTLC: &HTLCSwapData{
			SellerChain: &ChainHTLCData{},
			BuyerChain:  &ChainHTLCData{},
		},
	}

	results, err := coord.CheckTimeouts(context.Background())
	if err != nil {
		t.Fatalf("CheckTimeouts() error = %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].CanRefund {
		t.Error("CanRefund = true, want false before the timeout height")
	}
}
