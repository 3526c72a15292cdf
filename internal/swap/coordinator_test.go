package swap

import (
	"context"
	"testing"
	"time"

	"github.com/driftmesh/driftmesh/internal/chain"
)

func TestNewCoordinator(t *testing.T) {
	cfg := &CoordinatorConfig{
		Network: chain.Testnet,
	}

	coord := NewCoordinator(cfg)
	if coord == nil {
		t.Fatal("NewCoordinator returned nil")
	}

	if coord.network != chain.Testnet {
		t.Errorf("network = %v, want %v", coord.network, chain.Testnet)
	}

	if coord.swaps == nil {
		t.Error("swaps map not initialized")
	}

	if coord.eventHandlers == nil {
		t.Error("eventHandlers not initialized")
	}

	if err := coord.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestCoordinatorEventHandlers(t *testing.T) {
	coord := NewCoordinator(&CoordinatorConfig{
		Network: chain.Testnet,
	})
	defer coord.Close()

	var receivedEvents []SwapEvent
	eventCh := make(chan SwapEvent, 10)

	coord.OnEvent(func(event SwapEvent) {
		eventCh <- event
	})

	coord.mu.Lock()
	coord.emitEvent("test-trade", "test_event", map[string]string{"key": "value"})
	coord.mu.Unlock()

	select {
	case event := <-eventCh:
		receivedEvents = append(receivedEvents, event)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
	}

	if len(receivedEvents) != 1 {
		t.Fatalf("expected 1 event, got %d", len(receivedEvents))
	}

	event := receivedEvents[0]
	if event.TradeID != "test-trade" {
		t.Errorf("TradeID = %s, want test-trade", event.TradeID)
	}
	if event.EventType != "test_event" {
		t.Errorf("EventType = %s, want test_event", event.EventType)
	}
}

func TestInitiateSwapWithoutBackend(t *testing.T) {
	// HTLC swaps use ephemeral keys, so wallet is not required for init.
	// However, backends ARE required to get block heights.
	coord := NewCoordinator(&CoordinatorConfig{
		Network: chain.Testnet,
	})
	defer coord.Close()

	err := coord.InitiateSwap(context.Background(), "trade-1", "order-1", "BTC", 100000, "LTC", 5000000)
	if err == nil {
		t.Error("InitiateSwap without backend: expected error, got nil")
	}
}

func TestGetSwapNotFound(t *testing.T) {
	coord := NewCoordinator(&CoordinatorConfig{
		Network: chain.Testnet,
	})
	defer coord.Close()

	_, err := coord.GetSwap("nonexistent")
	if err != ErrSwapNotFound {
		t.Errorf("GetSwap(nonexistent): got %v, want ErrSwapNotFound", err)
	}
}

func TestSetFundingTxNotFound(t *testing.T) {
	coord := NewCoordinator(&CoordinatorConfig{
		Network: chain.Testnet,
	})
	defer coord.Close()

	err := coord.SetFundingTx("nonexistent", "txid", 0, true)
	if err != ErrSwapNotFound {
		t.Errorf("SetFundingTx(nonexistent): got %v, want ErrSwapNotFound", err)
	}
}

func TestCompleteSwapNotFound(t *testing.T) {
	coord := NewCoordinator(&CoordinatorConfig{
		Network: chain.Testnet,
	})
	defer coord.Close()

	err := coord.CompleteSwap("nonexistent", "txid")
	if err != ErrSwapNotFound {
		t.Errorf("CompleteSwap(nonexistent): got %v, want ErrSwapNotFound", err)
	}
}

func TestRefundSwapNotFound(t *testing.T) {
	coord := NewCoordinator(&CoordinatorConfig{
		Network: chain.Testnet,
	})
	defer coord.Close()

	err := coord.RefundSwap(context.Background(), "nonexistent")
	if err != ErrSwapNotFound {
		t.Errorf("RefundSwap(nonexistent): got %v, want ErrSwapNotFound", err)
	}
}

func TestGetSecretHashNotFound(t *testing.T) {
	coord := NewCoordinator(&CoordinatorConfig{
		Network: chain.Testnet,
	})
	defer coord.Close()

	_, err := coord.GetSecretHash("nonexistent")
	if err != ErrSwapNotFound {
		t.Errorf("GetSecretHash(nonexistent): got %v, want ErrSwapNotFound", err)
	}
}

func TestRevealSecretNotFound(t *testing.T) {
	coord := NewCoordinator(&CoordinatorConfig{
		Network: chain.Testnet,
	})
	defer coord.Close()

	_, err := coord.RevealSecret("nonexistent")
	if err != ErrSwapNotFound {
		t.Errorf("RevealSecret(nonexistent): got %v, want ErrSwapNotFound", err)
	}
}

func TestRevealSecretOnlySeller(t *testing.T) {
	coord := NewCoordinator(&CoordinatorConfig{
		Network: chain.Testnet,
	})
	defer coord.Close()

	sellerLeg := Leg{Chain: "BTC", Amount: 100000}
	buyerLeg := Leg{Chain: "LTC", Amount: 1000000}
	swp, err := NewSwap(chain.Testnet, "trade-1", SideBuyer, sellerLeg, buyerLeg)
	if err != nil {
		t.Fatalf("NewSwap failed: %v", err)
	}

	coord.mu.Lock()
	coord.swaps["trade-1"] = &ActiveSwap{Swap: swp}
	coord.mu.Unlock()

	if _, err := coord.RevealSecret("trade-1"); err == nil {
		t.Error("buyer should not be able to reveal the secret")
	}
}

func TestSetRemoteSecretHashNotFound(t *testing.T) {
	coord := NewCoordinator(&CoordinatorConfig{
		Network: chain.Testnet,
	})
	defer coord.Close()

	err := coord.SetRemoteSecretHash("nonexistent", make([]byte, 32))
	if err != ErrSwapNotFound {
		t.Errorf("SetRemoteSecretHash(nonexistent): got %v, want ErrSwapNotFound", err)
	}
}

func TestSetRemoteSecretHashInvalidSize(t *testing.T) {
	coord := NewCoordinator(&CoordinatorConfig{
		Network: chain.Testnet,
	})
	defer coord.Close()

	sellerLeg := Leg{Chain: "BTC", Amount: 100000}
	buyerLeg := Leg{Chain: "LTC", Amount: 1000000}
	swp, _ := NewSwap(chain.Testnet, "trade-1", SideBuyer, sellerLeg, buyerLeg)

	coord.mu.Lock()
	coord.swaps["trade-1"] = &ActiveSwap{Swap: swp}
	coord.mu.Unlock()

	if err := coord.SetRemoteSecretHash("trade-1", make([]byte, 16)); err == nil {
		t.Error("SetRemoteSecretHash with wrong hash size should error")
	}
}

func TestUpdateConfirmationsNotFound(t *testing.T) {
	coord := NewCoordinator(&CoordinatorConfig{
		Network: chain.Testnet,
	})
	defer coord.Close()

	err := coord.UpdateConfirmations(context.Background(), "nonexistent")
	if err != ErrSwapNotFound {
		t.Errorf("UpdateConfirmations(nonexistent): got %v, want ErrSwapNotFound", err)
	}
}

func TestCreateFundingTxNotFound(t *testing.T) {
	coord := NewCoordinator(&CoordinatorConfig{
		Network: chain.Testnet,
	})
	defer coord.Close()

	_, err := coord.CreateFundingTx(context.Background(), "nonexistent")
	if err != ErrSwapNotFound {
		t.Errorf("CreateFundingTx(nonexistent): got %v, want ErrSwapNotFound", err)
	}
}

func TestClaimHTLCNotFound(t *testing.T) {
	coord := NewCoordinator(&CoordinatorConfig{
		Network: chain.Testnet,
	})
	defer coord.Close()

	_, err := coord.ClaimHTLC(context.Background(), "nonexistent", "BTC")
	if err != ErrSwapNotFound {
		t.Errorf("ClaimHTLC(nonexistent): got %v, want ErrSwapNotFound", err)
	}
}

func TestClaimHTLCWrongChain(t *testing.T) {
	coord := NewCoordinator(&CoordinatorConfig{
		Network: chain.Testnet,
	})
	defer coord.Close()

	sellerLeg := Leg{Chain: "BTC", Amount: 100000}
	buyerLeg := Leg{Chain: "LTC", Amount: 1000000}
	swp, _ := NewSwap(chain.Testnet, "trade-1", SideSeller, sellerLeg, buyerLeg)

	coord.mu.Lock()
	coord.swaps["trade-1"] = &ActiveSwap{
		Swap: swp,
		HTLC: &HTLCSwapData{
			SellerChain: &ChainHTLCData{},
			BuyerChain:  &ChainHTLCData{},
		},
	}
	coord.mu.Unlock()

	// The seller claims the buyer's leg (LTC), never the seller's own (BTC).
	if _, err := coord.ClaimHTLC(context.Background(), "trade-1", "BTC"); err == nil {
		t.Error("seller claiming its own leg's chain should error")
	}
}

func TestRefundHTLCNotFound(t *testing.T) {
	coord := NewCoordinator(&CoordinatorConfig{
		Network: chain.Testnet,
	})
	defer coord.Close()

	_, err := coord.RefundHTLC(context.Background(), "nonexistent", "BTC")
	if err != ErrSwapNotFound {
		t.Errorf("RefundHTLC(nonexistent): got %v, want ErrSwapNotFound", err)
	}
}

func TestSetBackend(t *testing.T) {
	coord := NewCoordinator(&CoordinatorConfig{
		Network: chain.Testnet,
	})
	defer coord.Close()

	if len(coord.backends) != 0 {
		t.Errorf("expected 0 backends initially, got %d", len(coord.backends))
	}

	coord.backends = nil
	coord.SetBackend("BTC", nil)

	if coord.backends == nil {
		t.Error("backends map should be initialized after SetBackend")
	}
}
