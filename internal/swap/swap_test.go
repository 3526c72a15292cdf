package swap

import (
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/driftmesh/driftmesh/internal/chain"
	"github.com/driftmesh/driftmesh/internal/config"
)

func TestNewChainConfig(t *testing.T) {
	tests := []struct {
		name        string
		symbol      string
		network     chain.Network
		wantTaproot bool
		wantErr     bool
	}{
		{
			name:        "BTC testnet supports taproot",
			symbol:      "BTC",
			network:     chain.Testnet,
			wantTaproot: true,
			wantErr:     false,
		},
		{
			name:        "LTC testnet supports taproot",
			symbol:      "LTC",
			network:     chain.Testnet,
			wantTaproot: true,
			wantErr:     false,
		},
		{
			name:        "DOGE does not support taproot",
			symbol:      "DOGE",
			network:     chain.Mainnet,
			wantTaproot: false,
			wantErr:     false,
		},
		{
			name:    "unsupported chain",
			symbol:  "INVALID",
			network: chain.Testnet,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := NewChainConfig(tt.symbol, tt.network)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.SupportsTaproot != tt.wantTaproot {
				t.Errorf("SupportsTaproot = %v, want %v", cfg.SupportsTaproot, tt.wantTaproot)
			}
		})
	}
}

func TestChainConfigSupportsHTLC(t *testing.T) {
	tests := []struct {
		name    string
		symbol  string
		network chain.Network
		want    bool
	}{
		{
			name:    "BTC supports HTLC",
			symbol:  "BTC",
			network: chain.Testnet,
			want:    true,
		},
		{
			name:    "DOGE supports HTLC",
			symbol:  "DOGE",
			network: chain.Mainnet,
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := NewChainConfig(tt.symbol, tt.network)
			if err != nil {
				t.Fatalf("NewChainConfig failed: %v", err)
			}
			got := cfg.SupportsHTLC()
			if got != tt.want {
				t.Errorf("SupportsHTLC(%s) = %v, want %v", tt.symbol, got, tt.want)
			}
		})
	}
}

func TestLegValidation(t *testing.T) {
	tests := []struct {
		name    string
		leg     Leg
		network chain.Network
		wantErr bool
	}{
		{
			name:    "valid BTC leg",
			leg:     Leg{Chain: "BTC", Amount: 100000},
			network: chain.Testnet,
			wantErr: false,
		},
		{
			name:    "amount below minimum",
			leg:     Leg{Chain: "BTC", Amount: 100},
			network: chain.Testnet,
			wantErr: true,
		},
		{
			name:    "unsupported chain",
			leg:     Leg{Chain: "INVALID", Amount: 100000},
			network: chain.Testnet,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.leg.Validate(tt.network)
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func newTestLegs() (Leg, Leg) {
	return Leg{Chain: "BTC", Amount: 100000}, Leg{Chain: "LTC", Amount: 1000000}
}

func TestNewSwap(t *testing.T) {
	sellerLeg, buyerLeg := newTestLegs()

	swap, err := NewSwap(chain.Testnet, "trade-1", SideSeller, sellerLeg, buyerLeg)
	if err != nil {
		t.Fatalf("NewSwap failed: %v", err)
	}

	if swap.ID != "trade-1" {
		t.Error("swap ID should match the trade ID passed in")
	}
	if swap.State != StateInit {
		t.Errorf("initial state should be StateInit, got %s", swap.State)
	}
	if swap.Side != SideSeller {
		t.Errorf("side should be SideSeller, got %s", swap.Side)
	}

	swapCfg := config.DefaultSwapConfig()
	if swap.SellerLock != swapCfg.InitiatorLockTime {
		t.Errorf("SellerLock = %v, want %v", swap.SellerLock, swapCfg.InitiatorLockTime)
	}
	if swap.BuyerLock != swapCfg.ResponderLockTime {
		t.Errorf("BuyerLock = %v, want %v", swap.BuyerLock, swapCfg.ResponderLockTime)
	}
}

func TestNewSwapRejectsInvalidLeg(t *testing.T) {
	badLeg := Leg{Chain: "BTC", Amount: 1}
	_, goodLeg := newTestLegs()

	if _, err := NewSwap(chain.Testnet, "trade-1", SideSeller, badLeg, goodLeg); err == nil {
		t.Error("expected error for invalid seller leg")
	}
	if _, err := NewSwap(chain.Testnet, "trade-1", SideSeller, goodLeg, badLeg); err == nil {
		t.Error("expected error for invalid buyer leg")
	}
}

func TestSwapStateTransitions(t *testing.T) {
	sellerLeg, buyerLeg := newTestLegs()
	swap, _ := NewSwap(chain.Testnet, "trade-1", SideSeller, sellerLeg, buyerLeg)

	tests := []struct {
		from    State
		to      State
		wantErr bool
	}{
		{StateInit, StateSellerFunded, false},
		{StateSellerFunded, StateBuyerFunded, false},
		{StateBuyerFunded, StateSellerRedeemed, false},
		{StateSellerRedeemed, StateBuyerRedeemed, false},
	}

	for _, tt := range tests {
		swap.State = tt.from
		err := swap.TransitionTo(tt.to)
		if tt.wantErr && err == nil {
			t.Errorf("transition %s -> %s: expected error", tt.from, tt.to)
		}
		if !tt.wantErr && err != nil {
			t.Errorf("transition %s -> %s: unexpected error: %v", tt.from, tt.to, err)
		}
	}

	// Invalid transitions
	swap.State = StateBuyerRedeemed
	if err := swap.TransitionTo(StateInit); err == nil {
		t.Error("should not allow transition from terminal state")
	}

	swap.State = StateInit
	if err := swap.TransitionTo(StateBuyerRedeemed); err == nil {
		t.Error("should not allow skipping straight to BuyerRedeemed")
	}
}

func TestSwapPubKeyHandling(t *testing.T) {
	sellerLeg, buyerLeg := newTestLegs()
	swap, _ := NewSwap(chain.Testnet, "trade-1", SideSeller, sellerLeg, buyerLeg)

	privKey, err := btcec.NewPrivateKey()
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	pubKey := privKey.PubKey()

	swap.SetLocalPubKey(pubKey)

	gotPubKey, err := swap.GetLocalPubKey()
	if err != nil {
		t.Fatalf("GetLocalPubKey failed: %v", err)
	}
	if !pubKey.IsEqual(gotPubKey) {
		t.Error("retrieved public key doesn't match original")
	}

	remotePrivKey, _ := btcec.NewPrivateKey()
	if err := swap.SetRemotePubKey(remotePrivKey.PubKey()); err != nil {
		t.Errorf("SetRemotePubKey failed: %v", err)
	}

	gotRemote, err := swap.GetRemotePubKey()
	if err != nil {
		t.Fatalf("GetRemotePubKey failed: %v", err)
	}
	if !remotePrivKey.PubKey().IsEqual(gotRemote) {
		t.Error("retrieved remote public key doesn't match original")
	}
}

func TestSwapSecretGeneration(t *testing.T) {
	sellerLeg, buyerLeg := newTestLegs()

	seller, _ := NewSwap(chain.Testnet, "trade-1", SideSeller, sellerLeg, buyerLeg)
	if err := seller.GenerateSecret(); err != nil {
		t.Fatalf("GenerateSecret failed: %v", err)
	}

	if len(seller.Secret) != 32 {
		t.Errorf("secret length = %d, want 32", len(seller.Secret))
	}
	if len(seller.SecretHash) != 32 {
		t.Errorf("secret hash length = %d, want 32", len(seller.SecretHash))
	}

	if !seller.VerifySecret(seller.Secret) {
		t.Error("secret should verify against its hash")
	}

	wrongSecret := make([]byte, 32)
	if seller.VerifySecret(wrongSecret) {
		t.Error("wrong secret should not verify")
	}

	buyer, _ := NewSwap(chain.Testnet, "trade-2", SideBuyer, sellerLeg, buyerLeg)
	if err := buyer.GenerateSecret(); err == nil {
		t.Error("buyer should not be able to generate the secret")
	}
}

func TestSwapTerminalStates(t *testing.T) {
	sellerLeg, buyerLeg := newTestLegs()
	swap, _ := NewSwap(chain.Testnet, "trade-1", SideSeller, sellerLeg, buyerLeg)

	terminalStates := []State{StateBuyerRedeemed, StateCancelled, StateFailed}
	nonTerminalStates := []State{StateInit, StateSellerFunded, StateBuyerFunded, StateSellerRedeemed}

	for _, state := range terminalStates {
		swap.State = state
		if !swap.IsTerminal() {
			t.Errorf("%s should be terminal", state)
		}
	}

	for _, state := range nonTerminalStates {
		swap.State = state
		if swap.IsTerminal() {
			t.Errorf("%s should not be terminal", state)
		}
	}
}

func TestHashSecret(t *testing.T) {
	secret := []byte("test secret that is exactly 32 b")
	hash := HashSecret(secret)

	if len(hash) != 32 {
		t.Errorf("hash length = %d, want 32", len(hash))
	}

	hash2 := HashSecret(secret)
	for i := range hash {
		if hash[i] != hash2[i] {
			t.Error("same secret should produce same hash")
			break
		}
	}

	differentSecret := []byte("different secret xxxxxxxxxxxxx")
	hash3 := HashSecret(differentSecret)
	same := true
	for i := range hash {
		if hash[i] != hash3[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different secrets should produce different hashes")
	}
}

// =============================================================================
// Safety Margin and Timeout Tests
// =============================================================================

func TestSetBlockHeights(t *testing.T) {
	sellerLeg, buyerLeg := newTestLegs()

	seller, _ := NewSwap(chain.Testnet, "trade-1", SideSeller, sellerLeg, buyerLeg)
	seller.SetBlockHeights(100000, 50000) // BTC (seller leg) at 100000, LTC (buyer leg) at 50000

	btcTestTimeout, _ := config.GetChainTimeout("BTC", true)
	ltcTestTimeout, _ := config.GetChainTimeout("LTC", true)

	expectedSellerTimeout := uint32(100000) + btcTestTimeout.MakerBlocks
	expectedBuyerTimeout := uint32(50000) + ltcTestTimeout.TakerBlocks

	if seller.SellerChainTimeoutHeight != expectedSellerTimeout {
		t.Errorf("SellerChainTimeoutHeight = %d, want %d", seller.SellerChainTimeoutHeight, expectedSellerTimeout)
	}
	if seller.BuyerChainTimeoutHeight != expectedBuyerTimeout {
		t.Errorf("BuyerChainTimeoutHeight = %d, want %d", seller.BuyerChainTimeoutHeight, expectedBuyerTimeout)
	}

	// The computed heights don't depend on which side this node plays -
	// both replicas converge on the identical timeout heights.
	buyer, _ := NewSwap(chain.Testnet, "trade-2", SideBuyer, sellerLeg, buyerLeg)
	buyer.SetBlockHeights(100000, 50000)

	if buyer.SellerChainTimeoutHeight != expectedSellerTimeout {
		t.Errorf("buyer SellerChainTimeoutHeight = %d, want %d", buyer.SellerChainTimeoutHeight, expectedSellerTimeout)
	}
	if buyer.BuyerChainTimeoutHeight != expectedBuyerTimeout {
		t.Errorf("buyer BuyerChainTimeoutHeight = %d, want %d", buyer.BuyerChainTimeoutHeight, expectedBuyerTimeout)
	}
}

func TestIsSafeToComplete(t *testing.T) {
	sellerLeg, buyerLeg := newTestLegs()

	swap, _ := NewSwap(chain.Testnet, "trade-1", SideSeller, sellerLeg, buyerLeg)
	swap.SetBlockHeights(100000, 50000)

	sellerTimeout, _ := config.GetChainTimeout("BTC", true)

	tests := []struct {
		name       string
		btcHeight  uint32
		ltcHeight  uint32
		expectSafe bool
	}{
		{
			name:       "well before timeout - safe",
			btcHeight:  100005,
			ltcHeight:  50005,
			expectSafe: true,
		},
		{
			name:       "at start - safe",
			btcHeight:  100000,
			ltcHeight:  50000,
			expectSafe: true,
		},
		{
			name:       "within safety margin - not safe",
			btcHeight:  swap.SellerChainTimeoutHeight - sellerTimeout.SafetyMarginBlocks + 1,
			ltcHeight:  50005,
			expectSafe: false,
		},
		{
			name:       "past timeout - not safe",
			btcHeight:  swap.SellerChainTimeoutHeight + 1,
			ltcHeight:  50005,
			expectSafe: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := swap.IsSafeToComplete(tt.btcHeight, tt.ltcHeight)
			if tt.expectSafe && err != nil {
				t.Errorf("expected safe, got error: %v", err)
			}
			if !tt.expectSafe && err == nil {
				t.Error("expected not safe, got nil error")
			}
		})
	}
}

func TestCanRefundByBlock(t *testing.T) {
	sellerLeg, buyerLeg := newTestLegs()

	seller, _ := NewSwap(chain.Testnet, "trade-1", SideSeller, sellerLeg, buyerLeg)
	seller.SetBlockHeights(100000, 50000)

	// Before timeout
	if seller.CanRefundByBlock(100005, 50005) {
		t.Error("should not be able to refund before timeout")
	}

	// At timeout
	if !seller.CanRefundByBlock(seller.SellerChainTimeoutHeight, 50005) {
		t.Error("should be able to refund at timeout")
	}

	// After timeout
	if !seller.CanRefundByBlock(seller.SellerChainTimeoutHeight+10, 50005) {
		t.Error("should be able to refund after timeout")
	}

	// Buyer checks the buyer-leg chain instead
	buyer, _ := NewSwap(chain.Testnet, "trade-2", SideBuyer, sellerLeg, buyerLeg)
	buyer.SetBlockHeights(100000, 50000)

	if buyer.CanRefundByBlock(100005, 50005) {
		t.Error("buyer should not be able to refund before timeout")
	}

	if !buyer.CanRefundByBlock(100005, buyer.BuyerChainTimeoutHeight) {
		t.Error("buyer should be able to refund at timeout")
	}
}

func TestBlocksUntilRefund(t *testing.T) {
	sellerLeg, buyerLeg := newTestLegs()

	swap, _ := NewSwap(chain.Testnet, "trade-1", SideSeller, sellerLeg, buyerLeg)
	swap.SetBlockHeights(100000, 50000)

	blocksLeft := swap.BlocksUntilRefund(100000)
	sellerTimeout, _ := config.GetChainTimeout("BTC", true)
	if blocksLeft != sellerTimeout.MakerBlocks {
		t.Errorf("BlocksUntilRefund at start = %d, want %d", blocksLeft, sellerTimeout.MakerBlocks)
	}

	blocksLeft = swap.BlocksUntilRefund(100005)
	if blocksLeft != sellerTimeout.MakerBlocks-5 {
		t.Errorf("BlocksUntilRefund = %d, want %d", blocksLeft, sellerTimeout.MakerBlocks-5)
	}

	blocksLeft = swap.BlocksUntilRefund(swap.SellerChainTimeoutHeight)
	if blocksLeft != 0 {
		t.Errorf("BlocksUntilRefund at timeout = %d, want 0", blocksLeft)
	}

	blocksLeft = swap.BlocksUntilRefund(swap.SellerChainTimeoutHeight + 10)
	if blocksLeft != 0 {
		t.Errorf("BlocksUntilRefund past timeout = %d, want 0", blocksLeft)
	}
}

// =============================================================================
// Confirmation Tracking Tests
// =============================================================================

func TestFundingStatus(t *testing.T) {
	// Mainnet, since testnet has MinConfirmations=0.
	sellerLeg, buyerLeg := newTestLegs()
	swap, _ := NewSwap(chain.Mainnet, "trade-1", SideSeller, sellerLeg, buyerLeg)

	status := swap.GetLocalFundingStatus()
	if status != nil {
		t.Error("should return nil when no funding tx is set")
	}

	swap.LocalFundingTxID = "abc123"
	swap.LocalFundingConfirms = 0

	status = swap.GetLocalFundingStatus()
	if status == nil {
		t.Fatal("status should not be nil after setting tx")
	}

	sellerTimeout, _ := config.GetChainTimeout("BTC", false) // Mainnet
	if status.Required != sellerTimeout.MinConfirmations {
		t.Errorf("Required = %d, want %d", status.Required, sellerTimeout.MinConfirmations)
	}
	if status.IsFinal {
		t.Error("should not be final with 0 confirmations")
	}

	swap.UpdateLocalConfirmations(sellerTimeout.MinConfirmations)
	status = swap.GetLocalFundingStatus()
	if !status.IsFinal {
		t.Error("should be final with sufficient confirmations")
	}
}

func TestIsFundingConfirmed(t *testing.T) {
	sellerLeg, buyerLeg := newTestLegs()
	swap, _ := NewSwap(chain.Testnet, "trade-1", SideSeller, sellerLeg, buyerLeg)

	if swap.IsFundingConfirmed() {
		t.Error("should not be confirmed without funding txs")
	}

	swap.LocalFundingTxID = "abc123"
	sellerTimeout, _ := config.GetChainTimeout("BTC", true)
	swap.UpdateLocalConfirmations(sellerTimeout.MinConfirmations)

	if swap.IsFundingConfirmed() {
		t.Error("should not be confirmed without remote funding tx")
	}

	swap.RemoteFundingTxID = "def456"
	buyerTimeout, _ := config.GetChainTimeout("LTC", true)
	swap.UpdateRemoteConfirmations(buyerTimeout.MinConfirmations)

	if !swap.IsFundingConfirmed() {
		t.Error("should be confirmed with both funding txs having sufficient confirmations")
	}
}

func TestCheckConfirmations(t *testing.T) {
	// Mainnet, since testnet has MinConfirmations=0.
	sellerLeg, buyerLeg := newTestLegs()
	swap, _ := NewSwap(chain.Mainnet, "trade-1", SideSeller, sellerLeg, buyerLeg)

	if err := swap.CheckConfirmations(); err == nil {
		t.Error("should error without local funding tx")
	}

	swap.LocalFundingTxID = "abc123"
	swap.UpdateLocalConfirmations(0)

	if err := swap.CheckConfirmations(); err == nil {
		t.Error("should error with insufficient local confirmations")
	}

	sellerTimeout, _ := config.GetChainTimeout("BTC", false) // Mainnet
	swap.UpdateLocalConfirmations(sellerTimeout.MinConfirmations)

	if err := swap.CheckConfirmations(); err == nil {
		t.Error("should error without remote funding tx")
	}

	swap.RemoteFundingTxID = "def456"
	swap.UpdateRemoteConfirmations(0)

	if err := swap.CheckConfirmations(); err == nil {
		t.Error("should error with insufficient remote confirmations")
	}

	buyerTimeout, _ := config.GetChainTimeout("LTC", false) // Mainnet
	swap.UpdateRemoteConfirmations(buyerTimeout.MinConfirmations)

	if err := swap.CheckConfirmations(); err != nil {
		t.Errorf("should succeed with sufficient confirmations: %v", err)
	}
}
