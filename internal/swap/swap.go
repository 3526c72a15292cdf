// Package swap implements the atomic-swap HTLC settlement state machine.
// This package contains ONLY protocol-specific logic (HTLC script state,
// timelock safety margins, funding/confirmation tracking). It uses existing
// packages directly:
//   - chain.Get() for chain parameters
//   - backend.Backend for blockchain operations
//   - wallet.Wallet for key operations
//   - config for fees and DAO addresses
package swap

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/driftmesh/driftmesh/internal/chain"
	"github.com/driftmesh/driftmesh/internal/config"
)

// Common errors
var (
	ErrUnsupportedChain          = errors.New("unsupported chain")
	ErrTaprootNotSupported       = errors.New("taproot not supported on this chain")
	ErrInvalidState              = errors.New("invalid swap state")
	ErrInvalidPubKey             = errors.New("invalid public key")
	ErrInsufficientFunds         = errors.New("insufficient funds")
	ErrSwapExpired               = errors.New("swap expired")
	ErrSecretMismatch            = errors.New("secret does not match hash")
	ErrTimeoutRace               = errors.New("too close to timeout - safety margin not met")
	ErrInsufficientConfirmations = errors.New("insufficient confirmations")
)

// Side identifies which leg of a trade a party plays: the seller funds the
// base-asset HTLC with the longer timelock, the buyer funds the
// quote-asset HTLC with the shorter timelock and holds the preimage needed
// to complete the swap.
type Side string

const (
	SideSeller Side = "seller"
	SideBuyer  Side = "buyer"
)

// State is the public state of the atomic-swap FSM: Init, then the two
// funding checkpoints kept as intermediate, reorg-aware tracking, then
// SellerRedeemed, BuyerRedeemed (the success terminal), or Cancelled (the
// timeout terminal). Mirrors storage.SwapPhase exactly so in-memory state
// and the persisted checkpoint never drift.
type State string

const (
	StateInit           State = "init"
	StateSellerFunded   State = "seller_funded"
	StateBuyerFunded    State = "buyer_funded"
	StateSellerRedeemed State = "seller_redeemed"
	StateBuyerRedeemed  State = "buyer_redeemed"
	StateCancelled      State = "cancelled"
	StateFailed         State = "failed"
)

// ChainConfig holds chain-specific configuration for a swap.
// This is constructed from chain.Params, not hardcoded.
type ChainConfig struct {
	Symbol          string
	Network         chain.Network
	SupportsTaproot bool
	Decimals        uint8
}

// NewChainConfig creates a ChainConfig from the chain registry.
func NewChainConfig(symbol string, network chain.Network) (*ChainConfig, error) {
	params, ok := chain.Get(symbol, network)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedChain, symbol)
	}

	return &ChainConfig{
		Symbol:          symbol,
		Network:         network,
		SupportsTaproot: params.SupportsTaproot,
		Decimals:        params.Decimals,
	}, nil
}

// SupportsHTLC reports whether the chain can host a P2WSH/CSV hash-timelock
// script: Bitcoin-family chains via P2WSH, EVM chains via a contract HTLC.
func (c *ChainConfig) SupportsHTLC() bool {
	params, ok := chain.Get(c.Symbol, c.Network)
	if !ok {
		return false
	}
	return params.Type == chain.ChainTypeBitcoin || params.Type == chain.ChainTypeEVM
}

// Leg is one side of the trade: the asset and amount one party locks into
// an HTLC for the other to claim.
type Leg struct {
	Chain  string
	Amount uint64
}

// Validate checks the leg's chain is supported and its amount is within the
// configured min/max for that asset.
func (l *Leg) Validate(network chain.Network) error {
	cfg, err := NewChainConfig(l.Chain, network)
	if err != nil {
		return fmt.Errorf("leg chain: %w", err)
	}
	if !cfg.SupportsHTLC() {
		return fmt.Errorf("%s does not support HTLC", l.Chain)
	}

	coin, _ := config.GetCoin(l.Chain)
	if l.Amount < coin.MinAmount {
		return fmt.Errorf("amount below minimum: %d < %d", l.Amount, coin.MinAmount)
	}
	if coin.MaxAmount > 0 && l.Amount > coin.MaxAmount {
		return fmt.Errorf("amount above maximum: %d > %d", l.Amount, coin.MaxAmount)
	}
	return nil
}

// Swap represents an atomic swap between a seller and a buyer: the seller
// locks the base asset with a longer timelock, the buyer locks the quote
// asset with a shorter timelock, and the same preimage redeems both legs.
// Every node that independently derives the same trade from the matching
// engine constructs an identical Swap and resolves its own Side by
// comparing its identity against SellerPeerID/BuyerPeerID.
type Swap struct {
	// Unique identifier, shared with the trade that produced this swap.
	ID string

	Network chain.Network

	// Side is this node's own role, derived locally — never negotiated.
	Side Side

	State State

	// SellerLeg is funded by the seller (base asset, longer timelock);
	// BuyerLeg is funded by the buyer (quote asset, shorter timelock).
	SellerLeg Leg
	BuyerLeg  Leg

	CreatedAt   time.Time
	SellerLock  time.Duration // Lock time for the seller's funds
	BuyerLock   time.Duration // Lock time for the buyer's funds

	// Block-based timeout tracking (SECURITY): more precise than
	// time-based for blockchain operations.
	SellerChainStartHeight   uint32
	BuyerChainStartHeight    uint32
	SellerChainTimeoutHeight uint32
	BuyerChainTimeoutHeight  uint32

	// Public keys (compressed, 33 bytes) for the HTLC script's
	// claim/refund branches.
	LocalPubKey  []byte
	RemotePubKey []byte

	// Funding transaction info with confirmation tracking.
	LocalFundingTxID      string
	LocalFundingVout      uint32
	LocalFundingConfirms  uint32
	RemoteFundingTxID     string
	RemoteFundingVout     uint32
	RemoteFundingConfirms uint32

	// Wallet addresses for redemption. Each party provides their address
	// on both chains: seller leg is redeemed by the buyer, buyer leg is
	// redeemed by the seller.
	LocalSellerLegWalletAddr  string
	LocalBuyerLegWalletAddr   string
	RemoteSellerLegWalletAddr string
	RemoteBuyerLegWalletAddr  string

	// Secret is generated by the seller and revealed on-chain when the
	// seller redeems the buyer's leg; the buyer then extracts it from
	// that transaction to redeem the seller's leg in turn.
	Secret     []byte
	SecretHash []byte
}

// NewSwap creates a new swap for tradeID between a seller leg and a buyer
// leg, with this node's own Side already resolved by the caller.
func NewSwap(network chain.Network, tradeID string, side Side, sellerLeg, buyerLeg Leg) (*Swap, error) {
	if err := sellerLeg.Validate(network); err != nil {
		return nil, fmt.Errorf("invalid seller leg: %w", err)
	}
	if err := buyerLeg.Validate(network); err != nil {
		return nil, fmt.Errorf("invalid buyer leg: %w", err)
	}

	swapCfg := config.DefaultSwapConfig()

	return &Swap{
		ID:         tradeID,
		Network:    network,
		Side:       side,
		State:      StateInit,
		SellerLeg:  sellerLeg,
		BuyerLeg:   buyerLeg,
		CreatedAt:  time.Now(),
		SellerLock: swapCfg.InitiatorLockTime,
		BuyerLock:  swapCfg.ResponderLockTime,
	}, nil
}

// SetLocalPubKey sets our public key for the swap.
func (s *Swap) SetLocalPubKey(pubKey *btcec.PublicKey) {
	s.LocalPubKey = pubKey.SerializeCompressed()
}

// SetRemotePubKey sets the counterparty's public key.
func (s *Swap) SetRemotePubKey(pubKey *btcec.PublicKey) error {
	if pubKey == nil {
		return ErrInvalidPubKey
	}
	s.RemotePubKey = pubKey.SerializeCompressed()
	return nil
}

// GetLocalPubKey returns our public key as a btcec.PublicKey.
func (s *Swap) GetLocalPubKey() (*btcec.PublicKey, error) {
	if len(s.LocalPubKey) == 0 {
		return nil, ErrInvalidPubKey
	}
	return btcec.ParsePubKey(s.LocalPubKey)
}

// GetRemotePubKey returns the counterparty's public key as a btcec.PublicKey.
func (s *Swap) GetRemotePubKey() (*btcec.PublicKey, error) {
	if len(s.RemotePubKey) == 0 {
		return nil, ErrInvalidPubKey
	}
	return btcec.ParsePubKey(s.RemotePubKey)
}

// GenerateSecret generates a random 32-byte secret and its hash. Only the
// seller calls this; the buyer receives SecretHash from the seller and
// waits to extract Secret from the seller's redeeming transaction.
func (s *Swap) GenerateSecret() error {
	if s.Side != SideSeller {
		return errors.New("only the seller generates the secret")
	}

	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return fmt.Errorf("failed to generate secret: %w", err)
	}

	s.Secret = secret
	s.SecretHash = HashSecret(secret)
	return nil
}

// HashSecret computes the SHA256 hash of a secret.
func HashSecret(secret []byte) []byte {
	hash := sha256.Sum256(secret)
	return hash[:]
}

// VerifySecret checks if a secret matches the stored hash.
func (s *Swap) VerifySecret(secret []byte) bool {
	if len(s.SecretHash) == 0 {
		return false
	}
	hash := HashSecret(secret)
	if len(hash) != len(s.SecretHash) {
		return false
	}
	for i := range hash {
		if hash[i] != s.SecretHash[i] {
			return false
		}
	}
	return true
}

// TransitionTo attempts to transition the swap to a new state, per the
// atomic-swap FSM: Init -> {SellerFunded|BuyerFunded in either order,
// Cancelled} -> ... -> SellerRedeemed -> BuyerRedeemed (success), or
// Cancelled at any point before redemption (timeout).
func (s *Swap) TransitionTo(newState State) error {
	valid := map[State][]State{
		StateInit:           {StateSellerFunded, StateBuyerFunded, StateCancelled},
		StateSellerFunded:   {StateBuyerFunded, StateSellerRedeemed, StateCancelled, StateFailed},
		StateBuyerFunded:    {StateSellerFunded, StateSellerRedeemed, StateCancelled, StateFailed},
		StateSellerRedeemed: {StateBuyerRedeemed, StateFailed},
		StateBuyerRedeemed:  {}, // Terminal state
		StateCancelled:      {}, // Terminal state
		StateFailed:         {}, // Terminal state
	}

	validTransitions, ok := valid[s.State]
	if !ok {
		return fmt.Errorf("%w: unknown current state %s", ErrInvalidState, s.State)
	}

	for _, validState := range validTransitions {
		if validState == newState {
			s.State = newState
			return nil
		}
	}

	return fmt.Errorf("%w: cannot transition from %s to %s", ErrInvalidState, s.State, newState)
}

// IsTerminal returns true if the swap is in a terminal state.
func (s *Swap) IsTerminal() bool {
	switch s.State {
	case StateBuyerRedeemed, StateCancelled, StateFailed:
		return true
	default:
		return false
	}
}

// SellerLockTime returns the absolute lock time for the seller's funds.
func (s *Swap) SellerLockTime() time.Time {
	return s.CreatedAt.Add(s.SellerLock)
}

// BuyerLockTime returns the absolute lock time for the buyer's funds.
func (s *Swap) BuyerLockTime() time.Time {
	return s.CreatedAt.Add(s.BuyerLock)
}

// CanRefund checks if we can refund our own leg based on the timelock.
func (s *Swap) CanRefund() bool {
	now := time.Now()
	if s.Side == SideSeller {
		return now.After(s.SellerLockTime())
	}
	return now.After(s.BuyerLockTime())
}

// =============================================================================
// Block-based Safety Margin Enforcement
// =============================================================================

// SetBlockHeights sets the starting block heights for both legs' chains.
// This should be called when the swap is created.
func (s *Swap) SetBlockHeights(sellerChainHeight, buyerChainHeight uint32) {
	isTestnet := s.Network == chain.Testnet

	sellerTimeout, _ := config.GetChainTimeout(s.SellerLeg.Chain, isTestnet)
	buyerTimeout, _ := config.GetChainTimeout(s.BuyerLeg.Chain, isTestnet)

	s.SellerChainStartHeight = sellerChainHeight
	s.BuyerChainStartHeight = buyerChainHeight

	// The seller's leg carries the longer (maker-style) timelock, the
	// buyer's leg the shorter (taker-style) one, regardless of which side
	// this node plays — the block heights are computed the same way on
	// both replicas so they converge identically.
	s.SellerChainTimeoutHeight = sellerChainHeight + sellerTimeout.MakerBlocks
	s.BuyerChainTimeoutHeight = buyerChainHeight + buyerTimeout.TakerBlocks
}

// IsSafeToComplete checks if it's safe to complete the swap given current
// block heights.  Returns nil if safe, or an error explaining why it's not.
//
// SECURITY: This prevents timeout race conditions where both claim and
// refund could potentially be valid if executed near the timeout boundary.
func (s *Swap) IsSafeToComplete(sellerChainCurrentHeight, buyerChainCurrentHeight uint32) error {
	isTestnet := s.Network == chain.Testnet

	sellerTimeout, ok := config.GetChainTimeout(s.SellerLeg.Chain, isTestnet)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedChain, s.SellerLeg.Chain)
	}
	if !config.IsSafeToComplete(sellerChainCurrentHeight, s.SellerChainTimeoutHeight, sellerTimeout.SafetyMarginBlocks) {
		blocksLeft := config.BlocksUntilTimeout(sellerChainCurrentHeight, s.SellerChainTimeoutHeight)
		return fmt.Errorf("%w: %s chain has only %d blocks until timeout (need %d margin)",
			ErrTimeoutRace, s.SellerLeg.Chain, blocksLeft, sellerTimeout.SafetyMarginBlocks)
	}

	buyerTimeout, ok := config.GetChainTimeout(s.BuyerLeg.Chain, isTestnet)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedChain, s.BuyerLeg.Chain)
	}
	if !config.IsSafeToComplete(buyerChainCurrentHeight, s.BuyerChainTimeoutHeight, buyerTimeout.SafetyMarginBlocks) {
		blocksLeft := config.BlocksUntilTimeout(buyerChainCurrentHeight, s.BuyerChainTimeoutHeight)
		return fmt.Errorf("%w: %s chain has only %d blocks until timeout (need %d margin)",
			ErrTimeoutRace, s.BuyerLeg.Chain, blocksLeft, buyerTimeout.SafetyMarginBlocks)
	}

	return nil
}

// CanRefundByBlock checks if we can refund our own leg based on block
// height (more precise than time).
func (s *Swap) CanRefundByBlock(sellerChainCurrentHeight, buyerChainCurrentHeight uint32) bool {
	if s.Side == SideSeller {
		return sellerChainCurrentHeight >= s.SellerChainTimeoutHeight
	}
	return buyerChainCurrentHeight >= s.BuyerChainTimeoutHeight
}

// BlocksUntilRefund returns the number of blocks until we can refund our
// own leg. Returns 0 if we can already refund.
func (s *Swap) BlocksUntilRefund(currentHeight uint32) uint32 {
	var timeoutHeight uint32
	if s.Side == SideSeller {
		timeoutHeight = s.SellerChainTimeoutHeight
	} else {
		timeoutHeight = s.BuyerChainTimeoutHeight
	}
	return config.BlocksUntilTimeout(currentHeight, timeoutHeight)
}

// =============================================================================
// Confirmation Tracking
// =============================================================================

// FundingStatus represents the confirmation status of a funding transaction.
type FundingStatus struct {
	TxID          string
	Confirmations uint32
	Required      uint32
	IsFinal       bool // True if confirmations >= required
}

// GetLocalFundingStatus returns the status of our funding transaction.
func (s *Swap) GetLocalFundingStatus() *FundingStatus {
	if s.LocalFundingTxID == "" {
		return nil
	}

	var localChain string
	if s.Side == SideSeller {
		localChain = s.SellerLeg.Chain
	} else {
		localChain = s.BuyerLeg.Chain
	}

	isTestnet := s.Network == chain.Testnet
	chainCfg, _ := config.GetChainTimeout(localChain, isTestnet)

	return &FundingStatus{
		TxID:          s.LocalFundingTxID,
		Confirmations: s.LocalFundingConfirms,
		Required:      chainCfg.MinConfirmations,
		IsFinal:       s.LocalFundingConfirms >= chainCfg.MinConfirmations,
	}
}

// GetRemoteFundingStatus returns the status of the counterparty's funding
// transaction.
func (s *Swap) GetRemoteFundingStatus() *FundingStatus {
	if s.RemoteFundingTxID == "" {
		return nil
	}

	var remoteChain string
	if s.Side == SideSeller {
		remoteChain = s.BuyerLeg.Chain
	} else {
		remoteChain = s.SellerLeg.Chain
	}

	isTestnet := s.Network == chain.Testnet
	chainCfg, _ := config.GetChainTimeout(remoteChain, isTestnet)

	return &FundingStatus{
		TxID:          s.RemoteFundingTxID,
		Confirmations: s.RemoteFundingConfirms,
		Required:      chainCfg.MinConfirmations,
		IsFinal:       s.RemoteFundingConfirms >= chainCfg.MinConfirmations,
	}
}

// UpdateLocalConfirmations updates the confirmation count for our funding tx.
func (s *Swap) UpdateLocalConfirmations(confirmations uint32) {
	s.LocalFundingConfirms = confirmations
}

// UpdateRemoteConfirmations updates the confirmation count for the
// counterparty's funding tx.
func (s *Swap) UpdateRemoteConfirmations(confirmations uint32) {
	s.RemoteFundingConfirms = confirmations
}

// IsFundingConfirmed returns true if both funding transactions have
// sufficient confirmations.
// SECURITY: This protects against reorg attacks by ensuring transactions
// are deep enough.
func (s *Swap) IsFundingConfirmed() bool {
	localStatus := s.GetLocalFundingStatus()
	remoteStatus := s.GetRemoteFundingStatus()

	if localStatus == nil || remoteStatus == nil {
		return false
	}

	return localStatus.IsFinal && remoteStatus.IsFinal
}

// CheckConfirmations validates that both funding transactions have
// sufficient confirmations. Returns nil if OK, or an error with details
// about insufficient confirmations.
func (s *Swap) CheckConfirmations() error {
	localStatus := s.GetLocalFundingStatus()
	if localStatus == nil {
		return fmt.Errorf("%w: local funding transaction not set", ErrInsufficientConfirmations)
	}
	if !localStatus.IsFinal {
		return fmt.Errorf("%w: local funding has %d/%d confirmations",
			ErrInsufficientConfirmations, localStatus.Confirmations, localStatus.Required)
	}

	remoteStatus := s.GetRemoteFundingStatus()
	if remoteStatus == nil {
		return fmt.Errorf("%w: remote funding transaction not set", ErrInsufficientConfirmations)
	}
	if !remoteStatus.IsFinal {
		return fmt.Errorf("%w: remote funding has %d/%d confirmations",
			ErrInsufficientConfirmations, remoteStatus.Confirmations, remoteStatus.Required)
	}

	return nil
}
