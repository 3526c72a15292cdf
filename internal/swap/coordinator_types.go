// Package swap - Type definitions for the Coordinator.
package swap

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/driftmesh/driftmesh/internal/backend"
	"github.com/driftmesh/driftmesh/internal/chain"
	"github.com/driftmesh/driftmesh/internal/storage"
	"github.com/driftmesh/driftmesh/internal/wallet"
	"github.com/driftmesh/driftmesh/pkg/logging"
)

// Coordinator errors
var (
	ErrSwapNotFound     = errors.New("swap not found")
	ErrSwapExists       = errors.New("swap already exists")
	ErrNoWallet         = errors.New("wallet not available")
	ErrNoBackend        = errors.New("backend not available for chain")
	ErrAlreadyFunded    = errors.New("already funded")
	ErrNotReadyToSign   = errors.New("not ready to sign")
	ErrNotReadyToRedeem = errors.New("not ready to redeem")
)

// SwapEvent represents an event that occurred during a swap.
type SwapEvent struct {
	TradeID   string
	EventType string
	Data      interface{}
	Timestamp time.Time
}

// EventHandler is called when swap events occur.
type EventHandler func(event SwapEvent)

// ChainHTLCData holds HTLC data for a single chain leg of the swap.
type ChainHTLCData struct {
	Session     *HTLCSession
	HTLCAddress string // P2WSH address
	ClaimTxID   string // Claim transaction ID (after claiming)
	RefundTxID  string // Refund transaction ID (if refunded)
}

// HTLCSwapData holds the HTLC session for each leg of a swap. Each chain
// has its own session because claim/refund witnesses are chain-specific.
type HTLCSwapData struct {
	LocalPrivKey *btcec.PrivateKey
	SellerChain  *ChainHTLCData
	BuyerChain   *ChainHTLCData
}

// MatchedTrade carries the matching-engine fill that originated a swap: the
// order and counterparties the coordinator needs to attribute the persisted
// swap record to.
type MatchedTrade struct {
	OrderID      string
	SellerPeerID string
	BuyerPeerID  string
}

// ActiveSwap holds runtime data for an active swap.
type ActiveSwap struct {
	Swap      *Swap
	Trade     *MatchedTrade
	SellerLeg *storage.SwapLeg
	BuyerLeg  *storage.SwapLeg
	HTLC      *HTLCSwapData
}

// Coordinator manages active swaps.
type Coordinator struct {
	mu sync.RWMutex

	// Dependencies
	store         *storage.Storage
	wallet        *wallet.Wallet
	walletService *wallet.Service // For transaction building/signing
	backends      map[string]backend.Backend // chain symbol -> backend

	// Network
	network chain.Network

	// Active swaps (tradeID -> ActiveSwap)
	swaps map[string]*ActiveSwap

	// Event handlers
	eventHandlers []EventHandler

	// Logger
	log *logging.Logger

	// ownsOrder reports whether orderID was submitted locally, letting
	// InitiateSwap work out which side of a trade this node is funding
	// without the matched-trade notification itself carrying peer
	// identity. Nil means every call is treated as the buyer side.
	ownsOrder func(orderID string) bool

	// Context for background operations
	ctx    context.Context
	cancel context.CancelFunc
}

// CoordinatorConfig holds configuration for the Coordinator.
type CoordinatorConfig struct {
	Store         *storage.Storage
	Wallet        *wallet.Wallet
	WalletService *wallet.Service // For transaction building/signing
	Backends      map[string]backend.Backend
	Network       chain.Network
	OwnsOrder     func(orderID string) bool
}

// =============================================================================
// Storage Types
// =============================================================================

// CoordinatorHTLCStorageData is the JSON structure stored as
// storage.SwapRecord.MethodData for swap recovery.
type CoordinatorHTLCStorageData struct {
	LocalPubKey  string `json:"local_pubkey"`
	RemotePubKey string `json:"remote_pubkey"`

	// Wallet addresses for redemption
	LocalSellerLegWalletAddr  string `json:"local_seller_leg_wallet_addr,omitempty"`
	LocalBuyerLegWalletAddr   string `json:"local_buyer_leg_wallet_addr,omitempty"`
	RemoteSellerLegWalletAddr string `json:"remote_seller_leg_wallet_addr,omitempty"`
	RemoteBuyerLegWalletAddr  string `json:"remote_buyer_leg_wallet_addr,omitempty"`

	// Secret is only populated for the seller, who generated it.
	Secret     string `json:"secret,omitempty"`
	SecretHash string `json:"secret_hash,omitempty"`

	SellerChain *HTLCChainStorageData `json:"seller_chain,omitempty"`
	BuyerChain  *HTLCChainStorageData `json:"buyer_chain,omitempty"`
}

// HTLCChainStorageData stores per-chain HTLC data.
type HTLCChainStorageData struct {
	Symbol      string `json:"symbol"`
	HTLCAddress string `json:"htlc_address"`
	SessionData string `json:"session_data,omitempty"` // JSON of HTLCSession
}

// =============================================================================
// Timeout Types
// =============================================================================

// TimeoutCheckResult holds the result of checking a swap for timeout.
type TimeoutCheckResult struct {
	TradeID         string
	Chain           string
	CurrentHeight   uint32
	TimeoutHeight   uint32
	BlocksRemaining int32 // Negative means timeout passed
	CanRefund       bool
	RefundBroadcast bool
	RefundTxID      string
	Error           error
}
