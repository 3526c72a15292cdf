// Package swap - Helper functions for the Coordinator.
package swap

import (
	"context"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/driftmesh/driftmesh/internal/backend"
	"github.com/driftmesh/driftmesh/internal/chain"
	"github.com/driftmesh/driftmesh/internal/storage"
)

// =============================================================================
// Swap Lookup
// =============================================================================

// GetSwap returns an active swap by trade ID.
func (c *Coordinator) GetSwap(tradeID string) (*ActiveSwap, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	active, ok := c.swaps[tradeID]
	if !ok {
		return nil, ErrSwapNotFound
	}

	return active, nil
}

// SetRemotePubKey records the counterparty's pubkey, exchanged over the P2P
// transport once both sides have an active swap in memory.
func (c *Coordinator) SetRemotePubKey(tradeID string, pubKeyBytes []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	active, ok := c.swaps[tradeID]
	if !ok {
		return ErrSwapNotFound
	}

	pubKey, err := btcec.ParsePubKey(pubKeyBytes)
	if err != nil {
		return fmt.Errorf("invalid remote pubkey: %w", err)
	}

	if err := active.Swap.SetRemotePubKey(pubKey); err != nil {
		return err
	}

	return c.saveSwapState(tradeID)
}

// SetRemoteWalletAddresses records the counterparty's receiving addresses
// for each leg, exchanged alongside the pubkey.
func (c *Coordinator) SetRemoteWalletAddresses(tradeID, sellerLegAddr, buyerLegAddr string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	active, ok := c.swaps[tradeID]
	if !ok {
		return ErrSwapNotFound
	}

	active.Swap.RemoteSellerLegWalletAddr = sellerLegAddr
	active.Swap.RemoteBuyerLegWalletAddr = buyerLegAddr

	return c.saveSwapState(tradeID)
}

// =============================================================================
// Backend Helpers
// =============================================================================

// getBlockHeight gets the current block height for a chain.
func (c *Coordinator) getBlockHeight(ctx context.Context, chainSymbol string) (uint32, error) {
	b, ok := c.backends[chainSymbol]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNoBackend, chainSymbol)
	}

	height, err := b.GetBlockHeight(ctx)
	if err != nil {
		return 0, err
	}

	return uint32(height), nil
}

// getConfirmations gets the confirmation count for a transaction.
func (c *Coordinator) getConfirmations(ctx context.Context, chainSymbol, txID string) (uint32, error) {
	b, ok := c.backends[chainSymbol]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNoBackend, chainSymbol)
	}

	tx, err := b.GetTransaction(ctx, txID)
	if err != nil {
		return 0, err
	}

	return uint32(tx.Confirmations), nil
}

// getWalletAddress derives a wallet address for a chain using proper index management.
// It tracks used indices in storage to avoid address reuse.
func (c *Coordinator) getWalletAddress(chainSymbol string) (string, error) {
	if c.wallet == nil {
		return "", ErrNoWallet
	}

	const account = uint32(0)
	const change = uint32(0) // External addresses

	// Get the next available address index from storage
	nextIndex := uint32(0)
	if c.store != nil {
		var err error
		nextIndex, err = c.store.GetNextAddressIndex(chainSymbol, account, change)
		if err != nil {
			c.log.Warn("Failed to get next address index, using 0", "chain", chainSymbol, "error", err)
			nextIndex = 0
		}
	}

	// Derive the address at the next index
	addr, err := c.wallet.DeriveAddress(chainSymbol, account, nextIndex)
	if err != nil {
		return "", err
	}

	// Save the address to storage for tracking
	if c.store != nil {
		walletAddr := &storage.WalletAddress{
			Address:      addr,
			Chain:        chainSymbol,
			Account:      account,
			Change:       change,
			AddressIndex: nextIndex,
			AddressType:  "p2wpkh", // Default for Bitcoin-like chains
		}
		if err := c.store.SaveWalletAddress(walletAddr); err != nil {
			c.log.Warn("Failed to save wallet address", "address", addr, "error", err)
		} else {
			c.log.Debug("Derived new wallet address", "chain", chainSymbol, "index", nextIndex, "address", addr)
		}
	}

	return addr, nil
}

// getWalletAddressAtIndex derives a wallet address at a specific index (for deterministic use).
func (c *Coordinator) getWalletAddressAtIndex(chainSymbol string, index uint32) (string, error) {
	if c.wallet == nil {
		return "", ErrNoWallet
	}

	return c.wallet.DeriveAddress(chainSymbol, 0, index)
}

// Network returns the network the coordinator is configured for.
func (c *Coordinator) Network() chain.Network {
	return c.network
}

// GetBackend returns the backend for a chain symbol.
func (c *Coordinator) GetBackend(chainSymbol string) (backend.Backend, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	b, ok := c.backends[chainSymbol]
	return b, ok
}
