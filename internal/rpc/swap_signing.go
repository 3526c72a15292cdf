// Package rpc - Wallet address derivation used by the swap_init handler.
package rpc

import (
	"errors"

	"github.com/driftmesh/driftmesh/internal/storage"
)

var errNoWallet = errors.New("wallet not available")

// getNextWalletAddress derives a fresh wallet address for a chain using proper index management.
// It tracks used indices in storage to avoid address reuse.
func (s *Server) getNextWalletAddress(chainSymbol string) (string, uint32, error) {
	if s.wallet == nil {
		return "", 0, errNoWallet
	}

	const account = uint32(0)
	const change = uint32(0) // External addresses

	nextIndex := uint32(0)
	if s.store != nil {
		var err error
		nextIndex, err = s.store.GetNextAddressIndex(chainSymbol, account, change)
		if err != nil {
			s.log.Debug("Failed to get next address index, using 0", "chain", chainSymbol, "error", err)
			nextIndex = 0
		}
	}

	addr, err := s.wallet.GetAddress(chainSymbol, account, nextIndex)
	if err != nil {
		return "", 0, err
	}

	if s.store != nil {
		walletAddr := &storage.WalletAddress{
			Address:      addr,
			Chain:        chainSymbol,
			Account:      account,
			Change:       change,
			AddressIndex: nextIndex,
			AddressType:  "p2wpkh", // Default for Bitcoin-like chains
		}
		if err := s.store.SaveWalletAddress(walletAddr); err != nil {
			s.log.Debug("Failed to save wallet address", "address", addr, "error", err)
		} else {
			s.log.Debug("Derived new wallet address", "chain", chainSymbol, "index", nextIndex, "address", addr)
		}
	}

	return addr, nextIndex, nil
}
