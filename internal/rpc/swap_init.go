// Package rpc - Swap initialization handler.
package rpc

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/driftmesh/driftmesh/internal/node"
	"github.com/driftmesh/driftmesh/internal/swap"
)

// swapInit reports (and, on first call, drives) the pubkey/wallet-address
// exchange for a trade's swap. The swap itself is created automatically by
// core.Context the moment the matching engine reports the fill (see
// core.SwapInitiator) - this handler never constructs one. It exists so a
// client can trigger the P2P exchange deterministically and poll the result,
// and so a seller whose secret hash message got dropped can resend it.
func (s *Server) swapInit(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p SwapInitParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}
	if p.TradeID == "" {
		return nil, fmt.Errorf("trade_id is required")
	}

	activeSwap, err := s.coordinator.GetSwap(p.TradeID)
	if err != nil {
		return nil, fmt.Errorf("swap not found for trade %s: settlement starts automatically once the matching engine reports the fill", p.TradeID)
	}

	pubKey, err := s.coordinator.GetLocalPubKey(p.TradeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get local pubkey: %w", err)
	}
	pubKeyHex := hex.EncodeToString(pubKey)

	var sellerAddr, buyerAddr string
	if s.wallet != nil {
		if activeSwap.Swap.LocalSellerLegWalletAddr == "" && activeSwap.Swap.Side == swap.SideSeller {
			if addr, _, err := s.getNextWalletAddress(activeSwap.Swap.SellerLeg.Chain); err == nil {
				activeSwap.Swap.LocalSellerLegWalletAddr = addr
			}
		}
		if activeSwap.Swap.LocalBuyerLegWalletAddr == "" && activeSwap.Swap.Side == swap.SideBuyer {
			if addr, _, err := s.getNextWalletAddress(activeSwap.Swap.BuyerLeg.Chain); err == nil {
				activeSwap.Swap.LocalBuyerLegWalletAddr = addr
			}
		}
		sellerAddr = activeSwap.Swap.LocalSellerLegWalletAddr
		buyerAddr = activeSwap.Swap.LocalBuyerLegWalletAddr
	}

	// The seller announces the secret hash alongside its pubkey; the buyer
	// just announces its pubkey and waits for the hash.
	if activeSwap.Swap.Side == swap.SideSeller && len(activeSwap.Swap.SecretHash) > 0 {
		secretHashHex := hex.EncodeToString(activeSwap.Swap.SecretHash)
		msg, err := node.NewHTLCSecretHashMessage(p.TradeID, secretHashHex, pubKeyHex, sellerAddr, buyerAddr)
		if err == nil {
			if err := s.sendSwapMessage(ctx, msg); err != nil {
				s.log.Warn("Failed to send secret hash", "trade_id", p.TradeID, "error", err)
			}
		}
	} else {
		payload := &node.PubKeyExchangePayload{
			PubKey:            pubKeyHex,
			OfferWalletAddr:   sellerAddr,
			RequestWalletAddr: buyerAddr,
		}
		msg, err := node.NewSwapMessage(node.SwapMsgPubKeyExchange, p.TradeID, payload)
		if err == nil {
			if err := s.sendSwapMessage(ctx, msg); err != nil {
				s.log.Warn("Failed to send pubkey", "trade_id", p.TradeID, "error", err)
			}
		}
	}

	side := "buyer"
	if activeSwap.Swap.Side == swap.SideSeller {
		side = "seller"
	}

	if s.wsHub != nil {
		s.wsHub.Broadcast("swap_initialized", map[string]string{
			"trade_id":     p.TradeID,
			"local_pubkey": pubKeyHex,
			"side":         side,
		})
	}

	return &SwapInitResult{
		TradeID:     p.TradeID,
		Side:        side,
		LocalPubKey: pubKeyHex,
		State:       string(activeSwap.Swap.State),
	}, nil
}
