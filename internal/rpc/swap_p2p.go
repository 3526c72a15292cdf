// Package rpc - P2P message handlers for swap protocol.
package rpc

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/driftmesh/driftmesh/internal/node"
)

// =============================================================================
// Swap Coordination Messaging
// =============================================================================

// sendSwapMessage broadcasts a swap coordination message over PubSub. Every
// node that independently derives the same trade already holds its own
// ActiveSwap by the time these messages arrive; nodes not party to the
// trade simply find no matching swap and drop the message.
func (s *Server) sendSwapMessage(ctx context.Context, msg *node.SwapMessage) error {
	swapHandler := s.node.SwapHandler()
	if swapHandler == nil {
		return fmt.Errorf("no swap message handler available")
	}
	return swapHandler.SendMessage(ctx, msg)
}

// ========================================
// P2P Message Handlers for Swap Protocol
// ========================================

// handlePubKeyExchange processes incoming pubkey exchange messages.
func (s *Server) handlePubKeyExchange(ctx context.Context, msg *node.SwapMessage) error {
	if msg.FromPeer == s.node.ID().String() {
		return nil
	}
	if msg.TradeID == "" {
		s.log.Warn("PubKey exchange missing trade_id")
		return nil
	}

	var payload node.PubKeyExchangePayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.log.Warn("Failed to parse pubkey exchange payload", "error", err)
		return nil
	}

	if _, err := s.coordinator.GetSwap(msg.TradeID); err != nil {
		s.log.Debug("PubKey exchange for unknown swap, ignoring", "trade_id", msg.TradeID)
		return nil
	}

	if payload.PubKey != "" {
		pubKeyBytes, err := hex.DecodeString(payload.PubKey)
		if err != nil {
			s.log.Warn("Invalid pubkey hex", "error", err)
		} else if err := s.coordinator.SetRemotePubKey(msg.TradeID, pubKeyBytes); err != nil {
			s.log.Warn("Failed to set remote pubkey", "error", err)
		}
	}

	if payload.OfferWalletAddr != "" || payload.RequestWalletAddr != "" {
		if err := s.coordinator.SetRemoteWalletAddresses(msg.TradeID, payload.OfferWalletAddr, payload.RequestWalletAddr); err != nil {
			s.log.Warn("Failed to set remote wallet addresses", "error", err)
		}
	}

	s.log.Info("Received counterparty pubkey", "trade_id", msg.TradeID[:8], "from", msg.FromPeer[:12])

	if s.wsHub != nil {
		s.wsHub.Broadcast("pubkey_received", map[string]string{
			"trade_id":  msg.TradeID,
			"from_peer": msg.FromPeer,
		})
	}

	return nil
}

// handleFundingInfo processes incoming funding transaction info.
func (s *Server) handleFundingInfo(ctx context.Context, msg *node.SwapMessage) error {
	if msg.FromPeer == s.node.ID().String() {
		return nil
	}
	if msg.TradeID == "" {
		s.log.Warn("Funding info missing trade_id")
		return nil
	}

	var payload node.FundingInfoPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.log.Warn("Failed to parse funding info payload", "error", err)
		return nil
	}

	if err := s.coordinator.SetFundingTx(msg.TradeID, payload.TxID, payload.Vout, false); err != nil {
		s.log.Debug("Failed to set remote funding tx", "trade_id", msg.TradeID, "error", err)
		return nil
	}

	s.log.Info("Received counterparty funding info",
		"trade_id", msg.TradeID[:8],
		"txid", payload.TxID[:16],
		"vout", payload.Vout,
	)

	if s.wsHub != nil {
		s.wsHub.Broadcast("funding_received", map[string]interface{}{
			"trade_id":  msg.TradeID,
			"txid":      payload.TxID,
			"vout":      payload.Vout,
			"from_peer": msg.FromPeer,
		})
	}

	return nil
}

// ========================================
// HTLC P2P Message Handlers
// ========================================

// handleHTLCSecretHash processes incoming secret hash messages (from the seller).
func (s *Server) handleHTLCSecretHash(ctx context.Context, msg *node.SwapMessage) error {
	if msg.FromPeer == s.node.ID().String() {
		return nil
	}
	if msg.TradeID == "" {
		s.log.Warn("HTLC secret hash missing trade_id")
		return nil
	}

	var payload node.HTLCSecretHashPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.log.Warn("Failed to parse HTLC secret hash payload", "error", err)
		return nil
	}

	secretHash, err := hex.DecodeString(payload.SecretHash)
	if err != nil || len(secretHash) != 32 {
		s.log.Warn("Invalid secret hash", "error", err, "len", len(secretHash))
		return nil
	}

	if err := s.coordinator.SetRemoteSecretHash(msg.TradeID, secretHash); err != nil {
		s.log.Debug("Failed to set remote secret hash", "trade_id", msg.TradeID, "error", err)
		return nil
	}

	if payload.PubKey != "" {
		if pubKeyBytes, err := hex.DecodeString(payload.PubKey); err == nil {
			if err := s.coordinator.SetRemotePubKey(msg.TradeID, pubKeyBytes); err != nil {
				s.log.Debug("Failed to set remote pubkey from secret hash message", "error", err)
			}
		}
	}

	if payload.OfferWalletAddr != "" || payload.RequestWalletAddr != "" {
		if err := s.coordinator.SetRemoteWalletAddresses(msg.TradeID, payload.OfferWalletAddr, payload.RequestWalletAddr); err != nil {
			s.log.Debug("Failed to set remote wallet addresses", "error", err)
		}
	}

	s.log.Info("Received HTLC secret hash from seller", "trade_id", msg.TradeID[:8], "from", msg.FromPeer[:12])

	if s.wsHub != nil {
		s.wsHub.Broadcast("htlc_secret_hash_received", map[string]string{
			"trade_id":    msg.TradeID,
			"from_peer":   msg.FromPeer,
			"secret_hash": payload.SecretHash,
		})
	}

	return nil
}

// handleHTLCSecretReveal processes incoming secret reveal messages (from the seller).
func (s *Server) handleHTLCSecretReveal(ctx context.Context, msg *node.SwapMessage) error {
	if msg.FromPeer == s.node.ID().String() {
		return nil
	}
	if msg.TradeID == "" {
		s.log.Warn("HTLC secret reveal missing trade_id")
		return nil
	}

	var payload node.HTLCSecretRevealPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.log.Warn("Failed to parse HTLC secret reveal payload", "error", err)
		return nil
	}

	secret, err := hex.DecodeString(payload.Secret)
	if err != nil || len(secret) != 32 {
		s.log.Warn("Invalid secret", "error", err, "len", len(secret))
		return nil
	}

	if err := s.coordinator.SetRevealedSecret(msg.TradeID, secret); err != nil {
		s.log.Warn("Failed to set revealed secret", "error", err)
		return nil
	}

	s.log.Info("Received HTLC secret from seller", "trade_id", msg.TradeID[:8], "from", msg.FromPeer[:12])

	if s.wsHub != nil {
		s.wsHub.Broadcast("htlc_secret_revealed", map[string]string{
			"trade_id":  msg.TradeID,
			"from_peer": msg.FromPeer,
			"secret":    payload.Secret,
		})
	}

	return nil
}

// handleHTLCClaim processes incoming claim notification messages.
func (s *Server) handleHTLCClaim(ctx context.Context, msg *node.SwapMessage) error {
	if msg.FromPeer == s.node.ID().String() {
		return nil
	}
	if msg.TradeID == "" {
		s.log.Warn("HTLC claim missing trade_id")
		return nil
	}

	var payload node.HTLCClaimPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.log.Warn("Failed to parse HTLC claim payload", "error", err)
		return nil
	}

	s.log.Info("Received HTLC claim notification",
		"trade_id", msg.TradeID[:8],
		"from", msg.FromPeer[:12],
		"chain", payload.Chain,
		"txid", payload.TxID,
	)

	if payload.Secret != "" {
		if secret, err := hex.DecodeString(payload.Secret); err == nil && len(secret) == 32 {
			if err := s.coordinator.SetRevealedSecret(msg.TradeID, secret); err != nil {
				s.log.Debug("Failed to set revealed secret from claim", "error", err)
			}
		}
	}

	if s.wsHub != nil {
		s.wsHub.Broadcast("htlc_claim_received", map[string]string{
			"trade_id":  msg.TradeID,
			"from_peer": msg.FromPeer,
			"chain":     payload.Chain,
			"txid":      payload.TxID,
		})
	}

	return nil
}
