// Package swap - Completion and refund operations for the Coordinator.
package swap

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
)

// =============================================================================
// Completion
// =============================================================================

// CompleteSwap records an out-of-band observation that a redeem transaction
// landed on-chain (e.g. surfaced by the secret monitor rather than our own
// ClaimHTLC call) and advances the FSM one redemption checkpoint: seller
// redeems first, then buyer.
func (c *Coordinator) CompleteSwap(tradeID string, redeemTxID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	active, ok := c.swaps[tradeID]
	if !ok {
		return ErrSwapNotFound
	}

	next := StateSellerRedeemed
	if active.Swap.State == StateSellerRedeemed {
		next = StateBuyerRedeemed
	}
	if err := active.Swap.TransitionTo(next); err != nil {
		return err
	}

	if err := c.saveSwapState(tradeID); err != nil {
		c.log.Warn("CompleteSwap: failed to save swap state", "trade_id", tradeID, "error", err)
	}

	c.emitEvent(tradeID, "swap_completed", map[string]interface{}{
		"redeem_txid": redeemTxID,
	})

	return nil
}

// RefundSwap initiates a refund of our own leg once its timeout has passed.
func (c *Coordinator) RefundSwap(ctx context.Context, tradeID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	active, ok := c.swaps[tradeID]
	if !ok {
		return ErrSwapNotFound
	}

	sellerHeight, _ := c.getBlockHeight(ctx, active.Swap.SellerLeg.Chain)
	buyerHeight, _ := c.getBlockHeight(ctx, active.Swap.BuyerLeg.Chain)

	if !active.Swap.CanRefundByBlock(sellerHeight, buyerHeight) {
		ownHeight := buyerHeight
		if active.Swap.Side == SideSeller {
			ownHeight = sellerHeight
		}
		blocksLeft := active.Swap.BlocksUntilRefund(ownHeight)
		return fmt.Errorf("cannot refund yet - %d blocks remaining", blocksLeft)
	}

	if err := active.Swap.TransitionTo(StateCancelled); err != nil {
		return err
	}

	if err := c.saveSwapState(tradeID); err != nil {
		c.log.Warn("RefundSwap: failed to save swap state", "trade_id", tradeID, "error", err)
	}

	c.emitEvent(tradeID, "swap_refunded", nil)
	return nil
}

// =============================================================================
// Secret/Hash Getters (for HTLC swaps)
// =============================================================================

// GetSecretHash returns the secret hash for a swap (for HTLC or verification).
func (c *Coordinator) GetSecretHash(tradeID string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	active, ok := c.swaps[tradeID]
	if !ok {
		return nil, ErrSwapNotFound
	}

	return active.Swap.SecretHash, nil
}

// RevealSecret returns the secret for a swap we are the seller of (only the
// seller generates and holds it before redemption).
func (c *Coordinator) RevealSecret(tradeID string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	active, ok := c.swaps[tradeID]
	if !ok {
		return nil, ErrSwapNotFound
	}

	if active.Swap.Side != SideSeller {
		return nil, errors.New("only the seller has the secret")
	}

	return active.Swap.Secret, nil
}

// SetRemoteSecretHash records the secret hash received from the seller over
// the P2P swap channel (called by the buyer side).
func (c *Coordinator) SetRemoteSecretHash(tradeID string, secretHash []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	active, ok := c.swaps[tradeID]
	if !ok {
		return ErrSwapNotFound
	}

	if len(secretHash) != 32 {
		return fmt.Errorf("invalid secret hash length: expected 32, got %d", len(secretHash))
	}

	active.Swap.SecretHash = secretHash

	if active.HTLC != nil {
		if active.HTLC.SellerChain != nil && active.HTLC.SellerChain.Session != nil {
			if err := active.HTLC.SellerChain.Session.SetSecretHash(secretHash); err != nil {
				return fmt.Errorf("failed to set secret hash for seller chain: %w", err)
			}
		}
		if active.HTLC.BuyerChain != nil && active.HTLC.BuyerChain.Session != nil {
			if err := active.HTLC.BuyerChain.Session.SetSecretHash(secretHash); err != nil {
				return fmt.Errorf("failed to set secret hash for buyer chain: %w", err)
			}
		}
	}

	c.emitEvent(tradeID, "secret_hash_received", nil)
	return nil
}

// SetRevealedSecret records the secret once the seller's on-chain claim
// reveals it, letting the buyer's own claim reuse it.
func (c *Coordinator) SetRevealedSecret(tradeID string, secret []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	active, ok := c.swaps[tradeID]
	if !ok {
		return ErrSwapNotFound
	}

	if len(secret) != 32 {
		return fmt.Errorf("invalid secret length: expected 32, got %d", len(secret))
	}

	if len(active.Swap.SecretHash) > 0 {
		hash := sha256.Sum256(secret)
		if !bytes.Equal(hash[:], active.Swap.SecretHash) {
			return errors.New("secret does not match hash")
		}
	}

	active.Swap.Secret = secret

	if active.HTLC != nil {
		if active.HTLC.SellerChain != nil && active.HTLC.SellerChain.Session != nil {
			if err := active.HTLC.SellerChain.Session.SetSecret(secret); err != nil {
				c.log.Warn("Failed to set secret for seller chain session", "error", err)
			}
		}
		if active.HTLC.BuyerChain != nil && active.HTLC.BuyerChain.Session != nil {
			if err := active.HTLC.BuyerChain.Session.SetSecret(secret); err != nil {
				c.log.Warn("Failed to set secret for buyer chain session", "error", err)
			}
		}
	}

	c.emitEvent(tradeID, "secret_revealed", nil)
	return nil
}
