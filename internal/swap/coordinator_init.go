// Package swap - Swap initiation for the Coordinator.
package swap

import (
	"context"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
)

// InitiateSwap implements core.SwapInitiator: it turns a matched trade into
// a locally-tracked atomic swap. Every node whose matching engine replica
// independently produces the same trade calls this identically — there is
// no prior handshake assigning roles — so the Coordinator resolves its own
// Side by checking whether orderID (always the trade's sell order, per
// core's calling convention) was submitted through this node. A node that
// owns neither leg still proceeds as the buyer so redemption has a local
// actor; in a production deployment a node would only bind a SwapInitiator
// for trades it is actually a party to.
func (c *Coordinator) InitiateSwap(ctx context.Context, tradeID, orderID string, offerChain string, offerAmount uint64, requestChain string, requestAmount uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.swaps[tradeID]; exists {
		return nil
	}

	side := SideBuyer
	if c.ownsOrder != nil && c.ownsOrder(orderID) {
		side = SideSeller
	}

	sellerLeg := Leg{Chain: offerChain, Amount: offerAmount}
	buyerLeg := Leg{Chain: requestChain, Amount: requestAmount}

	swp, err := NewSwap(c.network, tradeID, side, sellerLeg, buyerLeg)
	if err != nil {
		return fmt.Errorf("failed to create swap: %w", err)
	}

	if side == SideSeller {
		if err := swp.GenerateSecret(); err != nil {
			return fmt.Errorf("failed to generate secret: %w", err)
		}
	}

	privKey, err := btcec.NewPrivateKey()
	if err != nil {
		return fmt.Errorf("failed to generate ephemeral key: %w", err)
	}
	swp.SetLocalPubKey(privKey.PubKey())

	sellerHeight, err := c.getBlockHeight(ctx, sellerLeg.Chain)
	if err != nil {
		return fmt.Errorf("failed to get seller chain height: %w", err)
	}
	buyerHeight, err := c.getBlockHeight(ctx, buyerLeg.Chain)
	if err != nil {
		return fmt.Errorf("failed to get buyer chain height: %w", err)
	}
	swp.SetBlockHeights(sellerHeight, buyerHeight)

	active, err := c.initiateHTLCSwap(swp, privKey)
	if err != nil {
		return err
	}
	active.Trade = &MatchedTrade{OrderID: orderID}

	c.swaps[tradeID] = active

	if err := c.saveSwapState(tradeID); err != nil {
		c.log.Warn("InitiateSwap: failed to save swap state", "trade_id", tradeID, "error", err)
	}

	c.emitEvent(tradeID, "swap_initiated", map[string]interface{}{
		"side":          string(side),
		"seller_chain":  sellerLeg.Chain,
		"seller_amount": sellerLeg.Amount,
		"buyer_chain":   buyerLeg.Chain,
		"buyer_amount":  buyerLeg.Amount,
	})

	return nil
}

// initiateHTLCSwap builds the per-leg HTLC sessions for swp, both keyed to
// the same ephemeral key. If we're the seller, we generate the secret here
// and propagate its hash to both sessions; otherwise the hash arrives later
// from the seller via SetRemoteSecretHash.
func (c *Coordinator) initiateHTLCSwap(swp *Swap, privKey *btcec.PrivateKey) (*ActiveSwap, error) {
	sellerSession, err := NewHTLCSessionWithKey(swp.SellerLeg.Chain, c.network, privKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create seller leg HTLC session: %w", err)
	}
	buyerSession, err := NewHTLCSessionWithKey(swp.BuyerLeg.Chain, c.network, privKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create buyer leg HTLC session: %w", err)
	}

	if swp.Side == SideSeller {
		_, secretHash, err := sellerSession.GenerateSecret()
		if err != nil {
			return nil, fmt.Errorf("failed to generate HTLC secret: %w", err)
		}
		if err := buyerSession.SetSecretHash(secretHash); err != nil {
			return nil, fmt.Errorf("failed to set secret hash in buyer leg session: %w", err)
		}
		swp.Secret = sellerSession.GetSecret()
		swp.SecretHash = secretHash
	}

	return &ActiveSwap{
		Swap: swp,
		HTLC: &HTLCSwapData{
			LocalPrivKey: privKey,
			SellerChain:  &ChainHTLCData{Session: sellerSession},
			BuyerChain:   &ChainHTLCData{Session: buyerSession},
		},
	}, nil
}
