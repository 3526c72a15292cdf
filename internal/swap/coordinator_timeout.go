// Package swap - Timeout monitoring for the Coordinator.
package swap

import (
	"context"
	"fmt"
	"time"
)

// =========================================================================
// Timeout Monitoring
// =========================================================================

// CheckTimeouts checks all pending swaps for timeout conditions on the leg
// this node itself funded. If a swap has timed out, it attempts to
// broadcast a refund transaction for that leg.
func (c *Coordinator) CheckTimeouts(ctx context.Context) ([]TimeoutCheckResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var results []TimeoutCheckResult

	for tradeID, active := range c.swaps {
		// Only check swaps where our own leg is funded and redemption
		// hasn't already started.
		switch active.Swap.State {
		case StateSellerFunded, StateBuyerFunded:
		default:
			continue
		}

		ownChain, _, _ := localFundingLeg(active)
		timeoutHeight := active.Swap.BuyerChainTimeoutHeight
		if active.Swap.Side == SideSeller {
			timeoutHeight = active.Swap.SellerChainTimeoutHeight
		}
		if timeoutHeight == 0 {
			continue
		}

		result := c.checkTimeoutForChainUnlocked(ctx, tradeID, active, ownChain, timeoutHeight)
		results = append(results, result)
	}

	return results, nil
}

// checkTimeoutForChainUnlocked checks timeout for a specific chain (caller must hold lock).
func (c *Coordinator) checkTimeoutForChainUnlocked(ctx context.Context, tradeID string, active *ActiveSwap, chainSymbol string, timeoutHeight uint32) TimeoutCheckResult {
	result := TimeoutCheckResult{
		TradeID:       tradeID,
		Chain:         chainSymbol,
		TimeoutHeight: timeoutHeight,
	}

	b, ok := c.backends[chainSymbol]
	if !ok {
		result.Error = fmt.Errorf("no backend for chain %s", chainSymbol)
		return result
	}

	heightInt64, err := b.GetBlockHeight(ctx)
	if err != nil {
		result.Error = fmt.Errorf("failed to get block height: %w", err)
		return result
	}
	height := uint32(heightInt64)
	result.CurrentHeight = height
	result.BlocksRemaining = int32(timeoutHeight) - int32(height)

	if height >= timeoutHeight {
		result.CanRefund = true

		refundTxID, err := c.refundHTLCUnlocked(ctx, tradeID, active, chainSymbol)
		if err != nil {
			result.Error = fmt.Errorf("failed to refund: %w", err)
		} else {
			result.RefundBroadcast = true
			result.RefundTxID = refundTxID
		}
	}

	return result
}

// StartTimeoutMonitor starts a background goroutine that periodically checks for timed-out swaps.
// The check interval should be appropriate for the blockchain block time (e.g., 5-10 minutes for BTC).
func (c *Coordinator) StartTimeoutMonitor(checkInterval time.Duration) {
	go func() {
		ticker := time.NewTicker(checkInterval)
		defer ticker.Stop()

		for {
			select {
			case <-c.ctx.Done():
				return
			case <-ticker.C:
				results, err := c.CheckTimeouts(c.ctx)
				if err != nil {
					continue
				}

				for _, result := range results {
					if result.RefundBroadcast {
						c.mu.Lock()
						c.emitEvent(result.TradeID, "timeout_refund", result)
						c.mu.Unlock()
					}
				}
			}
		}
	}()
}

// Stop stops the coordinator and any background processes.
func (c *Coordinator) Stop() {
	c.cancel()
}

// GetSwapTimeoutInfo returns timeout information for both legs of a swap.
func (c *Coordinator) GetSwapTimeoutInfo(ctx context.Context, tradeID string) (map[string]interface{}, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	active, ok := c.swaps[tradeID]
	if !ok {
		return nil, ErrSwapNotFound
	}

	info := map[string]interface{}{
		"trade_id": tradeID,
		"state":    string(active.Swap.State),
		"side":     string(active.Swap.Side),
	}

	if active.Swap.SellerChainTimeoutHeight > 0 {
		sellerInfo := map[string]interface{}{
			"chain":          active.Swap.SellerLeg.Chain,
			"timeout_height": active.Swap.SellerChainTimeoutHeight,
		}
		if b, ok := c.backends[active.Swap.SellerLeg.Chain]; ok {
			if heightInt64, err := b.GetBlockHeight(ctx); err == nil {
				height := uint32(heightInt64)
				sellerInfo["current_height"] = height
				sellerInfo["blocks_remaining"] = int32(active.Swap.SellerChainTimeoutHeight) - int32(height)
				sellerInfo["can_refund"] = height >= active.Swap.SellerChainTimeoutHeight
			}
		}
		info["seller_chain_timeout"] = sellerInfo
	}

	if active.Swap.BuyerChainTimeoutHeight > 0 {
		buyerInfo := map[string]interface{}{
			"chain":          active.Swap.BuyerLeg.Chain,
			"timeout_height": active.Swap.BuyerChainTimeoutHeight,
		}
		if b, ok := c.backends[active.Swap.BuyerLeg.Chain]; ok {
			if heightInt64, err := b.GetBlockHeight(ctx); err == nil {
				height := uint32(heightInt64)
				buyerInfo["current_height"] = height
				buyerInfo["blocks_remaining"] = int32(active.Swap.BuyerChainTimeoutHeight) - int32(height)
				buyerInfo["can_refund"] = height >= active.Swap.BuyerChainTimeoutHeight
			}
		}
		info["buyer_chain_timeout"] = buyerInfo
	}

	return info, nil
}

// ForceRefund attempts to refund our own leg even if timeout hasn't been
// reached. This fails on-chain if the CSV timelock hasn't passed; it exists
// for tests and manual operator intervention.
func (c *Coordinator) ForceRefund(ctx context.Context, tradeID string, chainSymbol string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	active, ok := c.swaps[tradeID]
	if !ok {
		return "", ErrSwapNotFound
	}

	return c.refundHTLCUnlocked(ctx, tradeID, active, chainSymbol)
}
