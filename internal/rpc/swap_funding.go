// Package rpc - Swap funding handlers.
package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/driftmesh/driftmesh/internal/node"
)

// swapGetAddress returns the funding address for our own leg of the swap:
// the seller funds the seller leg's HTLC address, the buyer funds the
// buyer leg's.
func (s *Server) swapGetAddress(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p SwapGetAddressParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}
	if p.TradeID == "" {
		return nil, fmt.Errorf("trade_id is required")
	}

	addr, chainSymbol, amount, err := s.coordinator.GetFundingAddress(p.TradeID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve funding address: %w", err)
	}

	return &SwapGetAddressResult{
		TradeID:     p.TradeID,
		HTLCAddress: addr,
		Chain:       chainSymbol,
		Amount:      amount,
	}, nil
}

// swapSetFunding sets the funding transaction info for our own leg of a swap.
func (s *Server) swapSetFunding(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p SwapSetFundingParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}
	if p.TradeID == "" {
		return nil, fmt.Errorf("trade_id is required")
	}
	if p.TxID == "" {
		return nil, fmt.Errorf("txid is required")
	}

	if err := s.coordinator.SetFundingTx(p.TradeID, p.TxID, p.Vout, true); err != nil {
		return nil, fmt.Errorf("failed to set funding tx: %w", err)
	}

	payload := &node.FundingInfoPayload{TxID: p.TxID, Vout: p.Vout}
	msg, err := node.NewSwapMessage(node.SwapMsgFundingInfo, p.TradeID, payload)
	if err == nil {
		if err := s.sendSwapMessage(ctx, msg); err != nil {
			s.log.Warn("Failed to send funding info", "trade_id", p.TradeID, "error", err)
		} else {
			s.log.Info("Sent funding info to counterparty", "trade_id", p.TradeID[:8], "txid", p.TxID[:16])
		}
	}

	activeSwap, _ := s.coordinator.GetSwap(p.TradeID)
	state := "funding"
	if activeSwap != nil {
		state = string(activeSwap.Swap.State)
	}

	if s.wsHub != nil {
		s.wsHub.Broadcast("funding_set", map[string]interface{}{
			"trade_id": p.TradeID,
			"txid":     p.TxID,
			"vout":     p.Vout,
		})
	}

	return &SwapSetFundingResult{
		TradeID: p.TradeID,
		State:   state,
		Message: "Funding set successfully",
	}, nil
}

// swapCheckFunding checks the funding status for a swap.
func (s *Server) swapCheckFunding(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p SwapCheckFundingParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}
	if p.TradeID == "" {
		return nil, fmt.Errorf("trade_id is required")
	}

	activeSwap, err := s.coordinator.GetSwap(p.TradeID)
	if err != nil {
		return nil, fmt.Errorf("swap not found: %w", err)
	}

	_ = s.coordinator.UpdateConfirmations(ctx, p.TradeID)

	return &SwapCheckFundingResult{
		TradeID:             p.TradeID,
		LocalFunded:         activeSwap.Swap.LocalFundingTxID != "",
		LocalConfirmations:  activeSwap.Swap.LocalFundingConfirms,
		RemoteFunded:        activeSwap.Swap.RemoteFundingTxID != "",
		RemoteConfirmations: activeSwap.Swap.RemoteFundingConfirms,
		BothFunded:          activeSwap.Swap.LocalFundingTxID != "" && activeSwap.Swap.RemoteFundingTxID != "",
		State:               string(activeSwap.Swap.State),
	}, nil
}

// swapFund automatically funds the swap escrow address: builds, signs, and
// broadcasts the funding transaction, then records it.
func (s *Server) swapFund(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p SwapFundParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}
	if p.TradeID == "" {
		return nil, fmt.Errorf("trade_id is required")
	}

	fundResult, err := s.coordinator.FundSwap(ctx, p.TradeID)
	if err != nil {
		return nil, fmt.Errorf("failed to fund swap: %w", err)
	}

	fundPayload := &node.FundingInfoPayload{TxID: fundResult.TxID, Vout: fundResult.EscrowVout}
	fundMsg, err := node.NewSwapMessage(node.SwapMsgFundingInfo, p.TradeID, fundPayload)
	if err == nil {
		if err := s.sendSwapMessage(ctx, fundMsg); err != nil {
			s.log.Warn("Failed to send funding info", "trade_id", p.TradeID, "error", err)
		} else {
			s.log.Info("Sent funding info to counterparty", "trade_id", p.TradeID[:8], "txid", fundResult.TxID[:16])
		}
	}

	activeSwap, _ := s.coordinator.GetSwap(p.TradeID)
	state := "funding"
	if activeSwap != nil {
		state = string(activeSwap.Swap.State)
	}

	if s.wsHub != nil {
		s.wsHub.Broadcast("funding_broadcast", map[string]interface{}{
			"trade_id":    p.TradeID,
			"txid":        fundResult.TxID,
			"chain":       fundResult.Chain,
			"amount":      fundResult.Amount,
			"escrow_vout": fundResult.EscrowVout,
		})
	}

	return &SwapFundResult{
		TradeID:    p.TradeID,
		TxID:       fundResult.TxID,
		Chain:      fundResult.Chain,
		Amount:     fundResult.Amount,
		Fee:        fundResult.Fee,
		EscrowVout: fundResult.EscrowVout,
		EscrowAddr: fundResult.EscrowAddr,
		InputCount: fundResult.InputCount,
		TotalInput: fundResult.TotalInput,
		Change:     fundResult.Change,
		State:      state,
	}, nil
}
