// Package rpc - Swap status and list handlers.
package rpc

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/driftmesh/driftmesh/internal/swap"
)

// parseRecordAmount recovers the integer amount from a SwapRecord's decimal
// amount string, defaulting to zero for malformed data.
func parseRecordAmount(s string) uint64 {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// swapStatus returns detailed status of a swap.
func (s *Server) swapStatus(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p SwapStatusParams
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

	side := "buyer"
	if activeSwap.Swap.Side == swap.SideSeller {
		side = "seller"
	}

	result := &SwapStatusResult{
		TradeID:        p.TradeID,
		State:          string(activeSwap.Swap.State),
		Side:           side,
		SellerChain:    activeSwap.Swap.SellerLeg.Chain,
		SellerAmount:   activeSwap.Swap.SellerLeg.Amount,
		BuyerChain:     activeSwap.Swap.BuyerLeg.Chain,
		BuyerAmount:    activeSwap.Swap.BuyerLeg.Amount,
		LocalPubKey:    hex.EncodeToString(activeSwap.Swap.LocalPubKey),
		SecretRevealed: len(activeSwap.Swap.Secret) > 0,
	}

	if activeSwap.HTLC != nil {
		if activeSwap.HTLC.SellerChain != nil {
			result.SellerHTLCAddress = activeSwap.HTLC.SellerChain.HTLCAddress
		}
		if activeSwap.HTLC.BuyerChain != nil {
			result.BuyerHTLCAddress = activeSwap.HTLC.BuyerChain.HTLCAddress
		}
	}

	if len(activeSwap.Swap.RemotePubKey) > 0 {
		result.RemotePubKey = hex.EncodeToString(activeSwap.Swap.RemotePubKey)
	}
	if len(activeSwap.Swap.SecretHash) > 0 {
		result.SecretHash = hex.EncodeToString(activeSwap.Swap.SecretHash)
	}

	if activeSwap.Swap.LocalFundingTxID != "" {
		amount := activeSwap.Swap.BuyerLeg.Amount
		if activeSwap.Swap.Side == swap.SideSeller {
			amount = activeSwap.Swap.SellerLeg.Amount
		}
		result.LocalFunding = &FundingStatus{
			TxID:          activeSwap.Swap.LocalFundingTxID,
			Vout:          activeSwap.Swap.LocalFundingVout,
			Amount:        amount,
			Confirmations: activeSwap.Swap.LocalFundingConfirms,
			Confirmed:     activeSwap.Swap.LocalFundingConfirms >= 1,
		}
	}

	if activeSwap.Swap.RemoteFundingTxID != "" {
		amount := activeSwap.Swap.SellerLeg.Amount
		if activeSwap.Swap.Side == swap.SideSeller {
			amount = activeSwap.Swap.BuyerLeg.Amount
		}
		result.RemoteFunding = &FundingStatus{
			TxID:          activeSwap.Swap.RemoteFundingTxID,
			Vout:          activeSwap.Swap.RemoteFundingVout,
			Amount:        amount,
			Confirmations: activeSwap.Swap.RemoteFundingConfirms,
			Confirmed:     activeSwap.Swap.RemoteFundingConfirms >= 1,
		}
	}

	return result, nil
}

// swapList returns all active and historical swaps.
func (s *Server) swapList(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p SwapListParams
	if len(params) > 0 {
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, fmt.Errorf("invalid params: %w", err)
		}
	}

	records, err := s.coordinator.ListSwaps(p.IncludeCompleted)
	if err != nil {
		return nil, fmt.Errorf("failed to list swaps: %w", err)
	}

	items := make([]SwapListItem, 0, len(records))
	for _, rec := range records {
		item := SwapListItem{
			TradeID:      rec.SwapID,
			State:        string(rec.Phase),
			Side:         rec.OurRole,
			SellerChain:  rec.SellerAsset,
			SellerAmount: parseRecordAmount(rec.SellerAmount),
			BuyerChain:   rec.BuyerAsset,
			BuyerAmount:  parseRecordAmount(rec.BuyerAmount),
			CreatedAt:    rec.CreatedAt.Unix(),
		}
		if !rec.UpdatedAt.IsZero() {
			item.UpdatedAt = rec.UpdatedAt.Unix()
		}
		items = append(items, item)
	}

	return &SwapListResult{
		Swaps: items,
		Count: len(items),
	}, nil
}
