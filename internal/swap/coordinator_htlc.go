// Package swap - HTLC claim and refund operations for the Coordinator.
package swap

import (
	"context"
	"fmt"

	"github.com/driftmesh/driftmesh/internal/chain"
	"github.com/driftmesh/driftmesh/internal/config"
)

// =============================================================================
// HTLC Claim and Refund Methods
// =============================================================================

// ClaimHTLC implements seller_redeem()/buyer_redeem(): the seller claims the
// buyer's leg first, revealing the secret on-chain; the buyer then claims
// the seller's leg using that secret. Which leg is claimable is fixed by
// Side, not chosen by the caller — chainSymbol is validated against it.
func (c *Coordinator) ClaimHTLC(ctx context.Context, tradeID string, chainSymbol string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	active, ok := c.swaps[tradeID]
	if !ok {
		return "", ErrSwapNotFound
	}
	if active.HTLC == nil {
		return "", fmt.Errorf("no HTLC data for swap")
	}

	var htlcSession *HTLCSession
	var claimedLeg Leg
	if active.Swap.Side == SideSeller {
		htlcSession = active.HTLC.BuyerChain.Session
		claimedLeg = active.Swap.BuyerLeg
	} else {
		htlcSession = active.HTLC.SellerChain.Session
		claimedLeg = active.Swap.SellerLeg
	}
	if chainSymbol != claimedLeg.Chain {
		return "", fmt.Errorf("cannot claim %s: this swap's claimable leg is %s", chainSymbol, claimedLeg.Chain)
	}
	if htlcSession == nil {
		return "", fmt.Errorf("no HTLC session for chain %s", chainSymbol)
	}

	fundingTxID := active.Swap.RemoteFundingTxID
	fundingVout := active.Swap.RemoteFundingVout
	if fundingTxID == "" {
		return "", fmt.Errorf("no funding transaction recorded for claim")
	}

	// The seller already holds the secret it generated; the buyer only
	// gets one after extracting it from the seller's claim (ExtractSecretFromTx).
	secret := htlcSession.GetSecret()
	if len(secret) != 32 {
		secret = active.Swap.Secret
	}
	if len(secret) != 32 {
		return "", fmt.Errorf("secret not available for claim")
	}

	htlcScript := htlcSession.GetHTLCScript()
	if len(htlcScript) == 0 {
		return "", fmt.Errorf("HTLC script not available")
	}

	if c.wallet == nil {
		return "", fmt.Errorf("wallet not available for deriving claim address")
	}
	destAddress, err := c.wallet.DeriveAddress(chainSymbol, 0, 0)
	if err != nil {
		return "", fmt.Errorf("failed to derive claim address: %w", err)
	}

	b := c.backends[chainSymbol]
	feeEstimate, err := b.GetFeeEstimates(ctx)
	var feeRate uint64 = 20
	if err == nil && feeEstimate != nil {
		feeRate = feeEstimate.HalfHourFee
		if feeRate == 0 {
			feeRate = 20
		}
	}

	privKey := htlcSession.GetLocalPrivKey()
	if privKey == nil {
		return "", fmt.Errorf("private key not available for claim")
	}

	// The seller claiming the buyer's (quote) leg pays the maker-tier fee;
	// the buyer claiming the seller's (base) leg pays the taker-tier fee.
	isMaker := active.Swap.Side == SideSeller
	daoFee := CalculateDAOFee(claimedLeg.Amount, isMaker)

	exchangeCfg := config.NewExchangeConfig(config.NetworkType(c.network))
	daoAddress := exchangeCfg.GetDAOAddress(chainSymbol)

	claimTx, err := BuildHTLCClaimTx(&HTLCClaimTxParams{
		Symbol:        chainSymbol,
		Network:       c.network,
		FundingTxID:   fundingTxID,
		FundingVout:   fundingVout,
		FundingAmount: claimedLeg.Amount,
		HTLCScript:    htlcScript,
		Secret:        secret,
		DestAddress:   destAddress,
		DAOAddress:    daoAddress,
		DAOFee:        daoFee,
		FeeRate:       feeRate,
		PrivKey:       privKey,
	})
	if err != nil {
		return "", fmt.Errorf("failed to build claim transaction: %w", err)
	}

	txHex, err := SerializeTx(claimTx)
	if err != nil {
		return "", fmt.Errorf("failed to serialize claim transaction: %w", err)
	}

	txID, err := b.BroadcastTransaction(ctx, txHex)
	if err != nil {
		return "", fmt.Errorf("failed to broadcast claim transaction: %w", err)
	}

	// The seller's claim must land first: it's the only way the secret
	// reaches the chain for the buyer to extract.
	nextState := StateBuyerRedeemed
	if active.Swap.Side == SideSeller {
		nextState = StateSellerRedeemed
	}
	if err := active.Swap.TransitionTo(nextState); err != nil {
		c.log.Warn("ClaimHTLC: failed to transition state", "trade_id", tradeID, "error", err)
	}

	c.emitEvent(tradeID, "htlc_claimed", map[string]string{
		"chain":    chainSymbol,
		"claim_tx": txID,
	})

	if c.store != nil {
		_ = c.saveSwapState(tradeID)
	}

	return txID, nil
}

// RefundHTLC refunds our own funded leg after its CSV timeout has passed,
// implementing check_timeout()'s on-chain refund action. Only the party
// that funded a leg can refund it.
func (c *Coordinator) RefundHTLC(ctx context.Context, tradeID string, chainSymbol string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	active, ok := c.swaps[tradeID]
	if !ok {
		return "", ErrSwapNotFound
	}
	return c.refundHTLCUnlocked(ctx, tradeID, active, chainSymbol)
}

// refundHTLCUnlocked does the work of RefundHTLC; callers must already hold c.mu.
func (c *Coordinator) refundHTLCUnlocked(ctx context.Context, tradeID string, active *ActiveSwap, chainSymbol string) (string, error) {
	if active.HTLC == nil {
		return "", fmt.Errorf("no HTLC data for swap")
	}

	ownChain, fundingAmount, chainData := localFundingLeg(active)
	if chainSymbol != ownChain {
		return "", fmt.Errorf("cannot refund %s: you funded %s", chainSymbol, ownChain)
	}
	htlcSession := chainData.Session
	if htlcSession == nil {
		return "", fmt.Errorf("no HTLC session for chain %s", chainSymbol)
	}

	fundingTxID := active.Swap.LocalFundingTxID
	fundingVout := active.Swap.LocalFundingVout
	if fundingTxID == "" {
		return "", fmt.Errorf("no funding transaction recorded for refund")
	}

	isTestnet := active.Swap.Network == chain.Testnet
	timeout, ok := config.GetChainTimeout(ownChain, isTestnet)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedChain, ownChain)
	}
	timeoutBlocks := timeout.TakerBlocks
	if active.Swap.Side == SideSeller {
		timeoutBlocks = timeout.MakerBlocks
	}

	htlcScript := htlcSession.GetHTLCScript()
	if len(htlcScript) == 0 {
		return "", fmt.Errorf("HTLC script not available")
	}

	if c.wallet == nil {
		return "", fmt.Errorf("wallet not available for deriving refund address")
	}
	destAddress, err := c.wallet.DeriveAddress(chainSymbol, 0, 0)
	if err != nil {
		return "", fmt.Errorf("failed to derive refund address: %w", err)
	}

	b := c.backends[chainSymbol]
	feeEstimate, err := b.GetFeeEstimates(ctx)
	var feeRate uint64 = 20
	if err == nil && feeEstimate != nil {
		feeRate = feeEstimate.HourFee // Use slower fee for refunds
		if feeRate == 0 {
			feeRate = 20
		}
	}

	privKey := htlcSession.GetLocalPrivKey()
	if privKey == nil {
		return "", fmt.Errorf("private key not available for refund")
	}

	refundTx, err := BuildHTLCRefundTx(&HTLCRefundTxParams{
		Symbol:        chainSymbol,
		Network:       c.network,
		FundingTxID:   fundingTxID,
		FundingVout:   fundingVout,
		FundingAmount: fundingAmount,
		HTLCScript:    htlcScript,
		TimeoutBlocks: timeoutBlocks,
		DestAddress:   destAddress,
		FeeRate:       feeRate,
		PrivKey:       privKey,
	})
	if err != nil {
		return "", fmt.Errorf("failed to build refund transaction: %w", err)
	}

	txHex, err := SerializeTx(refundTx)
	if err != nil {
		return "", fmt.Errorf("failed to serialize refund transaction: %w", err)
	}

	txID, err := b.BroadcastTransaction(ctx, txHex)
	if err != nil {
		return "", fmt.Errorf("failed to broadcast refund transaction: %w", err)
	}

	if err := active.Swap.TransitionTo(StateCancelled); err != nil {
		c.log.Warn("RefundHTLC: failed to transition state", "trade_id", tradeID, "error", err)
	}

	c.emitEvent(tradeID, "htlc_refunded", map[string]string{
		"chain":     chainSymbol,
		"refund_tx": txID,
	})

	if c.store != nil {
		_ = c.saveSwapState(tradeID)
	}

	return txID, nil
}

// ExtractSecretFromTx reads the preimage out of a claim transaction's
// witness so the party who didn't generate it can redeem its own leg.
func (c *Coordinator) ExtractSecretFromTx(ctx context.Context, tradeID string, txID string, chainSymbol string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	active, ok := c.swaps[tradeID]
	if !ok {
		return nil, ErrSwapNotFound
	}
	if active.HTLC == nil {
		return nil, fmt.Errorf("no HTLC data for swap")
	}

	b, ok := c.backends[chainSymbol]
	if !ok {
		return nil, fmt.Errorf("no backend for chain %s", chainSymbol)
	}

	tx, err := b.GetTransaction(ctx, txID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	msgTx, err := DeserializeTx(tx.Hex)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize transaction: %w", err)
	}

	var htlcSession *HTLCSession
	switch chainSymbol {
	case active.Swap.SellerLeg.Chain:
		htlcSession = active.HTLC.SellerChain.Session
	case active.Swap.BuyerLeg.Chain:
		htlcSession = active.HTLC.BuyerChain.Session
	}
	if htlcSession == nil {
		return nil, fmt.Errorf("no HTLC session for chain %s", chainSymbol)
	}

	// Witness structure for a claim: [signature, secret, 0x01, script].
	for _, txIn := range msgTx.TxIn {
		if len(txIn.Witness) < 2 {
			continue
		}
		potentialSecret := txIn.Witness[1]
		if len(potentialSecret) != 32 || !VerifySecret(potentialSecret, htlcSession.GetSecretHash()) {
			continue
		}

		if err := htlcSession.SetSecret(potentialSecret); err != nil {
			continue
		}
		// Propagate to the other leg's session so our own claim can use it.
		switch chainSymbol {
		case active.Swap.SellerLeg.Chain:
			_ = active.HTLC.BuyerChain.Session.SetSecret(potentialSecret)
		case active.Swap.BuyerLeg.Chain:
			_ = active.HTLC.SellerChain.Session.SetSecret(potentialSecret)
		}
		active.Swap.Secret = potentialSecret

		if c.store != nil {
			_ = c.saveSwapState(tradeID)
		}
		return potentialSecret, nil
	}

	return nil, fmt.Errorf("secret not found in transaction witness")
}
