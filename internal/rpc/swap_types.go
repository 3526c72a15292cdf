// Package rpc - Type definitions for swap RPC handlers.
package rpc

// =============================================================================
// Swap Init Types
// =============================================================================

// SwapInitParams is the parameters for swap_init.
type SwapInitParams struct {
	TradeID string `json:"trade_id"`
}

// SwapInitResult is the response for swap_init.
type SwapInitResult struct {
	TradeID     string `json:"trade_id"`
	Side        string `json:"side"`
	LocalPubKey string `json:"local_pubkey"` // Hex-encoded
	State       string `json:"state"`
}

// =============================================================================
// Address Types
// =============================================================================

// SwapGetAddressParams is the parameters for swap_getAddress.
type SwapGetAddressParams struct {
	TradeID string `json:"trade_id"`
}

// SwapGetAddressResult is the response for swap_getAddress.
type SwapGetAddressResult struct {
	TradeID     string `json:"trade_id"`
	HTLCAddress string `json:"htlc_address"` // P2WSH funding address for our own leg
	Chain       string `json:"chain"`
	Amount      uint64 `json:"amount"`
}

// =============================================================================
// Funding Types
// =============================================================================

// SwapSetFundingParams is the parameters for swap_setFunding.
type SwapSetFundingParams struct {
	TradeID string `json:"trade_id"`
	TxID    string `json:"txid"`
	Vout    uint32 `json:"vout"`
}

// SwapSetFundingResult is the response for swap_setFunding.
type SwapSetFundingResult struct {
	TradeID string `json:"trade_id"`
	State   string `json:"state"`
	Message string `json:"message"`
}

// SwapCheckFundingParams is the parameters for swap_checkFunding.
type SwapCheckFundingParams struct {
	TradeID string `json:"trade_id"`
}

// SwapCheckFundingResult is the response for swap_checkFunding.
type SwapCheckFundingResult struct {
	TradeID             string `json:"trade_id"`
	LocalFunded         bool   `json:"local_funded"`
	LocalConfirmations  uint32 `json:"local_confirmations"`
	RemoteFunded        bool   `json:"remote_funded"`
	RemoteConfirmations uint32 `json:"remote_confirmations"`
	BothFunded          bool   `json:"both_funded"`
	State               string `json:"state"`
}

// SwapFundParams is the parameters for swap_fund (auto-fund).
type SwapFundParams struct {
	TradeID string `json:"trade_id"`
}

// SwapFundResult is the response for swap_fund.
type SwapFundResult struct {
	TradeID    string `json:"trade_id"`
	TxID       string `json:"txid"`
	Chain      string `json:"chain"`
	Amount     uint64 `json:"amount"`
	Fee        uint64 `json:"fee"`
	EscrowVout uint32 `json:"escrow_vout"`
	EscrowAddr string `json:"escrow_address"`
	InputCount int    `json:"input_count"`
	TotalInput uint64 `json:"total_input"`
	Change     uint64 `json:"change"`
	State      string `json:"state"`
}

// =============================================================================
// Status Types
// =============================================================================

// SwapStatusParams is the parameters for swap_status.
type SwapStatusParams struct {
	TradeID string `json:"trade_id"`
}

// SwapStatusResult is the detailed status of a swap.
type SwapStatusResult struct {
	TradeID       string         `json:"trade_id"`
	State         string         `json:"state"`
	Side          string         `json:"side"`
	SellerChain   string         `json:"seller_chain"`
	SellerAmount  uint64         `json:"seller_amount"`
	BuyerChain    string         `json:"buyer_chain"`
	BuyerAmount   uint64         `json:"buyer_amount"`
	SellerHTLCAddress string     `json:"seller_htlc_address,omitempty"`
	BuyerHTLCAddress  string     `json:"buyer_htlc_address,omitempty"`
	LocalPubKey   string         `json:"local_pubkey,omitempty"`
	RemotePubKey  string         `json:"remote_pubkey,omitempty"`
	LocalFunding  *FundingStatus `json:"local_funding,omitempty"`
	RemoteFunding *FundingStatus `json:"remote_funding,omitempty"`
	SecretHash    string         `json:"secret_hash,omitempty"`
	SecretRevealed bool          `json:"secret_revealed"`
}

// FundingStatus represents the status of a funding transaction.
type FundingStatus struct {
	TxID          string `json:"txid"`
	Vout          uint32 `json:"vout"`
	Amount        uint64 `json:"amount"`
	Confirmations uint32 `json:"confirmations"`
	Confirmed     bool   `json:"confirmed"`
}

// =============================================================================
// List Types
// =============================================================================

// SwapListParams is the parameters for swap_list.
type SwapListParams struct {
	IncludeCompleted bool `json:"include_completed"`
}

// SwapListItem represents a swap in the list.
type SwapListItem struct {
	TradeID      string `json:"trade_id"`
	State        string `json:"state"`
	Side         string `json:"side"`
	SellerChain  string `json:"seller_chain"`
	SellerAmount uint64 `json:"seller_amount"`
	BuyerChain   string `json:"buyer_chain"`
	BuyerAmount  uint64 `json:"buyer_amount"`
	CreatedAt    int64  `json:"created_at"`
	UpdatedAt    int64  `json:"updated_at,omitempty"`
}

// SwapListResult is the response for swap_list.
type SwapListResult struct {
	Swaps []SwapListItem `json:"swaps"`
	Count int            `json:"count"`
}

// =============================================================================
// Recovery Types
// =============================================================================

// SwapRecoverParams is the parameters for swap_recover.
type SwapRecoverParams struct {
	TradeID string `json:"trade_id"`
}

// SwapRecoverResult is the response for swap_recover.
type SwapRecoverResult struct {
	TradeID string `json:"trade_id"`
	State   string `json:"state"`
	Message string `json:"message"`
}

// =============================================================================
// Timeout and Refund Types
// =============================================================================

// SwapTimeoutParams is the parameters for swap_timeout.
type SwapTimeoutParams struct {
	TradeID string `json:"trade_id"`
}

// SwapRefundParams is the parameters for swap_refund.
type SwapRefundParams struct {
	TradeID string `json:"trade_id"`
	Chain   string `json:"chain"`
}

// SwapRefundResult is the response for swap_refund.
type SwapRefundResult struct {
	TradeID    string `json:"trade_id"`
	RefundTxID string `json:"refund_txid"`
	Chain      string `json:"chain"`
	State      string `json:"state"`
}

// SwapCheckTimeoutsResult is the response for swap_checkTimeouts.
type SwapCheckTimeoutsResult struct {
	Results []interface{} `json:"results"`
	Count   int           `json:"count"`
}

// =============================================================================
// HTLC Types
// =============================================================================

// SwapHTLCRevealSecretParams is the parameters for swap_htlcRevealSecret.
type SwapHTLCRevealSecretParams struct {
	TradeID string `json:"trade_id"`
}

// SwapHTLCRevealSecretResult is the response for swap_htlcRevealSecret.
type SwapHTLCRevealSecretResult struct {
	TradeID    string `json:"trade_id"`
	Secret     string `json:"secret"`      // Hex-encoded secret
	SecretHash string `json:"secret_hash"` // Hex-encoded SHA256 of secret
	Message    string `json:"message"`
}

// SwapHTLCGetSecretParams is the parameters for swap_htlcGetSecret.
type SwapHTLCGetSecretParams struct {
	TradeID string `json:"trade_id"`
}

// SwapHTLCGetSecretResult is the response for swap_htlcGetSecret.
type SwapHTLCGetSecretResult struct {
	TradeID        string `json:"trade_id"`
	SecretHash     string `json:"secret_hash"` // Hex-encoded SHA256 of secret
	Secret         string `json:"secret,omitempty"`
	SecretRevealed bool   `json:"secret_revealed"`
}

// SwapHTLCClaimParams is the parameters for swap_htlcClaim.
type SwapHTLCClaimParams struct {
	TradeID string `json:"trade_id"`
	Chain   string `json:"chain"` // Which chain to claim on
}

// SwapHTLCClaimResult is the result of swap_htlcClaim.
type SwapHTLCClaimResult struct {
	TradeID   string `json:"trade_id"`
	ClaimTxID string `json:"claim_txid"`
	Chain     string `json:"chain"`
	State     string `json:"state"`
}

// SwapHTLCRefundParams is the parameters for swap_htlcRefund.
type SwapHTLCRefundParams struct {
	TradeID string `json:"trade_id"`
	Chain   string `json:"chain"` // Which chain to refund on
}

// SwapHTLCRefundResult is the result of swap_htlcRefund.
type SwapHTLCRefundResult struct {
	TradeID    string `json:"trade_id"`
	RefundTxID string `json:"refund_txid"`
	Chain      string `json:"chain"`
	State      string `json:"state"`
}

// SwapHTLCExtractSecretParams is the parameters for swap_htlcExtractSecret.
type SwapHTLCExtractSecretParams struct {
	TradeID string `json:"trade_id"`
	TxID    string `json:"txid"`
	Chain   string `json:"chain"`
}

// SwapHTLCExtractSecretResult is the result of swap_htlcExtractSecret.
type SwapHTLCExtractSecretResult struct {
	TradeID string `json:"trade_id"`
	Secret  string `json:"secret"`
	Message string `json:"message"`
}
