// Package storage - Swap FSM persistence for atomic swaps.
//
// Every AtomicSwap phase transition is checkpointed here so a node can
// recover in-flight swaps after a restart without re-deriving state from
// chain scans.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Swap persistence errors
var (
	ErrSwapNotFound     = errors.New("swap not found")
	ErrSwapExists       = errors.New("swap already exists")
	ErrInvalidSwapPhase = errors.New("invalid swap phase")
	ErrKeyNotFound      = errors.New("key not found")
)

// SwapPhase mirrors the AtomicSwap state machine: Init -> SellerRedeemed ->
// BuyerRedeemed (success), or Init -> Cancelled (timeout). SellerFunded and
// BuyerFunded are intermediate funding-confirmation checkpoints kept from
// the teacher's reorg-aware tracking, sitting between Init and
// SellerRedeemed.
type SwapPhase string

const (
	SwapPhaseInit           SwapPhase = "init"
	SwapPhaseSellerFunded   SwapPhase = "seller_funded"
	SwapPhaseBuyerFunded    SwapPhase = "buyer_funded"
	SwapPhaseSellerRedeemed SwapPhase = "seller_redeemed"
	SwapPhaseBuyerRedeemed  SwapPhase = "buyer_redeemed"
	SwapPhaseCancelled      SwapPhase = "cancelled"
	SwapPhaseFailed         SwapPhase = "failed"
)

// SwapRecord represents a persisted AtomicSwap in the database — all data
// needed to recover a swap after restart.
type SwapRecord struct {
	SwapID  string `json:"swap_id"`
	OrderID string `json:"order_id"`

	BuyerPeerID  string `json:"buyer_peer_id"`
	SellerPeerID string `json:"seller_peer_id"`
	OurRole      string `json:"our_role"` // "buyer" or "seller"

	BuyerAsset   string `json:"buyer_asset"`
	BuyerAmount  string `json:"buyer_amount"` // decimal string, see internal/orderbook
	SellerAsset  string `json:"seller_asset"`
	SellerAmount string `json:"seller_amount"`

	Phase SwapPhase `json:"phase"`

	HashLock       string `json:"hash_lock"` // hex, sha256(preimage)
	TimeLockHeight uint32 `json:"time_lock_height"`

	// MethodData carries HTLC-script / MuSig2 / ChainClient-specific
	// recovery data as an opaque JSON blob.
	MethodData json.RawMessage `json:"method_data"`

	LocalFundingTxID  string `json:"local_funding_txid,omitempty"`
	LocalFundingVout  uint32 `json:"local_funding_vout"`
	RemoteFundingTxID string `json:"remote_funding_txid,omitempty"`
	RemoteFundingVout uint32 `json:"remote_funding_vout"`

	TimeoutHeight    uint32 `json:"timeout_height"`
	TimeoutTimestamp int64  `json:"timeout_timestamp"`

	RedeemTxID    string `json:"redeem_txid,omitempty"`
	RefundTxID    string `json:"refund_txid,omitempty"`
	FailureReason string `json:"failure_reason,omitempty"`

	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	CompletedAt time.Time `json:"completed_at,omitempty"`
}

// SaveSwap saves or updates a swap record (UPSERT on swap_id).
func (s *Storage) SaveSwap(swap *SwapRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if swap.CreatedAt.IsZero() {
		swap.CreatedAt = now
	}
	swap.UpdatedAt = now

	query := `
		INSERT INTO active_swaps (
			swap_id, order_id, buyer_peer_id, seller_peer_id,
			our_role, buyer_asset, buyer_amount, seller_asset, seller_amount,
			phase, hash_lock, time_lock_height, method_data,
			local_funding_txid, local_funding_vout,
			remote_funding_txid, remote_funding_vout,
			timeout_height, timeout_timestamp,
			redeem_txid, refund_txid, failure_reason,
			created_at, updated_at, completed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(swap_id) DO UPDATE SET
			phase = excluded.phase,
			method_data = excluded.method_data,
			local_funding_txid = excluded.local_funding_txid,
			local_funding_vout = excluded.local_funding_vout,
			remote_funding_txid = excluded.remote_funding_txid,
			remote_funding_vout = excluded.remote_funding_vout,
			timeout_height = excluded.timeout_height,
			timeout_timestamp = excluded.timeout_timestamp,
			redeem_txid = excluded.redeem_txid,
			refund_txid = excluded.refund_txid,
			failure_reason = excluded.failure_reason,
			updated_at = excluded.updated_at,
			completed_at = excluded.completed_at
	`

	_, err := s.db.Exec(query,
		swap.SwapID,
		swap.OrderID,
		swap.BuyerPeerID,
		swap.SellerPeerID,
		swap.OurRole,
		swap.BuyerAsset,
		swap.BuyerAmount,
		swap.SellerAsset,
		swap.SellerAmount,
		string(swap.Phase),
		swap.HashLock,
		swap.TimeLockHeight,
		string(swap.MethodData),
		swap.LocalFundingTxID,
		swap.LocalFundingVout,
		swap.RemoteFundingTxID,
		swap.RemoteFundingVout,
		swap.TimeoutHeight,
		swap.TimeoutTimestamp,
		swap.RedeemTxID,
		swap.RefundTxID,
		swap.FailureReason,
		swap.CreatedAt.Unix(),
		swap.UpdatedAt.Unix(),
		timeToUnixOrZero(swap.CompletedAt),
	)
	return err
}

const swapColumns = `swap_id, order_id, buyer_peer_id, seller_peer_id,
	our_role, buyer_asset, buyer_amount, seller_asset, seller_amount,
	phase, hash_lock, time_lock_height, method_data,
	local_funding_txid, local_funding_vout,
	remote_funding_txid, remote_funding_vout,
	timeout_height, timeout_timestamp,
	redeem_txid, refund_txid, failure_reason,
	created_at, updated_at, completed_at`

// GetSwap retrieves a swap by swap ID.
func (s *Storage) GetSwap(swapID string) (*SwapRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow("SELECT "+swapColumns+" FROM active_swaps WHERE swap_id = ?", swapID)
	return scanSwapRecord(row)
}

// GetPendingSwaps returns all swaps that are not in a terminal phase.
// These are swaps that need to be recovered on startup.
func (s *Storage) GetPendingSwaps() ([]*SwapRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := "SELECT " + swapColumns + ` FROM active_swaps
		WHERE phase NOT IN ('buyer_redeemed', 'cancelled', 'failed')
		ORDER BY created_at ASC`

	return s.querySwaps(query)
}

// GetSwapsNearingTimeout returns swaps close to their time_lock_height,
// used to schedule refund monitoring ahead of the safety margin.
func (s *Storage) GetSwapsNearingTimeout(currentHeight uint32, safetyMargin uint32) ([]*SwapRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	thresholdHeight := currentHeight + safetyMargin

	query := "SELECT " + swapColumns + ` FROM active_swaps
		WHERE phase IN ('seller_funded', 'buyer_funded', 'seller_redeemed')
		AND timeout_height > 0
		AND timeout_height <= ?
		ORDER BY timeout_height ASC`

	return s.querySwaps(query, thresholdHeight)
}

// GetSwapsPastTimeout returns swaps that have passed their timeout height —
// candidates for the Cancelled/refund transition.
func (s *Storage) GetSwapsPastTimeout(currentHeight uint32) ([]*SwapRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := "SELECT " + swapColumns + ` FROM active_swaps
		WHERE phase IN ('seller_funded', 'buyer_funded', 'seller_redeemed')
		AND timeout_height > 0
		AND timeout_height < ?
		ORDER BY timeout_height ASC`

	return s.querySwaps(query, currentHeight)
}

// UpdateSwapPhase transitions a swap to a new phase.
func (s *Storage) UpdateSwapPhase(swapID string, phase SwapPhase) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().Unix()
	var completedAt int64
	if isTerminalPhase(phase) {
		completedAt = now
	}

	query := `
		UPDATE active_swaps
		SET phase = ?, updated_at = ?, completed_at = CASE WHEN ? > 0 THEN ? ELSE completed_at END
		WHERE swap_id = ?
	`

	result, err := s.db.Exec(query, string(phase), now, completedAt, completedAt, swapID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrSwapNotFound
	}

	return nil
}

// UpdateSwapMethodData updates the method_data JSON blob for a swap.
func (s *Storage) UpdateSwapMethodData(swapID string, methodData json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `UPDATE active_swaps SET method_data = ?, updated_at = ? WHERE swap_id = ?`

	result, err := s.db.Exec(query, string(methodData), time.Now().Unix(), swapID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrSwapNotFound
	}

	return nil
}

// UpdateSwapFunding updates funding transaction info for a swap.
func (s *Storage) UpdateSwapFunding(swapID string, isLocal bool, txid string, vout uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var query string
	if isLocal {
		query = `UPDATE active_swaps SET local_funding_txid = ?, local_funding_vout = ?, updated_at = ? WHERE swap_id = ?`
	} else {
		query = `UPDATE active_swaps SET remote_funding_txid = ?, remote_funding_vout = ?, updated_at = ? WHERE swap_id = ?`
	}

	result, err := s.db.Exec(query, txid, vout, time.Now().Unix(), swapID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrSwapNotFound
	}

	return nil
}

// DeleteSwap removes a swap from the database. Only use for terminal
// phases or cleanup.
func (s *Storage) DeleteSwap(swapID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM active_swaps WHERE swap_id = ?", swapID)
	return err
}

// ListSwaps returns all swaps, optionally including terminal ones.
func (s *Storage) ListSwaps(limit int, includeCompleted bool) ([]*SwapRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := "SELECT " + swapColumns + " FROM active_swaps"
	if !includeCompleted {
		query += " WHERE phase NOT IN ('buyer_redeemed', 'cancelled', 'failed')"
	}
	query += " ORDER BY updated_at DESC"

	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	return s.querySwaps(query)
}

// SwapCount returns the count of swaps by pending/completed.
func (s *Storage) SwapCount() (pending, completed int, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	err = s.db.QueryRow(
		"SELECT COUNT(*) FROM active_swaps WHERE phase NOT IN ('buyer_redeemed', 'cancelled', 'failed')",
	).Scan(&pending)
	if err != nil {
		return
	}

	err = s.db.QueryRow(
		"SELECT COUNT(*) FROM active_swaps WHERE phase IN ('buyer_redeemed', 'cancelled', 'failed')",
	).Scan(&completed)
	return
}

func (s *Storage) querySwaps(query string, args ...interface{}) ([]*SwapRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var swaps []*SwapRecord
	for rows.Next() {
		swap, err := scanSwapRecordRows(rows)
		if err != nil {
			return nil, err
		}
		swaps = append(swaps, swap)
	}
	return swaps, rows.Err()
}

func isTerminalPhase(phase SwapPhase) bool {
	switch phase {
	case SwapPhaseBuyerRedeemed, SwapPhaseCancelled, SwapPhaseFailed:
		return true
	}
	return false
}

type scannable interface {
	Scan(dest ...interface{}) error
}

func scanSwapRecord(row *sql.Row) (*SwapRecord, error) {
	swap, err := scanSwapRecordAny(row)
	if err == sql.ErrNoRows {
		return nil, ErrSwapNotFound
	}
	return swap, err
}

func scanSwapRecordRows(rows *sql.Rows) (*SwapRecord, error) {
	return scanSwapRecordAny(rows)
}

func scanSwapRecordAny(row scannable) (*SwapRecord, error) {
	var swap SwapRecord
	var methodData, localFundingTxID, remoteFundingTxID, redeemTxID, refundTxID, failureReason sql.NullString
	var createdAt, updatedAt, completedAt int64

	err := row.Scan(
		&swap.SwapID,
		&swap.OrderID,
		&swap.BuyerPeerID,
		&swap.SellerPeerID,
		&swap.OurRole,
		&swap.BuyerAsset,
		&swap.BuyerAmount,
		&swap.SellerAsset,
		&swap.SellerAmount,
		&swap.Phase,
		&swap.HashLock,
		&swap.TimeLockHeight,
		&methodData,
		&localFundingTxID,
		&swap.LocalFundingVout,
		&remoteFundingTxID,
		&swap.RemoteFundingVout,
		&swap.TimeoutHeight,
		&swap.TimeoutTimestamp,
		&redeemTxID,
		&refundTxID,
		&failureReason,
		&createdAt,
		&updatedAt,
		&completedAt,
	)
	if err != nil {
		return nil, err
	}

	if methodData.Valid {
		swap.MethodData = json.RawMessage(methodData.String)
	}
	if localFundingTxID.Valid {
		swap.LocalFundingTxID = localFundingTxID.String
	}
	if remoteFundingTxID.Valid {
		swap.RemoteFundingTxID = remoteFundingTxID.String
	}
	if redeemTxID.Valid {
		swap.RedeemTxID = redeemTxID.String
	}
	if refundTxID.Valid {
		swap.RefundTxID = refundTxID.String
	}
	if failureReason.Valid {
		swap.FailureReason = failureReason.String
	}

	swap.CreatedAt = time.Unix(createdAt, 0)
	swap.UpdatedAt = time.Unix(updatedAt, 0)
	if completedAt > 0 {
		swap.CompletedAt = time.Unix(completedAt, 0)
	}

	return &swap, nil
}

func timeToUnixOrZero(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}
