package storage

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func createTestSwapRecord(swapID string) *SwapRecord {
	return &SwapRecord{
		SwapID:         swapID,
		OrderID:        "order-" + swapID,
		BuyerPeerID:    "12D3KooWBuyer123",
		SellerPeerID:   "12D3KooWSeller456",
		OurRole:        "buyer",
		BuyerAsset:     "BTC",
		BuyerAmount:    "0.1",
		SellerAsset:    "LTC",
		SellerAmount:   "10",
		Phase:          SwapPhaseInit,
		HashLock:       "deadbeef",
		TimeLockHeight: 1000,
		MethodData:     json.RawMessage(`{"test": "data"}`),
	}
}

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	tmpDir, err := os.MkdirTemp("", "driftmesh-swap-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	store, err := New(&Config{DataDir: tmpDir})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSwapCRUD(t *testing.T) {
	store := newTestStorage(t)

	swap := createTestSwapRecord("swap-001")
	require.NoError(t, store.SaveSwap(swap))

	got, err := store.GetSwap("swap-001")
	require.NoError(t, err)
	require.NotNil(t, got)

	require.Equal(t, swap.SwapID, got.SwapID)
	require.Equal(t, swap.OrderID, got.OrderID)
	require.Equal(t, SwapPhaseInit, got.Phase)
	require.Equal(t, "BTC", got.BuyerAsset)
	require.Equal(t, "0.1", got.BuyerAmount)

	swap.Phase = SwapPhaseSellerFunded
	swap.LocalFundingTxID = "abc123def456"
	swap.LocalFundingVout = 0
	require.NoError(t, store.SaveSwap(swap))

	got, err = store.GetSwap("swap-001")
	require.NoError(t, err)
	require.Equal(t, SwapPhaseSellerFunded, got.Phase)
	require.Equal(t, "abc123def456", got.LocalFundingTxID)

	require.NoError(t, store.DeleteSwap("swap-001"))

	got, err = store.GetSwap("swap-001")
	require.ErrorIs(t, err, ErrSwapNotFound)
	require.Nil(t, got)
}

func TestGetPendingSwaps(t *testing.T) {
	store := newTestStorage(t)

	pending1 := createTestSwapRecord("pending-001")
	pending1.Phase = SwapPhaseInit
	require.NoError(t, store.SaveSwap(pending1))

	pending2 := createTestSwapRecord("pending-002")
	pending2.Phase = SwapPhaseSellerFunded
	require.NoError(t, store.SaveSwap(pending2))

	pending3 := createTestSwapRecord("pending-003")
	pending3.Phase = SwapPhaseSellerRedeemed
	require.NoError(t, store.SaveSwap(pending3))

	completed := createTestSwapRecord("completed-001")
	completed.Phase = SwapPhaseBuyerRedeemed
	require.NoError(t, store.SaveSwap(completed))

	cancelled := createTestSwapRecord("cancelled-001")
	cancelled.Phase = SwapPhaseCancelled
	require.NoError(t, store.SaveSwap(cancelled))

	failed := createTestSwapRecord("failed-001")
	failed.Phase = SwapPhaseFailed
	require.NoError(t, store.SaveSwap(failed))

	pending, err := store.GetPendingSwaps()
	require.NoError(t, err)
	require.Len(t, pending, 3)

	for _, s := range pending {
		require.False(t, isTerminalPhase(s.Phase), "unexpected terminal phase %s", s.Phase)
	}
}

func TestGetSwapsNearingTimeout(t *testing.T) {
	store := newTestStorage(t)

	currentHeight := uint32(1000)
	safetyMargin := uint32(10)

	nearTimeout := createTestSwapRecord("near-timeout")
	nearTimeout.Phase = SwapPhaseSellerFunded
	nearTimeout.TimeoutHeight = 1005
	require.NoError(t, store.SaveSwap(nearTimeout))

	farFromTimeout := createTestSwapRecord("far-timeout")
	farFromTimeout.Phase = SwapPhaseSellerFunded
	farFromTimeout.TimeoutHeight = 2000
	require.NoError(t, store.SaveSwap(farFromTimeout))

	wrongPhase := createTestSwapRecord("wrong-phase")
	wrongPhase.Phase = SwapPhaseInit
	wrongPhase.TimeoutHeight = 1005
	require.NoError(t, store.SaveSwap(wrongPhase))

	swaps, err := store.GetSwapsNearingTimeout(currentHeight, safetyMargin)
	require.NoError(t, err)
	require.Len(t, swaps, 1)
	require.Equal(t, "near-timeout", swaps[0].SwapID)
}

func TestGetSwapsPastTimeout(t *testing.T) {
	store := newTestStorage(t)

	currentHeight := uint32(1000)

	pastTimeout := createTestSwapRecord("past-timeout")
	pastTimeout.Phase = SwapPhaseSellerFunded
	pastTimeout.TimeoutHeight = 900
	require.NoError(t, store.SaveSwap(pastTimeout))

	notPastTimeout := createTestSwapRecord("not-past-timeout")
	notPastTimeout.Phase = SwapPhaseSellerFunded
	notPastTimeout.TimeoutHeight = 1100
	require.NoError(t, store.SaveSwap(notPastTimeout))

	completedPast := createTestSwapRecord("completed-past")
	completedPast.Phase = SwapPhaseBuyerRedeemed
	completedPast.TimeoutHeight = 800
	require.NoError(t, store.SaveSwap(completedPast))

	swaps, err := store.GetSwapsPastTimeout(currentHeight)
	require.NoError(t, err)
	require.Len(t, swaps, 1)
	require.Equal(t, "past-timeout", swaps[0].SwapID)
}

func TestUpdateSwapPhase(t *testing.T) {
	store := newTestStorage(t)

	swap := createTestSwapRecord("phase-test")
	require.NoError(t, store.SaveSwap(swap))

	require.NoError(t, store.UpdateSwapPhase("phase-test", SwapPhaseSellerFunded))

	got, err := store.GetSwap("phase-test")
	require.NoError(t, err)
	require.Equal(t, SwapPhaseSellerFunded, got.Phase)
	require.True(t, got.CompletedAt.IsZero())

	require.NoError(t, store.UpdateSwapPhase("phase-test", SwapPhaseBuyerRedeemed))

	got, err = store.GetSwap("phase-test")
	require.NoError(t, err)
	require.Equal(t, SwapPhaseBuyerRedeemed, got.Phase)
	require.False(t, got.CompletedAt.IsZero())

	err = store.UpdateSwapPhase("non-existent", SwapPhaseSellerFunded)
	require.ErrorIs(t, err, ErrSwapNotFound)
}

func TestUpdateSwapMethodData(t *testing.T) {
	store := newTestStorage(t)

	swap := createTestSwapRecord("method-data-test")
	require.NoError(t, store.SaveSwap(swap))

	newData := json.RawMessage(`{"pubkey": "abc123", "nonce": "def456"}`)
	require.NoError(t, store.UpdateSwapMethodData("method-data-test", newData))

	got, err := store.GetSwap("method-data-test")
	require.NoError(t, err)
	require.JSONEq(t, string(newData), string(got.MethodData))

	err = store.UpdateSwapMethodData("non-existent", newData)
	require.ErrorIs(t, err, ErrSwapNotFound)
}

func TestUpdateSwapFunding(t *testing.T) {
	store := newTestStorage(t)

	swap := createTestSwapRecord("funding-test")
	require.NoError(t, store.SaveSwap(swap))

	require.NoError(t, store.UpdateSwapFunding("funding-test", true, "local-tx-123", 0))

	got, err := store.GetSwap("funding-test")
	require.NoError(t, err)
	require.Equal(t, "local-tx-123", got.LocalFundingTxID)
	require.EqualValues(t, 0, got.LocalFundingVout)

	require.NoError(t, store.UpdateSwapFunding("funding-test", false, "remote-tx-456", 1))

	got, err = store.GetSwap("funding-test")
	require.NoError(t, err)
	require.Equal(t, "remote-tx-456", got.RemoteFundingTxID)
	require.EqualValues(t, 1, got.RemoteFundingVout)

	err = store.UpdateSwapFunding("non-existent", true, "tx", 0)
	require.ErrorIs(t, err, ErrSwapNotFound)
}

func TestListSwaps(t *testing.T) {
	store := newTestStorage(t)

	for i := 0; i < 5; i++ {
		swap := createTestSwapRecord("list-" + string(rune('A'+i)))
		if i < 3 {
			swap.Phase = SwapPhaseSellerFunded
		} else {
			swap.Phase = SwapPhaseBuyerRedeemed
		}
		require.NoError(t, store.SaveSwap(swap))
	}

	swaps, err := store.ListSwaps(100, false)
	require.NoError(t, err)
	require.Len(t, swaps, 3)

	swaps, err = store.ListSwaps(100, true)
	require.NoError(t, err)
	require.Len(t, swaps, 5)

	swaps, err = store.ListSwaps(2, true)
	require.NoError(t, err)
	require.Len(t, swaps, 2)
}

func TestSwapPhases(t *testing.T) {
	phases := []SwapPhase{
		SwapPhaseInit,
		SwapPhaseSellerFunded,
		SwapPhaseBuyerFunded,
		SwapPhaseSellerRedeemed,
		SwapPhaseBuyerRedeemed,
		SwapPhaseCancelled,
		SwapPhaseFailed,
	}
	for _, p := range phases {
		require.NotEmpty(t, string(p))
	}

	terminal := []SwapPhase{SwapPhaseBuyerRedeemed, SwapPhaseCancelled, SwapPhaseFailed}
	for _, p := range terminal {
		require.True(t, isTerminalPhase(p), "%s should be terminal", p)
	}

	nonTerminal := []SwapPhase{SwapPhaseInit, SwapPhaseSellerFunded, SwapPhaseBuyerFunded, SwapPhaseSellerRedeemed}
	for _, p := range nonTerminal {
		require.False(t, isTerminalPhase(p), "%s should not be terminal", p)
	}
}

func TestSwapTimestamps(t *testing.T) {
	store := newTestStorage(t)

	swap := createTestSwapRecord("timestamp-test")
	require.NoError(t, store.SaveSwap(swap))

	got, err := store.GetSwap("timestamp-test")
	require.NoError(t, err)
	require.False(t, got.CreatedAt.IsZero())
	require.False(t, got.UpdatedAt.IsZero())

	initialUpdatedAt := got.UpdatedAt.Unix()
	require.NoError(t, store.UpdateSwapPhase("timestamp-test", SwapPhaseSellerFunded))

	got, err = store.GetSwap("timestamp-test")
	require.NoError(t, err)
	require.GreaterOrEqual(t, got.UpdatedAt.Unix(), initialUpdatedAt)
}

func TestSwapNotFound(t *testing.T) {
	store := newTestStorage(t)

	got, err := store.GetSwap("non-existent")
	require.ErrorIs(t, err, ErrSwapNotFound)
	require.Nil(t, got)
}
