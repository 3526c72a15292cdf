package fees

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/driftmesh/driftmesh/internal/storage"
)

type memStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]byte)}
}

func (m *memStore) Put(cf string, key, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[cf+"|"+string(key)] = append([]byte(nil), value...)
	return nil
}

func (m *memStore) Get(cf string, key []byte) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[cf+"|"+string(key)]
	if !ok {
		return nil, storage.ErrKeyNotFound
	}
	return v, nil
}

func testConfig(t *testing.T) Config {
	t.Helper()
	cfg := Config{
		StandardRate:   decimal.RequireFromString("0.01"),
		AtomicSwapRate: decimal.RequireFromString("0.005"),
		Split: []Split{
			{Recipient: "founder", Share: decimal.RequireFromString("0.5")},
			{Recipient: "dev", Share: decimal.RequireFromString("0.3")},
			{Recipient: "operators", Share: decimal.RequireFromString("0.2")},
		},
	}
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestConfigValidateRejectsUnnormalizedSplit(t *testing.T) {
	cfg := testConfig(t)
	cfg.Split[0].Share = decimal.RequireFromString("0.9")
	require.ErrorIs(t, cfg.Validate(), ErrSplitNotNormalized)
}

func TestConfigValidateRejectsOutOfRangeRate(t *testing.T) {
	cfg := testConfig(t)
	cfg.StandardRate = decimal.RequireFromString("1.5")
	require.ErrorIs(t, cfg.Validate(), ErrRateOutOfRange)
}

func TestLedgerComputeFeeUsesSettlementRate(t *testing.T) {
	ledger := NewLedger(testConfig(t), newMemStore())
	notional := decimal.RequireFromString("1000")

	standard := ledger.ComputeFee(notional, SettlementStandard)
	require.True(t, standard.Equal(decimal.RequireFromString("10")))

	swap := ledger.ComputeFee(notional, SettlementAtomicSwap)
	require.True(t, swap.Equal(decimal.RequireFromString("5")))
}

func TestLedgerSplitSumsToFee(t *testing.T) {
	ledger := NewLedger(testConfig(t), newMemStore())
	fee := decimal.RequireFromString("10")
	allocations := ledger.Split(fee)
	require.Len(t, allocations, 3)

	sum := decimal.Zero
	for _, a := range allocations {
		sum = sum.Add(a.Amount)
	}
	require.True(t, sum.Equal(fee))
}

func TestLedgerAccrueTradeAccumulatesPoolBalance(t *testing.T) {
	ledger := NewLedger(testConfig(t), newMemStore())

	_, err := ledger.AccrueTrade(1, decimal.RequireFromString("1000"), SettlementStandard)
	require.NoError(t, err)
	_, err = ledger.AccrueTrade(1, decimal.RequireFromString("500"), SettlementStandard)
	require.NoError(t, err)

	balance, err := ledger.PoolBalance(1)
	require.NoError(t, err)
	require.True(t, balance.Equal(decimal.RequireFromString("15")))

	other, err := ledger.PoolBalance(2)
	require.NoError(t, err)
	require.True(t, other.IsZero())
}
