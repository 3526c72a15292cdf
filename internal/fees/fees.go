// Package fees implements per-trade fee computation, fee-pool accrual, and
// the signed-ballot scheme nodes use to endorse the weekly pool
// distribution.
package fees

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/driftmesh/driftmesh/internal/storage"
)

const poolColumnFamily = "fee_pool"

var (
	// ErrSplitNotNormalized is returned when a configured fee split's
	// shares do not sum to 1.0.
	ErrSplitNotNormalized = errors.New("fees: split shares must sum to 1.0")
	// ErrRateOutOfRange is returned when a configured rate is not in (0, 1).
	ErrRateOutOfRange = errors.New("fees: rate must be in (0, 1)")
)

// SettlementType distinguishes the two rate tiers a trade can settle under.
type SettlementType string

const (
	SettlementStandard   SettlementType = "standard"
	SettlementAtomicSwap SettlementType = "atomic_swap"
)

// Split assigns a fraction of the collected fee to a named recipient
// (founder, dev, node-operator pool, ...). Shares across a Config's Split
// must sum to 1.0.
type Split struct {
	Recipient string          `yaml:"recipient" json:"recipient"`
	Share     decimal.Decimal `yaml:"share" json:"share"`
}

// Config holds the fee schedule. Loaded from the node config's `fees.*`
// section.
type Config struct {
	StandardRate   decimal.Decimal `yaml:"standard_rate"`
	AtomicSwapRate decimal.Decimal `yaml:"atomic_swap_rate"`
	Split          []Split         `yaml:"fee_split"`
}

// Validate checks the rates are in (0, 1) and the split sums to 1.0.
func (c Config) Validate() error {
	one := decimal.NewFromInt(1)
	zero := decimal.Zero
	if c.StandardRate.LessThanOrEqual(zero) || c.StandardRate.GreaterThanOrEqual(one) {
		return fmt.Errorf("%w: standard_rate=%s", ErrRateOutOfRange, c.StandardRate)
	}
	if c.AtomicSwapRate.LessThanOrEqual(zero) || c.AtomicSwapRate.GreaterThanOrEqual(one) {
		return fmt.Errorf("%w: atomic_swap_rate=%s", ErrRateOutOfRange, c.AtomicSwapRate)
	}
	sum := decimal.Zero
	for _, s := range c.Split {
		sum = sum.Add(s.Share)
	}
	if !sum.Equal(one) {
		return fmt.Errorf("%w: got %s", ErrSplitNotNormalized, sum)
	}
	return nil
}

// Allocation is one recipient's share of a single trade's fee.
type Allocation struct {
	Recipient string
	Amount    decimal.Decimal
}

// Store is the persistence surface fees needs from internal/storage.
type Store interface {
	Put(cf string, key, value []byte) error
	Get(cf string, key []byte) ([]byte, error)
}

// Ledger computes per-trade fees and accrues them into the fee_pool column
// family, keyed `pool|{epoch}`. A single mutex serializes pool updates,
// matching the commit-lock discipline the matching/swap commit path uses to
// avoid double-spend races in shared ledger state.
type Ledger struct {
	mu    sync.Mutex
	cfg   Config
	store Store
}

// NewLedger creates a fee ledger. cfg must already be Validate()d.
func NewLedger(cfg Config, store Store) *Ledger {
	return &Ledger{cfg: cfg, store: store}
}

// ComputeFee returns notional * rate for the given settlement type.
func (l *Ledger) ComputeFee(notional decimal.Decimal, settlement SettlementType) decimal.Decimal {
	rate := l.cfg.StandardRate
	if settlement == SettlementAtomicSwap {
		rate = l.cfg.AtomicSwapRate
	}
	return notional.Mul(rate)
}

// Split divides a fee amount among the configured recipients.
func (l *Ledger) Split(fee decimal.Decimal) []Allocation {
	allocations := make([]Allocation, 0, len(l.cfg.Split))
	for _, s := range l.cfg.Split {
		allocations = append(allocations, Allocation{Recipient: s.Recipient, Amount: fee.Mul(s.Share)})
	}
	return allocations
}

// AccrueTrade computes and persists the fee for one trade's notional into
// epoch's pool balance, returning the per-recipient split for the audit
// trail. Held under the ledger's commit lock so concurrent trade
// settlements never race on the same epoch's pool entry.
func (l *Ledger) AccrueTrade(epoch uint64, notional decimal.Decimal, settlement SettlementType) ([]Allocation, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fee := l.ComputeFee(notional, settlement)
	allocations := l.Split(fee)

	current, err := l.poolBalanceLocked(epoch)
	if err != nil {
		return nil, err
	}
	updated := current.Add(fee)

	if err := l.store.Put(poolColumnFamily, poolKey(epoch), []byte(updated.String())); err != nil {
		return nil, fmt.Errorf("fees: persist pool balance: %w", err)
	}
	return allocations, nil
}

// PoolBalance returns the current accrued balance for epoch.
func (l *Ledger) PoolBalance(epoch uint64) (decimal.Decimal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.poolBalanceLocked(epoch)
}

func (l *Ledger) poolBalanceLocked(epoch uint64) (decimal.Decimal, error) {
	raw, err := l.store.Get(poolColumnFamily, poolKey(epoch))
	if err != nil {
		if err == storage.ErrKeyNotFound {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("fees: read pool balance: %w", err)
	}
	v, err := decimal.NewFromString(string(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("fees: parse pool balance: %w", err)
	}
	return v, nil
}

func poolKey(epoch uint64) []byte {
	buf := make([]byte, len("pool|")+8)
	copy(buf, "pool|")
	binary.BigEndian.PutUint64(buf[len("pool|"):], epoch)
	return buf
}
