// Package swap - Secret monitoring for HTLC atomic swaps: watches both
// legs' HTLC outputs for a claim transaction and extracts the preimage
// from its witness once one appears.
package swap

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/driftmesh/driftmesh/internal/backend"
	"github.com/driftmesh/driftmesh/internal/chain"
	"github.com/driftmesh/driftmesh/pkg/logging"
)

// SecretSource indicates where the secret was extracted from.
type SecretSource string

const (
	SecretSourceBitcoinWitness SecretSource = "bitcoin_witness"
	SecretSourceManual         SecretSource = "manual"
)

// SecretRevealEvent is emitted when a secret is discovered.
type SecretRevealEvent struct {
	TradeID    string
	Secret     [32]byte
	SecretHash [32]byte
	Source     SecretSource
	Chain      string
	TxHash     string
	Timestamp  time.Time
}

// SecretMonitor watches both legs of an HTLC swap for the claim
// transaction that reveals the secret.
type SecretMonitor struct {
	mu sync.RWMutex

	coordinator *Coordinator
	backends    map[string]backend.Backend
	network     chain.Network
	log         *logging.Logger

	monitors map[string]context.CancelFunc // tradeID -> cancel func

	events chan SecretRevealEvent

	ctx    context.Context
	cancel context.CancelFunc
}

// NewSecretMonitor creates a new secret monitor.
func NewSecretMonitor(coordinator *Coordinator, backends map[string]backend.Backend, network chain.Network) *SecretMonitor {
	ctx, cancel := context.WithCancel(context.Background())
	return &SecretMonitor{
		coordinator: coordinator,
		backends:    backends,
		network:     network,
		log:         logging.Default().Component("secret-monitor"),
		monitors:    make(map[string]context.CancelFunc),
		events:      make(chan SecretRevealEvent, 100),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Events returns the channel for secret reveal events.
func (m *SecretMonitor) Events() <-chan SecretRevealEvent {
	return m.events
}

// StartMonitoring starts watching both legs of a swap for a claim.
func (m *SecretMonitor) StartMonitoring(tradeID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.monitors[tradeID]; exists {
		return nil
	}

	active, err := m.coordinator.GetSwap(tradeID)
	if err != nil {
		return fmt.Errorf("swap not found: %w", err)
	}
	if active.HTLC == nil {
		return fmt.Errorf("no HTLC data for swap %s", tradeID)
	}

	ctx, cancel := context.WithCancel(m.ctx)
	m.monitors[tradeID] = cancel

	go m.monitorBitcoinChain(ctx, tradeID, active.Swap.SellerLeg.Chain)
	go m.monitorBitcoinChain(ctx, tradeID, active.Swap.BuyerLeg.Chain)

	m.log.Info("Started secret monitoring", "trade_id", tradeID)
	return nil
}

// StopMonitoring stops monitoring for a specific swap.
func (m *SecretMonitor) StopMonitoring(tradeID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cancel, exists := m.monitors[tradeID]; exists {
		cancel()
		delete(m.monitors, tradeID)
		m.log.Debug("Stopped secret monitoring", "trade_id", tradeID)
	}
}

// Stop stops all monitoring.
func (m *SecretMonitor) Stop() {
	m.cancel()
	m.mu.Lock()
	for tradeID, cancel := range m.monitors {
		cancel()
		delete(m.monitors, tradeID)
	}
	m.mu.Unlock()
	close(m.events)
}

// =============================================================================
// Bitcoin Monitoring
// =============================================================================

func (m *SecretMonitor) monitorBitcoinChain(ctx context.Context, tradeID, chainSymbol string) {
	m.log.Debug("Starting chain monitor", "trade_id", tradeID, "chain", chainSymbol)

	active, err := m.coordinator.GetSwap(tradeID)
	if err != nil {
		m.log.Error("Failed to get swap for monitoring", "error", err)
		return
	}
	if active.HTLC == nil {
		m.log.Debug("No HTLC data, skipping monitor", "trade_id", tradeID)
		return
	}

	var htlcAddress string
	var secretHash []byte
	switch chainSymbol {
	case active.Swap.SellerLeg.Chain:
		htlcAddress = active.HTLC.SellerChain.HTLCAddress
		if active.HTLC.SellerChain.Session != nil {
			secretHash = active.HTLC.SellerChain.Session.GetSecretHash()
		}
	case active.Swap.BuyerLeg.Chain:
		htlcAddress = active.HTLC.BuyerChain.HTLCAddress
		if active.HTLC.BuyerChain.Session != nil {
			secretHash = active.HTLC.BuyerChain.Session.GetSecretHash()
		}
	}

	if htlcAddress == "" {
		m.log.Debug("No HTLC address for chain yet", "trade_id", tradeID, "chain", chainSymbol)
		return
	}

	b, ok := m.backends[chainSymbol]
	if !ok {
		m.log.Error("No backend for chain", "chain", chainSymbol)
		return
	}

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			secret, txHash, err := m.checkBitcoinClaim(ctx, b, htlcAddress, secretHash)
			if err != nil {
				m.log.Debug("No claim found yet", "chain", chainSymbol, "error", err)
				continue
			}

			if len(secret) == 32 {
				var secretArr [32]byte
				copy(secretArr[:], secret)
				var hashArr [32]byte
				copy(hashArr[:], secretHash)

				event := SecretRevealEvent{
					TradeID:    tradeID,
					Secret:     secretArr,
					SecretHash: hashArr,
					Source:     SecretSourceBitcoinWitness,
					Chain:      chainSymbol,
					TxHash:     txHash,
					Timestamp:  time.Now(),
				}

				select {
				case m.events <- event:
					m.log.Info("Secret revealed from claim witness",
						"trade_id", tradeID,
						"chain", chainSymbol,
						"tx_hash", txHash,
					)
				case <-ctx.Done():
					return
				}

				m.propagateSecret(tradeID, secretArr)
				return
			}
		}
	}
}

// checkBitcoinClaim checks if the HTLC has been claimed and extracts the secret.
func (m *SecretMonitor) checkBitcoinClaim(ctx context.Context, b backend.Backend, htlcAddress string, expectedHash []byte) (secret []byte, txHash string, err error) {
	txs, err := b.GetAddressTxs(ctx, htlcAddress, "")
	if err != nil {
		return nil, "", fmt.Errorf("failed to get address transactions: %w", err)
	}

	for _, tx := range txs {
		isSpending := false
		for _, input := range tx.Inputs {
			if input.PrevOut != nil && input.PrevOut.ScriptPubKeyAddr == htlcAddress {
				isSpending = true
				break
			}
		}
		if !isSpending {
			continue
		}

		for _, input := range tx.Inputs {
			if input.PrevOut == nil || input.PrevOut.ScriptPubKeyAddr != htlcAddress {
				continue
			}

			// Claim witness is [signature, secret, 0x01, htlc_script]; the
			// secret is the only 32-byte item matching the expected hash.
			if len(input.Witness) >= 2 {
				for i, witnessItem := range input.Witness {
					witnessBytes, err := hex.DecodeString(witnessItem)
					if err != nil {
						continue
					}

					if len(witnessBytes) == 32 {
						if len(expectedHash) == 32 {
							hash := HashSecretBytes(witnessBytes)
							if hex.EncodeToString(hash) == hex.EncodeToString(expectedHash) {
								return witnessBytes, tx.TxID, nil
							}
						} else {
							m.log.Debug("Found potential secret in witness",
								"tx", tx.TxID,
								"witness_index", i,
							)
							return witnessBytes, tx.TxID, nil
						}
					}
				}
			}
		}
	}

	return nil, "", fmt.Errorf("no claim transaction found")
}

// =============================================================================
// Helper Methods
// =============================================================================

// propagateSecret stores the secret in the swap and propagates it to both
// HTLC sessions so either leg's claim/refund can use it.
func (m *SecretMonitor) propagateSecret(tradeID string, secret [32]byte) {
	active, err := m.coordinator.GetSwap(tradeID)
	if err != nil {
		m.log.Error("Failed to get swap for secret propagation", "error", err)
		return
	}

	active.Swap.Secret = secret[:]

	if active.HTLC != nil {
		if active.HTLC.SellerChain != nil && active.HTLC.SellerChain.Session != nil {
			_ = active.HTLC.SellerChain.Session.SetSecret(secret[:])
		}
		if active.HTLC.BuyerChain != nil && active.HTLC.BuyerChain.Session != nil {
			_ = active.HTLC.BuyerChain.Session.SetSecret(secret[:])
		}
	}

	m.log.Info("Secret propagated to both sessions", "trade_id", tradeID)
}

// HashSecretBytes computes SHA256 of secret bytes.
func HashSecretBytes(secret []byte) []byte {
	hash := sha256.Sum256(secret)
	return hash[:]
}
