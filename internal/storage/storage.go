// Package storage provides persistent storage using SQLite.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/driftmesh/driftmesh/pkg/logging"
)

var log = logging.GetDefault().Component("storage")

// Storage provides persistent storage for the Driftmesh node.
//
// Beyond the relational tables used by swaps/peers/wallet tracking, Storage
// exposes a generic column-family key-value layer (see kv.go) used by the
// shard, fee and audit packages to persist opaque CRDT snapshots, ledgers
// and audit entries without coupling their schemas to SQL migrations.
type Storage struct {
	db     *sql.DB
	dbPath string
	mu     sync.RWMutex

	// fallback is non-nil when sqlite could not be opened after
	// MaxOpenRetries attempts. Every KV operation then falls back to an
	// in-memory map instead of failing the node outright.
	fallback *memoryKV
}

// Config holds storage configuration.
type Config struct {
	DataDir string

	// MaxOpenRetries is how many times to retry opening the sqlite
	// database before falling back to an in-memory store. Zero means a
	// single attempt with no retry.
	MaxOpenRetries int

	// OpenBackoffSec is the base delay between open retries, doubled on
	// each attempt (capped at 30s).
	OpenBackoffSec int
}

// New creates a new Storage instance. If sqlite cannot be opened after
// MaxOpenRetries attempts, Storage falls back to an in-memory column-family
// store for the KV layer so the node can still run degraded rather than
// fail to start; relational data (swaps, peers, wallet) is unavailable in
// that mode and callers should treat it as recovery-less.
func New(cfg *Config) (*Storage, error) {
	dataDir := expandPath(cfg.DataDir)

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "driftmesh.db")

	db, err := openWithRetry(dbPath, cfg.MaxOpenRetries, cfg.OpenBackoffSec)
	if err != nil {
		log.Warn("sqlite open failed after retries, falling back to in-memory store", "err", err)
		return &Storage{
			dbPath:   dbPath,
			fallback: newMemoryKV(),
		}, nil
	}

	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	s := &Storage{
		db:     db,
		dbPath: dbPath,
	}

	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return s, nil
}

func openWithRetry(dbPath string, maxRetries, backoffSec int) (*sql.DB, error) {
	if backoffSec <= 0 {
		backoffSec = 1
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
		if err == nil {
			if pingErr := db.Ping(); pingErr == nil {
				return db, nil
			} else {
				db.Close()
				lastErr = pingErr
			}
		} else {
			lastErr = err
		}

		if attempt < maxRetries {
			delay := time.Duration(backoffSec) * time.Second * time.Duration(1<<uint(attempt))
			if delay > 30*time.Second {
				delay = 30 * time.Second
			}
			log.Warn("sqlite open attempt failed, retrying", "attempt", attempt, "delay", delay, "err", lastErr)
			time.Sleep(delay)
		}
	}

	return nil, fmt.Errorf("open %s: %w", dbPath, lastErr)
}

// Close closes the database connection.
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB returns the underlying database connection. Returns nil when running
// in fallback (in-memory) mode.
func (s *Storage) DB() *sql.DB {
	return s.db
}

// Degraded reports whether storage is running on the in-memory KV fallback
// rather than durable sqlite.
func (s *Storage) Degraded() bool {
	return s.db == nil
}

// initSchema creates all database tables.
func (s *Storage) initSchema() error {
	schema := `
	-- Known peers table
	CREATE TABLE IF NOT EXISTS peers (
		peer_id TEXT PRIMARY KEY,
		addresses TEXT,
		first_seen INTEGER,
		last_seen INTEGER,
		last_connected INTEGER,
		connection_count INTEGER DEFAULT 0,
		is_bootstrap INTEGER DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_peers_last_seen ON peers(last_seen);

	-- Settings/config table
	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT,
		updated_at INTEGER
	);

	-- =========================================================================
	-- Generic column-family key-value store
	--
	-- Backs the CRDT order book snapshots, gossip checkpoints, shard state
	-- and fee pool ledger: each of those owns a "cf" namespace and treats
	-- the value blob as opaque, letting their wire formats evolve without
	-- SQL migrations.
	-- =========================================================================
	CREATE TABLE IF NOT EXISTS kv (
		cf    TEXT NOT NULL,
		key   BLOB NOT NULL,
		value BLOB NOT NULL,
		PRIMARY KEY (cf, key)
	);

	CREATE INDEX IF NOT EXISTS idx_kv_cf ON kv(cf);

	-- Swap legs table (each side of the swap tracked separately)
	CREATE TABLE IF NOT EXISTS swap_legs (
		id TEXT PRIMARY KEY,
		trade_id TEXT NOT NULL,

		leg_type TEXT NOT NULL,
		chain TEXT NOT NULL,
		amount INTEGER NOT NULL,

		our_role TEXT NOT NULL,
		state TEXT NOT NULL DEFAULT 'init',

		funding_txid TEXT,
		funding_vout INTEGER,
		funding_confirms INTEGER DEFAULT 0,
		funding_address TEXT,

		redeem_txid TEXT,
		refund_txid TEXT,

		timeout_height INTEGER,
		timeout_timestamp INTEGER,

		method_data TEXT,

		created_at INTEGER NOT NULL,
		updated_at INTEGER
	);

	CREATE INDEX IF NOT EXISTS idx_swap_legs_trade ON swap_legs(trade_id);
	CREATE INDEX IF NOT EXISTS idx_swap_legs_state ON swap_legs(state);
	CREATE INDEX IF NOT EXISTS idx_swap_legs_chain ON swap_legs(chain);

	-- Secrets table (separate for security - HTLC preimages)
	CREATE TABLE IF NOT EXISTS secrets (
		id TEXT PRIMARY KEY,
		trade_id TEXT NOT NULL,

		secret_hash TEXT NOT NULL,
		secret TEXT,
		created_by TEXT NOT NULL,

		remote_offer_wallet_addr TEXT,
		remote_request_wallet_addr TEXT,

		created_at INTEGER NOT NULL,
		revealed_at INTEGER,

		UNIQUE(trade_id, secret_hash)
	);

	CREATE INDEX IF NOT EXISTS idx_secrets_trade ON secrets(trade_id);
	CREATE INDEX IF NOT EXISTS idx_secrets_hash ON secrets(secret_hash);

	-- Message log (for debugging and audit)
	CREATE TABLE IF NOT EXISTS message_log (
		id TEXT PRIMARY KEY,
		message_type TEXT NOT NULL,
		from_peer_id TEXT NOT NULL,
		to_peer_id TEXT,
		trade_id TEXT,
		payload TEXT,
		received_at INTEGER NOT NULL,
		processed INTEGER DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_messages_type ON message_log(message_type);
	CREATE INDEX IF NOT EXISTS idx_messages_trade ON message_log(trade_id);
	CREATE INDEX IF NOT EXISTS idx_messages_received ON message_log(received_at);

	-- =========================================================================
	-- Active Swaps (runtime swap FSM state for persistence/recovery)
	-- =========================================================================

	CREATE TABLE IF NOT EXISTS active_swaps (
		swap_id TEXT PRIMARY KEY,
		order_id TEXT NOT NULL,

		buyer_peer_id TEXT NOT NULL,
		seller_peer_id TEXT NOT NULL,
		our_role TEXT NOT NULL,

		buyer_asset TEXT NOT NULL,
		buyer_amount TEXT NOT NULL,
		seller_asset TEXT NOT NULL,
		seller_amount TEXT NOT NULL,

		-- init, seller_funded, buyer_funded, seller_redeemed, buyer_redeemed, cancelled, failed
		phase TEXT NOT NULL DEFAULT 'init',

		hash_lock TEXT NOT NULL,
		time_lock_height INTEGER NOT NULL,

		method_data TEXT,

		local_funding_txid TEXT,
		local_funding_vout INTEGER DEFAULT 0,
		remote_funding_txid TEXT,
		remote_funding_vout INTEGER DEFAULT 0,

		timeout_height INTEGER DEFAULT 0,
		timeout_timestamp INTEGER DEFAULT 0,

		redeem_txid TEXT,
		refund_txid TEXT,
		failure_reason TEXT,

		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL,
		completed_at INTEGER
	);

	CREATE INDEX IF NOT EXISTS idx_active_swaps_phase ON active_swaps(phase);
	CREATE INDEX IF NOT EXISTS idx_active_swaps_timeout ON active_swaps(timeout_height);
	CREATE INDEX IF NOT EXISTS idx_active_swaps_updated ON active_swaps(updated_at);

	-- =========================================================================
	-- Wallet UTXO Tracking (for multi-address spending)
	-- =========================================================================

	CREATE TABLE IF NOT EXISTS wallet_addresses (
		address TEXT PRIMARY KEY,
		chain TEXT NOT NULL,

		account INTEGER NOT NULL DEFAULT 0,
		change INTEGER NOT NULL DEFAULT 0,
		address_index INTEGER NOT NULL,

		address_type TEXT NOT NULL DEFAULT 'p2wpkh',

		tx_count INTEGER DEFAULT 0,
		total_received INTEGER DEFAULT 0,
		total_sent INTEGER DEFAULT 0,

		created_at INTEGER NOT NULL,
		first_seen_at INTEGER,
		last_seen_at INTEGER,

		UNIQUE(chain, account, change, address_index)
	);

	CREATE INDEX IF NOT EXISTS idx_wallet_addresses_chain ON wallet_addresses(chain);
	CREATE INDEX IF NOT EXISTS idx_wallet_addresses_path ON wallet_addresses(account, change, address_index);

	CREATE TABLE IF NOT EXISTS wallet_utxos (
		txid TEXT NOT NULL,
		vout INTEGER NOT NULL,

		amount INTEGER NOT NULL,

		address TEXT NOT NULL,
		chain TEXT NOT NULL,

		account INTEGER NOT NULL DEFAULT 0,
		change INTEGER NOT NULL DEFAULT 0,
		address_index INTEGER NOT NULL,

		script_pubkey TEXT,
		address_type TEXT NOT NULL DEFAULT 'p2wpkh',

		status TEXT NOT NULL DEFAULT 'unconfirmed',

		block_height INTEGER,
		block_hash TEXT,
		confirmations INTEGER DEFAULT 0,

		spent_txid TEXT,
		spent_at INTEGER,

		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL,

		PRIMARY KEY (txid, vout),
		FOREIGN KEY (address) REFERENCES wallet_addresses(address)
	);

	CREATE INDEX IF NOT EXISTS idx_wallet_utxos_address ON wallet_utxos(address);
	CREATE INDEX IF NOT EXISTS idx_wallet_utxos_chain ON wallet_utxos(chain);
	CREATE INDEX IF NOT EXISTS idx_wallet_utxos_status ON wallet_utxos(status);
	CREATE INDEX IF NOT EXISTS idx_wallet_utxos_chain_status ON wallet_utxos(chain, status);

	CREATE TABLE IF NOT EXISTS wallet_sync_state (
		chain TEXT PRIMARY KEY,

		last_external_index INTEGER DEFAULT 0,
		last_change_index INTEGER DEFAULT 0,

		gap_limit INTEGER DEFAULT 20,

		last_sync_at INTEGER,
		last_block_height INTEGER,
		sync_status TEXT DEFAULT 'pending'
	);

	-- =========================================================================
	-- P2P Message Queue (for reliable direct messaging)
	-- =========================================================================

	CREATE TABLE IF NOT EXISTS message_outbox (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		message_id TEXT UNIQUE NOT NULL,
		trade_id TEXT NOT NULL,
		peer_id TEXT NOT NULL,
		message_type TEXT NOT NULL,
		payload BLOB NOT NULL,
		sequence_num INTEGER NOT NULL,

		swap_timeout INTEGER NOT NULL,

		created_at INTEGER NOT NULL,
		retry_count INTEGER DEFAULT 0,
		last_attempt_at INTEGER,
		next_retry_at INTEGER NOT NULL,

		acked_at INTEGER,
		status TEXT DEFAULT 'pending',
		error_message TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_outbox_pending ON message_outbox(status, next_retry_at)
		WHERE status = 'pending' OR status = 'sent';
	CREATE INDEX IF NOT EXISTS idx_outbox_trade ON message_outbox(trade_id);
	CREATE INDEX IF NOT EXISTS idx_outbox_peer ON message_outbox(peer_id, status);
	CREATE INDEX IF NOT EXISTS idx_outbox_message ON message_outbox(message_id);

	CREATE TABLE IF NOT EXISTS message_inbox (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		message_id TEXT UNIQUE NOT NULL,
		trade_id TEXT NOT NULL,
		peer_id TEXT NOT NULL,
		message_type TEXT NOT NULL,
		sequence_num INTEGER NOT NULL,

		received_at INTEGER NOT NULL,
		processed_at INTEGER,
		ack_sent INTEGER DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_inbox_message ON message_inbox(message_id);
	CREATE INDEX IF NOT EXISTS idx_inbox_trade ON message_inbox(trade_id, sequence_num);
	CREATE INDEX IF NOT EXISTS idx_inbox_peer ON message_inbox(peer_id);

	CREATE TABLE IF NOT EXISTS message_sequences (
		trade_id TEXT PRIMARY KEY,
		local_seq INTEGER DEFAULT 0,
		remote_seq INTEGER DEFAULT 0,
		updated_at INTEGER NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	if err != nil {
		return err
	}

	return s.runMigrations()
}

// runMigrations runs schema migrations for existing databases.
// These are ALTER TABLE statements that add columns to existing tables.
// Errors are ignored since columns may already exist.
func (s *Storage) runMigrations() error {
	migrations := []string{
		"ALTER TABLE secrets ADD COLUMN remote_offer_wallet_addr TEXT",
		"ALTER TABLE secrets ADD COLUMN remote_request_wallet_addr TEXT",
	}

	for _, migration := range migrations {
		_, _ = s.db.Exec(migration)
	}

	return nil
}

// expandPath expands ~ to home directory.
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[1:])
	}
	return path
}
