// Package crypto provides the signing and at-rest encryption primitives
// shared by every domain package: orders, gossip deltas, swap offers and
// fee ballots are all signed the same way, with domain-separated digests so
// a signature produced for one message class can never be replayed as
// another.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
)

// Domain separation prefixes, hashed ahead of the payload before signing.
// Keeps an order signature from being replayable as a gossip-delta or
// fee-ballot signature even though all three use the same keypair.
const (
	DomainOrderSign  = "dex_sign_v1:"
	DomainGossipSign = "dex_gossip_v1:"
	DomainFeeBallot  = "dex_fee_ballot_v1:"
)

var (
	ErrInvalidSignature = errors.New("crypto: invalid signature")
	ErrInvalidKeySize   = errors.New("crypto: invalid key size")
)

// Identity is an Ed25519 keypair used to sign orders, deltas and ballots.
type Identity struct {
	Public  ed25519.PublicKey
	private ed25519.PrivateKey
}

// NewIdentity generates a fresh random identity.
func NewIdentity() (*Identity, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate identity: %w", err)
	}
	return &Identity{Public: pub, private: priv}, nil
}

// IdentityFromSeed deterministically derives an identity from a 32-byte
// seed, e.g. a BIP39-derived key handed in by internal/wallet.
func IdentityFromSeed(seed []byte) (*Identity, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("%w: want %d bytes, got %d", ErrInvalidKeySize, ed25519.SeedSize, len(seed))
	}
	priv := ed25519.NewKeyFromSeed(seed)
	return &Identity{Public: priv.Public().(ed25519.PublicKey), private: priv}, nil
}

// Sign signs payload under the given domain, returning a detached
// signature over domain||payload.
func (id *Identity) Sign(domain string, payload []byte) []byte {
	return ed25519.Sign(id.private, domainDigest(domain, payload))
}

// Verify checks a detached signature produced by Sign for the same domain.
func Verify(pub ed25519.PublicKey, domain string, payload, sig []byte) bool {
	if len(pub) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(pub, domainDigest(domain, payload), sig)
}

// domainDigest hashes domain||payload to a fixed-size message before
// signing: sha256(domain || payload), so the domain tag is covered by the
// signed digest.
func domainDigest(domain string, payload []byte) []byte {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write(payload)
	return h.Sum(nil)
}

// Hash256 returns the plain SHA-256 digest of data, used for HTLC
// hash-locks (sha256(preimage) == hash_lock) and content-addressed CRDT
// keys.
func Hash256(data []byte) [32]byte {
	return sha256.Sum256(data)
}

// SealSecret encrypts a small at-rest secret (HTLC preimage, raw signing
// key) with AES-256-GCM under key (see DeriveSecretKey).
// The nonce is prepended to the returned ciphertext.
func SealSecret(key [32]byte, plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("seal secret: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("seal secret: %w", err)
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("seal secret: %w", err)
	}
	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

// OpenSecret reverses SealSecret.
func OpenSecret(key [32]byte, sealed []byte) ([]byte, error) {
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("open secret: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("open secret: %w", err)
	}
	if len(sealed) < gcm.NonceSize() {
		return nil, errors.New("open secret: ciphertext too short")
	}
	nonce, ct := sealed[:gcm.NonceSize()], sealed[gcm.NonceSize():]
	plaintext, err := gcm.Open(nil, nonce, ct, nil)
	if err != nil {
		return nil, fmt.Errorf("open secret: %w", err)
	}
	return plaintext, nil
}

// DeriveSecretKey derives a 32-byte AES key by hashing a fixed domain
// prefix together with the node identity's private seed, so at-rest secrets
// are bound to the node that created them.
func (id *Identity) DeriveSecretKey() [32]byte {
	return sha256.Sum256(append([]byte("dex_secret_key_v1:"), id.private.Seed()...))
}
