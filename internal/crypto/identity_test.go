package crypto

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	id, err := NewIdentity()
	require.NoError(t, err)

	payload := []byte("order-123:BTC-USD:buy:1.5")
	sig := id.Sign(DomainOrderSign, payload)

	require.True(t, Verify(id.Public, DomainOrderSign, payload, sig))
}

func TestVerifyRejectsCrossDomainReplay(t *testing.T) {
	id, err := NewIdentity()
	require.NoError(t, err)

	payload := []byte("same-bytes")
	sig := id.Sign(DomainOrderSign, payload)

	require.False(t, Verify(id.Public, DomainGossipSign, payload, sig))
}

func TestVerifyRejectsTamperedPayload(t *testing.T) {
	id, err := NewIdentity()
	require.NoError(t, err)

	sig := id.Sign(DomainOrderSign, []byte("original"))
	require.False(t, Verify(id.Public, DomainOrderSign, []byte("tampered"), sig))
}

func TestIdentityFromSeedDeterministic(t *testing.T) {
	seed := make([]byte, 32)
	for i := range seed {
		seed[i] = byte(i)
	}

	a, err := IdentityFromSeed(seed)
	require.NoError(t, err)
	b, err := IdentityFromSeed(seed)
	require.NoError(t, err)

	require.Equal(t, a.Public, b.Public)
}

func TestSealOpenSecretRoundTrip(t *testing.T) {
	id, err := NewIdentity()
	require.NoError(t, err)

	key := id.DeriveSecretKey()
	plaintext := []byte("htlc preimage bytes, 32 of them!")

	sealed, err := SealSecret(key, plaintext)
	require.NoError(t, err)
	require.NotEqual(t, plaintext, sealed)

	opened, err := OpenSecret(key, sealed)
	require.NoError(t, err)
	require.Equal(t, plaintext, opened)
}

func TestOpenSecretFailsWithWrongKey(t *testing.T) {
	idA, err := NewIdentity()
	require.NoError(t, err)
	idB, err := NewIdentity()
	require.NoError(t, err)

	sealed, err := SealSecret(idA.DeriveSecretKey(), []byte("secret"))
	require.NoError(t, err)

	_, err = OpenSecret(idB.DeriveSecretKey(), sealed)
	require.Error(t, err)
}

func TestHash256Deterministic(t *testing.T) {
	a := Hash256([]byte("preimage"))
	b := Hash256([]byte("preimage"))
	require.Equal(t, a, b)

	c := Hash256([]byte("different"))
	require.NotEqual(t, a, c)
}
