package fees

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/driftmesh/driftmesh/internal/crypto"
)

func TestBallotSignVerify(t *testing.T) {
	id, err := crypto.NewIdentity()
	require.NoError(t, err)

	root := [32]byte{1, 2, 3}
	b := SignBallot(id, "node-a", 7, root)
	require.True(t, b.Verify())
}

func TestBallotVerifyRejectsTamperedRoot(t *testing.T) {
	id, err := crypto.NewIdentity()
	require.NoError(t, err)

	root := [32]byte{1, 2, 3}
	b := SignBallot(id, "node-a", 7, root)
	b.PoolRoot[0] = 9
	require.False(t, b.Verify())
}

func TestTallyRejectsReplay(t *testing.T) {
	id, err := crypto.NewIdentity()
	require.NoError(t, err)

	root := [32]byte{4, 5, 6}
	tally := NewTally(3, root)
	b := SignBallot(id, "node-a", 3, root)

	require.NoError(t, tally.Add(b))
	require.ErrorIs(t, tally.Add(b), ErrBallotReplayed)
	require.Equal(t, 1, tally.Count())
}

func TestTallyRejectsMismatchedEpoch(t *testing.T) {
	id, err := crypto.NewIdentity()
	require.NoError(t, err)

	root := [32]byte{7, 8, 9}
	tally := NewTally(3, root)
	b := SignBallot(id, "node-a", 4, root)

	require.Error(t, tally.Add(b))
}

func TestTallyEndorsedAtEightyPercentThreshold(t *testing.T) {
	root := [32]byte{1}
	tally := NewTally(1, root)

	for i := 0; i < 8; i++ {
		id, err := crypto.NewIdentity()
		require.NoError(t, err)
		b := SignBallot(id, nodeName(i), 1, root)
		require.NoError(t, tally.Add(b))
	}

	require.False(t, tally.Endorsed(11))
	require.True(t, tally.Endorsed(10))
}

func nodeName(i int) string {
	return "node-" + string(rune('a'+i))
}
