package orderbook

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTimestampCompareOrdering(t *testing.T) {
	a := Timestamp{PhysicalMs: 100, Logical: 0, NodeID: "node-a"}
	b := Timestamp{PhysicalMs: 200, Logical: 0, NodeID: "node-a"}
	require.Equal(t, -1, a.Compare(b))
	require.Equal(t, 1, b.Compare(a))
	require.Equal(t, 0, a.Compare(a))

	c := Timestamp{PhysicalMs: 100, Logical: 1, NodeID: "node-a"}
	require.Equal(t, -1, a.Compare(c))

	d := Timestamp{PhysicalMs: 100, Logical: 0, NodeID: "node-b"}
	require.Equal(t, -1, a.Compare(d))
	require.True(t, a.HappensBefore(d))
}

func TestClockTickMonotonic(t *testing.T) {
	physical := uint64(1000)
	clock := NewClock("node-a", func() uint64 { return physical })

	first := clock.Tick()
	require.Equal(t, uint64(1000), first.PhysicalMs)
	require.Equal(t, uint32(0), first.Logical)

	second := clock.Tick()
	require.Equal(t, uint32(1), second.Logical)
	require.True(t, first.HappensBefore(second))

	physical = 2000
	third := clock.Tick()
	require.Equal(t, uint64(2000), third.PhysicalMs)
	require.Equal(t, uint32(0), third.Logical)
	require.True(t, second.HappensBefore(third))
}

func TestClockObserveAdvancesPastRemote(t *testing.T) {
	physical := uint64(1000)
	clock := NewClock("node-a", func() uint64 { return physical })
	clock.Tick()

	remote := Timestamp{PhysicalMs: 5000, Logical: 3, NodeID: "node-b"}
	clock.Observe(remote)

	next := clock.Tick()
	require.True(t, remote.HappensBefore(next))
}

func TestClockObserveIgnoresStaleRemote(t *testing.T) {
	physical := uint64(9000)
	clock := NewClock("node-a", func() uint64 { return physical })
	local := clock.Tick()

	stale := Timestamp{PhysicalMs: 100, Logical: 0, NodeID: "node-b"}
	clock.Observe(stale)

	next := clock.Tick()
	require.True(t, local.HappensBefore(next))
}
