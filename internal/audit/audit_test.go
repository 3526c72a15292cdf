package audit

import (
	"bytes"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/driftmesh/driftmesh/internal/storage"
)

type fakeStore struct {
	data map[string][]byte
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: make(map[string][]byte)}
}

func (f *fakeStore) Put(cf string, key, value []byte) error {
	f.data[cf+"|"+string(key)] = append([]byte(nil), value...)
	return nil
}

func (f *fakeStore) IterPrefix(cf string, prefix []byte) ([]storage.KVEntry, error) {
	var entries []storage.KVEntry
	cfPrefix := cf + "|"
	for k, v := range f.data {
		if !bytes.HasPrefix([]byte(k), []byte(cfPrefix)) {
			continue
		}
		key := []byte(k[len(cfPrefix):])
		if !bytes.HasPrefix(key, prefix) {
			continue
		}
		entries = append(entries, storage.KVEntry{Key: key, Value: v})
	}
	sort.Slice(entries, func(i, j int) bool { return bytes.Compare(entries[i].Key, entries[j].Key) < 0 })
	return entries, nil
}

func TestLogRecordAndSince(t *testing.T) {
	store := newFakeStore()
	log := New(store)

	var tick int64
	log.now = func() int64 { tick++; return tick }

	require.NoError(t, log.Record(EventOrderSubmitted, map[string]string{"order_id": "o1"}))
	require.NoError(t, log.Record(EventTradeMatched, map[string]string{"trade_id": "t1"}))

	all, err := log.Since(0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, EventOrderSubmitted, all[0].Type)
	require.Equal(t, EventTradeMatched, all[1].Type)

	onlySecond, err := log.Since(2)
	require.NoError(t, err)
	require.Len(t, onlySecond, 1)
	require.Equal(t, EventTradeMatched, onlySecond[0].Type)
}
