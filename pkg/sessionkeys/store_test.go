package sessionkeys_test

import (
	"bytes"
	"fmt"
	"sync"
	"testing"

	"github.com/aussiebroadwan/tollgate/pkg/sessionkeys"
	"github.com/stretchr/testify/require"
)

func TestPutGetReplace(t *testing.T) {
	s := sessionkeys.New()

	_, ok := s.Get("alice")
	require.False(t, ok)

	s.Put("alice", bytes.Repeat([]byte{1}, 32))
	s.Put("alice", bytes.Repeat([]byte{2}, 32))

	got, ok := s.Get("alice")
	require.True(t, ok)
	require.Equal(t, bytes.Repeat([]byte{2}, 32), got)
	require.Equal(t, 1, s.Len())
}

func TestStoreCopiesKeys(t *testing.T) {
	s := sessionkeys.New()
	key := bytes.Repeat([]byte{5}, 32)
	s.Put("bob", key)

	key[0] = 0
	got, _ := s.Get("bob")
	require.Equal(t, byte(5), got[0])

	got[1] = 0
	again, _ := s.Get("bob")
	require.Equal(t, byte(5), again[1])
}

func TestDelete(t *testing.T) {
	s := sessionkeys.New()
	require.False(t, s.Delete("nobody"))

	s.Put("carol", []byte("k"))
	require.True(t, s.Delete("carol"))
	require.False(t, s.Delete("carol"))

	_, ok := s.Get("carol")
	require.False(t, ok)
	require.Zero(t, s.Len())

	s.Put("carol", []byte("k2"))
	require.Equal(t, 1, s.Len())
}

func TestConcurrentPutsAreIsolated(t *testing.T) {
	s := sessionkeys.New()

	var wg sync.WaitGroup
	for i := range 64 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := fmt.Sprintf("user-%d", i%8)
			key := bytes.Repeat([]byte{byte(i)}, 32)
			s.Put(id, key)
			got, ok := s.Get(id)
			require.True(t, ok)
			require.Len(t, got, 32)
		}()
	}
	wg.Wait()

	require.Equal(t, 8, s.Len())
	for i := range 8 {
		got, ok := s.Get(fmt.Sprintf("user-%d", i))
		require.True(t, ok)
		// Last completed write wins; every byte comes from the same writer.
		require.Equal(t, bytes.Repeat([]byte{got[0]}, 32), got)
	}
}
