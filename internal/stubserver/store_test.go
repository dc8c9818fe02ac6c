package stubserver

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func seedAccount(t *testing.T, s *Store) Account {
	t.Helper()
	acc, err := s.CreateAccount("Alice", 30, "alice@example.com", "hash", "USER")
	require.NoError(t, err)
	return acc
}

func TestStoreAccessorsReturnCopies(t *testing.T) {
	s := NewStore()
	acc := seedAccount(t, s)

	// Mutating a returned value must not leak into stored state.
	got, err := s.Get(acc.ID)
	require.NoError(t, err)
	got.Quota = -99

	fresh, err := s.Get(acc.ID)
	require.NoError(t, err)
	require.Equal(t, defaultQuota, fresh.Quota)

	msg, _, err := s.AddMessage(acc.ID, "hello")
	require.NoError(t, err)
	msg.Status = "accepted"

	stored := s.AllMessages()
	require.Len(t, stored, 1)
	require.Equal(t, "pending", stored[0].Status)
}

// Reads through every accessor race against quota debits; the detector
// stays quiet only if the accessors snapshot under the lock instead of
// handing out live pointers.
func TestStoreConcurrentReadsAndDebits(t *testing.T) {
	s := NewStore()
	acc := seedAccount(t, s)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_, _, _ = s.AddMessage(acc.ID, "msg "+strconv.Itoa(i))
		}(i)
		go func() {
			defer wg.Done()
			if got, err := s.Get(acc.ID); err == nil {
				_ = got.Quota + got.UsedQuota
			}
			for _, a := range s.Accounts() {
				_ = a.Quota
			}
			for _, m := range s.AllMessages() {
				_ = m.Status
			}
			_ = s.MessagesFor(acc.ID)
			if found, err := s.FindByEmail("alice@example.com"); err == nil {
				_ = found.UsedQuota
			}
		}()
	}
	wg.Wait()

	// Exactly the first ten debits can succeed against the default quota.
	final, err := s.Get(acc.ID)
	require.NoError(t, err)
	require.Equal(t, 0, final.Quota)
	require.Equal(t, defaultQuota, final.UsedQuota)
	require.Len(t, s.MessagesFor(acc.ID), defaultQuota)
}
