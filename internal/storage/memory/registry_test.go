package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterIsValidRevoke(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := NewRegistry()

	ok, err := r.IsValid(ctx, "tok")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, r.Register(ctx, "tok", 1, time.Time{}))
	require.NoError(t, r.Register(ctx, "tok", 1, time.Time{}))
	require.Equal(t, 1, r.Len())

	ok, err = r.IsValid(ctx, "tok")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, r.Revoke(ctx, "tok"))
	require.NoError(t, r.Revoke(ctx, "tok"))
	require.NoError(t, r.Revoke(ctx, "never-registered"))

	ok, err = r.IsValid(ctx, "tok")
	require.NoError(t, err)
	require.False(t, ok)
	require.Zero(t, r.Len())
}

func TestRegistry_ExpiredEntryIsInvalid(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	r := NewRegistry()
	r.now = func() time.Time { return now }

	require.NoError(t, r.Register(ctx, "tok", 1, now.Add(time.Minute)))

	ok, err := r.IsValid(ctx, "tok")
	require.NoError(t, err)
	require.True(t, ok)

	now = now.Add(time.Minute)
	ok, err = r.IsValid(ctx, "tok")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRegistry_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRegistry()
	require.ErrorIs(t, r.Register(ctx, "tok", 1, time.Time{}), context.Canceled)
	_, err := r.IsValid(ctx, "tok")
	require.ErrorIs(t, err, context.Canceled)
	require.ErrorIs(t, r.Revoke(ctx, "tok"), context.Canceled)
}

// Параллельные регистрация/отзыв разных токенов не теряют операций.
func TestRegistry_ConcurrentRegisterRevoke(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := NewRegistry()

	const n = 200
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tok := fmt.Sprintf("tok-%d", i)
			_ = r.Register(ctx, tok, int64(i), time.Time{})
			if i%2 == 0 {
				_ = r.Revoke(ctx, tok)
			}
		}(i)
	}
	wg.Wait()

	require.Equal(t, n/2, r.Len())
	for i := 0; i < n; i++ {
		ok, err := r.IsValid(ctx, fmt.Sprintf("tok-%d", i))
		require.NoError(t, err)
		require.Equal(t, i%2 == 1, ok)
	}
}
