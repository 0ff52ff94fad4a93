package cache

import (
	"context"
	"sync"
	"testing"

	"github.com/respawnadega/storefront/internal/domain/cart"
	"github.com/respawnadega/storefront/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryCartStorage(t *testing.T) {
	ctx := context.Background()
	storage := NewInMemoryCartStorage()

	t.Run("missing record", func(t *testing.T) {
		_, err := storage.Read(ctx, "s1", cart.StorageKeyItems)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("stores a copy", func(t *testing.T) {
		data := []byte(`{"version":1}`)
		require.NoError(t, storage.Write(ctx, "s1", cart.StorageKeyItems, data))
		data[0] = 'X'

		got, err := storage.Read(ctx, "s1", cart.StorageKeyItems)
		require.NoError(t, err)
		assert.Equal(t, `{"version":1}`, string(got))

		got[0] = 'Y'
		again, _ := storage.Read(ctx, "s1", cart.StorageKeyItems)
		assert.Equal(t, byte('{'), again[0])
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, storage.Delete(ctx, "s1", cart.StorageKeyItems))
		require.NoError(t, storage.Delete(ctx, "s1", cart.StorageKeyItems))
		assert.Zero(t, storage.Len())
	})
}

func TestInMemoryCartStorage_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	storage := NewInMemoryCartStorage()

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			session := string(rune('a' + i))
			_ = storage.Write(ctx, session, cart.StorageKeyItems, []byte(session))
			_, _ = storage.Read(ctx, session, cart.StorageKeyItems)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 20, storage.Len())
}
