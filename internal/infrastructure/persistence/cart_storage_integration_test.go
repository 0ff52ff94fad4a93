//go:build integration

package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/respawnadega/storefront/internal/domain/cart"
	"github.com/respawnadega/storefront/internal/domain/shared"
	"github.com/respawnadega/storefront/internal/infrastructure/migration"
	"github.com/respawnadega/storefront/internal/infrastructure/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newPostgres starts a disposable postgres and applies the embedded
// migrations to it
func newPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("adega_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("adega"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	m, err := migration.New(sqlDB, nil)
	require.NoError(t, err)
	require.NoError(t, m.Up())

	version, dirty, err := m.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(2), version)
	assert.False(t, dirty)

	return db
}

func TestGormCartStorage_Postgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx := context.Background()
	storage := persistence.NewGormCartStorage(newPostgres(t))

	t.Run("write then read", func(t *testing.T) {
		require.NoError(t, storage.Write(ctx, "sess-1", cart.StorageKeyItems, []byte(`{"version":1}`)))
		require.NoError(t, storage.Write(ctx, "sess-1", cart.StorageKeyItems, []byte(`{"version":2}`)))

		data, err := storage.Read(ctx, "sess-1", cart.StorageKeyItems)
		require.NoError(t, err)
		assert.JSONEq(t, `{"version":2}`, string(data))
	})

	t.Run("absent record", func(t *testing.T) {
		_, err := storage.Read(ctx, "sess-1", cart.StorageKeyCustomer)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("unknown record key is refused", func(t *testing.T) {
		err := storage.Write(ctx, "sess-1", "something-else", []byte(`{}`))
		assert.Error(t, err)
	})

	t.Run("purge idle records", func(t *testing.T) {
		require.NoError(t, storage.Write(ctx, "sess-2", cart.StorageKeyCustomer, []byte(`{}`)))

		removed, err := storage.PurgeIdle(ctx, time.Now().Add(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, int64(2), removed)

		_, err = storage.Read(ctx, "sess-2", cart.StorageKeyCustomer)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
