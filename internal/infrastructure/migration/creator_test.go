package migration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add cart records", "add_cart_records"},
		{"Add-Cart-Records", "add_cart_records"},
		{"ADD_CART_RECORDS", "add_cart_records"},
		{"add__cart__records", "add_cart_records"},
		{"Purge Index 2", "purge_index_2"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"trailing_", "trailing"},
		{"_leading", "leading"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	first, err := CreateMigration(dir, "create cart records", "Cart table")
	require.NoError(t, err)
	assert.Equal(t, "000001", first.Version)
	assert.Equal(t, filepath.Join(dir, "000001_create_cart_records.up.sql"), first.UpPath)
	assert.Equal(t, filepath.Join(dir, "000001_create_cart_records.down.sql"), first.DownPath)

	up, err := os.ReadFile(first.UpPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(up), "-- Migration: create cart records"))
	assert.Contains(t, string(up), "-- Description: Cart table")

	second, err := CreateMigration(dir, "add index", "")
	require.NoError(t, err)
	assert.Equal(t, "000002", second.Version)

	names, err := ListMigrations(os.DirFS(dir), ".")
	require.NoError(t, err)
	assert.Equal(t, []string{"000001_create_cart_records", "000002_add_index"}, names)
}

func TestCreateMigration_RejectsEmptyName(t *testing.T) {
	_, err := CreateMigration(t.TempDir(), "!!!", "")
	assert.Error(t, err)
}

func TestListMigrations(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		names, err := ListMigrations(os.DirFS(t.TempDir()), "nope")
		require.NoError(t, err)
		assert.Empty(t, names)
	})

	t.Run("orders by numeric version", func(t *testing.T) {
		dir := t.TempDir()
		for _, f := range []string{"000010_c.up.sql", "000002_b.up.sql", "000002_b.down.sql", "000001_a.up.sql", "notes.txt"} {
			require.NoError(t, os.WriteFile(filepath.Join(dir, f), nil, 0o644))
		}
		names, err := ListMigrations(os.DirFS(dir), ".")
		require.NoError(t, err)
		assert.Equal(t, []string{"000001_a", "000002_b", "000010_c"}, names)
	})
}

func TestEmbeddedMigrations(t *testing.T) {
	names, err := ListMigrations(Files, filesDir)
	require.NoError(t, err)
	require.Equal(t, []string{"000001_create_cart_records", "000002_add_cart_records_key_check"}, names)

	for _, name := range names {
		down, err := Files.ReadFile(filesDir + "/" + name + ".down.sql")
		require.NoError(t, err, "missing rollback for %s", name)
		assert.NotEmpty(t, down)
	}

	up, err := Files.ReadFile(filesDir + "/000001_create_cart_records.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(up), "PRIMARY KEY (session_id, record_key)")
}
