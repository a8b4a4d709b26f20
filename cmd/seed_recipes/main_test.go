package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pageza/recipe-service/backend/internal/model"
)

func useSQLite(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "recipes.db")

	t.Setenv("ENV", "test")
	t.Setenv("CI", "")
	t.Setenv("SECRETS_DIR", dir)
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", path)
	t.Setenv("REQUEST_TIMEOUT", "")
	return path
}

func countRecipes(t *testing.T, path string) int64 {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	var n int64
	require.NoError(t, db.Model(&model.Recipe{}).Count(&n).Error)
	return n
}

func TestRunSeedsDefaultRecipes(t *testing.T) {
	path := useSQLite(t)
	var out bytes.Buffer

	require.NoError(t, run(context.Background(), nil, &out))

	assert.Contains(t, out.String(), "Seeded 3 of 3 recipes.")
	assert.Equal(t, int64(3), countRecipes(t, path))
}

func TestRunSkipsInvalidRecipesFromFile(t *testing.T) {
	path := useSQLite(t)
	file := filepath.Join(t.TempDir(), "recipes.json")
	require.NoError(t, os.WriteFile(file, []byte(`[
		{"name": "Toast", "desc": "bread", "ingredientIds": [1], "ingredientAmountsInGram": [40]},
		{"name": "Broken", "ingredientIds": [1, 2], "ingredientAmountsInGram": [40]}
	]`), 0o600))
	var out bytes.Buffer

	require.NoError(t, run(context.Background(), []string{"-file", file}, &out))

	assert.Contains(t, out.String(), "Seeded 1 of 2 recipes.")
	assert.Equal(t, int64(1), countRecipes(t, path))
}

func TestRunReturnsErrors(t *testing.T) {
	useSQLite(t)

	t.Run("missing file", func(t *testing.T) {
		err := run(context.Background(), []string{"-file", filepath.Join(t.TempDir(), "nope.json")}, &bytes.Buffer{})
		assert.ErrorContains(t, err, "failed to read")
	})

	t.Run("malformed file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "recipes.json")
		require.NoError(t, os.WriteFile(file, []byte(`{"name":`), 0o600))

		err := run(context.Background(), []string{"-file", file}, &bytes.Buffer{})
		assert.ErrorContains(t, err, "failed to parse")
	})

	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "cassandra")

		err := run(context.Background(), nil, &bytes.Buffer{})
		assert.ErrorContains(t, err, "failed to load configuration")
	})
}
