//go:build integration

package repository

import (
	"context"
	"database/sql"
	"os"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ouahybaymenidriss-dotcom/systeme-gestion-hospitaliere/internal/config"
	"github.com/ouahybaymenidriss-dotcom/systeme-gestion-hospitaliere/internal/database"
	"github.com/ouahybaymenidriss-dotcom/systeme-gestion-hospitaliere/internal/domain"
)

func getTestDB(t *testing.T) *sql.DB {
	cfg := &config.DatabaseConfig{
		Host:     envOr("TEST_DB_HOST", "localhost"),
		Port:     envOrInt("TEST_DB_PORT", 5432),
		User:     envOr("TEST_DB_USER", "postgres"),
		Password: envOr("TEST_DB_PASSWORD", "postgres"),
		Database: envOr("TEST_DB_NAME", "hospital_test"),
		SSLMode:  envOr("TEST_DB_SSLMODE", "disable"),
	}

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		t.Skipf("Skipping integration test: cannot connect to database: %v", err)
		return nil
	}
	require.NoError(t, database.EnsureSchema(db))
	return db
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func TestPostgresPatients_SaveAndFind(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()

	repo := NewPostgresPatientsRepository(db)
	ctx := context.Background()

	stored, err := repo.Save(ctx, domain.Patient{
		FirstName:   "Alice",
		LastName:    "Martin",
		DateOfBirth: "1990-04-12",
		Contact:     "alice@example.com",
	})
	require.NoError(t, err)
	assert.Greater(t, stored.ID, int64(0))

	found, err := repo.FindByID(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", found.FirstName)
	assert.Equal(t, "1990-04-12", found.DateOfBirth)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, all)

	_, err = repo.FindByID(ctx, -1)
	assert.ErrorIs(t, err, ErrNotFound)
}
