//go:build integration

package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/sumire/projectmanager/internal/domain"
)

var (
	sharedDB     *sqlx.DB
	sharedDBOnce sync.Once
	sharedDBErr  error
)

// getTestDB returns a migrated database backed by a shared PostgreSQL
// container. The container is started once per test binary.
func getTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode (requires Docker)")
	}

	sharedDBOnce.Do(func() {
		sharedDB, sharedDBErr = setupTestDB()
	})
	if sharedDBErr != nil {
		t.Fatalf("Failed to setup test database: %v", sharedDBErr)
	}

	_, err := sharedDB.Exec(`TRUNCATE projects RESTART IDENTITY`)
	require.NoError(t, err)

	return sharedDB
}

func setupTestDB() (*sqlx.DB, error) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "projects",
			"POSTGRES_USER":     "projects",
			"POSTGRES_PASSWORD": "test_password",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start test container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}

	url := fmt.Sprintf("postgres://projects:test_password@%s:%s/projects?sslmode=disable", host, port.Port())
	db, err := Connect(ctx, url)
	if err != nil {
		return nil, err
	}

	if err := Migrate(db, zap.NewNop()); err != nil {
		return nil, err
	}
	return db, nil
}

func TestPostgresProjectRepository(t *testing.T) {
	runStoreContract(t, func(t *testing.T) projectStore {
		return NewPostgresProjectRepository(getTestDB(t))
	})
}

func TestPostgresProjectRepository_UniqueNameIndex(t *testing.T) {
	repo := NewPostgresProjectRepository(getTestDB(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, "Project A")
	require.NoError(t, err)

	_, err = repo.Create(ctx, "project a")
	assert.True(t, errors.Is(err, domain.ErrDuplicateName))

	other, err := repo.Create(ctx, "Project B")
	require.NoError(t, err)
	_, err = repo.UpdateName(ctx, other.ID, "PROJECT A")
	assert.True(t, errors.Is(err, domain.ErrDuplicateName))
}

func TestMigrate_Idempotent(t *testing.T) {
	db := getTestDB(t)
	require.NoError(t, Migrate(db, zap.NewNop()))
}
