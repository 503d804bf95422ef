package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumire/projectmanager/internal/domain"
)

// projectStore mirrors service.ProjectStore so the contract can run against
// every implementation without importing the service package.
type projectStore interface {
	List(ctx context.Context) ([]domain.Project, error)
	Count(ctx context.Context) (int, error)
	FindByID(ctx context.Context, id int64) (*domain.Project, error)
	FindByName(ctx context.Context, name string) (*domain.Project, error)
	Create(ctx context.Context, name string) (*domain.Project, error)
	UpdateName(ctx context.Context, id int64, name string) (*domain.Project, error)
	Delete(ctx context.Context, id int64) (*domain.Project, error)
}

func runStoreContract(t *testing.T, newStore func(t *testing.T) projectStore) {
	t.Run("empty store lists nothing", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		projects, err := store.List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, projects)
		assert.Empty(t, projects)

		n, err := store.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})

	t.Run("create preserves insertion order", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		for _, name := range []string{"Project A", "Project B", "Project C"} {
			_, err := store.Create(ctx, name)
			require.NoError(t, err)
		}

		projects, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, projects, 3)
		assert.Equal(t, "Project A", projects[0].Name)
		assert.Equal(t, "Project B", projects[1].Name)
		assert.Equal(t, "Project C", projects[2].Name)
		assert.Less(t, projects[0].ID, projects[1].ID)
		assert.Less(t, projects[1].ID, projects[2].ID)
	})

	t.Run("ids are not reused after delete", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		first, err := store.Create(ctx, "First")
		require.NoError(t, err)
		second, err := store.Create(ctx, "Second")
		require.NoError(t, err)

		_, err = store.Delete(ctx, second.ID)
		require.NoError(t, err)

		third, err := store.Create(ctx, "Third")
		require.NoError(t, err)
		assert.Greater(t, third.ID, second.ID)
		assert.NotEqual(t, first.ID, third.ID)
	})

	t.Run("find by name ignores case", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		created, err := store.Create(ctx, "Project A")
		require.NoError(t, err)

		found, err := store.FindByName(ctx, "PROJECT a")
		require.NoError(t, err)
		assert.Equal(t, *created, *found)

		_, err = store.FindByName(ctx, "Project Z")
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})

	t.Run("update and delete", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		created, err := store.Create(ctx, "Alpha")
		require.NoError(t, err)

		updated, err := store.UpdateName(ctx, created.ID, "Beta")
		require.NoError(t, err)
		assert.Equal(t, domain.Project{ID: created.ID, Name: "Beta"}, *updated)

		found, err := store.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Beta", found.Name)

		deleted, err := store.Delete(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, *updated, *deleted)

		_, err = store.FindByID(ctx, created.ID)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})

	t.Run("missing ids report not found", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		_, err := store.FindByID(ctx, 999)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
		_, err = store.UpdateName(ctx, 999, "Whatever")
		assert.True(t, errors.Is(err, domain.ErrNotFound))
		_, err = store.Delete(ctx, 999)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})
}
