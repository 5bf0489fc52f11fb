package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graphmap/internal/domain"
	"graphmap/internal/repository"
	"graphmap/internal/repository/repositorytest"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo := New()
	t.Cleanup(func() {
		repo.Close()
	})
	return repo
}

func TestRepositoryContract(t *testing.T) {
	repositorytest.Run(t, func(t *testing.T) repository.Repository {
		return newTestRepo(t)
	})
}

func TestAddParentDoesNotAliasCaller(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	parent := domain.NewParent("p", "v", domain.Child{ID: "a", Value: "1"})
	require.NoError(t, repo.AddParent(ctx, parent))

	parent.Child("a").Value = "changed after add"

	got, err := repo.GetParent(ctx, "p")
	require.NoError(t, err)
	assert.Equal(t, "1", got.Child("a").Value)
}

func TestCanceledContext(t *testing.T) {
	repo := newTestRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, repo.AddParent(ctx, domain.NewParent("p", "v")), context.Canceled)
	assert.ErrorIs(t, repo.UpdateParent(ctx, domain.NewParent("p", "v")), context.Canceled)
	_, err := repo.GetParent(ctx, "p")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, repo.size())
}

func TestCloseDropsData(t *testing.T) {
	ctx := context.Background()
	repo := New()

	require.NoError(t, repo.AddParent(ctx, domain.NewParent("p", "v")))
	require.Equal(t, 1, repo.size())

	require.NoError(t, repo.Close())
	assert.Equal(t, 0, repo.size())
}
