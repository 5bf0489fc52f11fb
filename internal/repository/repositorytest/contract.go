// Package repositorytest holds the behavior every repository.Repository must show.
package repositorytest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graphmap/internal/domain"
	"graphmap/internal/mapper"
	"graphmap/internal/record"
	"graphmap/internal/repository"
)

// Identifiers from the reference scenario
const (
	ParentID    = "8A0EBECB-C231-4C7C-A5CC-14B599687F3A"
	FirstChild  = "D4506C2B-C837-4BF3-BAB6-D131EC8E296F"
	SecondChild = "C87E84DA-D9BD-419C-851E-AB8693D357D9"
	UnknownID   = "0F4A3B1E-5D2C-4E8A-9B7F-6C1D2E3F4A5B"
)

// Factory returns an empty repository. Cleanup is the factory's job.
type Factory func(t *testing.T) repository.Repository

// Run executes the contract suite against repositories built by newRepo
func Run(t *testing.T, newRepo Factory) {
	t.Helper()

	t.Run("round trip preserves children", func(t *testing.T) { testRoundTrip(t, newRepo) })
	t.Run("get unknown id returns nil", func(t *testing.T) { testGetUnknown(t, newRepo) })
	t.Run("add duplicate id fails", func(t *testing.T) { testAddDuplicate(t, newRepo) })
	t.Run("update child value", func(t *testing.T) { testUpdateChild(t, newRepo) })
	t.Run("partial update", func(t *testing.T) { testPartialUpdate(t, newRepo) })
	t.Run("update unknown parent is a no-op", func(t *testing.T) { testUpdateUnknownParent(t, newRepo) })
	t.Run("update does not insert children", func(t *testing.T) { testUpdateDoesNotInsert(t, newRepo) })
	t.Run("update ignores parent value", func(t *testing.T) { testUpdateIgnoresParentValue(t, newRepo) })
	t.Run("read result has stable identity", func(t *testing.T) { testReadIdentity(t, newRepo) })
	t.Run("reads are independent copies", func(t *testing.T) { testReadsIndependent(t, newRepo) })
	t.Run("add accepts lazy children", func(t *testing.T) { testAddLazy(t, newRepo) })
	t.Run("nil parent is rejected", func(t *testing.T) { testNilParent(t, newRepo) })
}

func testRoundTrip(t *testing.T, newRepo Factory) {
	cases := []struct {
		name     string
		children []domain.Child
	}{
		{"no children", nil},
		{"one child", []domain.Child{{ID: FirstChild, Value: "new"}}},
		{"two children", []domain.Child{
			{ID: FirstChild, Value: "new"},
			{ID: SecondChild, Value: "new"},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			repo := newRepo(t)

			require.NoError(t, repo.AddParent(ctx, domain.NewParent(ParentID, "new", tc.children...)))

			result, err := repo.GetParent(ctx, ParentID)
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, ParentID, result.ID)
			assert.Equal(t, "new", result.Value)
			require.NotNil(t, result.Children)
			require.Equal(t, len(tc.children), result.Children.Len())
			for i, want := range tc.children {
				got := result.Children.At(i)
				require.NotNil(t, got)
				assert.Equal(t, want.ID, got.ID)
				assert.Equal(t, want.Value, got.Value)
			}
		})
	}
}

func testGetUnknown(t *testing.T, newRepo Factory) {
	repo := newRepo(t)

	result, err := repo.GetParent(context.Background(), UnknownID)
	require.NoError(t, err)
	assert.Nil(t, result)
}

func testAddDuplicate(t *testing.T, newRepo Factory) {
	ctx := context.Background()
	repo := newRepo(t)

	require.NoError(t, repo.AddParent(ctx, domain.NewParent(ParentID, "first")))
	err := repo.AddParent(ctx, domain.NewParent(ParentID, "second"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrParentExists), "got %v", err)

	result, err := repo.GetParent(ctx, ParentID)
	require.NoError(t, err)
	assert.Equal(t, "first", result.Value)
}

func testUpdateChild(t *testing.T, newRepo Factory) {
	ctx := context.Background()
	repo := newRepo(t)

	require.NoError(t, repo.AddParent(ctx, domain.NewParent(ParentID, "new",
		domain.Child{ID: FirstChild, Value: "new"},
	)))

	result, err := repo.GetParent(ctx, ParentID)
	require.NoError(t, err)
	require.NotNil(t, result)
	require.Equal(t, 1, result.Children.Len())

	child := result.Children.Find(func(*domain.Child) bool { return true })
	require.NotNil(t, child)
	child.Value = "updated"

	require.NoError(t, repo.UpdateParent(ctx, result))

	final, err := repo.GetParent(ctx, ParentID)
	require.NoError(t, err)
	require.NotNil(t, final)
	require.Equal(t, 1, final.Children.Len())
	assert.Equal(t, FirstChild, final.Children.At(0).ID)
	assert.Equal(t, "updated", final.Children.At(0).Value)
}

func testPartialUpdate(t *testing.T, newRepo Factory) {
	ctx := context.Background()
	repo := newRepo(t)

	require.NoError(t, repo.AddParent(ctx, domain.NewParent(ParentID, "new",
		domain.Child{ID: "A", Value: "a0"},
		domain.Child{ID: "B", Value: "b0"},
	)))

	payload := domain.NewParent(ParentID, "new",
		domain.Child{ID: "A", Value: "a1"},
		domain.Child{ID: "C", Value: "c1"},
	)
	require.NoError(t, repo.UpdateParent(ctx, payload))

	final, err := repo.GetParent(ctx, ParentID)
	require.NoError(t, err)
	require.NotNil(t, final)
	require.Equal(t, 2, final.Children.Len())
	assert.Equal(t, "a1", final.Child("A").Value)
	assert.Equal(t, "b0", final.Child("B").Value)
	assert.Nil(t, final.Child("C"))
	assert.Equal(t, "A", final.Children.At(0).ID)
	assert.Equal(t, "B", final.Children.At(1).ID)
}

func testUpdateUnknownParent(t *testing.T, newRepo Factory) {
	ctx := context.Background()
	repo := newRepo(t)

	err := repo.UpdateParent(ctx, domain.NewParent(UnknownID, "v", domain.Child{ID: "A", Value: "x"}))
	require.NoError(t, err)

	result, err := repo.GetParent(ctx, UnknownID)
	require.NoError(t, err)
	assert.Nil(t, result)
}

func testUpdateDoesNotInsert(t *testing.T, newRepo Factory) {
	ctx := context.Background()
	repo := newRepo(t)

	require.NoError(t, repo.AddParent(ctx, domain.NewParent(ParentID, "new")))

	result, err := repo.GetParent(ctx, ParentID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 0, result.Children.Len())

	result.SetChildren(&domain.Child{ID: FirstChild, Value: "new"})
	require.NoError(t, repo.UpdateParent(ctx, result))

	final, err := repo.GetParent(ctx, ParentID)
	require.NoError(t, err)
	require.NotNil(t, final)
	assert.Equal(t, 0, final.Children.Len())
}

func testUpdateIgnoresParentValue(t *testing.T, newRepo Factory) {
	ctx := context.Background()
	repo := newRepo(t)

	require.NoError(t, repo.AddParent(ctx, domain.NewParent(ParentID, "new",
		domain.Child{ID: FirstChild, Value: "new"},
	)))

	require.NoError(t, repo.UpdateParent(ctx, domain.NewParent(ParentID, "changed",
		domain.Child{ID: FirstChild, Value: "updated"},
	)))

	final, err := repo.GetParent(ctx, ParentID)
	require.NoError(t, err)
	assert.Equal(t, "new", final.Value)
	assert.Equal(t, "updated", final.Child(FirstChild).Value)
}

func testReadIdentity(t *testing.T, newRepo Factory) {
	ctx := context.Background()
	repo := newRepo(t)

	require.NoError(t, repo.AddParent(ctx, domain.NewParent(ParentID, "new",
		domain.Child{ID: FirstChild, Value: "new"},
		domain.Child{ID: SecondChild, Value: "new"},
	)))

	result, err := repo.GetParent(ctx, ParentID)
	require.NoError(t, err)
	require.NotNil(t, result)

	first := result.Children.FindByID(SecondChild)
	second := result.Children.FindByID(SecondChild)
	assert.Same(t, first, second)

	first.Value = "updated"
	assert.Equal(t, "updated", result.Children.At(1).Value)
}

func testReadsIndependent(t *testing.T, newRepo Factory) {
	ctx := context.Background()
	repo := newRepo(t)

	require.NoError(t, repo.AddParent(ctx, domain.NewParent(ParentID, "new",
		domain.Child{ID: FirstChild, Value: "new"},
	)))

	a, err := repo.GetParent(ctx, ParentID)
	require.NoError(t, err)
	b, err := repo.GetParent(ctx, ParentID)
	require.NoError(t, err)

	assert.NotSame(t, a.Children.At(0), b.Children.At(0))
	a.Children.At(0).Value = "local edit"
	assert.Equal(t, "new", b.Children.At(0).Value)

	c, err := repo.GetParent(ctx, ParentID)
	require.NoError(t, err)
	assert.Equal(t, "new", c.Children.At(0).Value, "unsaved edits must not reach storage")
}

func testAddLazy(t *testing.T, newRepo Factory) {
	ctx := context.Background()
	repo := newRepo(t)

	src := &record.Parent{
		ID:    ParentID,
		Value: "new",
		Children: []record.Child{
			{ID: FirstChild, Value: "new"},
			{ID: SecondChild, Value: "new"},
		},
	}
	require.NoError(t, repo.AddParent(ctx, mapper.ToDomainLazy(src)))

	result, err := repo.GetParent(ctx, ParentID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 2, result.Children.Len())
	assert.Same(t, result.Children.At(0), result.Children.FindByID(FirstChild))
}

func testNilParent(t *testing.T, newRepo Factory) {
	ctx := context.Background()
	repo := newRepo(t)

	assert.Error(t, repo.AddParent(ctx, nil))
	assert.Error(t, repo.UpdateParent(ctx, nil))
}
