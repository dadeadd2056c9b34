package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/forgesim/forgesim/internal/vcs"
)

func newTestStore(t *testing.T, cfg Config) *Store {
	t.Helper()

	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewStore(db, cfg, zaptest.NewLogger(t))
}

func testRepositories() []vcs.Repository {
	return []vcs.Repository{{
		Name:          "repo",
		Description:   "test",
		CreatedDate:   "10/1/2025",
		CurrentBranch: vcs.MainBranch,
		Branches: []vcs.Branch{{
			Name:    vcs.MainBranch,
			Current: true,
			Files:   []vcs.File{{Name: "a.txt", Content: "hello", Info: "hello", Date: "just now"}},
			Commits: []vcs.Commit{{Message: "Initial commit", Author: "demo", Date: "October 1, 2025", Branch: vcs.MainBranch, Timestamp: 1000}},
		}},
		Commits: []vcs.Commit{{Message: "Initial commit", Author: "demo", Date: "October 1, 2025", Branch: vcs.MainBranch, Timestamp: 1000}},
	}}
}

func TestSaveLoad(t *testing.T) {
	store := newTestStore(t, Config{})
	ctx := context.Background()

	_, found, err := store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Save(ctx, testRepositories()))

	loaded, found, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, loaded, 1)
	assert.Equal(t, "repo", loaded[0].Name)

	main := loaded[0].Branch(vcs.MainBranch)
	require.NotNil(t, main)
	require.Len(t, main.Files, 1)
	assert.Equal(t, "hello", main.Files[0].Content)
	require.Len(t, main.Commits, 1)
}

func TestSaveOverwrites(t *testing.T) {
	store := newTestStore(t, Config{})
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testRepositories()))
	require.NoError(t, store.Save(ctx, nil))

	loaded, found, err := store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Empty(t, loaded)
}

func TestHydrate_SeedsWhenEmpty(t *testing.T) {
	store := newTestStore(t, Config{})
	ctx := context.Background()

	repositories, err := store.Hydrate(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, repositories, "embedded seed snapshot must provide demo data")

	for _, repo := range repositories {
		assert.NotEmpty(t, repo.Name)
		assert.NotNil(t, repo.Branch(vcs.MainBranch), "repository %s", repo.Name)
	}

	// Seed data is written through: the next load hits the blob.
	_, found, err := store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestHydrate_PrefersPersistedBlob(t *testing.T) {
	store := newTestStore(t, Config{})
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testRepositories()))

	repositories, err := store.Hydrate(ctx)
	require.NoError(t, err)
	require.Len(t, repositories, 1)
	assert.Equal(t, "repo", repositories[0].Name)
}

func TestHydrate_SeedFileOverride(t *testing.T) {
	seedPath := filepath.Join(t.TempDir(), "seed.json")
	seed := []byte(`{"repositories": [{"name": "from-file", "currentBranch": "main", "branches": [{"name": "main", "current": true}]}]}`)
	require.NoError(t, os.WriteFile(seedPath, seed, 0o644))

	store := newTestStore(t, Config{SeedFile: seedPath})

	repositories, err := store.Hydrate(context.Background())
	require.NoError(t, err)
	require.Len(t, repositories, 1)
	assert.Equal(t, "from-file", repositories[0].Name)
}

func TestHydrate_SeedFileMissing(t *testing.T) {
	store := newTestStore(t, Config{SeedFile: "/nonexistent/seed.json"})

	_, err := store.Hydrate(context.Background())
	assert.Error(t, err)
}
