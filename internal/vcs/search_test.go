package vcs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchRepositories(t *testing.T) {
	svc := newTestService(t)
	for _, name := range []string{"zeta-tools", "alpha-lib", "Alpine-app"} {
		_, err := svc.CreateRepository(name, "", false)
		require.NoError(t, err)
	}

	// Case-insensitive substring match, results sorted ascending.
	assert.Equal(t, []string{"Alpine-app", "alpha-lib"}, svc.SearchRepositories("ALP"))
	assert.Equal(t, []string{"zeta-tools"}, svc.SearchRepositories("zeta"))
	assert.Empty(t, svc.SearchRepositories("nothing"))

	// An empty term matches everything.
	assert.Equal(t, []string{"Alpine-app", "alpha-lib", "zeta-tools"}, svc.SearchRepositories(""))
}

func TestSearchFiles(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.CreateRepository("repo", "", false)
	require.NoError(t, err)
	_, err = svc.CreateFile("repo", "docs", "Guide.md", "Sorting algorithms explained", "")
	require.NoError(t, err)
	_, err = svc.CreateFile("repo", "", "main.go", "package main", "")
	require.NoError(t, err)

	byName, err := svc.SearchFiles("repo", "guide", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"docs/Guide.md"}, byName)

	byContent, err := svc.SearchFiles("repo", "SORTING", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"docs/Guide.md"}, byContent)

	// Content search does not match names, and vice versa.
	none, err := svc.SearchFiles("repo", "guide", true)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = svc.SearchFiles("missing", "x", false)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearchFiles_CurrentBranchOnly(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.CreateRepository("repo", "", false)
	require.NoError(t, err)
	_, err = svc.CreateFile("repo", "", "shared.txt", "x", "")
	require.NoError(t, err)
	_, err = svc.CreateBranch("repo", "feature/a", MainBranch)
	require.NoError(t, err)
	require.NoError(t, svc.SwitchBranch("repo", "feature/a"))
	_, err = svc.CreateFile("repo", "", "feature-only.txt", "y", "")
	require.NoError(t, err)
	require.NoError(t, svc.SwitchBranch("repo", MainBranch))

	results, err := svc.SearchFiles("repo", "txt", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"shared.txt"}, results, "search sees only the active branch")
}
