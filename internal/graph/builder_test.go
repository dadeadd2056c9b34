package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgesim/forgesim/internal/vcs"
)

func fixtureRepo() vcs.Repository {
	return vcs.Repository{
		Name:          "repo",
		CurrentBranch: vcs.MainBranch,
		Branches: []vcs.Branch{
			{
				Name:    vcs.MainBranch,
				Current: true,
				Commits: []vcs.Commit{
					{Message: "Initial commit", Author: "demo", Date: "October 1, 2025", Branch: vcs.MainBranch, Timestamp: 1000},
					{Message: "Merged branch feature/a into main (1 files added, 0 files updated, 1 commits merged)", Author: vcs.SystemAuthor, Date: "10/1/2025", Branch: vcs.MainBranch, Timestamp: 4000},
				},
			},
			{
				Name:   "feature/a",
				Parent: vcs.MainBranch,
				Commits: []vcs.Commit{
					{Message: "Created branch feature/a from main", Author: "demo", Date: "October 1, 2025", Branch: "feature/a", Timestamp: 2000},
					{Message: "Added file: x.txt", Author: "demo", Date: "October 1, 2025", Branch: "feature/a", Timestamp: 3000},
				},
			},
		},
		Commits: []vcs.Commit{
			{Message: "Initial commit", Author: "demo", Date: "October 1, 2025", Branch: vcs.MainBranch, Timestamp: 1000},
			{Message: "Created branch feature/a from main", Author: "demo", Date: "October 1, 2025", Branch: "feature/a", Timestamp: 2000},
			{Message: "Added file: x.txt", Author: "demo", Date: "October 1, 2025", Branch: "feature/a", Timestamp: 3000},
		},
	}
}

func TestBuild(t *testing.T) {
	g := Build(fixtureRepo())

	require.Len(t, g.Commits, 4, "union of aggregate and branch logs, deduplicated")

	// Sorted by timestamp ascending, rows spaced evenly.
	messages := make([]string, len(g.Commits))
	for i, n := range g.Commits {
		messages[i] = n.Message
		assert.Equal(t, 60+i*45, n.Y)
	}
	assert.Equal(t, []string{
		"Initial commit",
		"Created branch feature/a from main",
		"Added file: x.txt",
		"Merged branch feature/a into main (1 files added, 0 files updated, 1 commits merged)",
	}, messages)

	// Main owns the primary lane; the single feature lane steps left.
	for _, n := range g.Commits {
		switch n.Branch {
		case vcs.MainBranch:
			assert.Equal(t, 80, n.X)
			assert.Equal(t, "#1f6feb", n.Color)
			assert.False(t, n.IsFeature)
		case "feature/a":
			assert.Equal(t, 50, n.X)
			assert.Equal(t, featureColors[0], n.Color)
			assert.True(t, n.IsFeature)
		default:
			t.Fatalf("unexpected branch %q", n.Branch)
		}
	}

	assert.True(t, g.Commits[3].IsMerge)
	assert.False(t, g.Commits[0].IsMerge)
}

func TestBuild_Edges(t *testing.T) {
	g := Build(fixtureRepo())

	byType := map[string][]Edge{}
	for _, e := range g.Connections {
		byType[e.Type] = append(byType[e.Type], e)
	}

	// Initial commit -> merge commit on main; creation -> file commit on the
	// feature lane.
	require.Len(t, byType["branch-flow"], 2)

	// The feature's first commit hangs off the last preceding main commit.
	require.Len(t, byType["branch-split"], 1)
	split := byType["branch-split"][0]
	assert.Equal(t, "commit-0", split.From)
	assert.Equal(t, "commit-1", split.To)

	// The merge fans in from the feature branch's latest commit.
	require.Len(t, byType["merge"], 1)
	merge := byType["merge"][0]
	assert.Equal(t, "commit-2", merge.From)
	assert.Equal(t, "commit-3", merge.To)
	assert.Equal(t, "#f85149", merge.Color)
}

func TestBuild_Deterministic(t *testing.T) {
	repo := fixtureRepo()
	first := Build(repo)
	second := Build(repo)
	assert.Equal(t, first, second)
}

func TestBuild_DoesNotMutateInput(t *testing.T) {
	repo := fixtureRepo()
	before := repo.Clone()
	_ = Build(repo)
	assert.Equal(t, before, repo)
}

func TestBuild_MissingTimestampsSortFirst(t *testing.T) {
	repo := vcs.Repository{
		Name:          "repo",
		CurrentBranch: vcs.MainBranch,
		Branches:      []vcs.Branch{{Name: vcs.MainBranch, Current: true}},
		Commits: []vcs.Commit{
			{Message: "Fresh work", Author: "demo", Date: "October 1, 2025", Branch: vcs.MainBranch, Timestamp: 5000},
			{Message: "Legacy commit A", Author: "demo", Date: "January 1, 2024", Branch: vcs.MainBranch},
			{Message: "Legacy commit B", Author: "demo", Date: "January 2, 2024", Branch: vcs.MainBranch},
		},
	}

	g := Build(repo)
	require.Len(t, g.Commits, 3)

	// Zero timestamps sort as infinitely old, keeping insertion order among
	// themselves.
	assert.Equal(t, "Legacy commit A", g.Commits[0].Message)
	assert.Equal(t, "Legacy commit B", g.Commits[1].Message)
	assert.Equal(t, "Fresh work", g.Commits[2].Message)
}

func TestBuild_UnknownBranchCommitStillRendered(t *testing.T) {
	repo := vcs.Repository{
		Name:          "repo",
		CurrentBranch: vcs.MainBranch,
		Branches:      []vcs.Branch{{Name: vcs.MainBranch, Current: true}},
		Commits: []vcs.Commit{
			{Message: "Somewhere else", Author: "demo", Date: "October 1, 2025", Branch: "ghost", Timestamp: 1000},
		},
	}

	g := Build(repo)
	require.Len(t, g.Commits, 1)
	assert.Equal(t, "ghost", g.Commits[0].Branch)
	assert.True(t, g.Commits[0].IsFeature)
}

func TestBuild_LaneOrderMainFirstThenAlphabetical(t *testing.T) {
	repo := vcs.Repository{
		Name:          "repo",
		CurrentBranch: vcs.MainBranch,
		Branches: []vcs.Branch{
			{Name: "zeta", Commits: []vcs.Commit{{Message: "z", Author: "a", Date: "d1", Branch: "zeta", Timestamp: 1}}},
			{Name: vcs.MainBranch, Current: true, Commits: []vcs.Commit{{Message: "m", Author: "a", Date: "d2", Branch: vcs.MainBranch, Timestamp: 2}}},
			{Name: "alpha", Commits: []vcs.Commit{{Message: "al", Author: "a", Date: "d3", Branch: "alpha", Timestamp: 3}}},
		},
	}

	g := Build(repo)
	xByBranch := map[string]int{}
	for _, n := range g.Commits {
		xByBranch[n.Branch] = n.X
	}

	assert.Equal(t, 80, xByBranch[vcs.MainBranch])
	assert.Equal(t, 50, xByBranch["alpha"])
	assert.Equal(t, 20, xByBranch["zeta"])
}

func TestBuild_Empty(t *testing.T) {
	g := Build(vcs.Repository{Name: "empty"})
	assert.Empty(t, g.Commits)
	assert.Empty(t, g.Connections)
}
