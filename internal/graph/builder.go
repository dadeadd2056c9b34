// Package graph derives a renderable commit DAG from a repository's live
// commit data. Build is a pure projection: it never mutates its input and
// produces identical output for identical input.
package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/forgesim/forgesim/internal/vcs"
)

// Layout constants of the vertical graph: main branch lane on the right,
// feature lanes stepping left, time flowing top to bottom.
const (
	mainLaneX     = 80
	laneStepX     = 30
	firstRowY     = 60
	rowSpacingY   = 45
	mainColor     = "#1f6feb"
	mergeEdgeCol  = "#f85149"
	fallbackColor = "#56d364"
)

var featureColors = []string{
	"#56d364", "#f85149", "#d2a8ff", "#ffa657", "#ff7b72",
	"#79c0ff", "#a5f3fc", "#fde047", "#fb7185", "#c084fc",
}

// Node is one commit placed on the graph.
type Node struct {
	ID        string `json:"id"`
	Message   string `json:"message"`
	Author    string `json:"author"`
	Date      string `json:"date"`
	Branch    string `json:"branch"`
	Color     string `json:"color"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	IsMerge   bool   `json:"isMerge"`
	IsFeature bool   `json:"isFeature"`
}

// Edge connects two nodes by ID. Type is "branch-flow", "branch-split" or
// "merge".
type Edge struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Type  string `json:"type"`
	Color string `json:"color"`
}

// Graph is the full projection handed to the rendering layer.
type Graph struct {
	Commits     []Node `json:"commits"`
	Connections []Edge `json:"connections"`
}

type commitKey struct {
	message, author, date, branch string
}

// Build projects the repository's commits into a graph.
func Build(repo vcs.Repository) Graph {
	commits := collect(repo)

	// Missing timestamps sort as epoch 0; the stable sort keeps their
	// insertion order, so legacy commits render oldest-first.
	sort.SliceStable(commits, func(i, j int) bool {
		return commits[i].Timestamp < commits[j].Timestamp
	})

	lanes, colors := assignLanes(commits, repo.Branches)

	nodes := make([]Node, len(commits))
	for i, c := range commits {
		branch := c.Branch
		if branch == "" {
			branch = vcs.MainBranch
		}
		color, ok := colors[branch]
		if !ok {
			color = fallbackColor
		}
		nodes[i] = Node{
			ID:        fmt.Sprintf("commit-%d", i),
			Message:   c.Message,
			Author:    c.Author,
			Date:      c.Date,
			Branch:    branch,
			Color:     color,
			X:         lanes[branch],
			Y:         firstRowY + i*rowSpacingY,
			IsMerge:   strings.Contains(strings.ToLower(c.Message), "merge"),
			IsFeature: branch != vcs.MainBranch && branch != "master",
		}
	}

	return Graph{
		Commits:     nodes,
		Connections: connect(nodes),
	}
}

// collect unions the aggregate log with every branch's log, deduplicating by
// the (message, author, date, branch) tuple. Branch-scoped commits missing a
// branch attribution inherit their owning branch's name.
func collect(repo vcs.Repository) []vcs.Commit {
	var commits []vcs.Commit
	seen := map[commitKey]struct{}{}

	add := func(c vcs.Commit) {
		key := commitKey{c.Message, c.Author, c.Date, c.Branch}
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		commits = append(commits, c.Clone())
	}

	for _, c := range repo.Commits {
		add(c)
	}
	for _, branch := range repo.Branches {
		for _, c := range branch.Commits {
			if c.Branch == "" {
				c.Branch = branch.Name
			}
			add(c)
		}
	}
	return commits
}

// assignLanes keys x coordinates and colors by branch name: main always owns
// the primary lane, every other branch gets a lane and a palette color in
// stable order (main first, then alphabetical).
func assignLanes(commits []vcs.Commit, branches []vcs.Branch) (map[string]int, map[string]string) {
	fromCommits := lo.Map(commits, func(c vcs.Commit, _ int) string {
		if c.Branch == "" {
			return vcs.MainBranch
		}
		return c.Branch
	})
	fromRepo := lo.Map(branches, func(b vcs.Branch, _ int) string { return b.Name })
	names := lo.Uniq(append(fromCommits, fromRepo...))

	sort.SliceStable(names, func(i, j int) bool {
		if names[i] == vcs.MainBranch || names[i] == "master" {
			return true
		}
		if names[j] == vcs.MainBranch || names[j] == "master" {
			return false
		}
		return names[i] < names[j]
	})

	lanes := make(map[string]int, len(names))
	colors := map[string]string{
		vcs.MainBranch: mainColor,
		"master":       mainColor,
	}

	colorIndex := 0
	for i, name := range names {
		if name == vcs.MainBranch {
			lanes[name] = mainLaneX
		} else {
			lanes[name] = mainLaneX - i*laneStepX
		}
		if _, has := colors[name]; !has {
			colors[name] = featureColors[colorIndex%len(featureColors)]
			colorIndex++
		}
	}
	return lanes, colors
}

// connect derives the three edge kinds from the sorted node sequence.
func connect(nodes []Node) []Edge {
	edges := []Edge{}

	lastOnBranch := func(branch string, before int) (Node, bool) {
		for i := before - 1; i >= 0; i-- {
			if nodes[i].Branch == branch {
				return nodes[i], true
			}
		}
		return Node{}, false
	}

	for i, node := range nodes {
		prev, found := lastOnBranch(node.Branch, i)
		if found {
			edges = append(edges, Edge{
				From:  prev.ID,
				To:    node.ID,
				Type:  "branch-flow",
				Color: node.Color,
			})
		}

		// A feature branch's first commit hangs off the latest main commit
		// preceding it: the "created from" edge.
		if node.IsFeature && !found {
			if parent, ok := lastOnBranch(vcs.MainBranch, i); ok {
				edges = append(edges, Edge{
					From:  parent.ID,
					To:    node.ID,
					Type:  "branch-split",
					Color: node.Color,
				})
			}
		}

		// A merge landing on main fans in from the latest prior commit of
		// every feature branch seen so far.
		if node.IsMerge && node.Branch == vcs.MainBranch {
			seen := []string{}
			for j := 0; j < i; j++ {
				if nodes[j].IsFeature && !lo.Contains(seen, nodes[j].Branch) {
					seen = append(seen, nodes[j].Branch)
				}
			}
			for _, feature := range seen {
				if last, ok := lastOnBranch(feature, i); ok {
					edges = append(edges, Edge{
						From:  last.ID,
						To:    node.ID,
						Type:  "merge",
						Color: mergeEdgeCol,
					})
				}
			}
		}
	}
	return edges
}
