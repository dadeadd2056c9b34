package vcs

import (
	"encoding/json"
	"fmt"
)

// repositorySnapshot is the wire layout of one repository: the domain model
// plus the legacy repository-level file mirror. The mirror is derived from
// the current branch on encode and folded back into it on decode, so
// consumers of the persisted blob keep seeing the shape the original
// dashboard wrote while the domain keeps branches as the single source of
// truth.
type repositorySnapshot struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	CreatedDate   string   `json:"createdDate"`
	IsPrivate     bool     `json:"isPrivate"`
	CurrentBranch string   `json:"currentBranch"`
	Branches      []Branch `json:"branches"`
	Files         []File   `json:"files"`
	Commits       []Commit `json:"commits"`
}

// seedDocument is the optional static snapshot consulted when the persisted
// blob is absent.
type seedDocument struct {
	Repositories []repositorySnapshot `json:"repositories"`
}

// EncodeRepositories serializes the store into the persisted blob layout.
func EncodeRepositories(repositories []Repository) ([]byte, error) {
	snapshots := make([]repositorySnapshot, len(repositories))
	for i := range repositories {
		snapshots[i] = toSnapshot(&repositories[i])
	}

	data, err := json.Marshal(snapshots)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal repositories: %w", err)
	}
	return data, nil
}

// DecodeRepositories parses a persisted blob, repairing branch commit logs
// from the aggregate where the snapshot only serialized the latter.
func DecodeRepositories(data []byte) ([]Repository, error) {
	var snapshots []repositorySnapshot
	if err := json.Unmarshal(data, &snapshots); err != nil {
		return nil, fmt.Errorf("failed to unmarshal repositories: %w", err)
	}
	return fromSnapshots(snapshots), nil
}

// DecodeSeed parses a `{ "repositories": [...] }` seed snapshot.
func DecodeSeed(data []byte) ([]Repository, error) {
	var doc seedDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal seed snapshot: %w", err)
	}
	return fromSnapshots(doc.Repositories), nil
}

func toSnapshot(repo *Repository) repositorySnapshot {
	clone := repo.Clone()
	return repositorySnapshot{
		Name:          clone.Name,
		Description:   clone.Description,
		CreatedDate:   clone.CreatedDate,
		IsPrivate:     clone.IsPrivate,
		CurrentBranch: clone.CurrentBranch,
		Branches:      clone.Branches,
		Files:         repo.CurrentFiles(),
		Commits:       clone.Commits,
	}
}

func fromSnapshots(snapshots []repositorySnapshot) []Repository {
	repositories := make([]Repository, len(snapshots))
	for i, snap := range snapshots {
		repositories[i] = fromSnapshot(snap)
	}
	return repositories
}

func fromSnapshot(snap repositorySnapshot) Repository {
	repo := Repository{
		Name:          snap.Name,
		Description:   snap.Description,
		CreatedDate:   snap.CreatedDate,
		IsPrivate:     snap.IsPrivate,
		CurrentBranch: snap.CurrentBranch,
		Branches:      snap.Branches,
		Commits:       snap.Commits,
	}
	repo.ensureBranches()

	// Legacy blobs carry the working file view only at repository level.
	// Fold it into the branch that owns it.
	if cur := repo.current(); cur != nil && cur.Files == nil && snap.Files != nil {
		files := make([]File, len(snap.Files))
		for i, f := range snap.Files {
			files[i] = f.Clone()
		}
		cur.Files = files
	}

	syncBranchCommits(&repo)
	return repo.Clone()
}
