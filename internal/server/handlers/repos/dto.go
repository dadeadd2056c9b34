package repos

import (
	"github.com/forgesim/forgesim/internal/vcs"
)

// CreateRequest creates a repository.
type CreateRequest struct {
	Name        string `json:"name"        validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"max=500"`
	IsPrivate   bool   `json:"is_private"`
}

// UpdateRequest renames a repository and/or replaces its description.
type UpdateRequest struct {
	Name        string `json:"name"        validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"max=500"`
}

// CreateFileRequest adds a file to the current branch.
type CreateFileRequest struct {
	Name          string `json:"name"           validate:"required,min=1,max=255"`
	Path          string `json:"path"           validate:"max=255"`
	Content       string `json:"content"`
	CommitMessage string `json:"commit_message" validate:"max=500"`
}

// EditFileRequest updates (and optionally renames) a file.
type EditFileRequest struct {
	Name    string `json:"name"     validate:"required,min=1,max=255"`
	NewName string `json:"new_name" validate:"max=255"`
	Content string `json:"content"`
}

// CreateBranchRequest forks a branch off a base branch.
type CreateBranchRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
	Base string `json:"base" validate:"max=100"`
}

// SwitchBranchRequest makes a branch the active one.
type SwitchBranchRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// MergeRequest merges source into target.
type MergeRequest struct {
	Source string `json:"source" validate:"required,min=1,max=100"`
	Target string `json:"target" validate:"required,min=1,max=100"`
}

// CommitRequest records a commit against a branch name.
type CommitRequest struct {
	Message string   `json:"message" validate:"required,min=1,max=500"`
	Author  string   `json:"author"  validate:"max=100"`
	Branch  string   `json:"branch"  validate:"max=100"`
	Files   []string `json:"files"`
}

// RepositoryResponse is the full repository view, including the derived
// current-branch file list.
type RepositoryResponse struct {
	Name          string       `json:"name"`
	Description   string       `json:"description"`
	CreatedDate   string       `json:"createdDate"`
	IsPrivate     bool         `json:"isPrivate"`
	CurrentBranch string       `json:"currentBranch"`
	Branches      []vcs.Branch `json:"branches"`
	Files         []vcs.File   `json:"files"`
	Commits       []vcs.Commit `json:"commits"`
}

func newRepositoryResponse(repo vcs.Repository) RepositoryResponse {
	return RepositoryResponse{
		Name:          repo.Name,
		Description:   repo.Description,
		CreatedDate:   repo.CreatedDate,
		IsPrivate:     repo.IsPrivate,
		CurrentBranch: repo.CurrentBranch,
		Branches:      repo.Branches,
		Files:         repo.CurrentFiles(),
		Commits:       repo.Commits,
	}
}
