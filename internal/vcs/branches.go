package vcs

import (
	"fmt"

	"go.uber.org/zap"
)

// CreateBranch forks a new branch off baseBranch, deep-copying the base file
// set, and stamps the new branch with a synthetic "created" commit.
func (s *Service) CreateBranch(repoName, newName, baseBranch string) (Branch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if newName == "" {
		return Branch{}, fmt.Errorf("%w: branch name is required", ErrInvalidInput)
	}
	repo := s.store.find(repoName)
	if repo == nil {
		return Branch{}, fmt.Errorf("%w: repository %q", ErrNotFound, repoName)
	}
	repo.ensureBranches()
	if baseBranch == "" {
		baseBranch = MainBranch
	}
	if repo.Branch(newName) != nil {
		return Branch{}, fmt.Errorf("%w: branch %q", ErrDuplicateName, newName)
	}

	s.snapshot(ActionCreateBranch, fmt.Sprintf("Created branch: %s from %s", newName, baseBranch))

	// Resolve the base file set. Legacy branches hydrated without an
	// explicit file list fall back to the repository's working view when the
	// base is main or the active branch.
	var files []File
	base := repo.Branch(baseBranch)
	switch {
	case base != nil && base.Files != nil:
		files = make([]File, len(base.Files))
		for i, f := range base.Files {
			files[i] = f.Clone()
		}
	case baseBranch == MainBranch || baseBranch == repo.CurrentBranch:
		files = repo.CurrentFiles()
	default:
		files = []File{}
	}

	branch := Branch{
		Name:    newName,
		Parent:  baseBranch,
		Current: false,
		Files:   files,
		Commits: []Commit{},
	}
	repo.Branches = append(repo.Branches, branch)

	s.recordCommit(repo,
		fmt.Sprintf("Created branch %s from %s", newName, baseBranch),
		s.user, newName, nil)

	s.logger.Info("branch created",
		zap.String("repository", repoName),
		zap.String("branch", newName),
		zap.String("base", baseBranch))
	operationsTotal.WithLabelValues("create_branch").Inc()
	s.persist()

	return repo.Branch(newName).Clone(), nil
}

// SwitchBranch makes the target branch the active one. Branch file sets are
// branch-owned, so nothing is carried over; the repository's working view
// follows the Current flag.
func (s *Service) SwitchBranch(repoName, target string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	repo := s.store.find(repoName)
	if repo == nil {
		return fmt.Errorf("%w: repository %q", ErrNotFound, repoName)
	}
	repo.ensureBranches()
	if repo.Branch(target) == nil {
		return fmt.Errorf("%w: branch %q", ErrNotFound, target)
	}

	s.snapshot(ActionSwitchBranch, fmt.Sprintf("Switched to branch: %s", target))
	s.switchTo(repo, target)

	s.logger.Info("branch switched",
		zap.String("repository", repoName),
		zap.String("branch", target))
	operationsTotal.WithLabelValues("switch_branch").Inc()
	s.persist()

	return nil
}

func (s *Service) switchTo(repo *Repository, target string) {
	for i := range repo.Branches {
		repo.Branches[i].Current = repo.Branches[i].Name == target
	}
	repo.CurrentBranch = target
}

// DeleteBranch removes a branch. Main is protected. Deleting the active
// branch falls back to main; the deletion is complete only once that switch
// has happened.
func (s *Service) DeleteBranch(repoName, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name == MainBranch {
		return fmt.Errorf("%w: cannot delete %s", ErrProtectedBranch, MainBranch)
	}
	repo := s.store.find(repoName)
	if repo == nil {
		return fmt.Errorf("%w: repository %q", ErrNotFound, repoName)
	}
	if repo.Branch(name) == nil {
		return fmt.Errorf("%w: branch %q", ErrNotFound, name)
	}

	s.snapshot(ActionDeleteBranch, fmt.Sprintf("Deleted branch: %s", name))

	for i := range repo.Branches {
		if repo.Branches[i].Name == name {
			repo.Branches = append(repo.Branches[:i], repo.Branches[i+1:]...)
			break
		}
	}
	if repo.CurrentBranch == name {
		repo.ensureBranches()
		s.switchTo(repo, MainBranch)
	}

	s.logger.Info("branch deleted",
		zap.String("repository", repoName),
		zap.String("branch", name))
	operationsTotal.WithLabelValues("delete_branch").Inc()
	s.persist()

	return nil
}

// Merge reconciles source into target in a single deterministic pass:
// last write wins on identical filenames, commit copies are tuple-deduped,
// and a synthetic summary commit lands on the target branch. The source
// branch is never touched. Re-merging immediately appends another summary
// commit with zero counters; that behavior is intentional (see DESIGN.md).
func (s *Service) Merge(repoName, sourceName, targetName string) (MergeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sourceName == "" || targetName == "" {
		return MergeResult{}, fmt.Errorf("%w: source and target branch are required", ErrInvalidInput)
	}
	if sourceName == targetName {
		return MergeResult{}, fmt.Errorf("%w: %q", ErrSameBranch, sourceName)
	}
	repo := s.store.find(repoName)
	if repo == nil {
		return MergeResult{}, fmt.Errorf("%w: repository %q", ErrNotFound, repoName)
	}
	source := repo.Branch(sourceName)
	if source == nil {
		return MergeResult{}, fmt.Errorf("%w: source branch %q", ErrNotFound, sourceName)
	}
	target := repo.Branch(targetName)
	if target == nil {
		return MergeResult{}, fmt.Errorf("%w: target branch %q", ErrNotFound, targetName)
	}

	s.snapshot(ActionMergeBranch, fmt.Sprintf("Merged %s into %s", sourceName, targetName))

	var result MergeResult
	mergeStamp := "merged - " + s.displayTime()

	for _, sourceFile := range source.Files {
		existing := fileByName(target.Files, sourceFile.Name)
		if existing != nil {
			if existing.Content != sourceFile.Content {
				existing.Content = sourceFile.Content
				existing.Info = sourceFile.Info
				existing.Date = mergeStamp
				result.FilesUpdated++
			}
			continue
		}
		added := sourceFile.Clone()
		added.Date = mergeStamp
		target.Files = append(target.Files, added)
		result.FilesAdded++
	}

	for _, sourceCommit := range source.Commits {
		if target.hasCommit(sourceCommit) {
			continue
		}
		// Copies carry only the identifying tuple, matching how merged
		// history is displayed: they are attributed to the target lane and
		// sort as legacy commits.
		target.Commits = append(target.Commits, Commit{
			Message: sourceCommit.Message,
			Author:  sourceCommit.Author,
			Date:    sourceCommit.Date,
		})
		result.CommitsAdded++
	}

	target.Commits = append(target.Commits, Commit{
		Message: fmt.Sprintf(
			"Merged branch %s into %s (%d files added, %d files updated, %d commits merged)",
			sourceName, targetName,
			result.FilesAdded, result.FilesUpdated, result.CommitsAdded),
		Author: SystemAuthor,
		Date:   s.now().Format("1/2/2006"),
	})

	s.logger.Info("branches merged",
		zap.String("repository", repoName),
		zap.String("source", sourceName),
		zap.String("target", targetName),
		zap.Int("files_added", result.FilesAdded),
		zap.Int("files_updated", result.FilesUpdated),
		zap.Int("commits_added", result.CommitsAdded))
	mergesTotal.Inc()
	operationsTotal.WithLabelValues("merge_branch").Inc()
	s.persist()

	return result, nil
}
