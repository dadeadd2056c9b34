package vcs

import (
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// RecordCommit appends a commit to the repository's aggregate log and, when
// the named branch exists, a duplicate-checked copy to that branch's log. A
// commit against an unknown branch name is not an error: it still lands in
// the aggregate log.
func (s *Service) RecordCommit(repoName, message, author, branchName string, files []string) (Commit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	repo := s.store.find(repoName)
	if repo == nil {
		return Commit{}, fmt.Errorf("%w: repository %q", ErrNotFound, repoName)
	}
	if author == "" {
		author = s.user
	}

	commit := s.recordCommit(repo, message, author, branchName, files)

	operationsTotal.WithLabelValues("record_commit").Inc()
	s.persist()

	return commit.Clone(), nil
}

func (s *Service) recordCommit(repo *Repository, message, author, branchName string, files []string) Commit {
	if branchName == "" {
		branchName = MainBranch
	}
	if files == nil {
		files = []string{}
	}

	now := s.now()
	commit := Commit{
		Message:   message,
		Author:    author,
		Date:      commitDate(now),
		Branch:    branchName,
		Timestamp: now.UnixMilli(),
		Files:     files,
	}

	repo.Commits = append(repo.Commits, commit)

	if branch := repo.Branch(branchName); branch != nil {
		duplicate := false
		for _, existing := range branch.Commits {
			if existing.Message == commit.Message && existing.Timestamp == commit.Timestamp {
				duplicate = true
				break
			}
		}
		if !duplicate {
			branch.Commits = append(branch.Commits, commit.Clone())
		}
	}

	commitsTotal.Inc()
	s.logger.Debug("commit recorded",
		zap.String("repository", repo.Name),
		zap.String("branch", branchName),
		zap.String("message", message))

	return commit
}

// Commits returns the repository's aggregate log, newest first.
func (s *Service) Commits(repoName string) ([]Commit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	repo := s.store.find(repoName)
	if repo == nil {
		return nil, fmt.Errorf("%w: repository %q", ErrNotFound, repoName)
	}

	out := make([]Commit, len(repo.Commits))
	for i, c := range repo.Commits {
		out[i] = c.Clone()
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp > out[j].Timestamp
	})
	return out, nil
}

// SyncBranchCommits copies every aggregate commit missing from its owning
// branch's log into it. Idempotent: a second pass adds nothing. Used when
// hydrating snapshots that serialized only the aggregate log.
func (s *Service) SyncBranchCommits(repoName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	repo := s.store.find(repoName)
	if repo == nil {
		return fmt.Errorf("%w: repository %q", ErrNotFound, repoName)
	}

	copied := syncBranchCommits(repo)
	if copied > 0 {
		s.logger.Info("branch commit logs repaired",
			zap.String("repository", repoName),
			zap.Int("copied", copied))
		s.persist()
	}
	return nil
}

// syncBranchCommits is the repair pass shared with snapshot decoding.
func syncBranchCommits(repo *Repository) int {
	copied := 0
	for _, commit := range repo.Commits {
		branchName := commit.Branch
		if branchName == "" {
			branchName = MainBranch
		}
		branch := repo.Branch(branchName)
		if branch == nil {
			continue
		}
		if branch.hasCommit(commit) {
			continue
		}
		branch.Commits = append(branch.Commits, commit.Clone())
		copied++
	}
	return copied
}
