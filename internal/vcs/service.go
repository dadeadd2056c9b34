package vcs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/forgesim/forgesim/internal/journal"
)

// Journal action tags, one per mutating operation kind.
const (
	ActionCreateRepo   = "CREATE_REPO"
	ActionEditRepo     = "EDIT_REPO"
	ActionDeleteRepo   = "DELETE_REPO"
	ActionCreateFile   = "CREATE_FILE"
	ActionEditFile     = "EDIT_FILE"
	ActionDeleteFile   = "DELETE_FILE"
	ActionCreateBranch = "CREATE_BRANCH"
	ActionSwitchBranch = "SWITCH_BRANCH"
	ActionMergeBranch  = "MERGE_BRANCH"
	ActionDeleteBranch = "DELETE_BRANCH"
)

const undoLimit = 50

const persistTimeout = 5 * time.Second

// Persister is the write-behind storage mirror. Save failures must never
// fail a mutation; the engine keeps operating on the in-memory store.
type Persister interface {
	// Hydrate loads the persisted store, falling back to seed data when the
	// persisted blob is absent.
	Hydrate(ctx context.Context) ([]Repository, error)

	// Save writes the whole store wholesale.
	Save(ctx context.Context, repositories []Repository) error
}

type Config struct {
	// User is the simulated acting identity commits are attributed to.
	User string
}

// Service is the core engine: it owns the repository store, the undo/redo
// journal, and the write-behind persistence mirror. Mutations are validated
// before any state changes, snapshotted to the journal, then applied;
// concurrent calls are serialized so no half-updated state is observable.
type Service struct {
	mu sync.Mutex

	store     *Store
	journal   *journal.Journal[[]Repository]
	persister Persister

	user string
	now  func() time.Time

	logger *zap.Logger
}

func NewService(persister Persister, cfg Config, logger *zap.Logger) *Service {
	return &Service{
		store:     NewStore(nil),
		journal:   journal.New(undoLimit, cloneRepositories, logger),
		persister: persister,
		user:      cfg.User,
		now:       time.Now,
		logger:    logger,
	}
}

func cloneRepositories(repositories []Repository) []Repository {
	out := make([]Repository, len(repositories))
	for i, r := range repositories {
		out[i] = r.Clone()
	}
	return out
}

// Hydrate replaces the store with the persisted (or seed) state.
func (s *Service) Hydrate(ctx context.Context) error {
	repositories, err := s.persister.Hydrate(ctx)
	if err != nil {
		return fmt.Errorf("failed to hydrate store: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Replace(repositories)

	s.logger.Info("store hydrated", zap.Int("repositories", s.store.Len()))
	return nil
}

// Flush writes the store synchronously. Called once on shutdown.
func (s *Service) Flush(ctx context.Context) error {
	s.mu.Lock()
	state := s.store.Snapshot()
	s.mu.Unlock()

	if err := s.persister.Save(ctx, state); err != nil {
		return fmt.Errorf("failed to flush store: %w", err)
	}
	return nil
}

// persist mirrors the store to storage without blocking the caller. A failed
// save degrades to in-memory-only operation.
func (s *Service) persist() {
	state := s.store.Snapshot()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()

		if err := s.persister.Save(ctx, state); err != nil {
			s.logger.Warn("write-behind persist failed, continuing in-memory", zap.Error(err))
		}
	}()
}

// List returns owned copies of every repository.
func (s *Service) List() []Repository {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Snapshot()
}

// Get returns an owned copy of one repository.
func (s *Service) Get(name string) (Repository, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	repo := s.store.find(name)
	if repo == nil {
		return Repository{}, fmt.Errorf("%w: repository %q", ErrNotFound, name)
	}
	return repo.Clone(), nil
}

// CreateRepository adds an empty repository with an implicit main branch and
// a single "created" commit in the aggregate log.
func (s *Service) CreateRepository(name, description string, isPrivate bool) (Repository, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name == "" {
		return Repository{}, fmt.Errorf("%w: repository name is required", ErrInvalidInput)
	}
	if s.store.find(name) != nil {
		return Repository{}, fmt.Errorf("%w: repository %q", ErrDuplicateName, name)
	}
	if description == "" {
		description = "Repository"
	}

	s.snapshot(ActionCreateRepo, fmt.Sprintf("Created repository: %s", name))

	now := s.now()
	repo := Repository{
		Name:          name,
		Description:   description,
		CreatedDate:   now.Format("1/2/2006"),
		IsPrivate:     isPrivate,
		CurrentBranch: MainBranch,
		Branches: []Branch{{
			Name:    MainBranch,
			Parent:  "",
			Current: true,
			Files:   []File{},
			Commits: []Commit{},
		}},
		Commits: []Commit{{
			Message:   fmt.Sprintf("Created repository: %s", name),
			Author:    s.user,
			Date:      commitDate(now),
			Branch:    MainBranch,
			Timestamp: now.UnixMilli(),
			Files:     []string{},
		}},
	}
	s.store.append(repo)

	s.logger.Info("repository created", zap.String("name", name))
	operationsTotal.WithLabelValues("create_repository").Inc()
	s.persist()

	return repo.Clone(), nil
}

// UpdateRepository renames a repository and/or replaces its description, and
// records the change in the aggregate log.
func (s *Service) UpdateRepository(name, newName, description string) (Repository, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if newName == "" {
		return Repository{}, fmt.Errorf("%w: repository name is required", ErrInvalidInput)
	}
	repo := s.store.find(name)
	if repo == nil {
		return Repository{}, fmt.Errorf("%w: repository %q", ErrNotFound, name)
	}
	if newName != name && s.store.find(newName) != nil {
		return Repository{}, fmt.Errorf("%w: repository %q", ErrDuplicateName, newName)
	}

	s.snapshot(ActionEditRepo, fmt.Sprintf("Edited repository: %s", name))

	repo.Name = newName
	repo.Description = description
	// The edit marker carries only the identifying tuple, like merge
	// summaries: no branch, no timestamp, sorts as a legacy commit.
	repo.Commits = append(repo.Commits, Commit{
		Message: fmt.Sprintf("Updated repository: %s → %s", name, newName),
		Author:  s.user,
		Date:    s.now().Format("1/2/2006"),
	})

	s.logger.Info("repository updated",
		zap.String("name", name),
		zap.String("new_name", newName))
	operationsTotal.WithLabelValues("update_repository").Inc()
	s.persist()

	return repo.Clone(), nil
}

// DeleteRepository removes a repository from the store.
func (s *Service) DeleteRepository(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store.find(name) == nil {
		return fmt.Errorf("%w: repository %q", ErrNotFound, name)
	}

	s.snapshot(ActionDeleteRepo, fmt.Sprintf("Deleted repository: %s", name))
	s.store.remove(name)

	s.logger.Info("repository deleted", zap.String("name", name))
	operationsTotal.WithLabelValues("delete_repository").Inc()
	s.persist()

	return nil
}

// CreateFile adds a file to the repository's current branch and records an
// auto-commit for it. An optional path prefix is joined with "/".
func (s *Service) CreateFile(repoName, path, name, content, commitMessage string) (File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name == "" {
		return File{}, fmt.Errorf("%w: file name is required", ErrInvalidInput)
	}
	repo := s.store.find(repoName)
	if repo == nil {
		return File{}, fmt.Errorf("%w: repository %q", ErrNotFound, repoName)
	}
	repo.ensureBranches()

	fullName := name
	if path != "" {
		fullName = path + "/" + name
	}

	branch := repo.current()
	if fileByName(branch.Files, fullName) != nil {
		return File{}, fmt.Errorf("%w: file %q", ErrDuplicateName, fullName)
	}

	s.snapshot(ActionCreateFile, fmt.Sprintf("Created file: %s", fullName))

	file := File{
		Name:    fullName,
		Content: content,
		Info:    fileInfo(content),
		Date:    "just now",
	}
	branch.Files = append(branch.Files, file)

	message := commitMessage
	if message == "" {
		message = fmt.Sprintf("Added file: %s", fullName)
	}
	s.recordCommit(repo, message, s.user, repo.CurrentBranch, []string{fullName})

	s.logger.Info("file created",
		zap.String("repository", repoName),
		zap.String("file", fullName))
	operationsTotal.WithLabelValues("create_file").Inc()
	s.persist()

	return file.Clone(), nil
}

// EditFile updates a file on the current branch, optionally renaming it, and
// records an auto-commit.
func (s *Service) EditFile(repoName, name, newName, content string) (File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if newName == "" {
		newName = name
	}
	repo := s.store.find(repoName)
	if repo == nil {
		return File{}, fmt.Errorf("%w: repository %q", ErrNotFound, repoName)
	}
	repo.ensureBranches()

	branch := repo.current()
	file := fileByName(branch.Files, name)
	if file == nil {
		return File{}, fmt.Errorf("%w: file %q", ErrNotFound, name)
	}
	if newName != name && fileByName(branch.Files, newName) != nil {
		return File{}, fmt.Errorf("%w: file %q", ErrDuplicateName, newName)
	}

	s.snapshot(ActionEditFile, fmt.Sprintf("Edited file: %s", name))

	file.Name = newName
	file.Content = content
	file.Info = fileInfo(content)
	file.Date = "just now"

	message := fmt.Sprintf("Updated file: %s", newName)
	if newName != name {
		message = fmt.Sprintf("Renamed file: %s", newName)
	}
	s.recordCommit(repo, message, s.user, repo.CurrentBranch, []string{newName})

	s.logger.Info("file edited",
		zap.String("repository", repoName),
		zap.String("file", newName))
	operationsTotal.WithLabelValues("edit_file").Inc()
	s.persist()

	return file.Clone(), nil
}

// DeleteFile removes a file from the current branch and records an
// auto-commit.
func (s *Service) DeleteFile(repoName, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	repo := s.store.find(repoName)
	if repo == nil {
		return fmt.Errorf("%w: repository %q", ErrNotFound, repoName)
	}
	repo.ensureBranches()

	branch := repo.current()
	if fileByName(branch.Files, name) == nil {
		return fmt.Errorf("%w: file %q", ErrNotFound, name)
	}

	s.snapshot(ActionDeleteFile, fmt.Sprintf("Deleted file: %s", name))

	for i := range branch.Files {
		if branch.Files[i].Name == name {
			branch.Files = append(branch.Files[:i], branch.Files[i+1:]...)
			break
		}
	}
	s.recordCommit(repo, fmt.Sprintf("Removed file: %s", name), s.user, repo.CurrentBranch, []string{name})

	s.logger.Info("file deleted",
		zap.String("repository", repoName),
		zap.String("file", name))
	operationsTotal.WithLabelValues("delete_file").Inc()
	s.persist()

	return nil
}

// Undo rolls the store back to the most recent journal snapshot. The second
// return is false when there is nothing to undo.
func (s *Service) Undo() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	restored, description, ok := s.journal.Undo(s.store.Snapshot())
	if !ok {
		return "", false
	}
	s.store.Replace(restored)

	s.logger.Info("undo applied", zap.String("description", description))
	operationsTotal.WithLabelValues("undo").Inc()
	s.persist()

	return description, true
}

// Redo rolls the store forward again after an Undo.
func (s *Service) Redo() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	restored, description, ok := s.journal.Redo(s.store.Snapshot())
	if !ok {
		return "", false
	}
	s.store.Replace(restored)

	s.logger.Info("redo applied", zap.String("description", description))
	operationsTotal.WithLabelValues("redo").Inc()
	s.persist()

	return description, true
}

// History returns the journal's undo/redo entry metadata.
func (s *Service) History() journal.History {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.journal.History()
}

// snapshot records the pre-mutation store state. Callers must have finished
// all validation: a snapshot without a following mutation would make undo a
// visible no-op.
func (s *Service) snapshot(action, description string) {
	s.journal.Snapshot(action, description, s.store.Snapshot())
}

func (s *Service) displayTime() string {
	return s.now().Format("1/2/2006, 3:04:05 PM")
}

func commitDate(t time.Time) string {
	return t.Format("January 2, 2006")
}

func fileByName(files []File, name string) *File {
	for i := range files {
		if files[i].Name == name {
			return &files[i]
		}
	}
	return nil
}

// fileInfo derives the short summary shown on file cards: the first 50
// characters of content with an overflow marker.
func fileInfo(content string) string {
	const max = 50
	runes := []rune(content)
	if len(runes) <= max {
		return content
	}
	return string(runes[:max]) + "..."
}
