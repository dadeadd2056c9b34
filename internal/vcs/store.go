package vcs

// Store is the in-memory repository list the engine operates on. It replaces
// the page-global array of the original dashboard: the Service owns exactly
// one Store and every operation goes through it.
type Store struct {
	repositories []Repository
}

func NewStore(repositories []Repository) *Store {
	if repositories == nil {
		repositories = []Repository{}
	}
	return &Store{repositories: repositories}
}

// find returns the repository with the given name, or nil.
func (s *Store) find(name string) *Repository {
	for i := range s.repositories {
		if s.repositories[i].Name == name {
			return &s.repositories[i]
		}
	}
	return nil
}

func (s *Store) remove(name string) bool {
	for i := range s.repositories {
		if s.repositories[i].Name == name {
			s.repositories = append(s.repositories[:i], s.repositories[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Store) append(repo Repository) {
	s.repositories = append(s.repositories, repo)
}

// Snapshot returns a deep copy of the whole store. Journal entries and
// callers own the returned slice exclusively.
func (s *Store) Snapshot() []Repository {
	out := make([]Repository, len(s.repositories))
	for i, r := range s.repositories {
		out[i] = r.Clone()
	}
	return out
}

// Replace swaps the live state for a deep copy of the given one. Used by
// undo/redo restoration and hydration.
func (s *Store) Replace(repositories []Repository) {
	out := make([]Repository, len(repositories))
	for i, r := range repositories {
		out[i] = r.Clone()
	}
	s.repositories = out
}

func (s *Store) Len() int {
	return len(s.repositories)
}
