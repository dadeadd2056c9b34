package vcs

import (
	"fmt"
	"sort"
	"strings"
)

// SearchRepositories returns the names of repositories whose name contains
// the term, case-insensitive, sorted ascending. An empty term matches every
// repository.
func (s *Service) SearchRepositories(term string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	needle := strings.ToLower(term)
	results := []string{}
	for i := range s.store.repositories {
		name := s.store.repositories[i].Name
		if strings.Contains(strings.ToLower(name), needle) {
			results = append(results, name)
		}
	}
	sort.Strings(results)
	return results
}

// SearchFiles returns the names of current-branch files whose name contains
// the term, case-insensitive. With inContent set, file contents are searched
// instead of names.
func (s *Service) SearchFiles(repoName, term string, inContent bool) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	repo := s.store.find(repoName)
	if repo == nil {
		return nil, fmt.Errorf("%w: repository %q", ErrNotFound, repoName)
	}
	repo.ensureBranches()

	needle := strings.ToLower(term)
	results := []string{}
	for _, file := range repo.current().Files {
		haystack := file.Name
		if inContent {
			haystack = file.Content
		}
		if strings.Contains(strings.ToLower(haystack), needle) {
			results = append(results, file.Name)
		}
	}
	return results, nil
}
