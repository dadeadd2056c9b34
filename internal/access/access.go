// Package access decides who may see a repository. The core engine does not
// enforce visibility; callers filter before invoking it.
package access

import "github.com/forgesim/forgesim/internal/vcs"

// CanView reports whether a viewer may see the repository: owners see
// everything, everyone else only public repositories.
func CanView(repo vcs.Repository, isOwner bool) bool {
	return isOwner || !repo.IsPrivate
}

// Filter returns the repositories visible to the viewer, preserving order.
func Filter(repositories []vcs.Repository, isOwner bool) []vcs.Repository {
	visible := make([]vcs.Repository, 0, len(repositories))
	for _, repo := range repositories {
		if CanView(repo, isOwner) {
			visible = append(visible, repo)
		}
	}
	return visible
}
