package vcs

import "errors"

var (
	ErrDuplicateName   = errors.New("name already exists")
	ErrNotFound        = errors.New("not found")
	ErrProtectedBranch = errors.New("branch is protected")
	ErrSameBranch      = errors.New("source and target branch are the same")
	ErrInvalidInput    = errors.New("invalid input")
)
