package git

import (
	"context"
	"errors"
)

// ErrNotRepository is returned when the directory is not inside a git work tree.
var ErrNotRepository = errors.New("not a git repository")

// GitClient answers status questions about a single working tree.
//
// Every method returns an error when dir is not inside a git repository,
// so callers treat any error as "no git information".
type GitClient interface {
	// Repository operations
	IsGitRepo() (bool, error)
	GetCurrentBranch() (string, error)

	// Working tree operations
	HasUncommittedChanges() (bool, error)
	RecentLog(n int) ([]string, error)

	WithContext(ctx context.Context) GitClient
}

// Status summarises a working tree for display.
type Status struct {
	Branch string
	Dirty  bool

	// LastCommit is the newest `git log --oneline` line, empty in a fresh repository
	LastCommit string
}

// Label renders the dirty flag the way the actions panel shows it.
func (s Status) Label() string {
	if s.Dirty {
		return "⚠️ changes"
	}
	return "✅ clean"
}

// GetStatus collects branch, dirty state and the last commit.
// It returns ErrNotRepository outside a work tree. A log error leaves
// LastCommit empty, as git log fails before the first commit.
func GetStatus(client GitClient) (*Status, error) {
	isRepo, err := client.IsGitRepo()
	if err != nil {
		return nil, err
	}
	if !isRepo {
		return nil, ErrNotRepository
	}

	branch, err := client.GetCurrentBranch()
	if err != nil {
		return nil, err
	}
	dirty, err := client.HasUncommittedChanges()
	if err != nil {
		return nil, err
	}
	status := &Status{Branch: branch, Dirty: dirty}
	if log, err := client.RecentLog(1); err == nil && len(log) > 0 {
		status.LastCommit = log[0]
	}
	return status, nil
}
