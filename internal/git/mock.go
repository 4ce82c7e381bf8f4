package git

import (
	"context"
	"sync"
)

// MockGitClient implements GitClient for testing
type MockGitClient struct {
	mu      sync.RWMutex
	isRepo  bool
	branch  string
	dirty   bool
	commits []string
	ctx     context.Context

	// Hooks for testing error scenarios
	GetCurrentBranchError error
	StatusError           error
}

// NewMockGitClient creates a clean repository on main
func NewMockGitClient() *MockGitClient {
	return &MockGitClient{
		isRepo: true,
		branch: "main",
		ctx:    context.Background(),
	}
}

// NewMockNonRepo creates a client for a directory outside git
func NewMockNonRepo() *MockGitClient {
	m := NewMockGitClient()
	m.isRepo = false
	return m
}

// WithContext returns the same mock; state is shared
func (m *MockGitClient) WithContext(ctx context.Context) GitClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ctx = ctx
	return m
}

// SetBranch switches the current branch
func (m *MockGitClient) SetBranch(branch string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.branch = branch
}

// SetDirty marks the working tree as modified
func (m *MockGitClient) SetDirty(dirty bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirty = dirty
}

// Commit records a commit message, newest last
func (m *MockGitClient) Commit(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commits = append(m.commits, message)
}

func (m *MockGitClient) IsGitRepo() (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.isRepo, nil
}

func (m *MockGitClient) GetCurrentBranch() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.isRepo {
		return "", ErrNotRepository
	}
	if m.GetCurrentBranchError != nil {
		return "", m.GetCurrentBranchError
	}
	return m.branch, nil
}

func (m *MockGitClient) HasUncommittedChanges() (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.isRepo {
		return false, ErrNotRepository
	}
	if m.StatusError != nil {
		return false, m.StatusError
	}
	return m.dirty, nil
}

func (m *MockGitClient) RecentLog(n int) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.isRepo {
		return nil, ErrNotRepository
	}

	var out []string
	for i := len(m.commits) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, m.commits[i])
	}
	return out, nil
}
