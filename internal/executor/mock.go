package executor

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MockResponse defines the response for a mocked command.
type MockResponse struct {
	Stdout []byte
	Stderr []byte
	Err    error
}

// CommandMatcher is a function that determines if a command matches.
type CommandMatcher func(dir, name string, args []string) bool

// MockRule defines a matching rule and its response.
type MockRule struct {
	Match    CommandMatcher
	Response MockResponse
}

// MockCall records a command invocation for verification.
type MockCall struct {
	Dir         string
	Name        string
	Args        []string
	Interactive bool
}

// String renders the call like a shell command line.
func (c MockCall) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// MockExecutor returns pre-recorded responses for commands.
// Rules are matched in registration order; unmatched commands succeed with empty output.
type MockExecutor struct {
	mu    sync.RWMutex
	rules []MockRule
	calls []MockCall
}

// NewMockExecutor creates a new MockExecutor.
func NewMockExecutor() *MockExecutor {
	return &MockExecutor{}
}

// AddRule adds a matching rule with its response.
func (e *MockExecutor) AddRule(match CommandMatcher, response MockResponse) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rules = append(e.rules, MockRule{Match: match, Response: response})
}

// AddExactMatch adds a rule that matches a specific command exactly.
func (e *MockExecutor) AddExactMatch(name string, args []string, response MockResponse) {
	e.AddRule(func(dir, n string, a []string) bool {
		if n != name || len(a) != len(args) {
			return false
		}
		for i, arg := range args {
			if a[i] != arg {
				return false
			}
		}
		return true
	}, response)
}

// AddPrefixMatch adds a rule that matches commands starting with specific args.
func (e *MockExecutor) AddPrefixMatch(name string, prefixArgs []string, response MockResponse) {
	e.AddRule(func(dir, n string, a []string) bool {
		if n != name || len(a) < len(prefixArgs) {
			return false
		}
		for i, arg := range prefixArgs {
			if a[i] != arg {
				return false
			}
		}
		return true
	}, response)
}

// Run records the call and returns the first matching response.
func (e *MockExecutor) Run(ctx context.Context, dir string, name string, args ...string) (stdout, stderr []byte, err error) {
	resp := e.record(dir, name, args, false)
	if ctx.Err() != nil {
		return nil, nil, ctx.Err()
	}
	return resp.Stdout, resp.Stderr, resp.Err
}

// Interactive records the call and returns the matching response's error.
func (e *MockExecutor) Interactive(ctx context.Context, dir string, name string, args ...string) error {
	resp := e.record(dir, name, args, true)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return resp.Err
}

func (e *MockExecutor) record(dir, name string, args []string, interactive bool) MockResponse {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.calls = append(e.calls, MockCall{
		Dir:         dir,
		Name:        name,
		Args:        append([]string(nil), args...),
		Interactive: interactive,
	})

	for _, rule := range e.rules {
		if rule.Match(dir, name, args) {
			return rule.Response
		}
	}
	return MockResponse{}
}

// Calls returns all recorded calls.
func (e *MockExecutor) Calls() []MockCall {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]MockCall(nil), e.calls...)
}

// CallStrings returns all recorded calls rendered as command lines.
func (e *MockExecutor) CallStrings() []string {
	calls := e.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.String()
	}
	return out
}

// CallsWithPrefix returns calls whose name and leading args match.
func (e *MockExecutor) CallsWithPrefix(name string, prefixArgs ...string) []MockCall {
	var matched []MockCall
	for _, c := range e.Calls() {
		if c.Name != name || len(c.Args) < len(prefixArgs) {
			continue
		}
		ok := true
		for i, arg := range prefixArgs {
			if c.Args[i] != arg {
				ok = false
				break
			}
		}
		if ok {
			matched = append(matched, c)
		}
	}
	return matched
}

// Reset clears recorded calls but keeps rules.
func (e *MockExecutor) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls = nil
}

// ExitError is a stand-in for *exec.ExitError in tests.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// ExitCode implements the interface checked by ExitCode.
func (e *ExitError) ExitCode() int {
	return e.Code
}
