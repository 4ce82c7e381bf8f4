package workspace

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	gitignore "github.com/denormal/go-gitignore"
	"github.com/sisi-cmux/sisi/internal/apperr"
	"github.com/sisi-cmux/sisi/internal/filesystem"
	"github.com/sisi-cmux/sisi/internal/logger"
	"github.com/sisi-cmux/sisi/internal/models"
	"github.com/sisi-cmux/sisi/internal/tui"
)

// DefaultExcludePatterns are directory names never treated as projects.
var DefaultExcludePatterns = []string{
	"node_modules", ".git", "target", "dist", "build",
	".cache", ".tmp", "__pycache__", ".idea", "vendor",
	".vscode", ".vs", "bin", "obj", ".gradle", ".mvn",
}

const (
	// DefaultMaxDirectories caps how many directories a scan inspects.
	DefaultMaxDirectories = 100

	// minUnknownEntries is the entry count above which an untyped directory still counts as a project.
	minUnknownEntries = 3
)

// Scanner discovers projects in the immediate children of a root directory.
type Scanner struct {
	fs               filesystem.FileSystem
	out              io.Writer
	exclude          map[string]struct{}
	maxDirectories   int
	respectGitignore bool
}

// Option configures scanner behavior.
type Option func(*Scanner)

// WithOutput sets where progress lines are printed.
func WithOutput(w io.Writer) Option {
	return func(s *Scanner) {
		s.out = w
	}
}

// WithExcludePatterns adds directory names to skip on top of the defaults.
func WithExcludePatterns(patterns ...string) Option {
	return func(s *Scanner) {
		for _, p := range patterns {
			if p = strings.TrimSpace(p); p != "" {
				s.exclude[p] = struct{}{}
			}
		}
	}
}

// WithMaxDirectories limits how many directories are inspected.
func WithMaxDirectories(n int) Option {
	return func(s *Scanner) {
		if n > 0 {
			s.maxDirectories = n
		}
	}
}

// WithGitignore toggles skipping entries matched by the root .gitignore.
func WithGitignore(enabled bool) Option {
	return func(s *Scanner) {
		s.respectGitignore = enabled
	}
}

// New creates a new Scanner.
func New(fs filesystem.FileSystem, options ...Option) *Scanner {
	s := &Scanner{
		fs:               fs,
		out:              io.Discard,
		exclude:          make(map[string]struct{}, len(DefaultExcludePatterns)),
		maxDirectories:   DefaultMaxDirectories,
		respectGitignore: true,
	}
	for _, p := range DefaultExcludePatterns {
		s.exclude[p] = struct{}{}
	}

	for _, option := range options {
		option(s)
	}

	return s
}

// Discover lists the projects directly under rootDir, sorted by name.
// The scan stops with a SCAN_TIMEOUT error once ctx expires.
func (s *Scanner) Discover(ctx context.Context, rootDir string) ([]*models.Project, error) {
	projects, err := s.scan(ctx, rootDir)
	if err == nil {
		return projects, nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return nil, apperr.WrapValidation(apperr.CodeScanTimeout, err,
			"Directory scanning timed out. Directory may be too large or have permission issues.")
	}
	return nil, apperr.WrapValidation(apperr.CodeDiscoveryFailed, err,
		"Failed to discover projects in %s: %v", rootDir, err)
}

func (s *Scanner) scan(ctx context.Context, rootDir string) ([]*models.Project, error) {
	log := logger.WithComponent("discovery")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := s.fs.ReadDir(rootDir)
	if err != nil {
		return nil, err
	}

	ignore, err := s.loadRootGitIgnore(rootDir)
	if err != nil {
		return nil, err
	}

	s.printf(tui.DimStyle.Render(fmt.Sprintf("  Scanning %d entries...", len(entries))))

	var projects []*models.Project
	processed := 0
	skipped := 0

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if processed >= s.maxDirectories {
			s.printf(tui.WarnStyle.Render(fmt.Sprintf("  ⚠️  Limited to %d directories for performance", s.maxDirectories)))
			break
		}

		name := entry.Name()
		if s.isExcluded(name) {
			skipped++
			continue
		}

		fullPath := filepath.Join(rootDir, name)

		info, err := s.fs.Stat(fullPath)
		if err != nil {
			s.printf(tui.DimStyle.Render(fmt.Sprintf("  ⚠️  Skipping invalid path: %s", name)))
			skipped++
			continue
		}
		if !info.IsDir() {
			continue
		}

		if ignore != nil {
			if match := ignore.Relative(name, true); match != nil && match.Ignore() {
				log.Debug("skipping gitignored directory", "dir", name)
				skipped++
				continue
			}
		}

		children, err := s.fs.ReadDir(fullPath)
		if err != nil {
			s.printf(tui.DimStyle.Render(fmt.Sprintf("  ⚠️  Skipping inaccessible directory: %s", name)))
			skipped++
			continue
		}
		if len(children) == 0 {
			skipped++
			continue
		}

		project := DetectProject(s.fs, fullPath)
		if project.Type != models.ProjectTypeUnknown || len(children) > minUnknownEntries {
			projects = append(projects, project)
			log.Debug("found project", "name", project.Name, "type", project.Type)
		} else {
			skipped++
		}

		processed++
	}

	if skipped > 0 {
		s.printf(tui.DimStyle.Render(fmt.Sprintf("  (Skipped %d non-project directories)", skipped)))
	}

	SortProjects(projects)
	return projects, nil
}

func (s *Scanner) isExcluded(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	_, excluded := s.exclude[name]
	return excluded
}

func (s *Scanner) loadRootGitIgnore(rootDir string) (gitignore.GitIgnore, error) {
	if !s.respectGitignore {
		return nil, nil
	}

	ignorePath := filepath.Join(rootDir, ".gitignore")
	if !s.fs.Exists(ignorePath) {
		return nil, nil
	}

	data, err := s.fs.ReadFile(ignorePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read .gitignore: %w", err)
	}

	return gitignore.New(bytes.NewReader(data), rootDir, nil), nil
}

func (s *Scanner) printf(line string) {
	_, _ = fmt.Fprintln(s.out, line)
}

// SortProjects orders projects by name, case-insensitively.
func SortProjects(projects []*models.Project) {
	sort.SliceStable(projects, func(i, j int) bool {
		a, b := strings.ToLower(projects[i].Name), strings.ToLower(projects[j].Name)
		if a != b {
			return a < b
		}
		return projects[i].Name < projects[j].Name
	})
}

// ProjectNames returns the names of projects in order.
func ProjectNames(projects []*models.Project) []string {
	names := make([]string, len(projects))
	for i, p := range projects {
		names[i] = p.Name
	}
	return names
}
