package quickactions

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/sisi-cmux/sisi/internal/executor"
	"github.com/sisi-cmux/sisi/internal/filesystem"
	"github.com/sisi-cmux/sisi/internal/git"
	"github.com/sisi-cmux/sisi/internal/logger"
	"github.com/sisi-cmux/sisi/internal/models"
	"github.com/sisi-cmux/sisi/internal/workspace"
)

const (
	maxProcesses  = 3
	statusTimeout = 10 * time.Second
)

// Status is the snapshot shown at the top of the panel.
type Status struct {
	Type         models.ProjectType
	Icon         string
	Git          *git.Status
	Processes    []string
	Dependencies *Dependencies
	UpdatedAt    time.Time
}

// HasGit reports whether a git branch is known.
func (s *Status) HasGit() bool {
	return s.Git != nil && s.Git.Branch != ""
}

// Gatherer collects project status from the filesystem, git and ps.
type Gatherer struct {
	fs   filesystem.FileSystem
	exec executor.CommandExecutor
	git  func(dir string) git.GitClient
	now  func() time.Time
}

// NewGatherer creates a Gatherer backed by real git through exec.
func NewGatherer(fs filesystem.FileSystem, exec executor.CommandExecutor) *Gatherer {
	return &Gatherer{
		fs:   fs,
		exec: exec,
		git: func(dir string) git.GitClient {
			return git.NewOSGitClient(exec, dir)
		},
		now: time.Now,
	}
}

// Gather builds the Status for dir. Missing git or ps output leaves those parts empty.
func (g *Gatherer) Gather(ctx context.Context, dir string) *Status {
	ctx, cancel := context.WithTimeout(ctx, statusTimeout)
	defer cancel()

	projectType := workspace.DetectProjectType(g.fs, dir)
	status := &Status{
		Type:         projectType,
		Icon:         projectType.Icon(),
		Processes:    g.runningProcesses(ctx, dir),
		Dependencies: CountDependencies(g.fs, dir, projectType),
		UpdatedAt:    g.now(),
	}

	gs, err := git.GetStatus(g.git(dir).WithContext(ctx))
	if err != nil {
		logger.WithComponent("quickactions").Debug("no git status", "dir", dir, "error", err)
	} else {
		status.Git = gs
	}

	return status
}

func (g *Gatherer) runningProcesses(ctx context.Context, dir string) []string {
	stdout, _, err := g.exec.Run(ctx, "", "ps", "aux")
	if err != nil {
		return nil
	}
	return matchProcesses(string(stdout), dir)
}

// matchProcesses keeps up to three ps lines mentioning dir or a common toolchain.
func matchProcesses(psOutput, dir string) []string {
	pattern := regexp.MustCompile("(" + regexp.QuoteMeta(dir) + "|npm|python|cargo|go)")

	var matched []string
	for i, line := range strings.Split(psOutput, "\n") {
		// header
		if i == 0 && strings.HasPrefix(strings.TrimSpace(line), "USER") {
			continue
		}
		if strings.TrimSpace(line) == "" || !pattern.MatchString(line) {
			continue
		}
		matched = append(matched, line)
		if len(matched) == maxProcesses {
			break
		}
	}
	return matched
}
