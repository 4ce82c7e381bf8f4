package workspace

import (
	"fmt"
	"path/filepath"

	"github.com/sisi-cmux/sisi/internal/filesystem"
	"github.com/sisi-cmux/sisi/internal/models"
)

// WorkspaceBuilder helps create test workspaces
type WorkspaceBuilder struct {
	fs       *filesystem.MockFileSystem
	root     string
	projects []ProjectConfig
}

// ProjectConfig describes a project laid out by the builder
type ProjectConfig struct {
	Name string
	Type models.ProjectType
}

// NewWorkspaceBuilder creates a new WorkspaceBuilder
func NewWorkspaceBuilder(root string) *WorkspaceBuilder {
	fs := filesystem.NewMockFileSystem()
	fs.AddDir(root)
	fs.SetCurrentDir(root)

	return &WorkspaceBuilder{
		fs:   fs,
		root: root,
	}
}

// AddProject adds a project directory containing the first marker file of its type.
func (wb *WorkspaceBuilder) AddProject(name string, projectType models.ProjectType) *WorkspaceBuilder {
	wb.projects = append(wb.projects, ProjectConfig{Name: name, Type: projectType})

	projectRoot := filepath.Join(wb.root, name)
	wb.fs.AddDir(projectRoot)

	for _, marker := range models.Markers {
		if marker.Type == projectType {
			wb.fs.AddFile(filepath.Join(projectRoot, marker.File), []byte(markerContent(marker.File, name)))
			return wb
		}
	}

	// Unknown projects get plain files.
	wb.fs.AddFile(filepath.Join(projectRoot, "README.md"), []byte("# "+name+"\n"))
	return wb
}

// AddFiles adds files (relative to the project) to an existing project directory.
func (wb *WorkspaceBuilder) AddFiles(project string, files ...string) *WorkspaceBuilder {
	for _, f := range files {
		wb.fs.AddFile(filepath.Join(wb.root, project, f), []byte(""))
	}
	return wb
}

// AddDir adds an empty directory under the root.
func (wb *WorkspaceBuilder) AddDir(name string) *WorkspaceBuilder {
	wb.fs.AddDir(filepath.Join(wb.root, name))
	return wb
}

// AddRootFile adds a file directly under the root.
func (wb *WorkspaceBuilder) AddRootFile(name, content string) *WorkspaceBuilder {
	wb.fs.AddFile(filepath.Join(wb.root, name), []byte(content))
	return wb
}

// Unreadable marks a directory under the root as unreadable.
func (wb *WorkspaceBuilder) Unreadable(name string) *WorkspaceBuilder {
	wb.fs.SetUnreadable(filepath.Join(wb.root, name))
	return wb
}

// Build returns the mock filesystem
func (wb *WorkspaceBuilder) Build() *filesystem.MockFileSystem {
	return wb.fs
}

// Root returns the workspace root path
func (wb *WorkspaceBuilder) Root() string {
	return wb.root
}

// Projects returns the configured projects
func (wb *WorkspaceBuilder) Projects() []ProjectConfig {
	return wb.projects
}

func markerContent(file, name string) string {
	switch file {
	case "package.json":
		return fmt.Sprintf(`{"name": %q, "scripts": {"dev": "vite"}}`, name)
	case "go.mod":
		return fmt.Sprintf("module example.com/%s\n\ngo 1.24\n", name)
	case "Cargo.toml":
		return fmt.Sprintf("[package]\nname = %q\nversion = \"0.1.0\"\n", name)
	case "pyproject.toml":
		return fmt.Sprintf("[project]\nname = %q\n", name)
	case "index.html":
		return "<html></html>\n"
	default:
		return ""
	}
}
