package models

import (
	"strings"
)

// ProjectType represents the kind of project found in a workspace directory.
type ProjectType string

const (
	ProjectTypeNode    ProjectType = "node"
	ProjectTypePython  ProjectType = "python"
	ProjectTypeRust    ProjectType = "rust"
	ProjectTypeGo      ProjectType = "go"
	ProjectTypeWeb     ProjectType = "web"
	ProjectTypeUnknown ProjectType = "unknown"
)

// Icons shown in front of window names.
const (
	IconNode    = "📦"
	IconPython  = "🐍"
	IconGear    = "⚙️"
	IconWeb     = "🌐"
	IconGeneric = "📁"
)

// Marker maps a file name to the project type it identifies.
type Marker struct {
	File string
	Type ProjectType
}

// Markers is evaluated in order; the first file present decides the type.
var Markers = []Marker{
	{File: "package.json", Type: ProjectTypeNode},
	{File: "requirements.txt", Type: ProjectTypePython},
	{File: "pyproject.toml", Type: ProjectTypePython},
	{File: "Cargo.toml", Type: ProjectTypeRust},
	{File: "go.mod", Type: ProjectTypeGo},
	{File: "index.html", Type: ProjectTypeWeb},
}

// MarkerFiles returns the marker file names in evaluation order.
func MarkerFiles() []string {
	files := make([]string, len(Markers))
	for i, m := range Markers {
		files[i] = m.File
	}
	return files
}

// Icon returns the display icon for the type.
func (t ProjectType) Icon() string {
	switch t {
	case ProjectTypeNode:
		return IconNode
	case ProjectTypePython:
		return IconPython
	case ProjectTypeRust, ProjectTypeGo:
		return IconGear
	case ProjectTypeWeb:
		return IconWeb
	default:
		return IconGeneric
	}
}

func (t ProjectType) String() string {
	return string(t)
}

// Project is a sub-project discovered under the workspace root.
type Project struct {
	// Name is the directory name, used as the window label
	Name string

	// Path is the absolute path to the project directory
	Path string

	// Type is the detected project type
	Type ProjectType

	// Icon is the display icon for Type
	Icon string
}

// NewProject creates a new Project with the icon for its type
func NewProject(name, path string, projectType ProjectType) *Project {
	return &Project{
		Name: name,
		Path: path,
		Type: projectType,
		Icon: projectType.Icon(),
	}
}

// WindowName is the tmux window name for the project.
func (p *Project) WindowName() string {
	return p.Icon + " " + p.Name
}

// windowIcons includes the bare gear because some terminals drop the variation selector.
var windowIcons = []string{IconNode, IconPython, IconGear, "\u2699", IconWeb, IconGeneric}

// ProjectNameFromWindow strips a leading project icon from a window name.
func ProjectNameFromWindow(windowName string) string {
	for _, icon := range windowIcons {
		if strings.HasPrefix(windowName, icon) {
			return strings.TrimSpace(strings.TrimPrefix(windowName, icon))
		}
	}
	return strings.TrimSpace(windowName)
}

// TypeLabelFromWindow returns a human label for the icon carried in a window name.
func TypeLabelFromWindow(windowName string) string {
	switch {
	case strings.Contains(windowName, IconNode):
		return "Node.js"
	case strings.Contains(windowName, IconPython):
		return "Python"
	case strings.Contains(windowName, "\u2699"):
		return "Rust/Go"
	case strings.Contains(windowName, IconWeb):
		return "Web"
	case strings.Contains(windowName, IconGeneric):
		return "Generic"
	default:
		return ""
	}
}

// GroupByType groups projects by type, keeping the order of first appearance.
func GroupByType(projects []*Project) ([]ProjectType, map[ProjectType][]*Project) {
	var order []ProjectType
	groups := make(map[ProjectType][]*Project)
	for _, p := range projects {
		if _, ok := groups[p.Type]; !ok {
			order = append(order, p.Type)
		}
		groups[p.Type] = append(groups[p.Type], p)
	}
	return order, groups
}
