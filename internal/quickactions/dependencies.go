package quickactions

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/sisi-cmux/sisi/internal/filesystem"
	"github.com/sisi-cmux/sisi/internal/models"
	"golang.org/x/mod/modfile"
)

// Dependencies counts the declared dependencies of a project.
type Dependencies struct {
	Total int
	// Source is the manifest the count was read from
	Source string
}

type packageJSON struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

type pyprojectTOML struct {
	Project struct {
		Dependencies []string `toml:"dependencies"`
	} `toml:"project"`
}

type cargoTOML struct {
	Dependencies    map[string]any `toml:"dependencies"`
	DevDependencies map[string]any `toml:"dev-dependencies"`
}

// CountDependencies reads the manifest for projectType in dir.
// It returns nil when the type has no manifest or the manifest cannot be read.
func CountDependencies(fs filesystem.FileSystem, dir string, projectType models.ProjectType) *Dependencies {
	var (
		deps *Dependencies
		err  error
	)

	switch projectType {
	case models.ProjectTypeNode:
		deps, err = countPackageJSON(fs, filepath.Join(dir, "package.json"))
	case models.ProjectTypePython:
		deps, err = countRequirements(fs, filepath.Join(dir, "requirements.txt"))
		if err != nil {
			deps, err = countPyproject(fs, filepath.Join(dir, "pyproject.toml"))
		}
	case models.ProjectTypeRust:
		deps, err = countCargo(fs, filepath.Join(dir, "Cargo.toml"))
	case models.ProjectTypeGo:
		deps, err = countGoMod(fs, filepath.Join(dir, "go.mod"))
	default:
		return nil
	}

	if err != nil {
		return nil
	}
	return deps
}

func countPackageJSON(fs filesystem.FileSystem, path string) (*Dependencies, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	names := make(map[string]struct{}, len(pkg.Dependencies)+len(pkg.DevDependencies))
	for name := range pkg.Dependencies {
		names[name] = struct{}{}
	}
	for name := range pkg.DevDependencies {
		names[name] = struct{}{}
	}
	return &Dependencies{Total: len(names), Source: "package.json"}, nil
}

func countRequirements(fs filesystem.FileSystem, path string) (*Dependencies, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, err
	}
	total := 0
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		total++
	}
	return &Dependencies{Total: total, Source: "requirements.txt"}, nil
}

func countPyproject(fs filesystem.FileSystem, path string) (*Dependencies, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var py pyprojectTOML
	if err := toml.Unmarshal(data, &py); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &Dependencies{Total: len(py.Project.Dependencies), Source: "pyproject.toml"}, nil
}

func countCargo(fs filesystem.FileSystem, path string) (*Dependencies, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cargo cargoTOML
	if err := toml.Unmarshal(data, &cargo); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &Dependencies{Total: len(cargo.Dependencies) + len(cargo.DevDependencies), Source: "Cargo.toml"}, nil
}

func countGoMod(fs filesystem.FileSystem, path string) (*Dependencies, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, err
	}
	modFile, err := modfile.Parse(path, data, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &Dependencies{Total: len(modFile.Require), Source: "go.mod"}, nil
}
