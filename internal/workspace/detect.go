package workspace

import (
	"path/filepath"

	"github.com/sisi-cmux/sisi/internal/filesystem"
	"github.com/sisi-cmux/sisi/internal/models"
)

// DetectProjectType returns the type of the first marker file present in dir.
func DetectProjectType(fs filesystem.FileSystem, dir string) models.ProjectType {
	for _, marker := range models.Markers {
		if fs.Exists(filepath.Join(dir, marker.File)) {
			return marker.Type
		}
	}
	return models.ProjectTypeUnknown
}

// DetectProject builds a Project for dir using its base name.
func DetectProject(fs filesystem.FileSystem, dir string) *models.Project {
	return models.NewProject(filepath.Base(dir), dir, DetectProjectType(fs, dir))
}

func absFrom(cwd, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(cwd, path)
}
