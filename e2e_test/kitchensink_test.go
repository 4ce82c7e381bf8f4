package e2e_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/sisi-cmux/sisi/internal/filesystem"
	"github.com/sisi-cmux/sisi/internal/models"
	"github.com/sisi-cmux/sisi/internal/quickactions"
	"github.com/sisi-cmux/sisi/internal/workspace"
	"github.com/stretchr/testify/require"
)

func TestKitchensinkDiscovery(t *testing.T) {
	root, err := filepath.Abs(filepath.Join("..", "kitchensink"))
	require.NoError(t, err)

	fs := filesystem.NewOSFileSystem()
	require.NoError(t, workspace.ValidateDirectory(fs, root))

	var out bytes.Buffer
	projects, err := workspace.New(fs, workspace.WithOutput(&out)).Discover(context.Background(), root)
	require.NoError(t, err)

	types := map[string]models.ProjectType{}
	for _, p := range projects {
		types[p.Name] = p.Type
		require.Equal(t, filepath.Join(root, p.Name), p.Path)
	}

	require.Equal(t, map[string]models.ProjectType{
		"backend": models.ProjectTypeGo,
		"engine":  models.ProjectTypeRust,
		"ml":      models.ProjectTypePython,
		"site":    models.ProjectTypeWeb,
		"www":     models.ProjectTypeNode,
	}, types)
	require.Equal(t, []string{"backend", "engine", "ml", "site", "www"}, workspace.ProjectNames(projects))
	require.Contains(t, out.String(), "(Skipped 1 non-project directories)")
}

func TestKitchensinkDependencyCounts(t *testing.T) {
	root, err := filepath.Abs(filepath.Join("..", "kitchensink"))
	require.NoError(t, err)
	fs := filesystem.NewOSFileSystem()

	tests := []struct {
		project string
		total   int
		source  string
	}{
		{project: "www", total: 4, source: "package.json"},
		{project: "ml", total: 3, source: "requirements.txt"},
		{project: "engine", total: 2, source: "Cargo.toml"},
		{project: "backend", total: 1, source: "go.mod"},
	}

	for _, tt := range tests {
		t.Run(tt.project, func(t *testing.T) {
			dir := filepath.Join(root, tt.project)
			deps := quickactions.CountDependencies(fs, dir, workspace.DetectProjectType(fs, dir))
			require.NotNil(t, deps)
			require.Equal(t, tt.total, deps.Total)
			require.Equal(t, tt.source, deps.Source)
		})
	}

	require.Nil(t, quickactions.CountDependencies(fs, filepath.Join(root, "site"), models.ProjectTypeWeb))
}
