package workspace

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/sisi-cmux/sisi/internal/apperr"
	"github.com/sisi-cmux/sisi/internal/filesystem"
	"github.com/sisi-cmux/sisi/internal/models"
	"github.com/stretchr/testify/require"
)

func TestDiscover_DetectsTypes(t *testing.T) {
	fs := NewWorkspaceBuilder("/ws").
		AddProject("web-app", models.ProjectTypeNode).
		AddProject("api", models.ProjectTypeGo).
		AddProject("ml", models.ProjectTypePython).
		AddProject("engine", models.ProjectTypeRust).
		AddProject("site", models.ProjectTypeWeb).
		Build()

	projects, err := New(fs).Discover(context.Background(), "/ws")
	require.NoError(t, err)

	got := map[string]models.ProjectType{}
	for _, p := range projects {
		got[p.Name] = p.Type
		require.Equal(t, p.Type.Icon(), p.Icon)
		require.Equal(t, "/ws/"+p.Name, p.Path)
	}
	require.Equal(t, map[string]models.ProjectType{
		"web-app": models.ProjectTypeNode,
		"api":     models.ProjectTypeGo,
		"ml":      models.ProjectTypePython,
		"engine":  models.ProjectTypeRust,
		"site":    models.ProjectTypeWeb,
	}, got)
}

func TestDiscover_SortedCaseInsensitive(t *testing.T) {
	fs := NewWorkspaceBuilder("/ws").
		AddProject("zeta", models.ProjectTypeGo).
		AddProject("Alpha", models.ProjectTypeGo).
		AddProject("beta", models.ProjectTypeGo).
		Build()

	projects, err := New(fs).Discover(context.Background(), "/ws")
	require.NoError(t, err)
	require.Equal(t, []string{"Alpha", "beta", "zeta"}, ProjectNames(projects))
}

func TestDiscover_SkipsExcludedAndHidden(t *testing.T) {
	fs := NewWorkspaceBuilder("/ws").
		AddProject("app", models.ProjectTypeNode).
		AddProject("node_modules", models.ProjectTypeNode).
		AddProject(".hidden", models.ProjectTypeGo).
		AddProject("vendor", models.ProjectTypeGo).
		AddProject("scratch", models.ProjectTypeGo).
		Build()

	projects, err := New(fs, WithExcludePatterns("scratch")).Discover(context.Background(), "/ws")
	require.NoError(t, err)
	require.Equal(t, []string{"app"}, ProjectNames(projects))
}

func TestDiscover_UnknownDirectories(t *testing.T) {
	fs := NewWorkspaceBuilder("/ws").
		AddProject("notes", models.ProjectTypeUnknown).
		AddProject("docs", models.ProjectTypeUnknown).
		AddFiles("docs", "a.md", "b.md", "c.md").
		AddDir("empty").
		AddRootFile("README.md", "hello").
		Build()

	var out bytes.Buffer
	projects, err := New(fs, WithOutput(&out)).Discover(context.Background(), "/ws")
	require.NoError(t, err)

	// notes has a single entry, docs has four.
	require.Len(t, projects, 1)
	require.Equal(t, "docs", projects[0].Name)
	require.Equal(t, models.ProjectTypeUnknown, projects[0].Type)
	require.Equal(t, models.IconGeneric, projects[0].Icon)

	require.Contains(t, out.String(), "Scanning 4 entries...")
	require.Contains(t, out.String(), "(Skipped 2 non-project directories)")
}

func TestDiscover_MarkerOrder(t *testing.T) {
	fs := NewWorkspaceBuilder("/ws").
		AddProject("fullstack", models.ProjectTypeGo).
		AddFiles("fullstack", "package.json").
		Build()

	projects, err := New(fs).Discover(context.Background(), "/ws")
	require.NoError(t, err)
	require.Len(t, projects, 1)
	require.Equal(t, models.ProjectTypeNode, projects[0].Type)
}

func TestDiscover_UnreadableDirectory(t *testing.T) {
	fs := NewWorkspaceBuilder("/ws").
		AddProject("ok", models.ProjectTypeGo).
		AddProject("locked", models.ProjectTypeGo).
		Unreadable("locked").
		Build()

	var out bytes.Buffer
	projects, err := New(fs, WithOutput(&out)).Discover(context.Background(), "/ws")
	require.NoError(t, err)
	require.Equal(t, []string{"ok"}, ProjectNames(projects))
	require.Contains(t, out.String(), "Skipping inaccessible directory: locked")
}

func TestDiscover_Gitignore(t *testing.T) {
	build := func() *filesystem.MockFileSystem {
		return NewWorkspaceBuilder("/ws").
			AddRootFile(".gitignore", "generated/\n").
			AddProject("app", models.ProjectTypeGo).
			AddProject("generated", models.ProjectTypeGo).
			Build()
	}

	projects, err := New(build()).Discover(context.Background(), "/ws")
	require.NoError(t, err)
	require.Equal(t, []string{"app"}, ProjectNames(projects))

	projects, err = New(build(), WithGitignore(false)).Discover(context.Background(), "/ws")
	require.NoError(t, err)
	require.Equal(t, []string{"app", "generated"}, ProjectNames(projects))
}

func TestDiscover_MaxDirectories(t *testing.T) {
	wb := NewWorkspaceBuilder("/ws")
	for i := 0; i < 5; i++ {
		wb.AddProject(fmt.Sprintf("p%d", i), models.ProjectTypeGo)
	}

	var out bytes.Buffer
	projects, err := New(wb.Build(), WithMaxDirectories(3), WithOutput(&out)).Discover(context.Background(), "/ws")
	require.NoError(t, err)
	require.Len(t, projects, 3)
	require.Contains(t, out.String(), "Limited to 3 directories")
}

func TestDiscover_EmptyRoot(t *testing.T) {
	fs := NewWorkspaceBuilder("/ws").Build()

	projects, err := New(fs).Discover(context.Background(), "/ws")
	require.NoError(t, err)
	require.Empty(t, projects)
}

func TestDiscover_Timeout(t *testing.T) {
	fs := NewWorkspaceBuilder("/ws").AddProject("app", models.ProjectTypeGo).Build()

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	_, err := New(fs).Discover(ctx, "/ws")
	require.Error(t, err)
	require.Equal(t, apperr.CodeScanTimeout, apperr.Code(err))
}

func TestDiscover_MissingRoot(t *testing.T) {
	fs := filesystem.NewMockFileSystem()

	_, err := New(fs).Discover(context.Background(), "/nope")
	require.Error(t, err)
	require.Equal(t, apperr.CodeDiscoveryFailed, apperr.Code(err))
	require.Contains(t, err.Error(), "/nope")
}

func TestDetectProjectType(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		want  models.ProjectType
	}{
		{"node", []string{"package.json"}, models.ProjectTypeNode},
		{"requirements", []string{"requirements.txt"}, models.ProjectTypePython},
		{"pyproject", []string{"pyproject.toml"}, models.ProjectTypePython},
		{"cargo", []string{"Cargo.toml"}, models.ProjectTypeRust},
		{"gomod", []string{"go.mod"}, models.ProjectTypeGo},
		{"html", []string{"index.html"}, models.ProjectTypeWeb},
		{"python before go", []string{"go.mod", "requirements.txt"}, models.ProjectTypePython},
		{"nothing", []string{"notes.txt"}, models.ProjectTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := filesystem.NewMockFileSystem()
			fs.AddDir("/p")
			for _, f := range tt.files {
				fs.AddFile("/p/"+f, nil)
			}
			require.Equal(t, tt.want, DetectProjectType(fs, "/p"))
		})
	}
}

func TestValidateDirectory(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddDir("/ok")
	fs.AddDir("/locked")
	fs.SetUnreadable("/locked")
	fs.AddFile("/file.txt", []byte("x"))

	tests := []struct {
		name string
		path string
		code string
	}{
		{"valid", "/ok", ""},
		{"empty", "", apperr.CodeInvalidPath},
		{"missing", "/missing", apperr.CodeNotFound},
		{"file", "/file.txt", apperr.CodeNotDirectory},
		{"unreadable", "/locked", apperr.CodeNotReadable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDirectory(fs, tt.path)
			if tt.code == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Equal(t, tt.code, apperr.Code(err))
		})
	}
}

func TestResolveDirectory(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.SetCurrentDir("/home/me")

	dir, err := ResolveDirectory(fs, "")
	require.NoError(t, err)
	require.Equal(t, "/home/me", dir)

	dir, err = ResolveDirectory(fs, "code")
	require.NoError(t, err)
	require.Equal(t, "/home/me/code", dir)

	dir, err = ResolveDirectory(fs, "/srv/../opt")
	require.NoError(t, err)
	require.Equal(t, "/opt", dir)
}
