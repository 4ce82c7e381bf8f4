package quickactions

import (
	"bytes"
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sisi-cmux/sisi/internal/executor"
	"github.com/sisi-cmux/sisi/internal/filesystem"
	"github.com/sisi-cmux/sisi/internal/git"
	"github.com/sisi-cmux/sisi/internal/models"
	"github.com/stretchr/testify/require"
)

func keys(actions []Action) []string {
	out := make([]string, len(actions))
	for i, a := range actions {
		out[i] = a.Key
	}
	return out
}

func TestActions(t *testing.T) {
	withGit := &git.Status{Branch: "main"}

	tests := []struct {
		name   string
		status *Status
		want   []string
	}{
		{"node with git", &Status{Type: models.ProjectTypeNode, Git: withGit}, []string{"e", "f", "g", "l", "d", "t", "b", "i"}},
		{"node", &Status{Type: models.ProjectTypeNode}, []string{"e", "f", "d", "t", "b", "i"}},
		{"python", &Status{Type: models.ProjectTypePython}, []string{"e", "f", "d", "t", "i"}},
		{"rust", &Status{Type: models.ProjectTypeRust, Git: withGit}, []string{"e", "f", "g", "l", "d", "t", "b"}},
		{"go", &Status{Type: models.ProjectTypeGo}, []string{"e", "f", "d", "t", "b"}},
		{"web", &Status{Type: models.ProjectTypeWeb}, []string{"e", "f"}},
		{"unknown", &Status{Type: models.ProjectTypeUnknown}, []string{"e", "f"}},
		{"detached head", &Status{Type: models.ProjectTypeGo, Git: &git.Status{}}, []string{"e", "f", "d", "t", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, keys(Actions(tt.status, "")))
		})
	}

	require.Nil(t, Actions(nil, ""))
}

func TestActions_Commands(t *testing.T) {
	actions := Actions(&Status{Type: models.ProjectTypeGo, Git: &git.Status{Branch: "main"}}, "nvim .")

	commands := map[string]string{}
	for _, a := range actions {
		commands[a.Key] = a.Command
	}
	require.Equal(t, map[string]string{
		"e": "nvim .",
		"f": "open .",
		"g": "git status",
		"l": "git log --oneline -10",
		"d": "go run .",
		"t": "go test ./...",
		"b": "go build",
	}, commands)

	require.Equal(t, "code .", Actions(&Status{}, "")[0].Command)
}

func TestFindAction_CaseInsensitive(t *testing.T) {
	actions := Actions(&Status{Type: models.ProjectTypeNode}, "")

	a, ok := FindAction(actions, "D")
	require.True(t, ok)
	require.Equal(t, "npm run dev", a.Command)

	_, ok = FindAction(actions, "z")
	require.False(t, ok)
}

func TestCountDependencies(t *testing.T) {
	tests := []struct {
		name   string
		files  map[string]string
		typ    models.ProjectType
		want   int
		source string
	}{
		{
			name:   "package.json",
			files:  map[string]string{"package.json": `{"dependencies": {"react": "^18", "vite": "^5"}, "devDependencies": {"vitest": "^1", "vite": "^5"}}`},
			typ:    models.ProjectTypeNode,
			want:   3,
			source: "package.json",
		},
		{
			name:   "requirements.txt",
			files:  map[string]string{"requirements.txt": "# web\nflask==3.0\n\nrequests\n#pinned\nnumpy\n"},
			typ:    models.ProjectTypePython,
			want:   3,
			source: "requirements.txt",
		},
		{
			name:   "pyproject.toml",
			files:  map[string]string{"pyproject.toml": "[project]\nname = \"x\"\ndependencies = [\"httpx\", \"pydantic>=2\"]\n"},
			typ:    models.ProjectTypePython,
			want:   2,
			source: "pyproject.toml",
		},
		{
			name: "Cargo.toml",
			files: map[string]string{"Cargo.toml": "[package]\nname = \"x\"\n\n[dependencies]\nserde = { version = \"1\", features = [\"derive\"] }\ntokio = \"1\"\n\n" +
				"[dev-dependencies]\ninsta = \"1\"\n"},
			typ:    models.ProjectTypeRust,
			want:   3,
			source: "Cargo.toml",
		},
		{
			name:   "go.mod",
			files:  map[string]string{"go.mod": "module example.com/x\n\ngo 1.24\n\nrequire (\n\tgithub.com/spf13/cobra v1.10.1\n\tgolang.org/x/term v0.35.0 // indirect\n)\n"},
			typ:    models.ProjectTypeGo,
			want:   2,
			source: "go.mod",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := filesystem.NewMockFileSystem()
			fs.AddDir("/p")
			for name, content := range tt.files {
				fs.AddFile("/p/"+name, []byte(content))
			}

			deps := CountDependencies(fs, "/p", tt.typ)
			require.NotNil(t, deps)
			require.Equal(t, tt.want, deps.Total)
			require.Equal(t, tt.source, deps.Source)
		})
	}
}

func TestCountDependencies_Unavailable(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/p/package.json", []byte("{not json"))
	fs.AddFile("/p/index.html", []byte("<html>"))

	require.Nil(t, CountDependencies(fs, "/p", models.ProjectTypeNode))
	require.Nil(t, CountDependencies(fs, "/p", models.ProjectTypeWeb))
	require.Nil(t, CountDependencies(fs, "/p", models.ProjectTypeGo))
}

func TestMatchProcesses(t *testing.T) {
	ps := "USER PID %CPU COMMAND\n" +
		"me 1 0.0 /usr/bin/zsh\n" +
		"me 2 0.0 node /usr/bin/npm run dev\n" +
		"me 3 0.0 vim /ws/api/main.rs\n" +
		"me 4 0.0 python manage.py runserver\n" +
		"me 5 0.0 cargo watch\n"

	got := matchProcesses(ps, "/ws/api")
	require.Equal(t, []string{
		"me 2 0.0 node /usr/bin/npm run dev",
		"me 3 0.0 vim /ws/api/main.rs",
		"me 4 0.0 python manage.py runserver",
	}, got)
}

func TestGather(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/ws/api/go.mod", []byte("module example.com/api\n\ngo 1.24\n\nrequire github.com/spf13/cobra v1.10.1\n"))

	mock := executor.NewMockExecutor()
	mock.AddExactMatch("ps", []string{"aux"}, executor.MockResponse{Stdout: []byte("USER PID\nme 9 go run .\n")})

	gitMock := git.NewMockGitClient()
	gitMock.SetBranch("feature")
	gitMock.SetDirty(true)
	gitMock.Commit("Bump cobra")

	fixed := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)
	g := NewGatherer(fs, mock)
	g.git = func(string) git.GitClient { return gitMock }
	g.now = func() time.Time { return fixed }

	status := g.Gather(context.Background(), "/ws/api")
	require.Equal(t, models.ProjectTypeGo, status.Type)
	require.Equal(t, models.IconGear, status.Icon)
	require.True(t, status.HasGit())
	require.Equal(t, "⚠️ changes", status.Git.Label())
	require.Equal(t, "Bump cobra", status.Git.LastCommit)
	require.Equal(t, []string{"me 9 go run ."}, status.Processes)
	require.Equal(t, 1, status.Dependencies.Total)
	require.Equal(t, fixed, status.UpdatedAt)
}

func TestGather_NoGit(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/p/index.html", []byte("<html>"))

	g := NewGatherer(fs, executor.NewMockExecutor())
	g.git = func(string) git.GitClient { return git.NewMockNonRepo() }

	status := g.Gather(context.Background(), "/p")
	require.Equal(t, models.ProjectTypeWeb, status.Type)
	require.False(t, status.HasGit())
	require.Nil(t, status.Dependencies)
	require.Empty(t, status.Processes)
}

func testPanel(status *Status) (*Panel, *executor.MockExecutor, *bytes.Buffer) {
	mock := executor.NewMockExecutor()
	var out bytes.Buffer
	return NewPanel("/ws/web", status, mock, &out, ""), mock, &out
}

func TestPanel_Show(t *testing.T) {
	p, _, out := testPanel(&Status{
		Type:         models.ProjectTypeNode,
		Icon:         models.IconNode,
		Git:          &git.Status{Branch: "main", LastCommit: "9f8e7d6 Add checkout page"},
		Processes:    []string{"a", "b"},
		Dependencies: &Dependencies{Total: 12},
		UpdatedAt:    time.Date(2026, 1, 2, 9, 30, 0, 0, time.UTC),
	})

	p.Show()
	s := out.String()
	require.Contains(t, s, "▶ sisi Quick Actions")
	require.Contains(t, s, "/ws/web")
	require.Contains(t, s, "📦 Type: node")
	require.Contains(t, s, "🌿 Branch: main ✅ clean")
	require.Contains(t, s, "📝 Last commit: 9f8e7d6 Add checkout page")
	require.Contains(t, s, "📦 Dependencies: 12 total")
	require.Contains(t, s, "🏃 Running: 2 processes")
	require.Contains(t, s, "⏰ Updated: 09:30:00")
	require.Contains(t, s, "D - Dev Server")
	require.Contains(t, s, "ESC - Close panel")
}

func TestPanel_Execute(t *testing.T) {
	p, mock, out := testPanel(&Status{Type: models.ProjectTypeNode})

	require.NoError(t, p.Execute(context.Background(), "T"))

	calls := mock.Calls()
	require.Len(t, calls, 1)
	require.Equal(t, "/ws/web", calls[0].Dir)
	require.Equal(t, []string{"-c", "npm test"}, calls[0].Args)
	require.True(t, calls[0].Interactive)
	require.Contains(t, out.String(), "🚀 Executing: Run Tests")
}

func TestPanel_ExecuteUnknown(t *testing.T) {
	p, mock, out := testPanel(&Status{Type: models.ProjectTypeWeb})

	require.NoError(t, p.Execute(context.Background(), "d"))
	require.Empty(t, mock.Calls())
	require.Contains(t, out.String(), "❌ Unknown action: d")
}

func press(m tea.Model, key string) tea.Model {
	var msg tea.KeyMsg
	switch key {
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, _ := m.Update(msg)
	return next
}

func TestPicker(t *testing.T) {
	actions := Actions(&Status{Type: models.ProjectTypeGo}, "")

	t.Run("action key", func(t *testing.T) {
		m := press(NewPicker("", actions), "t").(PickerModel)
		require.True(t, m.IsDone())
		a, ok := m.Selected()
		require.True(t, ok)
		require.Equal(t, "go test ./...", a.Command)
		require.Empty(t, m.View())
	})

	t.Run("arrows and enter", func(t *testing.T) {
		var m tea.Model = NewPicker("", actions)
		m = press(m, "down")
		m = press(m, "down")
		m = press(m, "up")
		m = press(m, "enter")
		a, ok := m.(PickerModel).Selected()
		require.True(t, ok)
		require.Equal(t, "f", a.Key)
	})

	t.Run("escape", func(t *testing.T) {
		m := press(NewPicker("", actions), "esc").(PickerModel)
		require.True(t, m.IsDone())
		_, ok := m.Selected()
		require.False(t, ok)
	})

	t.Run("quit", func(t *testing.T) {
		m := press(NewPicker("", actions), "q").(PickerModel)
		require.True(t, m.IsDone())
		_, ok := m.Selected()
		require.False(t, ok)
	})

	t.Run("view", func(t *testing.T) {
		view := NewPicker("HEADER\n", actions).View()
		require.Contains(t, view, "HEADER")
		require.Contains(t, view, "Go Test")
		require.Contains(t, view, "ESC/Q to close")
	})
}
