// Package quickactions shows project status and runs one-key actions for a project.
package quickactions

import (
	"strings"

	"github.com/sisi-cmux/sisi/internal/config"
	"github.com/sisi-cmux/sisi/internal/models"
)

// Action is a command bound to a single key in the panel.
type Action struct {
	Key         string
	Title       string
	Command     string
	Description string
	Color       string
}

// Actions lists what the panel offers for status.
func Actions(status *Status, editorCommand string) []Action {
	if status == nil {
		return nil
	}
	if editorCommand == "" {
		editorCommand = config.DefaultEditorCommand
	}

	actions := []Action{
		{Key: "e", Title: "Open in Editor", Command: editorCommand, Description: "Open project in editor", Color: "#61AFEF"},
		{Key: "f", Title: "File Explorer", Command: "open .", Description: "Open in Finder/Explorer", Color: "#56B6C2"},
	}

	if status.HasGit() {
		actions = append(actions,
			Action{Key: "g", Title: "Git Status", Command: "git status", Description: "Show git status", Color: "#04B575"},
			Action{Key: "l", Title: "Git Log", Command: "git log --oneline -10", Description: "Show recent commits", Color: "#04B575"},
		)
	}

	switch status.Type {
	case models.ProjectTypeNode:
		actions = append(actions,
			Action{Key: "d", Title: "Dev Server", Command: "npm run dev", Description: "Start development server", Color: "#E5C07B"},
			Action{Key: "t", Title: "Run Tests", Command: "npm test", Description: "Run test suite", Color: "#C678DD"},
			Action{Key: "b", Title: "Build", Command: "npm run build", Description: "Build for production", Color: "#E06C75"},
			Action{Key: "i", Title: "Install Deps", Command: "npm install", Description: "Install dependencies", Color: "#61AFEF"},
		)
	case models.ProjectTypePython:
		actions = append(actions,
			Action{Key: "d", Title: "Run App", Command: "python main.py", Description: "Run Python application", Color: "#E5C07B"},
			Action{Key: "t", Title: "Run Tests", Command: "pytest", Description: "Run Python tests", Color: "#C678DD"},
			Action{Key: "i", Title: "Install Deps", Command: "pip install -r requirements.txt", Description: "Install dependencies", Color: "#61AFEF"},
		)
	case models.ProjectTypeRust:
		actions = append(actions,
			Action{Key: "d", Title: "Cargo Run", Command: "cargo run", Description: "Run Rust application", Color: "#E5C07B"},
			Action{Key: "t", Title: "Cargo Test", Command: "cargo test", Description: "Run Rust tests", Color: "#C678DD"},
			Action{Key: "b", Title: "Cargo Build", Command: "cargo build", Description: "Build Rust project", Color: "#E06C75"},
		)
	case models.ProjectTypeGo:
		actions = append(actions,
			Action{Key: "d", Title: "Go Run", Command: "go run .", Description: "Run Go application", Color: "#E5C07B"},
			Action{Key: "t", Title: "Go Test", Command: "go test ./...", Description: "Run Go tests", Color: "#C678DD"},
			Action{Key: "b", Title: "Go Build", Command: "go build", Description: "Build Go binary", Color: "#E06C75"},
		)
	}

	return actions
}

// FindAction looks key up case-insensitively.
func FindAction(actions []Action, key string) (Action, bool) {
	for _, a := range actions {
		if strings.EqualFold(a.Key, key) {
			return a, true
		}
	}
	return Action{}, false
}
