package projectcmd

import (
	"path/filepath"

	"github.com/sisi-cmux/sisi/internal/filesystem"
	"github.com/sisi-cmux/sisi/internal/models"
)

// Condition decides whether a command applies to the project in dir.
type Condition func(fs filesystem.FileSystem, dir string) bool

// Command is one way to perform an action for a project type.
type Command struct {
	Name        string
	Command     string
	Description string
	Condition   Condition
}

// CommandSet lists the candidate commands per action, in preference order.
type CommandSet map[models.Action][]Command

// FileExists is a Condition that holds when name exists in the project.
func FileExists(name string) Condition {
	return func(fs filesystem.FileSystem, dir string) bool {
		return fs.Exists(filepath.Join(dir, name))
	}
}

// Mappings holds the commands for every known project type.
var Mappings = map[models.ProjectType]CommandSet{
	models.ProjectTypeNode: {
		models.ActionDev: {
			{Name: "npm dev", Command: "npm run dev", Description: "Start development server"},
			{Name: "npm start", Command: "npm start", Description: "Start application"},
			{Name: "yarn dev", Command: "yarn dev", Description: "Start development server"},
		},
		models.ActionTest: {
			{Name: "npm test", Command: "npm test", Description: "Run tests"},
			{Name: "npm test:watch", Command: "npm run test:watch", Description: "Run tests in watch mode"},
			{Name: "yarn test", Command: "yarn test", Description: "Run tests"},
		},
		models.ActionBuild: {
			{Name: "npm build", Command: "npm run build", Description: "Build for production"},
			{Name: "yarn build", Command: "yarn build", Description: "Build for production"},
		},
	},
	models.ProjectTypePython: {
		models.ActionDev: {
			{Name: "Django dev", Command: "python manage.py runserver", Description: "Start Django development server", Condition: FileExists("manage.py")},
			{Name: "Flask dev", Command: "python app.py", Description: "Start Flask application", Condition: FileExists("app.py")},
			{Name: "Python script", Command: "python main.py", Description: "Run main Python script"},
		},
		models.ActionTest: {
			{Name: "pytest", Command: "pytest", Description: "Run Python tests"},
			{Name: "pytest verbose", Command: "pytest -v", Description: "Run tests with verbose output"},
			{Name: "unittest", Command: "python -m unittest", Description: "Run unittest tests"},
		},
		models.ActionBuild: {
			{Name: "pip install", Command: "pip install -r requirements.txt", Description: "Install dependencies"},
			{Name: "setup.py", Command: "python setup.py build", Description: "Build package"},
		},
	},
	models.ProjectTypeRust: {
		models.ActionDev: {
			{Name: "cargo run", Command: "cargo run", Description: "Run Rust application"},
			{Name: "cargo watch", Command: "cargo watch -x run", Description: "Run with file watching"},
		},
		models.ActionTest: {
			{Name: "cargo test", Command: "cargo test", Description: "Run Rust tests"},
			{Name: "cargo test verbose", Command: "cargo test -- --nocapture", Description: "Run tests with output"},
		},
		models.ActionBuild: {
			{Name: "cargo build", Command: "cargo build", Description: "Build debug version"},
			{Name: "cargo build release", Command: "cargo build --release", Description: "Build release version"},
		},
	},
	models.ProjectTypeGo: {
		models.ActionDev: {
			{Name: "go run", Command: "go run .", Description: "Run Go application"},
			{Name: "go run main", Command: "go run main.go", Description: "Run main.go"},
		},
		models.ActionTest: {
			{Name: "go test", Command: "go test ./...", Description: "Run Go tests"},
			{Name: "go test verbose", Command: "go test -v ./...", Description: "Run tests with verbose output"},
		},
		models.ActionBuild: {
			{Name: "go build", Command: "go build", Description: "Build Go binary"},
			{Name: "go install", Command: "go install", Description: "Install Go binary"},
		},
	},
	models.ProjectTypeWeb: {
		models.ActionDev: {
			{Name: "Live Server", Command: "python -m http.server 8000", Description: "Start HTTP server"},
			{Name: "Node Server", Command: "npx http-server", Description: "Start Node.js HTTP server"},
		},
		models.ActionTest: {
			{Name: "HTML Validate", Command: "npx html-validate *.html", Description: "Validate HTML"},
		},
		models.ActionBuild: {
			{Name: "Minify", Command: "npx html-minifier --minify-css --minify-js", Description: "Minify HTML/CSS/JS"},
		},
	},
}

// FindBest returns the first command whose condition holds or that has none.
// When every condition fails it falls back to the first command, or nil for an empty list.
func FindBest(fs filesystem.FileSystem, commands []Command, dir string) *Command {
	for i := range commands {
		cmd := &commands[i]
		if cmd.Condition == nil || cmd.Condition(fs, dir) {
			return cmd
		}
	}
	if len(commands) > 0 {
		return &commands[0]
	}
	return nil
}
