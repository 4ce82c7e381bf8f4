// Package tmuxconf renders the tmux configuration a sisi session starts with.
package tmuxconf

import (
	"bytes"
	"fmt"
	"path/filepath"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/sisi-cmux/sisi/internal/filesystem"
	"github.com/sisi-cmux/sisi/internal/models"
	"github.com/sisi-cmux/sisi/internal/tui"
)

// TemplateFileName is the optional user template next to the config file.
const TemplateFileName = "tmux.conf.tmpl"

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// Params are the values the template is rendered with.
type Params struct {
	// SisiPath is the absolute path of the running sisi binary
	SisiPath string

	// Session is the tmux session name passed back to sisi by key bindings
	Session string

	// Popup enables display-popup for the quick actions binding
	Popup bool
}

type templateData struct {
	Params
	RunKeys  map[string]models.Action
	StatusBg string
	StatusFg string
	Accent   string
}

// Generator renders and writes tmux configuration files.
type Generator struct {
	fs           filesystem.FileSystem
	templatePath string
}

// NewGenerator creates a Generator. A non-empty templatePath that exists
// replaces the built-in template.
func NewGenerator(fs filesystem.FileSystem, templatePath string) *Generator {
	return &Generator{fs: fs, templatePath: templatePath}
}

func (g *Generator) template() (*template.Template, error) {
	text := defaultTemplate
	name := "tmux.conf"

	if g.templatePath != "" && g.fs.Exists(g.templatePath) {
		data, err := g.fs.ReadFile(g.templatePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read tmux template: %w", err)
		}
		text = string(data)
		name = filepath.Base(g.templatePath)
	}

	tmpl, err := template.New(name).Funcs(sprig.TxtFuncMap()).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse tmux template: %w", err)
	}
	return tmpl, nil
}

// Render returns the configuration text for p.
func (g *Generator) Render(p Params) (string, error) {
	tmpl, err := g.template()
	if err != nil {
		return "", err
	}

	data := templateData{
		Params: p,
		RunKeys: map[string]models.Action{
			"D": models.ActionDev,
			"T": models.ActionTest,
			"B": models.ActionBuild,
		},
		StatusBg: tui.ColorStatusBg,
		StatusFg: tui.ColorStatusFg,
		Accent:   tui.ColorAccent,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render tmux template: %w", err)
	}
	return buf.String(), nil
}

// Write renders p into a uniquely named file in the temp directory and returns its path.
func (g *Generator) Write(p Params) (string, error) {
	content, err := g.Render(p)
	if err != nil {
		return "", err
	}

	id, err := gonanoid.Generate(idAlphabet, 10)
	if err != nil {
		return "", fmt.Errorf("failed to generate config name: %w", err)
	}

	path := filepath.Join(g.fs.TempDir(), fmt.Sprintf("sisi-tmux-%s.conf", id))
	if err := g.fs.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write tmux config %s: %w", path, err)
	}
	return path, nil
}
