package models

// Window is a tmux window in the workspace session.
type Window struct {
	Index  int
	Name   string
	Active bool
}

// ProjectName returns the window name without its icon prefix.
func (w Window) ProjectName() string {
	return ProjectNameFromWindow(w.Name)
}
