package models

import "fmt"

// Action is a project lifecycle command category.
type Action string

const (
	// ActionDev starts a development server or runs the app
	ActionDev Action = "dev"

	// ActionTest runs the test suite
	ActionTest Action = "test"

	// ActionBuild builds the project
	ActionBuild Action = "build"
)

// Actions lists the valid actions in display order.
var Actions = []Action{ActionDev, ActionTest, ActionBuild}

// IsValid checks if the action is valid
func (a Action) IsValid() bool {
	switch a {
	case ActionDev, ActionTest, ActionBuild:
		return true
	default:
		return false
	}
}

// String returns the string representation of Action
func (a Action) String() string {
	return string(a)
}

// ParseAction parses a string into an Action
func ParseAction(s string) (Action, error) {
	a := Action(s)
	if !a.IsValid() {
		return "", fmt.Errorf("invalid action: %s (must be dev, test, or build)", s)
	}
	return a, nil
}
