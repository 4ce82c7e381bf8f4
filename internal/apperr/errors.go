// Package apperr defines the error types surfaced to sisi users.
package apperr

import (
	"errors"
	"fmt"
)

// Error codes carried by ValidationError.
const (
	CodeInvalidPath      = "INVALID_PATH"
	CodeNotFound         = "NOT_FOUND"
	CodeNotDirectory     = "NOT_DIRECTORY"
	CodeAccessError      = "ACCESS_ERROR"
	CodeNotReadable      = "NOT_READABLE"
	CodeScanTimeout      = "SCAN_TIMEOUT"
	CodeDiscoveryFailed  = "DISCOVERY_FAILED"
	CodeTmuxTimeout      = "TMUX_TIMEOUT"
	CodeTmuxError        = "TMUX_ERROR"
	CodeTmuxExecError    = "TMUX_EXEC_ERROR"
	CodeSessionExists    = "SESSION_EXISTS"
	CodeNoProjects       = "NO_PROJECTS"
	CodeNoWindowsCreated = "NO_WINDOWS_CREATED"
	CodeNoSession        = "NO_SESSION"
	CodeAttachError      = "ATTACH_ERROR"
	CodeAddWindowError   = "ADD_WINDOW_ERROR"
	CodeRemoveWindow     = "REMOVE_WINDOW_ERROR"
	CodeNoRootDir        = "NO_ROOT_DIR"
)

// Sentinels for errors.Is checks against ValidationError codes.
var (
	ErrSessionExists = &ValidationError{Code: CodeSessionExists}
	ErrNoSession     = &ValidationError{Code: CodeNoSession}
	ErrNoProjects    = &ValidationError{Code: CodeNoProjects}
)

// ValidationError reports invalid input or a failed external operation.
type ValidationError struct {
	Code    string
	Message string
	Err     error
}

// NewValidationError creates a ValidationError with the given code.
func NewValidationError(code, format string, args ...any) *ValidationError {
	return &ValidationError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WrapValidation creates a ValidationError that keeps err as its cause.
func WrapValidation(code string, err error, format string, args ...any) *ValidationError {
	return &ValidationError{Code: code, Message: fmt.Sprintf(format, args...), Err: err}
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is matches another ValidationError by code.
func (e *ValidationError) Is(target error) bool {
	var t *ValidationError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// DependencyError reports a missing or unusable external tool.
type DependencyError struct {
	Dependency string
	Message    string
}

// NewDependencyError creates a DependencyError for the named tool.
func NewDependencyError(dependency, message string) *DependencyError {
	return &DependencyError{Dependency: dependency, Message: message}
}

func (e *DependencyError) Error() string {
	return e.Message
}

// IsTyped reports whether err is a ValidationError or DependencyError.
func IsTyped(err error) bool {
	var v *ValidationError
	var d *DependencyError
	return errors.As(err, &v) || errors.As(err, &d)
}

// WithContext prefixes untyped errors with ctx; typed errors pass through unchanged.
func WithContext(ctx string, err error) error {
	if err == nil || IsTyped(err) {
		return err
	}
	return fmt.Errorf("%s: %w", ctx, err)
}

// Format renders err for terminal output.
func Format(err error) string {
	if err == nil {
		return ""
	}
	if IsTyped(err) {
		return "❌ " + err.Error()
	}
	return "❌ Error: " + err.Error()
}

// Code returns the ValidationError code carried by err, or "".
func Code(err error) string {
	var v *ValidationError
	if errors.As(err, &v) {
		return v.Code
	}
	return ""
}
