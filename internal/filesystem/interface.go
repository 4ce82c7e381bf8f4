package filesystem

import (
	"io/fs"
)

// FileSystem provides an abstraction over file operations for testability
type FileSystem interface {
	// File operations
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm fs.FileMode) error

	// Directory operations
	ReadDir(path string) ([]fs.DirEntry, error)
	MkdirAll(path string, perm fs.FileMode) error

	// Path operations
	Stat(path string) (fs.FileInfo, error)
	Exists(path string) bool
	Getwd() (string, error)
	TempDir() string

	// CanRead reports whether the directory at path can be listed
	CanRead(path string) bool
}
