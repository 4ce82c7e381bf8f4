package workspace

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/sisi-cmux/sisi/internal/apperr"
	"github.com/sisi-cmux/sisi/internal/filesystem"
)

// ValidateDirectory checks that path exists, is a directory and can be listed.
func ValidateDirectory(fsys filesystem.FileSystem, path string) error {
	if strings.TrimSpace(path) == "" {
		return apperr.NewValidationError(apperr.CodeInvalidPath, "Directory path is required")
	}

	info, err := fsys.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return apperr.NewValidationError(apperr.CodeNotFound, "Directory does not exist: %s", path)
	}
	if err != nil {
		return apperr.WrapValidation(apperr.CodeAccessError, err, "Cannot access directory: %s (%v)", path, err)
	}
	if !info.IsDir() {
		return apperr.NewValidationError(apperr.CodeNotDirectory, "Path is not a directory: %s", path)
	}

	if !fsys.CanRead(path) {
		return apperr.NewValidationError(apperr.CodeNotReadable, "Directory is not readable: %s", path)
	}

	return nil
}

// ResolveDirectory turns an optional CLI argument into an absolute directory.
func ResolveDirectory(fsys filesystem.FileSystem, arg string) (string, error) {
	cwd, err := fsys.Getwd()
	if err != nil {
		return "", err
	}
	if arg == "" {
		return cwd, nil
	}
	return absFrom(cwd, arg), nil
}
