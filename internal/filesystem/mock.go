package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// MockFileSystem provides in-memory filesystem for testing
type MockFileSystem struct {
	files      map[string]*MockFile
	unreadable map[string]bool
	currentDir string
	tempDir    string
}

// MockFile represents a file in the mock filesystem
type MockFile struct {
	Content []byte
	Mode    fs.FileMode
	ModTime time.Time
	IsDir   bool
}

// mockFileInfo implements fs.FileInfo
type mockFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (m *mockFileInfo) Name() string       { return m.name }
func (m *mockFileInfo) Size() int64        { return m.size }
func (m *mockFileInfo) Mode() fs.FileMode  { return m.mode }
func (m *mockFileInfo) ModTime() time.Time { return m.modTime }
func (m *mockFileInfo) IsDir() bool        { return m.isDir }
func (m *mockFileInfo) Sys() interface{}   { return nil }

// mockDirEntry implements fs.DirEntry
type mockDirEntry struct {
	info fs.FileInfo
}

func (m *mockDirEntry) Name() string               { return m.info.Name() }
func (m *mockDirEntry) IsDir() bool                { return m.info.IsDir() }
func (m *mockDirEntry) Type() fs.FileMode          { return m.info.Mode().Type() }
func (m *mockDirEntry) Info() (fs.FileInfo, error) { return m.info, nil }

// NewMockFileSystem creates a new MockFileSystem
func NewMockFileSystem() *MockFileSystem {
	mfs := &MockFileSystem{
		files:      make(map[string]*MockFile),
		unreadable: make(map[string]bool),
		currentDir: "/workspace",
		tempDir:    "/tmp",
	}
	mfs.AddDir(mfs.tempDir)
	return mfs
}

// AddFile adds a file and its parent directories to the mock filesystem
func (mfs *MockFileSystem) AddFile(path string, content []byte) {
	cleanPath := filepath.Clean(path)
	mfs.files[cleanPath] = &MockFile{
		Content: content,
		Mode:    0644,
		ModTime: time.Now(),
	}
	mfs.addParents(cleanPath)
}

// AddDir adds a directory and its parents to the mock filesystem
func (mfs *MockFileSystem) AddDir(path string) {
	cleanPath := filepath.Clean(path)
	if _, exists := mfs.files[cleanPath]; !exists {
		mfs.files[cleanPath] = &MockFile{
			Mode:    0755 | fs.ModeDir,
			ModTime: time.Now(),
			IsDir:   true,
		}
	}
	mfs.addParents(cleanPath)
}

func (mfs *MockFileSystem) addParents(cleanPath string) {
	dir := filepath.Dir(cleanPath)
	for dir != "." && dir != "/" && dir != cleanPath {
		if _, exists := mfs.files[dir]; !exists {
			mfs.files[dir] = &MockFile{
				Mode:    0755 | fs.ModeDir,
				ModTime: time.Now(),
				IsDir:   true,
			}
		}
		cleanPath = dir
		dir = filepath.Dir(dir)
	}
}

// SetUnreadable makes ReadDir on path fail with a permission error
func (mfs *MockFileSystem) SetUnreadable(path string) {
	mfs.unreadable[filepath.Clean(path)] = true
}

func (mfs *MockFileSystem) ReadFile(path string) ([]byte, error) {
	file, exists := mfs.files[filepath.Clean(path)]
	if !exists {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	if file.IsDir {
		return nil, errors.New("is a directory")
	}
	return file.Content, nil
}

func (mfs *MockFileSystem) WriteFile(path string, data []byte, perm fs.FileMode) error {
	cleanPath := filepath.Clean(path)

	dir := filepath.Dir(cleanPath)
	if dir != "." && dir != "/" {
		if _, exists := mfs.files[dir]; !exists {
			return &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
		}
	}

	mfs.files[cleanPath] = &MockFile{
		Content: data,
		Mode:    perm,
		ModTime: time.Now(),
	}
	return nil
}

func (mfs *MockFileSystem) ReadDir(path string) ([]fs.DirEntry, error) {
	cleanPath := filepath.Clean(path)

	file, exists := mfs.files[cleanPath]
	if !exists {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	if !file.IsDir {
		return nil, errors.New("not a directory")
	}
	if mfs.unreadable[cleanPath] {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrPermission}
	}

	var entries []fs.DirEntry
	for p, f := range mfs.files {
		if p == cleanPath || filepath.Dir(p) != cleanPath {
			continue
		}
		entries = append(entries, &mockDirEntry{info: infoFor(p, f)})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	return entries, nil
}

func (mfs *MockFileSystem) MkdirAll(path string, perm fs.FileMode) error {
	cleanPath := filepath.Clean(path)
	if f, exists := mfs.files[cleanPath]; exists && !f.IsDir {
		return fmt.Errorf("mkdir %s: not a directory", path)
	}

	parts := strings.Split(cleanPath, string(filepath.Separator))
	current := ""
	for _, part := range parts {
		if part == "" {
			continue
		}
		current = filepath.Join(string(filepath.Separator), current, part)
		if _, exists := mfs.files[current]; !exists {
			mfs.files[current] = &MockFile{
				Mode:    perm | fs.ModeDir,
				ModTime: time.Now(),
				IsDir:   true,
			}
		}
	}
	return nil
}

func (mfs *MockFileSystem) Stat(path string) (fs.FileInfo, error) {
	cleanPath := filepath.Clean(path)
	file, exists := mfs.files[cleanPath]
	if !exists {
		return nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
	}
	return infoFor(cleanPath, file), nil
}

func (mfs *MockFileSystem) Exists(path string) bool {
	_, exists := mfs.files[filepath.Clean(path)]
	return exists
}

func (mfs *MockFileSystem) Getwd() (string, error) {
	return mfs.currentDir, nil
}

func (mfs *MockFileSystem) TempDir() string {
	return mfs.tempDir
}

func (mfs *MockFileSystem) CanRead(path string) bool {
	cleanPath := filepath.Clean(path)
	f, exists := mfs.files[cleanPath]
	return exists && f.IsDir && !mfs.unreadable[cleanPath]
}

// SetCurrentDir sets the current working directory for the mock
func (mfs *MockFileSystem) SetCurrentDir(dir string) {
	mfs.currentDir = dir
}

// GetFiles returns all files in the mock filesystem (for debugging)
func (mfs *MockFileSystem) GetFiles() map[string]*MockFile {
	return mfs.files
}

func infoFor(path string, f *MockFile) *mockFileInfo {
	return &mockFileInfo{
		name:    filepath.Base(path),
		size:    int64(len(f.Content)),
		mode:    f.Mode,
		modTime: f.ModTime,
		isDir:   f.IsDir,
	}
}
