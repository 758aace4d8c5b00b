package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	dirPerm  = 0o700
	filePerm = 0o600
)

var (
	// ErrPathIsDirectory is returned when a file operation targets a directory.
	ErrPathIsDirectory = errors.New("path is a directory, not a file")
	// ErrNoLocation is returned when neither an application name nor a directory is configured.
	ErrNoLocation = errors.New("application name or directory is required")
)

// Storage implements config.Storage on the local filesystem.
// The support directory is created on first resolution.
type Storage struct {
	appName string
	dir     string
	atomic  bool
}

// Option configures a Storage.
type Option func(*Storage)

// WithDir uses dir as the support directory instead of the XDG config location.
func WithDir(dir string) Option {
	return func(s *Storage) {
		s.dir = dir
	}
}

// WithAtomicWrite makes WriteFile write to a temporary file and rename it over the destination.
func WithAtomicWrite() Option {
	return func(s *Storage) {
		s.atomic = true
	}
}

// NewStorage returns a constructor function that creates a file-based Storage.
// Without WithDir the support directory is <xdg.ConfigHome>/<appName>.
// This pattern is Fx-friendly, allowing the DI container to control when instantiation happens.
func NewStorage(appName string, opts ...Option) func() (*Storage, error) {
	return func() (*Storage, error) {
		storage := &Storage{appName: appName}

		for _, apply := range opts {
			apply(storage)
		}

		if storage.appName == "" && storage.dir == "" {
			return nil, ErrNoLocation
		}

		return storage, nil
	}
}

// SupportDir returns the writable support directory, creating it when missing.
func (s *Storage) SupportDir(ctx context.Context) (string, error) {
	err := ctx.Err()
	if err != nil {
		return "", fmt.Errorf("resolving support directory: %w", err)
	}

	dir := s.dir
	if dir == "" {
		dir = filepath.Join(xdg.ConfigHome, s.appName)
	}

	cleanDir := filepath.Clean(dir)

	err = os.MkdirAll(cleanDir, dirPerm)
	if err != nil {
		return "", fmt.Errorf("creating support directory %q: %w", cleanDir, err)
	}

	return cleanDir, nil
}

// Exists reports whether a regular file exists at path.
func (s *Storage) Exists(ctx context.Context, path string) (bool, error) {
	err := ctx.Err()
	if err != nil {
		return false, fmt.Errorf("stat file %q: %w", path, err)
	}

	cleanPath := filepath.Clean(path)

	stat, err := os.Stat(cleanPath)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("stat file %q: %w", cleanPath, err)
	}

	if stat.IsDir() {
		return false, fmt.Errorf("path %q: %w", cleanPath, ErrPathIsDirectory)
	}

	return true, nil
}

// ReadFile returns the content of the file at path.
func (s *Storage) ReadFile(ctx context.Context, path string) ([]byte, error) {
	err := ctx.Err()
	if err != nil {
		return nil, fmt.Errorf("reading file %q: %w", path, err)
	}

	cleanPath := filepath.Clean(path)

	data, err := os.ReadFile(cleanPath) // #nosec G304 -- path is cleaned and owned by the store
	if err != nil {
		return nil, fmt.Errorf("reading file %q: %w", cleanPath, err)
	}

	return data, nil
}

// WriteFile replaces the content of the file at path with data.
func (s *Storage) WriteFile(ctx context.Context, path string, data []byte) error {
	err := ctx.Err()
	if err != nil {
		return fmt.Errorf("writing file %q: %w", path, err)
	}

	cleanPath := filepath.Clean(path)

	if s.atomic {
		return writeAtomic(cleanPath, data)
	}

	err = os.WriteFile(cleanPath, data, filePerm)
	if err != nil {
		return fmt.Errorf("writing file %q: %w", cleanPath, err)
	}

	return nil
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file for %q: %w", path, err)
	}

	tmpName := tmp.Name()

	_, err = tmp.Write(data)
	if err == nil {
		err = tmp.Sync()
	}

	closeErr := tmp.Close()
	if err == nil {
		err = closeErr
	}

	if err != nil {
		_ = os.Remove(tmpName)

		return fmt.Errorf("writing temp file for %q: %w", path, err)
	}

	err = os.Rename(tmpName, path)
	if err != nil {
		_ = os.Remove(tmpName)

		return fmt.Errorf("replacing file %q: %w", path, err)
	}

	return nil
}
