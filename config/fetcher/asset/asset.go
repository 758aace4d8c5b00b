package asset

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
)

var (
	// ErrNilFS is returned when the Reader is constructed without a filesystem.
	ErrNilFS = errors.New("asset filesystem is nil")
	// ErrAssetIsDirectory is returned when the asset name points to a directory.
	ErrAssetIsDirectory = errors.New("asset is a directory, not a file")
)

// Reader implements config.AssetReader over a read-only fs.FS such as an embed.FS.
// Assets are read on every call and never cached.
type Reader struct {
	fsys fs.FS
}

// NewReader returns a constructor function that creates a Reader for fsys.
// This pattern is Fx-friendly, allowing the DI container to control when instantiation happens.
func NewReader(fsys fs.FS) func() (*Reader, error) {
	return func() (*Reader, error) {
		if fsys == nil {
			return nil, ErrNilFS
		}

		return &Reader{fsys: fsys}, nil
	}
}

// NewDirReader returns a constructor function that creates a Reader for the assets below dir.
func NewDirReader(dir string) func() (*Reader, error) {
	return NewReader(os.DirFS(dir))
}

// ReadAsset returns the content of the named asset.
// Names use forward slashes and are cleaned before lookup.
func (r *Reader) ReadAsset(ctx context.Context, name string) ([]byte, error) {
	err := ctx.Err()
	if err != nil {
		return nil, fmt.Errorf("reading asset %q: %w", name, err)
	}

	cleanName := path.Clean(name)

	stat, err := fs.Stat(r.fsys, cleanName)
	if err != nil {
		return nil, fmt.Errorf("stat asset %q: %w", cleanName, err)
	}

	if stat.IsDir() {
		return nil, fmt.Errorf("asset %q: %w", cleanName, ErrAssetIsDirectory)
	}

	data, err := fs.ReadFile(r.fsys, cleanName)
	if err != nil {
		return nil, fmt.Errorf("reading asset %q: %w", cleanName, err)
	}

	return data, nil
}
