package filestore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"go.uber.org/zap"

	"github.com/mamadbah2/factory/internal/repository/blob"
)

var validName = regexp.MustCompile(`^[a-zA-Z0-9_\-]+$`)

// Repository keeps each document as <dir>/<name>.json.
type Repository struct {
	dir    string
	logger *zap.Logger
}

// New creates the directory if needed and returns a file-backed repository.
func New(dir string, logger *zap.Logger) (*Repository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if dir == "" {
		return nil, errors.New("storage directory must not be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir %s: %w", dir, err)
	}
	return &Repository{dir: dir, logger: logger}, nil
}

func (r *Repository) path(name string) (string, error) {
	if !validName.MatchString(name) {
		return "", fmt.Errorf("invalid blob name %q", name)
	}
	return filepath.Join(r.dir, name+".json"), nil
}

// Load reads a document. A missing file is blob.ErrNotFound.
func (r *Repository) Load(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := r.path(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, blob.ErrNotFound
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// Save writes a document through a temp file and rename, so a crash leaves
// either the old or the new version on disk.
func (r *Repository) Save(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := r.path(name)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(r.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", name, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}

	r.logger.Debug("blob saved", zap.String("name", name), zap.Int("bytes", len(data)))
	return nil
}
