package assets

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

const spritesDir = "sprites"

// FSStore writes blobs under Dir/sprites and returns
// PublicPrefix/sprites/<name> as their reference.
type FSStore struct {
	Fs           afero.Fs
	Dir          string
	PublicPrefix string
}

func NewFSStore(fs afero.Fs, dir, publicPrefix string) *FSStore {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &FSStore{Fs: fs, Dir: dir, PublicPrefix: strings.TrimRight(publicPrefix, "/")}
}

// Put writes to a temp file and renames it into place, so readers never
// see a partial image.
func (s *FSStore) Put(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if name == "" || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("invalid blob name %q", name)
	}

	dir := filepath.Join(s.Dir, spritesDir)
	if err := s.Fs.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create assets dir: %w", err)
	}

	tmp, err := afero.TempFile(s.Fs, dir, name+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = s.Fs.Remove(tmpName)
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		_ = s.Fs.Remove(tmpName)
		return "", fmt.Errorf("close %s: %w", name, err)
	}
	if err := s.Fs.Rename(tmpName, filepath.Join(dir, name)); err != nil {
		_ = s.Fs.Remove(tmpName)
		return "", fmt.Errorf("rename %s: %w", name, err)
	}

	return path.Join(s.PublicPrefix, spritesDir, name), nil
}
