package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileLayer persists each collection as <dir>/<name>.json. Writes go to a
// temp file first and are swapped in with os.Rename, so a crash mid-write
// leaves either the old document or the new one, never a torn file.
type FileLayer struct {
	Dir string
}

func NewFileLayer(dir string) (*FileLayer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create data dir: %w", err)
	}
	return &FileLayer{Dir: dir}, nil
}

func (f *FileLayer) path(name string) string {
	return filepath.Join(f.Dir, name+".json")
}

func (f *FileLayer) Read(name string) ([]byte, bool, error) {
	data, err := os.ReadFile(f.path(name))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (f *FileLayer) Write(name string, data []byte) error {
	target := f.path(name)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, target)
}
