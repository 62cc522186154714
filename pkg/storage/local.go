package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// LocalDisk stores objects as files below a root directory.
type LocalDisk struct {
	root string
}

// NewLocalDisk resolves root against the working directory.
func NewLocalDisk(root string) (*LocalDisk, error) {
	if root == "" {
		root = "storage"
	}
	if !filepath.IsAbs(root) {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("storage/local: resolve %s: %w", root, err)
		}
		root = abs
	}
	return &LocalDisk{root: root}, nil
}

func (d *LocalDisk) abs(p string) string {
	return filepath.Join(d.root, filepath.FromSlash(path.Clean("/"+p)))
}

func (d *LocalDisk) Put(_ context.Context, p string, content []byte) error {
	full := d.abs(p)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("storage/local: mkdir: %w", err)
	}

	// Write-then-rename so readers never see a half-written snapshot.
	tmp := full + ".tmp"
	if err := os.WriteFile(tmp, content, 0o644); err != nil {
		return fmt.Errorf("storage/local: write %s: %w", p, err)
	}
	if err := os.Rename(tmp, full); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("storage/local: rename %s: %w", p, err)
	}
	return nil
}

func (d *LocalDisk) Get(_ context.Context, p string) ([]byte, error) {
	data, err := os.ReadFile(d.abs(p))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("storage/local: get %s: %w", p, ErrNotExist)
	}
	if err != nil {
		return nil, fmt.Errorf("storage/local: get %s: %w", p, err)
	}
	return data, nil
}

func (d *LocalDisk) Exists(_ context.Context, p string) (bool, error) {
	_, err := os.Stat(d.abs(p))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}

func (d *LocalDisk) Delete(_ context.Context, p string) error {
	err := os.Remove(d.abs(p))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("storage/local: delete %s: %w", p, err)
	}
	return nil
}

func (d *LocalDisk) Files(_ context.Context, directory string) ([]string, error) {
	entries, err := os.ReadDir(d.abs(directory))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage/local: files %s: %w", directory, err)
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() {
			out = append(out, path.Join(directory, e.Name()))
		}
	}
	return out, nil
}
