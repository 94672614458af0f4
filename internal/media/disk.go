package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DiskStore keeps media files under a root directory, mirroring the
// link path on the filesystem.
type DiskStore struct {
	root string
}

func NewDiskStore(root string) *DiskStore {
	return &DiskStore{root: root}
}

// resolve maps a link onto the root and rejects anything that would
// escape it.
func (d *DiskStore) resolve(link string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(link))
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid media link %q", link)
	}
	return filepath.Join(d.root, clean), nil
}

func (d *DiskStore) Write(ctx context.Context, link string, r io.Reader) error {
	path, err := d.resolve(link)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create media directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create media file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to write media file: %w", err)
	}
	return nil
}

func (d *DiskStore) Open(ctx context.Context, link string) (io.ReadCloser, int64, error) {
	path, err := d.resolve(link)
	if err != nil {
		return nil, 0, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, err
	}
	return f, info.Size(), nil
}

// Remove deletes the backing file. A missing file surfaces as
// fs.ErrNotExist via os.Remove.
func (d *DiskStore) Remove(ctx context.Context, link string) error {
	path, err := d.resolve(link)
	if err != nil {
		return err
	}
	return os.Remove(path)
}
