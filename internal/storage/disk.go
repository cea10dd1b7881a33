package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// PublicPrefix is the URL path segment disk images are served under.
const PublicPrefix = "uploads"

type DiskStore struct {
	Dir string
	Now func() time.Time
}

func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{Dir: dir, Now: time.Now}, nil
}

// Save writes the image under Dir and returns its path below PublicPrefix.
func (s *DiskStore) Save(ctx context.Context, name, contentType string, r io.Reader, size int64) (string, error) {
	if err := ValidateImage(contentType, size); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	objName := ObjectName(s.Now(), name)
	f, err := os.OpenFile(filepath.Join(s.Dir, objName), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}

	n, err := io.Copy(f, io.LimitReader(r, MaxImageSize+1))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && n > MaxImageSize {
		err = ErrTooLarge
	}
	if err != nil {
		_ = os.Remove(f.Name())
		return "", err
	}

	return path.Join(PublicPrefix, objName), nil
}

func (s *DiskStore) Delete(ctx context.Context, ref string) error {
	if !strings.HasPrefix(ref, PublicPrefix+"/") {
		return fmt.Errorf("not a disk image reference: %q", ref)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	err := os.Remove(filepath.Join(s.Dir, path.Base(ref)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove image file: %w", err)
	}
	return nil
}
