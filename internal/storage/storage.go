package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
)

// MaxImageSize caps a product image upload at 5 MiB.
const MaxImageSize = 5 << 20

var (
	ErrUnsupportedType = errors.New("only image/jpeg and image/png are supported")
	ErrTooLarge        = fmt.Errorf("image exceeds %d bytes", MaxImageSize)
)

// ImageStore persists uploaded product images and returns where they live.
// Delete takes a reference previously returned by Save.
type ImageStore interface {
	Save(ctx context.Context, name, contentType string, r io.Reader, size int64) (string, error)
	Delete(ctx context.Context, ref string) error
}

func ValidateImage(contentType string, size int64) error {
	switch contentType {
	case "image/jpeg", "image/png":
	default:
		return ErrUnsupportedType
	}
	if size > MaxImageSize {
		return ErrTooLarge
	}
	return nil
}

// ObjectName prefixes the client file name with the upload time. Colons are
// replaced so the name is valid on every filesystem.
func ObjectName(now time.Time, original string) string {
	stamp := strings.ReplaceAll(now.UTC().Format("2006-01-02T15:04:05.000Z"), ":", "-")
	base := filepath.Base(filepath.Clean("/" + original))
	if base == "/" || base == "." {
		base = "image"
	}
	return stamp + base
}
