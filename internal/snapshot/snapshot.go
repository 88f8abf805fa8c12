// Package snapshot writes screenshots of the wall as lossless WebP files.
package snapshot

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/HugoSmits86/nativewebp"

	"github.com/keuio/PhotoWall3D/internal/errors"
)

// Name returns the file name used for a snapshot taken at now. Millisecond
// resolution keeps quick repeated snapshots apart.
func Name(now time.Time) string {
	return fmt.Sprintf("photowall-%s-%03d.webp", now.Format("20060102-150405"), now.Nanosecond()/int(time.Millisecond))
}

// Save encodes img into dir, creating dir if needed, and returns the written path.
func Save(dir string, img image.Image, now time.Time) (string, error) {
	if img == nil {
		return "", errors.New(errors.ErrCodeInvalidInput, "nothing to snapshot")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrap(errors.ErrCodeConfiguration, err, "create snapshot directory")
	}

	path := filepath.Join(dir, Name(now))
	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeConfiguration, err, "create %s", path)
	}
	if err := nativewebp.Encode(f, img, nil); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("webp encode: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", errors.Wrap(errors.ErrCodeConfiguration, err, "write %s", path)
	}
	return path, nil
}
