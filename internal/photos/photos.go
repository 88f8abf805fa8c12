// Package photos loads the images shown on the wall.
package photos

import (
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"

	"github.com/keuio/PhotoWall3D/internal/errors"
)

// decoders picks the decoder by extension. The tga package registers itself
// with image.RegisterFormat under an empty magic string, which matches any
// input, so image.Decode's sniffing cannot be used here.
var decoders = map[string]func(io.Reader) (image.Image, error){
	".jpg":  jpeg.Decode,
	".jpeg": jpeg.Decode,
	".png":  png.Decode,
	".gif":  gif.Decode,
	".webp": webp.Decode,
	".bmp":  bmp.Decode,
	".tif":  tiff.Decode,
	".tiff": tiff.Decode,
	".tga":  tga.Decode,
}

// Supported reports whether path has an image extension Load understands.
func Supported(path string) bool {
	_, ok := decoders[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Load decodes every supported image in dir, in file name order, shrinking
// anything larger than maxSide on its longest edge. Files that fail to decode
// are skipped with a warning. An empty result is not an error; the caller
// decides whether to fall back to a placeholder.
func Load(dir string, maxSide int, logger *log.Logger) ([]image.Image, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfiguration, err, "image directory %s", dir)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrCodeConfiguration, "image directory %s is not a directory", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfiguration, err, "read image directory %s", dir)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var images []image.Image
	for _, e := range entries {
		if e.IsDir() || !Supported(e.Name()) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		img, err := Decode(path)
		if err != nil {
			logger.Warn("skipping image", "path", path, "err", err)
			continue
		}
		images = append(images, Fit(img, maxSide))
	}
	logger.Info("loaded photos", "dir", dir, "count", len(images))
	return images, nil
}

// Decode reads and decodes a single image file using the decoder for its
// extension.
func Decode(path string) (image.Image, error) {
	decode, ok := decoders[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "unsupported image type %q", filepath.Ext(path))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := decode(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode %s", filepath.Base(path))
	}
	return img, nil
}

// Fit scales img down so its longest edge is at most maxSide, keeping the
// aspect ratio. Smaller images, and maxSide <= 0, return img unchanged.
func Fit(img image.Image, maxSide int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSide <= 0 || (w <= maxSide && h <= maxSide) {
		return img
	}
	if w >= h {
		h = max(1, h*maxSide/w)
		w = maxSide
	} else {
		w = max(1, w*maxSide/h)
		h = maxSide
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Placeholder is the single neutral card used when no photos are available.
func Placeholder(w, h int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.NRGBA{R: 58, G: 64, B: 78, A: 255}), image.Point{}, draw.Src)

	border := max(1, min(w, h)/24)
	edge := color.NRGBA{R: 110, G: 120, B: 140, A: 255}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x < border || y < border || x >= w-border || y >= h-border {
				img.SetNRGBA(x, y, edge)
			}
		}
	}
	return img
}
