// Package snapshot renders one frame at supersampled resolution and
// encodes it as WebP.
package snapshot

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"colorcloud/internal/engine"
	"colorcloud/internal/render"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"
)

// Render draws the engine's current frame at size×supersample and
// downsamples to size.
func Render(e *engine.Engine, size, supersample int) *image.NRGBA {
	if supersample < 1 {
		supersample = 1
	}
	renderSize := size * supersample

	fb := render.NewFrameBuffer(renderSize, renderSize)
	e.Render(fb)

	img := image.NewNRGBA(image.Rect(0, 0, renderSize, renderSize))
	copy(img.Pix, fb.Color)

	if supersample > 1 {
		img = downsample(img, size)
	}
	return img
}

// WriteWebP encodes img as lossless WebP.
func WriteWebP(w io.Writer, img *image.NRGBA) error {
	if err := nativewebp.Encode(w, img, nil); err != nil {
		return fmt.Errorf("snapshot: webp encode: %w", err)
	}
	return nil
}

// Save renders and writes a snapshot to path, creating parent
// directories as needed.
func Save(e *engine.Engine, path string, size, supersample int) error {
	img := Render(e, size, supersample)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("snapshot: mkdir %s: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot: create %s: %w", path, err)
	}
	defer f.Close()
	return WriteWebP(f, img)
}

// downsample reduces the frame with CatmullRom filtering. Frames are
// opaque, so no premultiplication pass is needed here.
func downsample(img *image.NRGBA, targetSize int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, targetSize, targetSize))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}
