// Package imgproc is the imaging-library boundary: decode a file into a
// pixel buffer, apply the requested transforms in a fixed order, and encode
// into the target format with a quality parameter.
package imgproc

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	// Register decoders for formats the core library does not ship.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// TransformOps lists the pixel-level operations requested for a job. They
// are applied in a fixed order: strip-metadata, resize, filters, watermark.
// Resizing runs before the format re-encode so later stages work on the
// smaller buffer.
type TransformOps struct {
	ResizeSpec    string // "1920x1080", "50%", or bare width
	StripMetadata bool
	Sharpen       bool
	BlurRadius    float64
	AutoContrast  bool

	Watermark         string // path to overlay image, empty = none
	WatermarkPosition string // top-left, top-right, bottom-left, bottom-right, center
	WatermarkOpacity  float64
}

// EncodeOps selects the output format and its quality parameters.
type EncodeOps struct {
	Format      string // canonical format name: jpg, png, webp, tiff, bmp, gif
	Quality     int    // 1..100, lossy formats only
	Optimize    bool
	Progressive bool // accepted for CLI parity; image/jpeg has no progressive writer
}

// Decode reads and decodes the image at path. EXIF orientation is baked into
// the pixels so that stripping metadata later cannot flip the output.
func Decode(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// Transform applies ops to img in the fixed order documented on
// TransformOps and returns the resulting buffer.
func Transform(img image.Image, ops TransformOps) (image.Image, error) {
	if ops.StripMetadata {
		// Re-encoding from a fresh pixel buffer carries no source metadata.
		img = imaging.Clone(img)
	}

	if ops.ResizeSpec != "" {
		b := img.Bounds()
		w, h, err := ParseResizeSpec(ops.ResizeSpec, b.Dx(), b.Dy())
		if err != nil {
			return nil, err
		}
		img = imaging.Resize(img, w, h, imaging.Lanczos)
	}

	if ops.Sharpen {
		img = imaging.Sharpen(img, 1.0)
	}
	if ops.BlurRadius > 0 {
		img = imaging.Blur(img, ops.BlurRadius)
	}
	if ops.AutoContrast {
		// Mild fixed boost; the library has no histogram-based autocontrast.
		img = imaging.AdjustContrast(img, 10)
	}

	if ops.Watermark != "" {
		marked, err := applyWatermark(img, ops)
		if err != nil {
			return nil, err
		}
		img = marked
	}

	return img, nil
}

// Encode writes img to w in the requested format. Formats without an alpha
// channel get transparent regions flattened onto white first.
func Encode(w io.Writer, img image.Image, ops EncodeOps) error {
	format := strings.ToLower(ops.Format)
	quality := ops.Quality
	if quality <= 0 {
		quality = 85
	}

	switch format {
	case "jpg", "jpeg":
		return imaging.Encode(w, flattenAlpha(img), imaging.JPEG, imaging.JPEGQuality(quality))
	case "png":
		if ops.Optimize {
			return imaging.Encode(w, img, imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression))
		}
		return imaging.Encode(w, img, imaging.PNG)
	case "webp":
		return webp.Encode(w, img, &webp.Options{
			Lossless: quality >= 100,
			Quality:  float32(quality),
		})
	case "gif":
		return imaging.Encode(w, img, imaging.GIF)
	case "tiff", "tif":
		return imaging.Encode(w, img, imaging.TIFF)
	case "bmp":
		return imaging.Encode(w, flattenAlpha(img), imaging.BMP)
	default:
		return fmt.Errorf("no encoder for format %q", ops.Format)
	}
}

// flattenAlpha composites img onto a white background when it carries an
// alpha channel, matching what users expect from a jpeg export of a
// transparent png.
func flattenAlpha(img image.Image) image.Image {
	if img.ColorModel() == color.YCbCrModel || isOpaque(img) {
		return img
	}
	bg := imaging.New(img.Bounds().Dx(), img.Bounds().Dy(), color.White)
	return imaging.Overlay(bg, img, image.Pt(0, 0), 1.0)
}

func isOpaque(img image.Image) bool {
	type opaquer interface{ Opaque() bool }
	if o, ok := img.(opaquer); ok {
		return o.Opaque()
	}
	return false
}
