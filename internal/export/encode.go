// Package export encodes canvas snapshots into image files.
package export

import (
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/tiff"
)

// Format is an output image format.
type Format string

const (
	PNG  Format = "png"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
	GIF  Format = "gif"
)

var contentTypes = map[Format]string{
	PNG:  "image/png",
	BMP:  "image/bmp",
	TIFF: "image/tiff",
	GIF:  "image/gif",
}

// ParseFormat maps a format name or file extension to a Format. An empty
// name selects PNG.
func ParseFormat(name string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(name), ".") {
	case "", "png":
		return PNG, nil
	case "bmp":
		return BMP, nil
	case "tif", "tiff":
		return TIFF, nil
	case "gif":
		return GIF, nil
	}
	return "", fmt.Errorf("unknown image format: %q", name)
}

// ContentType returns the MIME type of f.
func (f Format) ContentType() string {
	return contentTypes[f]
}

// Encode writes img in format f, enlarged zoom times with
// nearest-neighbour sampling so single pixels stay crisp. A zoom below 1
// is treated as 1.
func Encode(w io.Writer, img image.Image, f Format, zoom int) error {
	img = Zoom(img, zoom)

	var err error
	switch f {
	case PNG:
		enc := png.Encoder{CompressionLevel: png.BestSpeed}
		err = enc.Encode(w, img)
	case BMP:
		err = bmp.Encode(w, img)
	case TIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case GIF:
		err = gif.Encode(w, img, nil)
	default:
		return fmt.Errorf("unknown image format: %q", string(f))
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", f, err)
	}
	return nil
}

// Zoom returns img scaled up by an integer factor. For factors of 1 or
// less img is returned unchanged.
func Zoom(img image.Image, factor int) image.Image {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
