package grid

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/bmp"

	"github.com/swairshah/InputMCP/imageref"
)

// jpegQuality is the encoder quality for jpeg exports.
const jpegQuality = 90

// EncodeImage encodes a raster at the given media type.
// Supported: image/png, image/jpeg, image/gif, image/bmp — the set the
// spec normalizer admits for export.
func EncodeImage(img image.Image, mime string) ([]byte, error) {
	var buf bytes.Buffer
	var err error

	switch mime {
	case "image/png":
		err = png.Encode(&buf, img)
	case "image/jpeg":
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality})
	case "image/gif":
		err = gif.Encode(&buf, img, nil)
	case "image/bmp":
		err = bmp.Encode(&buf, img)
	default:
		return nil, fmt.Errorf("unsupported export media type %q", mime)
	}
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", mime, err)
	}
	return buf.Bytes(), nil
}

// ExportDataURL flattens the grid to its one-pixel-per-cell raster and
// encodes it as a data URL at the given media type.
func ExportDataURL(g *Grid, mime string) (string, error) {
	data, err := EncodeImage(g.Export(), mime)
	if err != nil {
		return "", err
	}
	return imageref.Encode(mime, data), nil
}

// ExportScaledDataURL exports the grid upscaled to width×height, for the
// freehand draw canvas whose declared output dimensions exceed its cell
// count.
func ExportScaledDataURL(g *Grid, width, height int, mime string) (string, error) {
	data, err := EncodeImage(Scale(g.Export(), width, height), mime)
	if err != nil {
		return "", err
	}
	return imageref.Encode(mime, data), nil
}
