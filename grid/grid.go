// Package grid implements the pixel art editing core: a 2-D color grid,
// the draw/erase/fill tool state machine, and raster export.
//
// Colors are lowercase #rrggbb strings throughout; cells compare by string
// equality, which is why spec normalization canonicalizes every color
// before it reaches this package.
package grid

import (
	"fmt"
	"image"
	"image/color"
)

// Grid is a width×height matrix of color values, one per cell.
// Cells are mutated only through Set, Clear, and the Editor's tools.
type Grid struct {
	width      int
	height     int
	background string
	cells      []string
}

// New creates a grid with every cell set to the background color.
func New(width, height int, background string) *Grid {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	g := &Grid{
		width:      width,
		height:     height,
		background: background,
		cells:      make([]string, width*height),
	}
	g.Clear()
	return g
}

// Width returns the grid width in cells.
func (g *Grid) Width() int { return g.width }

// Height returns the grid height in cells.
func (g *Grid) Height() int { return g.height }

// Background returns the background color.
func (g *Grid) Background() string { return g.background }

// InBounds reports whether (x, y) addresses a cell.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// At returns the color at (x, y). Out-of-range coordinates yield the
// background color; pointer positions map imprecisely at grid edges and
// must never raise.
func (g *Grid) At(x, y int) string {
	if !g.InBounds(x, y) {
		return g.background
	}
	return g.cells[y*g.width+x]
}

// Set writes a color at (x, y). Out-of-range coordinates are ignored.
func (g *Grid) Set(x, y int, c string) {
	if !g.InBounds(x, y) {
		return
	}
	g.cells[y*g.width+x] = c
}

// Clear resets every cell to the background color.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.background
	}
}

// Export flattens the grid to a raster with exactly one pixel per cell,
// independent of any on-screen cell magnification.
func (g *Grid) Export() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.width, g.height))
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			img.SetRGBA(x, y, ParseHex(g.At(x, y)))
		}
	}
	return img
}

// LoadImage seeds the grid from an image, sampling one source pixel per
// cell (nearest neighbor). Used to apply an initial image to the editor.
func (g *Grid) LoadImage(img image.Image) {
	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return
	}
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			sx := bounds.Min.X + x*bounds.Dx()/g.width
			sy := bounds.Min.Y + y*bounds.Dy()/g.height
			r, gg, b, _ := img.At(sx, sy).RGBA()
			g.Set(x, y, fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(gg>>8), uint8(b>>8)))
		}
	}
}

// ParseHex converts a #rrggbb color string to an opaque RGBA value.
// Malformed input yields opaque black rather than an error; by the time a
// color reaches a grid it has passed spec validation.
func ParseHex(c string) color.RGBA {
	var r, g, b uint8
	if len(c) == 7 && c[0] == '#' {
		if _, err := fmt.Sscanf(c[1:], "%02x%02x%02x", &r, &g, &b); err != nil {
			return color.RGBA{A: 0xff}
		}
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// Scale resizes a raster to width×height using nearest-neighbor sampling.
// The draw panel edits a coarse canvas and upscales to the declared
// output dimensions on export.
func Scale(src *image.RGBA, width, height int) *image.RGBA {
	sb := src.Bounds()
	if sb.Dx() == width && sb.Dy() == height {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			sx := sb.Min.X + x*sb.Dx()/width
			sy := sb.Min.Y + y*sb.Dy()/height
			dst.SetRGBA(x, y, src.RGBAAt(sx, sy))
		}
	}
	return dst
}
