package ui

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/charmbracelet/lipgloss"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/swairshah/InputMCP/grid"
	"github.com/swairshah/InputMCP/imageref"
)

// renderCanvas draws the grid with one two-column block per cell, so a
// cell is roughly square in a terminal font. Mouse mapping divides the
// column by two to undo this.
func renderCanvas(g *grid.Grid) string {
	var b strings.Builder
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			cell := lipgloss.NewStyle().Background(lipgloss.Color(g.At(x, y)))
			b.WriteString(cell.Render("  "))
		}
		if y < g.Height()-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// seedInitialImage decodes an initial-image data URL into the grid.
// An undecodable image leaves the canvas at its background; the prompt
// still works, just without the seed.
func seedInitialImage(g *grid.Grid, dataURL string) {
	if dataURL == "" {
		return
	}
	_, data, err := imageref.Decode(dataURL)
	if err != nil {
		return
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return
	}
	g.LoadImage(img)
}
