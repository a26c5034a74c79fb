package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/swairshah/InputMCP/grid"
	"github.com/swairshah/InputMCP/types"
)

// Rows the pixel panel renders above its canvas: status line, palette
// strip and one blank.
const pixelPanelRows = 3

// pixelPanel collects grid-based pixel art.
type pixelPanel struct {
	spec     *types.InputSpec
	editor   *grid.Editor
	palette  []string
	colorIdx int
}

func newPixelPanel(s *types.InputSpec) *pixelPanel {
	g := grid.New(s.GridWidth, s.GridHeight, s.BackgroundColor)
	seedInitialImage(g, s.InitialImage)

	return &pixelPanel{
		spec:    s,
		editor:  grid.NewEditor(g, s.Palette[0]),
		palette: s.Palette,
	}
}

// Init implements panel.
func (p *pixelPanel) Init() tea.Cmd {
	return nil
}

// Update implements panel.
func (p *pixelPanel) Update(msg tea.Msg) (panel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+s":
			return p.submit()
		case "d":
			p.editor.SetTool(grid.ToolDraw)
		case "e":
			p.editor.SetTool(grid.ToolErase)
		case "f":
			p.editor.SetTool(grid.ToolFill)
		case "c":
			p.editor.Clear()
		case "tab", "right":
			p.cycleColor(1)
		case "shift+tab", "left":
			p.cycleColor(-1)
		}

	case tea.MouseMsg:
		x := msg.X / 2
		y := msg.Y - headerRows - pixelPanelRows
		switch msg.Action {
		case tea.MouseActionPress:
			if msg.Button == tea.MouseButtonLeft {
				p.editor.PointerDown(x, y)
			}
		case tea.MouseActionMotion:
			p.editor.PointerMove(x, y)
		case tea.MouseActionRelease:
			p.editor.PointerUp()
		}
	}

	return p, nil
}

func (p *pixelPanel) cycleColor(delta int) {
	p.colorIdx = (p.colorIdx + delta + len(p.palette)) % len(p.palette)
	p.editor.SetColor(p.palette[p.colorIdx])
}

// submit exports one pixel per grid cell, independent of the on-screen
// cell size, and encodes the raster in the requested format.
func (p *pixelPanel) submit() (panel, tea.Cmd) {
	dataURL, err := grid.ExportDataURL(p.editor.Grid(), p.spec.MimeType)
	if err != nil {
		message := "image export failed: " + err.Error()
		return p, func() tea.Msg { return failMsg{message: message} }
	}

	result := &types.SubmissionResult{
		Kind:     types.KindPixelArt,
		DataURL:  dataURL,
		MimeType: p.spec.MimeType,
	}
	return p, func() tea.Msg { return submitMsg{result: result} }
}

// paletteStrip renders one swatch per palette entry, marking the active
// one.
func (p *pixelPanel) paletteStrip() string {
	var b strings.Builder
	for i, c := range p.palette {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render("██")
		if i == p.colorIdx {
			b.WriteString(SelectedSwatchStyle.Render("[") + swatch + SelectedSwatchStyle.Render("]"))
		} else {
			b.WriteString(" " + swatch + " ")
		}
	}
	return b.String()
}

// View implements panel.
func (p *pixelPanel) View() string {
	status := LabelStyle.Render("tool: " + p.editor.Tool().String())
	help := HelpStyle.Render("click to paint · d/e/f tool · tab color · c clear · ctrl+s " + p.spec.SubmitLabel + " · esc cancel")
	return status + "\n" + p.paletteStrip() + "\n\n" + renderCanvas(p.editor.Grid()) + "\n" + help
}
