package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/swairshah/InputMCP/grid"
	"github.com/swairshah/InputMCP/spec"
	"github.com/swairshah/InputMCP/types"
)

// Freehand canvas dimensions in cells. The drawing is scaled to the
// spec's pixel dimensions on export, so the canvas is a fixed working
// surface rather than a 1:1 raster.
const (
	drawCanvasWidth  = 64
	drawCanvasHeight = 24

	// Rows the panel renders above its canvas: status line and one blank.
	drawPanelRows = 2
)

// drawPanel collects a freehand drawing with mouse strokes.
type drawPanel struct {
	spec     *types.InputSpec
	editor   *grid.Editor
	palette  []string
	colorIdx int
}

func newDrawPanel(s *types.InputSpec) *drawPanel {
	g := grid.New(drawCanvasWidth, drawCanvasHeight, s.BackgroundColor)
	seedInitialImage(g, s.InitialImage)

	palette := spec.DefaultPalette()
	return &drawPanel{
		spec:    s,
		editor:  grid.NewEditor(g, palette[0]),
		palette: palette,
	}
}

// Init implements panel.
func (p *drawPanel) Init() tea.Cmd {
	return nil
}

// Update implements panel.
func (p *drawPanel) Update(msg tea.Msg) (panel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+s":
			return p.submit()
		case "d":
			p.editor.SetTool(grid.ToolDraw)
		case "e":
			p.editor.SetTool(grid.ToolErase)
		case "c":
			p.editor.Clear()
		case "tab":
			p.cycleColor(1)
		case "shift+tab":
			p.cycleColor(-1)
		}

	case tea.MouseMsg:
		x := msg.X / 2
		y := msg.Y - headerRows - drawPanelRows
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

func (p *drawPanel) cycleColor(delta int) {
	p.colorIdx = (p.colorIdx + delta + len(p.palette)) % len(p.palette)
	p.editor.SetColor(p.palette[p.colorIdx])
}

// submit scales the canvas to the requested pixel dimensions and encodes
// it in the requested format.
func (p *drawPanel) submit() (panel, tea.Cmd) {
	dataURL, err := grid.ExportScaledDataURL(p.editor.Grid(), p.spec.Width, p.spec.Height, p.spec.MimeType)
	if err != nil {
		message := "image export failed: " + err.Error()
		return p, func() tea.Msg { return failMsg{message: message} }
	}

	result := &types.SubmissionResult{
		Kind:     types.KindImage,
		DataURL:  dataURL,
		MimeType: p.spec.MimeType,
	}
	return p, func() tea.Msg { return submitMsg{result: result} }
}

// View implements panel.
func (p *drawPanel) View() string {
	status := LabelStyle.Render("tool: " + p.editor.Tool().String() + "  color: " + p.editor.Color())
	help := HelpStyle.Render("drag to draw · d/e tool · tab color · c clear · ctrl+s " + p.spec.SubmitLabel + " · esc cancel")
	return status + "\n\n" + renderCanvas(p.editor.Grid()) + "\n" + help
}
