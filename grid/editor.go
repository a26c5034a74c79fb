package grid

// Tool selects how pointer contact mutates the grid.
type Tool int

const (
	// ToolDraw paints the active color.
	ToolDraw Tool = iota
	// ToolErase paints the background color.
	ToolErase
	// ToolFill flood-fills the 4-connected region under the pointer.
	ToolFill
)

// String returns the tool name as shown in the UI.
func (t Tool) String() string {
	switch t {
	case ToolDraw:
		return "draw"
	case ToolErase:
		return "erase"
	case ToolFill:
		return "fill"
	default:
		return "unknown"
	}
}

// Editor is the pixel grid editing state machine: the grid, the active
// color, the selected tool, and a painting flag tied to pointer-contact
// lifetime. All transitions are synchronous; no operation suspends
// mid-gesture.
type Editor struct {
	grid     *Grid
	color    string
	tool     Tool
	painting bool
}

// NewEditor creates an editor over the grid with the given active color.
func NewEditor(g *Grid, activeColor string) *Editor {
	return &Editor{grid: g, color: activeColor}
}

// Grid returns the underlying grid.
func (e *Editor) Grid() *Grid { return e.grid }

// Tool returns the selected tool.
func (e *Editor) Tool() Tool { return e.tool }

// SetTool selects a tool. Switching tools does not end an active gesture;
// only pointer-up does.
func (e *Editor) SetTool(t Tool) { e.tool = t }

// Color returns the active color.
func (e *Editor) Color() string { return e.color }

// SetColor selects the active color.
func (e *Editor) SetColor(c string) { e.color = c }

// Painting reports whether a pointer gesture is in progress.
func (e *Editor) Painting() bool { return e.painting }

// PointerDown begins pointer contact on a cell. With the fill tool this is
// a single discrete action: fill the region and remain idle. Otherwise it
// enters the painting state and paints or erases that one cell.
// Out-of-range coordinates are ignored.
func (e *Editor) PointerDown(x, y int) {
	if !e.grid.InBounds(x, y) {
		return
	}
	if e.tool == ToolFill {
		e.floodFill(x, y)
		return
	}
	e.painting = true
	e.apply(x, y)
}

// PointerMove paints or erases the cell under the pointer while a gesture
// is active. The fill tool ignores move events.
func (e *Editor) PointerMove(x, y int) {
	if !e.painting || e.tool == ToolFill {
		return
	}
	e.apply(x, y)
}

// PointerUp ends pointer contact unconditionally. Also used for pointer
// cancel and leave.
func (e *Editor) PointerUp() {
	e.painting = false
}

// Clear resets every cell to the background color.
func (e *Editor) Clear() {
	e.grid.Clear()
}

// apply writes one cell according to the selected tool. Set ignores
// out-of-range coordinates, so edge-imprecise pointer moves are safe.
func (e *Editor) apply(x, y int) {
	switch e.tool {
	case ToolDraw:
		e.grid.Set(x, y, e.color)
	case ToolErase:
		e.grid.Set(x, y, e.grid.Background())
	}
}

// floodFill replaces the 4-connected region of the target color at (x, y)
// with the active color. Iterative with an explicit stack to avoid
// recursion depth limits on large grids; each cell is visited at most once
// because visiting rewrites it away from the target color. No-op when the
// target already equals the replacement.
func (e *Editor) floodFill(x, y int) {
	target := e.grid.At(x, y)
	replacement := e.color
	if target == replacement {
		return
	}

	type point struct{ x, y int }
	stack := []point{{x, y}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !e.grid.InBounds(p.x, p.y) || e.grid.At(p.x, p.y) != target {
			continue
		}
		e.grid.Set(p.x, p.y, replacement)

		stack = append(stack,
			point{p.x + 1, p.y},
			point{p.x - 1, p.y},
			point{p.x, p.y + 1},
			point{p.x, p.y - 1},
		)
	}
}
