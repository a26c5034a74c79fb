package ui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/swairshah/InputMCP/types"
	"github.com/swairshah/InputMCP/wire"
)

// panel is one input surface (text, freehand, pixel art). The root model
// routes events to exactly one panel for the lifetime of the prompt.
type panel interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (panel, tea.Cmd)
	View() string
}

// submitMsg carries a completed submission up from a panel.
type submitMsg struct {
	result *types.SubmissionResult
}

// failMsg carries an internal panel failure (e.g. image encoding) up to
// the root, which surfaces it as an error envelope.
type failMsg struct {
	message string
}

// rootModel owns the prompt lifecycle: it renders the message header,
// routes events to the active panel, and records the single outcome.
type rootModel struct {
	spec  *types.InputSpec
	panel panel

	result   *types.SubmissionResult
	failure  string
	quitting bool

	width  int
	height int
}

// headerRows is the number of rows the root renders above the panel:
// the message line and one blank separator. Panels use it to translate
// mouse coordinates.
const headerRows = 2

func newRootModel(spec *types.InputSpec) (rootModel, error) {
	var p panel
	switch spec.Kind {
	case types.KindText:
		p = newTextPanel(spec)
	case types.KindImage:
		p = newDrawPanel(spec)
	case types.KindPixelArt:
		p = newPixelPanel(spec)
	default:
		return rootModel{}, fmt.Errorf("no panel for kind %q", spec.Kind)
	}
	return rootModel{spec: spec, panel: p}, nil
}

// Init implements tea.Model.
func (m rootModel) Init() tea.Cmd {
	return m.panel.Init()
}

// Update implements tea.Model.
func (m rootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case submitMsg:
		m.result = msg.result
		m.quitting = true
		return m, tea.Quit

	case failMsg:
		m.failure = msg.message
		m.quitting = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.panel, cmd = m.panel.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m rootModel) View() string {
	if m.quitting {
		return ""
	}
	return TitleStyle.Render(m.spec.Message) + "\n" + m.panel.View()
}

// Run drives the prompt UI for the given spec and reports the single
// outcome through the responder. A cancellation (esc, ctrl+c) emits a
// cancel envelope; an internal panel failure emits an error envelope.
// Errors from the terminal program itself are returned without emitting,
// so the caller can decide the envelope.
func Run(spec *types.InputSpec, resp *wire.Responder) error {
	model, err := newRootModel(spec)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model,
		tea.WithOutput(os.Stderr),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	final, err := p.Run()
	if err != nil {
		return err
	}

	root, ok := final.(rootModel)
	if !ok {
		return fmt.Errorf("unexpected final model %T", final)
	}

	switch {
	case root.result != nil:
		_, err = resp.Submit(root.result)
	case root.failure != "":
		_, err = resp.Fail(root.failure)
	default:
		_, err = resp.Cancel()
	}
	return err
}
