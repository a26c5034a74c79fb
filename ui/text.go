package ui

import (
	"encoding/json"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/swairshah/InputMCP/types"
)

// textPanel collects free-form or JSON text in a multi-line editor.
type textPanel struct {
	spec    *types.InputSpec
	area    textarea.Model
	invalid string
}

func newTextPanel(spec *types.InputSpec) *textPanel {
	ta := textarea.New()
	ta.Placeholder = spec.Placeholder
	ta.SetHeight(spec.Lines)
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.Focus()

	return &textPanel{spec: spec, area: ta}
}

// Init implements panel.
func (p *textPanel) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements panel.
func (p *textPanel) Update(msg tea.Msg) (panel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "ctrl+s" {
		return p.submit()
	}

	var cmd tea.Cmd
	p.area, cmd = p.area.Update(msg)
	return p, cmd
}

// submit validates the buffer against the spec's format. A JSON prompt
// with an invalid buffer stays open with an inline notice instead of
// submitting.
func (p *textPanel) submit() (panel, tea.Cmd) {
	value := p.area.Value()

	if p.spec.Format == types.FormatJSON && !json.Valid([]byte(value)) {
		p.invalid = "not valid JSON, fix and resubmit"
		return p, nil
	}
	p.invalid = ""

	result := &types.SubmissionResult{
		Kind:   types.KindText,
		Value:  value,
		Format: p.spec.Format,
	}
	return p, func() tea.Msg { return submitMsg{result: result} }
}

// View implements panel.
func (p *textPanel) View() string {
	out := p.area.View()
	if p.invalid != "" {
		out += "\n" + ErrorStyle.Render(p.invalid)
	}
	out += "\n" + HelpStyle.Render("ctrl+s "+p.spec.SubmitLabel+" · esc cancel")
	return out
}
