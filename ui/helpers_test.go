package ui

import (
	"regexp"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/swairshah/InputMCP/types"
)

func drawSpec() *types.InputSpec {
	return &types.InputSpec{
		Kind:            types.KindImage,
		Message:         "Draw something",
		SubmitLabel:     "Submit",
		Width:           128,
		Height:          96,
		MimeType:        "image/png",
		BackgroundColor: "#ffffff",
	}
}

func pixelSpec() *types.InputSpec {
	return &types.InputSpec{
		Kind:            types.KindPixelArt,
		Message:         "Paint something",
		SubmitLabel:     "Submit",
		GridWidth:       8,
		GridHeight:      8,
		CellSize:        16,
		MimeType:        "image/png",
		BackgroundColor: "#ffffff",
		Palette:         []string{"#000000", "#ff0000", "#00ff00"},
	}
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// containsStripped checks for a substring after removing ANSI styling.
func containsStripped(frame, want string) bool {
	return strings.Contains(ansiPattern.ReplaceAllString(frame, ""), want)
}

// runCmd executes a command and returns the message it produces.
func runCmd(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}
