package output

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/temirov/lc/internal/types"
)

const noColorEnvironmentVariable = "NO_COLOR"

// ShouldUseColor resolves a color mode against the destination writer.
// NO_COLOR always wins; auto colors only terminals.
func ShouldUseColor(mode string, writer io.Writer) bool {
	if os.Getenv(noColorEnvironmentVariable) != "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case types.ColorAlways:
		return true
	case types.ColorNever:
		return false
	}
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

// palette styles the parts of the raw report. The zero palette renders
// text unchanged.
type palette struct {
	enabled   bool
	directory lipgloss.Style
	file      lipgloss.Style
	counts    lipgloss.Style
	label     lipgloss.Style
}

func newPalette(styled bool) palette {
	if !styled {
		return palette{}
	}
	// The output is buffered before it reaches the terminal, so the profile
	// is fixed instead of detected from the writer.
	renderer := lipgloss.NewRenderer(io.Discard)
	renderer.SetColorProfile(termenv.ANSI256)
	return palette{
		enabled:   true,
		directory: renderer.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true),
		file:      renderer.NewStyle().Foreground(lipgloss.Color("#F0F0F0")),
		counts:    renderer.NewStyle().Foreground(lipgloss.Color("#8C8C8C")),
		label:     renderer.NewStyle().Bold(true),
	}
}

func (styles palette) render(style lipgloss.Style, text string) string {
	if !styles.enabled || text == "" {
		return text
	}
	return style.Render(text)
}
