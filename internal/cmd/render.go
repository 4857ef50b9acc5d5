package cmd

import (
	"strconv"
	"strings"

	"github.com/bitfield/track404"
	"github.com/charmbracelet/lipgloss"
)

var (
	stylePath  = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))             // cyan
	styleCount = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true) // red bold
)

// colorLines is track404.Lines with the path and count styled for a terminal.
// When output is not a terminal the styles render as plain text.
func colorLines(entries []track404.Entry) *track404.Pipe {
	var output strings.Builder
	for _, e := range entries {
		output.WriteString(stylePath.Render(e.Path))
		output.WriteString(": ")
		output.WriteString(styleCount.Render(strconv.Itoa(e.Count)))
		output.WriteString(" hits\n")
	}
	return track404.Echo(output.String())
}
