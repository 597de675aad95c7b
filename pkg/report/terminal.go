package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// TerminalRenderer provides rich terminal output using lipgloss styles
type TerminalRenderer struct {
	output io.Writer
}

// RenderReport renders the report with colors and a counters box
func (r *TerminalRenderer) RenderReport(rep *Report) error {
	var sections []string

	header := titleStyle.Render("presetcheck "+rep.Mode) + " " +
		mutedStyle.Render(fmt.Sprintf("run %s · %s", rep.RunID, rep.Elapsed.Round(time.Millisecond)))
	sections = append(sections, header)
	sections = append(sections, mutedStyle.Render(fmt.Sprintf(
		"%d plugins · %d head parts · %d merged plugins · %d textures",
		rep.Inputs.Plugins, rep.Inputs.HeadParts, rep.Inputs.Merges, rep.Inputs.Textures)))

	var counts []string
	for _, line := range countLines(rep.Counts) {
		counts = append(counts, fmt.Sprintf("%-11s %s", line.label, titleStyle.Render(fmt.Sprint(line.value))))
	}
	sections = append(sections, boxStyle.Render(strings.Join(counts, "\n")))

	sections = append(sections, renderList("Unresolved plugins", rep.BadPlugins, func(s string) string { return s }))
	sections = append(sections, renderList("Missing textures", rep.MissingTextures, func(s string) string { return pathStyle.Render(s) }))

	if rep.Clean() {
		sections = append(sections, "\n"+successIndicator+" "+successStyle.Render("All references resolve"))
	}

	_, err := fmt.Fprintln(r.output, lipgloss.JoinVertical(lipgloss.Left, sections...))
	return err
}

func renderList(title string, items []string, render func(string) string) string {
	if len(items) == 0 {
		return subtitleStyle.Render(title) + " " + mutedStyle.Render("none")
	}
	lines := []string{subtitleStyle.Render(fmt.Sprintf("%s (%d)", title, len(items)))}
	for _, item := range items {
		lines = append(lines, listItemStyle.Render(warningIndicator+" "+render(item)))
	}
	return strings.Join(lines, "\n")
}

// RenderError renders an error in the error style
func (r *TerminalRenderer) RenderError(err error) error {
	_, err2 := fmt.Fprintln(r.output, errorIndicator+" "+errorStyle.Render(err.Error()))
	return err2
}

// RenderMessage renders a simple message
func (r *TerminalRenderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
