package report

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// TextRenderer provides plain text output without colors or styling
type TextRenderer struct {
	output io.Writer
}

// RenderReport renders the report as plain text
func (r *TextRenderer) RenderReport(rep *Report) error {
	var b strings.Builder
	fmt.Fprintf(&b, "presetcheck %s (run %s, %s)\n", rep.Mode, rep.RunID, rep.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(&b, "Inputs: %d plugins, %d head parts, %d merged plugins, %d textures\n",
		rep.Inputs.Plugins, rep.Inputs.HeadParts, rep.Inputs.Merges, rep.Inputs.Textures)
	for _, line := range countLines(rep.Counts) {
		fmt.Fprintf(&b, "  %-11s %d\n", line.label+":", line.value)
	}
	writeList(&b, "Unresolved plugins", rep.BadPlugins)
	writeList(&b, "Missing textures", rep.MissingTextures)
	_, err := io.WriteString(r.output, b.String())
	return err
}

// RenderError renders an error as plain text
func (r *TextRenderer) RenderError(err error) error {
	_, err2 := fmt.Fprintf(r.output, "Error: %v\n", err)
	return err2
}

// RenderMessage renders a simple message
func (r *TextRenderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		fmt.Fprintf(b, "%s: none\n", title)
		return
	}
	fmt.Fprintf(b, "%s (%d):\n", title, len(items))
	for _, item := range items {
		fmt.Fprintf(b, "  %s\n", item)
	}
}

type countLine struct {
	label string
	value int
}

func countLines(c Counts) []countLine {
	return []countLine{
		{"Scanned", c.Scanned},
		{"Rejected", c.Rejected},
		{"Failed", c.Failed},
		{"Updated", c.Updated},
		{"Written", c.Written},
		{"Copied", c.Copied},
		{"Relocated", c.Relocated},
		{"Collisions", c.Collisions},
	}
}
