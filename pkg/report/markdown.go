package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer writes the report as markdown rendered through glamour.
type MarkdownRenderer struct {
	output io.Writer
	// Style name: "dark", "light", "notty", "auto", or path to custom style
	Style string
	// Width wraps output; 0 keeps glamour's default
	Width int
}

// RenderReport renders the report
func (r *MarkdownRenderer) RenderReport(rep *Report) error {
	_, err := io.WriteString(r.output, r.render(Markdown(rep)))
	return err
}

// RenderError renders an error
func (r *MarkdownRenderer) RenderError(err error) error {
	_, err2 := io.WriteString(r.output, r.render("**Error:** "+err.Error()+"\n"))
	return err2
}

// RenderMessage renders a simple message
func (r *MarkdownRenderer) RenderMessage(msg string) error {
	_, err := io.WriteString(r.output, r.render(msg+"\n"))
	return err
}

// render falls back to the raw markdown when glamour fails.
func (r *MarkdownRenderer) render(content string) string {
	var options []glamour.TermRendererOption
	if r.Style != "" && r.Style != "auto" {
		options = append(options, glamour.WithStylePath(r.Style))
	} else {
		options = append(options, glamour.WithAutoStyle())
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// Markdown formats the report as a markdown document.
func Markdown(rep *Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# presetcheck %s\n\n", rep.Mode)
	fmt.Fprintf(&b, "Run `%s`, %s.\n\n", rep.RunID, rep.Elapsed.Round(time.Millisecond))

	b.WriteString("| Input | Count |\n|---|---|\n")
	fmt.Fprintf(&b, "| Plugins | %d |\n| Head parts | %d |\n| Merged plugins | %d |\n| Textures | %d |\n\n",
		rep.Inputs.Plugins, rep.Inputs.HeadParts, rep.Inputs.Merges, rep.Inputs.Textures)

	b.WriteString("| Presets | Count |\n|---|---|\n")
	for _, line := range countLines(rep.Counts) {
		fmt.Fprintf(&b, "| %s | %d |\n", line.label, line.value)
	}

	markdownList(&b, "Unresolved plugins", rep.BadPlugins)
	markdownList(&b, "Missing textures", rep.MissingTextures)
	return b.String()
}

func markdownList(b *strings.Builder, title string, items []string) {
	fmt.Fprintf(b, "\n## %s\n\n", title)
	if len(items) == 0 {
		b.WriteString("None.\n")
		return
	}
	for _, item := range items {
		fmt.Fprintf(b, "- `%s`\n", item)
	}
}
