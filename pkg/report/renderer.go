package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Renderer is the common interface for all output renderers.
type Renderer interface {
	// RenderReport renders the end-of-run summary
	RenderReport(r *Report) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// NewRenderer creates a new renderer based on the specified format.
// It automatically detects terminal capabilities when format is Auto.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output)
		}
		return NewRenderer(FormatText, output)
	case FormatTerminal:
		return &TerminalRenderer{output: output}, nil
	case FormatText:
		return &TextRenderer{output: output}, nil
	case FormatJSON:
		encoder := json.NewEncoder(output)
		encoder.SetIndent("", "  ")
		return &JSONRenderer{encoder: encoder}, nil
	case FormatMarkdown:
		return &MarkdownRenderer{output: output, Style: "auto"}, nil
	default:
		return nil, fmt.Errorf("unknown format: %v", format)
	}
}

// JSONRenderer provides JSON output for machine consumption
type JSONRenderer struct {
	encoder *json.Encoder
}

// RenderReport renders the report as JSON
func (r *JSONRenderer) RenderReport(rep *Report) error {
	return r.encoder.Encode(rep)
}

// RenderError renders an error as JSON
func (r *JSONRenderer) RenderError(err error) error {
	return r.encoder.Encode(map[string]string{"error": err.Error()})
}

// RenderMessage renders a simple message as JSON
func (r *JSONRenderer) RenderMessage(msg string) error {
	return r.encoder.Encode(map[string]string{"message": msg})
}
