// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/arthur-debert/reslot/pkg/ui/display"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

// RenderResult renders a result's report as plain text. Results without a
// report are printed with %+v.
func (r *Renderer) RenderResult(result interface{}) error {
	reporter, ok := result.(display.Reporter)
	if !ok {
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
	return r.render(reporter.Report())
}

func (r *Renderer) render(rep *display.Report) error {
	var b strings.Builder

	if rep.Title != "" {
		b.WriteString(rep.Title + "\n")
	}
	if len(rep.Fields) > 0 {
		tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
		for _, f := range rep.Fields {
			fmt.Fprintf(tw, "%s:\t%s\n", f.Label, f.Value)
		}
		_ = tw.Flush()
	}
	for _, table := range rep.Tables {
		b.WriteString("\n")
		if table.Title != "" {
			b.WriteString(table.Title + "\n")
		}
		tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, strings.Join(table.Headers, "\t"))
		for _, row := range table.Rows {
			fmt.Fprintln(tw, strings.Join(row, "\t"))
		}
		_ = tw.Flush()
	}
	if rep.Body != "" {
		b.WriteString(rep.Body)
		if !strings.HasSuffix(rep.Body, "\n") {
			b.WriteString("\n")
		}
	}
	if len(rep.Warnings) > 0 {
		b.WriteString("\n")
		for _, w := range rep.Warnings {
			b.WriteString("Warning: " + w + "\n")
		}
	}

	_, err := io.WriteString(r.output, b.String())
	return err
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, err2 := fmt.Fprintf(r.output, "Error: %v\n", err)
	return err2
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
