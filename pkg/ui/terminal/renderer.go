// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/reslot/pkg/ui/display"
	"github.com/arthur-debert/reslot/pkg/ui/styles"
	"github.com/pterm/pterm"
)

// Renderer provides styled terminal output. Text is styled with lipgloss
// and tables are drawn with pterm. Slot names in values and cells are
// highlighted.
type Renderer struct {
	output io.Writer
}

// New creates a new terminal renderer
func New(w io.Writer) *Renderer {
	return &Renderer{output: w}
}

// RenderResult renders a result's report. Results without a report are
// printed with %+v.
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
		b.WriteString(styles.Render("Title", rep.Title) + "\n")
	}
	for _, f := range rep.Fields {
		b.WriteString(styles.Render("Label", f.Label) + styles.Render("Value", styles.HighlightSlots(f.Value)) + "\n")
	}

	for _, table := range rep.Tables {
		if table.Title != "" {
			b.WriteString(styles.Render("TableTitle", table.Title) + "\n")
		}
		data := pterm.TableData{table.Headers}
		for _, row := range table.Rows {
			cells := make([]string, len(row))
			for i, cell := range row {
				cells[i] = styles.HighlightSlots(cell)
			}
			data = append(data, cells)
		}
		out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
		if err != nil {
			return err
		}
		b.WriteString(out + "\n")
	}

	if rep.Body != "" {
		b.WriteString(rep.Body)
		if !strings.HasSuffix(rep.Body, "\n") {
			b.WriteString("\n")
		}
	}
	for _, w := range rep.Warnings {
		b.WriteString(styles.Render("Warning", "! "+w) + "\n")
	}

	_, err := io.WriteString(r.output, b.String())
	return err
}

// RenderError renders an error with appropriate formatting
func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintln(r.output, styles.Render("Error", "Error: ")+err.Error())
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, styles.Render("Success", msg))
	return err
}
