// Package display holds the presentation model shared by the text and
// terminal renderers. Command results convert themselves into a Report;
// the JSON renderer encodes the result itself instead.
package display

// Report is the human readable view of a command result.
type Report struct {
	// Command that was executed, e.g. "migrate".
	Command string `json:"command"`
	// Title is the one line headline.
	Title string `json:"title"`
	// Fields are label/value lines printed under the title.
	Fields []Field `json:"fields,omitempty"`
	// Tables are printed in order after the fields.
	Tables []Table `json:"tables,omitempty"`
	// Warnings are non fatal problems, printed last.
	Warnings []string `json:"warnings,omitempty"`
	// Body is printed verbatim, e.g. generated configuration.
	Body string `json:"body,omitempty"`
}

// Field is one labelled value.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Table is a titled grid. Rows have as many cells as Headers.
type Table struct {
	Title   string     `json:"title,omitempty"`
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// Reporter is implemented by results that can be shown to humans.
type Reporter interface {
	Report() *Report
}

// AddField appends a field and returns the report.
func (r *Report) AddField(label, value string) *Report {
	r.Fields = append(r.Fields, Field{Label: label, Value: value})
	return r
}

// AddTable appends a table unless it has no rows.
func (r *Report) AddTable(t Table) *Report {
	if len(t.Rows) > 0 {
		r.Tables = append(r.Tables, t)
	}
	return r
}
