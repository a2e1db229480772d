package ui

import (
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/reslot/pkg/errors"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format selects how command results are printed.
type Format int

const (
	// FormatAuto picks terminal or text output from the destination.
	FormatAuto Format = iota
	// FormatTerminal styles reports and draws slot tables.
	FormatTerminal
	// FormatText prints the same reports without styling, for logs and pipes.
	FormatText
	// FormatJSON encodes results for scripts driving reslot.
	FormatJSON
)

// formatNames lists the accepted --output-format values; aliases follow the
// canonical name.
var formatNames = []struct {
	format  Format
	aliases []string
}{
	{FormatAuto, []string{"auto", ""}},
	{FormatTerminal, []string{"term", "terminal"}},
	{FormatText, []string{"text", "plain"}},
	{FormatJSON, []string{"json"}},
}

// String returns the canonical --output-format value.
func (f Format) String() string {
	for _, n := range formatNames {
		if n.format == f {
			return n.aliases[0]
		}
	}
	return "unknown"
}

// FormatNames returns the canonical --output-format values for help and completion.
func FormatNames() []string {
	names := make([]string, 0, len(formatNames))
	for _, n := range formatNames {
		names = append(names, n.aliases[0])
	}
	return names
}

// ParseFormat parses a --output-format value, case insensitively.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, n := range formatNames {
		for _, alias := range n.aliases {
			if s == alias {
				return n.format, nil
			}
		}
	}
	return FormatAuto, errors.Newf(errors.ErrInvalidInput, "unknown output format %q (want one of %s)",
		s, strings.Join(FormatNames(), ", ")).
		WithDetail("format", s)
}

// DetectFormat resolves FormatAuto for w. Only a color capable terminal gets
// styled output; buffers, pipes and NO_COLOR get plain text.
func DetectFormat(w io.Writer) Format {
	file, ok := w.(*os.File)
	if !ok || os.Getenv("NO_COLOR") != "" {
		return FormatText
	}
	if !isatty.IsTerminal(file.Fd()) && !isatty.IsCygwinTerminal(file.Fd()) {
		return FormatText
	}
	if termenv.ColorProfile() == termenv.Ascii {
		return FormatText
	}
	return FormatTerminal
}
