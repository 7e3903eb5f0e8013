// Package render formats pictures, errors, and the search history for
// terminal output. Formatters are pure: same input, same bytes, no I/O of
// their own beyond the writer they are handed.
package render

import (
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/Mech-Kal/nasasky/internal/nasa"
)

// PublicDomainLabel substitutes for an absent copyright.
const PublicDomainLabel = "Public Domain"

const wrapWidth = 78

// Copyright returns the attribution line for a picture.
func Copyright(p *nasa.Picture) string {
	if p.Copyright == "" {
		return PublicDomainLabel
	}
	return p.Copyright
}

// TextFormatter writes plain-text output with optional ANSI styling.
type TextFormatter struct {
	color bool
}

// NewText creates a formatter. Set color=true for ANSI colors.
func NewText(color bool) *TextFormatter {
	return &TextFormatter{color: color}
}

// Loading writes the loading state for a date.
func (f *TextFormatter) Loading(w io.Writer, date string) {
	fmt.Fprintf(w, "Fetching picture for %s...\n", date)
}

// Picture writes the full record: title, date, attribution, explanation,
// and a media line matching the record variant.
func (f *TextFormatter) Picture(w io.Writer, p *nasa.Picture) {
	fmt.Fprintln(w, f.bold(p.Title))
	fmt.Fprintf(w, "%s — %s\n", p.Date, f.dim(Copyright(p)))
	fmt.Fprintln(w)
	fmt.Fprintln(w, wrapText(p.Explanation, wrapWidth))
	fmt.Fprintln(w)
	switch p.Media {
	case nasa.MediaVideo:
		fmt.Fprintf(w, "Watch: %s\n", f.dim(p.URL))
	default:
		fmt.Fprintf(w, "Image: %s\n", f.dim(p.URL))
	}
}

// Error writes a failed lookup: the date it was for and what went wrong.
func (f *TextFormatter) Error(w io.Writer, date string, err error) {
	fmt.Fprintf(w, "%s %s: %v\n", f.red("Lookup failed for"), f.bold(date), err)
}

// History writes the saved searches most recent first. An empty sequence
// prints a placeholder line.
func (f *TextFormatter) History(w io.Writer, dates iter.Seq[string]) {
	n := 0
	for d := range dates {
		n++
		fmt.Fprintf(w, "  %s %s\n", f.dim(fmt.Sprintf("%2d.", n)), d)
	}
	if n == 0 {
		fmt.Fprintln(w, "No saved searches.")
	}
}

func wrapText(s string, width int) string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
		} else {
			line += " " + w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}

// ANSI helpers — no-op when color=false.

func (f *TextFormatter) bold(s string) string {
	if !f.color {
		return s
	}
	return "\033[1m" + s + "\033[0m"
}

func (f *TextFormatter) dim(s string) string {
	if !f.color {
		return s
	}
	return "\033[2m" + s + "\033[0m"
}

func (f *TextFormatter) red(s string) string {
	if !f.color {
		return s
	}
	return "\033[31m" + s + "\033[0m"
}
