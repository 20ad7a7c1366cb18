package bookshelf

import (
	"fmt"
	"io"
	"strings"
)

// TextSink buffers units and prints them as two tables.
type TextSink struct {
	w          io.Writer
	incomplete []Unit
	complete   []Unit
}

// NewTextSink returns a sink that prints to w on Flush.
func NewTextSink(w io.Writer) *TextSink { return &TextSink{w: w} }

func (t *TextSink) Clear() {
	t.incomplete = t.incomplete[:0]
	t.complete = t.complete[:0]
}

func (t *TextSink) Append(section Section, u Unit) {
	if section == Complete {
		t.complete = append(t.complete, u)
		return
	}
	t.incomplete = append(t.incomplete, u)
}

// Units returns the buffered units of section.
func (t *TextSink) Units(section Section) []Unit {
	if section == Complete {
		return append([]Unit(nil), t.complete...)
	}
	return append([]Unit(nil), t.incomplete...)
}

// Flush prints both tables.
func (t *TextSink) Flush() {
	t.printSection("Not yet read", t.incomplete)
	fmt.Fprintln(t.w)
	t.printSection("Finished", t.complete)
}

func (t *TextSink) printSection(heading string, units []Unit) {
	fmt.Fprintf(t.w, "%s (%d)\n", heading, len(units))
	if len(units) == 0 {
		fmt.Fprintln(t.w, "  No books.")
		return
	}
	fmt.Fprintf(t.w, "%-15s %-30s %-25s %-6s %s\n", "ID", "Title", "Author", "Year", "Image")
	fmt.Fprintln(t.w, strings.Repeat("-", 100))
	for _, u := range units {
		fmt.Fprintln(t.w, PrettyUnit(u))
	}
}

// PrettyUnit formats a unit for lists.
func PrettyUnit(u Unit) string {
	return fmt.Sprintf("%-15d %-30s %-25s %-6d %s",
		u.ID,
		truncateString(u.Title, 30),
		truncateString(u.Author, 25),
		u.Year,
		u.Image)
}

func truncateString(s string, maxLength int) string {
	r := []rune(s)
	if len(r) <= maxLength {
		return s
	}
	return string(r[:maxLength-3]) + "..."
}
