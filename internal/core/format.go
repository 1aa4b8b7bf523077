package core

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/akedrou/textdiff"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// FormatArgs renders an argument tuple the way failures and dumps show it.
func FormatArgs(args []any) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = fmt.Sprintf("%#v", arg)
	}

	return strings.Join(parts, ", ")
}

// String renders one record as "(input) -> output".
func (r CallRecord) String() string {
	return fmt.Sprintf("(%s) -> %#v", FormatArgs(r.Input), r.Output)
}

// Transcript renders the history line by line in completion order,
// 1-indexed to match NthCall.
func (h History) Transcript() string {
	if len(h) == 0 {
		return "(no calls)"
	}

	lines := make([]string, len(h))
	for i, record := range h {
		lines[i] = fmt.Sprintf("%d: %s", i+1, record.String())
	}

	return strings.Join(lines, "\n")
}

// Diff renders a unified diff between this history's transcript and
// another's. Empty when the transcripts are equal.
func (h History) Diff(other History) string {
	return textdiff.Unified("recorded", "expected", h.Transcript()+"\n", other.Transcript()+"\n")
}

// DumpHistory writes every known function's history to w, in first-seen
// name order, for debugging a surprising test result. Names are colorized
// when w is a terminal.
func (s *Stub) DumpHistory(w io.Writer) {
	paint := func(text string) string { return text }

	if isTerminal(w) {
		heading := color.New(color.FgCyan, color.Bold)
		paint = func(text string) string { return heading.Sprint(text) }
	}

	fmt.Fprintf(w, "%s\n", paint("stub "+s.id))

	names := s.store.knownNames()
	if len(names) == 0 {
		fmt.Fprintln(w, "(no functions)")

		return
	}

	for _, name := range names {
		fmt.Fprintf(w, "%s\n%s\n", paint(name), s.History(name).Transcript())
	}
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}
