package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the startup banner with a green gradient.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"  _             _   _      ", "#4ade80"},
		{" | |_ _  _ _ _ | |_| |___  ", "#34d399"},
		{" |  _| || | '_||  _| / -_) ", "#2dd4bf"},
		{"  \\__|\\_,_|_|   \\__|_\\___| ", "#22d3ee"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintf(w, "  v%s  PLACE X,Y,F | MOVE | LEFT | RIGHT | REPORT | exit\n\n", version)
}

// ReportStyle returns a decorator that renders report lines in bold green
// on color terminals and leaves them untouched elsewhere.
func ReportStyle() func(string) string {
	p := termenv.ColorProfile()
	if p == termenv.Ascii {
		return nil
	}
	return func(s string) string {
		return termenv.String(s).Foreground(p.Color("#4ade80")).Bold().String()
	}
}
