// Package renderer turns portfolio data into markdown reports.
//
// Every view is a pure function from the portfolio state to a markdown
// string; callers decide whether to print it raw or through a terminal
// markdown renderer.
package renderer

import (
	"fmt"
	"strings"
)

// mdRenderer accumulates markdown output.
type mdRenderer struct {
	*strings.Builder
}

func newRenderer() *mdRenderer {
	return &mdRenderer{Builder: &strings.Builder{}}
}

// Printf formats according to a format specifier and writes to the renderer's buffer.
func (r *mdRenderer) Printf(format string, args ...any) {
	fmt.Fprintf(r, format, args...)
}
