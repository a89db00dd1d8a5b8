// errors.go: human-readable source snippets for diagnostics.
//
// FormatDiagSource turns a structured Diag into a short numbered excerpt of
// the source with the offending line marked:
//
//	PARSE ERROR at line 3: expect ';' after statement, got ")"
//
//	   2 | var x = (1 + 2
//	>  3 |              );
//	   4 | print x;
//
// Output is plain text; terminal styling is the driver's business. Line
// numbers are clamped so a diagnostic pointing past the end of a short source
// still renders.
package lox

import (
	"fmt"
	"strings"
)

// FormatDiagSource renders diag with up to one line of context on each side
// of the offending line.
func FormatDiagSource(d Diag, src string) string {
	lines := strings.Split(src, "\n")
	line := d.Line
	if line < 1 {
		line = 1
	}
	if line > len(lines) {
		line = len(lines)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", d.Error())
	if line > 1 {
		fmt.Fprintf(&b, "  %4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "> %4d | %s\n", line, lines[line-1])
	if line < len(lines) {
		fmt.Fprintf(&b, "  %4d | %s\n", line+1, lines[line])
	}
	return b.String()
}

// FormatDiags renders every diagnostic in order, separated by blank lines.
func FormatDiags(diags []Diag, src string) string {
	parts := make([]string, 0, len(diags))
	for _, d := range diags {
		parts = append(parts, FormatDiagSource(d, src))
	}
	return strings.Join(parts, "\n")
}
