package lox

import (
	"io"
	"strings"
	"testing"
)

func Test_FormatDiagSource_MarksOffendingLine(t *testing.T) {
	src := "var x = 1;\nprint missing;\nprint x;"
	diags := Run(src, io.Discard)
	if len(diags) != 1 {
		t.Fatalf("want 1 diagnostic, got %v", diags)
	}

	out := FormatDiagSource(diags[0], src)
	if !strings.HasPrefix(out, "RUNTIME ERROR at line 2: ") {
		t.Fatalf("missing header: %q", out)
	}
	for _, want := range []string{
		">    2 | print missing;",
		"     1 | var x = 1;",
		"     3 | print x;",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("snippet missing %q:\n%s", want, out)
		}
	}
}

func Test_FormatDiagSource_ClampsOutOfRangeLines(t *testing.T) {
	d := Diag{Phase: PhaseSyntax, Kind: ExpectSemicolon, Line: 99}
	out := FormatDiagSource(d, "print 1")
	if !strings.Contains(out, "print 1") {
		t.Fatalf("clamped snippet must still show source:\n%s", out)
	}

	d.Line = 0
	out = FormatDiagSource(d, "print 1")
	if !strings.Contains(out, "print 1") {
		t.Fatalf("clamped snippet must still show source:\n%s", out)
	}
}

func Test_FormatDiags_RendersAllInOrder(t *testing.T) {
	src := "@\nprint missing;"
	diags := Run(src, io.Discard)
	if len(diags) != 2 {
		t.Fatalf("want 2 diagnostics, got %v", diags)
	}
	out := FormatDiags(diags, src)
	lexIdx := strings.Index(out, "LEXICAL ERROR")
	rtIdx := strings.Index(out, "RUNTIME ERROR")
	if lexIdx < 0 || rtIdx < 0 || lexIdx > rtIdx {
		t.Fatalf("diagnostics out of order:\n%s", out)
	}
}
