package lox

import (
	"strings"
	"testing"
)

// --- helpers ---------------------------------------------------------------

func parseSrc(t *testing.T, src string) ([]Stmt, []Diag) {
	t.Helper()
	toks, lexDiags := Scan(src)
	if len(lexDiags) != 0 {
		t.Fatalf("unexpected lex diagnostics for %q: %v", src, lexDiags)
	}
	return Parse(toks)
}

func parseClean(t *testing.T, src string) []Stmt {
	t.Helper()
	stmts, diags := parseSrc(t, src)
	if len(diags) != 0 {
		t.Fatalf("unexpected parse diagnostics for %q: %v", src, diags)
	}
	return stmts
}

// parseExpr parses a single expression statement and returns its expression.
func parseExpr(t *testing.T, src string) Expr {
	t.Helper()
	stmts := parseClean(t, src+";")
	if len(stmts) != 1 {
		t.Fatalf("want 1 statement, got %d", len(stmts))
	}
	es, ok := stmts[0].(*ExpressionStmt)
	if !ok {
		t.Fatalf("want ExpressionStmt, got %T", stmts[0])
	}
	return es.Expr
}

func wantKind(t *testing.T, d Diag, kind DiagKind, line int) {
	t.Helper()
	if d.Phase != PhaseSyntax || d.Kind != kind {
		t.Fatalf("want syntax diag kind %d, got %#v", kind, d)
	}
	if d.Line != line {
		t.Fatalf("want diag at line %d, got %d", line, d.Line)
	}
}

// --- tests -----------------------------------------------------------------

func Test_Parser_Precedence_FactorBindsTighter(t *testing.T) {
	e := parseExpr(t, "1 + 2 * 3")
	add, ok := e.(*Binary)
	if !ok || add.Operator.Type != PLUS {
		t.Fatalf("want '+' at the root, got %#v", e)
	}
	mul, ok := add.Right.(*Binary)
	if !ok || mul.Operator.Type != MULT {
		t.Fatalf("want '*' on the right of '+', got %#v", add.Right)
	}
}

func Test_Parser_LeftAssociativity(t *testing.T) {
	e := parseExpr(t, "1 - 2 - 3")
	outer, ok := e.(*Binary)
	if !ok || outer.Operator.Type != MINUS {
		t.Fatalf("want '-' at the root, got %#v", e)
	}
	if _, ok := outer.Left.(*Binary); !ok {
		t.Fatalf("want left-leaning chain, got %#v", outer.Left)
	}
	if _, ok := outer.Right.(*Literal); !ok {
		t.Fatalf("want literal on the right, got %#v", outer.Right)
	}
}

func Test_Parser_Grouping_OverridesPrecedence(t *testing.T) {
	e := parseExpr(t, "(1 + 2) * 3")
	mul, ok := e.(*Binary)
	if !ok || mul.Operator.Type != MULT {
		t.Fatalf("want '*' at the root, got %#v", e)
	}
	if _, ok := mul.Left.(*Grouping); !ok {
		t.Fatalf("want grouping on the left, got %#v", mul.Left)
	}
}

func Test_Parser_Unary_Nests(t *testing.T) {
	e := parseExpr(t, "!!true")
	u, ok := e.(*Unary)
	if !ok || u.Operator.Type != BANG {
		t.Fatalf("want '!', got %#v", e)
	}
	if _, ok := u.Right.(*Unary); !ok {
		t.Fatalf("want nested unary, got %#v", u.Right)
	}
}

func Test_Parser_Assignment_RightAssociative(t *testing.T) {
	e := parseExpr(t, "a = b = 1")
	outer, ok := e.(*Assign)
	if !ok || outer.Name.Lexeme != "a" {
		t.Fatalf("want assignment to a, got %#v", e)
	}
	inner, ok := outer.Value.(*Assign)
	if !ok || inner.Name.Lexeme != "b" {
		t.Fatalf("want nested assignment to b, got %#v", outer.Value)
	}
}

func Test_Parser_InvalidAssignmentTarget_KeepsParsing(t *testing.T) {
	stmts, diags := parseSrc(t, "1 = 2;")
	if len(diags) != 1 {
		t.Fatalf("want exactly 1 diagnostic, got %v", diags)
	}
	wantKind(t, diags[0], InvalidAssignmentTarget, 1)
	// the statement still parses (the left side survives)
	if len(stmts) != 1 {
		t.Fatalf("want 1 statement, got %d", len(stmts))
	}
}

func Test_Parser_Logical_PrecedenceBelowEquality(t *testing.T) {
	e := parseExpr(t, "1 == 1 or 2 == 2 and false")
	or, ok := e.(*Logical)
	if !ok || or.Operator.Type != OR {
		t.Fatalf("want 'or' at the root, got %#v", e)
	}
	and, ok := or.Right.(*Logical)
	if !ok || and.Operator.Type != AND {
		t.Fatalf("want 'and' on the right of 'or', got %#v", or.Right)
	}
}

func Test_Parser_VarDecl_Forms(t *testing.T) {
	stmts := parseClean(t, "var a; var b = 2;")
	if len(stmts) != 2 {
		t.Fatalf("want 2 statements, got %d", len(stmts))
	}
	v0 := stmts[0].(*VarStmt)
	if v0.Name.Lexeme != "a" || v0.Initializer != nil {
		t.Fatalf("want uninitialized a, got %#v", v0)
	}
	v1 := stmts[1].(*VarStmt)
	if v1.Name.Lexeme != "b" || v1.Initializer == nil {
		t.Fatalf("want initialized b, got %#v", v1)
	}
}

func Test_Parser_Block_CollectsStatements(t *testing.T) {
	stmts := parseClean(t, "{ var a = 1; print a; }")
	b, ok := stmts[0].(*BlockStmt)
	if !ok || len(b.Statements) != 2 {
		t.Fatalf("want block with 2 statements, got %#v", stmts[0])
	}
}

func Test_Parser_DanglingElse_BindsToNearestIf(t *testing.T) {
	stmts := parseClean(t, "if true if false print 1; else print 2;")
	outer := stmts[0].(*IfStmt)
	if outer.Else != nil {
		t.Fatalf("outer if must have no else, got %#v", outer.Else)
	}
	inner, ok := outer.Then.(*IfStmt)
	if !ok || inner.Else == nil {
		t.Fatalf("else must bind to the inner if, got %#v", outer.Then)
	}
}

func Test_Parser_MissingDelimiters(t *testing.T) {
	cases := []struct {
		src  string
		kind DiagKind
	}{
		{"(1 + 2;", ExpectRightParen},
		{"{ print 1;", ExpectRightBrace},
		{"print 1", ExpectSemicolon},
		{"var = 1;", ExpectIdentifier},
		{"+;", ExpectExpression},
	}
	for _, tc := range cases {
		_, diags := parseSrc(t, tc.src)
		if len(diags) == 0 {
			t.Fatalf("want a diagnostic for %q", tc.src)
		}
		if diags[0].Kind != tc.kind {
			t.Fatalf("%q: want kind %d, got %#v", tc.src, tc.kind, diags[0])
		}
	}
}

func Test_Parser_PanicMode_RecoversAtNextStatement(t *testing.T) {
	stmts, diags := parseSrc(t, `1 +; print "ok";`)
	if len(diags) != 1 {
		t.Fatalf("want exactly 1 diagnostic, got %v", diags)
	}
	wantKind(t, diags[0], ExpectExpression, 1)
	if len(stmts) != 1 {
		t.Fatalf("want the valid statement to survive, got %d", len(stmts))
	}
	if _, ok := stmts[0].(*PrintStmt); !ok {
		t.Fatalf("want PrintStmt, got %T", stmts[0])
	}
}

func Test_Parser_PanicMode_SurfacesMultipleErrors(t *testing.T) {
	stmts, diags := parseSrc(t, "1 +;\n2 *;\nprint 3;")
	if len(diags) != 2 {
		t.Fatalf("want 2 independent diagnostics, got %v", diags)
	}
	if diags[0].Line != 1 || diags[1].Line != 2 {
		t.Fatalf("want diags on lines 1 and 2, got %v", diags)
	}
	if len(stmts) != 1 {
		t.Fatalf("want 1 surviving statement, got %d", len(stmts))
	}
}

func Test_Parser_ErrorInsideBlock_StillReportsAndCloses(t *testing.T) {
	stmts, diags := parseSrc(t, "{ 1 +; print 2; }")
	if len(diags) != 1 {
		t.Fatalf("want 1 diagnostic, got %v", diags)
	}
	b, ok := stmts[0].(*BlockStmt)
	if !ok || len(b.Statements) != 1 {
		t.Fatalf("want block keeping its valid statement, got %#v", stmts[0])
	}
}

func Test_Parser_NestingTooDeep_IsReported(t *testing.T) {
	src := strings.Repeat("(", 300) + "1" + strings.Repeat(")", 300) + ";"
	_, diags := parseSrc(t, src)
	if len(diags) == 0 {
		t.Fatalf("want a diagnostic for deep nesting")
	}
	found := false
	for _, d := range diags {
		if d.Kind == NestingTooDeep {
			found = true
		}
	}
	if !found {
		t.Fatalf("want NestingTooDeep, got %v", diags)
	}
}

func Test_Parser_NeverAborts_AlwaysReturnsBothLists(t *testing.T) {
	// pathological input must still terminate with a (possibly empty) list
	for _, src := range []string{";", "= = =", "var var var", "} } }", "if"} {
		toks, _ := Scan(src)
		stmts, diags := Parse(toks)
		if stmts == nil && len(diags) == 0 {
			t.Fatalf("%q: want at least one diagnostic for garbage input", src)
		}
	}
}

func Test_IsIncomplete_ForReplContinuation(t *testing.T) {
	incomplete := []string{"{ var a = 1;", "print (1", "var x =", "\"abc"}
	for _, src := range incomplete {
		if !IsIncomplete(Check(src)) {
			t.Fatalf("%q should read as incomplete", src)
		}
	}
	// "print 1" is missing its ';' at end of input, so it also probes
	// incomplete; errors mid-line do not.
	if !IsIncomplete(Check("print 1")) {
		t.Fatalf("%q should read as incomplete", "print 1")
	}
	for _, src := range []string{"print 1;", "1 +;", "@"} {
		if IsIncomplete(Check(src)) {
			t.Fatalf("%q should not read as incomplete", src)
		}
	}
}
