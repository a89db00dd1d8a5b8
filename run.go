// run.go: orchestration of the scan → parse → execute pipeline.
package lox

import "io"

// Run scans, parses, and evaluates one source unit against a fresh
// interpreter, writing print output to out (nil means stdout). The returned
// diagnostics are the merged stage lists in phase order: lexical, then
// syntax, then runtime. Statements that parsed are executed even when earlier
// stages reported errors, so partial output is produced alongside the
// diagnostics.
func Run(src string, out io.Writer) []Diag {
	return NewInterpreter(out).RunSource(src)
}

// RunSource evaluates one source unit against the interpreter's persistent
// global frame (REPL-style: declarations survive into the next call).
func (ip *Interpreter) RunSource(src string) []Diag {
	toks, diags := Scan(src)
	stmts, parseDiags := Parse(toks)
	diags = append(diags, parseDiags...)
	return append(diags, ip.Execute(stmts)...)
}

// Check scans and parses without evaluating. REPL drivers probe buffered
// input with it and, via IsIncomplete, keep reading continuation lines while
// the source merely ends mid-construct.
func Check(src string) []Diag {
	toks, diags := Scan(src)
	_, parseDiags := Parse(toks)
	return append(diags, parseDiags...)
}
