// interpreter.go: synchronous depth-first tree walk over the statement list.
//
// Execute runs every top-level statement and collects runtime diagnostics
// rather than stopping at the first failure: statement N+1 proceeds even when
// statement N failed. Within a single statement, expression evaluation is
// fail-fast: the first sub-expression error aborts the rest of that
// statement.
//
// The interpreter owns the scope chain. Blocks push exactly one frame on
// entry and pop exactly one frame on exit on every path, so the frame count
// after any statement equals the frame count before it.
package lox

import (
	"fmt"
	"io"
	"os"
)

// Interpreter walks statements, mutates the scope chain, and emits print
// output to its sink. It is single-threaded; one source unit is evaluated to
// completion before the next is accepted.
type Interpreter struct {
	globals *Env
	env     *Env
	out     io.Writer
	diags   []Diag
}

// NewInterpreter creates an interpreter whose global frame persists across
// Execute calls. A nil out defaults to os.Stdout.
func NewInterpreter(out io.Writer) *Interpreter {
	if out == nil {
		out = os.Stdout
	}
	g := NewEnv(nil)
	return &Interpreter{globals: g, env: g, out: out}
}

// Globals exposes the persistent global frame (REPL drivers inspect it).
func (ip *Interpreter) Globals() *Env { return ip.globals }

// Execute runs every statement in order and returns the runtime diagnostics
// collected across the run. Output already emitted is never rolled back.
func (ip *Interpreter) Execute(stmts []Stmt) []Diag {
	ip.diags = nil
	for _, s := range stmts {
		ip.execStmt(s)
	}
	return ip.diags
}

// execStmt runs one statement, recording at most one diagnostic for it.
func (ip *Interpreter) execStmt(s Stmt) {
	switch s := s.(type) {
	case *ExpressionStmt:
		if _, err := ip.eval(s.Expr); err != nil {
			ip.record(err)
		}
	case *PrintStmt:
		v, err := ip.eval(s.Expr)
		if err != nil {
			ip.record(err)
			return
		}
		fmt.Fprintln(ip.out, FormatValue(v))
	case *VarStmt:
		v := Nil
		if s.Initializer != nil {
			var err error
			if v, err = ip.eval(s.Initializer); err != nil {
				ip.record(err)
				return
			}
		}
		ip.env.Define(s.Name.Lexeme, v)
	case *BlockStmt:
		ip.execBlock(s.Statements)
	case *IfStmt:
		cond, err := ip.eval(s.Condition)
		if err != nil {
			ip.record(err)
			return
		}
		if Truthy(cond) {
			ip.execStmt(s.Then)
		} else if s.Else != nil {
			ip.execStmt(s.Else)
		}
	}
}

// execBlock pushes one frame, runs the inner statements collecting their
// errors, and restores the previous frame on every exit path.
func (ip *Interpreter) execBlock(stmts []Stmt) {
	prev := ip.env
	ip.env = NewEnv(prev)
	defer func() { ip.env = prev }()
	for _, s := range stmts {
		ip.execStmt(s)
	}
}

func (ip *Interpreter) record(err error) {
	if d, ok := err.(Diag); ok {
		ip.diags = append(ip.diags, d)
	}
}

func runtimeErr(kind DiagKind, at Token, lexeme string) error {
	if lexeme == "" {
		lexeme = at.Lexeme
	}
	return Diag{Phase: PhaseRuntime, Kind: kind, Line: at.Line, Lexeme: lexeme}
}

// ─── expressions ────────────────────────────────────────────────────────────

func (ip *Interpreter) eval(e Expr) (Value, error) {
	switch e := e.(type) {
	case *Literal:
		return evalLiteral(e.Value), nil
	case *Grouping:
		return ip.eval(e.Inner)
	case *Variable:
		v, ok := ip.env.Get(e.Name.Lexeme)
		if !ok {
			return Nil, runtimeErr(UndefinedVariable, e.Name, "")
		}
		return v, nil
	case *Assign:
		v, err := ip.eval(e.Value)
		if err != nil {
			return Nil, err
		}
		if !ip.env.Assign(e.Name.Lexeme, v) {
			return Nil, runtimeErr(UndefinedVariable, e.Name, "")
		}
		return v, nil
	case *Unary:
		return ip.evalUnary(e)
	case *Binary:
		return ip.evalBinary(e)
	case *Logical:
		return ip.evalLogical(e)
	default:
		return Nil, nil
	}
}

func evalLiteral(t Token) Value {
	switch t.Type {
	case NIL:
		return Nil
	case TRUE:
		return Bool(true)
	case FALSE:
		return Bool(false)
	case NUMBER:
		return Num(t.Literal.(float64))
	case STRING:
		return Str(t.Literal.(string))
	default:
		return Nil
	}
}

func (ip *Interpreter) evalUnary(e *Unary) (Value, error) {
	right, err := ip.eval(e.Right)
	if err != nil {
		return Nil, err
	}
	switch e.Operator.Type {
	case BANG:
		return Bool(!Truthy(right)), nil
	case MINUS:
		if right.Tag != VTNum {
			return Nil, runtimeErr(TypeMismatchUnary, e.Operator, "")
		}
		return Num(-right.Data.(float64)), nil
	default:
		return Nil, nil
	}
}

func (ip *Interpreter) evalBinary(e *Binary) (Value, error) {
	left, err := ip.eval(e.Left)
	if err != nil {
		return Nil, err
	}
	right, err := ip.eval(e.Right)
	if err != nil {
		return Nil, err
	}

	op := e.Operator
	switch op.Type {
	case EQ:
		return Bool(Equal(left, right)), nil
	case NEQ:
		return Bool(!Equal(left, right)), nil
	case PLUS:
		switch {
		case left.Tag == VTNum && right.Tag == VTNum:
			return Num(left.Data.(float64) + right.Data.(float64)), nil
		case left.Tag == VTStr && right.Tag == VTStr:
			return Str(left.Data.(string) + right.Data.(string)), nil
		default:
			return Nil, runtimeErr(TypeMismatchBinary, op, "")
		}
	}

	// The remaining operators are defined over numbers only.
	if left.Tag != VTNum || right.Tag != VTNum {
		return Nil, runtimeErr(TypeMismatchBinary, op, "")
	}
	l, r := left.Data.(float64), right.Data.(float64)
	switch op.Type {
	case MINUS:
		return Num(l - r), nil
	case MULT:
		return Num(l * r), nil
	case DIV:
		return Num(l / r), nil
	case GREATER:
		return Bool(l > r), nil
	case GREATER_EQ:
		return Bool(l >= r), nil
	case LESS:
		return Bool(l < r), nil
	case LESS_EQ:
		return Bool(l <= r), nil
	default:
		return Nil, nil
	}
}

// evalLogical short-circuits: the right operand is evaluated only when the
// left does not decide the result, and the returned value is whichever
// operand value decided it, not necessarily a Bool.
func (ip *Interpreter) evalLogical(e *Logical) (Value, error) {
	left, err := ip.eval(e.Left)
	if err != nil {
		return Nil, err
	}
	if e.Operator.Type == OR {
		if Truthy(left) {
			return left, nil
		}
	} else {
		if !Truthy(left) {
			return left, nil
		}
	}
	return ip.eval(e.Right)
}
