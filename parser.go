// parser.go: recursive descent with precedence climbing and panic-mode recovery.
//
// The parser consumes the token stream with exactly one token of lookahead and
// produces a statement list plus an ordered diagnostic list. It never panics
// and never aborts: on a statement-level error it records the diagnostic,
// resynchronizes at the next statement boundary, and keeps going, so a single
// pass surfaces multiple independent errors.
//
// Grammar, lowest to highest precedence:
//
//	program     := declaration* EOF
//	declaration := "var" ID ("=" expression)? ";" | statement
//	statement   := "print" expression ";"
//	             | "{" declaration* "}"
//	             | "if" expression statement ("else" statement)?
//	             | expression ";"
//	assignment  := logicOr ( "=" assignment )?          (right-assoc)
//	logicOr     := logicAnd ( "or" logicAnd )*
//	logicAnd    := equality ( "and" equality )*
//	equality    := comparison ( ("==" | "!=") comparison )*
//	comparison  := term ( (">" | ">=" | "<" | "<=") term )*
//	term        := factor ( ("+" | "-") factor )*
//	factor      := unary ( ("*" | "/") unary )*
//	unary       := ("!" | "-") unary | primary
//	primary     := NUMBER | STRING | "true" | "false" | "nil" | ID | "(" expression ")"
package lox

// maxDepth bounds expression nesting so pathological input reports
// NestingTooDeep instead of exhausting the host stack. Evaluation recursion is
// bounded transitively: the interpreter only walks trees accepted here.
const maxDepth = 250

// Parse consumes a token stream (ending in EOF) and returns the statements
// that parsed together with any syntax diagnostics, in source order.
func Parse(toks []Token) ([]Stmt, []Diag) {
	p := &parser{toks: toks}
	var stmts []Stmt
	for !p.atEnd() {
		s, err := p.declaration()
		if err != nil {
			p.record(err)
			p.synchronize()
			continue
		}
		stmts = append(stmts, s)
	}
	return stmts, p.diags
}

type parser struct {
	toks  []Token
	i     int
	depth int
	diags []Diag
}

// ─── token basics ───────────────────────────────────────────────────────────

func (p *parser) atEnd() bool { return p.peek().Type == EOF }

func (p *parser) peek() Token {
	if p.i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.i]
}

func (p *parser) prev() Token { return p.toks[p.i-1] }

func (p *parser) advance() Token {
	if !p.atEnd() {
		p.i++
	}
	return p.prev()
}

func (p *parser) match(tt ...TokenType) bool {
	for _, t := range tt {
		if p.peek().Type == t {
			p.advance()
			return true
		}
	}
	return false
}

// need consumes a token of the given type or fails with kind anchored at the
// next token. At end of input the failure carries an empty lexeme, which is
// what IsIncomplete keys on.
func (p *parser) need(t TokenType, kind DiagKind) (Token, error) {
	if p.match(t) {
		return p.prev(), nil
	}
	return Token{}, p.fail(kind, p.peek())
}

func (p *parser) fail(kind DiagKind, at Token) error {
	return Diag{Phase: PhaseSyntax, Kind: kind, Line: at.Line, Lexeme: at.Lexeme}
}

func (p *parser) record(err error) {
	if d, ok := err.(Diag); ok {
		p.diags = append(p.diags, d)
	}
}

// synchronize discards tokens until just past a ';', just before a token that
// starts a new statement, or end of input.
func (p *parser) synchronize() {
	p.advance()
	for !p.atEnd() {
		if p.prev().Type == SEMICOLON {
			return
		}
		switch p.peek().Type {
		case CLASS, FUN, VAR, FOR, IF, WHILE, PRINT, RETURN:
			return
		}
		p.advance()
	}
}

// ─── statements ─────────────────────────────────────────────────────────────

func (p *parser) declaration() (Stmt, error) {
	if p.match(VAR) {
		return p.varDecl()
	}
	return p.statement()
}

func (p *parser) varDecl() (Stmt, error) {
	name, err := p.need(ID, ExpectIdentifier)
	if err != nil {
		return nil, err
	}
	var init Expr
	if p.match(ASSIGN) {
		if init, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.need(SEMICOLON, ExpectSemicolon); err != nil {
		return nil, err
	}
	return &VarStmt{Name: name, Initializer: init}, nil
}

func (p *parser) statement() (Stmt, error) {
	switch {
	case p.match(PRINT):
		return p.printStmt()
	case p.match(LCURLY):
		return p.block()
	case p.match(IF):
		return p.ifStmt()
	default:
		return p.exprStmt()
	}
}

func (p *parser) printStmt() (Stmt, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(SEMICOLON, ExpectSemicolon); err != nil {
		return nil, err
	}
	return &PrintStmt{Expr: expr}, nil
}

// block keeps collecting declarations after an inner error so one pass can
// report several problems inside the same braces.
func (p *parser) block() (Stmt, error) {
	var stmts []Stmt
	for !p.atEnd() && p.peek().Type != RCURLY {
		s, err := p.declaration()
		if err != nil {
			p.record(err)
			p.synchronize()
			continue
		}
		stmts = append(stmts, s)
	}
	if _, err := p.need(RCURLY, ExpectRightBrace); err != nil {
		return nil, err
	}
	return &BlockStmt{Statements: stmts}, nil
}

// ifStmt consumes the optional "else" immediately after the inner statement,
// before control returns to any outer if, so a dangling else binds to the
// nearest unmatched if.
func (p *parser) ifStmt() (Stmt, error) {
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	then, err := p.statement()
	if err != nil {
		return nil, err
	}
	var els Stmt
	if p.match(ELSE) {
		if els, err = p.statement(); err != nil {
			return nil, err
		}
	}
	return &IfStmt{Condition: cond, Then: then, Else: els}, nil
}

func (p *parser) exprStmt() (Stmt, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(SEMICOLON, ExpectSemicolon); err != nil {
		return nil, err
	}
	return &ExpressionStmt{Expr: expr}, nil
}

// ─── expressions ────────────────────────────────────────────────────────────

func (p *parser) expression() (Expr, error) {
	if p.depth >= maxDepth {
		return nil, p.fail(NestingTooDeep, p.peek())
	}
	p.depth++
	defer func() { p.depth-- }()
	return p.assignment()
}

// assignment is right-associative. An invalid target is recorded without
// entering panic mode; the already-parsed left side is returned and the right
// side has been parsed, so its own errors still surface.
func (p *parser) assignment() (Expr, error) {
	expr, err := p.logicOr()
	if err != nil {
		return nil, err
	}
	if p.match(ASSIGN) {
		eq := p.prev()
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}
		if v, ok := expr.(*Variable); ok {
			return &Assign{Name: v.Name, Value: value}, nil
		}
		p.record(p.fail(InvalidAssignmentTarget, eq))
		return expr, nil
	}
	return expr, nil
}

func (p *parser) logicOr() (Expr, error) {
	expr, err := p.logicAnd()
	if err != nil {
		return nil, err
	}
	for p.match(OR) {
		op := p.prev()
		right, err := p.logicAnd()
		if err != nil {
			return nil, err
		}
		expr = &Logical{Left: expr, Operator: op, Right: right}
	}
	return expr, nil
}

func (p *parser) logicAnd() (Expr, error) {
	expr, err := p.equality()
	if err != nil {
		return nil, err
	}
	for p.match(AND) {
		op := p.prev()
		right, err := p.equality()
		if err != nil {
			return nil, err
		}
		expr = &Logical{Left: expr, Operator: op, Right: right}
	}
	return expr, nil
}

func (p *parser) equality() (Expr, error) {
	return p.leftAssoc(p.comparison, EQ, NEQ)
}

func (p *parser) comparison() (Expr, error) {
	return p.leftAssoc(p.term, GREATER, GREATER_EQ, LESS, LESS_EQ)
}

func (p *parser) term() (Expr, error) {
	return p.leftAssoc(p.factor, PLUS, MINUS)
}

func (p *parser) factor() (Expr, error) {
	return p.leftAssoc(p.unary, MULT, DIV)
}

// leftAssoc parses next ( op next )* into a left-leaning Binary chain.
func (p *parser) leftAssoc(next func() (Expr, error), ops ...TokenType) (Expr, error) {
	expr, err := next()
	if err != nil {
		return nil, err
	}
	for p.match(ops...) {
		op := p.prev()
		right, err := next()
		if err != nil {
			return nil, err
		}
		expr = &Binary{Left: expr, Operator: op, Right: right}
	}
	return expr, nil
}

func (p *parser) unary() (Expr, error) {
	if p.match(BANG, MINUS) {
		op := p.prev()
		if p.depth >= maxDepth {
			return nil, p.fail(NestingTooDeep, op)
		}
		p.depth++
		defer func() { p.depth-- }()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &Unary{Operator: op, Right: right}, nil
	}
	return p.primary()
}

func (p *parser) primary() (Expr, error) {
	switch {
	case p.match(NUMBER, STRING, TRUE, FALSE, NIL):
		return &Literal{Value: p.prev()}, nil
	case p.match(ID):
		return &Variable{Name: p.prev()}, nil
	case p.match(LROUND):
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.need(RROUND, ExpectRightParen); err != nil {
			return nil, err
		}
		return &Grouping{Inner: inner}, nil
	default:
		return nil, p.fail(ExpectExpression, p.peek())
	}
}
