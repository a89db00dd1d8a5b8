// ast.go: the closed set of expression and statement shapes.
//
// Nodes are pure, immutable data produced once per parse. The sealed
// interfaces force every consumer to handle every variant in its type switch,
// so adding a language feature is a compile-visible obligation everywhere.
package lox

// Expr is an expression node. The set of implementations is closed.
type Expr interface {
	exprNode()
}

// Binary is an infix arithmetic, comparison, or equality expression.
type Binary struct {
	Left     Expr
	Operator Token
	Right    Expr
}

// Grouping is a parenthesized expression. Transparent to evaluation.
type Grouping struct {
	Inner Expr
}

// Literal holds the token of a number, string, true, false, or nil literal.
type Literal struct {
	Value Token
}

// Unary is a prefix "!" or "-" expression.
type Unary struct {
	Operator Token
	Right    Expr
}

// Variable is a name reference resolved against the scope chain.
type Variable struct {
	Name Token
}

// Assign mutates the nearest existing binding of Name.
type Assign struct {
	Name  Token
	Value Expr
}

// Logical is a short-circuiting "and" or "or" expression.
type Logical struct {
	Left     Expr
	Operator Token
	Right    Expr
}

func (*Binary) exprNode()   {}
func (*Grouping) exprNode() {}
func (*Literal) exprNode()  {}
func (*Unary) exprNode()    {}
func (*Variable) exprNode() {}
func (*Assign) exprNode()   {}
func (*Logical) exprNode()  {}

// Stmt is a statement node. The set of implementations is closed.
type Stmt interface {
	stmtNode()
}

// ExpressionStmt evaluates an expression for effect only.
type ExpressionStmt struct {
	Expr Expr
}

// PrintStmt evaluates its expression and emits the value's textual form.
type PrintStmt struct {
	Expr Expr
}

// VarStmt declares Name in the current innermost scope.
// A nil Initializer defaults the binding to nil.
type VarStmt struct {
	Name        Token
	Initializer Expr
}

// BlockStmt executes its statements in one fresh child scope.
type BlockStmt struct {
	Statements []Stmt
}

// IfStmt runs Then when the condition is truthy, otherwise Else when present.
type IfStmt struct {
	Condition Expr
	Then      Stmt
	Else      Stmt // may be nil
}

func (*ExpressionStmt) stmtNode() {}
func (*PrintStmt) stmtNode()      {}
func (*VarStmt) stmtNode()        {}
func (*BlockStmt) stmtNode()      {}
func (*IfStmt) stmtNode()         {}
