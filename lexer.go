// lexer.go: maximal-munch scanner turning source text into a flat token stream.
//
// The lexer never aborts: malformed input yields an UnexpectedCharacter or
// UnterminatedString diagnostic and scanning continues. Exactly one EOF token
// terminates every stream, including an empty one.
package lox

import "strconv"

// Lexer scans a source string into tokens.
type Lexer struct {
	src    string
	start  int // start index of current token
	cur    int // current index
	line   int // 1-based
	tokens []Token
	diags  []Diag
}

// NewLexer creates a new lexer for the given source.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src, line: 1}
}

// Scan tokenizes the entire source and returns the tokens (EOF included)
// together with any lexical diagnostics, in source order.
func Scan(src string) ([]Token, []Diag) {
	return NewLexer(src).Scan()
}

// Scan runs the scanner to end of input.
func (l *Lexer) Scan() ([]Token, []Diag) {
	for !l.isAtEnd() {
		l.start = l.cur
		l.scanToken()
	}
	l.tokens = append(l.tokens, Token{Type: EOF, Line: l.line})
	return l.tokens, l.diags
}

func (l *Lexer) isAtEnd() bool { return l.cur >= len(l.src) }

func (l *Lexer) peek() byte {
	if l.isAtEnd() {
		return 0
	}
	return l.src[l.cur]
}

func (l *Lexer) peekNext() byte {
	if l.cur+1 >= len(l.src) {
		return 0
	}
	return l.src[l.cur+1]
}

func (l *Lexer) advance() byte {
	ch := l.src[l.cur]
	l.cur++
	return ch
}

// match consumes the next byte only when it equals expected; two-character
// operators form only on an exact second-character match.
func (l *Lexer) match(expected byte) bool {
	if l.isAtEnd() || l.src[l.cur] != expected {
		return false
	}
	l.cur++
	return true
}

func (l *Lexer) addToken(tt TokenType, lit interface{}) {
	l.tokens = append(l.tokens, Token{
		Type:    tt,
		Lexeme:  l.src[l.start:l.cur],
		Literal: lit,
		Line:    l.line,
	})
}

func (l *Lexer) report(kind DiagKind, line int, lexeme string) {
	l.diags = append(l.diags, Diag{Phase: PhaseLexical, Kind: kind, Line: line, Lexeme: lexeme})
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' }
func isAlphaNum(b byte) bool {
	return isAlpha(b) || isDigit(b)
}

func (l *Lexer) scanToken() {
	ch := l.advance()
	switch ch {
	case '(':
		l.addToken(LROUND, nil)
	case ')':
		l.addToken(RROUND, nil)
	case '{':
		l.addToken(LCURLY, nil)
	case '}':
		l.addToken(RCURLY, nil)
	case ',':
		l.addToken(COMMA, nil)
	case '.':
		l.addToken(PERIOD, nil)
	case '-':
		l.addToken(MINUS, nil)
	case '+':
		l.addToken(PLUS, nil)
	case ';':
		l.addToken(SEMICOLON, nil)
	case '*':
		l.addToken(MULT, nil)
	case '/':
		if l.match('/') {
			// comment runs to end of line, not included in output
			for !l.isAtEnd() && l.peek() != '\n' {
				l.advance()
			}
		} else {
			l.addToken(DIV, nil)
		}
	case '!':
		if l.match('=') {
			l.addToken(NEQ, nil)
		} else {
			l.addToken(BANG, nil)
		}
	case '=':
		if l.match('=') {
			l.addToken(EQ, nil)
		} else {
			l.addToken(ASSIGN, nil)
		}
	case '<':
		if l.match('=') {
			l.addToken(LESS_EQ, nil)
		} else {
			l.addToken(LESS, nil)
		}
	case '>':
		if l.match('=') {
			l.addToken(GREATER_EQ, nil)
		} else {
			l.addToken(GREATER, nil)
		}
	case ' ', '\r', '\t':
		// discarded
	case '\n':
		l.line++
	case '"':
		l.scanString()
	default:
		switch {
		case isDigit(ch):
			l.scanNumber()
		case isAlpha(ch):
			l.scanIdentifier()
		default:
			l.report(UnexpectedCharacter, l.line, string(ch))
		}
	}
}

// scanString reads to the closing quote. Strings may span lines; each embedded
// newline advances the line counter. An unterminated string is anchored at the
// line the string started.
func (l *Lexer) scanString() {
	startLine := l.line
	for !l.isAtEnd() && l.peek() != '"' {
		if l.peek() == '\n' {
			l.line++
		}
		l.advance()
	}
	if l.isAtEnd() {
		l.report(UnterminatedString, startLine, "")
		return
	}
	l.advance() // closing quote
	l.addToken(STRING, l.src[l.start+1:l.cur-1])
}

// scanNumber parses digits with an optional fraction. A trailing '.' not
// followed by a digit is left for the next scan.
func (l *Lexer) scanNumber() {
	for isDigit(l.peek()) {
		l.advance()
	}
	if l.peek() == '.' && isDigit(l.peekNext()) {
		l.advance() // consume '.'
		for isDigit(l.peek()) {
			l.advance()
		}
	}
	// digits with at most one interior dot always parse
	v, _ := strconv.ParseFloat(l.src[l.start:l.cur], 64)
	l.addToken(NUMBER, v)
}

func (l *Lexer) scanIdentifier() {
	for isAlphaNum(l.peek()) {
		l.advance()
	}
	if tt, ok := keywords[l.src[l.start:l.cur]]; ok {
		l.addToken(tt, nil)
		return
	}
	l.addToken(ID, nil)
}
