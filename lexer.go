// lexer.go: tokenizer for the enum/value/match syntax.
//
// The grammar is deliberately tiny (see parser.go); the lexer produces a
// flat token slice with 1-based line/column per token. Comments run from
// '#' to end of line, as in schema files.
package sumtype

import (
	"fmt"
	"strconv"
)

// TokenType represents the kind of token.
type TokenType int

const (
	EOF TokenType = iota

	// Punctuation
	LROUND     // "("
	RROUND     // ")"
	LCURLY     // "{"
	RCURLY     // "}"
	LANGLE     // "<"
	RANGLE     // ">"
	COMMA      // ","
	COLONCOLON // "::"
	FATARROW   // "=>"
	MINUS      // "-" (negative number literals)

	// Literals & identifiers
	ID
	STRING
	INTEGER
	NUMBER
	BOOLEAN

	// Keywords
	ENUM
	MATCH
)

func (t TokenType) String() string {
	switch t {
	case EOF:
		return "end of input"
	case LROUND:
		return "'('"
	case RROUND:
		return "')'"
	case LCURLY:
		return "'{'"
	case RCURLY:
		return "'}'"
	case LANGLE:
		return "'<'"
	case RANGLE:
		return "'>'"
	case COMMA:
		return "','"
	case COLONCOLON:
		return "'::'"
	case FATARROW:
		return "'=>'"
	case MINUS:
		return "'-'"
	case ID:
		return "identifier"
	case STRING:
		return "string"
	case INTEGER:
		return "integer"
	case NUMBER:
		return "number"
	case BOOLEAN:
		return "boolean"
	case ENUM:
		return "'enum'"
	case MATCH:
		return "'match'"
	default:
		return fmt.Sprintf("token(%d)", int(t))
	}
}

// Token is one lexed unit. Literal holds the decoded value for STRING,
// INTEGER, NUMBER and BOOLEAN tokens.
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal any
	Line    int
	Col     int
}

var keywords = map[string]TokenType{
	"enum":  ENUM,
	"match": MATCH,
	"true":  BOOLEAN,
	"false": BOOLEAN,
}

// LexError reports a tokenization failure at a 1-based position.
type LexError struct {
	Line int
	Col  int
	Msg  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at %d:%d: %s", e.Line, e.Col, e.Msg)
}

type lexer struct {
	src  string
	cur  int
	line int
	col  int

	startLine int
	startCol  int
}

func lex(src string) ([]Token, error) {
	l := &lexer{src: src, line: 1, col: 1}
	var toks []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Type == EOF {
			return toks, nil
		}
	}
}

func (l *lexer) atEnd() bool { return l.cur >= len(l.src) }

func (l *lexer) peek() byte {
	if l.atEnd() {
		return 0
	}
	return l.src[l.cur]
}

func (l *lexer) advance() byte {
	c := l.src[l.cur]
	l.cur++
	if c == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return c
}

func (l *lexer) err(msg string) error {
	return &LexError{Line: l.startLine, Col: l.startCol, Msg: msg}
}

func (l *lexer) tok(tt TokenType, lexeme string, lit any) Token {
	return Token{Type: tt, Lexeme: lexeme, Literal: lit, Line: l.startLine, Col: l.startCol}
}

func (l *lexer) skipBlanks() {
	for !l.atEnd() {
		switch l.peek() {
		case ' ', '\t', '\r', '\n':
			l.advance()
		case '#':
			for !l.atEnd() && l.peek() != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

func (l *lexer) next() (Token, error) {
	l.skipBlanks()
	l.startLine, l.startCol = l.line, l.col
	if l.atEnd() {
		return l.tok(EOF, "", nil), nil
	}

	c := l.advance()
	switch c {
	case '(':
		return l.tok(LROUND, "(", nil), nil
	case ')':
		return l.tok(RROUND, ")", nil), nil
	case '{':
		return l.tok(LCURLY, "{", nil), nil
	case '}':
		return l.tok(RCURLY, "}", nil), nil
	case '<':
		return l.tok(LANGLE, "<", nil), nil
	case '>':
		return l.tok(RANGLE, ">", nil), nil
	case ',':
		return l.tok(COMMA, ",", nil), nil
	case ':':
		if l.peek() == ':' {
			l.advance()
			return l.tok(COLONCOLON, "::", nil), nil
		}
		return Token{}, l.err("single ':' (did you mean '::'?)")
	case '=':
		if l.peek() == '>' {
			l.advance()
			return l.tok(FATARROW, "=>", nil), nil
		}
		return Token{}, l.err("single '=' (did you mean '=>'?)")
	case '-':
		return l.tok(MINUS, "-", nil), nil
	case '"':
		return l.scanString()
	}

	switch {
	case isDigit(c):
		return l.scanNumber(l.cur - 1)
	case isAlpha(c):
		return l.scanIdentifier(l.cur - 1), nil
	}
	return Token{}, l.err(fmt.Sprintf("unexpected character %q", string(c)))
}

// scanString decodes a double-quoted literal with the usual escapes.
func (l *lexer) scanString() (Token, error) {
	var out []byte
	for !l.atEnd() {
		c := l.advance()
		switch c {
		case '"':
			return l.tok(STRING, string(out), string(out)), nil
		case '\n':
			return Token{}, l.err("unterminated string")
		case '\\':
			if l.atEnd() {
				return Token{}, l.err("unfinished escape sequence")
			}
			esc := l.advance()
			switch esc {
			case '"':
				out = append(out, '"')
			case '\\':
				out = append(out, '\\')
			case 'n':
				out = append(out, '\n')
			case 't':
				out = append(out, '\t')
			default:
				return Token{}, l.err(fmt.Sprintf("unknown escape '\\%s'", string(esc)))
			}
		default:
			out = append(out, c)
		}
	}
	return Token{}, l.err("unterminated string")
}

func (l *lexer) scanNumber(start int) (Token, error) {
	for !l.atEnd() && isDigit(l.peek()) {
		l.advance()
	}
	isFloat := false
	if !l.atEnd() && l.peek() == '.' {
		isFloat = true
		l.advance()
		if l.atEnd() || !isDigit(l.peek()) {
			return Token{}, l.err("digit expected after '.'")
		}
		for !l.atEnd() && isDigit(l.peek()) {
			l.advance()
		}
	}
	text := l.src[start:l.cur]
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Token{}, l.err("bad number " + text)
		}
		return l.tok(NUMBER, text, f), nil
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return Token{}, l.err("bad integer " + text)
	}
	return l.tok(INTEGER, text, n), nil
}

func (l *lexer) scanIdentifier(start int) Token {
	for !l.atEnd() && isAlphaNum(l.peek()) {
		l.advance()
	}
	text := l.src[start:l.cur]
	if kw, ok := keywords[text]; ok {
		if kw == BOOLEAN {
			return l.tok(BOOLEAN, text, text == "true")
		}
		return l.tok(kw, text, nil)
	}
	return l.tok(ID, text, nil)
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_'
}
func isAlphaNum(b byte) bool { return isAlpha(b) || isDigit(b) }
