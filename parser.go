// parser.go: recursive-descent parser for the enum/value/match syntax.
//
// Three entry points, one per construct:
//
//	ParseDecl   enum EnderecoIp { V4(u8, u8, u8, u8), V6(str) }
//	            enum Lista<T> { Cons(T, Lista), Nil }
//	ParseValue  EnderecoIp::V4(127, 0, 0, 1)
//	            Optional<int>::None
//	ParseMatch  match v { V4(a, b, c, d) => a, V6(s) => s }
//	            match v { Some(x) => x, _ => 0 }
//
// The parser builds small ASTs; binding them to a Registry (declaring,
// constructing, building match sets) happens in source.go. Variant payload
// arguments are literals, nested constructions, or names — names resolve to
// match binders or session values at evaluation time.
package sumtype

import "fmt"

// ParseError reports a syntax failure at a 1-based position.
type ParseError struct {
	Line int
	Col  int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d:%d: %s", e.Line, e.Col, e.Msg)
}

// DeclAST is a parsed enum declaration. Param is the generic parameter name
// or "" for a non-generic type.
type DeclAST struct {
	Name     string
	Param    string
	Variants []VariantSpec
}

// ExprAST is a parsed payload expression: a literal, a name reference, or a
// nested construction.
type ExprAST interface{ exprNode() }

// LitExpr is a literal: int64, float64, string or bool.
type LitExpr struct{ Val any }

// RefExpr references a match binder or a session value by name.
type RefExpr struct{ Name string }

// CtorExpr is a construction Type::Variant(args), optionally with an
// explicit type argument Type<arg>::Variant(args).
type CtorExpr struct {
	TypeName string
	TypeArg  Type
	HasArg   bool
	Variant  string
	Args     []ExprAST
}

func (LitExpr) exprNode()   {}
func (RefExpr) exprNode()   {}
func (*CtorExpr) exprNode() {}

// ArmAST is one parsed match arm.
type ArmAST struct {
	Variant  string
	Wildcard bool
	Binders  []string
	Body     ExprAST
}

// MatchAST is a parsed match expression.
type MatchAST struct {
	Scrutinee ExprAST
	Arms      []ArmAST
}

type parser struct {
	toks []Token
	i    int
}

func newParser(src string) (*parser, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	return &parser{toks: toks}, nil
}

func (p *parser) peek() Token {
	if p.i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.i]
}

func (p *parser) prev() Token { return p.toks[p.i-1] }

func (p *parser) match(tt ...TokenType) bool {
	for _, t := range tt {
		if p.peek().Type == t {
			p.i++
			return true
		}
	}
	return false
}

func (p *parser) need(t TokenType, msg string) (Token, error) {
	if p.match(t) {
		return p.prev(), nil
	}
	return Token{}, p.errHere(msg)
}

func (p *parser) errHere(msg string) error {
	g := p.peek()
	return &ParseError{Line: g.Line, Col: g.Col, Msg: fmt.Sprintf("%s, got %s", msg, g.Type)}
}

func (p *parser) errAt(tok Token, msg string) error {
	return &ParseError{Line: tok.Line, Col: tok.Col, Msg: msg}
}

func (p *parser) atEOF() error {
	if p.peek().Type != EOF {
		return p.errHere("trailing input")
	}
	return nil
}

// ParseDecl parses a single enum declaration.
func ParseDecl(src string) (*DeclAST, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	d, err := p.decl()
	if err != nil {
		return nil, err
	}
	if err := p.atEOF(); err != nil {
		return nil, err
	}
	return d, nil
}

// ParseValue parses a single construction expression.
func ParseValue(src string) (*CtorExpr, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	name, err := p.need(ID, "expected a type name")
	if err != nil {
		return nil, err
	}
	c, err := p.ctorAfterName(name)
	if err != nil {
		return nil, err
	}
	if err := p.atEOF(); err != nil {
		return nil, err
	}
	return c, nil
}

// ParseMatch parses a full match expression.
func ParseMatch(src string) (*MatchAST, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	m, err := p.matchExpr()
	if err != nil {
		return nil, err
	}
	if err := p.atEOF(); err != nil {
		return nil, err
	}
	return m, nil
}

func (p *parser) decl() (*DeclAST, error) {
	if _, err := p.need(ENUM, "expected 'enum'"); err != nil {
		return nil, err
	}
	name, err := p.need(ID, "expected a type name")
	if err != nil {
		return nil, err
	}
	d := &DeclAST{Name: name.Lexeme}

	if p.match(LANGLE) {
		param, err := p.need(ID, "expected a type parameter name")
		if err != nil {
			return nil, err
		}
		d.Param = param.Lexeme
		if _, err := p.need(RANGLE, "expected '>'"); err != nil {
			return nil, err
		}
	}

	if _, err := p.need(LCURLY, "expected '{'"); err != nil {
		return nil, err
	}
	for {
		if p.match(RCURLY) {
			return d, nil
		}
		v, err := p.variant(d)
		if err != nil {
			return nil, err
		}
		d.Variants = append(d.Variants, v)
		if !p.match(COMMA) {
			if _, err := p.need(RCURLY, "expected ',' or '}'"); err != nil {
				return nil, err
			}
			return d, nil
		}
	}
}

func (p *parser) variant(d *DeclAST) (VariantSpec, error) {
	name, err := p.need(ID, "expected a variant name")
	if err != nil {
		return VariantSpec{}, err
	}
	spec := VariantSpec{Name: name.Lexeme}
	if !p.match(LROUND) {
		return spec, nil // unit variant
	}
	for {
		tok, err := p.need(ID, "expected a field type")
		if err != nil {
			return VariantSpec{}, err
		}
		var ft Type
		if d.Param != "" && tok.Lexeme == d.Param {
			ft = Param
		} else {
			ft, err = ParseType(tok.Lexeme)
			if err != nil {
				return VariantSpec{}, p.errAt(tok, err.Error())
			}
		}
		spec.Fields = append(spec.Fields, ft)
		if p.match(COMMA) {
			continue
		}
		if _, err := p.need(RROUND, "expected ',' or ')'"); err != nil {
			return VariantSpec{}, err
		}
		return spec, nil
	}
}

// ctorAfterName parses the remainder of a construction once the leading
// type name has been consumed.
func (p *parser) ctorAfterName(name Token) (*CtorExpr, error) {
	c := &CtorExpr{TypeName: name.Lexeme}

	if p.match(LANGLE) {
		arg, err := p.need(ID, "expected a type argument")
		if err != nil {
			return nil, err
		}
		t, err := ParseType(arg.Lexeme)
		if err != nil {
			return nil, p.errAt(arg, err.Error())
		}
		c.TypeArg, c.HasArg = t, true
		if _, err := p.need(RANGLE, "expected '>'"); err != nil {
			return nil, err
		}
	}

	if _, err := p.need(COLONCOLON, "expected '::'"); err != nil {
		return nil, err
	}
	variant, err := p.need(ID, "expected a variant name")
	if err != nil {
		return nil, err
	}
	c.Variant = variant.Lexeme

	if !p.match(LROUND) {
		return c, nil // unit variant
	}
	if p.match(RROUND) {
		return c, nil
	}
	for {
		arg, err := p.expr()
		if err != nil {
			return nil, err
		}
		c.Args = append(c.Args, arg)
		if p.match(COMMA) {
			continue
		}
		if _, err := p.need(RROUND, "expected ',' or ')'"); err != nil {
			return nil, err
		}
		return c, nil
	}
}

// expr parses a payload expression: literal, negative literal, name
// reference, or nested construction.
func (p *parser) expr() (ExprAST, error) {
	t := p.peek()
	switch t.Type {
	case INTEGER, NUMBER, STRING, BOOLEAN:
		p.i++
		return LitExpr{Val: t.Literal}, nil
	case MINUS:
		p.i++
		n := p.peek()
		switch n.Type {
		case INTEGER:
			p.i++
			return LitExpr{Val: -n.Literal.(int64)}, nil
		case NUMBER:
			p.i++
			return LitExpr{Val: -n.Literal.(float64)}, nil
		}
		return nil, p.errHere("expected a number after '-'")
	case ID:
		p.i++
		if p.peek().Type == COLONCOLON || p.peek().Type == LANGLE {
			return p.ctorAfterName(t)
		}
		return RefExpr{Name: t.Lexeme}, nil
	}
	return nil, p.errHere("expected a literal, name, or construction")
}

func (p *parser) matchExpr() (*MatchAST, error) {
	if _, err := p.need(MATCH, "expected 'match'"); err != nil {
		return nil, err
	}
	scrutinee, err := p.expr()
	if err != nil {
		return nil, err
	}
	m := &MatchAST{Scrutinee: scrutinee}
	if _, err := p.need(LCURLY, "expected '{'"); err != nil {
		return nil, err
	}
	for {
		if p.match(RCURLY) {
			return m, nil
		}
		arm, err := p.arm()
		if err != nil {
			return nil, err
		}
		m.Arms = append(m.Arms, arm)
		if !p.match(COMMA) {
			if _, err := p.need(RCURLY, "expected ',' or '}'"); err != nil {
				return nil, err
			}
			return m, nil
		}
	}
}

func (p *parser) arm() (ArmAST, error) {
	name, err := p.need(ID, "expected a variant name or '_'")
	if err != nil {
		return ArmAST{}, err
	}
	arm := ArmAST{Variant: name.Lexeme}
	if name.Lexeme == "_" {
		arm.Wildcard = true
		arm.Variant = ""
	} else if p.match(LROUND) {
		for {
			b, err := p.need(ID, "expected a binder name")
			if err != nil {
				return ArmAST{}, err
			}
			arm.Binders = append(arm.Binders, b.Lexeme)
			if p.match(COMMA) {
				continue
			}
			if _, err := p.need(RROUND, "expected ',' or ')'"); err != nil {
				return ArmAST{}, err
			}
			break
		}
	}
	if _, err := p.need(FATARROW, "expected '=>'"); err != nil {
		return ArmAST{}, err
	}
	body, err := p.expr()
	if err != nil {
		return ArmAST{}, err
	}
	arm.Body = body
	return arm, nil
}
