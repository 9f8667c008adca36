package parse

import (
	"strings"

	"github.com/wippyai/ffigen/decl"
	"github.com/wippyai/ffigen/errors"
	"github.com/wippyai/ffigen/parse/internal/token"
)

// Parse parses src, which must hold exactly one (possibly attributed)
// function declaration. Trailing whitespace and comments are tolerated.
func Parse(src string) (*decl.FuncDecl, error) {
	fn, _, err := Next(src)
	if err != nil {
		return nil, err
	}
	return fn, nil
}

// Next parses the declaration at the start of src and returns it together
// with the byte offset one past its final token.
func Next(src string) (*decl.FuncDecl, int, error) {
	p := &parser{src: src, tokens: token.Tokenize(src)}
	fn, err := p.parseItem()
	if err != nil {
		return nil, 0, err
	}
	return fn, p.end, nil
}

type parser struct {
	src    string
	tokens []token.Token
	pos    int
	end    int // byte offset one past the last consumed token
}

func (p *parser) peek() *token.Token {
	if p.pos >= len(p.tokens) {
		return nil
	}
	return &p.tokens[p.pos]
}

func (p *parser) next() *token.Token {
	if p.pos >= len(p.tokens) {
		return nil
	}
	t := &p.tokens[p.pos]
	p.pos++
	p.end = t.End
	return t
}

func (p *parser) expect(typ token.Type) (*token.Token, error) {
	t := p.next()
	if t == nil {
		return nil, errors.UnexpectedEOF(errors.PhaseParse, typ.String())
	}
	if t.Type != typ {
		return nil, errors.UnexpectedToken(errors.PhaseParse, anchor(t), t.Value, typ.String())
	}
	return t, nil
}

func anchor(t *token.Token) errors.Pos {
	return errors.Pos{Line: t.Line, Col: t.Col, Offset: t.Offset}
}

func at(t *token.Token) decl.Pos {
	return decl.Pos{Line: t.Line, Col: t.Col, Offset: t.Offset}
}

func (p *parser) parseItem() (*decl.FuncDecl, error) {
	fn := &decl.FuncDecl{}

	first := p.peek()
	if first == nil {
		return nil, errors.UnexpectedEOF(errors.PhaseParse, "declaration")
	}
	fn.Pos = at(first)

	for t := p.peek(); t != nil && t.Type == token.Pound; t = p.peek() {
		a, err := p.parseAttr()
		if err != nil {
			return nil, err
		}
		fn.Attrs = append(fn.Attrs, *a)
	}

	// Qualifiers precede the fn keyword in a fixed order, but accepting them
	// in any order costs nothing and parses more inputs.
qualifiers:
	for {
		t := p.peek()
		if t == nil {
			return nil, errors.UnexpectedEOF(errors.PhaseParse, "'fn'")
		}
		if t.Type != token.Ident {
			return nil, errors.MalformedDeclaration(anchor(t),
				"annotated item is not a function declaration, expected 'fn', got "+t.Type.String())
		}
		switch t.Value {
		case "pub":
			fn.Pub = true
		case "const":
			fn.Const = true
		case "unsafe":
			fn.Unsafe = true
		case "fn":
			p.next()
			break qualifiers
		default:
			return nil, errors.MalformedDeclaration(anchor(t),
				"annotated item is not a function declaration, expected 'fn', got '"+t.Value+"'")
		}
		p.next()
	}

	name, err := p.expect(token.Ident)
	if err != nil {
		return nil, err
	}
	fn.Name = name.Value

	if t := p.peek(); t != nil && t.Type == token.LAngle {
		if err := p.parseTypeParams(fn); err != nil {
			return nil, err
		}
	}

	if err := p.parseParams(fn); err != nil {
		return nil, err
	}

	if t := p.peek(); t != nil && t.Type == token.Arrow {
		p.next()
		ret, err := p.rawUntil(func(t *token.Token) bool {
			return t.Type == token.LBrace || t.Type == token.Semi ||
				(t.Type == token.Ident && t.Value == "where")
		}, "return type")
		if err != nil {
			return nil, err
		}
		fn.Return = ret
	}

	if t := p.peek(); t != nil && t.Type == token.Ident && t.Value == "where" {
		p.next()
		w, err := p.rawUntil(func(t *token.Token) bool {
			return t.Type == token.LBrace || t.Type == token.Semi
		}, "constraint clause")
		if err != nil {
			return nil, err
		}
		fn.Where = w
	}

	t := p.next()
	if t == nil {
		return nil, errors.UnexpectedEOF(errors.PhaseParse, "'{' or ';'")
	}
	switch t.Type {
	case token.Semi:
		// Bodyless declaration.
	case token.LBrace:
		body, err := p.parseBody(t)
		if err != nil {
			return nil, err
		}
		fn.Body = body
	default:
		return nil, errors.UnexpectedToken(errors.PhaseParse, anchor(t), t.Value, "'{' or ';'")
	}

	return fn, nil
}

// parseAttr consumes one #[...] attribute. The attribute's interior is kept
// verbatim; only name(...) argument text is singled out for the
// configuration layer.
func (p *parser) parseAttr() (*decl.Attr, error) {
	pound := p.next() // '#'
	if _, err := p.expect(token.LBracket); err != nil {
		return nil, err
	}
	name, err := p.expect(token.Ident)
	if err != nil {
		return nil, err
	}

	a := &decl.Attr{Name: name.Value, Pos: at(pound)}

	if t := p.peek(); t != nil && t.Type == token.LParen {
		lp := p.next()
		depth := 1
		var rp *token.Token
		for depth > 0 {
			t := p.next()
			if t == nil {
				return nil, errors.UnexpectedEOF(errors.PhaseParse, "')'")
			}
			switch t.Type {
			case token.LParen:
				depth++
			case token.RParen:
				depth--
				rp = t
			}
		}
		a.HasArgs = true
		a.Inner = p.src[lp.End:rp.Offset]
		a.InnerPos = decl.Pos{Line: lp.Line, Col: lp.Col + 1, Offset: lp.End}
	} else {
		// Any other interior (e.g. #[doc = "..."]) rides along verbatim.
		for {
			t := p.peek()
			if t == nil {
				return nil, errors.UnexpectedEOF(errors.PhaseParse, "']'")
			}
			if t.Type == token.RBracket {
				break
			}
			p.next()
		}
	}

	rb, err := p.expect(token.RBracket)
	if err != nil {
		return nil, err
	}
	a.Raw = p.src[pound.Offset:rb.End]
	return a, nil
}

func (p *parser) parseTypeParams(fn *decl.FuncDecl) error {
	p.next() // '<'
	for {
		t := p.next()
		if t == nil {
			return errors.UnexpectedEOF(errors.PhaseParse, "'>'")
		}
		if t.Type == token.RAngle {
			return nil
		}
		if t.Type == token.Comma {
			continue
		}
		if t.Type != token.Ident {
			return errors.UnexpectedToken(errors.PhaseParse, anchor(t), t.Value, "type parameter")
		}
		tp := decl.TypeParam{Name: t.Value}
		if nxt := p.peek(); nxt != nil && nxt.Type == token.Colon {
			p.next()
			bound, err := p.rawUntilAngle()
			if err != nil {
				return err
			}
			tp.Bound = bound
		}
		fn.TypeParams = append(fn.TypeParams, tp)
	}
}

// rawUntilAngle slices a generic bound: everything up to the next ',' or the
// closing '>' of the parameter list, honoring nested angle brackets.
func (p *parser) rawUntilAngle() (string, error) {
	start := p.peek()
	if start == nil {
		return "", errors.UnexpectedEOF(errors.PhaseParse, "generic bound")
	}
	depth := 0
	last := start
	for {
		t := p.peek()
		if t == nil {
			return "", errors.UnexpectedEOF(errors.PhaseParse, "'>'")
		}
		if depth == 0 && (t.Type == token.Comma || t.Type == token.RAngle) {
			return strings.TrimSpace(p.src[start.Offset:last.End]), nil
		}
		switch t.Type {
		case token.LAngle, token.LParen, token.LBracket:
			depth++
		case token.RAngle, token.RParen, token.RBracket:
			depth--
		}
		last = t
		p.next()
	}
}

func (p *parser) parseParams(fn *decl.FuncDecl) error {
	if _, err := p.expect(token.LParen); err != nil {
		return err
	}
	for {
		t := p.peek()
		if t == nil {
			return errors.UnexpectedEOF(errors.PhaseParse, "')'")
		}
		switch t.Type {
		case token.RParen:
			p.next()
			return nil
		case token.Comma:
			p.next()
			continue
		case token.Ellipsis:
			p.next()
			fn.Variadic = true
			if _, err := p.expect(token.RParen); err != nil {
				return err
			}
			return nil
		case token.Ident:
			p.next()
			if _, err := p.expect(token.Colon); err != nil {
				return err
			}
			typ, err := p.rawUntil(func(t *token.Token) bool {
				return t.Type == token.Comma || t.Type == token.RParen
			}, "parameter type")
			if err != nil {
				return err
			}
			fn.Params = append(fn.Params, decl.Param{Name: t.Value, Type: typ})
		default:
			return errors.UnexpectedToken(errors.PhaseParse, anchor(t), t.Value, "parameter name")
		}
	}
}

// rawUntil slices verbatim source text up to (not including) the first token
// at nesting depth zero for which stop returns true. Used for types, return
// types and constraint clauses, so their exact spelling survives synthesis.
func (p *parser) rawUntil(stop func(*token.Token) bool, what string) (string, error) {
	start := p.peek()
	if start == nil {
		return "", errors.UnexpectedEOF(errors.PhaseParse, what)
	}
	depth := 0
	last := start
	consumed := false
	for {
		t := p.peek()
		if t == nil {
			return "", errors.UnexpectedEOF(errors.PhaseParse, what)
		}
		if depth == 0 && stop(t) {
			if !consumed {
				return "", errors.UnexpectedToken(errors.PhaseParse, anchor(t), t.Value, what)
			}
			return strings.TrimSpace(p.src[start.Offset:last.End]), nil
		}
		switch t.Type {
		case token.LAngle, token.LParen, token.LBracket:
			depth++
		case token.RAngle, token.RParen, token.RBracket:
			depth--
		}
		last = t
		consumed = true
		p.next()
	}
}

// parseBody consumes a brace-delimited body. The text between the braces is
// preserved verbatim; the token count inside decides emptiness.
func (p *parser) parseBody(open *token.Token) (*decl.Block, error) {
	depth := 1
	stmts := 0
	for {
		t := p.next()
		if t == nil {
			return nil, errors.UnexpectedEOF(errors.PhaseParse, "'}'")
		}
		switch t.Type {
		case token.LBrace:
			depth++
		case token.RBrace:
			depth--
			if depth == 0 {
				return &decl.Block{
					Raw:   p.src[open.End:t.Offset],
					Stmts: stmts,
				}, nil
			}
		}
		stmts++
	}
}
