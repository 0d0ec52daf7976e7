package equation

import (
	"fmt"
	"strings"
)

var fractionCommands = map[string]bool{"frac": true, "dfrac": true, "tfrac": true}

var styleCommands = map[string]bool{"mathbf": true, "mathit": true, "boldsymbol": true}

var textCommands = map[string]bool{"text": true, "mathrm": true, "textrm": true}

// Parse parses LaTeX math source into an expression tree.
func Parse(input string) (Node, error) {
	toks, err := tokenize(input)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks, input: input}
	n, err := p.sequence()
	if err != nil {
		return nil, err
	}
	if !p.atEnd() {
		t := p.peek()
		return nil, p.errorf(t.pos, "unexpected %s %q", t.typ, t.val)
	}
	return n, nil
}

type parser struct {
	toks  []token
	input string
	pos   int
}

func (p *parser) peek() token {
	if p.pos >= len(p.toks) {
		return token{typ: tokEOF, pos: -1}
	}
	return p.toks[p.pos]
}

func (p *parser) next() token {
	t := p.peek()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *parser) atEnd() bool {
	return p.peek().typ == tokEOF
}

func (p *parser) is(typ tokenType) bool {
	return p.peek().typ == typ
}

func (p *parser) skipSpace() {
	for p.is(tokSpace) {
		p.pos++
	}
}

func (p *parser) errorf(pos int, format string, args ...any) error {
	return &SyntaxError{Input: p.input, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) expect(typ tokenType) error {
	t := p.peek()
	if t.typ != typ {
		return p.errorf(t.pos, "expected %s, got %s", typ, t.typ)
	}
	p.pos++
	return nil
}

// terminator reports whether the current token closes a sequence.
func (p *parser) terminator() bool {
	t := p.peek()
	switch t.typ {
	case tokCloseBrace, tokCloseBracket, tokEOF, tokAmpersand, tokNewline:
		return true
	case tokCommand:
		return t.val == "right"
	}
	return false
}

// sequence parses nodes up to a terminator. A single child is returned
// unwrapped.
func (p *parser) sequence() (Node, error) {
	seq := &Sequence{}
	for {
		p.skipSpace()
		if p.terminator() {
			break
		}
		n, err := p.element()
		if err != nil {
			return nil, err
		}
		if n != nil {
			seq.Children = append(seq.Children, n)
		}
	}
	if len(seq.Children) == 1 {
		return seq.Children[0], nil
	}
	return seq, nil
}

func (p *parser) element() (Node, error) {
	base, err := p.atom()
	if err != nil || base == nil {
		return base, err
	}
	return p.postfix(base)
}

// postfix attaches ^ and _ arguments in either order.
func (p *parser) postfix(base Node) (Node, error) {
	p.skipSpace()
	if !p.is(tokSuperscript) && !p.is(tokSubscript) {
		return base, nil
	}
	s := &Script{Base: base}
	for i := 0; i < 2; i++ {
		switch {
		case p.is(tokSuperscript) && s.Sup == nil:
			p.pos++
			arg, err := p.argument()
			if err != nil {
				return nil, err
			}
			s.Sup = arg
		case p.is(tokSubscript) && s.Sub == nil:
			p.pos++
			arg, err := p.argument()
			if err != nil {
				return nil, err
			}
			s.Sub = arg
		default:
			return s, nil
		}
		p.skipSpace()
	}
	return s, nil
}

func (p *parser) atom() (Node, error) {
	p.skipSpace()
	if p.terminator() {
		return nil, nil
	}
	t := p.peek()
	switch t.typ {
	case tokOpenBrace:
		p.pos++
		child, err := p.sequence()
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokCloseBrace); err != nil {
			return nil, err
		}
		return &Group{Child: child}, nil
	case tokCommand:
		return p.command()
	case tokText:
		p.pos++
		return letters(t.val), nil
	case tokNumber:
		p.pos++
		return &Number{Value: t.val}, nil
	case tokOperator, tokOpenParen, tokCloseParen, tokOpenBracket, tokCloseBracket, tokPipe:
		p.pos++
		return &Symbol{Name: t.val}, nil
	}
	return nil, p.errorf(t.pos, "unexpected %s", t.typ)
}

// letters splits a run of letters into single-letter variables.
func letters(s string) Node {
	rs := []rune(s)
	if len(rs) == 1 {
		return &Symbol{Name: s}
	}
	seq := &Sequence{Children: make([]Node, len(rs))}
	for i, r := range rs {
		seq.Children[i] = &Symbol{Name: string(r)}
	}
	return seq
}

func (p *parser) command() (Node, error) {
	name := p.next().val
	switch {
	case fractionCommands[name]:
		return p.fraction(name)
	case name == "binom":
		return p.fraction(name)
	case name == "sqrt":
		return p.sqrt()
	case bigOperators[name] != "":
		return p.bigOperator(name)
	case functionNames[name]:
		p.skipSpace()
		return &Function{Name: name}, nil
	case name == "left":
		return p.leftRight()
	case textCommands[name]:
		return p.text()
	case styleCommands[name]:
		return p.group()
	case accents[name] != "":
		arg, err := p.argument()
		if err != nil {
			return nil, err
		}
		return &Function{Name: name, Arg: arg}, nil
	}
	// Greek letters, named symbols, spacing and unknown commands
	return &Symbol{Name: name}, nil
}

func (p *parser) fraction(variant string) (Node, error) {
	num, err := p.group()
	if err != nil {
		return nil, err
	}
	den, err := p.group()
	if err != nil {
		return nil, err
	}
	return &Fraction{Num: num, Den: den, Variant: variant}, nil
}

func (p *parser) sqrt() (Node, error) {
	p.skipSpace()
	var index Node
	if p.is(tokOpenBracket) {
		p.pos++
		var err error
		if index, err = p.sequence(); err != nil {
			return nil, err
		}
		if err := p.expect(tokCloseBracket); err != nil {
			return nil, err
		}
	}
	radicand, err := p.group()
	if err != nil {
		return nil, err
	}
	return &Root{Radicand: radicand, Index: index}, nil
}

func (p *parser) bigOperator(name string) (Node, error) {
	op := &BigOperator{Name: name}
	p.skipSpace()
	for i := 0; i < 2; i++ {
		var err error
		switch {
		case p.is(tokSubscript) && op.Lower == nil:
			p.pos++
			op.Lower, err = p.argument()
		case p.is(tokSuperscript) && op.Upper == nil:
			p.pos++
			op.Upper, err = p.argument()
		default:
			return op, nil
		}
		if err != nil {
			return nil, err
		}
		p.skipSpace()
	}
	return op, nil
}

func (p *parser) leftRight() (Node, error) {
	p.skipSpace()
	left, err := p.delimiter()
	if err != nil {
		return nil, err
	}
	content, err := p.sequence()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	t := p.peek()
	if t.typ != tokCommand || t.val != "right" {
		// unmatched \left closes with a parenthesis
		return &Delimited{Left: left, Right: ")", Content: content}, nil
	}
	p.pos++
	p.skipSpace()
	right, err := p.delimiter()
	if err != nil {
		return nil, err
	}
	return &Delimited{Left: left, Right: right, Content: content}, nil
}

func (p *parser) delimiter() (string, error) {
	t := p.peek()
	switch t.typ {
	case tokOpenParen, tokCloseParen, tokOpenBracket, tokCloseBracket, tokPipe, tokOperator:
		p.pos++
		return t.val, nil
	case tokCommand:
		p.pos++
		switch t.val {
		case "{", "lbrace":
			return "lbrace", nil
		case "}", "rbrace":
			return "rbrace", nil
		case "langle":
			return "<", nil
		case "rangle":
			return ">", nil
		case "Vert":
			return "||", nil
		case "vert":
			return "|", nil
		}
		return t.val, nil
	}
	return "", p.errorf(t.pos, "expected delimiter, got %s", t.typ)
}

func (p *parser) text() (Node, error) {
	p.skipSpace()
	if err := p.expect(tokOpenBrace); err != nil {
		return nil, err
	}
	var sb strings.Builder
	for !p.atEnd() && !p.is(tokCloseBrace) {
		sb.WriteString(p.next().val)
	}
	if err := p.expect(tokCloseBrace); err != nil {
		return nil, err
	}
	return &Text{Value: sb.String()}, nil
}

// group parses a braced argument, returning its content without the
// Group wrapper. A bare token is accepted as a one-atom argument.
func (p *parser) group() (Node, error) {
	p.skipSpace()
	if !p.is(tokOpenBrace) {
		return p.single()
	}
	p.pos++
	content, err := p.sequence()
	if err != nil {
		return nil, err
	}
	if err := p.expect(tokCloseBrace); err != nil {
		return nil, err
	}
	return content, nil
}

// argument parses the operand of ^, _ or an accent.
func (p *parser) argument() (Node, error) {
	return p.group()
}

func (p *parser) single() (Node, error) {
	if p.atEnd() {
		return nil, p.errorf(p.peek().pos, "expected argument")
	}
	n, err := p.atom()
	if err != nil {
		return nil, err
	}
	if n == nil {
		t := p.peek()
		return nil, p.errorf(t.pos, "expected argument, got %s", t.typ)
	}
	return n, nil
}
