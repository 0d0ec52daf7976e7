package equation

import (
	"fmt"
	"unicode"
)

type tokenType int

const (
	tokCommand tokenType = iota
	tokOpenBrace
	tokCloseBrace
	tokOpenBracket
	tokCloseBracket
	tokOpenParen
	tokCloseParen
	tokSuperscript
	tokSubscript
	tokAmpersand
	tokNewline
	tokText
	tokNumber
	tokSpace
	tokPipe
	tokOperator
	tokEOF
)

func (t tokenType) String() string {
	switch t {
	case tokCommand:
		return "command"
	case tokOpenBrace:
		return "'{'"
	case tokCloseBrace:
		return "'}'"
	case tokOpenBracket:
		return "'['"
	case tokCloseBracket:
		return "']'"
	case tokOpenParen:
		return "'('"
	case tokCloseParen:
		return "')'"
	case tokSuperscript:
		return "'^'"
	case tokSubscript:
		return "'_'"
	case tokAmpersand:
		return "'&'"
	case tokNewline:
		return `'\\'`
	case tokText:
		return "text"
	case tokNumber:
		return "number"
	case tokSpace:
		return "space"
	case tokPipe:
		return "'|'"
	case tokOperator:
		return "operator"
	default:
		return "end of input"
	}
}

type token struct {
	typ tokenType
	val string
	pos int
}

// SyntaxError reports malformed LaTeX input. Pos is a rune offset.
type SyntaxError struct {
	Input string
	Pos   int
	Msg   string
}

func (e *SyntaxError) Error() string {
	if e.Input == "" {
		return fmt.Sprintf("equation: %s at %d", e.Msg, e.Pos)
	}
	return fmt.Sprintf("equation: %s at %d in %q", e.Msg, e.Pos, e.Input)
}

var singleRune = map[rune]tokenType{
	'{': tokOpenBrace,
	'}': tokCloseBrace,
	'[': tokOpenBracket,
	']': tokCloseBracket,
	'(': tokOpenParen,
	')': tokCloseParen,
	'^': tokSuperscript,
	'_': tokSubscript,
	'&': tokAmpersand,
	'|': tokPipe,
}

func isOperatorRune(r rune) bool {
	switch r {
	case '+', '-', '=', '<', '>', ',', ';', '!', '\'', ':', '/', '*', '.':
		return true
	}
	return false
}

// lexer turns LaTeX source into tokens.
type lexer struct {
	src   []rune
	input string
	pos   int
}

func tokenize(input string) ([]token, error) {
	l := &lexer{src: []rune(input), input: input}
	var toks []token
	for l.pos < len(l.src) {
		r := l.src[l.pos]
		if typ, ok := singleRune[r]; ok {
			toks = append(toks, token{typ: typ, val: string(r), pos: l.pos})
			l.pos++
			continue
		}
		switch {
		case r == '\\':
			t, err := l.backslash()
			if err != nil {
				return nil, err
			}
			toks = append(toks, t)
		case unicode.IsSpace(r):
			start := l.pos
			for l.pos < len(l.src) && unicode.IsSpace(l.src[l.pos]) {
				l.pos++
			}
			toks = append(toks, token{typ: tokSpace, val: " ", pos: start})
		case unicode.IsDigit(r):
			toks = append(toks, l.run(tokNumber, func(c rune) bool { return unicode.IsDigit(c) || c == '.' }))
		case unicode.IsLetter(r):
			toks = append(toks, l.run(tokText, unicode.IsLetter))
		case isOperatorRune(r):
			toks = append(toks, token{typ: tokOperator, val: string(r), pos: l.pos})
			l.pos++
		default:
			return nil, &SyntaxError{Input: input, Pos: l.pos, Msg: fmt.Sprintf("unexpected character %q", r)}
		}
	}
	return append(toks, token{typ: tokEOF, pos: l.pos}), nil
}

func (l *lexer) run(typ tokenType, accept func(rune) bool) token {
	start := l.pos
	for l.pos < len(l.src) && accept(l.src[l.pos]) {
		l.pos++
	}
	return token{typ: typ, val: string(l.src[start:l.pos]), pos: start}
}

func (l *lexer) backslash() (token, error) {
	start := l.pos
	l.pos++
	if l.pos >= len(l.src) {
		return token{}, &SyntaxError{Input: l.input, Pos: start, Msg: "unexpected end of input after backslash"}
	}
	next := l.src[l.pos]
	switch next {
	case '\\':
		l.pos++
		return token{typ: tokNewline, val: `\\`, pos: start}, nil
	case '{', '}', '|', ',', ';', '!', ' ':
		l.pos++
		return token{typ: tokCommand, val: string(next), pos: start}, nil
	}
	if unicode.IsLetter(next) {
		t := l.run(tokCommand, unicode.IsLetter)
		t.pos = start
		return t, nil
	}
	return token{}, &SyntaxError{Input: l.input, Pos: l.pos, Msg: fmt.Sprintf("unexpected character %q after backslash", next)}
}
