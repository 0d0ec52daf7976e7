package equation

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ToScript converts LaTeX math source (without $ delimiters) to HWP
// equation script. Blank input yields an empty script.
func ToScript(latex string) (string, error) {
	if strings.TrimSpace(latex) == "" {
		return "", nil
	}
	n, err := Parse(latex)
	if err != nil {
		return "", err
	}
	return Write(n), nil
}

// Write renders an expression tree as HWP equation script.
func Write(n Node) string {
	w := &scriptWriter{}
	w.node(n)
	return strings.TrimSpace(w.sb.String())
}

type scriptWriter struct {
	sb strings.Builder
}

func (w *scriptWriter) last() rune {
	s := w.sb.String()
	if s == "" {
		return 0
	}
	r, _ := utf8.DecodeLastRuneInString(s)
	return r
}

func (w *scriptWriter) raw(s string) {
	w.sb.WriteString(s)
}

// word writes s separated from the previous token.
func (w *scriptWriter) word(s string) {
	if l := w.last(); l != 0 && l != ' ' && l != '{' {
		w.sb.WriteByte(' ')
	}
	w.sb.WriteString(s)
}

func (w *scriptWriter) space() {
	if l := w.last(); l != 0 && l != ' ' {
		w.sb.WriteByte(' ')
	}
}

func (w *scriptWriter) braced(n Node) {
	w.raw("{")
	w.node(n)
	w.raw("}")
}

func (w *scriptWriter) node(n Node) {
	switch v := n.(type) {
	case nil:
	case *Sequence:
		for i, c := range v.Children {
			if i > 0 && spaced(v.Children[i-1], c) {
				w.space()
			}
			w.node(c)
		}
	case *Number:
		w.raw(v.Value)
	case *Symbol:
		w.symbol(v.Name)
	case *Text:
		w.word(`"` + v.Value + `"`)
	case *Group:
		w.braced(v.Child)
	case *Fraction:
		w.fraction(v)
	case *Root:
		if v.Index == nil {
			w.word("sqrt")
		} else {
			w.word("root")
			w.space()
			w.node(v.Index)
			w.word("of")
		}
		w.space()
		w.braced(v.Radicand)
	case *Script:
		w.node(v.Base)
		w.limits(v.Sub, v.Sup)
	case *BigOperator:
		op := bigOperators[v.Name]
		if op == "" {
			op = v.Name
		}
		w.word(op)
		w.limits(v.Lower, v.Upper)
	case *Function:
		if acc, ok := accents[v.Name]; ok {
			w.word(acc)
			w.space()
			w.node(v.Arg)
			return
		}
		w.word(v.Name)
		if v.Arg != nil {
			w.space()
			w.node(v.Arg)
		}
	case *Delimited:
		w.word("LEFT")
		w.space()
		w.raw(delimiter(v.Left))
		w.space()
		w.node(v.Content)
		w.space()
		w.raw("RIGHT")
		w.space()
		w.raw(delimiter(v.Right))
	}
}

func (w *scriptWriter) limits(sub, sup Node) {
	if sub != nil {
		w.space()
		w.raw("_")
		w.braced(sub)
	}
	if sup != nil {
		w.space()
		w.raw("^")
		w.braced(sup)
	}
}

func (w *scriptWriter) fraction(f *Fraction) {
	if f.Variant == "binom" {
		w.word("LEFT ( ")
		w.braced(f.Num)
		w.word("atop")
		w.space()
		w.braced(f.Den)
		w.word("RIGHT )")
		return
	}
	op := "over"
	if f.Variant == "tfrac" {
		op = "smallover"
	}
	w.braced(f.Num)
	w.word(op)
	w.space()
	w.braced(f.Den)
}

func (w *scriptWriter) symbol(name string) {
	if g, ok := greek[name]; ok {
		w.word(g)
		return
	}
	s, ok := symbols[name]
	if !ok {
		w.raw(name)
		return
	}
	if s == "" {
		return
	}
	if r, _ := utf8.DecodeRuneInString(s); utf8.RuneCountInString(s) > 1 && unicode.IsLetter(r) {
		w.word(s)
	} else {
		w.raw(s)
	}
}

func delimiter(d string) string {
	if d == "." {
		return "NONE"
	}
	return d
}

// spaced reports whether adjacent nodes of a sequence need a separator.
func spaced(prev, next Node) bool {
	return complexNode(prev) || complexNode(next) ||
		wordNode(prev) || wordNode(next) ||
		operatorNode(prev) || operatorNode(next)
}

func complexNode(n Node) bool {
	switch n.(type) {
	case *Fraction, *Root, *BigOperator, *Function, *Delimited, *Script:
		return true
	}
	return false
}

func wordNode(n Node) bool {
	switch v := n.(type) {
	case *Text:
		return true
	case *Symbol:
		r, _ := utf8.DecodeRuneInString(v.Name)
		return utf8.RuneCountInString(v.Name) > 1 && unicode.IsLetter(r)
	}
	return false
}

func operatorNode(n Node) bool {
	s, ok := n.(*Symbol)
	if !ok {
		return false
	}
	switch s.Name {
	case "+", "-", "=", "<", ">", ",":
		return true
	}
	return false
}
