package equation

// Node is an element of a parsed expression. Implemented only by the
// types in this file.
type Node interface {
	node()
}

// Sequence is juxtaposed nodes.
type Sequence struct {
	Children []Node
}

// Number is a numeric literal such as "3.14".
type Number struct {
	Value string
}

// Symbol is a variable, operator or named symbol. Commands keep their
// LaTeX name without the backslash.
type Symbol struct {
	Name string
}

// Text is upright literal text from \text, \mathrm or \textrm.
type Text struct {
	Value string
}

// Group is a braced sub-expression.
type Group struct {
	Child Node
}

// Fraction is \frac, \dfrac, \tfrac or \binom.
type Fraction struct {
	Num     Node
	Den     Node
	Variant string
}

// Root is \sqrt with an optional index.
type Root struct {
	Radicand Node
	Index    Node
}

// Script attaches a subscript, a superscript or both to a base.
type Script struct {
	Base Node
	Sub  Node
	Sup  Node
}

// BigOperator is a large operator (sum, integral) with optional limits.
type BigOperator struct {
	Name  string
	Lower Node
	Upper Node
}

// Function is a named function or an accent applied to Arg.
type Function struct {
	Name string
	Arg  Node
}

// Delimited is a \left ... \right pair.
type Delimited struct {
	Left    string
	Right   string
	Content Node
}

func (*Sequence) node()    {}
func (*Number) node()      {}
func (*Symbol) node()      {}
func (*Text) node()        {}
func (*Group) node()       {}
func (*Fraction) node()    {}
func (*Root) node()        {}
func (*Script) node()      {}
func (*BigOperator) node() {}
func (*Function) node()    {}
func (*Delimited) node()   {}
