// Package equation converts LaTeX math to the HWP equation script used by
// hp:equation elements.
//
// Conversion runs in three stages: the lexer splits the source into
// tokens, the parser builds a small expression tree and the script writer
// walks the tree emitting HWP keywords (over, sqrt, root ... of, LEFT/RIGHT,
// sum, int and so on). Unknown commands pass through by name so that a
// reader of the resulting document still sees something meaningful.
//
// Basic usage:
//
//	script, err := equation.ToScript(`\frac{a}{b}`)
//	// script == "{a} over {b}"
//
// The Builder wraps conversion and produces ready-to-insert hwpx.Equation
// values with the default font, base unit and colour.
package equation
