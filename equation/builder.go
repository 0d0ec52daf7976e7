package equation

import (
	"io"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/tsawler/idmlhwpx/ast"
	"github.com/tsawler/idmlhwpx/hwpx"
)

// Builder creates hp:equation elements from AST equations.
type Builder struct {
	// BaseUnit is the default equation font height in HWPUNIT.
	BaseUnit int
	Logger   *log.Logger
}

// NewBuilder returns a builder with the HWP default base unit.
func NewBuilder() *Builder {
	return &Builder{BaseUnit: hwpx.EquationBaseUnit, Logger: log.New(io.Discard)}
}

// Build converts eq into an inline hp:equation with the given shape id.
// An equation that already carries a script is used as is; otherwise its
// LaTeX source is converted.
func (b *Builder) Build(id string, eq *ast.Equation) (*hwpx.Equation, error) {
	script := eq.Script
	if script == "" {
		var err error
		if script, err = ToScript(eq.Source); err != nil {
			return nil, err
		}
	}

	unit := b.BaseUnit
	if eq.Size > 0 {
		unit = int(eq.Size)
	}
	if unit <= 0 {
		unit = hwpx.EquationBaseUnit
	}
	w, h := estimateSize(script, unit)
	b.logger().Debug("built equation", "source", eq.Source, "script", script)
	return hwpx.NewEquation(id, script, unit, eq.Color, w, h), nil
}

func (b *Builder) logger() *log.Logger {
	if b.Logger == nil {
		return log.New(io.Discard)
	}
	return b.Logger
}

// estimateSize guesses the rendered box. Hancom recomputes the real size
// when the document is opened.
func estimateSize(script string, unit int) (int64, int64) {
	n := int64(utf8.RuneCountInString(script))
	w := n * int64(unit) / 2
	if w < int64(unit) {
		w = int64(unit)
	}
	return w, int64(unit) * 13 / 10
}
