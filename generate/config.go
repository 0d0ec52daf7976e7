package generate

import (
	"github.com/charmbracelet/log"

	"github.com/tsawler/idmlhwpx/ast"
	"github.com/tsawler/idmlhwpx/equation"
	"github.com/tsawler/idmlhwpx/hwpx"
)

// EquationBuilder turns an equation into an hp:equation element.
type EquationBuilder interface {
	Build(id string, eq *ast.Equation) (*hwpx.Equation, error)
}

// Config controls a generation run.
type Config struct {
	// Equations builds inline equations. Nil writes every equation as
	// literal "[source]" text.
	Equations EquationBuilder

	Logger *log.Logger
}

// DefaultConfig returns a configuration using the equation package
// builder.
func DefaultConfig() Config {
	return Config{Equations: equation.NewBuilder()}
}

// Warning phases.
const (
	PhaseImage    = "image"
	PhaseEquation = "equation"
	PhaseTarget   = "target-generation"
)

// Warning is a recoverable problem with one element of the ast document.
type Warning struct {
	Phase   string
	Element string
	Message string
}

func (w Warning) String() string {
	if w.Element == "" {
		return w.Phase + ": " + w.Message
	}
	return w.Phase + ": " + w.Element + ": " + w.Message
}

// Stats counts what a run produced.
type Stats struct {
	Pages      int
	TextFrames int
	Tables     int
	Figures    int
	// Images counts embedded BinData items: figures, inline pictures and
	// page backgrounds.
	Images    int
	Equations int
	Styles    int
	Fonts     int
}

// Frames returns the number of positioned blocks written.
func (s Stats) Frames() int {
	return s.TextFrames + s.Tables + s.Figures
}
