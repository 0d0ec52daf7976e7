package idmlhwpx

import (
	"errors"
	"fmt"
)

// Phase names the pipeline stage an error or warning belongs to.
type Phase string

// Pipeline phases.
const (
	PhaseLoading          Phase = "loading"
	PhaseParsing          Phase = "parsing"
	PhaseStyleMapping     Phase = "style-mapping"
	PhaseCoordinate       Phase = "coordinate"
	PhaseEquation         Phase = "equation"
	PhaseImage            Phase = "image"
	PhaseTargetGeneration Phase = "target-generation"
)

// ConvertError is a fatal conversion failure.
type ConvertError struct {
	Phase   Phase  // Stage that failed
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *ConvertError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Phase, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Phase, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *ConvertError) Unwrap() error {
	return e.Cause
}

func newError(phase Phase, format string, args ...any) *ConvertError {
	return &ConvertError{Phase: phase, Message: fmt.Sprintf(format, args...)}
}

func wrapError(phase Phase, cause error, format string, args ...any) *ConvertError {
	return &ConvertError{Phase: phase, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// PhaseOf returns the phase of the first ConvertError in err's chain, or
// the empty string when there is none.
func PhaseOf(err error) Phase {
	var ce *ConvertError
	if errors.As(err, &ce) {
		return ce.Phase
	}
	return ""
}
