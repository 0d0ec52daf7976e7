package idmlhwpx

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
)

func TestConvertError(t *testing.T) {
	tests := []struct {
		name string
		err  *ConvertError
		want string
	}{
		{"without cause", newError(PhaseLoading, "no source specified"), "loading: no source specified"},
		{"with cause", wrapError(PhaseParsing, io.ErrUnexpectedEOF, "failed to parse %s", "a.idml"),
			"parsing: failed to parse a.idml: unexpected EOF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConvertErrorUnwrap(t *testing.T) {
	err := fmt.Errorf("outer: %w", wrapError(PhaseImage, io.EOF, "decode"))
	if !errors.Is(err, io.EOF) {
		t.Error("errors.Is did not reach the cause")
	}
	var ce *ConvertError
	if !errors.As(err, &ce) {
		t.Fatal("errors.As found no ConvertError")
	}
	if ce.Phase != PhaseImage {
		t.Errorf("Phase = %q, want %q", ce.Phase, PhaseImage)
	}
}

func TestPhaseOf(t *testing.T) {
	if got := PhaseOf(newError(PhaseTargetGeneration, "x")); got != PhaseTargetGeneration {
		t.Errorf("PhaseOf() = %q", got)
	}
	if got := PhaseOf(io.EOF); got != "" {
		t.Errorf("PhaseOf(plain) = %q, want empty", got)
	}
	if got := PhaseOf(nil); got != "" {
		t.Errorf("PhaseOf(nil) = %q, want empty", got)
	}
}

// ============================================================================
// Warnings
// ============================================================================

func TestWarningString(t *testing.T) {
	tests := []struct {
		w    Warning
		want string
	}{
		{Warning{Phase: PhaseImage, Element: "u12", Message: "link not found"}, "image: u12: link not found"},
		{Warning{Phase: PhaseParsing, Message: "story missing"}, "parsing: story missing"},
	}
	for _, tt := range tests {
		if got := tt.w.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestFormatWarnings(t *testing.T) {
	ws := []Warning{
		{Phase: PhaseImage, Element: "a", Message: "one"},
		{Phase: PhaseEquation, Element: "b", Message: "two"},
		{Phase: PhaseImage, Element: "c", Message: "three"},
	}
	got := FormatWarnings(ws)
	if lines := strings.Split(got, "\n"); len(lines) != 3 || lines[1] != "equation: b: two" {
		t.Errorf("FormatWarnings() = %q", got)
	}
	if FormatWarnings(nil) != "" {
		t.Error("FormatWarnings(nil) not empty")
	}

	counts := CountByPhase(ws)
	if counts[PhaseImage] != 2 || counts[PhaseEquation] != 1 || counts[PhaseParsing] != 0 {
		t.Errorf("CountByPhase() = %v", counts)
	}
}
