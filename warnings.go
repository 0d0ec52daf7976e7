package idmlhwpx

import (
	"fmt"
	"strings"
)

// Warning is a recoverable problem with one element. Warnings never make a
// conversion fail; the element is skipped or replaced by a stand-in.
type Warning struct {
	Phase   Phase
	Element string
	Message string
}

// String returns the warning as "phase: element: message".
func (w Warning) String() string {
	if w.Element == "" {
		return fmt.Sprintf("%s: %s", w.Phase, w.Message)
	}
	return fmt.Sprintf("%s: %s: %s", w.Phase, w.Element, w.Message)
}

// FormatWarnings joins warnings one per line.
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}

// CountByPhase returns the number of warnings per phase.
func CountByPhase(warnings []Warning) map[Phase]int {
	counts := make(map[Phase]int)
	for _, w := range warnings {
		counts[w.Phase]++
	}
	return counts
}
