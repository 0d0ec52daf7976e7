package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/tsawler/idmlhwpx"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // primary values
	colorGreen  = lipgloss.Color("35")  // success
	colorYellow = lipgloss.Color("220") // warnings
	colorRed    = lipgloss.Color("167") // errors
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleHeader  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconArrow   = "→"
)

// maxListedWarnings caps the warnings printed individually; the rest are
// only counted.
const maxListedWarnings = 20

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printError(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+styleDim.Render(iconArrow)+" "+styleValue.Render(path))
}

func printKeyValue(w io.Writer, key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Fprintln(w, keyStyle.Render(key)+" "+styleValue.Render(value))
}

// stat is one labelled count.
type stat struct {
	label string
	n     int
}

// printStats prints labelled counts on one line, skipping zeros.
func printStats(w io.Writer, stats ...stat) {
	var parts []string
	for _, s := range stats {
		if s.n == 0 {
			continue
		}
		parts = append(parts, styleNumber.Render(fmt.Sprint(s.n))+" "+styleDim.Render(s.label))
	}
	if len(parts) == 0 {
		return
	}
	fmt.Fprintln(w, "  "+strings.Join(parts, styleDim.Render(" · ")))
}

// printWarnings prints a per-phase count followed by the first warnings.
func printWarnings(w io.Writer, warnings []idmlhwpx.Warning) {
	if len(warnings) == 0 {
		return
	}

	counts := idmlhwpx.CountByPhase(warnings)
	phases := make([]string, 0, len(counts))
	for p := range counts {
		phases = append(phases, string(p))
	}
	sort.Strings(phases)
	var summary []string
	for _, p := range phases {
		summary = append(summary, fmt.Sprintf("%s %d", p, counts[idmlhwpx.Phase(p)]))
	}
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+
		styleWarning.Render(fmt.Sprintf("%d warnings", len(warnings)))+" "+
		styleDim.Render("("+strings.Join(summary, ", ")+")"))

	for i, wn := range warnings {
		if i == maxListedWarnings {
			fmt.Fprintln(w, "  "+styleDim.Render(fmt.Sprintf("… %d more", len(warnings)-i)))
			break
		}
		fmt.Fprintln(w, "  "+styleDim.Render(wn.String()))
	}
}

// renderTable renders rows under headers in a rounded border.
func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader.Padding(0, 1)
			}
			if col > 0 {
				return lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		String()
}
