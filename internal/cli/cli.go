// Package cli implements the idml2hwpx command-line interface.
//
// # Commands
//
//   - convert: convert an IDML package into an HWPX document
//   - inspect: summarize the pages of an IDML package, or with --hwpx the
//     content of a written HWPX document
//   - preview: render the converted layout as an HTML page
//
// # Logging
//
// All commands log through charmbracelet/log. --verbose lowers the level to
// debug; --quiet raises it to errors only.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// SetVersion sets the version information displayed by --version.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
	LogError = log.ErrorLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	// Out receives command results; logs go to the logger's writer.
	Out io.Writer
}

// New creates a CLI logging to logw at level and printing results to out.
func New(out, logw io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(logw, level), Out: out}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "idml2hwpx",
		Short:        "idml2hwpx converts InDesign layouts to HWPX documents",
		Long:         `idml2hwpx re-creates the page layout of an InDesign IDML package as a Hancom HWPX document: every text frame, table and image keeps its page, position and size.`,
		Version:      version,
		SilenceUsage: true,
	}
	root.SetVersionTemplate("{{.Name}} version " + version + "\ncommit: " + commit + "\nbuilt: " + date + "\n")

	root.AddCommand(c.convertCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.previewCommand())
	return root
}
