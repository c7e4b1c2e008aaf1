package cli

import (
	"context"
	"os"

	"github.com/charmbracelet/lipgloss"
	charmlog "github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/flowcanvas/flowcanvas/internal/config"
	"github.com/flowcanvas/flowcanvas/pkg/buildinfo"
)

// Execute runs the flowcanvas CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands (validate,
// inspect, export, normalize), configures logging based on the --verbose flag
// and the config file, and executes the command tree.
//
// Logging:
//   - Default: the level from config.toml (info when unset)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool
	cfg := config.Load()
	if !cfg.UI.Color {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	root := &cobra.Command{
		Use:          "flowcanvas",
		Short:        "FlowCanvas inspects and converts flow-diagram documents",
		Long:         `FlowCanvas is a CLI tool for validating, inspecting and exporting flow-diagram documents built on the flowcanvas graph core.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := parseLevel(cfg.Log.Level)
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newValidateCmd())
	root.AddCommand(newInspectCmd())
	root.AddCommand(newExportCmd(cfg))
	root.AddCommand(newNormalizeCmd())

	return root.ExecuteContext(ctx)
}
