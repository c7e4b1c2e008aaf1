package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flowcanvas/flowcanvas/internal/config"
	"github.com/flowcanvas/flowcanvas/pkg/flowio"
)

// newExportCmd creates the export command. Format and detail defaults come
// from the config file and can be overridden per invocation.
func newExportCmd(cfg *config.Config) *cobra.Command {
	var (
		format   string
		detailed bool
		output   string
	)

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Convert a diagram to JSON or Graphviz DOT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			p := newProgress(logger)

			g, err := flowio.ReadFile(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			var f *os.File
			if output != "" {
				if f, err = os.Create(output); err != nil {
					return fmt.Errorf("create %s: %w", output, err)
				}
				defer f.Close()
				out = f
			}

			switch format {
			case "json":
				err = flowio.Write(g, out)
			case "dot":
				_, err = fmt.Fprint(out, flowio.ToDOT(g, flowio.Options{Detailed: detailed}))
			default:
				return fmt.Errorf("unknown format %q (want json or dot)", format)
			}
			if err != nil {
				return err
			}

			p.done(fmt.Sprintf("Exported %s", format))
			if output != "" {
				printSuccess("Wrote %s export", format)
				printFile(output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", cfg.Export.Format, "output format: json or dot")
	cmd.Flags().BoolVarP(&detailed, "detailed", "d", cfg.Export.Detailed, "include port names and template provenance")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}
