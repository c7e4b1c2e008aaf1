package cli

import (
	"github.com/spf13/cobra"

	"github.com/flowcanvas/flowcanvas/pkg/errors"
	"github.com/flowcanvas/flowcanvas/pkg/flowio"
)

// newValidateCmd creates the validate command.
//
// Validation is the same pass the graph core runs on import: entity identity,
// port shape, connection endpoints, direction, capacity, colour
// compatibility, loopback policy and group membership. The command exits
// non-zero on the first violation.
func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a diagram document against all graph constraints",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			p := newProgress(logger)

			g, err := flowio.ReadFile(args[0])
			if err != nil {
				if code := errors.GetCode(err); code != "" {
					printError("%s: %s", code, errors.UserMessage(err))
				} else {
					printError("%v", err)
				}
				cmd.SilenceErrors = true
				return err
			}

			p.done("Validated document")
			printSuccess("%s is valid", args[0])
			printStats(g.NodeCount(), g.ConnectionCount(), g.GroupCount(), g.TemplateCount())
			if g.NodeCount() == 0 {
				printWarning("document has no nodes")
			}
			return nil
		},
	}
}
