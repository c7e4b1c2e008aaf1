package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flowcanvas/flowcanvas/pkg/flow"
	"github.com/flowcanvas/flowcanvas/pkg/flowio"
)

// newInspectCmd creates the inspect command.
func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>",
		Short: "Print a structural summary of a diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			g, err := flowio.ReadFile(args[0])
			if err != nil {
				return err
			}
			logger.Debug("loaded document", "path", args[0])

			s := g.State()
			fmt.Println(StyleTitle.Render(args[0]))
			printStats(len(s.Nodes), len(s.Connections), len(s.Groups), len(s.Templates))
			fmt.Println()

			printKeyValue("viewport", fmt.Sprintf("(%.0f, %.0f) @ %.2fx",
				s.Viewport.Position.X, s.Viewport.Position.Y, s.Viewport.Zoom))
			fmt.Println()

			for _, n := range s.Nodes {
				printKeyValue(n.ID, nodeSummary(n))
			}
			for _, c := range s.Connections {
				printKeyValue(c.ID, connectionSummary(c))
			}
			for _, gr := range s.Groups {
				printKeyValue(gr.ID, fmt.Sprintf("group [%s]", strings.Join(gr.NodeIDs, ", ")))
			}
			for _, t := range s.Templates {
				printKeyValue(t.ID, fmt.Sprintf("template %q, %d ports", t.Label, len(t.Ports)))
			}
			return nil
		},
	}
}

func nodeSummary(n flow.Node) string {
	var in, out int
	for _, p := range n.Ports {
		if p.Direction == flow.DirectionInput {
			in++
		} else {
			out++
		}
	}

	parts := []string{strconv.Itoa(in) + " in / " + strconv.Itoa(out) + " out"}
	if n.Label != "" {
		parts = append([]string{strconv.Quote(n.Label)}, parts...)
	}
	if n.GroupID != "" {
		parts = append(parts, "in "+n.GroupID)
	}
	if n.TemplateID != "" {
		parts = append(parts, "from "+n.TemplateID)
	}
	return strings.Join(parts, ", ")
}

func connectionSummary(c flow.Connection) string {
	s := fmt.Sprintf("%s.%s %s %s.%s",
		c.Source.NodeID, c.Source.PortID, iconArrow, c.Target.NodeID, c.Target.PortID)
	if c.Color != "" {
		s += " (" + c.Color + ")"
	}
	return s
}
