package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/vgraph/pkg/errors"
	"github.com/matzehuels/vgraph/pkg/registry"
	"github.com/matzehuels/vgraph/pkg/render/scene"
)

// checkCommand validates a document and runs the flavor's line filter over
// every line without writing output.
func (c *CLI) checkCommand() *cobra.Command {
	var flavor, configPath string

	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Validate a document and its connections",
		Long: `Validate a graph document and run the flavor's line filter over every line.

The command fails when the document is malformed, when a line is rejected by
the filter, or when a line names a port that does not exist on its node.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCheck(cmd.Context(), cmd.ErrOrStderr(), args[0], flavor, configPath)
		},
	}

	cmd.Flags().StringVar(&flavor, "flavor", registry.Wildcard, "flavor to check against")
	cmd.Flags().StringVar(&configPath, "config", "", "flavor file (default: $XDG_CONFIG_HOME/vgraph/flavors.toml)")
	return cmd
}

func (c *CLI) runCheck(ctx context.Context, w io.Writer, input, flavor, configPath string) error {
	_, doc, err := readDocument(input)
	if err != nil {
		return err
	}
	reg, _, err := c.newRegistry(configPath)
	if err != nil {
		return err
	}

	res, err := scene.Render(ctx, doc, reg, scene.WithFlavor(flavor), scene.WithLogger(c.Logger))
	if err != nil {
		return err
	}

	for _, id := range res.Rejected {
		l := doc.Lines[id]
		printWarning(w, "line %s rejected: %s.%s -> %s.%s", id, l.Input.Node, l.Input.Param, l.Output.Node, l.Output.Param)
	}
	for _, id := range res.Unplaced {
		l := doc.Lines[id]
		printWarning(w, "line %s has a missing port: %s.%s -> %s.%s", id, l.Input.Node, l.Input.Param, l.Output.Node, l.Output.Param)
	}

	if bad := len(res.Rejected) + len(res.Unplaced); bad > 0 {
		printError(w, "%s: %d of %d lines invalid", input, bad, len(doc.Lines))
		return errors.New(errors.ErrCodeInvalidDocument, "%d invalid lines", bad)
	}
	printSuccess(w, "%s: %d nodes, %d lines ok", input, len(doc.Nodes), len(doc.Lines))
	return nil
}
