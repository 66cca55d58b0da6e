package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/vgraph/pkg/errors"
	"github.com/matzehuels/vgraph/pkg/graph"
	"github.com/matzehuels/vgraph/pkg/ident"
)

// newOpts holds the flags of the new command.
type newOpts struct {
	mesh     bool
	meshSize float64
	origin   bool
	sample   bool
	force    bool
}

// newCommand creates an empty (or sample) graph document.
func (c *CLI) newCommand() *cobra.Command {
	var opts newOpts

	cmd := &cobra.Command{
		Use:   "new [file]",
		Short: "Create a graph document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runNew(cmd.ErrOrStderr(), args[0], opts, ident.NewUUID())
		},
	}

	cmd.Flags().BoolVar(&opts.mesh, "mesh", false, "draw a mesh grid background")
	cmd.Flags().Float64Var(&opts.meshSize, "mesh-size", 20, "mesh cell size")
	cmd.Flags().BoolVar(&opts.origin, "origin", false, "mark the origin")
	cmd.Flags().BoolVar(&opts.sample, "sample", false, "add two connected sample nodes")
	cmd.Flags().BoolVar(&opts.force, "force", false, "overwrite an existing file")
	return cmd
}

func (c *CLI) runNew(w io.Writer, path string, opts newOpts, ids ident.Generator) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil && !opts.force {
		return errors.New(errors.ErrCodeInvalidPath, "%s already exists (use --force to overwrite)", path)
	}

	doc := graph.New()
	if opts.mesh {
		doc.Option.Type = graph.RenderMesh
		doc.Option.MeshSize = opts.meshSize
	}
	doc.Option.OriginPoint = opts.origin

	if opts.sample {
		addSample(doc, ids)
	}
	if err := doc.Validate(); err != nil {
		return err
	}
	if err := graph.WriteFile(doc, path); err != nil {
		return err
	}

	c.Logger.Debug("created document", "path", path, "nodes", len(doc.Nodes))
	printSuccess(w, "Created %s", path)
	return nil
}

// addSample adds a number source connected to a print sink.
func addSample(doc *graph.Document, ids ident.Generator) {
	src := doc.AddNode(ids, graph.Node{
		Type:     "number",
		Position: graph.Position{X: 0, Y: 0},
		Details: map[string]any{"params": []graph.Param{
			{Name: "value", Direction: graph.DirectionOutput, Type: "number"},
		}},
	})
	dst := doc.AddNode(ids, graph.Node{
		Type:     "print",
		Position: graph.Position{X: 300, Y: 80},
		Details: map[string]any{"params": []graph.Param{
			{Name: "input", Direction: graph.DirectionInput, Type: "number"},
		}},
	})
	// Both endpoints were just added.
	_, _ = doc.AddLine(ids, graph.Line{
		Type:   graph.LineCurve,
		Input:  graph.Endpoint{Node: src, Param: "value"},
		Output: graph.Endpoint{Node: dst, Param: "input"},
	})
}
