// Package scene renders a graph document to a standalone SVG.
//
// Every node and line is resolved through a [registry.Registry] in the
// selected flavor, so the output looks the way the editor draws the same
// document: node templates are embedded in foreignObject elements, line
// templates receive the geometry their type computes, and the background
// follows the render option (flat color or mesh grid with an origin marker).
//
//	res, err := scene.Render(ctx, doc, registry.Default(), scene.WithFlavor("shader"))
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("graph.svg", res.SVG, 0o644)
//
// Port positions come from a [Tree]. Without [WithTree], the renderer lays
// nodes out with [probe.FromDocument].
//
// Lines are not errors when they cannot be drawn. Lines the flavor's line
// filter refuses are listed in [Result.Rejected]; lines naming a port the
// tree does not contain are listed in [Result.Unplaced].
package scene
