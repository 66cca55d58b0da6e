// Package pkg provides the core libraries of vgraph, a node-graph editor core.
//
// # Overview
//
// A vgraph document is a set of typed nodes joined by typed lines. Node and
// line types are resolved per flavor: a flavor groups the types, render
// option and line filter of one kind of graph (a shader graph, a data flow
// graph), and falls back to the wildcard flavor "*" for anything it does not
// declare itself.
//
// # Architecture
//
// The typical data flow through vgraph:
//
//	JSON document ──→ [graph] ──┐
//	flavors.toml  ──→ [config] ─┼─→ [registry]
//	                            ↓
//	                    [render/scene] ←── [probe] (port offsets)
//	                            │              ↑
//	                            │          [route] (line geometry)
//	                            ↓
//	                 SVG ──→ [render] ──→ PDF/PNG
//
// # Quick Start
//
// Render a document with the built-in types:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/vgraph/pkg/graph"
//	    "github.com/matzehuels/vgraph/pkg/registry"
//	    "github.com/matzehuels/vgraph/pkg/render/scene"
//	)
//
//	doc, _ := graph.ReadFile("flow.json")
//	reg := registry.NewDefault()
//	res, _ := scene.Render(context.Background(), doc, reg, scene.WithFlavor("shader"))
//	os.WriteFile("flow.svg", res.SVG, 0644)
//
// # Main Packages
//
// ## Types and Geometry
//
// [registry] - Flavor-scoped node and line types with wildcard fallback,
// render options per flavor, and the line filter that decides which ports
// may be connected.
//
// [route] - Straight and curved connector geometry. Curves leave each port
// in the direction of its role and keep a minimum clearance from the node.
//
// [probe] - Port offsets relative to their node's centre, measured on a
// laid-out element tree.
//
// ## Documents
//
// [graph] - The JSON document format: nodes, lines, render option and scale.
//
// [config] - TOML flavor files that declare additional types and aliases.
//
// [ident] - Identifier generators for new nodes and lines.
//
// ## Visualization
//
// [render/scene] - Draws a document the way the editor shows it.
//
// [render/nodelink] - Graphviz node-link diagrams of a document.
//
// [render] - Format conversion (SVG to PDF/PNG).
//
// ## Infrastructure
//
// [cache] - Content-addressed artifact cache for the CLI.
//
// [errors] - Coded errors and input validation.
//
// [observability] - Hooks for registry, render and cache events.
//
// [registry]: https://pkg.go.dev/github.com/matzehuels/vgraph/pkg/registry
// [route]: https://pkg.go.dev/github.com/matzehuels/vgraph/pkg/route
// [probe]: https://pkg.go.dev/github.com/matzehuels/vgraph/pkg/probe
// [graph]: https://pkg.go.dev/github.com/matzehuels/vgraph/pkg/graph
// [config]: https://pkg.go.dev/github.com/matzehuels/vgraph/pkg/config
// [ident]: https://pkg.go.dev/github.com/matzehuels/vgraph/pkg/ident
// [render/scene]: https://pkg.go.dev/github.com/matzehuels/vgraph/pkg/render/scene
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/vgraph/pkg/render/nodelink
// [render]: https://pkg.go.dev/github.com/matzehuels/vgraph/pkg/render
// [cache]: https://pkg.go.dev/github.com/matzehuels/vgraph/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/vgraph/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/vgraph/pkg/observability
package pkg
