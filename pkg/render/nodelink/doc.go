// Package nodelink renders graph documents as plain node-link diagrams.
//
// # Overview
//
// This package produces directed graph visualizations using Graphviz, where
// nodes appear as boxes connected by arrows. Unlike the scene renderer it
// ignores node positions and registered templates and lets Graphviz lay the
// graph out, which makes it useful for inspecting the structure of large
// documents.
//
// # Usage
//
// Convert a document to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(doc, nodelink.Options{Detailed: false})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// # DOT Format
//
// The generated DOT uses left-to-right layout (rankdir=LR), matching the
// usual input-on-the-left flow of node editors. Curve lines are dashed and
// port names label the ends of each edge.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
