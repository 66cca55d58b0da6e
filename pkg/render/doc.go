// Package render turns graph documents into images.
//
// # Overview
//
//   - Scene rendering through the type registry (in [scene] subpackage)
//   - Node-link diagrams through Graphviz (in [nodelink] subpackage)
//   - Generic format conversion (SVG to PDF/PNG)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). Both renderers produce SVG
// first and share these converters.
//
//	res, err := scene.Render(ctx, doc, reg)
//	png, err := render.ToPNG(ctx, res.SVG, 2.0)  // 2x scale
//
// [scene]: github.com/matzehuels/vgraph/pkg/render/scene
// [nodelink]: github.com/matzehuels/vgraph/pkg/render/nodelink
package render
