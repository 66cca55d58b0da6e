package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/vgraph/pkg/errors"
	"github.com/matzehuels/vgraph/pkg/graph"
	"github.com/matzehuels/vgraph/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes the node type, position and details in node labels.
	// When false, only the node ID and type are shown.
	Detailed bool

	// Skip lists line ids to leave out, typically those a line filter rejected.
	Skip []string
}

// ToDOT converts a graph document to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
//
// Lines run from their input node to their output node. Straight lines are
// drawn solid and curve lines dashed; port names become edge labels.
func ToDOT(doc *graph.Document, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=10];\n")
	buf.WriteString("\n")

	for _, id := range doc.NodeIDs() {
		n := doc.Nodes[id]
		fmt.Fprintf(&buf, "  %q [label=%q];\n", id, fmtLabel(id, n, opts.Detailed))
	}

	buf.WriteString("\n")
	for _, id := range doc.LineIDs() {
		if slices.Contains(opts.Skip, id) {
			continue
		}
		l := doc.Lines[id]
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", l.Input.Node, l.Output.Node, strings.Join(fmtEdgeAttrs(id, l), ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(id string, n graph.Node, detailed bool) string {
	label := id + "\n" + n.Type
	if !detailed {
		return label
	}

	parts := []string{fmt.Sprintf("at: %s,%s", num(n.Position.X), num(n.Position.Y))}
	for _, p := range n.Params() {
		parts = append(parts, fmt.Sprintf("%s %s: %s", p.Direction, p.Name, p.Type))
	}
	for _, k := range slices.Sorted(maps.Keys(n.Details)) {
		if k == "params" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %v", k, n.Details[k]))
	}
	return label + "\n" + strings.Join(parts, "\n")
}

func fmtEdgeAttrs(id string, l graph.Line) []string {
	attrs := []string{fmt.Sprintf("id=%q", id)}
	if l.Input.Param != "" || l.Output.Param != "" {
		attrs = append(attrs, fmt.Sprintf("taillabel=%q", l.Input.Param), fmt.Sprintf("headlabel=%q", l.Output.Param))
	}
	if l.Type != graph.LineStraight {
		attrs = append(attrs, "style=dashed")
	}
	return attrs
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
