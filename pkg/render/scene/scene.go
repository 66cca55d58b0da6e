package scene

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"math"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/vgraph/pkg/errors"
	"github.com/matzehuels/vgraph/pkg/graph"
	"github.com/matzehuels/vgraph/pkg/observability"
	"github.com/matzehuels/vgraph/pkg/probe"
	"github.com/matzehuels/vgraph/pkg/registry"
	"github.com/matzehuels/vgraph/pkg/route"
)

// Defaults for background options left empty.
const (
	DefaultPadding         = 40.0
	DefaultMeshSize        = 20.0
	DefaultBackgroundColor = "#2b2b2b"
	DefaultMeshColor       = "#3c3c3c"
	DefaultOriginColor     = "#8a8a8a"
	originRadius           = 4.0
)

// Tree locates ports and their offsets in the rendered nodes.
type Tree interface {
	probe.ParamLocator
	probe.OffsetProbe
}

// Result is a rendered scene.
type Result struct {
	SVG []byte

	// Drawn lists the drawn line ids, sorted.
	Drawn []string
	// Rejected lists lines refused by the flavor's line filter.
	Rejected []string
	// Unplaced lists lines with a port that the tree does not contain.
	Unplaced []string
}

// Option configures Render.
type Option func(*renderer)

// WithFlavor selects the flavor types are resolved in. Defaults to "*".
func WithFlavor(flavor string) Option { return func(r *renderer) { r.flavor = flavor } }

// WithTree sets the port tree. Defaults to probe.FromDocument(doc).
func WithTree(t Tree) Option { return func(r *renderer) { r.tree = t } }

// WithLogger logs skipped lines at debug level.
func WithLogger(l *log.Logger) Option { return func(r *renderer) { r.logger = l } }

// WithPadding sets the margin around the content, in graph units.
func WithPadding(p float64) Option { return func(r *renderer) { r.padding = p } }

type renderer struct {
	flavor  string
	tree    Tree
	logger  *log.Logger
	padding float64

	doc    *graph.Document
	reg    *registry.Registry
	styles []string
	seen   map[string]bool
	extent [][2]route.Point // boxes of drawn lines
}

// Render draws doc as an SVG document using the types registered in reg.
//
// The background follows the document's option; a document with the default
// option uses the flavor's registered option instead. Each node is drawn with
// its resolved node type and each line with its resolved line type. Lines the
// flavor's line filter rejects are skipped, as are lines whose ports cannot
// be located; both are reported in the result, not as errors.
func Render(ctx context.Context, doc *graph.Document, reg *registry.Registry, opts ...Option) (res *Result, err error) {
	if doc == nil || reg == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "scene: nil document or registry")
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	r := &renderer{
		flavor:  registry.Wildcard,
		padding: DefaultPadding,
		doc:     doc,
		reg:     reg,
		seen:    map[string]bool{},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.tree == nil {
		r.tree = probe.FromDocument(doc)
	}

	hooks := observability.Render()
	hooks.OnRenderStart(ctx, r.flavor, len(doc.Nodes), len(doc.Lines))
	start := time.Now()
	defer func() {
		if err != nil {
			res = nil
		}
		hooks.OnRenderComplete(ctx, r.flavor, time.Since(start), err)
	}()
	defer errors.Recover(&err)

	res = &Result{}
	var nodes, lines bytes.Buffer

	for _, id := range doc.LineIDs() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r.drawLine(ctx, &lines, res, id)
	}
	for _, id := range doc.NodeIDs() {
		r.drawNode(&nodes, id)
	}

	opt := doc.Option
	if opt == graph.DefaultOption() {
		opt = reg.QueryOption(r.flavor)
	}
	minX, minY, w, h := r.bounds(opt)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s" width="%s" height="%s">`+"\n",
		num(minX), num(minY), num(w), num(h), num(w*doc.Scale), num(h*doc.Scale))
	r.writeStyle(&buf)
	writeBackground(&buf, opt, minX, minY, w, h)
	buf.WriteString(`  <g id="lines">` + "\n")
	buf.Write(lines.Bytes())
	buf.WriteString("  </g>\n")
	buf.WriteString(`  <g id="nodes">` + "\n")
	buf.Write(nodes.Bytes())
	buf.WriteString("  </g>\n")
	buf.WriteString("</svg>\n")

	res.SVG = buf.Bytes()
	return res, nil
}

// =============================================================================
// Nodes
// =============================================================================

func (r *renderer) drawNode(buf *bytes.Buffer, id string) {
	n := r.doc.Nodes[id]
	d := r.reg.QueryNode(r.flavor, n.Type)
	d.Init(id, n)
	r.addStyle(d.Style)

	w, h := probe.Size(n.Params())
	fmt.Fprintf(buf, `    <g class="node" id="%s" type="%s">`+"\n", html.EscapeString(id), html.EscapeString(n.Type))
	fmt.Fprintf(buf, `      <foreignObject x="%s" y="%s" width="%s" height="%s">`,
		num(n.Position.X-w/2), num(n.Position.Y-h/2), num(w), num(h))
	fmt.Fprintf(buf, `<div xmlns="http://www.w3.org/1999/xhtml">%s</div></foreignObject>`+"\n", d.Template)
	buf.WriteString("    </g>\n")
}

// =============================================================================
// Lines
// =============================================================================

func (r *renderer) drawLine(ctx context.Context, buf *bytes.Buffer, res *Result, id string) {
	line := r.doc.Lines[id]

	in := r.param(line.Input)
	out := r.param(line.Output)
	if !r.reg.AllowLine(r.flavor, r.doc, line, in, out) {
		res.Rejected = append(res.Rejected, id)
		observability.Render().OnLineRejected(ctx, r.flavor, id)
		r.debug("line rejected", "line", id, "input", line.Input.Node, "output", line.Output.Node)
		return
	}

	p1, r1, ok1 := r.endpoint(line.Input)
	p2, r2, ok2 := r.endpoint(line.Output)
	if !ok1 || !ok2 {
		res.Unplaced = append(res.Unplaced, id)
		r.debug("line unplaced", "line", id)
		return
	}

	axis := preferredAxis(p1, p2)
	c := route.Connect{
		X1: p1.X, Y1: p1.Y,
		X2: p2.X, Y2: p2.Y,
		R1: r1, R2: r2,
		D1: axis, D2: axis,
	}

	d := r.reg.QueryLine(r.flavor, line.Type)
	r.addStyle(d.Style)

	el := newElement()
	d.Update(el, r.doc.Scale, c)
	lo, hi := d.Bounds(r.doc.Scale, c)
	r.extent = append(r.extent, [2]route.Point{lo, hi})

	fmt.Fprintf(buf, `    <g class="line" id="%s" type="%s">%s</g>`+"\n",
		html.EscapeString(id), html.EscapeString(line.Type), el.fill(d.Template))
	res.Drawn = append(res.Drawn, id)
}

// param returns the port metadata of ep, or nil when ep has no port or the
// port is not in the tree.
func (r *renderer) param(ep graph.Endpoint) *graph.Param {
	if ep.Param == "" {
		return nil
	}
	p, ok := r.tree.Param(ep.Node, ep.Param)
	if !ok {
		return nil
	}
	return &p
}

// endpoint returns the position and role of ep in graph units. An endpoint
// without a port attaches to the node centre in every direction.
func (r *renderer) endpoint(ep graph.Endpoint) (route.Point, route.Role, bool) {
	n := r.doc.Nodes[ep.Node]
	at := route.Point{X: n.Position.X, Y: n.Position.Y}
	if ep.Param == "" {
		return at, route.RoleAll, true
	}
	off, ok := r.tree.Offset(ep.Node, ep.Param, r.doc.Scale)
	if !ok {
		return route.Point{}, "", false
	}
	return route.Point{X: at.X + off.X, Y: at.Y + off.Y}, off.Role, true
}

// preferredAxis picks the dominant direction between two endpoints.
func preferredAxis(a, b route.Point) route.Axis {
	if math.Abs(b.Y-a.Y) > math.Abs(b.X-a.X) {
		return route.Vertical
	}
	return route.Horizontal
}

// =============================================================================
// Frame
// =============================================================================

func (r *renderer) bounds(opt graph.Option) (minX, minY, w, h float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	grow := func(x0, y0, x1, y1 float64) {
		minX, minY = min(minX, x0), min(minY, y0)
		maxX, maxY = max(maxX, x1), max(maxY, y1)
	}

	for _, n := range r.doc.Nodes {
		w, h := probe.Size(n.Params())
		grow(n.Position.X-w/2, n.Position.Y-h/2, n.Position.X+w/2, n.Position.Y+h/2)
	}
	for _, e := range r.extent {
		grow(e[0].X, e[0].Y, e[1].X, e[1].Y)
	}
	if opt.OriginPoint || math.IsInf(minX, 1) {
		grow(0, 0, 0, 0)
	}

	p := r.padding
	return minX - p, minY - p, maxX - minX + 2*p, maxY - minY + 2*p
}

func (r *renderer) addStyle(s string) {
	if s == "" || r.seen[s] {
		return
	}
	r.seen[s] = true
	r.styles = append(r.styles, s)
}

func (r *renderer) writeStyle(buf *bytes.Buffer) {
	if len(r.styles) == 0 {
		return
	}
	buf.WriteString("  <style>\n")
	for _, s := range r.styles {
		buf.WriteString(s)
		buf.WriteString("\n")
	}
	buf.WriteString("  </style>\n")
}

func writeBackground(buf *bytes.Buffer, opt graph.Option, x, y, w, h float64) {
	bg := or(opt.BackgroundColor, DefaultBackgroundColor)
	frame := fmt.Sprintf(`x="%s" y="%s" width="%s" height="%s"`, num(x), num(y), num(w), num(h))

	fmt.Fprintf(buf, `  <rect class="background" %s fill="%s"/>`+"\n", frame, html.EscapeString(bg))
	if opt.Type == graph.RenderMesh {
		size := opt.MeshSize
		if size <= 0 {
			size = DefaultMeshSize
		}
		s := num(size)
		fmt.Fprintf(buf, `  <defs><pattern id="mesh" width="%s" height="%s" patternUnits="userSpaceOnUse">`, s, s)
		fmt.Fprintf(buf, `<path d="M%s,0 L0,0 L0,%s" fill="none" stroke="%s" stroke-width="1"/></pattern></defs>`+"\n",
			s, s, html.EscapeString(or(opt.MeshColor, DefaultMeshColor)))
		fmt.Fprintf(buf, `  <rect class="mesh" %s fill="url(#mesh)"/>`+"\n", frame)
	}
	if opt.OriginPoint {
		fmt.Fprintf(buf, `  <circle class="origin" cx="0" cy="0" r="%s" fill="%s"/>`+"\n",
			num(originRadius), html.EscapeString(or(opt.OriginColor, DefaultOriginColor)))
	}
}

func (r *renderer) debug(msg string, kv ...any) {
	if r.logger != nil {
		r.logger.Debug(msg, append([]any{"flavor", r.flavor}, kv...)...)
	}
}

func or(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func num(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
