package registry

import (
	"github.com/matzehuels/vgraph/pkg/graph"
	"github.com/matzehuels/vgraph/pkg/route"
)

// Wildcard is both the fallback flavor and the fallback type.
const Wildcard = "*"

// Kind is a registrable category.
type Kind string

const (
	KindNode   Kind = "node"
	KindLine   Kind = "line"
	KindOption Kind = "option"
	KindFilter Kind = "filter"
)

// NodeType describes how a node type renders.
// Template and Style are opaque to the registry.
type NodeType struct {
	Template string
	Style    string
	OnInit   func(args ...any)
}

// Init invokes the OnInit hook, if any, with the caller's arguments.
func (n *NodeType) Init(args ...any) {
	if n.OnInit != nil {
		n.OnInit(args...)
	}
}

// Target receives the geometry a line type produces. Element names the
// template element to update ("path", "polygon", ...).
type Target interface {
	SetAttribute(element, name, value string)
}

// LineType describes how a line type renders and computes its geometry.
// Extent, when set, reports the box the geometry written by UpdatePath
// occupies for the same inputs.
type LineType struct {
	Template   string
	Style      string
	UpdatePath func(t Target, scale float64, c route.Connect)
	Extent     func(scale float64, c route.Connect) (lo, hi route.Point)
}

// Update writes the line's geometry into t.
func (l *LineType) Update(t Target, scale float64, c route.Connect) {
	if l.UpdatePath != nil {
		l.UpdatePath(t, scale, c)
	}
}

// Bounds returns the box the line occupies. Without an Extent it is the box
// spanned by the two endpoints.
func (l *LineType) Bounds(scale float64, c route.Connect) (lo, hi route.Point) {
	if l.Extent != nil {
		return l.Extent(scale, c)
	}
	return route.Point{X: min(c.X1, c.X2), Y: min(c.Y1, c.Y2)}, route.Point{X: max(c.X1, c.X2), Y: max(c.Y1, c.Y2)}
}

// FilterName names a hook in a flavor's filter set.
type FilterName string

// LineFilterName is the hook deciding whether a line may connect two ports.
const LineFilterName FilterName = "lineFilter"

// LineFilter reports whether line is permitted. input and output are the
// metadata of the connected ports, nil when the line has no port on that
// side or the port is not rendered.
type LineFilter func(nodes map[string]graph.Node, lines map[string]graph.Line, line graph.Line, input, output *graph.Param) bool

// Filters is a flavor's set of hooks. Nil hooks are unset.
type Filters struct {
	LineFilter LineFilter
}

func (f Filters) get(name FilterName) LineFilter {
	switch name {
	case LineFilterName:
		return f.LineFilter
	default:
		return nil
	}
}

// merge overwrites the hooks set in other and keeps the rest.
func (f *Filters) merge(other Filters) {
	if other.LineFilter != nil {
		f.LineFilter = other.LineFilter
	}
}
