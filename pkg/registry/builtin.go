package registry

import (
	"github.com/matzehuels/vgraph/pkg/graph"
	"github.com/matzehuels/vgraph/pkg/route"
)

// UnknownNodeType is the node type every unresolved node falls back to.
const UnknownNodeType = "unknown"

// Template elements written by the built-in line types.
const (
	ElementPath    = "path"
	ElementPolygon = "polygon"
)

// Seed installs the built-in types into the wildcard flavor:
//
//	node  *        -> unknown (same descriptor)
//	line  straight
//	line  curve
//	line  *        -> curve (same descriptor)
//	filter lineFilter = MatchParamTypes
//
// Seed overwrites earlier wildcard registrations of these names.
func (r *Registry) Seed() {
	r.RegisterNode(Wildcard, UnknownNodeType, UnknownNode())
	r.RegisterNode(Wildcard, Wildcard, r.QueryNode(Wildcard, UnknownNodeType))

	r.RegisterLine(Wildcard, graph.LineStraight, StraightLine())
	r.RegisterLine(Wildcard, graph.LineCurve, CurveLine())
	r.RegisterLine(Wildcard, Wildcard, r.QueryLine(Wildcard, graph.LineCurve))

	r.RegisterFilter(Wildcard, Filters{LineFilter: MatchParamTypes})
}

// UnknownNode returns the placeholder descriptor for nodes of unknown type.
func UnknownNode() *NodeType {
	return &NodeType{
		Template: `<div>Unknown</div>`,
		Style:    `div { background: #77777799; color: #eee; padding: 6px 12px; }`,
		OnInit:   func(...any) {},
	}
}

// StraightLine returns the descriptor of a straight line with a midpoint arrow.
func StraightLine() *LineType {
	return &LineType{
		Template: `<path d=""></path><polygon points=""></polygon>`,
		Style: `g[type="straight"] > path, g[type="straight"] > polygon { fill: none; stroke: #fafafa; stroke-width: 2px; }
g[type="straight"] > polygon { fill: #fafafa; }`,
		UpdatePath: func(t Target, _ float64, c route.Connect) {
			s := route.Straight(c.X1, c.Y1, c.X2, c.Y2)
			t.SetAttribute(ElementPath, "d", s.D())
			t.SetAttribute(ElementPolygon, "points", s.Points())
			t.SetAttribute(ElementPolygon, "style", s.Transform())
		},
		Extent: func(_ float64, c route.Connect) (route.Point, route.Point) {
			return route.Straight(c.X1, c.Y1, c.X2, c.Y2).Bounds()
		},
	}
}

// CurveLine returns the descriptor of an animated, direction-aware cubic line.
func CurveLine() *LineType {
	return &LineType{
		Template: `<path d=""></path>`,
		Style: `@keyframes strokeMove { from { stroke-dashoffset: 360; } to { stroke-dashoffset: 0; } }
g[type="curve"] > path { fill: none; stroke: #fafafa; stroke-width: 2px; stroke-dasharray: 20, 5, 5, 5, 5, 5; animation: strokeMove 30s linear infinite; }`,
		UpdatePath: func(t Target, scale float64, c route.Connect) {
			t.SetAttribute(ElementPath, "d", route.Curve(c, scale).D())
		},
		Extent: func(scale float64, c route.Connect) (route.Point, route.Point) {
			return route.Curve(c, scale).Bounds()
		},
	}
}

// MatchParamTypes rejects a line only when both ports declare a type and the
// types differ. Missing ports and untyped ports are accepted.
func MatchParamTypes(_ map[string]graph.Node, _ map[string]graph.Line, _ graph.Line, input, output *graph.Param) bool {
	if input == nil || output == nil || input.Type == "" || output.Type == "" {
		return true
	}
	return input.Type == output.Type
}

// StrictParamTypes requires both ports to be present, typed, and equal.
func StrictParamTypes(_ map[string]graph.Node, _ map[string]graph.Line, _ graph.Line, input, output *graph.Param) bool {
	if input == nil || output == nil || input.Type == "" || output.Type == "" {
		return false
	}
	return input.Type == output.Type
}
