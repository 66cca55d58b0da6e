package probe

import (
	"github.com/matzehuels/vgraph/pkg/graph"
	"github.com/matzehuels/vgraph/pkg/route"
)

// Layout sizes used by FromDocument, in graph units at scale 1.
const (
	NodeWidth    = 160.0
	HeaderHeight = 32.0
	RowHeight    = 24.0
	PortSize     = 12.0
	MinHeight    = 48.0
)

// Size returns the box size of a node with the given ports at scale 1.
// Inputs stack on the left edge and outputs on the right; ports with an
// explicit up or down role sit on that edge instead and do not add rows.
func Size(params []graph.Param) (w, h float64) {
	left, right, _, _ := sides(params)
	rows := max(len(left), len(right))
	return NodeWidth, max(MinHeight, HeaderHeight+float64(rows)*RowHeight)
}

// FromDocument lays out every node of doc at its position and returns the
// resulting tree. Boxes are in screen space, so each is scaled by doc.Scale.
func FromDocument(doc *graph.Document) *Tree {
	t := NewTree()
	scale := doc.Scale
	if scale <= 0 {
		scale = 1
	}
	for _, id := range doc.NodeIDs() {
		n := doc.Nodes[id]
		params := n.Params()
		w, h := Size(params)
		nb := Box{
			X: (n.Position.X - w/2) * scale,
			Y: (n.Position.Y - h/2) * scale,
			W: w * scale,
			H: h * scale,
		}
		t.AddNode(id, nb)

		left, right, top, bottom := sides(params)
		for i, p := range left {
			t.place(id, p, nb.X, nb.Y+(HeaderHeight+RowHeight*(float64(i)+0.5))*scale, scale)
		}
		for i, p := range right {
			t.place(id, p, nb.X+nb.W, nb.Y+(HeaderHeight+RowHeight*(float64(i)+0.5))*scale, scale)
		}
		for i, p := range top {
			t.place(id, p, nb.X+nb.W*float64(i+1)/float64(len(top)+1), nb.Y, scale)
		}
		for i, p := range bottom {
			t.place(id, p, nb.X+nb.W*float64(i+1)/float64(len(bottom)+1), nb.Y+nb.H, scale)
		}
	}
	return t
}

// place adds a port centred on (cx, cy). Ports come from sides, which drops
// duplicate names, so AddPort cannot fail here.
func (t *Tree) place(node string, p graph.Param, cx, cy, scale float64) {
	s := PortSize * scale
	_ = t.AddPort(node, p, Box{X: cx - s/2, Y: cy - s/2, W: s, H: s})
}

// sides partitions ports by the edge they are drawn on. A name declared more
// than once keeps its first declaration only.
func sides(params []graph.Param) (left, right, top, bottom []graph.Param) {
	seen := make(map[string]bool, len(params))
	for _, p := range params {
		if seen[p.Name] {
			continue
		}
		seen[p.Name] = true
		switch route.ParseRole(p.Role) {
		case route.RoleUp:
			top = append(top, p)
		case route.RoleDown:
			bottom = append(bottom, p)
		case route.RoleLeft:
			left = append(left, p)
		case route.RoleRight:
			right = append(right, p)
		default:
			if p.Direction == graph.DirectionOutput {
				right = append(right, p)
			} else {
				left = append(left, p)
			}
		}
	}
	return left, right, top, bottom
}
