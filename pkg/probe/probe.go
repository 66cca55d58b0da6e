package probe

import (
	"github.com/matzehuels/vgraph/pkg/errors"
	"github.com/matzehuels/vgraph/pkg/graph"
	"github.com/matzehuels/vgraph/pkg/route"
)

// ParamLocator returns the metadata of a node's port.
type ParamLocator interface {
	Param(node, param string) (graph.Param, bool)
}

// OffsetProbe returns a port's position relative to its node.
type OffsetProbe interface {
	Offset(node, param string, scale float64) (Offset, bool)
}

// Offset is a port centre minus its node centre, divided by the zoom scale.
type Offset struct {
	X, Y float64
	Role route.Role
}

// Box is an axis-aligned rectangle in screen space. X and Y are the top-left corner.
type Box struct {
	X, Y, W, H float64
}

// Center returns the centre of the box.
func (b Box) Center() route.Point {
	return route.Point{X: b.X + b.W/2, Y: b.Y + b.H/2}
}

// Port is a rendered port element.
type Port struct {
	Param graph.Param
	Box   Box
}

// Element is a rendered node element and its ports.
type Element struct {
	Box   Box
	Ports []Port
}

func (e *Element) port(name string) (Port, bool) {
	for _, p := range e.Ports {
		if p.Param.Name == name {
			return p, true
		}
	}
	return Port{}, false
}

// Tree is a set of rendered node elements keyed by node id.
// A Tree is not safe for concurrent mutation; reads may run concurrently.
type Tree struct {
	elements map[string]*Element
}

var (
	_ ParamLocator = (*Tree)(nil)
	_ OffsetProbe  = (*Tree)(nil)
)

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{elements: map[string]*Element{}}
}

// AddNode places a node element. Re-adding a node replaces its box and keeps its ports.
func (t *Tree) AddNode(node string, box Box) {
	if e, ok := t.elements[node]; ok {
		e.Box = box
		return
	}
	t.elements[node] = &Element{Box: box}
}

// AddPort places a port element inside node. The node must already exist
// and the port must have a name unique within the node.
func (t *Tree) AddPort(node string, p graph.Param, box Box) error {
	e, ok := t.elements[node]
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "probe: node %q not in tree", node)
	}
	if p.Name == "" {
		return errors.New(errors.ErrCodeInvalidInput, "probe: port of node %q has no name", node)
	}
	if _, dup := e.port(p.Name); dup {
		return errors.New(errors.ErrCodeInvalidInput, "probe: duplicate port %q on node %q", p.Name, node)
	}
	e.Ports = append(e.Ports, Port{Param: p, Box: box})
	return nil
}

// Element returns the element of node.
func (t *Tree) Element(node string) (*Element, bool) {
	e, ok := t.elements[node]
	return e, ok
}

// Param returns the metadata of port param on node.
func (t *Tree) Param(node, param string) (graph.Param, bool) {
	e, ok := t.elements[node]
	if !ok {
		return graph.Param{}, false
	}
	p, ok := e.port(param)
	if !ok {
		return graph.Param{}, false
	}
	return p.Param, true
}

// Offset returns the offset of port param from the centre of node.
// Scale must be positive; the boxes are in screen space, so dividing by the
// scale yields graph units.
func (t *Tree) Offset(node, param string, scale float64) (Offset, bool) {
	e, ok := t.elements[node]
	if !ok || scale <= 0 {
		return Offset{}, false
	}
	p, ok := e.port(param)
	if !ok {
		return Offset{}, false
	}
	pc, nc := p.Box.Center(), e.Box.Center()
	return Offset{
		X:    (pc.X - nc.X) / scale,
		Y:    (pc.Y - nc.Y) / scale,
		Role: route.ParseRole(p.Param.Role),
	}, true
}
