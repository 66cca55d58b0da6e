package graph

import (
	"maps"
	"slices"

	"github.com/matzehuels/vgraph/pkg/errors"
	"github.com/matzehuels/vgraph/pkg/ident"
)

// =============================================================================
// Constants
// =============================================================================

// CurrentVersion is the newest document format version this package reads.
const CurrentVersion = 1

// Render modes for the graph background.
const (
	RenderPure = "pure" // Flat background color
	RenderMesh = "mesh" // Grid pattern
)

// Port directions.
const (
	DirectionInput  = "input"
	DirectionOutput = "output"
)

// Built-in line types.
const (
	LineCurve    = "curve"
	LineStraight = "straight"
)

// detailParams is the node details key that declares the node's ports.
const detailParams = "params"

// =============================================================================
// Document
// =============================================================================

// Document is the persisted graph file.
type Document struct {
	Version int             `json:"version"`
	Scale   float64         `json:"scale"` // Zoom factor, also used for curve clearance
	Option  Option          `json:"option"`
	Nodes   map[string]Node `json:"nodes"`
	Lines   map[string]Line `json:"lines"`
}

// Option configures how the graph background is drawn.
type Option struct {
	Type            string  `json:"type" toml:"type"` // RenderPure or RenderMesh
	MeshSize        float64 `json:"meshSize,omitempty" toml:"mesh_size"`
	OriginPoint     bool    `json:"originPoint,omitempty" toml:"origin_point"`
	OriginColor     string  `json:"originColor,omitempty" toml:"origin_color"`
	MeshColor       string  `json:"meshColor,omitempty" toml:"mesh_color"`
	BackgroundColor string  `json:"backgroundColor,omitempty" toml:"background_color"`
}

// DefaultOption returns the option used by flavors that never registered one.
func DefaultOption() Option {
	return Option{Type: RenderPure}
}

// Node is a graph node placed at Position (its centre, in graph units).
type Node struct {
	Type     string         `json:"type"`
	Position Position       `json:"position"`
	Details  map[string]any `json:"details,omitempty"`
}

// Position is a point in graph units.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Line connects the Input endpoint (where the line starts) to the Output endpoint.
type Line struct {
	Type    string         `json:"type"`
	Details map[string]any `json:"details,omitempty"`
	Input   Endpoint       `json:"input"`
	Output  Endpoint       `json:"output"`
}

// Endpoint names a node and, optionally, one of its ports.
type Endpoint struct {
	Node  string `json:"node"`
	Param string `json:"param,omitempty"`
}

// Param is the metadata of a node port as reported by the rendered element tree.
// Empty fields mean the attribute is absent.
type Param struct {
	Name      string `json:"name"`
	Direction string `json:"direction,omitempty"`
	Type      string `json:"type,omitempty"`
	Role      string `json:"role,omitempty"`
}

// New returns an empty document at the current version.
func New() *Document {
	return &Document{
		Version: CurrentVersion,
		Scale:   1,
		Option:  DefaultOption(),
		Nodes:   map[string]Node{},
		Lines:   map[string]Line{},
	}
}

// AddNode stores n under a fresh identifier from gen and returns the identifier.
func (d *Document) AddNode(gen ident.Generator, n Node) string {
	if d.Nodes == nil {
		d.Nodes = map[string]Node{}
	}
	id := gen.Next()
	d.Nodes[id] = n
	return id
}

// AddLine stores l under a fresh identifier from gen.
// Both endpoints must reference nodes already in the document.
func (d *Document) AddLine(gen ident.Generator, l Line) (string, error) {
	for _, ep := range []Endpoint{l.Input, l.Output} {
		if _, ok := d.Nodes[ep.Node]; !ok {
			return "", errors.New(errors.ErrCodeInvalidDocument, "line endpoint references unknown node %q", ep.Node)
		}
	}
	if d.Lines == nil {
		d.Lines = map[string]Line{}
	}
	id := gen.Next()
	d.Lines[id] = l
	return id, nil
}

// NodeIDs returns node identifiers in sorted order.
func (d *Document) NodeIDs() []string {
	return slices.Sorted(maps.Keys(d.Nodes))
}

// LineIDs returns line identifiers in sorted order.
func (d *Document) LineIDs() []string {
	return slices.Sorted(maps.Keys(d.Lines))
}

// Params returns the ports declared in the node's "params" detail.
//
// Each entry is an object with "name" and optional "direction", "type" and
// "role" strings. Entries without a name are skipped.
func (n Node) Params() []Param {
	switch v := n.Details[detailParams].(type) {
	case []Param:
		return v
	case []any:
		out := make([]Param, 0, len(v))
		for _, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			p := Param{
				Name:      str(m["name"]),
				Direction: str(m["direction"]),
				Type:      str(m["type"]),
				Role:      str(m["role"]),
			}
			if p.Name == "" {
				continue
			}
			out = append(out, p)
		}
		return out
	default:
		return nil
	}
}

func str(v any) string {
	s, _ := v.(string)
	return s
}
