package registry

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/matzehuels/vgraph/pkg/errors"
	"github.com/matzehuels/vgraph/pkg/graph"
	"github.com/matzehuels/vgraph/pkg/route"
)

// recordTarget captures attributes written by a line type.
type recordTarget map[string]string

func (t recordTarget) SetAttribute(element, name, value string) {
	t[element+"."+name] = value
}

func TestSeed_Aliases(t *testing.T) {
	r := NewDefault()

	assert.Same(t, r.QueryNode(Wildcard, UnknownNodeType), r.QueryNode(Wildcard, Wildcard))
	assert.Same(t, r.QueryLine(Wildcard, graph.LineCurve), r.QueryLine(Wildcard, Wildcard))
	assert.NotSame(t, r.QueryLine(Wildcard, graph.LineCurve), r.QueryLine(Wildcard, graph.LineStraight))
	assert.Equal(t, `<div>Unknown</div>`, r.QueryNode(Wildcard, UnknownNodeType).Template)
}

func TestQuery_UnregisteredFlavorFallsBack(t *testing.T) {
	r := NewDefault()

	require.NotPanics(t, func() {
		assert.Same(t, r.QueryNode(Wildcard, Wildcard), r.QueryNode("never-seen", "anything"))
		assert.Same(t, r.QueryLine(Wildcard, Wildcard), r.QueryLine("never-seen", "anything"))
		assert.Same(t, r.QueryLine(Wildcard, graph.LineStraight), r.QueryLine("never-seen", graph.LineStraight))
		assert.Equal(t, graph.DefaultOption(), r.QueryOption("also-never-seen"))
	})
}

func TestQuery_Precedence(t *testing.T) {
	r := NewDefault()
	texture := &NodeType{Template: "<div>Texture</div>"}
	r.RegisterNode("shader", "texture", texture)

	assert.Same(t, texture, r.QueryNode("shader", "texture"))
	// Another flavor is unaffected.
	assert.Same(t, r.QueryNode(Wildcard, Wildcard), r.QueryNode("workflow", "texture"))
	// Unknown types in the registering flavor still fall back.
	assert.Same(t, r.QueryNode(Wildcard, Wildcard), r.QueryNode("shader", "mix"))
}

func TestQuery_WildcardExactTypeBeatsWildcardType(t *testing.T) {
	r := NewDefault()
	comment := &NodeType{Template: "<div>Comment</div>"}
	r.RegisterNode(Wildcard, "comment", comment)

	// Flavor exists but lacks the type.
	r.RegisterNode("shader", "texture", &NodeType{})
	assert.Same(t, comment, r.QueryNode("shader", "comment"))
	// Flavor does not exist at all.
	assert.Same(t, comment, r.QueryNode("workflow", "comment"))
}

func TestQuery_FlavorWildcardTypeIsNotConsulted(t *testing.T) {
	r := NewDefault()
	flavorDefault := &LineType{}
	r.RegisterLine("shader", Wildcard, flavorDefault)

	// Only the wildcard flavor provides defaults.
	assert.Same(t, r.QueryLine(Wildcard, Wildcard), r.QueryLine("shader", "flow"))
	assert.Same(t, flavorDefault, r.QueryLine("shader", Wildcard))
}

func TestRegister_Idempotent(t *testing.T) {
	r := NewDefault()
	d := &NodeType{Template: "<div>Once</div>"}

	r.RegisterNode("f", "t", d)
	r.RegisterNode("f", "t", d)
	r.RegisterNode("f", "t", d)

	assert.Same(t, d, r.QueryNode("f", "t"))
	assert.Equal(t, []string{"t"}, r.NodeTypes("f"))
}

func TestRegister_Overwrites(t *testing.T) {
	r := NewDefault()
	first := &LineType{Template: "first"}
	second := &LineType{Template: "second"}

	r.RegisterLine("f", "flow", first)
	r.RegisterLine("f", "flow", second)

	assert.Same(t, second, r.QueryLine("f", "flow"))
}

func TestRegister_NilDescriptorPanics(t *testing.T) {
	r := NewDefault()
	assert.Panics(t, func() { r.RegisterNode("f", "t", nil) })
	assert.Panics(t, func() { r.RegisterLine("f", "t", nil) })
}

func TestQuery_UnseededPanics(t *testing.T) {
	r := New()
	r.RegisterNode("shader", "texture", &NodeType{})

	defer func() {
		rec := recover()
		require.NotNil(t, rec, "QueryNode on an unseeded registry should panic")
		err, ok := rec.(error)
		require.True(t, ok, "panic value should be an error, got %T", rec)
		assert.True(t, errors.Is(err, errors.ErrCodeUnresolvedType))

		// The registry stays usable after the panic.
		r.Seed()
		assert.NotNil(t, r.QueryNode("shader", "mix"))
	}()
	r.QueryNode("shader", "mix")
}

func TestQuery_WildcardWithoutDefaultPanics(t *testing.T) {
	r := New()
	r.RegisterLine(Wildcard, graph.LineCurve, CurveLine())

	assert.NotPanics(t, func() { r.QueryLine("x", graph.LineCurve) })
	assert.Panics(t, func() { r.QueryLine("x", "flow") })
}

func TestOption(t *testing.T) {
	r := NewDefault()

	assert.Equal(t, graph.Option{Type: graph.RenderPure}, r.QueryOption("shader"))
	assert.Contains(t, r.Flavors(), "shader", "QueryOption materializes the flavor")

	mesh := graph.Option{Type: graph.RenderMesh, MeshSize: 20, MeshColor: "#333"}
	r.RegisterOption("shader", mesh)
	assert.Equal(t, mesh, r.QueryOption("shader"))
	assert.Equal(t, graph.DefaultOption(), r.QueryOption(Wildcard))
}

func TestDefaultLineFilter(t *testing.T) {
	r := NewDefault()
	filter := r.QueryFilter(Wildcard, LineFilterName)
	require.NotNil(t, filter)

	num := &graph.Param{Name: "a", Type: "number"}
	num2 := &graph.Param{Name: "b", Type: "number"}
	str := &graph.Param{Name: "c", Type: "string"}
	untyped := &graph.Param{Name: "d"}

	tests := []struct {
		name          string
		input, output *graph.Param
		want          bool
	}{
		{"different types", num, str, false},
		{"same types", num, num2, true},
		{"input absent", nil, str, true},
		{"output absent", num, nil, true},
		{"both absent", nil, nil, true},
		{"input untyped", untyped, str, true},
		{"output untyped", num, untyped, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, filter(nil, nil, graph.Line{}, tt.input, tt.output))
		})
	}
}

func TestStrictParamTypes(t *testing.T) {
	num := &graph.Param{Type: "number"}
	assert.True(t, StrictParamTypes(nil, nil, graph.Line{}, num, num))
	assert.False(t, StrictParamTypes(nil, nil, graph.Line{}, num, &graph.Param{}))
	assert.False(t, StrictParamTypes(nil, nil, graph.Line{}, nil, num))
	assert.False(t, StrictParamTypes(nil, nil, graph.Line{}, num, &graph.Param{Type: "string"}))
}

func TestFilter_FallbackAndMerge(t *testing.T) {
	r := NewDefault()
	deny := func(map[string]graph.Node, map[string]graph.Line, graph.Line, *graph.Param, *graph.Param) bool {
		return false
	}

	doc := graph.New()
	num := &graph.Param{Type: "number"}

	// Unregistered flavor uses the wildcard filter.
	assert.True(t, r.AllowLine("shader", doc, graph.Line{}, num, num))

	r.RegisterFilter("shader", Filters{LineFilter: deny})
	assert.False(t, r.AllowLine("shader", doc, graph.Line{}, num, num))
	assert.True(t, r.AllowLine("workflow", doc, graph.Line{}, num, num))

	// Merging an empty set keeps the existing hook.
	r.RegisterFilter("shader", Filters{})
	assert.False(t, r.AllowLine("shader", doc, graph.Line{}, num, num))

	assert.Nil(t, r.QueryFilter("shader", "unknownHook"))
}

func TestAllowLine_NoFilter(t *testing.T) {
	r := New()
	assert.True(t, r.AllowLine("any", graph.New(), graph.Line{}, &graph.Param{Type: "a"}, &graph.Param{Type: "b"}))
}

func TestAllowLine_PassesDocument(t *testing.T) {
	r := NewDefault()
	doc := graph.New()
	doc.Nodes["a"] = graph.Node{Type: "number"}
	doc.Lines["l1"] = graph.Line{Type: graph.LineCurve}

	var gotNodes, gotLines int
	r.RegisterFilter("counting", Filters{LineFilter: func(nodes map[string]graph.Node, lines map[string]graph.Line, _ graph.Line, _, _ *graph.Param) bool {
		gotNodes, gotLines = len(nodes), len(lines)
		return true
	}})

	assert.True(t, r.AllowLine("counting", doc, doc.Lines["l1"], nil, nil))
	assert.Equal(t, 1, gotNodes)
	assert.Equal(t, 1, gotLines)
}

func TestAllowLine_NilDocument(t *testing.T) {
	r := NewDefault()
	assert.NotPanics(t, func() {
		assert.True(t, r.AllowLine(Wildcard, nil, graph.Line{}, &graph.Param{Type: "a"}, &graph.Param{Type: "a"}))
		assert.False(t, r.AllowLine(Wildcard, nil, graph.Line{}, &graph.Param{Type: "a"}, &graph.Param{Type: "b"}))
	})

	var gotNil bool
	r.RegisterFilter("nil", Filters{LineFilter: func(nodes map[string]graph.Node, lines map[string]graph.Line, _ graph.Line, _, _ *graph.Param) bool {
		gotNil = nodes == nil && lines == nil
		return true
	}})
	assert.True(t, r.AllowLine("nil", nil, graph.Line{}, nil, nil))
	assert.True(t, gotNil)
}

func TestBuiltinLines(t *testing.T) {
	r := NewDefault()
	c := route.Connect{X1: 0, Y1: 0, X2: 100, Y2: 0, R1: route.RoleRight, R2: route.RoleLeft}

	straight := recordTarget{}
	r.QueryLine(Wildcard, graph.LineStraight).Update(straight, 1, c)
	assert.Equal(t, "M0,0 L100,0", straight["path.d"])
	assert.Equal(t, "50,0 56,-7 44,-7", straight["polygon.points"])
	assert.Contains(t, straight["polygon.style"], "rotate(-90deg)")

	curve := recordTarget{}
	r.QueryLine(Wildcard, graph.LineCurve).Update(curve, 1, c)
	assert.Equal(t, "M0,0 C100,0 0,0 100,0", curve["path.d"])
	assert.NotContains(t, curve, "polygon.points")

	lo, hi := r.QueryLine(Wildcard, graph.LineCurve).Bounds(1, c)
	assert.Equal(t, route.Point{X: 0, Y: 0}, lo)
	assert.Equal(t, route.Point{X: 100, Y: 0}, hi)

	lo, hi = r.QueryLine(Wildcard, graph.LineStraight).Bounds(1, c)
	assert.InDelta(t, -6, lo.Y, 1e-9)
	assert.InDelta(t, 6, hi.Y, 1e-9)

	// Without an extent the box spans the endpoints.
	lo, hi = (&LineType{}).Bounds(1, route.Connect{X1: 5, Y1: -1, X2: -5, Y2: 1})
	assert.Equal(t, route.Point{X: -5, Y: -1}, lo)
	assert.Equal(t, route.Point{X: 5, Y: 1}, hi)
}

func TestNodeInit(t *testing.T) {
	var got []any
	d := &NodeType{OnInit: func(args ...any) { got = args }}
	d.Init("n1", 42)
	assert.Equal(t, []any{"n1", 42}, got)

	// Nil hooks are no-ops.
	assert.NotPanics(t, func() { (&NodeType{}).Init("x") })
	assert.NotPanics(t, func() { (&LineType{}).Update(recordTarget{}, 1, route.Connect{}) })
}

func TestListing(t *testing.T) {
	r := NewDefault()
	r.RegisterNode("shader", "texture", &NodeType{})
	r.RegisterNode("shader", "color", &NodeType{})

	assert.Equal(t, []string{"*", "shader"}, r.Flavors())
	assert.Equal(t, []string{"color", "texture"}, r.NodeTypes("shader"))
	assert.Equal(t, []string{"*", "curve", "straight"}, r.LineTypes(Wildcard))
	assert.Nil(t, r.LineTypes("nope"))
}

func TestDefault_Singleton(t *testing.T) {
	assert.Same(t, Default(), Default())
	assert.NotNil(t, Default().QueryNode("x", "y"))
}

func TestConcurrentRegisterAndQuery(t *testing.T) {
	r := NewDefault()

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			flavor := fmt.Sprintf("flavor-%d", i%4)
			for j := range 50 {
				typ := fmt.Sprintf("type-%d", j)
				r.RegisterNode(flavor, typ, &NodeType{Template: typ})
				_ = r.QueryNode(flavor, typ)
				_ = r.QueryLine(flavor, typ)
				_ = r.QueryOption(flavor)
			}
		}()
	}
	wg.Wait()

	for i := range 4 {
		assert.Len(t, r.NodeTypes(fmt.Sprintf("flavor-%d", i)), 50)
	}
}

// TestQuery_ResolutionProperty checks resolution against a reference model.
func TestQuery_ResolutionProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		r := NewDefault()
		names := rapid.SampledFrom([]string{"a", "b", "c", Wildcard})

		model := map[[2]string]*NodeType{
			{Wildcard, UnknownNodeType}: r.QueryNode(Wildcard, UnknownNodeType),
			{Wildcard, Wildcard}:        r.QueryNode(Wildcard, Wildcard),
		}

		steps := rapid.IntRange(0, 20).Draw(rt, "steps")
		for range steps {
			flavor := names.Draw(rt, "flavor")
			typ := names.Draw(rt, "type")
			d := &NodeType{Template: flavor + "/" + typ}
			r.RegisterNode(flavor, typ, d)
			model[[2]string{flavor, typ}] = d
		}

		flavor := names.Draw(rt, "queryFlavor")
		typ := names.Draw(rt, "queryType")

		want, ok := model[[2]string{flavor, typ}]
		if !ok {
			want, ok = model[[2]string{Wildcard, typ}]
		}
		if !ok {
			want = model[[2]string{Wildcard, Wildcard}]
		}
		if got := r.QueryNode(flavor, typ); got != want {
			rt.Fatalf("QueryNode(%q, %q) = %q, want %q", flavor, typ, got.Template, want.Template)
		}
	})
}
