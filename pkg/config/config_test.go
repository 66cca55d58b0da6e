package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/vgraph/pkg/errors"
	"github.com/matzehuels/vgraph/pkg/graph"
	"github.com/matzehuels/vgraph/pkg/registry"
)

const sample = `
[flavors."*".nodes.comment]
template = "<div>Comment</div>"

[flavors.shader]
strict_types = true

[flavors.shader.option]
type = "mesh"
mesh_size = 20
mesh_color = "#333"

[flavors.shader.nodes.texture]
template = "<div>Texture</div>"
style = "div { color: #fc0; }"

[flavors.shader.nodes.image]
alias = "texture"

[flavors.shader.nodes.picture]
alias = "image"

[flavors.shader.nodes.note]
alias = "comment"

[flavors.shader.lines.flow]
alias = "curve"

[flavors.shader.lines.wire]
alias = "straight"
style = "g[type=\"wire\"] > path { stroke: #0af; }"
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	require.NoError(t, err)

	require.Contains(t, cfg.Flavors, "shader")
	f := cfg.Flavors["shader"]
	assert.True(t, f.StrictTypes)
	require.NotNil(t, f.Option)
	assert.Equal(t, graph.Option{Type: graph.RenderMesh, MeshSize: 20, MeshColor: "#333"}, *f.Option)
	assert.Equal(t, "texture", f.Nodes["image"].Alias)
	assert.Equal(t, "curve", f.Lines["flow"].Alias)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"malformed", `[flavors.shader`},
		{"unknown key", "[flavors.shader]\ncolour = \"red\""},
		{"bad flavor name", "[flavors.\"a b\".nodes.x]\ntemplate = \"x\""},
		{"bad option", "[flavors.shader.option]\ntype = \"gradient\""},
		{"node without template or alias", "[flavors.shader.nodes.x]\nstyle = \"a\""},
		{"node with template and alias", "[flavors.shader.nodes.x]\ntemplate = \"a\"\nalias = \"b\""},
		{"styled node alias", "[flavors.shader.nodes.x]\nalias = \"b\"\nstyle = \"c\""},
		{"line without alias", "[flavors.shader.lines.x]\nstyle = \"a\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig), "got %v", err)
		})
	}
}

func TestApply(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	require.NoError(t, err)

	reg := registry.NewDefault()
	require.NoError(t, cfg.Apply(reg))

	texture := reg.QueryNode("shader", "texture")
	assert.Equal(t, "<div>Texture</div>", texture.Template)
	assert.Same(t, texture, reg.QueryNode("shader", "image"))
	assert.Same(t, texture, reg.QueryNode("shader", "picture"))
	assert.Same(t, reg.QueryNode(registry.Wildcard, "comment"), reg.QueryNode("shader", "note"))
	assert.Same(t, reg.QueryNode(registry.Wildcard, "comment"), reg.QueryNode("workflow", "comment"))

	assert.Same(t, reg.QueryLine(registry.Wildcard, graph.LineCurve), reg.QueryLine("shader", "flow"))
	wire := reg.QueryLine("shader", "wire")
	straight := reg.QueryLine(registry.Wildcard, graph.LineStraight)
	assert.NotSame(t, straight, wire)
	assert.Equal(t, straight.Template, wire.Template)
	assert.Contains(t, wire.Style, straight.Style)
	assert.Contains(t, wire.Style, "#0af")

	assert.Equal(t, graph.RenderMesh, reg.QueryOption("shader").Type)

	// Strict filter rejects untyped ports in this flavor only.
	untyped := &graph.Param{Name: "x"}
	assert.False(t, reg.AllowLine("shader", graph.New(), graph.Line{}, untyped, untyped))
	assert.True(t, reg.AllowLine("workflow", graph.New(), graph.Line{}, untyped, untyped))
}

func TestApply_UnresolvedAlias(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing node target", "[flavors.f.nodes.a]\nalias = \"nope\""},
		{"node cycle", "[flavors.f.nodes.a]\nalias = \"b\"\n[flavors.f.nodes.b]\nalias = \"a\""},
		{"missing line target", "[flavors.f.lines.a]\nalias = \"zigzag\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.input))
			require.NoError(t, err)
			err = cfg.Apply(registry.NewDefault())
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig), "got %v", err)
		})
	}
}

func TestApply_WildcardFirst(t *testing.T) {
	// "!x" and "#x" sort before "*" but may still alias its types.
	cfg, err := Parse([]byte(`
[flavors."!x".nodes.note]
alias = "sticky"

[flavors."#x".lines.link]
alias = "wire"

[flavors."*".nodes.sticky]
template = "<div>Sticky</div>"

[flavors."*".lines.wire]
alias = "straight"
style = "path { stroke: red; }"
`))
	require.NoError(t, err)

	reg := registry.NewDefault()
	require.NoError(t, cfg.Apply(reg))
	assert.Same(t, reg.QueryNode(registry.Wildcard, "sticky"), reg.QueryNode("!x", "note"))
	assert.Same(t, reg.QueryLine(registry.Wildcard, "wire"), reg.QueryLine("#x", "link"))
}

func TestApplyOrder(t *testing.T) {
	got := applyOrder(map[string]Flavor{"b": {}, "!a": {}, "*": {}, "#c": {}})
	assert.Equal(t, []string{"*", "!a", "#c", "b"}, got)
	assert.Equal(t, []string{"a"}, applyOrder(map[string]Flavor{"a": {}}))
}

func TestApply_OptionTypeDefaultsToPure(t *testing.T) {
	cfg, err := Parse([]byte("[flavors.f.option]\nbackground_color = \"#000\""))
	require.NoError(t, err)

	reg := registry.NewDefault()
	require.NoError(t, cfg.Apply(reg))
	assert.Equal(t, graph.Option{Type: graph.RenderPure, BackgroundColor: "#000"}, reg.QueryOption("f"))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flavors.toml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Flavors, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound))
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/custom-config")
	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/custom-config", appName, fileName), path)
}

func TestLoadDefault_Missing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := LoadDefault()
	require.NoError(t, err)
	assert.Empty(t, cfg.Flavors)
}
