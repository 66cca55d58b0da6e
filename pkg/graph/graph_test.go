package graph

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/vgraph/pkg/errors"
	"github.com/matzehuels/vgraph/pkg/ident"
)

const sampleDoc = `{
	"version": 1,
	"scale": 2,
	"option": {"type": "mesh", "meshSize": 20, "originPoint": true},
	"nodes": {
		"a": {"type": "number", "position": {"x": 0, "y": 0},
		      "details": {"params": [{"name": "out", "direction": "output", "type": "number", "role": "right"}]}},
		"b": {"type": "print", "position": {"x": 300, "y": 80}}
	},
	"lines": {
		"l1": {"type": "curve", "input": {"node": "a", "param": "out"}, "output": {"node": "b", "param": "in"}}
	}
}`

func TestUnmarshal(t *testing.T) {
	d, err := Unmarshal([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if d.Scale != 2 {
		t.Errorf("scale = %v, want 2", d.Scale)
	}
	if d.Option.Type != RenderMesh || d.Option.MeshSize != 20 || !d.Option.OriginPoint {
		t.Errorf("option = %+v", d.Option)
	}
	if len(d.Nodes) != 2 || len(d.Lines) != 1 {
		t.Fatalf("nodes=%d lines=%d, want 2 and 1", len(d.Nodes), len(d.Lines))
	}
	l := d.Lines["l1"]
	if l.Input != (Endpoint{Node: "a", Param: "out"}) || l.Output != (Endpoint{Node: "b", Param: "in"}) {
		t.Errorf("line endpoints = %+v -> %+v", l.Input, l.Output)
	}
}

func TestUnmarshal_Defaults(t *testing.T) {
	d, err := Unmarshal([]byte(`{"nodes": {"a": {"type": "x", "position": {"x": 1, "y": 2}}}}`))
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if d.Version != CurrentVersion {
		t.Errorf("version = %d, want %d", d.Version, CurrentVersion)
	}
	if d.Scale != 1 {
		t.Errorf("scale = %v, want 1", d.Scale)
	}
	if d.Option.Type != RenderPure {
		t.Errorf("option type = %q, want %q", d.Option.Type, RenderPure)
	}
	if d.Lines == nil {
		t.Error("lines should default to an empty map")
	}
}

func TestUnmarshal_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode errors.Code
	}{
		{"malformed", `{"nodes": `, errors.ErrCodeInvalidDocument},
		{"future version", `{"version": 2}`, errors.ErrCodeInvalidVersion},
		{"negative version", `{"version": -1}`, errors.ErrCodeInvalidVersion},
		{"negative scale", `{"scale": -1}`, errors.ErrCodeInvalidDocument},
		{"unknown render type", `{"option": {"type": "gradient"}}`, errors.ErrCodeInvalidDocument},
		{"negative mesh size", `{"option": {"type": "mesh", "meshSize": -5}}`, errors.ErrCodeInvalidDocument},
		{
			"dangling input",
			`{"nodes": {"b": {"type": "x"}}, "lines": {"l": {"type": "curve", "input": {"node": "a"}, "output": {"node": "b"}}}}`,
			errors.ErrCodeInvalidDocument,
		},
		{
			"dangling output",
			`{"nodes": {"a": {"type": "x"}}, "lines": {"l": {"type": "curve", "input": {"node": "a"}, "output": {"node": "z"}}}}`,
			errors.ErrCodeInvalidDocument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tt.input))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("code = %v, want %v (%v)", errors.GetCode(err), tt.wantCode, err)
			}
		})
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flow.json")
	if err := os.WriteFile(path, []byte(sampleDoc), 0644); err != nil {
		t.Fatal(err)
	}

	d, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(d.Nodes) != 2 {
		t.Errorf("nodes = %d, want 2", len(d.Nodes))
	}
}

func TestReadFileNotFound(t *testing.T) {
	_, err := ReadFile("nonexistent.json")
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("expected FILE_NOT_FOUND, got %v", err)
	}
}

func TestWrite(t *testing.T) {
	d := New()
	seq := &ident.Sequence{Prefix: "n"}
	a := d.AddNode(seq, Node{Type: "number"})
	b := d.AddNode(seq, Node{Type: "print", Position: Position{X: 10, Y: 20}})
	if _, err := d.AddLine(seq, Line{Type: LineCurve, Input: Endpoint{Node: a}, Output: Endpoint{Node: b}}); err != nil {
		t.Fatalf("AddLine: %v", err)
	}

	var buf bytes.Buffer
	if err := Write(d, &buf); err != nil {
		t.Fatalf("Write: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(buf.Bytes(), &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if raw["version"] != float64(CurrentVersion) {
		t.Errorf("version = %v", raw["version"])
	}
	if !strings.Contains(buf.String(), `"n3"`) {
		t.Errorf("expected line id n3 in output:\n%s", buf.String())
	}
	// Optional port names are omitted when empty.
	if strings.Contains(buf.String(), `"param"`) {
		t.Errorf("empty param should be omitted:\n%s", buf.String())
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	d := New()
	d.Nodes["a"] = Node{Type: "number"}

	if err := WriteFile(d, path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	back, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if back.Nodes["a"].Type != "number" {
		t.Errorf("node a type = %q, want number", back.Nodes["a"].Type)
	}
}

func TestAddLine_UnknownNode(t *testing.T) {
	d := New()
	seq := &ident.Sequence{Prefix: "n"}
	a := d.AddNode(seq, Node{Type: "number"})

	_, err := d.AddLine(seq, Line{Input: Endpoint{Node: a}, Output: Endpoint{Node: "missing"}})
	if !errors.Is(err, errors.ErrCodeInvalidDocument) {
		t.Errorf("expected INVALID_DOCUMENT, got %v", err)
	}
	if len(d.Lines) != 0 {
		t.Errorf("lines = %d, want 0", len(d.Lines))
	}
}

func TestSortedIDs(t *testing.T) {
	d := New()
	d.Nodes["c"] = Node{}
	d.Nodes["a"] = Node{}
	d.Nodes["b"] = Node{}

	got := strings.Join(d.NodeIDs(), ",")
	if got != "a,b,c" {
		t.Errorf("NodeIDs() = %s, want a,b,c", got)
	}
}

func TestNodeParams(t *testing.T) {
	d, err := Unmarshal([]byte(`{"nodes": {"a": {"type": "x", "details": {"params": [
		{"name": "in", "direction": "input", "type": "number"},
		{"direction": "output"},
		"garbage",
		{"name": "out", "direction": "output", "role": "down"}
	]}}}}`))
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	params := d.Nodes["a"].Params()
	if len(params) != 2 {
		t.Fatalf("params = %+v, want 2 entries", params)
	}
	if params[0] != (Param{Name: "in", Direction: DirectionInput, Type: "number"}) {
		t.Errorf("params[0] = %+v", params[0])
	}
	if params[1] != (Param{Name: "out", Direction: DirectionOutput, Role: "down"}) {
		t.Errorf("params[1] = %+v", params[1])
	}
}

func TestNodeParams_Typed(t *testing.T) {
	n := Node{Details: map[string]any{"params": []Param{{Name: "in"}}}}
	if got := n.Params(); len(got) != 1 || got[0].Name != "in" {
		t.Errorf("Params() = %+v", got)
	}
	if got := (Node{}).Params(); got != nil {
		t.Errorf("Params() on empty node = %+v, want nil", got)
	}
}
