package graph

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"os"

	"github.com/matzehuels/vgraph/pkg/errors"
)

// =============================================================================
// Document Serialization API
// =============================================================================

// Marshal converts a document to indented JSON bytes.
func Marshal(d *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(d, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write writes a document as indented JSON to w.
func Write(d *Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode document")
	}
	return nil
}

// WriteFile writes a document to a JSON file with 0644 permissions.
func WriteFile(d *Document, path string) error {
	data, err := Marshal(d)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}

// Unmarshal decodes and validates a document.
// Missing scale, option type and version are filled with their defaults.
func Unmarshal(data []byte) (*Document, error) {
	return Read(bytes.NewReader(data))
}

// Read decodes and validates a document from r.
func Read(r io.Reader) (*Document, error) {
	var d Document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode document")
	}
	applyDefaults(&d)
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// ReadFile reads and validates a document file.
func ReadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()
	return Read(f)
}

// =============================================================================
// Validation
// =============================================================================

// Validate checks the document for structural problems.
//
// Validate reports the first problem found, checking lines in identifier
// order so the result is deterministic. Node types are not checked: unknown
// types resolve to the registry's fallback descriptors.
func (d *Document) Validate() error {
	if d.Version < 1 || d.Version > CurrentVersion {
		return errors.New(errors.ErrCodeInvalidVersion, "unsupported document version %d (supported: 1..%d)", d.Version, CurrentVersion)
	}
	if d.Scale <= 0 || math.IsInf(d.Scale, 0) || math.IsNaN(d.Scale) {
		return errors.New(errors.ErrCodeInvalidDocument, "scale must be a positive number, got %v", d.Scale)
	}
	if err := d.Option.Validate(); err != nil {
		return err
	}
	for _, id := range d.LineIDs() {
		l := d.Lines[id]
		if _, ok := d.Nodes[l.Input.Node]; !ok {
			return errors.New(errors.ErrCodeInvalidDocument, "line %s: input references unknown node %q", id, l.Input.Node)
		}
		if _, ok := d.Nodes[l.Output.Node]; !ok {
			return errors.New(errors.ErrCodeInvalidDocument, "line %s: output references unknown node %q", id, l.Output.Node)
		}
	}
	return nil
}

// Validate checks the render mode and grid size.
func (o Option) Validate() error {
	switch o.Type {
	case RenderPure, RenderMesh:
	default:
		return errors.New(errors.ErrCodeInvalidDocument, "unknown render type %q (want %s or %s)", o.Type, RenderPure, RenderMesh)
	}
	if o.MeshSize < 0 {
		return errors.New(errors.ErrCodeInvalidDocument, "mesh size must not be negative, got %v", o.MeshSize)
	}
	return nil
}

func applyDefaults(d *Document) {
	if d.Version == 0 {
		d.Version = CurrentVersion
	}
	if d.Scale == 0 {
		d.Scale = 1
	}
	if d.Option.Type == "" {
		d.Option.Type = RenderPure
	}
	if d.Nodes == nil {
		d.Nodes = map[string]Node{}
	}
	if d.Lines == nil {
		d.Lines = map[string]Line{}
	}
}
