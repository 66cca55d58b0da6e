// Package ident generates identifiers for newly created graph elements.
//
// Identifiers are opaque to the rest of vgraph: documents key nodes and
// lines by them and the renderer writes them into SVG attributes. Use [UUID]
// for interactive documents and [Sequence] where output must be reproducible
// (tests, golden files).
package ident

import (
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// DefaultPrefix is prepended to generated identifiers so they are valid
// XML names even when the random part starts with a digit.
const DefaultPrefix = "t_"

// Generator produces process-unique string identifiers.
type Generator interface {
	Next() string
}

// Func adapts a plain function to the Generator interface.
type Func func() string

// Next calls f.
func (f Func) Next() string { return f() }

// UUID generates random (version 4) UUID-based identifiers.
type UUID struct {
	Prefix string
}

// NewUUID returns a UUID generator using DefaultPrefix.
func NewUUID() UUID {
	return UUID{Prefix: DefaultPrefix}
}

// Next returns the prefix followed by a fresh UUID with dashes removed.
func (g UUID) Next() string {
	return g.Prefix + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Sequence generates Prefix+"1", Prefix+"2", ... and is safe for concurrent use.
type Sequence struct {
	Prefix string

	mu sync.Mutex
	n  int
}

// Next returns the next identifier in the sequence.
func (s *Sequence) Next() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return s.Prefix + strconv.Itoa(s.n)
}

var (
	_ Generator = UUID{}
	_ Generator = (*Sequence)(nil)
	_ Generator = Func(nil)
)
