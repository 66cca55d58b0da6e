package registry

import (
	"maps"
	"slices"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/vgraph/pkg/errors"
	"github.com/matzehuels/vgraph/pkg/graph"
	"github.com/matzehuels/vgraph/pkg/observability"
)

// flavorTable holds everything registered for one flavor.
type flavorTable struct {
	nodes   map[string]*NodeType
	lines   map[string]*LineType
	filters Filters
	option  graph.Option
}

func newFlavorTable() *flavorTable {
	return &flavorTable{
		nodes:  map[string]*NodeType{},
		lines:  map[string]*LineType{},
		option: graph.DefaultOption(),
	}
}

// Registry maps (flavor, type) pairs to node and line descriptors.
//
// A single lock guards the whole flavor table: the create-if-absent step and
// the mutation that follows it happen under the same write lock.
type Registry struct {
	mu      sync.RWMutex
	flavors map[string]*flavorTable
	logger  *log.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger logs type fallbacks at debug level.
func WithLogger(l *log.Logger) RegistryOption {
	return func(r *Registry) { r.logger = l }
}

// New returns an empty registry. Queries panic until the wildcard flavor is
// seeded; use [NewDefault] or call [Registry.Seed].
func New(opts ...RegistryOption) *Registry {
	r := &Registry{flavors: map[string]*flavorTable{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewDefault returns a registry seeded with the built-in types.
func NewDefault(opts ...RegistryOption) *Registry {
	r := New(opts...)
	r.Seed()
	return r
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide seeded registry.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewDefault()
	})
	return defaultRegistry
}

// table returns the flavor's table, creating it. Callers hold the write lock.
func (r *Registry) table(flavor string) *flavorTable {
	t, ok := r.flavors[flavor]
	if !ok {
		t = newFlavorTable()
		r.flavors[flavor] = t
	}
	return t
}

// =============================================================================
// Options
// =============================================================================

// RegisterOption sets the render option of flavor.
func (r *Registry) RegisterOption(flavor string, opt graph.Option) {
	r.mu.Lock()
	r.table(flavor).option = opt
	r.mu.Unlock()

	observability.Registry().OnRegister(flavor, string(KindOption), "")
}

// QueryOption returns the render option of flavor. An unseen flavor is
// created with the default option, so this is not a read-only call.
func (r *Registry) QueryOption(flavor string) graph.Option {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.table(flavor).option
}

// =============================================================================
// Nodes and Lines
// =============================================================================

// RegisterNode sets the descriptor of a node type within flavor.
func (r *Registry) RegisterNode(flavor, typ string, d *NodeType) {
	if d == nil {
		panic(errors.New(errors.ErrCodeInvalidInput, "registry: nil node descriptor for %s/%s", flavor, typ))
	}
	r.mu.Lock()
	r.table(flavor).nodes[typ] = d
	r.mu.Unlock()

	observability.Registry().OnRegister(flavor, string(KindNode), typ)
}

// RegisterLine sets the descriptor of a line type within flavor.
func (r *Registry) RegisterLine(flavor, typ string, d *LineType) {
	if d == nil {
		panic(errors.New(errors.ErrCodeInvalidInput, "registry: nil line descriptor for %s/%s", flavor, typ))
	}
	r.mu.Lock()
	r.table(flavor).lines[typ] = d
	r.mu.Unlock()

	observability.Registry().OnRegister(flavor, string(KindLine), typ)
}

// QueryNode resolves the node descriptor for (flavor, typ).
//
// Resolution order: the flavor's own entry for typ, then the wildcard
// flavor's entry for typ, then the wildcard flavor's wildcard entry.
// QueryNode panics with an UNRESOLVED_TYPE error when none exists, which
// only happens before the wildcard flavor is seeded.
func (r *Registry) QueryNode(flavor, typ string) *NodeType {
	d, rf, rt := resolve(r, flavor, typ, func(t *flavorTable) map[string]*NodeType { return t.nodes })

	r.resolved(KindNode, flavor, typ, rf, rt)
	return d
}

// QueryLine resolves the line descriptor for (flavor, typ) in the same
// order as [Registry.QueryNode], and panics under the same condition.
func (r *Registry) QueryLine(flavor, typ string) *LineType {
	d, rf, rt := resolve(r, flavor, typ, func(t *flavorTable) map[string]*LineType { return t.lines })

	r.resolved(KindLine, flavor, typ, rf, rt)
	return d
}

// resolve performs the three-step lookup under the read lock.
func resolve[T any](r *Registry, flavor, typ string, entries func(*flavorTable) map[string]*T) (*T, string, string) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if t, ok := r.flavors[flavor]; ok {
		if d, ok := entries(t)[typ]; ok {
			return d, flavor, typ
		}
	}

	w, ok := r.flavors[Wildcard]
	if ok {
		if d, ok := entries(w)[typ]; ok {
			return d, Wildcard, typ
		}
		if d, ok := entries(w)[Wildcard]; ok {
			return d, Wildcard, Wildcard
		}
	}

	panic(errors.New(errors.ErrCodeUnresolvedType,
		"registry: cannot resolve %s/%s: wildcard flavor has no %q or %q entry", flavor, typ, typ, Wildcard))
}

func (r *Registry) resolved(kind Kind, flavor, typ, rf, rt string) {
	observability.Registry().OnResolve(flavor, string(kind), typ, rf, rt)
	if r.logger != nil && (rf != flavor || rt != typ) {
		r.logger.Debug("type fallback", "kind", kind, "flavor", flavor, "type", typ, "resolved", rf+"/"+rt)
	}
}

// =============================================================================
// Filters
// =============================================================================

// RegisterFilter merges the hooks set in f into flavor's filter set.
// Hooks left nil in f keep their current value.
func (r *Registry) RegisterFilter(flavor string, f Filters) {
	r.mu.Lock()
	r.table(flavor).filters.merge(f)
	r.mu.Unlock()

	observability.Registry().OnRegister(flavor, string(KindFilter), string(LineFilterName))
}

// QueryFilter returns flavor's hook called name, falling back to the
// wildcard flavor's hook. It returns nil when neither is set.
func (r *Registry) QueryFilter(flavor string, name FilterName) LineFilter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if t, ok := r.flavors[flavor]; ok {
		if h := t.filters.get(name); h != nil {
			return h
		}
	}
	if w, ok := r.flavors[Wildcard]; ok {
		return w.filters.get(name)
	}
	return nil
}

// AllowLine runs flavor's line filter for line. Lines are allowed when no
// filter is registered. A rejection is a normal outcome, not an error.
// A nil doc hands the filter nil node and line maps.
func (r *Registry) AllowLine(flavor string, doc *graph.Document, line graph.Line, input, output *graph.Param) bool {
	filter := r.QueryFilter(flavor, LineFilterName)
	if filter == nil {
		return true
	}
	var (
		nodes map[string]graph.Node
		lines map[string]graph.Line
	)
	if doc != nil {
		nodes, lines = doc.Nodes, doc.Lines
	}
	return filter(nodes, lines, line, input, output)
}

// =============================================================================
// Listing
// =============================================================================

// Flavors returns the names of all materialized flavors, sorted.
func (r *Registry) Flavors() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.flavors))
}

// NodeTypes returns the node types registered directly under flavor, sorted.
// Fallback types from the wildcard flavor are not included.
func (r *Registry) NodeTypes(flavor string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.flavors[flavor]
	if !ok {
		return nil
	}
	return slices.Sorted(maps.Keys(t.nodes))
}

// LineTypes returns the line types registered directly under flavor, sorted.
func (r *Registry) LineTypes(flavor string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.flavors[flavor]
	if !ok {
		return nil
	}
	return slices.Sorted(maps.Keys(t.lines))
}
