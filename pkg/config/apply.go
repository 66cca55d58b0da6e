package config

import (
	"maps"
	"slices"

	"github.com/matzehuels/vgraph/pkg/errors"
	"github.com/matzehuels/vgraph/pkg/graph"
	"github.com/matzehuels/vgraph/pkg/registry"
)

// Apply installs every flavor of c into reg. The wildcard flavor "*" is
// applied first so other flavors may alias types it declares; the rest
// follow in name order.
//
// An alias names a type registered in the same flavor or in "*". Aliases may
// refer to other aliases in the same file; a cycle or a missing target is an
// INVALID_CONFIG error. Registrations made before the error are kept.
func (c *Config) Apply(reg *registry.Registry) error {
	for _, name := range applyOrder(c.Flavors) {
		if err := applyFlavor(reg, name, c.Flavors[name]); err != nil {
			return err
		}
	}
	return nil
}

func applyFlavor(reg *registry.Registry, flavor string, f Flavor) error {
	if f.Option != nil {
		opt := *f.Option
		if opt.Type == "" {
			opt.Type = graph.RenderPure
		}
		reg.RegisterOption(flavor, opt)
	}

	var aliases []string
	for _, typ := range slices.Sorted(maps.Keys(f.Nodes)) {
		n := f.Nodes[typ]
		if n.Alias != "" {
			aliases = append(aliases, typ)
			continue
		}
		reg.RegisterNode(flavor, typ, &registry.NodeType{Template: n.Template, Style: n.Style})
	}
	err := resolveAliases(aliases, func(typ string) bool {
		target := f.Nodes[typ].Alias
		if !hasType(reg.NodeTypes, flavor, target) {
			return false
		}
		reg.RegisterNode(flavor, typ, reg.QueryNode(flavor, target))
		return true
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "flavor %s nodes", flavor)
	}

	err = resolveAliases(slices.Sorted(maps.Keys(f.Lines)), func(typ string) bool {
		spec := f.Lines[typ]
		if !hasType(reg.LineTypes, flavor, spec.Alias) {
			return false
		}
		d := reg.QueryLine(flavor, spec.Alias)
		if spec.Style != "" {
			copied := *d
			copied.Style = d.Style + "\n" + spec.Style
			d = &copied
		}
		reg.RegisterLine(flavor, typ, d)
		return true
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "flavor %s lines", flavor)
	}

	if f.StrictTypes {
		reg.RegisterFilter(flavor, registry.Filters{LineFilter: registry.StrictParamTypes})
	}
	return nil
}

// applyOrder returns the flavor names with the wildcard first and the
// others sorted.
func applyOrder(flavors map[string]Flavor) []string {
	names := slices.Sorted(maps.Keys(flavors))
	if i := slices.Index(names, registry.Wildcard); i > 0 {
		names = slices.Insert(slices.Delete(names, i, i+1), 0, registry.Wildcard)
	}
	return names
}

// resolveAliases calls try on each pending alias until every alias resolves
// or a full pass makes no progress.
func resolveAliases(pending []string, try func(typ string) bool) error {
	for len(pending) > 0 {
		var next []string
		for _, typ := range pending {
			if !try(typ) {
				next = append(next, typ)
			}
		}
		if len(next) == len(pending) {
			return errors.New(errors.ErrCodeInvalidConfig, "unresolved aliases: %v", next)
		}
		pending = next
	}
	return nil
}

// hasType reports whether typ is registered directly in flavor or in "*".
func hasType(list func(string) []string, flavor, typ string) bool {
	return slices.Contains(list(flavor), typ) || slices.Contains(list(registry.Wildcard), typ)
}
