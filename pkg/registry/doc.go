// Package registry resolves graph element types to rendering behavior.
//
// Types are registered per flavor, a namespace for an editor context such as
// "shader" or "workflow". Each flavor has node descriptors ([NodeType]), line
// descriptors ([LineType]), a background [graph.Option] and a set of
// [Filters]. The wildcard flavor "*" holds the defaults every other flavor
// falls back to.
//
// # Resolution
//
// [Registry.QueryNode] and [Registry.QueryLine] look a type up in three steps:
//
//  1. (flavor, type)
//  2. ("*", type)
//  3. ("*", "*")
//
// The first hit wins. Step 3 always succeeds once the registry is seeded with
// [Registry.Seed]; querying an unseeded registry is a programming error and
// panics with an UNRESOLVED_TYPE error.
//
// # Usage
//
//	reg := registry.NewDefault()
//	reg.RegisterNode("shader", "texture", &registry.NodeType{Template: "<div>Texture</div>"})
//
//	reg.QueryNode("shader", "texture") // the texture descriptor
//	reg.QueryNode("shader", "mix")     // ("*", "*"): the unknown placeholder
//	reg.QueryLine("shader", "flow")    // ("*", "*"): the curve line
//
// # Concurrency
//
// A Registry is safe for concurrent use. Descriptors are shared by pointer
// and must not be mutated after registration. Hooks (OnInit, UpdatePath,
// filters) run on the caller's goroutine without the registry lock held.
package registry
