// Package config loads flavor definitions from TOML and installs them into
// a type registry.
//
// A flavor file declares, per flavor, the background option, node types and
// line types:
//
//	[flavors.shader]
//	strict_types = true
//
//	[flavors.shader.option]
//	type = "mesh"
//	mesh_size = 20
//
//	[flavors.shader.nodes.texture]
//	template = "<div>Texture</div>"
//	style = "div { color: #fc0; }"
//
//	[flavors.shader.nodes.image]
//	alias = "texture"
//
//	[flavors.shader.lines.flow]
//	alias = "curve"
//	style = "g[type=\"flow\"] > path { stroke: #0af; }"
//
// Node types either carry a template or alias an existing type. Line types
// always alias an existing line type, since only registered types compute
// geometry; a style on a line alias is appended to the aliased style.
// Aliases without a style share the aliased descriptor.
//
// strict_types replaces the flavor's line filter with one that also rejects
// lines whose ports are missing or untyped.
package config
