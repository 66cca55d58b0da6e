// Package probe answers questions about rendered nodes: which ports a node
// exposes and where each port sits relative to the node.
//
// Connector routing needs two collaborators. A [ParamLocator] returns the
// metadata of a node's port (direction, data type, role). An [OffsetProbe]
// returns the port's centre relative to the node's centre, in graph units.
// Both report absence explicitly; a missing node or port is never replaced
// by a default.
//
// [Tree] implements both over an in-memory model of the rendered elements.
// [FromDocument] builds one from a graph document using a fixed box layout,
// which is what the scene renderer uses when no other tree is supplied.
package probe
