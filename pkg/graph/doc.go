// Package graph defines the persisted graph document and its JSON format.
//
// A [Document] holds nodes and the lines connecting them, keyed by
// identifier, together with the zoom scale and background [Option]:
//
//	{
//	  "version": 1,
//	  "scale": 1,
//	  "option": {"type": "mesh", "meshSize": 20},
//	  "nodes": {
//	    "a": {"type": "number", "position": {"x": 0, "y": 0},
//	          "details": {"params": [{"name": "out", "direction": "output", "type": "number"}]}},
//	    "b": {"type": "print", "position": {"x": 300, "y": 80}}
//	  },
//	  "lines": {
//	    "l1": {"type": "curve", "input": {"node": "a", "param": "out"}, "output": {"node": "b", "param": "in"}}
//	  }
//	}
//
// Node and line types are plain strings; they are resolved to rendering
// behavior by pkg/registry, not here. Ports live in a node's "params" detail
// and are read with [Node.Params].
//
// # Reading and Writing
//
//	doc, err := graph.ReadFile("flow.json")  // decode + defaults + Validate
//	err = graph.WriteFile(doc, "out.json")
//
// Documents with a version newer than [CurrentVersion] are rejected. Older
// formats are not migrated.
//
// # Concurrency
//
// Documents are plain values; concurrent reads are safe, writes are not.
package graph
