// Package route computes connector geometry between two graph ports.
//
// Two connector shapes are supported:
//
//   - [Straight]: a direct segment with an arrowhead at its midpoint.
//   - [Curve]: a cubic Bézier whose control points respect each endpoint's
//     [Role] and keep a minimum clearance from directional ports.
//
// Both return value types that format themselves as SVG path data, so
// callers can write the result into any rendering surface:
//
//	p := route.Curve(route.Connect{
//	    X1: 0, Y1: 0, R1: route.RoleRight,
//	    X2: 300, Y2: 80, R2: route.RoleLeft,
//	}, 1)
//	fmt.Println(p.D()) // M0,0 C150,0 150,80 300,80
//
// # Clearance
//
// A directional endpoint (up, down, left, right) never lets its control point
// sit closer than [Clearance] to the endpoint on its side. The clearance is
// proportional to the zoom scale so curves keep their shape while zooming.
//
// # Concurrency
//
// The package holds no state; every function is safe for concurrent use.
// Coincident endpoints produce degenerate geometry rather than an error.
package route
