package route

import (
	"fmt"
	"math"
	"strconv"
)

// Arrowhead dimensions for straight connectors, in graph units.
const (
	ArrowHalfSpan = 6.0
	ArrowDepth    = 7.0
)

// ClearancePerScale is the minimum departure distance of a directional curve
// endpoint at scale 1.
const ClearancePerScale = 100.0

// Role constrains the side of a node a connector leaves from or arrives at.
type Role string

const (
	RoleUp    Role = "up"
	RoleDown  Role = "down"
	RoleLeft  Role = "left"
	RoleRight Role = "right"
	RoleAll   Role = "all"
)

// ParseRole maps a role attribute to a Role. Empty or unknown values are
// omnidirectional.
func ParseRole(s string) Role {
	switch r := Role(s); r {
	case RoleUp, RoleDown, RoleLeft, RoleRight:
		return r
	default:
		return RoleAll
	}
}

// Axis is the preferred departure axis of an omnidirectional endpoint.
type Axis int

const (
	Horizontal Axis = 0
	Vertical   Axis = 1
)

func (a Axis) String() string {
	if a == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Connect describes the two endpoints of a connector.
// Endpoint 1 is where the line starts (the line's input), endpoint 2 where it ends.
type Connect struct {
	X1, Y1 float64
	X2, Y2 float64
	R1, R2 Role // Departure role of each endpoint
	D1, D2 Axis // Axis preference, used only when the role is RoleAll
}

// Point is a 2D coordinate.
type Point struct {
	X, Y float64
}

func (p Point) String() string {
	return num(p.X) + "," + num(p.Y)
}

// Clearance returns the minimum curve departure distance at the given scale.
func Clearance(scale float64) float64 {
	return scale * ClearancePerScale
}

// =============================================================================
// Straight
// =============================================================================

// StraightPath is a direct segment with an arrowhead at its midpoint.
type StraightPath struct {
	From, To Point
	Arrow    [3]Point // Apex first, then the two base corners
	Rotation float64  // Degrees, applied around the apex
}

// Straight computes a straight connector from (x1,y1) to (x2,y2).
//
// The arrowhead is drawn pointing down (apex below its base) and rotated by
// the segment angle minus 90 degrees, so its apex points from endpoint 1
// toward endpoint 2.
func Straight(x1, y1, x2, y2 float64) StraightPath {
	apex := Point{X: x2 - (x2-x1)/2, Y: y2 - (y2-y1)/2}
	return StraightPath{
		From: Point{X: x1, Y: y1},
		To:   Point{X: x2, Y: y2},
		Arrow: [3]Point{
			apex,
			{X: apex.X + ArrowHalfSpan, Y: apex.Y - ArrowDepth},
			{X: apex.X - ArrowHalfSpan, Y: apex.Y - ArrowDepth},
		},
		Rotation: angle(x1, y1, x2, y2) - 90,
	}
}

// D returns the SVG path data of the segment.
func (s StraightPath) D() string {
	return fmt.Sprintf("M%s L%s", s.From, s.To)
}

// Points returns the SVG polygon points of the arrowhead.
func (s StraightPath) Points() string {
	return fmt.Sprintf("%s %s %s", s.Arrow[0], s.Arrow[1], s.Arrow[2])
}

// Transform returns the CSS style rotating the arrowhead around its apex.
func (s StraightPath) Transform() string {
	apex := s.Arrow[0]
	return fmt.Sprintf("transform-origin: %spx %spx; transform: rotate(%sdeg)", num(apex.X), num(apex.Y), num(s.Rotation))
}

// Bounds returns the corners of the axis-aligned box holding the segment and
// its rotated arrowhead.
func (s StraightPath) Bounds() (lo, hi Point) {
	lo, hi = span(s.From, s.To)
	apex := s.Arrow[0]
	sin, cos := math.Sincos(s.Rotation * math.Pi / 180)
	for _, c := range s.Arrow[1:] {
		dx, dy := c.X-apex.X, c.Y-apex.Y
		lo, hi = extend(lo, hi, Point{X: apex.X + dx*cos - dy*sin, Y: apex.Y + dx*sin + dy*cos})
	}
	return lo, hi
}

func angle(x1, y1, x2, y2 float64) float64 {
	return math.Atan2(y2-y1, x2-x1) * 180 / math.Pi
}

// =============================================================================
// Curve
// =============================================================================

// CubicPath is a cubic Bézier connector.
type CubicPath struct {
	From, To Point
	C1, C2   Point // Control points of endpoint 1 and endpoint 2
}

// Curve computes a direction-aware cubic connector.
//
// Each control point starts on the endpoint's preferred axis, level with the
// midline between the endpoints. Directional roles then override it: the
// control point is pushed at least Clearance(scale) away from the endpoint on
// the role's side and aligned with the endpoint on the other axis. RoleAll
// keeps the axis-preference value.
func Curve(c Connect, scale float64) CubicPath {
	midX := (c.X1 + c.X2) / 2
	midY := (c.Y1 + c.Y2) / 2

	from := Point{X: c.X1, Y: c.Y1}
	to := Point{X: c.X2, Y: c.Y2}
	cm := Clearance(scale)

	return CubicPath{
		From: from,
		To:   to,
		C1:   enforceClearance(from, base(from, c.D1, midX, midY), c.R1, cm),
		C2:   enforceClearance(to, base(to, c.D2, midX, midY), c.R2, cm),
	}
}

// D returns the SVG path data of the curve.
func (p CubicPath) D() string {
	return fmt.Sprintf("M%s C%s %s %s", p.From, p.C1, p.C2, p.To)
}

// Bounds returns the corners of the tightest axis-aligned box holding the
// curve. Control points that pull the curve outward widen the box only as
// far as the curve actually reaches.
func (p CubicPath) Bounds() (lo, hi Point) {
	lo, hi = span(p.From, p.To)
	for _, t := range append(extrema(p.From.X, p.C1.X, p.C2.X, p.To.X), extrema(p.From.Y, p.C1.Y, p.C2.Y, p.To.Y)...) {
		lo, hi = extend(lo, hi, p.At(t))
	}
	return lo, hi
}

// At returns the point of the curve at parameter t in [0, 1].
func (p CubicPath) At(t float64) Point {
	u := 1 - t
	a, b, c, d := u*u*u, 3*u*u*t, 3*u*t*t, t*t*t
	return Point{
		X: a*p.From.X + b*p.C1.X + c*p.C2.X + d*p.To.X,
		Y: a*p.From.Y + b*p.C1.Y + c*p.C2.Y + d*p.To.Y,
	}
}

// extrema returns the parameters in (0, 1) where the cubic with coefficients
// p0..p3 has a zero derivative.
func extrema(p0, p1, p2, p3 float64) []float64 {
	a := 3 * (-p0 + 3*p1 - 3*p2 + p3)
	b := 6 * (p0 - 2*p1 + p2)
	c := 3 * (p1 - p0)

	var roots []float64
	const eps = 1e-12
	switch {
	case math.Abs(a) < eps:
		if math.Abs(b) >= eps {
			roots = append(roots, -c/b)
		}
	default:
		disc := b*b - 4*a*c
		if disc < 0 {
			return nil
		}
		sq := math.Sqrt(disc)
		roots = append(roots, (-b+sq)/(2*a), (-b-sq)/(2*a))
	}

	in := roots[:0]
	for _, t := range roots {
		if t > 0 && t < 1 {
			in = append(in, t)
		}
	}
	return in
}

func span(a, b Point) (lo, hi Point) {
	return Point{X: min(a.X, b.X), Y: min(a.Y, b.Y)}, Point{X: max(a.X, b.X), Y: max(a.Y, b.Y)}
}

func extend(lo, hi, p Point) (Point, Point) {
	return Point{X: min(lo.X, p.X), Y: min(lo.Y, p.Y)}, Point{X: max(hi.X, p.X), Y: max(hi.Y, p.Y)}
}

func base(end Point, axis Axis, midX, midY float64) Point {
	if axis == Vertical {
		return Point{X: end.X, Y: midY}
	}
	return Point{X: midX, Y: end.Y}
}

// enforceClearance applies the role override to control point cp of endpoint end.
// The override only pushes cp further out; it never pulls it closer.
func enforceClearance(end, cp Point, role Role, cm float64) Point {
	switch role {
	case RoleLeft:
		if cp.X-end.X > -cm {
			cp.X = end.X - cm
		}
		cp.Y = end.Y
	case RoleRight:
		if cp.X-end.X < cm {
			cp.X = end.X + cm
		}
		cp.Y = end.Y
	case RoleDown:
		if cp.Y-end.Y < cm {
			cp.Y = end.Y + cm
		}
		cp.X = end.X
	case RoleUp:
		if cp.Y-end.Y > -cm {
			cp.Y = end.Y - cm
		}
		cp.X = end.X
	}
	return cp
}

// num formats v with the shortest representation that round-trips.
func num(v float64) string {
	if v == 0 {
		// Avoid "-0" in path data.
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
