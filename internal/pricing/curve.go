package pricing

import "fmt"

// Breakpoint maps a domain value to an output value on a curve.
type Breakpoint struct {
	X float64
	Y float64
}

// Curve is a piecewise-linear lookup over sorted breakpoints. Queries
// outside the domain clamp to the first or last breakpoint's output.
// The meaning of X is defined per table (occupancy fraction, signed
// hours before the event, hour of day) — never inferred.
type Curve struct {
	points []Breakpoint
}

// NewCurve builds a curve from breakpoints sorted by strictly ascending X.
// An empty or out-of-order table is a configuration bug, not a runtime
// condition, so construction fails instead of Eval.
func NewCurve(points []Breakpoint) (Curve, error) {
	if len(points) == 0 {
		return Curve{}, fmt.Errorf("curve requires at least one breakpoint")
	}
	for i := 1; i < len(points); i++ {
		if points[i].X <= points[i-1].X {
			return Curve{}, fmt.Errorf("curve breakpoints must be strictly ascending: %.4f after %.4f", points[i].X, points[i-1].X)
		}
	}
	copied := make([]Breakpoint, len(points))
	copy(copied, points)
	return Curve{points: copied}, nil
}

// MustCurve is NewCurve for static tables wired at startup.
func MustCurve(points ...Breakpoint) Curve {
	c, err := NewCurve(points)
	if err != nil {
		panic(err)
	}
	return c
}

// Eval returns the linearly interpolated output for x.
func (c Curve) Eval(x float64) float64 {
	pts := c.points
	if len(pts) == 0 {
		panic("pricing: Eval on zero curve")
	}

	if x <= pts[0].X {
		return pts[0].Y
	}
	if x >= pts[len(pts)-1].X {
		return pts[len(pts)-1].Y
	}

	for i := 0; i < len(pts)-1; i++ {
		lo, hi := pts[i], pts[i+1]
		if x >= lo.X && x <= hi.X {
			t := (x - lo.X) / (hi.X - lo.X)
			return lo.Y + t*(hi.Y-lo.Y)
		}
	}
	return pts[len(pts)-1].Y
}

// IsZero reports whether the curve was never constructed.
func (c Curve) IsZero() bool {
	return len(c.points) == 0
}
