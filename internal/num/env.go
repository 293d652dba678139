package num

import "fmt"

// Point is one breakpoint of an envelope.
type Point struct {
	X float64
	Y float64
}

// Env is a piecewise-linear breakpoint envelope over strictly ascending
// X coordinates. Envelopes shape slowly varying parameters (amplitude
// contours, tempo curves) as a function of musical time.
type Env struct {
	points []Point
}

// NewEnv validates and builds an envelope.
// At least one point is required and X values must strictly ascend.
func NewEnv(points ...Point) (*Env, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("envelope needs at least one point")
	}
	for i := 1; i < len(points); i++ {
		if points[i].X <= points[i-1].X {
			return nil, fmt.Errorf("envelope points must strictly ascend in x: point %d (x=%v) after x=%v",
				i, points[i].X, points[i-1].X)
		}
	}
	pts := make([]Point, len(points))
	copy(pts, points)
	return &Env{points: pts}, nil
}

// At returns the envelope value at x by linear interpolation.
// Before the first point it clamps to the first Y; past the last point it
// clamps to the last Y.
func (e *Env) At(x float64) float64 {
	pts := e.points
	if x <= pts[0].X {
		return pts[0].Y
	}
	last := pts[len(pts)-1]
	if x >= last.X {
		return last.Y
	}
	for i := 1; i < len(pts); i++ {
		if x <= pts[i].X {
			a, b := pts[i-1], pts[i]
			return Rescale(x, a.X, b.X, a.Y, b.Y)
		}
	}
	return last.Y
}

// Span returns the X extent of the envelope.
func (e *Env) Span() (lo, hi float64) {
	return e.points[0].X, e.points[len(e.points)-1].X
}
