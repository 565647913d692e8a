package ballistics

import "math"

// InterpolationMethod selects between monotone PCHIP and linear
// interpolation, matching the caller-facing choice exposed by
// py_ballisticcalc's InterpolationMethod (pchip|linear), carried forward
// per SPEC_FULL.md's supplemented-features section.
type InterpolationMethod int

const (
	// InterpolatePCHIP uses Fritsch–Carlson monotone cubic Hermite
	// interpolation (default — spec.md §4.1).
	InterpolatePCHIP InterpolationMethod = iota
	// InterpolateLinear uses plain two-point linear interpolation.
	InterpolateLinear
)

func sign(a float64) int {
	switch {
	case a > 0:
		return 1
	case a < 0:
		return -1
	default:
		return 0
	}
}

// pchipSlopesThreePoints computes Fritsch–Carlson limited slopes at three
// points, ported from original_source/py_ballisticcalc/interpolation.py's
// _pchip_slopes_three_points. Inputs must already be sorted by x.
func pchipSlopesThreePoints(x0, y0, x1, y1, x2, y2 float64) (m0, m1, m2 float64) {
	h0 := x1 - x0
	h1 := x2 - x1
	d0 := (y1 - y0) / h0
	d1 := (y2 - y1) / h1

	if d0 == 0 || d1 == 0 || sign(d0) != sign(d1) {
		m1 = 0.0
	} else {
		w1 := 2*h1 + h0
		w2 := h1 + 2*h0
		m1 = (w1 + w2) / (w1/d0 + w2/d1)
	}

	m0 = ((2*h0+h1)*d0 - h0*d1) / (h0 + h1)
	if sign(m0) != sign(d0) {
		m0 = 0.0
	} else if math.Abs(m0) > 3*math.Abs(d0) {
		m0 = 3 * d0
	}

	m2 = ((2*h1+h0)*d1 - h1*d0) / (h0 + h1)
	if sign(m2) != sign(d1) {
		m2 = 0.0
	} else if math.Abs(m2) > 3*math.Abs(d1) {
		m2 = 3 * d1
	}

	return m0, m1, m2
}

// hermiteEval evaluates the cubic Hermite polynomial on [xk, xk1], ported
// from interpolation.py's _hermite_eval.
func hermiteEval(x, xk, xk1, yk, yk1, mk, mk1 float64) float64 {
	h := xk1 - xk
	t := (x - xk) / h
	t2 := t * t
	t3 := t2 * t
	h00 := 2*t3 - 3*t2 + 1
	h10 := t3 - 2*t2 + t
	h01 := -2*t3 + 3*t2
	h11 := t3 - t2
	return h00*yk + h*h10*mk + h01*yk1 + h*h11*mk1
}

// Interpolate3PointPCHIP performs monotone PCHIP interpolation given three
// points (need not be pre-sorted in x), ported from interpolation.py's
// interpolate_3_pt.
func Interpolate3PointPCHIP(x, x0, y0, x1, y1, x2, y2 float64) float64 {
	type pt struct{ x, y float64 }
	pts := []pt{{x0, y0}, {x1, y1}, {x2, y2}}
	for i := 1; i < len(pts); i++ {
		for j := i; j > 0 && pts[j].x < pts[j-1].x; j-- {
			pts[j], pts[j-1] = pts[j-1], pts[j]
		}
	}
	x0, y0, x1, y1, x2, y2 = pts[0].x, pts[0].y, pts[1].x, pts[1].y, pts[2].x, pts[2].y
	m0, m1, m2 := pchipSlopesThreePoints(x0, y0, x1, y1, x2, y2)
	if x <= x1 {
		return hermiteEval(x, x0, x1, y0, y1, m0, m1)
	}
	return hermiteEval(x, x1, x2, y1, y2, m1, m2)
}

// Interpolate2PointLinear performs linear interpolation between two
// points, ported from interpolation.py's interpolate_2_pt.
func Interpolate2PointLinear(x, x0, y0, x1, y1 float64) float64 {
	if x1 == x0 {
		return y0
	}
	t := (x - x0) / (x1 - x0)
	return y0 + t*(y1-y0)
}

// interpolateAt dispatches to PCHIP (needing a 3rd point) or linear,
// following spec.md §4.4's "use the three most recent raw states and
// PCHIP (or linear when only two exist)" sampler rule.
func interpolateAt(method InterpolationMethod, x, x0, y0, x1, y1 float64, have3 bool, x2, y2 float64) float64 {
	if method == InterpolatePCHIP && have3 {
		return Interpolate3PointPCHIP(x, x0, y0, x1, y1, x2, y2)
	}
	return Interpolate2PointLinear(x, x0, y0, x1, y1)
}
