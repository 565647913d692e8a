package ballistics

import (
	"sort"

	"gonum.org/v1/gonum/floats"
)

// cDragConstant is the standard ballistic drag-acceleration constant
// (spec.md §4.1): K(M) = CD(M) · cDragConstant / BC.
const cDragConstant = 2.08551e-4

// DragDataPoint is an ordered (Mach, CD) pair (spec.md §3).
type DragDataPoint struct {
	Mach float64
	CD   float64
}

// DragCurve maps Mach number to the drag-acceleration coefficient K(M),
// built once from a drag table and a ballistic coefficient (spec.md §4.1).
// It is immutable after construction.
type DragCurve struct {
	bc     float64
	mach   []float64
	k      []float64 // CD·cDragConstant/BC at each knot, same order as mach
	method InterpolationMethod
}

// BuildDragCurve constructs a DragCurve from a caller-supplied table of
// (Mach, CD) pairs and a ballistic coefficient. The table must be
// non-empty and strictly increasing in Mach, with 0 < CD < 2 throughout
// (spec.md §4.1 Errors).
func BuildDragCurve(table []DragDataPoint, bc float64, method InterpolationMethod) (*DragCurve, error) {
	if len(table) == 0 {
		return nil, &InvalidInputError{Message: "drag table must not be empty"}
	}
	if bc <= 0 {
		return nil, &InvalidInputError{Message: "ballistic coefficient must be greater than zero"}
	}

	mach := make([]float64, len(table))
	cds := make([]float64, len(table))
	for i, p := range table {
		if p.Mach < 0 {
			return nil, &InvalidInputError{Message: "drag table Mach values must be non-negative"}
		}
		if i > 0 && table[i-1].Mach >= p.Mach {
			return nil, &InvalidInputError{Message: "drag table must be strictly increasing in Mach"}
		}
		mach[i] = p.Mach
		cds[i] = p.CD
	}

	if min := floats.Min(cds); min <= 0 {
		return nil, &InvalidInputError{Message: "drag table CD values must be greater than zero"}
	}
	if max := floats.Max(cds); max >= 2 {
		return nil, &InvalidInputError{Message: "drag table CD values must be less than two"}
	}

	k := make([]float64, len(cds))
	for i, cd := range cds {
		k[i] = cd * cDragConstant / bc
	}

	return &DragCurve{bc: bc, mach: mach, k: k, method: method}, nil
}

// BC returns the ballistic coefficient the curve was built with.
func (d *DragCurve) BC() float64 { return d.bc }

// DragByMach returns the drag-acceleration multiplier K(M) for the given
// Mach number, interpolating within the table and extrapolating by
// holding the boundary slope outside it (spec.md §4.1).
func (d *DragCurve) DragByMach(m float64) float64 {
	n := len(d.mach)
	if n == 1 {
		return d.k[0]
	}

	// Below the table: extrapolate using the first segment's slope.
	if m <= d.mach[0] {
		if n < 2 {
			return d.k[0]
		}
		return d.extrapolate(m, 0, 1)
	}
	// Above the table: extrapolate using the last segment's slope.
	if m >= d.mach[n-1] {
		return d.extrapolate(m, n-2, n-1)
	}

	// Bracket via binary search (sort.Search — see DESIGN.md for why this
	// stays a stdlib call rather than a third-party dependency).
	i := sort.Search(n, func(i int) bool { return d.mach[i] >= m }) - 1
	if i < 0 {
		i = 0
	}
	if i >= n-1 {
		i = n - 2
	}

	switch d.method {
	case InterpolateLinear:
		return Interpolate2PointLinear(m, d.mach[i], d.k[i], d.mach[i+1], d.k[i+1])
	default:
		// PCHIP needs a third point for slope context. Use the triple
		// (i-1, i, i+1) when i > 0, else the one-sided boundary triple
		// (i, i+1, i+2) for the first segment, per spec.md §4.1; a
		// two-knot table falls back to linear.
		switch {
		case i > 0:
			return d.pchipSegment(i-1, i, i+1, m)
		case i+2 <= n-1:
			return d.pchipSegment(i, i+1, i+2, m)
		default:
			return Interpolate2PointLinear(m, d.mach[i], d.k[i], d.mach[i+1], d.k[i+1])
		}
	}
}

// pchipSegment evaluates the three-point PCHIP interpolant through knots
// a, b and c at m: on the segment [b, c] when m lies above knot b, else on
// [a, b] (a<b<c in index order but Interpolate3PointPCHIP tolerates any
// order).
func (d *DragCurve) pchipSegment(a, b, c int, m float64) float64 {
	return Interpolate3PointPCHIP(m,
		d.mach[a], d.k[a],
		d.mach[b], d.k[b],
		d.mach[c], d.k[c],
	)
}

// extrapolate holds the slope of the segment [mach[i], mach[i+1]] and
// projects it to m, per spec.md §4.1's documented extrapolation
// tolerance (within ~15% of the endpoint Mach must agree with the
// endpoint to within 15%, within 10% to within 3%).
func (d *DragCurve) extrapolate(m float64, i, j int) float64 {
	slope := (d.k[j] - d.k[i]) / (d.mach[j] - d.mach[i])
	// Anchor at whichever of i, j is nearer to m.
	anchor := i
	if j == i+1 && m >= d.mach[j] {
		anchor = j
	}
	return d.k[anchor] + slope*(m-d.mach[anchor])
}
