package ballistics

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// cWindSentinelFt is an effectively-infinite UntilDistance (ft) for a
// wind segment that covers the rest of the trajectory, ported from
// wind.py's default (there: 9999 km; here expressed in feet, the core's
// native unit, per spec.md §3). NewWindProfile does not fill it in for
// an unset UntilDistance: a zero value is rejected.
const cWindSentinelFt = 9999 * 3280.8399

// WindSegment describes wind conditions from velocity (fps) and a
// direction angle (radians) measured per spec.md §3's convention: 0 is a
// tailwind (blowing from behind the shooter toward the target), positive
// angles rotate clockwise as seen from above (90° is a full-value wind
// from the shooter's left). UntilDistance is the downrange distance (ft)
// at which this segment ends and the next begins.
type WindSegment struct {
	Velocity      float64
	DirectionRads float64
	UntilDistance float64
}

// WindProfile is an ordered, non-overlapping sequence of WindSegments
// covering downrange distance from 0 outward. The last segment's
// UntilDistance is treated as extending to infinity regardless of its
// stored value (spec.md §4.3).
type WindProfile struct {
	segments []WindSegment
}

// NewWindProfile validates and wraps a list of wind segments. Segments
// must be supplied in increasing order of UntilDistance; a nil or empty
// slice yields a still-usable zero-wind profile.
func NewWindProfile(segments []WindSegment) (*WindProfile, error) {
	if len(segments) > 0 {
		untilDistances := make([]float64, len(segments))
		for i, seg := range segments {
			untilDistances[i] = seg.UntilDistance
		}
		if floats.Min(untilDistances) <= 0 {
			return nil, &InvalidInputError{Message: "wind segment UntilDistance values must be positive"}
		}
	}
	for i := 1; i < len(segments); i++ {
		if segments[i].UntilDistance <= segments[i-1].UntilDistance {
			return nil, &InvalidInputError{Message: "wind segments must have strictly increasing UntilDistance"}
		}
	}
	return &WindProfile{segments: segments}, nil
}

// vectorAt resolves the wind segment active at downrange distance x (ft)
// into a range-frame Vector3 (X downrange, Y vertical, Z windage),
// ported from trajectory_calculator.py's wind_to_vector. Both the
// downrange (X) and cross-range (Z) components are kept; the vertical (Y)
// component is always zero, and no sight, look or cant angle is applied.
func (w *WindProfile) vectorAt(x float64) Vector3 {
	seg := w.segmentAt(x)
	// Range-frame decomposition per spec.md §4.3: 0° is a tailwind,
	// blowing toward the target in +X (it adds to the bullet's ground
	// speed and so subtracts from v_rel = v - wind); a wind from the
	// left (+90°) pushes the bullet in +Z.
	return Vector3{
		X: seg.Velocity * math.Cos(seg.DirectionRads),
		Y: 0,
		Z: seg.Velocity * math.Sin(seg.DirectionRads),
	}
}

func (w *WindProfile) segmentAt(x float64) WindSegment {
	if len(w.segments) == 0 {
		return WindSegment{}
	}
	for i, seg := range w.segments {
		if i == len(w.segments)-1 || x < seg.UntilDistance {
			return seg
		}
	}
	return w.segments[len(w.segments)-1]
}

// WindAt returns the wind vector (fps, range frame) at downrange distance
// x (ft). It is a pure function of x — callers needing to scan
// monotonically increasing x during integration may do so directly
// without an external cursor, since each call is O(segments) and the
// segment count is always small (spec.md §9 DESIGN NOTES).
func (w *WindProfile) WindAt(x float64) Vector3 {
	return w.vectorAt(x)
}
