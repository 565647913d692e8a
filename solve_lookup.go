package ballistics

import "sort"

// LookupKey names which TrajectorySample field GetAt searches on
// (spec.md §4.5.3).
type LookupKey int

const (
	LookupByTime LookupKey = iota
	LookupByDistance
	LookupByMach
)

func lookupValue(s TrajectorySample, key LookupKey) float64 {
	switch key {
	case LookupByTime:
		return s.Time
	case LookupByMach:
		return s.Mach
	default:
		return s.Position.X
	}
}

// GetAt finds the first sample at which key equals value, interpolating
// the full TrajectorySample between the two bracketing raw samples over
// every numeric field, ported from spec.md §4.5.3's "reverse lookup"
// operation. For LookupByTime and LookupByDistance, samples must already
// be sorted ascending by key; the bracket is found by binary search and
// interpolated using PCHIP (or linear, with only two points).
// LookupByMach is not assumed monotone: samples are scanned forward for
// the first bracketing pair, which is interpolated linearly. NotFoundError
// is returned if value falls outside the covered range.
func GetAt(samples []TrajectorySample, key LookupKey, value float64, method InterpolationMethod) (TrajectorySample, error) {
	n := len(samples)
	if n == 0 {
		return TrajectorySample{}, &NotFoundError{Key: "samples", Value: value}
	}

	if key == LookupByMach {
		for i := 0; i < n; i++ {
			xa := lookupValue(samples[i], key)
			if xa == value {
				return samples[i], nil
			}
			if i+1 < n {
				xb := lookupValue(samples[i+1], key)
				if (xa < value) != (xb < value) {
					return interpolateSampleLinear(value, xa, samples[i], xb, samples[i+1]), nil
				}
			}
		}
		return TrajectorySample{}, &NotFoundError{Key: lookupKeyName(key), Value: value}
	}

	lo := lookupValue(samples[0], key)
	hi := lookupValue(samples[n-1], key)
	if value < lo || value > hi {
		return TrajectorySample{}, &NotFoundError{Key: lookupKeyName(key), Value: value}
	}

	i := sort.Search(n, func(i int) bool { return lookupValue(samples[i], key) >= value }) - 1
	if i < 0 {
		i = 0
	}
	if i >= n-1 {
		return samples[n-1], nil
	}
	if lookupValue(samples[i], key) == value {
		return samples[i], nil
	}

	a, b := samples[i], samples[i+1]
	xa, xb := lookupValue(a, key), lookupValue(b, key)
	if xb == xa {
		return a, nil
	}

	if method == InterpolatePCHIP && (i > 0 || i+2 <= n-1) {
		var c TrajectorySample
		var xc float64
		if i > 0 {
			c, xc = samples[i-1], lookupValue(samples[i-1], key)
			return interpolateSample(value, xc, c, xa, a, xb, b), nil
		}
		c, xc = samples[i+2], lookupValue(samples[i+2], key)
		return interpolateSample(value, xa, a, xb, b, xc, c), nil
	}

	return interpolateSampleLinear(value, xa, a, xb, b), nil
}

func lookupKeyName(key LookupKey) string {
	switch key {
	case LookupByTime:
		return "time"
	case LookupByMach:
		return "mach"
	default:
		return "distance"
	}
}

func interpolateSampleLinear(x, x0 float64, a TrajectorySample, x1 float64, b TrajectorySample) TrajectorySample {
	t := (x - x0) / (x1 - x0)
	lerp := func(p, q float64) float64 { return p + t*(q-p) }
	return TrajectorySample{
		TrajectoryState: TrajectoryState{
			Time:         lerp(a.Time, b.Time),
			Position:     a.Position.Add(b.Position.Subtract(a.Position).Scale(t)),
			Velocity:     a.Velocity.Add(b.Velocity.Subtract(a.Velocity).Scale(t)),
			Mach:         lerp(a.Mach, b.Mach),
			DensityRatio: lerp(a.DensityRatio, b.DensityRatio),
		},
		Drop:              lerp(a.Drop, b.Drop),
		DropAdjustment:    lerp(a.DropAdjustment, b.DropAdjustment),
		Windage:           lerp(a.Windage, b.Windage),
		WindageAdjustment: lerp(a.WindageAdjustment, b.WindageAdjustment),
		Energy:            lerp(a.Energy, b.Energy),
		OptimalGameWeight: lerp(a.OptimalGameWeight, b.OptimalGameWeight),
		Flags:             a.Flags | b.Flags,
	}
}

// interpolateSample runs Interpolate3PointPCHIP independently over every
// numeric field of three bracketing samples.
func interpolateSample(x, x0 float64, a TrajectorySample, x1 float64, b TrajectorySample, x2 float64, c TrajectorySample) TrajectorySample {
	pchip := func(y0, y1, y2 float64) float64 {
		return Interpolate3PointPCHIP(x, x0, y0, x1, y1, x2, y2)
	}
	return TrajectorySample{
		TrajectoryState: TrajectoryState{
			Time:         pchip(a.Time, b.Time, c.Time),
			Position:     Vector3{X: pchip(a.Position.X, b.Position.X, c.Position.X), Y: pchip(a.Position.Y, b.Position.Y, c.Position.Y), Z: pchip(a.Position.Z, b.Position.Z, c.Position.Z)},
			Velocity:     Vector3{X: pchip(a.Velocity.X, b.Velocity.X, c.Velocity.X), Y: pchip(a.Velocity.Y, b.Velocity.Y, c.Velocity.Y), Z: pchip(a.Velocity.Z, b.Velocity.Z, c.Velocity.Z)},
			Mach:         pchip(a.Mach, b.Mach, c.Mach),
			DensityRatio: pchip(a.DensityRatio, b.DensityRatio, c.DensityRatio),
		},
		Drop:              pchip(a.Drop, b.Drop, c.Drop),
		DropAdjustment:    pchip(a.DropAdjustment, b.DropAdjustment, c.DropAdjustment),
		Windage:           pchip(a.Windage, b.Windage, c.Windage),
		WindageAdjustment: pchip(a.WindageAdjustment, b.WindageAdjustment, c.WindageAdjustment),
		Energy:            pchip(a.Energy, b.Energy, c.Energy),
		OptimalGameWeight: pchip(a.OptimalGameWeight, b.OptimalGameWeight, c.OptimalGameWeight),
		Flags:             a.Flags | b.Flags | c.Flags,
	}
}
