package ballistics

import "math"

// ShotProperties bundles everything a single trajectory integration
// needs to run (spec.md §3 ShotProperties): the projectile, the gun's
// aim, and the environment it's fired into. It is built once by the
// caller and never mutated by the engine (§5 re-entrancy).
type ShotProperties struct {
	MuzzleVelocity  float64 // fps
	SightHeight     float64 // ft, sight line above bore line
	BarrelElevation float64 // rad, angle of the bore above the sight's zero
	BarrelAzimuth   float64 // rad, horizontal angle of the bore off boresight
	LookAngle       float64 // rad, angle of the sight line above/below horizontal
	InitialAltitude float64 // ft, firing-point altitude for atmosphere lookups

	Drag       *DragCurve
	Atmosphere *Atmosphere
	Wind       *WindProfile

	// BulletWeight (grains), Diameter (in) and Length (in) are only
	// needed for spin-drift/energy/OGW diagnostics; they are optional —
	// a zero BulletWeight disables the spin-drift correction and the
	// Energy/OptimalGameWeight fields read as zero.
	BulletWeight float64
	Diameter     float64
	Length       float64
	TwistInches  float64 // rifling twist rate, in per turn; 0 = no twist (disables spin drift)
	TwistRightHand bool
}

// SectionalDensity returns weight/diameter²/7000, ported from
// drag_model.py's DragModel.sectional_density (a diagnostic field
// surfaced on ShotProperties per SPEC_FULL.md's supplemented features,
// not otherwise used by the integrator).
func (s ShotProperties) SectionalDensity() float64 {
	if s.Diameter == 0 {
		return 0
	}
	return s.BulletWeight / (s.Diameter * s.Diameter) / 7000.0
}

// StabilityCoefficient returns Miller's twist-stability coefficient for
// this bullet/barrel combination, ported from
// trajectory_calculator.py's calculate_stability_coefficient. Returns 0
// (meaning: no spin-drift correction) when twist or bullet geometry is
// unset.
func (s ShotProperties) StabilityCoefficient() float64 {
	if s.TwistInches == 0 || s.Diameter == 0 || s.Length == 0 || s.BulletWeight == 0 {
		return 0
	}
	twistRate := math.Abs(s.TwistInches) / s.Diameter
	lengthInCalibers := s.Length / s.Diameter
	sd := 30 * s.BulletWeight / (twistRate * twistRate * s.Diameter * s.Diameter * s.Diameter * lengthInCalibers * (1 + lengthInCalibers*lengthInCalibers))
	fv := math.Pow(s.MuzzleVelocity/2800, 1.0/3.0)

	ft := s.Atmosphere.Temperature0
	pt := s.Atmosphere.Pressure0
	ftp := ((ft + 460) / (59 + 460)) * (29.92 / pt)

	return sd * fv * ftp
}

// spinDriftWindage returns the windage correction (ft) imparted by
// gyroscopic spin drift at time t (s) since the shot, ported from
// trajectory_calculator.py's trajectory: the
// 1.25·(SC+1.2)·t^1.83·twist_coefficient/12 term. twist_coefficient is
// +1 for right-hand twist, -1 for left-hand.
func (s ShotProperties) spinDriftWindage(t float64) float64 {
	sc := s.StabilityCoefficient()
	if sc == 0 {
		return 0
	}
	twistCoefficient := 1.0
	if !s.TwistRightHand {
		twistCoefficient = -1.0
	}
	return 1.25 * (sc + 1.2) * math.Pow(t, 1.83) * twistCoefficient / 12.0
}
