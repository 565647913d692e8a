package ballistics

// TrajectoryState is a raw integrator snapshot (spec.md §3): the
// minimal state needed to resume or report on an in-flight integration,
// before any of the derived/reporting fields in TrajectorySample are
// computed. RangeError carries a slice of these so a caller can recover
// whatever was integrated before a termination condition fired.
type TrajectoryState struct {
	Time         float64 // s since shot
	Position     Vector3 // ft, range frame
	Velocity     Vector3 // fps, range frame
	Mach         float64 // local Mach number of the bullet
	DensityRatio float64 // local air density / standard density
}
