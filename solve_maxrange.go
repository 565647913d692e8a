package ballistics

import (
	"math"

	"gonum.org/v1/gonum/optimize"
)

// finalDownrange integrates a single trial elevation with ZERO_DOWN
// detection and returns the downrange distance (ft) at that sight-line
// crossing (spec.md §4.5.2: "the reported distance is x at that event"),
// without generating or retaining TrajectorySamples — only FindMaxRange's
// search needs this, so it skips Integrate's reporting machinery
// entirely. If the trial trajectory exhausts its velocity/drop budget
// before ever crossing back below the line of sight (shouldn't happen
// for a realistic shot, since apex always precedes ZERO_DOWN for
// elevations below vertical), it falls back to the last position reached.
func finalDownrange(shot ShotProperties, elevation float64, integrator Integrator, cfg EngineConfig) float64 {
	log := newRunLogger(cfg)
	dyn := buildDynamics(shot, log)

	dt := deriveTimeStep(cfg.MaxCalculatorStepFt*2, shot.MuzzleVelocity, cfg)
	if dt <= 0 {
		return 0
	}

	velocity := Vector3{
		X: shot.MuzzleVelocity * math.Cos(elevation),
		Y: shot.MuzzleVelocity * math.Sin(elevation),
		Z: 0,
	}
	state := TrajectoryState{Position: Vector3{X: 0, Y: -shot.SightHeight, Z: 0}, Velocity: velocity}

	lineOfSightDrop := func(s TrajectoryState) float64 {
		return s.Position.Y - s.Position.X*math.Tan(shot.LookAngle)
	}

	var prevState TrajectoryState
	var prevDrop float64

	for i := 0; i < cfg.MaxStepIterations; i++ {
		if state.Velocity.Magnitude() < cfg.MinimumVelocity || state.Position.Y < cfg.MaximumDrop {
			return state.Position.X
		}

		prevState = state
		prevDrop = lineOfSightDrop(state)
		state = integrator.Step(state, dt, dyn)

		drop := lineOfSightDrop(state)
		if prevDrop > 0 && drop <= 0 {
			frac := prevDrop / (prevDrop - drop)
			crossing := interpolateState(prevState, state, frac)
			return crossing.Position.X
		}
	}
	return state.Position.X
}

// FindMaxRange finds the barrel elevation that maximizes downrange
// distance (spec.md §4.5.2), using gonum's derivative-free Nelder–Mead
// simplex method over a single scalar (elevation, radians) since the
// range-vs-elevation curve has no closed form once drag is non-trivial.
// Elevation is searched in [0, π/2); values outside that range are
// penalized rather than rejected, keeping the objective smooth for the
// simplex.
func FindMaxRange(shot ShotProperties, integrator Integrator, cfg EngineConfig) (rangeFt, elevationRad float64, err error) {
	maxElevation := math.Pi/2 - cfg.ApexIsMaxRangeRadians

	objective := func(x []float64) float64 {
		e := x[0]
		if e < 0 || e > maxElevation {
			return math.Abs(e-maxElevation) * 1e9
		}
		return -finalDownrange(shot, e, integrator, cfg)
	}

	problem := optimize.Problem{Func: objective}
	initX := []float64{maxElevation / 3}

	settings := &optimize.Settings{
		MajorIterations: cfg.MaxRangeIterations,
	}

	result, optErr := optimize.Minimize(problem, initX, settings, &optimize.NelderMead{})
	if optErr != nil {
		return 0, 0, &ZeroFindingError{Message: "max-range search did not converge: " + optErr.Error()}
	}

	elevation := result.X[0]
	if elevation < 0 || elevation > maxElevation {
		return 0, 0, &ZeroFindingError{Message: "max-range search converged outside the valid elevation range"}
	}

	return -result.F, elevation, nil
}
