package ballistics

import "math"

// FindZeroAngle solves for the barrel elevation (rad) that puts the
// trajectory through the line of sight at horizontal distance
// targetDistanceFt·sec(LookAngle) (targetDistanceFt itself for a level
// sight line), ported from trajectory_calculator.py's sight_angle: a
// secant-like search that, for each guess, steps the trajectory out to
// the target directly rather than running a full Integrate, matching the
// original's performance-minded approach (spec.md §4.5.1).
//
// For a near-vertical look_angle (shooting straight up a slope), there is
// no horizontal target distance to zero against — the search instead
// asks how far the bullet can be thrown up the slope, which is exactly
// what FindMaxRange answers (spec.md §4.5.2), so the vertical case is
// deferred to it (_examples/original_source/tests/test_zeros.py's
// test_vertical_shot_zero).
func FindZeroAngle(shot ShotProperties, targetDistanceFt float64, integrator Integrator, cfg EngineConfig) (float64, error) {
	if math.Abs(shot.LookAngle-math.Pi/2) < cfg.ApexIsMaxRangeRadians {
		_, elevation, err := FindMaxRange(shot, integrator, cfg)
		return elevation, err
	}

	log := newRunLogger(cfg)
	dyn := buildDynamics(shot, log)

	dt := deriveTimeStep(targetDistanceFt, shot.MuzzleVelocity, cfg)
	if dt <= 0 {
		return 0, &InvalidInputError{Message: "derived integration time step is non-positive"}
	}

	// The search below walks the trajectory out to horizontal distance
	// target_distance_ft * sec(look_angle) (spec.md §4.5.1).
	horizontalTargetFt := targetDistanceFt / math.Cos(shot.LookAngle)

	elevation := shot.LookAngle
	var lastMiss float64

	for i := 0; i < cfg.MaxIterations; i++ {
		velocity := Vector3{
			X: shot.MuzzleVelocity * math.Cos(elevation),
			Y: shot.MuzzleVelocity * math.Sin(elevation),
			Z: 0,
		}
		state := TrajectoryState{Position: Vector3{X: 0, Y: -shot.SightHeight, Z: 0}, Velocity: velocity}

		for state.Position.X < horizontalTargetFt {
			if state.Velocity.Magnitude() < cfg.MinimumVelocity {
				return 0, &ZeroFindingError{LastElevation: elevation, LastMissFt: lastMiss, Message: "velocity dropped below minimum before reaching target distance"}
			}
			if state.Position.Y < cfg.MaximumDrop {
				return 0, &ZeroFindingError{LastElevation: elevation, LastMissFt: lastMiss, Message: "drop exceeded maximum before reaching target distance"}
			}
			state = integrator.Step(state, dt, dyn)
		}

		heightAboveSightLine := state.Position.Y - state.Position.X*math.Tan(shot.LookAngle)
		lastMiss = heightAboveSightLine
		if math.Abs(heightAboveSightLine) < cfg.ZeroFindingAccuracy {
			return elevation, nil
		}

		elevation -= heightAboveSightLine / state.Position.X
	}

	return 0, &ZeroFindingError{LastElevation: elevation, LastMissFt: lastMiss, Message: "did not converge within MaxIterations"}
}
