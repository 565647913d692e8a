package ballistics

import (
	"math"

	"github.com/sirupsen/logrus"
)

// cGravityConstant is gravitational acceleration along -Y, in fps²,
// ported from trajectory_calculator.py's cGravityConstant.
const cGravityConstant = -32.17405

// Dynamics computes acceleration (fps²) at a given position/velocity,
// closing over everything else a single shot needs (drag curve,
// atmosphere, wind). Integrators call it once per stage, re-evaluating
// drag/atmosphere/wind at each stage rather than approximating it
// (grounded on true_rk4_integrator.go's DynamicsFunction pattern).
type Dynamics func(position, velocity Vector3) Vector3

func buildDynamics(shot ShotProperties, log logrus.FieldLogger) Dynamics {
	return func(position, velocity Vector3) Vector3 {
		altitude := shot.InitialAltitude + position.Y
		densityRatio, machFps := shot.Atmosphere.GetDensityAndMachForAltitude(altitude, log)

		wind := Vector3{}
		if shot.Wind != nil {
			wind = shot.Wind.WindAt(position.X)
		}
		relVel := velocity.Subtract(wind)
		speed := relVel.Magnitude()

		var dragAccel Vector3
		if speed > 0 {
			mach := speed / machFps
			k := shot.Drag.DragByMach(mach)
			dragAccel = relVel.Scale(-k * speed * densityRatio)
		}

		gravity := Vector3{X: 0, Y: cGravityConstant, Z: 0}
		return dragAccel.Add(gravity)
	}
}

// Integrator advances a TrajectoryState by one time step under the
// supplied Dynamics (spec.md §4.4). Implementations only touch
// Position/Velocity/Time — Mach/DensityRatio are filled in by the
// caller from the post-step position, since they're reporting fields
// rather than integration state.
type Integrator interface {
	Name() string
	Order() int
	Step(s TrajectoryState, dt float64, dyn Dynamics) TrajectoryState
}

// EulerIntegrator is first-order explicit Euler.
type EulerIntegrator struct{}

func (EulerIntegrator) Name() string { return "euler" }
func (EulerIntegrator) Order() int   { return 1 }

func (EulerIntegrator) Step(s TrajectoryState, dt float64, dyn Dynamics) TrajectoryState {
	accel := dyn(s.Position, s.Velocity)
	s.Position = s.Position.Add(s.Velocity.Scale(dt))
	s.Velocity = s.Velocity.Add(accel.Scale(dt))
	s.Time += dt
	return s
}

// RK4Integrator is the classical fourth-order Runge–Kutta method,
// re-evaluating Dynamics at each of the four stages (grounded on
// true_rk4_integrator.go's TrueRK4Integrator — NOT on
// integration_engine.go's RungeKutta4Integrator, which only scales k1
// rather than re-evaluating the dynamics function and so does not
// actually converge at fourth order).
type RK4Integrator struct{}

func (RK4Integrator) Name() string { return "rk4" }
func (RK4Integrator) Order() int   { return 4 }

type rk4Derivative struct {
	dPos Vector3
	dVel Vector3
}

func (RK4Integrator) Step(s TrajectoryState, dt float64, dyn Dynamics) TrajectoryState {
	eval := func(pos, vel Vector3) rk4Derivative {
		return rk4Derivative{dPos: vel, dVel: dyn(pos, vel)}
	}

	k1 := eval(s.Position, s.Velocity)
	k2 := eval(s.Position.Add(k1.dPos.Scale(dt/2)), s.Velocity.Add(k1.dVel.Scale(dt/2)))
	k3 := eval(s.Position.Add(k2.dPos.Scale(dt/2)), s.Velocity.Add(k2.dVel.Scale(dt/2)))
	k4 := eval(s.Position.Add(k3.dPos.Scale(dt)), s.Velocity.Add(k3.dVel.Scale(dt)))

	dPos := k1.dPos.Add(k2.dPos.Scale(2)).Add(k3.dPos.Scale(2)).Add(k4.dPos).Scale(dt / 6)
	dVel := k1.dVel.Add(k2.dVel.Scale(2)).Add(k3.dVel.Scale(2)).Add(k4.dVel).Scale(dt / 6)

	s.Position = s.Position.Add(dPos)
	s.Velocity = s.Velocity.Add(dVel)
	s.Time += dt
	return s
}

// deriveTimeStep converts a reporting distance step into an integration
// time step, ported from trajectory_calculator.py's
// get_calculation_step: halve it, then keep halving (here: dividing by
// the ceiling ratio) until it no longer exceeds the configured maximum
// calculator step size.
func deriveTimeStep(distStepFt, muzzleVelocity float64, cfg EngineConfig) float64 {
	step := distStepFt / 2
	if step <= 0 {
		step = cfg.MaxCalculatorStepFt
	}
	if step > cfg.MaxCalculatorStepFt {
		step = step / math.Ceil(step/cfg.MaxCalculatorStepFt)
	}
	step *= cfg.StepMultiplier
	if muzzleVelocity <= 0 {
		return step
	}
	return step / muzzleVelocity
}

// Integrate runs a full trajectory from the muzzle until a termination
// condition fires (spec.md §4.4). Samples are reported every distStepFt
// of downrange travel, each tagged with any events detected since the
// previous sample.
func Integrate(shot ShotProperties, maxRangeFt, distStepFt float64, integrator Integrator, cfg EngineConfig) ([]TrajectorySample, error) {
	log := newRunLogger(cfg)
	dyn := buildDynamics(shot, log)

	dt := deriveTimeStep(distStepFt, shot.MuzzleVelocity, cfg)
	if dt <= 0 {
		return nil, &InvalidInputError{Message: "derived integration time step is non-positive"}
	}

	velocity := Vector3{
		X: shot.MuzzleVelocity * math.Cos(shot.BarrelElevation) * math.Cos(shot.BarrelAzimuth),
		Y: shot.MuzzleVelocity * math.Sin(shot.BarrelElevation),
		Z: shot.MuzzleVelocity * math.Cos(shot.BarrelElevation) * math.Sin(shot.BarrelAzimuth),
	}
	state := TrajectoryState{
		Time:     0,
		Position: Vector3{X: 0, Y: -shot.SightHeight, Z: 0},
		Velocity: velocity,
	}

	var samples []TrajectorySample
	var partial []TrajectoryState
	nextMark := 0.0
	prevDrop := math.NaN()
	prevMach := math.NaN()
	prevVelY := math.NaN()
	prevState := state

	fillDerived := func(s *TrajectoryState) {
		altitude := shot.InitialAltitude + s.Position.Y
		densityRatio, machFps := shot.Atmosphere.GetDensityAndMachForAltitude(altitude, log)
		s.DensityRatio = densityRatio
		speed := s.Velocity.Magnitude()
		if machFps > 0 {
			s.Mach = speed / machFps
		}
	}
	fillDerived(&state)

	emit := func(s TrajectoryState, flags EventFlag) {
		lineOfSightDrop := s.Position.Y - s.Position.X*math.Tan(shot.LookAngle)
		windage := s.Position.Z + shot.spinDriftWindage(s.Time)
		sample := TrajectorySample{
			TrajectoryState:   s,
			Drop:              lineOfSightDrop,
			DropAdjustment:    GetCorrection(s.Position.X, -lineOfSightDrop),
			Windage:           windage,
			WindageAdjustment: GetCorrection(s.Position.X, windage),
			Energy:            calculateEnergy(shot.BulletWeight, s.Velocity.Magnitude()),
			OptimalGameWeight: calculateOptimalGameWeight(shot.BulletWeight, s.Velocity.Magnitude()),
			Flags:             flags,
		}
		samples = append(samples, sample)
	}

	var flags EventFlag
	for i := 0; i < cfg.MaxStepIterations; i++ {
		partial = append(partial, state)

		if state.Velocity.Magnitude() < cfg.MinimumVelocity {
			return samples, &RangeError{Reason: ReasonMinimumVelocityReached, Partial: partial}
		}
		if state.Position.Y < cfg.MaximumDrop {
			return samples, &RangeError{Reason: ReasonMaximumDropReached, Partial: partial}
		}
		if !math.IsInf(cfg.MinimumAltitude, -1) && shot.InitialAltitude+state.Position.Y < cfg.MinimumAltitude {
			return samples, &RangeError{Reason: ReasonMinimumAltitudeReached, Partial: partial}
		}

		lineOfSightDrop := state.Position.Y - state.Position.X*math.Tan(shot.LookAngle)
		if !math.IsNaN(prevDrop) {
			if prevDrop < 0 && lineOfSightDrop >= 0 {
				flags |= EventZeroUp
			} else if prevDrop > 0 && lineOfSightDrop <= 0 {
				flags |= EventZeroDown
			}
		}
		if !math.IsNaN(prevMach) && prevMach > 1 && state.Mach <= 1 {
			flags |= EventMach
		}
		if !math.IsNaN(prevVelY) && prevVelY > 0 && state.Velocity.Y <= 0 {
			flags |= EventApex
		}

		for state.Position.X >= nextMark && nextMark <= maxRangeFt {
			at := state
			if state.Position.X > nextMark && state.Position.X != prevState.Position.X {
				// Interpolate linearly onto the exact mark for reporting
				// purposes; the integrator itself keeps stepping freely.
				frac := (nextMark - prevState.Position.X) / (state.Position.X - prevState.Position.X)
				at = interpolateState(prevState, state, frac)
				fillDerived(&at)
			}
			markFlags := flags | EventRange
			emit(at, markFlags)
			flags = EventNone
			nextMark += distStepFt
		}

		if state.Position.X >= maxRangeFt {
			if len(samples) > 0 {
				samples[len(samples)-1].Flags |= EventMRT
			}
			return samples, nil
		}

		prevDrop = lineOfSightDrop
		prevMach = state.Mach
		prevVelY = state.Velocity.Y
		prevState = state

		state = integrator.Step(state, dt, dyn)
		fillDerived(&state)
	}

	return samples, &RangeError{Reason: ReasonDidNotConverge, Partial: partial}
}

func interpolateState(a, b TrajectoryState, frac float64) TrajectoryState {
	return TrajectoryState{
		Time:     a.Time + frac*(b.Time-a.Time),
		Position: a.Position.Add(b.Position.Subtract(a.Position).Scale(frac)),
		Velocity: a.Velocity.Add(b.Velocity.Subtract(a.Velocity).Scale(frac)),
	}
}
