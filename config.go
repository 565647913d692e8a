package ballistics

import (
	"math"

	"github.com/sirupsen/logrus"
)

// EngineConfig groups every tunable named in spec.md §6. It is always an
// explicit argument to Integrate/solver calls — the core never reads
// process-global state (§5, §9 REDESIGN FLAGS: no Settings/PreferredUnits
// singleton).
type EngineConfig struct {
	// MinimumVelocity below which integration terminates (fps). Default 50.
	MinimumVelocity float64
	// MaximumDrop below which integration terminates (ft, negative). Default -15000.
	MaximumDrop float64
	// MinimumAltitude below which integration terminates (ft). Unset
	// (-Inf) means the core never terminates on altitude, only clamps the
	// temperature used to evaluate it and logs a warning.
	MinimumAltitude float64
	// StepMultiplier scales the base integration step; larger is
	// coarser/faster. Default 1.0.
	StepMultiplier float64
	// ZeroFindingAccuracy is the §4.5.1 convergence tolerance in feet. Default 5e-6.
	ZeroFindingAccuracy float64
	// MaxIterations caps the zero finder's secant loop. Default 50.
	MaxIterations int
	// MaxRangeIterations caps the max-range solver's bracketed search. Default 40.
	MaxRangeIterations int
	// ApexIsMaxRangeRadians is the near-π/2 sentinel used to recognize a
	// vertical shot (§6).
	ApexIsMaxRangeRadians float64
	// MaxCalculatorStepFt is the "maximum calculator step size" (ft),
	// the upper bound the base integration step is reduced below.
	MaxCalculatorStepFt float64
	// MaxStepIterations safety-caps the number of steps a single
	// integration may take before DidNotConverge is raised.
	MaxStepIterations int
	// Logger receives out-of-band numerical warnings (§7). Defaults to
	// logrus.StandardLogger() when nil.
	Logger logrus.FieldLogger
}

// DefaultEngineConfig returns the documented defaults from spec.md §6.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		MinimumVelocity:       50.0,
		MaximumDrop:           -15000.0,
		MinimumAltitude:       math.Inf(-1),
		StepMultiplier:        1.0,
		ZeroFindingAccuracy:   5e-6,
		MaxIterations:         50,
		MaxRangeIterations:    40,
		ApexIsMaxRangeRadians: 1e-3,
		MaxCalculatorStepFt:   1.0,
		MaxStepIterations:     1_000_000,
		Logger:                logrus.StandardLogger(),
	}
}

// logger returns cfg.Logger, falling back to logrus.StandardLogger() so
// callers never need to nil-check before logging a warning.
func (cfg EngineConfig) logger() logrus.FieldLogger {
	if cfg.Logger != nil {
		return cfg.Logger
	}
	return logrus.StandardLogger()
}
