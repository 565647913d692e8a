package ballistics

import "fmt"

// RangeErrorReason enumerates why an integration terminated before
// reaching max_range (spec.md §7).
type RangeErrorReason int

const (
	// ReasonMinimumVelocityReached fires when |v| drops below
	// EngineConfig.MinimumVelocity.
	ReasonMinimumVelocityReached RangeErrorReason = iota
	// ReasonMaximumDropReached fires when position.Y falls below
	// EngineConfig.MaximumDrop.
	ReasonMaximumDropReached
	// ReasonMinimumAltitudeReached fires when altitude₀+position.Y falls
	// below a configured EngineConfig.MinimumAltitude.
	ReasonMinimumAltitudeReached
	// ReasonDidNotConverge fires when the step-loop safety cap is hit
	// before the target range or a termination condition is reached.
	ReasonDidNotConverge
)

func (r RangeErrorReason) String() string {
	switch r {
	case ReasonMinimumVelocityReached:
		return "MinimumVelocityReached"
	case ReasonMaximumDropReached:
		return "MaximumDropReached"
	case ReasonMinimumAltitudeReached:
		return "MinimumAltitudeReached"
	case ReasonDidNotConverge:
		return "DidNotConverge"
	default:
		return "Unknown"
	}
}

// InvalidInputError reports a malformed drag table, non-positive BC, or
// other invalid construction argument (spec.md §7).
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Message)
}

// RangeError reports that an integration terminated before reaching
// max_range. The partial trajectory computed up to the point of
// termination is always attached — it is never silently dropped
// (spec.md §7).
type RangeError struct {
	Reason  RangeErrorReason
	Partial []TrajectoryState
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("range error: %s after %d states", e.Reason, len(e.Partial))
}

// ZeroFindingError reports that FindZeroAngle could not converge: a trial
// trajectory fell below MinimumVelocity or MaximumDrop before reaching the
// target, or the iteration cap was reached (spec.md §7 / §4.5.1). No
// apex-before-target check is made. FindMaxRange also returns it when its
// search fails or ends outside the valid elevation range.
type ZeroFindingError struct {
	LastElevation float64
	LastMissFt    float64
	Message       string
}

func (e *ZeroFindingError) Error() string {
	return fmt.Sprintf("zero finding error: %s (elevation=%.6frad miss=%.3fft)",
		e.Message, e.LastElevation, e.LastMissFt)
}

// NotFoundError reports that a monotonic/bisect lookup (§4.5.3) fell
// outside the sampled range.
type NotFoundError struct {
	Key   string
	Value float64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("not found: no sample with %s == %v", e.Key, e.Value)
}
