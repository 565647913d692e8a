package ballistics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindZeroAngleConverges(t *testing.T) {
	shot := baseShot(t)
	cfg := DefaultEngineConfig()

	elevation, err := FindZeroAngle(shot, 100*3, RK4Integrator{}, cfg)
	require.NoError(t, err)
	assert.Greater(t, elevation, 0.0)
	assert.Less(t, elevation, math.Pi/4)
}

func TestFindZeroAngleRoundTrip(t *testing.T) {
	shot := baseShot(t)
	cfg := DefaultEngineConfig()

	elevation, err := FindZeroAngle(shot, 200*3, RK4Integrator{}, cfg)
	require.NoError(t, err)

	shot.BarrelElevation = elevation
	samples, err := Integrate(shot, 300*3, 10*3, RK4Integrator{}, cfg)
	require.NoError(t, err)

	got, err := GetAt(samples, LookupByDistance, 200*3, InterpolatePCHIP)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, got.Drop, 0.2)
}

func TestFindZeroAngleUnreachableTarget(t *testing.T) {
	shot := baseShot(t)
	cfg := DefaultEngineConfig()

	_, err := FindZeroAngle(shot, 100000*3, RK4Integrator{}, cfg)
	require.Error(t, err)

	var zeroErr *ZeroFindingError
	require.ErrorAs(t, err, &zeroErr)
}

// TestFindZeroAngleWithLookAngle ports test_zero_with_look_angle
// (_examples/original_source/tests/test_zeros.py): zeroing on a slanted
// line of sight must solve against the sight-line target point, not the
// raw horizontal distance — the resulting elevation integrates through
// height_above_sight_line == 0 at the slant target (spec.md §4.4, §4.5.1).
func TestFindZeroAngleWithLookAngle(t *testing.T) {
	shot := baseShot(t)
	shot.LookAngle = 15 * math.Pi / 180
	cfg := DefaultEngineConfig()

	targetDistanceFt := 200.0 * 3
	elevation, err := FindZeroAngle(shot, targetDistanceFt, RK4Integrator{}, cfg)
	require.NoError(t, err)

	shot.BarrelElevation = elevation
	horizontalTargetFt := targetDistanceFt / math.Cos(shot.LookAngle)
	samples, err := Integrate(shot, horizontalTargetFt+50*3, 10*3, RK4Integrator{}, cfg)
	require.NoError(t, err)

	got, err := GetAt(samples, LookupByDistance, horizontalTargetFt, InterpolatePCHIP)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, got.Drop, 0.3)
}

// TestFindZeroAngleVerticalShot ports test_vertical_shot_zero: a look
// angle of 90° has no horizontal target to zero against, so the search
// defers to FindMaxRange (spec.md §4.5.1) and returns its elevation.
func TestFindZeroAngleVerticalShot(t *testing.T) {
	shot := baseShot(t)
	shot.LookAngle = math.Pi / 2
	cfg := DefaultEngineConfig()

	elevation, err := FindZeroAngle(shot, 200*3, RK4Integrator{}, cfg)
	require.NoError(t, err)

	_, wantElevation, err := FindMaxRange(shot, RK4Integrator{}, cfg)
	require.NoError(t, err)
	assert.InDelta(t, wantElevation, elevation, 1e-9)
}
