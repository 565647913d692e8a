package ballistics

import (
	"math"
	"testing"
)

func TestNewWindProfileValidation(t *testing.T) {
	t.Run("Strictly Increasing Accepted", func(t *testing.T) {
		_, err := NewWindProfile([]WindSegment{
			{Velocity: 10, DirectionRads: 0, UntilDistance: 300},
			{Velocity: 5, DirectionRads: math.Pi / 2, UntilDistance: cWindSentinelFt},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("Non-Increasing Rejected", func(t *testing.T) {
		_, err := NewWindProfile([]WindSegment{
			{Velocity: 10, DirectionRads: 0, UntilDistance: 300},
			{Velocity: 5, DirectionRads: 0, UntilDistance: 300},
		})
		if err == nil {
			t.Fatal("expected error for non-increasing UntilDistance")
		}
	})
}

func TestWindProfileWindAt(t *testing.T) {
	t.Run("Empty Profile Is Zero Wind", func(t *testing.T) {
		w, _ := NewWindProfile(nil)
		v := w.WindAt(500)
		assertEqual(t, v, Vector3{})
	})

	t.Run("Selects Correct Segment", func(t *testing.T) {
		w, _ := NewWindProfile([]WindSegment{
			{Velocity: 10, DirectionRads: 0, UntilDistance: 300},
			{Velocity: 20, DirectionRads: math.Pi / 2, UntilDistance: cWindSentinelFt},
		})
		near := w.WindAt(100)
		far := w.WindAt(10000)

		assertApproxEqual(t, near.X, 10, 1e-9)
		assertApproxEqual(t, near.Z, 0, 1e-9)
		assertApproxEqual(t, far.Z, 20, 1e-9)
	})

	t.Run("Last Segment Extends Past Its Own UntilDistance", func(t *testing.T) {
		w, _ := NewWindProfile([]WindSegment{
			{Velocity: 7, DirectionRads: 0, UntilDistance: 100},
		})
		v := w.WindAt(1e7)
		assertApproxEqual(t, v.X, 7, 1e-9)
	})
}
