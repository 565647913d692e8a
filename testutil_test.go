package ballistics

import (
	"math"
	"reflect"
	"testing"
)

func assertEqual(t *testing.T, actual, expected interface{}) {
	t.Helper()
	if !reflect.DeepEqual(actual, expected) {
		t.Errorf("expected %v (type %T), got %v (type %T)", expected, expected, actual, actual)
	}
}

func assertApproxEqual(t *testing.T, actual, expected, tolerance float64) {
	t.Helper()
	if math.Abs(actual-expected) > tolerance {
		t.Errorf("expected %f ± %f, got %f", expected, tolerance, actual)
	}
}
