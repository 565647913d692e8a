package ballistics

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// newRunLogger tags a logger with a per-integration correlation id so a
// caller running several integrations concurrently (§5: the engine is
// re-entrant, holds no shared mutable state) can tell their log lines
// apart.
func newRunLogger(cfg EngineConfig) logrus.FieldLogger {
	return cfg.logger().WithField("run_id", uuid.New().String())
}

// warnTemperatureFloor logs that an evaluation clamped temperature to the
// cLowestTempF floor (spec.md §4.2 Failure).
func warnTemperatureFloor(log logrus.FieldLogger, tFahrenheit, floor float64) {
	log.WithFields(logrus.Fields{
		"temperature_f": tFahrenheit,
		"floor_f":       floor,
	}).Warn("temperature below absolute-zero floor, clamped")
}

// warnHumidityPercent logs that humidity was supplied as a percentage
// (>1) and was normalized to a fraction (spec.md §3 Atmosphere invariants).
func warnHumidityPercent(log logrus.FieldLogger, raw float64) {
	log.WithField("humidity_raw", raw).Warn("humidity looked like a percentage, normalized to a fraction")
}

// warnInvalidAtmosphereInputs logs that one or more primary atmosphere
// inputs were invalid and the model fell back to ICAO standard sea level
// (spec.md §4.2 Atmosphere invariants).
func warnInvalidAtmosphereInputs(log logrus.FieldLogger) {
	log.Warn("invalid atmosphere inputs, falling back to ICAO standard sea level")
}
