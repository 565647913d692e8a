package ballistics

import (
	"math"

	"github.com/sirupsen/logrus"
)

// ICAO / saturation-vapor-pressure constants, ported from
// original_source/py_ballisticcalc/atmosphere.py (and original_source/
// atmosphere.py, the same constants under the flat layout).
const (
	cIcaoStandardTemperatureR         = 518.67
	cIcaoFreezingPointTemperatureR    = 459.67
	cTemperatureGradient              = -3.56616e-03
	cIcaoStandardHumidity             = 0.0
	cPressureExponent                 = -5.255876
	cSpeedOfSound                     = 49.0223
	cA0                               = 1.24871
	cA1                               = 0.0988438
	cA2                               = 0.00152907
	cA3                               = -3.07031e-06
	cA4                               = 4.21329e-07
	cA5                               = 3.342e-04
	cStandardTemperature              = 59.0
	cStandardPressure                 = 29.92
	cStandardDensity                  = 0.076474
	// cLowestTempF is the documented clamp floor (spec.md §3: "≈ −130 °F"),
	// ported from examples/core/constants.py's cLowestTempF — not physical
	// absolute zero.
	cLowestTempF              = -130.0
	cAltitudeCacheToleranceFt = 30.0
)

// Atmosphere holds ground-level conditions (altitude, pressure,
// temperature, humidity) and their derived density/speed-of-sound at that
// altitude (spec.md §3, §4.2).
type Atmosphere struct {
	Altitude0   float64 // ft
	Pressure0   float64 // inHg
	Temperature0 float64 // °F (pre-clamp)
	Humidity    float64 // fraction in [0,1]

	density0 float64 // lb/ft³
	mach0    float64 // fps
}

// NewAtmosphere builds an Atmosphere from altitude (ft), pressure (inHg),
// temperature (°F) and humidity. Humidity supplied as a percentage
// (>1) is normalized to a fraction (spec.md §3 invariant) with a warning.
// Invalid primary inputs fall back to ICAO standard sea level (spec.md
// §4.2).
func NewAtmosphere(altitude, pressure, temperature, humidity float64, log logrus.FieldLogger) *Atmosphere {
	if log == nil {
		log = logrus.StandardLogger()
	}

	if !isFiniteAtmosphereInput(altitude, pressure, temperature, humidity) || pressure <= 0 {
		warnInvalidAtmosphereInputs(log)
		return icaoAt(0, log)
	}

	if humidity > 1 {
		warnHumidityPercent(log, humidity)
		humidity = humidity / 100
	}
	if humidity < 0 {
		humidity = 0
	}
	if humidity > 1 {
		humidity = 1
	}

	a := &Atmosphere{Altitude0: altitude, Pressure0: pressure, Temperature0: temperature, Humidity: humidity}
	a.calculate(log)
	return a
}

func isFiniteAtmosphereInput(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// ICAOAtmosphere builds the ICAO standard atmosphere at the given
// altitude (spec.md §6 atmosphere_icao).
func ICAOAtmosphere(altitudeFt float64, log logrus.FieldLogger) *Atmosphere {
	return icaoAt(altitudeFt, log)
}

func icaoAt(altitudeFt float64, log logrus.FieldLogger) *Atmosphere {
	temperature := cIcaoStandardTemperatureR + altitudeFt*cTemperatureGradient - cIcaoFreezingPointTemperatureR
	pressure := cStandardPressure * math.Pow(cIcaoStandardTemperatureR/(temperature+cIcaoFreezingPointTemperatureR), cPressureExponent)
	a := &Atmosphere{Altitude0: altitudeFt, Pressure0: pressure, Temperature0: temperature, Humidity: cIcaoStandardHumidity}
	a.calculate(log)
	return a
}

// calculate0 is the primary ICAO-fps formula (spec.md §4.2), ported from
// Atmosphere.calculate0 in the original source. Humidity correction is
// skipped when T <= 0°F, per spec.md §9's resolved Open Question.
func calculate0(t, p, humidity float64) (density, mach float64) {
	hc := p / cStandardPressure
	if t > 0 {
		et0 := cA0 + t*(cA1+t*(cA2+t*(cA3+t*cA4)))
		et := cA5 * humidity * et0
		hc = (p - 0.3783*et) / cStandardPressure
	}
	density = cStandardDensity * (cIcaoStandardTemperatureR / (t + cIcaoFreezingPointTemperatureR)) * hc
	mach = math.Sqrt(t+cIcaoFreezingPointTemperatureR) * cSpeedOfSound
	return density, mach
}

func (a *Atmosphere) calculate(log logrus.FieldLogger) {
	t := clampTemperatureFloor(a.Temperature0, log)
	density, mach := calculate0(t, a.Pressure0, a.Humidity)
	a.density0 = density
	a.mach0 = mach
}

// clampTemperatureFloor clamps T to the cLowestTempF floor (−130 °F)
// and warns when it had to (spec.md §4.2 Failure).
func clampTemperatureFloor(t float64, log logrus.FieldLogger) float64 {
	if t < cLowestTempF {
		warnTemperatureFloor(log, t, cLowestTempF)
		return cLowestTempF
	}
	return t
}

// Density returns the absolute air density (lb/ft³) at Altitude0.
func (a *Atmosphere) Density() float64 { return a.density0 }

// DensityRatio returns Density()/cStandardDensity.
func (a *Atmosphere) DensityRatio() float64 { return a.density0 / cStandardDensity }

// Mach0 returns the local speed of sound (fps) at Altitude0.
func (a *Atmosphere) Mach0() float64 { return a.mach0 }

// GetDensityAndMachForAltitude returns (density_ratio, mach_fps) at the
// given altitude (ft). Per spec.md §4.2's optimization invariant, an
// altitude within 30 ft of Altitude0 returns the cached ground-level
// values exactly; otherwise it recomputes using the standard lapse rate.
func (a *Atmosphere) GetDensityAndMachForAltitude(altitude float64, log logrus.FieldLogger) (densityRatio, mach float64) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if math.Abs(a.Altitude0-altitude) < cAltitudeCacheToleranceFt {
		return a.DensityRatio(), a.mach0
	}

	ta := cIcaoStandardTemperatureR + a.Altitude0*cTemperatureGradient - cIcaoFreezingPointTemperatureR
	tb := cIcaoStandardTemperatureR + altitude*cTemperatureGradient - cIcaoFreezingPointTemperatureR
	t0 := clampTemperatureFloor(a.Temperature0, log)
	t := t0 + tb - ta
	t = clampTemperatureFloor(t, log)
	p := a.Pressure0 * math.Pow((t0+cIcaoFreezingPointTemperatureR)/(t+cIcaoFreezingPointTemperatureR), cPressureExponent)

	density, mach := calculate0(t, p, a.Humidity)
	return density / cStandardDensity, mach
}
