package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/sirupsen/logrus"

	"ballistics_go"
)

func prettyPrint(v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(string(data))
}

// g1DragTable is a short illustrative G1 drag table (Mach, CD), enough
// to exercise the engine end to end. Real callers supply a full table.
var g1DragTable = []ballistics.DragDataPoint{
	{Mach: 0.00, CD: 0.2629},
	{Mach: 0.40, CD: 0.2558},
	{Mach: 0.80, CD: 0.2413},
	{Mach: 0.90, CD: 0.2438},
	{Mach: 0.95, CD: 0.2629},
	{Mach: 1.00, CD: 0.3010},
	{Mach: 1.05, CD: 0.3260},
	{Mach: 1.10, CD: 0.3282},
	{Mach: 1.20, CD: 0.3152},
	{Mach: 1.50, CD: 0.2553},
	{Mach: 2.00, CD: 0.2028},
	{Mach: 3.00, CD: 0.1567},
	{Mach: 5.00, CD: 0.1249},
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	drag, err := ballistics.BuildDragCurve(g1DragTable, 0.223, ballistics.InterpolatePCHIP)
	if err != nil {
		panic(err)
	}

	atmo := ballistics.ICAOAtmosphere(0, logrus.StandardLogger())
	wind, err := ballistics.NewWindProfile(nil)
	if err != nil {
		panic(err)
	}

	shot := ballistics.ShotProperties{
		MuzzleVelocity: 2700,
		SightHeight:    1.5 / 12,
		Drag:           drag,
		Atmosphere:     atmo,
		Wind:           wind,
		BulletWeight:   168,
		Diameter:       0.308,
		Length:         1.2,
		TwistInches:    10,
		TwistRightHand: true,
	}

	cfg := ballistics.DefaultEngineConfig()

	elevation, err := ballistics.FindZeroAngle(shot, 100*3, ballistics.RK4Integrator{}, cfg)
	if err != nil {
		fmt.Println("zero solve failed:", err)
		os.Exit(1)
	}
	fmt.Printf("Zero elevation for 100yd: %.6f rad (%.4f MOA)\n", elevation, elevation*180/math.Pi*60)

	shot.BarrelElevation = elevation
	samples, err := ballistics.Integrate(shot, 1000*3, 100*3, ballistics.RK4Integrator{}, cfg)
	if err != nil {
		fmt.Println("integration ended early:", err)
	}

	fmt.Printf("Computed %d range samples\n", len(samples))
	if len(samples) > 0 {
		prettyPrint(samples[len(samples)-1])
	}

	rangeFt, maxElevation, err := ballistics.FindMaxRange(shot, ballistics.RK4Integrator{}, cfg)
	if err != nil {
		fmt.Println("max range solve failed:", err)
		return
	}
	fmt.Printf("Max range: %.1f ft at elevation %.4f rad\n", rangeFt, maxElevation)
}
