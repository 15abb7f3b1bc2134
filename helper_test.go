package orbitkit

import (
	"math"

	kitlog "github.com/go-kit/kit/log"
	"github.com/gonum/floats"
)

func vectorsEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := len(a) - 1; i >= 0; i-- {
		if !floats.EqualWithinAbs(a[i], b[i], 1e-9) {
			return false
		}
	}
	return true
}

// newQuietFleet returns a fleet which does not log, to keep test output readable.
func newQuietFleet(body CelestialBody) *Fleet {
	f := NewFleet(body)
	f.SetLogger(kitlog.NewNopLogger())
	return f
}

// leoConfig returns a drag-free satellite on the 400 km circular-ish orbit of
// the reference scenario.
func leoConfig() SatelliteConfig {
	return SatelliteConfig{
		Name:      "leo",
		Position:  []float64{6771000, 0, 0},
		Velocity:  []float64{0, 7669, 0},
		Mass:      1200,
		DragCoeff: 2.2,
		Area:      4,
	}
}

// tickFor advances the fleet by exactly total seconds of external time,
// keeping each tick within the substep budget so no time is dropped.
func tickFor(f *Fleet, total float64) {
	const maxTick = MaxStep * MaxSubsteps
	for total > 1e-9 {
		dt := math.Min(maxTick, total)
		f.Tick(dt)
		total -= dt
	}
}

func period(body CelestialBody, r float64) float64 {
	return 2 * math.Pi * math.Sqrt(r*r*r/body.GM())
}
