package orbitkit

import (
	"testing"

	"github.com/gonum/floats"
)

func TestNewBody(t *testing.T) {
	moon := NewBody("Moon", 1737400, 7.342e22, 0)
	if !floats.EqualWithinRel(moon.GM(), G*7.342e22, 1e-12) {
		t.Fatalf("μ is %g", moon.GM())
	}
	if moon.Equals(Earth) {
		t.Fatal("the Moon is not the Earth")
	}
}

func TestEarthConstants(t *testing.T) {
	if Earth.Radius != 6371000 || Earth.Mass != 5.972e24 || Earth.CrashAltitude != 80000 {
		t.Fatalf("Earth misdefined: %+v", Earth)
	}
	if !floats.EqualWithinRel(Earth.GM(), 3.98589e14, 1e-4) {
		t.Fatalf("Earth μ is %g", Earth.GM())
	}
}

func TestAltitude(t *testing.T) {
	if alt := Earth.Altitude([]float64{Earth.Radius + 400e3, 0, 0}); alt != 400e3 {
		t.Fatalf("altitude is %f", alt)
	}
	if alt := Earth.Altitude([]float64{0, 0, Earth.Radius}); alt != 0 {
		t.Fatalf("surface altitude is %f", alt)
	}
}
