package orbitkit

import (
	"fmt"
	"math"
)

// G is the universal gravitational constant in m³/(kg·s²).
const G = 6.6743e-11

// CelestialBody defines the central body of a simulation. It is fixed at the
// origin and does not move. All lengths are in meters, masses in kilograms;
// unlike mission-design tooling which tends to work in kilometers, the
// atmospheric layer boundaries and crash floors here are specified in meters,
// so the whole module stays in SI base units.
type CelestialBody struct {
	Name   string
	Radius float64 // equatorial radius in m
	Mass   float64 // in kg
	μ      float64 // gravitational parameter G·Mass in m³/s²
	// CrashAltitude is the altitude in m below which a satellite is
	// considered lost to the atmosphere.
	CrashAltitude float64
}

// NewBody returns a celestial body with its gravitational parameter derived
// from the provided mass.
func NewBody(name string, radius, mass, crashAltitude float64) CelestialBody {
	return CelestialBody{Name: name, Radius: radius, Mass: mass, μ: G * mass, CrashAltitude: crashAltitude}
}

// GM returns μ (which is unexported because it's a lowercase letter).
func (c CelestialBody) GM() float64 {
	return c.μ
}

// Altitude returns the altitude above the body's surface of the given
// position vector.
func (c CelestialBody) Altitude(R []float64) float64 {
	return norm(R) - c.Radius
}

// CircularSpeed returns the speed of a circular orbit of radius r (in m,
// from the body center).
func (c CelestialBody) CircularSpeed(r float64) float64 {
	return math.Sqrt(c.μ / r)
}

// EscapeSpeed returns the minimum speed at radius r sufficient to leave the
// body's gravitational influence.
func (c CelestialBody) EscapeSpeed(r float64) float64 {
	return math.Sqrt(2 * c.μ / r)
}

// String implements the Stringer interface.
func (c CelestialBody) String() string {
	return fmt.Sprintf("%s (r=%.0f km)", c.Name, c.Radius/1e3)
}

// Equals returns whether the provided celestial body is the same.
func (c CelestialBody) Equals(b CelestialBody) bool {
	return c.Name == b.Name && c.Radius == b.Radius && c.Mass == b.Mass && c.CrashAltitude == b.CrashAltitude
}

// Earth is home.
var Earth = NewBody("Earth", 6371000, 5.972e24, 80000)
