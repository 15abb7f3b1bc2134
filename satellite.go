package orbitkit

import (
	"errors"
	"fmt"
)

// ErrNonPositiveParameter is returned when a physical parameter which must be
// strictly positive (mass, drag coefficient, area, densities, time scale) is
// supplied as zero or negative. Such values are rejected at configuration
// time, never clamped: they would silently corrupt later force computations.
var ErrNonPositiveParameter = errors.New("parameter must be strictly positive")

// Satellite status classification strings. The classification is purely
// informational and has no effect on the dynamics.
const (
	StatusOrbiting   = "Orbiting"
	StatusNearEscape = "Near escape velocity"
	StatusEscaping   = "Escaping"
	StatusCrashed    = "Crashed"
)

// The 500 m/substep cap on target-height transitions is dt-independent on
// purpose: a satellite glides to its new altitude at a fixed presentation
// rate regardless of the time multiplier.
const (
	targetHeightTolerance = 100.0 // m, dead-band before the target is considered reached
	targetHeightMaxShift  = 500.0 // m, maximum radial shift per substep
)

// targetHeight is an explicitly optional field: zero is a valid target, so
// presence is tracked with a flag rather than a sentinel value.
type targetHeight struct {
	value float64
	set   bool
}

// Satellite is the full per-satellite state record. It is owned by the Fleet
// that created it and mutated only by the propagator and by explicit live
// updates. Position and velocity are relative to the central body's center.
type Satellite struct {
	Name string
	R    []float64 // position in m
	V    []float64 // velocity in m/s

	Mass      float64 // in kg
	DragCoeff float64 // dimensionless Cd
	Area      float64 // cross-sectional area in m²

	// Parameters of the simplified exponential density fallback used when
	// UseSimpleDensity is set.
	SurfaceDensity   float64 // kg/m³ at zero altitude
	ScaleHeight      float64 // m
	UseSimpleDensity bool

	// AirResistance is the user-intended drag setting. Safety rules may
	// suppress drag for a given tick without touching this field.
	AirResistance bool

	// TimeScale multiplies the fleet's global time scale for this satellite only.
	TimeScale float64

	// Crashed is terminal: a crashed satellite is frozen at the state of the
	// crash-causing substep and excluded from all further integration.
	Crashed bool

	target targetHeight
}

// SatelliteConfig is the inbound configuration record for one satellite.
type SatelliteConfig struct {
	Name     string
	Position []float64
	// Velocity may be nil, in which case a circular tangential velocity is
	// derived at the given position.
	Velocity []float64

	Mass      float64
	DragCoeff float64
	Area      float64

	SurfaceDensity   float64 // defaults to 1.225
	ScaleHeight      float64 // defaults to 8500
	UseSimpleDensity bool

	AirResistance bool
	TimeScale     float64 // defaults to 1
}

func nonPositive(field string, val float64) error {
	return fmt.Errorf("%w: %s=%v", ErrNonPositiveParameter, field, val)
}

// Validate checks the configuration for physically meaningless values after
// applying defaults for the optional fields.
func (cfg *SatelliteConfig) Validate() error {
	if cfg.SurfaceDensity == 0 {
		cfg.SurfaceDensity = 1.225
	}
	if cfg.ScaleHeight == 0 {
		cfg.ScaleHeight = 8500
	}
	if cfg.TimeScale == 0 {
		cfg.TimeScale = 1
	}
	if len(cfg.Position) != 3 {
		return fmt.Errorf("position must be a 3-vector, got %d components", len(cfg.Position))
	}
	if cfg.Velocity != nil && len(cfg.Velocity) != 3 {
		return fmt.Errorf("velocity must be a 3-vector, got %d components", len(cfg.Velocity))
	}
	if cfg.Mass <= 0 {
		return nonPositive("mass", cfg.Mass)
	}
	if cfg.DragCoeff <= 0 {
		return nonPositive("drag coefficient", cfg.DragCoeff)
	}
	if cfg.Area <= 0 {
		return nonPositive("area", cfg.Area)
	}
	if cfg.SurfaceDensity <= 0 {
		return nonPositive("surface density", cfg.SurfaceDensity)
	}
	if cfg.ScaleHeight <= 0 {
		return nonPositive("scale height", cfg.ScaleHeight)
	}
	if cfg.TimeScale <= 0 {
		return nonPositive("time scale", cfg.TimeScale)
	}
	return nil
}

// NewSatellite builds a satellite from its configuration around the given
// central body, deriving a circular tangential velocity when none is supplied.
func NewSatellite(body CelestialBody, cfg SatelliteConfig) (*Satellite, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	V := cfg.Velocity
	if V == nil {
		V = TangentialVelocity(cfg.Position, body.CircularSpeed(norm(cfg.Position)))
	}
	return &Satellite{
		Name:             cfg.Name,
		R:                clone(cfg.Position),
		V:                clone(V),
		Mass:             cfg.Mass,
		DragCoeff:        cfg.DragCoeff,
		Area:             cfg.Area,
		SurfaceDensity:   cfg.SurfaceDensity,
		ScaleHeight:      cfg.ScaleHeight,
		UseSimpleDensity: cfg.UseSimpleDensity,
		AirResistance:    cfg.AirResistance,
		TimeScale:        cfg.TimeScale,
	}, nil
}

// SetTargetHeight requests a smooth radial transition to the given altitude
// above the surface. The propagator nudges the position toward it across
// substeps and clears it once within tolerance.
func (s *Satellite) SetTargetHeight(altitude float64) {
	s.target = targetHeight{value: altitude, set: true}
}

// TargetHeight returns the pending target altitude, if any.
func (s *Satellite) TargetHeight() (float64, bool) {
	return s.target.value, s.target.set
}

// ClearTargetHeight drops any pending target altitude.
func (s *Satellite) ClearTargetHeight() {
	s.target = targetHeight{}
}

// Status classifies the satellite's current regime against the escape speed
// at its current radius.
func (s *Satellite) Status(body CelestialBody) string {
	if s.Crashed {
		return StatusCrashed
	}
	vEsc := body.EscapeSpeed(norm(s.R))
	switch v := norm(s.V); {
	case v > 1.1*vEsc:
		return StatusEscaping
	case v > 0.9*vEsc:
		return StatusNearEscape
	default:
		return StatusOrbiting
	}
}

// Energy returns the total mechanical energy 0.5·m·v² − μ·m/r in joules.
func (s *Satellite) Energy(body CelestialBody) float64 {
	v := norm(s.V)
	return 0.5*s.Mass*v*v - body.GM()*s.Mass/norm(s.R)
}

// String implements the Stringer interface.
func (s *Satellite) String() string {
	return fmt.Sprintf("%s (m=%.1f kg, |R|=%.1f km, |V|=%.3f km/s, crashed=%v)",
		s.Name, s.Mass, norm(s.R)/1e3, norm(s.V)/1e3, s.Crashed)
}
