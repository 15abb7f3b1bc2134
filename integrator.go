package orbitkit

import (
	"fmt"
	"math"

	kitlog "github.com/go-kit/kit/log"
)

const (
	// MaxStep is the substep size in seconds. Together with MaxSubsteps it
	// bounds the per-tick cost of one satellite regardless of the requested
	// delta: whatever cannot be integrated within the budget is dropped.
	MaxStep = 0.01
	// MaxSubsteps caps the number of substeps per satellite per tick.
	MaxSubsteps = 50

	// MaxGlobalTimeScale and MaxSatelliteTimeScale are the safety ceilings on
	// the user-controlled time multipliers. Exceeding either clamps the
	// offending multiplier and raises a warning; it is never fatal.
	MaxGlobalTimeScale    = 20.0
	MaxSatelliteTimeScale = 10.0

	// Drag is suppressed below this altitude (in m) and above this fraction
	// of the escape speed: in both regimes the v² term grows fast enough to
	// destabilize the integration at large time multipliers.
	dragFloorAltitude  = 100000.0
	dragEscapeFraction = 0.95

	// minDragSpeed is the speed in m/s below which drag is not computed.
	minDragSpeed = 1.0
)

// Warning is a non-fatal condition raised during an advance, e.g. a clamped
// time scale. Warnings are surfaced to the caller for display and logged.
type Warning struct {
	Code   string
	Detail string
}

func (w Warning) String() string {
	return w.Code + ": " + w.Detail
}

// WarnUnstableTimeScale identifies warnings about clamped time multipliers.
const WarnUnstableTimeScale = "unstable time scale"

// Propagator advances satellite states around a single central body using a
// substepped half-step/full-step velocity scheme. The half-step velocity used
// for the position update gives the long-run energy behavior of a
// velocity-Verlet integrator, which a plain explicit Euler step would not
// provide at these step sizes.
type Propagator struct {
	Body   CelestialBody
	logger kitlog.Logger
}

// NewPropagator returns a propagator around the given body, logging through
// the provided logger.
func NewPropagator(body CelestialBody, logger kitlog.Logger) *Propagator {
	return &Propagator{Body: body, logger: logger}
}

// Advance integrates the satellite by dtReq seconds of external time, scaled
// by the global and per-satellite time multipliers. It reports whether the
// satellite crashed during this advance and any warnings raised. A crashed
// satellite or a non-positive delta is a no-op.
//
// The substep loop checks for a crash both at the top of each substep and
// again after the position update, so a satellite created below the crash
// floor crashes on its first advance without any force computation.
func (p *Propagator) Advance(sat *Satellite, dtReq, globalScale float64) (crashed bool, warnings []Warning) {
	if sat.Crashed || dtReq <= 0 {
		return false, nil
	}

	if globalScale > MaxGlobalTimeScale {
		warnings = append(warnings, p.warnClamp("global", globalScale, MaxGlobalTimeScale))
		globalScale = MaxGlobalTimeScale
	}
	satScale := sat.TimeScale
	if satScale > MaxSatelliteTimeScale {
		warnings = append(warnings, p.warnClamp("satellite", satScale, MaxSatelliteTimeScale))
		satScale = MaxSatelliteTimeScale
	}
	dt := dtReq * globalScale * satScale

	// Safety overrides are evaluated once per advance and affect only this
	// advance: the user-intended AirResistance setting is never overwritten,
	// so drag resumes by itself once the satellite returns to a safe regime.
	drag := sat.AirResistance
	if drag {
		r := norm(sat.R)
		if norm(sat.V) > dragEscapeFraction*p.Body.EscapeSpeed(r) {
			drag = false
		}
		if r-p.Body.Radius < dragFloorAltitude {
			drag = false
		}
	}

	for steps := 0; dt > 0 && steps < MaxSubsteps; steps++ {
		step := math.Min(MaxStep, dt)

		if p.Body.Altitude(sat.R) <= p.Body.CrashAltitude {
			p.crash(sat)
			return true, warnings
		}

		acc := p.acceleration(sat, sat.R, sat.V, drag)
		vHalf := addScaled(sat.V, acc, 0.5*step)
		sat.R = addScaled(sat.R, vHalf, step)

		if p.Body.Altitude(sat.R) <= p.Body.CrashAltitude {
			p.crash(sat)
			return true, warnings
		}

		accNew := p.acceleration(sat, sat.R, vHalf, drag)
		sat.V = addScaled(sat.V, accNew, step)

		p.nudgeTowardTarget(sat)
		dt -= step
	}
	return false, warnings
}

// acceleration returns the total acceleration in m/s² at position R with
// velocity V: central-body gravity plus, when enabled, atmospheric drag.
func (p *Propagator) acceleration(sat *Satellite, R, V []float64, dragOn bool) []float64 {
	r := norm(R)
	acc := scale(unit(R), -p.Body.GM()/(r*r))
	if !dragOn {
		return acc
	}
	v := norm(V)
	if v <= minDragSpeed {
		return acc
	}
	altitude := r - p.Body.Radius
	var ρ float64
	if sat.UseSimpleDensity {
		ρ = SimpleDensity(sat.SurfaceDensity, sat.ScaleHeight, altitude)
	} else {
		ρ = Density(altitude)
	}
	dragAcc := 0.5 * ρ * v * v * sat.DragCoeff * sat.Area / sat.Mass
	return addScaled(acc, unit(V), -dragAcc)
}

// nudgeTowardTarget moves the satellite radially toward a pending target
// height, capped per substep, and clears the target within tolerance.
func (p *Propagator) nudgeTowardTarget(sat *Satellite) {
	tgt, ok := sat.TargetHeight()
	if !ok {
		return
	}
	heightErr := tgt - p.Body.Altitude(sat.R)
	if math.Abs(heightErr) <= targetHeightTolerance {
		sat.ClearTargetHeight()
		return
	}
	shift := sign(heightErr) * math.Min(math.Abs(heightErr), targetHeightMaxShift)
	sat.R = addScaled(sat.R, unit(sat.R), shift)
}

// crash freezes the satellite at the state of the crash-causing substep.
func (p *Propagator) crash(sat *Satellite) {
	sat.Crashed = true
	p.logger.Log("level", "critical", "subsys", "prop", "crashed", sat.Name,
		"r(m)", norm(sat.R), "altitude(m)", p.Body.Altitude(sat.R), "v(m/s)", norm(sat.V))
}

func (p *Propagator) warnClamp(which string, requested, ceiling float64) Warning {
	w := Warning{
		Code:   WarnUnstableTimeScale,
		Detail: fmt.Sprintf("%s time scale %g clamped to %g", which, requested, ceiling),
	}
	p.logger.Log("level", "warning", "subsys", "prop", "warn", w.Code, "detail", w.Detail)
	timeScaleClamps.Inc()
	return w
}
