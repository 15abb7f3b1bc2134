package orbitkit

import (
	"errors"
	"fmt"
	"os"

	kitlog "github.com/go-kit/kit/log"
)

// ErrOutOfRange is returned when an operation references a satellite index
// that does not exist (or no longer exists). The operation is a no-op.
var ErrOutOfRange = errors.New("satellite index out of range")

// State is the outbound snapshot of one satellite, sufficient for a caller to
// derive a render transform and drive crash side effects.
type State struct {
	T       float64 // simulation time in s at which the snapshot was taken
	Index   int
	Name    string
	R, V    []float64
	Crashed bool
	Status  string
}

// Fleet owns the ordered collection of satellites around one central body and
// is the only entry point that mutates them. It is strictly single-threaded:
// callers running the fleet from multiple goroutines must serialize Tick, Add,
// Remove and ApplyLiveUpdate externally, since no internal locking exists.
type Fleet struct {
	Body CelestialBody

	// GlobalTimeScale multiplies every satellite's effective time delta. It
	// is clamped to MaxGlobalTimeScale during a tick, with a warning.
	GlobalTimeScale float64

	sats    []*Satellite
	prop    *Propagator
	logger  kitlog.Logger
	elapsed float64 // accumulated requested delta in s

	onCrash []func(index int, sat *Satellite)

	history    [][]State
	HistoryCap int // bounded recent snapshot history; 0 disables recording
}

// NewFleet returns an empty fleet around the given body, logging to stdout in
// logfmt.
func NewFleet(body CelestialBody) *Fleet {
	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	logger = kitlog.With(logger, "body", body.Name)
	return &Fleet{
		Body:            body,
		GlobalTimeScale: 1,
		prop:            NewPropagator(body, logger),
		logger:          logger,
	}
}

// SetLogger replaces the fleet logger (e.g. to silence tests).
func (f *Fleet) SetLogger(logger kitlog.Logger) {
	f.logger = logger
	f.prop.logger = logger
}

// Len returns the number of tracked satellites, crashed included.
func (f *Fleet) Len() int {
	return len(f.sats)
}

// Satellite returns the satellite at the given index.
func (f *Fleet) Satellite(index int) (*Satellite, error) {
	if index < 0 || index >= len(f.sats) {
		return nil, fmt.Errorf("%w: %d", ErrOutOfRange, index)
	}
	return f.sats[index], nil
}

// Add appends a satellite built from the configuration and returns its index.
// Indices are the addressing scheme: a removal shifts all subsequent indices
// down, so callers holding stale indices must re-resolve.
func (f *Fleet) Add(cfg SatelliteConfig) (int, error) {
	sat, err := NewSatellite(f.Body, cfg)
	if err != nil {
		return -1, err
	}
	f.sats = append(f.sats, sat)
	liveSatellites.Inc()
	f.logger.Log("level", "info", "subsys", "fleet", "added", sat.Name, "index", len(f.sats)-1)
	return len(f.sats) - 1, nil
}

// Remove drops the satellite at the given index and shifts the rest down.
func (f *Fleet) Remove(index int) error {
	if index < 0 || index >= len(f.sats) {
		return fmt.Errorf("%w: %d", ErrOutOfRange, index)
	}
	name := f.sats[index].Name
	// Crashed satellites already left the live gauge at crash time.
	if !f.sats[index].Crashed {
		liveSatellites.Dec()
	}
	f.sats = append(f.sats[:index], f.sats[index+1:]...)
	f.logger.Log("level", "info", "subsys", "fleet", "removed", name, "index", index)
	return nil
}

// Reset clears the fleet and its history. Re-populating is the caller's job.
func (f *Fleet) Reset() {
	live := 0
	for _, sat := range f.sats {
		if !sat.Crashed {
			live++
		}
	}
	liveSatellites.Sub(float64(live))
	f.sats = nil
	f.history = nil
	f.elapsed = 0
	f.logger.Log("level", "info", "subsys", "fleet", "message", "reset")
}

// OnCrash registers a listener invoked with the index and state of every
// satellite that crashes during a Tick. Listeners run synchronously and must
// not call back into the fleet.
func (f *Fleet) OnCrash(fn func(index int, sat *Satellite)) {
	f.onCrash = append(f.onCrash, fn)
}

// Tick advances every non-crashed satellite by the requested delta (in s of
// external time), in index order. Satellites never observe each other's
// state, so the iteration order does not affect the result. The returned
// warnings are non-fatal and already logged.
func (f *Fleet) Tick(dtReq float64) []Warning {
	var warnings []Warning
	for i, sat := range f.sats {
		if sat.Crashed {
			continue
		}
		crashed, w := f.prop.Advance(sat, dtReq, f.GlobalTimeScale)
		warnings = append(warnings, w...)
		if crashed {
			crashesTotal.Inc()
			liveSatellites.Dec()
			for _, fn := range f.onCrash {
				fn(i, sat)
			}
		}
	}
	if dtReq > 0 {
		f.elapsed += dtReq
	}
	ticksTotal.Inc()
	f.recordHistory()
	return warnings
}

// ApplyLiveUpdate mutates the satellite at the given index in place, without
// teleporting its position. It fails on an invalid index or on a crashed
// satellite; all supplied parameters are validated before anything is applied.
func (f *Fleet) ApplyLiveUpdate(index int, u LiveUpdate) error {
	sat, err := f.Satellite(index)
	if err != nil {
		return err
	}
	if sat.Crashed {
		return fmt.Errorf("%w: %d (crashed)", ErrOutOfRange, index)
	}
	if err = u.validate(); err != nil {
		return err
	}
	u.apply(sat, f.Body)
	return nil
}

// Snapshot returns the outbound state of every satellite at the current time.
func (f *Fleet) Snapshot() []State {
	states := make([]State, len(f.sats))
	for i, sat := range f.sats {
		states[i] = State{
			T:       f.elapsed,
			Index:   i,
			Name:    sat.Name,
			R:       clone(sat.R),
			V:       clone(sat.V),
			Crashed: sat.Crashed,
			Status:  sat.Status(f.Body),
		}
	}
	return states
}

// History returns the recorded recent snapshots, oldest first.
func (f *Fleet) History() [][]State {
	return f.history
}

func (f *Fleet) recordHistory() {
	if f.HistoryCap <= 0 {
		return
	}
	f.history = append(f.history, f.Snapshot())
	if len(f.history) > f.HistoryCap {
		f.history = f.history[len(f.history)-f.HistoryCap:]
	}
}

// LiveUpdate is a partial mutation record for ApplyLiveUpdate. Nil fields are
// left untouched. Velocity, MaintainCircular and TargetHeight are mutually
// exclusive ways of changing the trajectory; at most one may be supplied.
type LiveUpdate struct {
	Mass           *float64
	DragCoeff      *float64
	Area           *float64
	SurfaceDensity *float64
	ScaleHeight    *float64
	TimeScale      *float64
	AirResistance  *bool

	// Velocity replaces the velocity vector as-is.
	Velocity []float64
	// MaintainCircular recomputes a circular tangential velocity at the
	// current radius, e.g. after an external height change.
	MaintainCircular bool
	// TargetHeight requests a smooth radial transition to the given altitude.
	TargetHeight *float64
}

func (u LiveUpdate) validate() error {
	checks := []struct {
		name string
		val  *float64
	}{
		{"mass", u.Mass},
		{"drag coefficient", u.DragCoeff},
		{"area", u.Area},
		{"surface density", u.SurfaceDensity},
		{"scale height", u.ScaleHeight},
		{"time scale", u.TimeScale},
	}
	for _, c := range checks {
		if c.val != nil && *c.val <= 0 {
			return nonPositive(c.name, *c.val)
		}
	}
	if u.Velocity != nil && len(u.Velocity) != 3 {
		return fmt.Errorf("velocity must be a 3-vector, got %d components", len(u.Velocity))
	}
	exclusive := 0
	if u.Velocity != nil {
		exclusive++
	}
	if u.MaintainCircular {
		exclusive++
	}
	if u.TargetHeight != nil {
		exclusive++
	}
	if exclusive > 1 {
		return errors.New("velocity, maintain-circular and target height are mutually exclusive")
	}
	return nil
}

func (u LiveUpdate) apply(sat *Satellite, body CelestialBody) {
	if u.Mass != nil {
		sat.Mass = *u.Mass
	}
	if u.DragCoeff != nil {
		sat.DragCoeff = *u.DragCoeff
	}
	if u.Area != nil {
		sat.Area = *u.Area
	}
	if u.SurfaceDensity != nil {
		sat.SurfaceDensity = *u.SurfaceDensity
	}
	if u.ScaleHeight != nil {
		sat.ScaleHeight = *u.ScaleHeight
	}
	if u.TimeScale != nil {
		sat.TimeScale = *u.TimeScale
	}
	if u.AirResistance != nil {
		sat.AirResistance = *u.AirResistance
	}
	switch {
	case u.Velocity != nil:
		sat.V = clone(u.Velocity)
	case u.MaintainCircular:
		sat.V = TangentialVelocity(sat.R, body.CircularSpeed(norm(sat.R)))
	case u.TargetHeight != nil:
		sat.SetTargetHeight(*u.TargetHeight)
	}
}
