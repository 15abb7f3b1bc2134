package orbitkit

import (
	"fmt"

	"github.com/spf13/viper"
)

// Scenario is a declarative simulation setup: a central body, a global time
// scale and an initial set of satellites. Scenarios are stored as TOML:
//
//	name = "leo-demo"
//	global_time_scale = 1.0
//
//	[body]
//	name = "Earth"
//	radius = 6371000.0
//	mass = 5.972e24
//	crash_altitude = 80000.0
//
//	[[satellite]]
//	name = "iss"
//	position = [6771000.0, 0.0, 0.0]
//	circular = true
//	mass = 420000.0
//	drag_coeff = 2.0
//	area = 1000.0
//	air_resistance = true
type Scenario struct {
	Name            string
	Body            CelestialBody
	GlobalTimeScale float64
	Satellites      []SatelliteConfig
}

type satelliteTOML struct {
	Name             string    `mapstructure:"name"`
	Position         []float64 `mapstructure:"position"`
	Velocity         []float64 `mapstructure:"velocity"`
	Circular         bool      `mapstructure:"circular"`
	Mass             float64   `mapstructure:"mass"`
	DragCoeff        float64   `mapstructure:"drag_coeff"`
	Area             float64   `mapstructure:"area"`
	SurfaceDensity   float64   `mapstructure:"surface_density"`
	ScaleHeight      float64   `mapstructure:"scale_height"`
	UseSimpleDensity bool      `mapstructure:"use_simple_density"`
	AirResistance    bool      `mapstructure:"air_resistance"`
	TimeScale        float64   `mapstructure:"time_scale"`
}

// LoadScenario reads and validates a scenario file. The [body] table is
// optional and defaults to Earth; a satellite with circular = true (or with
// no velocity at all) gets a circular tangential velocity at its position.
func LoadScenario(path string) (*Scenario, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}

	sc := &Scenario{
		Name:            v.GetString("name"),
		Body:            Earth,
		GlobalTimeScale: 1,
	}
	if v.IsSet("global_time_scale") {
		sc.GlobalTimeScale = v.GetFloat64("global_time_scale")
		if sc.GlobalTimeScale <= 0 {
			return nil, nonPositive("global time scale", sc.GlobalTimeScale)
		}
	}
	if v.IsSet("body") {
		radius := v.GetFloat64("body.radius")
		mass := v.GetFloat64("body.mass")
		if radius <= 0 {
			return nil, nonPositive("body radius", radius)
		}
		if mass <= 0 {
			return nil, nonPositive("body mass", mass)
		}
		sc.Body = NewBody(v.GetString("body.name"), radius, mass, v.GetFloat64("body.crash_altitude"))
	}

	var raw []satelliteTOML
	if err := v.UnmarshalKey("satellite", &raw); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	for i, st := range raw {
		cfg := SatelliteConfig{
			Name:             st.Name,
			Position:         st.Position,
			Velocity:         st.Velocity,
			Mass:             st.Mass,
			DragCoeff:        st.DragCoeff,
			Area:             st.Area,
			SurfaceDensity:   st.SurfaceDensity,
			ScaleHeight:      st.ScaleHeight,
			UseSimpleDensity: st.UseSimpleDensity,
			AirResistance:    st.AirResistance,
			TimeScale:        st.TimeScale,
		}
		if st.Circular {
			cfg.Velocity = nil
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("scenario %s: satellite %d (%s): %w", path, i, st.Name, err)
		}
		sc.Satellites = append(sc.Satellites, cfg)
	}
	return sc, nil
}

// Build populates a new fleet from the scenario.
func (sc *Scenario) Build() (*Fleet, error) {
	fleet := NewFleet(sc.Body)
	fleet.GlobalTimeScale = sc.GlobalTimeScale
	for i, cfg := range sc.Satellites {
		if _, err := fleet.Add(cfg); err != nil {
			return nil, fmt.Errorf("satellite %d (%s): %w", i, cfg.Name, err)
		}
	}
	return fleet, nil
}
