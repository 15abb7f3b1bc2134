package orbitkit

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/gonum/matrix/mat64"
	"github.com/gonum/stat/distmv"
)

// AddDispersed inserts n satellites spread evenly in phase around a nominal
// circular orbit, with Gaussian dispersion on the orbit radius (σR, in m) and
// on the insertion speed (σV, in m/s). The base configuration supplies
// everything except position and velocity, which are derived per satellite.
// A fixed seed makes the insertion reproducible.
//
// It returns the indices of the inserted satellites. On a validation failure
// nothing is inserted.
func (f *Fleet) AddDispersed(n int, base SatelliteConfig, nominalRadius, σR, σV float64, seed int64) ([]int, error) {
	if n <= 0 {
		return nil, fmt.Errorf("cannot disperse %d satellites", n)
	}
	if nominalRadius <= f.Body.Radius {
		return nil, fmt.Errorf("nominal radius %g m is inside %s", nominalRadius, f.Body.Name)
	}
	src := rand.New(rand.NewSource(seed))
	rNoise, ok := distmv.NewNormal([]float64{0}, mat64.NewSymDense(1, []float64{σR * σR}), src)
	if !ok {
		return nil, fmt.Errorf("radius dispersion σ=%g is not a valid covariance", σR)
	}
	vNoise, ok := distmv.NewNormal([]float64{0}, mat64.NewSymDense(1, []float64{σV * σV}), src)
	if !ok {
		return nil, fmt.Errorf("speed dispersion σ=%g is not a valid covariance", σV)
	}

	cfgs := make([]SatelliteConfig, n)
	for k := 0; k < n; k++ {
		r := nominalRadius + rNoise.Rand(nil)[0]
		θ := 2 * math.Pi * float64(k) / float64(n)
		sθ, cθ := math.Sincos(θ)
		pos := []float64{r * cθ, r * sθ, 0}
		speed := f.Body.CircularSpeed(r) + vNoise.Rand(nil)[0]

		cfg := base
		if base.Name != "" {
			cfg.Name = fmt.Sprintf("%s-%d", base.Name, k)
		}
		cfg.Position = pos
		cfg.Velocity = TangentialVelocity(pos, speed)
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("satellite %d: %w", k, err)
		}
		cfgs[k] = cfg
	}

	indices := make([]int, n)
	for k, cfg := range cfgs {
		idx, err := f.Add(cfg)
		if err != nil {
			return nil, fmt.Errorf("satellite %d: %w", k, err)
		}
		indices[k] = idx
	}
	return indices, nil
}
