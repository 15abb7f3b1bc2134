package orbitkit

import "math"

// The layer table follows the US Standard Atmosphere up to the mesopause and
// tapers with progressively longer scale heights above it, so that drag decays
// smoothly instead of cutting off at a hard ceiling. Each layer's formula takes
// the absolute altitude (not the height above the layer floor).
type atmLayer struct {
	ceiling float64 // altitude upper bound in m, exclusive
	density func(h float64) float64
}

var atmLayers = []atmLayer{
	{11000, func(h float64) float64 { return 1.225 * math.Pow(1-0.0065*h/288.15, 4.256) }},
	{20000, func(h float64) float64 { return 0.3639 * math.Exp(-(h-11000)/6341.6) }},
	{32000, func(h float64) float64 { return 0.0880 * math.Exp(-(h-20000)/7360.0) }},
	{47000, func(h float64) float64 { return 0.0132 * math.Exp(-(h-32000)/8000.0) }},
	{51000, func(h float64) float64 { return 0.00143 * math.Exp(-(h-47000)/7500.0) }},
	{71000, func(h float64) float64 { return 0.000086 * math.Exp(-(h-51000)/10000.0) }},
	{100000, func(h float64) float64 { return 0.0000032 * math.Exp(-(h-71000)/15000.0) }},
	{200000, func(h float64) float64 { return 0.0000001 * math.Exp(-(h-100000)/25000.0) }},
	{500000, func(h float64) float64 { return 0.00000001 * math.Exp(-(h-200000)/100000.0) }},
	{math.Inf(1), func(h float64) float64 { return 0.000000001 * math.Exp(-(h-500000)/500000.0) }},
}

// Density returns the atmospheric density in kg/m³ at the given altitude above
// the surface, in m. Negative altitudes are clamped to zero. The returned
// density is non-negative and non-increasing with altitude.
func Density(altitude float64) float64 {
	if altitude < 0 {
		altitude = 0
	}
	for _, layer := range atmLayers {
		if altitude < layer.ceiling {
			return layer.density(altitude)
		}
	}
	// Unreachable: the last layer has an infinite ceiling.
	return 0
}

// SimpleDensity returns the density of a single-scale-height exponential
// atmosphere. Satellites may opt into this instead of the layer table when
// they carry their own surface density and scale height (e.g. for non-Earth
// central bodies).
func SimpleDensity(surfaceDensity, scaleHeight, altitude float64) float64 {
	if altitude < 0 {
		altitude = 0
	}
	return surfaceDensity * math.Exp(-altitude/scaleHeight)
}
