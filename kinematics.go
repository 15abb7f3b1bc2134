package orbitkit

// TangentialVelocity returns a velocity vector of the given magnitude,
// perpendicular to the projection of R onto the z=0 orbital plane. The
// direction is (−y, x, 0) normalized, i.e. a counter-clockwise orbit when
// viewed from +z. For a position on the polar axis the tangential direction
// is degenerate and +x is used.
func TangentialVelocity(R []float64, speed float64) []float64 {
	dir := unit([]float64{-R[1], R[0], 0})
	if norm(dir) == 0 {
		dir = []float64{1, 0, 0}
	}
	return scale(dir, speed)
}
