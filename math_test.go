package orbitkit

import (
	"testing"

	"github.com/gonum/floats"
)

func TestNormUnit(t *testing.T) {
	v := []float64{3, 4, 0}
	if norm(v) != 5 {
		t.Fatalf("norm is %f", norm(v))
	}
	if !vectorsEqual(unit(v), []float64{0.6, 0.8, 0}) {
		t.Fatalf("unit is %+v", unit(v))
	}
	if !vectorsEqual(unit([]float64{0, 0, 0}), []float64{0, 0, 0}) {
		t.Fatal("unit of the zero vector must be the zero vector")
	}
}

func TestSign(t *testing.T) {
	if sign(-17.3) != -1 || sign(42.0) != 1 {
		t.Fatal("sign broken")
	}
	if sign(0) != 1 {
		t.Fatal("sign of zero must be positive")
	}
}

func TestDotCross(t *testing.T) {
	a := []float64{1, 2, 3}
	b := []float64{-4, 5, -6}
	if !floats.EqualWithinAbs(dot(a, b), -12, 1e-12) {
		t.Fatalf("dot is %f", dot(a, b))
	}
	if !vectorsEqual(cross(a, b), []float64{-27, -6, 13}) {
		t.Fatalf("cross is %+v", cross(a, b))
	}
}

func TestAddScaledDoesNotAlias(t *testing.T) {
	a := []float64{1, 1, 1}
	b := []float64{2, 2, 2}
	c := addScaled(a, b, 0.5)
	if !vectorsEqual(c, []float64{2, 2, 2}) {
		t.Fatalf("addScaled is %+v", c)
	}
	if !vectorsEqual(a, []float64{1, 1, 1}) || !vectorsEqual(b, []float64{2, 2, 2}) {
		t.Fatal("addScaled modified an operand")
	}
	d := clone(a)
	d[0] = 9
	if a[0] == 9 {
		t.Fatal("clone aliases its input")
	}
}
