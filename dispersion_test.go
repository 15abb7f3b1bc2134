package orbitkit

import (
	"math"
	"testing"
)

func TestAddDispersed(t *testing.T) {
	fleet := newQuietFleet(Earth)
	base := SatelliteConfig{
		Name: "swarm",
		Mass: 150, DragCoeff: 2.2, Area: 1.5,
	}
	nominal := Earth.Radius + 550e3
	indices, err := fleet.AddDispersed(8, base, nominal, 2000, 5, 42)
	if err != nil {
		t.Fatal(err)
	}
	if len(indices) != 8 || fleet.Len() != 8 {
		t.Fatalf("inserted %d satellites", fleet.Len())
	}
	for _, idx := range indices {
		sat, err := fleet.Satellite(idx)
		if err != nil {
			t.Fatal(err)
		}
		r := norm(sat.R)
		if math.Abs(r-nominal) > 8*2000 {
			t.Fatalf("%s dispersed to r=%f, implausibly far from nominal", sat.Name, r)
		}
		if v := norm(sat.V); math.Abs(v-Earth.CircularSpeed(r)) > 8*5 {
			t.Fatalf("%s inserted at %f m/s, implausibly far from circular", sat.Name, v)
		}
		if math.Abs(dot(sat.R, sat.V)) > 1e-3*r {
			t.Fatalf("%s insertion velocity is not tangential", sat.Name)
		}
	}
}

func TestAddDispersedDeterministic(t *testing.T) {
	base := SatelliteConfig{Mass: 150, DragCoeff: 2.2, Area: 1.5}
	nominal := Earth.Radius + 550e3

	a := newQuietFleet(Earth)
	b := newQuietFleet(Earth)
	if _, err := a.AddDispersed(4, base, nominal, 2000, 5, 7); err != nil {
		t.Fatal(err)
	}
	if _, err := b.AddDispersed(4, base, nominal, 2000, 5, 7); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 4; i++ {
		sa, _ := a.Satellite(i)
		sb, _ := b.Satellite(i)
		if !vectorsEqual(sa.R, sb.R) || !vectorsEqual(sa.V, sb.V) {
			t.Fatalf("satellite %d differs across identically-seeded insertions", i)
		}
	}
}

func TestAddDispersedRejectsBadInput(t *testing.T) {
	fleet := newQuietFleet(Earth)
	base := SatelliteConfig{Mass: 150, DragCoeff: 2.2, Area: 1.5}
	if _, err := fleet.AddDispersed(0, base, Earth.Radius+550e3, 100, 1, 1); err == nil {
		t.Fatal("zero-count dispersion accepted")
	}
	if _, err := fleet.AddDispersed(3, base, Earth.Radius-10, 100, 1, 1); err == nil {
		t.Fatal("nominal radius inside the body accepted")
	}
	bad := base
	bad.Mass = -1
	if _, err := fleet.AddDispersed(3, bad, Earth.Radius+550e3, 100, 1, 1); err == nil {
		t.Fatal("bad base config accepted")
	}
	if fleet.Len() != 0 {
		t.Fatal("a failed dispersion left satellites behind")
	}
}
