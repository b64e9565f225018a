package sdfx

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
)

func TestSphereMesh(t *testing.T) {
	k := New()
	center := r3.Vector{X: 2, Y: -1, Z: 0.5}
	m, err := k.Sphere(1, center, 32, 16)
	if err != nil {
		t.Fatalf("sphere failed: %v", err)
	}
	if m.IsEmpty() {
		t.Fatal("sphere mesh is empty")
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("sphere mesh failed validation: %v", err)
	}

	// Marching cubes approximates the surface to within a cell or two.
	min, max := m.Bounds()
	for _, c := range []struct {
		name   string
		lo, hi float64
		at     float64
	}{
		{"x", min.X, max.X, center.X},
		{"y", min.Y, max.Y, center.Y},
		{"z", min.Z, max.Z, center.Z},
	} {
		if c.lo < c.at-1.2 || c.hi > c.at+1.2 {
			t.Errorf("%s extent [%v, %v] exceeds the padded sphere", c.name, c.lo, c.hi)
		}
		if c.hi-c.lo < 1.6 {
			t.Errorf("%s extent [%v, %v] is too small for a unit-radius sphere", c.name, c.lo, c.hi)
		}
	}
}

func TestConeMesh(t *testing.T) {
	k := New()
	m, err := k.Cone(1.5, 0.5, r3.Vector{}, 32)
	if err != nil {
		t.Fatalf("cone failed: %v", err)
	}
	if m.IsEmpty() {
		t.Fatal("cone mesh is empty")
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("cone mesh failed validation: %v", err)
	}

	min, max := m.Bounds()
	if got := max.Z - min.Z; math.Abs(got-1.5) > 0.2 {
		t.Errorf("height = %v, want about 1.5", got)
	}
	if got := max.X - min.X; math.Abs(got-1.0) > 0.2 {
		t.Errorf("base width = %v, want about 1.0", got)
	}
}

func TestInvalidArguments(t *testing.T) {
	k := New()
	if _, err := k.Sphere(0, r3.Vector{}, 32, 16); err == nil {
		t.Error("zero sphere radius should fail")
	}
	if _, err := k.Cone(-1, 0.5, r3.Vector{}, 32); err == nil {
		t.Error("negative cone height should fail")
	}
	if _, err := k.Cone(1, 0, r3.Vector{}, 32); err == nil {
		t.Error("zero cone radius should fail")
	}
}
