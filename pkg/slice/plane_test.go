package slice

import (
	"errors"
	"math"
	"testing"

	"github.com/golang/geo/r3"
)

func TestNewPlane(t *testing.T) {
	p, err := NewPlane(r3.Vector{X: 1, Y: 2, Z: 3}, r3.Vector{Z: 1})
	if err != nil {
		t.Fatalf("NewPlane failed: %v", err)
	}
	if p.Normal != (r3.Vector{Z: 1}) {
		t.Errorf("normal = %v, want (0,0,1)", p.Normal)
	}

	_, err = NewPlane(r3.Vector{}, r3.Vector{})
	if !errors.Is(err, ErrInvalidPlane) {
		t.Errorf("zero normal: err = %v, want ErrInvalidPlane", err)
	}
}

func TestFromImplicit(t *testing.T) {
	// 2z = 4: origin is the closest point to the coordinate origin.
	p, err := FromImplicit(0, 0, 2, 4)
	if err != nil {
		t.Fatalf("FromImplicit failed: %v", err)
	}
	if p.Normal != (r3.Vector{Z: 2}) {
		t.Errorf("normal = %v, want (0,0,2)", p.Normal)
	}
	if p.Origin != (r3.Vector{Z: 2}) {
		t.Errorf("origin = %v, want (0,0,2)", p.Origin)
	}

	// Oblique plane: origin must satisfy the implicit equation.
	p, err = FromImplicit(1, 2, 2, 9)
	if err != nil {
		t.Fatalf("FromImplicit failed: %v", err)
	}
	got := p.Origin.X + 2*p.Origin.Y + 2*p.Origin.Z
	if math.Abs(got-9) > 1e-12 {
		t.Errorf("origin violates plane equation: a*x+b*y+c*z = %v, want 9", got)
	}

	_, err = FromImplicit(0, 0, 0, 5)
	if !errors.Is(err, ErrInvalidPlane) {
		t.Errorf("degenerate coefficients: err = %v, want ErrInvalidPlane", err)
	}
}

func TestSignedDistance(t *testing.T) {
	p, _ := FromImplicit(0, 0, 1, 0.5)

	cases := []struct {
		pt   r3.Vector
		sign int
	}{
		{r3.Vector{Z: 1}, 1},
		{r3.Vector{Z: 0.5}, 0},
		{r3.Vector{X: 3, Y: -2, Z: 0.5}, 0},
		{r3.Vector{Z: 0}, -1},
	}
	for _, c := range cases {
		d := p.SignedDistance(c.pt)
		switch {
		case c.sign > 0 && d <= 0:
			t.Errorf("SignedDistance(%v) = %v, want > 0", c.pt, d)
		case c.sign < 0 && d >= 0:
			t.Errorf("SignedDistance(%v) = %v, want < 0", c.pt, d)
		case c.sign == 0 && d != 0:
			t.Errorf("SignedDistance(%v) = %v, want 0", c.pt, d)
		}
	}

	// An unnormalized normal scales the distance but not the sign.
	p2, _ := FromImplicit(0, 0, 10, 5)
	d1 := p.SignedDistance(r3.Vector{Z: 2})
	d2 := p2.SignedDistance(r3.Vector{Z: 2})
	if math.Abs(d2-10*d1) > 1e-12 {
		t.Errorf("scaled normal: distance = %v, want %v", d2, 10*d1)
	}
}
