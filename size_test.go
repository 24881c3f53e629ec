package fontkit

import (
	"math"
	"testing"
)

func TestFromPoints(t *testing.T) {
	s := FromPoints(12)
	if got := s.Points(); got != 12 {
		t.Errorf("Points() = %g, want 12", got)
	}
}

func TestSizePixelRoundTrip(t *testing.T) {
	pixels := []float64{1, 7.5, 12, 13.37, 96, 255.25, 1024}
	scales := []float64{0.5, 1, 1.25, 1.5, 2, 3}

	for _, px := range pixels {
		for _, scale := range scales {
			s := FromPixels(px, scale)
			back := s.Pixels(scale)
			// Fixed-point resolution is 1e-6 pt; converting back to
			// pixels scales the tolerance by the scale factor.
			if diff := math.Abs(back - px); diff > 1e-6*scale+1e-9 {
				t.Errorf("FromPixels(%g, %g).Pixels(%g) = %g, diff %g", px, scale, scale, back, diff)
			}
			if again := FromPixels(back, scale); again != s {
				t.Errorf("FromPixels(Pixels(s)) = %v, want %v", again, s)
			}
		}
	}
}

func TestSizeEqualityAsMapKey(t *testing.T) {
	// Equal logical sizes must collide in a map regardless of how they
	// were produced.
	a := FromPoints(12)
	b := FromPixels(24, 2)
	if a != b {
		t.Fatalf("FromPoints(12) != FromPixels(24, 2): %v vs %v", a, b)
	}

	m := map[Size]int{a: 1}
	if m[b] != 1 {
		t.Error("equal sizes did not collide as map keys")
	}
}

func TestSizeScaledBy(t *testing.T) {
	tests := []struct {
		pts    float64
		factor float64
		want   float64
	}{
		{12, 2, 24},
		{12, 0.5, 6},
		{10, 1.1, 11},
		{12, 1, 12},
	}
	for _, tt := range tests {
		got := FromPoints(tt.pts).ScaledBy(tt.factor)
		if got != FromPoints(tt.want) {
			t.Errorf("FromPoints(%g).ScaledBy(%g) = %v, want %gpt", tt.pts, tt.factor, got, tt.want)
		}
	}
}

func TestSizeScaledByRoundsHalfAwayFromZero(t *testing.T) {
	// 1e-6 pt is one fixed-point unit; 1.5 units rounds up to 2.
	s := Size{pts: 3}
	if got := s.ScaledBy(0.5); got.pts != 2 {
		t.Errorf("ScaledBy(0.5) of 3 units = %d units, want 2", got.pts)
	}
	neg := Size{pts: -3}
	if got := neg.ScaledBy(0.5); got.pts != -2 {
		t.Errorf("ScaledBy(0.5) of -3 units = %d units, want -2", got.pts)
	}
}

func TestSizeString(t *testing.T) {
	if got := FromPoints(12.5).String(); got != "12.5pt" {
		t.Errorf("String() = %q, want \"12.5pt\"", got)
	}
}

func TestSizeIsZero(t *testing.T) {
	if !(Size{}).IsZero() {
		t.Error("zero Size should report IsZero")
	}
	if FromPoints(1).IsZero() {
		t.Error("1pt should not report IsZero")
	}
}
