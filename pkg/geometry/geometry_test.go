package geometry

import (
	"math"
	"testing"
)

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 100, Height: 50}
	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"inside", Point{X: 50, Y: 40}, true},
		{"top-left corner", Point{X: 10, Y: 20}, true},
		{"bottom-right corner", Point{X: 110, Y: 70}, true},
		{"left of box", Point{X: 9.9, Y: 40}, false},
		{"below box", Point{X: 50, Y: 70.1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}

	if (Rect{X: 0, Y: 0}).Contains(Point{}) {
		t.Error("empty rect should contain nothing")
	}
}

func TestRectContainsRect(t *testing.T) {
	outer := Rect{X: 0, Y: 0, Width: 200, Height: 100}
	tests := []struct {
		name string
		in   Rect
		want bool
	}{
		{"fully inside", Rect{X: 10, Y: 10, Width: 50, Height: 20}, true},
		{"same box", outer, true},
		{"sticks out right", Rect{X: 180, Y: 10, Width: 50, Height: 20}, false},
		{"sticks out top", Rect{X: 10, Y: -1, Width: 50, Height: 20}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outer.ContainsRect(tt.in); got != tt.want {
				t.Errorf("ContainsRect(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRectIntersects(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 100, Height: 40}
	tests := []struct {
		name string
		b    Rect
		want bool
	}{
		{"overlap", Rect{X: 50, Y: 20, Width: 100, Height: 40}, true},
		{"touching edge", Rect{X: 100, Y: 0, Width: 100, Height: 40}, false},
		{"below", Rect{X: 0, Y: 50, Width: 100, Height: 40}, false},
		{"contained", Rect{X: 10, Y: 10, Width: 10, Height: 10}, true},
		{"empty", Rect{X: 10, Y: 10}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Intersects(tt.b); got != tt.want {
				t.Errorf("Intersects(%v) = %v, want %v", tt.b, got, tt.want)
			}
			if got := tt.b.Intersects(a); got != tt.want {
				t.Errorf("Intersects is not symmetric for %v", tt.b)
			}
		})
	}
}

func TestAngleBetween(t *testing.T) {
	origin := Point{}
	tests := []struct {
		name string
		to   Point
		want float64
	}{
		{"east", Point{X: 10}, 0},
		{"south", Point{Y: 10}, 90},
		{"west", Point{X: -10}, 180},
		{"north", Point{Y: -10}, 270},
		{"south-east", Point{X: 10, Y: 10}, 45},
		{"same point", Point{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AngleBetween(origin, tt.to)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("AngleBetween = %v, want %v", got, tt.want)
			}
			if got < 0 || got >= 360 {
				t.Errorf("AngleBetween = %v, outside [0,360)", got)
			}
		})
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0, 0},
		{360, 0},
		{-90, 270},
		{725, 5},
		{-720, 0},
	}
	for _, tt := range tests {
		if got := NormalizeAngle(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("NormalizeAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPolarOffset(t *testing.T) {
	p := PolarOffset(100, 90)
	if math.Abs(p.X) > 1e-9 || math.Abs(p.Y-100) > 1e-9 {
		t.Errorf("PolarOffset(100, 90) = %v, want (0,100)", p)
	}
}
