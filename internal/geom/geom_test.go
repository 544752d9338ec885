package geom

import (
	"math"
	"testing"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestBoxBoundary(t *testing.T) {
	tests := []struct {
		name         string
		from, to     Point
		halfW, halfH float64
		want         Point
	}{
		{
			name: "straight down hits top edge",
			from: Point{X: 0, Y: 0}, to: Point{X: 0, Y: 100},
			halfW: 40, halfH: 20,
			want: Point{X: 0, Y: 80},
		},
		{
			name: "from the right hits right edge",
			from: Point{X: 300, Y: 0}, to: Point{X: 0, Y: 0},
			halfW: 40, halfH: 20,
			want: Point{X: 40, Y: 0},
		},
		{
			name: "diagonal hits the nearer side",
			from: Point{X: -100, Y: -100}, to: Point{X: 0, Y: 0},
			halfW: 40, halfH: 20,
			want: Point{X: -20, Y: -20},
		},
		{
			name: "source inside box returns center",
			from: Point{X: 5, Y: 5}, to: Point{X: 0, Y: 0},
			halfW: 40, halfH: 20,
			want: Point{X: 0, Y: 0},
		},
		{
			name: "coincident points",
			from: Point{X: 7, Y: 7}, to: Point{X: 7, Y: 7},
			halfW: 40, halfH: 20,
			want: Point{X: 7, Y: 7},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := BoxBoundary(tc.from, tc.to, tc.halfW, tc.halfH)
			if !near(got.X, tc.want.X) || !near(got.Y, tc.want.Y) {
				t.Fatalf("BoxBoundary() = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestUnit(t *testing.T) {
	u := Point{X: 3, Y: 4}.Unit()
	if !near(u.X, 0.6) || !near(u.Y, 0.8) {
		t.Fatalf("unexpected unit vector %+v", u)
	}
	if (Point{}).Unit() != (Point{}) {
		t.Fatalf("zero vector should stay zero")
	}
}

func TestDistanceToSegment(t *testing.T) {
	a, b := Point{X: 0, Y: 0}, Point{X: 10, Y: 0}
	cases := []struct {
		p    Point
		want float64
	}{
		{Point{X: 5, Y: 3}, 3},
		{Point{X: -4, Y: 3}, 5},
		{Point{X: 13, Y: 4}, 5},
		{Point{X: 7, Y: 0}, 0},
	}
	for _, c := range cases {
		if got := DistanceToSegment(c.p, a, b); !near(got, c.want) {
			t.Fatalf("DistanceToSegment(%v) = %v, want %v", c.p, got, c.want)
		}
	}
	if got := DistanceToSegment(Point{X: 3, Y: 4}, a, a); !near(got, 5) {
		t.Fatalf("degenerate segment distance = %v", got)
	}
}
