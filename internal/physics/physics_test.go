package physics

import (
	"math/rand"
	"sort"
	"testing"
)

func TestAABBOverlap(t *testing.T) {
	tests := []struct {
		name       string
		aPos, bPos Vec2
		aSz, bSz   Vec2
		want       bool
	}{
		{"same center", Vec2{0, 0}, Vec2{0, 0}, Vec2{2, 2}, Vec2{2, 2}, true},
		{"partial overlap", Vec2{0, 0}, Vec2{1.5, 1}, Vec2{2, 2}, Vec2{2, 2}, true},
		{"touching edges", Vec2{0, 0}, Vec2{2, 0}, Vec2{2, 2}, Vec2{2, 2}, false},
		{"separated on x", Vec2{0, 0}, Vec2{5, 0}, Vec2{2, 2}, Vec2{2, 2}, false},
		{"separated on y", Vec2{0, 0}, Vec2{0, -3}, Vec2{2, 2}, Vec2{2, 2}, false},
		{"small inside large", Vec2{10, 10}, Vec2{11, 9}, Vec2{8, 8}, Vec2{0.5, 0.5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AABBOverlap(tt.aPos, tt.aSz, tt.bPos, tt.bSz); got != tt.want {
				t.Errorf("AABBOverlap() = %v, want %v", got, tt.want)
			}
			if got := AABBOverlap(tt.bPos, tt.bSz, tt.aPos, tt.aSz); got != tt.want {
				t.Errorf("AABBOverlap() not symmetric")
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	if x, y := Normalize(0, 0); x != 0 || y != 0 {
		t.Errorf("Normalize(0,0) = (%v,%v)", x, y)
	}
	x, y := Normalize(3, 4)
	if x != 0.6 || y != 0.8 {
		t.Errorf("Normalize(3,4) = (%v,%v), want (0.6,0.8)", x, y)
	}
}

func TestSpatialHashFindsNeighbors(t *testing.T) {
	const cell = 10.0
	g := NewSpatialHash(cell)
	r := rand.New(rand.NewSource(5))

	points := make([]Vec2, 300)
	for i := range points {
		points[i] = Vec2{X: r.Float64()*400 - 200, Y: r.Float64()*400 - 200}
		g.Insert(points[i].X, points[i].Y, i)
	}

	for i, p := range points {
		var got []int
		g.QueryAround(p.X, p.Y, func(j int) bool {
			got = append(got, j)
			return false
		})
		found := make(map[int]bool, len(got))
		for _, j := range got {
			found[j] = true
		}
		for j, q := range points {
			if Distance(p.X, p.Y, q.X, q.Y) < cell && !found[j] {
				t.Fatalf("point %d: neighbor %d within %v not returned", i, j, cell)
			}
		}
	}
}

func TestSpatialHashClearAndStop(t *testing.T) {
	g := NewSpatialHash(5)
	g.Insert(1, 1, 0)
	g.Insert(2, 2, 1)
	g.Insert(-1, -1, 2)

	var got []int
	g.QueryAround(0, 0, func(j int) bool {
		got = append(got, j)
		return false
	})
	sort.Ints(got)
	if len(got) != 3 {
		t.Fatalf("QueryAround returned %v, want 3 items", got)
	}

	calls := 0
	g.QueryAround(0, 0, func(int) bool {
		calls++
		return true
	})
	if calls != 1 {
		t.Errorf("early stop made %d calls, want 1", calls)
	}

	g.Clear()
	g.QueryAround(0, 0, func(int) bool {
		t.Fatal("item returned after Clear")
		return true
	})
}
