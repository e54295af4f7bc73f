package heredity

import (
	"math"
	"math/rand"
	"strings"
	"testing"
)

func TestSelectOfferPartitions(t *testing.T) {
	seen := make(map[Triple]int)

	for seed := int64(0); seed < 2000; seed++ {
		r := rand.New(rand.NewSource(seed))
		dad, mom := SelectOffer(r)

		union := make(map[Choice]int)
		for _, c := range dad {
			union[c]++
		}
		for _, c := range mom {
			union[c]++
		}
		if len(union) != choiceCount {
			t.Fatalf("seed %d: union has %d choices, want %d (dad=%v mom=%v)", seed, len(union), choiceCount, dad, mom)
		}
		for c, n := range union {
			if n != 1 {
				t.Fatalf("seed %d: choice %v appears %d times", seed, c, n)
			}
		}

		sorted := dad
		for i := 1; i < len(sorted); i++ {
			for j := i; j > 0 && sorted[j] < sorted[j-1]; j-- {
				sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
			}
		}
		seen[sorted]++
	}

	// C(6,3) = 20 distinct dad sets.
	if len(seen) != 20 {
		t.Errorf("saw %d distinct partitions, want 20", len(seen))
	}
}

func TestMomKeepsDeclarationOrder(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 100; i++ {
		_, mom := SelectOffer(r)
		if !(mom[0] < mom[1] && mom[1] < mom[2]) {
			t.Fatalf("mom triple out of order: %v", mom)
		}
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name   string
		choice Choice
		check  func(t *testing.T, s Stats)
	}{
		{"speed", Speed, func(t *testing.T, s Stats) {
			assertClose(t, s.Speed, 80)
		}},
		{"bullet count halves", BulletCount, func(t *testing.T, s Stats) {
			if s.BulletCount != 10 {
				t.Errorf("BulletCount = %d, want 10", s.BulletCount)
			}
		}},
		{"bullet ttl clamps", BulletTTL, func(t *testing.T, s Stats) {
			if s.BulletTTL != 1 {
				t.Errorf("BulletTTL = %d, want 1", s.BulletTTL)
			}
		}},
		{"damage", Damage, func(t *testing.T, s Stats) {
			assertClose(t, s.Damage, 0.21)
		}},
		{"bullet speed and decay", BulletSpeed, func(t *testing.T, s Stats) {
			assertClose(t, s.BulletSpeed, 300)
			assertClose(t, s.DecayRate, 0.0006)
		}},
		{"fire rate", FireRate, func(t *testing.T, s Stats) {
			assertClose(t, s.FireRate, 1.3)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultStats()
			Apply(tt.choice, &s)
			tt.check(t, s)
		})
	}
}

func TestHalvingClamp(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{1, 1},
		{2, 1},
		{3, 1},
		{5, 2},
		{20, 10},
	}

	for _, tt := range tests {
		s := Stats{BulletCount: tt.in, BulletTTL: tt.in}
		Apply(BulletCount, &s)
		Apply(BulletTTL, &s)
		if s.BulletCount != tt.want || s.BulletTTL != tt.want {
			t.Errorf("halve(%d) = (%d, %d), want %d", tt.in, s.BulletCount, s.BulletTTL, tt.want)
		}
	}
}

func TestApplyAll(t *testing.T) {
	s := DefaultStats()
	ApplyAll(Triple{Speed, Speed, BulletCount}, &s)

	assertClose(t, s.Speed, 64)
	if s.BulletCount != 10 {
		t.Errorf("BulletCount = %d, want 10", s.BulletCount)
	}
}

func TestNewOfferColors(t *testing.T) {
	o := NewOffer(rand.New(rand.NewSource(3)))
	for _, c := range []Color{o.DadColor, o.MomColor} {
		for _, v := range []float64{c.R, c.G, c.B} {
			if v < 0 || v >= 1 {
				t.Fatalf("color component %v out of [0,1)", v)
			}
		}
	}

	triple, color := o.Parent(1)
	if triple != o.Mom || color != o.MomColor {
		t.Error("Parent(1) did not return the mom")
	}
}

func TestDescribeTriple(t *testing.T) {
	out := DescribeTriple(Triple{Speed, Damage, FireRate})
	for _, want := range []string{"Speed", "Damage", "Fire rate"} {
		if !strings.Contains(out, want) {
			t.Errorf("DescribeTriple() missing %q in %q", want, out)
		}
	}
	if Choice(99).String() != "Unknown" {
		t.Error("out of range choice should render as Unknown")
	}
}

func assertClose(t *testing.T, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestColorHex(t *testing.T) {
	tests := []struct {
		c    Color
		want string
	}{
		{Color{0, 0, 0}, "#000000"},
		{Color{1, 1, 1}, "#ffffff"},
		{Color{1, 0, 0.5}, "#ff0080"},
		{Color{-1, 2, 0}, "#00ff00"},
		{DefaultStats().Color, "#4d4db3"},
	}

	for _, tt := range tests {
		if got := tt.c.Hex(); got != tt.want {
			t.Errorf("%+v.Hex() = %q, want %q", tt.c, got, tt.want)
		}
	}
}
