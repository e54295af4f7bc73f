package heredity

// Choice is one penalty a parent can pass on.
type Choice int

const (
	Speed Choice = iota
	BulletCount
	BulletTTL
	Damage
	BulletSpeed
	FireRate

	choiceCount = iota
)

// AllChoices returns every choice in declaration order.
func AllChoices() []Choice {
	all := make([]Choice, choiceCount)
	for i := range all {
		all[i] = Choice(i)
	}
	return all
}

// Triple is the set of penalties one parent passes on.
type Triple [3]Choice

// Offer is the pair of parents shown after a cleared wave.
type Offer struct {
	Dad, Mom           Triple
	DadColor, MomColor Color
}

// Parent returns the triple and color for parent i (0 = dad, 1 = mom).
func (o Offer) Parent(i int) (Triple, Color) {
	if i == 0 {
		return o.Dad, o.DadColor
	}
	return o.Mom, o.MomColor
}

// Rand is the random source used to draw offers. *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// SelectOffer splits all choices into two disjoint triples. Three choices are
// drawn without replacement for the dad; the mom gets the rest in order.
func SelectOffer(r Rand) (dad, mom Triple) {
	pool := AllChoices()
	for i := range dad {
		k := r.Intn(len(pool))
		dad[i] = pool[k]
		pool = append(pool[:k], pool[k+1:]...)
	}
	copy(mom[:], pool)
	return dad, mom
}

// NewOffer draws both triples and a random color for each parent.
func NewOffer(r Rand) Offer {
	dad, mom := SelectOffer(r)
	return Offer{
		Dad:      dad,
		Mom:      mom,
		DadColor: randomColor(r),
		MomColor: randomColor(r),
	}
}

func randomColor(r Rand) Color {
	return Color{R: r.Float64(), G: r.Float64(), B: r.Float64()}
}

// Apply worsens stats by one penalty.
func Apply(c Choice, s *Stats) {
	switch c {
	case Speed:
		s.Speed *= 0.8
	case BulletCount:
		s.BulletCount = halve(s.BulletCount)
	case BulletTTL:
		s.BulletTTL = halve(s.BulletTTL)
	case Damage:
		s.Damage *= 0.7
	case BulletSpeed:
		s.BulletSpeed *= 0.6
		s.DecayRate *= 0.6
	case FireRate:
		s.FireRate *= 1.3
	}
}

// ApplyAll applies every penalty of t.
func ApplyAll(t Triple, s *Stats) {
	for _, c := range t {
		Apply(c, s)
	}
}

func halve(n int) int {
	return max(1, n/2)
}
