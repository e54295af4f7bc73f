// Package score tracks the "year" the robots send the player back to.
package score

const (
	BeginYear         = 2100 // Year shown before the first cleared wave
	YearsPerLevel     = 35   // Years removed per cleared wave
	YearsPerSecond    = 35.0 // Animation speed of the displayed year
	themeMiddleLevel  = 2
	themeAncientLevel = 5
)

// Theme is the historical era a level is drawn in.
type Theme int

const (
	ThemeFuture Theme = iota
	ThemeModern
	ThemeAncient
)

func (t Theme) String() string {
	switch t {
	case ThemeFuture:
		return "future"
	case ThemeModern:
		return "modern"
	default:
		return "ancient"
	}
}

// Clock is the score shown as a year counting down toward the past.
type Clock struct {
	Level     uint32
	Displayed float32 // Animated value shown on screen
	Target    int32
}

// NewClock returns a clock at level 0 showing BeginYear.
func NewClock() *Clock {
	c := &Clock{}
	c.Reset()
	return c
}

// Reset returns the clock to level 0.
func (c *Clock) Reset() {
	c.Level = 0
	c.Target = BeginYear
	c.Displayed = BeginYear
}

// LevelUp advances one level and moves the target year back.
func (c *Clock) LevelUp() {
	c.Level++
	c.Target -= YearsPerLevel
}

// Tick moves the displayed year toward the target by dt seconds of animation.
// It stops exactly on the target.
func (c *Clock) Tick(dt float32) {
	target := float32(c.Target)
	step := YearsPerSecond * dt
	switch {
	case c.Displayed > target:
		c.Displayed -= step
		if c.Displayed < target {
			c.Displayed = target
		}
	case c.Displayed < target:
		c.Displayed += step
		if c.Displayed > target {
			c.Displayed = target
		}
	}
}

// Settled reports whether the displayed year reached the target.
func (c *Clock) Settled() bool {
	return c.Displayed == float32(c.Target)
}

// Year returns the displayed year rounded for display.
func (c *Clock) Year() int {
	return int(c.Displayed + 0.5)
}

// Theme returns the era of the current level.
func (c *Clock) Theme() Theme {
	switch {
	case c.Level < themeMiddleLevel:
		return ThemeFuture
	case c.Level < themeAncientLevel:
		return ThemeModern
	default:
		return ThemeAncient
	}
}
