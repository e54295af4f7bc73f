// Package heredity holds the player's stat block and the debuff offers
// drawn from two parents after every cleared wave.
package heredity

// Color is an RGB color with components in [0, 1].
type Color struct {
	R, G, B float64
}

// RGB8 returns the color as 8-bit components.
func (c Color) RGB8() (r, g, b uint8) {
	return to8(c.R), to8(c.G), to8(c.B)
}

func to8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// Stats is the player's stat block for one playthrough.
type Stats struct {
	Speed       float64 // World units per second
	Damage      float64 // Health removed per bullet hit
	Health      float64
	FireRate    float64 // Seconds between volleys; higher is slower
	BulletCount int     // Bullets per volley
	BulletTTL   int     // Mobs a bullet can hit before it is spent
	BulletSpeed float64 // World units per second
	DecayRate   float64 // Bullet health lost per frame
	Color       Color
}

// DefaultStats returns the stat block a new playthrough starts with.
func DefaultStats() Stats {
	return Stats{
		Speed:       100,
		Damage:      0.3,
		Health:      1,
		FireRate:    1,
		BulletCount: 20,
		BulletTTL:   1,
		BulletSpeed: 500,
		DecayRate:   0.001,
		Color:       Color{R: 0.3, G: 0.3, B: 0.7},
	}
}

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string {
	r, g, b := c.RGB8()
	const digits = "0123456789abcdef"
	return string([]byte{'#',
		digits[r>>4], digits[r&0xf],
		digits[g>>4], digits[g&0xf],
		digits[b>>4], digits[b&0xf],
	})
}
