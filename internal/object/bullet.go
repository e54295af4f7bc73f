package object

import (
	"math"
	"sync"

	"github.com/tomz197/roots/internal/heredity"
	"github.com/tomz197/roots/internal/physics"
)

// BulletSize is the edge of a bullet's collision box.
const BulletSize = 2.0

// bulletPool reuses bullets; a volley spawns BulletCount of them at once.
var bulletPool = sync.Pool{
	New: func() any {
		return &Bullet{}
	},
}

// Bullet is a projectile fired by the player.
// It disappears after hitting Hits mobs or when its health decays to zero.
type Bullet struct {
	X, Y      float64 // Position
	VX, VY    float64 // Velocity
	Damage    float64 // Health removed from a mob per hit
	Hits      int     // Mobs this bullet can still hit
	Health    float64 // Decays every frame; removed at zero
	Decay     float64 // Health lost per frame at 60 fps
	destroyed bool
}

// NewBullet creates a bullet at (x, y) traveling in direction angle,
// configured from the player's stat block.
func NewBullet(x, y, angle float64, stats heredity.Stats) *Bullet {
	b := bulletPool.Get().(*Bullet)
	*b = Bullet{
		X:      x,
		Y:      y,
		VX:     math.Cos(angle) * stats.BulletSpeed,
		VY:     math.Sin(angle) * stats.BulletSpeed,
		Damage: stats.Damage,
		Hits:   stats.BulletTTL,
		Health: 1,
		Decay:  stats.DecayRate,
	}
	return b
}

// Release returns the bullet to the pool for reuse.
func (b *Bullet) Release() {
	bulletPool.Put(b)
}

// Hit spends one hit against a mob and returns the damage dealt.
// Returns 0 when the bullet has no hits left.
func (b *Bullet) Hit() float64 {
	if b.Hits <= 0 {
		return 0
	}
	b.Hits--
	if b.Hits == 0 {
		b.destroyed = true
	}
	return b.Damage
}

// MarkDestroyed marks the bullet for removal.
func (b *Bullet) MarkDestroyed() {
	b.destroyed = true
}

// IsDestroyed returns true if the bullet is spent.
func (b *Bullet) IsDestroyed() bool {
	return b.destroyed || b.Hits <= 0 || b.Health <= 0
}

// Update moves the bullet and decays its health.
func (b *Bullet) Update(ctx UpdateContext) (bool, error) {
	if b.IsDestroyed() {
		return true, nil
	}

	dt := ctx.Delta.Seconds()

	b.Health -= b.Decay * dt * 60
	if b.Health <= 0 {
		return true, nil
	}

	b.X += b.VX * dt
	b.Y += b.VY * dt

	return false, nil
}

// Bounds implements Collider.
func (b *Bullet) Bounds() (physics.Vec2, physics.Vec2) {
	return physics.Vec2{X: b.X, Y: b.Y}, physics.Vec2{X: BulletSize, Y: BulletSize}
}

// Draw renders the bullet.
func (b *Bullet) Draw(ctx DrawContext) error {
	if b.IsDestroyed() {
		return nil
	}
	pos, ok := WorldToScreen(b.X, b.Y, ctx.Camera, ctx.View, BulletSize)
	if !ok {
		return nil
	}
	ctx.Canvas.SetInk(InkBullet)
	ctx.Canvas.FillRect(pos.X, pos.Y, BulletSize, BulletSize)
	return nil
}
