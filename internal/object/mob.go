package object

import (
	"github.com/tomz197/roots/internal/draw"
	"github.com/tomz197/roots/internal/physics"
)

// Mob tuning.
const (
	MobSize   = 32.0
	MobSpeed  = 64.0 // World units per second
	MobHealth = 1.0
	MobDamage = 1.0 // Health removed from the player per frame of contact
)

// Mob is an enemy sent back in time to chase the player down.
// Robots are tougher variants with twice the health.
type Mob struct {
	X, Y      float64
	Health    float64
	MaxHealth float64
	Robot     bool
	Destroyed bool // Marked for removal; explodes on next update

	hurtTime float64 // Seconds of hurt flash remaining
}

// NewMob creates a mob at (x, y).
func NewMob(x, y float64, robot bool) *Mob {
	health := MobHealth
	if robot {
		health *= 2
	}
	return &Mob{
		X:         x,
		Y:         y,
		Health:    health,
		MaxHealth: health,
		Robot:     robot,
	}
}

// Hurt removes damage from the mob's health.
// Returns true if this hit killed the mob.
func (m *Mob) Hurt(damage float64) bool {
	if m.Destroyed {
		return false
	}
	m.Health -= damage
	m.hurtTime = 0.15
	if m.Health <= 0 {
		m.Destroyed = true
		return true
	}
	return false
}

// Update moves the mob straight toward the player.
func (m *Mob) Update(ctx UpdateContext) (bool, error) {
	if m.Destroyed {
		SpawnExplosion(m.X, m.Y, 12, 120.0, 0.5, ctx.Spawner)
		return true, nil
	}

	dt := ctx.Delta.Seconds()

	if m.hurtTime > 0 {
		m.hurtTime = max(m.hurtTime-dt, 0)
	}

	if ctx.Player != nil {
		dx, dy := physics.Normalize(ctx.Player.X-m.X, ctx.Player.Y-m.Y)
		m.X += dx * MobSpeed * dt
		m.Y += dy * MobSpeed * dt
	}

	return false, nil
}

// MarkDestroyed marks the mob for removal (implements Destructible).
func (m *Mob) MarkDestroyed() {
	m.Destroyed = true
}

// IsDestroyed returns true if the mob is marked for destruction (implements Destructible).
func (m *Mob) IsDestroyed() bool {
	return m.Destroyed
}

// Bounds implements Collider.
func (m *Mob) Bounds() (physics.Vec2, physics.Vec2) {
	return physics.Vec2{X: m.X, Y: m.Y}, physics.Vec2{X: MobSize, Y: MobSize}
}

// Draw renders the mob: a solid block, robots with an outlined frame.
func (m *Mob) Draw(ctx DrawContext) error {
	pos, ok := WorldToScreen(m.X, m.Y, ctx.Camera, ctx.View, MobSize)
	if !ok {
		return nil
	}

	ink := InkMob
	if m.Robot {
		ink = InkRobot
	}
	if m.hurtTime > 0 || m.Health < m.MaxHealth {
		ink = InkHurt
	}
	ctx.Canvas.SetInk(ink)

	if m.Robot {
		ctx.Canvas.DrawRect(pos.X, pos.Y, MobSize, MobSize)
		ctx.Canvas.FillRect(pos.X, pos.Y, MobSize/2, MobSize/2)
		return nil
	}

	// Triangle body pointing up
	h := MobSize / 2
	body := ctx.Canvas.BorrowPoints(3)
	body[0] = draw.Point{X: pos.X, Y: pos.Y - h}
	body[1] = draw.Point{X: pos.X + h, Y: pos.Y + h}
	body[2] = draw.Point{X: pos.X - h, Y: pos.Y + h}
	ctx.Canvas.DrawPolygon(body, true)

	return nil
}
