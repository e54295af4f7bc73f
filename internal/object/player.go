package object

import (
	"math"

	"github.com/tomz197/roots/internal/draw"
	"github.com/tomz197/roots/internal/heredity"
	"github.com/tomz197/roots/internal/loop/config"
	"github.com/tomz197/roots/internal/physics"
)

// PlayerSize is the edge of the player's collision box.
const PlayerSize = 32.0

// Player is the character controlled by the connected user.
// Movement, firing and health all come from the run's stat block.
type Player struct {
	X, Y   float64 // Position (center)
	AimX   float64 // Aim direction, unit length
	AimY   float64
	Health float64
	Stats  heredity.Stats

	fireCooldown float64 // Time until next volley allowed
	hurtTime     float64 // Seconds of hurt blink remaining
}

// NewPlayer creates a player at (x, y) using the given stat block.
func NewPlayer(x, y float64, stats heredity.Stats) *Player {
	ax, ay := physics.Normalize(1, -1) // Up and to the right
	return &Player{
		X:      x,
		Y:      y,
		AimX:   ax,
		AimY:   ay,
		Health: stats.Health,
		Stats:  stats,
	}
}

// Update handles 8-direction movement, aiming and shooting.
func (p *Player) Update(ctx UpdateContext) (bool, error) {
	dt := ctx.Delta.Seconds()

	if p.hurtTime > 0 {
		p.hurtTime = max(p.hurtTime-dt, 0)
	}

	// Diagonals are normalized so they are not faster than straight moves
	dx, dy := physics.Normalize(ctx.Input.Move())
	p.X += dx * p.Stats.Speed * dt
	p.Y += dy * p.Stats.Speed * dt

	// Aim keeps its last direction when no aim key is held
	if ax, ay := ctx.Input.Aim(); ax != 0 || ay != 0 {
		p.AimX, p.AimY = physics.Normalize(ax, ay)
	}

	p.fireCooldown -= dt
	if ctx.Input.Fire && p.fireCooldown <= 0 && ctx.Spawner != nil {
		p.fireCooldown = p.Stats.FireRate
		p.fire(ctx.Spawner)
	}

	return false, nil
}

// fire spawns one volley: BulletCount bullets fanned around the aim direction.
func (p *Player) fire(spawner Spawner) {
	spread := config.BulletSpreadDegrees * math.Pi / 180
	aim := math.Atan2(p.AimY, p.AimX)
	n := p.Stats.BulletCount
	for i := 0; i < n; i++ {
		offset := float64(i - n/2)
		angle := aim + offset*spread
		spawner.Spawn(NewBullet(p.X, p.Y, angle, p.Stats))
	}
}

// Hurt removes damage from the player's health and starts the hurt blink.
func (p *Player) Hurt(damage float64) {
	p.Health -= damage
	p.hurtTime = 0.5
}

// IsDead reports whether the player ran out of health.
func (p *Player) IsDead() bool {
	return p.Health <= 0
}

// Bounds implements Collider.
func (p *Player) Bounds() (physics.Vec2, physics.Vec2) {
	return physics.Vec2{X: p.X, Y: p.Y}, physics.Vec2{X: PlayerSize, Y: PlayerSize}
}

// Draw renders the player as a diamond with an aim marker.
func (p *Player) Draw(ctx DrawContext) error {
	if !ShouldRenderBlink(p.hurtTime, config.PlayerBlinkFrequency) {
		return nil
	}

	pos, ok := WorldToScreen(p.X, p.Y, ctx.Camera, ctx.View, PlayerSize)
	if !ok {
		return nil
	}

	h := PlayerSize / 2
	body := ctx.Canvas.BorrowPoints(4)
	body[0] = draw.Point{X: pos.X, Y: pos.Y - h}
	body[1] = draw.Point{X: pos.X + h, Y: pos.Y}
	body[2] = draw.Point{X: pos.X, Y: pos.Y + h}
	body[3] = draw.Point{X: pos.X - h, Y: pos.Y}

	ctx.Canvas.SetInk(InkPlayer)
	ctx.Canvas.DrawPolygon(body, true)

	ctx.Canvas.SetInk(InkBullet)
	tip := draw.Point{X: pos.X + p.AimX*PlayerSize, Y: pos.Y + p.AimY*PlayerSize}
	ctx.Canvas.DrawLine(draw.Point{X: pos.X + p.AimX*h, Y: pos.Y + p.AimY*h}, tip)

	return nil
}
