package object

import (
	"math"
	"math/rand"

	"github.com/tomz197/roots/internal/loop/config"
)

// MobSpawner turns the wave's spawn requests into mobs.
// Each batch appears together at a random point on a circle around the player.
type MobSpawner struct {
	pending int
	Radius  float64
}

// NewMobSpawner creates a spawner placing mobs at the configured radius.
func NewMobSpawner() *MobSpawner {
	return &MobSpawner{Radius: config.MobSpawnRadius}
}

// Request queues n mobs to appear on the next update.
func (s *MobSpawner) Request(n int) {
	if n > 0 {
		s.pending += n
	}
}

// Pending returns the number of mobs waiting to spawn.
func (s *MobSpawner) Pending() int {
	return s.pending
}

// Update spawns all pending mobs around the player.
func (s *MobSpawner) Update(ctx UpdateContext) (bool, error) {
	if s.pending == 0 || ctx.Player == nil || ctx.Spawner == nil {
		return false, nil
	}

	angle := rand.Float64() * 2 * math.Pi
	cx := ctx.Player.X + math.Cos(angle)*s.Radius
	cy := ctx.Player.Y + math.Sin(angle)*s.Radius

	for ; s.pending > 0; s.pending-- {
		// Small jitter so a batch does not stack on one point
		x := cx + (rand.Float64()-0.5)*MobSize
		y := cy + (rand.Float64()-0.5)*MobSize
		robot := rand.Float64() < config.RobotChance
		ctx.Spawner.Spawn(NewMob(x, y, robot))
	}
	return false, nil
}

// Draw is a no-op; spawner is not visible.
func (s *MobSpawner) Draw(_ DrawContext) error {
	return nil
}
