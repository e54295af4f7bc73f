// Package world simulates one player's arena: the player, the mobs of the
// current wave, bullets and particles.
package world

import (
	"fmt"
	"math"
	"time"

	"github.com/tomz197/roots/internal/draw"
	"github.com/tomz197/roots/internal/heredity"
	"github.com/tomz197/roots/internal/loop/config"
	"github.com/tomz197/roots/internal/object"
	"github.com/tomz197/roots/internal/physics"
	"github.com/tomz197/roots/internal/score"
)

// collisionCellSize is the cell size for the spatial hash.
// Must be >= the largest collision distance per axis (player vs mob: 32).
const collisionCellSize = object.MobSize

// StepResult reports what happened during one simulation step.
type StepResult struct {
	Kills      int  // Mobs killed this step
	PlayerDied bool // The player ran out of health this step
}

// World holds all objects of one arena.
type World struct {
	Objects []object.Object
	Player  *object.Player
	Camera  object.Camera
	View    object.Screen
	Theme   score.Theme // Selects the ground pattern

	toSpawn []object.Object // Objects to add after current update cycle
	spawner *object.MobSpawner

	// Reusable caches for collision detection (avoids allocations)
	bulletCache []*object.Bullet
	mobCache    []*object.Mob
	mobGrid     *physics.SpatialHash
}

// New creates an empty world. Call Reset to place a player.
func New() *World {
	return &World{
		View:    object.NewScreen(config.ViewWidth, config.ViewHeight),
		spawner: object.NewMobSpawner(),
		mobGrid: physics.NewSpatialHash(collisionCellSize),
	}
}

// Reset clears the world and places a fresh player built from stats at the origin.
func (w *World) Reset(stats heredity.Stats) {
	w.Clear()
	w.Player = object.NewPlayer(0, 0, stats)
	w.Camera = object.Camera{}
	w.Objects = append(w.Objects, w.spawner, w.Player)
}

// Clear removes every object, returning pooled ones to their pools.
func (w *World) Clear() {
	for _, obj := range w.Objects {
		object.ReleaseObject(obj)
	}
	for _, obj := range w.toSpawn {
		object.ReleaseObject(obj)
	}
	clear(w.Objects)
	w.Objects = w.Objects[:0]
	w.toSpawn = w.toSpawn[:0]
	w.Player = nil
	w.spawner = object.NewMobSpawner()
}

// Spawn queues an object to be added after the current update cycle.
// Implements object.Spawner interface.
func (w *World) Spawn(obj object.Object) {
	w.toSpawn = append(w.toSpawn, obj)
}

// FlushSpawned adds all queued objects to the game and clears the queue.
func (w *World) FlushSpawned() {
	w.Objects = append(w.Objects, w.toSpawn...)
	clear(w.toSpawn)
	w.toSpawn = w.toSpawn[:0]
}

// RequestMobs asks for n mobs to appear around the player on the next step.
func (w *World) RequestMobs(n int) {
	w.spawner.Request(n)
}

// PendingMobs returns how many requested mobs have not appeared yet.
func (w *World) PendingMobs() int {
	return w.spawner.Pending()
}

// MobCount returns the number of live mobs.
func (w *World) MobCount() int {
	n := 0
	for _, obj := range w.Objects {
		if m, ok := obj.(*object.Mob); ok && !m.IsDestroyed() {
			n++
		}
	}
	return n
}

// Step advances the world by dt using the player's input.
// The first failed object update is returned after the remaining objects
// have been updated; collisions are skipped for that step.
func (w *World) Step(dt time.Duration, in object.Input) (StepResult, error) {
	var res StepResult
	if w.Player == nil {
		return res, nil
	}

	playerCtx := object.UpdateContext{
		Delta:   dt,
		Input:   in,
		Spawner: w,
		Player:  w.Player,
	}
	if _, err := w.Player.Update(playerCtx); err != nil {
		return res, fmt.Errorf("update player: %w", err)
	}

	// Everything else runs with empty input
	ctx := playerCtx
	ctx.Input = object.Input{}

	cull := config.BulletCullDistance * config.BulletCullDistance
	var updateErr error
	kept := w.Objects[:0]
	for _, obj := range w.Objects {
		if obj == object.Object(w.Player) {
			kept = append(kept, obj)
			continue
		}

		remove, err := obj.Update(ctx)
		if err != nil && updateErr == nil {
			updateErr = fmt.Errorf("update %T: %w", obj, err)
		}
		if b, ok := obj.(*object.Bullet); ok && !remove {
			remove = physics.DistanceSquared(b.X, b.Y, w.Player.X, w.Player.Y) > cull
		}
		if remove {
			object.ReleaseObject(obj)
			continue
		}
		kept = append(kept, obj)
	}
	clear(w.Objects[len(kept):])
	w.Objects = kept
	w.FlushSpawned()
	if updateErr != nil {
		return res, updateErr
	}

	res.Kills = w.checkCollisions()

	if w.Player.IsDead() {
		object.SpawnExplosion(w.Player.X, w.Player.Y, 30, 150.0, 1.0, w)
		w.removePlayer()
		w.FlushSpawned()
		res.PlayerDied = true
		return res, nil
	}

	w.Camera.Follow(w.Player.X, w.Player.Y, config.CameraFollowRate, dt.Seconds())
	return res, nil
}

// removePlayer drops the player object from the world.
func (w *World) removePlayer() {
	kept := w.Objects[:0]
	for _, obj := range w.Objects {
		if obj != object.Object(w.Player) {
			kept = append(kept, obj)
		}
	}
	clear(w.Objects[len(kept):])
	w.Objects = kept
	w.Player = nil
}

// Draw renders the ground and every object onto canvas.
func (w *World) Draw(canvas *draw.Canvas) {
	ctx := object.DrawContext{
		Canvas: canvas,
		Camera: w.Camera,
		View:   w.View,
	}

	w.drawGround(canvas)
	for _, obj := range w.Objects {
		obj.Draw(ctx)
	}
	canvas.SetInk(draw.InkDefault)
}

// groundSpacing is the distance between ground marks per era.
var groundSpacing = map[score.Theme]float64{
	score.ThemeFuture:  40,
	score.ThemeModern:  64,
	score.ThemeAncient: 96,
}

// drawGround draws a grid of marks fixed in world space so movement is visible.
func (w *World) drawGround(canvas *draw.Canvas) {
	spacing := groundSpacing[w.Theme]
	if spacing == 0 {
		spacing = groundSpacing[score.ThemeFuture]
	}

	left := w.Camera.X - float64(w.View.Width)/2
	top := w.Camera.Y - float64(w.View.Height)/2

	canvas.SetInk(object.InkGround)
	for wy := math.Floor(top/spacing) * spacing; wy <= top+float64(w.View.Height); wy += spacing {
		for wx := math.Floor(left/spacing) * spacing; wx <= left+float64(w.View.Width); wx += spacing {
			canvas.SetFloat(wx-left, wy-top)
		}
	}
}
