package world

import (
	"github.com/tomz197/roots/internal/object"
	"github.com/tomz197/roots/internal/physics"
)

// collectCollidables extracts bullets and live mobs from the object list.
// Uses pre-allocated slices to avoid allocations.
func collectCollidables(objects []object.Object, bullets *[]*object.Bullet, mobs *[]*object.Mob) {
	*bullets = (*bullets)[:0]
	*mobs = (*mobs)[:0]

	for _, obj := range objects {
		switch o := obj.(type) {
		case *object.Bullet:
			if !o.IsDestroyed() {
				*bullets = append(*bullets, o)
			}
		case *object.Mob:
			if !o.IsDestroyed() {
				*mobs = append(*mobs, o)
			}
		}
	}
}

// populateGrid clears and re-inserts all mobs into the spatial hash.
func populateGrid(mobs []*object.Mob, grid *physics.SpatialHash) {
	grid.Clear()
	for i, m := range mobs {
		grid.Insert(m.X, m.Y, i)
	}
}

// overlaps reports whether two colliders' boxes intersect.
func overlaps(a, b object.Collider) bool {
	aPos, aSize := a.Bounds()
	bPos, bSize := b.Bounds()
	return physics.AABBOverlap(aPos, aSize, bPos, bSize)
}

// checkCollisions resolves bullet-mob and player-mob contacts.
// Returns the number of mobs killed.
func (w *World) checkCollisions() int {
	collectCollidables(w.Objects, &w.bulletCache, &w.mobCache)
	bullets := w.bulletCache
	mobs := w.mobCache
	populateGrid(mobs, w.mobGrid)

	kills := 0

	// Bullet-mob collisions: a bullet hurts every mob it touches until its hits run out
	for _, b := range bullets {
		w.mobGrid.QueryAround(b.X, b.Y, func(j int) bool {
			m := mobs[j]
			if m.IsDestroyed() || !overlaps(b, m) {
				return false
			}
			if m.Hurt(b.Hit()) {
				kills++
			}
			return b.IsDestroyed()
		})
	}

	// Player-mob collisions: each touching mob deals contact damage every step
	p := w.Player
	w.mobGrid.QueryAround(p.X, p.Y, func(j int) bool {
		m := mobs[j]
		if m.IsDestroyed() || !overlaps(p, m) {
			return false
		}
		p.Hurt(object.MobDamage)
		return p.IsDead()
	})

	return kills
}
