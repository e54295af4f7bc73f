package world

import (
	"errors"
	"testing"
	"time"

	"github.com/tomz197/roots/internal/draw"
	"github.com/tomz197/roots/internal/heredity"
	"github.com/tomz197/roots/internal/loop/config"
	"github.com/tomz197/roots/internal/object"
)

const frame = time.Second / 60

func newTestWorld(stats heredity.Stats) *World {
	w := New()
	w.Reset(stats)
	return w
}

func (w *World) count(match func(object.Object) bool) int {
	n := 0
	for _, obj := range w.Objects {
		if match(obj) {
			n++
		}
	}
	return n
}

// step advances w by one frame and fails the test on an update error.
func step(t *testing.T, w *World, in object.Input) StepResult {
	t.Helper()
	res, err := w.Step(frame, in)
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	return res
}

func isBullet(obj object.Object) bool {
	_, ok := obj.(*object.Bullet)
	return ok
}

func TestResetPlacesPlayer(t *testing.T) {
	w := newTestWorld(heredity.DefaultStats())
	if w.Player == nil {
		t.Fatal("no player after Reset")
	}
	if res := step(t, w, object.Input{}); res != (StepResult{}) {
		t.Errorf("empty world step = %+v", res)
	}
	if w.MobCount() != 0 {
		t.Errorf("MobCount() = %d, want 0", w.MobCount())
	}
}

func TestRequestMobs(t *testing.T) {
	w := newTestWorld(heredity.DefaultStats())
	w.RequestMobs(3)
	if w.PendingMobs() != 3 || w.MobCount() != 0 {
		t.Fatalf("before step: %d pending, %d mobs", w.PendingMobs(), w.MobCount())
	}
	step(t, w, object.Input{})
	if w.MobCount() != 3 || w.PendingMobs() != 0 {
		t.Errorf("after step: %d mobs, %d pending, want 3 and 0", w.MobCount(), w.PendingMobs())
	}
}

func TestBulletKillsMob(t *testing.T) {
	stats := heredity.DefaultStats()
	stats.BulletCount = 1
	stats.Damage = 1
	w := newTestWorld(stats)
	w.Player.AimX, w.Player.AimY = 1, 0

	w.Spawn(object.NewMob(60, 0, false))
	w.FlushSpawned()

	kills := 0
	for i := 0; i < 30 && kills == 0; i++ {
		res := step(t, w, object.Input{Fire: true})
		if res.PlayerDied {
			t.Fatal("player died before the bullet hit")
		}
		kills += res.Kills
	}
	if kills != 1 {
		t.Fatalf("kills = %d, want 1", kills)
	}
	if w.MobCount() != 0 {
		t.Errorf("MobCount() = %d after the kill", w.MobCount())
	}
}

func TestRobotSurvivesOneHit(t *testing.T) {
	stats := heredity.DefaultStats()
	stats.BulletCount = 1
	stats.Damage = 1
	w := newTestWorld(stats)
	w.Player.AimX, w.Player.AimY = 1, 0

	robot := object.NewMob(80, 0, true)
	w.Spawn(robot)
	w.FlushSpawned()

	for i := 0; i < 20; i++ {
		if res := step(t, w, object.Input{Fire: true}); res.Kills != 0 {
			t.Fatal("robot died from a single bullet")
		}
	}
	if robot.Health != 1 {
		t.Errorf("robot health = %v, want 1", robot.Health)
	}
}

func TestPlayerDiesOnContact(t *testing.T) {
	w := newTestWorld(heredity.DefaultStats())
	w.Spawn(object.NewMob(10, 0, false))
	w.FlushSpawned()

	res := step(t, w, object.Input{})
	if !res.PlayerDied {
		t.Fatal("player survived contact with full health 1")
	}
	if w.Player != nil {
		t.Error("dead player still in the world")
	}
	if res := step(t, w, object.Input{}); res != (StepResult{}) {
		t.Errorf("step without a player = %+v", res)
	}
}

func TestBulletsCulledFarAway(t *testing.T) {
	w := newTestWorld(heredity.DefaultStats())
	w.Spawn(object.NewBullet(config.BulletCullDistance+100, 0, 0, heredity.DefaultStats()))
	w.Spawn(object.NewBullet(10, 0, 0, heredity.DefaultStats()))
	w.FlushSpawned()

	step(t, w, object.Input{})
	if got := w.count(isBullet); got != 1 {
		t.Errorf("%d bullets left, want 1", got)
	}
}

func TestClear(t *testing.T) {
	w := newTestWorld(heredity.DefaultStats())
	w.RequestMobs(5)
	step(t, w, object.Input{Fire: true})

	w.Clear()
	if len(w.Objects) != 0 || w.Player != nil {
		t.Errorf("Clear left %d objects, player %v", len(w.Objects), w.Player)
	}

	// Requests made before Clear are dropped
	w.RequestMobs(2)
	w.Clear()
	w.Reset(heredity.DefaultStats())
	if w.PendingMobs() != 0 {
		t.Errorf("PendingMobs() = %d after Reset", w.PendingMobs())
	}
	step(t, w, object.Input{})
	if w.MobCount() != 0 {
		t.Errorf("MobCount() = %d after Reset", w.MobCount())
	}
}

func TestCameraFollowsPlayer(t *testing.T) {
	w := newTestWorld(heredity.DefaultStats())
	for i := 0; i < 120; i++ {
		step(t, w, object.Input{Right: true})
	}
	if w.Camera.X <= 0 || w.Camera.X > w.Player.X {
		t.Errorf("camera X = %v, player X = %v", w.Camera.X, w.Player.X)
	}
}

func TestDrawPlayer(t *testing.T) {
	w := newTestWorld(heredity.DefaultStats())
	canvas := draw.NewScaledCanvas(120, 40, config.ViewWidth, config.ViewHeight)

	w.Draw(canvas)
	if got := canvas.Pixel(60, 40); got != object.InkPlayer {
		t.Errorf("pixel under the player = %v, want %v", got, object.InkPlayer)
	}
}

// brokenObject fails every update.
type brokenObject struct {
	updates int
}

var errBroken = errors.New("broken")

func (b *brokenObject) Update(object.UpdateContext) (bool, error) {
	b.updates++
	return false, errBroken
}

func (b *brokenObject) Draw(object.DrawContext) error { return nil }

func TestStepReturnsUpdateError(t *testing.T) {
	w := newTestWorld(heredity.DefaultStats())
	broken := &brokenObject{}
	w.Spawn(broken)
	w.Spawn(object.NewMob(100, 0, false))
	w.FlushSpawned()

	_, err := w.Step(frame, object.Input{})
	if !errors.Is(err, errBroken) {
		t.Fatalf("Step() error = %v, want %v", err, errBroken)
	}
	if broken.updates != 1 {
		t.Errorf("broken object updated %d times, want 1", broken.updates)
	}
	if w.MobCount() != 1 || w.Player == nil {
		t.Errorf("objects lost after a failed step: %d mobs, player %v", w.MobCount(), w.Player)
	}

	// The world keeps stepping once the failure is gone
	w.Reset(heredity.DefaultStats())
	step(t, w, object.Input{})
}
