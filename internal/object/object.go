package object

import (
	"time"

	"github.com/tomz197/roots/internal/draw"
	"github.com/tomz197/roots/internal/heredity"
	"github.com/tomz197/roots/internal/input"
	"github.com/tomz197/roots/internal/physics"
)

// Spawner allows objects to spawn new objects during update.
type Spawner interface {
	Spawn(obj Object)
}

// Input is an alias for the input package's Input type.
type Input = input.Input

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Delta   time.Duration
	Input   Input
	Spawner Spawner
	Player  *Player // Nil once the player has died
}

// Camera represents the viewport position in world space.
type Camera struct {
	X, Y float64 // Camera center position in world coordinates
}

// Follow moves the camera toward (x, y), closing rate of the gap per second.
func (c *Camera) Follow(x, y, rate, dt float64) {
	k := min(rate*dt, 1)
	c.X += (x - c.X) * k
	c.Y += (y - c.Y) * k
}

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Canvas *draw.Canvas // High-resolution canvas (2x vertical)
	Camera Camera       // Camera position for viewport offset
	View   Screen       // Viewport dimensions (what the camera sees)
}

// Screen represents viewport dimensions.
type Screen struct {
	Width   int
	Height  int
	CenterX int
	CenterY int
}

// NewScreen returns a screen of the given size with its center filled in.
func NewScreen(width, height int) Screen {
	return Screen{Width: width, Height: height, CenterX: width / 2, CenterY: height / 2}
}

// WorldToScreen converts world coordinates to screen coordinates relative to camera.
// Reports false when the point is farther than margin outside the view.
func WorldToScreen(worldX, worldY float64, cam Camera, view Screen, margin float64) (draw.Point, bool) {
	viewW := float64(view.Width)
	viewH := float64(view.Height)

	// Camera position is the center of the view
	sx := worldX - (cam.X - viewW/2)
	sy := worldY - (cam.Y - viewH/2)

	visible := sx >= -margin && sx <= viewW+margin && sy >= -margin && sy <= viewH+margin
	return draw.Point{X: sx, Y: sy}, visible
}

// Object is a drawable and updatable game entity.
type Object interface {
	// Update updates the object state. Returns true if the object should be removed.
	Update(ctx UpdateContext) (remove bool, err error)

	// Draw draws the object onto ctx.Canvas.
	Draw(ctx DrawContext) error
}

// Collider is implemented by objects taking part in AABB collision tests.
type Collider interface {
	// Bounds returns the box center and its full width and height.
	Bounds() (pos, size physics.Vec2)
}

// Destructible is implemented by objects that can be destroyed/marked for removal.
type Destructible interface {
	// MarkDestroyed marks the object for removal on next update cycle.
	MarkDestroyed()
	// IsDestroyed returns true if the object is marked for destruction.
	IsDestroyed() bool
}

// Compile-time checks for the mobs and bullets the world collides.
var (
	_ Destructible = (*Mob)(nil)
	_ Destructible = (*Bullet)(nil)
	_ Collider     = (*Mob)(nil)
	_ Collider     = (*Bullet)(nil)
	_ Collider     = (*Player)(nil)
	_ Releasable   = (*Bullet)(nil)
	_ Releasable   = (*Particle)(nil)
)

// Releasable is implemented by pooled objects that can be returned to a pool.
type Releasable interface {
	// Release returns the object to its pool for reuse.
	Release()
}

// ReleaseObject releases an object back to its pool if it implements Releasable.
func ReleaseObject(obj Object) {
	if r, ok := obj.(Releasable); ok {
		r.Release()
	}
}

// Inks used by world objects. The client registers their colors on its canvas.
const (
	InkPlayer draw.Ink = draw.InkDefault + 1 + iota
	InkMob
	InkRobot
	InkHurt
	InkBullet
	InkSpark
	InkGround
)

// RegisterInks sets the colors of all object inks on c.
// The player ink follows the inherited color of the current run.
func RegisterInks(c *draw.Canvas, player heredity.Color) {
	c.SetInkColor(draw.InkDefault, "#c0c0c0")
	c.SetInkColor(InkPlayer, player.Hex())
	c.SetInkColor(InkMob, "#cccccc")
	c.SetInkColor(InkRobot, "#7fb3d5")
	c.SetInkColor(InkHurt, "#cc0000")
	c.SetInkColor(InkBullet, "#cccc66")
	c.SetInkColor(InkSpark, "#ff9933")
	c.SetInkColor(InkGround, "#3a3a3a")
}

// ShouldRenderBlink returns true if an object with remaining protection/hurt
// time should be rendered this frame (for blinking effect).
// Returns true always if remainingTime <= 0.
func ShouldRenderBlink(remainingTime float64, frequency float64) bool {
	if remainingTime <= 0 {
		return true
	}
	// Blink based on frequency (e.g., 5.0 = 5Hz, 10.0 = 10Hz)
	phase := int(remainingTime * frequency)
	return phase%2 != 0
}
