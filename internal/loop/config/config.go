// Package config centralizes all tunable game parameters.
package config

import "time"

// View resolution - the visible viewport in world units.
// Actual rendering scales to fit terminal size.
const (
	ViewWidth  = 480 // Logical viewport width
	ViewHeight = 320 // Logical viewport height (scaled onto 2x vertical sub-pixels)
)

// Terminal limits. Larger terminals get a centered render area.
const (
	MaxTermWidth  = 240
	MaxTermHeight = 80
)

// Camera
const (
	CameraFollowRate = 5.5 // Fraction of the player offset closed per second
)

// Player
const (
	PlayerBlinkFrequency = 10.0 // Hz
	MaxUsernameLength    = 16   // Maximum display length for player usernames
)

// Mobs
const (
	MobSpawnRadius = 300.0 // Distance from the player where waves appear
	RobotChance    = 0.25  // Share of mobs spawned as robots
)

// Bullets
const (
	BulletSpreadDegrees = 5.0    // Angle between two bullets of a volley
	BulletCullDistance  = 1200.0 // Bullets farther than this from the player are dropped
)

// Leaderboard
const (
	LeaderboardSize = 10
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Hub tick rate
const (
	HubTickRate = 10
	HubTickTime = time.Second / HubTickRate
)
