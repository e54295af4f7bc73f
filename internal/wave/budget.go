// Package wave tracks the spawn budget of a wave and paces its spawns.
package wave

import "math"

// Budget counts spawned and killed mobs against the quota of the current wave.
type Budget struct {
	quota   uint32
	spawned uint32
	killed  uint32
}

// NewBudget creates a budget for a wave of quota mobs.
func NewBudget(quota uint32) *Budget {
	return &Budget{quota: quota}
}

// RecordSpawn reserves one spawn. It returns false once the quota is reached,
// in which case nothing is recorded and the caller must not spawn.
func (b *Budget) RecordSpawn() bool {
	if b.spawned >= b.quota {
		return false
	}
	b.spawned++
	return true
}

// RecordKill counts one death. Kills are not clamped to the quota.
func (b *Budget) RecordKill() {
	if b.killed < math.MaxUint32 {
		b.killed++
	}
}

// IsWaveComplete reports whether enough mobs died to clear the wave.
func (b *Budget) IsWaveComplete() bool {
	return b.killed >= b.quota
}

// Reset starts a new wave with the given quota.
func (b *Budget) Reset(quota uint32) {
	b.quota = quota
	b.spawned = 0
	b.killed = 0
}

func (b *Budget) Quota() uint32   { return b.quota }
func (b *Budget) Spawned() uint32 { return b.spawned }
func (b *Budget) Killed() uint32  { return b.killed }

// Remaining returns how many kills are still needed.
func (b *Budget) Remaining() uint32 {
	if b.killed >= b.quota {
		return 0
	}
	return b.quota - b.killed
}
