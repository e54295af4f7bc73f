// Package session runs one playthrough: waves, level progression, parent
// offers and the application state they drive.
package session

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/tomz197/roots/internal/difficulty"
	"github.com/tomz197/roots/internal/heredity"
	"github.com/tomz197/roots/internal/score"
	"github.com/tomz197/roots/internal/state"
	"github.com/tomz197/roots/internal/wave"
)

// Options configures a session. Zero values pick defaults.
type Options struct {
	Table  *difficulty.Table
	Rand   heredity.Rand
	Logger *log.Logger
}

// TickResult tells the world what to do after a tick.
type TickResult struct {
	Spawn    int  // Mobs to spawn this tick
	WaveDone bool // The wave was cleared and the level advanced
	Died     bool // The player died this tick
}

// Session owns every piece of state of one playthrough. It is driven by a
// single goroutine and is not safe for concurrent use.
type Session struct {
	ID uuid.UUID

	table   *difficulty.Table
	budget  *wave.Budget
	timer   *wave.Timer
	batch   uint32
	stats   heredity.Stats
	clock   *score.Clock
	offer   heredity.Offer
	machine *state.Machine
	rng     heredity.Rand
	logger  *log.Logger
}

// New creates a session in MainMenu at level 0.
func New(opts Options) *Session {
	table := opts.Table
	if table == nil {
		table = difficulty.Default()
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	id := uuid.New()
	s := &Session{
		ID:      id,
		table:   table,
		budget:  wave.NewBudget(0),
		timer:   wave.NewTimer(0),
		clock:   score.NewClock(),
		machine: state.NewMachine(),
		rng:     rng,
		logger:  logger.With("session", id.String()),
	}
	s.reset()

	s.machine.OnEnter(state.LevelMenu, func(_, _ state.AppState) {
		s.offer = heredity.NewOffer(s.rng)
	})
	s.machine.OnExit(state.RetryMenu, func(_, _ state.AppState) {
		s.reset()
		s.logger.Info("run restarted")
	})
	s.machine.OnEnter(state.RetryMenu, func(_, _ state.AppState) {
		s.logger.Info("player died", "level", s.Level(), "year", s.clock.Target)
	})

	return s
}

// reset puts the session back to level 0 with default stats.
func (s *Session) reset() {
	s.clock.Reset()
	s.stats = heredity.DefaultStats()
	s.configureLevel()
}

// configureLevel applies the difficulty of the current level to the budget
// and the spawn timer.
func (s *Session) configureLevel() {
	d := s.table.Lookup(s.clock.Level)
	s.budget.Reset(d.Quota)
	s.timer.SetPeriod(d.Interval)
	s.batch = d.Batch
}

// Tick advances the session by dt seconds. kills is the number of mobs that
// died since the last tick. Outside InGame only the score clock animates.
func (s *Session) Tick(dt float32, kills int, playerDied bool) TickResult {
	s.clock.Tick(dt)

	var res TickResult
	if s.machine.Current() != state.InGame {
		return res
	}

	for range kills {
		s.budget.RecordKill()
	}

	if playerDied {
		res.Died = true
		s.machine.Fire(state.PlayerDied)
		return res
	}

	if s.timer.Tick(dt) {
		for i := uint32(0); i < s.batch; i++ {
			if !s.budget.RecordSpawn() {
				break
			}
			res.Spawn++
		}
	}

	if s.budget.IsWaveComplete() {
		s.advance()
		res.WaveDone = true
	}
	return res
}

// advance moves to the next level and requests the level menu.
func (s *Session) advance() {
	s.clock.LevelUp()
	s.configureLevel()
	s.logger.Info("wave cleared",
		"level", s.clock.Level,
		"quota", s.budget.Quota(),
		"interval", s.timer.Period(),
		"batch", s.batch,
	)
	s.machine.Fire(state.WaveDone)
}

// Start leaves the main menu.
func (s *Session) Start() bool {
	return s.fire(state.StartConfirmed)
}

// Play starts the first wave from the pre-start menu.
func (s *Session) Play() bool {
	return s.fire(state.PlayConfirmed)
}

// ChooseParent applies the penalties of parent i (0 = dad, 1 = mom) from the
// current offer, adopts its color and resumes the game.
func (s *Session) ChooseParent(i int) bool {
	if s.machine.Current() != state.LevelMenu || i < 0 || i > 1 {
		return false
	}

	triple, color := s.offer.Parent(i)
	heredity.ApplyAll(triple, &s.stats)
	s.stats.Color = color
	s.logger.Debug("parent chosen", "parent", i, "debuffs", triple)
	return s.fire(state.DebuffChosen)
}

// Retry restarts the run from the retry menu.
func (s *Session) Retry() bool {
	return s.fire(state.RetryConfirmed)
}

// TogglePause pauses or resumes gameplay.
func (s *Session) TogglePause() bool {
	return s.fire(state.PauseToggled)
}

func (s *Session) fire(e state.Event) bool {
	from := s.machine.Current()
	if !s.machine.Fire(e) {
		return false
	}
	s.logger.Debug("state changed", "event", e, "from", from, "to", s.machine.Current())
	return true
}

// State returns the active AppState.
func (s *Session) State() state.AppState { return s.machine.Current() }

// Machine exposes the state machine so frontends can register hooks.
func (s *Session) Machine() *state.Machine { return s.machine }

// Level returns the current level index.
func (s *Session) Level() uint32 { return s.clock.Level }

// Stats returns a copy of the player's stat block.
func (s *Session) Stats() heredity.Stats { return s.stats }

// Offer returns the parents offered in the current level menu.
func (s *Session) Offer() heredity.Offer { return s.offer }

// Clock returns the score clock.
func (s *Session) Clock() *score.Clock { return s.clock }

// Budget returns the spawn budget of the current wave.
func (s *Session) Budget() *wave.Budget { return s.budget }

// Logger returns the session logger.
func (s *Session) Logger() *log.Logger { return s.logger }
