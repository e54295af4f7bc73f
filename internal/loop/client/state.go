package client

import (
	"time"

	"github.com/tomz197/roots/internal/draw"
	"github.com/tomz197/roots/internal/object"
	"github.com/tomz197/roots/internal/state"
)

// ClientState holds per-connection state outside of the game session
// (input, timers, redraw tracking). Each client has its own instance.
type ClientState struct {
	Input         object.Input
	termSizeFunc  draw.TermSizeFunc // Function to get terminal size
	Running       bool              // Client loop running
	delta         time.Duration     // Frame delta time (client-side)
	shutdown      bool              // Server is shutting down
	shutdownTimer float64           // Countdown before auto-disconnect on shutdown
	isInactive    bool              // Whether the client is in inactive warning state
	runSubmitted  bool              // The current run was sent to the leaderboard

	// Values drawn last frame, used to decide on a full redraw
	prevAppState state.AppState
	wasInactive  bool
	wasShutdown  bool

	notice      string  // Banner shown at the bottom of the screen
	noticeTimer float64 // Seconds the banner stays visible
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		Running:      true,
		prevAppState: state.MainMenu,
	}
}
