// Package state implements the application state machine.
package state

// AppState is the screen the application is on.
type AppState int

const (
	MainMenu     AppState = iota // Title screen
	PreStartMenu                 // Lore and controls before the first wave
	InGame                       // Active gameplay
	Paused                       // Gameplay frozen
	LevelMenu                    // Wave cleared, choose a parent
	RetryMenu                    // Player died
)

func (s AppState) String() string {
	switch s {
	case MainMenu:
		return "MainMenu"
	case PreStartMenu:
		return "PreStartMenu"
	case InGame:
		return "InGame"
	case Paused:
		return "Paused"
	case LevelMenu:
		return "LevelMenu"
	case RetryMenu:
		return "RetryMenu"
	default:
		return "Unknown"
	}
}

// Event triggers a transition.
type Event int

const (
	StartConfirmed Event = iota
	PlayConfirmed
	WaveDone
	PlayerDied
	DebuffChosen
	RetryConfirmed
	PauseToggled
)

func (e Event) String() string {
	switch e {
	case StartConfirmed:
		return "StartConfirmed"
	case PlayConfirmed:
		return "PlayConfirmed"
	case WaveDone:
		return "WaveDone"
	case PlayerDied:
		return "PlayerDied"
	case DebuffChosen:
		return "DebuffChosen"
	case RetryConfirmed:
		return "RetryConfirmed"
	case PauseToggled:
		return "PauseToggled"
	default:
		return "Unknown"
	}
}

type edge struct {
	from  AppState
	event Event
}

var transitions = map[edge]AppState{
	{MainMenu, StartConfirmed}:    PreStartMenu,
	{PreStartMenu, PlayConfirmed}: InGame,
	{InGame, WaveDone}:            LevelMenu,
	{InGame, PlayerDied}:          RetryMenu,
	{InGame, PauseToggled}:        Paused,
	{Paused, PauseToggled}:        InGame,
	{LevelMenu, DebuffChosen}:     InGame,
	{RetryMenu, RetryConfirmed}:   InGame,
}

// Next returns the state reached from s on e, and false if e is not
// accepted in s.
func Next(s AppState, e Event) (AppState, bool) {
	to, ok := transitions[edge{s, e}]
	return to, ok
}
