// Package input decodes raw terminal bytes into per-frame key state.
package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// Terminals only report key repeats, so held keys are inferred from recent presses.
const keyHoldDuration = 60 * time.Millisecond

// Input represents the current frame's input state.
//
// Movement, aiming and Fire are held keys. Confirm, Pause, Quit and Number
// only report presses that arrived during this frame, so a single key press
// never triggers two menu actions.
type Input struct {
	// Held
	Up, Down, Left, Right             bool // WASD movement
	AimUp, AimDown, AimLeft, AimRight bool // Arrow keys
	Fire                              bool // Space

	// Pressed this frame
	Confirm bool // Enter or Space
	Pause   bool // P or a lone Escape
	Quit    bool // Q or Ctrl+C
	Number  int  // Digit key, -1 if none

	Pressed []byte // Raw bytes read this frame
}

// Move returns the movement direction as unit steps on each axis.
func (in Input) Move() (dx, dy float64) {
	return axis(in.Left, in.Right), axis(in.Up, in.Down)
}

// Aim returns the aim direction as unit steps on each axis.
func (in Input) Aim() (dx, dy float64) {
	return axis(in.AimLeft, in.AimRight), axis(in.AimUp, in.AimDown)
}

func axis(neg, pos bool) float64 {
	switch {
	case neg && !pos:
		return -1
	case pos && !neg:
		return 1
	default:
		return 0
	}
}

// keyState tracks the last time each held key was pressed.
type keyState struct {
	up, down, left, right             time.Time
	aimUp, aimDown, aimLeft, aimRight time.Time
	fire                              time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch     chan byte
	state  keyState
	closed bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 128),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool {
	return s.closed
}

// ResetKeyInput forgets all held keys, e.g. after a screen change.
func ResetKeyInput(s *Stream) {
	s.state = keyState{}
}

// ReadInput drains all available bytes from the stream (non-blocking).
// Handles escape sequences for arrow keys and accumulates all pressed keys.
func ReadInput(s *Stream) Input {
	return readInputAt(s, time.Now())
}

func readInputAt(s *Stream, now time.Time) Input {
	var buf []byte

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	in := Input{Number: -1, Pressed: buf}
	parse(buf, &s.state, &in, now)

	held := func(t time.Time) bool { return now.Sub(t) < keyHoldDuration }
	in.Up = held(s.state.up)
	in.Down = held(s.state.down)
	in.Left = held(s.state.left)
	in.Right = held(s.state.right)
	in.AimUp = held(s.state.aimUp)
	in.AimDown = held(s.state.aimDown)
	in.AimLeft = held(s.state.aimLeft)
	in.AimRight = held(s.state.aimRight)
	in.Fire = held(s.state.fire)
	if s.closed {
		in.Quit = true
	}
	return in
}

// parse applies the bytes of one frame to the held-key state and the
// per-frame presses.
func parse(buf []byte, state *keyState, in *Input, now time.Time) {
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' {
			// CSI sequence: ESC [ <code>
			if i+2 < len(buf) && (buf[i+1] == '[' || buf[i+1] == 'O') {
				switch buf[i+2] {
				case 'A':
					state.aimUp = now
				case 'B':
					state.aimDown = now
				case 'C':
					state.aimRight = now
				case 'D':
					state.aimLeft = now
				}
				i += 2
				continue
			}
			in.Pause = true
			continue
		}

		switch b {
		case 'q', 'Q', 0x03:
			in.Quit = true
		case 'w', 'W':
			state.up = now
		case 's', 'S':
			state.down = now
		case 'a', 'A':
			state.left = now
		case 'd', 'D':
			state.right = now
		case 'i', 'I':
			state.aimUp = now
		case 'k', 'K':
			state.aimDown = now
		case 'j', 'J':
			state.aimLeft = now
		case 'l', 'L':
			state.aimRight = now
		case ' ':
			state.fire = now
			in.Confirm = true
		case '\n', '\r':
			in.Confirm = true
		case 'p', 'P':
			in.Pause = true
		case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			in.Number = int(b - '0')
		}
	}
}
