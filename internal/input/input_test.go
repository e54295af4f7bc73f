package input

import (
	"testing"
	"time"
)

func newTestStream(bytes ...byte) *Stream {
	s := &Stream{ch: make(chan byte, 128)}
	for _, b := range bytes {
		s.ch <- b
	}
	return s
}

func TestReadInputKeys(t *testing.T) {
	tests := []struct {
		name  string
		bytes []byte
		check func(in Input) bool
	}{
		{"w moves up", []byte("w"), func(in Input) bool { return in.Up && !in.Down }},
		{"arrow aims", []byte("\x1b[D"), func(in Input) bool { return in.AimLeft && !in.Pause }},
		{"ss3 arrow aims", []byte("\x1bOA"), func(in Input) bool { return in.AimUp }},
		{"lone escape pauses", []byte("\x1b"), func(in Input) bool { return in.Pause }},
		{"p pauses", []byte("p"), func(in Input) bool { return in.Pause }},
		{"space fires and confirms", []byte(" "), func(in Input) bool { return in.Fire && in.Confirm }},
		{"enter confirms", []byte("\r"), func(in Input) bool { return in.Confirm && !in.Fire }},
		{"digit", []byte("2"), func(in Input) bool { return in.Number == 2 }},
		{"no digit", []byte("x"), func(in Input) bool { return in.Number == -1 }},
		{"quit", []byte("q"), func(in Input) bool { return in.Quit }},
		{"ctrl-c quits", []byte{0x03}, func(in Input) bool { return in.Quit }},
		{"diagonal", []byte("wd"), func(in Input) bool {
			dx, dy := in.Move()
			return dx == 1 && dy == -1
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStream(tt.bytes...)
			in := readInputAt(s, time.Now())
			if !tt.check(in) {
				t.Errorf("unexpected input for %q: %+v", tt.bytes, in)
			}
			if string(in.Pressed) != string(tt.bytes) {
				t.Errorf("Pressed = %q, want %q", in.Pressed, tt.bytes)
			}
		})
	}
}

func TestHeldKeysExpire(t *testing.T) {
	s := newTestStream('a', ' ')
	now := time.Now()

	in := readInputAt(s, now)
	if !in.Left || !in.Fire || !in.Confirm {
		t.Fatalf("keys not pressed: %+v", in)
	}

	in = readInputAt(s, now.Add(keyHoldDuration/2))
	if !in.Left || !in.Fire {
		t.Error("held keys released too early")
	}
	if in.Confirm {
		t.Error("Confirm repeated without a new press")
	}

	in = readInputAt(s, now.Add(keyHoldDuration))
	if in.Left || in.Fire {
		t.Error("held keys did not expire")
	}
}

func TestResetKeyInput(t *testing.T) {
	s := newTestStream('d')
	now := time.Now()
	readInputAt(s, now)

	ResetKeyInput(s)
	if in := readInputAt(s, now); in.Right {
		t.Error("Right still held after ResetKeyInput")
	}
}

func TestClosedStreamQuits(t *testing.T) {
	s := newTestStream()
	close(s.ch)

	in := readInputAt(s, time.Now())
	if !in.Quit || !s.Closed() {
		t.Errorf("closed stream did not quit: %+v", in)
	}
}

func TestAxis(t *testing.T) {
	in := Input{Left: true, Right: true, AimDown: true}
	dx, dy := in.Move()
	if dx != 0 || dy != 0 {
		t.Errorf("opposite keys should cancel, got (%v, %v)", dx, dy)
	}
	ax, ay := in.Aim()
	if ax != 0 || ay != 1 {
		t.Errorf("Aim() = (%v, %v), want (0, 1)", ax, ay)
	}
}
