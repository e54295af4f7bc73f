package state

import (
	"reflect"
	"testing"
)

func TestMachineTransitions(t *testing.T) {
	tests := []struct {
		name   string
		events []Event
		want   AppState
	}{
		{"initial", nil, MainMenu},
		{"start", []Event{StartConfirmed}, PreStartMenu},
		{"play", []Event{StartConfirmed, PlayConfirmed}, InGame},
		{"wave done", []Event{StartConfirmed, PlayConfirmed, WaveDone}, LevelMenu},
		{"choose parent", []Event{StartConfirmed, PlayConfirmed, WaveDone, DebuffChosen}, InGame},
		{"death", []Event{StartConfirmed, PlayConfirmed, PlayerDied}, RetryMenu},
		{"retry", []Event{StartConfirmed, PlayConfirmed, PlayerDied, RetryConfirmed}, InGame},
		{"pause", []Event{StartConfirmed, PlayConfirmed, PauseToggled}, Paused},
		{"unpause", []Event{StartConfirmed, PlayConfirmed, PauseToggled, PauseToggled}, InGame},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMachine()
			for _, e := range tt.events {
				if !m.Fire(e) {
					t.Fatalf("Fire(%v) rejected in %v", e, m.Current())
				}
			}
			if m.Current() != tt.want {
				t.Errorf("Current() = %v, want %v", m.Current(), tt.want)
			}
		})
	}
}

func TestMachineIgnoresIllegalEvents(t *testing.T) {
	tests := []struct {
		name  string
		setup []Event
		event Event
	}{
		{"wave done in main menu", nil, WaveDone},
		{"play in main menu", nil, PlayConfirmed},
		{"pause in level menu", []Event{StartConfirmed, PlayConfirmed, WaveDone}, PauseToggled},
		{"death while paused", []Event{StartConfirmed, PlayConfirmed, PauseToggled}, PlayerDied},
		{"retry in game", []Event{StartConfirmed, PlayConfirmed}, RetryConfirmed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMachine()
			for _, e := range tt.setup {
				m.Fire(e)
			}
			before := m.Current()
			called := false
			m.OnExit(before, func(_, _ AppState) { called = true })

			if m.Fire(tt.event) {
				t.Fatalf("Fire(%v) accepted in %v", tt.event, before)
			}
			if m.Current() != before {
				t.Errorf("state changed to %v", m.Current())
			}
			if called {
				t.Error("exit hook ran for a rejected event")
			}
		})
	}
}

func TestMachineHookOrder(t *testing.T) {
	m := NewMachine()
	var log []string

	m.OnExit(MainMenu, func(from, to AppState) {
		log = append(log, "exit "+from.String()+"->"+to.String())
	})
	m.OnEnter(PreStartMenu, func(from, to AppState) {
		log = append(log, "enter "+from.String()+"->"+to.String())
	})
	m.OnEnter(PreStartMenu, func(_, _ AppState) {
		log = append(log, "enter second")
	})

	m.Fire(StartConfirmed)

	want := []string{
		"exit MainMenu->PreStartMenu",
		"enter MainMenu->PreStartMenu",
		"enter second",
	}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("hook order = %v, want %v", log, want)
	}
}

func TestMachineFireFromHook(t *testing.T) {
	m := NewMachine()
	var entered []AppState

	m.OnEnter(PreStartMenu, func(_, _ AppState) {
		if !m.Fire(PlayConfirmed) {
			t.Error("nested Fire rejected")
		}
		entered = append(entered, m.Current())
	})
	m.OnEnter(InGame, func(_, _ AppState) {
		entered = append(entered, m.Current())
	})

	m.Fire(StartConfirmed)

	if m.Current() != InGame {
		t.Fatalf("Current() = %v, want InGame", m.Current())
	}
	want := []AppState{PreStartMenu, InGame}
	if !reflect.DeepEqual(entered, want) {
		t.Errorf("entered = %v, want %v", entered, want)
	}
}

func TestStringers(t *testing.T) {
	if AppState(42).String() != "Unknown" || Event(42).String() != "Unknown" {
		t.Error("unknown values should render as Unknown")
	}
	if LevelMenu.String() != "LevelMenu" || DebuffChosen.String() != "DebuffChosen" {
		t.Error("unexpected names")
	}
}
