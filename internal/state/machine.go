package state

// Hook runs on a transition between two states.
type Hook func(from, to AppState)

// Machine holds the current AppState and the hooks run around transitions.
// It is not safe for concurrent use.
type Machine struct {
	current AppState
	onEnter map[AppState][]Hook
	onExit  map[AppState][]Hook
	next    AppState // Target of the transition in progress
	firing  bool
	queued  []Event
}

// NewMachine creates a machine in MainMenu.
func NewMachine() *Machine {
	return &Machine{
		current: MainMenu,
		onEnter: make(map[AppState][]Hook),
		onExit:  make(map[AppState][]Hook),
	}
}

// Current returns the active state.
func (m *Machine) Current() AppState {
	return m.current
}

// OnEnter registers h to run after s becomes active.
func (m *Machine) OnEnter(s AppState, h Hook) {
	m.onEnter[s] = append(m.onEnter[s], h)
}

// OnExit registers h to run before s is left.
func (m *Machine) OnExit(s AppState, h Hook) {
	m.onExit[s] = append(m.onExit[s], h)
}

// Fire applies e to the current state. It returns false if the event is not
// accepted there. Exit hooks of the old state run before enter hooks of the
// new one. Events fired from inside a hook are applied after the current
// transition finishes.
func (m *Machine) Fire(e Event) bool {
	if m.firing {
		if _, ok := Next(m.pendingState(), e); !ok {
			return false
		}
		m.queued = append(m.queued, e)
		return true
	}

	to, ok := Next(m.current, e)
	if !ok {
		return false
	}

	m.firing = true
	m.transition(to)
	for len(m.queued) > 0 {
		next := m.queued[0]
		m.queued = m.queued[1:]
		if to, ok := Next(m.current, next); ok {
			m.transition(to)
		}
	}
	m.firing = false
	return true
}

// pendingState is the state the machine will be in once queued events apply.
func (m *Machine) pendingState() AppState {
	s := m.next
	for _, e := range m.queued {
		if to, ok := Next(s, e); ok {
			s = to
		}
	}
	return s
}

func (m *Machine) transition(to AppState) {
	from := m.current
	m.next = to
	for _, h := range m.onExit[from] {
		h(from, to)
	}
	m.current = to
	for _, h := range m.onEnter[to] {
		h(from, to)
	}
}
