package state

import (
	"sync"
)

// State is the whole client state.
type State struct {
	Session SessionState
	Alerts  AlertsState
}

// Clone returns a deep copy of st.
func (st State) Clone() State {
	return State{Session: st.Session.Clone(), Alerts: st.Alerts.Clone()}
}

// Listener receives a copy of the state after every mutation.
type Listener func(State)

// Store is the single mutable holder of State.
//
// Mutations are serialized and each one is followed by a notification to
// every subscriber, in mutation order. Listeners run on the mutating
// goroutine and must not mutate the store themselves.
type Store struct {
	// write serializes mutate+notify so listeners observe states in order.
	write sync.Mutex
	mu    sync.RWMutex
	state State

	subMu  sync.Mutex
	subs   map[int]Listener
	nextID int
}

// NewStore returns a store holding a copy of initial.
func NewStore(initial State) *Store {
	return &Store{state: initial.Clone(), subs: map[int]Listener{}}
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Session returns a copy of the session domain.
func (s *Store) Session() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Session.Clone()
}

// Alerts returns a copy of the alerts domain.
func (s *Store) Alerts() AlertsState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Alerts.Clone()
}

// Update applies fn to the whole state.
func (s *Store) Update(fn func(*State)) {
	s.write.Lock()
	defer s.write.Unlock()

	s.mu.Lock()
	fn(&s.state)
	snap := s.state.Clone()
	s.mu.Unlock()

	s.notify(snap)
}

// UpdateSession applies fn to the session domain.
func (s *Store) UpdateSession(fn func(*SessionState)) {
	s.Update(func(st *State) { fn(&st.Session) })
}

// UpdateAlerts applies fn to the alerts domain.
func (s *Store) UpdateAlerts(fn func(*AlertsState)) {
	s.Update(func(st *State) { fn(&st.Alerts) })
}

// Subscribe registers l and returns a function that removes it.
func (s *Store) Subscribe(l Listener) (cancel func()) {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = l
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}

func (s *Store) notify(snap State) {
	s.subMu.Lock()
	ls := make([]Listener, 0, len(s.subs))
	for _, l := range s.subs {
		ls = append(ls, l)
	}
	s.subMu.Unlock()

	for _, l := range ls {
		l(snap.Clone())
	}
}
