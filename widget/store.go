package widget

import "sync"

// State is a snapshot of the widget's UI state
type State struct {
	Input    string
	Messages []Message
	Loading  bool
	Visible  bool
}

// InputDisabled reports whether the input field and send control are disabled
func (s State) InputDisabled() bool {
	return s.Loading
}

// SendLabel returns the text of the send control
func (s State) SendLabel() string {
	if s.Loading {
		return "Sending..."
	}
	return "Send"
}

func (s State) clone() State {
	msgs := make([]Message, len(s.Messages))
	copy(msgs, s.Messages)
	s.Messages = msgs
	return s
}

// Listener is called with the previous and next state after every change
type Listener func(prev, next State)

// MessagesChanged reports whether the message list differs between prev and next.
// The list is append-only, so comparing lengths is exact.
func MessagesChanged(prev, next State) bool {
	return len(prev.Messages) != len(next.Messages)
}

type subscription struct {
	id int
	fn Listener
}

// Store is an observable State container. Mutations are serialized and
// listeners are notified in mutation order, followed by effects.
type Store struct {
	dispatch sync.Mutex

	mu        sync.Mutex
	state     State
	nextID    int
	listeners []subscription
	effects   []subscription
	closed    bool
}

// NewStore returns a Store holding initial
func NewStore(initial State) *Store {
	return &Store{state: initial.clone()}
}

// Get returns a copy of the current state
func (s *Store) Get() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Update applies fn to a copy of the state. fn reports whether it changed
// anything; listeners and effects only run when it did. Update returns
// whether the state changed. fn, listeners and effects must not call Update
// or Close.
func (s *Store) Update(fn func(*State) bool) bool {
	s.dispatch.Lock()
	defer s.dispatch.Unlock()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	prev := s.state.clone()
	next := s.state.clone()
	if !fn(&next) {
		s.mu.Unlock()
		return false
	}
	s.state = next
	listeners := append([]subscription(nil), s.listeners...)
	effects := append([]subscription(nil), s.effects...)
	s.mu.Unlock()

	out := next.clone()
	for _, l := range listeners {
		l.fn(prev, out)
	}
	for _, e := range effects {
		e.fn(prev, out)
	}
	return true
}

// Subscribe registers l for every state change and returns a function that
// removes it.
func (s *Store) Subscribe(l Listener) func() {
	return s.add(&s.listeners, l)
}

// Effect runs run with the new state after every update in which changed
// holds. Effects run after all listeners. The returned function cancels it.
func (s *Store) Effect(changed func(prev, next State) bool, run func(State)) func() {
	return s.add(&s.effects, func(prev, next State) {
		if changed(prev, next) {
			run(next)
		}
	})
}

func (s *Store) add(list *[]subscription, fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return func() {}
	}

	s.nextID++
	id := s.nextID
	*list = append(*list, subscription{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range *list {
			if sub.id == id {
				*list = append((*list)[:i:i], (*list)[i+1:]...)
				return
			}
		}
	}
}

// Close drops all listeners and effects and makes further updates no-ops.
// It waits for an update that is being delivered to finish.
func (s *Store) Close() {
	s.dispatch.Lock()
	defer s.dispatch.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.listeners = nil
	s.effects = nil
}
