// Package storex provides a single-store, reducer-based state container.
//
// A Store holds exactly one immutable state value. The only way to change it
// is to Dispatch an Action: the store runs the configured Reducer over the
// current state and the action, replaces the stored value with the result,
// and then notifies every registered subscriber in registration order.
//
// # Immutability
//
// State values are replaced, never mutated in place. Reducers receive the
// current state by value and MUST NOT mutate it; they return the next state
// (or the input unchanged, when no transition applies).
//
// # Threading
//
// Dispatch is safe for concurrent use from multiple goroutines; the store
// serializes read -> reduce -> store -> notify so at most one dispatch is in
// flight at a time. Dispatch is NOT re-entrant: a reducer or subscriber that
// calls Dispatch on the same store gets ErrReentrantDispatch.
//
//go:generate go test ./... -race
package storex

import (
	"bytes"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
)

// InitType is the sentinel action type the store dispatches once at
// construction when no initial state is supplied. Reducers answer it with
// their default state. The type is reserved; ReducerBuilder rejects it.
const InitType = "@@storex/INIT"

var (
	ErrNilReducer        = errors.New("storex: reducer is nil")
	ErrNilSubscriber     = errors.New("storex: subscriber is nil")
	ErrReentrantDispatch = errors.New("storex: dispatch called during dispatch")
)

// Action is an inert value describing an intended state transition.
// Type is the discriminant; an empty Type is a guaranteed no-op transition.
type Action struct {
	Type    string
	Payload any
}

// NewAction creates and returns a new Action value.
func NewAction(actionType string, payload any) Action {
	return Action{
		Type:    actionType,
		Payload: payload,
	}
}

// Reducer computes the next state from the current state and an action.
// It must be pure: same inputs, same output, no mutation of state.
// The error return is how a reducer refuses a transition; the store then
// keeps its pre-dispatch state and skips subscriber notification.
type Reducer[S any] func(state S, action Action) (S, error)

// Subscriber is a callback invoked after every dispatch, with no arguments.
// It runs on the dispatching goroutine; read the store via GetState.
type Subscriber func()

type subscription struct {
	id int64
	fn Subscriber
}

// Store is the state container. Create one with New; zero value is not usable.
type Store[S any] struct {
	dispatchMu sync.Mutex // serializes reduce+store+notify
	stateMu    sync.RWMutex
	state      S
	seeded     bool // initial state supplied via option
	reducer    Reducer[S]

	subMu  sync.Mutex
	subs   []subscription
	nextID int64

	owner atomic.Uint64 // goroutine id of the in-flight dispatch, 0 when idle
}

// Option applies configuration to Store via functional options pattern.
type Option[S any] func(*Store[S])

// WithInitialState seeds the store with an explicit first state, bypassing
// the InitType sentinel dispatch.
func WithInitialState[S any](state S) Option[S] {
	return func(s *Store[S]) {
		s.state = state
		s.seeded = true
	}
}

// New creates a store owning one state value, updated only through reducer.
// Without WithInitialState the first state is reducer(zero S, InitType
// action); the reducer supplies its default there (ReducerBuilder's OnInit).
func New[S any](reducer Reducer[S], opts ...Option[S]) (*Store[S], error) {
	if reducer == nil {
		return nil, ErrNilReducer
	}

	s := &Store[S]{reducer: reducer}
	for _, opt := range opts {
		opt(s)
	}

	if !s.seeded {
		var zero S
		initial, err := reducer(zero, Action{Type: InitType})
		if err != nil {
			return nil, fmt.Errorf("storex: initial reduce: %w", err)
		}
		s.state = initial
	}

	return s, nil
}

// GetState returns the current state. Never blocks on an in-flight reducer;
// safe to call from subscribers. Callers must treat the value as read-only.
func (s *Store[S]) GetState() S {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.state
}

// Dispatch submits an action: runs the reducer, replaces the state, then
// invokes every subscriber in registration order. Returns the original
// action so calls can be chained.
//
// An empty action Type skips the reducer (guaranteed no-op) but subscribers
// still fire; notification means "a dispatch occurred", not "state changed".
// On reducer error the stored state is untouched, subscribers are not
// invoked, and the error is returned.
func (s *Store[S]) Dispatch(action Action) (Action, error) {
	gid := goroutineID()
	if gid != 0 && s.owner.Load() == gid {
		return action, ErrReentrantDispatch
	}

	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()
	s.owner.Store(gid)
	defer s.owner.Store(0)

	if action.Type != "" {
		next, err := s.reducer(s.GetState(), action)
		if err != nil {
			return action, fmt.Errorf("storex: reduce %q: %w", action.Type, err)
		}
		s.stateMu.Lock()
		s.state = next
		s.stateMu.Unlock()
	}

	// Snapshot so subscribers may subscribe/unsubscribe during notification;
	// registrations made here take effect on the next dispatch.
	s.subMu.Lock()
	snapshot := make([]subscription, len(s.subs))
	copy(snapshot, s.subs)
	s.subMu.Unlock()

	for _, sub := range snapshot {
		sub.fn()
	}

	return action, nil
}

// Subscribe registers fn to run after every future dispatch and returns a
// function that removes the registration. fn is not invoked immediately.
// Subscribing the same function twice yields two independent registrations.
// The returned unsubscribe is idempotent.
func (s *Store[S]) Subscribe(fn Subscriber) (func(), error) {
	if fn == nil {
		return nil, ErrNilSubscriber
	}

	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}, nil
}

// goroutineID parses the current goroutine id from a stack header
// ("goroutine 123 [running]:"). Used only to distinguish a re-entrant
// Dispatch (same goroutine, must error) from a concurrent one (different
// goroutine, must block on dispatchMu).
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	fields := bytes.Fields(buf[:n])
	if len(fields) < 2 {
		return 0
	}
	id, err := strconv.ParseUint(string(fields[1]), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
