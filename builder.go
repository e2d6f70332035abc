package storex

import (
	"fmt"
	"sort"
)

// ReducerBuilder provides a fluent API for assembling a total Reducer from a
// closed table of action types, instead of hand-writing a switch.
//
// The built reducer is total over (state, action): any type outside the
// table, and the empty type, returns the input state unchanged. The InitType
// sentinel returns the default state registered with OnInit (or the input
// state when no default was registered).
type ReducerBuilder[S any] struct {
	transitions map[string]func(S, Action) (S, error)
	order       []string // registration order, for deterministic errors
	initial     func() S
	errs        []error
}

// NewReducerBuilder creates a new builder for constructing a reducer.
func NewReducerBuilder[S any]() *ReducerBuilder[S] {
	return &ReducerBuilder[S]{
		transitions: make(map[string]func(S, Action) (S, error)),
	}
}

// On registers the transition for an action type.
// Empty types, the reserved InitType, duplicate types, and nil transitions
// are recorded as errors and reported by Build.
func (b *ReducerBuilder[S]) On(actionType string, transition func(S, Action) (S, error)) *ReducerBuilder[S] {
	switch {
	case actionType == "":
		b.errs = append(b.errs, fmt.Errorf("storex: empty action type"))
	case actionType == InitType:
		b.errs = append(b.errs, fmt.Errorf("storex: action type %q is reserved", InitType))
	case transition == nil:
		b.errs = append(b.errs, fmt.Errorf("storex: nil transition for %q", actionType))
	default:
		if _, exists := b.transitions[actionType]; exists {
			b.errs = append(b.errs, fmt.Errorf("storex: duplicate action type %q", actionType))
			return b
		}
		b.transitions[actionType] = transition
		b.order = append(b.order, actionType)
	}
	return b
}

// OnInit registers the default-state hook answering the InitType sentinel.
func (b *ReducerBuilder[S]) OnInit(initial func() S) *ReducerBuilder[S] {
	if initial == nil {
		b.errs = append(b.errs, fmt.Errorf("storex: nil initial state hook"))
		return b
	}
	b.initial = initial
	return b
}

// Types returns the closed set of registered action types, sorted.
func (b *ReducerBuilder[S]) Types() []string {
	types := make([]string, len(b.order))
	copy(types, b.order)
	sort.Strings(types)
	return types
}

// Build validates the table and constructs the Reducer.
// Returns an error if the table is empty or any On/OnInit call was invalid.
func (b *ReducerBuilder[S]) Build() (Reducer[S], error) {
	if len(b.errs) > 0 {
		return nil, b.errs[0]
	}
	if len(b.transitions) == 0 {
		return nil, fmt.Errorf("storex: no transitions registered")
	}

	// Copy so later builder mutation cannot alias the built reducer.
	transitions := make(map[string]func(S, Action) (S, error), len(b.transitions))
	for t, fn := range b.transitions {
		transitions[t] = fn
	}
	initial := b.initial

	return func(state S, action Action) (S, error) {
		if action.Type == InitType {
			if initial != nil {
				return initial(), nil
			}
			return state, nil
		}
		transition, ok := transitions[action.Type]
		if !ok {
			// Unknown or empty type: no-op transition, same value back.
			return state, nil
		}
		return transition(state, action)
	}, nil
}
