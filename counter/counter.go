// Package counter is the reference reducer instance: a single signed total
// driven by five arithmetic action kinds. It is the example every demo and
// walkthrough in this repository dispatches against.
package counter

import "github.com/comalice/storex"

// State holds the single numeric field the counter reducer operates on.
type State struct {
	Total int
}

// The closed set of counter action types. Anything else is a no-op.
const (
	TypeIncrement            = "incrementTotalByOne"
	TypeDecrement            = "decrementTotalByOne"
	TypeMultiplyByTwo        = "multiplyByTwo"
	TypeMultiplyByOneHundred = "multiplyByOneHundred"
	TypeReset                = "reset"
)

// ActionTypes returns the counter's action types, sorted.
func ActionTypes() []string {
	return builder().Types()
}

// NewReducer returns the counter reducer. Default state is State{Total: 0}.
// The transition table is static, so Build cannot fail here.
func NewReducer() storex.Reducer[State] {
	r, err := builder().Build()
	if err != nil {
		panic(err)
	}
	return r
}

func builder() *storex.ReducerBuilder[State] {
	return storex.NewReducerBuilder[State]().
		OnInit(func() State { return State{} }).
		On(TypeIncrement, func(s State, _ storex.Action) (State, error) {
			return State{Total: s.Total + 1}, nil
		}).
		On(TypeDecrement, func(s State, _ storex.Action) (State, error) {
			return State{Total: s.Total - 1}, nil
		}).
		On(TypeMultiplyByTwo, func(s State, _ storex.Action) (State, error) {
			return State{Total: s.Total * 2}, nil
		}).
		On(TypeMultiplyByOneHundred, func(s State, _ storex.Action) (State, error) {
			return State{Total: s.Total * 100}, nil
		}).
		On(TypeReset, func(State, storex.Action) (State, error) {
			return State{Total: 0}, nil
		})
}

// NewStore creates a counter store; initial total defaults to zero.
func NewStore(opts ...storex.Option[State]) (*storex.Store[State], error) {
	return storex.New(NewReducer(), opts...)
}
