package counter_test

import (
	"testing"

	"github.com/comalice/storex"
	"github.com/comalice/storex/counter"
)

func dispatch(t *testing.T, s *storex.Store[counter.State], actionType string) {
	t.Helper()
	if _, err := s.Dispatch(storex.NewAction(actionType, nil)); err != nil {
		t.Fatal(err)
	}
}

func TestTransitions(t *testing.T) {
	tests := []struct {
		name   string
		start  int
		action string
		want   int
	}{
		{"increment", 0, counter.TypeIncrement, 1},
		{"decrement", 1, counter.TypeDecrement, 0},
		{"multiply by two", 5, counter.TypeMultiplyByTwo, 10},
		{"multiply by one hundred", 2, counter.TypeMultiplyByOneHundred, 200},
		{"reset", 42, counter.TypeReset, 0},
		{"reset from negative", -7, counter.TypeReset, 0},
		{"unrecognized", 3, "thisWillNotDoAnything", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := counter.NewStore(storex.WithInitialState(counter.State{Total: tt.start}))
			if err != nil {
				t.Fatal(err)
			}
			dispatch(t, s, tt.action)
			if got := s.GetState().Total; got != tt.want {
				t.Errorf("Total = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDefaultInitialState(t *testing.T) {
	s, err := counter.NewStore()
	if err != nil {
		t.Fatal(err)
	}
	if got := s.GetState().Total; got != 0 {
		t.Errorf("default Total = %d, want 0", got)
	}
}

// End-to-end walkthrough: decrement, double, scale, reset. Intermediate
// totals -1, -2, -200 and a final 0, with one notification per dispatch.
func TestWalkthroughSequence(t *testing.T) {
	s, err := counter.NewStore()
	if err != nil {
		t.Fatal(err)
	}

	var notified int
	if _, err := s.Subscribe(func() { notified++ }); err != nil {
		t.Fatal(err)
	}

	steps := []struct {
		action string
		want   int
	}{
		{counter.TypeDecrement, -1},
		{counter.TypeMultiplyByTwo, -2},
		{counter.TypeMultiplyByOneHundred, -200},
		{counter.TypeReset, 0},
	}
	for _, step := range steps {
		dispatch(t, s, step.action)
		if got := s.GetState().Total; got != step.want {
			t.Errorf("after %s: Total = %d, want %d", step.action, got, step.want)
		}
	}
	if notified != 4 {
		t.Errorf("subscriber notified %d times, want 4", notified)
	}
}

// Dispatching the same sequence from the same initial state twice yields the
// same final state.
func TestDeterminism(t *testing.T) {
	sequence := []string{
		counter.TypeIncrement,
		counter.TypeMultiplyByTwo,
		counter.TypeIncrement,
		counter.TypeMultiplyByOneHundred,
		counter.TypeDecrement,
	}

	run := func() int {
		s, err := counter.NewStore(storex.WithInitialState(counter.State{Total: 2}))
		if err != nil {
			t.Fatal(err)
		}
		for _, actionType := range sequence {
			dispatch(t, s, actionType)
		}
		return s.GetState().Total
	}

	first, second := run(), run()
	if first != second {
		t.Errorf("same sequence produced %d then %d", first, second)
	}
}

func TestActionTypes(t *testing.T) {
	want := map[string]bool{
		counter.TypeIncrement:            true,
		counter.TypeDecrement:            true,
		counter.TypeMultiplyByTwo:        true,
		counter.TypeMultiplyByOneHundred: true,
		counter.TypeReset:                true,
	}

	got := counter.ActionTypes()
	if len(got) != len(want) {
		t.Fatalf("ActionTypes() = %v, want %d types", got, len(want))
	}
	for _, actionType := range got {
		if !want[actionType] {
			t.Errorf("unexpected action type %q", actionType)
		}
	}
}
