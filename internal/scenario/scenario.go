// Package scenario runs declarative YAML action scripts against a counter
// store. It is the hosting-application side of the container contract: it
// collects input (a script), turns it into actions, and dispatches them.
package scenario

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/comalice/storex"
	"github.com/comalice/storex/counter"
)

// Step is one scripted dispatch.
type Step struct {
	Action  string `yaml:"action"`
	Payload any    `yaml:"payload,omitempty"`
}

// Scenario is a named sequence of dispatches with a starting total.
type Scenario struct {
	Name    string `yaml:"name"`
	Initial int    `yaml:"initial"`
	Steps   []Step `yaml:"steps"`
}

// StepTrace records the observable outcome of one dispatched step.
// Known is false for action types outside the counter's table; those steps
// still dispatch and still notify, they just don't change the total.
type StepTrace struct {
	Action string
	Total  int
	Known  bool
}

// Result is the full outcome of a scenario run.
type Result struct {
	Trace []StepTrace
	Final counter.State
}

// Load parses a scenario from YAML and validates it.
func Load(r io.Reader) (Scenario, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Scenario{}, fmt.Errorf("read scenario: %w", err)
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return Scenario{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return Scenario{}, err
	}
	return sc, nil
}

// LoadFile parses a scenario from a YAML file.
func LoadFile(path string) (Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	sc, err := Load(f)
	if err != nil {
		return Scenario{}, fmt.Errorf("scenario %s: %w", path, err)
	}
	return sc, nil
}

// Validate checks structural requirements: a name, at least one step, and no
// blank action types. Unknown action types are allowed; they exercise the
// no-op transition.
func (sc Scenario) Validate() error {
	if strings.TrimSpace(sc.Name) == "" {
		return fmt.Errorf("scenario has no name")
	}
	if len(sc.Steps) == 0 {
		return fmt.Errorf("scenario %q has no steps", sc.Name)
	}
	for i, step := range sc.Steps {
		if strings.TrimSpace(step.Action) == "" {
			return fmt.Errorf("scenario %q: step %d has a blank action", sc.Name, i+1)
		}
	}
	return nil
}

// Run builds a counter store seeded with the scenario's initial total,
// registers the given subscribers, and dispatches every step in order.
func (sc Scenario) Run(subs ...storex.Subscriber) (Result, error) {
	if err := sc.Validate(); err != nil {
		return Result{}, err
	}

	store, err := counter.NewStore(storex.WithInitialState(counter.State{Total: sc.Initial}))
	if err != nil {
		return Result{}, err
	}
	for _, sub := range subs {
		if _, err := store.Subscribe(sub); err != nil {
			return Result{}, err
		}
	}

	known := make(map[string]bool)
	for _, t := range counter.ActionTypes() {
		known[t] = true
	}

	trace := make([]StepTrace, 0, len(sc.Steps))
	for _, step := range sc.Steps {
		if _, err := store.Dispatch(storex.NewAction(step.Action, step.Payload)); err != nil {
			return Result{}, fmt.Errorf("step %q: %w", step.Action, err)
		}
		trace = append(trace, StepTrace{
			Action: step.Action,
			Total:  store.GetState().Total,
			Known:  known[step.Action],
		})
	}

	return Result{Trace: trace, Final: store.GetState()}, nil
}

// Walkthrough is the built-in demo script: decrement, double, scale by one
// hundred, reset. Totals along the way: -1, -2, -200, 0.
func Walkthrough() Scenario {
	return Scenario{
		Name:    "walkthrough",
		Initial: 0,
		Steps: []Step{
			{Action: counter.TypeDecrement},
			{Action: counter.TypeMultiplyByTwo},
			{Action: counter.TypeMultiplyByOneHundred},
			{Action: counter.TypeReset},
		},
	}
}
