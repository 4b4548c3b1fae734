package reconcile

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// ApplyError aggregates every failed action of one apply run. Successful
// actions are preserved in the outcomes; the run as a whole still counts
// as failed.
type ApplyError struct {
	// Failures holds the outcomes with a non-nil error, in plan order.
	Failures []Outcome
}

func (e *ApplyError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d of the submitted operations failed:", len(e.Failures))
	for _, f := range e.Failures {
		fmt.Fprintf(&b, "\n  - %s: %v", f.Action.Description(), f.Err)
	}
	return b.String()
}

// Apply executes every actionable plan entry against the store. Actions
// target distinct named rules and carry no ordering dependency, so they
// all fan out concurrently; the call returns only after every submitted
// action has completed. Each outcome slot is written exactly once by its
// own goroutine. A per-action failure never blocks or cancels the other
// actions, and nothing is retried or rolled back: partial application is
// surfaced, not undone.
//
// In dry-run mode no store call is issued and the returned outcomes are
// empty.
func Apply(ctx context.Context, store Store, plan *Plan, opts Options) ([]Outcome, error) {
	if opts.DryRun || plan.Empty() {
		return nil, nil
	}

	outcomes := make([]Outcome, len(plan.Actions))

	var wg sync.WaitGroup
	for i, action := range plan.Actions {
		wg.Add(1)
		go func(i int, action Action) {
			defer wg.Done()
			outcomes[i] = Outcome{
				Action: action,
				Err:    execute(ctx, store, action),
			}
		}(i, action)
	}
	wg.Wait()

	var failures []Outcome
	for _, o := range outcomes {
		if o.Err != nil {
			failures = append(failures, o)
		}
	}
	if len(failures) > 0 {
		return outcomes, &ApplyError{Failures: failures}
	}
	return outcomes, nil
}

// execute issues the single store call an action stands for.
func execute(ctx context.Context, store Store, action Action) error {
	switch action.Type {
	case ActionCreate:
		return store.CreateRule(ctx, *action.Desired)
	case ActionUpdate:
		return store.UpdateRule(ctx, action.Existing.ID, *action.Desired)
	case ActionDelete:
		return store.DeleteRule(ctx, action.Existing.ID)
	default:
		return fmt.Errorf("unknown action type %q", action.Type)
	}
}
