package reconcile

import (
	"context"
	"fmt"

	"local-tp/core/pattern"
)

// MaxRules is the hard ceiling on the number of translation patterns one
// location may carry. The check runs against the desired rule count only,
// before any remote mutation, mirroring the remote store's own limit.
const MaxRules = 500

// ActionType classifies a planned mutation.
type ActionType string

const (
	// ActionCreate provisions a rule that does not exist remotely.
	ActionCreate ActionType = "create"
	// ActionUpdate rewrites the patterns of an existing rule in place.
	ActionUpdate ActionType = "update"
	// ActionDelete removes a remotely provisioned rule with no desired
	// counterpart.
	ActionDelete ActionType = "delete"
)

// ExistingRule is a rule fetched from the remote store, paired with the
// store-assigned identifier needed to address it in update and delete
// calls.
type ExistingRule struct {
	// ID is the remote store's opaque identifier for this rule.
	ID string

	// Rule holds the fields under this tool's control.
	Rule pattern.Rule
}

// Action is one planned mutation, carrying enough state to execute it and
// to render its description.
type Action struct {
	// Type specifies the mutation to perform.
	Type ActionType

	// Name is the rule name the action targets.
	Name pattern.RuleName

	// Desired is the computed rule. Set for creates and updates.
	Desired *pattern.Rule

	// Existing is the remote rule being updated or deleted. Set for
	// updates and deletes.
	Existing *ExistingRule
}

// Description renders the human-readable form of the action, e.g.
// "update TP_81622: +181622(XXXXX) -> 9081622$1".
func (a Action) Description() string {
	switch a.Type {
	case ActionDelete:
		return fmt.Sprintf("delete %s", a.Name)
	default:
		return fmt.Sprintf("%s %s: %s -> %s",
			a.Type, a.Name, a.Desired.MatchingPattern, a.Desired.ReplacementPattern)
	}
}

// Summary counts the plan's classification outcomes, including the keeps
// that never become actionable entries.
type Summary struct {
	Desired  int
	Existing int
	Kept     int
	Creates  int
	Updates  int
	Deletes  int
}

// Plan is the ordered set of mutations needed to converge the remote
// store on the desired rule set. It is built once per run and consumed
// once by Apply.
type Plan struct {
	// Actions holds the actionable entries: updates and deletes first,
	// in existing-rule order, then creates in desired-rule order.
	Actions []Action

	// Summary aggregates the classification counts.
	Summary Summary
}

// Empty reports whether the remote store already matches the desired set.
func (p *Plan) Empty() bool {
	return len(p.Actions) == 0
}

// Descriptions returns the description of every actionable entry, in plan
// order.
func (p *Plan) Descriptions() []string {
	out := make([]string, len(p.Actions))
	for i, a := range p.Actions {
		out[i] = a.Description()
	}
	return out
}

// Store is the remote-apply capability the executor needs. Implementations
// issue the actual provisioning calls; every method targets exactly one
// named rule.
type Store interface {
	// CreateRule provisions a new rule.
	CreateRule(ctx context.Context, rule pattern.Rule) error

	// UpdateRule replaces the patterns of the rule addressed by id.
	UpdateRule(ctx context.Context, id string, rule pattern.Rule) error

	// DeleteRule removes the rule addressed by id.
	DeleteRule(ctx context.Context, id string) error
}

// Outcome records the result of executing one action.
type Outcome struct {
	// Action is the plan entry that was executed.
	Action Action

	// Err is nil on success.
	Err error
}

// Options controls plan execution.
type Options struct {
	// DryRun reports the plan without issuing any store calls.
	DryRun bool
}
