package reconcile

import (
	"fmt"

	"local-tp/core/pattern"
)

// ValidateRuleCount enforces the MaxRules ceiling on a desired rule
// count. A violation is a fatal precondition, raised before any remote
// call is attempted.
func ValidateRuleCount(n int) error {
	if n > MaxRules {
		return fmt.Errorf("%d rules required, cannot exceed %d", n, MaxRules)
	}
	return nil
}

// BuildPlan joins the desired rules against the existing rules by name
// and classifies every pair:
//   - existing with no desired counterpart: delete
//   - existing matching its desired counterpart field-by-field: keep
//     (counted, never actionable)
//   - existing differing from its desired counterpart: update
//   - desired with no existing counterpart: create
//
// Existing-rule-derived actions come first, preserving existing order,
// followed by creates in desired order. Both inputs must already be
// filtered to rules under this tool's naming convention.
func BuildPlan(desired []pattern.Rule, existing []ExistingRule) (*Plan, error) {
	if err := ValidateRuleCount(len(desired)); err != nil {
		return nil, err
	}

	desiredByName := make(map[pattern.RuleName]pattern.Rule, len(desired))
	for _, r := range desired {
		desiredByName[r.Name] = r
	}

	plan := &Plan{
		Summary: Summary{
			Desired:  len(desired),
			Existing: len(existing),
		},
	}

	matched := make(map[pattern.RuleName]struct{}, len(existing))
	for _, ex := range existing {
		ex := ex
		want, ok := desiredByName[ex.Rule.Name]
		if !ok {
			plan.Actions = append(plan.Actions, Action{
				Type:     ActionDelete,
				Name:     ex.Rule.Name,
				Existing: &ex,
			})
			plan.Summary.Deletes++
			continue
		}

		matched[ex.Rule.Name] = struct{}{}
		if ex.Rule.Equal(want) {
			plan.Summary.Kept++
			continue
		}

		plan.Actions = append(plan.Actions, Action{
			Type:     ActionUpdate,
			Name:     ex.Rule.Name,
			Desired:  &want,
			Existing: &ex,
		})
		plan.Summary.Updates++
	}

	for _, r := range desired {
		r := r
		if _, ok := matched[r.Name]; ok {
			continue
		}
		plan.Actions = append(plan.Actions, Action{
			Type:    ActionCreate,
			Name:    r.Name,
			Desired: &r,
		})
		plan.Summary.Creates++
	}

	return plan, nil
}
