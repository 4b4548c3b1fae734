// Package reconcile diffs a desired translation-pattern rule set against
// the rules already provisioned in a remote store and applies the
// difference.
//
// # Plan/Apply split
//
// BuildPlan is pure: it joins desired and existing rules by name and
// classifies every pair into keep, update, delete or create. The plan
// carries the ordered actionable entries (updates and deletes first, in
// existing-rule order, then creates in desired order) plus a summary and
// a description string per action.
//
// Apply executes the plan against a Store. All actions target distinct
// named rules, so they are submitted concurrently; each action's outcome
// lands in its own slot and a failure in one never stops the others. The
// aggregate error lists every failed action with its description.
//
// # Dry run
//
// With Options.DryRun set, Apply reports the plan untouched and issues no
// store calls at all.
package reconcile
