// Package planner decides which directories and files under a root need a
// new name and what that name is. It produces a Plan that the pipeline
// confirms and applies.
//
// Implemented:
//   - Plan, RenamePair, Kind, Skipped (types.go)
//   - ExclusionSet: "~" expansion, component-aware matching, Rebase after a
//     directory rename (exclusion.go)
//   - Planner.PlanDirs / PlanFiles: hidden and excluded entries pruned,
//     unchanged names omitted (planner.go)
package planner
