// Package pipeline runs a command end to end: it validates the inputs, drives
// the rename planner or the merge engine, applies confirmed batches, records
// the run report and logs the summary.
//
// Rename runs per root, directories first and then a fresh file scan, so
// files are planned under their already-renamed parents. Merge moves every
// source into the target in argument order.
package pipeline
