// Package core defines the shared data model of a2acal: tasks and their
// bounded state machine, the ordered events a task emits while it runs, and
// the content parts those events carry. Higher level packages (task, relay,
// runner) build on these types; core itself has no dependencies beyond ID
// generation.
package core
