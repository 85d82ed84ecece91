// Package ports defines the interfaces between the core (classifier,
// evaluator, state machine) and its host collaborators: effect execution,
// state persistence, snapshot capture, and the wall clock.
package ports
