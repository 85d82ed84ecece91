// Package domain holds the core data model: the captured UI tree, the
// closed set of classified screen results, the session lifecycle states,
// and the effects the state machine emits for the host to execute.
//
// Everything in this package is plain data. The large variant sets
// (ScreenInfo, State, Effect) are tagged unions so that every reducer and
// every effect-execution site can switch exhaustively on the kind.
package domain
