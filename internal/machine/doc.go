// Package machine is the session lifecycle reducer: it maps the current
// state plus one classified snapshot (or a fired timeout) to a new state
// and an ordered list of effects for the host to execute.
//
// The machine is a pure table. It owns no session state, performs no I/O,
// and emits effects as data only. Missed transitions are self-healed
// through a small set of structurally unambiguous anchor screens, and
// restart recovery reconstructs state through the same entry factories
// with one-shot effects suppressed.
package machine
