package domain

// Transition is the result of one reducer call: the state to hold next and
// the effects to hand off, in order. A same-kind transition may still carry
// refreshed state data; reducers signal "nothing applicable" by not
// producing a Transition at all.
type Transition struct {
	Next    State
	Effects []Effect
}

// NoOp builds the transition that holds the current state unchanged.
func NoOp(current State) Transition {
	return Transition{Next: current}
}
