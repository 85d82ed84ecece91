/*
Package dashbuddy turns scraped UI trees from a delivery-gig driver app
into classified screens, scored offers, and a persistent session timeline.

It implements a "pure reducer with controlled side-effects" architecture:
the classifier and the state machine are pure functions, all I/O happens
through effects the host executes. This hexagonal split lets the pipeline
run against a live accessibility feed, a recorded capture file, or an
in-memory test harness without changing the core.

# Concept

Each captured tree is classified into exactly one screen by a
priority-ordered registry of structural matchers. The classified screen is
fed to a state machine that tracks the dash session lifecycle: offline,
waiting, offer on screen, pickup, delivery, receipt parsing, pause, and
summary. Every transition yields an ordered list of effects (log an event,
update the companion conversation, schedule a timeout, click a node) that
the host carries out.

# Usage

	app := dashbuddy.New()

	state := app.Initial("")
	for raw := range captures {
		root, err := domain.DecodeTree(raw)
		if err != nil {
			continue
		}
		tr, _ := app.Step(state, root)
		state = tr.Next
		for _, eff := range tr.Effects {
			// hand to your executor
			_ = eff
		}
	}

Hosts that want the full loop with timers, persistence and recovery use
pkg/runner instead.
*/
package dashbuddy
