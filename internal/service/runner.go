package service

import (
	"context"
	"log"
	"time"
)

// Runner drives the session's simulation at a fixed cadence and broadcasts
// frames on the event bus. Frames are only published while the simulation is
// hot, plus one final frame when it settles, so idle sessions stay quiet.
type Runner struct {
	session  *Session
	bus      *EventBus
	interval time.Duration
}

// NewRunner creates a runner ticking at the given interval.
func NewRunner(session *Session, bus *EventBus, interval time.Duration) *Runner {
	if interval <= 0 {
		interval = 33 * time.Millisecond
	}
	return &Runner{session: session, bus: bus, interval: interval}
}

// Run ticks the simulation until the context is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	log.Printf("Simulation loop running at %v per tick", r.interval)

	wasSettled := r.session.Settled()
	for {
		select {
		case <-ticker.C:
			frame := r.session.Tick()
			if !frame.Settled || !wasSettled {
				r.bus.Publish(Event{Type: EventFrame, Payload: frame})
			}
			wasSettled = frame.Settled
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
