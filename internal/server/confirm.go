package server

import (
	"fmt"
	"sync"
)

type gateState int

const (
	gateIdle gateState = iota
	gateArmed
)

// ConfirmationGate models the two-step confirmation around destructive
// operations: a delete is first armed with its subject, then either
// confirmed or cancelled. Both paths return the gate to idle; confirming
// an unarmed gate fails.
type ConfirmationGate struct {
	mu      sync.Mutex
	state   gateState
	subject string
}

// Arm stages a destructive operation on subject. Arming twice without a
// confirm or cancel in between replaces the staged subject.
func (g *ConfirmationGate) Arm(subject string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = gateArmed
	g.subject = subject
}

// Confirm resolves the staged operation and returns its subject.
func (g *ConfirmationGate) Confirm() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != gateArmed {
		return "", fmt.Errorf("nothing staged for confirmation")
	}
	subject := g.subject
	g.state = gateIdle
	g.subject = ""
	return subject, nil
}

// Cancel discards the staged operation.
func (g *ConfirmationGate) Cancel() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = gateIdle
	g.subject = ""
}

// Armed reports whether an operation is staged.
func (g *ConfirmationGate) Armed() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state == gateArmed
}
