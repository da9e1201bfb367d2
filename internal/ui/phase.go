package ui

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Phase represents the overlay lifecycle stage
type Phase string

const (
	// PhaseMounting - overlay mounted, origin captured, nothing painted yet
	PhaseMounting Phase = "mounting"
	// PhaseFlyingIn - artwork in flight from its grid cell to the focused box
	PhaseFlyingIn Phase = "flying_in"
	// PhaseSelected - overlay settled and interactive, gestures armed
	PhaseSelected Phase = "selected"
	// PhaseSwiping - two artworks in flight during an index change
	PhaseSwiping Phase = "swiping"
	// PhaseFlyingOut - artwork in flight back to the grid, terminal
	PhaseFlyingOut Phase = "flying_out"
)

// String returns the string representation of the phase
func (p Phase) String() string {
	return string(p)
}

// IsInteractive returns true if gestures are armed in this phase
func (p Phase) IsInteractive() bool {
	return p == PhaseSelected
}

// IsTerminal returns true if no further transition can leave this phase
func (p Phase) IsTerminal() bool {
	return p == PhaseFlyingOut
}

// ErrInvalidTransition is returned when a phase change is not in the
// adjacency list
var ErrInvalidTransition = errors.New("invalid phase transition")

// phaseAdjacency lists the allowed transitions. Swiping is only reachable
// from Selected and only returns to Selected; FlyingOut is terminal.
var phaseAdjacency = map[Phase][]Phase{
	PhaseMounting:  {PhaseFlyingIn},
	PhaseFlyingIn:  {PhaseSelected},
	PhaseSelected:  {PhaseSwiping, PhaseFlyingOut},
	PhaseSwiping:   {PhaseSelected},
	PhaseFlyingOut: {},
}

// PhaseMachine serializes overlay lifecycle changes. Exactly one phase is
// current at a time and at most one transition succeeds per lifecycle step,
// which is what defends against re-entrant gesture and animation races: a
// second dismissal or jump arriving mid-flight is rejected here, not queued.
type PhaseMachine struct {
	mutex   sync.Mutex
	current Phase
}

// NewPhaseMachine creates a phase machine starting in Mounting
func NewPhaseMachine() *PhaseMachine {
	return &PhaseMachine{current: PhaseMounting}
}

// Current returns the current phase
func (pm *PhaseMachine) Current() Phase {
	pm.mutex.Lock()
	defer pm.mutex.Unlock()
	return pm.current
}

// Transition moves the machine to next if the adjacency list allows it.
// Rejected transitions are logged and returned as ErrInvalidTransition,
// never silently swallowed.
func (pm *PhaseMachine) Transition(next Phase) error {
	pm.mutex.Lock()
	defer pm.mutex.Unlock()

	for _, allowed := range phaseAdjacency[pm.current] {
		if next == allowed {
			zap.S().Debugf("overlay: phase %s -> %s", pm.current, next)
			pm.current = next
			return nil
		}
	}

	err := fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, pm.current, next)
	zap.S().Warnf("overlay: %v", err)
	return err
}
