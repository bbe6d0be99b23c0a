package motion

import (
	"sync"
	"time"

	"github.com/qmuntal/stateless"
)

type State = string
type Trigger = string

// Commanded motion states.
const (
	StIdle          State = "idle"
	StForward       State = "forward"
	StReverse       State = "reverse"
	StRotatingLeft  State = "rotating-left"
	StRotatingRight State = "rotating-right"
)

// Directive triggers, matching the command package directive names.
const (
	TrForward     Trigger = "forward"
	TrBackward    Trigger = "backward"
	TrRotateLeft  Trigger = "rotateLeft"
	TrRotateRight Trigger = "rotateRight"
	TrStop        Trigger = "stop"
)

// triggerTargets maps each directive trigger to its destination state.
// Every trigger is permitted from every state: dispatch outcomes are
// state-independent, the machine is pure bookkeeping.
var triggerTargets = map[Trigger]State{
	TrForward:     StForward,
	TrBackward:    StReverse,
	TrRotateLeft:  StRotatingLeft,
	TrRotateRight: StRotatingRight,
	TrStop:        StIdle,
}

// Snapshot is the externally visible motion state.
type Snapshot struct {
	State     string    `json:"state"`
	Speed     int       `json:"speed"`
	ChangedAt time.Time `json:"changedAt"`
}

// Tracker records the last commanded motion of the vehicle.
type Tracker struct {
	mu        sync.Mutex
	sm        *stateless.StateMachine
	speed     int
	changedAt time.Time
}

// NewTracker creates a tracker in the idle state.
func NewTracker() *Tracker {
	sm := stateless.NewStateMachine(StIdle)

	states := []State{StIdle, StForward, StReverse, StRotatingLeft, StRotatingRight}
	for _, state := range states {
		cfg := sm.Configure(state)
		for trigger, target := range triggerTargets {
			if target == state {
				cfg.PermitReentry(trigger)
			} else {
				cfg.Permit(trigger, target)
			}
		}
	}

	return &Tracker{
		sm:        sm,
		changedAt: time.Now().UTC(),
	}
}

// Update records a dispatched directive with its speed.
func (t *Tracker) Update(directive string, speed int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := triggerTargets[directive]; !ok {
		return
	}
	if err := t.sm.Fire(directive); err != nil {
		return
	}
	t.speed = speed
	t.changedAt = time.Now().UTC()
}

// Snapshot returns the last commanded motion.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	state, _ := t.sm.MustState().(string)
	return Snapshot{
		State:     state,
		Speed:     t.speed,
		ChangedAt: t.changedAt,
	}
}
