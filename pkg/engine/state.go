package engine

import (
	"github.com/arthur-debert/reslot/pkg/errors"
)

// State is a step of a run.
type State int

const (
	Uninitialized State = iota
	ResourcesLoaded
	Scanning
	Migrating
	Resolving
	Assembled
	Persisted
	Aborted
)

var stateNames = map[State]string{
	Uninitialized:   "uninitialized",
	ResourcesLoaded: "resources-loaded",
	Scanning:        "scanning",
	Migrating:       "migrating",
	Resolving:       "resolving",
	Assembled:       "assembled",
	Persisted:       "persisted",
	Aborted:         "aborted",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Terminal reports whether no further transitions are possible.
func (s State) Terminal() bool {
	return s == Persisted || s == Aborted
}

// transitions lists the legal successors of each state. Every slot pair
// repeats Migrating -> Resolving; a run is assembled once after the last
// pair.
var transitions = map[State][]State{
	Uninitialized:   {ResourcesLoaded, Aborted},
	ResourcesLoaded: {Scanning, Aborted},
	Scanning:        {Migrating, Aborted},
	Migrating:       {Resolving, Aborted},
	Resolving:       {Migrating, Assembled, Aborted},
	Assembled:       {Persisted, Aborted},
}

func canTransition(from, to State) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// transition moves the context to `to` or fails with ErrInvalidState.
func (c *Context) transition(to State) error {
	if !canTransition(c.state, to) {
		return errors.Newf(errors.ErrInvalidState, "cannot move from %s to %s", c.state, to).
			WithDetail("from", c.state.String()).
			WithDetail("to", to.String())
	}
	c.logger.Trace().Str("from", c.state.String()).Str("to", to.String()).Msg("State transition")
	c.state = to
	return nil
}

// abort records a fatal failure and returns err unchanged.
func (c *Context) abort(err error) error {
	if !c.state.Terminal() {
		c.logger.Error().Err(err).Str("state", c.state.String()).Msg("Run aborted")
		c.state = Aborted
	}
	return err
}
