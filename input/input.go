// Package input describes the logical keyboard signals that drive the
// camera and the pause switch, independent of any windowing library.
package input

import (
	"fmt"
	"strings"
)

// State is a snapshot of every logical signal for one frame.
type State struct {
	YawLeft   bool // rotate camera around the vertical axis (+yaw)
	YawRight  bool // rotate camera around the vertical axis (-yaw)
	PitchUp   bool // raise camera (+pitch)
	PitchDown bool // lower camera (-pitch)
	Pause     bool // pause toggle key is held
	Exit      bool // leave the gameloop
}

// Source produces the input state for the current frame.
type Source interface {
	Poll() State
}

// SourceFunc adapts a function to a Source.
type SourceFunc func() State

// Poll calls f.
func (f SourceFunc) Poll() State { return f() }

// Signal names a logical input.
type Signal string

const (
	YawLeft   Signal = "yaw_left"
	YawRight  Signal = "yaw_right"
	PitchUp   Signal = "pitch_up"
	PitchDown Signal = "pitch_down"
	Pause     Signal = "pause"
	Exit      Signal = "exit"
)

// Signals lists every logical signal in a stable order.
var Signals = []Signal{YawLeft, YawRight, PitchUp, PitchDown, Pause, Exit}

// Bindings maps a logical signal to a key name, e.g. "left" or "space".
type Bindings map[Signal]string

// DefaultBindings are the arrow keys, space to pause, and escape to quit.
func DefaultBindings() Bindings {
	return Bindings{
		YawLeft:   "left",
		YawRight:  "right",
		PitchUp:   "up",
		PitchDown: "down",
		Pause:     "space",
		Exit:      "escape",
	}
}

// Validate reports unknown signals and signals bound to no key.
func (b Bindings) Validate() error {
	for sig := range b {
		if !knownSignal(sig) {
			return fmt.Errorf("unknown input signal %q", sig)
		}
	}
	for _, sig := range Signals {
		if strings.TrimSpace(b[sig]) == "" {
			return fmt.Errorf("input signal %q is not bound to a key", sig)
		}
	}
	return nil
}

// Merge returns a copy of b with every binding in over applied on top.
func (b Bindings) Merge(over Bindings) Bindings {
	out := make(Bindings, len(b))
	for k, v := range b {
		out[k] = v
	}
	for k, v := range over {
		out[k] = strings.ToLower(strings.TrimSpace(v))
	}
	return out
}

// Set records whether the given signal is active.
func (s *State) Set(sig Signal, active bool) {
	switch sig {
	case YawLeft:
		s.YawLeft = active
	case YawRight:
		s.YawRight = active
	case PitchUp:
		s.PitchUp = active
	case PitchDown:
		s.PitchDown = active
	case Pause:
		s.Pause = active
	case Exit:
		s.Exit = active
	}
}

func knownSignal(sig Signal) bool {
	for _, s := range Signals {
		if s == sig {
			return true
		}
	}
	return false
}
