package orbit

// Switch is an edge-triggered pause toggle shared by every clock in a
// scene. It flips only when the key goes from released to pressed, so
// holding the key down has no further effect.
type Switch struct {
	paused     bool
	wasPressed bool
	toggles    int
}

// Observe feeds the current key state and reports whether the switch
// flipped on this call.
func (s *Switch) Observe(pressed bool) bool {
	flipped := pressed && !s.wasPressed
	s.wasPressed = pressed
	if flipped {
		s.paused = !s.paused
		s.toggles++
	}
	return flipped
}

// Paused reports whether animation is currently paused. A nil switch is
// never paused.
func (s *Switch) Paused() bool {
	return s != nil && s.paused
}

// Toggles returns how many times the switch has flipped.
func (s *Switch) Toggles() int {
	return s.toggles
}
