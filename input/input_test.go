package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultBindingsValid(t *testing.T) {
	b := DefaultBindings()
	require.NoError(t, b.Validate())
	assert.Equal(t, "space", b[Pause])
	assert.Equal(t, "escape", b[Exit])
}

func TestBindingsValidate(t *testing.T) {
	b := DefaultBindings()
	delete(b, PitchUp)
	assert.Error(t, b.Validate())

	b = DefaultBindings()
	b["jump"] = "j"
	assert.Error(t, b.Validate())
}

func TestBindingsMerge(t *testing.T) {
	base := DefaultBindings()
	merged := base.Merge(Bindings{Pause: " P "})

	assert.Equal(t, "p", merged[Pause])
	assert.Equal(t, "space", base[Pause], "merge must not modify the receiver")
	assert.Equal(t, "left", merged[YawLeft])
}

func TestStateSet(t *testing.T) {
	var s State
	for _, sig := range Signals {
		s.Set(sig, true)
	}
	assert.Equal(t, State{true, true, true, true, true, true}, s)

	s.Set(Pause, false)
	assert.False(t, s.Pause)
}

func TestSourceFunc(t *testing.T) {
	src := SourceFunc(func() State { return State{YawLeft: true} })
	assert.True(t, src.Poll().YawLeft)
}
