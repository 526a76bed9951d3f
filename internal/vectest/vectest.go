// Package vectest compares mgl32 vectors in tests with an absolute
// per-component tolerance.
//
// mgl32's ApproxEqualThreshold is relative, and near zero it falls back
// to a bound around float32's smallest normal, so cos(90°) = -4.4e-8
// never matches 0. Use these helpers instead.
package vectest

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

// Equal3 reports whether every component of a and b differs by at most
// delta.
func Equal3(a, b mgl32.Vec3, delta float32) bool {
	for i := range a {
		if mgl32.Abs(a[i]-b[i]) > delta {
			return false
		}
	}
	return true
}

// InDelta3 asserts that got matches want component-wise within delta.
func InDelta3(t assert.TestingT, want, got mgl32.Vec3, delta float32, msgAndArgs ...any) bool {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	if Equal3(want, got, delta) {
		return true
	}
	return assert.Fail(t, fmt.Sprintf("want %v, got %v (delta %v)", want, got, delta), msgAndArgs...)
}
