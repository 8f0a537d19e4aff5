package sizing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectCableAWG(t *testing.T) {
	t.Run("smallest sufficient size", func(t *testing.T) {
		awg, ok := SelectCableAWG(12.5)
		assert.True(t, ok)
		assert.Equal(t, "10", awg)

		awg, ok = SelectCableAWG(40)
		assert.True(t, ok)
		assert.Equal(t, "10", awg, "exact ampacity match selects that size")

		awg, ok = SelectCableAWG(40.1)
		assert.True(t, ok)
		assert.Equal(t, "8", awg)
	})

	t.Run("clamps to largest when oversubscribed", func(t *testing.T) {
		awg, ok := SelectCableAWG(500)
		assert.False(t, ok)
		assert.Equal(t, "4/0", awg)
	})

	t.Run("monotonic in required current", func(t *testing.T) {
		prev := 0.0
		for c := 1.0; c <= 300; c += 0.5 {
			awg, _ := SelectCableAWG(c)
			amp, ok := Ampacity(awg)
			assert.True(t, ok)
			assert.GreaterOrEqual(t, amp, prev,
				"selected ampacity must never shrink as current grows (at %vA)", c)
			prev = amp
		}
	})
}

func TestSelectFuse(t *testing.T) {
	t.Run("smallest standard rating at or above", func(t *testing.T) {
		r, ok := SelectFuse(47.5)
		assert.True(t, ok)
		assert.Equal(t, 50, r)

		r, ok = SelectFuse(30)
		assert.True(t, ok)
		assert.Equal(t, 30, r)

		r, ok = SelectFuse(30.5)
		assert.True(t, ok)
		assert.Equal(t, 32, r)
	})

	t.Run("clamps to maximum", func(t *testing.T) {
		r, ok := SelectFuse(1000)
		assert.False(t, ok)
		assert.Equal(t, 400, r)
	})
}

func TestSelectBreaker(t *testing.T) {
	r, ok := SelectBreaker(187)
	assert.True(t, ok)
	assert.Equal(t, 200, r)

	r, ok = SelectBreaker(100)
	assert.True(t, ok)
	assert.Equal(t, 100, r)

	r, ok = SelectBreaker(900)
	assert.False(t, ok)
	assert.Equal(t, 800, r)
}

func TestCurrents(t *testing.T) {
	t.Run("operating current scales with strings", func(t *testing.T) {
		assert.Equal(t, 26.2, OperatingCurrentA(13.1, 2))
	})

	t.Run("required ampacity applies continuous factor", func(t *testing.T) {
		assert.InDelta(t, 12.5, RequiredAmpacityA(10, 1, 0), 1e-9, "zero factor uses NEC default")
		assert.InDelta(t, 15.0, RequiredAmpacityA(10, 1, 1.5), 1e-9)
	})

	t.Run("combiner fuse current compounds", func(t *testing.T) {
		assert.InDelta(t, 14.0*1.56, CombinerFuseCurrentA(14.0, 1), 1e-9)
		assert.InDelta(t, 14.0*3*1.56, CombinerFuseCurrentA(14.0, 3), 1e-9)
	})
}

func TestCableUndersized(t *testing.T) {
	// 10 AWG carries 40A at 90°C: 32A x 1.25 = 40A fits, 32.1A does not.
	assert.False(t, CableUndersized(32, 1.25, "10"))
	assert.True(t, CableUndersized(32.1, 1.25, "10"))
	assert.True(t, CableUndersized(1, 1.25, "14"), "unknown size reports undersized")
}
