package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mousewarp/mousewarp/pkg/geometry"
)

var accelMon = geometry.Rect{X1: 0, Y1: 0, X2: 1920, Y2: 1080}

func TestAcceleratorAmplifiesFromPrev(t *testing.T) {
	var a Accelerator

	// Raw delta (10, 5) at multiplier 2 lands double the delta away from
	// the committed previous position.
	x, y := a.Apply(100, 100, 110, 105, accelMon, 2.0, 50)
	assert.Equal(t, 120, x)
	assert.Equal(t, 110, y)
}

func TestAcceleratorZeroDeltaPassesThrough(t *testing.T) {
	var a Accelerator
	x, y := a.Apply(100, 100, 100, 100, accelMon, 2.0, 50)
	assert.Equal(t, 100, x)
	assert.Equal(t, 100, y)
}

func TestAcceleratorHoldThenRelease(t *testing.T) {
	var a Accelerator

	// Pushing right from near the edge. Tick one overflows by 21px
	// (prev 1900 + 2*20 = 1940, boundary 1919), tick two by 40px
	// (1919 + 40 = 1959); held at the boundary until the cumulative
	// overflow reaches the resistance of 80.
	x, y := a.Apply(1900, 500, 1920, 500, accelMon, 2.0, 80)
	assert.Equal(t, 1919, x, "first overflow tick is clamped")
	assert.Equal(t, 500, y)

	x, _ = a.Apply(1919, 500, 1939, 500, accelMon, 2.0, 80)
	assert.Equal(t, 1919, x, "pressure 61 is still below 80")

	// Third tick: cumulative overflow crosses 80 and the target passes
	// through unclamped.
	x, _ = a.Apply(1919, 500, 1939, 500, accelMon, 2.0, 80)
	assert.Equal(t, 1959, x, "release tick passes the full target through")
}

func TestAcceleratorPressureResetsWhenEdgeLeft(t *testing.T) {
	var a Accelerator

	x, _ := a.Apply(1900, 500, 1920, 500, accelMon, 2.0, 100)
	assert.Equal(t, 1919, x)

	// A tick that moves away from the edge drops that edge's pressure,
	// so pressing again starts over.
	x, _ = a.Apply(1919, 500, 1909, 500, accelMon, 2.0, 100)
	assert.Equal(t, 1899, x)

	x, _ = a.Apply(1899, 500, 1919, 500, accelMon, 2.0, 100)
	assert.Equal(t, 1919, x, "clamped again: pressure restarted from zero")
}

func TestAcceleratorZeroResistanceHardClamps(t *testing.T) {
	var a Accelerator

	for i := 0; i < 10; i++ {
		x, y := a.Apply(1900, 500, 1950, 500, accelMon, 2.0, 0)
		assert.Equal(t, 1919, x)
		assert.Equal(t, 500, y)
	}
}

func TestAcceleratorDecay(t *testing.T) {
	var a Accelerator

	x, _ := a.Apply(1900, 500, 1920, 500, accelMon, 2.0, 50)
	assert.Equal(t, 1919, x)

	a.Decay()

	// Built-up pressure is gone: the same push is clamped again instead
	// of releasing.
	x, _ = a.Apply(1919, 500, 1939, 500, accelMon, 2.0, 50)
	assert.Equal(t, 1919, x)
}

func TestAcceleratorTopEdge(t *testing.T) {
	var a Accelerator

	// Overflow of 20px at the top with resistance 15 releases on the
	// first tick.
	x, y := a.Apply(100, 20, 100, 0, accelMon, 2.0, 15)
	assert.Equal(t, 100, x)
	assert.Equal(t, -20, y, "overflow past the resistance goes through at once")
}
