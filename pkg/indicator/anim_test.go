package indicator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingFramesShrinkAroundCenter(t *testing.T) {
	frames := ringFrames(500, 300, 80)
	require.Len(t, frames, animationSteps)

	// Starts at 1.5x the configured size.
	assert.Equal(t, 120, frames[0].W)
	assert.Equal(t, 120, frames[0].H)

	for i := 1; i < len(frames); i++ {
		assert.LessOrEqual(t, frames[i].W, frames[i-1].W, "frame %d grew", i)
		assert.Equal(t, frames[i].W, frames[i].H, "rings stay square")
	}

	// Every frame is centered on the landing point.
	for i, f := range frames {
		assert.Equal(t, 500, f.X+f.W/2, "frame %d off-center", i)
		assert.Equal(t, 300, f.Y+f.H/2, "frame %d off-center", i)
	}

	// Ends just above the configured size (one step short of 1.0x).
	last := frames[len(frames)-1]
	assert.Greater(t, last.W, 80)
	assert.LessOrEqual(t, last.W, 84)
}

func TestRingFramesNeverCollapse(t *testing.T) {
	for _, f := range ringFrames(0, 0, 1) {
		assert.GreaterOrEqual(t, f.W, 1)
		assert.GreaterOrEqual(t, f.H, 1)
	}
}

func TestStripFramesHorizontal(t *testing.T) {
	frames := stripFrames(960, 1080, 400, false)
	require.Len(t, frames, animationSteps)

	assert.Equal(t, 400, frames[0].W)
	for i, f := range frames {
		assert.Equal(t, stripThickness, f.H)
		assert.Equal(t, 960, f.X+f.W/2, "frame %d off-center", i)
		if i > 0 {
			assert.LessOrEqual(t, f.W, frames[i-1].W)
		}
	}
}

func TestStripFramesVertical(t *testing.T) {
	frames := stripFrames(1920, 540, 400, true)
	for i, f := range frames {
		assert.Equal(t, stripThickness, f.W)
		assert.Equal(t, 540, f.Y+f.H/2, "frame %d off-center", i)
		if i > 0 {
			assert.LessOrEqual(t, f.H, frames[i-1].H)
		}
	}
}
