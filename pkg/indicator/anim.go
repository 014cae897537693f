package indicator

// animationSteps is the frame count of every indicator animation.
const animationSteps = 20

// stripThickness is the edge-flash strip thickness in pixels.
const stripThickness = 8

// frame is one animation frame: the indicator window's top-left corner
// and extent.
type frame struct {
	X, Y, W, H int
}

// ringFrames computes the shrinking-ring schedule: the ring starts at
// 1.5x the configured size and shrinks to 1.0x, centered on (x, y).
func ringFrames(x, y, size int) []frame {
	frames := make([]frame, animationSteps)
	for i := range frames {
		progress := float64(i) / animationSteps
		cur := int(float64(size) * (1.5 - 0.5*progress))
		if cur < 1 {
			cur = 1
		}
		frames[i] = frame{X: x - cur/2, Y: y - cur/2, W: cur, H: cur}
	}
	return frames
}

// stripFrames computes the edge-flash schedule: a strip along the
// crossed boundary contracting toward the crossing point (x, y).
// vertical selects a vertical strip, for left/right boundaries.
func stripFrames(x, y, length int, vertical bool) []frame {
	frames := make([]frame, animationSteps)
	for i := range frames {
		progress := float64(i) / animationSteps
		cur := int(float64(length) * (1 - progress))
		if cur < 1 {
			cur = 1
		}
		if vertical {
			frames[i] = frame{X: x - stripThickness/2, Y: y - cur/2, W: stripThickness, H: cur}
		} else {
			frames[i] = frame{X: x - cur/2, Y: y - stripThickness/2, W: cur, H: stripThickness}
		}
	}
	return frames
}
