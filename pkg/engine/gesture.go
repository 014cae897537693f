package engine

// adjacentMonitor resolves the monitor-switch gesture: a horizontal delta
// past the threshold selects the previous or next monitor in sorted
// order. The target index is clamped at the list bounds; there is no
// wraparound past the first or last monitor.
func adjacentMonitor(dx, threshold, current, count int) (int, bool) {
	switch {
	case dx < -threshold:
		target := current - 1
		if target < 0 {
			target = 0
		}
		return target, true
	case dx > threshold:
		target := current + 1
		if target > count-1 {
			target = count - 1
		}
		return target, true
	default:
		return 0, false
	}
}
