package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdjacentMonitor(t *testing.T) {
	tests := []struct {
		name      string
		dx        int
		current   int
		want      int
		wantFired bool
	}{
		{name: "right shift selects next", dx: 150, current: 0, want: 1, wantFired: true},
		{name: "left shift selects previous", dx: -150, current: 1, want: 0, wantFired: true},
		{name: "below threshold does nothing", dx: 100, current: 0, wantFired: false},
		{name: "exactly at threshold does nothing", dx: -100, current: 1, wantFired: false},
		{name: "clamped at first monitor", dx: -150, current: 0, want: 0, wantFired: true},
		{name: "clamped at last monitor", dx: 150, current: 2, want: 2, wantFired: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, fired := adjacentMonitor(tt.dx, 100, tt.current, 3)
			assert.Equal(t, tt.wantFired, fired)
			if fired {
				assert.Equal(t, tt.want, target)
			}
		})
	}
}
