package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name         string
		hoursWorked  float64
		workingHours float64
		isLeaveDay   bool
		want         Status
	}{
		{"leave day overrides logged hours", 8, 8, true, StatusOnLeave},
		{"full day is present", 8, 8, false, StatusPresent},
		{"exactly ninety percent is present", 7.2, 8, false, StatusPresent},
		{"just under ninety percent is undertime", 7.19, 8, false, StatusUndertime},
		{"exactly forty percent is undertime", 3.2, 8, false, StatusUndertime},
		{"just under forty percent is absent", 3.19, 8, false, StatusAbsent},
		{"no hours is absent", 0, 8, false, StatusAbsent},
		{"zero target with any hours is present", 0.5, 0, false, StatusPresent},
		{"zero target with no hours is absent", 0, 0, false, StatusAbsent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.hoursWorked, tt.workingHours, tt.isLeaveDay))
		})
	}
}

func TestOvertimeHours(t *testing.T) {
	assert.InDelta(t, 2.5, OvertimeHours(10.5, 8), 1e-9)
	assert.Equal(t, 0.0, OvertimeHours(8, 8))
	assert.Equal(t, 0.0, OvertimeHours(6, 8))
	// A zero target never produces overtime
	assert.Equal(t, 0.0, OvertimeHours(12, 0))
}

func TestUndertime(t *testing.T) {
	assert.True(t, Undertime(5, 8))
	assert.True(t, Undertime(3.2, 8))
	assert.False(t, Undertime(3.19, 8))
	assert.False(t, Undertime(8, 8))
	assert.False(t, Undertime(9, 8))
	assert.False(t, Undertime(0.5, 0))
}
