package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubtractiveTrend(t *testing.T) {
	assert.InDelta(t, 5.0, SubtractiveTrend(90, 85), 1e-9)
	assert.InDelta(t, -5.0, SubtractiveTrend(85, 90), 1e-9)
	assert.Equal(t, 0.0, SubtractiveTrend(80, 80))

	// Antisymmetric: swapping the months flips the sign
	assert.Equal(t, -SubtractiveTrend(70, 95), SubtractiveTrend(95, 70))
}

func TestOverviewRequestValidate(t *testing.T) {
	t.Run("empty month is allowed", func(t *testing.T) {
		req := OverviewRequest{}
		assert.NoError(t, req.Validate())
	})

	t.Run("valid month", func(t *testing.T) {
		req := OverviewRequest{Month: "2026-03"}
		assert.NoError(t, req.Validate())
	})

	t.Run("malformed month", func(t *testing.T) {
		req := OverviewRequest{Month: "March 2026"}
		assert.Error(t, req.Validate())
	})
}
