package simulation

import (
	"testing"

	"github.com/parkpulse/parkpulse-backend/internal/pricing"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TargetOccupancyCurve = pricing.Curve{}
	cfg.EarlyDepartureRate = -1
	cfg.EventWindowStart = 22
	cfg.EventWindowEnd = 17
	cfg.CatchUpRate = 0
	cfg.MaxBurstAttempts = 0
	cfg.DurationWeights = [4]float64{0, 0, 0, 0}
	cfg.EventSpanBoost = 0.5

	err := cfg.Validate()
	require.Error(t, err)
	require.Len(t, multierr.Errors(err), 7)
}

func TestTargetCurveClampsOutsideDay(t *testing.T) {
	curve := DefaultTargetOccupancyCurve()
	require.Equal(t, 0.0, curve.Eval(3))
	require.Equal(t, 0.95, curve.Eval(19))
	require.Equal(t, 0.15, curve.Eval(25))
}
