package pool_fees

import (
	"math/big"
	"testing"

	dbc "github.com/krazyTry/meteora-curve/dynamic_bonding_curve/shared"
	"github.com/stretchr/testify/require"
)

func TestLinearFeeScheduler(t *testing.T) {
	handler, err := GetBaseFeeHandler(dbc.BaseFeeParameters{
		CliffFeeNumerator: 500_000_000,
		FirstFactor:       10,
		SecondFactor:      10,
		ThirdFactor:       49_000_000,
		BaseFeeMode:       uint8(dbc.BaseFeeModeFeeSchedulerLinear),
	})
	require.NoError(t, err)
	require.True(t, handler.Validate())
	require.Equal(t, int64(10_000_000), handler.GetMinBaseFeeNumerator().Int64())

	activation := big.NewInt(100)
	tests := []struct {
		point int64
		want  int64
	}{
		{50, 500_000_000},
		{100, 500_000_000},
		{109, 500_000_000},
		{125, 402_000_000},
		{200, 10_000_000},
		{10_000, 10_000_000},
	}
	for _, tt := range tests {
		got := handler.GetBaseFeeNumerator(big.NewInt(tt.point), activation)
		require.Equal(t, tt.want, got.Int64(), "point %d", tt.point)
	}
}

func TestExponentialFeeScheduler(t *testing.T) {
	halving := big.NewInt(5_000)
	cliff := big.NewInt(100_000_000)

	for period, want := range []int64{100_000_000, 50_000_000, 25_000_000, 12_500_000} {
		got, err := GetFeeNumeratorOnExponentialFeeScheduler(cliff, halving, uint64(period))
		require.NoError(t, err)
		require.Equal(t, want, got.Int64(), "period %d", period)
	}

	_, err := GetFeeNumeratorOnExponentialFeeScheduler(cliff, big.NewInt(dbc.MaxBasisPoint+1), 1)
	require.Error(t, err)

	// Decay is monotonic.
	prev := new(big.Int).Set(cliff)
	for period := uint64(1); period < 50; period++ {
		got, err := GetFeeNumeratorOnExponentialFeeScheduler(cliff, big.NewInt(321), period)
		require.NoError(t, err)
		require.True(t, got.Cmp(prev) <= 0)
		prev = got
	}
}

func TestFeeSchedulerValidate(t *testing.T) {
	valid := FeeScheduler{
		CliffFeeNumerator: big.NewInt(500_000_000),
		NumberOfPeriod:    10,
		PeriodFrequency:   big.NewInt(10),
		ReductionFactor:   big.NewInt(49_000_000),
		FeeSchedulerMode:  dbc.BaseFeeModeFeeSchedulerLinear,
	}
	require.True(t, valid.Validate())

	flat := FeeScheduler{
		CliffFeeNumerator: big.NewInt(dbc.MinFeeNumerator),
		PeriodFrequency:   big.NewInt(0),
		ReductionFactor:   big.NewInt(0),
	}
	require.True(t, flat.Validate())

	missingFrequency := valid
	missingFrequency.PeriodFrequency = big.NewInt(0)
	require.False(t, missingFrequency.Validate())

	belowMin := valid
	belowMin.ReductionFactor = big.NewInt(49_900_000)
	require.False(t, belowMin.Validate())

	aboveMax := flat
	aboveMax.CliffFeeNumerator = big.NewInt(dbc.MaxFeeNumerator + 1)
	require.False(t, aboveMax.Validate())

	underflow := valid
	underflow.ReductionFactor = big.NewInt(60_000_000)
	require.False(t, underflow.Validate())
	require.Equal(t, int64(500_000_000), underflow.GetMinBaseFeeNumerator().Int64())
}

func TestGetBaseFeeHandlerInvalidMode(t *testing.T) {
	_, err := GetBaseFeeHandler(dbc.BaseFeeParameters{BaseFeeMode: 2})
	require.ErrorIs(t, err, dbc.ErrInvalidBaseFeeMode)
}
