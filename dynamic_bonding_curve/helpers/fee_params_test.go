package helpers

import (
	"testing"

	"github.com/krazyTry/meteora-curve/dynamic_bonding_curve/math/pool_fees"
	dbc "github.com/krazyTry/meteora-curve/dynamic_bonding_curve/shared"
	"github.com/stretchr/testify/require"
)

func TestGetBaseFeeParams(t *testing.T) {
	t.Run("flat", func(t *testing.T) {
		got, err := GetBaseFeeParams(dbc.BaseFeeParams{
			BaseFeeMode:       dbc.BaseFeeModeFeeSchedulerLinear,
			FeeSchedulerParam: &dbc.FeeSchedulerParams{StartingFeeBps: 100, EndingFeeBps: 100},
		})
		require.NoError(t, err)
		require.Equal(t, dbc.BaseFeeParameters{CliffFeeNumerator: 10_000_000}, got)
	})

	t.Run("linear", func(t *testing.T) {
		got, err := GetBaseFeeParams(dbc.BaseFeeParams{
			BaseFeeMode: dbc.BaseFeeModeFeeSchedulerLinear,
			FeeSchedulerParam: &dbc.FeeSchedulerParams{
				StartingFeeBps: 5000,
				EndingFeeBps:   100,
				NumberOfPeriod: 10,
				TotalDuration:  100,
			},
		})
		require.NoError(t, err)
		require.Equal(t, dbc.BaseFeeParameters{
			CliffFeeNumerator: 500_000_000,
			FirstFactor:       10,
			SecondFactor:      10,
			ThirdFactor:       49_000_000,
			BaseFeeMode:       uint8(dbc.BaseFeeModeFeeSchedulerLinear),
		}, got)
	})

	t.Run("exponential", func(t *testing.T) {
		got, err := GetBaseFeeParams(dbc.BaseFeeParams{
			BaseFeeMode: dbc.BaseFeeModeFeeSchedulerExponential,
			FeeSchedulerParam: &dbc.FeeSchedulerParams{
				StartingFeeBps: 5000,
				EndingFeeBps:   100,
				NumberOfPeriod: 10,
				TotalDuration:  100,
			},
		})
		require.NoError(t, err)
		require.Equal(t, uint64(3237), got.ThirdFactor)

		handler, err := pool_fees.GetBaseFeeHandler(got)
		require.NoError(t, err)
		minFee := handler.GetMinBaseFeeNumerator()
		// The decay never undershoots the requested ending fee.
		require.True(t, minFee.Int64() >= 10_000_000, "min fee %s", minFee)
		require.InDelta(t, 10_000_000, minFee.Int64(), 50_000)
	})
}

func TestGetBaseFeeParamsErrors(t *testing.T) {
	tests := []struct {
		name   string
		params dbc.BaseFeeParams
	}{
		{"missing scheduler", dbc.BaseFeeParams{}},
		{"unknown mode", dbc.BaseFeeParams{BaseFeeMode: 9, FeeSchedulerParam: &dbc.FeeSchedulerParams{StartingFeeBps: 100, EndingFeeBps: 100}}},
		{"flat with periods", dbc.BaseFeeParams{FeeSchedulerParam: &dbc.FeeSchedulerParams{StartingFeeBps: 100, EndingFeeBps: 100, NumberOfPeriod: 2}}},
		{"rising", dbc.BaseFeeParams{FeeSchedulerParam: &dbc.FeeSchedulerParams{StartingFeeBps: 100, EndingFeeBps: 200, NumberOfPeriod: 2, TotalDuration: 10}}},
		{"below minimum", dbc.BaseFeeParams{FeeSchedulerParam: &dbc.FeeSchedulerParams{StartingFeeBps: 100, EndingFeeBps: 10, NumberOfPeriod: 2, TotalDuration: 10}}},
		{"flat below minimum", dbc.BaseFeeParams{FeeSchedulerParam: &dbc.FeeSchedulerParams{StartingFeeBps: 10, EndingFeeBps: 10}}},
		{"no duration", dbc.BaseFeeParams{FeeSchedulerParam: &dbc.FeeSchedulerParams{StartingFeeBps: 200, EndingFeeBps: 100, NumberOfPeriod: 2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GetBaseFeeParams(tt.params)
			require.Error(t, err)
		})
	}

	_, err := GetBaseFeeParams(dbc.BaseFeeParams{BaseFeeMode: 9, FeeSchedulerParam: &dbc.FeeSchedulerParams{StartingFeeBps: 100, EndingFeeBps: 100}})
	require.ErrorIs(t, err, dbc.ErrInvalidBaseFeeMode)
}

func TestBpsConversions(t *testing.T) {
	require.Equal(t, int64(2_500_000), BpsToFeeNumerator(dbc.MinFeeBps).Int64())
	require.Equal(t, int64(990_000_000), BpsToFeeNumerator(dbc.MaxFeeBps).Int64())
	require.Equal(t, uint64(100), FeeNumeratorToBps(BpsToFeeNumerator(100)))
}
