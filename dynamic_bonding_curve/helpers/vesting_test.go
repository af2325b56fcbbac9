package helpers

import (
	"testing"

	dbc "github.com/krazyTry/meteora-curve/dynamic_bonding_curve/shared"
	"github.com/stretchr/testify/require"
)

func TestGetLockedVestingParams(t *testing.T) {
	tests := []struct {
		name   string
		params dbc.LockedVestingParams
		want   dbc.LockedVestingParameters
	}{
		{
			name: "none",
		},
		{
			name: "even periods",
			params: dbc.LockedVestingParams{
				TotalLockedVestingAmount:       1000,
				NumberOfVestingPeriod:          3,
				CliffUnlockAmount:              100,
				TotalVestingDuration:           300,
				CliffDurationFromMigrationTime: 10,
			},
			want: dbc.LockedVestingParameters{
				AmountPerPeriod:                300_000_000,
				CliffDurationFromMigrationTime: 10,
				Frequency:                      100,
				NumberOfPeriod:                 3,
				CliffUnlockAmount:              100_000_000,
			},
		},
		{
			name: "remainder moves to cliff",
			params: dbc.LockedVestingParams{
				TotalLockedVestingAmount: 1000,
				NumberOfVestingPeriod:    7,
				TotalVestingDuration:     70,
			},
			want: dbc.LockedVestingParameters{
				AmountPerPeriod:   142_000_000,
				Frequency:         10,
				NumberOfPeriod:    7,
				CliffUnlockAmount: 6_000_000,
			},
		},
		{
			name: "cliff only",
			params: dbc.LockedVestingParams{
				TotalLockedVestingAmount: 1000,
				CliffUnlockAmount:        1000,
			},
			want: dbc.LockedVestingParameters{
				AmountPerPeriod:   1_000_000,
				Frequency:         1,
				NumberOfPeriod:    1,
				CliffUnlockAmount: 999_000_000,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GetLockedVestingParams(tt.params, dbc.TokenDecimalSix)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.params.TotalLockedVestingAmount*1_000_000, GetTotalVestingAmount(got).Uint64())
		})
	}
}

func TestGetLockedVestingParamsErrors(t *testing.T) {
	_, err := GetLockedVestingParams(dbc.LockedVestingParams{TotalLockedVestingAmount: 10, TotalVestingDuration: 10}, dbc.TokenDecimalSix)
	require.Error(t, err)

	_, err = GetLockedVestingParams(dbc.LockedVestingParams{TotalLockedVestingAmount: 10, NumberOfVestingPeriod: 2}, dbc.TokenDecimalSix)
	require.Error(t, err)

	_, err = GetLockedVestingParams(dbc.LockedVestingParams{TotalLockedVestingAmount: 10, NumberOfVestingPeriod: 2, TotalVestingDuration: 10, CliffUnlockAmount: 11}, dbc.TokenDecimalSix)
	require.Error(t, err)
}

func TestGetUnlockedVestingAmount(t *testing.T) {
	lv := dbc.LockedVestingParameters{
		AmountPerPeriod:                300,
		CliffDurationFromMigrationTime: 10,
		Frequency:                      100,
		NumberOfPeriod:                 3,
		CliffUnlockAmount:              100,
	}
	for elapsed, want := range map[uint64]int64{
		0:      0,
		9:      0,
		10:     100,
		109:    100,
		110:    400,
		310:    1000,
		10_000: 1000,
	} {
		require.Equal(t, want, GetUnlockedVestingAmount(lv, elapsed).Int64(), "elapsed %d", elapsed)
	}
	require.Zero(t, GetUnlockedVestingAmount(dbc.LockedVestingParameters{}, 1000).Sign())
}

func TestBuildCurveWithVesting(t *testing.T) {
	base := testBaseParams(dbc.MigrationOptionMetDamm, 0, 0)
	base.LockedVestingParams = dbc.LockedVestingParams{
		TotalLockedVestingAmount: 100_000_000,
		NumberOfVestingPeriod:    10,
		CliffUnlockAmount:        10_000_000,
		TotalVestingDuration:     1000,
	}
	cfg, err := BuildCurve(dbc.BuildCurveParams{
		BuildCurveBaseParams:        base,
		PercentageSupplyOnMigration: mustDecimal(t, "20"),
		MigrationQuoteThreshold:     mustDecimal(t, "300"),
	})
	require.NoError(t, err)
	require.NoError(t, ValidateConfigParameters(cfg))

	breakdown, err := ReconstructSupply(cfg)
	require.NoError(t, err)
	require.Equal(t, uint64(100_000_000_000_000), breakdown.VestingAmount.Uint64())
}
