package helpers

import (
	"fmt"
	"math/big"
	"testing"

	dbc "github.com/krazyTry/meteora-curve/dynamic_bonding_curve/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestBuildCurve(t *testing.T) {
	markets := []struct {
		pct       string
		threshold string
		leftover  uint64
	}{
		{"20", "300", 0},
		{"25.5", "85.3", 10_000},
	}
	for _, option := range []dbc.MigrationOption{dbc.MigrationOptionMetDamm, dbc.MigrationOptionMetDammV2} {
		for _, fee := range []uint8{0, 1, 3} {
			for _, m := range markets {
				name := fmt.Sprintf("option%d/fee%d/pct%s", option, fee, m.pct)
				t.Run(name, func(t *testing.T) {
					params := dbc.BuildCurveParams{
						BuildCurveBaseParams:        testBaseParams(option, fee, m.leftover),
						PercentageSupplyOnMigration: mustDecimal(t, m.pct),
						MigrationQuoteThreshold:     mustDecimal(t, m.threshold),
					}
					cfg, err := BuildCurve(params)
					require.NoError(t, err)
					require.NoError(t, ValidateConfigParameters(cfg))

					require.Len(t, cfg.Curve, 2)
					require.Equal(t, dbc.MaxSqrtPrice.String(), cfg.Curve[1].SqrtPrice.BigInt().String())

					start := cfg.SqrtStartPrice.BigInt()
					migration := cfg.Curve[0].SqrtPrice.BigInt()
					require.Equal(t, -1, start.Cmp(migration))

					threshold, err := ConvertToLamports(mustDecimal(t, m.threshold), dbc.TokenDecimalNine)
					require.NoError(t, err)
					require.Equal(t, threshold.Uint64(), cfg.MigrationQuoteThreshold)

					// The threshold walks to the segment bound.
					walked, err := GetMigrationThresholdPrice(threshold, start, cfg.Curve)
					require.NoError(t, err)
					diff := new(big.Int).Sub(walked, migration)
					require.True(t, diff.CmpAbs(big.NewInt(1)) <= 0, "walked %s, segment ends at %s", walked, migration)
					require.Equal(t, walked.String(), cfg.MigrationSqrtPrice.BigInt().String())

					breakdown, err := ReconstructSupply(cfg)
					require.NoError(t, err)
					supply := new(big.Int).SetUint64(cfg.TokenSupply.PreMigrationTokenSupply)
					require.NoError(t, CheckSupply(breakdown, supply, big.NewInt(0)))

					expectedLeftover, err := lamportsFromUint64(m.leftover, dbc.TokenDecimalSix)
					require.NoError(t, err)
					require.Equal(t, expectedLeftover.Uint64(), cfg.Leftover)
					require.Equal(t, uint8(dbc.SwapBufferPercentage), cfg.SwapBufferPercentage)
				})
			}
		}
	}
}

func TestBuildCurveMigrationReserveGrowsWithShare(t *testing.T) {
	var prev *big.Int
	for _, pct := range []string{"10", "20", "30", "40"} {
		cfg, err := BuildCurve(dbc.BuildCurveParams{
			BuildCurveBaseParams:        testBaseParams(dbc.MigrationOptionMetDamm, 0, 0),
			PercentageSupplyOnMigration: mustDecimal(t, pct),
			MigrationQuoteThreshold:     decimal.NewFromInt(300),
		})
		require.NoError(t, err)
		breakdown, err := ReconstructSupply(cfg)
		require.NoError(t, err)
		if prev != nil {
			require.Equal(t, 1, breakdown.MigrationBaseAmount.Cmp(prev), "pct %s", pct)
		}
		prev = breakdown.MigrationBaseAmount
	}
}

func TestBuildCurveCustomBuffer(t *testing.T) {
	buffer := uint8(10)
	base := testBaseParams(dbc.MigrationOptionMetDamm, 0, 0)
	base.SwapBufferPercentage = &buffer
	cfg, err := BuildCurve(dbc.BuildCurveParams{
		BuildCurveBaseParams:        base,
		PercentageSupplyOnMigration: decimal.NewFromInt(20),
		MigrationQuoteThreshold:     decimal.NewFromInt(300),
	})
	require.NoError(t, err)
	require.Equal(t, buffer, cfg.SwapBufferPercentage)
	require.NoError(t, ValidateConfigParameters(cfg))
}

func TestBuildCurveErrors(t *testing.T) {
	t.Run("invalid migration option", func(t *testing.T) {
		_, err := BuildCurve(dbc.BuildCurveParams{
			BuildCurveBaseParams:        testBaseParams(dbc.MigrationOption(2), 0, 0),
			PercentageSupplyOnMigration: decimal.NewFromInt(20),
			MigrationQuoteThreshold:     decimal.NewFromInt(300),
		})
		require.ErrorIs(t, err, dbc.ErrInvalidMigrationOption)
	})
	t.Run("supply exhausted", func(t *testing.T) {
		_, err := BuildCurve(dbc.BuildCurveParams{
			BuildCurveBaseParams:        testBaseParams(dbc.MigrationOptionMetDamm, 0, 20_000_000),
			PercentageSupplyOnMigration: decimal.NewFromInt(99),
			MigrationQuoteThreshold:     decimal.NewFromInt(300),
		})
		require.ErrorIs(t, err, dbc.ErrCurveSupplyMismatch)
	})
	t.Run("percentage out of range", func(t *testing.T) {
		for _, pct := range []int64{0, 100, -5} {
			_, err := BuildCurve(dbc.BuildCurveParams{
				BuildCurveBaseParams:        testBaseParams(dbc.MigrationOptionMetDamm, 0, 0),
				PercentageSupplyOnMigration: decimal.NewFromInt(pct),
				MigrationQuoteThreshold:     decimal.NewFromInt(300),
			})
			require.Error(t, err, "pct %d", pct)
		}
	})
	t.Run("zero threshold", func(t *testing.T) {
		_, err := BuildCurve(dbc.BuildCurveParams{
			BuildCurveBaseParams:        testBaseParams(dbc.MigrationOptionMetDamm, 0, 0),
			PercentageSupplyOnMigration: decimal.NewFromInt(20),
			MigrationQuoteThreshold:     decimal.Zero,
		})
		require.Error(t, err)
	})
}

func TestGetFirstCurveStartBelowMigration(t *testing.T) {
	// migration reserve larger than the swap amount over a small fee cannot
	// start below the migration price.
	_, _, err := GetFirstCurve(q64, big.NewInt(1000), big.NewInt(500), big.NewInt(100), 0)
	require.ErrorIs(t, err, dbc.ErrInvalidPriceDomain)

	start, curve, err := GetFirstCurve(q65, big.NewInt(1000), big.NewInt(2000), big.NewInt(100), 0)
	require.NoError(t, err)
	require.Equal(t, q64.String(), start.String())
	require.Len(t, curve, 1)
	require.Equal(t, q65.String(), curve[0].SqrtPrice.BigInt().String())
}

func TestBuildCurveWithMarketCap(t *testing.T) {
	for _, fee := range []uint8{0, 2} {
		t.Run(fmt.Sprintf("fee%d", fee), func(t *testing.T) {
			params := dbc.BuildCurveWithMarketCapParams{
				BuildCurveBaseParams: testBaseParams(dbc.MigrationOptionMetDamm, fee, 10_000),
				InitialMarketCap:     decimal.NewFromInt(30),
				MigrationMarketCap:   decimal.NewFromInt(300),
			}
			cfg, err := BuildCurveWithMarketCap(params)
			require.NoError(t, err)
			require.NoError(t, ValidateConfigParameters(cfg))

			startCap := GetMarketCapFromSqrtPrice(cfg.SqrtStartPrice.BigInt(), params.TotalTokenSupply, params.TokenBaseDecimal, params.TokenQuoteDecimal)
			migrationCap := GetMarketCapFromSqrtPrice(cfg.MigrationSqrtPrice.BigInt(), params.TotalTokenSupply, params.TokenBaseDecimal, params.TokenQuoteDecimal)
			requireRelativeClose(t, params.InitialMarketCap, startCap, "1e-6")
			requireRelativeClose(t, params.MigrationMarketCap, migrationCap, "1e-6")
		})
	}

	_, err := BuildCurveWithMarketCap(dbc.BuildCurveWithMarketCapParams{
		BuildCurveBaseParams: testBaseParams(dbc.MigrationOptionMetDamm, 0, 0),
		InitialMarketCap:     decimal.NewFromInt(300),
		MigrationMarketCap:   decimal.NewFromInt(30),
	})
	require.ErrorIs(t, err, dbc.ErrInvalidPriceDomain)
}
