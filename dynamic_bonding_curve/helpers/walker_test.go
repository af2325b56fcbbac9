package helpers

import (
	"math/big"
	"testing"

	dbc "github.com/krazyTry/meteora-curve/dynamic_bonding_curve/shared"
	"github.com/stretchr/testify/require"
)

var (
	q64 = new(big.Int).Lsh(big.NewInt(1), 64)
	q65 = new(big.Int).Lsh(big.NewInt(1), 65)
	q66 = new(big.Int).Lsh(big.NewInt(1), 66)
)

// oneSegmentCurve spans [2^64, 2^65] and absorbs exactly 1000 quote.
func oneSegmentCurve(t *testing.T) []dbc.LiquidityDistributionParameters {
	return []dbc.LiquidityDistributionParameters{
		newSegment(t, q65, new(big.Int).Mul(q64, big.NewInt(1000))),
	}
}

func TestGetMigrationThresholdPrice(t *testing.T) {
	curve := []dbc.LiquidityDistributionParameters{
		newSegment(t, q65, new(big.Int).Mul(q64, big.NewInt(1000))),
		newSegment(t, q66, new(big.Int).Mul(q64, big.NewInt(500))),
	}

	tests := []struct {
		name      string
		threshold int64
		want      *big.Int
	}{
		{"zero", 0, q64},
		{"inside first segment", 400, new(big.Int).Add(q64, big.NewInt(7378697629483820646))},
		{"end of first segment", 1000, q65},
		{"inside second segment", 1500, new(big.Int).Add(q65, q64)},
		{"end of curve", 2000, q66},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GetMigrationThresholdPrice(big.NewInt(tt.threshold), q64, curve)
			require.NoError(t, err)
			require.Equal(t, tt.want.String(), got.String())
		})
	}
}

func TestGetMigrationThresholdPriceInsufficient(t *testing.T) {
	_, err := GetMigrationThresholdPrice(big.NewInt(1001), q64, oneSegmentCurve(t))
	require.ErrorIs(t, err, dbc.ErrInsufficientCurveLiquidity)
}

func TestGetMigrationThresholdPriceInvalidCurve(t *testing.T) {
	_, err := GetMigrationThresholdPrice(big.NewInt(1), q64, nil)
	require.ErrorIs(t, err, dbc.ErrInvalidPriceDomain)

	_, err = GetMigrationThresholdPrice(big.NewInt(1), q65, oneSegmentCurve(t))
	require.ErrorIs(t, err, dbc.ErrInvalidPriceDomain)
}

func TestGetMigrationThresholdPriceSkipsEmptySegment(t *testing.T) {
	curve := []dbc.LiquidityDistributionParameters{
		newSegment(t, q65, big.NewInt(0)),
		newSegment(t, q66, new(big.Int).Mul(q64, big.NewInt(500))),
	}
	got, err := GetMigrationThresholdPrice(big.NewInt(500), q64, curve)
	require.NoError(t, err)
	require.Equal(t, new(big.Int).Add(q65, q64).String(), got.String())
}

func TestGetMigrationThresholdPriceMonotonic(t *testing.T) {
	curve := []dbc.LiquidityDistributionParameters{
		newSegment(t, q65, new(big.Int).Mul(q64, big.NewInt(1000))),
		newSegment(t, q66, new(big.Int).Mul(q64, big.NewInt(500))),
	}
	prev := big.NewInt(0)
	for threshold := int64(0); threshold <= 2000; threshold += 37 {
		got, err := GetMigrationThresholdPrice(big.NewInt(threshold), q64, curve)
		require.NoError(t, err)
		require.True(t, got.Cmp(prev) >= 0, "threshold %d moved the price down", threshold)
		prev = got
	}
}

func TestGetBaseTokenForSwap(t *testing.T) {
	curve := oneSegmentCurve(t)

	got, err := GetBaseTokenForSwap(q64, q65, curve)
	require.NoError(t, err)
	require.Equal(t, int64(500), got.Int64())

	got, err = GetBaseTokenForSwap(q64, q64, curve)
	require.NoError(t, err)
	require.Zero(t, got.Sign())

	capacity, err := GetTotalBaseCapacity(q64, curve)
	require.NoError(t, err)
	require.Equal(t, int64(500), capacity.Int64())

	quote, err := GetTotalQuoteCapacity(q64, curve)
	require.NoError(t, err)
	require.Equal(t, int64(1000), quote.Int64())
}

func TestGetSwapAmountWithBuffer(t *testing.T) {
	// Capped at what a single bounded segment holds.
	got, err := GetSwapAmountWithBuffer(big.NewInt(500), q64, oneSegmentCurve(t), dbc.SwapBufferPercentage)
	require.NoError(t, err)
	require.Equal(t, int64(500), got.Int64())

	curve := append(oneSegmentCurve(t), newSegment(t, dbc.MaxSqrtPrice, new(big.Int).Mul(q64, big.NewInt(1000))))
	got, err = GetSwapAmountWithBuffer(big.NewInt(500), q64, curve, dbc.SwapBufferPercentage)
	require.NoError(t, err)
	require.Equal(t, int64(625), got.Int64())

	got, err = GetSwapAmountWithBuffer(big.NewInt(500), q64, curve, 10)
	require.NoError(t, err)
	require.Equal(t, int64(550), got.Int64())
}
