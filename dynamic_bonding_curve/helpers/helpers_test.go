package helpers

import (
	"math/big"
	"testing"

	dbc "github.com/krazyTry/meteora-curve/dynamic_bonding_curve/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func testBaseParams(option dbc.MigrationOption, migrationFeePercent uint8, leftover uint64) dbc.BuildCurveBaseParams {
	return dbc.BuildCurveBaseParams{
		TotalTokenSupply:  1_000_000_000,
		TokenBaseDecimal:  dbc.TokenDecimalSix,
		TokenQuoteDecimal: dbc.TokenDecimalNine,
		Leftover:          leftover,
		BaseFeeParams: dbc.BaseFeeParams{
			BaseFeeMode: dbc.BaseFeeModeFeeSchedulerLinear,
			FeeSchedulerParam: &dbc.FeeSchedulerParams{
				StartingFeeBps: 100,
				EndingFeeBps:   100,
			},
		},
		ActivationType:  dbc.ActivationTypeSlot,
		CollectFeeMode:  dbc.CollectFeeModeQuoteToken,
		MigrationOption: option,
		MigrationFee: dbc.MigrationFee{
			FeePercentage: migrationFeePercent,
		},
	}
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func mustBig(t *testing.T, s string) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(s, 10)
	require.True(t, ok, "bad integer %q", s)
	return v
}

// requireRelativeClose fails unless |got-want| <= tolerance*|want|.
func requireRelativeClose(t *testing.T, want, got decimal.Decimal, tolerance string) {
	t.Helper()
	diff := got.Sub(want).Abs()
	bound := want.Abs().Mul(mustDecimal(t, tolerance))
	require.Truef(t, diff.LessThanOrEqual(bound), "got %s want %s (tolerance %s)", got, want, tolerance)
}

func newSegment(t *testing.T, sqrtPrice, liquidity *big.Int) dbc.LiquidityDistributionParameters {
	t.Helper()
	point, err := newLiquidityDistribution(sqrtPrice, liquidity)
	require.NoError(t, err)
	return point
}
