package math

import (
	"math/big"
	"testing"

	dbc "github.com/krazyTry/meteora-curve/dynamic_bonding_curve/shared"
	"github.com/stretchr/testify/require"
)

func TestGetFeeMode(t *testing.T) {
	tests := []struct {
		name      string
		mode      dbc.CollectFeeMode
		direction dbc.TradeDirection
		want      dbc.FeeMode
	}{
		{"quote token buy", dbc.CollectFeeModeQuoteToken, dbc.TradeDirectionQuoteToBase, dbc.FeeMode{FeesOnInput: true}},
		{"quote token sell", dbc.CollectFeeModeQuoteToken, dbc.TradeDirectionBaseToQuote, dbc.FeeMode{}},
		{"output token buy", dbc.CollectFeeModeOutputToken, dbc.TradeDirectionQuoteToBase, dbc.FeeMode{FeesOnBaseToken: true}},
		{"output token sell", dbc.CollectFeeModeOutputToken, dbc.TradeDirectionBaseToQuote, dbc.FeeMode{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, GetFeeMode(tt.mode, tt.direction, false))

			withReferral := tt.want
			withReferral.HasReferral = true
			require.Equal(t, withReferral, GetFeeMode(tt.mode, tt.direction, true))
		})
	}
}

func TestGetFeeOnAmount(t *testing.T) {
	onePercent := big.NewInt(10_000_000)

	res, err := GetFeeOnAmount(onePercent, big.NewInt(1_000_000), false)
	require.NoError(t, err)
	require.Equal(t, int64(990_000), res.Amount.Int64())
	require.Equal(t, int64(8_000), res.TradingFee.Int64())
	require.Equal(t, int64(2_000), res.ProtocolFee.Int64())
	require.Equal(t, int64(0), res.ReferralFee.Int64())

	res, err = GetFeeOnAmount(onePercent, big.NewInt(1_000_000), true)
	require.NoError(t, err)
	require.Equal(t, int64(8_000), res.TradingFee.Int64())
	require.Equal(t, int64(1_600), res.ProtocolFee.Int64())
	require.Equal(t, int64(400), res.ReferralFee.Int64())

	// The fee rounds up, so a tiny amount still pays one unit.
	res, err = GetFeeOnAmount(onePercent, big.NewInt(3), false)
	require.NoError(t, err)
	require.Equal(t, int64(2), res.Amount.Int64())
	require.Equal(t, int64(1), res.TradingFee.Int64())
}

func TestIncludedExcludedFee(t *testing.T) {
	onePercent := big.NewInt(10_000_000)

	included, fee, err := GetIncludedFeeAmount(onePercent, big.NewInt(990))
	require.NoError(t, err)
	require.Equal(t, int64(1000), included.Int64())
	require.Equal(t, int64(10), fee.Int64())

	for _, amount := range []int64{1, 99, 1000, 123_456_789} {
		included, _, err := GetIncludedFeeAmount(onePercent, big.NewInt(amount))
		require.NoError(t, err)
		excluded, _, err := GetExcludedFeeAmount(onePercent, included)
		require.NoError(t, err)
		require.GreaterOrEqual(t, excluded.Int64(), amount)
	}

	_, _, err = GetIncludedFeeAmount(big.NewInt(dbc.FeeDenominator+1), big.NewInt(1))
	require.Error(t, err)
}

func TestSplitFees(t *testing.T) {
	for _, hasReferral := range []bool{false, true} {
		trading, protocol, referral, err := SplitFees(big.NewInt(1011), hasReferral)
		require.NoError(t, err)
		total := new(big.Int).Add(trading, protocol)
		total.Add(total, referral)
		require.Equal(t, int64(1011), total.Int64())
	}
}

func TestGetTotalFeeNumerator(t *testing.T) {
	fees := dbc.PoolFeeParameters{BaseFee: dbc.BaseFeeParameters{CliffFeeNumerator: 995_000_000}}
	got, err := GetTotalFeeNumerator(fees, big.NewInt(0), big.NewInt(0))
	require.NoError(t, err)
	require.Equal(t, int64(dbc.MaxFeeNumerator), got.Int64())

	fees.BaseFee.BaseFeeMode = 9
	_, err = GetTotalFeeNumerator(fees, big.NewInt(0), big.NewInt(0))
	require.ErrorIs(t, err, dbc.ErrInvalidBaseFeeMode)
}
