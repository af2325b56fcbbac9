package shared

import (
	"encoding/binary"
	"math/big"
	"testing"

	bin "github.com/gagliardetto/binary"
	"github.com/stretchr/testify/require"
)

func u128(t *testing.T, s string) bin.Uint128 {
	t.Helper()
	v, ok := new(big.Int).SetString(s, 10)
	require.True(t, ok)
	return bin.Uint128{
		Lo:         new(big.Int).And(v, U64Max).Uint64(),
		Hi:         new(big.Int).Rsh(v, 64).Uint64(),
		Endianness: binary.LittleEndian,
	}
}

func testConfig(t *testing.T) ConfigParameters {
	return ConfigParameters{
		PoolFees: PoolFeeParameters{BaseFee: BaseFeeParameters{
			CliffFeeNumerator: 500_000_000,
			FirstFactor:       10,
			SecondFactor:      10,
			ThirdFactor:       49_000_000,
		}},
		MigrationOption:         uint8(MigrationOptionMetDammV2),
		TokenDecimal:            uint8(TokenDecimalSix),
		MigrationQuoteThreshold: 300_000_000_000,
		SqrtStartPrice:          u128(t, "101036978416954620"),
		MigrationSqrtPrice:      u128(t, "319506979690965609"),
		LockedVesting: LockedVestingParameters{
			AmountPerPeriod:   1,
			Frequency:         1,
			NumberOfPeriod:    1,
			CliffUnlockAmount: 7,
		},
		MigrationFee:         MigrationFee{FeePercentage: 2, CreatorFeePercentage: 50},
		TokenSupply:          TokenSupplyParams{PreMigrationTokenSupply: 1e15, PostMigrationTokenSupply: 1e15},
		Leftover:             10_000_000_000,
		SwapBufferPercentage: SwapBufferPercentage,
		Curve: []LiquidityDistributionParameters{
			{SqrtPrice: u128(t, "319506979698850302"), Liquidity: u128(t, "2857757303594868528")},
			{SqrtPrice: u128(t, MaxSqrtPrice.String()), Liquidity: u128(t, "1")},
		},
	}
}

func TestConfigParametersLayout(t *testing.T) {
	config := testConfig(t)

	data, err := config.Marshal()
	require.NoError(t, err)
	// 23 scalar fields and MaxCurvePoint (sqrt price, liquidity) pairs.
	require.Len(t, data, 8+2+8+8+1+1+1+1+1+8+16+16+8*5+1+1+8*3+1+MaxCurvePoint*32)

	decoded, err := UnmarshalConfigParameters(data)
	require.NoError(t, err)
	require.Equal(t, config.PoolFees, decoded.PoolFees)
	require.Equal(t, config.MigrationQuoteThreshold, decoded.MigrationQuoteThreshold)
	require.Equal(t, config.LockedVesting, decoded.LockedVesting)
	require.Equal(t, config.MigrationFee, decoded.MigrationFee)
	require.Equal(t, config.TokenSupply, decoded.TokenSupply)
	require.Equal(t, config.Leftover, decoded.Leftover)
	require.Equal(t, config.SwapBufferPercentage, decoded.SwapBufferPercentage)
	require.Equal(t, config.SqrtStartPrice.BigInt().String(), decoded.SqrtStartPrice.BigInt().String())
	require.Equal(t, config.MigrationSqrtPrice.BigInt().String(), decoded.MigrationSqrtPrice.BigInt().String())

	require.Len(t, decoded.Curve, len(config.Curve))
	for i := range config.Curve {
		require.Equal(t, config.Curve[i].SqrtPrice.BigInt().String(), decoded.Curve[i].SqrtPrice.BigInt().String())
		require.Equal(t, config.Curve[i].Liquidity.BigInt().String(), decoded.Curve[i].Liquidity.BigInt().String())
	}
}

func TestConfigParametersLayoutErrors(t *testing.T) {
	config := testConfig(t)
	config.Curve = make([]LiquidityDistributionParameters, MaxCurvePoint+1)
	_, err := config.Marshal()
	require.ErrorIs(t, err, ErrInvalidPriceDomain)

	data, err := testConfig(t).Marshal()
	require.NoError(t, err)
	_, err = UnmarshalConfigParameters(data[:len(data)-1])
	require.Error(t, err)
}

func TestSupplyBreakdownTotal(t *testing.T) {
	require.Zero(t, SupplyBreakdown{}.Total().Sign())

	b := SupplyBreakdown{
		SwapBaseAmount:       big.NewInt(1000),
		SwapBaseAmountBuffer: big.NewInt(1250),
		MigrationBaseAmount:  big.NewInt(300),
		LeftoverAmount:       big.NewInt(5),
	}
	require.Equal(t, int64(1555), b.Total().Int64())
}
