package helpers

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/krazyTry/meteora-curve/decimal_math"
	dbc "github.com/krazyTry/meteora-curve/dynamic_bonding_curve/shared"
	"github.com/shopspring/decimal"
)

// ConvertToLamports scales a whole-token amount by 10^tokenDecimal and
// truncates.
func ConvertToLamports(amount decimal.Decimal, tokenDecimal dbc.TokenDecimal) (*big.Int, error) {
	if amount.Sign() < 0 {
		return nil, fmt.Errorf("amount %s must be non-negative", amount)
	}
	return FromDecimalToBig(amount.Mul(decimal_math.Pow10(int(tokenDecimal)))), nil
}

func FromDecimalToBig(value decimal.Decimal) *big.Int {
	return value.Truncate(0).BigInt()
}

func BpsToFeeNumerator(bps uint64) *big.Int {
	return new(big.Int).Div(new(big.Int).Mul(new(big.Int).SetUint64(bps), big.NewInt(dbc.FeeDenominator)), big.NewInt(dbc.MaxBasisPoint))
}

func FeeNumeratorToBps(feeNumerator *big.Int) uint64 {
	return new(big.Int).Div(new(big.Int).Mul(feeNumerator, big.NewInt(dbc.MaxBasisPoint)), big.NewInt(dbc.FeeDenominator)).Uint64()
}

// BigIntToU64 converts a non-negative big.Int to uint64 with bounds check.
func BigIntToU64(v *big.Int) (uint64, error) {
	if v == nil {
		return 0, nil
	}
	if v.Sign() < 0 {
		return 0, errors.New("value must be non-negative")
	}
	if v.BitLen() > 64 {
		return 0, errors.New("value overflows uint64")
	}
	return v.Uint64(), nil
}

func lamportsFromUint64(amount uint64, tokenDecimal dbc.TokenDecimal) (*big.Int, error) {
	return ConvertToLamports(decimal.NewFromUint64(amount), tokenDecimal)
}

func lamportsU64FromUint64(amount uint64, tokenDecimal dbc.TokenDecimal) (uint64, error) {
	val, err := lamportsFromUint64(amount, tokenDecimal)
	if err != nil {
		return 0, err
	}
	return BigIntToU64(val)
}

func swapBufferPercentage(v *uint8) uint8 {
	if v == nil {
		return dbc.SwapBufferPercentage
	}
	return *v
}
