package helpers

import (
	"fmt"
	"math/big"

	mathutil "github.com/krazyTry/meteora-curve/dynamic_bonding_curve/math"
	dbc "github.com/krazyTry/meteora-curve/dynamic_bonding_curve/shared"
)

// GetMigrationThresholdPrice walks the curve from sqrtStartPrice with
// migrationThreshold quote and returns where the price lands. Running off the
// last segment is an error; the price is never clamped.
func GetMigrationThresholdPrice(migrationThreshold, sqrtStartPrice *big.Int, curve []dbc.LiquidityDistributionParameters) (*big.Int, error) {
	if len(curve) == 0 {
		return nil, fmt.Errorf("curve is empty: %w", dbc.ErrInvalidPriceDomain)
	}
	nextSqrtPrice := new(big.Int).Set(sqrtStartPrice)
	amountLeft := new(big.Int).Set(migrationThreshold)
	if amountLeft.Sign() == 0 {
		return nextSqrtPrice, nil
	}

	for i := 0; i < len(curve); i++ {
		upper := curve[i].SqrtPrice.BigInt()
		liquidity := curve[i].Liquidity.BigInt()
		if upper.Cmp(nextSqrtPrice) <= 0 {
			return nil, fmt.Errorf("segment %d upper bound %s not above %s: %w", i, upper, nextSqrtPrice, dbc.ErrInvalidPriceDomain)
		}
		if liquidity.Sign() != 0 {
			maxAmount, err := mathutil.GetDeltaAmountQuoteUnsigned(nextSqrtPrice, upper, liquidity, dbc.RoundingUp)
			if err != nil {
				return nil, err
			}
			if maxAmount.Cmp(amountLeft) >= 0 {
				return mathutil.GetNextSqrtPriceFromInput(nextSqrtPrice, liquidity, amountLeft, false)
			}
			amountLeft.Sub(amountLeft, maxAmount)
		}
		nextSqrtPrice = upper
	}
	return nil, fmt.Errorf("%s quote left after the last segment: %w", amountLeft, dbc.ErrInsufficientCurveLiquidity)
}

// GetBaseTokenForSwap is the base amount, rounded up, released by walking
// the curve from sqrtStartPrice to sqrtMigrationPrice.
func GetBaseTokenForSwap(sqrtStartPrice, sqrtMigrationPrice *big.Int, curve []dbc.LiquidityDistributionParameters) (*big.Int, error) {
	total := big.NewInt(0)
	lower := sqrtStartPrice
	for i := 0; i < len(curve); i++ {
		upper := curve[i].SqrtPrice.BigInt()
		if upper.Cmp(sqrtMigrationPrice) >= 0 {
			delta, err := mathutil.GetDeltaAmountBaseUnsigned(lower, sqrtMigrationPrice, curve[i].Liquidity.BigInt(), dbc.RoundingUp)
			if err != nil {
				return nil, err
			}
			total.Add(total, delta)
			break
		}
		delta, err := mathutil.GetDeltaAmountBaseUnsigned(lower, upper, curve[i].Liquidity.BigInt(), dbc.RoundingUp)
		if err != nil {
			return nil, err
		}
		total.Add(total, delta)
		lower = upper
	}
	return total, nil
}

// GetTotalBaseCapacity is the base amount released by draining the whole
// curve.
func GetTotalBaseCapacity(sqrtStartPrice *big.Int, curve []dbc.LiquidityDistributionParameters) (*big.Int, error) {
	return GetBaseTokenForSwap(sqrtStartPrice, dbc.MaxSqrtPrice, curve)
}

// GetTotalQuoteCapacity is the quote amount, rounded up, the whole curve can
// absorb.
func GetTotalQuoteCapacity(sqrtStartPrice *big.Int, curve []dbc.LiquidityDistributionParameters) (*big.Int, error) {
	total := big.NewInt(0)
	lower := sqrtStartPrice
	for i := 0; i < len(curve); i++ {
		upper := curve[i].SqrtPrice.BigInt()
		delta, err := mathutil.GetDeltaAmountQuoteUnsigned(lower, upper, curve[i].Liquidity.BigInt(), dbc.RoundingUp)
		if err != nil {
			return nil, err
		}
		total.Add(total, delta)
		lower = upper
	}
	return total, nil
}

// GetSwapAmountWithBuffer adds bufferPercentage headroom to swapBaseAmount,
// capped at what the curve can release.
func GetSwapAmountWithBuffer(swapBaseAmount, sqrtStartPrice *big.Int, curve []dbc.LiquidityDistributionParameters, bufferPercentage uint8) (*big.Int, error) {
	buffer := new(big.Int).Mul(swapBaseAmount, big.NewInt(int64(bufferPercentage)))
	buffer.Div(buffer, big.NewInt(100))
	swapAmountBuffer := new(big.Int).Add(swapBaseAmount, buffer)

	maxBaseAmountOnCurve, err := GetTotalBaseCapacity(sqrtStartPrice, curve)
	if err != nil {
		return nil, err
	}
	if swapAmountBuffer.Cmp(maxBaseAmountOnCurve) > 0 {
		return maxBaseAmountOnCurve, nil
	}
	return swapAmountBuffer, nil
}

// GetConfigMigrationThreshold walks a stored config's threshold.
func GetConfigMigrationThreshold(config dbc.ConfigParameters) (dbc.MigrationThreshold, error) {
	quoteAmount := new(big.Int).SetUint64(config.MigrationQuoteThreshold)
	sqrtPrice, err := GetMigrationThresholdPrice(quoteAmount, config.SqrtStartPrice.BigInt(), config.Curve)
	if err != nil {
		return dbc.MigrationThreshold{}, err
	}
	return dbc.MigrationThreshold{QuoteAmount: quoteAmount, SqrtPrice: sqrtPrice}, nil
}
