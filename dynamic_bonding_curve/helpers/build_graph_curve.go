package helpers

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/krazyTry/meteora-curve/decimal_math"
	dbc "github.com/krazyTry/meteora-curve/dynamic_bonding_curve/shared"
	"github.com/shopspring/decimal"
)

const (
	// sumFactorPrecision is the decimal places kept on each term of the
	// graph weighted sum. Terms are of the order of 1/sqrtPrice.
	sumFactorPrecision = 60

	// boundaryPrecision is the decimal places kept while compounding the
	// geometric ratio between boundaries.
	boundaryPrecision = 40
)

// BuildCurveWithConvexity builds a MaxCurvePoint-segment geometric curve
// between the initial and migration market caps. Segment i holds
// L1 * Convexity^i liquidity, where L1 is solved so the swap phase and the
// migration reserve together consume the supply net of vesting and leftover.
// The migration quote threshold is derived from the curve.
func BuildCurveWithConvexity(params dbc.BuildCurveWithConvexityParams) (dbc.ConfigParameters, error) {
	in, err := prepareCurveInputs(params.BuildCurveBaseParams)
	if err != nil {
		return dbc.ConfigParameters{}, err
	}
	if params.Convexity.Sign() <= 0 {
		return dbc.ConfigParameters{}, fmt.Errorf("convexity %s must be positive", params.Convexity)
	}
	if params.InitialMarketCap.Sign() <= 0 || params.MigrationMarketCap.LessThanOrEqual(params.InitialMarketCap) {
		return dbc.ConfigParameters{}, fmt.Errorf("market caps %s -> %s must be positive and increasing: %w", params.InitialMarketCap, params.MigrationMarketCap, dbc.ErrInvalidPriceDomain)
	}

	pMin, err := GetSqrtPriceFromMarketCap(params.InitialMarketCap, params.TotalTokenSupply, params.TokenBaseDecimal, params.TokenQuoteDecimal)
	if err != nil {
		return dbc.ConfigParameters{}, err
	}
	pMax, err := GetSqrtPriceFromMarketCap(params.MigrationMarketCap, params.TotalTokenSupply, params.TokenBaseDecimal, params.TokenQuoteDecimal)
	if err != nil {
		return dbc.ConfigParameters{}, err
	}

	sqrtPrices, err := GetGraphSqrtPrices(pMin, pMax, dbc.MaxCurvePoint)
	if err != nil {
		return dbc.ConfigParameters{}, err
	}

	totalSwapAndMigrationAmount := new(big.Int).Sub(in.totalSupply, in.totalVesting)
	totalSwapAndMigrationAmount.Sub(totalSwapAndMigrationAmount, in.totalLeftover)
	if totalSwapAndMigrationAmount.Sign() <= 0 {
		return dbc.ConfigParameters{}, fmt.Errorf("vesting %s and leftover %s use the whole supply %s: %w", in.totalVesting, in.totalLeftover, in.totalSupply, dbc.ErrCurveSupplyMismatch)
	}

	sumFactor, err := GetGraphSumFactor(sqrtPrices, params.Convexity, params.MigrationFee.FeePercentage)
	if err != nil {
		return dbc.ConfigParameters{}, err
	}
	l1 := decimal.NewFromBigInt(totalSwapAndMigrationAmount, 0).DivRound(sumFactor, boundaryPrecision)

	curve := make([]dbc.LiquidityDistributionParameters, 0, len(sqrtPrices)-1)
	for i := 0; i < len(sqrtPrices)-1; i++ {
		liquidity := FromDecimalToBig(l1.Mul(decimal_math.PowInt(params.Convexity, i)))
		point, err := newLiquidityDistribution(sqrtPrices[i+1], liquidity)
		if err != nil {
			return dbc.ConfigParameters{}, err
		}
		curve = append(curve, point)
	}

	swapBaseAmount, err := GetBaseTokenForSwap(pMin, pMax, curve)
	if err != nil {
		return dbc.ConfigParameters{}, err
	}
	swapBaseAmountBuffer, err := GetSwapAmountWithBuffer(swapBaseAmount, pMin, curve, in.bufferPercentage)
	if err != nil {
		return dbc.ConfigParameters{}, err
	}

	migrationAmount := new(big.Int).Sub(totalSwapAndMigrationAmount, swapBaseAmountBuffer)
	if migrationAmount.Sign() <= 0 {
		return dbc.ConfigParameters{}, fmt.Errorf("swap phase %s leaves no migration reserve: %w", swapBaseAmountBuffer, dbc.ErrCurveSupplyMismatch)
	}
	migrationQuoteAmount := new(big.Int).Mul(migrationAmount, new(big.Int).Mul(pMax, pMax))
	migrationQuoteAmount.Rsh(migrationQuoteAmount, dbc.Resolution*2)
	migrationQuoteThreshold := new(big.Int).Mul(migrationQuoteAmount, big.NewInt(100))
	migrationQuoteThreshold.Div(migrationQuoteThreshold, big.NewInt(100-int64(params.MigrationFee.FeePercentage)))
	if migrationQuoteThreshold.Sign() == 0 {
		return dbc.ConfigParameters{}, errors.New("migration quote threshold rounds to zero")
	}

	breakdown, err := GetSupplyBreakdown(
		migrationQuoteThreshold,
		pMin,
		curve,
		in.lockedVesting,
		params.MigrationOption,
		in.totalLeftover,
		params.MigrationFee.FeePercentage,
		in.bufferPercentage,
	)
	if err != nil {
		return dbc.ConfigParameters{}, err
	}
	if err := CheckSupply(breakdown, in.totalSupply, in.totalLeftover); err != nil {
		return dbc.ConfigParameters{}, err
	}

	return newConfigParameters(params.BuildCurveBaseParams, in, migrationQuoteThreshold, pMin, breakdown.MigrationSqrtPrice, curve)
}

// GetGraphSqrtPrices returns segments+1 boundaries from pMin to pMax spaced
// by the common ratio (pMax/pMin)^(1/segments). segments must be a power of
// two. The last boundary is pMax exactly.
func GetGraphSqrtPrices(pMin, pMax *big.Int, segments int) ([]*big.Int, error) {
	if segments <= 0 || segments&(segments-1) != 0 {
		return nil, fmt.Errorf("segment count %d is not a power of two", segments)
	}
	if pMin.Sign() <= 0 || pMin.Cmp(pMax) >= 0 {
		return nil, fmt.Errorf("sqrt price range %s -> %s: %w", pMin, pMax, dbc.ErrInvalidPriceDomain)
	}
	power := 0
	for n := segments; n > 1; n >>= 1 {
		power++
	}
	ratio := decimal.NewFromBigInt(pMax, 0).DivRound(decimal.NewFromBigInt(pMin, 0), sumFactorPrecision)
	q, err := decimal_math.RootPow2(ratio, power, decimal_math.DefaultPrec)
	if err != nil {
		return nil, err
	}

	out := make([]*big.Int, 0, segments+1)
	out = append(out, new(big.Int).Set(pMin))
	current := decimal.NewFromBigInt(pMin, 0)
	for i := 1; i < segments; i++ {
		current = current.Mul(q).Truncate(boundaryPrecision)
		out = append(out, FromDecimalToBig(current))
	}
	out = append(out, new(big.Int).Set(pMax))

	for i := 1; i < len(out); i++ {
		if out[i].Cmp(out[i-1]) <= 0 {
			return nil, fmt.Errorf("boundary %d (%s) not above %s: %w", i, out[i], out[i-1], dbc.ErrInvalidPriceDomain)
		}
	}
	return out, nil
}

// GetGraphSumFactor returns
//
//	S = sum_i k^(i-1) * [ dP/(P_i*P_(i-1)) + dP*(100-fee)/100/Pmax^2 ]
//
// over consecutive boundaries, Pmax being the last one. The first term is
// the base a unit of liquidity releases on segment i; the second is the base
// the migration reserve needs for the quote it collects there.
func GetGraphSumFactor(sqrtPrices []*big.Int, k decimal.Decimal, migrationFeePercent uint8) (decimal.Decimal, error) {
	if len(sqrtPrices) < 2 {
		return decimal.Zero, fmt.Errorf("need at least two boundaries, got %d: %w", len(sqrtPrices), dbc.ErrInvalidPriceDomain)
	}
	if migrationFeePercent > dbc.MaxMigrationFeePercentage {
		return decimal.Zero, errors.New("migration fee percentage out of range")
	}
	pMax := sqrtPrices[len(sqrtPrices)-1]
	migrationDenominator := decimal.NewFromBigInt(new(big.Int).Mul(new(big.Int).Mul(pMax, pMax), big.NewInt(100)), 0)
	feeFactor := decimal.NewFromInt(100 - int64(migrationFeePercent))

	sum := decimal.Zero
	for i := 1; i < len(sqrtPrices); i++ {
		lower, upper := sqrtPrices[i-1], sqrtPrices[i]
		if lower.Sign() <= 0 || upper.Cmp(lower) <= 0 {
			return decimal.Zero, fmt.Errorf("boundary %d (%s) not above %s: %w", i, upper, lower, dbc.ErrInvalidPriceDomain)
		}
		delta := decimal.NewFromBigInt(new(big.Int).Sub(upper, lower), 0)
		swapWeight := delta.DivRound(decimal.NewFromBigInt(new(big.Int).Mul(lower, upper), 0), sumFactorPrecision)
		migrationWeight := delta.Mul(feeFactor).DivRound(migrationDenominator, sumFactorPrecision)
		sum = sum.Add(decimal_math.PowInt(k, i-1).Mul(swapWeight.Add(migrationWeight)))
	}
	return sum, nil
}
