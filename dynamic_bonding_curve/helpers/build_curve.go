package helpers

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/krazyTry/meteora-curve/decimal_math"
	mathutil "github.com/krazyTry/meteora-curve/dynamic_bonding_curve/math"
	dbc "github.com/krazyTry/meteora-curve/dynamic_bonding_curve/shared"
	"github.com/krazyTry/meteora-curve/u128"
	"github.com/shopspring/decimal"
)

// BuildCurve builds a single-segment curve that sells the swap share of the
// supply for exactly MigrationQuoteThreshold quote, followed by a terminal
// segment up to MaxSqrtPrice holding whatever supply is left.
func BuildCurve(params dbc.BuildCurveParams) (dbc.ConfigParameters, error) {
	if params.PercentageSupplyOnMigration.Sign() <= 0 || params.PercentageSupplyOnMigration.GreaterThanOrEqual(decimal.NewFromInt(100)) {
		return dbc.ConfigParameters{}, fmt.Errorf("percentage supply on migration %s must be in (0, 100)", params.PercentageSupplyOnMigration)
	}
	if params.MigrationQuoteThreshold.Sign() <= 0 {
		return dbc.ConfigParameters{}, errors.New("migration quote threshold must be greater than zero")
	}
	return buildCurveInternal(params.BuildCurveBaseParams, params.PercentageSupplyOnMigration, params.MigrationQuoteThreshold)
}

// BuildCurveWithMarketCap derives the migration share of the supply from the
// initial and migration market caps, then builds as BuildCurve.
func BuildCurveWithMarketCap(params dbc.BuildCurveWithMarketCapParams) (dbc.ConfigParameters, error) {
	if err := ValidateBuildCurveBaseParams(params.BuildCurveBaseParams); err != nil {
		return dbc.ConfigParameters{}, err
	}
	if params.InitialMarketCap.Sign() <= 0 || params.MigrationMarketCap.LessThanOrEqual(params.InitialMarketCap) {
		return dbc.ConfigParameters{}, fmt.Errorf("market caps %s -> %s must be positive and increasing: %w", params.InitialMarketCap, params.MigrationMarketCap, dbc.ErrInvalidPriceDomain)
	}

	lockedVesting, err := GetLockedVestingParams(params.LockedVestingParams, params.TokenBaseDecimal)
	if err != nil {
		return dbc.ConfigParameters{}, err
	}
	totalLeftover, err := lamportsFromUint64(params.Leftover, params.TokenBaseDecimal)
	if err != nil {
		return dbc.ConfigParameters{}, err
	}
	totalSupply, err := lamportsFromUint64(params.TotalTokenSupply, params.TokenBaseDecimal)
	if err != nil {
		return dbc.ConfigParameters{}, err
	}

	var percentageSupplyOnMigration decimal.Decimal
	if params.MigrationFee.FeePercentage > 0 {
		percentageSupplyOnMigration, err = CalculateAdjustedPercentageSupplyOnMigration(
			params.InitialMarketCap,
			params.MigrationMarketCap,
			params.MigrationFee,
			lockedVesting,
			totalLeftover,
			totalSupply,
		)
	} else {
		percentageSupplyOnMigration, err = GetPercentageSupplyOnMigration(
			params.InitialMarketCap,
			params.MigrationMarketCap,
			lockedVesting,
			totalLeftover,
			totalSupply,
		)
	}
	if err != nil {
		return dbc.ConfigParameters{}, err
	}

	migrationQuoteAmount := GetMigrationQuoteAmount(params.MigrationMarketCap, percentageSupplyOnMigration)
	migrationQuoteThreshold := GetMigrationQuoteThresholdFromMigrationQuoteAmount(
		migrationQuoteAmount,
		decimal.NewFromInt(int64(params.MigrationFee.FeePercentage)),
	)

	return BuildCurve(dbc.BuildCurveParams{
		BuildCurveBaseParams:        params.BuildCurveBaseParams,
		PercentageSupplyOnMigration: percentageSupplyOnMigration,
		MigrationQuoteThreshold:     migrationQuoteThreshold,
	})
}

// GetPercentageSupplyOnMigration is the migration share of the supply that
// makes a single-segment curve start at initialMarketCap and migrate at
// migrationMarketCap, with no migration fee.
func GetPercentageSupplyOnMigration(
	initialMarketCap decimal.Decimal,
	migrationMarketCap decimal.Decimal,
	lockedVesting dbc.LockedVestingParameters,
	totalLeftover *big.Int,
	totalTokenSupply *big.Int,
) (decimal.Decimal, error) {
	sqrtRatio, err := decimal_math.Sqrt(initialMarketCap.DivRound(migrationMarketCap, pricePrecision), decimal_math.DefaultPrec)
	if err != nil {
		return decimal.Zero, err
	}

	vestingPercentage, leftoverPercentage := supplyPercentages(lockedVesting, totalLeftover, totalTokenSupply)

	numerator := decimal.NewFromInt(100).
		Mul(sqrtRatio).
		Sub(vestingPercentage.Add(leftoverPercentage).Mul(sqrtRatio))
	denominator := decimal.NewFromInt(1).Add(sqrtRatio)
	return numerator.DivRound(denominator, pricePrecision), nil
}

// CalculateAdjustedPercentageSupplyOnMigration is GetPercentageSupplyOnMigration
// for a curve whose migration fee reduces the quote reaching the migrated
// pool.
func CalculateAdjustedPercentageSupplyOnMigration(
	initialMarketCap decimal.Decimal,
	migrationMarketCap decimal.Decimal,
	migrationFee dbc.MigrationFee,
	lockedVesting dbc.LockedVestingParameters,
	totalLeftover *big.Int,
	totalTokenSupply *big.Int,
) (decimal.Decimal, error) {
	f := decimal.NewFromInt(int64(migrationFee.FeePercentage)).Div(decimal.NewFromInt(100))

	v, l := supplyPercentages(lockedVesting, totalLeftover, totalTokenSupply)

	requiredRatio, err := decimal_math.Sqrt(initialMarketCap.DivRound(migrationMarketCap, pricePrecision), decimal_math.DefaultPrec)
	if err != nil {
		return decimal.Zero, err
	}

	oneMinusF := decimal.NewFromInt(1).Sub(f)
	availablePercentage := decimal.NewFromInt(100).Sub(v).Sub(l)
	numerator := requiredRatio.Mul(oneMinusF).Mul(availablePercentage)
	denominator := decimal.NewFromInt(1).Add(requiredRatio.Mul(oneMinusF))
	return numerator.DivRound(denominator, pricePrecision), nil
}

func supplyPercentages(lockedVesting dbc.LockedVestingParameters, totalLeftover, totalTokenSupply *big.Int) (decimal.Decimal, decimal.Decimal) {
	supply := decimal.NewFromBigInt(totalTokenSupply, 0)
	vesting := decimal.NewFromBigInt(GetTotalVestingAmount(lockedVesting), 0).
		Mul(decimal.NewFromInt(100)).
		DivRound(supply, pricePrecision)
	leftover := decimal.NewFromBigInt(totalLeftover, 0).
		Mul(decimal.NewFromInt(100)).
		DivRound(supply, pricePrecision)
	return vesting, leftover
}

// GetFirstCurve solves the single segment (sqrtStartPrice, migrationSqrtPrice]
// that releases swapAmount base for migrationQuoteThreshold quote. The start
// price is rounded up so the segment never promises more base than
// swapAmount.
func GetFirstCurve(migrationSqrtPrice, migrationBaseAmount, swapAmount, migrationQuoteThreshold *big.Int, migrationFeePercent uint8) (*big.Int, []dbc.LiquidityDistributionParameters, error) {
	denominator := new(big.Int).Mul(swapAmount, big.NewInt(100-int64(migrationFeePercent)))
	if denominator.Sign() <= 0 {
		return nil, nil, errors.New("swap amount denominator must be positive")
	}
	sqrtStartPrice, err := mathutil.MulDiv(
		new(big.Int).Mul(migrationSqrtPrice, migrationBaseAmount),
		big.NewInt(100),
		denominator,
		dbc.RoundingUp,
	)
	if err != nil {
		return nil, nil, err
	}
	if sqrtStartPrice.Cmp(migrationSqrtPrice) >= 0 {
		return nil, nil, fmt.Errorf("start sqrt price %s not below migration sqrt price %s: %w", sqrtStartPrice, migrationSqrtPrice, dbc.ErrInvalidPriceDomain)
	}
	if err := ValidateSqrtPrice(sqrtStartPrice); err != nil {
		return nil, nil, err
	}

	liquidity, err := GetLiquidity(swapAmount, migrationQuoteThreshold, sqrtStartPrice, migrationSqrtPrice)
	if err != nil {
		return nil, nil, err
	}
	// The threshold must fit in the segment or the walk spills past the
	// migration price.
	capacity, err := mathutil.GetDeltaAmountQuoteUnsigned(sqrtStartPrice, migrationSqrtPrice, liquidity, dbc.RoundingUp)
	if err != nil {
		return nil, nil, err
	}
	if capacity.Cmp(migrationQuoteThreshold) < 0 {
		liquidity, err = mathutil.GetInitialLiquidityFromDeltaQuote(migrationQuoteThreshold, sqrtStartPrice, migrationSqrtPrice)
		if err != nil {
			return nil, nil, err
		}
	}

	point, err := newLiquidityDistribution(migrationSqrtPrice, liquidity)
	if err != nil {
		return nil, nil, err
	}
	return sqrtStartPrice, []dbc.LiquidityDistributionParameters{point}, nil
}

// GetLiquidity is the smaller of the liquidities implied by the base and
// quote amounts on [minSqrtPrice, maxSqrtPrice].
func GetLiquidity(baseAmount, quoteAmount, minSqrtPrice, maxSqrtPrice *big.Int) (*big.Int, error) {
	liquidityFromBase, err := mathutil.GetInitialLiquidityFromDeltaBase(baseAmount, maxSqrtPrice, minSqrtPrice)
	if err != nil {
		return nil, err
	}
	liquidityFromQuote, err := mathutil.GetInitialLiquidityFromDeltaQuote(quoteAmount, minSqrtPrice, maxSqrtPrice)
	if err != nil {
		return nil, err
	}
	if liquidityFromBase.Cmp(liquidityFromQuote) < 0 {
		return liquidityFromBase, nil
	}
	return liquidityFromQuote, nil
}

func newLiquidityDistribution(sqrtPrice, liquidity *big.Int) (dbc.LiquidityDistributionParameters, error) {
	sp, err := u128.FromBig(sqrtPrice)
	if err != nil {
		return dbc.LiquidityDistributionParameters{}, fmt.Errorf("sqrt price %s: %w", sqrtPrice, err)
	}
	l, err := u128.FromBig(liquidity)
	if err != nil {
		return dbc.LiquidityDistributionParameters{}, fmt.Errorf("liquidity %s: %w", liquidity, err)
	}
	return dbc.LiquidityDistributionParameters{SqrtPrice: sp, Liquidity: l}, nil
}

// curveInputs is what every curve design derives from BuildCurveBaseParams
// before solving for its segments.
type curveInputs struct {
	baseFee          dbc.BaseFeeParameters
	lockedVesting    dbc.LockedVestingParameters
	totalSupply      *big.Int
	totalLeftover    *big.Int
	totalVesting     *big.Int
	bufferPercentage uint8
}

func prepareCurveInputs(params dbc.BuildCurveBaseParams) (curveInputs, error) {
	if err := ValidateBuildCurveBaseParams(params); err != nil {
		return curveInputs{}, err
	}
	baseFee, err := GetBaseFeeParams(params.BaseFeeParams)
	if err != nil {
		return curveInputs{}, err
	}
	lockedVesting, err := GetLockedVestingParams(params.LockedVestingParams, params.TokenBaseDecimal)
	if err != nil {
		return curveInputs{}, err
	}
	totalSupply, err := lamportsFromUint64(params.TotalTokenSupply, params.TokenBaseDecimal)
	if err != nil {
		return curveInputs{}, err
	}
	totalLeftover, err := lamportsFromUint64(params.Leftover, params.TokenBaseDecimal)
	if err != nil {
		return curveInputs{}, err
	}
	return curveInputs{
		baseFee:          baseFee,
		lockedVesting:    lockedVesting,
		totalSupply:      totalSupply,
		totalLeftover:    totalLeftover,
		totalVesting:     GetTotalVestingAmount(lockedVesting),
		bufferPercentage: swapBufferPercentage(params.SwapBufferPercentage),
	}, nil
}

func newConfigParameters(params dbc.BuildCurveBaseParams, in curveInputs, migrationQuoteThreshold, sqrtStartPrice, migrationSqrtPrice *big.Int, curve []dbc.LiquidityDistributionParameters) (dbc.ConfigParameters, error) {
	thresholdU64, err := BigIntToU64(migrationQuoteThreshold)
	if err != nil {
		return dbc.ConfigParameters{}, fmt.Errorf("migration quote threshold: %w", err)
	}
	totalSupplyU64, err := BigIntToU64(in.totalSupply)
	if err != nil {
		return dbc.ConfigParameters{}, fmt.Errorf("total supply: %w", err)
	}
	leftoverU64, err := BigIntToU64(in.totalLeftover)
	if err != nil {
		return dbc.ConfigParameters{}, fmt.Errorf("leftover: %w", err)
	}
	start, err := u128.FromBig(sqrtStartPrice)
	if err != nil {
		return dbc.ConfigParameters{}, err
	}
	migration, err := u128.FromBig(migrationSqrtPrice)
	if err != nil {
		return dbc.ConfigParameters{}, err
	}

	return dbc.ConfigParameters{
		PoolFees: dbc.PoolFeeParameters{
			BaseFee: in.baseFee,
		},
		CollectFeeMode:          uint8(params.CollectFeeMode),
		MigrationOption:         uint8(params.MigrationOption),
		ActivationType:          uint8(params.ActivationType),
		TokenDecimal:            uint8(params.TokenBaseDecimal),
		MigrationQuoteThreshold: thresholdU64,
		SqrtStartPrice:          start,
		MigrationSqrtPrice:      migration,
		LockedVesting:           in.lockedVesting,
		MigrationFee:            params.MigrationFee,
		TokenSupply: dbc.TokenSupplyParams{
			PreMigrationTokenSupply:  totalSupplyU64,
			PostMigrationTokenSupply: totalSupplyU64,
		},
		Leftover:             leftoverU64,
		SwapBufferPercentage: in.bufferPercentage,
		Curve:                curve,
	}, nil
}

func buildCurveInternal(
	params dbc.BuildCurveBaseParams,
	percentageSupplyOnMigration decimal.Decimal,
	migrationQuoteThreshold decimal.Decimal,
) (dbc.ConfigParameters, error) {
	in, err := prepareCurveInputs(params)
	if err != nil {
		return dbc.ConfigParameters{}, err
	}

	migrationBaseSupply := decimal.NewFromUint64(params.TotalTokenSupply).
		Mul(percentageSupplyOnMigration).
		Div(decimal.NewFromInt(100))

	migrationQuoteAmount := GetMigrationQuoteAmountFromMigrationQuoteThreshold(
		migrationQuoteThreshold,
		params.MigrationFee.FeePercentage,
	)
	migrationPrice := migrationQuoteAmount.DivRound(migrationBaseSupply, pricePrecision)

	migrationQuoteThresholdInLamport, err := ConvertToLamports(migrationQuoteThreshold, params.TokenQuoteDecimal)
	if err != nil {
		return dbc.ConfigParameters{}, err
	}

	migrateSqrtPrice, err := GetSqrtPriceFromPrice(migrationPrice, params.TokenBaseDecimal, params.TokenQuoteDecimal)
	if err != nil {
		return dbc.ConfigParameters{}, err
	}

	migrationQuoteAmountInLamport, err := ConvertToLamports(migrationQuoteAmount, params.TokenQuoteDecimal)
	if err != nil {
		return dbc.ConfigParameters{}, err
	}
	migrationBaseAmount, err := GetMigrationBaseToken(migrationQuoteAmountInLamport, migrateSqrtPrice, params.MigrationOption)
	if err != nil {
		return dbc.ConfigParameters{}, err
	}

	swapAmount := new(big.Int).Sub(in.totalSupply, migrationBaseAmount)
	swapAmount.Sub(swapAmount, in.totalVesting)
	swapAmount.Sub(swapAmount, in.totalLeftover)
	if swapAmount.Sign() <= 0 {
		return dbc.ConfigParameters{}, fmt.Errorf("no supply left for the swap phase (migration %s, vesting %s, leftover %s of %s): %w",
			migrationBaseAmount, in.totalVesting, in.totalLeftover, in.totalSupply, dbc.ErrCurveSupplyMismatch)
	}

	sqrtStartPrice, curve, err := GetFirstCurve(
		migrateSqrtPrice,
		migrationBaseAmount,
		swapAmount,
		migrationQuoteThresholdInLamport,
		params.MigrationFee.FeePercentage,
	)
	if err != nil {
		return dbc.ConfigParameters{}, err
	}

	breakdown, err := GetSupplyBreakdown(
		migrationQuoteThresholdInLamport,
		sqrtStartPrice,
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

	remainingAmount := new(big.Int).Sub(in.totalSupply, breakdown.Total())
	if remainingAmount.Sign() < 0 {
		remainingAmount.SetInt64(0)
	}
	lastLiquidity, err := mathutil.GetInitialLiquidityFromDeltaBase(remainingAmount, dbc.MaxSqrtPrice, migrateSqrtPrice)
	if err != nil {
		return dbc.ConfigParameters{}, err
	}
	last, err := newLiquidityDistribution(dbc.MaxSqrtPrice, lastLiquidity)
	if err != nil {
		return dbc.ConfigParameters{}, err
	}
	curve = append(curve, last)

	return newConfigParameters(params, in, migrationQuoteThresholdInLamport, sqrtStartPrice, breakdown.MigrationSqrtPrice, curve)
}
