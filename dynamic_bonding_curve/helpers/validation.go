package helpers

import (
	"errors"
	"fmt"
	"math/big"

	dbc "github.com/krazyTry/meteora-curve/dynamic_bonding_curve/shared"
)

// ValidateSqrtPrice checks MinSqrtPrice <= sqrtPrice <= MaxSqrtPrice.
func ValidateSqrtPrice(sqrtPrice *big.Int) error {
	if sqrtPrice.Cmp(dbc.MinSqrtPrice) < 0 || sqrtPrice.Cmp(dbc.MaxSqrtPrice) > 0 {
		return fmt.Errorf("sqrt price %s outside [%s, %s]: %w", sqrtPrice, dbc.MinSqrtPrice, dbc.MaxSqrtPrice, dbc.ErrInvalidPriceDomain)
	}
	return nil
}

// ValidateCurve checks segment count and strictly increasing bounds inside
// the price domain. Only the last segment may be empty.
func ValidateCurve(curve []dbc.LiquidityDistributionParameters, sqrtStartPrice *big.Int) error {
	if len(curve) == 0 || len(curve) > dbc.MaxCurvePoint {
		return fmt.Errorf("curve has %d segments: %w", len(curve), dbc.ErrInvalidPriceDomain)
	}
	if err := ValidateSqrtPrice(sqrtStartPrice); err != nil {
		return err
	}
	prev := sqrtStartPrice
	for i, point := range curve {
		upper := point.SqrtPrice.BigInt()
		if upper.Cmp(prev) <= 0 {
			return fmt.Errorf("segment %d bound %s not above %s: %w", i, upper, prev, dbc.ErrInvalidPriceDomain)
		}
		if err := ValidateSqrtPrice(upper); err != nil {
			return err
		}
		if point.Liquidity.BigInt().Sign() == 0 && i != len(curve)-1 {
			return fmt.Errorf("segment %d: %w", i, dbc.ErrLiquidityZero)
		}
		prev = upper
	}
	return nil
}

func ValidateTokenDecimals(tokenDecimal dbc.TokenDecimal) bool {
	return tokenDecimal >= dbc.TokenDecimalSix && tokenDecimal <= dbc.TokenDecimalNine
}

func ValidateCollectFeeMode(collectFeeMode dbc.CollectFeeMode) bool {
	return collectFeeMode == dbc.CollectFeeModeQuoteToken || collectFeeMode == dbc.CollectFeeModeOutputToken
}

func ValidateActivationType(activationType dbc.ActivationType) bool {
	return activationType == dbc.ActivationTypeSlot || activationType == dbc.ActivationTypeTimestamp
}

func ValidateMigrationOption(migrationOption dbc.MigrationOption) error {
	if migrationOption != dbc.MigrationOptionMetDamm && migrationOption != dbc.MigrationOptionMetDammV2 {
		return fmt.Errorf("migration option %d: %w", migrationOption, dbc.ErrInvalidMigrationOption)
	}
	return nil
}

func ValidateMigrationFee(migrationFee dbc.MigrationFee) error {
	if migrationFee.FeePercentage > dbc.MaxMigrationFeePercentage {
		return errors.New("migration fee percentage out of range")
	}
	if migrationFee.CreatorFeePercentage > 100 {
		return errors.New("migration creator fee percentage out of range")
	}
	return nil
}

// ValidateBuildCurveBaseParams rejects market parameters no curve can be
// built from.
func ValidateBuildCurveBaseParams(params dbc.BuildCurveBaseParams) error {
	if params.TotalTokenSupply == 0 {
		return errors.New("total token supply must be greater than zero")
	}
	if !ValidateTokenDecimals(params.TokenBaseDecimal) {
		return errors.New("base token decimal must be between 6 and 9")
	}
	if !ValidateTokenDecimals(params.TokenQuoteDecimal) {
		return errors.New("quote token decimal must be between 6 and 9")
	}
	if !ValidateCollectFeeMode(params.CollectFeeMode) {
		return errors.New("invalid collect fee mode")
	}
	if !ValidateActivationType(params.ActivationType) {
		return errors.New("invalid activation type")
	}
	if err := ValidateMigrationOption(params.MigrationOption); err != nil {
		return err
	}
	return ValidateMigrationFee(params.MigrationFee)
}

// ValidateConfigParameters checks a synthesized or decoded config: price
// domain, curve shape, a reachable migration price and a supply the curve
// can honour.
func ValidateConfigParameters(config dbc.ConfigParameters) error {
	if err := ValidateMigrationOption(dbc.MigrationOption(config.MigrationOption)); err != nil {
		return err
	}
	if err := ValidateMigrationFee(config.MigrationFee); err != nil {
		return err
	}
	if !ValidateTokenDecimals(dbc.TokenDecimal(config.TokenDecimal)) {
		return errors.New("token decimal must be between 6 and 9")
	}
	if config.MigrationQuoteThreshold == 0 {
		return errors.New("migration quote threshold must be greater than 0")
	}
	if err := ValidateCurve(config.Curve, config.SqrtStartPrice.BigInt()); err != nil {
		return err
	}
	breakdown, err := ReconstructSupply(config)
	if err != nil {
		return err
	}
	if breakdown.MigrationSqrtPrice.Cmp(dbc.MaxSqrtPrice) >= 0 {
		return fmt.Errorf("migration sqrt price reaches the maximum: %w", dbc.ErrInvalidPriceDomain)
	}
	if !IsDefaultLockedVesting(config.LockedVesting) && (config.LockedVesting.Frequency == 0 || GetTotalVestingAmount(config.LockedVesting).Sign() == 0) {
		return errors.New("invalid vesting parameters")
	}
	if config.TokenSupply.PreMigrationTokenSupply != 0 {
		return CheckSupply(breakdown, new(big.Int).SetUint64(config.TokenSupply.PreMigrationTokenSupply), new(big.Int).SetUint64(config.Leftover))
	}
	return nil
}
