package helpers

import (
	"fmt"
	"math/big"

	dbc "github.com/krazyTry/meteora-curve/dynamic_bonding_curve/shared"
)

// GetSupplyBreakdown re-derives where the supply of a curve goes: the
// buffered swap amount up to the price the threshold walks to, the
// migration reserve at that price, vesting and leftover.
func GetSupplyBreakdown(
	migrationQuoteThreshold *big.Int,
	sqrtStartPrice *big.Int,
	curve []dbc.LiquidityDistributionParameters,
	lockedVesting dbc.LockedVestingParameters,
	migrationOption dbc.MigrationOption,
	leftover *big.Int,
	migrationFeePercent uint8,
	bufferPercentage uint8,
) (dbc.SupplyBreakdown, error) {
	sqrtMigrationPrice, err := GetMigrationThresholdPrice(migrationQuoteThreshold, sqrtStartPrice, curve)
	if err != nil {
		return dbc.SupplyBreakdown{}, err
	}
	swapBaseAmount, err := GetBaseTokenForSwap(sqrtStartPrice, sqrtMigrationPrice, curve)
	if err != nil {
		return dbc.SupplyBreakdown{}, err
	}
	swapBaseAmountBuffer, err := GetSwapAmountWithBuffer(swapBaseAmount, sqrtStartPrice, curve, bufferPercentage)
	if err != nil {
		return dbc.SupplyBreakdown{}, err
	}
	migrationQuoteAmount := getMigrationQuoteAmountLamports(migrationQuoteThreshold, migrationFeePercent)
	migrationBaseAmount, err := GetMigrationBaseToken(migrationQuoteAmount, sqrtMigrationPrice, migrationOption)
	if err != nil {
		return dbc.SupplyBreakdown{}, err
	}

	return dbc.SupplyBreakdown{
		SwapBaseAmount:       swapBaseAmount,
		SwapBaseAmountBuffer: swapBaseAmountBuffer,
		MigrationBaseAmount:  migrationBaseAmount,
		VestingAmount:        GetTotalVestingAmount(lockedVesting),
		LeftoverAmount:       new(big.Int).Set(leftover),
		MigrationSqrtPrice:   sqrtMigrationPrice,
	}, nil
}

// GetTotalSupplyFromCurve is the minimum base supply, buffer included, the
// curve needs.
func GetTotalSupplyFromCurve(
	migrationQuoteThreshold *big.Int,
	sqrtStartPrice *big.Int,
	curve []dbc.LiquidityDistributionParameters,
	lockedVesting dbc.LockedVestingParameters,
	migrationOption dbc.MigrationOption,
	leftover *big.Int,
	migrationFeePercent uint8,
	bufferPercentage uint8,
) (*big.Int, error) {
	breakdown, err := GetSupplyBreakdown(migrationQuoteThreshold, sqrtStartPrice, curve, lockedVesting, migrationOption, leftover, migrationFeePercent, bufferPercentage)
	if err != nil {
		return nil, err
	}
	return breakdown.Total(), nil
}

// ReconstructSupply walks a stored config.
func ReconstructSupply(config dbc.ConfigParameters) (dbc.SupplyBreakdown, error) {
	return GetSupplyBreakdown(
		new(big.Int).SetUint64(config.MigrationQuoteThreshold),
		config.SqrtStartPrice.BigInt(),
		config.Curve,
		config.LockedVesting,
		dbc.MigrationOption(config.MigrationOption),
		new(big.Int).SetUint64(config.Leftover),
		config.MigrationFee.FeePercentage,
		config.SwapBufferPercentage,
	)
}

// CheckSupply fails when the breakdown needs more than totalSupply plus
// leftover. Needing less is fine; the difference stays with the leftover.
func CheckSupply(breakdown dbc.SupplyBreakdown, totalSupply, leftover *big.Int) error {
	excess := new(big.Int).Sub(breakdown.Total(), totalSupply)
	if excess.Cmp(leftover) > 0 {
		return fmt.Errorf("curve needs %s over a supply of %s, leftover %s: %w", excess, totalSupply, leftover, dbc.ErrCurveSupplyMismatch)
	}
	return nil
}
