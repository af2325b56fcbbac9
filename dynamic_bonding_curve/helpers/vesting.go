package helpers

import (
	"errors"
	"math/big"

	dbc "github.com/krazyTry/meteora-curve/dynamic_bonding_curve/shared"
)

// GetLockedVestingParams converts a whole-token vesting schedule into
// lamports. The rounding remainder of the periodic amount is added to the
// cliff unlock so the schedule releases exactly the total.
func GetLockedVestingParams(params dbc.LockedVestingParams, tokenBaseDecimal dbc.TokenDecimal) (dbc.LockedVestingParameters, error) {
	totalLockedVestingAmount := params.TotalLockedVestingAmount
	numberOfVestingPeriod := params.NumberOfVestingPeriod
	cliffUnlockAmount := params.CliffUnlockAmount
	totalVestingDuration := params.TotalVestingDuration

	if totalLockedVestingAmount == 0 {
		return dbc.LockedVestingParameters{}, nil
	}

	if totalLockedVestingAmount == cliffUnlockAmount {
		amountPerPeriod, err := lamportsU64FromUint64(1, tokenBaseDecimal)
		if err != nil {
			return dbc.LockedVestingParameters{}, err
		}
		cliffUnlockLamports, err := lamportsU64FromUint64(totalLockedVestingAmount-1, tokenBaseDecimal)
		if err != nil {
			return dbc.LockedVestingParameters{}, err
		}
		return dbc.LockedVestingParameters{
			AmountPerPeriod:                amountPerPeriod,
			CliffDurationFromMigrationTime: params.CliffDurationFromMigrationTime,
			Frequency:                      1,
			NumberOfPeriod:                 1,
			CliffUnlockAmount:              cliffUnlockLamports,
		}, nil
	}

	if numberOfVestingPeriod == 0 {
		return dbc.LockedVestingParameters{}, errors.New("numberOfVestingPeriod must be greater than zero")
	}
	if totalVestingDuration == 0 {
		return dbc.LockedVestingParameters{}, errors.New("totalVestingDuration must be greater than zero")
	}
	if cliffUnlockAmount > totalLockedVestingAmount {
		return dbc.LockedVestingParameters{}, errors.New("cliff unlock amount cannot be greater than total locked vesting amount")
	}

	amountPerPeriod := (totalLockedVestingAmount - cliffUnlockAmount) / numberOfVestingPeriod
	remainder := totalLockedVestingAmount - (cliffUnlockAmount + amountPerPeriod*numberOfVestingPeriod)
	adjustedCliffUnlockAmount := cliffUnlockAmount + remainder

	amountPerPeriodLamports, err := lamportsU64FromUint64(amountPerPeriod, tokenBaseDecimal)
	if err != nil {
		return dbc.LockedVestingParameters{}, err
	}
	cliffUnlockLamports, err := lamportsU64FromUint64(adjustedCliffUnlockAmount, tokenBaseDecimal)
	if err != nil {
		return dbc.LockedVestingParameters{}, err
	}

	return dbc.LockedVestingParameters{
		AmountPerPeriod:                amountPerPeriodLamports,
		CliffDurationFromMigrationTime: params.CliffDurationFromMigrationTime,
		Frequency:                      totalVestingDuration / numberOfVestingPeriod,
		NumberOfPeriod:                 numberOfVestingPeriod,
		CliffUnlockAmount:              cliffUnlockLamports,
	}, nil
}

// GetTotalVestingAmount is cliff + periods * amountPerPeriod.
func GetTotalVestingAmount(lockedVesting dbc.LockedVestingParameters) *big.Int {
	total := new(big.Int).Mul(
		new(big.Int).SetUint64(lockedVesting.AmountPerPeriod),
		new(big.Int).SetUint64(lockedVesting.NumberOfPeriod),
	)
	return total.Add(total, new(big.Int).SetUint64(lockedVesting.CliffUnlockAmount))
}

func IsDefaultLockedVesting(lockedVesting dbc.LockedVestingParameters) bool {
	return lockedVesting == dbc.LockedVestingParameters{}
}

// GetUnlockedVestingAmount is the part of the schedule released
// elapsedSinceMigration after migration.
func GetUnlockedVestingAmount(lockedVesting dbc.LockedVestingParameters, elapsedSinceMigration uint64) *big.Int {
	if IsDefaultLockedVesting(lockedVesting) || elapsedSinceMigration < lockedVesting.CliffDurationFromMigrationTime {
		return big.NewInt(0)
	}
	unlocked := new(big.Int).SetUint64(lockedVesting.CliffUnlockAmount)
	if lockedVesting.Frequency == 0 {
		return unlocked
	}
	periods := (elapsedSinceMigration - lockedVesting.CliffDurationFromMigrationTime) / lockedVesting.Frequency
	if periods > lockedVesting.NumberOfPeriod {
		periods = lockedVesting.NumberOfPeriod
	}
	return unlocked.Add(unlocked, new(big.Int).Mul(new(big.Int).SetUint64(periods), new(big.Int).SetUint64(lockedVesting.AmountPerPeriod)))
}
