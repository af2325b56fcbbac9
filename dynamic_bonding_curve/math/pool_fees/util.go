package pool_fees

import (
	"errors"
	"math/big"

	dbc "github.com/krazyTry/meteora-curve/dynamic_bonding_curve/shared"
)

func sub(a, b *big.Int) (*big.Int, error) {
	if b.Cmp(a) > 0 {
		return nil, errors.New("sub: underflow")
	}
	return new(big.Int).Sub(a, b), nil
}

// pow raises a Q64 base to an integer power, keeping Q64 scaling.
func pow(base *big.Int, exponent uint64) *big.Int {
	one := new(big.Int).Lsh(big.NewInt(1), dbc.Resolution)
	result := new(big.Int).Set(one)
	currentBase := new(big.Int).Set(base)
	for exponent > 0 {
		if exponent&1 == 1 {
			result.Mul(result, currentBase).Rsh(result, dbc.Resolution)
		}
		exponent >>= 1
		if exponent > 0 {
			currentBase.Mul(currentBase, currentBase).Rsh(currentBase, dbc.Resolution)
		}
	}
	return result
}

func validateFeeScheduler(numberOfPeriod uint16, periodFrequency, reductionFactor, cliffFeeNumerator *big.Int, baseFeeMode dbc.BaseFeeMode) bool {
	if periodFrequency.Sign() != 0 || numberOfPeriod != 0 || reductionFactor.Sign() != 0 {
		if numberOfPeriod == 0 || periodFrequency.Sign() == 0 || reductionFactor.Sign() == 0 {
			return false
		}
	}
	minFeeNumerator, err := GetFeeSchedulerMinBaseFeeNumerator(cliffFeeNumerator, numberOfPeriod, reductionFactor, baseFeeMode)
	if err != nil {
		return false
	}
	maxFeeNumerator := GetFeeSchedulerMaxBaseFeeNumerator(cliffFeeNumerator)
	if minFeeNumerator.Cmp(big.NewInt(dbc.MinFeeNumerator)) < 0 || maxFeeNumerator.Cmp(big.NewInt(dbc.MaxFeeNumerator)) > 0 {
		return false
	}
	return true
}
