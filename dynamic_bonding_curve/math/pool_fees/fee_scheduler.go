package pool_fees

import (
	"errors"
	"fmt"
	"math/big"

	dbc "github.com/krazyTry/meteora-curve/dynamic_bonding_curve/shared"
)

func GetFeeSchedulerMaxBaseFeeNumerator(cliffFeeNumerator *big.Int) *big.Int {
	return new(big.Int).Set(cliffFeeNumerator)
}

func GetFeeSchedulerMinBaseFeeNumerator(cliffFeeNumerator *big.Int, numberOfPeriod uint16, reductionFactor *big.Int, feeSchedulerMode dbc.BaseFeeMode) (*big.Int, error) {
	return GetBaseFeeNumeratorByPeriod(cliffFeeNumerator, numberOfPeriod, big.NewInt(int64(numberOfPeriod)), reductionFactor, feeSchedulerMode)
}

// GetBaseFeeNumeratorByPeriod returns the fee numerator after period
// reductions. Periods past numberOfPeriod keep the final fee.
func GetBaseFeeNumeratorByPeriod(cliffFeeNumerator *big.Int, numberOfPeriod uint16, period *big.Int, reductionFactor *big.Int, feeSchedulerMode dbc.BaseFeeMode) (*big.Int, error) {
	periodValue := new(big.Int).Set(period)
	if periodValue.Cmp(big.NewInt(int64(numberOfPeriod))) > 0 {
		periodValue = big.NewInt(int64(numberOfPeriod))
	}
	if periodValue.Sign() < 0 {
		periodValue = big.NewInt(0)
	}
	periodNumber := periodValue.Uint64()

	switch feeSchedulerMode {
	case dbc.BaseFeeModeFeeSchedulerLinear:
		return GetFeeNumeratorOnLinearFeeScheduler(cliffFeeNumerator, reductionFactor, periodNumber)
	case dbc.BaseFeeModeFeeSchedulerExponential:
		return GetFeeNumeratorOnExponentialFeeScheduler(cliffFeeNumerator, reductionFactor, periodNumber)
	default:
		return nil, fmt.Errorf("fee scheduler mode %d: %w", feeSchedulerMode, dbc.ErrInvalidBaseFeeMode)
	}
}

// GetFeeNumeratorOnLinearFeeScheduler returns cliff - period*reduction.
func GetFeeNumeratorOnLinearFeeScheduler(cliffFeeNumerator, reductionFactor *big.Int, period uint64) (*big.Int, error) {
	reduction := new(big.Int).Mul(new(big.Int).SetUint64(period), reductionFactor)
	return sub(cliffFeeNumerator, reduction)
}

// GetFeeNumeratorOnExponentialFeeScheduler returns
// cliff * (1 - reduction/10_000)^period, evaluated in Q64.
func GetFeeNumeratorOnExponentialFeeScheduler(cliffFeeNumerator, reductionFactor *big.Int, period uint64) (*big.Int, error) {
	if period == 0 {
		return new(big.Int).Set(cliffFeeNumerator), nil
	}
	if reductionFactor.Cmp(big.NewInt(dbc.MaxBasisPoint)) > 0 {
		return nil, errors.New("reduction factor exceeds max basis point")
	}
	oneQ64 := new(big.Int).Lsh(big.NewInt(1), dbc.Resolution)
	bps := new(big.Int).Lsh(reductionFactor, dbc.Resolution)
	bps.Div(bps, big.NewInt(dbc.MaxBasisPoint))
	base, err := sub(oneQ64, bps)
	if err != nil {
		return nil, err
	}
	prod := new(big.Int).Mul(cliffFeeNumerator, pow(base, period))
	return prod.Rsh(prod, dbc.Resolution), nil
}

// GetBaseFeeNumerator returns the fee numerator in force at currentPoint.
func GetBaseFeeNumerator(cliffFeeNumerator *big.Int, numberOfPeriod uint16, periodFrequency *big.Int, reductionFactor *big.Int, feeSchedulerMode dbc.BaseFeeMode, currentPoint *big.Int, activationPoint *big.Int) (*big.Int, error) {
	if periodFrequency.Sign() == 0 || currentPoint.Cmp(activationPoint) < 0 {
		return GetBaseFeeNumeratorByPeriod(cliffFeeNumerator, numberOfPeriod, big.NewInt(0), reductionFactor, feeSchedulerMode)
	}
	period := new(big.Int).Sub(currentPoint, activationPoint)
	period.Div(period, periodFrequency)
	return GetBaseFeeNumeratorByPeriod(cliffFeeNumerator, numberOfPeriod, period, reductionFactor, feeSchedulerMode)
}
