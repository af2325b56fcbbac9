package pool_fees

import (
	"fmt"
	"math/big"

	dbc "github.com/krazyTry/meteora-curve/dynamic_bonding_curve/shared"
)

type FeeScheduler struct {
	CliffFeeNumerator *big.Int
	NumberOfPeriod    uint16
	PeriodFrequency   *big.Int
	ReductionFactor   *big.Int
	FeeSchedulerMode  dbc.BaseFeeMode
}

func (f FeeScheduler) Validate() bool {
	return validateFeeScheduler(f.NumberOfPeriod, f.PeriodFrequency, f.ReductionFactor, f.CliffFeeNumerator, f.FeeSchedulerMode)
}

func (f FeeScheduler) GetMinBaseFeeNumerator() *big.Int {
	v, err := GetFeeSchedulerMinBaseFeeNumerator(f.CliffFeeNumerator, f.NumberOfPeriod, f.ReductionFactor, f.FeeSchedulerMode)
	if err != nil {
		return new(big.Int).Set(f.CliffFeeNumerator)
	}
	return v
}

func (f FeeScheduler) GetBaseFeeNumerator(currentPoint, activationPoint *big.Int) *big.Int {
	v, err := GetBaseFeeNumerator(f.CliffFeeNumerator, f.NumberOfPeriod, f.PeriodFrequency, f.ReductionFactor, f.FeeSchedulerMode, currentPoint, activationPoint)
	if err != nil {
		return new(big.Int).Set(f.CliffFeeNumerator)
	}
	return v
}

// GetBaseFeeHandler builds the handler for a stored base fee.
func GetBaseFeeHandler(baseFee dbc.BaseFeeParameters) (dbc.BaseFeeHandler, error) {
	mode := dbc.BaseFeeMode(baseFee.BaseFeeMode)
	switch mode {
	case dbc.BaseFeeModeFeeSchedulerLinear, dbc.BaseFeeModeFeeSchedulerExponential:
		return FeeScheduler{
			CliffFeeNumerator: new(big.Int).SetUint64(baseFee.CliffFeeNumerator),
			NumberOfPeriod:    baseFee.FirstFactor,
			PeriodFrequency:   new(big.Int).SetUint64(baseFee.SecondFactor),
			ReductionFactor:   new(big.Int).SetUint64(baseFee.ThirdFactor),
			FeeSchedulerMode:  mode,
		}, nil
	default:
		return nil, fmt.Errorf("base fee mode %d: %w", baseFee.BaseFeeMode, dbc.ErrInvalidBaseFeeMode)
	}
}
