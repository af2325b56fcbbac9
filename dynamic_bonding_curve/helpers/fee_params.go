package helpers

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/krazyTry/meteora-curve/decimal_math"
	"github.com/krazyTry/meteora-curve/dynamic_bonding_curve/math/pool_fees"
	dbc "github.com/krazyTry/meteora-curve/dynamic_bonding_curve/shared"
	"github.com/shopspring/decimal"
)

// GetBaseFeeParams turns a bps fee schedule into the stored fee scheduler.
func GetBaseFeeParams(baseFeeParams dbc.BaseFeeParams) (dbc.BaseFeeParameters, error) {
	if baseFeeParams.FeeSchedulerParam == nil {
		return dbc.BaseFeeParameters{}, errors.New("fee scheduler parameters are required")
	}
	switch baseFeeParams.BaseFeeMode {
	case dbc.BaseFeeModeFeeSchedulerLinear, dbc.BaseFeeModeFeeSchedulerExponential:
	default:
		return dbc.BaseFeeParameters{}, fmt.Errorf("base fee mode %d: %w", baseFeeParams.BaseFeeMode, dbc.ErrInvalidBaseFeeMode)
	}
	p := baseFeeParams.FeeSchedulerParam
	baseFee, err := getFeeSchedulerParams(p.StartingFeeBps, p.EndingFeeBps, baseFeeParams.BaseFeeMode, p.NumberOfPeriod, p.TotalDuration)
	if err != nil {
		return dbc.BaseFeeParameters{}, err
	}
	handler, err := pool_fees.GetBaseFeeHandler(baseFee)
	if err != nil {
		return dbc.BaseFeeParameters{}, err
	}
	if !handler.Validate() {
		return dbc.BaseFeeParameters{}, errors.New("fee scheduler out of range")
	}
	return baseFee, nil
}

func getFeeSchedulerParams(
	startingBaseFeeBps uint16,
	endingBaseFeeBps uint16,
	baseFeeMode dbc.BaseFeeMode,
	numberOfPeriod uint16,
	totalDuration uint64,
) (dbc.BaseFeeParameters, error) {
	if startingBaseFeeBps == endingBaseFeeBps {
		if numberOfPeriod != 0 || totalDuration != 0 {
			return dbc.BaseFeeParameters{}, errors.New("numberOfPeriod and totalDuration must both be zero")
		}
		return dbc.BaseFeeParameters{
			CliffFeeNumerator: BpsToFeeNumerator(uint64(startingBaseFeeBps)).Uint64(),
			BaseFeeMode:       uint8(dbc.BaseFeeModeFeeSchedulerLinear),
		}, nil
	}

	if numberOfPeriod == 0 {
		return dbc.BaseFeeParameters{}, errors.New("numberOfPeriod must be greater than zero")
	}
	if startingBaseFeeBps > dbc.MaxFeeBps {
		return dbc.BaseFeeParameters{}, fmt.Errorf("startingBaseFeeBps (%d) exceeds maximum", startingBaseFeeBps)
	}
	if endingBaseFeeBps < dbc.MinFeeBps {
		return dbc.BaseFeeParameters{}, fmt.Errorf("endingBaseFeeBps (%d) is less than minimum", endingBaseFeeBps)
	}
	if endingBaseFeeBps > startingBaseFeeBps {
		return dbc.BaseFeeParameters{}, errors.New("endingBaseFeeBps must be <= startingBaseFeeBps")
	}
	if totalDuration == 0 {
		return dbc.BaseFeeParameters{}, errors.New("totalDuration must be greater than zero")
	}

	maxBaseFeeNumerator := BpsToFeeNumerator(uint64(startingBaseFeeBps))
	minBaseFeeNumerator := BpsToFeeNumerator(uint64(endingBaseFeeBps))

	var reductionFactor *big.Int
	if baseFeeMode == dbc.BaseFeeModeFeeSchedulerLinear {
		totalReduction := new(big.Int).Sub(maxBaseFeeNumerator, minBaseFeeNumerator)
		reductionFactor = new(big.Int).Div(totalReduction, big.NewInt(int64(numberOfPeriod)))
	} else {
		ratio := decimal.NewFromBigInt(minBaseFeeNumerator, 0).DivRound(decimal.NewFromBigInt(maxBaseFeeNumerator, 0), pricePrecision)
		decayBase, err := decimal_math.NthRoot(ratio, int(numberOfPeriod), 18)
		if err != nil {
			return dbc.BaseFeeParameters{}, err
		}
		reductionFactor = FromDecimalToBig(decimal.NewFromInt(dbc.MaxBasisPoint).Mul(decimal.NewFromInt(1).Sub(decayBase)))
	}

	reductionFactorU64, err := BigIntToU64(reductionFactor)
	if err != nil {
		return dbc.BaseFeeParameters{}, err
	}

	return dbc.BaseFeeParameters{
		CliffFeeNumerator: maxBaseFeeNumerator.Uint64(),
		FirstFactor:       numberOfPeriod,
		SecondFactor:      totalDuration / uint64(numberOfPeriod),
		ThirdFactor:       reductionFactorU64,
		BaseFeeMode:       uint8(baseFeeMode),
	}, nil
}
