package math

import (
	"math/big"

	"github.com/krazyTry/meteora-curve/dynamic_bonding_curve/math/pool_fees"
	dbc "github.com/krazyTry/meteora-curve/dynamic_bonding_curve/shared"
)

// GetFeeMode reports where the fee is charged. Quote-token mode always
// charges quote: on input when buying, on output when selling.
func GetFeeMode(collectFeeMode dbc.CollectFeeMode, tradeDirection dbc.TradeDirection, hasReferral bool) dbc.FeeMode {
	feesOnInput := false
	feesOnBaseToken := false

	if collectFeeMode == dbc.CollectFeeModeOutputToken {
		if tradeDirection == dbc.TradeDirectionQuoteToBase {
			feesOnBaseToken = true
		}
	} else if tradeDirection == dbc.TradeDirectionQuoteToBase {
		feesOnInput = true
	}

	return dbc.FeeMode{FeesOnInput: feesOnInput, FeesOnBaseToken: feesOnBaseToken, HasReferral: hasReferral}
}

// GetTotalFeeNumerator returns the base fee in force, capped at MaxFeeNumerator.
func GetTotalFeeNumerator(poolFees dbc.PoolFeeParameters, currentPoint, activationPoint *big.Int) (*big.Int, error) {
	handler, err := pool_fees.GetBaseFeeHandler(poolFees.BaseFee)
	if err != nil {
		return nil, err
	}
	total := handler.GetBaseFeeNumerator(currentPoint, activationPoint)
	maxFee := big.NewInt(dbc.MaxFeeNumerator)
	if total.Cmp(maxFee) > 0 {
		return maxFee, nil
	}
	return total, nil
}

// GetFeeOnAmount charges tradeFeeNumerator on amount and splits the fee into
// trading, protocol and referral parts.
func GetFeeOnAmount(tradeFeeNumerator, amount *big.Int, hasReferral bool) (dbc.FeeOnAmountResult, error) {
	amountAfterFee, tradingFee, err := GetExcludedFeeAmount(tradeFeeNumerator, amount)
	if err != nil {
		return dbc.FeeOnAmountResult{}, err
	}
	protocolFee, err := MulDiv(tradingFee, big.NewInt(dbc.ProtocolFeePercent), big.NewInt(100), dbc.RoundingDown)
	if err != nil {
		return dbc.FeeOnAmountResult{}, err
	}
	updatedTradingFee, err := Sub(tradingFee, protocolFee)
	if err != nil {
		return dbc.FeeOnAmountResult{}, err
	}
	referralFee := big.NewInt(0)
	if hasReferral {
		referralFee, err = MulDiv(protocolFee, big.NewInt(dbc.HostFeePercent), big.NewInt(100), dbc.RoundingDown)
		if err != nil {
			return dbc.FeeOnAmountResult{}, err
		}
	}
	updatedProtocolFee, err := Sub(protocolFee, referralFee)
	if err != nil {
		return dbc.FeeOnAmountResult{}, err
	}
	return dbc.FeeOnAmountResult{
		Amount:      amountAfterFee,
		ProtocolFee: updatedProtocolFee,
		ReferralFee: referralFee,
		TradingFee:  updatedTradingFee,
	}, nil
}

// GetExcludedFeeAmount removes a fee, rounded up, from includedFeeAmount.
func GetExcludedFeeAmount(tradeFeeNumerator, includedFeeAmount *big.Int) (*big.Int, *big.Int, error) {
	tradingFee, err := MulDiv(includedFeeAmount, tradeFeeNumerator, big.NewInt(dbc.FeeDenominator), dbc.RoundingUp)
	if err != nil {
		return nil, nil, err
	}
	excluded, err := Sub(includedFeeAmount, tradingFee)
	if err != nil {
		return nil, nil, err
	}
	return excluded, tradingFee, nil
}

// GetIncludedFeeAmount is the gross amount that leaves excludedFeeAmount
// after the fee.
func GetIncludedFeeAmount(tradeFeeNumerator, excludedFeeAmount *big.Int) (*big.Int, *big.Int, error) {
	denom, err := Sub(big.NewInt(dbc.FeeDenominator), tradeFeeNumerator)
	if err != nil {
		return nil, nil, err
	}
	included, err := MulDiv(excludedFeeAmount, big.NewInt(dbc.FeeDenominator), denom, dbc.RoundingUp)
	if err != nil {
		return nil, nil, err
	}
	feeAmount, err := Sub(included, excludedFeeAmount)
	if err != nil {
		return nil, nil, err
	}
	return included, feeAmount, nil
}

// SplitFees splits an already charged fee into trading, protocol and referral
// parts.
func SplitFees(feeAmount *big.Int, hasReferral bool) (*big.Int, *big.Int, *big.Int, error) {
	protocolFee, err := MulDiv(feeAmount, big.NewInt(dbc.ProtocolFeePercent), big.NewInt(100), dbc.RoundingDown)
	if err != nil {
		return nil, nil, nil, err
	}
	tradingFee, err := Sub(feeAmount, protocolFee)
	if err != nil {
		return nil, nil, nil, err
	}
	referralFee := big.NewInt(0)
	if hasReferral {
		referralFee, err = MulDiv(protocolFee, big.NewInt(dbc.HostFeePercent), big.NewInt(100), dbc.RoundingDown)
		if err != nil {
			return nil, nil, nil, err
		}
	}
	protocolAfterReferral, err := Sub(protocolFee, referralFee)
	if err != nil {
		return nil, nil, nil, err
	}
	return tradingFee, protocolAfterReferral, referralFee, nil
}
