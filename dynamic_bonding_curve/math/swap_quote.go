package math

import (
	"fmt"
	"math/big"

	dbc "github.com/krazyTry/meteora-curve/dynamic_bonding_curve/shared"
	"github.com/krazyTry/meteora-curve/u128"
)

type curvePoint struct {
	SqrtPrice *big.Int
	Liquidity *big.Int
}

func curveFromConfig(config *dbc.ConfigParameters) []curvePoint {
	curve := make([]curvePoint, 0, len(config.Curve))
	for _, c := range config.Curve {
		curve = append(curve, curvePoint{SqrtPrice: u128.ToBig(c.SqrtPrice), Liquidity: u128.ToBig(c.Liquidity)})
	}
	return curve
}

// GetSwapResult prices amountIn against the pool. With partialFill the input
// that would push a buy past the migration price is returned in AmountLeft;
// otherwise such a swap fails with ErrInsufficientCurveLiquidity.
func GetSwapResult(virtualPool *dbc.VirtualPool, config *dbc.ConfigParameters, amountIn *big.Int, feeMode dbc.FeeMode, tradeDirection dbc.TradeDirection, currentPoint *big.Int, partialFill bool) (dbc.SwapResult, error) {
	actualProtocolFee := big.NewInt(0)
	actualTradingFee := big.NewInt(0)
	actualReferralFee := big.NewInt(0)

	tradeFeeNumerator, err := GetTotalFeeNumerator(config.PoolFees, currentPoint, new(big.Int).SetUint64(virtualPool.ActivationPoint))
	if err != nil {
		return dbc.SwapResult{}, err
	}

	actualAmountIn := amountIn
	if feeMode.FeesOnInput {
		feeResult, err := GetFeeOnAmount(tradeFeeNumerator, amountIn, feeMode.HasReferral)
		if err != nil {
			return dbc.SwapResult{}, err
		}
		actualProtocolFee = feeResult.ProtocolFee
		actualTradingFee = feeResult.TradingFee
		actualReferralFee = feeResult.ReferralFee
		actualAmountIn = feeResult.Amount
	}

	currentSqrtPrice := u128.ToBig(virtualPool.SqrtPrice)
	var swapAmount dbc.SwapAmount
	if tradeDirection == dbc.TradeDirectionBaseToQuote {
		swapAmount, err = CalculateBaseToQuoteFromAmountIn(config, currentSqrtPrice, actualAmountIn)
	} else {
		swapAmount, err = CalculateQuoteToBaseFromAmountIn(config, currentSqrtPrice, actualAmountIn, u128.ToBig(config.MigrationSqrtPrice))
	}
	if err != nil {
		return dbc.SwapResult{}, err
	}

	includedFeeInputAmount := amountIn
	if swapAmount.AmountLeft.Sign() != 0 {
		if !partialFill {
			return dbc.SwapResult{}, fmt.Errorf("%s input left unfilled: %w", swapAmount.AmountLeft, dbc.ErrInsufficientCurveLiquidity)
		}
		actualAmountIn, err = Sub(actualAmountIn, swapAmount.AmountLeft)
		if err != nil {
			return dbc.SwapResult{}, err
		}
		includedFeeInputAmount = actualAmountIn
		if feeMode.FeesOnInput {
			included, feeAmount, err := GetIncludedFeeAmount(tradeFeeNumerator, actualAmountIn)
			if err != nil {
				return dbc.SwapResult{}, err
			}
			actualTradingFee, actualProtocolFee, actualReferralFee, err = SplitFees(feeAmount, feeMode.HasReferral)
			if err != nil {
				return dbc.SwapResult{}, err
			}
			includedFeeInputAmount = included
		}
	}

	actualAmountOut := swapAmount.OutputAmount
	if !feeMode.FeesOnInput {
		feeResult, err := GetFeeOnAmount(tradeFeeNumerator, swapAmount.OutputAmount, feeMode.HasReferral)
		if err != nil {
			return dbc.SwapResult{}, err
		}
		actualTradingFee = feeResult.TradingFee
		actualProtocolFee = feeResult.ProtocolFee
		actualReferralFee = feeResult.ReferralFee
		actualAmountOut = feeResult.Amount
	}

	return dbc.SwapResult{
		IncludedFeeInputAmount: includedFeeInputAmount,
		ActualInputAmount:      actualAmountIn,
		AmountLeft:             swapAmount.AmountLeft,
		OutputAmount:           actualAmountOut,
		NextSqrtPrice:          swapAmount.NextSqrtPrice,
		TradingFee:             actualTradingFee,
		ProtocolFee:            actualProtocolFee,
		ReferralFee:            actualReferralFee,
	}, nil
}

// SwapQuote predicts an exact-in swap and the minimum output under
// slippageBps.
func SwapQuote(virtualPool *dbc.VirtualPool, config *dbc.ConfigParameters, swapBaseForQuote bool, amountIn *big.Int, slippageBps uint16, hasReferral bool, currentPoint *big.Int, partialFill bool) (dbc.SwapQuoteResult, error) {
	if virtualPool.QuoteReserve >= config.MigrationQuoteThreshold {
		return dbc.SwapQuoteResult{}, dbc.ErrPoolCompleted
	}
	if amountIn.Sign() == 0 {
		return dbc.SwapQuoteResult{}, dbc.ErrAmountZero
	}

	tradeDirection := dbc.TradeDirectionQuoteToBase
	if swapBaseForQuote {
		tradeDirection = dbc.TradeDirectionBaseToQuote
	}
	feeMode := GetFeeMode(dbc.CollectFeeMode(config.CollectFeeMode), tradeDirection, hasReferral)
	result, err := GetSwapResult(virtualPool, config, amountIn, feeMode, tradeDirection, currentPoint, partialFill)
	if err != nil {
		return dbc.SwapQuoteResult{}, err
	}

	minimumAmountOut := result.OutputAmount
	if slippageBps > 0 {
		slippageFactor := big.NewInt(int64(dbc.MaxBasisPoint - int(slippageBps)))
		minimumAmountOut = new(big.Int).Div(Mul(result.OutputAmount, slippageFactor), big.NewInt(dbc.MaxBasisPoint))
	}

	return dbc.SwapQuoteResult{SwapResult: result, MinimumAmountOut: minimumAmountOut}, nil
}

// CalculateBaseToQuoteFromAmountIn walks the curve downward from
// currentSqrtPrice selling amountIn base. Output is rounded down; the walk
// stops at the start price.
func CalculateBaseToQuoteFromAmountIn(config *dbc.ConfigParameters, currentSqrtPrice, amountIn *big.Int) (dbc.SwapAmount, error) {
	curve := curveFromConfig(config)
	sqrtStartPrice := u128.ToBig(config.SqrtStartPrice)
	totalOutput := big.NewInt(0)
	current := new(big.Int).Set(currentSqrtPrice)
	amountLeft := new(big.Int).Set(amountIn)

	for i := len(curve) - 1; i >= 0 && amountLeft.Sign() > 0; i-- {
		lower := sqrtStartPrice
		if i > 0 {
			lower = curve[i-1].SqrtPrice
		}
		if lower.Cmp(current) >= 0 {
			continue
		}
		liquidity := curve[i].Liquidity
		if liquidity.Sign() == 0 {
			current = new(big.Int).Set(lower)
			continue
		}
		maxAmountIn, err := GetDeltaAmountBaseUnsigned(lower, current, liquidity, dbc.RoundingUp)
		if err != nil {
			return dbc.SwapAmount{}, err
		}
		if amountLeft.Cmp(maxAmountIn) < 0 {
			nextSqrtPrice, err := GetNextSqrtPriceFromInput(current, liquidity, amountLeft, true)
			if err != nil {
				return dbc.SwapAmount{}, err
			}
			outputAmount, err := GetDeltaAmountQuoteUnsigned(nextSqrtPrice, current, liquidity, dbc.RoundingDown)
			if err != nil {
				return dbc.SwapAmount{}, err
			}
			totalOutput.Add(totalOutput, outputAmount)
			current = nextSqrtPrice
			amountLeft = big.NewInt(0)
			break
		}
		outputAmount, err := GetDeltaAmountQuoteUnsigned(lower, current, liquidity, dbc.RoundingDown)
		if err != nil {
			return dbc.SwapAmount{}, err
		}
		totalOutput.Add(totalOutput, outputAmount)
		current = new(big.Int).Set(lower)
		amountLeft.Sub(amountLeft, maxAmountIn)
	}

	return dbc.SwapAmount{OutputAmount: totalOutput, NextSqrtPrice: current, AmountLeft: amountLeft}, nil
}

// CalculateQuoteToBaseFromAmountIn walks the curve upward from
// currentSqrtPrice buying with amountIn quote, never past stopSqrtPrice.
func CalculateQuoteToBaseFromAmountIn(config *dbc.ConfigParameters, currentSqrtPrice, amountIn *big.Int, stopSqrtPrice *big.Int) (dbc.SwapAmount, error) {
	curve := curveFromConfig(config)
	if amountIn.Sign() == 0 {
		return dbc.SwapAmount{OutputAmount: big.NewInt(0), NextSqrtPrice: currentSqrtPrice, AmountLeft: big.NewInt(0)}, nil
	}
	current := new(big.Int).Set(currentSqrtPrice)
	amountLeft := new(big.Int).Set(amountIn)
	totalOutput := big.NewInt(0)

	for i := 0; i < len(curve); i++ {
		if curve[i].Liquidity.Sign() == 0 {
			break
		}
		reference := minBig(stopSqrtPrice, curve[i].SqrtPrice)
		if reference.Cmp(current) <= 0 {
			if current.Cmp(stopSqrtPrice) >= 0 {
				break
			}
			continue
		}
		maxAmountIn, err := GetDeltaAmountQuoteUnsigned(current, reference, curve[i].Liquidity, dbc.RoundingUp)
		if err != nil {
			return dbc.SwapAmount{}, err
		}
		if amountLeft.Cmp(maxAmountIn) < 0 {
			nextSqrtPrice, err := GetNextSqrtPriceFromInput(current, curve[i].Liquidity, amountLeft, false)
			if err != nil {
				return dbc.SwapAmount{}, err
			}
			outputAmount, err := GetDeltaAmountBaseUnsigned(current, nextSqrtPrice, curve[i].Liquidity, dbc.RoundingDown)
			if err != nil {
				return dbc.SwapAmount{}, err
			}
			totalOutput.Add(totalOutput, outputAmount)
			current = nextSqrtPrice
			amountLeft = big.NewInt(0)
			break
		}
		outputAmount, err := GetDeltaAmountBaseUnsigned(current, reference, curve[i].Liquidity, dbc.RoundingDown)
		if err != nil {
			return dbc.SwapAmount{}, err
		}
		totalOutput.Add(totalOutput, outputAmount)
		current = new(big.Int).Set(reference)
		amountLeft.Sub(amountLeft, maxAmountIn)
		if reference.Cmp(stopSqrtPrice) == 0 {
			break
		}
	}

	return dbc.SwapAmount{OutputAmount: totalOutput, NextSqrtPrice: current, AmountLeft: amountLeft}, nil
}
