package math

import (
	"fmt"
	"math/big"

	dbc "github.com/krazyTry/meteora-curve/dynamic_bonding_curve/shared"
)

// GetInitialLiquidityFromDeltaQuote is the liquidity that turns quoteAmount
// into a move from sqrtMinPrice to sqrtPrice.
func GetInitialLiquidityFromDeltaQuote(quoteAmount, sqrtMinPrice, sqrtPrice *big.Int) (*big.Int, error) {
	priceDelta, err := Sub(sqrtPrice, sqrtMinPrice)
	if err != nil {
		return nil, err
	}
	return Div(Shl(quoteAmount, dbc.Resolution*2), priceDelta)
}

// GetInitialLiquidityFromDeltaBase is the liquidity that holds baseAmount
// between sqrtPrice and sqrtMaxPrice.
func GetInitialLiquidityFromDeltaBase(baseAmount, sqrtMaxPrice, sqrtPrice *big.Int) (*big.Int, error) {
	priceDelta, err := Sub(sqrtMaxPrice, sqrtPrice)
	if err != nil {
		return nil, err
	}
	prod := Mul(Mul(baseAmount, sqrtPrice), sqrtMaxPrice)
	return Div(prod, priceDelta)
}

// GetDeltaAmountBaseUnsigned returns L * (upper - lower) / (lower * upper).
func GetDeltaAmountBaseUnsigned(lowerSqrtPrice, upperSqrtPrice, liquidity *big.Int, round dbc.Rounding) (*big.Int, error) {
	numerator, err := Sub(upperSqrtPrice, lowerSqrtPrice)
	if err != nil {
		return nil, err
	}
	denominator := Mul(lowerSqrtPrice, upperSqrtPrice)
	if denominator.Sign() == 0 {
		return nil, fmt.Errorf("delta base: %w", dbc.ErrSqrtPriceZero)
	}
	return MulDiv(liquidity, numerator, denominator, round)
}

// GetDeltaAmountQuoteUnsigned returns L * (upper - lower) / 2^128.
func GetDeltaAmountQuoteUnsigned(lowerSqrtPrice, upperSqrtPrice, liquidity *big.Int, round dbc.Rounding) (*big.Int, error) {
	deltaSqrtPrice, err := Sub(upperSqrtPrice, lowerSqrtPrice)
	if err != nil {
		return nil, err
	}
	prod := Mul(liquidity, deltaSqrtPrice)
	if round == dbc.RoundingUp {
		denominator := Shl(big.NewInt(1), dbc.Resolution*2)
		numerator := Add(prod, new(big.Int).Sub(denominator, big.NewInt(1)))
		return Div(numerator, denominator)
	}
	return Shr(prod, dbc.Resolution*2), nil
}

func GetNextSqrtPriceFromInput(sqrtPrice, liquidity, amountIn *big.Int, baseForQuote bool) (*big.Int, error) {
	if sqrtPrice.Sign() == 0 {
		return nil, dbc.ErrSqrtPriceZero
	}
	if liquidity.Sign() == 0 {
		return nil, dbc.ErrLiquidityZero
	}
	if baseForQuote {
		return GetNextSqrtPriceFromBaseAmountInRoundingUp(sqrtPrice, liquidity, amountIn)
	}
	return GetNextSqrtPriceFromQuoteAmountInRoundingDown(sqrtPrice, liquidity, amountIn)
}

func GetNextSqrtPriceFromOutput(sqrtPrice, liquidity, amountOut *big.Int, baseForQuote bool) (*big.Int, error) {
	if sqrtPrice.Sign() == 0 {
		return nil, dbc.ErrSqrtPriceZero
	}
	if liquidity.Sign() == 0 {
		return nil, dbc.ErrLiquidityZero
	}
	if baseForQuote {
		return GetNextSqrtPriceFromQuoteAmountOutRoundingDown(sqrtPrice, liquidity, amountOut)
	}
	return GetNextSqrtPriceFromBaseAmountOutRoundingUp(sqrtPrice, liquidity, amountOut)
}

// GetNextSqrtPriceFromQuoteAmountOutRoundingDown returns
// price - ceil(amount * 2^128 / L).
func GetNextSqrtPriceFromQuoteAmountOutRoundingDown(sqrtPrice, liquidity, amount *big.Int) (*big.Int, error) {
	qAmount := Shl(amount, dbc.Resolution*2)
	numerator := Add(qAmount, new(big.Int).Sub(liquidity, big.NewInt(1)))
	quotient, err := Div(numerator, liquidity)
	if err != nil {
		return nil, err
	}
	return Sub(sqrtPrice, quotient)
}

// GetNextSqrtPriceFromBaseAmountOutRoundingUp returns
// ceil(L * price / (L - amount * price)).
func GetNextSqrtPriceFromBaseAmountOutRoundingUp(sqrtPrice, liquidity, amount *big.Int) (*big.Int, error) {
	if amount.Sign() == 0 {
		return new(big.Int).Set(sqrtPrice), nil
	}
	denominator, err := Sub(liquidity, Mul(amount, sqrtPrice))
	if err != nil || denominator.Sign() == 0 {
		return nil, fmt.Errorf("base output exceeds segment liquidity: %w", dbc.ErrInsufficientCurveLiquidity)
	}
	return MulDiv(liquidity, sqrtPrice, denominator, dbc.RoundingUp)
}

// GetNextSqrtPriceFromBaseAmountInRoundingUp returns
// ceil(L * price / (L + amount * price)). When amount * price does not fit in
// 128 bits it falls back to L / (L / price + amount).
func GetNextSqrtPriceFromBaseAmountInRoundingUp(sqrtPrice, liquidity, amount *big.Int) (*big.Int, error) {
	if amount.Sign() == 0 {
		return new(big.Int).Set(sqrtPrice), nil
	}
	product := Mul(amount, sqrtPrice)
	if product.Cmp(dbc.U128Max) > 0 {
		quotient, err := Div(liquidity, sqrtPrice)
		if err != nil {
			return nil, err
		}
		return Div(liquidity, Add(quotient, amount))
	}
	return MulDiv(liquidity, sqrtPrice, Add(liquidity, product), dbc.RoundingUp)
}

// GetNextSqrtPriceFromQuoteAmountInRoundingDown returns
// price + floor(amount * 2^128 / L).
func GetNextSqrtPriceFromQuoteAmountInRoundingDown(sqrtPrice, liquidity, amount *big.Int) (*big.Int, error) {
	q, err := Div(Shl(amount, dbc.Resolution*2), liquidity)
	if err != nil {
		return nil, err
	}
	return Add(sqrtPrice, q), nil
}
