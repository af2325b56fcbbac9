package helpers

import (
	"fmt"
	"math/big"

	"github.com/krazyTry/meteora-curve/decimal_math"
	dbc "github.com/krazyTry/meteora-curve/dynamic_bonding_curve/shared"
	"github.com/shopspring/decimal"
)

// pricePrecision is the number of decimal places kept when a price is the
// result of a division.
const pricePrecision = 40

// GetSqrtPriceFromPrice converts a quote-per-base price into a Q64.64 sqrt
// price: floor(sqrt(price / 10^(base-quote)) * 2^64).
func GetSqrtPriceFromPrice(price decimal.Decimal, tokenBaseDecimal, tokenQuoteDecimal dbc.TokenDecimal) (*big.Int, error) {
	if price.Sign() <= 0 {
		return nil, fmt.Errorf("price %s: %w", price, dbc.ErrInvalidPriceDomain)
	}
	adjusted := price.Mul(decimal_math.Pow10(int(tokenQuoteDecimal) - int(tokenBaseDecimal)))

	sqrtValue, err := decimal_math.Sqrt(adjusted, decimal_math.DefaultPrec)
	if err != nil {
		return nil, err
	}
	sqrtPrice := FromDecimalToBig(decimal_math.Lsh(sqrtValue, dbc.Resolution))
	if err := ValidateSqrtPrice(sqrtPrice); err != nil {
		return nil, fmt.Errorf("price %s: %w", price, err)
	}
	return sqrtPrice, nil
}

// GetPriceFromSqrtPrice is the inverse of GetSqrtPriceFromPrice:
// (sqrtPrice / 2^64)^2 * 10^(base-quote). The result is exact.
func GetPriceFromSqrtPrice(sqrtPrice *big.Int, tokenBaseDecimal, tokenQuoteDecimal dbc.TokenDecimal) decimal.Decimal {
	sp := decimal.NewFromBigInt(sqrtPrice, 0)
	price := decimal_math.Rsh(sp.Mul(sp), dbc.Resolution*2)
	return price.Mul(decimal_math.Pow10(int(tokenBaseDecimal) - int(tokenQuoteDecimal)))
}

// GetSqrtPriceFromMarketCap prices one base token at marketCap / totalSupply.
func GetSqrtPriceFromMarketCap(marketCap decimal.Decimal, totalSupply uint64, tokenBaseDecimal, tokenQuoteDecimal dbc.TokenDecimal) (*big.Int, error) {
	if totalSupply == 0 {
		return nil, fmt.Errorf("total supply is zero: %w", dbc.ErrInvalidPriceDomain)
	}
	price := marketCap.DivRound(decimal.NewFromUint64(totalSupply), pricePrecision)
	return GetSqrtPriceFromPrice(price, tokenBaseDecimal, tokenQuoteDecimal)
}

// GetMarketCapFromSqrtPrice is price * totalSupply.
func GetMarketCapFromSqrtPrice(sqrtPrice *big.Int, totalSupply uint64, tokenBaseDecimal, tokenQuoteDecimal dbc.TokenDecimal) decimal.Decimal {
	return GetPriceFromSqrtPrice(sqrtPrice, tokenBaseDecimal, tokenQuoteDecimal).Mul(decimal.NewFromUint64(totalSupply))
}
