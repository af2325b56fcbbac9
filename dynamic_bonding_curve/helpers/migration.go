package helpers

import (
	"fmt"
	"math/big"

	mathutil "github.com/krazyTry/meteora-curve/dynamic_bonding_curve/math"
	dbc "github.com/krazyTry/meteora-curve/dynamic_bonding_curve/shared"
	"github.com/shopspring/decimal"
)

// GetMigrationBaseToken sizes the base reserve that seeds the post-migration
// pool with migrationQuoteAmount at sqrtMigrationPrice.
//
// MigrationOptionMetDamm (constant product): ceil(quote * 2^128 / price^2).
// MigrationOptionMetDammV2 (concentrated): the liquidity that holds the quote
// on [MinSqrtPrice, price] is placed on [price, MaxSqrtPrice] and its base
// side is rounded up.
func GetMigrationBaseToken(migrationQuoteAmount, sqrtMigrationPrice *big.Int, migrationOption dbc.MigrationOption) (*big.Int, error) {
	switch migrationOption {
	case dbc.MigrationOptionMetDamm:
		price := new(big.Int).Mul(sqrtMigrationPrice, sqrtMigrationPrice)
		if price.Sign() == 0 {
			return nil, dbc.ErrSqrtPriceZero
		}
		quote := new(big.Int).Lsh(migrationQuoteAmount, dbc.Resolution*2)
		div, mod := new(big.Int).QuoRem(quote, price, new(big.Int))
		if mod.Sign() != 0 {
			div.Add(div, big.NewInt(1))
		}
		return div, nil
	case dbc.MigrationOptionMetDammV2:
		if sqrtMigrationPrice.Cmp(dbc.MinSqrtPrice) <= 0 || sqrtMigrationPrice.Cmp(dbc.MaxSqrtPrice) >= 0 {
			return nil, fmt.Errorf("migration sqrt price %s: %w", sqrtMigrationPrice, dbc.ErrInvalidPriceDomain)
		}
		liquidity, err := mathutil.GetInitialLiquidityFromDeltaQuote(migrationQuoteAmount, dbc.MinSqrtPrice, sqrtMigrationPrice)
		if err != nil {
			return nil, err
		}
		return mathutil.GetDeltaAmountBaseUnsigned(sqrtMigrationPrice, dbc.MaxSqrtPrice, liquidity, dbc.RoundingUp)
	default:
		return nil, fmt.Errorf("migration option %d: %w", migrationOption, dbc.ErrInvalidMigrationOption)
	}
}

// GetMigrationQuoteAmountFromMigrationQuoteThreshold is the quote left for
// the migrated pool once the migration fee is taken.
func GetMigrationQuoteAmountFromMigrationQuoteThreshold(migrationQuoteThreshold decimal.Decimal, migrationFeePercent uint8) decimal.Decimal {
	return migrationQuoteThreshold.Mul(decimal.NewFromInt(100).Sub(decimal.NewFromInt(int64(migrationFeePercent)))).Div(decimal.NewFromInt(100))
}

func GetMigrationQuoteThresholdFromMigrationQuoteAmount(migrationQuoteAmount decimal.Decimal, migrationFeePercent decimal.Decimal) decimal.Decimal {
	return migrationQuoteAmount.Mul(decimal.NewFromInt(100)).DivRound(decimal.NewFromInt(100).Sub(migrationFeePercent), pricePrecision)
}

// getMigrationQuoteAmountLamports is floor(threshold * (100-fee) / 100).
func getMigrationQuoteAmountLamports(migrationQuoteThreshold *big.Int, migrationFeePercent uint8) *big.Int {
	out := new(big.Int).Mul(migrationQuoteThreshold, big.NewInt(100-int64(migrationFeePercent)))
	return out.Div(out, big.NewInt(100))
}

func GetMigrationQuoteAmount(migrationMarketCap, percentageSupplyOnMigration decimal.Decimal) decimal.Decimal {
	return migrationMarketCap.Mul(percentageSupplyOnMigration).Div(decimal.NewFromInt(100))
}
