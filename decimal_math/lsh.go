package decimal_math

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// Lsh returns x * 2^n. The fractional part of x is kept.
func Lsh(x decimal.Decimal, n uint) decimal.Decimal {
	return x.Mul(decimal.NewFromBigInt(new(big.Int).Lsh(big.NewInt(1), n), 0))
}
