package decimal_math

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// Rsh returns x / 2^n exactly, using 2^-n = 5^n * 10^-n.
func Rsh(x decimal.Decimal, n uint) decimal.Decimal {
	five := new(big.Int).Exp(big.NewInt(5), big.NewInt(int64(n)), nil)
	return x.Mul(decimal.NewFromBigInt(five, -int32(n)))
}
