package math

import (
	"errors"
	"math/big"

	dbc "github.com/krazyTry/meteora-curve/dynamic_bonding_curve/shared"
)

// MulDiv returns x*y/denominator rounded in the requested direction.
func MulDiv(x, y, denominator *big.Int, rounding dbc.Rounding) (*big.Int, error) {
	if denominator.Sign() == 0 {
		return nil, errors.New("MulDiv: division by zero")
	}
	prod := new(big.Int).Mul(x, y)
	if denominator.Cmp(big.NewInt(1)) == 0 || prod.Sign() == 0 {
		return prod, nil
	}
	quotient, remainder := new(big.Int).QuoRem(prod, denominator, new(big.Int))
	if rounding == dbc.RoundingUp && remainder.Sign() != 0 {
		quotient.Add(quotient, big.NewInt(1))
	}
	return quotient, nil
}

func minBig(a, b *big.Int) *big.Int {
	if a.Cmp(b) < 0 {
		return a
	}
	return b
}
