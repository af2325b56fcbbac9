package decimal_math

import (
	"errors"
	"math/big"

	"github.com/shopspring/decimal"
)

// DefaultPrec is the big.Float mantissa size, in bits, used for roots.
const DefaultPrec = 256

var errNegativeSqrt = errors.New("sqrt on negative decimal")

func Sqrt(x decimal.Decimal, prec uint) (decimal.Decimal, error) {
	if x.Sign() < 0 {
		return decimal.Zero, errNegativeSqrt
	}
	if x.IsZero() {
		return decimal.Zero, nil
	}
	f, _, err := big.ParseFloat(x.String(), 10, prec, big.ToNearestEven)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(new(big.Float).SetPrec(prec).Sqrt(f).Text('f', -1))
}

// RootPow2 returns the 2^power-th root of x by taking power successive square
// roots, so the 16th root is RootPow2(x, 4, prec).
func RootPow2(x decimal.Decimal, power int, prec uint) (decimal.Decimal, error) {
	result := x
	for i := 0; i < power; i++ {
		var err error
		if result, err = Sqrt(result, prec); err != nil {
			return decimal.Zero, err
		}
	}
	return result, nil
}
