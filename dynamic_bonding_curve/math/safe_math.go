package math

import (
	"errors"
	"math/big"

	dbc "github.com/krazyTry/meteora-curve/dynamic_bonding_curve/shared"
)

func Add(a, b *big.Int) *big.Int {
	return new(big.Int).Add(a, b)
}

func Sub(a, b *big.Int) (*big.Int, error) {
	if b.Cmp(a) > 0 {
		return nil, errors.New("SafeMath: subtraction overflow")
	}
	return new(big.Int).Sub(a, b), nil
}

func Mul(a, b *big.Int) *big.Int {
	return new(big.Int).Mul(a, b)
}

func Div(a, b *big.Int) (*big.Int, error) {
	if b.Sign() == 0 {
		return nil, errors.New("SafeMath: division by zero")
	}
	return new(big.Int).Div(a, b), nil
}

func Shl(a *big.Int, b uint) *big.Int {
	return new(big.Int).Lsh(a, b)
}

func Shr(a *big.Int, b uint) *big.Int {
	return new(big.Int).Rsh(a, b)
}

// Pow computes base^exponent in Q64 fixed point. With scaling=false the
// result is shifted back to an integer.
func Pow(base, exponent *big.Int, scaling bool) (*big.Int, error) {
	one := dbc.OneQ64

	if exponent.Sign() == 0 {
		return new(big.Int).Set(one), nil
	}
	if base.Sign() == 0 {
		return big.NewInt(0), nil
	}
	if base.Cmp(one) == 0 {
		return new(big.Int).Set(one), nil
	}

	isNegative := exponent.Sign() < 0
	exp := new(big.Int).Abs(exponent)

	result := new(big.Int).Set(one)
	currentBase := new(big.Int).Set(base)
	for exp.Sign() != 0 {
		if exp.Bit(0) == 1 {
			result = Shr(Mul(result, currentBase), dbc.Resolution)
		}
		currentBase = Shr(Mul(currentBase, currentBase), dbc.Resolution)
		exp = Shr(exp, 1)
	}

	if isNegative {
		if result.Sign() == 0 {
			return nil, errors.New("SafeMath: division by zero")
		}
		result = new(big.Int).Div(Mul(one, one), result)
	}

	if scaling {
		return result, nil
	}
	return Shr(result, dbc.Resolution), nil
}
