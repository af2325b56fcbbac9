package decimal_math

import (
	"errors"

	"github.com/shopspring/decimal"
)

// PowInt returns base^n for n >= 0 by repeated squaring. Every step is an
// exact decimal multiplication.
func PowInt(base decimal.Decimal, n int) decimal.Decimal {
	result := decimal.NewFromInt(1)
	if n <= 0 {
		return result
	}
	b := base
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(b)
		}
		n >>= 1
		if n > 0 {
			b = b.Mul(b)
		}
	}
	return result
}

// NthRoot returns the largest r with `places` decimal places such that
// r^n <= x, found by bisection.
func NthRoot(x decimal.Decimal, n int, places int32) (decimal.Decimal, error) {
	if n <= 0 {
		return decimal.Zero, errors.New("root degree must be positive")
	}
	if x.Sign() < 0 {
		return decimal.Zero, errors.New("root of negative decimal")
	}
	if x.IsZero() || n == 1 {
		return x, nil
	}
	lo := decimal.Zero
	hi := decimal.Max(x, decimal.NewFromInt(1))
	step := decimal.New(1, -places)
	half := decimal.New(5, -1)
	for hi.Sub(lo).GreaterThan(step) {
		mid := lo.Add(hi).Mul(half).Truncate(places)
		if mid.Equal(lo) {
			break
		}
		if powTruncate(mid, n, 2*places).GreaterThan(x) {
			hi = mid
		} else {
			lo = mid
		}
	}
	if powTruncate(hi, n, 2*places).LessThanOrEqual(x) {
		return hi, nil
	}
	return lo, nil
}

// powTruncate is PowInt with every intermediate product truncated to places.
func powTruncate(base decimal.Decimal, n int, places int32) decimal.Decimal {
	result := decimal.NewFromInt(1)
	b := base
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(b).Truncate(places)
		}
		n >>= 1
		if n > 0 {
			b = b.Mul(b).Truncate(places)
		}
	}
	return result
}
