package shared

import "errors"

var (
	// ErrInsufficientCurveLiquidity reports a walk that ran off the last
	// segment before the requested amount was consumed.
	ErrInsufficientCurveLiquidity = errors.New("insufficient curve liquidity")

	// ErrCurveSupplyMismatch reports a curve whose reconstructed supply exceeds
	// the requested supply by more than the leftover.
	ErrCurveSupplyMismatch = errors.New("curve supply mismatch")

	ErrInvalidMigrationOption = errors.New("invalid migration option")

	// ErrInvalidPriceDomain reports a sqrt price outside
	// [MinSqrtPrice, MaxSqrtPrice] or a non-increasing segment sequence.
	ErrInvalidPriceDomain = errors.New("invalid price domain")

	ErrSqrtPriceZero = errors.New("sqrt price must be greater than 0")
	ErrLiquidityZero = errors.New("liquidity must be greater than 0")

	ErrInvalidBaseFeeMode = errors.New("invalid base fee mode")
	ErrPoolCompleted      = errors.New("virtual pool is completed")
	ErrAmountZero         = errors.New("amount is zero")
	ErrSlippageExceeded   = errors.New("exceeded slippage tolerance")
	ErrPoolNotFound       = errors.New("pool not found")
)
