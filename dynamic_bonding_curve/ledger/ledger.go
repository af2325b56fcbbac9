package ledger

import (
	"context"
	"math/big"

	dbc "github.com/krazyTry/meteora-curve/dynamic_bonding_curve/shared"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
)

// Ledger is the state a curve trades against. Implementations must be safe
// for concurrent use.
type Ledger interface {
	ApplySwap(ctx context.Context, req SwapRequest) (SwapResponse, error)
	ReadReserve(ctx context.Context, pool solanago.PublicKey) (Reserve, error)
}

type SwapRequest struct {
	Pool             solanago.PublicKey
	AmountIn         *big.Int
	SwapBaseForQuote bool
	HasReferral      bool
	// CurrentPoint is the slot or timestamp the fee scheduler is evaluated
	// at. nil selects the pool's activation point.
	CurrentPoint *big.Int
	// MinimumAmountOut fails the swap with ErrSlippageExceeded when the
	// output is smaller. nil disables the check.
	MinimumAmountOut *big.Int
	PartialFill      bool
}

type SwapResponse struct {
	dbc.SwapResult
	// Completed is set once the swap brought the pool to its migration
	// threshold.
	Completed bool
}

// Reserve is a snapshot of one pool.
type Reserve struct {
	Pool      solanago.PublicKey
	State     dbc.VirtualPool
	Config    dbc.ConfigParameters
	Completed bool
}

// Progress is QuoteReserve / MigrationQuoteThreshold clamped to [0, 1].
func (r Reserve) Progress() float64 {
	if r.Config.MigrationQuoteThreshold == 0 {
		return 0
	}
	quoteReserve := decimal.NewFromBigInt(new(big.Int).SetUint64(r.State.QuoteReserve), 0)
	threshold := decimal.NewFromBigInt(new(big.Int).SetUint64(r.Config.MigrationQuoteThreshold), 0)
	progress, _ := quoteReserve.Div(threshold).Float64()
	if progress > 1 {
		return 1
	}
	return progress
}

// Store is a Ledger that pools can be registered with.
type Store interface {
	Ledger
	CreatePool(pool solanago.PublicKey, config dbc.ConfigParameters, activationPoint uint64) error
}
