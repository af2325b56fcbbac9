package dynamic_bonding_curve

import (
	"context"
	"math/big"

	"github.com/krazyTry/meteora-curve/dynamic_bonding_curve/ledger"
	"github.com/krazyTry/meteora-curve/dynamic_bonding_curve/math"
	dbc "github.com/krazyTry/meteora-curve/dynamic_bonding_curve/shared"
)

type PoolService struct {
	Ledger ledger.Ledger
	State  *StateService
}

func NewPoolService(l ledger.Ledger) *PoolService {
	return &PoolService{
		Ledger: l,
		State:  NewStateService(l),
	}
}

// SwapQuote prices a swap against the pool's current state without
// applying it. A nil CurrentPoint quotes at the activation point.
func (s *PoolService) SwapQuote(ctx context.Context, params SwapQuoteParams) (SwapQuoteResult, error) {
	reserve, err := s.Ledger.ReadReserve(ctx, params.Pool)
	if err != nil {
		return SwapQuoteResult{}, err
	}
	if reserve.Completed {
		return SwapQuoteResult{}, dbc.ErrPoolCompleted
	}
	if params.AmountIn == nil {
		return SwapQuoteResult{}, dbc.ErrAmountZero
	}
	currentPoint := params.CurrentPoint
	if currentPoint == nil {
		currentPoint = new(big.Int).SetUint64(reserve.State.ActivationPoint)
	}
	return math.SwapQuote(&reserve.State, &reserve.Config, params.SwapBaseForQuote, params.AmountIn, params.SlippageBps, params.HasReferral, currentPoint, params.PartialFill)
}

func (s *PoolService) Swap(ctx context.Context, params SwapParams) (ledger.SwapResponse, error) {
	return s.Ledger.ApplySwap(ctx, ledger.SwapRequest{
		Pool:             params.Pool,
		AmountIn:         params.AmountIn,
		SwapBaseForQuote: params.SwapBaseForQuote,
		HasReferral:      params.HasReferral,
		CurrentPoint:     params.CurrentPoint,
		MinimumAmountOut: params.MinimumAmountOut,
		PartialFill:      params.PartialFill,
	})
}
