package ledger

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/krazyTry/meteora-curve/dynamic_bonding_curve/helpers"
	"github.com/krazyTry/meteora-curve/dynamic_bonding_curve/math"
	dbc "github.com/krazyTry/meteora-curve/dynamic_bonding_curve/shared"
	"github.com/krazyTry/meteora-curve/u128"

	solanago "github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
)

type memoryPool struct {
	config    dbc.ConfigParameters
	state     dbc.VirtualPool
	completed bool
}

// Memory is an in-process Ledger. Each pool starts at its config's start
// price holding the buffered swap amount plus the migration reserve.
type Memory struct {
	mu     sync.Mutex
	pools  map[solanago.PublicKey]*memoryPool
	logger *zap.Logger
}

var _ Store = (*Memory)(nil)

func NewMemory(logger *zap.Logger) *Memory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Memory{
		pools:  make(map[solanago.PublicKey]*memoryPool),
		logger: logger,
	}
}

// CreatePool registers a pool for config. The config is validated first.
func (m *Memory) CreatePool(pool solanago.PublicKey, config dbc.ConfigParameters, activationPoint uint64) error {
	if err := helpers.ValidateConfigParameters(config); err != nil {
		return fmt.Errorf("pool %s: %w", pool, err)
	}
	breakdown, err := helpers.ReconstructSupply(config)
	if err != nil {
		return fmt.Errorf("pool %s: %w", pool, err)
	}
	baseReserve := new(big.Int).Add(breakdown.SwapBaseAmountBuffer, breakdown.MigrationBaseAmount)
	if !baseReserve.IsUint64() {
		return fmt.Errorf("pool %s: base reserve %s overflows u64", pool, baseReserve)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.pools[pool]; ok {
		return fmt.Errorf("pool %s already exists", pool)
	}
	m.pools[pool] = &memoryPool{
		config: config,
		state: dbc.VirtualPool{
			SqrtPrice:       config.SqrtStartPrice,
			BaseReserve:     baseReserve.Uint64(),
			ActivationPoint: activationPoint,
		},
	}
	m.logger.Info("pool created",
		zap.Stringer("pool", pool),
		zap.Int("segments", len(config.Curve)),
		zap.Uint64("base_reserve", baseReserve.Uint64()),
		zap.Uint64("migration_quote_threshold", config.MigrationQuoteThreshold),
	)
	return nil
}

func (m *Memory) ReadReserve(ctx context.Context, pool solanago.PublicKey) (Reserve, error) {
	if err := ctx.Err(); err != nil {
		return Reserve{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.pools[pool]
	if !ok {
		return Reserve{}, fmt.Errorf("%s: %w", pool, dbc.ErrPoolNotFound)
	}
	return Reserve{Pool: pool, State: p.state, Config: p.config, Completed: p.completed}, nil
}

// ApplySwap prices req against the pool and moves the reserves. Input fees
// and output fees are kept out of the reserves. A swap that reaches the
// migration price or threshold completes the pool; later swaps fail with
// ErrPoolCompleted.
func (m *Memory) ApplySwap(ctx context.Context, req SwapRequest) (SwapResponse, error) {
	if err := ctx.Err(); err != nil {
		return SwapResponse{}, err
	}
	if req.AmountIn == nil || req.AmountIn.Sign() == 0 {
		return SwapResponse{}, dbc.ErrAmountZero
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.pools[req.Pool]
	if !ok {
		return SwapResponse{}, fmt.Errorf("%s: %w", req.Pool, dbc.ErrPoolNotFound)
	}
	if p.completed {
		return SwapResponse{}, fmt.Errorf("%s: %w", req.Pool, dbc.ErrPoolCompleted)
	}

	tradeDirection := dbc.TradeDirectionQuoteToBase
	if req.SwapBaseForQuote {
		tradeDirection = dbc.TradeDirectionBaseToQuote
	}
	currentPoint := req.CurrentPoint
	if currentPoint == nil {
		currentPoint = new(big.Int).SetUint64(p.state.ActivationPoint)
	}
	feeMode := math.GetFeeMode(dbc.CollectFeeMode(p.config.CollectFeeMode), tradeDirection, req.HasReferral)
	result, err := math.GetSwapResult(&p.state, &p.config, req.AmountIn, feeMode, tradeDirection, currentPoint, req.PartialFill)
	if err != nil {
		return SwapResponse{}, err
	}
	if req.MinimumAmountOut != nil && result.OutputAmount.Cmp(req.MinimumAmountOut) < 0 {
		return SwapResponse{}, fmt.Errorf("output %s below minimum %s: %w", result.OutputAmount, req.MinimumAmountOut, dbc.ErrSlippageExceeded)
	}

	grossOutput := new(big.Int).Set(result.OutputAmount)
	if !feeMode.FeesOnInput {
		grossOutput.Add(grossOutput, result.TradingFee)
		grossOutput.Add(grossOutput, result.ProtocolFee)
		grossOutput.Add(grossOutput, result.ReferralFee)
	}

	base := new(big.Int).SetUint64(p.state.BaseReserve)
	quote := new(big.Int).SetUint64(p.state.QuoteReserve)
	if req.SwapBaseForQuote {
		base.Add(base, result.ActualInputAmount)
		quote.Sub(quote, grossOutput)
	} else {
		quote.Add(quote, result.ActualInputAmount)
		base.Sub(base, grossOutput)
	}
	if base.Sign() < 0 || quote.Sign() < 0 {
		return SwapResponse{}, fmt.Errorf("swap drains reserves (base %s, quote %s): %w", base, quote, dbc.ErrInsufficientCurveLiquidity)
	}
	if !base.IsUint64() || !quote.IsUint64() {
		return SwapResponse{}, fmt.Errorf("reserves overflow u64 (base %s, quote %s)", base, quote)
	}
	nextSqrtPrice, err := u128.FromBig(result.NextSqrtPrice)
	if err != nil {
		return SwapResponse{}, err
	}

	p.state.BaseReserve = base.Uint64()
	p.state.QuoteReserve = quote.Uint64()
	p.state.SqrtPrice = nextSqrtPrice
	if p.state.QuoteReserve >= p.config.MigrationQuoteThreshold ||
		result.NextSqrtPrice.Cmp(u128.ToBig(p.config.MigrationSqrtPrice)) >= 0 {
		p.completed = true
	}

	m.logger.Debug("swap applied",
		zap.Stringer("pool", req.Pool),
		zap.Bool("base_for_quote", req.SwapBaseForQuote),
		zap.String("amount_in", result.IncludedFeeInputAmount.String()),
		zap.String("amount_out", result.OutputAmount.String()),
		zap.String("amount_left", result.AmountLeft.String()),
		zap.String("sqrt_price", result.NextSqrtPrice.String()),
	)
	if p.completed {
		m.logger.Info("pool reached migration threshold",
			zap.Stringer("pool", req.Pool),
			zap.Uint64("quote_reserve", p.state.QuoteReserve),
			zap.Uint64("base_reserve", p.state.BaseReserve),
		)
	}
	return SwapResponse{SwapResult: result, Completed: p.completed}, nil
}
