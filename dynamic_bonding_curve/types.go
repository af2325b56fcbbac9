package dynamic_bonding_curve

import (
	"math/big"

	dbc "github.com/krazyTry/meteora-curve/dynamic_bonding_curve/shared"

	solanago "github.com/gagliardetto/solana-go"
)

type ConfigParameters = dbc.ConfigParameters

type LiquidityDistributionParameters = dbc.LiquidityDistributionParameters

type LockedVestingParameters = dbc.LockedVestingParameters

type VirtualPool = dbc.VirtualPool

type SupplyBreakdown = dbc.SupplyBreakdown

type MigrationThreshold = dbc.MigrationThreshold

type SwapResult = dbc.SwapResult

type SwapQuoteResult = dbc.SwapQuoteResult

type BuildCurveParams = dbc.BuildCurveParams

type BuildCurveWithMarketCapParams = dbc.BuildCurveWithMarketCapParams

type BuildCurveWithConvexityParams = dbc.BuildCurveWithConvexityParams

type MigrationOption = dbc.MigrationOption

type TradeDirection = dbc.TradeDirection

const (
	MigrationOptionMetDamm   = dbc.MigrationOptionMetDamm
	MigrationOptionMetDammV2 = dbc.MigrationOptionMetDammV2
)

const (
	TradeDirectionBaseToQuote = dbc.TradeDirectionBaseToQuote
	TradeDirectionQuoteToBase = dbc.TradeDirectionQuoteToBase
)

type CreateConfigParams struct {
	Pool            solanago.PublicKey
	ActivationPoint uint64
	ConfigParameters
}

type SwapQuoteParams struct {
	Pool             solanago.PublicKey
	SwapBaseForQuote bool
	AmountIn         *big.Int
	SlippageBps      uint16
	HasReferral      bool
	CurrentPoint     *big.Int
	PartialFill      bool
}

type SwapParams struct {
	Pool             solanago.PublicKey
	SwapBaseForQuote bool
	AmountIn         *big.Int
	MinimumAmountOut *big.Int
	HasReferral      bool
	CurrentPoint     *big.Int
	PartialFill      bool
}
