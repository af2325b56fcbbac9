package shared

import (
	"math/big"

	bin "github.com/gagliardetto/binary"
	"github.com/shopspring/decimal"
)

const (
	MaxCurvePoint = 16

	Resolution = 64

	FeeDenominator = 1_000_000_000
	MaxBasisPoint  = 10_000

	MinFeeNumerator = 2_500_000
	MaxFeeNumerator = 990_000_000

	MinFeeBps = 25
	MaxFeeBps = 9_900

	ProtocolFeePercent = 20
	HostFeePercent     = 20

	SwapBufferPercentage = 25

	MaxMigrationFeePercentage = 99
)

type ActivationType uint8

const (
	ActivationTypeSlot      ActivationType = 0
	ActivationTypeTimestamp ActivationType = 1
)

type CollectFeeMode uint8

const (
	CollectFeeModeQuoteToken  CollectFeeMode = 0
	CollectFeeModeOutputToken CollectFeeMode = 1
)

type MigrationOption uint8

const (
	// MigrationOptionMetDamm seeds a constant-product pool.
	MigrationOptionMetDamm MigrationOption = 0
	// MigrationOptionMetDammV2 seeds a concentrated pool ranging from the
	// migration price to MaxSqrtPrice.
	MigrationOptionMetDammV2 MigrationOption = 1
)

type BaseFeeMode uint8

const (
	BaseFeeModeFeeSchedulerLinear      BaseFeeMode = 0
	BaseFeeModeFeeSchedulerExponential BaseFeeMode = 1
)

type TokenDecimal uint8

const (
	TokenDecimalSix   TokenDecimal = 6
	TokenDecimalSeven TokenDecimal = 7
	TokenDecimalEight TokenDecimal = 8
	TokenDecimalNine  TokenDecimal = 9
)

type TradeDirection uint8

const (
	TradeDirectionBaseToQuote TradeDirection = 0
	TradeDirectionQuoteToBase TradeDirection = 1
)

type Rounding uint8

const (
	RoundingUp   Rounding = 0
	RoundingDown Rounding = 1
)

var (
	OneQ64 = new(big.Int).Lsh(big.NewInt(1), Resolution)

	U64Max  = new(big.Int).SetUint64(^uint64(0))
	U128Max = bigIntFromString("340282366920938463463374607431768211455")

	MinSqrtPrice = bigIntFromString("4295048016")
	MaxSqrtPrice = bigIntFromString("79226673521066979257578248091")
)

func bigIntFromString(v string) *big.Int {
	out, ok := new(big.Int).SetString(v, 10)
	if !ok {
		panic("invalid big integer literal")
	}
	return out
}

// LiquidityDistributionParameters is one curve segment. Liquidity is constant
// on (previous SqrtPrice, SqrtPrice].
type LiquidityDistributionParameters struct {
	SqrtPrice bin.Uint128
	Liquidity bin.Uint128
}

type LockedVestingParameters struct {
	AmountPerPeriod                uint64
	CliffDurationFromMigrationTime uint64
	Frequency                      uint64
	NumberOfPeriod                 uint64
	CliffUnlockAmount              uint64
}

// BaseFeeParameters is the stored fee scheduler. FirstFactor is the number of
// periods, SecondFactor the period frequency and ThirdFactor the reduction
// factor.
type BaseFeeParameters struct {
	CliffFeeNumerator uint64
	FirstFactor       uint16
	SecondFactor      uint64
	ThirdFactor       uint64
	BaseFeeMode       uint8
}

type PoolFeeParameters struct {
	BaseFee BaseFeeParameters
}

type MigrationFee struct {
	FeePercentage        uint8
	CreatorFeePercentage uint8
}

type TokenSupplyParams struct {
	PreMigrationTokenSupply  uint64
	PostMigrationTokenSupply uint64
}

// ConfigParameters is a synthesized curve configuration, in the units the
// ledger stores (lamports, Q64.64 sqrt prices).
type ConfigParameters struct {
	PoolFees                PoolFeeParameters
	CollectFeeMode          uint8
	MigrationOption         uint8
	ActivationType          uint8
	TokenDecimal            uint8
	MigrationQuoteThreshold uint64
	SqrtStartPrice          bin.Uint128
	MigrationSqrtPrice      bin.Uint128
	LockedVesting           LockedVestingParameters
	MigrationFee            MigrationFee
	TokenSupply             TokenSupplyParams
	Leftover                uint64
	SwapBufferPercentage    uint8
	Curve                   []LiquidityDistributionParameters
}

// VirtualPool is the ledger-side state of one curve.
type VirtualPool struct {
	SqrtPrice       bin.Uint128
	BaseReserve     uint64
	QuoteReserve    uint64
	ActivationPoint uint64
}

type FeeSchedulerParams struct {
	StartingFeeBps uint16
	EndingFeeBps   uint16
	NumberOfPeriod uint16
	TotalDuration  uint64
}

type BaseFeeParams struct {
	BaseFeeMode       BaseFeeMode
	FeeSchedulerParam *FeeSchedulerParams
}

type LockedVestingParams struct {
	TotalLockedVestingAmount       uint64
	NumberOfVestingPeriod          uint64
	CliffUnlockAmount              uint64
	TotalVestingDuration           uint64
	CliffDurationFromMigrationTime uint64
}

// BuildCurveBaseParams are the market parameters shared by every curve
// design. Token amounts are whole tokens; they are scaled by
// TokenBaseDecimal when the curve is built.
type BuildCurveBaseParams struct {
	TotalTokenSupply    uint64
	TokenBaseDecimal    TokenDecimal
	TokenQuoteDecimal   TokenDecimal
	LockedVestingParams LockedVestingParams
	Leftover            uint64
	BaseFeeParams       BaseFeeParams
	ActivationType      ActivationType
	CollectFeeMode      CollectFeeMode
	MigrationOption     MigrationOption
	MigrationFee        MigrationFee
	// SwapBufferPercentage overrides the default SwapBufferPercentage headroom
	// kept on the swap phase. nil selects the default.
	SwapBufferPercentage *uint8
}

type BuildCurveParams struct {
	BuildCurveBaseParams
	PercentageSupplyOnMigration decimal.Decimal
	MigrationQuoteThreshold     decimal.Decimal
}

type BuildCurveWithMarketCapParams struct {
	BuildCurveBaseParams
	InitialMarketCap   decimal.Decimal
	MigrationMarketCap decimal.Decimal
}

type BuildCurveWithConvexityParams struct {
	BuildCurveBaseParams
	InitialMarketCap   decimal.Decimal
	MigrationMarketCap decimal.Decimal
	// Convexity is the ratio between consecutive segment liquidities.
	Convexity decimal.Decimal
}

// MigrationThreshold is the quote a curve collects before migration and the
// sqrt price the walk reaches when it does.
type MigrationThreshold struct {
	QuoteAmount *big.Int
	SqrtPrice   *big.Int
}

type SupplyBreakdown struct {
	SwapBaseAmount       *big.Int
	SwapBaseAmountBuffer *big.Int
	MigrationBaseAmount  *big.Int
	VestingAmount        *big.Int
	LeftoverAmount       *big.Int
	MigrationSqrtPrice   *big.Int
}

// Total is the supply the curve needs: buffered swap amount, migration
// reserve, vesting and leftover.
func (s SupplyBreakdown) Total() *big.Int {
	total := new(big.Int)
	for _, v := range []*big.Int{s.SwapBaseAmountBuffer, s.MigrationBaseAmount, s.VestingAmount, s.LeftoverAmount} {
		if v != nil {
			total.Add(total, v)
		}
	}
	return total
}

// SwapResult is the outcome of one swap. ActualInputAmount excludes the
// input fee; IncludedFeeInputAmount is what the trader pays. AmountLeft is the
// unfilled input of a partial fill.
type SwapResult struct {
	IncludedFeeInputAmount *big.Int
	ActualInputAmount      *big.Int
	AmountLeft             *big.Int
	OutputAmount           *big.Int
	NextSqrtPrice          *big.Int
	TradingFee             *big.Int
	ProtocolFee            *big.Int
	ReferralFee            *big.Int
}

type FeeMode struct {
	FeesOnInput     bool
	FeesOnBaseToken bool
	HasReferral     bool
}

type SwapQuoteResult struct {
	SwapResult
	MinimumAmountOut *big.Int
}

type FeeOnAmountResult struct {
	Amount      *big.Int
	ProtocolFee *big.Int
	TradingFee  *big.Int
	ReferralFee *big.Int
}

type SwapAmount struct {
	OutputAmount  *big.Int
	NextSqrtPrice *big.Int
	AmountLeft    *big.Int
}

type BaseFeeHandler interface {
	Validate() bool
	GetMinBaseFeeNumerator() *big.Int
	GetBaseFeeNumerator(currentPoint, activationPoint *big.Int) *big.Int
}
