package main

import (
	"context"
	"encoding/base64"
	"flag"
	"fmt"
	"math/big"
	"os"

	meteora "github.com/krazyTry/meteora-curve/dynamic_bonding_curve"
	"github.com/krazyTry/meteora-curve/dynamic_bonding_curve/helpers"
	dbc "github.com/krazyTry/meteora-curve/dynamic_bonding_curve/shared"

	solanago "github.com/gagliardetto/solana-go"
	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type report struct {
	Design             string               `json:"design"`
	Config             dbc.ConfigParameters `json:"config"`
	Breakdown          dbc.SupplyBreakdown  `json:"breakdown"`
	StartPrice         decimal.Decimal      `json:"startPrice"`
	MigrationPrice     decimal.Decimal      `json:"migrationPrice"`
	StartMarketCap     decimal.Decimal      `json:"startMarketCap"`
	MigrationMarketCap decimal.Decimal      `json:"migrationMarketCap"`
	Layout             string               `json:"layout"`
	Simulation         *simulationReport    `json:"simulation,omitempty"`
}

type simulationReport struct {
	Swaps        int             `json:"swaps"`
	QuoteIn      *big.Int        `json:"quoteIn"`
	BaseOut      *big.Int        `json:"baseOut"`
	QuoteReserve uint64          `json:"quoteReserve"`
	BaseReserve  uint64          `json:"baseReserve"`
	FinalPrice   decimal.Decimal `json:"finalPrice"`
	Progress     float64         `json:"progress"`
	Completed    bool            `json:"completed"`
}

func main() {
	paramsPath := flag.String("params", "", "JSON parameter file (required)")
	simulate := flag.Int("simulate", 0, "Buy the curve to its migration threshold in this many equal quote swaps (0 disables)")
	debug := flag.Bool("debug", false, "Development logging")
	flag.Parse()

	logger, err := newLogger(*debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if *paramsPath == "" {
		logger.Fatal("--params is required")
	}
	data, err := os.ReadFile(*paramsPath)
	if err != nil {
		logger.Fatal("read parameter file", zap.String("path", *paramsPath), zap.Error(err))
	}
	req, err := parseCurveRequest(data)
	if err != nil {
		logger.Fatal("parse parameter file", zap.String("path", *paramsPath), zap.Error(err))
	}

	client := meteora.Create(logger)
	config, base, err := buildConfig(client.Partner, req)
	if err != nil {
		logger.Fatal("build curve", zap.String("design", req.Design), zap.Error(err))
	}
	logger.Info("curve built",
		zap.String("design", req.Design),
		zap.Int("segments", len(config.Curve)),
		zap.Uint64("migration_quote_threshold", config.MigrationQuoteThreshold),
	)

	out, err := newReport(req.Design, config, base)
	if err != nil {
		logger.Fatal("report", zap.Error(err))
	}

	if *simulate > 0 {
		sim, err := simulateBuys(context.Background(), client, config, *simulate)
		if err != nil {
			logger.Fatal("simulate", zap.Error(err))
		}
		sim.FinalPrice = helpers.GetPriceFromSqrtPrice(sim.finalSqrtPrice, base.TokenBaseDecimal, base.TokenQuoteDecimal)
		out.Simulation = &sim.simulationReport
	}

	s, err := jsoniter.MarshalToString(out)
	if err != nil {
		logger.Fatal("encode report", zap.Error(err))
	}
	fmt.Println(s)
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

func buildConfig(partner *meteora.PartnerService, req curveRequest) (dbc.ConfigParameters, dbc.BuildCurveBaseParams, error) {
	switch {
	case req.Linear != nil:
		config, err := partner.BuildCurve(*req.Linear)
		return config, req.Linear.BuildCurveBaseParams, err
	case req.MarketCap != nil:
		config, err := partner.BuildCurveWithMarketCap(*req.MarketCap)
		return config, req.MarketCap.BuildCurveBaseParams, err
	case req.Convexity != nil:
		config, err := partner.BuildCurveWithConvexity(*req.Convexity)
		return config, req.Convexity.BuildCurveBaseParams, err
	}
	return dbc.ConfigParameters{}, dbc.BuildCurveBaseParams{}, fmt.Errorf("no parameters for design %q", req.Design)
}

func newReport(design string, config dbc.ConfigParameters, base dbc.BuildCurveBaseParams) (report, error) {
	breakdown, err := helpers.ReconstructSupply(config)
	if err != nil {
		return report{}, err
	}
	layout, err := config.Marshal()
	if err != nil {
		return report{}, err
	}
	startPrice := helpers.GetPriceFromSqrtPrice(config.SqrtStartPrice.BigInt(), base.TokenBaseDecimal, base.TokenQuoteDecimal)
	migrationPrice := helpers.GetPriceFromSqrtPrice(config.MigrationSqrtPrice.BigInt(), base.TokenBaseDecimal, base.TokenQuoteDecimal)
	supply := decimal.NewFromUint64(base.TotalTokenSupply)
	return report{
		Design:             design,
		Config:             config,
		Breakdown:          breakdown,
		StartPrice:         startPrice,
		MigrationPrice:     migrationPrice,
		StartMarketCap:     startPrice.Mul(supply),
		MigrationMarketCap: migrationPrice.Mul(supply),
		Layout:             base64.StdEncoding.EncodeToString(layout),
	}, nil
}

type simulation struct {
	simulationReport
	finalSqrtPrice *big.Int
}

// simulateBuys opens a pool for config and buys with equal quote chunks,
// filling partially at the end, until the pool completes.
func simulateBuys(ctx context.Context, client *meteora.DynamicBondingCurveClient, config dbc.ConfigParameters, swaps int) (simulation, error) {
	pool := solanago.NewWallet().PublicKey()
	if err := client.Partner.CreateConfig(ctx, meteora.CreateConfigParams{Pool: pool, ConfigParameters: config}); err != nil {
		return simulation{}, err
	}

	chunk := new(big.Int).SetUint64(config.MigrationQuoteThreshold)
	chunk.Div(chunk, big.NewInt(int64(swaps)))
	chunk.Add(chunk, big.NewInt(1))

	sim := simulation{simulationReport: simulationReport{QuoteIn: big.NewInt(0), BaseOut: big.NewInt(0)}}
	// Fees on input keep the deposits below the chunk size, so allow a few
	// more swaps than requested.
	for i := 0; i < 2*swaps+16; i++ {
		res, err := client.Pool.Swap(ctx, meteora.SwapParams{
			Pool:        pool,
			AmountIn:    chunk,
			PartialFill: true,
		})
		if err != nil {
			return simulation{}, err
		}
		sim.Swaps++
		sim.QuoteIn.Add(sim.QuoteIn, res.IncludedFeeInputAmount)
		sim.BaseOut.Add(sim.BaseOut, res.OutputAmount)
		if res.Completed {
			break
		}
	}

	reserve, err := client.Ledger.ReadReserve(ctx, pool)
	if err != nil {
		return simulation{}, err
	}
	sim.QuoteReserve = reserve.State.QuoteReserve
	sim.BaseReserve = reserve.State.BaseReserve
	sim.Progress = reserve.Progress()
	sim.Completed = reserve.Completed
	sim.finalSqrtPrice = reserve.State.SqrtPrice.BigInt()
	return sim, nil
}
