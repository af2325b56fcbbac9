package main

import (
	"fmt"
	"strings"

	dbc "github.com/krazyTry/meteora-curve/dynamic_bonding_curve/shared"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

const (
	designLinear    = "linear"
	designMarketCap = "market_cap"
	designConvexity = "convexity"
)

// curveRequest is a parsed parameter file. Exactly one of the params
// pointers is set, matching Design.
type curveRequest struct {
	Design    string
	Linear    *dbc.BuildCurveParams
	MarketCap *dbc.BuildCurveWithMarketCapParams
	Convexity *dbc.BuildCurveWithConvexityParams
}

func parseCurveRequest(data []byte) (curveRequest, error) {
	if !gjson.ValidBytes(data) {
		return curveRequest{}, fmt.Errorf("parameter file is not valid JSON")
	}
	root := gjson.ParseBytes(data)

	base, err := parseBaseParams(root)
	if err != nil {
		return curveRequest{}, err
	}

	design := strings.ToLower(root.Get("design").String())
	if design == "" {
		design = designLinear
	}
	req := curveRequest{Design: design}
	switch design {
	case designLinear:
		pct, err := decimalField(root, "percentageSupplyOnMigration")
		if err != nil {
			return curveRequest{}, err
		}
		threshold, err := decimalField(root, "migrationQuoteThreshold")
		if err != nil {
			return curveRequest{}, err
		}
		req.Linear = &dbc.BuildCurveParams{
			BuildCurveBaseParams:        base,
			PercentageSupplyOnMigration: pct,
			MigrationQuoteThreshold:     threshold,
		}
	case designMarketCap, designConvexity:
		initial, err := decimalField(root, "initialMarketCap")
		if err != nil {
			return curveRequest{}, err
		}
		migration, err := decimalField(root, "migrationMarketCap")
		if err != nil {
			return curveRequest{}, err
		}
		if design == designMarketCap {
			req.MarketCap = &dbc.BuildCurveWithMarketCapParams{
				BuildCurveBaseParams: base,
				InitialMarketCap:     initial,
				MigrationMarketCap:   migration,
			}
			break
		}
		convexity := decimal.NewFromInt(1)
		if root.Get("convexity").Exists() {
			if convexity, err = decimalField(root, "convexity"); err != nil {
				return curveRequest{}, err
			}
		}
		req.Convexity = &dbc.BuildCurveWithConvexityParams{
			BuildCurveBaseParams: base,
			InitialMarketCap:     initial,
			MigrationMarketCap:   migration,
			Convexity:            convexity,
		}
	default:
		return curveRequest{}, fmt.Errorf("unknown design %q, want %s, %s or %s", design, designLinear, designMarketCap, designConvexity)
	}
	return req, nil
}

func parseBaseParams(root gjson.Result) (dbc.BuildCurveBaseParams, error) {
	supply := root.Get("totalTokenSupply")
	if !supply.Exists() || supply.Uint() == 0 {
		return dbc.BuildCurveBaseParams{}, fmt.Errorf("totalTokenSupply is required")
	}

	params := dbc.BuildCurveBaseParams{
		TotalTokenSupply:  supply.Uint(),
		TokenBaseDecimal:  dbc.TokenDecimal(uintOr(root, "tokenBaseDecimal", uint64(dbc.TokenDecimalSix))),
		TokenQuoteDecimal: dbc.TokenDecimal(uintOr(root, "tokenQuoteDecimal", uint64(dbc.TokenDecimalNine))),
		LockedVestingParams: dbc.LockedVestingParams{
			TotalLockedVestingAmount:       root.Get("lockedVesting.totalLockedVestingAmount").Uint(),
			NumberOfVestingPeriod:          root.Get("lockedVesting.numberOfVestingPeriod").Uint(),
			CliffUnlockAmount:              root.Get("lockedVesting.cliffUnlockAmount").Uint(),
			TotalVestingDuration:           root.Get("lockedVesting.totalVestingDuration").Uint(),
			CliffDurationFromMigrationTime: root.Get("lockedVesting.cliffDurationFromMigrationTime").Uint(),
		},
		Leftover:        root.Get("leftover").Uint(),
		ActivationType:  dbc.ActivationType(root.Get("activationType").Uint()),
		CollectFeeMode:  dbc.CollectFeeMode(root.Get("collectFeeMode").Uint()),
		MigrationOption: dbc.MigrationOption(root.Get("migrationOption").Uint()),
		MigrationFee: dbc.MigrationFee{
			FeePercentage:        uint8(root.Get("migrationFee.feePercentage").Uint()),
			CreatorFeePercentage: uint8(root.Get("migrationFee.creatorFeePercentage").Uint()),
		},
	}

	fee := root.Get("baseFee")
	startingFeeBps := uint16(uintOr(fee, "startingFeeBps", dbc.MinFeeBps))
	params.BaseFeeParams = dbc.BaseFeeParams{
		BaseFeeMode: dbc.BaseFeeMode(fee.Get("mode").Uint()),
		FeeSchedulerParam: &dbc.FeeSchedulerParams{
			StartingFeeBps: startingFeeBps,
			EndingFeeBps:   uint16(uintOr(fee, "endingFeeBps", uint64(startingFeeBps))),
			NumberOfPeriod: uint16(fee.Get("numberOfPeriod").Uint()),
			TotalDuration:  fee.Get("totalDuration").Uint(),
		},
	}

	if buffer := root.Get("swapBufferPercentage"); buffer.Exists() {
		if buffer.Uint() > 100 {
			return dbc.BuildCurveBaseParams{}, fmt.Errorf("swapBufferPercentage %d above 100", buffer.Uint())
		}
		v := uint8(buffer.Uint())
		params.SwapBufferPercentage = &v
	}
	return params, nil
}

// decimalField reads a decimal from a JSON number or string without going
// through float64.
func decimalField(root gjson.Result, path string) (decimal.Decimal, error) {
	r := root.Get(path)
	switch r.Type {
	case gjson.Number:
		return decimal.NewFromString(r.Raw)
	case gjson.String:
		d, err := decimal.NewFromString(r.Str)
		if err != nil {
			return decimal.Zero, fmt.Errorf("%s: %w", path, err)
		}
		return d, nil
	case gjson.Null:
		if !r.Exists() {
			return decimal.Zero, fmt.Errorf("%s is required", path)
		}
	}
	return decimal.Zero, fmt.Errorf("%s: unsupported value %s", path, r.Raw)
}

func uintOr(root gjson.Result, path string, def uint64) uint64 {
	r := root.Get(path)
	if !r.Exists() {
		return def
	}
	return r.Uint()
}
