package dynamic_bonding_curve

import (
	"context"
	"fmt"

	"github.com/krazyTry/meteora-curve/dynamic_bonding_curve/helpers"
	"github.com/krazyTry/meteora-curve/dynamic_bonding_curve/ledger"
)

type PartnerService struct {
	Store ledger.Store
	State *StateService
}

func NewPartnerService(store ledger.Store) *PartnerService {
	return &PartnerService{
		Store: store,
		State: NewStateService(store),
	}
}

// CreateConfig validates a curve config and opens a pool for it.
func (s *PartnerService) CreateConfig(ctx context.Context, params CreateConfigParams) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := helpers.ValidateConfigParameters(params.ConfigParameters); err != nil {
		return fmt.Errorf("invalid config for pool %s: %w", params.Pool, err)
	}
	return s.Store.CreatePool(params.Pool, params.ConfigParameters, params.ActivationPoint)
}

func (s *PartnerService) BuildCurve(params BuildCurveParams) (ConfigParameters, error) {
	return helpers.BuildCurve(params)
}

func (s *PartnerService) BuildCurveWithMarketCap(params BuildCurveWithMarketCapParams) (ConfigParameters, error) {
	return helpers.BuildCurveWithMarketCap(params)
}

func (s *PartnerService) BuildCurveWithConvexity(params BuildCurveWithConvexityParams) (ConfigParameters, error) {
	return helpers.BuildCurveWithConvexity(params)
}
