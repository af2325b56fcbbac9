package dynamic_bonding_curve

import (
	"context"
	"math/big"

	"github.com/krazyTry/meteora-curve/dynamic_bonding_curve/helpers"
	"github.com/krazyTry/meteora-curve/dynamic_bonding_curve/ledger"

	solanago "github.com/gagliardetto/solana-go"
)

type StateService struct {
	Ledger ledger.Ledger
}

func NewStateService(l ledger.Ledger) *StateService {
	return &StateService{Ledger: l}
}

func (s *StateService) GetPool(ctx context.Context, poolAddress solanago.PublicKey) (*VirtualPool, error) {
	reserve, err := s.Ledger.ReadReserve(ctx, poolAddress)
	if err != nil {
		return nil, err
	}
	return &reserve.State, nil
}

func (s *StateService) GetPoolConfig(ctx context.Context, poolAddress solanago.PublicKey) (*ConfigParameters, error) {
	reserve, err := s.Ledger.ReadReserve(ctx, poolAddress)
	if err != nil {
		return nil, err
	}
	return &reserve.Config, nil
}

func (s *StateService) GetPoolMigrationQuoteThreshold(ctx context.Context, poolAddress solanago.PublicKey) (*big.Int, error) {
	config, err := s.GetPoolConfig(ctx, poolAddress)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetUint64(config.MigrationQuoteThreshold), nil
}

// GetPoolMigrationThreshold returns the threshold and the sqrt price the
// curve reaches at it.
func (s *StateService) GetPoolMigrationThreshold(ctx context.Context, poolAddress solanago.PublicKey) (MigrationThreshold, error) {
	config, err := s.GetPoolConfig(ctx, poolAddress)
	if err != nil {
		return MigrationThreshold{}, err
	}
	return helpers.GetConfigMigrationThreshold(*config)
}

// GetPoolCurveProgress is the share of the migration threshold already
// deposited, in [0, 1].
func (s *StateService) GetPoolCurveProgress(ctx context.Context, poolAddress solanago.PublicKey) (float64, error) {
	reserve, err := s.Ledger.ReadReserve(ctx, poolAddress)
	if err != nil {
		return 0, err
	}
	return reserve.Progress(), nil
}

// GetPoolSupplyBreakdown reconstructs where the pool's supply goes.
func (s *StateService) GetPoolSupplyBreakdown(ctx context.Context, poolAddress solanago.PublicKey) (SupplyBreakdown, error) {
	config, err := s.GetPoolConfig(ctx, poolAddress)
	if err != nil {
		return SupplyBreakdown{}, err
	}
	return helpers.ReconstructSupply(*config)
}

func (s *StateService) IsPoolCompleted(ctx context.Context, poolAddress solanago.PublicKey) (bool, error) {
	reserve, err := s.Ledger.ReadReserve(ctx, poolAddress)
	if err != nil {
		return false, err
	}
	return reserve.Completed, nil
}
