package dynamic_bonding_curve

import (
	"github.com/krazyTry/meteora-curve/dynamic_bonding_curve/ledger"

	"go.uber.org/zap"
)

// DynamicBondingCurveClient groups high-level services over one ledger.
type DynamicBondingCurveClient struct {
	Pool    *PoolService
	Partner *PartnerService
	State   *StateService
	Ledger  ledger.Store
}

// NewDynamicBondingCurveClient constructs a client trading against store.
func NewDynamicBondingCurveClient(store ledger.Store) *DynamicBondingCurveClient {
	return &DynamicBondingCurveClient{
		Pool:    NewPoolService(store),
		Partner: NewPartnerService(store),
		State:   NewStateService(store),
		Ledger:  store,
	}
}

// Create is a convenience constructor over a fresh in-memory ledger.
func Create(logger *zap.Logger) *DynamicBondingCurveClient {
	return NewDynamicBondingCurveClient(ledger.NewMemory(logger))
}
