package chain

import (
	"context"
)

// Oracle answers on-chain entitlement questions. Implementations must never
// surface infrastructure failures to callers: an unreachable or unconfigured
// chain reads as "no proof of access", so every method collapses errors to false.
type Oracle interface {
	HasOnChainAccess(ctx context.Context, courseExternalID int64, buyerAddress string) bool
	IsRegisteredCreator(ctx context.Context, address string) bool
}

type disabledOracle struct{}

// NewDisabledOracle returns an Oracle that answers false to everything. Used
// when no chain endpoint is configured.
func NewDisabledOracle() Oracle {
	return &disabledOracle{}
}

func (disabledOracle) HasOnChainAccess(context.Context, int64, string) bool { return false }
func (disabledOracle) IsRegisteredCreator(context.Context, string) bool     { return false }
