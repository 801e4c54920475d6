package lnd

import (
	"context"
)

const (
	FEERATE_STYLE_PERKB = "perkb"
	FEERATE_STYLE_PERKW = "perkw"
)

// LightningClientWrapper is the read-only view of a Lightning node that the
// gateway needs. Empty nodeID or shortChannelID arguments mean "all".
type LightningClientWrapper interface {
	GetRoute(ctx context.Context, nodeID string, amountMsat uint64, riskFactor float64) ([]RouteHop, error)
	ListNodes(ctx context.Context, nodeID string) ([]Node, error)
	ListChannels(ctx context.Context, shortChannelID string) ([]Channel, error)
	FeeRates(ctx context.Context, style string) (*FeeRates, error)
	GetInfo(ctx context.Context) (*NodeInfo, error)
}
