package service

import (
	"context"
	"fmt"

	"github.com/getAlby/lnnetwork.go/lnd"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var aliasLookupFailures = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "lnnetwork",
	Name:      "alias_lookup_failures_total",
	Help:      "Number of route hops returned without an alias because the node lookup failed.",
})

// GetRoute asks the node for a route and attaches the alias of every hop.
// Hops whose alias can not be looked up keep an empty alias.
func (svc *NetworkService) GetRoute(ctx context.Context, nodeID string, amountMsat uint64, riskFactor float64) ([]lnd.RouteHop, error) {
	hops, err := svc.LnClient.GetRoute(ctx, nodeID, amountMsat, riskFactor)
	if err != nil {
		return nil, err
	}
	return svc.attachAliases(ctx, hops), nil
}

func (svc *NetworkService) attachAliases(ctx context.Context, hops []lnd.RouteHop) []lnd.RouteHop {
	results := SettleAll(ctx, hops, func(ctx context.Context, hop lnd.RouteHop) (string, error) {
		return svc.lookupAlias(ctx, hop.ID)
	})
	enriched := make([]lnd.RouteHop, len(hops))
	for i, result := range results {
		enriched[i] = hops[i]
		enriched[i].Alias = result.Value
		if result.Err != nil {
			svc.Logger.Warnf("Node lookup for getroute failed, node id %s: %v", hops[i].ID, result.Err)
			aliasLookupFailures.Inc()
			enriched[i].Alias = ""
		}
	}
	return enriched
}

func (svc *NetworkService) lookupAlias(ctx context.Context, nodeID string) (string, error) {
	if nodeID == "" {
		return "", fmt.Errorf("hop without node id")
	}
	nodes, err := svc.LnClient.ListNodes(ctx, nodeID)
	if err != nil {
		return "", err
	}
	if len(nodes) == 0 {
		return "", fmt.Errorf("node %s not found in graph", nodeID)
	}
	return nodes[0].Alias, nil
}

func (svc *NetworkService) ListNode(ctx context.Context, nodeID string) ([]lnd.Node, error) {
	return svc.LnClient.ListNodes(ctx, nodeID)
}

func (svc *NetworkService) ListChannel(ctx context.Context, shortChannelID string) ([]lnd.Channel, error) {
	return svc.LnClient.ListChannels(ctx, shortChannelID)
}

func (svc *NetworkService) FeeRates(ctx context.Context, style string) (*lnd.FeeRates, error) {
	return svc.LnClient.FeeRates(ctx, style)
}

func (svc *NetworkService) GetInfo(ctx context.Context) (*lnd.NodeInfo, error) {
	return svc.LnClient.GetInfo(ctx)
}
