package lnd

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/ziflex/lecho/v3"
)

// LNDCluster sends every query to the currently active node. The liveness loop
// moves the active node to the first member whose graph is synced.
type LNDCluster struct {
	Nodes               []LightningClientWrapper
	Logger              *lecho.Logger
	LivenessCheckPeriod int

	mu         sync.RWMutex
	activeNode LightningClientWrapper
}

func NewLNDCluster(nodes []LightningClientWrapper, logger *lecho.Logger, livenessCheckPeriod int) (*LNDCluster, error) {
	if len(nodes) == 0 {
		return nil, fmt.Errorf("LND cluster needs at least one node")
	}
	return &LNDCluster{
		Nodes:               nodes,
		Logger:              logger,
		LivenessCheckPeriod: livenessCheckPeriod,
		activeNode:          nodes[0],
	}, nil
}

func (cluster *LNDCluster) ActiveNode() LightningClientWrapper {
	cluster.mu.RLock()
	defer cluster.mu.RUnlock()
	return cluster.activeNode
}

func (cluster *LNDCluster) StartLivenessLoop(ctx context.Context) {
	ticker := time.NewTicker(time.Duration(cluster.LivenessCheckPeriod) * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cluster.checkClusterStatus(ctx)
		}
	}
}

func (cluster *LNDCluster) checkClusterStatus(ctx context.Context) {
	for _, node := range cluster.Nodes {
		info, err := node.GetInfo(ctx)
		//if we get an error here, the node is probably offline
		//so we move to the next node
		if err != nil {
			cluster.Logger.Infof("Error connecting to cluster node: %v", err)
			continue
		}
		//if the context has been canceled, return
		if ctx.Err() != nil {
			return
		}
		//graph queries are useless against a node that is still syncing
		if !info.SyncedToGraph {
			cluster.Logger.Infof("Cluster node not synced to graph yet, node id %s", info.ID)
			continue
		}
		cluster.mu.Lock()
		switched := cluster.activeNode != node
		cluster.activeNode = node
		cluster.mu.Unlock()
		if switched {
			message := fmt.Sprintf("Switched nodes: new node id %s", info.ID)
			cluster.Logger.Info(message)
			sentry.CaptureMessage(message)
		}
		return
	}
	message := "Cluster is offline, could not find an active node"
	cluster.Logger.Error(message)
	sentry.CaptureMessage(message)
}

func (cluster *LNDCluster) GetRoute(ctx context.Context, nodeID string, amountMsat uint64, riskFactor float64) ([]RouteHop, error) {
	return cluster.ActiveNode().GetRoute(ctx, nodeID, amountMsat, riskFactor)
}

func (cluster *LNDCluster) ListNodes(ctx context.Context, nodeID string) ([]Node, error) {
	return cluster.ActiveNode().ListNodes(ctx, nodeID)
}

func (cluster *LNDCluster) ListChannels(ctx context.Context, shortChannelID string) ([]Channel, error) {
	return cluster.ActiveNode().ListChannels(ctx, shortChannelID)
}

func (cluster *LNDCluster) FeeRates(ctx context.Context, style string) (*FeeRates, error) {
	return cluster.ActiveNode().FeeRates(ctx, style)
}

func (cluster *LNDCluster) GetInfo(ctx context.Context) (*NodeInfo, error) {
	return cluster.ActiveNode().GetInfo(ctx)
}
