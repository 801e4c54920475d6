package integration_tests

import (
	"context"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	btcec "github.com/btcsuite/btcd/btcec/v2"
	"github.com/getAlby/lnnetwork.go/lnd"
)

// MockLN answers graph queries from memory. Route, Nodes, FailingNodes,
// Channels and LookupDelay are set up before the mock is used, the error and
// sync state can be changed while it is running.
type MockLN struct {
	Pubkey       string
	Alias        string
	Route        []lnd.RouteHop
	Nodes        map[string]lnd.Node
	FailingNodes map[string]error
	Channels     []lnd.Channel
	LookupDelay  time.Duration

	mu     sync.Mutex
	err    error
	synced bool
	panics bool
}

func NewMockLN(privkey, alias string) (*MockLN, error) {
	privKeyBytes, err := hex.DecodeString(privkey)
	if err != nil {
		return nil, err
	}
	_, pubKey := btcec.PrivKeyFromBytes(privKeyBytes)
	return &MockLN{
		Pubkey:       hex.EncodeToString(pubKey.SerializeCompressed()),
		Alias:        alias,
		Nodes:        map[string]lnd.Node{},
		FailingNodes: map[string]error{},
		synced:       true,
	}, nil
}

// SetError makes every call fail with err until it is reset with nil.
func (mock *MockLN) SetError(err error) {
	mock.mu.Lock()
	defer mock.mu.Unlock()
	mock.err = err
}

func (mock *MockLN) SetSynced(synced bool) {
	mock.mu.Lock()
	defer mock.mu.Unlock()
	mock.synced = synced
}

// SetPanics makes every call panic, like a client whose connection was torn
// down underneath it.
func (mock *MockLN) SetPanics(panics bool) {
	mock.mu.Lock()
	defer mock.mu.Unlock()
	mock.panics = panics
}

func (mock *MockLN) state() (bool, error) {
	mock.mu.Lock()
	defer mock.mu.Unlock()
	if mock.panics {
		panic("use of closed network connection")
	}
	return mock.synced, mock.err
}

func (mock *MockLN) GetRoute(ctx context.Context, nodeID string, amountMsat uint64, riskFactor float64) ([]lnd.RouteHop, error) {
	if _, err := mock.state(); err != nil {
		return nil, err
	}
	if len(mock.Route) == 0 {
		return nil, fmt.Errorf("could not find a route")
	}
	hops := make([]lnd.RouteHop, len(mock.Route))
	copy(hops, mock.Route)
	return hops, nil
}

func (mock *MockLN) ListNodes(ctx context.Context, nodeID string) ([]lnd.Node, error) {
	if _, err := mock.state(); err != nil {
		return nil, err
	}
	if mock.LookupDelay > 0 {
		select {
		case <-time.After(mock.LookupDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err, ok := mock.FailingNodes[nodeID]; ok {
		return nil, err
	}
	if nodeID == "" {
		nodes := make([]lnd.Node, 0, len(mock.Nodes))
		for _, node := range mock.Nodes {
			nodes = append(nodes, node)
		}
		return nodes, nil
	}
	node, ok := mock.Nodes[nodeID]
	if !ok {
		return []lnd.Node{}, nil
	}
	return []lnd.Node{node}, nil
}

func (mock *MockLN) ListChannels(ctx context.Context, shortChannelID string) ([]lnd.Channel, error) {
	if _, err := mock.state(); err != nil {
		return nil, err
	}
	channels := []lnd.Channel{}
	for _, channel := range mock.Channels {
		if shortChannelID == "" || channel.ShortChannelID == shortChannelID {
			channels = append(channels, channel)
		}
	}
	return channels, nil
}

func (mock *MockLN) FeeRates(ctx context.Context, style string) (*lnd.FeeRates, error) {
	if _, err := mock.state(); err != nil {
		return nil, err
	}
	table := &lnd.FeeRateTable{
		Opening:         2500,
		MutualClose:     1000,
		UnilateralClose: 5000,
		DelayedToUs:     2500,
		HtlcResolution:  5000,
		Penalty:         5000,
		MinAcceptable:   253,
		MaxAcceptable:   100000,
	}
	feeRates := &lnd.FeeRates{
		OnchainFeeEstimates: &lnd.OnchainFeeEstimates{
			OpeningChannelSatoshis:  1755,
			MutualCloseSatoshis:     673,
			UnilateralCloseSatoshis: 2990,
			HtlcTimeoutSatoshis:     3315,
			HtlcSuccessSatoshis:     3515,
		},
	}
	switch style {
	case lnd.FEERATE_STYLE_PERKW:
		feeRates.PerKw = table
	case lnd.FEERATE_STYLE_PERKB:
		perKb := *table
		perKb.Opening *= 4
		perKb.MutualClose *= 4
		perKb.UnilateralClose *= 4
		perKb.DelayedToUs *= 4
		perKb.HtlcResolution *= 4
		perKb.Penalty *= 4
		perKb.MinAcceptable *= 4
		perKb.MaxAcceptable *= 4
		feeRates.PerKb = &perKb
	default:
		return nil, fmt.Errorf("invalid feerate style %s", style)
	}
	return feeRates, nil
}

func (mock *MockLN) GetInfo(ctx context.Context) (*lnd.NodeInfo, error) {
	synced, err := mock.state()
	if err != nil {
		return nil, err
	}
	return &lnd.NodeInfo{
		ID:            mock.Pubkey,
		Alias:         mock.Alias,
		Network:       "regtest",
		BlockHeight:   800000,
		SyncedToGraph: synced,
	}, nil
}
