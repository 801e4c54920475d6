package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/getAlby/lnnetwork.go/lnd"
)

type fakeClient struct {
	mu        sync.Mutex
	err       error
	panics    bool
	route     []lnd.RouteHop
	aliases   map[string]string
	failing   map[string]error
	delay     time.Duration
	nodeCalls int
}

func (f *fakeClient) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *fakeClient) check() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.panics {
		panic("connection reset by peer")
	}
	return f.err
}

func (f *fakeClient) GetRoute(ctx context.Context, nodeID string, amountMsat uint64, riskFactor float64) ([]lnd.RouteHop, error) {
	if err := f.check(); err != nil {
		return nil, err
	}
	return append([]lnd.RouteHop{}, f.route...), nil
}

func (f *fakeClient) ListNodes(ctx context.Context, nodeID string) ([]lnd.Node, error) {
	f.mu.Lock()
	f.nodeCalls++
	f.mu.Unlock()
	if err := f.check(); err != nil {
		return nil, err
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if err, ok := f.failing[nodeID]; ok {
		return nil, err
	}
	alias, ok := f.aliases[nodeID]
	if !ok {
		return []lnd.Node{}, nil
	}
	return []lnd.Node{{NodeID: nodeID, Alias: alias}}, nil
}

func (f *fakeClient) ListChannels(ctx context.Context, shortChannelID string) ([]lnd.Channel, error) {
	if err := f.check(); err != nil {
		return nil, err
	}
	return []lnd.Channel{{ShortChannelID: shortChannelID}}, nil
}

func (f *fakeClient) FeeRates(ctx context.Context, style string) (*lnd.FeeRates, error) {
	if err := f.check(); err != nil {
		return nil, err
	}
	if style != lnd.FEERATE_STYLE_PERKW {
		return nil, fmt.Errorf("unsupported style %s", style)
	}
	return &lnd.FeeRates{PerKw: &lnd.FeeRateTable{Opening: 253}}, nil
}

func (f *fakeClient) GetInfo(ctx context.Context) (*lnd.NodeInfo, error) {
	if err := f.check(); err != nil {
		return nil, err
	}
	return &lnd.NodeInfo{ID: "self", SyncedToGraph: true}, nil
}
