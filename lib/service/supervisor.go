package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/getAlby/lnnetwork.go/lnd"
	"github.com/getsentry/sentry-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/ziflex/lecho/v3"
)

var nodeUp = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "lnnetwork",
	Name:      "node_up",
	Help:      "Whether the lightning node answered the last call (1) or failed with a connection error (0).",
})

// Supervisor wraps the lightning client and is the single place where
// connection faults are handled. A fault (including a panic inside the client)
// becomes a *lnd.ConnectionError for the request that hit it and flips the
// node health; the next successful call flips it back.
type Supervisor struct {
	client  lnd.LightningClientWrapper
	logger  *lecho.Logger
	period  time.Duration
	healthy atomic.Bool
}

func NewSupervisor(client lnd.LightningClientWrapper, logger *lecho.Logger, period time.Duration) *Supervisor {
	s := &Supervisor{
		client: client,
		logger: logger,
		period: period,
	}
	s.healthy.Store(true)
	nodeUp.Set(1)
	return s
}

func (s *Supervisor) Healthy() bool {
	return s.healthy.Load()
}

func (s *Supervisor) guard(method string, call func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &lnd.ConnectionError{Err: fmt.Errorf("%s panicked: %v", method, r)}
		}
		switch {
		case lnd.IsConnectionError(err):
			s.markUnhealthy(method, err)
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			// the caller gave up, this says nothing about the node
		default:
			// the node answered, even if with a command error
			s.markHealthy()
		}
	}()
	return call()
}

func (s *Supervisor) markUnhealthy(method string, err error) {
	nodeUp.Set(0)
	if s.healthy.Swap(false) {
		s.logger.Errorf("Lost connection to lightning node during %s: %v", method, err)
		sentry.CaptureException(err)
		return
	}
	s.logger.Warnf("Lightning node still unreachable during %s: %v", method, err)
}

func (s *Supervisor) markHealthy() {
	nodeUp.Set(1)
	if !s.healthy.Swap(true) {
		s.logger.Info("Connection to lightning node restored")
	}
}

// StartLivenessLoop probes the node with getinfo until ctx is done, so the
// health state recovers even when no requests come in.
func (s *Supervisor) StartLivenessLoop(ctx context.Context) {
	ticker := time.NewTicker(s.period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.probe(ctx); err != nil && ctx.Err() == nil {
				s.logger.Errorf("Liveness check failed: %v", err)
			}
		}
	}
}

func (s *Supervisor) probe(ctx context.Context) error {
	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)
	return backoff.Retry(func() error {
		_, err := s.GetInfo(ctx)
		if err != nil && !lnd.IsConnectionError(err) {
			return backoff.Permanent(err)
		}
		return err
	}, b)
}

func (s *Supervisor) GetRoute(ctx context.Context, nodeID string, amountMsat uint64, riskFactor float64) (hops []lnd.RouteHop, err error) {
	err = s.guard("getroute", func() error {
		hops, err = s.client.GetRoute(ctx, nodeID, amountMsat, riskFactor)
		return err
	})
	return hops, err
}

func (s *Supervisor) ListNodes(ctx context.Context, nodeID string) (nodes []lnd.Node, err error) {
	err = s.guard("listnodes", func() error {
		nodes, err = s.client.ListNodes(ctx, nodeID)
		return err
	})
	return nodes, err
}

func (s *Supervisor) ListChannels(ctx context.Context, shortChannelID string) (channels []lnd.Channel, err error) {
	err = s.guard("listchannels", func() error {
		channels, err = s.client.ListChannels(ctx, shortChannelID)
		return err
	})
	return channels, err
}

func (s *Supervisor) FeeRates(ctx context.Context, style string) (feeRates *lnd.FeeRates, err error) {
	err = s.guard("feerates", func() error {
		feeRates, err = s.client.FeeRates(ctx, style)
		return err
	})
	return feeRates, err
}

func (s *Supervisor) GetInfo(ctx context.Context) (info *lnd.NodeInfo, err error) {
	err = s.guard("getinfo", func() error {
		info, err = s.client.GetInfo(ctx)
		return err
	})
	return info, err
}
