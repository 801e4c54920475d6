package lnd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	cln "github.com/fiatjaf/lightningd-gjson-rpc"
	"github.com/tidwall/gjson"
)

type CLNClient struct {
	client *cln.Client
}

type CLNClientOptions struct {
	RPCPath     string
	SparkUrl    string
	SparkToken  string
	CallTimeout time.Duration
}

func NewCLNClient(options CLNClientOptions) (*CLNClient, error) {
	if options.RPCPath == "" && options.SparkUrl == "" {
		return nil, fmt.Errorf("CLN rpc path or spark url is missing")
	}
	return &CLNClient{
		client: &cln.Client{
			Path:        options.RPCPath,
			SparkURL:    options.SparkUrl,
			SparkToken:  options.SparkToken,
			CallTimeout: options.CallTimeout,
		},
	}, nil
}

// call runs a lightningd command. Anything that is not a command error coming
// back from lightningd is a problem with the socket and gets reported as such.
func (cl *CLNClient) call(ctx context.Context, method string, params ...interface{}) (gjson.Result, error) {
	if err := ctx.Err(); err != nil {
		return gjson.Result{}, err
	}
	res, err := cl.client.Call(method, params...)
	if err != nil {
		var cmdErr cln.ErrorCommand
		if errors.As(err, &cmdErr) {
			return res, err
		}
		return res, &ConnectionError{Err: err}
	}
	return res, nil
}

func (cl *CLNClient) GetRoute(ctx context.Context, nodeID string, amountMsat uint64, riskFactor float64) ([]RouteHop, error) {
	res, err := cl.call(ctx, "getroute", nodeID, amountMsat, riskFactor)
	if err != nil {
		return nil, err
	}
	// hops keep the node's own JSON, see RouteHop
	hops := []RouteHop{}
	if err := json.Unmarshal([]byte(res.Get("route").Raw), &hops); err != nil {
		return nil, fmt.Errorf("failed to decode getroute response: %w", err)
	}
	return hops, nil
}

func (cl *CLNClient) ListNodes(ctx context.Context, nodeID string) ([]Node, error) {
	params := []interface{}{}
	if nodeID != "" {
		params = append(params, nodeID)
	}
	res, err := cl.call(ctx, "listnodes", params...)
	if err != nil {
		return nil, err
	}
	nodes := []Node{}
	if raw := res.Get("nodes").Raw; raw != "" {
		if err := json.Unmarshal([]byte(raw), &nodes); err != nil {
			return nil, fmt.Errorf("failed to decode listnodes response: %w", err)
		}
	}
	return nodes, nil
}

func (cl *CLNClient) ListChannels(ctx context.Context, shortChannelID string) ([]Channel, error) {
	params := []interface{}{}
	if shortChannelID != "" {
		// lightningd only takes the BLOCKxTXxOUT form
		scid, err := ParseShortChannelID(shortChannelID)
		if err != nil {
			return nil, err
		}
		params = append(params, FormatShortChannelID(scid))
	}
	res, err := cl.call(ctx, "listchannels", params...)
	if err != nil {
		return nil, err
	}
	channels := []Channel{}
	if raw := res.Get("channels").Raw; raw != "" {
		if err := json.Unmarshal([]byte(raw), &channels); err != nil {
			return nil, fmt.Errorf("failed to decode listchannels response: %w", err)
		}
	}
	return channels, nil
}

func (cl *CLNClient) FeeRates(ctx context.Context, style string) (*FeeRates, error) {
	res, err := cl.call(ctx, "feerates", style)
	if err != nil {
		return nil, err
	}
	feeRates := &FeeRates{}
	if err := json.Unmarshal([]byte(res.Raw), feeRates); err != nil {
		return nil, fmt.Errorf("failed to decode feerates response: %w", err)
	}
	return feeRates, nil
}

func (cl *CLNClient) GetInfo(ctx context.Context) (*NodeInfo, error) {
	res, err := cl.call(ctx, "getinfo")
	if err != nil {
		return nil, err
	}
	return &NodeInfo{
		ID:            res.Get("id").String(),
		Alias:         res.Get("alias").String(),
		Network:       res.Get("network").String(),
		BlockHeight:   uint32(res.Get("blockheight").Int()),
		SyncedToGraph: !res.Get("warning_lightningd_sync").Exists(),
	}, nil
}
