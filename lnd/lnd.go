package lnd

import (
	"bytes"
	"context"
	"crypto/x509"
	"encoding/hex"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/lightningnetwork/lnd/lnrpc"
	"github.com/lightningnetwork/lnd/lnrpc/walletrpc"
	"github.com/lightningnetwork/lnd/lnwallet/chainfee"
	"github.com/lightningnetwork/lnd/lnwire"
	"github.com/lightningnetwork/lnd/macaroons"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"gopkg.in/macaroon.v2"
)

// confirmation targets used to derive the fee-rate table from lnd's estimator
const (
	urgentConfTarget = 2
	htlcConfTarget   = 6
	normalConfTarget = 12
	slowConfTarget   = 100
)

// transaction weights used for the on-chain fee estimates
const (
	openingChannelWeight  = 702
	mutualCloseWeight     = 673
	unilateralCloseWeight = 598
	htlcTimeoutWeight     = 663
	htlcSuccessWeight     = 703
)

// LNDoptions are the options for the connection to the lnd node.
type LNDoptions struct {
	Address      string
	CertFile     string
	CertHex      string
	MacaroonFile string
	MacaroonHex  string
}

type LNDWrapper struct {
	client         lnrpc.LightningClient
	walletKit      walletrpc.WalletKitClient
	conn           *grpc.ClientConn
	IdentityPubkey string
}

func NewLNDclient(lndOptions LNDoptions, ctx context.Context) (result *LNDWrapper, err error) {
	// Get credentials either from a hex string or a file
	var creds credentials.TransportCredentials
	// if a hex string is provided
	if lndOptions.CertHex != "" {
		cp := x509.NewCertPool()
		cert, err := hex.DecodeString(lndOptions.CertHex)
		if err != nil {
			return nil, err
		}
		cp.AppendCertsFromPEM(cert)
		creds = credentials.NewClientTLSFromCert(cp, "")
		// if a path to a cert file is provided
	} else if lndOptions.CertFile != "" {
		credsFromFile, err := credentials.NewClientTLSFromFile(lndOptions.CertFile, "")
		if err != nil {
			return nil, err
		}
		creds = credsFromFile // make it available outside of the else if block
	} else {
		creds = credentials.NewClientTLSFromCert(nil, "")
	}

	var macaroonData []byte
	if lndOptions.MacaroonHex != "" {
		macBytes, err := hex.DecodeString(lndOptions.MacaroonHex)
		if err != nil {
			return nil, err
		}
		macaroonData = macBytes
	} else if lndOptions.MacaroonFile != "" {
		macBytes, err := os.ReadFile(lndOptions.MacaroonFile)
		if err != nil {
			return nil, err
		}
		macaroonData = macBytes // make it available outside of the else if block
	} else {
		return nil, fmt.Errorf("LND macaroon is missing")
	}

	mac := &macaroon.Macaroon{}
	if err := mac.UnmarshalBinary(macaroonData); err != nil {
		return nil, err
	}
	macCred, err := macaroons.NewMacaroonCredential(mac)
	if err != nil {
		return nil, err
	}

	opts := []grpc.DialOption{
		grpc.WithTransportCredentials(creds),
		grpc.WithPerRPCCredentials(macCred),
	}
	conn, err := grpc.DialContext(ctx, lndOptions.Address, opts...)
	if err != nil {
		return nil, err
	}

	return &LNDWrapper{
		client:    lnrpc.NewLightningClient(conn),
		walletKit: walletrpc.NewWalletKitClient(conn),
		conn:      conn,
	}, nil
}

func (wrapper *LNDWrapper) Close() error {
	return wrapper.conn.Close()
}

func (wrapper *LNDWrapper) GetRoute(ctx context.Context, nodeID string, amountMsat uint64, riskFactor float64) ([]RouteHop, error) {
	// lnd has no risk factor, its path finding weighs time locks through mission control
	resp, err := wrapper.client.QueryRoutes(ctx, &lnrpc.QueryRoutesRequest{
		PubKey:            nodeID,
		AmtMsat:           int64(amountMsat),
		UseMissionControl: true,
	})
	if err != nil {
		return nil, wrapGRPCError(err)
	}
	if len(resp.Routes) == 0 {
		return nil, fmt.Errorf("could not find a route to %s", nodeID)
	}
	info, err := wrapper.client.GetInfo(ctx, &lnrpc.GetInfoRequest{})
	if err != nil {
		return nil, wrapGRPCError(err)
	}
	return convertRoute(wrapper.IdentityPubkey, resp.Routes[0], info.BlockHeight), nil
}

// convertRoute describes every hop by the HTLC arriving at it: the amount and
// time lock are the ones the previous node forwards. lnd time locks are
// absolute heights, delays are counted in blocks from blockHeight.
func convertRoute(source string, route *lnrpc.Route, blockHeight uint32) []RouteHop {
	hops := make([]RouteHop, 0, len(route.Hops))
	amount := route.TotalAmtMsat
	delay := route.TotalTimeLock
	for _, hop := range route.Hops {
		hops = append(hops, RouteHop{
			ID:         hop.PubKey,
			Channel:    FormatShortChannelID(lnwire.NewShortChanIDFromInt(hop.ChanId)),
			Direction:  channelDirection(source, hop.PubKey),
			Msatoshi:   uint64(amount),
			AmountMsat: MilliSatoshi(amount),
			Delay:      relativeDelay(delay, blockHeight),
			Style:      "tlv",
		})
		source = hop.PubKey
		amount = hop.AmtToForwardMsat
		delay = hop.Expiry
	}
	return hops
}

func relativeDelay(timeLock, blockHeight uint32) uint32 {
	if timeLock <= blockHeight {
		return 0
	}
	return timeLock - blockHeight
}

// channelDirection follows the gossip convention: direction 0 flows from the
// node with the lexicographically smaller key.
func channelDirection(source, destination string) int {
	if strings.ToLower(source) < strings.ToLower(destination) {
		return 0
	}
	return 1
}

func (wrapper *LNDWrapper) ListNodes(ctx context.Context, nodeID string) ([]Node, error) {
	if nodeID == "" {
		graph, err := wrapper.client.DescribeGraph(ctx, &lnrpc.ChannelGraphRequest{})
		if err != nil {
			return nil, wrapGRPCError(err)
		}
		nodes := make([]Node, 0, len(graph.Nodes))
		for _, n := range graph.Nodes {
			nodes = append(nodes, convertNode(n))
		}
		return nodes, nil
	}
	resp, err := wrapper.client.GetNodeInfo(ctx, &lnrpc.NodeInfoRequest{PubKey: nodeID})
	if err != nil {
		// an unknown node is an empty result, not a failure
		if isUnknownNode(err) {
			return []Node{}, nil
		}
		return nil, wrapGRPCError(err)
	}
	return []Node{convertNode(resp.Node)}, nil
}

func convertNode(n *lnrpc.LightningNode) Node {
	addresses := []NodeAddress{}
	for _, addr := range n.Addresses {
		if a, ok := convertAddress(addr.Addr); ok {
			addresses = append(addresses, a)
		}
	}
	return Node{
		NodeID:        n.PubKey,
		Alias:         n.Alias,
		Color:         strings.TrimPrefix(n.Color, "#"),
		LastTimestamp: int64(n.LastUpdate),
		Features:      encodeFeatures(n.Features),
		Addresses:     addresses,
	}
}

func convertAddress(addr string) (NodeAddress, bool) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return NodeAddress{}, false
	}
	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return NodeAddress{}, false
	}
	addrType := "ipv4"
	switch {
	case strings.HasSuffix(host, ".onion"):
		addrType = "torv3"
	case strings.Contains(host, ":"):
		addrType = "ipv6"
	case net.ParseIP(host) == nil:
		addrType = "dns"
	}
	return NodeAddress{
		Type:    addrType,
		Address: host,
		Port:    uint16(port),
	}, true
}

func encodeFeatures(features map[uint32]*lnrpc.Feature) string {
	if len(features) == 0 {
		return ""
	}
	raw := lnwire.NewRawFeatureVector()
	for bit := range features {
		raw.Set(lnwire.FeatureBit(bit))
	}
	var buf bytes.Buffer
	if err := raw.EncodeBase256(&buf); err != nil {
		return ""
	}
	return hex.EncodeToString(buf.Bytes())
}

func (wrapper *LNDWrapper) ListChannels(ctx context.Context, shortChannelID string) ([]Channel, error) {
	if shortChannelID == "" {
		graph, err := wrapper.client.DescribeGraph(ctx, &lnrpc.ChannelGraphRequest{})
		if err != nil {
			return nil, wrapGRPCError(err)
		}
		channels := []Channel{}
		for _, edge := range graph.Edges {
			channels = append(channels, convertEdge(edge)...)
		}
		return channels, nil
	}
	scid, err := ParseShortChannelID(shortChannelID)
	if err != nil {
		return nil, err
	}
	edge, err := wrapper.client.GetChanInfo(ctx, &lnrpc.ChanInfoRequest{ChanId: scid.ToUint64()})
	if err != nil {
		return nil, wrapGRPCError(err)
	}
	return convertEdge(edge), nil
}

// convertEdge returns one record per announced direction of the channel.
func convertEdge(edge *lnrpc.ChannelEdge) []Channel {
	channels := []Channel{}
	if edge.Node1Policy != nil {
		channels = append(channels, convertPolicy(edge, edge.Node1Pub, edge.Node2Pub, 0, edge.Node1Policy))
	}
	if edge.Node2Policy != nil {
		channels = append(channels, convertPolicy(edge, edge.Node2Pub, edge.Node1Pub, 1, edge.Node2Policy))
	}
	return channels
}

func convertPolicy(edge *lnrpc.ChannelEdge, source, destination string, direction uint32, policy *lnrpc.RoutingPolicy) Channel {
	channelFlags := direction
	if policy.Disabled {
		channelFlags |= 2
	}
	var messageFlags uint32
	if policy.MaxHtlcMsat > 0 {
		messageFlags = 1
	}
	return Channel{
		Source:              source,
		Destination:         destination,
		ShortChannelID:      FormatShortChannelID(lnwire.NewShortChanIDFromInt(edge.ChannelId)),
		Public:              true,
		AmountMsat:          MilliSatoshi(edge.Capacity * MSAT_PER_SAT),
		MessageFlags:        messageFlags,
		ChannelFlags:        channelFlags,
		Active:              !policy.Disabled,
		LastUpdate:          int64(policy.LastUpdate),
		BaseFeeMillisatoshi: uint64(policy.FeeBaseMsat),
		FeePerMillionth:     uint64(policy.FeeRateMilliMsat),
		Delay:               policy.TimeLockDelta,
		HtlcMinimumMsat:     MilliSatoshi(policy.MinHtlc),
		HtlcMaximumMsat:     MilliSatoshi(policy.MaxHtlcMsat),
	}
}

func (wrapper *LNDWrapper) FeeRates(ctx context.Context, style string) (*FeeRates, error) {
	estimates := map[int32]chainfee.SatPerKWeight{}
	for _, target := range []int32{urgentConfTarget, htlcConfTarget, normalConfTarget, slowConfTarget} {
		resp, err := wrapper.walletKit.EstimateFee(ctx, &walletrpc.EstimateFeeRequest{ConfTarget: target})
		if err != nil {
			return nil, wrapGRPCError(err)
		}
		estimates[target] = chainfee.SatPerKWeight(resp.SatPerKw)
	}
	return buildFeeRates(style, estimates)
}

func buildFeeRates(style string, estimates map[int32]chainfee.SatPerKWeight) (*FeeRates, error) {
	perKw := FeeRateTable{
		Opening:         uint64(estimates[normalConfTarget]),
		MutualClose:     uint64(estimates[slowConfTarget]),
		UnilateralClose: uint64(estimates[htlcConfTarget]),
		DelayedToUs:     uint64(estimates[normalConfTarget]),
		HtlcResolution:  uint64(estimates[htlcConfTarget]),
		Penalty:         uint64(estimates[htlcConfTarget]),
		MinAcceptable:   uint64(estimates[slowConfTarget]) / 2,
		MaxAcceptable:   uint64(estimates[urgentConfTarget]) * 10,
	}
	result := &FeeRates{
		OnchainFeeEstimates: &OnchainFeeEstimates{
			OpeningChannelSatoshis:  uint64(estimates[normalConfTarget].FeeForWeight(openingChannelWeight)),
			MutualCloseSatoshis:     uint64(estimates[slowConfTarget].FeeForWeight(mutualCloseWeight)),
			UnilateralCloseSatoshis: uint64(estimates[htlcConfTarget].FeeForWeight(unilateralCloseWeight)),
			HtlcTimeoutSatoshis:     uint64(estimates[htlcConfTarget].FeeForWeight(htlcTimeoutWeight)),
			HtlcSuccessSatoshis:     uint64(estimates[htlcConfTarget].FeeForWeight(htlcSuccessWeight)),
		},
	}
	switch style {
	case FEERATE_STYLE_PERKW:
		result.PerKw = &perKw
	case FEERATE_STYLE_PERKB:
		result.PerKb = &FeeRateTable{
			Opening:         perKbFromPerKw(perKw.Opening),
			MutualClose:     perKbFromPerKw(perKw.MutualClose),
			UnilateralClose: perKbFromPerKw(perKw.UnilateralClose),
			DelayedToUs:     perKbFromPerKw(perKw.DelayedToUs),
			HtlcResolution:  perKbFromPerKw(perKw.HtlcResolution),
			Penalty:         perKbFromPerKw(perKw.Penalty),
			MinAcceptable:   perKbFromPerKw(perKw.MinAcceptable),
			MaxAcceptable:   perKbFromPerKw(perKw.MaxAcceptable),
		}
	default:
		return nil, fmt.Errorf("unknown fee rate style %q", style)
	}
	return result, nil
}

func perKbFromPerKw(satPerKw uint64) uint64 {
	return uint64(chainfee.SatPerKWeight(satPerKw).FeePerKVByte())
}

func (wrapper *LNDWrapper) GetInfo(ctx context.Context) (*NodeInfo, error) {
	info, err := wrapper.client.GetInfo(ctx, &lnrpc.GetInfoRequest{})
	if err != nil {
		return nil, wrapGRPCError(err)
	}
	network := ""
	if len(info.Chains) > 0 {
		network = info.Chains[0].Network
	}
	return &NodeInfo{
		ID:            info.IdentityPubkey,
		Alias:         info.Alias,
		Network:       network,
		BlockHeight:   info.BlockHeight,
		SyncedToGraph: info.SyncedToGraph,
	}, nil
}
