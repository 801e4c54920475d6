package lnd

import (
	"bytes"
	"encoding/json"

	"github.com/tidwall/sjson"
)

// RouteHop is one step of a payment route. Alias is filled in by the gateway
// after the route has been returned by the node.
//
// A hop decoded from node JSON keeps that document and encodes back to it
// with only the alias added. Hops built in code encode from their fields.
type RouteHop struct {
	ID         string       `json:"id"`
	Channel    string       `json:"channel"`
	Direction  int          `json:"direction"`
	Msatoshi   uint64       `json:"msatoshi"`
	AmountMsat MilliSatoshi `json:"amount_msat"`
	Delay      uint32       `json:"delay"`
	Style      string       `json:"style,omitempty"`
	Alias      string       `json:"alias"`

	raw json.RawMessage
}

func (h *RouteHop) UnmarshalJSON(data []byte) error {
	type plain RouteHop
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*h = RouteHop(p)
	h.raw = keepRaw(data)
	return nil
}

func (h RouteHop) MarshalJSON() ([]byte, error) {
	if h.raw == nil {
		type plain RouteHop
		return json.Marshal(plain(h))
	}
	return sjson.SetBytes(h.raw, "alias", h.Alias)
}

type NodeAddress struct {
	Type    string `json:"type"`
	Address string `json:"address"`
	Port    uint16 `json:"port"`
}

type Node struct {
	NodeID        string        `json:"nodeid"`
	Alias         string        `json:"alias,omitempty"`
	Color         string        `json:"color,omitempty"`
	LastTimestamp int64         `json:"last_timestamp,omitempty"`
	Features      string        `json:"features,omitempty"`
	Addresses     []NodeAddress `json:"addresses,omitempty"`

	raw json.RawMessage
}

func (n *Node) UnmarshalJSON(data []byte) error {
	type plain Node
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*n = Node(p)
	n.raw = keepRaw(data)
	return nil
}

func (n Node) MarshalJSON() ([]byte, error) {
	if n.raw != nil {
		return n.raw, nil
	}
	type plain Node
	return json.Marshal(plain(n))
}

// Channel is one direction of a public channel, as announced in gossip.
type Channel struct {
	Source              string       `json:"source"`
	Destination         string       `json:"destination"`
	ShortChannelID      string       `json:"short_channel_id"`
	Public              bool         `json:"public"`
	AmountMsat          MilliSatoshi `json:"amount_msat"`
	MessageFlags        uint32       `json:"message_flags"`
	ChannelFlags        uint32       `json:"channel_flags"`
	Active              bool         `json:"active"`
	LastUpdate          int64        `json:"last_update"`
	BaseFeeMillisatoshi uint64       `json:"base_fee_millisatoshi"`
	FeePerMillionth     uint64       `json:"fee_per_millionth"`
	Delay               uint32       `json:"delay"`
	HtlcMinimumMsat     MilliSatoshi `json:"htlc_minimum_msat"`
	HtlcMaximumMsat     MilliSatoshi `json:"htlc_maximum_msat,omitempty"`
	Features            string       `json:"features,omitempty"`

	raw json.RawMessage
}

func (c *Channel) UnmarshalJSON(data []byte) error {
	type plain Channel
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*c = Channel(p)
	c.raw = keepRaw(data)
	return nil
}

func (c Channel) MarshalJSON() ([]byte, error) {
	if c.raw != nil {
		return c.raw, nil
	}
	type plain Channel
	return json.Marshal(plain(c))
}

// FeeRateTable holds on-chain fee rates in the unit of the requested style.
type FeeRateTable struct {
	Opening         uint64 `json:"opening,omitempty"`
	MutualClose     uint64 `json:"mutual_close,omitempty"`
	UnilateralClose uint64 `json:"unilateral_close,omitempty"`
	DelayedToUs     uint64 `json:"delayed_to_us,omitempty"`
	HtlcResolution  uint64 `json:"htlc_resolution,omitempty"`
	Penalty         uint64 `json:"penalty,omitempty"`
	MinAcceptable   uint64 `json:"min_acceptable"`
	MaxAcceptable   uint64 `json:"max_acceptable"`
}

type OnchainFeeEstimates struct {
	OpeningChannelSatoshis  uint64 `json:"opening_channel_satoshis"`
	MutualCloseSatoshis     uint64 `json:"mutual_close_satoshis"`
	UnilateralCloseSatoshis uint64 `json:"unilateral_close_satoshis"`
	HtlcTimeoutSatoshis     uint64 `json:"htlc_timeout_satoshis"`
	HtlcSuccessSatoshis     uint64 `json:"htlc_success_satoshis"`
}

type FeeRates struct {
	PerKb               *FeeRateTable        `json:"perkb,omitempty"`
	PerKw               *FeeRateTable        `json:"perkw,omitempty"`
	OnchainFeeEstimates *OnchainFeeEstimates `json:"onchain_fee_estimates,omitempty"`

	raw json.RawMessage
}

func (f *FeeRates) UnmarshalJSON(data []byte) error {
	type plain FeeRates
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*f = FeeRates(p)
	f.raw = keepRaw(data)
	return nil
}

func (f FeeRates) MarshalJSON() ([]byte, error) {
	if f.raw != nil {
		return f.raw, nil
	}
	type plain FeeRates
	return json.Marshal(plain(f))
}

type NodeInfo struct {
	ID            string `json:"id"`
	Alias         string `json:"alias"`
	Network       string `json:"network"`
	BlockHeight   uint32 `json:"blockheight"`
	SyncedToGraph bool   `json:"synced_to_graph"`
}

// keepRaw copies a decoded document so it can be written back unmodified.
// A null document keeps nothing.
func keepRaw(data []byte) json.RawMessage {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	return append(json.RawMessage(nil), data...)
}
