package lnd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

const lightningdFeeRates = `{"perkb":{"opening":10000,"mutual_close":5000,"unilateral_close":20000,"unilateral_anchor_close":4000,"penalty":10000,"min_acceptable":1012,"max_acceptable":200000,"floor":1012,"estimates":[{"blockcount":2,"feerate":20000,"smoothed_feerate":20000}],"urgent":20000,"normal":10000,"slow":4000},"onchain_fee_estimates":{"opening_channel_satoshis":7020}}`

func TestDecodedFeeRatesEncodeVerbatim(t *testing.T) {
	feeRates := &FeeRates{}
	assert.NoError(t, json.Unmarshal([]byte(lightningdFeeRates), feeRates))
	assert.Equal(t, uint64(10000), feeRates.PerKb.Opening)

	out, err := json.Marshal(feeRates)
	assert.NoError(t, err)
	assert.JSONEq(t, lightningdFeeRates, string(out))
	assert.NotContains(t, string(out), "mutual_close_satoshis")
}

func TestDecodedChannelEncodesVerbatim(t *testing.T) {
	raw := `{"source":"02aa","destination":"03bb","short_channel_id":"103x1x0","direction":0,"public":true,"amount_msat":1000000000,"satoshis":1000000,"message_flags":1,"channel_flags":0,"active":true,"last_update":1700000000,"base_fee_millisatoshi":1,"fee_per_millionth":10,"delay":6,"htlc_minimum_msat":0,"htlc_maximum_msat":990000000,"features":""}`
	channels := []Channel{}
	assert.NoError(t, json.Unmarshal([]byte("["+raw+"]"), &channels))
	assert.Equal(t, MilliSatoshi(1000000000), channels[0].AmountMsat)

	out, err := json.Marshal(channels)
	assert.NoError(t, err)
	assert.Equal(t, "["+raw+"]", string(out))
}

func TestDecodedNodeEncodesVerbatim(t *testing.T) {
	raw := `{"nodeid":"02aa","alias":"alby","color":"3399ff","last_timestamp":1700000000,"features":"88a0","globalfeatures":"88a0","addresses":[{"type":"ipv4","address":"1.2.3.4","port":9735}]}`
	node := Node{}
	assert.NoError(t, json.Unmarshal([]byte(raw), &node))
	assert.Equal(t, "alby", node.Alias)

	out, err := json.Marshal(node)
	assert.NoError(t, err)
	assert.Equal(t, raw, string(out))
}

func TestDecodedRouteHopOnlyGainsAlias(t *testing.T) {
	raw := `{"id":"02aa","channel":"103x1x0","direction":1,"amount_msat":100010,"delay":15,"style":"tlv"}`
	hop := RouteHop{}
	assert.NoError(t, json.Unmarshal([]byte(raw), &hop))
	hop.Alias = "alby"

	out, err := json.Marshal(hop)
	assert.NoError(t, err)
	assert.Equal(t, `{"id":"02aa","channel":"103x1x0","direction":1,"amount_msat":100010,"delay":15,"style":"tlv","alias":"alby"}`, string(out))

	// an alias sent by the node is overwritten, not duplicated
	raw = `{"id":"02aa","alias":"stale"}`
	assert.NoError(t, json.Unmarshal([]byte(raw), &hop))
	hop.Alias = ""
	out, err = json.Marshal(hop)
	assert.NoError(t, err)
	assert.Equal(t, `{"id":"02aa","alias":""}`, string(out))
}

func TestBuiltEntitiesEncodeFromFields(t *testing.T) {
	out, err := json.Marshal(RouteHop{ID: "02aa", Channel: "103x1x0", AmountMsat: 100010, Delay: 15})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"id":"02aa","channel":"103x1x0","direction":0,"msatoshi":0,"amount_msat":"100010msat","delay":15,"alias":""}`, string(out))

	out, err = json.Marshal(&FeeRates{PerKw: &FeeRateTable{Opening: 253, MinAcceptable: 253, MaxAcceptable: 25000}})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"perkw":{"opening":253,"min_acceptable":253,"max_acceptable":25000}}`, string(out))
}
