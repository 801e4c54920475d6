package integration_tests

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/getAlby/lnnetwork.go/controllers"
	"github.com/getAlby/lnnetwork.go/lib/responses"
	"github.com/getAlby/lnnetwork.go/lib/service"
	"github.com/getAlby/lnnetwork.go/lnd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type NetworkTestSuite struct {
	TestSuite
	service *service.NetworkService
	mockLN  *MockLN
	hop1    *MockLN
	hop2    *MockLN
}

func (suite *NetworkTestSuite) SetupSuite() {
	mockLN, err := NewMockLN(lnd1Privkey, "alby-regtest-lnd1")
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	hop1, err := NewMockLN(lnd2Privkey, "alby-regtest-lnd2")
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	hop2, err := NewMockLN(lnd3Privkey, "alby-regtest-lnd3")
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	mockLN.Route = []lnd.RouteHop{
		{ID: hop1.Pubkey, Channel: "103x1x0", Direction: 1, Msatoshi: 100010, AmountMsat: 100010, Delay: 15, Style: "tlv"},
		{ID: hop2.Pubkey, Channel: "109x1x1", Direction: 0, Msatoshi: 100000, AmountMsat: 100000, Delay: 9, Style: "tlv"},
	}
	mockLN.Nodes[hop1.Pubkey] = lnd.Node{NodeID: hop1.Pubkey, Alias: hop1.Alias, Color: "3399ff", Addresses: []lnd.NodeAddress{}}
	mockLN.Nodes[hop2.Pubkey] = lnd.Node{NodeID: hop2.Pubkey, Alias: hop2.Alias, Color: "ff9900", Addresses: []lnd.NodeAddress{}}
	mockLN.Channels = []lnd.Channel{
		{Source: hop1.Pubkey, Destination: hop2.Pubkey, ShortChannelID: "103x1x0", Public: true, AmountMsat: 1000000000, Active: true, Delay: 40},
		{Source: hop2.Pubkey, Destination: hop1.Pubkey, ShortChannelID: "103x1x0", Public: true, AmountMsat: 1000000000, ChannelFlags: 1, Active: true, Delay: 40},
	}

	suite.mockLN = mockLN
	suite.hop1 = hop1
	suite.hop2 = hop2
	suite.service = NetworkTestServiceInit(mockLN)
	suite.echo = newTestEcho(suite.service)
}

func (suite *NetworkTestSuite) SetupTest() {
	suite.mockLN.SetError(nil)
	suite.mockLN.SetPanics(false)
	suite.mockLN.FailingNodes = map[string]error{}
	// a successful call brings the supervisor back to healthy
	_, err := suite.service.LnClient.GetInfo(context.Background())
	assert.NoError(suite.T(), err)
}

func (suite *NetworkTestSuite) decodeHops(path string) []lnd.RouteHop {
	rec := suite.doGet(path)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	hops := []lnd.RouteHop{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(&hops))
	return hops
}

func (suite *NetworkTestSuite) TestGetRouteAttachesAliases() {
	hops := suite.decodeHops(fmt.Sprintf("/network/getRoute?pubkey=%s&msats=100000", suite.hop2.Pubkey))
	assert.Len(suite.T(), hops, 2)
	assert.Equal(suite.T(), suite.hop1.Pubkey, hops[0].ID)
	assert.Equal(suite.T(), "alby-regtest-lnd2", hops[0].Alias)
	assert.Equal(suite.T(), "103x1x0", hops[0].Channel)
	assert.Equal(suite.T(), lnd.MilliSatoshi(100010), hops[0].AmountMsat)
	assert.Equal(suite.T(), uint32(15), hops[0].Delay)
	assert.Equal(suite.T(), suite.hop2.Pubkey, hops[1].ID)
	assert.Equal(suite.T(), "alby-regtest-lnd3", hops[1].Alias)
}

func (suite *NetworkTestSuite) TestGetRoutePathParams() {
	hops := suite.decodeHops(fmt.Sprintf("/network/getRoute/%s/100000/10", suite.hop2.Pubkey))
	assert.Len(suite.T(), hops, 2)
	assert.Equal(suite.T(), "alby-regtest-lnd3", hops[1].Alias)

	hops = suite.decodeHops(fmt.Sprintf("/network/getRoute/%s/100000", suite.hop2.Pubkey))
	assert.Len(suite.T(), hops, 2)
}

func (suite *NetworkTestSuite) TestGetRouteKeepsHopsWhenAliasLookupFails() {
	suite.mockLN.FailingNodes[suite.hop1.Pubkey] = fmt.Errorf("node lookup failed")

	rec := suite.doGet(fmt.Sprintf("/network/getRoute?pubkey=%s&msats=100000", suite.hop2.Pubkey))
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	raw := []map[string]interface{}{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(&raw))
	assert.Len(suite.T(), raw, 2)
	// the alias key is always present, empty for the failed lookup
	assert.Equal(suite.T(), "", raw[0]["alias"])
	assert.Equal(suite.T(), "alby-regtest-lnd3", raw[1]["alias"])
	assert.Equal(suite.T(), "100010msat", raw[0]["amount_msat"])
	// a failed alias lookup is not a connection problem
	assert.True(suite.T(), suite.service.NodeHealthy())
}

func (suite *NetworkTestSuite) TestGetRouteUnknownHopGetsEmptyAlias() {
	node := suite.mockLN.Nodes[suite.hop2.Pubkey]
	delete(suite.mockLN.Nodes, suite.hop2.Pubkey)
	defer func() {
		suite.mockLN.Nodes[suite.hop2.Pubkey] = node
	}()

	hops := suite.decodeHops(fmt.Sprintf("/network/getRoute?pubkey=%s&msats=100000", suite.hop2.Pubkey))
	assert.Len(suite.T(), hops, 2)
	assert.Equal(suite.T(), "alby-regtest-lnd2", hops[0].Alias)
	assert.Equal(suite.T(), "", hops[1].Alias)
}

func (suite *NetworkTestSuite) TestGetRouteMissingParams() {
	errResp := checkErrResponse(&suite.TestSuite, suite.doGet("/network/getRoute"))
	assert.Equal(suite.T(), responses.BadArgumentsError.Code, errResp.Code)

	errResp = checkErrResponse(&suite.TestSuite, suite.doGet(fmt.Sprintf("/network/getRoute?pubkey=%s", suite.hop2.Pubkey)))
	assert.Equal(suite.T(), responses.BadArgumentsError.Code, errResp.Code)

	errResp = checkErrResponse(&suite.TestSuite, suite.doGet(fmt.Sprintf("/network/getRoute?pubkey=%s&msats=lots", suite.hop2.Pubkey)))
	assert.Equal(suite.T(), responses.BadArgumentsError.Code, errResp.Code)
}

func (suite *NetworkTestSuite) TestGetRouteInvalidPubkey() {
	errResp := checkErrResponse(&suite.TestSuite, suite.doGet("/network/getRoute?pubkey=03abc&msats=100000"))
	assert.Equal(suite.T(), responses.InvalidPubkeyError.Code, errResp.Code)
	assert.Equal(suite.T(), responses.InvalidPubkeyError.Message, errResp.Message)
}

func (suite *NetworkTestSuite) TestGetRouteNodeError() {
	suite.mockLN.SetError(fmt.Errorf("Could not find a route"))

	errResp := checkNodeErrResponse(&suite.TestSuite, suite.doGet(fmt.Sprintf("/network/getRoute?pubkey=%s&msats=100000", unknownPubkey)))
	assert.Equal(suite.T(), "Could not find a route", errResp.Error)
	// the node answered, so it is still healthy
	assert.Equal(suite.T(), http.StatusOK, suite.doGet("/health").Code)
}

func (suite *NetworkTestSuite) TestConnectionErrorFailsRequestAndHealth() {
	suite.mockLN.SetError(&lnd.ConnectionError{Err: fmt.Errorf("connect: connection refused")})

	errResp := checkNodeErrResponse(&suite.TestSuite, suite.doGet(fmt.Sprintf("/network/getRoute?pubkey=%s&msats=100000", suite.hop2.Pubkey)))
	assert.Contains(suite.T(), errResp.Error, "connection refused")

	rec := suite.doGet("/health")
	assert.Equal(suite.T(), http.StatusServiceUnavailable, rec.Code)
	health := &controllers.HealthResponse{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(health))
	assert.Equal(suite.T(), "UNAVAILABLE", health.Result)

	// the process keeps serving and recovers with the node
	suite.mockLN.SetError(nil)
	hops := suite.decodeHops(fmt.Sprintf("/network/getRoute?pubkey=%s&msats=100000", suite.hop2.Pubkey))
	assert.Len(suite.T(), hops, 2)
	assert.Equal(suite.T(), http.StatusOK, suite.doGet("/health").Code)
}

func (suite *NetworkTestSuite) TestPanickingClientBecomesConnectionError() {
	suite.mockLN.SetPanics(true)

	errResp := checkNodeErrResponse(&suite.TestSuite, suite.doGet(fmt.Sprintf("/network/listNode?pubkey=%s", suite.hop1.Pubkey)))
	assert.Contains(suite.T(), errResp.Error, "lightning node connection failed")
	assert.Equal(suite.T(), http.StatusServiceUnavailable, suite.doGet("/health").Code)
}

func (suite *NetworkTestSuite) TestListNode() {
	for _, path := range []string{
		fmt.Sprintf("/network/listNode?pubkey=%s", suite.hop1.Pubkey),
		fmt.Sprintf("/network/listNode/%s", suite.hop1.Pubkey),
	} {
		rec := suite.doGet(path)
		assert.Equal(suite.T(), http.StatusOK, rec.Code, path)
		nodes := []lnd.Node{}
		assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(&nodes))
		assert.Len(suite.T(), nodes, 1)
		assert.Equal(suite.T(), suite.hop1.Pubkey, nodes[0].NodeID)
		assert.Equal(suite.T(), "alby-regtest-lnd2", nodes[0].Alias)
	}
}

func (suite *NetworkTestSuite) TestListNodeUnknownIsEmpty() {
	rec := suite.doGet(fmt.Sprintf("/network/listNode?pubkey=%s", unknownPubkey))
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	nodes := []lnd.Node{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(&nodes))
	assert.Empty(suite.T(), nodes)
}

func (suite *NetworkTestSuite) TestListNodeInvalidParams() {
	errResp := checkErrResponse(&suite.TestSuite, suite.doGet("/network/listNode"))
	assert.Equal(suite.T(), responses.BadArgumentsError.Code, errResp.Code)

	errResp = checkErrResponse(&suite.TestSuite, suite.doGet("/network/listNode?pubkey=not-a-key"))
	assert.Equal(suite.T(), responses.InvalidPubkeyError.Code, errResp.Code)
}

func (suite *NetworkTestSuite) TestListChannel() {
	for _, path := range []string{"/network/listChannel?shortchannelid=103x1x0", "/network/listChannel/103x1x0"} {
		rec := suite.doGet(path)
		assert.Equal(suite.T(), http.StatusOK, rec.Code, path)
		channels := []lnd.Channel{}
		assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(&channels))
		assert.Len(suite.T(), channels, 2)
		assert.Equal(suite.T(), suite.hop1.Pubkey, channels[0].Source)
		assert.Equal(suite.T(), uint32(1), channels[1].ChannelFlags)
	}
}

func (suite *NetworkTestSuite) TestListChannelInvalidParams() {
	errResp := checkErrResponse(&suite.TestSuite, suite.doGet("/network/listChannel"))
	assert.Equal(suite.T(), responses.BadArgumentsError.Code, errResp.Code)

	errResp = checkErrResponse(&suite.TestSuite, suite.doGet("/network/listChannel?shortchannelid=103-1-0"))
	assert.Equal(suite.T(), responses.InvalidShortChannelIDError.Message, errResp.Message)
}

func (suite *NetworkTestSuite) TestFeeRates() {
	rec := suite.doGet("/network/feeRates?feeratestyle=perkw")
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	feeRates := &lnd.FeeRates{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(feeRates))
	assert.Nil(suite.T(), feeRates.PerKb)
	assert.Equal(suite.T(), uint64(2500), feeRates.PerKw.Opening)
	assert.Equal(suite.T(), uint64(1755), feeRates.OnchainFeeEstimates.OpeningChannelSatoshis)

	rec = suite.doGet("/network/feeRates/perkb")
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	feeRates = &lnd.FeeRates{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(feeRates))
	assert.Nil(suite.T(), feeRates.PerKw)
	assert.Equal(suite.T(), uint64(10000), feeRates.PerKb.Opening)
}

func (suite *NetworkTestSuite) TestFeeRatesInvalidStyle() {
	errResp := checkErrResponse(&suite.TestSuite, suite.doGet("/network/feeRates?feeratestyle=persat"))
	assert.Equal(suite.T(), responses.BadArgumentsError.Code, errResp.Code)

	errResp = checkErrResponse(&suite.TestSuite, suite.doGet("/network/feeRates"))
	assert.Equal(suite.T(), responses.BadArgumentsError.Code, errResp.Code)
}

func (suite *NetworkTestSuite) TestGetInfo() {
	rec := suite.doGet("/getinfo")
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	info := &lnd.NodeInfo{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(info))
	assert.Equal(suite.T(), suite.mockLN.Pubkey, info.ID)
	assert.Equal(suite.T(), "alby-regtest-lnd1", info.Alias)
}

func (suite *NetworkTestSuite) TearDownSuite() {}

func TestNetworkTestSuite(t *testing.T) {
	suite.Run(t, new(NetworkTestSuite))
}

func TestGetRouteLooksUpAliasesConcurrently(t *testing.T) {
	mockLN, err := NewMockLN(lnd1Privkey, "alby-regtest-lnd1")
	assert.NoError(t, err)
	mockLN.LookupDelay = 100 * time.Millisecond
	for i := 0; i < 5; i++ {
		hop, err := NewMockLN(fmt.Sprintf("%064x", i+1), fmt.Sprintf("hop-%d", i))
		assert.NoError(t, err)
		mockLN.Route = append(mockLN.Route, lnd.RouteHop{ID: hop.Pubkey, Channel: fmt.Sprintf("%dx1x0", 100+i)})
		mockLN.Nodes[hop.Pubkey] = lnd.Node{NodeID: hop.Pubkey, Alias: hop.Alias}
	}
	svc := NetworkTestServiceInit(mockLN)

	start := time.Now()
	hops, err := svc.GetRoute(context.Background(), unknownPubkey, 1000, 0)
	elapsed := time.Since(start)

	assert.NoError(t, err)
	assert.Len(t, hops, 5)
	for i, hop := range hops {
		assert.Equal(t, fmt.Sprintf("hop-%d", i), hop.Alias)
	}
	// five sequential lookups would take 500ms
	assert.Less(t, elapsed, 400*time.Millisecond)
}

func TestAccessTokenRequired(t *testing.T) {
	mockLN, err := NewMockLN(lnd1Privkey, "alby-regtest-lnd1")
	assert.NoError(t, err)
	svc := NetworkTestServiceInit(mockLN)
	svc.Config.AccessToken = "SECRET"
	e := newTestEcho(svc)

	for token, expected := range map[string]int{
		"WRONG":  http.StatusUnauthorized,
		"SECRET": http.StatusOK,
	} {
		req := httptest.NewRequest(http.MethodGet, "/network/feeRates?feeratestyle=perkw", nil)
		req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", token))
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, expected, rec.Code, token)
	}

	// health stays open for load balancers
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
