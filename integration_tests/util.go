package integration_tests

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/getAlby/lnnetwork.go/lib"
	"github.com/getAlby/lnnetwork.go/lib/logging"
	"github.com/getAlby/lnnetwork.go/lib/responses"
	"github.com/getAlby/lnnetwork.go/lib/service"
	"github.com/getAlby/lnnetwork.go/lib/tokens"
	"github.com/getAlby/lnnetwork.go/lib/transport"
	"github.com/getAlby/lnnetwork.go/lnd"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

// regtest keys of the three nodes used across the tests
const (
	lnd1Privkey = "0c3b3a7d0e3f63a9dc2e2c5a3bd9b1b4c6a1e3f5d7b9a1c3e5f7a9b1c3d5e7f9"
	lnd2Privkey = "1d4c4b8e1f4074badd3f3d6b4cea2c5d7b2f4a6e8cab2d4f6a8bac2d4e6f8a0b"
	lnd3Privkey = "2e5d5c9f20518bcbee404e7c5dfb3d6e8c3a5b7f9dbc3e5a7b9cbd3e5f7a9b1c"

	// secp256k1 generator point, a valid key that is not in any graph
	unknownPubkey = "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"
)

func NetworkTestServiceInit(lnMock lnd.LightningClientWrapper) *service.NetworkService {
	c := &service.Config{
		DefaultRateLimit:    10,
		LivenessCheckPeriod: 1,
	}
	logger := logging.Logger(c.LogFilePath)
	return &service.NetworkService{
		Config:   c,
		LnClient: service.NewSupervisor(lnMock, logger, time.Second),
		Logger:   logger,
	}
}

// newTestEcho wires the network endpoints the same way the server does, minus
// the rate limiter and the response cache.
func newTestEcho(svc *service.NetworkService) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = responses.HTTPErrorHandler
	e.Validator = &lib.CustomValidator{Validator: lib.NewValidator()}
	e.Logger = svc.Logger

	noCache, _ := transport.CreateCacheMiddleware(0)
	secured := e.Group("", tokens.AccessTokenMiddleware(svc.Config.AccessToken))
	transport.RegisterNetworkEndpoints(svc, e, secured, noCache)
	return e
}

type TestSuite struct {
	suite.Suite
	echo *echo.Echo
}

func (suite *TestSuite) doGet(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	suite.echo.ServeHTTP(rec, req)
	return rec
}

func checkErrResponse(suite *TestSuite, rec *httptest.ResponseRecorder) *responses.ErrorResponse {
	errorResponse := &responses.ErrorResponse{}
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(errorResponse))
	return errorResponse
}

func checkNodeErrResponse(suite *TestSuite, rec *httptest.ResponseRecorder) *responses.NodeErrorResponse {
	errorResponse := &responses.NodeErrorResponse{}
	assert.Equal(suite.T(), http.StatusInternalServerError, rec.Code)
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(errorResponse))
	return errorResponse
}
