package responses

import (
	"net/http"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error          bool   `json:"error"`
	Code           int    `json:"code"`
	Message        string `json:"message"`
	HttpStatusCode int    `json:"-"`
}

// NodeErrorResponse carries the error reported by the lightning node.
type NodeErrorResponse struct {
	Error string `json:"error"`
}

func NewNodeErrorResponse(err error) *NodeErrorResponse {
	return &NodeErrorResponse{Error: err.Error()}
}

var GeneralServerError = ErrorResponse{
	Error:          true,
	Code:           6,
	Message:        "Something went wrong. Please try again later",
	HttpStatusCode: 500,
}

var BadArgumentsError = ErrorResponse{
	Error:          true,
	Code:           8,
	Message:        "Bad arguments",
	HttpStatusCode: 400,
}

var BadAuthError = ErrorResponse{
	Error:          true,
	Code:           1,
	Message:        "bad auth",
	HttpStatusCode: 401,
}

var InvalidPubkeyError = ErrorResponse{
	Error:          true,
	Code:           2,
	Message:        "invalid node pubkey",
	HttpStatusCode: 400,
}

var InvalidShortChannelIDError = ErrorResponse{
	Error:          true,
	Code:           2,
	Message:        "invalid short channel id",
	HttpStatusCode: 400,
}

func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	c.Logger().Error(err)
	if hub := sentryecho.GetHubFromContext(c); hub != nil && isErrAllowedForSentry(err) {
		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetExtra("RequestID", c.Response().Header().Get(echo.HeaderXRequestID))
			hub.CaptureException(err)
		})
	}
	if he, ok := err.(*echo.HTTPError); ok {
		c.JSON(he.Code, he.Message)
		return
	}
	c.JSON(http.StatusInternalServerError, GeneralServerError)
}

// auth failures are expected traffic, not exceptions
func isErrAllowedForSentry(err error) bool {
	he, ok := err.(*echo.HTTPError)
	if !ok {
		return true
	}
	if he.Code == http.StatusUnauthorized {
		return false
	}
	if m, ok := he.Message.(echo.Map); ok {
		if code, ok := m["code"].(int); ok && code == BadAuthError.Code {
			return false
		}
	}
	return true
}
