package controllers

import (
	"errors"
	"net/http"

	"github.com/getAlby/lnnetwork.go/lib/responses"
	"github.com/getAlby/lnnetwork.go/lib/service"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// NetworkController : Network lookup controller struct
type NetworkController struct {
	svc *service.NetworkService
}

func NewNetworkController(svc *service.NetworkService) *NetworkController {
	return &NetworkController{svc: svc}
}

// Every parameter can be given as a path segment or as a query parameter.
type GetRouteParams struct {
	Pubkey     string  `param:"pubkey" query:"pubkey" validate:"required,pubkey"`
	Msats      uint64  `param:"msats" query:"msats" validate:"required,gt=0"`
	RiskFactor float64 `param:"riskfactor" query:"riskfactor" validate:"gte=0"`
}

type ListNodeParams struct {
	Pubkey string `param:"pubkey" query:"pubkey" validate:"required,pubkey"`
}

type ListChannelParams struct {
	ShortChannelID string `param:"shortchannelid" query:"shortchannelid" validate:"required,scid"`
}

type FeeRatesParams struct {
	FeeRateStyle string `param:"feeratestyle" query:"feeratestyle" validate:"required,oneof=perkb perkw"`
}

// GetRoute godoc
// @Summary      Find a route to a node
// @Description  Attempts to find the best route for the payment of msats to a lightning node id. Every hop carries the alias of its node, empty when the node lookup failed.
// @Produce      json
// @Tags         Network Information
// @Param        pubkey      query     string  true   "Pub key of the node"
// @Param        msats       query     int     true   "Amount to be routed in milli satoshis"
// @Param        riskfactor  query     number  false  "Risk factor, defaults to 0"
// @Success      200  {object}  []lnd.RouteHop
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      500  {object}  responses.NodeErrorResponse
// @Router       /network/getRoute [get]
// @Security     AccessToken
func (controller *NetworkController) GetRoute(c echo.Context) error {
	var params GetRouteParams
	if err := c.Bind(&params); err != nil {
		c.Logger().Errorf("Failed to load getroute params: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&params); err != nil {
		c.Logger().Errorf("Invalid getroute params: %v", err)
		return validationErrorResponse(c, err)
	}

	hops, err := controller.svc.GetRoute(c.Request().Context(), params.Pubkey, params.Msats, params.RiskFactor)
	if err != nil {
		c.Logger().Errorf("getroute failed for %s: %v", params.Pubkey, err)
		return c.JSON(http.StatusInternalServerError, responses.NewNodeErrorResponse(err))
	}
	return c.JSON(http.StatusOK, hops)
}

// ListNode godoc
// @Summary      Look up a node
// @Description  Gets the node information of the given pubkey
// @Produce      json
// @Tags         Network Information
// @Param        pubkey  query     string  true  "Pub key of the node"
// @Success      200  {object}  []lnd.Node
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      500  {object}  responses.NodeErrorResponse
// @Router       /network/listNode [get]
// @Security     AccessToken
func (controller *NetworkController) ListNode(c echo.Context) error {
	var params ListNodeParams
	if err := c.Bind(&params); err != nil {
		c.Logger().Errorf("Failed to load listnode params: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&params); err != nil {
		c.Logger().Errorf("Invalid listnode params: %v", err)
		return validationErrorResponse(c, err)
	}

	nodes, err := controller.svc.ListNode(c.Request().Context(), params.Pubkey)
	if err != nil {
		c.Logger().Errorf("listnodes failed for %s: %v", params.Pubkey, err)
		return c.JSON(http.StatusInternalServerError, responses.NewNodeErrorResponse(err))
	}
	return c.JSON(http.StatusOK, nodes)
}

// ListChannel godoc
// @Summary      Look up a channel
// @Description  Gets both directions of the channel with the given short channel id
// @Produce      json
// @Tags         Network Information
// @Param        shortchannelid  query     string  true  "Short channel id, BLOCKxTXxOUT"
// @Success      200  {object}  []lnd.Channel
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      500  {object}  responses.NodeErrorResponse
// @Router       /network/listChannel [get]
// @Security     AccessToken
func (controller *NetworkController) ListChannel(c echo.Context) error {
	var params ListChannelParams
	if err := c.Bind(&params); err != nil {
		c.Logger().Errorf("Failed to load listchannel params: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&params); err != nil {
		c.Logger().Errorf("Invalid listchannel params: %v", err)
		return validationErrorResponse(c, err)
	}

	channels, err := controller.svc.ListChannel(c.Request().Context(), params.ShortChannelID)
	if err != nil {
		c.Logger().Errorf("listchannels failed for %s: %v", params.ShortChannelID, err)
		return c.JSON(http.StatusInternalServerError, responses.NewNodeErrorResponse(err))
	}
	return c.JSON(http.StatusOK, channels)
}

// FeeRates godoc
// @Summary      Current on-chain fee rates
// @Description  Returns the fee rates the node uses, per kilobyte or per kiloweight
// @Produce      json
// @Tags         Network Information
// @Param        feeratestyle  query     string  true  "perkb or perkw"
// @Success      200  {object}  lnd.FeeRates
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      500  {object}  responses.NodeErrorResponse
// @Router       /network/feeRates [get]
// @Security     AccessToken
func (controller *NetworkController) FeeRates(c echo.Context) error {
	var params FeeRatesParams
	if err := c.Bind(&params); err != nil {
		c.Logger().Errorf("Failed to load feerates params: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&params); err != nil {
		c.Logger().Errorf("Invalid feerates params: %v", err)
		return validationErrorResponse(c, err)
	}

	feeRates, err := controller.svc.FeeRates(c.Request().Context(), params.FeeRateStyle)
	if err != nil {
		c.Logger().Errorf("feerates failed: %v", err)
		return c.JSON(http.StatusInternalServerError, responses.NewNodeErrorResponse(err))
	}
	return c.JSON(http.StatusOK, feeRates)
}

func validationErrorResponse(c echo.Context, err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fieldErr := range validationErrors {
			switch fieldErr.Tag() {
			case "pubkey":
				return c.JSON(http.StatusBadRequest, responses.InvalidPubkeyError)
			case "scid":
				return c.JSON(http.StatusBadRequest, responses.InvalidShortChannelIDError)
			}
		}
	}
	return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
}
