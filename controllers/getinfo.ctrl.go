package controllers

import (
	"net/http"

	"github.com/getAlby/lnnetwork.go/lib/responses"
	"github.com/getAlby/lnnetwork.go/lib/service"
	"github.com/labstack/echo/v4"
)

// GetInfoController : GetInfoController struct
type GetInfoController struct {
	svc *service.NetworkService
}

func NewGetInfoController(svc *service.NetworkService) *GetInfoController {
	return &GetInfoController{svc: svc}
}

// GetInfo godoc
// @Summary      Node info
// @Description  Identity, network and sync state of the node the gateway queries
// @Produce      json
// @Tags         Network Information
// @Success      200  {object}  lnd.NodeInfo
// @Failure      500  {object}  responses.NodeErrorResponse
// @Router       /getinfo [get]
// @Security     AccessToken
func (controller *GetInfoController) GetInfo(c echo.Context) error {
	info, err := controller.svc.GetInfo(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("getinfo failed: %v", err)
		return c.JSON(http.StatusInternalServerError, responses.NewNodeErrorResponse(err))
	}
	return c.JSON(http.StatusOK, info)
}
