package controllers

import (
	"net/http"

	"github.com/getAlby/lnnetwork.go/lib/service"
	"github.com/labstack/echo/v4"
)

type HealthController struct {
	svc *service.NetworkService
}

func NewHealthController(svc *service.NetworkService) *HealthController {
	return &HealthController{svc: svc}
}

type HealthResponse struct {
	Result string `json:"result"`
}

// Health godoc
// @Summary      Check system health
// @Description  Reports whether the lightning node answered the last call
// @Produce      json
// @Tags         Health
// @Success      200  {object}  HealthResponse
// @Failure      503  {object}  HealthResponse
// @Router       /health [get]
func (controller *HealthController) Check(c echo.Context) error {
	if !controller.svc.NodeHealthy() {
		return c.JSON(http.StatusServiceUnavailable, &HealthResponse{
			Result: "UNAVAILABLE",
		})
	}
	return c.JSON(http.StatusOK, &HealthResponse{
		Result: "OK",
	})
}
