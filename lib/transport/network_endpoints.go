package transport

import (
	"github.com/getAlby/lnnetwork.go/controllers"
	"github.com/getAlby/lnnetwork.go/lib/service"
	"github.com/labstack/echo/v4"
)

func RegisterNetworkEndpoints(svc *service.NetworkService, e *echo.Echo, secured *echo.Group, cacheMw echo.MiddlewareFunc) {
	e.GET("/health", controllers.NewHealthController(svc).Check)

	secured.GET("/getinfo", controllers.NewGetInfoController(svc).GetInfo, cacheMw)

	networkCtrl := controllers.NewNetworkController(svc)
	// routes depend on live liquidity information, never cache them
	secured.GET("/network/getRoute", networkCtrl.GetRoute)
	secured.GET("/network/getRoute/:pubkey/:msats", networkCtrl.GetRoute)
	secured.GET("/network/getRoute/:pubkey/:msats/:riskfactor", networkCtrl.GetRoute)
	secured.GET("/network/listNode", networkCtrl.ListNode, cacheMw)
	secured.GET("/network/listNode/:pubkey", networkCtrl.ListNode, cacheMw)
	secured.GET("/network/listChannel", networkCtrl.ListChannel, cacheMw)
	secured.GET("/network/listChannel/:shortchannelid", networkCtrl.ListChannel, cacheMw)
	secured.GET("/network/feeRates", networkCtrl.FeeRates, cacheMw)
	secured.GET("/network/feeRates/:feeratestyle", networkCtrl.FeeRates, cacheMw)
}
