package payment

import (
	"github.com/gin-gonic/gin"
)

func (h *Handler) NewRoutes(e *gin.RouterGroup) {
	e.GET("/v1/channels", h.ListChannels)

	flow := e.Group("/v1/flow")
	flow.GET("/", h.GetFlow)
	flow.POST("/reference", h.PostReference)
	flow.POST("/back", h.PostBack)
	flow.POST("/pay", h.PostPay)
	flow.POST("/channel", h.PostChannel)
	flow.POST("/confirm", h.PostConfirm)
	flow.POST("/reset", h.PostReset)
}

func (h *Handler) NewPageRoutes(e *gin.RouterGroup) {
	e.GET("/", h.Index)
	e.POST("/invoice", h.SubmitReference)
	e.POST("/back", h.Back)
	e.POST("/pay", h.PayNow)
	e.POST("/reset", h.Reset)
	e.GET("/channels", h.ChannelsPage)
	e.POST("/channels", h.SelectChannel)
	e.GET("/payment", h.InstructionsPage)
	e.POST("/payment/confirm", h.ConfirmPayment)
}
