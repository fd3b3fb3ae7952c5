package payment

import (
	"context"
	types "delegasi-pay/internal/common/type"
	"delegasi-pay/internal/pkg/helper"
	"delegasi-pay/internal/pkg/middleware"
	"delegasi-pay/internal/pkg/validation"
	flowService "delegasi-pay/internal/service/flow"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetFlow returns the current screen of the caller's session.
func (h *Handler) GetFlow(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	v, err := h.flow.View(c.Request.Context(), middleware.SessionID(c))
	send(viewResponse(v, err))
}

func (h *Handler) PostReference(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var req ReferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		send(helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
			Error:   err,
			ErrCode: "INVALID_REQUEST",
		}))
		return
	}
	if fieldErrors := validation.FieldErrors(&req, referenceMessages); fieldErrors != nil {
		send(helper.ParseResponse(&types.Response{
			Code:    http.StatusUnprocessableEntity,
			Message: "Invalid payment reference",
			Data:    fieldErrors,
			Error:   errors.New("validation failed"),
			ErrCode: "VALIDATION_FAILED",
		}))
		return
	}

	v, err := h.flow.SubmitReference(c.Request.Context(), middleware.SessionID(c), req.PaymentNumber)
	send(viewResponse(v, err))
}

func (h *Handler) PostBack(c *gin.Context) {
	h.apiAction(c, h.flow.Back)
}

func (h *Handler) PostPay(c *gin.Context) {
	h.apiAction(c, h.flow.PayNow)
}

func (h *Handler) PostChannel(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	var req ChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		send(helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
			Error:   err,
			ErrCode: "INVALID_REQUEST",
		}))
		return
	}
	if fieldErrors := validation.FieldErrors(&req, nil); fieldErrors != nil {
		send(helper.ParseResponse(&types.Response{
			Code:    http.StatusUnprocessableEntity,
			Message: "Invalid payment channel",
			Data:    fieldErrors,
			Error:   errors.New("validation failed"),
			ErrCode: "VALIDATION_FAILED",
		}))
		return
	}

	v, err := h.flow.SelectChannel(c.Request.Context(), middleware.SessionID(c), req.ChannelID)
	send(viewResponse(v, err))
}

func (h *Handler) PostConfirm(c *gin.Context) {
	h.apiAction(c, h.flow.ConfirmPayment)
}

func (h *Handler) PostReset(c *gin.Context) {
	h.apiAction(c, h.flow.Reset)
}

func (h *Handler) ListChannels(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	send(helper.ParseResponse(&types.Response{
		Code: http.StatusOK,
		Data: h.flow.Channels(),
	}))
}

func (h *Handler) apiAction(c *gin.Context, action func(ctx context.Context, sessionID string) (*flowService.View, error)) {
	send := c.MustGet("send").(func(r *types.Response))

	v, err := action(c.Request.Context(), middleware.SessionID(c))
	send(viewResponse(v, err))
}

func viewResponse(v *flowService.View, err error) *types.Response {
	if err == nil {
		return helper.ParseResponse(&types.Response{
			Code: http.StatusOK,
			Data: v,
		})
	}

	message := http.StatusText(statusFor(err))
	if v != nil && v.Error != "" {
		message = v.Error
	}

	return helper.ParseResponse(&types.Response{
		Code:    statusFor(err),
		Message: message,
		Data:    v,
		Error:   err,
		ErrCode: errorCode(err),
	})
}
