package payment

import (
	"context"
	"delegasi-pay/frontend"
	"delegasi-pay/internal/common/enum"
	"delegasi-pay/internal/pkg/helper"
	"delegasi-pay/internal/pkg/logger"
	"delegasi-pay/internal/pkg/middleware"
	"delegasi-pay/internal/pkg/validation"
	"delegasi-pay/internal/service/channel"
	"delegasi-pay/internal/service/confirmation"
	flowService "delegasi-pay/internal/service/flow"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	ctx  context.Context
	flow flowService.IController
}

type IHandler interface {
	NewRoutes(e *gin.RouterGroup)
	NewPageRoutes(e *gin.RouterGroup)
}

func NewHandler(ctx context.Context, flow flowService.IController) IHandler {
	return &Handler{
		ctx:  ctx,
		flow: flow,
	}
}

// Templates parses the payment pages with the helpers they use.
func Templates() (*template.Template, error) {
	return frontend.Templates(template.FuncMap{
		"rupiah": helper.FormatRupiah,
	})
}

// Index renders the screen for the session's current state.
func (h *Handler) Index(c *gin.Context) {
	v, err := h.flow.View(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		h.renderError(c, err)
		return
	}

	switch v.State {
	case enum.VIEWING_INVOICE:
		h.renderInvoice(c, http.StatusOK, v)
	case enum.SELECTING_CHANNEL:
		h.renderChannels(c, http.StatusOK, v)
	case enum.VIEWING_INSTRUCTIONS:
		h.renderInstructions(c, http.StatusOK, v, 0)
	default:
		h.renderEntry(c, http.StatusOK, v, ReferenceRequest{
			Provider:      enum.ProviderEnum(c.Query("provider")),
			PaymentNumber: c.Query("payment_number"),
		}, nil)
	}
}

func (h *Handler) SubmitReference(c *gin.Context) {
	var req ReferenceRequest
	if err := c.ShouldBind(&req); err != nil {
		logger.Debug.Printf("Reference form rejected: %v", err)
		v, verr := h.flow.View(c.Request.Context(), middleware.SessionID(c))
		if verr != nil {
			h.renderError(c, verr)
			return
		}
		v.Error = messageInvalidForm
		h.renderEntry(c, http.StatusBadRequest, v, ReferenceRequest{}, nil)
		return
	}

	if fieldErrors := validation.FieldErrors(&req, referenceMessages); fieldErrors != nil {
		v, err := h.flow.View(c.Request.Context(), middleware.SessionID(c))
		if err != nil {
			h.renderError(c, err)
			return
		}
		h.renderEntry(c, http.StatusUnprocessableEntity, v, req, fieldErrors)
		return
	}

	v, err := h.flow.SubmitReference(c.Request.Context(), middleware.SessionID(c), req.PaymentNumber)
	switch {
	case err == nil:
		c.Redirect(http.StatusSeeOther, "/")
	case v != nil && v.Error != "":
		h.renderEntry(c, statusFor(err), v, req, nil)
	case errors.Is(err, flowService.ErrInvalidTransition), errors.Is(err, flowService.ErrOperationInProgress):
		c.Redirect(http.StatusSeeOther, "/")
	default:
		h.renderError(c, err)
	}
}

func (h *Handler) Back(c *gin.Context) {
	h.actAndRedirect(c, "/", h.flow.Back)
}

func (h *Handler) PayNow(c *gin.Context) {
	h.actAndRedirect(c, "/channels", h.flow.PayNow)
}

func (h *Handler) Reset(c *gin.Context) {
	h.actAndRedirect(c, "/", h.flow.Reset)
}

func (h *Handler) ChannelsPage(c *gin.Context) {
	v, err := h.flow.View(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		h.renderError(c, err)
		return
	}
	if v.State != enum.SELECTING_CHANNEL {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	h.renderChannels(c, http.StatusOK, v)
}

func (h *Handler) SelectChannel(c *gin.Context) {
	var req ChannelRequest
	if err := c.ShouldBind(&req); err != nil {
		logger.Debug.Printf("Channel form rejected: %v", err)
		v, verr := h.flow.View(c.Request.Context(), middleware.SessionID(c))
		if verr != nil {
			h.renderError(c, verr)
			return
		}
		if v.State != enum.SELECTING_CHANNEL {
			c.Redirect(http.StatusSeeOther, "/")
			return
		}
		v.Error = messageInvalidForm
		h.renderChannels(c, http.StatusBadRequest, v)
		return
	}

	v, err := h.flow.SelectChannel(c.Request.Context(), middleware.SessionID(c), req.ChannelID)
	switch {
	case err == nil:
		c.Redirect(http.StatusSeeOther, InstructionsURL(v.Selection.VirtualAccount, v.Selection.BankName, v.Amount))
	case errors.Is(err, flowService.ErrUnknownChannel) && v != nil:
		v.Error = "Metode pembayaran tidak tersedia."
		h.renderChannels(c, http.StatusUnprocessableEntity, v)
	case errors.Is(err, flowService.ErrInvalidTransition), errors.Is(err, flowService.ErrNoActiveInvoice),
		errors.Is(err, flowService.ErrOperationInProgress):
		c.Redirect(http.StatusSeeOther, "/")
	default:
		h.renderError(c, err)
	}
}

// InstructionsPage serves /payment?virtualAccount=&bankName=&amount=.
func (h *Handler) InstructionsPage(c *gin.Context) {
	amount, _ := helper.StringToRupiah(c.Query("amount"))

	v, err := h.flow.DirectInstructions(
		c.Request.Context(),
		middleware.SessionID(c),
		c.Query("bankName"),
		c.Query("virtualAccount"),
		amount,
	)
	if err != nil {
		h.renderError(c, err)
		return
	}

	method, _ := strconv.Atoi(c.Query("method"))
	h.renderInstructions(c, http.StatusOK, v, method)
}

func (h *Handler) ConfirmPayment(c *gin.Context) {
	sid := middleware.SessionID(c)

	v, err := h.flow.ConfirmPayment(c.Request.Context(), sid)
	switch {
	case err == nil:
		c.Redirect(http.StatusSeeOther, "/")
	case errors.Is(err, flowService.ErrOperationInProgress):
		busy, verr := h.flow.View(c.Request.Context(), sid)
		if verr != nil {
			h.renderError(c, verr)
			return
		}
		busy.Busy = true
		busy.CanConfirm = false
		h.renderInstructions(c, http.StatusConflict, busy, 0)
	case errors.Is(err, flowService.ErrNoActiveInvoice), errors.Is(err, flowService.ErrInvalidTransition):
		c.Redirect(http.StatusSeeOther, "/")
	case v != nil:
		h.renderInstructions(c, statusFor(err), v, 0)
	default:
		h.renderError(c, err)
	}
}

// InstructionsURL is where the channel screen sends the browser.
func InstructionsURL(virtualAccount, bankName string, amount int64) string {
	q := url.Values{}
	q.Set("virtualAccount", virtualAccount)
	q.Set("bankName", bankName)
	q.Set("amount", strconv.FormatInt(amount, 10))
	return "/payment?" + q.Encode()
}

func (h *Handler) actAndRedirect(c *gin.Context, to string, action func(ctx context.Context, sessionID string) (*flowService.View, error)) {
	_, err := action(c.Request.Context(), middleware.SessionID(c))
	if err != nil && statusFor(err) == http.StatusInternalServerError {
		h.renderError(c, err)
		return
	}
	if err != nil {
		to = "/"
	}
	c.Redirect(http.StatusSeeOther, to)
}

func (h *Handler) renderEntry(c *gin.Context, status int, v *flowService.View, req ReferenceRequest, fieldErrors map[string]string) {
	if fieldErrors == nil {
		fieldErrors = map[string]string{}
	}
	provider := req.Provider.ToString()
	if provider == "" {
		provider = enum.DELEGASI.ToString()
	}

	c.HTML(status, "entry.html", gin.H{
		"Title":         "Pembayaran",
		"View":          v,
		"Flash":         v.Flash,
		"Error":         v.Error,
		"Busy":          v.Busy,
		"Providers":     enum.Providers(),
		"Provider":      provider,
		"PaymentNumber": req.PaymentNumber,
		"FieldErrors":   fieldErrors,
	})
}

func (h *Handler) renderInvoice(c *gin.Context, status int, v *flowService.View) {
	c.HTML(status, "invoice.html", gin.H{
		"Title": "Detail Tagihan",
		"View":  v,
		"Flash": v.Flash,
		"Error": v.Error,
	})
}

func (h *Handler) renderChannels(c *gin.Context, status int, v *flowService.View) {
	c.HTML(status, "channels.html", gin.H{
		"Title": "Metode Pembayaran",
		"View":  v,
		"Error": v.Error,
	})
}

func (h *Handler) renderInstructions(c *gin.Context, status int, v *flowService.View, method int) {
	var group *channel.InstructionGroup
	if v.Instructions != nil && len(v.Instructions.Groups) > 0 {
		if method < 0 || method >= len(v.Instructions.Groups) {
			method = 0
		}
		group = &v.Instructions.Groups[method]
	}

	link := "/payment?method="
	if v.Selection != nil {
		q := url.Values{}
		q.Set("virtualAccount", v.Selection.VirtualAccount)
		q.Set("bankName", v.Selection.BankName)
		q.Set("amount", strconv.FormatInt(v.Amount, 10))
		link = "/payment?" + q.Encode() + "&method="
	}

	c.HTML(status, "instructions.html", gin.H{
		"Title":      "Cara Pembayaran",
		"View":       v,
		"Error":      v.Error,
		"Method":     method,
		"MethodLink": link,
		"Group":      group,
	})
}

func (h *Handler) renderError(c *gin.Context, err error) {
	logger.Error.Printf("Page %s failed: %v", c.Request.URL.Path, err)
	c.HTML(statusFor(err), "error.html", gin.H{
		"Title": "Terjadi Kesalahan",
		"Error": confirmation.MessageFailed,
	})
}
