package payment

import (
	"context"
	"delegasi-pay/internal/common/models"
	types "delegasi-pay/internal/common/type"
	"delegasi-pay/internal/pkg/delegasi"
	"delegasi-pay/internal/pkg/helper"
	"delegasi-pay/internal/pkg/jwt"
	"delegasi-pay/internal/pkg/middleware"
	"delegasi-pay/internal/pkg/validation"
	sessionRepo "delegasi-pay/internal/repository/session"
	"delegasi-pay/internal/service/channel"
	"delegasi-pay/internal/service/confirmation"
	flowService "delegasi-pay/internal/service/flow"
	"delegasi-pay/internal/service/invoice"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := validation.Setup(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type fakeDelegasi struct {
	server       *httptest.Server
	webhookCalls atomic.Int32
	webhookFail  atomic.Bool
	lastWebhook  atomic.Value
}

func newFakeDelegasi(t *testing.T) *fakeDelegasi {
	t.Helper()
	f := &fakeDelegasi{}

	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/v1/payments/invoice/INV-001":
			_ = json.NewEncoder(w).Encode(models.Invoice{
				ID:          "INV-001",
				Status:      "UNPAID",
				Merchant:    models.Party{Name: "Toko Maju", PhoneNumber: "081200000001"},
				Buyer:       models.Party{Name: "Budi", PhoneNumber: "081200000002"},
				Items:       []models.InvoiceItem{{Description: "Kaos Polos", Price: 100000}},
				Amount:      100000,
				TotalFee:    2000,
				TotalAmount: 102000,
			})
		case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/v1/payments/invoice/"):
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"statusCode":404,"code":"INVOICE_NOT_FOUND","message":"Invoice not found"}`)
		case r.Method == http.MethodPost && r.URL.Path == delegasi.WebhookPath:
			f.webhookCalls.Add(1)
			body, _ := io.ReadAll(r.Body)
			f.lastWebhook.Store(string(body))
			if f.webhookFail.Load() {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = io.WriteString(w, `{"statusCode":500,"code":"INTERNAL","message":"down"}`)
				return
			}
			_, _ = io.WriteString(w, `{"received":true}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(f.server.Close)

	return f
}

type testApp struct {
	engine   *gin.Engine
	delegasi *fakeDelegasi
	token    string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	fake := newFakeDelegasi(t)
	client := delegasi.New(&delegasi.Config{
		BaseURL:   fake.server.URL,
		APIKey:    "key",
		SecretKey: "secret",
	}, helper.WrapHTTPClient(fake.server.Client()))

	ctrl := flowService.NewController(
		sessionRepo.NewMemoryRepo(time.Hour),
		invoice.NewService(client),
		confirmation.NewService(client, nil),
		channel.NewService(""),
		"1234567890",
	)

	signer, err := jwt.NewSigner("test-session-secret-0123456789", time.Hour)
	require.NoError(t, err)
	token, _, err := signer.GenerateToken(types.SessionClaims{SessionID: "sess_handler_test"})
	require.NoError(t, err)

	tmpl, err := Templates()
	require.NoError(t, err)

	engine := gin.New()
	engine.SetHTMLTemplate(tmpl)
	engine.Use(middleware.ResponseInit())

	h := NewHandler(context.Background(), ctrl)
	h.NewPageRoutes(engine.Group("/", middleware.SessionMiddleware(signer, false)))
	h.NewRoutes(engine.Group("/api", middleware.SessionMiddleware(signer, false)))

	return &testApp{engine: engine, delegasi: fake, token: token}
}

func (a *testApp) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.Header.Set(middleware.HeaderSessionToken, a.token)

	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func (a *testApp) submit(t *testing.T, reference string) *httptest.ResponseRecorder {
	t.Helper()
	return a.do(http.MethodPost, "/invoice", url.Values{
		"provider":       {"delegasi"},
		"payment_number": {reference},
	})
}

func TestIndex_EntryFormWithPrefill(t *testing.T) {
	app := newTestApp(t)

	w := app.do(http.MethodGet, "/?payment_number=98765&provider=delegasi", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `value="98765"`)
	assert.Contains(t, w.Body.String(), "Nomor pembayaran")
}

func TestSubmitReference_ShowsInvoice(t *testing.T) {
	app := newTestApp(t)

	w := app.submit(t, "INV-001")
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	w = app.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "No. Invoice: INV-001")
	assert.Contains(t, body, "Rp 102.000")
	assert.Contains(t, body, "Kaos Polos")
	assert.Contains(t, body, `<button type="submit" id="pay-now">Bayar Sekarang</button>`)
}

func TestSubmitReference_NotFoundMessage(t *testing.T) {
	app := newTestApp(t)

	w := app.submit(t, "INV-404")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), invoice.MessageNotFound)
	assert.Contains(t, w.Body.String(), `value="INV-404"`)

	w = app.do(http.MethodGet, "/", nil)
	assert.NotContains(t, w.Body.String(), "No. Invoice")
}

func TestSubmitReference_FieldValidation(t *testing.T) {
	app := newTestApp(t)

	w := app.do(http.MethodPost, "/invoice", url.Values{"payment_number": {"12"}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Please select a provider")
	assert.Contains(t, w.Body.String(), "Payment number must be at least 5 characters")
	assert.Zero(t, app.delegasi.webhookCalls.Load())
}

func TestFullFlow_ConfirmsAndReturnsToEntry(t *testing.T) {
	app := newTestApp(t)
	require.Equal(t, http.StatusSeeOther, app.submit(t, "INV-001").Code)

	w := app.do(http.MethodPost, "/pay", nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/channels", w.Header().Get("Location"))

	w = app.do(http.MethodGet, "/channels", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "BCA Virtual Account")

	w = app.do(http.MethodPost, "/channels", url.Values{"channel_id": {"bca_va"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	location := w.Header().Get("Location")
	assert.Equal(t, InstructionsURL("1234567890", "BCA Virtual Account", 102000), location)

	w = app.do(http.MethodGet, location, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Masukkan nomor Virtual Account: 1234567890")
	assert.NotContains(t, body, "{va_number}")
	assert.Contains(t, body, "Catatan Penting:")
	assert.Contains(t, body, `<button type="submit" id="confirm">Saya Sudah Bayar</button>`)

	w = app.do(http.MethodPost, "/payment/confirm", nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.Equal(t, int32(1), app.delegasi.webhookCalls.Load())
	assert.Contains(t, app.delegasi.lastWebhook.Load(), `"reference_id":"INV-001"`)

	w = app.do(http.MethodGet, "/", nil)
	assert.Contains(t, w.Body.String(), confirmation.MessageConfirmed)
	assert.NotContains(t, w.Body.String(), "No. Invoice")

	// A second click after success never reaches the provider.
	w = app.do(http.MethodPost, "/payment/confirm", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, int32(1), app.delegasi.webhookCalls.Load())
}

func TestConfirm_FailureKeepsInstructions(t *testing.T) {
	app := newTestApp(t)
	require.Equal(t, http.StatusSeeOther, app.submit(t, "INV-001").Code)
	app.do(http.MethodPost, "/pay", nil)
	app.do(http.MethodPost, "/channels", url.Values{"channel_id": {"bni_va"}})
	app.delegasi.webhookFail.Store(true)

	w := app.do(http.MethodPost, "/payment/confirm", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), confirmation.MessageFailed)
	assert.Contains(t, w.Body.String(), "BNI Virtual Account")
}

func TestInstructionsPage_DirectLinkCannotConfirm(t *testing.T) {
	app := newTestApp(t)

	w := app.do(http.MethodGet, InstructionsURL("555", "Mandiri Virtual Account", 75000)+"&method=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Rp 75.000")
	assert.Contains(t, body, "Mandiri Online")
	assert.Contains(t, body, "Masukkan nomor Virtual Account: 555")
	assert.Contains(t, body, `id="confirm" disabled`)
}

func TestBack_FromInvoiceClearsSession(t *testing.T) {
	app := newTestApp(t)
	require.Equal(t, http.StatusSeeOther, app.submit(t, "INV-001").Code)

	w := app.do(http.MethodPost, "/back", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)

	w = app.do(http.MethodGet, "/", nil)
	assert.Contains(t, w.Body.String(), "Nomor pembayaran")
	assert.NotContains(t, w.Body.String(), "No. Invoice")
}

func TestSession_IssuedWhenMissing(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	app.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderSessionToken))
	assert.Contains(t, w.Header().Get("Set-Cookie"), middleware.SessionCookie+"=")
}

func (a *testApp) doRaw(method, target, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", contentType)
	req.Header.Set(middleware.HeaderSessionToken, a.token)

	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func TestSubmitReference_MalformedBody(t *testing.T) {
	app := newTestApp(t)

	w := app.doRaw(http.MethodPost, "/invoice", "application/json", `{"payment_number":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), messageInvalidForm)
	assert.NotContains(t, w.Body.String(), "Payment number is required")

	w = app.do(http.MethodGet, "/", nil)
	assert.NotContains(t, w.Body.String(), "No. Invoice")
}

func TestSelectChannel_MalformedBody(t *testing.T) {
	app := newTestApp(t)
	require.Equal(t, http.StatusSeeOther, app.submit(t, "INV-001").Code)
	require.Equal(t, http.StatusSeeOther, app.do(http.MethodPost, "/pay", url.Values{}).Code)

	w := app.doRaw(http.MethodPost, "/channels", "application/json", `{"channel_id":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), messageInvalidForm)

	w = app.do(http.MethodGet, "/channels", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStatusAndCode_EmptyReference(t *testing.T) {
	err := fmt.Errorf("submit: %w", invoice.ErrEmptyReference)
	assert.Equal(t, http.StatusUnprocessableEntity, statusFor(err))
	assert.Equal(t, "EMPTY_REFERENCE", errorCode(err))
}
