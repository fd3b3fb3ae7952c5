package delegasi

import (
	"context"
	"delegasi-pay/internal/common/models"
	"delegasi-pay/internal/pkg/helper"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return New(&Config{
		BaseURL:   srv.URL + "/",
		APIKey:    testKey,
		SecretKey: testSecret,
	}, helper.WrapHTTPClient(srv.Client())).WithClock(func() time.Time { return fixedNow })
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestGetInvoiceSendsSignedRequest(t *testing.T) {
	var got *http.Request
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r
		writeJSON(w, http.StatusOK, models.Invoice{
			ID:          "12345",
			Amount:      100000,
			TotalFee:    2000,
			TotalAmount: 102000,
			Items:       []models.InvoiceItem{{Description: "Item A", Price: 100000}},
		})
	})

	invoice, err := client.GetInvoice(context.Background(), "12345")
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, got.Method)
	assert.Equal(t, "/v1/payments/invoice/12345", got.URL.Path)
	assert.Equal(t, testKey, got.Header.Get(HeaderAPIKey))
	assert.Equal(t, testTimestamp, got.Header.Get(HeaderTimestamp))
	assert.Equal(t, "application/json", got.Header.Get(HeaderContentType))
	assert.Equal(t,
		Sign("GET", "/v1/payments/invoice/12345", nil, testTimestamp, testKey, testSecret),
		got.Header.Get(HeaderSignature),
	)

	assert.Equal(t, "12345", invoice.ID)
	assert.Equal(t, int64(102000), invoice.TotalAmount)
	assert.True(t, invoice.Balanced())
	require.Len(t, invoice.Items, 1)
	assert.Equal(t, "Item A", invoice.Items[0].Description)
}

func TestGetInvoiceNotFoundIsClassified(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"statusCode": 404,
			"code":       CodeInvoiceNotFound,
			"message":    "Invoice not found",
		})
	})

	invoice, err := client.GetInvoice(context.Background(), "00000")
	assert.Nil(t, invoice)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.StatusCode)
	assert.Equal(t, CodeInvoiceNotFound, apiErr.Code)
	assert.True(t, IsCode(err, CodeInvoiceNotFound))
	assert.False(t, errors.Is(err, ErrTransport))
}

func TestStatusCodeFallsBackToHTTPStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusConflict, map[string]any{"code": CodeInvoiceAlreadyPaid, "message": "paid"})
	})

	_, err := client.GetInvoice(context.Background(), "12345")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, CodeInvoiceAlreadyPaid, ErrorCode(err))
}

func TestNonConformingErrorBodyIsTransportError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, "<html>bad gateway</html>")
	})

	_, err := client.GetInvoice(context.Background(), "12345")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
	assert.Empty(t, ErrorCode(err))
}

func TestUnreachableHostIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	client := New(&Config{BaseURL: srv.URL, APIKey: testKey, SecretKey: testSecret},
		helper.WrapHTTPClient(&http.Client{Timeout: time.Second}))

	_, err := client.GetInvoice(context.Background(), "12345")
	assert.ErrorIs(t, err, ErrTransport)
}

func TestInvoicePathEscapesReference(t *testing.T) {
	var path string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.EscapedPath()
		assert.Equal(t,
			Sign("GET", "/v1/payments/invoice/AB%2F12%20X", nil, testTimestamp, testKey, testSecret),
			r.Header.Get(HeaderSignature),
		)
		writeJSON(w, http.StatusOK, models.Invoice{ID: "x"})
	})

	_, err := client.GetInvoice(context.Background(), "AB/12 X")
	require.NoError(t, err)
	assert.Equal(t, "/v1/payments/invoice/AB%2F12%20X", path)
}

func TestPostWebhookSignsExactBodySent(t *testing.T) {
	payload := &WebhookPayload{
		ID:          "c0ffee00-0000-4000-8000-000000000000",
		ReferenceID: "12345",
		Status:      "PAID",
		Payment:     PaymentDetail{Method: "VIRTUAL_ACCOUNT", Channel: "BCA", Amount: 100000},
	}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)

		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, WebhookPath, r.URL.Path)
		assert.Equal(t,
			Sign("POST", WebhookPath, body, testTimestamp, testKey, testSecret),
			r.Header.Get(HeaderSignature),
		)

		var decoded WebhookPayload
		assert.NoError(t, json.Unmarshal(body, &decoded))
		assert.Equal(t, *payload, decoded)

		writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
	})

	res, err := client.PostWebhook(context.Background(), payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok"}`, string(res))
}
