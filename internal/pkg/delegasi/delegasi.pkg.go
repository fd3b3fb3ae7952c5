package delegasi

import (
	"context"
	"delegasi-pay/internal/pkg/helper"
	"delegasi-pay/internal/pkg/logger"
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

type Config struct {
	BaseURL   string
	APIKey    string
	SecretKey string
	Timeout   time.Duration
	ProxyURL  string
}

// Client talks to the Delegasi payment API with signed requests.
type Client struct {
	baseURL   string
	apiKey    string
	secretKey string
	http      *helper.OutboundHTTPClient
	now       func() time.Time
}

func Setup(cfg *Config) *Client {
	return New(cfg, helper.NewOutboundHTTPClient(&helper.OutboundConfig{
		ProxyURL:       cfg.ProxyURL,
		RequestTimeout: cfg.Timeout,
	}))
}

// New builds a client over an existing transport.
func New(cfg *Config, transport *helper.OutboundHTTPClient) *Client {
	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:    cfg.APIKey,
		secretKey: cfg.SecretKey,
		http:      transport,
		now:       helper.TimeRightNow,
	}
}

// WithClock overrides the timestamp source.
func (c *Client) WithClock(now func() time.Time) *Client {
	c.now = now
	return c
}

// BaseURL is the provider host requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Send performs one signed call. On 2xx the JSON body is decoded into out
// (when out is non-nil). On any other status the provider error body is
// returned as *APIError; anything unparseable wraps ErrTransport.
func (c *Client) Send(ctx context.Context, method helper.MethodEnum, path string, body any, out any) error {
	payload, err := CanonicalBody(body)
	if err != nil {
		return transportError("encode body for %s %s: %v", method, path, err)
	}

	timestamp := Timestamp(c.now())
	headers := http.Header{}
	headers.Set(HeaderAPIKey, c.apiKey)
	headers.Set(HeaderSignature, Sign(method.ToString(), path, payload, timestamp, c.apiKey, c.secretKey))
	headers.Set(HeaderTimestamp, timestamp)
	headers.Set(HeaderContentType, "application/json")

	resp, err := c.http.Request(&helper.HTTPRequestPayload{
		Method: method,
		URL:    c.baseURL + path,
		Body:   payload,
	}, &helper.HTTPRequestConfig{
		Ctx:     ctx,
		Headers: headers,
	})
	if err != nil {
		return transportError("%s %s: %v", method, path, err)
	}

	if !resp.IsSuccess() {
		return decodeError(resp)
	}

	if out == nil || len(resp.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return transportError("decode %s %s response: %v", method, path, err)
	}
	return nil
}

func decodeError(resp *helper.HTTPAPIResponse) error {
	var apiErr APIError
	if err := json.Unmarshal(resp.Data, &apiErr); err != nil || (apiErr.Code == "" && apiErr.Message == "") {
		logger.Warning.Printf("Delegasi returned %d with an unrecognised body", resp.StatusCode)
		return transportError("unexpected status %d", resp.StatusCode)
	}
	if apiErr.StatusCode == 0 {
		apiErr.StatusCode = resp.StatusCode
	}
	return &apiErr
}
