package helper

import (
	"crypto/tls"
	"delegasi-pay/internal/pkg/logger"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"
)

// OutboundConfig configures the client used for provider calls.
type OutboundConfig struct {
	ProxyURL       string
	SkipTLSVerify  bool
	RequestTimeout time.Duration
}

// OutboundHTTPClient wraps http.Client with proxy and timeout settings.
type OutboundHTTPClient struct {
	Client *http.Client
	Config *OutboundConfig
}

// NewOutboundHTTPClient creates a client for calls leaving this service.
func NewOutboundHTTPClient(cfg *OutboundConfig) *OutboundHTTPClient {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: cfg.SkipTLSVerify,
		},
	}

	if cfg.ProxyURL != "" {
		proxyURL, err := url.Parse(cfg.ProxyURL)
		if err != nil {
			logger.Error.Printf("Invalid proxy URL: %v", err)
		} else {
			transport.Proxy = http.ProxyURL(proxyURL)
			logger.Debug.Printf("Using proxy: %s", cfg.ProxyURL)
		}
	}

	return &OutboundHTTPClient{
		Client: &http.Client{
			Transport: transport,
			Timeout:   cfg.RequestTimeout,
		},
		Config: cfg,
	}
}

// WrapHTTPClient uses an existing client as is, e.g. httptest's.
func WrapHTTPClient(client *http.Client) *OutboundHTTPClient {
	return &OutboundHTTPClient{Client: client, Config: &OutboundConfig{}}
}

// Request performs one HTTP call. Any status is returned as a response;
// only transport failures are errors.
func (o *OutboundHTTPClient) Request(
	payload *HTTPRequestPayload,
	config *HTTPRequestConfig,
) (*HTTPAPIResponse, error) {
	requestBody, err := handleRequestBody(payload, config)
	if err != nil {
		logger.Debug.Println("Error handling request body:", err.Error())
		return nil, err
	}

	req, err := o.prepareRequest(payload, requestBody, config)
	if err != nil {
		logger.Debug.Println("Error preparing request:", err.Error())
		return nil, err
	}

	return o.executeRequest(req)
}

func (o *OutboundHTTPClient) prepareRequest(payload *HTTPRequestPayload, body io.Reader, config *HTTPRequestConfig) (*http.Request, error) {
	req, err := http.NewRequestWithContext(config.Ctx, payload.Method.ToString(), payload.URL, body)
	if err != nil {
		return nil, err
	}

	for key, values := range config.Headers {
		req.Header[key] = append(req.Header[key], values...)
	}

	if config.Auth != nil {
		req.SetBasicAuth(config.Auth.Username, config.Auth.Password)
	}

	if len(payload.Params) > 0 {
		q := req.URL.Query()
		for key, value := range payload.Params {
			q.Add(key, value)
		}
		req.URL.RawQuery = q.Encode()
	}

	return req, nil
}

func (o *OutboundHTTPClient) executeRequest(req *http.Request) (*HTTPAPIResponse, error) {
	logger.Debug.Printf("Outbound %s %s", req.Method, req.URL.String())

	resp, err := o.Client.Do(req)
	if err != nil {
		logger.Error.Printf("Outbound request failed: %v", err)
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	result, err := parseResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	logger.Debug.Printf("Outbound request completed with status: %d", resp.StatusCode)

	return &HTTPAPIResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Data:       result,
	}, nil
}
