package helper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
)

type MethodEnum string

const (
	GET    MethodEnum = "GET"
	POST   MethodEnum = "POST"
	PUT    MethodEnum = "PUT"
	DELETE MethodEnum = "DELETE"
)

func (e MethodEnum) ToString() string {
	switch e {
	case GET, POST, PUT, DELETE:
		return string(e)
	}
	return ""
}

func (e MethodEnum) IsValid() bool {
	return e.ToString() != ""
}

// HTTPRequestPayload describes what to call.
type HTTPRequestPayload struct {
	Method MethodEnum
	URL    string
	Params map[string]string
	// Body is sent verbatim when set.
	Body []byte
}

// HTTPRequestConfig describes how to call it.
type HTTPRequestConfig struct {
	Ctx     context.Context
	Headers http.Header
	Auth    *BasicAuth
}

type BasicAuth struct {
	Username string
	Password string
}

type HTTPAPIResponse struct {
	StatusCode int
	Headers    http.Header
	Data       []byte
}

// IsSuccess reports a 2xx status.
func (r *HTTPAPIResponse) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

func handleRequestBody(payload *HTTPRequestPayload, config *HTTPRequestConfig) (io.Reader, error) {
	if !payload.Method.IsValid() {
		return nil, fmt.Errorf("unsupported http method: %q", payload.Method)
	}
	if config == nil || config.Ctx == nil {
		return nil, fmt.Errorf("request context is required")
	}
	if len(payload.Body) == 0 {
		return http.NoBody, nil
	}
	return bytes.NewReader(payload.Body), nil
}

func parseResponseBody(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}
