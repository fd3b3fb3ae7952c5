package delegasi

import (
	"crypto/hmac"
	"crypto/sha256"
	"delegasi-pay/internal/pkg/helper"
	"encoding/hex"
	"strings"
	"time"
)

const (
	HeaderAPIKey      = "X-api-key"
	HeaderSignature   = "X-Signature"
	HeaderTimestamp   = "X-Timestamp"
	HeaderContentType = "Content-Type"
)

// Sign computes hex(HMAC-SHA256(secretKey, METHOD+PATH+BODY+TIMESTAMP+APIKEY)).
// path carries the leading slash and no host; an absent body is empty.
func Sign(method, path string, body []byte, timestamp, apiKey, secretKey string) string {
	mac := hmac.New(sha256.New, []byte(secretKey))
	mac.Write([]byte(strings.ToUpper(method)))
	mac.Write([]byte(path))
	mac.Write(body)
	mac.Write([]byte(timestamp))
	mac.Write([]byte(apiKey))
	return hex.EncodeToString(mac.Sum(nil))
}

// CanonicalBody serializes a request body the way it is signed and sent.
// A nil body is the empty string.
func CanonicalBody(body any) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	return helper.JSONCompact(body)
}

// Timestamp is the X-Timestamp value for t.
func Timestamp(t time.Time) string {
	return helper.ISOTimestamp(t)
}
