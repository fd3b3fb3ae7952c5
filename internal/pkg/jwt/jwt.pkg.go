package jwt

import (
	types "delegasi-pay/internal/common/type"
	"delegasi-pay/internal/pkg/validation"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	SessionDataKey = "session_data"
)

// Signer issues and validates the HS256 session tokens.
type Signer struct {
	secret []byte
	ttl    time.Duration
}

func NewSigner(secret string, ttl time.Duration) (*Signer, error) {
	if len(secret) < 16 {
		return nil, errors.New("session secret must be at least 16 characters")
	}
	return &Signer{secret: []byte(secret), ttl: ttl}, nil
}

// TTL is how long an issued token stays valid.
func (s *Signer) TTL() time.Duration {
	return s.ttl
}

func (s *Signer) GenerateToken(data types.SessionClaims) (string, *time.Time, error) {
	exp := time.Now().Add(s.ttl)

	claims := jwt.MapClaims{
		"exp":          exp.Unix(),
		SessionDataKey: data,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("error signing session token: %w", err)
	}

	return signedToken, &exp, nil
}

func (s *Signer) ValidateToken(jwtToken string) (*types.SessionClaims, error) {
	token, err := jwt.Parse(jwtToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	if claims[SessionDataKey] == nil {
		return nil, fmt.Errorf("session data not found in token claims")
	}

	dataBytes, err := json.Marshal(claims[SessionDataKey])
	if err != nil {
		return nil, fmt.Errorf("error marshalling session data: %v", err)
	}

	var sessionData types.SessionClaims
	if err = json.Unmarshal(dataBytes, &sessionData); err != nil {
		return nil, fmt.Errorf("error unmarshalling session data: %v", err)
	}

	if err = validation.Validate(sessionData); err != nil {
		return nil, err
	}

	return &sessionData, nil
}
