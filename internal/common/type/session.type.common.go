package types

// SessionClaims is what the session cookie carries.
type SessionClaims struct {
	SessionID string `json:"sid" validate:"required,min=8"`
}
