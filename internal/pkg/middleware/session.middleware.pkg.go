package middleware

import (
	types "delegasi-pay/internal/common/type"
	"delegasi-pay/internal/pkg/jwt"
	"delegasi-pay/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	SessionCookie      = "pay_session"
	HeaderSessionToken = "X-Session-Token"
	SessionIDKey       = "session_id"
)

// SessionMiddleware resolves the caller's session id from the signed cookie
// (or X-Session-Token header) and issues a fresh one when absent or invalid.
func SessionMiddleware(signer *jwt.Signer, secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(HeaderSessionToken)
		if token == "" {
			token, _ = c.Cookie(SessionCookie)
		}

		if token != "" {
			claims, err := signer.ValidateToken(token)
			if err == nil {
				c.Set(SessionIDKey, claims.SessionID)
				c.Next()
				return
			}
			logger.Debug.Printf("Discarding session token: %v", err)
		}

		sid, err := gonanoid.New()
		if err != nil {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		sid = "sess_" + sid

		token, _, err = signer.GenerateToken(types.SessionClaims{SessionID: sid})
		if err != nil {
			logger.Error.Printf("Failed to issue session token: %v", err)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, token, int(signer.TTL().Seconds()), "/", "", secureCookie, true)
		c.Header(HeaderSessionToken, token)
		c.Set(SessionIDKey, sid)
		c.Next()
	}
}

// SessionID returns the id resolved by SessionMiddleware.
func SessionID(c *gin.Context) string {
	return c.GetString(SessionIDKey)
}
