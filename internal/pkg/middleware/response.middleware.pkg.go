package middleware

import (
	types "delegasi-pay/internal/common/type"
	"delegasi-pay/internal/pkg/helper"

	"github.com/gin-gonic/gin"
)

// ResponseInit installs the `send` closure handlers use to write the JSON
// envelope. Sending aborts the chain.
func ResponseInit() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("send", func(r *types.Response) {
			r = helper.ParseResponse(r)
			c.AbortWithStatusJSON(r.Code, helper.ToResponseAPI(r))
		})
		c.Next()
	}
}
