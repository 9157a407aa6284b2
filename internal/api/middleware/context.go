package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/freyasheth/foodbuddy/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ClientIDHeader 用戶端識別標頭，同一用戶端的新分析請求會取代舊請求
const ClientIDHeader = "X-Client-ID"

// debugKey gin context 中是否輸出錯誤細節
const debugKey = "debug"

// RequestContext 為每個請求設置超時，並把請求 ID 放進 context 供下游日誌使用
func RequestContext(timeout time.Duration, debug bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := common.WithRequestID(c.Request.Context(), requestid.Get(c))
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		c.Request = c.Request.WithContext(ctx)
		c.Set(debugKey, debug)

		c.Next()

		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !c.Writer.Written() {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", requestid.Get(c)),
				zap.Duration("timeout", timeout),
			)
			Abort(c, common.ErrGatewayTimeout)
		}
	}
}

// Abort 以統一錯誤格式結束請求
func Abort(c *gin.Context, err error) {
	ce := common.AsCustomError(err)
	c.AbortWithStatusJSON(ce.Status, ce.Response(requestid.Get(c), c.GetBool(debugKey)))
}
