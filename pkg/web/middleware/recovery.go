package middleware

import (
	"errors"
	"net"
	"net/http"
	"net/http/httputil"
	"os"
	"runtime/debug"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lk2023060901/xsockjs/pkg/logger"
)

// Recovery 异常恢复中间件。对端断连引起的写失败不算服务端异常，
// 只记录不回 500。
func Recovery(l logger.Logger, stack bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			request, _ := httputil.DumpRequest(c.Request, false)

			if err, ok := r.(error); ok && isBrokenPipe(err) {
				l.Error("client connection gone",
					"error", err,
					"request", string(request),
				)
				_ = c.Error(err)
				c.Abort()
				return
			}

			fields := []interface{}{
				"error", r,
				"request", string(request),
			}
			if stack {
				fields = append(fields, "stack", string(debug.Stack()))
			}
			l.Error("recovered from panic", fields...)

			c.AbortWithStatus(http.StatusInternalServerError)
		}()
		c.Next()
	}
}

// isBrokenPipe 判断是否为对端断连类的网络写错误
func isBrokenPipe(err error) bool {
	var opErr *net.OpError
	if !errors.As(err, &opErr) {
		return false
	}
	var sysErr *os.SyscallError
	if !errors.As(opErr.Err, &sysErr) {
		return false
	}
	msg := strings.ToLower(sysErr.Error())
	return strings.Contains(msg, "broken pipe") || strings.Contains(msg, "connection reset by peer")
}
