package server

import (
	"math/rand"
	"net/http"

	"github.com/gin-gonic/gin"
)

// InfoResponse 客户端协商响应
type InfoResponse struct {
	WebSocket    bool     `json:"websocket"`
	Origins      []string `json:"origins"`
	CookieNeeded bool     `json:"cookie_needed"`
	Entropy      int32    `json:"entropy"`
}

// Info 返回协商端点的处理函数。entropy 每次请求随机生成，
// 供客户端播种会话标识。
func Info() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store, no-cache, no-transform, must-revalidate, max-age=0")
		c.JSON(http.StatusOK, InfoResponse{
			WebSocket:    true,
			Origins:      []string{"*:*"},
			CookieNeeded: false,
			Entropy:      rand.Int31(),
		})
	}
}
