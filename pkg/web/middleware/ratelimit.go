package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/lk2023060901/xsockjs/pkg/cache/lru"
	"github.com/lk2023060901/xsockjs/pkg/logger"
)

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	// RequestsPerSecond 每秒请求数
	RequestsPerSecond int
	// Burst 突发容量
	Burst int
	// PerIP 按客户端 IP 独立限流，否则全局共享一个令牌桶
	PerIP bool
	// SkipPaths 不参与限流的路径
	SkipPaths []string

	// MaxLimiters 按 IP 限流器的缓存上限
	MaxLimiters int
	// LimiterTTL 限流器空闲回收时间
	LimiterTTL time.Duration
	// CleanupInterval 过期扫描间隔
	CleanupInterval time.Duration
}

// RateLimiter 令牌桶限流器。按 IP 模式下每个来源一个桶，
// 桶缓存经 LRU 约束上限，空闲来源自动回收。
type RateLimiter struct {
	cfg      *RateLimitConfig
	global   *rate.Limiter
	limiters *lru.LRU[string, *rate.Limiter]
	logger   logger.Logger
}

// NewRateLimiter 创建限流器
func NewRateLimiter(l logger.Logger, cfg *RateLimitConfig) *RateLimiter {
	if l == nil {
		l = logger.NewNoop()
	}

	rl := &RateLimiter{
		cfg:    cfg,
		global: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		logger: l,
	}

	rl.limiters = lru.New[string, *rate.Limiter](
		&lru.Config{
			MaxSize:         cfg.MaxLimiters,
			DefaultTTL:      cfg.LimiterTTL,
			CleanupInterval: cfg.CleanupInterval,
		},
		lru.WithOnEvict(func(key string, limiter *rate.Limiter) {
			l.Debug("rate limiter evicted", "key", key)
		}),
	)

	return rl
}

// Allow 检查 key 对应的来源是否放行，key 为空走全局桶
func (rl *RateLimiter) Allow(key string) bool {
	if key == "" {
		return rl.global.Allow()
	}
	limiter := rl.limiters.GetOrCreate(key, func() *rate.Limiter {
		return rate.NewLimiter(rate.Limit(rl.cfg.RequestsPerSecond), rl.cfg.Burst)
	})
	return limiter.Allow()
}

// Close 关闭限流器缓存
func (rl *RateLimiter) Close() error {
	return rl.limiters.Close()
}

// RateLimit 限流中间件，超限返回 429
func RateLimit(limiter *RateLimiter) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(limiter.cfg.SkipPaths))
	for _, path := range limiter.cfg.SkipPaths {
		skip[path] = struct{}{}
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if _, ok := skip[path]; ok {
			c.Next()
			return
		}

		var key string
		if limiter.cfg.PerIP {
			key = c.ClientIP()
		}

		if !limiter.Allow(key) {
			limiter.logger.Warn("rate limit exceeded", "key", key, "path", path)
			c.Header("Retry-After", strconv.Itoa(1))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "too many requests",
			})
			return
		}

		c.Next()
	}
}
