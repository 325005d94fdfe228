package middleware

import (
	"sync"
	"time"

	"github.com/Hariokas/PersonRegistrationSystem/internal/error/code"
	"github.com/Hariokas/PersonRegistrationSystem/internal/error/response"

	"github.com/gin-gonic/gin"
)

// tokenBucket 单个限流键的令牌桶
type tokenBucket struct {
	tokens     float64
	lastRefill time.Time
}

// RateLimiter 基于令牌桶的限流器，按键分桶
type RateLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*tokenBucket
	rate     float64 // 每秒补充的令牌数
	capacity float64
}

// NewRateLimiter 创建限流器并启动过期桶清理
func NewRateLimiter(rate, capacity float64) *RateLimiter {
	l := &RateLimiter{
		buckets:  make(map[string]*tokenBucket),
		rate:     rate,
		capacity: capacity,
	}
	go l.cleanup()
	return l
}

// allow 尝试从键对应的桶中取一个令牌
func (l *RateLimiter) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	bucket, ok := l.buckets[key]
	if !ok {
		bucket = &tokenBucket{tokens: l.capacity, lastRefill: now}
		l.buckets[key] = bucket
	}

	elapsed := now.Sub(bucket.lastRefill).Seconds()
	bucket.tokens += elapsed * l.rate
	if bucket.tokens > l.capacity {
		bucket.tokens = l.capacity
	}
	bucket.lastRefill = now

	if bucket.tokens < 1 {
		return false
	}
	bucket.tokens--
	return true
}

// cleanup 定期清理长时间未访问的桶
func (l *RateLimiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		l.mu.Lock()
		cutoff := time.Now().Add(-30 * time.Minute)
		for key, bucket := range l.buckets {
			if bucket.lastRefill.Before(cutoff) {
				delete(l.buckets, key)
			}
		}
		l.mu.Unlock()
	}
}

// RateLimitByIP 按客户端IP限流
func RateLimitByIP(rate, capacity float64) gin.HandlerFunc {
	limiter := NewRateLimiter(rate, capacity)
	return func(ctx *gin.Context) {
		if !limiter.allow(ctx.ClientIP()) {
			response.Fail(ctx, code.ErrTooManyRequests)
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

// RateLimitByIPAndPath 按客户端IP和请求路径限流，用于登录等敏感接口
func RateLimitByIPAndPath(rate, capacity float64) gin.HandlerFunc {
	limiter := NewRateLimiter(rate, capacity)
	return func(ctx *gin.Context) {
		if !limiter.allow(ctx.ClientIP() + ":" + ctx.FullPath()) {
			response.Fail(ctx, code.ErrTooManyRequests)
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}
