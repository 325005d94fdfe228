package middleware

import (
	"bytes"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// cacheEntry 缓存的响应内容
type cacheEntry struct {
	status      int
	contentType string
	body        []byte
	expiresAt   time.Time
}

var (
	cacheMu    sync.RWMutex
	cacheStore = make(map[string]*cacheEntry)
)

// responseRecorder 在写出响应的同时捕获响应体
type responseRecorder struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Cache 内存GET响应缓存。
// 只能挂在响应不随请求者变化的只读接口上（如管理员查询接口）。
func Cache(ttl time.Duration) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ctx.Request.Method != http.MethodGet {
			ctx.Next()
			return
		}

		key := ctx.Request.URL.Path
		if raw := ctx.Request.URL.RawQuery; raw != "" {
			key += "?" + raw
		}

		cacheMu.RLock()
		entry, ok := cacheStore[key]
		cacheMu.RUnlock()
		if ok && time.Now().Before(entry.expiresAt) {
			ctx.Header("X-Cache", "HIT")
			ctx.Data(entry.status, entry.contentType, entry.body)
			ctx.Abort()
			return
		}

		recorder := &responseRecorder{
			ResponseWriter: ctx.Writer,
			body:           bytes.NewBuffer(nil),
		}
		ctx.Writer = recorder
		ctx.Next()

		if recorder.Status() == http.StatusOK {
			cacheMu.Lock()
			cacheStore[key] = &cacheEntry{
				status:      recorder.Status(),
				contentType: recorder.Header().Get("Content-Type"),
				body:        recorder.body.Bytes(),
				expiresAt:   time.Now().Add(ttl),
			}
			cacheMu.Unlock()
		}
	}
}

// CacheStats 缓存统计，健康检查接口使用
func CacheStats() map[string]interface{} {
	cacheMu.RLock()
	defer cacheMu.RUnlock()

	valid := 0
	now := time.Now()
	for _, entry := range cacheStore {
		if now.Before(entry.expiresAt) {
			valid++
		}
	}
	return map[string]interface{}{
		"entries": len(cacheStore),
		"valid":   valid,
	}
}

// ClearCache 清空响应缓存
func ClearCache() {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	cacheStore = make(map[string]*cacheEntry)
}
