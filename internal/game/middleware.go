package game

import (
	"bufio"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/jacl-coder/StarRunner-Server/pkg/logger"
)

// RateLimiter 按客户端IP限制请求频率
type RateLimiter struct {
	clients   map[string]*clientInfo
	mutex     sync.Mutex
	lastSweep time.Time

	// 配置
	RequestsPerMinute int
	CleanupInterval   time.Duration
}

type clientInfo struct {
	requests []time.Time
	lastSeen time.Time
}

// NewRateLimiter 创建频率限制器
func NewRateLimiter(requestsPerMinute int) *RateLimiter {
	return &RateLimiter{
		clients:           make(map[string]*clientInfo),
		lastSweep:         time.Now(),
		RequestsPerMinute: requestsPerMinute,
		CleanupInterval:   5 * time.Minute,
	}
}

// Middleware 频率限制中间件
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.Allow(clientIP(r), time.Now()) {
			writeError(w, http.StatusTooManyRequests, "请求过于频繁")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Allow 检查是否允许请求并记录
func (rl *RateLimiter) Allow(ip string, now time.Time) bool {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	if now.Sub(rl.lastSweep) >= rl.CleanupInterval {
		rl.sweep(now)
	}

	client, exists := rl.clients[ip]
	if !exists {
		client = &clientInfo{}
		rl.clients[ip] = client
	}
	client.lastSeen = now

	// 只保留最近一分钟的请求
	cutoff := now.Add(-time.Minute)
	valid := client.requests[:0]
	for _, t := range client.requests {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}
	client.requests = valid

	if len(client.requests) >= rl.RequestsPerMinute {
		return false
	}
	client.requests = append(client.requests, now)
	return true
}

// sweep 清理长时间未访问的客户端
func (rl *RateLimiter) sweep(now time.Time) {
	cutoff := now.Add(-2 * rl.CleanupInterval)
	for ip, client := range rl.clients {
		if client.lastSeen.Before(cutoff) {
			delete(rl.clients, ip)
		}
	}
	rl.lastSweep = now
}

// clientIP 获取客户端IP
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// corsMiddleware CORS中间件
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		// 处理预检请求
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware 请求日志中间件
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(recorder, r)

		logger.L().Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.statusCode).
			Dur("duration", time.Since(start)).
			Msg("HTTP请求")
	})
}

// responseRecorder 响应记录器
type responseRecorder struct {
	http.ResponseWriter
	statusCode int
}

// WriteHeader 记录状态码
func (rr *responseRecorder) WriteHeader(code int) {
	rr.statusCode = code
	rr.ResponseWriter.WriteHeader(code)
}

// Hijack 供WebSocket升级使用
func (rr *responseRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := rr.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("ResponseWriter 不支持 Hijack")
	}
	rr.statusCode = http.StatusSwitchingProtocols
	return hj.Hijack()
}
