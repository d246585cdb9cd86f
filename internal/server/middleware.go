package server

import (
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"auction-house/internal/auth"
	"auction-house/utils"
)

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	utils.Info("HTTP Request", map[string]any{
		"method":  c.Request.Method,
		"path":    c.Request.URL.Path,
		"status":  c.Writer.Status(),
		"latency": time.Since(start).String(),
	})
}

// AuthRequired validates the bearer token and stores the resolved user on
// the request context. Requests without a valid token are rejected with 401.
func AuthRequired(gate *auth.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if header == "" || token == header {
			utils.JSONError(c, http.StatusUnauthorized, errors.New("missing bearer token"), "unauthorized")
			c.Abort()
			return
		}

		user, err := gate.Authenticate(token)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, err, "unauthorized")
			c.Abort()
			return
		}

		utils.SetCurrentUser(c, user)
		c.Next()
	}
}

// RateLimiter rejects clients that exceed max requests per fixed window,
// keyed by client IP.
func RateLimiter(window time.Duration, max int) gin.HandlerFunc {
	type bucket struct {
		count   int
		resetAt time.Time
	}

	var mu sync.Mutex
	buckets := make(map[string]*bucket)

	return func(c *gin.Context) {
		now := time.Now()
		ip := c.ClientIP()

		mu.Lock()
		b, ok := buckets[ip]
		if !ok || now.After(b.resetAt) {
			b = &bucket{resetAt: now.Add(window)}
			buckets[ip] = b
		}
		b.count++
		over := b.count > max
		mu.Unlock()

		if over {
			utils.JSONError(c, http.StatusTooManyRequests,
				errors.New("rate limit exceeded"),
				"too many requests, please try again later")
			c.Abort()
			return
		}
		c.Next()
	}
}
