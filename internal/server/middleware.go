package server

import (
	"net"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/achint227/Resume-Generator/internal/logging"
	"github.com/achint227/Resume-Generator/internal/server/ratelimit"
)

// cors sets CORS headers and answers preflight requests. An origin of "*"
// allows any origin without credentials.
func cors(allowedOrigins []string) gin.HandlerFunc {
	origins := make(map[string]struct{})
	wildcard := false
	for _, o := range allowedOrigins {
		switch trimmed := strings.TrimSpace(o); trimmed {
		case "":
		case "*":
			wildcard = true
		default:
			origins[trimmed] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		if origin := c.GetHeader("Origin"); origin != "" {
			h := c.Writer.Header()
			_, listed := origins[origin]
			switch {
			case listed:
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Vary", "Origin")
				h.Set("Access-Control-Allow-Credentials", "true")
			case wildcard:
				h.Set("Access-Control-Allow-Origin", "*")
			}
			if listed || wildcard {
				h.Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
				h.Set("Access-Control-Allow-Headers", "Content-Type, "+logging.RequestIDHeader)
				h.Set("Access-Control-Expose-Headers", logging.RequestIDHeader+", Content-Disposition")
				h.Set("Access-Control-Max-Age", "600")
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// recovery turns a handler panic into a 500 envelope.
func recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logging.FromContext(c.Request.Context()).Error("panic",
					zap.Any("error", rec),
					zap.String("stack", string(debug.Stack())),
					zap.String("path", c.Request.URL.Path),
					zap.String("method", c.Request.Method),
				)
				abortWithBody(c, http.StatusInternalServerError, ErrorBody{
					Code:    CodeInternal,
					Message: "unexpected server error",
				})
			}
		}()
		c.Next()
	}
}

// rateLimit applies the limiter to the matched route pattern.
func rateLimit(l *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		info := l.Allow(clientID(c), c.Request.Method, c.FullPath())
		if info.Limit > 0 {
			c.Header("X-RateLimit-Limit", strconv.Itoa(info.Limit))
			c.Header("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		}
		if !info.Allowed {
			secs := int(info.RetryAfter.Seconds() + 0.999)
			c.Header("Retry-After", strconv.Itoa(secs))
			abortWithBody(c, http.StatusTooManyRequests, ErrorBody{
				Code:    CodeRateLimited,
				Message: "rate limit exceeded, try again later",
				Details: gin.H{"retry_after": secs},
			})
			return
		}
		c.Next()
	}
}

// clientID identifies the caller by remote IP.
func clientID(c *gin.Context) string {
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}
	return host
}
