package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/todoapp/internal/pkg/logger"
)

// LoggerConfig controls the request logger.
type LoggerConfig struct {
	// Log is the destination. Nil means the process default logger.
	Log             *logger.Logger
	LogRequestBody  bool
	LogResponseBody bool
	MaxBodySize     int64
	SkipPaths       []string
}

func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		LogRequestBody:  true,
		LogResponseBody: false, // failed responses are always logged
		MaxBodySize:     2048,
		SkipPaths:       []string{"/health", "/metrics"},
	}
}

func Logger() gin.HandlerFunc {
	return LoggerWithConfig(DefaultLoggerConfig())
}

// LoggerWithConfig logs one structured line per request. Failed requests
// also carry their sanitized request and response bodies.
func LoggerWithConfig(config LoggerConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if slices.Contains(config.SkipPaths, c.Request.URL.Path) {
			c.Next()
			return
		}

		log := config.Log
		if log == nil {
			log = logger.Default()
		}

		start := time.Now()
		contentType := c.GetHeader("Content-Type")

		var requestBody string
		if config.LogRequestBody && c.Request.Body != nil && c.Request.ContentLength > 0 {
			if c.Request.ContentLength > config.MaxBodySize {
				requestBody = "[request body too large to log]"
			} else {
				raw, err := io.ReadAll(io.LimitReader(c.Request.Body, config.MaxBodySize))
				if err == nil {
					c.Request.Body = io.NopCloser(bytes.NewReader(raw))
					requestBody = sanitizeBody(string(raw), contentType)
				}
			}
		}

		writer := &limitedResponseWriter{ResponseWriter: c.Writer, maxSize: config.MaxBodySize}
		c.Writer = writer

		c.Next()

		status := writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(start),
			"size", writer.size,
			"ip", c.ClientIP(),
		}
		if id := c.GetString(RequestIDKey); id != "" {
			attrs = append(attrs, "request_id", id)
		}
		if q := c.Request.URL.RawQuery; q != "" {
			attrs = append(attrs, "query", truncateString(q, 200))
		}
		if status >= 400 || config.LogResponseBody {
			if requestBody != "" {
				attrs = append(attrs, "request_body", requestBody)
			}
			if writer.body.Len() > 0 {
				attrs = append(attrs, "response_body", sanitizeBody(writer.body.String(), writer.Header().Get("Content-Type")))
			}
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "errors", c.Errors.String())
		}

		switch {
		case status >= 500:
			log.Error("request failed", attrs...)
		case status >= 400:
			log.Warn("request rejected", attrs...)
		default:
			log.Info("request completed", attrs...)
		}
	}
}

// limitedResponseWriter keeps at most maxSize bytes of the response body.
type limitedResponseWriter struct {
	gin.ResponseWriter
	body    bytes.Buffer
	size    int64
	maxSize int64
}

func (w *limitedResponseWriter) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	if w.size+int64(n) <= w.maxSize {
		w.body.Write(b[:n])
	}
	w.size += int64(n)
	return n, err
}

func (w *limitedResponseWriter) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

func sanitizeBody(body, contentType string) string {
	if body == "" {
		return ""
	}
	if len(body) > 1024 {
		return "[body too large to log]"
	}

	if strings.Contains(contentType, "json") {
		var data any
		if json.Unmarshal([]byte(body), &data) == nil {
			if out, err := json.Marshal(hideSensitiveFields(data)); err == nil {
				return string(out)
			}
		}
	}
	return truncateString(body, 200)
}

func hideSensitiveFields(data any) any {
	switch v := data.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, value := range v {
			if isSensitiveField(strings.ToLower(key)) {
				out[key] = "********"
			} else {
				out[key] = hideSensitiveFields(value)
			}
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = hideSensitiveFields(item)
		}
		return out
	default:
		return v
	}
}

var sensitiveFields = []string{"password", "token", "secret", "key", "auth", "credential"}

func isSensitiveField(field string) bool {
	for _, s := range sensitiveFields {
		if strings.Contains(field, s) {
			return true
		}
	}
	return false
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
