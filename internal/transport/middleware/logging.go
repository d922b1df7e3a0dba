package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/frahmantamala/workforce-ops/pkg/logger"
)

const filtered = "[FILTERED]"

// Keys are matched as substrings of lower-cased header and JSON field names.
var sensitiveFields = []string{
	"password",
	"token",
	"authorization",
	"secret",
	"api_key",
	"session",
	"credential",
	"cookie",
}

// Probe endpoints are not worth a log line per call.
var quietPaths = map[string]struct{}{
	"/health": {},
	"/ping":   {},
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, quiet := quietPaths[r.URL.Path]; quiet {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		lg := logger.From(r.Context())

		lg.Info("incoming request",
			"method", r.Method,
			"path", r.URL.Path,
			"query", r.URL.RawQuery,
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent(),
			"headers", maskHeaders(r.Header),
			"body", maskBody(peekBody(r)),
		)

		rec := &recordingWriter{ResponseWriter: w, body: &bytes.Buffer{}}
		next.ServeHTTP(rec, r)

		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}

		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}

		lg.Log(r.Context(), level, "response",
			"status_code", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"response_size", rec.body.Len(),
			"body", maskBody(rec.body.Bytes()),
		)
	})
}

type recordingWriter struct {
	http.ResponseWriter
	status int
	body   *bytes.Buffer
}

func (rw *recordingWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *recordingWriter) Write(b []byte) (int, error) {
	rw.body.Write(b)
	return rw.ResponseWriter.Write(b)
}

// peekBody reads the request body and puts an identical reader back.
func peekBody(r *http.Request) []byte {
	if r.Body == nil {
		return nil
	}
	b, _ := io.ReadAll(r.Body)
	r.Body = io.NopCloser(bytes.NewReader(b))
	return b
}

func isSensitive(name string) bool {
	lower := strings.ToLower(name)
	for _, field := range sensitiveFields {
		if strings.Contains(lower, field) {
			return true
		}
	}
	return false
}

func maskHeaders(headers http.Header) map[string]string {
	out := make(map[string]string, len(headers))
	for name, values := range headers {
		if isSensitive(name) {
			out[name] = filtered
			continue
		}
		out[name] = strings.Join(values, ", ")
	}
	return out
}

func maskBody(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	var data interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		if isSensitive(string(body)) {
			return filtered
		}
		return string(body)
	}

	masked, err := json.Marshal(maskJSON(data))
	if err != nil {
		return filtered
	}
	return string(masked)
}

func maskJSON(data interface{}) interface{} {
	switch v := data.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, value := range v {
			if isSensitive(key) {
				out[key] = filtered
				continue
			}
			out[key] = maskJSON(value)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = maskJSON(item)
		}
		return out
	default:
		return v
	}
}
