package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/tableingest/service/internal/core/domain"
)

// AuthMiddleware enforces the single static Bearer token configured at
// startup.
type AuthMiddleware struct {
	apiKey string
}

// NewAuthMiddleware builds an AuthMiddleware for the configured API key.
func NewAuthMiddleware(apiKey string) *AuthMiddleware {
	return &AuthMiddleware{apiKey: apiKey}
}

// Authenticate rejects requests missing a Bearer Authorization header with
// 401, and requests bearing the wrong token with 403.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := extractBearerToken(r)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		if token != m.apiKey {
			writeDomainError(w, domain.ErrForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// extractBearerToken extracts the Bearer token from the Authorization
// header. It returns domain.ErrUnauthorized when the header is absent or
// not a Bearer scheme.
func extractBearerToken(r *http.Request) (token string, err error) {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return "", domain.ErrUnauthorized
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", domain.ErrUnauthorized
	}
	token = strings.TrimSpace(parts[1])
	if token == "" {
		return "", domain.ErrUnauthorized
	}
	return token, nil
}

// LoggingMiddleware logs HTTP requests with per-request fields.
type LoggingMiddleware struct {
	logger requestLogger
}

type requestLogger interface {
	Info(msg string, args ...any)
}

// NewLoggingMiddleware builds a LoggingMiddleware.
func NewLoggingMiddleware(logger requestLogger) *LoggingMiddleware {
	return &LoggingMiddleware{logger: logger}
}

// Handler wraps next with request logging.
func (m *LoggingMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)
		m.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration", time.Since(start),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// RecoveryMiddleware recovers from panics in handlers, converting them
// into a 500 instead of crashing the server.
type RecoveryMiddleware struct {
	logger requestLogger
}

// NewRecoveryMiddleware builds a RecoveryMiddleware.
func NewRecoveryMiddleware(logger requestLogger) *RecoveryMiddleware {
	return &RecoveryMiddleware{logger: logger}
}

// Handler wraps next with panic recovery.
func (m *RecoveryMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				m.logger.Info("panic recovered", "error", err)
				writeDomainError(w, domain.ErrInternal)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
