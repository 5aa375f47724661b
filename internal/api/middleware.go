package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"fitbuilder/server/internal/domain"
	"fitbuilder/server/internal/metrics"
	"fitbuilder/server/internal/repository"
	"fitbuilder/server/internal/routine"
	"fitbuilder/server/internal/service"
	"fitbuilder/server/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

// Constants for context keys
const (
	ContextUserIDKey = "userID"
)

// OptionalAuthMiddleware lets requests without an Authorization header
// through as guests. A header that is present must carry a valid bearer
// token, otherwise the request is rejected. With auth nil (accounts
// disabled) every token is rejected.
func OptionalAuthMiddleware(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		// Expecting "Bearer <token>"
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
			return
		}
		if auth == nil {
			abortWithError(c, http.StatusUnauthorized, "Accounts are not enabled on this server")
			return
		}

		userID, err := auth.ParseToken(parts[1])
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}

// RequireAuthMiddleware rejects guests. Must run after OptionalAuthMiddleware.
func RequireAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if identityFromContext(c).IsGuest() {
			abortWithError(c, http.StatusUnauthorized, "Authorization header is missing")
			return
		}
		c.Next()
	}
}

// RequestMetricsMiddleware counts requests and observes their duration per route.
func RequestMetricsMiddleware(m *metrics.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		begin := time.Now()
		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.CounterRequests.With(prometheus.Labels{
			"method": c.Request.Method,
			"status": status,
		}).Inc()
		m.HistogramRequestDuration.WithLabelValues(route, c.Request.Method, status).
			Observe(time.Since(begin).Seconds())
	}
}

// RequestLogger writes one logrus line per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		begin := time.Now()
		c.Next()

		entry := log.WithFields(log.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(begin).String(),
			"guest":    identityFromContext(c).IsGuest(),
		})
		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.Warn("request failed")
			return
		}
		entry.Debug("request served")
	}
}

// RecoveryMiddleware turns handler panics into 500 responses.
func RecoveryMiddleware(m *metrics.Manager) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		log.Errorf("http: panic serving %s: %v", c.Request.URL.Path, recovered)
		m.CounterRequestPanics.Inc()
		abortWithError(c, http.StatusInternalServerError, "Internal server error")
	})
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

type fieldErrorResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// respondError maps service and domain errors to HTTP responses.
func respondError(c *gin.Context, err error) {
	var validation *domain.ValidationError
	switch {
	case errors.As(err, &validation):
		fields := make([]fieldErrorResponse, 0, len(validation.Errors))
		for _, f := range validation.Errors {
			fields = append(fields, fieldErrorResponse{Field: f.Field, Message: f.Message()})
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": validation.Error(), "fields": fields})
	case errors.Is(err, routine.ErrUnknownField):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrDraftNotFound),
		errors.Is(err, service.ErrRoutineNotFound),
		errors.Is(err, service.ErrExerciseNotFound),
		errors.Is(err, routine.ErrEntryNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUnauthenticated),
		errors.Is(err, service.ErrAuthenticationFailed):
		abortWithError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrUserAlreadyExists):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, repository.ErrConcurrentModification):
		abortWithError(c, http.StatusConflict, "Routines were changed by another request, please retry")
	case errors.Is(err, service.ErrServerStoreUnavailable),
		errors.Is(err, storage.ErrStorageDisabled):
		abortWithError(c, http.StatusServiceUnavailable, err.Error())
	default:
		log.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

// identityFromContext returns the caller set by OptionalAuthMiddleware;
// requests without a token are guests.
func identityFromContext(c *gin.Context) service.Identity {
	return service.Identity{UserID: c.GetString(ContextUserIDKey)}
}
