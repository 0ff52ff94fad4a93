package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/respawnadega/storefront/internal/infrastructure/logger"
	"github.com/respawnadega/storefront/internal/interfaces/http/dto"
)

// SessionHeader carries the cart session id in and out
const SessionHeader = "X-Cart-Session"

// SessionQueryParam carries the cart session id on browser navigations,
// which cannot set SessionHeader
const SessionQueryParam = "session"

// sessionKey is the gin key the cart session id is stored under. The
// request logger reads the same key.
const sessionKey = "cart_session"

type sessionConfig struct {
	queryParam string
}

// SessionOption configures CartSession
type SessionOption func(*sessionConfig)

// WithSessionQuery also reads the session from the named query parameter
// when the header is absent
func WithSessionQuery(param string) SessionOption {
	return func(cfg *sessionConfig) {
		cfg.queryParam = param
	}
}

// CartSession resolves the cart session of a request. A missing header
// starts a new session; a malformed one is rejected. The id is echoed in
// the response header either way.
func CartSession(opts ...SessionOption) gin.HandlerFunc {
	var cfg sessionConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(c *gin.Context) {
		raw := c.GetHeader(SessionHeader)
		source := SessionHeader
		if raw == "" && cfg.queryParam != "" {
			raw = c.Query(cfg.queryParam)
			source = cfg.queryParam
		}

		var sessionID string
		if raw == "" {
			sessionID = uuid.NewString()
		} else {
			id, err := uuid.Parse(raw)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusBadRequest,
					dto.NewErrorResponseWithRequestID(dto.ErrCodeInvalidSession,
						source+" must be a UUID", GetRequestID(c)))
				return
			}
			sessionID = id.String()
		}

		c.Set(sessionKey, sessionID)
		c.Writer.Header().Set(SessionHeader, sessionID)

		ctx, _ := logger.WithSessionID(c.Request.Context(), logger.GetGinLogger(c), sessionID)
		c.Request = c.Request.WithContext(ctx)
		c.Set("logger", logger.FromContext(ctx))

		c.Next()
	}
}

// GetCartSession returns the session id set by CartSession
func GetCartSession(c *gin.Context) string {
	return c.GetString(sessionKey)
}
