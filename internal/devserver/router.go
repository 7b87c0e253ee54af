// Package devserver serves fixture notifications over the same endpoint
// the client reads, for local development.
package devserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nhle/notifyview/internal/client"
	"github.com/nhle/notifyview/internal/model"
)

// RequestIDHeader is echoed back on every response.
const RequestIDHeader = "X-Request-ID"

// NewRouter returns a gin engine answering GET /api/v1/notifications with
// {"result": ns}.
func NewRouter(ns []model.Notification, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLoggingMiddleware(logger))

	h := &handler{notifications: nonNil(ns), logger: logger}
	r.GET(client.NotificationsPath, h.listNotifications)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}

type handler struct {
	notifications []model.Notification
	logger        *zap.Logger
}

func (h *handler) listNotifications(c *gin.Context) {
	h.logger.Debug("serving notifications", zap.Int("count", len(h.notifications)))
	c.JSON(http.StatusOK, gin.H{"result": h.notifications})
}

// RequestLoggingMiddleware logs one line per request and makes sure the
// response carries a request id.
func RequestLoggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)

		c.Next()

		logger.Info("request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", requestID),
		)
	}
}
