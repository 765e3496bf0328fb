package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"todolists/internal/todo"
)

const requestIDHeader = "X-Request-ID"

// Server exposes a todo.Service over the JSON API consumed by internal/client.
type Server struct {
	engine *gin.Engine
	svc    todo.Service
	logger *slog.Logger
}

// New constructs the HTTP server with routes and middleware configured.
func New(svc todo.Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestID())
	router.Use(gin.LoggerWithWriter(gin.DefaultWriter, "/api/healthz"))

	srv := &Server{
		engine: router,
		svc:    svc,
		logger: logger,
	}

	srv.registerRoutes()
	return srv
}

// Engine exposes the underlying Gin engine.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// registerRoutes wires all API handlers together.
func (s *Server) registerRoutes() {
	api := s.engine.Group("/api")
	{
		api.GET("/healthz", s.handleHealth)

		lists := api.Group("/lists")
		{
			lists.GET("", s.handleListAll)
			lists.POST("", s.handleCreateList)
			lists.PUT(":id", s.handleUpdateList)
			lists.DELETE(":id", s.handleDeleteList)
		}

		items := api.Group("/items")
		{
			items.POST("", s.handleCreateItem)
			items.PUT(":id", s.handleUpdateItem)
			items.PUT(":id/detail", s.handleUpdateItemDetail)
			items.DELETE(":id", s.handleDeleteItem)
		}
	}

	s.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "endpoint not found"})
	})
}

// requestID tags every request with an identifier, reusing the caller's.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDHeader, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// handleHealth provides a basic readiness endpoint.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// parseID converts a path parameter to int64 with error handling.
func parseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid identifier"})
		return 0, false
	}
	return id, true
}

// respondError logs the error and maps it onto a status code and payload.
// Validation failures carry their per-field messages.
func (s *Server) respondError(c *gin.Context, err error) {
	var (
		validation *todo.ValidationError
		notFound   *todo.NotFoundError
	)
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"errors": validation.Fields})
		return
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
		return
	}

	s.logger.Error("request failed",
		slog.String("path", c.FullPath()),
		slog.String("request_id", c.GetString(requestIDHeader)),
		slog.String("error", err.Error()))
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// respondBadRequest rejects an undecodable request body.
func respondBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// respondSuccess wraps a payload in a JSON envelope for consistency.
func respondSuccess(c *gin.Context, status int, payload any) {
	if payload == nil {
		c.Status(status)
		return
	}
	c.JSON(status, payload)
}
